package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/abdelwahed/go-task-keeper/internal/crypto"
	"github.com/abdelwahed/go-task-keeper/internal/store"
	"github.com/abdelwahed/go-task-keeper/models"
)

func (e *testEnv) sealedNote(t *testing.T, noteID, taskID int64, content string) models.TaskNote {
	t.Helper()

	blob, err := e.cryptoSvc.Protect(content)
	require.NoError(t, err)
	return models.TaskNote{NoteID: noteID, TaskID: taskID, ContentBlob: blob}
}

func TestNoteService_AddNote_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	env := newTestEnv(t, ctrl)
	ctx := context.Background()

	alice := env.newStoredUser(t, 1, "alice", "S3cret!")
	env.login(t, ctx, alice, "S3cret!")

	owned := env.sealedTask(t, 10, 1, "Buy milk", "")
	env.tasks.EXPECT().FindTaskByID(ctx, int64(10)).Return(owned, nil)
	env.notes.EXPECT().CreateNote(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, note models.TaskNote) (models.TaskNote, error) {
			assert.Equal(t, int64(10), note.TaskID)

			content, err := env.cryptoSvc.Reveal(note.ContentBlob)
			require.NoError(t, err)
			assert.Equal(t, "2 liters", content)

			note.NoteID = 20
			return note, nil
		},
	)

	view, err := env.noteSvc.AddNote(ctx, 10, "2 liters")
	require.NoError(t, err)
	assert.Equal(t, int64(20), view.NoteID)
	assert.Equal(t, int64(10), view.TaskID)
	assert.Equal(t, "2 liters", view.Content)
}

func TestNoteService_AddNote_EmptyContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	env := newTestEnv(t, ctrl)
	ctx := context.Background()

	alice := env.newStoredUser(t, 1, "alice", "S3cret!")
	env.login(t, ctx, alice, "S3cret!")

	owned := env.sealedTask(t, 10, 1, "Buy milk", "")
	env.tasks.EXPECT().FindTaskByID(ctx, int64(10)).Return(owned, nil)

	_, err := env.noteSvc.AddNote(ctx, 10, "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestNoteService_AddNote_ForeignTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	env := newTestEnv(t, ctrl)
	ctx := context.Background()

	alice := env.newStoredUser(t, 1, "alice", "S3cret!")
	env.login(t, ctx, alice, "S3cret!")

	foreign := env.sealedTask(t, 10, 2, "not alice's", "")
	env.tasks.EXPECT().FindTaskByID(ctx, int64(10)).Return(foreign, nil)

	_, err := env.noteSvc.AddNote(ctx, 10, "2 liters")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestNoteService_ListNotes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	env := newTestEnv(t, ctrl)
	ctx := context.Background()

	alice := env.newStoredUser(t, 1, "alice", "S3cret!")
	env.login(t, ctx, alice, "S3cret!")

	owned := env.sealedTask(t, 10, 1, "Buy milk", "")
	env.tasks.EXPECT().FindTaskByID(ctx, int64(10)).Return(owned, nil)
	env.notes.EXPECT().FindNotesByTask(ctx, int64(10)).Return([]models.TaskNote{
		env.sealedNote(t, 20, 10, "2 liters"),
		env.sealedNote(t, 21, 10, "oat, not dairy"),
	}, nil)

	views, err := env.noteSvc.ListNotes(ctx, 10)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "2 liters", views[0].Content)
	assert.Equal(t, "oat, not dairy", views[1].Content)
}

func TestNoteService_EditNote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	env := newTestEnv(t, ctrl)
	ctx := context.Background()

	alice := env.newStoredUser(t, 1, "alice", "S3cret!")
	env.login(t, ctx, alice, "S3cret!")

	note := env.sealedNote(t, 20, 10, "2 liters")
	owned := env.sealedTask(t, 10, 1, "Buy milk", "")
	env.notes.EXPECT().FindNoteByID(ctx, int64(20)).Return(note, nil)
	env.tasks.EXPECT().FindTaskByID(ctx, int64(10)).Return(owned, nil)

	var updated models.TaskNote
	env.notes.EXPECT().UpdateNote(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, note models.TaskNote) error {
			updated = note
			return nil
		},
	)

	view, err := env.noteSvc.EditNote(ctx, 20, "3 liters")
	require.NoError(t, err)
	assert.Equal(t, "3 liters", view.Content)

	content, err := env.cryptoSvc.Reveal(updated.ContentBlob)
	require.NoError(t, err)
	assert.Equal(t, "3 liters", content)
}

func TestNoteService_DeleteNote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	env := newTestEnv(t, ctrl)
	ctx := context.Background()

	alice := env.newStoredUser(t, 1, "alice", "S3cret!")
	env.login(t, ctx, alice, "S3cret!")

	note := env.sealedNote(t, 20, 10, "2 liters")
	owned := env.sealedTask(t, 10, 1, "Buy milk", "")
	env.notes.EXPECT().FindNoteByID(ctx, int64(20)).Return(note, nil)
	env.tasks.EXPECT().FindTaskByID(ctx, int64(10)).Return(owned, nil)
	env.notes.EXPECT().DeleteNote(ctx, int64(20)).Return(nil)

	require.NoError(t, env.noteSvc.DeleteNote(ctx, 20))
}

func TestNoteService_DeleteNote_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	env := newTestEnv(t, ctrl)
	ctx := context.Background()

	alice := env.newStoredUser(t, 1, "alice", "S3cret!")
	env.login(t, ctx, alice, "S3cret!")

	env.notes.EXPECT().FindNoteByID(ctx, int64(404)).Return(models.TaskNote{}, store.ErrNoteNotFound)

	err := env.noteSvc.DeleteNote(ctx, 404)
	assert.ErrorIs(t, err, store.ErrNoteNotFound)
}

func TestNoteService_RequiresSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	env := newTestEnv(t, ctrl)

	_, err := env.noteSvc.AddNote(context.Background(), 10, "2 liters")
	assert.ErrorIs(t, err, crypto.ErrNotAuthenticated)

	_, err = env.noteSvc.ListNotes(context.Background(), 10)
	assert.ErrorIs(t, err, crypto.ErrNotAuthenticated)
}

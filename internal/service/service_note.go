package service

import (
	"context"
	"fmt"
	"time"

	"github.com/abdelwahed/go-task-keeper/internal/crypto"
	"github.com/abdelwahed/go-task-keeper/internal/store"
	"github.com/abdelwahed/go-task-keeper/models"
)

// noteService is the concrete implementation of [NoteService]. Notes
// inherit access control from their owning task.
type noteService struct {
	notes  store.NoteRepository
	tasks  store.TaskRepository
	keys   *crypto.KeyManager
	crypto *crypto.CryptoService
}

// NewNoteService constructs a [NoteService].
func NewNoteService(notes store.NoteRepository, tasks store.TaskRepository, keys *crypto.KeyManager, cryptoSvc *crypto.CryptoService) NoteService {
	return &noteService{notes: notes, tasks: tasks, keys: keys, crypto: cryptoSvc}
}

func (s *noteService) AddNote(ctx context.Context, taskID int64, content string) (models.TaskNoteView, error) {
	if err := s.assertTaskAccessible(ctx, taskID); err != nil {
		return models.TaskNoteView{}, err
	}
	if content == "" {
		return models.TaskNoteView{}, ErrInvalidDataProvided
	}

	blob, err := s.crypto.Protect(content)
	if err != nil {
		return models.TaskNoteView{}, fmt.Errorf("encrypt note: %w", err)
	}

	now := time.Now().UTC()
	note, err := s.notes.CreateNote(ctx, models.TaskNote{
		TaskID:      taskID,
		ContentBlob: blob,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return models.TaskNoteView{}, fmt.Errorf("create note: %w", err)
	}

	return s.decryptNote(note)
}

func (s *noteService) ListNotes(ctx context.Context, taskID int64) ([]models.TaskNoteView, error) {
	if err := s.assertTaskAccessible(ctx, taskID); err != nil {
		return nil, err
	}

	notes, err := s.notes.FindNotesByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	views := make([]models.TaskNoteView, 0, len(notes))
	for _, note := range notes {
		view, err := s.decryptNote(note)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, nil
}

func (s *noteService) EditNote(ctx context.Context, noteID int64, content string) (models.TaskNoteView, error) {
	if content == "" {
		return models.TaskNoteView{}, ErrInvalidDataProvided
	}

	note, err := s.notes.FindNoteByID(ctx, noteID)
	if err != nil {
		return models.TaskNoteView{}, err
	}
	if err = s.assertTaskAccessible(ctx, note.TaskID); err != nil {
		return models.TaskNoteView{}, err
	}

	if note.ContentBlob, err = s.crypto.Protect(content); err != nil {
		return models.TaskNoteView{}, fmt.Errorf("encrypt note: %w", err)
	}
	note.UpdatedAt = time.Now().UTC()

	if err = s.notes.UpdateNote(ctx, note); err != nil {
		return models.TaskNoteView{}, fmt.Errorf("update note: %w", err)
	}

	return s.decryptNote(note)
}

func (s *noteService) DeleteNote(ctx context.Context, noteID int64) error {
	note, err := s.notes.FindNoteByID(ctx, noteID)
	if err != nil {
		return err
	}
	if err = s.assertTaskAccessible(ctx, note.TaskID); err != nil {
		return err
	}
	return s.notes.DeleteNote(ctx, noteID)
}

// assertTaskAccessible verifies the owning task exists and belongs to the
// session user.
func (s *noteService) assertTaskAccessible(ctx context.Context, taskID int64) error {
	session, err := s.keys.Session()
	if err != nil {
		return err
	}

	task, err := s.tasks.FindTaskByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.OwnerID != session.UserID {
		return ErrAccessDenied
	}

	return nil
}

func (s *noteService) decryptNote(note models.TaskNote) (models.TaskNoteView, error) {
	content, err := s.crypto.Reveal(note.ContentBlob)
	if err != nil {
		return models.TaskNoteView{}, fmt.Errorf("decrypt note %d: %w", note.NoteID, err)
	}

	return models.TaskNoteView{
		NoteID:    note.NoteID,
		TaskID:    note.TaskID,
		Content:   content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}, nil
}

package store

import (
	"context"

	"github.com/abdelwahed/go-task-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user credential records. It stores only the
// salted password hash and public salts — never plaintext credentials or
// derived keys.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	// UpdatePassword replaces the stored password hash, hash salt, and
	// algorithm id of a user. The KDF salt is immutable after
	// registration and deliberately not part of this call.
	UpdatePassword(ctx context.Context, user models.User) error
}

// TaskRepository persists tasks. Title and description arrive and leave as
// opaque envelope blobs; the repository has no notion of plaintext.
type TaskRepository interface {
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	FindTaskByID(ctx context.Context, taskID int64) (models.Task, error)
	FindTasksByOwner(ctx context.Context, ownerID int64) ([]models.Task, error)
	UpdateTask(ctx context.Context, task models.Task) error
	DeleteTask(ctx context.Context, taskID int64) error
}

// NoteRepository persists task notes as opaque envelope blobs.
type NoteRepository interface {
	CreateNote(ctx context.Context, note models.TaskNote) (models.TaskNote, error)
	FindNoteByID(ctx context.Context, noteID int64) (models.TaskNote, error)
	FindNotesByTask(ctx context.Context, taskID int64) ([]models.TaskNote, error)
	UpdateNote(ctx context.Context, note models.TaskNote) error
	DeleteNote(ctx context.Context, noteID int64) error
}

// Transactor runs a function against a repository set bound to a single
// database transaction. Either every write inside fn commits, or none do.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(repos *Repositories) error) error
}

// Repositories bundles all repository implementations backed by one
// database connection.
type Repositories struct {
	Users UserRepository
	Tasks TaskRepository
	Notes NoteRepository
}

// NewRepositories constructs all repositories over db.
func NewRepositories(db *DB) *Repositories {
	return &Repositories{
		Users: NewUserRepository(db),
		Tasks: NewTaskRepository(db),
		Notes: NewNoteRepository(db),
	}
}

package service

import (
	"context"

	"github.com/abdelwahed/go-task-keeper/internal/crypto"
	"github.com/abdelwahed/go-task-keeper/internal/store"
	"github.com/abdelwahed/go-task-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../agent/service_mock_test.go -package=agent

// AuthService manages accounts and the single process-wide session.
type AuthService interface {
	// Register creates an account: salted password hash plus a fresh,
	// unique KDF salt. It does not log the user in.
	Register(ctx context.Context, username, password string) (models.User, error)

	// Login verifies credentials and unlocks the session key. The error
	// for an unknown user is indistinguishable from a wrong password.
	Login(ctx context.Context, username, password string) (crypto.Session, error)

	// Logout locks the session and purges key material. Safe to call
	// when already logged out.
	Logout()

	// CurrentUser returns the active session descriptor or
	// [crypto.ErrNotAuthenticated].
	CurrentUser() (crypto.Session, error)

	// ChangePassword re-hashes the credential and re-encrypts every
	// envelope the user owns under the newly derived key.
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
}

// TaskInput carries the caller-supplied fields of a new task.
type TaskInput struct {
	Title       string
	Description string
	DueDate     string
	Category    string
	Priority    models.TaskPriority
}

// TaskService exposes task CRUD over encrypted storage. Every method
// requires an active session and checks ownership.
type TaskService interface {
	CreateTask(ctx context.Context, input TaskInput) (models.TaskView, error)
	ListTasks(ctx context.Context) ([]models.TaskView, error)
	GetTask(ctx context.Context, taskID int64) (models.TaskView, error)
	EditTask(ctx context.Context, taskID int64, update models.TaskUpdate) (models.TaskView, error)
	MarkDone(ctx context.Context, taskID int64) (models.TaskView, error)
	DeleteTask(ctx context.Context, taskID int64) error
}

// NoteService exposes note CRUD; access control follows the owning task.
type NoteService interface {
	AddNote(ctx context.Context, taskID int64, content string) (models.TaskNoteView, error)
	ListNotes(ctx context.Context, taskID int64) ([]models.TaskNoteView, error)
	EditNote(ctx context.Context, noteID int64, content string) (models.TaskNoteView, error)
	DeleteNote(ctx context.Context, noteID int64) error
}

// Services bundles the application services over one set of repositories
// and one crypto core.
type Services struct {
	Auth  AuthService
	Tasks TaskService
	Notes NoteService
}

// NewServices wires all services to the given repositories and crypto
// components.
func NewServices(repos *store.Repositories, tx store.Transactor, keys *crypto.KeyManager, hasher *crypto.PasswordHasher, cryptoSvc *crypto.CryptoService) *Services {
	return &Services{
		Auth:  NewAuthService(repos.Users, repos.Tasks, repos.Notes, tx, keys, hasher, cryptoSvc),
		Tasks: NewTaskService(repos.Tasks, keys, cryptoSvc),
		Notes: NewNoteService(repos.Notes, repos.Tasks, keys, cryptoSvc),
	}
}

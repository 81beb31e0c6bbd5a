package models

import "time"

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending   TaskStatus = "PENDING"
	StatusCompleted TaskStatus = "COMPLETED"
)

// TaskPriority orders tasks by importance.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

// ParsePriority maps a user-supplied string onto a TaskPriority,
// defaulting to PriorityMedium for anything unrecognized.
func ParsePriority(s string) TaskPriority {
	switch TaskPriority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return TaskPriority(s)
	default:
		return PriorityMedium
	}
}

// Task is the persisted form of a task. Title and description are stored
// only as ciphertext envelope blobs; the database never sees plaintext.
type Task struct {
	TaskID  int64 `json:"-"`
	OwnerID int64 `json:"-"`

	// TitleBlob is the marshalled ciphertext envelope of the title.
	TitleBlob []byte `json:"-"`

	// DescriptionBlob is the marshalled ciphertext envelope of the
	// description, or nil when the task has none.
	DescriptionBlob []byte `json:"-"`

	Status   TaskStatus   `json:"status"`
	Priority TaskPriority `json:"priority"`
	DueDate  string       `json:"due_date,omitempty"`
	Category string       `json:"category,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Task model.
func (t Task) TableName() string {
	return "tasks"
}

// TaskView is a decrypted task as returned to callers. It exists only in
// memory on the authenticated side of the crypto boundary.
type TaskView struct {
	TaskID      int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     string       `json:"due_date,omitempty"`
	Category    string       `json:"category,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TaskUpdate carries the optional fields of an edit operation.
// Nil pointers mean "leave unchanged"; an empty *Description clears it.
type TaskUpdate struct {
	Title       *string
	Description *string
	DueDate     *string
	Category    *string
	Priority    *TaskPriority
	Status      *TaskStatus
}

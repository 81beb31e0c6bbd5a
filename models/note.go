package models

import "time"

// TaskNote is a persisted annotation attached to a task. The note body is
// stored only as a ciphertext envelope blob.
type TaskNote struct {
	NoteID int64 `json:"-"`
	TaskID int64 `json:"-"`

	// ContentBlob is the marshalled ciphertext envelope of the note body.
	ContentBlob []byte `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the TaskNote model.
func (n TaskNote) TableName() string {
	return "task_notes"
}

// TaskNoteView is a decrypted note as returned to callers.
type TaskNoteView struct {
	NoteID    int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

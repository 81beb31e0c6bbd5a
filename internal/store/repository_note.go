package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/abdelwahed/go-task-keeper/internal/logger"
	"github.com/abdelwahed/go-task-keeper/models"
)

// noteRepository is the sqlite-backed implementation of [NoteRepository].
type noteRepository struct {
	db querier
}

// NewNoteRepository constructs a [NoteRepository] backed by db.
func NewNoteRepository(db querier) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) CreateNote(ctx context.Context, note models.TaskNote) (models.TaskNote, error) {
	log := logger.FromContext(ctx)

	query, args, err := insertNoteQuery(note)
	if err != nil {
		return models.TaskNote{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.CreateNote").Msg("error: insert failed")
		return models.TaskNote{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	note.NoteID, err = result.LastInsertId()
	if err != nil {
		return models.TaskNote{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return note, nil
}

func (r *noteRepository) FindNoteByID(ctx context.Context, noteID int64) (models.TaskNote, error) {
	query, args, err := selectNoteByIDQuery(noteID)
	if err != nil {
		return models.TaskNote{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var note models.TaskNote
	row := r.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(&note.NoteID, &note.TaskID, &note.ContentBlob, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TaskNote{}, ErrNoteNotFound
		}
		return models.TaskNote{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return note, nil
}

func (r *noteRepository) FindNotesByTask(ctx context.Context, taskID int64) ([]models.TaskNote, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectNotesByTaskQuery(taskID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.FindNotesByTask").Msg("error: query failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var notes []models.TaskNote
	for rows.Next() {
		var note models.TaskNote
		if err = rows.Scan(&note.NoteID, &note.TaskID, &note.ContentBlob, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		notes = append(notes, note)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return notes, nil
}

func (r *noteRepository) UpdateNote(ctx context.Context, note models.TaskNote) error {
	query, args, err := updateNoteQuery(note)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

func (r *noteRepository) DeleteNote(ctx context.Context, noteID int64) error {
	query, args, err := deleteNoteQuery(noteID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

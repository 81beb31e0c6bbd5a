package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/abdelwahed/go-task-keeper/models"
)

// Column lists shared between queries and row scanning. Order matters:
// scan destinations follow these slices.
var (
	userColumns = []string{"user_id", "username", "password_hash", "password_salt", "kdf_salt", "hash_algorithm_id", "created_at"}
	taskColumns = []string{"task_id", "owner_id", "title_blob", "description_blob", "status", "priority", "due_date", "category", "created_at", "updated_at"}
	noteColumns = []string{"note_id", "task_id", "content_blob", "created_at", "updated_at"}
)

// builder is the squirrel statement builder configured for sqlite's
// question-mark placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func insertUserQuery(user models.User) (string, []any, error) {
	return builder.
		Insert(user.TableName()).
		Columns("username", "password_hash", "password_salt", "kdf_salt", "hash_algorithm_id", "created_at").
		Values(user.Username, user.PasswordHash, user.PasswordSalt, user.KDFSalt, user.HashAlgorithmID, user.CreatedAt).
		ToSql()
}

func selectUserByUsernameQuery(username string) (string, []any, error) {
	return builder.
		Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"username": username}).
		ToSql()
}

func updateUserPasswordQuery(user models.User) (string, []any, error) {
	return builder.
		Update(user.TableName()).
		Set("password_hash", user.PasswordHash).
		Set("password_salt", user.PasswordSalt).
		Set("hash_algorithm_id", user.HashAlgorithmID).
		Where(sq.Eq{"user_id": user.UserID}).
		ToSql()
}

func insertTaskQuery(task models.Task) (string, []any, error) {
	return builder.
		Insert(task.TableName()).
		Columns("owner_id", "title_blob", "description_blob", "status", "priority", "due_date", "category", "created_at", "updated_at").
		Values(task.OwnerID, task.TitleBlob, task.DescriptionBlob, task.Status, task.Priority, task.DueDate, task.Category, task.CreatedAt, task.UpdatedAt).
		ToSql()
}

func selectTaskByIDQuery(taskID int64) (string, []any, error) {
	return builder.
		Select(taskColumns...).
		From(models.Task{}.TableName()).
		Where(sq.Eq{"task_id": taskID}).
		ToSql()
}

func selectTasksByOwnerQuery(ownerID int64) (string, []any, error) {
	return builder.
		Select(taskColumns...).
		From(models.Task{}.TableName()).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("task_id").
		ToSql()
}

func updateTaskQuery(task models.Task) (string, []any, error) {
	return builder.
		Update(task.TableName()).
		Set("title_blob", task.TitleBlob).
		Set("description_blob", task.DescriptionBlob).
		Set("status", task.Status).
		Set("priority", task.Priority).
		Set("due_date", task.DueDate).
		Set("category", task.Category).
		Set("updated_at", task.UpdatedAt).
		Where(sq.Eq{"task_id": task.TaskID}).
		ToSql()
}

func deleteTaskQuery(taskID int64) (string, []any, error) {
	return builder.
		Delete(models.Task{}.TableName()).
		Where(sq.Eq{"task_id": taskID}).
		ToSql()
}

func insertNoteQuery(note models.TaskNote) (string, []any, error) {
	return builder.
		Insert(note.TableName()).
		Columns("task_id", "content_blob", "created_at", "updated_at").
		Values(note.TaskID, note.ContentBlob, note.CreatedAt, note.UpdatedAt).
		ToSql()
}

func selectNoteByIDQuery(noteID int64) (string, []any, error) {
	return builder.
		Select(noteColumns...).
		From(models.TaskNote{}.TableName()).
		Where(sq.Eq{"note_id": noteID}).
		ToSql()
}

func selectNotesByTaskQuery(taskID int64) (string, []any, error) {
	return builder.
		Select(noteColumns...).
		From(models.TaskNote{}.TableName()).
		Where(sq.Eq{"task_id": taskID}).
		OrderBy("note_id").
		ToSql()
}

func updateNoteQuery(note models.TaskNote) (string, []any, error) {
	return builder.
		Update(note.TableName()).
		Set("content_blob", note.ContentBlob).
		Set("updated_at", note.UpdatedAt).
		Where(sq.Eq{"note_id": note.NoteID}).
		ToSql()
}

func deleteNoteQuery(noteID int64) (string, []any, error) {
	return builder.
		Delete(models.TaskNote{}.TableName()).
		Where(sq.Eq{"note_id": noteID}).
		ToSql()
}

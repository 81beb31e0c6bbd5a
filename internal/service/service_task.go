// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/abdelwahed/go-task-keeper/internal/crypto"
	"github.com/abdelwahed/go-task-keeper/internal/logger"
	"github.com/abdelwahed/go-task-keeper/internal/store"
	"github.com/abdelwahed/go-task-keeper/models"
)

// taskService is the concrete implementation of [TaskService]. Plaintext
// exists only on this side of the repository boundary: titles and
// descriptions are sealed before persistence and opened on read.
type taskService struct {
	tasks  store.TaskRepository
	keys   *crypto.KeyManager
	crypto *crypto.CryptoService
}

// NewTaskService constructs a [TaskService].
func NewTaskService(tasks store.TaskRepository, keys *crypto.KeyManager, cryptoSvc *crypto.CryptoService) TaskService {
	return &taskService{tasks: tasks, keys: keys, crypto: cryptoSvc}
}

func (s *taskService) CreateTask(ctx context.Context, input TaskInput) (models.TaskView, error) {
	log := logger.FromContext(ctx)

	session, err := s.keys.Session()
	if err != nil {
		return models.TaskView{}, err
	}
	if input.Title == "" {
		return models.TaskView{}, ErrInvalidDataProvided
	}
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}

	titleBlob, err := s.crypto.Protect(input.Title)
	if err != nil {
		return models.TaskView{}, fmt.Errorf("encrypt title: %w", err)
	}
	var descriptionBlob []byte
	if input.Description != "" {
		if descriptionBlob, err = s.crypto.Protect(input.Description); err != nil {
			return models.TaskView{}, fmt.Errorf("encrypt description: %w", err)
		}
	}

	now := time.Now().UTC()
	task := models.Task{
		OwnerID:         session.UserID,
		TitleBlob:       titleBlob,
		DescriptionBlob: descriptionBlob,
		Status:          models.StatusPending,
		Priority:        input.Priority,
		DueDate:         input.DueDate,
		Category:        input.Category,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.tasks.CreateTask(ctx, task)
	if err != nil {
		log.Err(err).Msg("task creation ended with error")
		return models.TaskView{}, fmt.Errorf("task creation ended with error: %w", err)
	}

	return s.decryptTask(created)
}

func (s *taskService) ListTasks(ctx context.Context) ([]models.TaskView, error) {
	session, err := s.keys.Session()
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.FindTasksByOwner(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	views := make([]models.TaskView, 0, len(tasks))
	for _, task := range tasks {
		view, err := s.decryptTask(task)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, nil
}

func (s *taskService) GetTask(ctx context.Context, taskID int64) (models.TaskView, error) {
	task, err := s.ownedTask(ctx, taskID)
	if err != nil {
		return models.TaskView{}, err
	}
	return s.decryptTask(task)
}

func (s *taskService) EditTask(ctx context.Context, taskID int64, update models.TaskUpdate) (models.TaskView, error) {
	task, err := s.ownedTask(ctx, taskID)
	if err != nil {
		return models.TaskView{}, err
	}

	if update.Title != nil && *update.Title != "" {
		if task.TitleBlob, err = s.crypto.Protect(*update.Title); err != nil {
			return models.TaskView{}, fmt.Errorf("encrypt title: %w", err)
		}
	}
	if update.Description != nil {
		if *update.Description == "" {
			task.DescriptionBlob = nil
		} else if task.DescriptionBlob, err = s.crypto.Protect(*update.Description); err != nil {
			return models.TaskView{}, fmt.Errorf("encrypt description: %w", err)
		}
	}
	if update.DueDate != nil {
		task.DueDate = *update.DueDate
	}
	if update.Category != nil {
		task.Category = *update.Category
	}
	if update.Priority != nil {
		task.Priority = *update.Priority
	}
	if update.Status != nil {
		task.Status = *update.Status
	}
	task.UpdatedAt = time.Now().UTC()

	if err = s.tasks.UpdateTask(ctx, task); err != nil {
		return models.TaskView{}, fmt.Errorf("update task: %w", err)
	}

	return s.decryptTask(task)
}

func (s *taskService) MarkDone(ctx context.Context, taskID int64) (models.TaskView, error) {
	status := models.StatusCompleted
	return s.EditTask(ctx, taskID, models.TaskUpdate{Status: &status})
}

func (s *taskService) DeleteTask(ctx context.Context, taskID int64) error {
	if _, err := s.ownedTask(ctx, taskID); err != nil {
		return err
	}
	return s.tasks.DeleteTask(ctx, taskID)
}

// ownedTask loads a task and enforces that it belongs to the session
// user. Ownership failure reports [ErrAccessDenied].
func (s *taskService) ownedTask(ctx context.Context, taskID int64) (models.Task, error) {
	session, err := s.keys.Session()
	if err != nil {
		return models.Task{}, err
	}

	task, err := s.tasks.FindTaskByID(ctx, taskID)
	if err != nil {
		return models.Task{}, err
	}
	if task.OwnerID != session.UserID {
		return models.Task{}, ErrAccessDenied
	}

	return task, nil
}

func (s *taskService) decryptTask(task models.Task) (models.TaskView, error) {
	title, err := s.crypto.Reveal(task.TitleBlob)
	if err != nil {
		return models.TaskView{}, fmt.Errorf("decrypt task %d: %w", task.TaskID, err)
	}

	description := ""
	if len(task.DescriptionBlob) > 0 {
		if description, err = s.crypto.Reveal(task.DescriptionBlob); err != nil {
			return models.TaskView{}, fmt.Errorf("decrypt task %d: %w", task.TaskID, err)
		}
	}

	return models.TaskView{
		TaskID:      task.TaskID,
		Title:       title,
		Description: description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		Category:    task.Category,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abdelwahed/go-task-keeper/internal/crypto"
	"github.com/abdelwahed/go-task-keeper/internal/logger"
	"github.com/abdelwahed/go-task-keeper/internal/store"
	"github.com/abdelwahed/go-task-keeper/models"
)

// authService is the concrete implementation of [AuthService]. It owns
// account registration, the login/logout lifecycle of the single session,
// and password changes (including envelope re-encryption).
type authService struct {
	users  store.UserRepository
	tasks  store.TaskRepository
	notes  store.NoteRepository
	tx     store.Transactor
	keys   *crypto.KeyManager
	hasher *crypto.PasswordHasher
	crypto *crypto.CryptoService
}

// NewAuthService constructs an [AuthService] wired to the given
// repositories and crypto components.
func NewAuthService(users store.UserRepository, tasks store.TaskRepository, notes store.NoteRepository, tx store.Transactor, keys *crypto.KeyManager, hasher *crypto.PasswordHasher, cryptoSvc *crypto.CryptoService) AuthService {
	return &authService{
		users:  users,
		tasks:  tasks,
		notes:  notes,
		tx:     tx,
		keys:   keys,
		hasher: hasher,
		crypto: cryptoSvc,
	}
}

// Register creates a new account.
//
// The password is hashed with a fresh random salt and the user gets a
// fresh, unique KDF salt — generated here, exactly once in the account's
// lifetime. Returns the persisted user or:
//   - ErrInvalidDataProvided for an empty username or password.
//   - store.ErrUsernameTaken when the username exists.
func (a *authService) Register(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	hash, salt, err := a.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, crypto.ErrEmptyPassword) {
			return models.User{}, ErrInvalidDataProvided
		}
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	kdfSalt, err := crypto.GenerateKDFSalt()
	if err != nil {
		return models.User{}, fmt.Errorf("generate kdf salt: %w", err)
	}

	user := models.User{
		Username:        username,
		PasswordHash:    hash,
		PasswordSalt:    salt,
		KDFSalt:         kdfSalt,
		HashAlgorithmID: a.hasher.AlgorithmID(),
		CreatedAt:       time.Now().UTC(),
	}

	registered, err := a.users.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Int64("id", registered.UserID).Str("username", username).Msg("user registered")
	return registered, nil
}

// Login authenticates a user and unlocks the session key.
//
// It never distinguishes an unknown user from a wrong password: both
// report [crypto.ErrInvalidCredentials], and the unknown-user path still
// burns a full-cost hash verification so the two failures cost the same.
func (a *authService) Login(ctx context.Context, username, password string) (crypto.Session, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return crypto.Session{}, crypto.ErrInvalidCredentials
	}

	user, err := a.users.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			a.hasher.Verify(password, dummyHash, dummySalt)
			return crypto.Session{}, crypto.ErrInvalidCredentials
		}
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return crypto.Session{}, fmt.Errorf("user search by username failed: %w", err)
	}

	session, err := a.keys.Unlock(user, password)
	if err != nil {
		log.Warn().Str("username", username).Msg("login failed")
		return crypto.Session{}, err
	}

	log.Info().Int64("id", session.UserID).Msg("session unlocked")
	return session, nil
}

// Logout locks the session and purges key material.
func (a *authService) Logout() {
	a.keys.Lock()
}

// CurrentUser returns the active session descriptor.
func (a *authService) CurrentUser() (crypto.Session, error) {
	return a.keys.Session()
}

// ChangePassword rotates the user's password.
//
// The data key is derived from the password, so the rotation re-encrypts
// every envelope the user owns: decrypt all under the current session key,
// unlock under the new password, seal replacement envelopes in memory,
// then persist everything in a single transaction with the credential
// record written last. A failure anywhere rolls the whole rotation back
// and restores the old-password session, so the stored hash never accepts
// a password whose key cannot open the stored envelopes. The KDF salt
// never changes.
func (a *authService) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	log := logger.FromContext(ctx)

	session, err := a.keys.Session()
	if err != nil {
		return err
	}
	if newPassword == "" {
		return ErrInvalidDataProvided
	}

	user, err := a.users.FindUserByUsername(ctx, session.Username)
	if err != nil {
		return fmt.Errorf("load credential record: %w", err)
	}
	if !a.hasher.Verify(oldPassword, user.PasswordHash, user.PasswordSalt) {
		return crypto.ErrInvalidCredentials
	}
	origUser := user

	// Decrypt everything while the old key is still active.
	tasks, err := a.tasks.FindTasksByOwner(ctx, user.UserID)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	plainTasks := make(map[int64][2]string, len(tasks))
	plainNotes := make(map[int64]string)
	notesByTask := make(map[int64][]models.TaskNote)
	for _, task := range tasks {
		title, err := a.crypto.Reveal(task.TitleBlob)
		if err != nil {
			return fmt.Errorf("decrypt task %d: %w", task.TaskID, err)
		}
		description := ""
		if len(task.DescriptionBlob) > 0 {
			if description, err = a.crypto.Reveal(task.DescriptionBlob); err != nil {
				return fmt.Errorf("decrypt task %d: %w", task.TaskID, err)
			}
		}
		plainTasks[task.TaskID] = [2]string{title, description}

		notes, err := a.notes.FindNotesByTask(ctx, task.TaskID)
		if err != nil {
			return fmt.Errorf("load notes for task %d: %w", task.TaskID, err)
		}
		notesByTask[task.TaskID] = notes
		for _, note := range notes {
			content, err := a.crypto.Reveal(note.ContentBlob)
			if err != nil {
				return fmt.Errorf("decrypt note %d: %w", note.NoteID, err)
			}
			plainNotes[note.NoteID] = content
		}
	}

	// Build the new credential record. Nothing is persisted yet.
	hash, salt, err := a.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}
	user.PasswordHash = hash
	user.PasswordSalt = salt
	user.HashAlgorithmID = a.hasher.AlgorithmID()

	// Switch the session to the key derived from the new password. If the
	// rotation aborts from here on, the old-password session comes back.
	if _, err = a.keys.Unlock(user, newPassword); err != nil {
		return fmt.Errorf("unlock with new password: %w", err)
	}
	restoreSession := func() {
		if _, restoreErr := a.keys.Unlock(origUser, oldPassword); restoreErr != nil {
			log.Err(restoreErr).Int64("id", user.UserID).Msg("failed to restore session after aborted rotation")
		}
	}

	// Seal replacement envelopes under the new key, in memory.
	now := time.Now().UTC()
	sealedTasks := make([]models.Task, 0, len(tasks))
	sealedNotes := make([]models.TaskNote, 0, len(plainNotes))
	for _, task := range tasks {
		plain := plainTasks[task.TaskID]
		if task.TitleBlob, err = a.crypto.Protect(plain[0]); err != nil {
			restoreSession()
			return fmt.Errorf("re-encrypt task %d: %w", task.TaskID, err)
		}
		task.DescriptionBlob = nil
		if plain[1] != "" {
			if task.DescriptionBlob, err = a.crypto.Protect(plain[1]); err != nil {
				restoreSession()
				return fmt.Errorf("re-encrypt task %d: %w", task.TaskID, err)
			}
		}
		task.UpdatedAt = now
		sealedTasks = append(sealedTasks, task)

		for _, note := range notesByTask[task.TaskID] {
			if note.ContentBlob, err = a.crypto.Protect(plainNotes[note.NoteID]); err != nil {
				restoreSession()
				return fmt.Errorf("re-encrypt note %d: %w", note.NoteID, err)
			}
			note.UpdatedAt = now
			sealedNotes = append(sealedNotes, note)
		}
	}

	// Persist atomically: envelopes first, credential record last. The
	// stored hash must never outrun the envelopes its key unlocks.
	err = a.tx.WithinTx(ctx, func(repos *store.Repositories) error {
		for _, task := range sealedTasks {
			if txErr := repos.Tasks.UpdateTask(ctx, task); txErr != nil {
				return fmt.Errorf("store re-encrypted task %d: %w", task.TaskID, txErr)
			}
		}
		for _, note := range sealedNotes {
			if txErr := repos.Notes.UpdateNote(ctx, note); txErr != nil {
				return fmt.Errorf("store re-encrypted note %d: %w", note.NoteID, txErr)
			}
		}
		if txErr := repos.Users.UpdatePassword(ctx, user); txErr != nil {
			return fmt.Errorf("update credential record: %w", txErr)
		}
		return nil
	})
	if err != nil {
		restoreSession()
		return err
	}

	log.Info().Int64("id", user.UserID).Msg("password changed, envelopes re-encrypted")
	return nil
}

// Dummy credential material for the unknown-user login path. Verifying
// against it always fails, but costs the same as a real verification.
var (
	dummyHash = make([]byte, 32)
	dummySalt = make([]byte, 16)
)

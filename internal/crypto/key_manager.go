// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package crypto

import (
	"sync"
	"time"

	"github.com/abdelwahed/go-task-keeper/models"
)

// KeyManager owns the lifecycle of the active session key. It unlocks key
// material at login, holds it only in memory, and wipes it at lock time.
// All state transitions happen under a single mutex: the key material is
// shared mutable state with no safe concurrent readers during a
// lock/unlock transition.
type KeyManager struct {
	hasher  *PasswordHasher
	deriver *KeyDeriver

	// idleTimeout locks the session after a period without key use.
	// Zero disables the timer.
	idleTimeout time.Duration

	mu        sync.Mutex
	active    *DerivedKeyMaterial
	session   *Session
	idleTimer *time.Timer
}

// NewKeyManager wires a [KeyManager] to the given hasher and deriver.
// idleTimeout of zero disables idle auto-lock.
func NewKeyManager(hasher *PasswordHasher, deriver *KeyDeriver, idleTimeout time.Duration) *KeyManager {
	return &KeyManager{
		hasher:      hasher,
		deriver:     deriver,
		idleTimeout: idleTimeout,
	}
}

// Unlock verifies password against the user's credential record and, on
// success, derives the user's key material and installs it as the active
// session key. On any failure no key material is retained.
//
// A second Unlock while a session is active implicitly locks the previous
// session first, so at most one [DerivedKeyMaterial] is ever resident.
func (m *KeyManager) Unlock(user models.User, password string) (Session, error) {
	if !m.hasher.Verify(password, user.PasswordHash, user.PasswordSalt) {
		return Session{}, ErrInvalidCredentials
	}

	material, err := m.deriver.Derive(password, user.KDFSalt)
	if err != nil {
		return Session{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.wipeLocked()

	m.active = &material
	m.session = &Session{
		UserID:     user.UserID,
		Username:   user.Username,
		UnlockedAt: time.Now(),
	}
	m.armIdleTimerLocked()

	return *m.session, nil
}

// Lock wipes the active key material and clears the session. Idempotent:
// locking a locked manager is a no-op, so it is safe to defer Lock on
// every exit path.
func (m *KeyManager) Lock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wipeLocked()
}

// ActiveKey returns a caller-owned copy of the resident key material, or
// [ErrNotAuthenticated] when no session is unlocked. Each use re-arms the
// idle auto-lock timer.
//
// The copy does not alias the manager's buffers, so a concurrent Lock
// (idle timer included) cannot zero it mid-use. Callers must Wipe the
// copy as soon as the operation at hand is done.
func (m *KeyManager) ActiveKey() (*DerivedKeyMaterial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return nil, ErrNotAuthenticated
	}
	m.armIdleTimerLocked()

	return &DerivedKeyMaterial{
		EncryptionKey: append([]byte(nil), m.active.EncryptionKey...),
		AuthKey:       append([]byte(nil), m.active.AuthKey...),
	}, nil
}

// Session returns a copy of the active session descriptor, or
// [ErrNotAuthenticated] when locked.
func (m *KeyManager) Session() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return Session{}, ErrNotAuthenticated
	}
	return *m.session, nil
}

// wipeLocked zeroes and drops the active key and session. Caller holds mu.
func (m *KeyManager) wipeLocked() {
	if m.idleTimer != nil {
		m.idleTimer.Stop()
		m.idleTimer = nil
	}
	if m.active != nil {
		m.active.Wipe()
		m.active = nil
	}
	m.session = nil
}

// armIdleTimerLocked (re)starts the idle auto-lock countdown. Caller holds mu.
func (m *KeyManager) armIdleTimerLocked() {
	if m.idleTimeout <= 0 {
		return
	}
	if m.idleTimer != nil {
		m.idleTimer.Stop()
	}
	m.idleTimer = time.AfterFunc(m.idleTimeout, m.Lock)
}

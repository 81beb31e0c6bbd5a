// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
)

const (
	// MasterKeySize is the required length of the process-wide master
	// secret (AES-256 material).
	MasterKeySize = 32

	// KeySize is the length of each derived key.
	KeySize = 32

	// MinSaltSize is the minimum accepted per-user KDF salt length.
	MinSaltSize = 16

	infoEncryptionKey = "go-task-keeper/enc/v1"
	infoAuthKey       = "go-task-keeper/auth/v1"
)

// DerivedKeyMaterial is the ephemeral output of key derivation: a symmetric
// data-encryption key and a separate authentication-check key. It exists
// only in memory between unlock and lock and must never reach persistent
// storage or logs.
type DerivedKeyMaterial struct {
	// EncryptionKey is the AES-256 key used to seal and open envelopes.
	EncryptionKey []byte

	// AuthKey keys integrity-event fingerprints. Derived under a separate
	// HKDF info string, so compromising one key reveals nothing about the
	// other.
	AuthKey []byte
}

// Wipe zeroes both keys in place. Safe to call more than once.
func (k *DerivedKeyMaterial) Wipe() {
	SecureZero(k.EncryptionKey)
	SecureZero(k.AuthKey)
}

// KeyDeriver deterministically derives per-user key material from the
// process-wide master secret, the user's password, and the user's KDF salt.
// The same inputs always produce byte-identical output: the data key is
// re-derived at every login instead of being persisted anywhere.
type KeyDeriver struct {
	masterSecret []byte

	// Argon2id stretch parameters for the password input. Lighter than
	// the login hash (one iteration) because derivation runs right after
	// a full-cost password verification.
	stretchTime    uint32
	stretchMemory  uint32
	stretchThreads uint8
}

// NewKeyDeriver validates and captures the master secret. A missing or
// wrong-sized secret is a configuration error surfaced here, at startup —
// Derive itself never fails on well-formed input.
func NewKeyDeriver(masterSecret []byte) (*KeyDeriver, error) {
	if len(masterSecret) != MasterKeySize {
		return nil, ErrInvalidMasterKey
	}

	d := &KeyDeriver{
		masterSecret:   make([]byte, MasterKeySize),
		stretchTime:    1,
		stretchMemory:  64 * 1024,
		stretchThreads: 4,
	}
	copy(d.masterSecret, masterSecret)
	return d, nil
}

// Derive produces the user's [DerivedKeyMaterial] from password and
// kdfSalt. The password is first stretched with Argon2id over kdfSalt,
// then HKDF-SHA256 extracts from masterSecret ‖ stretched (salted with
// kdfSalt) and expands twice under domain-separated info strings to yield
// the 32-byte encryption key and the 32-byte auth-check key.
//
// Neither the master secret alone nor the password alone suffices to
// reproduce the output. Returns [ErrInvalidKDFSalt] for a short salt.
func (d *KeyDeriver) Derive(password string, kdfSalt []byte) (DerivedKeyMaterial, error) {
	if len(kdfSalt) < MinSaltSize {
		return DerivedKeyMaterial{}, ErrInvalidKDFSalt
	}

	stretched := argon2.IDKey([]byte(password), kdfSalt, d.stretchTime, d.stretchMemory, d.stretchThreads, KeySize)
	defer SecureZero(stretched)

	ikm := make([]byte, 0, len(d.masterSecret)+len(stretched))
	ikm = append(ikm, d.masterSecret...)
	ikm = append(ikm, stretched...)
	defer SecureZero(ikm)

	material := DerivedKeyMaterial{
		EncryptionKey: make([]byte, KeySize),
		AuthKey:       make([]byte, KeySize),
	}
	if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, kdfSalt, []byte(infoEncryptionKey)), material.EncryptionKey); err != nil {
		return DerivedKeyMaterial{}, err
	}
	if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, kdfSalt, []byte(infoAuthKey)), material.AuthKey); err != nil {
		material.Wipe()
		return DerivedKeyMaterial{}, err
	}

	return material, nil
}

// GenerateKDFSalt reads a fresh random per-user KDF salt from the OS
// CSPRNG. Called exactly once per user, at registration.
func GenerateKDFSalt() ([]byte, error) {
	salt := make([]byte, MinSaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

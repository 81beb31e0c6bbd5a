// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"io"

	"golang.org/x/crypto/argon2"
)

// AlgorithmArgon2idV1 is the hash_algorithm_id persisted with every
// credential record produced by the current parameters.
const AlgorithmArgon2idV1 = "argon2id-v1"

// PasswordHasher turns passwords into verifiable salted hashes for login.
// It is deliberately slow: Argon2id with the OWASP-recommended memory cost
// so a single hash lands around 100ms on commodity hardware.
type PasswordHasher struct {
	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target (e.g. laptop vs. CI).
	time    uint32
	memory  uint32
	threads uint8
	hashLen uint32
	saltLen int
}

// NewPasswordHasher constructs a [PasswordHasher] with:
//   - time cost:   3 iterations
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - hash length: 32 bytes
//   - salt length: 16 bytes
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{
		time:    3,
		memory:  64 * 1024, // 64 MiB
		threads: 4,
		hashLen: 32,
		saltLen: 16,
	}
}

// AlgorithmID returns the identifier persisted as hash_algorithm_id for
// hashes produced by this hasher.
func (p *PasswordHasher) AlgorithmID() string {
	return AlgorithmArgon2idV1
}

// Hash derives a salted Argon2id digest from password using a fresh random
// salt and returns both. Returns [ErrEmptyPassword] for an empty password
// or an error if the OS CSPRNG read fails.
func (p *PasswordHasher) Hash(password string) (hash, salt []byte, err error) {
	if password == "" {
		return nil, nil, ErrEmptyPassword
	}

	salt = make([]byte, p.saltLen)
	if _, err = io.ReadFull(rand.Reader, salt); err != nil {
		return nil, nil, err
	}

	hash = argon2.IDKey([]byte(password), salt, p.time, p.memory, p.threads, p.hashLen)
	return hash, salt, nil
}

// Verify recomputes the Argon2id digest of password with the stored salt
// and compares it against storedHash in constant time. It fails closed:
// malformed inputs (empty hash or salt) report false rather than erroring.
func (p *PasswordHasher) Verify(password string, storedHash, salt []byte) bool {
	if len(storedHash) == 0 || len(salt) == 0 {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, p.time, p.memory, p.threads, p.hashLen)
	return subtle.ConstantTimeCompare(computed, storedHash) == 1
}

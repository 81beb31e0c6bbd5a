// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/abdelwahed/go-task-keeper/internal/logger"
	"github.com/abdelwahed/go-task-keeper/models"
)

// CryptoService is the façade the task and note services use to protect
// field contents before they are persisted and to recover them on read.
// It holds no key material of its own: every operation fetches the active
// key from the [KeyManager], so the session boundary is enforced here.
type CryptoService struct {
	keys   *KeyManager
	logger *logger.Logger
}

// NewCryptoService wires a [CryptoService] to the given key manager.
func NewCryptoService(keys *KeyManager, log *logger.Logger) *CryptoService {
	return &CryptoService{keys: keys, logger: log}
}

// Encrypt seals plaintext into a scheme-version-1 envelope: AES-256-GCM
// under the active encryption key with a fresh random 12-byte nonce.
// Returns [ErrNotAuthenticated] when no session is unlocked.
//
// A nonce-generation failure panics: it means the OS CSPRNG is broken, and
// continuing would risk nonce reuse under the session key.
func (c *CryptoService) Encrypt(plaintext string) (models.Envelope, error) {
	material, err := c.keys.ActiveKey()
	if err != nil {
		return models.Envelope{}, err
	}
	defer material.Wipe()

	gcm, err := newGCM(material.EncryptionKey)
	if err != nil {
		return models.Envelope{}, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		panic(fmt.Sprintf("crypto: nonce generation failed: %v", err))
	}

	sealed := gcm.Seal(nil, nonce, []byte(plaintext), []byte{models.SchemeAESGCM1})
	tagStart := len(sealed) - gcm.Overhead()

	return models.Envelope{
		SchemeVersion: models.SchemeAESGCM1,
		Nonce:         nonce,
		Ciphertext:    sealed[:tagStart],
		Tag:           sealed[tagStart:],
	}, nil
}

// Decrypt opens an envelope under the active key. The authentication tag
// is verified before a single plaintext byte is released: tampering or a
// wrong key yields [ErrIntegrity] and nothing else. An unrecognized scheme
// version yields [ErrUnsupportedScheme] so future formats degrade into a
// clean version-mismatch error instead of garbage.
func (c *CryptoService) Decrypt(envelope models.Envelope) (string, error) {
	material, err := c.keys.ActiveKey()
	if err != nil {
		return "", err
	}
	defer material.Wipe()

	if envelope.SchemeVersion != models.SchemeAESGCM1 {
		return "", fmt.Errorf("%w: %d", ErrUnsupportedScheme, envelope.SchemeVersion)
	}

	gcm, err := newGCM(material.EncryptionKey)
	if err != nil {
		return "", err
	}

	sealed := make([]byte, 0, len(envelope.Ciphertext)+len(envelope.Tag))
	sealed = append(sealed, envelope.Ciphertext...)
	sealed = append(sealed, envelope.Tag...)

	plaintext, err := gcm.Open(nil, envelope.Nonce, sealed, []byte{envelope.SchemeVersion})
	if err != nil {
		// Security-relevant event: either the blob was tampered with or
		// it belongs to another user's key. Log a keyed fingerprint of
		// the envelope, never its contents.
		c.logger.Warn().
			Str("envelope", c.fingerprint(material.AuthKey, envelope)).
			Msg("envelope failed authentication check")
		return "", ErrIntegrity
	}

	return string(plaintext), nil
}

// Protect is the persistence-facing form of Encrypt: it returns the
// envelope already marshalled into a single storage blob.
func (c *CryptoService) Protect(plaintext string) ([]byte, error) {
	envelope, err := c.Encrypt(plaintext)
	if err != nil {
		return nil, err
	}
	return envelope.MarshalBinary(), nil
}

// Reveal is the persistence-facing form of Decrypt: it unpacks a storage
// blob and opens it. A blob too short to be an envelope reports
// [ErrIntegrity] — fail closed, same as a bad tag.
func (c *CryptoService) Reveal(blob []byte) (string, error) {
	envelope, err := models.UnmarshalEnvelope(blob)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIntegrity, err)
	}
	return c.Decrypt(envelope)
}

// fingerprint computes a short HMAC-SHA256 digest of the envelope keyed by
// the session's auth-check key. It identifies the offending blob in logs
// without revealing anything about the ciphertext to log readers.
func (c *CryptoService) fingerprint(authKey []byte, envelope models.Envelope) string {
	mac := hmac.New(sha256.New, authKey)
	mac.Write(envelope.MarshalBinary())
	return hex.EncodeToString(mac.Sum(nil)[:8])
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

package models

import "time"

// User represents an account entity used for authentication and key
// derivation. It carries only credential material that is safe to persist:
// the salted password hash and the public KDF salt. Derived keys never
// appear on this struct.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Username is the unique login identifier.
	Username string `json:"username"`

	// PasswordHash is the Argon2id digest of the user's password computed
	// with PasswordSalt. Used only for login verification, never for
	// encryption.
	PasswordHash []byte `json:"-"`

	// PasswordSalt is the random per-user salt consumed by the password
	// hash. Public: it is persisted alongside the hash.
	PasswordSalt []byte `json:"-"`

	// KDFSalt is the random per-user salt for data-key derivation.
	// Generated exactly once at registration; unique across users.
	KDFSalt []byte `json:"-"`

	// HashAlgorithmID names the password hashing scheme and parameters
	// the stored hash was produced with (e.g. "argon2id-v1"), so hashes
	// survive future parameter changes.
	HashAlgorithmID string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

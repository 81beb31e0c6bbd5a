package crypto

import "errors"

// Sentinel errors returned by the crypto core. Callers match them with
// [errors.Is]; none of them are ever swallowed internally.
var (
	// ErrInvalidCredentials is the AuthError for a failed unlock. It
	// deliberately does not distinguish an unknown user from a wrong
	// password; callers must surface it verbatim.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrNotAuthenticated is returned by any operation that needs the
	// active session key while no session is unlocked. Recoverable: the
	// caller should prompt for login.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrIntegrity is returned when an envelope fails its authentication
	// check — the ciphertext or tag was tampered with, or it was sealed
	// under a different key. Fatal for that decrypt call and never
	// retried with another key.
	ErrIntegrity = errors.New("ciphertext failed integrity check")

	// ErrUnsupportedScheme is returned when an envelope carries a scheme
	// version this build does not know how to decrypt.
	ErrUnsupportedScheme = errors.New("unsupported envelope scheme version")

	// ErrInvalidMasterKey indicates a missing or malformed master secret.
	// Reported at startup, before any session can exist.
	ErrInvalidMasterKey = errors.New("master key must be exactly 32 bytes")

	// ErrInvalidKDFSalt indicates a per-user KDF salt shorter than the
	// required minimum. Like the master key, this is a configuration or
	// data-corruption problem, not a user error.
	ErrInvalidKDFSalt = errors.New("kdf salt must be at least 16 bytes")

	// ErrEmptyPassword is returned when an empty password is offered for
	// hashing at registration.
	ErrEmptyPassword = errors.New("password cannot be empty")
)

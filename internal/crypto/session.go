package crypto

import "time"

// Session describes the authenticated window during which a user's derived
// key is resident in memory. It is a read-only view handed to callers; the
// key material itself stays inside the [KeyManager].
//
// The state machine has two states: locked (no session) and unlocked (one
// session). There is never more than one session per process, and the
// terminal state at process exit is locked with the key material purged.
type Session struct {
	// UserID is the identifier of the authenticated user.
	UserID int64

	// Username is the login name of the authenticated user.
	Username string

	// UnlockedAt is when the session key was derived and installed.
	UnlockedAt time.Time
}

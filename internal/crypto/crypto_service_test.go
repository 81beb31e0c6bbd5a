package crypto

import (
	"errors"
	"testing"

	"github.com/abdelwahed/go-task-keeper/internal/logger"
	"github.com/abdelwahed/go-task-keeper/models"
)

// newUnlockedService builds a crypto service with alice's session already
// unlocked, mirroring the state right after a successful login.
func newUnlockedService(t *testing.T) (*CryptoService, *KeyManager, *PasswordHasher) {
	t.Helper()

	manager, hasher := newTestManager(t, 0)
	alice := newTestCredentials(t, hasher, 1, "alice", "S3cret!")
	if _, err := manager.Unlock(alice, "S3cret!"); err != nil {
		t.Fatalf("Unlock error: %v", err)
	}

	return NewCryptoService(manager, logger.Nop()), manager, hasher
}

func TestCryptoService_RoundTrip(t *testing.T) {
	svc, _, _ := newUnlockedService(t)

	for _, plaintext := range []string{"Buy milk", "", "äöü — unicode", "line1\nline2"} {
		envelope, err := svc.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("Encrypt(%q) error: %v", plaintext, err)
		}
		if envelope.SchemeVersion != models.SchemeAESGCM1 {
			t.Fatalf("scheme version = %d, want %d", envelope.SchemeVersion, models.SchemeAESGCM1)
		}
		if len(envelope.Nonce) != 12 || len(envelope.Tag) != 16 {
			t.Fatalf("nonce/tag lengths = %d/%d, want 12/16", len(envelope.Nonce), len(envelope.Tag))
		}

		got, err := svc.Decrypt(envelope)
		if err != nil {
			t.Fatalf("Decrypt error: %v", err)
		}
		if got != plaintext {
			t.Fatalf("Decrypt = %q, want %q", got, plaintext)
		}
	}
}

func TestCryptoService_FreshNoncePerEncrypt(t *testing.T) {
	svc, _, _ := newUnlockedService(t)

	e1, err := svc.Encrypt("Buy milk")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	e2, err := svc.Encrypt("Buy milk")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if string(e1.Nonce) == string(e2.Nonce) {
		t.Fatalf("expected distinct nonces for two encryptions")
	}
	if string(e1.Ciphertext) == string(e2.Ciphertext) {
		t.Fatalf("expected distinct ciphertexts for two encryptions of the same plaintext")
	}
}

func TestCryptoService_Decrypt_TamperDetection(t *testing.T) {
	svc, _, _ := newUnlockedService(t)

	envelope, err := svc.Encrypt("Buy milk")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	flipBit := func(e models.Envelope, field string) models.Envelope {
		clone := models.Envelope{
			SchemeVersion: e.SchemeVersion,
			Nonce:         append([]byte(nil), e.Nonce...),
			Ciphertext:    append([]byte(nil), e.Ciphertext...),
			Tag:           append([]byte(nil), e.Tag...),
		}
		switch field {
		case "nonce":
			clone.Nonce[0] ^= 0x01
		case "ciphertext":
			clone.Ciphertext[0] ^= 0x01
		case "tag":
			clone.Tag[0] ^= 0x01
		}
		return clone
	}

	for _, field := range []string{"nonce", "ciphertext", "tag"} {
		_, err := svc.Decrypt(flipBit(envelope, field))
		if !errors.Is(err, ErrIntegrity) {
			t.Fatalf("Decrypt with flipped %s bit error = %v, want ErrIntegrity", field, err)
		}
	}
}

func TestCryptoService_Decrypt_UnsupportedScheme(t *testing.T) {
	svc, _, _ := newUnlockedService(t)

	envelope, err := svc.Encrypt("Buy milk")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	envelope.SchemeVersion = 99

	if _, err := svc.Decrypt(envelope); !errors.Is(err, ErrUnsupportedScheme) {
		t.Fatalf("Decrypt error = %v, want ErrUnsupportedScheme", err)
	}
}

func TestCryptoService_SessionBoundary(t *testing.T) {
	svc, manager, _ := newUnlockedService(t)

	envelope, err := svc.Encrypt("Buy milk")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	manager.Lock()

	if _, err := svc.Encrypt("after lock"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("Encrypt after lock error = %v, want ErrNotAuthenticated", err)
	}
	if _, err := svc.Decrypt(envelope); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("Decrypt after lock error = %v, want ErrNotAuthenticated", err)
	}
}

func TestCryptoService_CrossUserIsolation(t *testing.T) {
	svc, manager, hasher := newUnlockedService(t)

	envelope, err := svc.Encrypt("alice's secret")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	bob := newTestCredentials(t, hasher, 2, "bob", "hunter2")
	if _, err := manager.Unlock(bob, "hunter2"); err != nil {
		t.Fatalf("Unlock(bob) error: %v", err)
	}

	if _, err := svc.Decrypt(envelope); !errors.Is(err, ErrIntegrity) {
		t.Fatalf("Decrypt under bob's key error = %v, want ErrIntegrity", err)
	}
}

func TestCryptoService_ProtectReveal(t *testing.T) {
	svc, _, _ := newUnlockedService(t)

	blob, err := svc.Protect("Buy milk")
	if err != nil {
		t.Fatalf("Protect error: %v", err)
	}
	if len(blob) < 29 {
		t.Fatalf("blob length = %d, below minimum envelope size", len(blob))
	}

	got, err := svc.Reveal(blob)
	if err != nil {
		t.Fatalf("Reveal error: %v", err)
	}
	if got != "Buy milk" {
		t.Fatalf("Reveal = %q, want %q", got, "Buy milk")
	}
}

func TestCryptoService_Reveal_MalformedBlob(t *testing.T) {
	svc, _, _ := newUnlockedService(t)

	for _, blob := range [][]byte{nil, {}, {1, 2, 3}, make([]byte, 28)} {
		if _, err := svc.Reveal(blob); !errors.Is(err, ErrIntegrity) {
			t.Fatalf("Reveal(%d bytes) error = %v, want ErrIntegrity", len(blob), err)
		}
	}
}

// Full round trip over the storage form: seal under alice's key, reopen the
// marshalled blob after a lock/unlock cycle with the same password.
func TestCryptoService_RevealAcrossSessions(t *testing.T) {
	manager, hasher := newTestManager(t, 0)
	alice := newTestCredentials(t, hasher, 1, "alice", "S3cret!")
	svc := NewCryptoService(manager, logger.Nop())

	if _, err := manager.Unlock(alice, "S3cret!"); err != nil {
		t.Fatalf("Unlock error: %v", err)
	}
	blob, err := svc.Protect("Buy milk")
	if err != nil {
		t.Fatalf("Protect error: %v", err)
	}

	manager.Lock()
	if _, err := manager.Unlock(alice, "S3cret!"); err != nil {
		t.Fatalf("second Unlock error: %v", err)
	}

	got, err := svc.Reveal(blob)
	if err != nil {
		t.Fatalf("Reveal after relogin error: %v", err)
	}
	if got != "Buy milk" {
		t.Fatalf("Reveal = %q, want %q", got, "Buy milk")
	}
}

package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func TestPasswordHasher_Hash_FreshSaltPerCall(t *testing.T) {
	hasher := NewPasswordHasher()

	h1, s1, err := hasher.Hash("S3cret!")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	h2, s2, err := hasher.Hash("S3cret!")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	if len(h1) != 32 || len(h2) != 32 {
		t.Fatalf("hash lengths = %d, %d, want 32", len(h1), len(h2))
	}
	if len(s1) != 16 || len(s2) != 16 {
		t.Fatalf("salt lengths = %d, %d, want 16", len(s1), len(s2))
	}
	if bytes.Equal(s1, s2) {
		t.Fatalf("expected distinct salts for two registrations")
	}
	if bytes.Equal(h1, h2) {
		t.Fatalf("expected distinct hashes for same password under distinct salts")
	}
}

func TestPasswordHasher_Hash_EmptyPassword(t *testing.T) {
	hasher := NewPasswordHasher()

	_, _, err := hasher.Hash("")
	if !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("Hash(\"\") error = %v, want ErrEmptyPassword", err)
	}
}

func TestPasswordHasher_Verify(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, salt, err := hasher.Hash("S3cret!")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	if !hasher.Verify("S3cret!", hash, salt) {
		t.Fatalf("Verify rejected the correct password")
	}
	if hasher.Verify("s3cret!", hash, salt) {
		t.Fatalf("Verify accepted a wrong password")
	}
	if hasher.Verify("", hash, salt) {
		t.Fatalf("Verify accepted an empty password")
	}
}

func TestPasswordHasher_Verify_FailsClosedOnMalformedRecord(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, salt, err := hasher.Hash("S3cret!")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	if hasher.Verify("S3cret!", nil, salt) {
		t.Fatalf("Verify accepted a nil stored hash")
	}
	if hasher.Verify("S3cret!", hash, nil) {
		t.Fatalf("Verify accepted a nil salt")
	}
}

func TestPasswordHasher_AlgorithmID(t *testing.T) {
	if got := NewPasswordHasher().AlgorithmID(); got != AlgorithmArgon2idV1 {
		t.Fatalf("AlgorithmID = %q, want %q", got, AlgorithmArgon2idV1)
	}
}

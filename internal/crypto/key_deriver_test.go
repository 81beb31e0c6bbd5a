package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func testMasterSecret(fill byte) []byte {
	return bytes.Repeat([]byte{fill}, MasterKeySize)
}

func TestNewKeyDeriver_RejectsWrongSizeSecret(t *testing.T) {
	for _, size := range []int{0, 16, 31, 33, 64} {
		_, err := NewKeyDeriver(make([]byte, size))
		if !errors.Is(err, ErrInvalidMasterKey) {
			t.Fatalf("NewKeyDeriver(%d bytes) error = %v, want ErrInvalidMasterKey", size, err)
		}
	}
}

func TestKeyDeriver_Derive_Deterministic(t *testing.T) {
	deriver, err := NewKeyDeriver(testMasterSecret(0x11))
	if err != nil {
		t.Fatalf("NewKeyDeriver error: %v", err)
	}
	salt := bytes.Repeat([]byte{0xAB}, MinSaltSize)

	m1, err := deriver.Derive("S3cret!", salt)
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}
	m2, err := deriver.Derive("S3cret!", salt)
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}

	if !bytes.Equal(m1.EncryptionKey, m2.EncryptionKey) {
		t.Fatalf("expected identical encryption keys for identical inputs")
	}
	if !bytes.Equal(m1.AuthKey, m2.AuthKey) {
		t.Fatalf("expected identical auth keys for identical inputs")
	}
	if len(m1.EncryptionKey) != KeySize || len(m1.AuthKey) != KeySize {
		t.Fatalf("key lengths = %d, %d, want %d", len(m1.EncryptionKey), len(m1.AuthKey), KeySize)
	}
}

func TestKeyDeriver_Derive_DomainSeparation(t *testing.T) {
	deriver, err := NewKeyDeriver(testMasterSecret(0x11))
	if err != nil {
		t.Fatalf("NewKeyDeriver error: %v", err)
	}
	salt := bytes.Repeat([]byte{0xAB}, MinSaltSize)

	m, err := deriver.Derive("S3cret!", salt)
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}
	if bytes.Equal(m.EncryptionKey, m.AuthKey) {
		t.Fatalf("encryption key and auth key must differ")
	}
}

func TestKeyDeriver_Derive_InputSensitivity(t *testing.T) {
	deriver, err := NewKeyDeriver(testMasterSecret(0x11))
	if err != nil {
		t.Fatalf("NewKeyDeriver error: %v", err)
	}
	otherDeriver, err := NewKeyDeriver(testMasterSecret(0x22))
	if err != nil {
		t.Fatalf("NewKeyDeriver error: %v", err)
	}

	salt := bytes.Repeat([]byte{0xAB}, MinSaltSize)
	base, err := deriver.Derive("S3cret!", salt)
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}

	byPassword, err := deriver.Derive("S3cret?", salt)
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}
	bySalt, err := deriver.Derive("S3cret!", bytes.Repeat([]byte{0xCD}, MinSaltSize))
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}
	byMaster, err := otherDeriver.Derive("S3cret!", salt)
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}

	variants := map[string]DerivedKeyMaterial{
		"different password":      byPassword,
		"different salt":          bySalt,
		"different master secret": byMaster,
	}
	for name, m := range variants {
		if bytes.Equal(base.EncryptionKey, m.EncryptionKey) {
			t.Fatalf("%s produced the same encryption key", name)
		}
		if bytes.Equal(base.AuthKey, m.AuthKey) {
			t.Fatalf("%s produced the same auth key", name)
		}
	}
}

func TestKeyDeriver_Derive_RejectsShortSalt(t *testing.T) {
	deriver, err := NewKeyDeriver(testMasterSecret(0x11))
	if err != nil {
		t.Fatalf("NewKeyDeriver error: %v", err)
	}

	_, err = deriver.Derive("S3cret!", make([]byte, MinSaltSize-1))
	if !errors.Is(err, ErrInvalidKDFSalt) {
		t.Fatalf("Derive(short salt) error = %v, want ErrInvalidKDFSalt", err)
	}
}

func TestGenerateKDFSalt(t *testing.T) {
	s1, err := GenerateKDFSalt()
	if err != nil {
		t.Fatalf("GenerateKDFSalt error: %v", err)
	}
	s2, err := GenerateKDFSalt()
	if err != nil {
		t.Fatalf("GenerateKDFSalt error: %v", err)
	}

	if len(s1) != MinSaltSize || len(s2) != MinSaltSize {
		t.Fatalf("salt lengths = %d, %d, want %d", len(s1), len(s2), MinSaltSize)
	}
	if bytes.Equal(s1, s2) {
		t.Fatalf("expected distinct salts")
	}
}

func TestDerivedKeyMaterial_Wipe(t *testing.T) {
	deriver, err := NewKeyDeriver(testMasterSecret(0x11))
	if err != nil {
		t.Fatalf("NewKeyDeriver error: %v", err)
	}
	m, err := deriver.Derive("S3cret!", bytes.Repeat([]byte{0xAB}, MinSaltSize))
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}

	m.Wipe()
	m.Wipe() // double wipe must be safe

	if !bytes.Equal(m.EncryptionKey, make([]byte, KeySize)) {
		t.Fatalf("encryption key not zeroed after Wipe")
	}
	if !bytes.Equal(m.AuthKey, make([]byte, KeySize)) {
		t.Fatalf("auth key not zeroed after Wipe")
	}
}

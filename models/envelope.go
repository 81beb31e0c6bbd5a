package models

import "errors"

// Envelope layout constants for scheme version 1 (AES-256-GCM).
const (
	// SchemeAESGCM1 tags envelopes produced with AES-256-GCM and a
	// 12-byte nonce. New schemes get new version numbers; old envelopes
	// keep decrypting under the version they were written with.
	SchemeAESGCM1 byte = 1

	envelopeNonceSize = 12
	envelopeTagSize   = 16
	envelopeMinSize   = 1 + envelopeNonceSize + envelopeTagSize
)

// ErrEnvelopeMalformed is returned when a persisted blob is too short to
// contain a version byte, nonce, and authentication tag.
var ErrEnvelopeMalformed = errors.New("ciphertext envelope is malformed")

// Envelope is the persisted form of one protected field: the versioned
// bundle of nonce, ciphertext, and authentication tag. Envelopes are
// immutable once written; updates produce a replacement envelope.
type Envelope struct {
	// SchemeVersion identifies the algorithm and parameters this envelope
	// was sealed with.
	SchemeVersion byte

	// Nonce is the random per-encryption nonce. Never reused under the
	// same key.
	Nonce []byte

	// Ciphertext is the encrypted field content without the tag.
	Ciphertext []byte

	// Tag is the authentication tag verified before any plaintext is
	// released.
	Tag []byte
}

// MarshalBinary packs the envelope into a single storage blob:
// version ‖ nonce ‖ ciphertext ‖ tag.
func (e Envelope) MarshalBinary() []byte {
	blob := make([]byte, 0, 1+len(e.Nonce)+len(e.Ciphertext)+len(e.Tag))
	blob = append(blob, e.SchemeVersion)
	blob = append(blob, e.Nonce...)
	blob = append(blob, e.Ciphertext...)
	blob = append(blob, e.Tag...)
	return blob
}

// UnmarshalEnvelope splits a storage blob back into an Envelope.
// The split uses the fixed nonce and tag widths of scheme version 1;
// unknown versions are still returned intact so the crypto layer can
// report them as unsupported rather than malformed.
func UnmarshalEnvelope(blob []byte) (Envelope, error) {
	if len(blob) < envelopeMinSize {
		return Envelope{}, ErrEnvelopeMalformed
	}

	body := blob[1:]
	return Envelope{
		SchemeVersion: blob[0],
		Nonce:         body[:envelopeNonceSize],
		Ciphertext:    body[envelopeNonceSize : len(body)-envelopeTagSize],
		Tag:           body[len(body)-envelopeTagSize:],
	}, nil
}

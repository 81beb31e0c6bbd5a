package crypto

import "crypto/subtle"

// SecureZero overwrites b with zeros so key material does not linger in
// memory after release. subtle.ConstantTimeCopy keeps the compiler from
// optimizing the write away. Go's runtime may still have copied the slice
// during GC, so this narrows the exposure window rather than closing it.
func SecureZero(b []byte) {
	if len(b) == 0 {
		return
	}
	subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
}

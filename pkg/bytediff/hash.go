package bytediff

import "golang.org/x/crypto/sha3"

// hashSize is the length of the content digest embedded in a v2 container
// header.
const hashSize = 16

// ContentHash16 returns the first 16 bytes of SHAKE128(data).
func ContentHash16(data []byte) [hashSize]byte {
	var out [hashSize]byte

	h := sha3.NewShake128()
	_, _ = h.Write(data)
	_, _ = h.Read(out[:])

	return out
}

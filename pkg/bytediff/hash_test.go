package bytediff

import (
	"encoding/hex"
	"testing"
)

func Test_ContentHash16_Matches_Shake128_Test_Vector(t *testing.T) {
	t.Parallel()

	got := ContentHash16(nil)

	// First 16 bytes of SHAKE128("") per NIST FIPS 202.
	want, err := hex.DecodeString("7f9c2ba4e88f827d616045507605853e")
	if err != nil {
		t.Fatalf("decoding expected hex: %v", err)
	}

	if hex.EncodeToString(got[:]) != hex.EncodeToString(want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func Test_ContentHash16_Is_Deterministic(t *testing.T) {
	t.Parallel()

	data := []byte("hash me twice")

	a := ContentHash16(data)
	b := ContentHash16(data)

	if a != b {
		t.Fatalf("ContentHash16 not deterministic: %x != %x", a, b)
	}
}

func Test_ContentHash16_Differs_For_Different_Input(t *testing.T) {
	t.Parallel()

	a := ContentHash16([]byte("alpha"))
	b := ContentHash16([]byte("beta"))

	if a == b {
		t.Fatal("ContentHash16 collided for distinct inputs")
	}
}

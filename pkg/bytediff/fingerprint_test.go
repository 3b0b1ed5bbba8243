package bytediff

import (
	"math/rand"
	"testing"
)

func Test_Fingerprint_Matches_RollingHash_When_Window_Slides(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	data := make([]byte, 500)
	rng.Read(data)

	const p = 16

	rh := NewRollingHash(data, 0, p)

	for off := 0; off+p <= len(data); off++ {
		want := Fingerprint(data, off, p)
		if rh.Value() != want {
			t.Fatalf("offset %d: rolling=%d direct=%d", off, rh.Value(), want)
		}

		if off+p < len(data) {
			rh.Roll(data[off], data[off+p])
		}
	}
}

func Test_Fingerprint_Depends_Only_On_Window_Bytes(t *testing.T) {
	t.Parallel()

	a := []byte("the quick brown fox jumps over the lazy dog")
	b := []byte("xxxxxquick brown fox jumps over the lazy dogyyyyy")

	fa := Fingerprint(a, 4, 20)
	fb := Fingerprint(b, 5, 20)

	if fa != fb {
		t.Fatalf("fingerprints of identical windows diverged: %d != %d", fa, fb)
	}
}

func Test_IsPrime_Matches_Known_Values(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    uint64
		want bool
	}{
		{0, false},
		{1, false},
		{2, true},
		{3, true},
		{4, false},
		{17, true},
		{341, false}, // Fermat pseudoprime to base 2 (11*31), rejected by small-prime trial division
		{1000003, true},
		{1048573, true}, // largest prime below 2^20
	}

	for _, tt := range tests {
		if got := IsPrime(tt.n); got != tt.want {
			t.Errorf("IsPrime(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func Test_NextPrime_Returns_Prime_Greater_Or_Equal(t *testing.T) {
	t.Parallel()

	for _, n := range []uint64{0, 1, 2, 4, 100, 1 << 20} {
		p := NextPrime(n)

		if p < n {
			t.Fatalf("NextPrime(%d) = %d, less than input", n, p)
		}

		if !IsPrime(p) {
			t.Fatalf("NextPrime(%d) = %d, not prime", n, p)
		}
	}
}

func Fuzz_Fingerprint_Matches_RollingHash(f *testing.F) {
	f.Add([]byte("some seed data used to fuzz the rolling hash invariant"), 4)

	f.Fuzz(func(t *testing.T, data []byte, p int) {
		if p <= 0 || p > len(data) {
			t.Skip()
		}

		rh := NewRollingHash(data, 0, p)

		for off := 0; off+p <= len(data); off++ {
			if rh.Value() != Fingerprint(data, off, p) {
				t.Fatalf("mismatch at offset %d", off)
			}

			if off+p < len(data) {
				rh.Roll(data[off], data[off+p])
			}
		}
	})
}

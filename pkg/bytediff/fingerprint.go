package bytediff

import "math/bits"

// Karp-Rabin polynomial constants. b is the polynomial base, M
// is the Mersenne prime 2^61-1 used as the modulus so reduction never needs
// division.
const (
	hashBase uint64 = 263
	hashMod  uint64 = (1 << 61) - 1
)

// modMersenne reduces a 128-bit product hi:lo modulo 2^61-1 using the
// Mersenne identity x mod M = (x>>61) + (x&M), applied twice, each pass
// followed by a conditional subtract. hi must be below 2^61, which holds
// for any product of two operands below 2^61. The second pass is needed
// because the first can leave a result of exactly 2^61.
func modMersenne(hi, lo uint64) uint64 {
	// x = hi*2^64 + lo. Split into 61-bit low part and the remaining high
	// bits so that x>>61 and x&M can be formed without a full 128-bit shift.
	low := lo & hashMod
	high := (hi << 3) | (lo >> 61) // (x >> 61), since 2^64 = 2^3 * 2^61
	r := low + high

	if r >= hashMod {
		r -= hashMod
	}

	low2 := r & hashMod
	high2 := r >> 61
	r2 := low2 + high2

	if r2 >= hashMod {
		r2 -= hashMod
	}

	return r2
}

// mulMod returns a*b mod (2^61-1).
func mulMod(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return modMersenne(hi, lo)
}

// Fingerprint computes the Karp-Rabin fingerprint of data[off:off+p]:
//
//	F(X) = sum(x_i * b^(p-1-i)) mod M
//
// via Horner evaluation. O(p).
func Fingerprint(data []byte, off, p int) uint64 {
	var h uint64

	for i := 0; i < p; i++ {
		h = modMersenne(bits.Mul64(h, hashBase))
		h += uint64(data[off+i])
		if h >= hashMod {
			h -= hashMod
		}
	}

	return h
}

// precomputeBP computes hashBase^(p-1) mod hashMod via square-and-multiply.
func precomputeBP(p int) uint64 {
	if p == 0 {
		return 1
	}

	result := uint64(1)
	base := hashBase
	exp := p - 1

	for exp > 0 {
		if exp&1 == 1 {
			result = mulMod(result, base)
		}

		base = mulMod(base, base)
		exp >>= 1
	}

	return result
}

// RollingHash maintains a Karp-Rabin fingerprint over a sliding window of
// fixed length p, supporting O(1) incremental updates as the window slides
// forward by one byte at a time.
type RollingHash struct {
	value uint64
	bp    uint64 // hashBase^(p-1) mod hashMod
	p     int
}

// NewRollingHash initialises a RollingHash over data[off:off+p].
func NewRollingHash(data []byte, off, p int) *RollingHash {
	return &RollingHash{
		value: Fingerprint(data, off, p),
		bp:    precomputeBP(p),
		p:     p,
	}
}

// Value returns the fingerprint of the window the RollingHash currently
// represents.
func (r *RollingHash) Value() uint64 { return r.value }

// SeedLen returns the window length p this RollingHash was created with.
func (r *RollingHash) SeedLen() int { return r.p }

// Roll slides the window forward by one byte: old leaves on the left, new
// enters on the right.
//
//	F(X_(i+1)) = ((F(X_i) - old*b^(p-1)) * b + new) mod M
//
// The subtraction is done modularly: if it would underflow, M is added back
// before continuing.
func (r *RollingHash) Roll(old, new byte) {
	sub := mulMod(uint64(old), r.bp)

	var v uint64
	if r.value >= sub {
		v = r.value - sub
	} else {
		v = hashMod - (sub - r.value)
	}

	r.value = modMersenne(bits.Mul64(v, hashBase))
	r.value += uint64(new)

	if r.value >= hashMod {
		r.value -= hashMod
	}
}

// millerRabinWitnesses is the fixed 12-witness set {2,3,...,37} that makes
// Miller-Rabin deterministic and correct for all n < 3.3e24 (Jaeschke 1993).
var millerRabinWitnesses = []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

// IsPrime reports whether n is prime using deterministic Miller-Rabin over
// millerRabinWitnesses.
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}

	for _, small := range []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37} {
		if n == small {
			return true
		}

		if n%small == 0 {
			return false
		}
	}

	// Write n-1 = d * 2^s with d odd.
	d := n - 1
	s := 0

	for d%2 == 0 {
		d /= 2
		s++
	}

	for _, a := range millerRabinWitnesses {
		if a >= n {
			continue
		}

		if !millerRabinWitnessPasses(n, d, s, a) {
			return false
		}
	}

	return true
}

func millerRabinWitnessPasses(n, d uint64, s int, a uint64) bool {
	x := modPow(a, d, n)
	if x == 1 || x == n-1 {
		return true
	}

	for i := 0; i < s-1; i++ {
		x = modPowMulSelf(x, n)
		if x == n-1 {
			return true
		}
	}

	return false
}

// modPow computes base^exp mod m using 128-bit-safe multiplication.
func modPow(base, exp, m uint64) uint64 {
	result := uint64(1)
	base %= m

	for exp > 0 {
		if exp&1 == 1 {
			result = mulModGeneric(result, base, m)
		}

		base = mulModGeneric(base, base, m)
		exp >>= 1
	}

	return result
}

func modPowMulSelf(x, m uint64) uint64 {
	return mulModGeneric(x, x, m)
}

// mulModGeneric returns a*b mod m for an arbitrary modulus m (not
// necessarily the Mersenne prime), using the full 128-bit product so it
// never overflows regardless of m's size.
func mulModGeneric(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi%m, lo, m)

	return rem
}

// NextPrime returns the smallest prime >= n.
func NextPrime(n uint64) uint64 {
	if n <= 2 {
		return 2
	}

	if n%2 == 0 {
		n++
	}

	for !IsPrime(n) {
		n += 2
	}

	return n
}

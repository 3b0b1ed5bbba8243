package bytediff

import (
	"fmt"
	"io"
)

// Algorithm selects one of the three differencing algorithms of Ajtai,
// Burns, Fagin, Long and Stockmeyer (JACM 2002).
type Algorithm int

const (
	// Greedy is optimal under the simple cost model (Theorem 1) but
	// O(|V|*|R|) worst case.
	Greedy Algorithm = iota
	// OnePass is linear-time and constant-space but cannot capture
	// transpositions between R and V.
	OnePass
	// Correcting is the 1.5-pass algorithm with checkpointing and tail
	// correction; captures transpositions one-pass cannot.
	Correcting
)

// defaultSeedLen is the default p (seed/window length).
const defaultSeedLen = 16

// defaultBufCap is the default capacity of the correcting algorithm's
// encoding lookback buffer.
const defaultBufCap = 256

// defaultTableSize is the default floor for auto-sized hash tables: the
// largest prime below 2^20.
var defaultTableSize = func() uint64 {
	n := uint64(1) << 20
	for {
		n--
		if IsPrime(n) {
			return n
		}
	}
}()

// DiffOptions configures a differencing run.
type DiffOptions struct {
	// P is the seed (window) length. Must be >= 1.
	P int
	// Q is the hash-table floor size. Auto-sizing rounds up to a prime.
	Q int
	// BufCap is the correcting algorithm's lookback buffer capacity.
	BufCap int
	// MaxTable is a hard cap on the auto-sized table (safety ceiling). 0
	// means no cap.
	MaxTable int
	// UseSplay replaces the open-addressing table with a splay tree.
	UseSplay bool
	// Verbose, when non-nil, receives diagnostic counters.
	Verbose io.Writer
}

// DefaultOptions returns the default DiffOptions: p=16, q=largest prime
// below 2^20, buf_cap=256.
func DefaultOptions() DiffOptions {
	return DiffOptions{
		P:      defaultSeedLen,
		Q:      int(defaultTableSize),
		BufCap: defaultBufCap,
	}
}

func (o DiffOptions) verbosef(format string, args ...any) {
	if o.Verbose == nil {
		return
	}

	fmt.Fprintf(o.Verbose, format, args...)
}

// CyclePolicy selects how the in-place scheduler breaks CRWI cycles.
type CyclePolicy int

const (
	// Constant converts the first not-yet-removed copy in command order —
	// fastest, any victim.
	Constant CyclePolicy = iota
	// Localmin finds a cycle and converts its smallest copy. The choice is
	// local to each stall: the total bytes converted can exceed Constant's
	// on some inputs.
	Localmin
)

// autoTableSize computes the one-pass algorithm's auto-sized hash table
// capacity: max(q, numSeeds/p) rounded up to a prime, capped by maxTable if
// set.
func autoTableSize(q, numSeeds, p, maxTable int) int {
	return roundedTableSize(q, numSeeds, p, 1, maxTable)
}

// correctingTableSize computes the correcting algorithm's auto-sized hash
// table capacity: next_prime(max(q, 2*numSeeds/p)).
func correctingTableSize(q, numSeeds, p, maxTable int) int {
	return roundedTableSize(q, numSeeds, p, 2, maxTable)
}

func roundedTableSize(q, numSeeds, p, numerator, maxTable int) int {
	floor := q
	if p > 0 && (numerator*numSeeds)/p > floor {
		floor = (numerator * numSeeds) / p
	}

	size := int(NextPrime(uint64(floor)))
	if maxTable > 0 && size > maxTable {
		size = maxTable
	}

	if size < 1 {
		size = 1
	}

	return size
}

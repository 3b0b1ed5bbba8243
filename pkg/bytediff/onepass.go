package bytediff

import "bytes"

// rollingScanner tracks a RollingHash alongside the position it currently
// represents: a forward-by-1 step rolls, a jump (after a match lands the
// scanner several bytes ahead) reinitialises.
type rollingScanner struct {
	rh  *RollingHash
	pos int
}

func newRollingScanner(data []byte, p int) *rollingScanner {
	if len(data) < p {
		return nil
	}

	return &rollingScanner{rh: NewRollingHash(data, 0, p), pos: 0}
}

// fingerprintAt returns the fingerprint of data[target:target+p], rolling
// or reinitialising the scanner as needed.
func (s *rollingScanner) fingerprintAt(data []byte, target int) uint64 {
	switch target {
	case s.pos:
		// already there
	case s.pos + 1:
		s.rh.Roll(data[target-1], data[target+s.rh.SeedLen()-1])
		s.pos = target
	default:
		s.rh = NewRollingHash(data, target, s.rh.SeedLen())
		s.pos = target
	}

	return s.rh.Value()
}

// diffOnePass implements the One-Pass algorithm (Ajtai et al. §4.1):
// concurrent scan of R and V, each maintaining its own fingerprint map with
// retain-existing insertion and next-match logical flushing via a global
// version counter. Cannot capture a block pair that appears in inverse
// order in R vs V, since the R seed is inserted only after V has already
// passed its mate (§4.3).
func diffOnePass(r, v []byte, opts DiffOptions) []Command {
	var commands []Command

	if len(v) == 0 {
		return commands
	}

	p := opts.P

	numSeeds := 0
	if len(r) >= p {
		numSeeds = len(r) - p + 1
	}

	q := autoTableSize(opts.Q, numSeeds, p, opts.MaxTable)

	opts.verbosef("onepass: q=%d |R|=%d |V|=%d p=%d\n", q, len(r), len(v), p)

	hV := newFingerprintMap(opts.UseSplay, q)
	hR := newFingerprintMap(opts.UseSplay, q)

	var ver uint64

	rc, vc, vs := 0, 0, 0

	var scanV, scanR *rollingScanner
	if len(v) >= p {
		scanV = newRollingScanner(v, p)
	}

	if len(r) >= p {
		scanR = newRollingScanner(r, p)
	}

	for {
		canV := vc+p <= len(v)
		canR := rc+p <= len(r)

		if !canV && !canR {
			break
		}

		var fpV, fpR uint64

		haveV, haveR := false, false

		if canV {
			fpV = scanV.fingerprintAt(v, vc)
			haveV = true
		}

		if canR {
			fpR = scanR.fingerprintAt(r, rc)
			haveR = true
		}

		// Step (4a): store offsets under retain-existing / next-match flush.
		// Vacancy is a slot-level, version-only notion: a seed whose
		// fingerprint collides into a slot already claimed this version is
		// dropped, it must not evict the first occupant.
		if haveV {
			hV.insertIfVacant(fpV, seedEntry{offset: vc, version: ver})
		}

		if haveR {
			hR.insertIfVacant(fpR, seedEntry{offset: rc, version: ver})
		}

		// Step (4b): look for a matching seed in the opposite table.
		matched := false

		var rM, vM int

		if haveR {
			if cand, ok := hV.find(fpR); ok && cand.version == ver {
				if bytes.Equal(r[rc:rc+p], v[cand.offset:cand.offset+p]) {
					rM, vM = rc, cand.offset
					matched = true
				}
			}
		}

		if !matched && haveV {
			if cand, ok := hR.find(fpV); ok && cand.version == ver {
				if bytes.Equal(v[vc:vc+p], r[cand.offset:cand.offset+p]) {
					vM, rM = vc, cand.offset
					matched = true
				}
			}
		}

		if !matched {
			vc++
			rc++

			continue
		}

		// Step (5): extend match forward only.
		maxExt := minInt(len(v)-vM, len(r)-rM)

		ml := maxExt
		for i := 0; i < maxExt; i++ {
			if v[vM+i] != r[rM+i] {
				ml = i
				break
			}
		}

		if vs < vM {
			commands = append(commands, AddCommand(cloneBytes(v[vs:vM])))
		}

		commands = append(commands, CopyCommand(rM, ml))
		vs = vM + ml

		vc = vM + ml
		rc = rM + ml
		ver++
	}

	if vs < len(v) {
		commands = append(commands, AddCommand(cloneBytes(v[vs:])))
	}

	return commands
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}

package bytediff

import (
	"bytes"

	"github.com/kgrange/bytediff/pkg/bytediff/internal/splay"
)

// greedyIndex is the chained fingerprint -> []offset index greedy builds
// over R. Backed either by a native Go map (the flat/default backend) or a
// splay tree keyed on fingerprint, selected by DiffOptions.UseSplay.
type greedyIndex struct {
	flat  map[uint64][]int
	splay *splay.Tree[[]int]
}

func newGreedyIndex(useSplay bool) *greedyIndex {
	if useSplay {
		return &greedyIndex{splay: splay.New[[]int]()}
	}

	return &greedyIndex{flat: make(map[uint64][]int)}
}

func (g *greedyIndex) add(fp uint64, offset int) {
	if g.splay != nil {
		existing, _ := g.splay.Find(fp)
		g.splay.Insert(fp, append(existing, offset))

		return
	}

	g.flat[fp] = append(g.flat[fp], offset)
}

func (g *greedyIndex) get(fp uint64) []int {
	if g.splay != nil {
		offsets, _ := g.splay.Find(fp)
		return offsets
	}

	return g.flat[fp]
}

// diffGreedy implements the Greedy algorithm (Ajtai et al. §3.1): for each V
// position, retrieve every R offset whose p-byte prefix fingerprint
// matches, verify by byte comparison, extend each candidate forward, and
// emit the longest (ties broken by smallest R offset, which falls out
// naturally since earlier-inserted offsets are tried first and only a
// strictly longer match replaces the current best).
func diffGreedy(r, v []byte, opts DiffOptions) []Command {
	var commands []Command

	if len(v) == 0 {
		return commands
	}

	p := opts.P

	index := newGreedyIndex(opts.UseSplay)

	if len(r) >= p {
		rh := NewRollingHash(r, 0, p)
		index.add(rh.Value(), 0)

		for a := 1; a <= len(r)-p; a++ {
			rh.Roll(r[a-1], r[a+p-1])
			index.add(rh.Value(), a)
		}
	}

	vc, vs := 0, 0

	for vc+p <= len(v) {
		fp := Fingerprint(v, vc, p)

		bestOffset, bestLen := -1, 0

		for _, cand := range index.get(fp) {
			if !bytes.Equal(r[cand:cand+p], v[vc:vc+p]) {
				continue
			}

			ml := p
			for vc+ml < len(v) && cand+ml < len(r) && v[vc+ml] == r[cand+ml] {
				ml++
			}

			if ml > bestLen {
				bestLen = ml
				bestOffset = cand
			}
		}

		if bestLen == 0 {
			vc++
			continue
		}

		if vs < vc {
			commands = append(commands, AddCommand(cloneBytes(v[vs:vc])))
		}

		commands = append(commands, CopyCommand(bestOffset, bestLen))
		vs = vc + bestLen
		vc += bestLen
	}

	if vs < len(v) {
		commands = append(commands, AddCommand(cloneBytes(v[vs:])))
	}

	return commands
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)

	return out
}

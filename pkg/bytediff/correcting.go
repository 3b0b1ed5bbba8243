package bytediff

import "bytes"

// rTableSlot is one slot of the correcting algorithm's checkpointed R table:
// full fingerprint plus the offset it was first seen at (first-found
// policy — unlike one-pass, this table is never flushed).
type rTableSlot struct {
	fp   uint64
	off  int
	used bool
}

// bufEntry is one encoding-lookback-buffer entry. Tail correction needs to
// inspect and rewrite recently emitted commands before they are finally
// flushed, so each entry keeps the V interval its command covers.
type bufEntry struct {
	vStart, vEnd int
	cmd          Command
	dummy        bool
}

// checkpoint bundles the parameters of the footprint-filtering scheme of
// Ajtai et al. §8: a seed is admitted to (or looked up in) the table iff
// (fp mod fpMod) mod stride == class; its slot is (fp mod fpMod) / stride.
type checkpoint struct {
	cap    int
	fpMod  uint64
	stride uint64
	class  uint64
}

func (c checkpoint) slot(fp uint64) (idx int, ok bool) {
	if c.stride <= 1 {
		return int(fp % uint64(c.cap)), true
	}

	f := fp % c.fpMod
	if f%c.stride != c.class {
		return 0, false
	}

	return int(f / c.stride), true
}

// newCheckpoint derives the checkpoint parameters for an R of the given
// seed count and a table capacity cap. class is chosen by fingerprinting a
// single offset near the middle of v, biasing the filter so V's typical
// seeds survive it. A pathological V can pick a poor class; the heuristic
// is kept simple on purpose.
func newCheckpoint(numSeeds, p, cap int, v []byte) checkpoint {
	fpMod := uint64(1)
	if numSeeds > 0 {
		fpMod = NextPrime(uint64(2 * numSeeds))
	}

	stride := uint64(1)
	if cap > 0 {
		stride = (fpMod + uint64(cap) - 1) / uint64(cap)
	}

	if stride < 1 {
		stride = 1
	}

	var class uint64
	if stride > 1 && len(v) >= p {
		mid := (len(v) - p) / 2

		class = Fingerprint(v, mid, p) % fpMod % stride
	}

	return checkpoint{cap: cap, fpMod: fpMod, stride: stride, class: class}
}

// diffCorrecting implements the Correcting 1.5-Pass algorithm (Ajtai et al.
// §5-§8): pass one indexes R under first-found policy through a
// checkpoint-filtered table; pass two scans V, extends every admitted match
// both forward and backward, and buffers recently emitted commands so a
// later, better match can retroactively correct (or fully absorb) them
// before they are flushed.
func diffCorrecting(r, v []byte, opts DiffOptions) []Command {
	var commands []Command

	if len(v) == 0 {
		return commands
	}

	p := opts.P

	numSeeds := 0
	if len(r) >= p {
		numSeeds = len(r) - p + 1
	}

	cap := correctingTableSize(opts.Q, numSeeds, p, opts.MaxTable)
	cp := newCheckpoint(numSeeds, p, cap, v)

	opts.verbosef("correcting: |C|=%d |F|=%d m=%d k=%d\n", cap, cp.fpMod, cp.stride, cp.class)

	table := make([]rTableSlot, cap)

	if numSeeds > 0 {
		for a := 0; a <= len(r)-p; a++ {
			fp := Fingerprint(r, a, p)

			idx, ok := cp.slot(fp)
			if !ok {
				continue
			}

			if !table[idx].used {
				table[idx] = rTableSlot{fp: fp, off: a, used: true}
			}
		}
	}

	buf := newLookbackBuf(opts.BufCap, &commands)

	vc, vs := 0, 0

	for vc+p <= len(v) {
		fpV := Fingerprint(v, vc, p)

		idx, ok := cp.slot(fpV)
		if !ok {
			vc++
			continue
		}

		slot := table[idx]
		if !slot.used || slot.fp != fpV {
			vc++
			continue
		}

		rCand := slot.off
		if !bytes.Equal(r[rCand:rCand+p], v[vc:vc+p]) {
			vc++
			continue
		}

		// Bidirectional extension.
		fwd := p
		for vc+fwd < len(v) && rCand+fwd < len(r) && v[vc+fwd] == r[rCand+fwd] {
			fwd++
		}

		bwd := 0
		for vc >= bwd+1 && rCand >= bwd+1 && v[vc-bwd-1] == r[rCand-bwd-1] {
			bwd++
		}

		vM := vc - bwd
		rM := rCand - bwd
		ml := bwd + fwd
		matchEnd := vM + ml

		if vs <= vM {
			if vs < vM {
				buf.push(bufEntry{vStart: vs, vEnd: vM, cmd: AddCommand(cloneBytes(v[vs:vM]))})
			}

			buf.push(bufEntry{vStart: vM, vEnd: matchEnd, cmd: CopyCommand(rM, ml)})
		} else {
			effectiveStart := buf.correctTail(v, vM, matchEnd, vs)

			adj := effectiveStart - vM
			newLen := matchEnd - effectiveStart

			if newLen > 0 {
				buf.push(bufEntry{vStart: effectiveStart, vEnd: matchEnd, cmd: CopyCommand(rM+adj, newLen)})
			}
		}

		vs = matchEnd
		vc = matchEnd
	}

	buf.flush()

	if vs < len(v) {
		commands = append(commands, AddCommand(cloneBytes(v[vs:])))
	}

	return commands
}

// lookbackBuf is the correcting algorithm's bounded FIFO of not-yet-final
// commands: pushing past capacity flushes the oldest entry to the output
// stream, and a later match overlapping the buffered tail can rewrite or
// drop entries before they are ever flushed.
type lookbackBuf struct {
	entries  []bufEntry
	cap      int
	commands *[]Command
}

func newLookbackBuf(cap int, commands *[]Command) *lookbackBuf {
	if cap < 1 {
		cap = 1
	}

	return &lookbackBuf{cap: cap, commands: commands}
}

func (b *lookbackBuf) push(e bufEntry) {
	if len(b.entries) >= b.cap {
		oldest := b.entries[0]
		b.entries = b.entries[1:]

		if !oldest.dummy {
			*b.commands = append(*b.commands, oldest.cmd)
		}
	}

	b.entries = append(b.entries, e)
}

func (b *lookbackBuf) flush() {
	for _, e := range b.entries {
		if !e.dummy {
			*b.commands = append(*b.commands, e.cmd)
		}
	}

	b.entries = nil
}

// correctTail implements tail correction (Ajtai et al. §5.1): a match that
// extends backward past vs overlaps previously buffered entries. Entries
// wholly inside the new match are absorbed (dropped); a partially
// overlapping Add is trimmed; a partially overlapping Copy is left alone
// (reclaiming part of a copy is not attempted) and stops the walk. Returns
// the effective start of the new combined match.
func (b *lookbackBuf) correctTail(v []byte, vM, matchEnd, vs int) int {
	effectiveStart := vs

	for len(b.entries) > 0 {
		tail := &b.entries[len(b.entries)-1]

		if tail.dummy {
			b.entries = b.entries[:len(b.entries)-1]
			continue
		}

		switch {
		case tail.vStart >= vM && tail.vEnd <= matchEnd:
			if tail.vStart < effectiveStart {
				effectiveStart = tail.vStart
			}

			b.entries = b.entries[:len(b.entries)-1]

		case tail.vEnd > vM && tail.vStart < vM:
			if tail.cmd.Kind == KindAdd {
				keep := vM - tail.vStart
				if keep > 0 {
					tail.cmd = AddCommand(cloneBytes(v[tail.vStart:vM]))
					tail.vEnd = vM
				} else {
					b.entries = b.entries[:len(b.entries)-1]
				}

				if vM < effectiveStart {
					effectiveStart = vM
				}
			}

			return effectiveStart

		default:
			return effectiveStart
		}
	}

	return effectiveStart
}

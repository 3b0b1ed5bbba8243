package bytediff

import "github.com/kgrange/bytediff/pkg/bytediff/internal/splay"

// seedEntry is the value type stored by the one-pass algorithm's ordered
// fingerprint maps: the offset a seed was found at, and the scan "version"
// active when it was inserted. Comparing versions on lookup gives an O(1)
// logical flush of both maps after every match.
type seedEntry struct {
	offset  int
	version uint64
}

// fingerprintMap is the capability set both map backends satisfy: find,
// insertOrGet (first-found / retain-existing), insert (overwrite),
// insertIfVacant (version-guarded put), len. Realised as either a flat
// open-addressing slot array or a splay tree, selected by
// DiffOptions.UseSplay.
type fingerprintMap interface {
	find(fp uint64) (seedEntry, bool)
	insertOrGet(fp uint64, v seedEntry) seedEntry
	insert(fp uint64, v seedEntry)
	insertIfVacant(fp uint64, v seedEntry)
	len() int
}

// flatSlot is one entry of the open-addressing table. version ==
// emptyVersion marks a slot that has never been written; a logically
// flushed slot keeps its old version and is recognised by version
// comparison.
type flatSlot struct {
	fp    uint64
	value seedEntry
}

const emptyVersion = ^uint64(0)

// flatMap is the open-addressing fingerprint map backend: one modular
// reduction and one cache miss per access, no collision chaining. A
// colliding insertOrGet silently loses to whatever already occupies the
// slot (retain-existing / first-found).
type flatMap struct {
	slots []flatSlot
	size  int
}

func newFlatMap(capacity int) *flatMap {
	slots := make([]flatSlot, capacity)
	for i := range slots {
		slots[i].value.version = emptyVersion
	}

	return &flatMap{slots: slots}
}

func (m *flatMap) idx(fp uint64) int { return int(fp % uint64(len(m.slots))) }

func (m *flatMap) find(fp uint64) (seedEntry, bool) {
	s := &m.slots[m.idx(fp)]
	if s.value.version == emptyVersion || s.fp != fp {
		return seedEntry{}, false
	}

	return s.value, true
}

func (m *flatMap) insertOrGet(fp uint64, v seedEntry) seedEntry {
	s := &m.slots[m.idx(fp)]
	if s.value.version == emptyVersion {
		*s = flatSlot{fp: fp, value: v}
		m.size++

		return v
	}

	return s.value
}

func (m *flatMap) insert(fp uint64, v seedEntry) {
	s := &m.slots[m.idx(fp)]
	if s.value.version == emptyVersion {
		m.size++
	}

	*s = flatSlot{fp: fp, value: v}
}

// insertIfVacant stores v only if the slot is vacant, where vacancy is
// decided purely by version: a slot claimed in v's version stays as-is even
// when the incoming fingerprint differs (same-index collisions drop the
// later seed, not the first), while an empty or stale-version slot is
// overwritten.
func (m *flatMap) insertIfVacant(fp uint64, v seedEntry) {
	s := &m.slots[m.idx(fp)]
	if s.value.version == v.version {
		return
	}

	if s.value.version == emptyVersion {
		m.size++
	}

	*s = flatSlot{fp: fp, value: v}
}

func (m *flatMap) len() int { return m.size }

// splayFpMap adapts internal/splay.Tree to the fingerprintMap interface.
type splayFpMap struct {
	tree *splay.Tree[seedEntry]
}

func newSplayFpMap() *splayFpMap {
	return &splayFpMap{tree: splay.New[seedEntry]()}
}

func (m *splayFpMap) find(fp uint64) (seedEntry, bool) { return m.tree.Find(fp) }

func (m *splayFpMap) insertOrGet(fp uint64, v seedEntry) seedEntry {
	return m.tree.InsertOrGet(fp, v)
}

func (m *splayFpMap) insert(fp uint64, v seedEntry) { m.tree.Insert(fp, v) }

// insertIfVacant keeps an existing same-version entry for fp and otherwise
// inserts or refreshes it. The tree has no index collisions, so vacancy
// reduces to "no current-version entry under this exact fingerprint".
func (m *splayFpMap) insertIfVacant(fp uint64, v seedEntry) {
	if existing, ok := m.tree.Find(fp); ok && existing.version == v.version {
		return
	}

	m.tree.Insert(fp, v)
}

func (m *splayFpMap) len() int { return m.tree.Len() }

// newFingerprintMap constructs the configured backend. capacity is ignored
// for the splay backend (it grows on demand).
func newFingerprintMap(useSplay bool, capacity int) fingerprintMap {
	if useSplay {
		return newSplayFpMap()
	}

	return newFlatMap(capacity)
}

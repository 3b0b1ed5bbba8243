package bytediff

import "testing"

func Test_FingerprintMap_InsertOrGet_Retains_First_Value(t *testing.T) {
	t.Parallel()

	for _, useSplay := range []bool{false, true} {
		m := newFingerprintMap(useSplay, 16)

		got := m.insertOrGet(5, seedEntry{offset: 1, version: 0})
		if got.offset != 1 {
			t.Fatalf("useSplay=%v: got offset %d, want 1", useSplay, got.offset)
		}

		got = m.insertOrGet(5, seedEntry{offset: 2, version: 0})
		if got.offset != 1 {
			t.Fatalf("useSplay=%v: insertOrGet did not retain first value, got offset %d", useSplay, got.offset)
		}
	}
}

func Test_FingerprintMap_Insert_Overwrites(t *testing.T) {
	t.Parallel()

	for _, useSplay := range []bool{false, true} {
		m := newFingerprintMap(useSplay, 16)

		m.insert(9, seedEntry{offset: 1, version: 0})
		m.insert(9, seedEntry{offset: 2, version: 1})

		got, ok := m.find(9)
		if !ok || got.offset != 2 || got.version != 1 {
			t.Fatalf("useSplay=%v: got %+v, want offset=2 version=1", useSplay, got)
		}
	}
}

func Test_FlatMap_InsertIfVacant_Keeps_First_Seed_On_Index_Collision(t *testing.T) {
	t.Parallel()

	// Fingerprints 5 and 21 are distinct but share slot 5 in a 16-slot
	// table. Within one version window the first occupant must win and the
	// colliding later seed must be dropped, not swapped in.
	m := newFlatMap(16)

	m.insertIfVacant(5, seedEntry{offset: 1, version: 0})
	m.insertIfVacant(21, seedEntry{offset: 2, version: 0})

	got, ok := m.find(5)
	if !ok || got.offset != 1 {
		t.Fatalf("first occupant evicted by colliding insert: got (%+v, %v)", got, ok)
	}

	if _, ok := m.find(21); ok {
		t.Fatal("colliding seed was stored despite an occupied same-version slot")
	}
}

func Test_FlatMap_InsertIfVacant_Overwrites_Stale_Version_Slot(t *testing.T) {
	t.Parallel()

	m := newFlatMap(16)

	m.insertIfVacant(5, seedEntry{offset: 1, version: 0})
	m.insertIfVacant(21, seedEntry{offset: 2, version: 1})

	got, ok := m.find(21)
	if !ok || got.offset != 2 || got.version != 1 {
		t.Fatalf("stale-version slot not reclaimed: got (%+v, %v)", got, ok)
	}

	if _, ok := m.find(5); ok {
		t.Fatal("logically flushed seed still visible under its fingerprint")
	}
}

func Test_SplayMap_InsertIfVacant_Retains_Distinct_Fingerprints(t *testing.T) {
	t.Parallel()

	// The tree backend has no index collisions, so two distinct
	// fingerprints in the same version window both survive.
	m := newSplayFpMap()

	m.insertIfVacant(5, seedEntry{offset: 1, version: 0})
	m.insertIfVacant(21, seedEntry{offset: 2, version: 0})

	if got, ok := m.find(5); !ok || got.offset != 1 {
		t.Fatalf("find(5) = (%+v, %v), want offset 1", got, ok)
	}

	if got, ok := m.find(21); !ok || got.offset != 2 {
		t.Fatalf("find(21) = (%+v, %v), want offset 2", got, ok)
	}

	m.insertIfVacant(5, seedEntry{offset: 9, version: 0})

	if got, _ := m.find(5); got.offset != 1 {
		t.Fatalf("same-version repeat insert replaced first occupant: %+v", got)
	}
}

func Test_FingerprintMap_Find_Reports_Absence(t *testing.T) {
	t.Parallel()

	for _, useSplay := range []bool{false, true} {
		m := newFingerprintMap(useSplay, 16)
		if _, ok := m.find(123); ok {
			t.Fatalf("useSplay=%v: find on empty map returned true", useSplay)
		}
	}
}

package splay

import (
	"math/rand"
	"testing"
)

func Test_Tree_Find_Returns_False_When_Empty(t *testing.T) {
	t.Parallel()

	tr := New[int]()

	if _, ok := tr.Find(1); ok {
		t.Fatal("Find on empty tree returned true")
	}
}

func Test_Tree_InsertOrGet_Retains_First_Value_On_Collision(t *testing.T) {
	t.Parallel()

	tr := New[string]()

	got := tr.InsertOrGet(42, "first")
	if got != "first" {
		t.Fatalf("got %q, want %q", got, "first")
	}

	got = tr.InsertOrGet(42, "second")
	if got != "first" {
		t.Fatalf("InsertOrGet did not retain first value: got %q", got)
	}

	v, ok := tr.Find(42)
	if !ok || v != "first" {
		t.Fatalf("Find(42) = (%q, %v), want (\"first\", true)", v, ok)
	}
}

func Test_Tree_Insert_Overwrites_Existing_Value(t *testing.T) {
	t.Parallel()

	tr := New[int]()
	tr.Insert(7, 100)
	tr.Insert(7, 200)

	v, ok := tr.Find(7)
	if !ok || v != 200 {
		t.Fatalf("Find(7) = (%d, %v), want (200, true)", v, ok)
	}
}

func Test_Tree_Matches_Map_Semantics_For_Random_Operations(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(3))
	tr := New[int]()
	model := make(map[uint64]int)

	for i := 0; i < 2000; i++ {
		key := uint64(rng.Intn(200))

		if rng.Intn(2) == 0 {
			val := rng.Intn(1_000_000)
			tr.Insert(key, val)
			model[key] = val
		} else {
			v, ok := tr.Find(key)
			mv, mok := model[key]

			if ok != mok || (ok && v != mv) {
				t.Fatalf("Find(%d) = (%d, %v), want (%d, %v)", key, v, ok, mv, mok)
			}
		}
	}

	for key, want := range model {
		got, ok := tr.Find(key)
		if !ok || got != want {
			t.Fatalf("final check: Find(%d) = (%d, %v), want (%d, true)", key, got, ok, want)
		}
	}
}

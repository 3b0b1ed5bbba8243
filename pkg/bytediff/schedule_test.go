package bytediff

import (
	"bytes"
	"math/rand"
	"testing"
)

func Test_MakeInplace_Reconstructs_When_Copies_Overlap(t *testing.T) {
	t.Parallel()

	// A cyclic read/write dependency: copy 0 reads [2,6) and writes [0,4),
	// copy 1 reads [0,4) and writes [4,8) — applying in either order without
	// conversion corrupts one of the two, so the scheduler must break the cycle.
	r := []byte("ABCDEFGH")
	commands := []Command{
		CopyCommand(2, 4),
		CopyCommand(0, 4),
	}

	for _, policy := range []CyclePolicy{Constant, Localmin} {
		placed, stats := MakeInplace(r, commands, policy)

		if stats.CyclesBroken == 0 {
			t.Fatalf("policy %v: expected at least one cycle to be broken", policy)
		}

		got := ApplyDeltaInplace(r, placed, OutputSize(commands))
		want := ApplyDelta(r, commands)

		if !bytes.Equal(got, want) {
			t.Fatalf("policy %v: in-place result %q != standard result %q", policy, got, want)
		}
	}
}

func Test_MakeInplace_Needs_No_Conversion_When_Acyclic(t *testing.T) {
	t.Parallel()

	r := []byte("ABCDEFGHIJKL")
	commands := []Command{
		CopyCommand(8, 4),
		AddCommand([]byte("--")),
		CopyCommand(4, 4),
	}

	placed, stats := MakeInplace(r, commands, Constant)

	if stats.CyclesBroken != 0 {
		t.Fatalf("expected no cycles broken for an acyclic schedule, got %d", stats.CyclesBroken)
	}

	got := ApplyDeltaInplace(r, placed, OutputSize(commands))
	want := ApplyDelta(r, commands)

	if !bytes.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func Test_MakeInplace_Returns_Empty_When_No_Commands(t *testing.T) {
	t.Parallel()

	placed, stats := MakeInplace([]byte("R"), nil, Constant)
	if placed != nil || stats.CyclesBroken != 0 {
		t.Fatalf("expected empty result, got placed=%v stats=%+v", placed, stats)
	}
}

func Test_MakeInplace_Preserves_Output_For_Random_Command_Graphs(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(99))
	r := make([]byte, 1000)
	rng.Read(r)
	v := make([]byte, 1200)
	rng.Read(v)

	commands := Diff(Correcting, r, v, DefaultOptions())

	for _, policy := range []CyclePolicy{Constant, Localmin} {
		placed, _ := MakeInplace(r, commands, policy)

		got := ApplyDeltaInplace(r, placed, len(v))
		if !bytes.Equal(got, v) {
			t.Fatalf("policy %v: in-place reconstruction diverged from V", policy)
		}
	}
}

package bytediff

import (
	"bytes"
	"testing"
)

func Test_Greedy_Breaks_Ties_Toward_Smallest_Offset(t *testing.T) {
	t.Parallel()

	// "AB" occurs at offsets 0 and 4 in R; V's window should match the
	// earlier (smallest) offset when both extend equally far.
	r := []byte("ABXXABXX")
	v := []byte("AB")

	opts := DefaultOptions()
	opts.P = 2

	commands := diffGreedy(r, v, opts)

	if len(commands) != 1 || commands[0].Kind != KindCopy || commands[0].Offset != 0 {
		t.Fatalf("got %+v, want a single Copy at offset 0", commands)
	}
}

func Test_Greedy_Extends_Matches_Past_Seed_Length(t *testing.T) {
	t.Parallel()

	r := []byte("the quick brown fox")
	v := []byte("a quick brown fox jumped")

	opts := DefaultOptions()
	opts.P = 3

	got := ApplyDelta(r, diffGreedy(r, v, opts))
	if !bytes.Equal(got, v) {
		t.Fatalf("got %q, want %q", got, v)
	}
}

func Test_Greedy_Uses_Splay_Backend_When_Requested(t *testing.T) {
	t.Parallel()

	r := []byte("the quick brown fox jumps over the lazy dog")
	v := []byte("a quick brown fox jumps over one lazy dog")

	opts := DefaultOptions()
	opts.P = 3
	opts.UseSplay = true

	got := ApplyDelta(r, diffGreedy(r, v, opts))
	if !bytes.Equal(got, v) {
		t.Fatalf("got %q, want %q", got, v)
	}
}

package bytediff

import (
	"bytes"
	"testing"
)

func Test_Correcting_Captures_Transposition_OnePass_Misses(t *testing.T) {
	t.Parallel()

	r := []byte("ABCDEFGHABCDEFGH")
	v := []byte("EFGHABCDEFGHABCD")

	opts := DefaultOptions()
	opts.P = 2

	commands := diffCorrecting(r, v, opts)

	got := ApplyDelta(r, commands)
	if !bytes.Equal(got, v) {
		t.Fatalf("got %q, want %q", got, v)
	}

	copies := 0

	for _, c := range commands {
		if c.Kind == KindCopy {
			copies++
		}
	}

	if copies == 0 {
		t.Fatal("expected at least one Copy command")
	}
}

func Test_Correcting_Applies_Tail_Correction_When_Match_Extends_Backward(t *testing.T) {
	t.Parallel()

	// V's first seed "ABCD" is first found at R offset 0, where the match
	// ends after four bytes, so V[0:4) is buffered as a short Copy. The next
	// seed "EFGH" matches at R offset 11 and extends backward to V offset 0,
	// so tail correction absorbs the buffered Copy into one Copy of R[7:17).
	r := []byte("ABCDxxQABCDEFGHIJ")
	v := []byte("ABCDEFGHIJ")

	opts := DefaultOptions()
	opts.P = 4

	commands := diffCorrecting(r, v, opts)

	got := ApplyDelta(r, commands)
	if !bytes.Equal(got, v) {
		t.Fatalf("got %q, want %q", got, v)
	}

	if len(commands) != 1 || commands[0].Kind != KindCopy || commands[0].Offset != 7 || commands[0].Length != 10 {
		t.Fatalf("got %+v, want the buffered Copy absorbed into a single Copy(7, 10)", commands)
	}
}

func Test_Correcting_Reconstructs_With_Checkpointed_Tiny_Table(t *testing.T) {
	t.Parallel()

	r := bytes.Repeat([]byte("ABCDEFGHIJKLMNOP"), 20)
	v := append([]byte(nil), r[:160]...)
	v = append(v, []byte("XXXXYYYY")...)
	v = append(v, r[160:]...)

	opts := DefaultOptions()
	opts.P = 16
	opts.Q = 7

	got := ApplyDelta(r, diffCorrecting(r, v, opts))
	if !bytes.Equal(got, v) {
		t.Fatalf("got %q, want %q", got, v)
	}
}

func Test_Correcting_Returns_Empty_When_V_Empty(t *testing.T) {
	t.Parallel()

	commands := diffCorrecting([]byte("abc"), nil, DefaultOptions())
	if commands != nil {
		t.Fatalf("got %v, want nil", commands)
	}
}

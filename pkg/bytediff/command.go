package bytediff

// CommandKind distinguishes the two operations a Command can carry.
type CommandKind uint8

const (
	// KindCopy reads Length bytes from R starting at Offset.
	KindCopy CommandKind = iota
	// KindAdd inserts the literal bytes in Data.
	KindAdd
)

// Command is one instruction in a delta: either a Copy (read from R) or an
// Add (literal bytes). The concatenated output of a Command sequence,
// applied to R, equals V.
type Command struct {
	Kind   CommandKind
	Offset int    // valid for KindCopy: start offset in R
	Length int    // valid for KindCopy: number of bytes
	Data   []byte // valid for KindAdd: literal payload
}

// CopyCommand returns a Command that copies R[offset:offset+length].
func CopyCommand(offset, length int) Command {
	return Command{Kind: KindCopy, Offset: offset, Length: length}
}

// AddCommand returns a Command that inserts data verbatim.
func AddCommand(data []byte) Command {
	return Command{Kind: KindAdd, Data: data}
}

// Len returns the number of output bytes this command produces.
func (c Command) Len() int {
	if c.Kind == KindCopy {
		return c.Length
	}

	return len(c.Data)
}

// PlacedCommand is a Command annotated with an absolute destination offset
// in the reconstructed output. The Dst values of a PlacedCommand sequence
// partition [0, |V|).
type PlacedCommand struct {
	Kind   CommandKind
	Src    int // valid for KindCopy: source offset in R
	Dst    int // absolute destination offset in the output
	Length int // valid for KindCopy
	Data   []byte
}

// Len returns the number of output bytes this placed command produces.
func (c PlacedCommand) Len() int {
	if c.Kind == KindCopy {
		return c.Length
	}

	return len(c.Data)
}

// OutputSize returns the total number of bytes the command sequence
// produces when applied.
func OutputSize(commands []Command) int {
	total := 0
	for _, c := range commands {
		total += c.Len()
	}

	return total
}

// PlaceCommands assigns each command a sequential absolute destination
// offset, turning a relative Command sequence into an absolute
// PlacedCommand sequence with no reordering (phase 1 of the in-place
// scheduler, also usable standalone for non-in-place delta construction).
func PlaceCommands(commands []Command) []PlacedCommand {
	placed := make([]PlacedCommand, len(commands))
	dst := 0

	for i, c := range commands {
		switch c.Kind {
		case KindCopy:
			placed[i] = PlacedCommand{Kind: KindCopy, Src: c.Offset, Dst: dst, Length: c.Length}
			dst += c.Length
		case KindAdd:
			placed[i] = PlacedCommand{Kind: KindAdd, Dst: dst, Data: c.Data}
			dst += len(c.Data)
		}
	}

	return placed
}

// UnplaceCommands strips the absolute Dst annotation from a PlacedCommand
// sequence, recovering the relative Command encoding. Useful for comparing
// a placed sequence's logical content while ignoring scheduling order
// changes the in-place converter may have introduced in Add/Copy mix (the
// Dst values themselves are not ordering-sensitive once stripped).
func UnplaceCommands(commands []PlacedCommand) []Command {
	out := make([]Command, len(commands))

	for i, c := range commands {
		switch c.Kind {
		case KindCopy:
			out[i] = CopyCommand(c.Src, c.Length)
		case KindAdd:
			out[i] = AddCommand(c.Data)
		}
	}

	return out
}

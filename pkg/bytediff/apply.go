package bytediff

// ApplyDelta reconstructs V from R and a relative command sequence,
// allocating the output buffer.
func ApplyDelta(r []byte, commands []Command) []byte {
	out := make([]byte, OutputSize(commands))
	ApplyDeltaTo(r, commands, out)

	return out
}

// ApplyDeltaTo reconstructs V into a pre-allocated buffer, returning the
// number of bytes written. out must be at least OutputSize(commands) long.
func ApplyDeltaTo(r []byte, commands []Command, out []byte) int {
	pos := 0

	for _, cmd := range commands {
		switch cmd.Kind {
		case KindAdd:
			copy(out[pos:pos+len(cmd.Data)], cmd.Data)
			pos += len(cmd.Data)
		case KindCopy:
			copy(out[pos:pos+cmd.Length], r[cmd.Offset:cmd.Offset+cmd.Length])
			pos += cmd.Length
		}
	}

	return pos
}

// ApplyPlacedTo applies placed commands in standard (non-in-place) mode,
// reading from r and writing to out at each command's absolute Dst.
// Returns the end offset of the furthest write (one past the highest byte
// written).
func ApplyPlacedTo(r []byte, commands []PlacedCommand, out []byte) int {
	maxWritten := 0

	for _, cmd := range commands {
		switch cmd.Kind {
		case KindCopy:
			copy(out[cmd.Dst:cmd.Dst+cmd.Length], r[cmd.Src:cmd.Src+cmd.Length])

			if end := cmd.Dst + cmd.Length; end > maxWritten {
				maxWritten = end
			}
		case KindAdd:
			copy(out[cmd.Dst:cmd.Dst+len(cmd.Data)], cmd.Data)

			if end := cmd.Dst + len(cmd.Data); end > maxWritten {
				maxWritten = end
			}
		}
	}

	return maxWritten
}

// ApplyPlacedInplaceTo applies placed commands within a single buffer. Go's
// copy builtin behaves like memmove for overlapping slices, so a Copy whose
// source and destination ranges overlap is handled correctly regardless of
// direction, provided the in-place scheduler ordered commands so each
// source region is read before any earlier command overwrites it.
func ApplyPlacedInplaceTo(commands []PlacedCommand, buf []byte) {
	for _, cmd := range commands {
		switch cmd.Kind {
		case KindCopy:
			copy(buf[cmd.Dst:cmd.Dst+cmd.Length], buf[cmd.Src:cmd.Src+cmd.Length])
		case KindAdd:
			copy(buf[cmd.Dst:cmd.Dst+len(cmd.Data)], cmd.Data)
		}
	}
}

// ApplyDeltaInplace reconstructs V in-place: a buffer is initialised with R
// (extended with zero bytes if V is longer), then the in-place placed
// command sequence is applied and the result truncated to versionSize.
func ApplyDeltaInplace(r []byte, commands []PlacedCommand, versionSize int) []byte {
	bufSize := len(r)
	if versionSize > bufSize {
		bufSize = versionSize
	}

	buf := make([]byte, bufSize)
	copy(buf, r)

	ApplyPlacedInplaceTo(commands, buf)

	return buf[:versionSize]
}

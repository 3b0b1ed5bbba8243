package main

import (
	"fmt"
	"os"

	"github.com/kgrange/bytediff/pkg/bytediff"
	flag "github.com/spf13/pflag"
)

// DeltaSummary is the human-readable statistics view over a decoded delta,
// the "info" subcommand's presentation-side counterpart to the core
// package's typed Commands/Stats.
type DeltaSummary struct {
	Version     string
	Inplace     bool
	VersionSize int
	HasHashes   bool
	NumCommands int
	NumCopies   int
	NumAdds     int
	CopyBytes   int
	AddBytes    int
	DeltaSize   int
}

// Summarize derives a DeltaSummary from a decoded delta plus the size of
// its serialised form.
func Summarize(d bytediff.DecodedDelta, deltaSize int) DeltaSummary {
	s := DeltaSummary{
		Inplace:     d.Inplace,
		VersionSize: d.VersionSize,
		HasHashes:   d.HasHashes,
		NumCommands: len(d.Commands),
		DeltaSize:   deltaSize,
	}

	if d.HasHashes {
		s.Version = "v2"
	} else {
		s.Version = "v1"
	}

	for _, c := range d.Commands {
		switch c.Kind {
		case bytediff.KindCopy:
			s.NumCopies++
			s.CopyBytes += c.Length
		case bytediff.KindAdd:
			s.NumAdds++
			s.AddBytes += len(c.Data)
		}
	}

	return s
}

func (s DeltaSummary) Print(o *IO) {
	o.Printf("container version:  %s\n", s.Version)
	o.Printf("in-place:            %v\n", s.Inplace)
	o.Printf("reconstructed size:  %d bytes\n", s.VersionSize)
	o.Printf("delta size:          %d bytes\n", s.DeltaSize)
	o.Printf("commands:            %d (%d copy, %d add)\n", s.NumCommands, s.NumCopies, s.NumAdds)
	o.Printf("copy bytes:          %d\n", s.CopyBytes)
	o.Printf("add bytes:           %d\n", s.AddBytes)
	o.Printf("content hashes:      %v\n", s.HasHashes)
}

// InfoCmd returns the "info" subcommand.
func InfoCmd(Config) *Command {
	flagSet := flag.NewFlagSet("info", flag.ContinueOnError)
	interactive := flagSet.Bool("interactive", false, "open a line-editing REPL to browse the command stream")

	return &Command{
		Flags: flagSet,
		Usage: "info DELTA [flags]",
		Short: "Print human-readable statistics about a delta container",
		Exec: func(o *IO, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("info requires DELTA; got %d positional args", len(args))
			}

			data, err := os.ReadFile(args[0]) //nolint:gosec // path is user-supplied CLI argument
			if err != nil {
				return fmt.Errorf("reading delta: %w", err)
			}

			decoded, err := bytediff.DecodeDelta(data)
			if err != nil {
				return fmt.Errorf("decoding delta: %w", err)
			}

			if *interactive {
				return RunREPL(decoded, len(data))
			}

			Summarize(decoded, len(data)).Print(o)

			return nil
		},
	}
}

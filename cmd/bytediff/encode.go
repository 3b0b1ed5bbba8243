package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/kgrange/bytediff/pkg/bytediff"
	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"
)

// EncodeCmd returns the "encode" subcommand.
func EncodeCmd(cfg Config) *Command {
	flagSet := flag.NewFlagSet("encode", flag.ContinueOnError)

	seedLen := flagSet.Int("seed-len", cfg.SeedLen, "seed (window) length p")
	tableSize := flagSet.Int("table-size", cfg.TableLen, "hash-table floor size q (0 = default)")
	maxTable := flagSet.Int("max-table", cfg.MaxTable, "hard cap on auto-sized table (0 = no cap)")
	bufCap := flagSet.Int("buf-cap", cfg.BufCap, "correcting algorithm's lookback buffer capacity")
	useSplay := flagSet.Bool("splay", cfg.UseSplay, "use a splay tree instead of open addressing")
	inplace := flagSet.Bool("inplace", false, "produce an in-place (self-overwriting) delta")
	policy := flagSet.String("policy", cfg.Policy, "cycle-breaking policy for --inplace: constant, localmin")
	minCopy := flagSet.Int("min-copy", 0, "fold Copy commands shorter than this into neighboring Adds")
	verbose := flagSet.Bool("verbose", false, "emit diagnostic counters to stderr")

	return &Command{
		Flags: flagSet,
		Usage: "encode ALGO R V DELTA [flags]",
		Short: "Compute a delta that transforms R into V",
		Exec: func(o *IO, args []string) error {
			if len(args) != 4 {
				return fmt.Errorf("encode requires ALGO, R, V, DELTA; got %d positional args", len(args))
			}

			algo, err := parseAlgorithm(args[0])
			if err != nil {
				return err
			}

			policyVal, err := parsePolicy(*policy)
			if err != nil {
				return err
			}

			r, err := os.ReadFile(args[1]) //nolint:gosec // path is user-supplied CLI argument
			if err != nil {
				return fmt.Errorf("reading R: %w", err)
			}

			v, err := os.ReadFile(args[2]) //nolint:gosec // path is user-supplied CLI argument
			if err != nil {
				return fmt.Errorf("reading V: %w", err)
			}

			opts := bytediff.DiffOptions{
				P:        *seedLen,
				Q:        *tableSize,
				MaxTable: *maxTable,
				BufCap:   *bufCap,
				UseSplay: *useSplay,
			}
			if *verbose {
				opts.Verbose = os.Stderr
			}

			commands := bytediff.Diff(algo, r, v, opts)

			if *minCopy > 0 {
				commands = foldShortCopies(r, commands, *minCopy)
			}

			srcHash := bytediff.ContentHash16(r)
			dstHash := bytediff.ContentHash16(v)

			var (
				placed []bytediff.PlacedCommand
				stats  bytediff.Stats
			)

			if *inplace {
				placed, stats = bytediff.MakeInplace(r, commands, policyVal)
			} else {
				placed = bytediff.PlaceCommands(commands)
			}

			encoded := bytediff.EncodeDelta(placed, *inplace, len(v), srcHash, dstHash)

			if err := atomic.WriteFile(args[3], bytes.NewReader(encoded)); err != nil {
				return fmt.Errorf("writing delta: %w", err)
			}

			if *inplace {
				o.Printf("wrote %s: %d bytes (%d copies, %d adds, %d cycles broken, %d bytes converted)\n",
					args[3], len(encoded), stats.NumCopies, stats.NumAdds, stats.CyclesBroken, stats.BytesConverted)
			} else {
				o.Printf("wrote %s: %d bytes (%d commands, %d bytes of V)\n", args[3], len(encoded), len(commands), len(v))
			}

			return nil
		},
	}
}

// foldShortCopies re-expresses any Copy command shorter than minLen as an
// Add of the same bytes, merging it into the preceding Add when there is
// one; a following Add is kept as a separate command.
// Many tiny Copy commands cost more in per-command stream overhead (src,
// dst, len: 12 bytes) than just inlining the literal bytes would.
func foldShortCopies(r []byte, commands []bytediff.Command, minLen int) []bytediff.Command {
	out := make([]bytediff.Command, 0, len(commands))

	for _, c := range commands {
		if c.Kind == bytediff.KindCopy && c.Length < minLen {
			data := r[c.Offset : c.Offset+c.Length]

			if n := len(out); n > 0 && out[n-1].Kind == bytediff.KindAdd {
				out[n-1].Data = append(out[n-1].Data, data...)
				continue
			}

			out = append(out, bytediff.AddCommand(append([]byte(nil), data...)))

			continue
		}

		out = append(out, c)
	}

	return out
}

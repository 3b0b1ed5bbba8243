package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/kgrange/bytediff/pkg/bytediff"
	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"
)

// InplaceCmd returns the "inplace" subcommand: converts an existing
// standard delta into a self-overwriting one without recomputing the diff.
func InplaceCmd(cfg Config) *Command {
	flagSet := flag.NewFlagSet("inplace", flag.ContinueOnError)
	policy := flagSet.String("policy", cfg.Policy, "cycle-breaking policy: constant, localmin")
	dryRun := flagSet.Bool("dry-run", false, "report scheduler stats without writing DELTA_OUT")

	return &Command{
		Flags: flagSet,
		Usage: "inplace R DELTA_IN DELTA_OUT [flags]",
		Short: "Reschedule a delta's commands for in-place application",
		Exec: func(o *IO, args []string) error {
			if len(args) != 3 {
				return fmt.Errorf("inplace requires R, DELTA_IN, DELTA_OUT; got %d positional args", len(args))
			}

			policyVal, err := parsePolicy(*policy)
			if err != nil {
				return err
			}

			r, err := os.ReadFile(args[0]) //nolint:gosec // path is user-supplied CLI argument
			if err != nil {
				return fmt.Errorf("reading R: %w", err)
			}

			deltaBytes, err := os.ReadFile(args[1]) //nolint:gosec // path is user-supplied CLI argument
			if err != nil {
				return fmt.Errorf("reading DELTA_IN: %w", err)
			}

			decoded, err := bytediff.DecodeDelta(deltaBytes)
			if err != nil {
				return fmt.Errorf("decoding delta: %w", err)
			}

			commands := bytediff.UnplaceCommands(decoded.Commands)

			placed, stats := bytediff.MakeInplace(r, commands, policyVal)

			o.Printf("copies=%d adds=%d edges=%d cycles_broken=%d copies_converted=%d bytes_converted=%d\n",
				stats.NumCopies, stats.NumAdds, stats.Edges, stats.CyclesBroken, stats.CopiesConverted, stats.BytesConverted)

			if *dryRun {
				return nil
			}

			srcHash := bytediff.ContentHash16(r)

			var dstHash [16]byte
			if decoded.HasHashes {
				dstHash = decoded.DstHash
			} else {
				out := bytediff.ApplyDeltaInplace(r, placed, decoded.VersionSize)
				dstHash = bytediff.ContentHash16(out)
			}

			encoded := bytediff.EncodeDelta(placed, true, decoded.VersionSize, srcHash, dstHash)

			if err := atomic.WriteFile(args[2], bytes.NewReader(encoded)); err != nil {
				return fmt.Errorf("writing %s: %w", args[2], err)
			}

			o.Printf("wrote %s: %d bytes\n", args[2], len(encoded))

			return nil
		},
	}
}

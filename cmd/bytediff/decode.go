package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/kgrange/bytediff/pkg/bytediff"
	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"
)

var (
	errSrcHashMismatch = errors.New("src_hash mismatch: R does not match the reference this delta was built against")
	errDstHashMismatch = errors.New("dst_hash mismatch: reconstructed output does not match the delta's recorded checksum")
)

// DecodeCmd returns the "decode" subcommand.
func DecodeCmd(Config) *Command {
	flagSet := flag.NewFlagSet("decode", flag.ContinueOnError)
	ignoreHash := flagSet.Bool("ignore-hash", false, "skip src/dst content-hash verification")

	return &Command{
		Flags: flagSet,
		Usage: "decode R DELTA OUT [flags]",
		Short: "Apply a delta to R, writing the reconstructed V to OUT",
		Exec: func(o *IO, args []string) error {
			if len(args) != 3 {
				return fmt.Errorf("decode requires R, DELTA, OUT; got %d positional args", len(args))
			}

			r, err := os.ReadFile(args[0]) //nolint:gosec // path is user-supplied CLI argument
			if err != nil {
				return fmt.Errorf("reading R: %w", err)
			}

			deltaBytes, err := os.ReadFile(args[1]) //nolint:gosec // path is user-supplied CLI argument
			if err != nil {
				return fmt.Errorf("reading delta: %w", err)
			}

			decoded, err := bytediff.DecodeDelta(deltaBytes)
			if err != nil {
				return fmt.Errorf("decoding delta: %w", err)
			}

			if decoded.HasHashes && !*ignoreHash {
				if got := bytediff.ContentHash16(r); got != decoded.SrcHash {
					return errSrcHashMismatch
				}
			}

			var out []byte

			if decoded.Inplace {
				out = bytediff.ApplyDeltaInplace(r, decoded.Commands, decoded.VersionSize)
			} else {
				out = make([]byte, decoded.VersionSize)
				bytediff.ApplyPlacedTo(r, decoded.Commands, out)
			}

			if decoded.HasHashes && !*ignoreHash {
				if got := bytediff.ContentHash16(out); got != decoded.DstHash {
					return errDstHashMismatch
				}
			}

			if err := atomic.WriteFile(args[2], bytes.NewReader(out)); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}

			o.Printf("wrote %s: %d bytes\n", args[2], len(out))

			return nil
		},
	}
}

// Package bytediff computes and applies byte-level differential encodings
// between two binary strings, a reference R and a version V.
//
// It implements the three differencing algorithms of Ajtai, Burns, Fagin,
// Long and Stockmeyer ("Compactly Encoding Unstructured Input with
// Differential Compression", JACM 2002) — greedy, one-pass, and correcting
// 1.5-pass — plus the Burns-Long in-place conversion (IEEE TKDE 2003) that
// rewrites a delta so V can be reconstructed inside a single buffer
// initialised with R.
//
// # Basic Usage
//
//	opts := bytediff.DefaultOptions()
//	commands := bytediff.Diff(bytediff.Correcting, r, v, opts)
//	reconstructed := bytediff.ApplyDelta(r, commands)
//
//	placed, stats := bytediff.MakeInplace(r, commands, bytediff.Localmin)
//	blob := bytediff.EncodeDelta(placed, true, len(v), bytediff.ContentHash16(r), bytediff.ContentHash16(v))
//
//	decoded, err := bytediff.DecodeDelta(blob)
//
// # Concurrency
//
// Every exported entry point is a single, CPU-bound, synchronous call: it
// runs to completion, owns its own scratch structures, and takes read-only
// borrows of its []byte inputs. There is no shared mutable state between
// calls and nothing to cancel. Callers may invoke Diff, MakeInplace, or
// Apply* concurrently from multiple goroutines as long as each call is
// given its own R/V/command slices (inputs are never mutated).
//
// # Error Handling
//
// The differencing algorithms and the in-place scheduler are total: given
// well-typed inputs ([]byte and a valid DiffOptions/CyclePolicy) they cannot
// fail. The only source of errors in this package is [DecodeDelta], which
// classifies malformed input as [ErrInvalidFormat] or [ErrUnexpectedEOF].
// Content-hash mismatches are not checked by DecodeDelta itself — that
// verification belongs to the caller (see [ContentHash16]), so the decoder
// stays pure.
package bytediff

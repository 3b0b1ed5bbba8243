// Command bytediff computes and applies byte-level differential encodings
// between two binary strings, a reference R and a version V (see
// github.com/kgrange/bytediff/pkg/bytediff).
package main

import "os"

func main() {
	os.Exit(Run(os.Stdout, os.Stderr, os.Args))
}

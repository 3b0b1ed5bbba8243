package main

import (
	"fmt"
	"strings"

	"github.com/kgrange/bytediff/pkg/bytediff"
)

func parseAlgorithm(name string) (bytediff.Algorithm, error) {
	switch strings.ToLower(name) {
	case "greedy":
		return bytediff.Greedy, nil
	case "onepass", "one-pass":
		return bytediff.OnePass, nil
	case "correcting":
		return bytediff.Correcting, nil
	default:
		return 0, fmt.Errorf("unknown algorithm %q (want greedy, onepass, or correcting)", name)
	}
}

func parsePolicy(name string) (bytediff.CyclePolicy, error) {
	switch strings.ToLower(name) {
	case "constant":
		return bytediff.Constant, nil
	case "localmin":
		return bytediff.Localmin, nil
	default:
		return 0, fmt.Errorf("unknown policy %q (want constant or localmin)", name)
	}
}

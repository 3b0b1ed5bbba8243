package bytediff

// Diff computes a command sequence that reconstructs v from r, using the
// algorithm selected by algo. A zero DiffOptions.P, Q or BufCap is replaced
// by its default.
func Diff(algo Algorithm, r, v []byte, opts DiffOptions) []Command {
	if opts.P <= 0 {
		opts.P = defaultSeedLen
	}

	if opts.Q <= 0 {
		opts.Q = int(defaultTableSize)
	}

	if opts.BufCap <= 0 {
		opts.BufCap = defaultBufCap
	}

	switch algo {
	case Greedy:
		return diffGreedy(r, v, opts)
	case OnePass:
		return diffOnePass(r, v, opts)
	case Correcting:
		return diffCorrecting(r, v, opts)
	default:
		return diffGreedy(r, v, opts)
	}
}

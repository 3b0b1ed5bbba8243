package bytediff

import "errors"

// Container decode errors. These are the only errors this package produces;
// the differencing algorithms and the in-place scheduler are total over
// well-typed input and cannot fail. Classify with errors.Is.
var (
	// ErrInvalidFormat indicates the container magic didn't match, a
	// command tag was unrecognised, or a flags byte was unrecognised.
	ErrInvalidFormat = errors.New("bytediff: invalid delta format")

	// ErrUnexpectedEOF indicates the command stream was truncated
	// mid-field or mid-payload.
	ErrUnexpectedEOF = errors.New("bytediff: unexpected end of delta stream")
)

package bplist

// FormatError reports that the input is not a recoverable property list at
// all — missing magic, a truncated trailer, or an offset-table entry that
// points past the end of the file. It is the only error this package
// returns for bad input (an I/O error from the source itself, such as a
// failed Seek or Read, is returned as is); every lesser anomaly is folded
// into the result tree as a sentinel Value instead (see Value.Sentinel and
// Decoder.IsCorrupt).
type FormatError struct {
	Context string
	Err     error
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return e.Context
	}
	return e.Context + ": " + e.Err.Error()
}

func (e *FormatError) Unwrap() error { return e.Err }

func formatErrorf(context string, err error) *FormatError {
	return &FormatError{Context: context, Err: err}
}

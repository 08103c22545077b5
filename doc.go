// Package bplist implements a forensic decoder for Apple's binary
// property-list format. Unlike a general-purpose plist library, it is
// built to recover as much structured data as possible from damaged,
// truncated, or adversarially crafted files: recoverable anomalies are
// reported as sentinel values embedded in the result tree (see
// Value.Sentinel) rather than aborting the parse. Only a handful of
// conditions that make the input unrecoverable as a plist at all — a
// missing magic number, a truncated trailer, an offset-table entry
// pointing past the end of the file — produce a *FormatError.
package bplist

package bplist

import (
	"bytes"
	"io"
	"math/big"
	"time"

	"github.com/go-forensics/bplist/internal/xmlplist"
)

// ReadPlist implements spec §4.7: detect whether source holds a binary or
// XML property list starting at its current position, and decode it. A
// binary plist is recognized by its "bplist" magic; anything else is
// handed to the XML-fallback collaborator. If neither succeeds, ReadPlist
// fails with a *FormatError.
func ReadPlist(source io.ReadSeeker) (Value, error) {
	val, _, err := ReadPlistReport(source)
	return val, err
}

// ReadPlistReport is ReadPlist plus the corruption flag a caller would
// otherwise have to construct a bplist.Decoder directly to obtain. For an
// XML-fallback result, corrupt is always false: the XML format carries no
// sentinel notion, so a plist that XML-parses at all is, by construction,
// not corrupt.
func ReadPlistReport(source io.ReadSeeker) (val Value, corrupt bool, err error) {
	start, err := source.Seek(0, io.SeekCurrent)
	if err != nil {
		return Value{}, false, err
	}
	if start != 0 {
		// Decode a copy that begins at the current position, so the binary
		// decoder's absolute offsets count from there.
		return ReadPlistAtReport(source, start)
	}

	header := make([]byte, 8)
	n, _ := io.ReadFull(source, header)
	source.Seek(start, io.SeekStart)

	if n >= 6 && string(header[:6]) == "bplist" {
		d, err := New(source)
		if err != nil {
			return Value{}, false, err
		}
		val, err = d.Parse()
		return val, d.IsCorrupt(), err
	}

	rest, err := io.ReadAll(source)
	if err != nil {
		return Value{}, false, err
	}
	tree, xmlErr := xmlplist.Parse(bytes.NewReader(rest))
	if xmlErr != nil {
		return Value{}, false, formatErrorf("neither bplist nor XML plist", xmlErr)
	}
	return fromGeneric(tree), false, nil
}

// ReadPlistAt implements spec §4.7's "scan for plist at offset" variant:
// the caller supplies a candidate absolute offset at which a property list
// may be embedded inside a larger file. The remaining bytes from that
// offset are copied into a fresh buffer and decoded as if it were origin
// zero, so the source need not support true relative seeking past that
// point.
func ReadPlistAt(source io.ReadSeeker, offset int64) (Value, error) {
	val, _, err := ReadPlistAtReport(source, offset)
	return val, err
}

// ReadPlistAtReport is ReadPlistAt plus the corruption flag; see
// ReadPlistReport.
func ReadPlistAtReport(source io.ReadSeeker, offset int64) (Value, bool, error) {
	if _, err := source.Seek(offset, io.SeekStart); err != nil {
		return Value{}, false, err
	}
	rest, err := io.ReadAll(source)
	if err != nil {
		return Value{}, false, err
	}
	return ReadPlistReport(bytes.NewReader(rest))
}

// fromGeneric converts the XML collaborator's plain-Go-value tree into our
// Value union, so callers of ReadPlist get one result type regardless of
// which parser handled the input. The XML format has no sentinels — a
// plist that XML-parses at all is, by construction, not corrupt — so this
// conversion never sets a corruption flag.
func fromGeneric(v interface{}) Value {
	switch t := v.(type) {
	case nil:
		return null()
	case bool:
		return boolValue(t)
	case int64:
		return integer(big.NewInt(t), false)
	case float64:
		return real(t, true)
	case time.Time:
		return dateValue(t)
	case []byte:
		return data(t)
	case string:
		return utf16String(t)
	case []interface{}:
		items := make([]Value, len(t))
		for i, e := range t {
			items[i] = fromGeneric(e)
		}
		return array(items)
	case map[string]interface{}:
		entries := make([]DictEntry, 0, len(t))
		for k, e := range t {
			entries = append(entries, DictEntry{Key: utf16String(k), Val: fromGeneric(e)})
		}
		return dict(entries)
	default:
		return null()
	}
}

package bplist

import (
	"bytes"
	"errors"
	"testing"
)

func TestReadHeaderAcceptsKnownAndUnknownVersions(t *testing.T) {
	for _, version := range []string{"00", "15"} {
		data := buildBplist(version, []byte{0x08}, []uint64{8}, 1, 1, 0)
		d, err := New(bytes.NewReader(data))
		if err != nil {
			t.Fatal(err)
		}
		d.readHeader()
		if d.version != version {
			t.Errorf("version = %q, want %q", d.version, version)
		}
	}
}

func TestReadHeaderRejectsBadMagic(t *testing.T) {
	for _, input := range [][]byte{[]byte("bla"), {}} {
		d, err := New(bytes.NewReader(input))
		if err != nil {
			t.Fatal(err)
		}
		var fe *FormatError
		func() {
			defer func() {
				r := recover()
				if r == nil {
					t.Errorf("readHeader(%q) did not panic", input)
					return
				}
				var ok bool
				fe, ok = r.(*FormatError)
				if !ok {
					t.Errorf("readHeader(%q) panicked with %T, want *FormatError", input, r)
				}
			}()
			d.readHeader()
		}()
		_ = fe
	}
}

func TestOffsetTableTruncatesWithoutError(t *testing.T) {
	// Declared object_count is larger than the number of entries the file
	// actually has room for: the table truncates silently (spec §8's
	// "short trailer case"), it does not raise FormatError.
	d := &Decoder{objectsTraversed: map[uint64]bool{}}
	var err error
	body := []byte("bplist00")
	body = append(body, 0x09) // one object, a lone True
	offsetTableOffset := len(body)
	body = append(body, 8) // one real entry: offset 8
	trailer := buildTrailer(0, 1, 1, 5 /* declares 5 objects */, 0, uint64(offsetTableOffset))
	body = append(body, trailer...)

	d.r, err = newByteReader(bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	d.readHeader()
	d.readTrailer()
	d.readOffsetTable()

	if len(d.objectOffsets) != 1 {
		t.Fatalf("len(objectOffsets) = %d, want 1 (truncated)", len(d.objectOffsets))
	}
}

func TestOffsetTablePastEndOfFileIsFormatError(t *testing.T) {
	// A 40-byte file (8 header + 32 trailer) whose trailer declares an
	// offset-table offset far past the end of the file.
	body := []byte("bplist00")
	trailer := buildTrailer(0, 1, 1, 1, 0, 0xFFFF)
	body = append(body, trailer...)

	d, err := New(bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	_, parseErr := d.Parse()
	var fe *FormatError
	if !errors.As(parseErr, &fe) {
		t.Fatalf("Parse() error = %v, want *FormatError", parseErr)
	}
}

func TestTrailerTooShortIsFormatError(t *testing.T) {
	d, err := New(bytes.NewReader([]byte("bplist00short")))
	if err != nil {
		t.Fatal(err)
	}
	_, parseErr := d.Parse()
	var fe *FormatError
	if !errors.As(parseErr, &fe) {
		t.Fatalf("Parse() error = %v, want *FormatError", parseErr)
	}
}

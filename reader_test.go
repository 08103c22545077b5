package bplist

import (
	"bytes"
	"testing"
)

func TestByteReaderShortRead(t *testing.T) {
	r, err := newByteReader(bytes.NewReader([]byte{1, 2, 3}))
	if err != nil {
		t.Fatal(err)
	}
	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", r.Len())
	}

	buf := r.readN(10)
	if len(buf) != 3 {
		t.Fatalf("readN(10) returned %d bytes, want 3", len(buf))
	}

	// Past end of input: readN never errors, just returns nothing more.
	if got := r.readN(1); len(got) != 0 {
		t.Fatalf("readN at EOF = %v, want empty", got)
	}
}

func TestByteReaderSeekClamps(t *testing.T) {
	r, err := newByteReader(bytes.NewReader([]byte{1, 2, 3}))
	if err != nil {
		t.Fatal(err)
	}
	r.seek(-5)
	if r.pos() != 0 {
		t.Errorf("seek(-5) landed at %d, want 0", r.pos())
	}
	r.seek(100)
	if r.pos() != 3 {
		t.Errorf("seek(100) landed at %d, want 3 (file size)", r.pos())
	}
}

func TestByteReaderReadAt(t *testing.T) {
	r, err := newByteReader(bytes.NewReader([]byte{1, 2, 3, 4, 5}))
	if err != nil {
		t.Fatal(err)
	}
	if got := r.readAt(2, 2); !bytes.Equal(got, []byte{3, 4}) {
		t.Errorf("readAt(2, 2) = %v, want [3 4]", got)
	}
}

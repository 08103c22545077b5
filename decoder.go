package bplist

import "io"

// Decoder holds the state of a single bplist decode, per spec §3. A
// Decoder is used once: construct it with New, call Parse, then discard it.
type Decoder struct {
	r *byteReader

	version string

	offsetIntSize  int
	objectRefSize  int
	objectCount    uint64
	topObjectIndex uint64
	offsetTableOff int64

	objectOffsets []int64

	// objectsTraversed is the descent stack used for cycle detection
	// (spec §3, §4.6). It is pushed on recursive entry into an object and
	// popped on every exit path, so its contents on return from Parse
	// equal its contents on entry (empty).
	objectsTraversed map[uint64]bool

	isCorrupt bool
}

// New creates a Decoder over a seekable byte source. The source is not
// read until Parse is called.
func New(source io.ReadSeeker) (*Decoder, error) {
	r, err := newByteReader(source)
	if err != nil {
		return nil, err
	}
	return &Decoder{r: r, objectsTraversed: make(map[uint64]bool)}, nil
}

// IsCorrupt reports whether any recoverable anomaly was observed during
// Parse. It is meaningless before Parse is called.
func (d *Decoder) IsCorrupt() bool { return d.isCorrupt }

// Version returns the two-character version tag read from the header.
func (d *Decoder) Version() string { return d.version }

func (d *Decoder) setCorrupt() { d.isCorrupt = true }

// Parse runs the full pipeline of spec §4.8: header, trailer, offset
// table, then a recursive decode of the top-level object.
func (d *Decoder) Parse() (pval Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if fe, ok := r.(*FormatError); ok {
				err = fe
				return
			}
			panic(r)
		}
	}()

	d.readHeader()
	d.readTrailer()
	d.readOffsetTable()

	d.objectsTraversed[d.topObjectIndex] = true
	pval = d.decodeObjectAt(d.topObjectIndex)
	delete(d.objectsTraversed, d.topObjectIndex)

	return pval, nil
}

package bplist

import "math/big"

const trailerSize = 32

// readHeader implements spec §4.3: the first eight bytes must be "bplist"
// followed by a two-character version tag. Any mismatch, including a file
// too short to hold the magic, is fatal.
func (d *Decoder) readHeader() {
	header := d.r.readAt(0, 8)
	if len(header) != 8 || string(header[:6]) != "bplist" {
		panic(formatErrorf("missing bplist magic", nil))
	}
	d.version = string(header[6:8])
}

// readTrailer implements spec §4.3's 32-byte trailer layout. Degenerate
// declared values (zero widths, nonsensical counts) are not rejected here;
// their consequences surface downstream as corruption, per spec.
func (d *Decoder) readTrailer() {
	if d.r.Len() < trailerSize {
		panic(formatErrorf("file too short for bplist trailer", nil))
	}

	raw := d.r.readAt(d.r.Len()-trailerSize, trailerSize)
	if len(raw) != trailerSize {
		panic(formatErrorf("truncated bplist trailer", nil))
	}

	// raw[0:5] unused, raw[5] sort_version: both ignored.
	d.offsetIntSize = int(raw[6])
	d.objectRefSize = int(raw[7])
	d.objectCount = new(big.Int).SetBytes(raw[8:16]).Uint64()
	d.topObjectIndex = new(big.Int).SetBytes(raw[16:24]).Uint64()
	d.offsetTableOff = int64(new(big.Int).SetBytes(raw[24:32]).Uint64())
}

// readOffsetTable implements spec §4.4. It seeks to offsetTableOff and
// reads up to objectCount entries of offsetIntSize bytes each, never
// reading past trailerOffset (the trailer itself, which is not part of
// the table no matter what object_count claims). An entry that the file
// doesn't have room for before the trailer begins is simply absent — the
// table is truncated, not corrupt, because that is the normal shape of a
// minimal valid plist (spec §8's "short trailer case"). An entry that is
// present but whose decoded value points past the end of the file is a
// harder failure: the file is rejected outright, distinguishing "entry
// absent" from "entry present but invalid". The offset table itself
// starting at or past the trailer is the same kind of hard failure,
// mirroring the teacher's OffsetTableOffset >= trailerOffset check.
func (d *Decoder) readOffsetTable() {
	trailerOffset := d.r.Len() - trailerSize
	if d.offsetTableOff < 0 || d.offsetTableOff >= trailerOffset {
		panic(formatErrorf("offset table offset points past end of file", nil))
	}

	d.objectOffsets = make([]int64, 0, d.objectCount)

	d.r.seek(d.offsetTableOff)
	n := d.offsetIntSize

	for i := uint64(0); i < d.objectCount; i++ {
		if d.r.pos()+int64(n) > trailerOffset {
			// Ran out of room before the trailer to read this entry in
			// full: truncation, not corruption.
			break
		}

		raw := d.r.readN(n)
		if len(raw) < n {
			break
		}

		if !standardIntWidths[n] {
			// spec §9's open question on degenerate widths: a non-standard
			// offsetIntSize can't address anything meaningful, so every
			// entry from here on resolves to offset zero and the file is
			// flagged corrupt rather than aborted.
			d.setCorrupt()
			d.objectOffsets = append(d.objectOffsets, 0)
			continue
		}

		off := new(big.Int).SetBytes(raw)
		if !off.IsUint64() || off.Uint64() >= uint64(d.r.Len()) {
			panic(formatErrorf("offset table entry points past end of file", nil))
		}
		d.objectOffsets = append(d.objectOffsets, int64(off.Uint64()))
	}
}

package bplist

import (
	"math"
	"math/big"
	"unicode/utf16"
)

// decodeObjectAt resolves object index to its absolute file offset and
// decodes it. Cycle-detection bookkeeping (objectsTraversed) is the
// caller's responsibility — see Decoder.Parse and resolveRef — since the
// contract is phrased in terms of "the index is on the descent stack
// during this call", which the caller already guarantees before invoking
// this function.
func (d *Decoder) decodeObjectAt(index uint64) Value {
	if index >= d.objectCount || index >= uint64(len(d.objectOffsets)) {
		d.setCorrupt()
		return corruptRef(index)
	}
	return d.decodeAtOffset(d.objectOffsets[index])
}

// decodeAtOffset implements spec §4.5: read one marker byte at off and
// dispatch on its high nibble.
func (d *Decoder) decodeAtOffset(off int64) Value {
	marker := d.r.readAt(off, 1)
	if len(marker) != 1 {
		d.setCorrupt()
		return rawValue(0, marker)
	}
	tag := marker[0]
	high := tag & 0xF0
	low := tag & 0x0F

	switch high {
	case tagSingleton:
		switch low {
		case lowNull:
			return null()
		case lowBoolFalse:
			return boolValue(false)
		case lowBoolTrue:
			return boolValue(true)
		case lowFill:
			return fill()
		default:
			d.setCorrupt()
			return unknownValue(tag)
		}
	case tagInteger:
		return d.decodeIntegerObject(tag, low)
	case tagReal:
		return d.decodeRealObject(tag, low)
	case tagDate:
		return d.decodeDateObject(tag)
	case tagData:
		cnt := d.readExtendedCount(low)
		return d.decodeByteRun(tag, cnt, KindData)
	case tagASCII:
		cnt := d.readExtendedCount(low)
		return d.decodeByteRun(tag, cnt, KindAsciiString)
	case tagUTF16:
		cnt := d.readExtendedCount(low)
		return d.decodeUTF16Object(tag, cnt)
	case tagUID:
		return d.decodeUIDObject(tag, low)
	case tagArray:
		cnt := d.readExtendedCount(low)
		return d.decodeArrayObject(off, cnt)
	case tagDict:
		cnt := d.readExtendedCount(low)
		return d.decodeDictObject(off, cnt)
	default:
		d.setCorrupt()
		return unknownValue(tag)
	}
}

// readExtendedCount implements spec §4.5's "extended count" escape: a low
// nibble of 0xF means the true count is the value of the Integer object
// that immediately follows, read recursively at the current position.
func (d *Decoder) readExtendedCount(low uint8) uint64 {
	if low != lowExtended {
		return uint64(low)
	}

	intMarker := d.r.readN(1)
	if len(intMarker) != 1 {
		d.setCorrupt()
		return 0
	}
	tag := intMarker[0]
	if tag&0xF0 != tagInteger {
		d.setCorrupt()
		return 0
	}

	v := d.decodeIntegerObject(tag, tag&0x0F)
	if v.Kind != KindInteger || !v.Int.IsUint64() {
		d.setCorrupt()
		return 0
	}
	return v.Int.Uint64()
}

// decodeIntegerObject implements spec §4.2/§4.5 for the 0x1 tag: widths 1,
// 2 and 4 bytes are always unsigned; widths 8 and 16 are unsigned for
// version >= "01" and two's-complement signed for version "00" (the
// original format's only defined version). Any other width reaches the
// generic sized-integer path and becomes Raw.
func (d *Decoder) decodeIntegerObject(tag, low uint8) Value {
	size := 1 << low

	buf := d.r.readN(size)
	if !standardIntWidths[size] || len(buf) != size {
		d.setCorrupt()
		return rawValue(tag, buf)
	}

	u := new(big.Int).SetBytes(buf)
	switch size {
	case 1, 2, 4:
		return integer(u, true)
	default: // 8, 16
		if d.version < "01" {
			bits := uint(size * 8)
			if u.Bit(int(bits-1)) == 1 {
				full := new(big.Int).Lsh(big.NewInt(1), bits)
				u = new(big.Int).Sub(u, full)
			}
			return integer(u, false)
		}
		return integer(u, true)
	}
}

// decodeRealObject implements spec §4.5's 0x2 tag: only 4- and 8-byte
// widths are defined.
func (d *Decoder) decodeRealObject(tag, low uint8) Value {
	size := 1 << low
	buf := d.r.readN(size)
	if len(buf) != size {
		d.setCorrupt()
		return rawValue(tag, buf)
	}
	switch size {
	case 4:
		bits := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
		return real(float64(math.Float32frombits(bits)), false)
	case 8:
		return real(math.Float64frombits(beUint64(buf)), true)
	default:
		d.setCorrupt()
		return rawValue(tag, buf)
	}
}

// plistEpochUnix is 2001-01-01T00:00:00Z expressed as a Unix offset.
const plistEpochUnix = 978307200

// decodeDateObject implements spec §4.5's 0x3 tag: a Date is always an
// 8-byte big-endian IEEE-754 double of seconds since the plist epoch,
// regardless of what the low nibble's size hint suggests. A read that
// can't produce the full 8 bytes degrades to Raw.
func (d *Decoder) decodeDateObject(tag uint8) Value {
	buf := d.r.readN(8)
	if len(buf) != 8 {
		d.setCorrupt()
		return rawValue(tag, buf)
	}
	seconds := math.Float64frombits(beUint64(buf))
	whole, frac := math.Modf(seconds)
	t := timeFromUnix(int64(whole)+plistEpochUnix, frac)
	return dateValue(t)
}

// decodeByteRun implements spec §4.5's 0x4 (Data) and 0x5 (AsciiString)
// tags: a straight run of cnt bytes. A declared length longer than what
// remains returns the truncated bytes under the same Kind, flagged
// corrupt, rather than degrading to Raw.
func (d *Decoder) decodeByteRun(tag uint8, cnt uint64, kind Kind) Value {
	buf := readCount(d.r, cnt)
	if uint64(len(buf)) != cnt {
		d.setCorrupt()
	}
	if kind == KindData {
		return data(buf)
	}
	return asciiString(buf)
}

// decodeUTF16Object implements spec §4.5's 0x6 tag: cnt UTF-16 code units,
// big-endian, 2 bytes each. An odd number of bytes actually available
// (necessarily from a short read, since cnt*2 is always even) can't form a
// complete run of code units and degrades to Raw rather than a partial
// string.
func (d *Decoder) decodeUTF16Object(tag uint8, cnt uint64) Value {
	wantBytes := cnt * 2
	buf := readCount(d.r, wantBytes)
	if uint64(len(buf)) != wantBytes {
		d.setCorrupt()
	}
	if len(buf)%2 != 0 {
		return rawValue(tag, buf)
	}
	units := make([]uint16, len(buf)/2)
	for i := range units {
		units[i] = uint16(buf[2*i])<<8 | uint16(buf[2*i+1])
	}
	return utf16String(string(utf16.Decode(units)))
}

// decodeUIDObject implements spec §4.5's 0x8 tag: size = low+1 bytes,
// unlike Integer's power-of-two sizing.
func (d *Decoder) decodeUIDObject(tag, low uint8) Value {
	size := int(low) + 1
	buf := d.r.readN(size)
	if len(buf) != size {
		d.setCorrupt()
		return rawValue(tag, buf)
	}
	return uidValue(new(big.Int).SetBytes(buf))
}

func beUint64(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

// readCount reads up to cnt bytes, guarding against absurd declared counts
// (an adversarial file can claim an exabyte string) by never asking the
// reader for more than remains in the file.
func readCount(r *byteReader, cnt uint64) []byte {
	remaining := r.Len() - r.pos()
	if remaining < 0 {
		remaining = 0
	}
	n := cnt
	if n > uint64(remaining) {
		n = uint64(remaining)
	}
	return r.readN(int(n))
}

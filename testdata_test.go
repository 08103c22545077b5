package bplist

import "encoding/binary"

// buildTrailer assembles the 32-byte trailer per spec §4.3.
func buildTrailer(sortVersion, offsetIntSize, objectRefSize byte, numObjects, topObject, offsetTableOffset uint64) []byte {
	t := make([]byte, 32)
	t[5] = sortVersion
	t[6] = offsetIntSize
	t[7] = objectRefSize
	binary.BigEndian.PutUint64(t[8:16], numObjects)
	binary.BigEndian.PutUint64(t[16:24], topObject)
	binary.BigEndian.PutUint64(t[24:32], offsetTableOffset)
	return t
}

// buildOffsetTable encodes offsets using offsetIntSize-byte big-endian
// entries. Only widths in {1,2,4,8} are exercised by these helpers.
func buildOffsetTable(offsetIntSize int, offsets []uint64) []byte {
	out := make([]byte, 0, len(offsets)*offsetIntSize)
	for _, off := range offsets {
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, off)
		out = append(out, buf[8-offsetIntSize:]...)
	}
	return out
}

// buildBplist assembles a complete file: header, object-area bytes (as
// given verbatim), the offset table, and the trailer.
func buildBplist(version string, objectArea []byte, offsets []uint64, offsetIntSize, objectRefSize int, topObject uint64) []byte {
	out := append([]byte("bplist"+version), objectArea...)
	offsetTableOffset := uint64(len(out))
	out = append(out, buildOffsetTable(offsetIntSize, offsets)...)
	out = append(out, buildTrailer(0, byte(offsetIntSize), byte(objectRefSize), uint64(len(offsets)), topObject, offsetTableOffset)...)
	return out
}

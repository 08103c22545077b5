package bplist

// Marker tag high nibbles, per spec §4.5. Named after the teacher
// library's own bpTag* constants.
const (
	tagSingleton uint8 = 0x00
	tagInteger   uint8 = 0x10
	tagReal      uint8 = 0x20
	tagDate      uint8 = 0x30
	tagData      uint8 = 0x40
	tagASCII     uint8 = 0x50
	tagUTF16     uint8 = 0x60
	tagUID       uint8 = 0x80
	tagArray     uint8 = 0xA0
	tagDict      uint8 = 0xD0
)

const (
	lowNull      uint8 = 0x0
	lowBoolFalse uint8 = 0x8
	lowBoolTrue  uint8 = 0x9
	lowFill      uint8 = 0xF
	lowExtended  uint8 = 0xF
)

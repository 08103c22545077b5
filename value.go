package bplist

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

// Kind identifies which field of a Value is meaningful.
type Kind uint

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindFill
	KindInteger
	KindReal
	KindDate
	KindData
	KindAsciiString
	KindUtf16String
	KindUid
	KindArray
	KindDict
	KindRaw
	KindCorruptRef
	KindUnknown
)

var kindNames = map[Kind]string{
	KindInvalid:     "invalid",
	KindNull:        "null",
	KindBool:        "bool",
	KindFill:        "fill",
	KindInteger:     "integer",
	KindReal:        "real",
	KindDate:        "date",
	KindData:        "data",
	KindAsciiString: "ascii-string",
	KindUtf16String: "utf16-string",
	KindUid:         "uid",
	KindArray:       "array",
	KindDict:        "dict",
	KindRaw:         "raw",
	KindCorruptRef:  "corrupt-ref",
	KindUnknown:     "unknown",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint(k))
}

// DictEntry is one key/value pair of a Dict. A Dict decoded from a binary
// plist keeps its entries in file order; a Dict converted from an XML plist
// has its entries in no defined order.
type DictEntry struct {
	Key Value
	Val Value
}

// Value is the tagged union produced by the decoder. Only the fields
// relevant to Kind are populated; the rest are zero.
type Value struct {
	Kind Kind

	Bool bool

	// Int holds Integer values. IntUnsigned records whether the source
	// width/version pair mandated an unsigned reading (see §4.2 of the
	// spec this implements); Render does not consult it, and Int is always
	// the mathematically correct value either way.
	Int         *big.Int
	IntUnsigned bool

	RealWide bool // true if the source was 8 bytes, false if 4
	Real     float64

	Date time.Time

	// Bytes backs Data, AsciiString and Raw.
	Bytes []byte

	// Str backs Utf16String (decoded). A coerced dict key is a CorruptRef
	// value; its "corrupt:<r>" text is produced only when rendering (see
	// renderKey).
	Str string

	Uid *big.Int

	Items   []Value
	Entries []DictEntry

	// Marker is the tag byte that produced an Unknown or Raw value, kept
	// for forensic context.
	Marker byte

	// CorruptIndex is the unresolved reference behind a CorruptRef.
	CorruptIndex uint64
}

func null() Value                  { return Value{Kind: KindNull} }
func fill() Value                  { return Value{Kind: KindFill} }
func boolValue(b bool) Value       { return Value{Kind: KindBool, Bool: b} }
func integer(i *big.Int, unsigned bool) Value {
	return Value{Kind: KindInteger, Int: i, IntUnsigned: unsigned}
}
func real(v float64, wide bool) Value { return Value{Kind: KindReal, Real: v, RealWide: wide} }
func dateValue(t time.Time) Value     { return Value{Kind: KindDate, Date: t} }
func data(b []byte) Value             { return Value{Kind: KindData, Bytes: b} }
func asciiString(b []byte) Value      { return Value{Kind: KindAsciiString, Bytes: b} }
func utf16String(s string) Value      { return Value{Kind: KindUtf16String, Str: s} }
func uidValue(v *big.Int) Value       { return Value{Kind: KindUid, Uid: v} }
func array(items []Value) Value       { return Value{Kind: KindArray, Items: items} }
func dict(entries []DictEntry) Value  { return Value{Kind: KindDict, Entries: entries} }

func rawValue(marker byte, b []byte) Value {
	return Value{Kind: KindRaw, Marker: marker, Bytes: b}
}

func unknownValue(marker byte) Value {
	return Value{Kind: KindUnknown, Marker: marker}
}

func corruptRef(index uint64) Value {
	return Value{Kind: KindCorruptRef, CorruptIndex: index}
}

func corruptKeyText(index uint64) string {
	return fmt.Sprintf("corrupt:%d", index)
}

// Sentinel returns the recommended string rendering of spec §6 for the
// sentinel and singleton variants, or "" for variants that carry real data.
func (v Value) Sentinel() string {
	switch v.Kind {
	case KindNull, KindFill:
		return "NULL"
	case KindCorruptRef:
		return fmt.Sprintf("CORRUPTREF(%d)", v.CorruptIndex)
	case KindRaw:
		return fmt.Sprintf("RAW(%s)", hex.EncodeToString(v.Bytes))
	case KindUnknown:
		return fmt.Sprintf("UNKNOWN(0x%02x)", v.Marker)
	}
	return ""
}

// Render walks v into a plain Go value tree (nil, bool, *big.Int, float64,
// time.Time, []byte, string, []interface{}, and map[string]interface{} for
// a Dict, which does not keep entry order) suitable for
// encoding/json or gopkg.in/yaml.v2 marshaling. Sentinel variants become
// their §6 string form.
func (v Value) Render() interface{} {
	switch v.Kind {
	case KindNull, KindFill:
		return nil
	case KindBool:
		return v.Bool
	case KindInteger:
		return v.Int
	case KindReal:
		return v.Real
	case KindDate:
		return v.Date
	case KindData:
		return v.Bytes
	case KindAsciiString:
		return string(v.Bytes)
	case KindUtf16String:
		return v.Str
	case KindUid:
		return v.Uid
	case KindArray:
		out := make([]interface{}, len(v.Items))
		for i, it := range v.Items {
			out[i] = it.Render()
		}
		return out
	case KindDict:
		out := make(map[string]interface{}, len(v.Entries))
		for _, e := range v.Entries {
			out[renderKey(e.Key)] = e.Val.Render()
		}
		return out
	case KindRaw, KindCorruptRef, KindUnknown:
		return v.Sentinel()
	}
	return nil
}

func renderKey(k Value) string {
	switch k.Kind {
	case KindAsciiString:
		return string(k.Bytes)
	case KindUtf16String:
		return k.Str
	case KindCorruptRef:
		return corruptKeyText(k.CorruptIndex)
	default:
		if s := k.Sentinel(); s != "" {
			return s
		}
		return fmt.Sprintf("%v", k.Render())
	}
}

package bplist

import (
	"math/big"
	"testing"
)

func TestSentinelRendering(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{null(), "NULL"},
		{fill(), "NULL"},
		{corruptRef(7), "CORRUPTREF(7)"},
		{rawValue(0x1F, []byte{0xAB, 0xCD}), "RAW(abcd)"},
		{unknownValue(0x03), "UNKNOWN(0x03)"},
	}
	for _, c := range cases {
		if got := c.v.Sentinel(); got != c.want {
			t.Errorf("Sentinel() = %q, want %q", got, c.want)
		}
	}
}

func TestRenderArrayWithSentinels(t *testing.T) {
	v := array([]Value{boolValue(false), corruptRef(0)})
	got, ok := v.Render().([]interface{})
	if !ok {
		t.Fatalf("Render() did not return a slice: %#v", v.Render())
	}
	if len(got) != 2 || got[0] != false || got[1] != "CORRUPTREF(0)" {
		t.Errorf("Render() = %#v", got)
	}
}

func TestRenderDictCoercedKey(t *testing.T) {
	v := dict([]DictEntry{{Key: corruptRef(0), Val: boolValue(true)}})
	got, ok := v.Render().(map[string]interface{})
	if !ok {
		t.Fatalf("Render() did not return a map: %#v", v.Render())
	}
	if got["corrupt:0"] != true {
		t.Errorf("Render() = %#v, want corrupt:0 -> true", got)
	}
}

func TestRenderInteger(t *testing.T) {
	v := integer(big.NewInt(-2), false)
	got, ok := v.Render().(*big.Int)
	if !ok || got.Cmp(big.NewInt(-2)) != 0 {
		t.Errorf("Render() = %#v, want -2", v.Render())
	}
}

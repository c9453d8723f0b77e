package nrbfprim

import "testing"

func TestWriter_VarInt_RoundTrip(t *testing.T) {
	for _, n := range []uint32{0, 1, 127, 128, 16383, 16384, 0x7fffffff} {
		w := NewWriter()
		w.WriteVarInt(n)
		r := NewReader(w.Bytes())
		got, err := r.ReadVarInt()
		if err != nil {
			t.Fatalf("n=%d: ReadVarInt() failed: %v", n, err)
		}
		if got != n {
			t.Errorf("n=%d: round trip = %d", n, got)
		}
	}
}

func TestWriter_String_RoundTrip(t *testing.T) {
	for _, s := range []string{"", "a", "hello, world", "café", "日本語"} {
		w := NewWriter()
		w.WriteString(s)
		r := NewReader(w.Bytes())
		got, err := r.ReadString()
		if err != nil {
			t.Fatalf("%q: ReadString() failed: %v", s, err)
		}
		if got != s {
			t.Errorf("round trip = %q, want %q", got, s)
		}
	}
}

func TestWriter_Integers_RoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteInt16(-1234)
	w.WriteUint16(40000)
	w.WriteInt32(-123456789)
	w.WriteUint32(3000000000)
	w.WriteInt64(-9000000000000000000)
	w.WriteUint64(18000000000000000000)
	w.WriteFloat32(3.25)
	w.WriteFloat64(6.5)
	w.WriteBool(true)

	r := NewReader(w.Bytes())
	if v, _ := r.ReadInt16(); v != -1234 {
		t.Errorf("ReadInt16() = %d", v)
	}
	if v, _ := r.ReadUint16(); v != 40000 {
		t.Errorf("ReadUint16() = %d", v)
	}
	if v, _ := r.ReadInt32(); v != -123456789 {
		t.Errorf("ReadInt32() = %d", v)
	}
	if v, _ := r.ReadUint32(); v != 3000000000 {
		t.Errorf("ReadUint32() = %d", v)
	}
	if v, _ := r.ReadInt64(); v != -9000000000000000000 {
		t.Errorf("ReadInt64() = %d", v)
	}
	if v, _ := r.ReadUint64(); v != 18000000000000000000 {
		t.Errorf("ReadUint64() = %d", v)
	}
	if v, _ := r.ReadFloat32(); v != 3.25 {
		t.Errorf("ReadFloat32() = %v", v)
	}
	if v, _ := r.ReadFloat64(); v != 6.5 {
		t.Errorf("ReadFloat64() = %v", v)
	}
	if v, _ := r.ReadBool(); v != true {
		t.Errorf("ReadBool() = %v", v)
	}
}

func TestWriter_DecimalAndTicks_RoundTrip(t *testing.T) {
	w := NewWriter()
	var dec [16]byte
	for i := range dec {
		dec[i] = byte(i)
	}
	w.WriteDecimalBytes(dec)
	w.WriteTicks(636000000000000000)

	r := NewReader(w.Bytes())
	gotDec, err := r.ReadDecimalBytes()
	if err != nil {
		t.Fatalf("ReadDecimalBytes() failed: %v", err)
	}
	if gotDec != dec {
		t.Errorf("ReadDecimalBytes() = %v, want %v", gotDec, dec)
	}
	ticks, err := r.ReadTicks()
	if err != nil {
		t.Fatalf("ReadTicks() failed: %v", err)
	}
	if ticks != 636000000000000000 {
		t.Errorf("ReadTicks() = %d", ticks)
	}
}

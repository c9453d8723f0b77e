package nrbf

import "github.com/nrbfedit/nrbfedit/internal/nrbfprim"

// buildSample writes a small but representative document: a root class
// with an inline int32, a nested string record, and a nested
// System.Guid record.
func buildSample(count int32, guidA int32, guidB, guidC int16, guidTail [8]byte, name string) []byte {
	w := nrbfprim.NewWriter()

	w.WriteByte(0) // SerializedStreamHeader
	w.WriteInt32(1)
	w.WriteInt32(-1)
	w.WriteInt32(1)
	w.WriteInt32(0)

	w.WriteByte(5) // ClassWithMembersAndTypes
	w.WriteInt32(1)
	w.WriteString("Sample")
	w.WriteInt32(3)
	w.WriteString("Count")
	w.WriteString("Name")
	w.WriteString("Id")
	w.WriteByte(0) // Count: Primitive
	w.WriteByte(2) // Name: Object
	w.WriteByte(2) // Id: Object
	w.WriteByte(8) // Count additional: Int32
	w.WriteInt32(0) // library id
	w.WriteInt32(count) // Count inline value

	w.WriteByte(6) // BinaryObjectString, object 2
	w.WriteInt32(2)
	w.WriteString(name)

	w.WriteByte(4) // SystemClassWithMembersAndTypes, object 3 (System.Guid)
	w.WriteInt32(3)
	w.WriteString("System.Guid")
	w.WriteInt32(11)
	for _, n := range []string{"_a", "_b", "_c", "_d", "_e", "_f", "_g", "_h", "_i", "_j", "_k"} {
		w.WriteString(n)
	}
	w.WriteByte(0) // _a: Primitive
	w.WriteByte(0) // _b
	w.WriteByte(0) // _c
	for i := 0; i < 8; i++ {
		w.WriteByte(0) // _d.._k
	}
	w.WriteByte(8) // _a additional: Int32
	w.WriteByte(7) // _b additional: Int16
	w.WriteByte(7) // _c additional: Int16
	for i := 0; i < 8; i++ {
		w.WriteByte(2) // _d.._k additional: Byte
	}
	w.WriteInt32(guidA)
	w.WriteInt16(guidB)
	w.WriteInt16(guidC)
	for _, b := range guidTail {
		w.WriteByte(b)
	}

	w.WriteByte(11) // MessageEnd
	return w.Bytes()
}

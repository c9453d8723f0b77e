package nrbfdecode

import "github.com/nrbfedit/nrbfedit/internal/nrbfprim"

// writeHeader writes a SerializedStreamHeader record (tag 0).
func writeHeader(w *nrbfprim.Writer, rootID, headerID int32) {
	w.WriteByte(0)
	w.WriteInt32(rootID)
	w.WriteInt32(headerID)
	w.WriteInt32(1)
	w.WriteInt32(0)
}

func writeMessageEnd(w *nrbfprim.Writer) {
	w.WriteByte(11)
}

// writeSimpleClass writes a ClassWithMembersAndTypes (tag 5) record
// with a single Int32 member, no library id registered elsewhere.
func writeSimpleClass(w *nrbfprim.Writer, objectID int32, className, memberName string, value int32) {
	w.WriteByte(5)
	w.WriteInt32(objectID)
	w.WriteString(className)
	w.WriteInt32(1)
	w.WriteString(memberName)
	w.WriteByte(0) // BinaryTypePrimitive
	w.WriteByte(8) // PrimitiveInt32
	w.WriteInt32(0)
	w.WriteInt32(value)
}

func writeString(w *nrbfprim.Writer, objectID int32, value string) {
	w.WriteByte(6)
	w.WriteInt32(objectID)
	w.WriteString(value)
}

func writeLibrary(w *nrbfprim.Writer, libraryID int32, name string) {
	w.WriteByte(12)
	w.WriteInt32(libraryID)
	w.WriteString(name)
}

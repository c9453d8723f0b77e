package nrbfdecode

import (
	"testing"

	"github.com/nrbfedit/nrbfedit/internal/nrbfprim"
	"github.com/nrbfedit/nrbfedit/internal/nrbfrecord"
)

func TestDecode_SingleClassRoot(t *testing.T) {
	w := nrbfprim.NewWriter()
	writeHeader(w, 1, -1)
	writeSimpleClass(w, 1, "Sample", "Value", 42)
	writeMessageEnd(w)

	res, err := Decode(w.Bytes())
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if res.Header.RootID != 1 {
		t.Fatalf("RootID = %d, want 1", res.Header.RootID)
	}
	rec, ok := res.Identity[1].(*nrbfrecord.ClassRecord)
	if !ok {
		t.Fatalf("Identity[1] is not a *ClassRecord: %T", res.Identity[1])
	}
	val, ok := rec.Members["Value"]
	if !ok {
		t.Fatalf("member %q missing", "Value")
	}
	if val.Kind != nrbfrecord.KindPrimitive || val.Primitive.Value != int32(42) {
		t.Errorf("Value member = %+v, want primitive int32(42)", val)
	}
}

func TestDecode_StringAndReference(t *testing.T) {
	// A class with a string-object member, the string record itself,
	// and a second class member that references the same string.
	w := nrbfprim.NewWriter()
	writeHeader(w, 1, -1)

	w.WriteByte(5) // ClassWithMembersAndTypes
	w.WriteInt32(1)
	w.WriteString("Pair")
	w.WriteInt32(2)
	w.WriteString("First")
	w.WriteString("Second")
	w.WriteByte(1) // BinaryTypeString
	w.WriteByte(1) // BinaryTypeString
	w.WriteInt32(0) // library id

	w.WriteByte(6) // BinaryObjectString, object id 2
	w.WriteInt32(2)
	w.WriteString("shared")

	w.WriteByte(9) // MemberReference to object 2
	w.WriteInt32(2)

	writeMessageEnd(w)

	res, err := Decode(w.Bytes())
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	rec := res.Identity[1].(*nrbfrecord.ClassRecord)
	first := rec.Members["First"]
	second := rec.Members["Second"]
	if first.Kind != nrbfrecord.KindRecord || first.RecordID != 2 {
		t.Errorf("First = %+v, want record id 2", first)
	}
	if second.Kind != nrbfrecord.KindReference || second.RefID != 2 {
		t.Errorf("Second = %+v, want reference id 2", second)
	}
	str := res.Identity[2].(*nrbfrecord.StringRecord)
	if str.Value != "shared" {
		t.Errorf("shared string = %q", str.Value)
	}
}

func TestDecode_SelfReferenceCycle(t *testing.T) {
	// A class whose one member refers back to itself.
	w := nrbfprim.NewWriter()
	writeHeader(w, 1, -1)

	w.WriteByte(5)
	w.WriteInt32(1)
	w.WriteString("Node")
	w.WriteInt32(1)
	w.WriteString("Next")
	w.WriteByte(2) // BinaryTypeObject
	w.WriteInt32(0)

	w.WriteByte(9) // MemberReference to object 1 (itself)
	w.WriteInt32(1)

	writeMessageEnd(w)

	res, err := Decode(w.Bytes())
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	rec := res.Identity[1].(*nrbfrecord.ClassRecord)
	next := rec.Members["Next"]
	if next.Kind != nrbfrecord.KindReference || next.RefID != 1 {
		t.Errorf("Next = %+v, want self reference", next)
	}
}

func TestDecode_NullRun(t *testing.T) {
	// A rank-1 object array of length 3 with a single ObjectNullMultiple
	// run covering every slot.
	w := nrbfprim.NewWriter()
	writeHeader(w, 1, -1)

	w.WriteByte(16) // ArraySingleObject
	w.WriteInt32(1)
	w.WriteInt32(3)

	w.WriteByte(14) // ObjectNullMultiple
	w.WriteInt32(3)

	writeMessageEnd(w)

	res, err := Decode(w.Bytes())
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	arr := res.Identity[1].(*nrbfrecord.ArrayRecord)
	if len(arr.Elements) != 3 {
		t.Fatalf("len(Elements) = %d, want 3", len(arr.Elements))
	}
	for i, v := range arr.Elements {
		if v.Kind != nrbfrecord.KindNull {
			t.Errorf("Elements[%d] = %+v, want null", i, v)
		}
	}
}

func TestDecode_RootNotFound(t *testing.T) {
	w := nrbfprim.NewWriter()
	writeHeader(w, 99, -1)
	writeSimpleClass(w, 1, "Sample", "Value", 42)
	writeMessageEnd(w)

	if _, err := Decode(w.Bytes()); err == nil {
		t.Fatal("Decode() succeeded, want error for missing root")
	}
}

func TestDecode_RecordBudget(t *testing.T) {
	w := nrbfprim.NewWriter()
	writeHeader(w, 1, -1)
	writeSimpleClass(w, 1, "Sample", "Value", 42)
	writeMessageEnd(w)

	d := NewDecoder(WithRecordBudget(0))
	if _, err := d.Decode(w.Bytes()); err == nil {
		t.Fatal("Decode() succeeded, want record budget error")
	}
}

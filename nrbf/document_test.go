package nrbf

import (
	"testing"

	"github.com/google/uuid"
)

func TestLoad_BasicNavigation(t *testing.T) {
	data := buildSample(42, 0x01020304, 0x0506, 0x0708, [8]byte{9, 10, 11, 12, 13, 14, 15, 16}, "hello")

	doc, err := Load(data)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if doc.Dirty() {
		t.Error("freshly loaded Document reports Dirty()")
	}

	v, err := doc.Get("Count")
	if err != nil {
		t.Fatalf("Get(Count) failed: %v", err)
	}
	if v.Primitive.Value != int32(42) {
		t.Errorf("Count = %v, want 42", v.Primitive.Value)
	}

	desc, err := doc.Describe("Name")
	if err != nil {
		t.Fatalf("Describe(Name) failed: %v", err)
	}
	if desc != `"hello"` {
		t.Errorf("Describe(Name) = %q, want %q", desc, `"hello"`)
	}

	if len(doc.Classes()) != 2 {
		t.Errorf("len(Classes()) = %d, want 2", len(doc.Classes()))
	}
	if len(doc.Strings()) != 1 {
		t.Errorf("len(Strings()) = %d, want 1", len(doc.Strings()))
	}
}

func TestDocument_SetInt32(t *testing.T) {
	data := buildSample(42, 1, 2, 3, [8]byte{}, "hello")
	doc, err := Load(data)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if err := doc.SetInt32("Count", 100); err != nil {
		t.Fatalf("SetInt32() failed: %v", err)
	}
	if !doc.Dirty() {
		t.Error("Dirty() = false after edit")
	}
	v, err := doc.Get("Count")
	if err != nil {
		t.Fatalf("Get(Count) failed: %v", err)
	}
	if v.Primitive.Value != int32(100) {
		t.Errorf("Count = %v, want 100", v.Primitive.Value)
	}
}

func TestDocument_SetStringOnInt32Slot_TypeMismatch(t *testing.T) {
	data := buildSample(42, 1, 2, 3, [8]byte{}, "hello")
	doc, err := Load(data)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	err = doc.SetString("Count", "oops")
	var mismatch *TypeMismatchError
	if !asTypeMismatch(err, &mismatch) {
		t.Fatalf("SetString(Count) error = %v, want *TypeMismatchError", err)
	}
}

func TestDocument_SetString(t *testing.T) {
	data := buildSample(42, 1, 2, 3, [8]byte{}, "hello")
	doc, err := Load(data)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if err := doc.SetString("Name", "goodbye"); err != nil {
		t.Fatalf("SetString() failed: %v", err)
	}
	desc, err := doc.Describe("Name")
	if err != nil {
		t.Fatalf("Describe(Name) failed: %v", err)
	}
	if desc != `"goodbye"` {
		t.Errorf("Describe(Name) = %q, want %q", desc, `"goodbye"`)
	}
}

func TestDocument_PathNotFound(t *testing.T) {
	data := buildSample(42, 1, 2, 3, [8]byte{}, "hello")
	doc, err := Load(data)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	_, err = doc.Get("Nonexistent")
	var notFound *PathNotFoundError
	if !asPathNotFound(err, &notFound) {
		t.Fatalf("Get(Nonexistent) error = %v, want *PathNotFoundError", err)
	}
}

func TestDocument_GuidRoundTrip(t *testing.T) {
	raw := [16]byte{4, 3, 2, 1, 6, 5, 8, 7, 9, 10, 11, 12, 13, 14, 15, 16}
	want := uuid.UUID(raw).String()

	a := int32(raw[0]) | int32(raw[1])<<8 | int32(raw[2])<<16 | int32(raw[3])<<24
	b := int16(raw[4]) | int16(raw[5])<<8
	c := int16(raw[6]) | int16(raw[7])<<8
	var tail [8]byte
	copy(tail[:], raw[8:])

	data := buildSample(0, a, b, c, tail, "hello")
	doc, err := Load(data)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	got, err := doc.GetGuid("Id")
	if err != nil {
		t.Fatalf("GetGuid() failed: %v", err)
	}
	if got != want {
		t.Errorf("GetGuid() = %s, want %s", got, want)
	}

	newID := uuid.New()
	if err := doc.SetGuid("Id", newID.String()); err != nil {
		t.Fatalf("SetGuid() failed: %v", err)
	}
	got2, err := doc.GetGuid("Id")
	if err != nil {
		t.Fatalf("GetGuid() after SetGuid failed: %v", err)
	}
	if got2 != newID.String() {
		t.Errorf("GetGuid() after SetGuid = %s, want %s", got2, newID.String())
	}
}

func TestDocument_SaveNoOpIsByteExact(t *testing.T) {
	data := buildSample(42, 1, 2, 3, [8]byte{9, 8, 7, 6, 5, 4, 3, 2}, "hello")
	doc, err := Load(data)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	out, err := doc.Save()
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if string(out) != string(data) {
		t.Errorf("Save() of an unedited document is not byte-exact")
	}
}

func TestDocument_Traverse(t *testing.T) {
	data := buildSample(42, 1, 2, 3, [8]byte{}, "hello")
	doc, err := Load(data)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	seen := map[string]bool{}
	for path := range doc.Traverse() {
		seen[path] = true
	}
	for _, want := range []string{"Count", "Name", "Id"} {
		if !seen[want] {
			t.Errorf("Traverse() did not yield %q; got %v", want, seen)
		}
	}
}

func asTypeMismatch(err error, target **TypeMismatchError) bool {
	e, ok := err.(*TypeMismatchError)
	if ok {
		*target = e
	}
	return ok
}

func asPathNotFound(err error, target **PathNotFoundError) bool {
	e, ok := err.(*PathNotFoundError)
	if ok {
		*target = e
	}
	return ok
}

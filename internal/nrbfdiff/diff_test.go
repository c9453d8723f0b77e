package nrbfdiff

import (
	"testing"

	"github.com/nrbfedit/nrbfedit/internal/nrbfrecord"
)

type mapResolver map[int32]nrbfrecord.Record

func (m mapResolver) Lookup(id int32) (nrbfrecord.Record, bool) {
	rec, ok := m[id]
	return rec, ok
}

func intVal(n int32) nrbfrecord.Value {
	return nrbfrecord.Value{Kind: nrbfrecord.KindPrimitive, Primitive: nrbfrecord.Primitive{Kind: nrbfrecord.PrimitiveInt32, Value: n}}
}

func TestDiff_AddedAndRemovedMembers(t *testing.T) {
	a := &nrbfrecord.ClassRecord{
		ObjectID: 1,
		Info:     &nrbfrecord.ClassInfo{Name: "Sample", MemberNames: []string{"Old"}},
		Members:  map[string]nrbfrecord.Value{"Old": intVal(1)},
	}
	b := &nrbfrecord.ClassRecord{
		ObjectID: 1,
		Info:     &nrbfrecord.ClassInfo{Name: "Sample", MemberNames: []string{"New"}},
		Members:  map[string]nrbfrecord.Value{"New": intVal(2)},
	}
	ra := mapResolver{1: a}
	rb := mapResolver{1: b}

	changes := Diff(a, ra, b, rb)
	if len(changes) != 2 {
		t.Fatalf("Diff() = %+v, want 2 changes", changes)
	}
	byKind := map[ChangeKind]FieldChange{}
	for _, c := range changes {
		byKind[c.Kind] = c
	}
	if c, ok := byKind[ChangeRemoved]; !ok || c.Path != "Old" {
		t.Errorf("missing ChangeRemoved for Old: %+v", changes)
	}
	if c, ok := byKind[ChangeAdded]; !ok || c.Path != "New" {
		t.Errorf("missing ChangeAdded for New: %+v", changes)
	}
}

func TestDiff_ClassNameMismatchCollapsesToSingleChange(t *testing.T) {
	a := &nrbfrecord.ClassRecord{
		ObjectID: 1,
		Info:     &nrbfrecord.ClassInfo{Name: "Sample", MemberNames: []string{"X"}},
		Members:  map[string]nrbfrecord.Value{"X": intVal(1)},
	}
	b := &nrbfrecord.ClassRecord{
		ObjectID: 1,
		Info:     &nrbfrecord.ClassInfo{Name: "Other", MemberNames: []string{"X"}},
		Members:  map[string]nrbfrecord.Value{"X": intVal(1)},
	}
	ra := mapResolver{1: a}
	rb := mapResolver{1: b}

	changes := Diff(a, ra, b, rb)
	if len(changes) != 1 {
		t.Fatalf("Diff() = %+v, want 1 change", changes)
	}
	if changes[0].Kind != ChangeModified || changes[0].Path != "" {
		t.Errorf("Diff()[0] = %+v, want a single root-level ChangeModified", changes[0])
	}
	if changes[0].Before != "Sample" || changes[0].After != "Other" {
		t.Errorf("Diff()[0] = %+v, want Before=Sample After=Other", changes[0])
	}
}

func TestDiff_ArrayLengthMismatch(t *testing.T) {
	a := &nrbfrecord.ArrayRecord{
		ObjectID: 1,
		Kind:     nrbfrecord.TagArraySinglePrimitive,
		Lengths:  []int32{1},
		Elements: []nrbfrecord.Value{intVal(1)},
	}
	b := &nrbfrecord.ArrayRecord{
		ObjectID: 1,
		Kind:     nrbfrecord.TagArraySinglePrimitive,
		Lengths:  []int32{2},
		Elements: []nrbfrecord.Value{intVal(1), intVal(9)},
	}
	ra := mapResolver{1: a}
	rb := mapResolver{1: b}

	changes := Diff(a, ra, b, rb)
	if len(changes) != 1 {
		t.Fatalf("Diff() = %+v, want 1 change", changes)
	}
	if changes[0].Path != "[1]" || changes[0].Kind != ChangeAdded {
		t.Errorf("Diff()[0] = %+v, want added [1]", changes[0])
	}
}

func TestDiff_Identical(t *testing.T) {
	a := &nrbfrecord.ClassRecord{
		ObjectID: 1,
		Info:     &nrbfrecord.ClassInfo{Name: "Sample", MemberNames: []string{"X"}},
		Members:  map[string]nrbfrecord.Value{"X": intVal(5)},
	}
	r := mapResolver{1: a}

	if changes := Diff(a, r, a, r); len(changes) != 0 {
		t.Errorf("Diff(a, a) = %+v, want no changes", changes)
	}
}

package nrbfpath

import (
	"testing"

	"github.com/nrbfedit/nrbfedit/internal/nrbfrecord"
)

type mapResolver map[int32]nrbfrecord.Record

func (m mapResolver) Lookup(id int32) (nrbfrecord.Record, bool) {
	rec, ok := m[id]
	return rec, ok
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want []Segment
	}{
		{"Name", []Segment{{Name: "Name"}}},
		{"[2]", []Segment{{HasIndex: true, Index: 2}}},
		{"Items[2]", []Segment{{Name: "Items", HasIndex: true, Index: 2}}},
		{"Root.Items[2].Name", []Segment{
			{Name: "Root"},
			{Name: "Items", HasIndex: true, Index: 2},
			{Name: "Name"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.in, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Parse(%q)[%d] = %+v, want %+v", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func buildGraph() (nrbfrecord.Record, mapResolver) {
	root := &nrbfrecord.ClassRecord{
		ObjectID: 1,
		Info:     &nrbfrecord.ClassInfo{ObjectID: 1, Name: "Root", MemberNames: []string{"Items", "Scalar"}},
		Members: map[string]nrbfrecord.Value{
			"Items":  {Kind: nrbfrecord.KindRecord, RecordID: 2},
			"Scalar": {Kind: nrbfrecord.KindPrimitive, Primitive: nrbfrecord.Primitive{Kind: nrbfrecord.PrimitiveInt32, Value: int32(7)}},
		},
	}
	arr := &nrbfrecord.ArrayRecord{
		ObjectID: 2,
		Kind:     nrbfrecord.TagArraySingleObject,
		Lengths:  []int32{2},
		Elements: []nrbfrecord.Value{
			{Kind: nrbfrecord.KindRecord, RecordID: 3},
			{Kind: nrbfrecord.KindNull},
		},
	}
	child := &nrbfrecord.ClassRecord{
		ObjectID: 3,
		Info:     &nrbfrecord.ClassInfo{ObjectID: 3, Name: "Child", MemberNames: []string{"Name"}},
		Members: map[string]nrbfrecord.Value{
			"Name": {Kind: nrbfrecord.KindPrimitive, Primitive: nrbfrecord.Primitive{Kind: nrbfrecord.PrimitiveString, Value: "leaf"}},
		},
	}
	resolver := mapResolver{1: root, 2: arr, 3: child}
	return root, resolver
}

func TestResolve(t *testing.T) {
	root, resolver := buildGraph()

	v, err := Resolve(root, resolver, "Scalar")
	if err != nil {
		t.Fatalf("Resolve(Scalar) failed: %v", err)
	}
	if v.Primitive.Value != int32(7) {
		t.Errorf("Scalar = %v, want 7", v.Primitive.Value)
	}

	v, err = Resolve(root, resolver, "Items[0].Name")
	if err != nil {
		t.Fatalf("Resolve(Items[0].Name) failed: %v", err)
	}
	if v.Primitive.Value != "leaf" {
		t.Errorf("Items[0].Name = %v, want leaf", v.Primitive.Value)
	}

	v, err = Resolve(root, resolver, "Items[1]")
	if err != nil {
		t.Fatalf("Resolve(Items[1]) failed: %v", err)
	}
	if v.Kind != nrbfrecord.KindNull {
		t.Errorf("Items[1] = %+v, want null", v)
	}
}

func TestResolve_NotFound(t *testing.T) {
	root, resolver := buildGraph()
	if _, err := Resolve(root, resolver, "Missing"); err == nil {
		t.Fatal("Resolve(Missing) succeeded, want error")
	}
	if _, err := Resolve(root, resolver, "Items[5]"); err == nil {
		t.Fatal("Resolve(Items[5]) succeeded, want error")
	}
}

func TestResolve_FinalReferenceIsFollowed(t *testing.T) {
	str := &nrbfrecord.StringRecord{ObjectID: 2, Value: "hi"}
	root := &nrbfrecord.ClassRecord{
		ObjectID: 1,
		Info:     &nrbfrecord.ClassInfo{ObjectID: 1, Name: "Root", MemberNames: []string{"Ref"}},
		Members: map[string]nrbfrecord.Value{
			"Ref": {Kind: nrbfrecord.KindReference, RefID: 2},
		},
	}
	resolver := mapResolver{1: root, 2: str}

	v, err := Resolve(root, resolver, "Ref")
	if err != nil {
		t.Fatalf("Resolve(Ref) failed: %v", err)
	}
	if v.Kind != nrbfrecord.KindRecord || v.RecordID != 2 {
		t.Errorf("Resolve(Ref) = %+v, want a KindRecord naming object 2", v)
	}
}

func TestResolve_DanglingReference(t *testing.T) {
	root := &nrbfrecord.ClassRecord{
		ObjectID: 1,
		Info:     &nrbfrecord.ClassInfo{ObjectID: 1, Name: "Root", MemberNames: []string{"Ref"}},
		Members: map[string]nrbfrecord.Value{
			"Ref": {Kind: nrbfrecord.KindReference, RefID: 99},
		},
	}
	resolver := mapResolver{1: root}
	if _, err := Resolve(root, resolver, "Ref.Anything"); err == nil {
		t.Fatal("Resolve() succeeded through a dangling reference, want error")
	}
}

func TestResolveAccessor_SetMember(t *testing.T) {
	root, resolver := buildGraph()
	acc, err := ResolveAccessor(root, resolver, "Scalar")
	if err != nil {
		t.Fatalf("ResolveAccessor(Scalar) failed: %v", err)
	}
	acc.Set(nrbfrecord.Value{Kind: nrbfrecord.KindPrimitive, Primitive: nrbfrecord.Primitive{Kind: nrbfrecord.PrimitiveInt32, Value: int32(42)}})

	v, err := Resolve(root, resolver, "Scalar")
	if err != nil {
		t.Fatalf("Resolve(Scalar) after Set failed: %v", err)
	}
	if v.Primitive.Value != int32(42) {
		t.Errorf("Scalar after Set = %v, want 42", v.Primitive.Value)
	}
}

func TestResolveAccessor_SetArrayElement(t *testing.T) {
	root, resolver := buildGraph()
	acc, err := ResolveAccessor(root, resolver, "Items[1]")
	if err != nil {
		t.Fatalf("ResolveAccessor(Items[1]) failed: %v", err)
	}
	acc.Set(nrbfrecord.Value{Kind: nrbfrecord.KindRecord, RecordID: 3})

	v, err := Resolve(root, resolver, "Items[1].Name")
	if err != nil {
		t.Fatalf("Resolve(Items[1].Name) after Set failed: %v", err)
	}
	if v.Primitive.Value != "leaf" {
		t.Errorf("Items[1].Name after Set = %v, want leaf", v.Primitive.Value)
	}
}

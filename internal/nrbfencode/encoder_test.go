package nrbfencode

import (
	"testing"

	"github.com/nrbfedit/nrbfedit/internal/nrbfdecode"
	"github.com/nrbfedit/nrbfedit/internal/nrbfprim"
	"github.com/nrbfedit/nrbfedit/internal/nrbfrecord"
)

func buildClassFixture() []byte {
	w := nrbfprim.NewWriter()
	w.WriteByte(0)
	w.WriteInt32(1)
	w.WriteInt32(-1)
	w.WriteInt32(1)
	w.WriteInt32(0)

	w.WriteByte(5) // ClassWithMembersAndTypes
	w.WriteInt32(1)
	w.WriteString("Sample")
	w.WriteInt32(2)
	w.WriteString("Count")
	w.WriteString("Label")
	w.WriteByte(0) // Count: Primitive
	w.WriteByte(1) // Label: String
	w.WriteByte(8) // Count additional: Int32
	w.WriteInt32(0)
	w.WriteInt32(42)

	w.WriteByte(6) // BinaryObjectString, object 2
	w.WriteInt32(2)
	w.WriteString("hello")

	w.WriteByte(11)
	return w.Bytes()
}

func TestEncode_PristineRoundTrip(t *testing.T) {
	data := buildClassFixture()

	res, err := nrbfdecode.Decode(data)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}

	out, err := Encode(&Input{Header: res.Header, Order: res.Order, Identity: res.Identity})
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	if string(out) != string(data) {
		t.Errorf("Encode(Decode(data)) is not byte-exact\ngot:  % x\nwant: % x", out, data)
	}
}

func TestEncode_UnresolvableReference(t *testing.T) {
	in := &Input{
		Header: nrbfrecord.Header{RootID: 1, HeaderID: -1, MajorVersion: 1, MinorVersion: 0},
		Order: []nrbfrecord.Record{
			&nrbfrecord.ClassRecord{
				ObjectID: 1,
				Kind:     nrbfrecord.TagClassWithMembers,
				Info:     &nrbfrecord.ClassInfo{ObjectID: 1, Name: "Sample", MemberNames: []string{"Other"}},
				Members: map[string]nrbfrecord.Value{
					"Other": {Kind: nrbfrecord.KindReference, RefID: 99},
				},
			},
		},
		Identity: map[int32]nrbfrecord.Record{},
	}
	in.Identity[1] = in.Order[0]

	if _, err := Encode(in); err == nil {
		t.Fatal("Encode() succeeded with a dangling reference, want error")
	}
}

func TestEncode_InconsistentArrayLength(t *testing.T) {
	arr := &nrbfrecord.ArrayRecord{
		ObjectID: 1,
		Kind:     nrbfrecord.TagArraySingleObject,
		Lengths:  []int32{3},
		Elements: []nrbfrecord.Value{{Kind: nrbfrecord.KindNull}},
	}
	in := &Input{
		Header:   nrbfrecord.Header{RootID: 1, HeaderID: -1, MajorVersion: 1, MinorVersion: 0},
		Order:    []nrbfrecord.Record{arr},
		Identity: map[int32]nrbfrecord.Record{1: arr},
	}

	if _, err := Encode(in); err == nil {
		t.Fatal("Encode() succeeded with an inconsistent array length, want error")
	}
}

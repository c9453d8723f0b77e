package nrbf

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nrbfedit/nrbfedit/internal/nrbfrecord"
)

// guidFieldOrder is the canonical System.Guid serialization shape: a
// little-endian int32, two little-endian int16s, and eight raw bytes,
// matching .NET's ISerializable implementation for System.Guid.
var guidFieldOrder = []string{"_a", "_b", "_c", "_d", "_e", "_f", "_g", "_h", "_i", "_j", "_k"}

// IsGuid reports whether rec is a serialized System.Guid: a class
// record with the eleven _a.._k fields .NET's Guid.GetObjectData emits.
func IsGuid(rec *nrbfrecord.ClassRecord) bool {
	if rec == nil || rec.Info == nil {
		return false
	}
	if !strings.Contains(rec.Info.Name, "System.Guid") {
		return false
	}
	if len(rec.Info.MemberNames) != len(guidFieldOrder) {
		return false
	}
	for i, name := range guidFieldOrder {
		if rec.Info.MemberNames[i] != name {
			return false
		}
	}
	return true
}

// GuidValue decodes a System.Guid class record to its canonical
// 36-character textual form.
func GuidValue(rec *nrbfrecord.ClassRecord) (string, error) {
	if !IsGuid(rec) {
		return "", &TypeMismatchError{Path: rec.Info.Name, Expected: "System.Guid", Got: rec.Info.Name}
	}

	a, err := memberInt64(rec, "_a")
	if err != nil {
		return "", err
	}
	b, err := memberInt64(rec, "_b")
	if err != nil {
		return "", err
	}
	c, err := memberInt64(rec, "_c")
	if err != nil {
		return "", err
	}

	var raw [16]byte
	raw[0] = byte(a)
	raw[1] = byte(a >> 8)
	raw[2] = byte(a >> 16)
	raw[3] = byte(a >> 24)
	raw[4] = byte(b)
	raw[5] = byte(b >> 8)
	raw[6] = byte(c)
	raw[7] = byte(c >> 8)
	for i, name := range guidFieldOrder[3:] {
		v, err := memberInt64(rec, name)
		if err != nil {
			return "", err
		}
		raw[8+i] = byte(v)
	}

	return uuid.UUID(raw).String(), nil
}

// SetGuid re-encodes text (a canonical 36-character GUID) into rec's
// eleven _a.._k fields, preserving each field's original primitive
// kind.
func SetGuid(rec *nrbfrecord.ClassRecord, text string) error {
	if !IsGuid(rec) {
		return &TypeMismatchError{Path: rec.Info.Name, Expected: "System.Guid", Got: rec.Info.Name}
	}
	id, err := uuid.Parse(text)
	if err != nil {
		return &InvalidGuidFormatError{Value: text, Err: err}
	}
	raw := [16]byte(id)

	a := int32(raw[0]) | int32(raw[1])<<8 | int32(raw[2])<<16 | int32(raw[3])<<24
	b := int16(raw[4]) | int16(raw[5])<<8
	c := int16(raw[6]) | int16(raw[7])<<8

	if err := setMemberSameKind(rec, "_a", int64(a)); err != nil {
		return err
	}
	if err := setMemberSameKind(rec, "_b", int64(b)); err != nil {
		return err
	}
	if err := setMemberSameKind(rec, "_c", int64(c)); err != nil {
		return err
	}
	for i, name := range guidFieldOrder[3:] {
		if err := setMemberSameKind(rec, name, int64(raw[8+i])); err != nil {
			return err
		}
	}
	return nil
}

func memberInt64(rec *nrbfrecord.ClassRecord, name string) (int64, error) {
	v, ok := rec.Members[name]
	if !ok {
		return 0, &PathNotFoundError{Path: rec.Info.Name, Segment: name}
	}
	n, ok := primitiveToInt64(v.Primitive)
	if !ok {
		return 0, &TypeMismatchError{Path: name, Expected: "integer", Got: v.Primitive.Kind.String()}
	}
	return n, nil
}

func setMemberSameKind(rec *nrbfrecord.ClassRecord, name string, n int64) error {
	v, ok := rec.Members[name]
	if !ok {
		return &PathNotFoundError{Path: rec.Info.Name, Segment: name}
	}
	val, err := int64ToPrimitive(v.Primitive.Kind, n)
	if err != nil {
		return err
	}
	v.Primitive = val
	rec.Members[name] = v
	return nil
}

func primitiveToInt64(p nrbfrecord.Primitive) (int64, bool) {
	switch v := p.Value.(type) {
	case byte:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case uint16:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint32:
		return int64(v), true
	case int64:
		return v, true
	case uint64:
		return int64(v), true
	default:
		return 0, false
	}
}

func int64ToPrimitive(kind nrbfrecord.PrimitiveKind, n int64) (nrbfrecord.Primitive, error) {
	switch kind {
	case nrbfrecord.PrimitiveByte:
		return nrbfrecord.Primitive{Kind: kind, Value: byte(n)}, nil
	case nrbfrecord.PrimitiveSByte:
		return nrbfrecord.Primitive{Kind: kind, Value: int8(n)}, nil
	case nrbfrecord.PrimitiveInt16:
		return nrbfrecord.Primitive{Kind: kind, Value: int16(n)}, nil
	case nrbfrecord.PrimitiveUInt16:
		return nrbfrecord.Primitive{Kind: kind, Value: uint16(n)}, nil
	case nrbfrecord.PrimitiveInt32:
		return nrbfrecord.Primitive{Kind: kind, Value: int32(n)}, nil
	case nrbfrecord.PrimitiveUInt32:
		return nrbfrecord.Primitive{Kind: kind, Value: uint32(n)}, nil
	case nrbfrecord.PrimitiveInt64:
		return nrbfrecord.Primitive{Kind: kind, Value: n}, nil
	case nrbfrecord.PrimitiveUInt64:
		return nrbfrecord.Primitive{Kind: kind, Value: uint64(n)}, nil
	default:
		return nrbfrecord.Primitive{}, fmt.Errorf("nrbf: %s is not an integer primitive kind", kind)
	}
}

package nrbf

import (
	"fmt"

	"github.com/nrbfedit/nrbfedit/internal/nrbfrecord"
)

// SetPrimitive overwrites the primitive value at path, keeping its
// existing PrimitiveKind. value's concrete Go type must match the
// slot's kind exactly (see Primitive's doc comment for the mapping);
// use one of the typed Set* wrappers to avoid getting this wrong.
func (d *Document) SetPrimitive(path string, value any) error {
	acc, err := d.accessor(path)
	if err != nil {
		return err
	}
	cur := acc.Get()
	if cur.Kind != nrbfrecord.KindPrimitive {
		return &NotEditableError{Path: path, Reason: "slot does not hold a primitive value"}
	}
	if !primitiveTypeMatches(cur.Primitive.Kind, value) {
		return &TypeMismatchError{Path: path, Expected: goTypeName(cur.Primitive.Kind), Got: fmt.Sprintf("%T", value)}
	}
	acc.Set(nrbfrecord.Value{
		Kind:      nrbfrecord.KindPrimitive,
		Primitive: nrbfrecord.Primitive{Kind: cur.Primitive.Kind, Value: value},
	})
	d.markDirty()
	return nil
}

func (d *Document) SetBool(path string, v bool) error             { return d.SetPrimitive(path, v) }
func (d *Document) SetByte(path string, v byte) error             { return d.SetPrimitive(path, v) }
func (d *Document) SetSByte(path string, v int8) error            { return d.SetPrimitive(path, v) }
func (d *Document) SetChar(path string, v rune) error             { return d.SetPrimitive(path, v) }
func (d *Document) SetInt16(path string, v int16) error           { return d.SetPrimitive(path, v) }
func (d *Document) SetInt32(path string, v int32) error           { return d.SetPrimitive(path, v) }
func (d *Document) SetInt64(path string, v int64) error           { return d.SetPrimitive(path, v) }
func (d *Document) SetUint16(path string, v uint16) error         { return d.SetPrimitive(path, v) }
func (d *Document) SetUint32(path string, v uint32) error         { return d.SetPrimitive(path, v) }
func (d *Document) SetUint64(path string, v uint64) error         { return d.SetPrimitive(path, v) }
func (d *Document) SetFloat32(path string, v float32) error       { return d.SetPrimitive(path, v) }
func (d *Document) SetFloat64(path string, v float64) error       { return d.SetPrimitive(path, v) }
func (d *Document) SetDecimalBytes(path string, v [16]byte) error { return d.SetPrimitive(path, v) }
func (d *Document) SetTicks(path string, v int64) error           { return d.SetPrimitive(path, v) }

// SetString overwrites a string value at path: either a nested
// BinaryObjectString record reached by reference, or an inline boxed
// string carried directly by a MemberPrimitiveTyped slot.
func (d *Document) SetString(path string, v string) error {
	acc, err := d.accessor(path)
	if err != nil {
		return err
	}
	cur := acc.Get()
	switch cur.Kind {
	case nrbfrecord.KindPrimitive:
		if cur.Primitive.Kind != nrbfrecord.PrimitiveString {
			return &TypeMismatchError{Path: path, Expected: "string", Got: cur.Primitive.Kind.String()}
		}
		acc.Set(nrbfrecord.Value{
			Kind:      nrbfrecord.KindPrimitive,
			Primitive: nrbfrecord.Primitive{Kind: nrbfrecord.PrimitiveString, Value: v},
		})
		d.markDirty()
		return nil
	case nrbfrecord.KindRecord, nrbfrecord.KindReference:
		rec, err := d.Resolve(path, cur)
		if err != nil {
			return err
		}
		sr, ok := rec.(*nrbfrecord.StringRecord)
		if !ok {
			return &TypeMismatchError{Path: path, Expected: "string", Got: fmt.Sprintf("%T", rec)}
		}
		sr.Value = v
		d.markDirty()
		return nil
	default:
		return &NotEditableError{Path: path, Reason: "slot is null"}
	}
}

// SetGuid re-encodes text (a canonical 36-character GUID) into the
// System.Guid record reached by path.
func (d *Document) SetGuid(path string, text string) error {
	v, err := d.Get(path)
	if err != nil {
		return err
	}
	rec, err := d.Resolve(path, v)
	if err != nil {
		return err
	}
	cr, ok := rec.(*nrbfrecord.ClassRecord)
	if !ok {
		return &TypeMismatchError{Path: path, Expected: "System.Guid", Got: fmt.Sprintf("%T", rec)}
	}
	if err := SetGuid(cr, text); err != nil {
		return err
	}
	d.markDirty()
	return nil
}

// GetGuid decodes the System.Guid record reached by path to its
// canonical textual form.
func (d *Document) GetGuid(path string) (string, error) {
	v, err := d.Get(path)
	if err != nil {
		return "", err
	}
	rec, err := d.Resolve(path, v)
	if err != nil {
		return "", err
	}
	cr, ok := rec.(*nrbfrecord.ClassRecord)
	if !ok {
		return "", &TypeMismatchError{Path: path, Expected: "System.Guid", Got: fmt.Sprintf("%T", rec)}
	}
	return GuidValue(cr)
}

// Describe returns a short human-readable rendering of the value at
// path, resolving one level of record reference for context.
func (d *Document) Describe(path string) (string, error) {
	v, err := d.Get(path)
	if err != nil {
		return "", err
	}
	return d.describeValue(v), nil
}

func (d *Document) describeValue(v nrbfrecord.Value) string {
	switch v.Kind {
	case nrbfrecord.KindNull:
		return "null"
	case nrbfrecord.KindPrimitive:
		return fmt.Sprintf("%s(%v)", v.Primitive.Kind, v.Primitive.Value)
	case nrbfrecord.KindReference:
		return fmt.Sprintf("-> #%d", v.RefID)
	case nrbfrecord.KindRecord:
		rec, ok := d.identity[v.RecordID]
		if !ok {
			return fmt.Sprintf("record #%d (dangling)", v.RecordID)
		}
		switch r := rec.(type) {
		case *nrbfrecord.ClassRecord:
			if IsGuid(r) {
				if s, err := GuidValue(r); err == nil {
					return fmt.Sprintf("Guid(%s)", s)
				}
			}
			return fmt.Sprintf("%s #%d", r.Info.Name, r.ObjectID)
		case *nrbfrecord.ArrayRecord:
			return fmt.Sprintf("array #%d len=%d", r.ObjectID, len(r.Elements))
		case *nrbfrecord.StringRecord:
			return fmt.Sprintf("%q", r.Value)
		default:
			return fmt.Sprintf("record #%d", v.RecordID)
		}
	default:
		return "?"
	}
}

func primitiveTypeMatches(kind nrbfrecord.PrimitiveKind, value any) bool {
	switch kind {
	case nrbfrecord.PrimitiveBoolean:
		_, ok := value.(bool)
		return ok
	case nrbfrecord.PrimitiveByte:
		_, ok := value.(byte)
		return ok
	case nrbfrecord.PrimitiveSByte:
		_, ok := value.(int8)
		return ok
	case nrbfrecord.PrimitiveChar:
		_, ok := value.(rune)
		return ok
	case nrbfrecord.PrimitiveInt16:
		_, ok := value.(int16)
		return ok
	case nrbfrecord.PrimitiveInt32:
		_, ok := value.(int32)
		return ok
	case nrbfrecord.PrimitiveInt64:
		_, ok := value.(int64)
		return ok
	case nrbfrecord.PrimitiveUInt16:
		_, ok := value.(uint16)
		return ok
	case nrbfrecord.PrimitiveUInt32:
		_, ok := value.(uint32)
		return ok
	case nrbfrecord.PrimitiveUInt64:
		_, ok := value.(uint64)
		return ok
	case nrbfrecord.PrimitiveSingle:
		_, ok := value.(float32)
		return ok
	case nrbfrecord.PrimitiveDouble:
		_, ok := value.(float64)
		return ok
	case nrbfrecord.PrimitiveDecimal:
		_, ok := value.([16]byte)
		return ok
	case nrbfrecord.PrimitiveDateTime, nrbfrecord.PrimitiveTimeSpan:
		_, ok := value.(int64)
		return ok
	case nrbfrecord.PrimitiveString:
		_, ok := value.(string)
		return ok
	default:
		return false
	}
}

func goTypeName(kind nrbfrecord.PrimitiveKind) string {
	switch kind {
	case nrbfrecord.PrimitiveBoolean:
		return "bool"
	case nrbfrecord.PrimitiveByte:
		return "byte"
	case nrbfrecord.PrimitiveSByte:
		return "int8"
	case nrbfrecord.PrimitiveChar:
		return "rune"
	case nrbfrecord.PrimitiveInt16:
		return "int16"
	case nrbfrecord.PrimitiveInt32:
		return "int32"
	case nrbfrecord.PrimitiveInt64:
		return "int64"
	case nrbfrecord.PrimitiveUInt16:
		return "uint16"
	case nrbfrecord.PrimitiveUInt32:
		return "uint32"
	case nrbfrecord.PrimitiveUInt64:
		return "uint64"
	case nrbfrecord.PrimitiveSingle:
		return "float32"
	case nrbfrecord.PrimitiveDouble:
		return "float64"
	case nrbfrecord.PrimitiveDecimal:
		return "[16]byte"
	case nrbfrecord.PrimitiveDateTime, nrbfrecord.PrimitiveTimeSpan:
		return "int64 (raw ticks)"
	case nrbfrecord.PrimitiveString:
		return "string"
	default:
		return "unknown"
	}
}

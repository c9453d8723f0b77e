// Package nrbfencode re-encodes a decoded record graph back to NRBF
// bytes by replaying its emission-ordered record list: each record
// writes only its own header fields and any inline primitive members
// or elements, since self-describing members and elements occupy
// their own entries later in the same ordered list.
package nrbfencode

import (
	"github.com/nrbfedit/nrbfedit/internal/nrbfprim"
	"github.com/nrbfedit/nrbfedit/internal/nrbfrecord"
)

const maxVarInt = 0x7fffffff

// Input is everything the encoder needs: the header, the flat
// emission-ordered record list, and the identity map used to validate
// references before committing any bytes.
type Input struct {
	Header   nrbfrecord.Header
	Order    []nrbfrecord.Record
	Identity map[int32]nrbfrecord.Record
}

// Encode serializes in back to NRBF bytes.
func Encode(in *Input) ([]byte, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	w := nrbfprim.NewWriter()
	if err := w.WriteByte(byte(nrbfrecord.TagSerializedStreamHeader)); err != nil {
		return nil, err
	}
	w.WriteInt32(in.Header.RootID)
	w.WriteInt32(in.Header.HeaderID)
	w.WriteInt32(in.Header.MajorVersion)
	w.WriteInt32(in.Header.MinorVersion)

	for _, rec := range in.Order {
		if err := encodeRecord(w, rec); err != nil {
			return nil, err
		}
	}

	if err := w.WriteByte(byte(nrbfrecord.TagMessageEnd)); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func validate(in *Input) error {
	for _, rec := range in.Order {
		switch r := rec.(type) {
		case *nrbfrecord.ClassRecord:
			if r.Kind.HasTypeInfo() && r.TypeInfo == nil {
				return &MissingTypeInfoError{ObjectID: r.ObjectID}
			}
			for _, v := range r.Members {
				if err := validateValue(in, v); err != nil {
					return err
				}
			}
		case *nrbfrecord.ArrayRecord:
			total := r.TotalLength()
			if total < 0 || int64(len(r.Elements)) != total {
				return &InconsistentArrayLengthError{ObjectID: r.ObjectID, Declared: total, Actual: len(r.Elements)}
			}
			for _, v := range r.Elements {
				if err := validateValue(in, v); err != nil {
					return err
				}
			}
		case *nrbfrecord.InlineRecord:
			if r.Kind == nrbfrecord.TagMemberReference {
				if _, ok := in.Identity[r.RefID]; !ok {
					return &UnresolvableReferenceError{ID: r.RefID}
				}
			}
		}
	}
	return nil
}

func validateValue(in *Input, v nrbfrecord.Value) error {
	switch v.Kind {
	case nrbfrecord.KindReference:
		if _, ok := in.Identity[v.RefID]; !ok {
			return &UnresolvableReferenceError{ID: v.RefID}
		}
	case nrbfrecord.KindRecord:
		if _, ok := in.Identity[v.RecordID]; !ok {
			return &UnresolvableReferenceError{ID: v.RecordID}
		}
	}
	return nil
}

func encodeRecord(w *nrbfprim.Writer, rec nrbfrecord.Record) error {
	switch r := rec.(type) {
	case *nrbfrecord.ClassRecord:
		return encodeClass(w, r)
	case *nrbfrecord.ArrayRecord:
		return encodeArray(w, r)
	case *nrbfrecord.StringRecord:
		if err := w.WriteByte(byte(nrbfrecord.TagBinaryObjectString)); err != nil {
			return err
		}
		w.WriteInt32(r.ObjectID)
		w.WriteString(r.Value)
		return nil
	case *nrbfrecord.LibraryRecord:
		if err := w.WriteByte(byte(nrbfrecord.TagBinaryLibrary)); err != nil {
			return err
		}
		w.WriteInt32(r.LibraryID)
		w.WriteString(r.Name)
		return nil
	case *nrbfrecord.InlineRecord:
		return encodeInline(w, r)
	default:
		return nil
	}
}

func encodeClass(w *nrbfprim.Writer, r *nrbfrecord.ClassRecord) error {
	if err := w.WriteByte(byte(r.Kind)); err != nil {
		return err
	}

	switch r.Kind {
	case nrbfrecord.TagClassWithId:
		w.WriteInt32(r.ObjectID)
		w.WriteInt32(r.MetadataID)
	case nrbfrecord.TagSystemClassWithMembers:
		writeClassInfo(w, r.Info)
	case nrbfrecord.TagClassWithMembers:
		writeClassInfo(w, r.Info)
		w.WriteInt32(r.LibraryID)
	case nrbfrecord.TagSystemClassWithMembersAndTypes:
		writeClassInfo(w, r.Info)
		if err := writeMemberTypeInfo(w, r.TypeInfo); err != nil {
			return err
		}
	case nrbfrecord.TagClassWithMembersAndTypes:
		writeClassInfo(w, r.Info)
		if err := writeMemberTypeInfo(w, r.TypeInfo); err != nil {
			return err
		}
		w.WriteInt32(r.LibraryID)
	}

	for i, name := range r.Info.MemberNames {
		if r.TypeInfo != nil && r.TypeInfo.Tags[i] == nrbfrecord.BinaryTypePrimitive {
			if err := writePrimitive(w, r.Members[name].Primitive); err != nil {
				return err
			}
		}
		// self-describing members occupy their own later entry in Order.
	}
	return nil
}

func encodeArray(w *nrbfprim.Writer, r *nrbfrecord.ArrayRecord) error {
	if err := w.WriteByte(byte(r.Kind)); err != nil {
		return err
	}
	w.WriteInt32(r.ObjectID)

	switch r.Kind {
	case nrbfrecord.TagBinaryArray:
		if err := w.WriteByte(byte(r.Shape)); err != nil {
			return err
		}
		w.WriteInt32(r.Rank)
		for _, l := range r.Lengths {
			w.WriteInt32(l)
		}
		if r.Shape.HasLowerBounds() {
			for _, lb := range r.LowerBounds {
				w.WriteInt32(lb)
			}
		}
		if err := w.WriteByte(byte(r.ElementTypeTag)); err != nil {
			return err
		}
		if err := writeAdditional(w, r.ElementTypeTag, r.ElementAdditional); err != nil {
			return err
		}
	case nrbfrecord.TagArraySinglePrimitive:
		w.WriteInt32(r.Lengths[0])
		if err := w.WriteByte(byte(r.ElementPrimitive)); err != nil {
			return err
		}
	case nrbfrecord.TagArraySingleObject, nrbfrecord.TagArraySingleString:
		w.WriteInt32(r.Lengths[0])
	}

	switch {
	case r.Kind == nrbfrecord.TagArraySinglePrimitive:
		for _, v := range r.Elements {
			if err := writePrimitive(w, v.Primitive); err != nil {
				return err
			}
		}
	case r.Kind == nrbfrecord.TagBinaryArray && r.ElementTypeTag == nrbfrecord.BinaryTypePrimitive:
		for _, v := range r.Elements {
			if err := writePrimitive(w, v.Primitive); err != nil {
				return err
			}
		}
	default:
		// self-describing elements occupy their own later entries in Order.
	}
	return nil
}

func encodeInline(w *nrbfprim.Writer, r *nrbfrecord.InlineRecord) error {
	if err := w.WriteByte(byte(r.Kind)); err != nil {
		return err
	}
	switch r.Kind {
	case nrbfrecord.TagMemberReference:
		w.WriteInt32(r.RefID)
	case nrbfrecord.TagObjectNull:
		// no payload
	case nrbfrecord.TagObjectNullMultiple256:
		if r.Count < 0 || r.Count > 0xff {
			return &EncodeIntegerOutOfRangeError{Field: "ObjectNullMultiple256.count", Value: int64(r.Count)}
		}
		return w.WriteByte(byte(r.Count))
	case nrbfrecord.TagObjectNullMultiple:
		if r.Count < 0 {
			return &EncodeIntegerOutOfRangeError{Field: "ObjectNullMultiple.count", Value: int64(r.Count)}
		}
		w.WriteInt32(r.Count)
	case nrbfrecord.TagMemberPrimitiveTyped:
		if err := w.WriteByte(byte(r.Primitive.Kind)); err != nil {
			return err
		}
		return writePrimitive(w, r.Primitive)
	}
	return nil
}

func writeClassInfo(w *nrbfprim.Writer, info *nrbfrecord.ClassInfo) {
	w.WriteInt32(info.ObjectID)
	w.WriteString(info.Name)
	w.WriteInt32(int32(len(info.MemberNames)))
	for _, name := range info.MemberNames {
		w.WriteString(name)
	}
}

func writeMemberTypeInfo(w *nrbfprim.Writer, mti *nrbfrecord.MemberTypeInfo) error {
	for _, t := range mti.Tags {
		if err := w.WriteByte(byte(t)); err != nil {
			return err
		}
	}
	for i, t := range mti.Tags {
		if err := writeAdditional(w, t, mti.Additional[i]); err != nil {
			return err
		}
	}
	return nil
}

func writeAdditional(w *nrbfprim.Writer, tag nrbfrecord.BinaryTypeTag, info nrbfrecord.AdditionalTypeInfo) error {
	switch tag {
	case nrbfrecord.BinaryTypePrimitive, nrbfrecord.BinaryTypePrimitiveArray:
		return w.WriteByte(byte(info.Primitive))
	case nrbfrecord.BinaryTypeSystemClass:
		w.WriteString(info.SystemClassName)
	case nrbfrecord.BinaryTypeClass:
		w.WriteString(info.ClassName)
		w.WriteInt32(info.LibraryID)
	}
	return nil
}

func writePrimitive(w *nrbfprim.Writer, p nrbfrecord.Primitive) error {
	switch p.Kind {
	case nrbfrecord.PrimitiveBoolean:
		w.WriteBool(p.Value.(bool))
	case nrbfrecord.PrimitiveByte:
		return w.WriteByte(p.Value.(byte))
	case nrbfrecord.PrimitiveSByte:
		w.WriteSByte(p.Value.(int8))
	case nrbfrecord.PrimitiveChar:
		w.WriteChar(p.Value.(rune))
	case nrbfrecord.PrimitiveInt16:
		w.WriteInt16(p.Value.(int16))
	case nrbfrecord.PrimitiveInt32:
		w.WriteInt32(p.Value.(int32))
	case nrbfrecord.PrimitiveInt64:
		w.WriteInt64(p.Value.(int64))
	case nrbfrecord.PrimitiveUInt16:
		w.WriteUint16(p.Value.(uint16))
	case nrbfrecord.PrimitiveUInt32:
		w.WriteUint32(p.Value.(uint32))
	case nrbfrecord.PrimitiveUInt64:
		w.WriteUint64(p.Value.(uint64))
	case nrbfrecord.PrimitiveSingle:
		w.WriteFloat32(p.Value.(float32))
	case nrbfrecord.PrimitiveDouble:
		w.WriteFloat64(p.Value.(float64))
	case nrbfrecord.PrimitiveDecimal:
		w.WriteDecimalBytes(p.Value.([16]byte))
	case nrbfrecord.PrimitiveDateTime, nrbfrecord.PrimitiveTimeSpan:
		w.WriteTicks(p.Value.(int64))
	case nrbfrecord.PrimitiveString:
		w.WriteString(p.Value.(string))
	}
	return nil
}

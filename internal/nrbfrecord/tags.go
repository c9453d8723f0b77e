// Package nrbfrecord defines the NRBF record taxonomy: the 18 on-wire
// record kinds and the supporting type tags used inside them.
package nrbfrecord

// Tag identifies the kind of a record by its first byte on the wire.
type Tag byte

// The 18 record kinds, tagged 0-17.
const (
	TagSerializedStreamHeader         Tag = 0
	TagClassWithId                    Tag = 1
	TagSystemClassWithMembers         Tag = 2
	TagClassWithMembers               Tag = 3
	TagSystemClassWithMembersAndTypes Tag = 4
	TagClassWithMembersAndTypes       Tag = 5
	TagBinaryObjectString             Tag = 6
	TagBinaryArray                    Tag = 7
	TagMemberPrimitiveTyped           Tag = 8
	TagMemberReference                Tag = 9
	TagObjectNull                     Tag = 10
	TagMessageEnd                     Tag = 11
	TagBinaryLibrary                  Tag = 12
	TagObjectNullMultiple256          Tag = 13
	TagObjectNullMultiple             Tag = 14
	TagArraySinglePrimitive           Tag = 15
	TagArraySingleObject              Tag = 16
	TagArraySingleString              Tag = 17
)

func (t Tag) String() string {
	switch t {
	case TagSerializedStreamHeader:
		return "SerializedStreamHeader"
	case TagClassWithId:
		return "ClassWithId"
	case TagSystemClassWithMembers:
		return "SystemClassWithMembers"
	case TagClassWithMembers:
		return "ClassWithMembers"
	case TagSystemClassWithMembersAndTypes:
		return "SystemClassWithMembersAndTypes"
	case TagClassWithMembersAndTypes:
		return "ClassWithMembersAndTypes"
	case TagBinaryObjectString:
		return "BinaryObjectString"
	case TagBinaryArray:
		return "BinaryArray"
	case TagMemberPrimitiveTyped:
		return "MemberPrimitiveTyped"
	case TagMemberReference:
		return "MemberReference"
	case TagObjectNull:
		return "ObjectNull"
	case TagMessageEnd:
		return "MessageEnd"
	case TagBinaryLibrary:
		return "BinaryLibrary"
	case TagObjectNullMultiple256:
		return "ObjectNullMultiple256"
	case TagObjectNullMultiple:
		return "ObjectNullMultiple"
	case TagArraySinglePrimitive:
		return "ArraySinglePrimitive"
	case TagArraySingleObject:
		return "ArraySingleObject"
	case TagArraySingleString:
		return "ArraySingleString"
	default:
		return "Unknown"
	}
}

// IsClassKind reports whether t is one of the five class record kinds
// (1-5), each of which carries object identity.
func (t Tag) IsClassKind() bool {
	return t >= TagClassWithId && t <= TagClassWithMembersAndTypes
}

// HasTypeInfo reports whether records of kind t carry a MemberTypeInfo,
// i.e. their member values are read typed rather than self-describing.
func (t Tag) HasTypeInfo() bool {
	return t == TagSystemClassWithMembersAndTypes || t == TagClassWithMembersAndTypes
}

// PrimitiveKind identifies the type of a primitive value. Values follow
// the MS-NRBF PrimitiveTypeEnumeration numbering, which skips 4.
type PrimitiveKind byte

const (
	PrimitiveBoolean  PrimitiveKind = 1
	PrimitiveByte     PrimitiveKind = 2
	PrimitiveChar     PrimitiveKind = 3
	PrimitiveDecimal  PrimitiveKind = 5
	PrimitiveDouble   PrimitiveKind = 6
	PrimitiveInt16    PrimitiveKind = 7
	PrimitiveInt32    PrimitiveKind = 8
	PrimitiveInt64    PrimitiveKind = 9
	PrimitiveSByte    PrimitiveKind = 10
	PrimitiveSingle   PrimitiveKind = 11
	PrimitiveTimeSpan PrimitiveKind = 12
	PrimitiveDateTime PrimitiveKind = 13
	PrimitiveUInt16   PrimitiveKind = 14
	PrimitiveUInt32   PrimitiveKind = 15
	PrimitiveUInt64   PrimitiveKind = 16
	PrimitiveNull     PrimitiveKind = 17
	PrimitiveString   PrimitiveKind = 18
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveBoolean:
		return "Boolean"
	case PrimitiveByte:
		return "Byte"
	case PrimitiveChar:
		return "Char"
	case PrimitiveDecimal:
		return "Decimal"
	case PrimitiveDouble:
		return "Double"
	case PrimitiveInt16:
		return "Int16"
	case PrimitiveInt32:
		return "Int32"
	case PrimitiveInt64:
		return "Int64"
	case PrimitiveSByte:
		return "SByte"
	case PrimitiveSingle:
		return "Single"
	case PrimitiveTimeSpan:
		return "TimeSpan"
	case PrimitiveDateTime:
		return "DateTime"
	case PrimitiveUInt16:
		return "UInt16"
	case PrimitiveUInt32:
		return "UInt32"
	case PrimitiveUInt64:
		return "UInt64"
	case PrimitiveNull:
		return "Null"
	case PrimitiveString:
		return "String"
	default:
		return "Unknown"
	}
}

// IsValid reports whether k is one of the 17 defined primitive kinds.
func (k PrimitiveKind) IsValid() bool {
	switch k {
	case PrimitiveBoolean, PrimitiveByte, PrimitiveChar, PrimitiveDecimal,
		PrimitiveDouble, PrimitiveInt16, PrimitiveInt32, PrimitiveInt64,
		PrimitiveSByte, PrimitiveSingle, PrimitiveTimeSpan, PrimitiveDateTime,
		PrimitiveUInt16, PrimitiveUInt32, PrimitiveUInt64, PrimitiveNull,
		PrimitiveString:
		return true
	default:
		return false
	}
}

// BinaryTypeTag describes how a class member's or array element's type
// is declared.
type BinaryTypeTag byte

const (
	BinaryTypePrimitive      BinaryTypeTag = 0
	BinaryTypeString         BinaryTypeTag = 1
	BinaryTypeObject         BinaryTypeTag = 2
	BinaryTypeSystemClass    BinaryTypeTag = 3
	BinaryTypeClass          BinaryTypeTag = 4
	BinaryTypeObjectArray    BinaryTypeTag = 5
	BinaryTypeStringArray    BinaryTypeTag = 6
	BinaryTypePrimitiveArray BinaryTypeTag = 7
)

func (t BinaryTypeTag) String() string {
	switch t {
	case BinaryTypePrimitive:
		return "Primitive"
	case BinaryTypeString:
		return "String"
	case BinaryTypeObject:
		return "Object"
	case BinaryTypeSystemClass:
		return "SystemClass"
	case BinaryTypeClass:
		return "Class"
	case BinaryTypeObjectArray:
		return "ObjectArray"
	case BinaryTypeStringArray:
		return "StringArray"
	case BinaryTypePrimitiveArray:
		return "PrimitiveArray"
	default:
		return "Unknown"
	}
}

// IsValid reports whether t is one of the 8 defined type tags.
func (t BinaryTypeTag) IsValid() bool {
	return t <= BinaryTypePrimitiveArray
}

// ArrayShape identifies the rank/bound structure of an array record.
type ArrayShape byte

const (
	ArrayShapeSingle            ArrayShape = 0
	ArrayShapeJagged            ArrayShape = 1
	ArrayShapeRectangular       ArrayShape = 2
	ArrayShapeSingleOffset      ArrayShape = 3
	ArrayShapeJaggedOffset      ArrayShape = 4
	ArrayShapeRectangularOffset ArrayShape = 5
)

func (s ArrayShape) String() string {
	switch s {
	case ArrayShapeSingle:
		return "Single"
	case ArrayShapeJagged:
		return "Jagged"
	case ArrayShapeRectangular:
		return "Rectangular"
	case ArrayShapeSingleOffset:
		return "SingleOffset"
	case ArrayShapeJaggedOffset:
		return "JaggedOffset"
	case ArrayShapeRectangularOffset:
		return "RectangularOffset"
	default:
		return "Unknown"
	}
}

// HasLowerBounds reports whether arrays of this shape carry an explicit
// lower-bound per rank.
func (s ArrayShape) HasLowerBounds() bool {
	return s == ArrayShapeSingleOffset || s == ArrayShapeJaggedOffset || s == ArrayShapeRectangularOffset
}

// IsValid reports whether s is one of the 6 defined array shapes.
func (s ArrayShape) IsValid() bool {
	return s <= ArrayShapeRectangularOffset
}

package nrbfrecord

// Header holds the fields of the SerializedStreamHeader record.
type Header struct {
	RootID       int32
	HeaderID     int32
	MajorVersion int32
	MinorVersion int32
}

// ClassInfo names a class record's shape: its object id, fully
// qualified name, and ordered member names. It is reused verbatim by
// every ClassWithId record that cites it as metadata.
type ClassInfo struct {
	ObjectID    int32
	Name        string
	MemberNames []string
}

// MemberCount returns the number of declared members.
func (ci *ClassInfo) MemberCount() int {
	return len(ci.MemberNames)
}

// AdditionalTypeInfo is the companion payload for a BinaryTypeTag whose
// shape depends on the tag: a primitive kind, a system-class name, or a
// (class name, library id) pair. Zero value is valid for tags carrying
// no additional info (Object, ObjectArray, StringArray).
type AdditionalTypeInfo struct {
	Primitive       PrimitiveKind // Primitive, PrimitiveArray
	SystemClassName string        // SystemClass
	ClassName       string        // Class
	LibraryID       int32         // Class
}

// MemberTypeInfo describes, per declared member (or array element), how
// its type is represented on the wire. It is absent (nil) for the
// type-less record kinds (SystemClassWithMembers, ClassWithMembers).
type MemberTypeInfo struct {
	Tags       []BinaryTypeTag
	Additional []AdditionalTypeInfo
}

// ValueKind discriminates the member-value domain described in §3 of
// the format specification.
type ValueKind uint8

const (
	// KindPrimitive holds an inline primitive value.
	KindPrimitive ValueKind = iota
	// KindNull is the NullType sentinel.
	KindNull
	// KindRecord refers to a nested record (a ClassRecord, ArrayRecord,
	// or StringRecord) by its object id.
	KindRecord
	// KindReference is an unresolved MemberReference by target id.
	KindReference
)

func (k ValueKind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindNull:
		return "Null"
	case KindRecord:
		return "Record"
	case KindReference:
		return "Reference"
	default:
		return "Unknown"
	}
}

// Primitive is a primitive value tagged with its kind. Go holds the
// decoded value in Value using the natural Go type for Kind:
//
//	Boolean  -> bool
//	Byte     -> byte
//	SByte    -> int8
//	Char     -> rune
//	Int16    -> int16
//	Int32    -> int32
//	Int64    -> int64
//	UInt16   -> uint16
//	UInt32   -> uint32
//	UInt64   -> uint64
//	Single   -> float32
//	Double   -> float64
//	Decimal  -> [16]byte (opaque)
//	DateTime, TimeSpan -> int64 (opaque raw ticks)
//	String   -> string (only inline, via MemberPrimitiveTyped)
type Primitive struct {
	Kind  PrimitiveKind
	Value any
}

// Value is a member or array-element value: a primitive, a null
// sentinel, a reference to another record by object id (not yet
// resolved), or a resolved nested record.
type Value struct {
	Kind      ValueKind
	Primitive Primitive
	RecordID  int32 // valid when Kind == KindRecord
	RefID     int32 // valid when Kind == KindReference
}

// NullValue is the shared NullType sentinel value.
var NullValue = Value{Kind: KindNull}

// Record is implemented by every record kind that can occupy a
// position in a Document's emission-ordered record list.
type Record interface {
	// WireTag is the tag this record was decoded as (and will be
	// re-encoded as).
	WireTag() Tag
}

// ClassRecord is the parsed form of any of the five class record kinds
// (ClassWithId, SystemClassWithMembers, ClassWithMembers,
// SystemClassWithMembersAndTypes, ClassWithMembersAndTypes).
type ClassRecord struct {
	// ObjectID is this record's own object id. For ClassWithId it is
	// distinct from Info.ObjectID, which belongs to the metadata
	// record whose shape is being reused.
	ObjectID int32

	// Info is this class's shape. For ClassWithId it is the metadata
	// record's shared *ClassInfo, not a private copy.
	Info *ClassInfo

	// TypeInfo is non-nil only for the two typed kinds (4, 5), or for a
	// ClassWithId record whose metadata was itself typed.
	TypeInfo *MemberTypeInfo

	// HasLibraryID reports whether LibraryID is meaningful (kinds 3
	// and 5, and any ClassWithId inheriting from one of those).
	HasLibraryID bool
	LibraryID    int32

	// Kind is the wire record kind as originally decoded: 1-5.
	Kind Tag

	// MetadataID is valid only when Kind == TagClassWithId: the object
	// id of the earlier record whose shape this record reuses.
	MetadataID int32

	// Members maps member name to value. Iterate in Info.MemberNames
	// order, not map order.
	Members map[string]Value
}

func (r *ClassRecord) WireTag() Tag { return r.Kind }

// ArrayRecord is the parsed form of any of the four array record kinds
// (BinaryArray, ArraySinglePrimitive, ArraySingleObject,
// ArraySingleString).
type ArrayRecord struct {
	Kind     Tag
	ObjectID int32

	// Shape, Rank and LowerBounds are meaningful only for BinaryArray;
	// the three Array* kinds are implicitly rank-1, zero-based.
	Shape       ArrayShape
	Rank        int32
	LowerBounds []int32

	// Lengths holds one entry per rank (Rank entries for BinaryArray,
	// exactly one entry otherwise).
	Lengths []int32

	// ElementPrimitive is valid only for ArraySinglePrimitive.
	ElementPrimitive PrimitiveKind

	// ElementTypeTag and ElementAdditional are valid only for
	// BinaryArray.
	ElementTypeTag    BinaryTypeTag
	ElementAdditional AdditionalTypeInfo

	// Elements holds every element slot in order, with null runs
	// already expanded to individual KindNull values.
	Elements []Value
}

func (r *ArrayRecord) WireTag() Tag { return r.Kind }

// TotalLength returns the product of declared lengths (for rank 1,
// simply Lengths[0]).
func (r *ArrayRecord) TotalLength() int64 {
	var total int64 = 1
	for _, l := range r.Lengths {
		total *= int64(l)
	}
	return total
}

// StringRecord is a BinaryObjectString record.
type StringRecord struct {
	ObjectID int32
	Value    string
}

func (r *StringRecord) WireTag() Tag { return TagBinaryObjectString }

// LibraryRecord is a BinaryLibrary declaration. Library ids occupy
// their own namespace, separate from object ids.
type LibraryRecord struct {
	LibraryID int32
	Name      string
}

func (r *LibraryRecord) WireTag() Tag { return TagBinaryLibrary }

// InlineRecord represents one of the five identity-less record kinds
// that nonetheless occupy their own position in the emission-ordered
// list: MemberReference, ObjectNull, ObjectNullMultiple,
// ObjectNullMultiple256, and MemberPrimitiveTyped (a boxed primitive
// appearing in a self-describing slot).
//
// ObjectNullMultiple* records expand into Count separate null slots at
// decode time; the single InlineRecord entry is preserved so the
// encoder can re-emit the run rather than Count individual ObjectNull
// records (§4.5 point 6).
type InlineRecord struct {
	Kind Tag

	// RefID is valid for MemberReference.
	RefID int32

	// Count is valid for ObjectNullMultiple and ObjectNullMultiple256.
	Count int32

	// Primitive is valid for MemberPrimitiveTyped.
	Primitive Primitive
}

func (r *InlineRecord) WireTag() Tag { return r.Kind }

// Package nrbfdecode implements the NRBF decoder: parsing a byte
// buffer into an ordered record list, an identity map, a metadata map,
// and a library map, ready to be wrapped by the nrbf object model.
package nrbfdecode

import (
	"fmt"

	"github.com/nrbfedit/nrbfedit/internal/nrbflog"
	"github.com/nrbfedit/nrbfedit/internal/nrbfprim"
	"github.com/nrbfedit/nrbfedit/internal/nrbfrecord"
)

// DefaultRecordBudget bounds the number of records a single decode
// will process, to guard against pathological or malicious inputs.
const DefaultRecordBudget = 100_000

// Result is the raw product of decoding, before nrbf.Document wraps it
// with query and mutation methods.
type Result struct {
	Header    nrbfrecord.Header
	Order     []nrbfrecord.Record
	Identity  map[int32]nrbfrecord.Record
	Metadata  map[int32]*nrbfrecord.ClassRecord
	Libraries map[int32]string
}

// Decoder controls decode-time behavior: the record budget, the Char
// width mode, and where diagnostic messages (e.g. dangling references
// seen during downstream traversal) are sent.
type Decoder struct {
	RecordBudget int
	StrictChar   bool
	Sink         nrbflog.Sink
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithRecordBudget overrides DefaultRecordBudget.
func WithRecordBudget(n int) Option { return func(d *Decoder) { d.RecordBudget = n } }

// WithStrictChar switches Char decoding to 2-byte (UTF-16 code unit)
// mode instead of the source format's default 1-byte behavior.
func WithStrictChar(strict bool) Option { return func(d *Decoder) { d.StrictChar = strict } }

// WithLogSink installs a diagnostic sink.
func WithLogSink(sink nrbflog.Sink) Option { return func(d *Decoder) { d.Sink = sink } }

// NewDecoder builds a Decoder with defaults applied, then opts.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		RecordBudget: DefaultRecordBudget,
		Sink:         nrbflog.NoOp(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode parses data with default Decoder settings.
func Decode(data []byte) (*Result, error) {
	return NewDecoder().Decode(data)
}

// Decode parses data into a Result.
func (d *Decoder) Decode(data []byte) (*Result, error) {
	r := nrbfprim.NewReader(data)
	r.StrictChar = d.StrictChar

	res := &Result{
		Identity:  make(map[int32]nrbfrecord.Record),
		Metadata:  make(map[int32]*nrbfrecord.ClassRecord),
		Libraries: make(map[int32]string),
	}

	tagByte, err := r.ReadByte()
	if err != nil {
		return nil, wrapErr(r, "reading header tag", err)
	}
	if nrbfrecord.Tag(tagByte) != nrbfrecord.TagSerializedStreamHeader {
		return nil, wrapErr(r, "expected SerializedStreamHeader", ErrBadHeader)
	}
	hdr, err := readHeaderBody(r)
	if err != nil {
		return nil, wrapErr(r, "reading header body", err)
	}
	res.Header = hdr

	count := 0
	for {
		if count >= d.RecordBudget {
			return nil, wrapErr(r, "decoding stream", ErrRecordBudgetExceeded)
		}

		tagByte, err := r.ReadByte()
		if err != nil {
			return nil, wrapErr(r, "reading record tag", err)
		}
		tag := nrbfrecord.Tag(tagByte)
		if tag == nrbfrecord.TagMessageEnd {
			break
		}

		_, rec, err := d.readToken(r, res, tag)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			res.Order = append(res.Order, rec)
		}
		count++
	}

	if _, ok := res.Identity[hdr.RootID]; !ok {
		return nil, wrapErr(r, "resolving root", &RootNotFoundError{ID: hdr.RootID})
	}

	return res, nil
}

func readHeaderBody(r *nrbfprim.Reader) (nrbfrecord.Header, error) {
	var h nrbfrecord.Header
	var err error
	if h.RootID, err = r.ReadInt32(); err != nil {
		return h, err
	}
	if h.HeaderID, err = r.ReadInt32(); err != nil {
		return h, err
	}
	if h.MajorVersion, err = r.ReadInt32(); err != nil {
		return h, err
	}
	if h.MinorVersion, err = r.ReadInt32(); err != nil {
		return h, err
	}
	return h, nil
}

// readToken reads one self-describing token at the current position:
// a class, array, string, or library record, or one of the five
// identity-less-but-tagged inline records (MemberReference, ObjectNull,
// ObjectNullMultiple, ObjectNullMultiple256, MemberPrimitiveTyped).
//
// It returns the slot values produced (usually one; more for a null
// run) and the Record the caller appends to the emission-ordered list.
// Class records append themselves before their nested members are
// read, so for them the returned Record is nil.
func (d *Decoder) readToken(r *nrbfprim.Reader, res *Result, tag nrbfrecord.Tag) ([]nrbfrecord.Value, nrbfrecord.Record, error) {
	if len(res.Order) >= d.RecordBudget {
		return nil, nil, wrapErr(r, "decoding stream", ErrRecordBudgetExceeded)
	}
	switch tag {
	case nrbfrecord.TagMemberReference:
		id, err := r.ReadInt32()
		if err != nil {
			return nil, nil, wrapErr(r, "reading MemberReference", err)
		}
		rec := &nrbfrecord.InlineRecord{Kind: tag, RefID: id}
		return []nrbfrecord.Value{{Kind: nrbfrecord.KindReference, RefID: id}}, rec, nil

	case nrbfrecord.TagObjectNull:
		rec := &nrbfrecord.InlineRecord{Kind: tag}
		return []nrbfrecord.Value{nrbfrecord.NullValue}, rec, nil

	case nrbfrecord.TagObjectNullMultiple256:
		c, err := r.ReadByte()
		if err != nil {
			return nil, nil, wrapErr(r, "reading ObjectNullMultiple256", err)
		}
		rec := &nrbfrecord.InlineRecord{Kind: tag, Count: int32(c)}
		return nullRun(int(c)), rec, nil

	case nrbfrecord.TagObjectNullMultiple:
		c, err := r.ReadInt32()
		if err != nil {
			return nil, nil, wrapErr(r, "reading ObjectNullMultiple", err)
		}
		if c < 0 {
			return nil, nil, wrapErr(r, "reading ObjectNullMultiple", fmt.Errorf("negative count %d", c))
		}
		rec := &nrbfrecord.InlineRecord{Kind: tag, Count: c}
		return nullRun(int(c)), rec, nil

	case nrbfrecord.TagMemberPrimitiveTyped:
		pkByte, err := r.ReadByte()
		if err != nil {
			return nil, nil, wrapErr(r, "reading MemberPrimitiveTyped tag", err)
		}
		pk := nrbfrecord.PrimitiveKind(pkByte)
		if !pk.IsValid() {
			return nil, nil, wrapErr(r, "reading MemberPrimitiveTyped", &UnknownPrimitiveTagError{Tag: pkByte})
		}
		val, err := d.readPrimitiveValue(r, pk)
		if err != nil {
			return nil, nil, wrapErr(r, "reading MemberPrimitiveTyped value", err)
		}
		prim := nrbfrecord.Primitive{Kind: pk, Value: val}
		rec := &nrbfrecord.InlineRecord{Kind: tag, Primitive: prim}
		return []nrbfrecord.Value{{Kind: nrbfrecord.KindPrimitive, Primitive: prim}}, rec, nil

	case nrbfrecord.TagBinaryObjectString:
		id, err := r.ReadInt32()
		if err != nil {
			return nil, nil, wrapErr(r, "reading BinaryObjectString id", err)
		}
		s, err := r.ReadString()
		if err != nil {
			return nil, nil, wrapErr(r, "reading BinaryObjectString value", err)
		}
		rec := &nrbfrecord.StringRecord{ObjectID: id, Value: s}
		if err := registerIdentity(res, id); err != nil {
			return nil, nil, wrapErr(r, "registering BinaryObjectString", err)
		}
		res.Identity[id] = rec
		return []nrbfrecord.Value{{Kind: nrbfrecord.KindRecord, RecordID: id}}, rec, nil

	case nrbfrecord.TagBinaryLibrary:
		id, err := r.ReadInt32()
		if err != nil {
			return nil, nil, wrapErr(r, "reading BinaryLibrary id", err)
		}
		name, err := r.ReadString()
		if err != nil {
			return nil, nil, wrapErr(r, "reading BinaryLibrary name", err)
		}
		rec := &nrbfrecord.LibraryRecord{LibraryID: id, Name: name}
		res.Libraries[id] = name
		return nil, rec, nil

	case nrbfrecord.TagBinaryArray, nrbfrecord.TagArraySinglePrimitive,
		nrbfrecord.TagArraySingleObject, nrbfrecord.TagArraySingleString:
		rec, err := d.readArray(r, res, tag)
		if err != nil {
			return nil, nil, err
		}
		return []nrbfrecord.Value{{Kind: nrbfrecord.KindRecord, RecordID: rec.ObjectID}}, rec, nil

	case nrbfrecord.TagClassWithId, nrbfrecord.TagSystemClassWithMembers,
		nrbfrecord.TagClassWithMembers, nrbfrecord.TagSystemClassWithMembersAndTypes,
		nrbfrecord.TagClassWithMembersAndTypes:
		rec, err := d.readClass(r, res, tag)
		if err != nil {
			return nil, nil, err
		}
		return []nrbfrecord.Value{{Kind: nrbfrecord.KindRecord, RecordID: rec.ObjectID}}, nil, nil

	default:
		return nil, nil, wrapErr(r, "reading token", &UnknownRecordTagError{Tag: byte(tag)})
	}
}

func nullRun(n int) []nrbfrecord.Value {
	vals := make([]nrbfrecord.Value, n)
	for i := range vals {
		vals[i] = nrbfrecord.NullValue
	}
	return vals
}

func registerIdentity(res *Result, id int32) error {
	if _, dup := res.Identity[id]; dup {
		return &DuplicateObjectIDError{ID: id}
	}
	return nil
}

// readSingleValue reads one token expected to occupy exactly one slot
// (a class member, never an array element run). A null-run token in
// this position is an error: such runs are only meaningful for array
// element sequences.
func (d *Decoder) readSingleValue(r *nrbfprim.Reader, res *Result) (nrbfrecord.Value, error) {
	tagByte, err := r.ReadByte()
	if err != nil {
		return nrbfrecord.Value{}, wrapErr(r, "reading member value tag", err)
	}
	vals, rec, err := d.readToken(r, res, nrbfrecord.Tag(tagByte))
	if err != nil {
		return nrbfrecord.Value{}, err
	}
	if rec != nil {
		res.Order = append(res.Order, rec)
	}
	if len(vals) != 1 {
		return nrbfrecord.Value{}, wrapErr(r, "reading member value", fmt.Errorf("null run of %d in a single-value slot", len(vals)))
	}
	return vals[0], nil
}

func (d *Decoder) readPrimitiveValue(r *nrbfprim.Reader, kind nrbfrecord.PrimitiveKind) (any, error) {
	switch kind {
	case nrbfrecord.PrimitiveBoolean:
		return r.ReadBool()
	case nrbfrecord.PrimitiveByte:
		return r.ReadByte()
	case nrbfrecord.PrimitiveSByte:
		return r.ReadSByte()
	case nrbfrecord.PrimitiveChar:
		return r.ReadChar()
	case nrbfrecord.PrimitiveInt16:
		return r.ReadInt16()
	case nrbfrecord.PrimitiveInt32:
		return r.ReadInt32()
	case nrbfrecord.PrimitiveInt64:
		return r.ReadInt64()
	case nrbfrecord.PrimitiveUInt16:
		return r.ReadUint16()
	case nrbfrecord.PrimitiveUInt32:
		return r.ReadUint32()
	case nrbfrecord.PrimitiveUInt64:
		return r.ReadUint64()
	case nrbfrecord.PrimitiveSingle:
		return r.ReadFloat32()
	case nrbfrecord.PrimitiveDouble:
		return r.ReadFloat64()
	case nrbfrecord.PrimitiveDecimal:
		return r.ReadDecimalBytes()
	case nrbfrecord.PrimitiveDateTime, nrbfrecord.PrimitiveTimeSpan:
		return r.ReadTicks()
	case nrbfrecord.PrimitiveString:
		return r.ReadString()
	case nrbfrecord.PrimitiveNull:
		return nil, nil
	default:
		return nil, &UnknownPrimitiveTagError{Tag: byte(kind)}
	}
}

func readClassInfo(r *nrbfprim.Reader) (*nrbfrecord.ClassInfo, error) {
	ci := &nrbfrecord.ClassInfo{}
	var err error
	if ci.ObjectID, err = r.ReadInt32(); err != nil {
		return nil, err
	}
	if ci.Name, err = r.ReadString(); err != nil {
		return nil, err
	}
	count, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("negative member count %d", count)
	}
	ci.MemberNames = make([]string, count)
	for i := range ci.MemberNames {
		if ci.MemberNames[i], err = r.ReadString(); err != nil {
			return nil, err
		}
	}
	return ci, nil
}

func readAdditionalTypeInfo(r *nrbfprim.Reader, tag nrbfrecord.BinaryTypeTag) (nrbfrecord.AdditionalTypeInfo, error) {
	var info nrbfrecord.AdditionalTypeInfo
	switch tag {
	case nrbfrecord.BinaryTypePrimitive, nrbfrecord.BinaryTypePrimitiveArray:
		b, err := r.ReadByte()
		if err != nil {
			return info, err
		}
		pk := nrbfrecord.PrimitiveKind(b)
		if !pk.IsValid() {
			return info, &UnknownPrimitiveTagError{Tag: b}
		}
		info.Primitive = pk
	case nrbfrecord.BinaryTypeSystemClass:
		name, err := r.ReadString()
		if err != nil {
			return info, err
		}
		info.SystemClassName = name
	case nrbfrecord.BinaryTypeClass:
		name, err := r.ReadString()
		if err != nil {
			return info, err
		}
		libID, err := r.ReadInt32()
		if err != nil {
			return info, err
		}
		info.ClassName = name
		info.LibraryID = libID
	case nrbfrecord.BinaryTypeString, nrbfrecord.BinaryTypeObject,
		nrbfrecord.BinaryTypeObjectArray, nrbfrecord.BinaryTypeStringArray:
		// no additional payload
	default:
		return info, &UnknownBinaryTypeTagError{Tag: byte(tag)}
	}
	return info, nil
}

func readMemberTypeInfo(r *nrbfprim.Reader, memberCount int) (*nrbfrecord.MemberTypeInfo, error) {
	mti := &nrbfrecord.MemberTypeInfo{
		Tags:       make([]nrbfrecord.BinaryTypeTag, memberCount),
		Additional: make([]nrbfrecord.AdditionalTypeInfo, memberCount),
	}
	for i := 0; i < memberCount; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		tag := nrbfrecord.BinaryTypeTag(b)
		if !tag.IsValid() {
			return nil, &UnknownBinaryTypeTagError{Tag: b}
		}
		mti.Tags[i] = tag
	}
	for i := 0; i < memberCount; i++ {
		info, err := readAdditionalTypeInfo(r, mti.Tags[i])
		if err != nil {
			return nil, err
		}
		mti.Additional[i] = info
	}
	return mti, nil
}

func (d *Decoder) readClass(r *nrbfprim.Reader, res *Result, tag nrbfrecord.Tag) (*nrbfrecord.ClassRecord, error) {
	rec := &nrbfrecord.ClassRecord{Kind: tag}

	switch tag {
	case nrbfrecord.TagClassWithId:
		objID, err := r.ReadInt32()
		if err != nil {
			return nil, wrapErr(r, "reading ClassWithId id", err)
		}
		metaID, err := r.ReadInt32()
		if err != nil {
			return nil, wrapErr(r, "reading ClassWithId metadata id", err)
		}
		meta, ok := res.Metadata[metaID]
		if !ok {
			return nil, wrapErr(r, "resolving ClassWithId metadata", &UnknownMetadataIDError{ID: metaID})
		}
		rec.ObjectID = objID
		rec.MetadataID = metaID
		rec.Info = meta.Info
		rec.TypeInfo = meta.TypeInfo
		rec.HasLibraryID = meta.HasLibraryID
		rec.LibraryID = meta.LibraryID
		if err := registerIdentity(res, objID); err != nil {
			return nil, wrapErr(r, "registering ClassWithId", err)
		}
		res.Identity[objID] = rec

	case nrbfrecord.TagSystemClassWithMembers, nrbfrecord.TagClassWithMembers,
		nrbfrecord.TagSystemClassWithMembersAndTypes, nrbfrecord.TagClassWithMembersAndTypes:
		info, err := readClassInfo(r)
		if err != nil {
			return nil, wrapErr(r, "reading ClassInfo", err)
		}
		rec.Info = info
		rec.ObjectID = info.ObjectID

		if tag.HasTypeInfo() {
			typeInfo, err := readMemberTypeInfo(r, info.MemberCount())
			if err != nil {
				return nil, wrapErr(r, "reading MemberTypeInfo", err)
			}
			rec.TypeInfo = typeInfo
		}

		if tag == nrbfrecord.TagClassWithMembers || tag == nrbfrecord.TagClassWithMembersAndTypes {
			libID, err := r.ReadInt32()
			if err != nil {
				return nil, wrapErr(r, "reading class library id", err)
			}
			rec.HasLibraryID = true
			rec.LibraryID = libID
		}

		if err := registerIdentity(res, rec.ObjectID); err != nil {
			return nil, wrapErr(r, "registering class", err)
		}
		res.Identity[rec.ObjectID] = rec
		res.Metadata[rec.ObjectID] = rec

	default:
		return nil, wrapErr(r, "reading class", &UnknownRecordTagError{Tag: byte(tag)})
	}
	res.Order = append(res.Order, rec)

	rec.Members = make(map[string]nrbfrecord.Value, rec.Info.MemberCount())
	for i, name := range rec.Info.MemberNames {
		var value nrbfrecord.Value
		var err error
		if rec.TypeInfo != nil && rec.TypeInfo.Tags[i] == nrbfrecord.BinaryTypePrimitive {
			pk := rec.TypeInfo.Additional[i].Primitive
			raw, rerr := d.readPrimitiveValue(r, pk)
			if rerr != nil {
				return nil, wrapErr(r, fmt.Sprintf("reading member %q", name), rerr)
			}
			value = nrbfrecord.Value{Kind: nrbfrecord.KindPrimitive, Primitive: nrbfrecord.Primitive{Kind: pk, Value: raw}}
		} else {
			value, err = d.readSingleValue(r, res)
			if err != nil {
				return nil, wrapErr(r, fmt.Sprintf("reading member %q", name), err)
			}
		}
		rec.Members[name] = value
	}

	return rec, nil
}

func (d *Decoder) readArray(r *nrbfprim.Reader, res *Result, tag nrbfrecord.Tag) (*nrbfrecord.ArrayRecord, error) {
	rec := &nrbfrecord.ArrayRecord{Kind: tag}

	var err error
	if rec.ObjectID, err = r.ReadInt32(); err != nil {
		return nil, wrapErr(r, "reading array object id", err)
	}

	switch tag {
	case nrbfrecord.TagBinaryArray:
		shapeByte, err := r.ReadByte()
		if err != nil {
			return nil, wrapErr(r, "reading array shape", err)
		}
		shape := nrbfrecord.ArrayShape(shapeByte)
		if !shape.IsValid() {
			return nil, wrapErr(r, "reading array shape", &UnknownArrayShapeTagError{Tag: shapeByte})
		}
		rec.Shape = shape

		rank, err := r.ReadInt32()
		if err != nil {
			return nil, wrapErr(r, "reading array rank", err)
		}
		if rank < 0 {
			return nil, wrapErr(r, "reading array rank", fmt.Errorf("negative rank %d", rank))
		}
		rec.Rank = rank

		rec.Lengths = make([]int32, rank)
		for i := range rec.Lengths {
			if rec.Lengths[i], err = r.ReadInt32(); err != nil {
				return nil, wrapErr(r, "reading array lengths", err)
			}
		}

		if shape.HasLowerBounds() {
			rec.LowerBounds = make([]int32, rank)
			for i := range rec.LowerBounds {
				if rec.LowerBounds[i], err = r.ReadInt32(); err != nil {
					return nil, wrapErr(r, "reading array lower bounds", err)
				}
			}
		}

		typeByte, err := r.ReadByte()
		if err != nil {
			return nil, wrapErr(r, "reading array element type tag", err)
		}
		elemTag := nrbfrecord.BinaryTypeTag(typeByte)
		if !elemTag.IsValid() {
			return nil, wrapErr(r, "reading array element type tag", &UnknownBinaryTypeTagError{Tag: typeByte})
		}
		rec.ElementTypeTag = elemTag
		rec.ElementAdditional, err = readAdditionalTypeInfo(r, elemTag)
		if err != nil {
			return nil, wrapErr(r, "reading array element type info", err)
		}

	case nrbfrecord.TagArraySinglePrimitive:
		length, err := r.ReadInt32()
		if err != nil {
			return nil, wrapErr(r, "reading array length", err)
		}
		rec.Lengths = []int32{length}
		pkByte, err := r.ReadByte()
		if err != nil {
			return nil, wrapErr(r, "reading array primitive tag", err)
		}
		pk := nrbfrecord.PrimitiveKind(pkByte)
		if !pk.IsValid() {
			return nil, wrapErr(r, "reading array primitive tag", &UnknownPrimitiveTagError{Tag: pkByte})
		}
		rec.ElementPrimitive = pk

	case nrbfrecord.TagArraySingleObject, nrbfrecord.TagArraySingleString:
		length, err := r.ReadInt32()
		if err != nil {
			return nil, wrapErr(r, "reading array length", err)
		}
		rec.Lengths = []int32{length}
	}

	if err := registerIdentity(res, rec.ObjectID); err != nil {
		return nil, wrapErr(r, "registering array", err)
	}
	res.Identity[rec.ObjectID] = rec

	total := rec.TotalLength()
	if total < 0 {
		return nil, wrapErr(r, "computing array length", fmt.Errorf("negative total length %d", total))
	}

	elements := make([]nrbfrecord.Value, 0, total)
	for int64(len(elements)) < total {
		var vals []nrbfrecord.Value
		switch {
		case tag == nrbfrecord.TagArraySinglePrimitive:
			raw, err := d.readPrimitiveValue(r, rec.ElementPrimitive)
			if err != nil {
				return nil, wrapErr(r, "reading array element", err)
			}
			vals = []nrbfrecord.Value{{Kind: nrbfrecord.KindPrimitive, Primitive: nrbfrecord.Primitive{Kind: rec.ElementPrimitive, Value: raw}}}
		case tag == nrbfrecord.TagBinaryArray && rec.ElementTypeTag == nrbfrecord.BinaryTypePrimitive:
			raw, err := d.readPrimitiveValue(r, rec.ElementAdditional.Primitive)
			if err != nil {
				return nil, wrapErr(r, "reading array element", err)
			}
			vals = []nrbfrecord.Value{{Kind: nrbfrecord.KindPrimitive, Primitive: nrbfrecord.Primitive{Kind: rec.ElementAdditional.Primitive, Value: raw}}}
		default:
			tagByte, err := r.ReadByte()
			if err != nil {
				return nil, wrapErr(r, "reading array element tag", err)
			}
			var elemRec nrbfrecord.Record
			vals, elemRec, err = d.readToken(r, res, nrbfrecord.Tag(tagByte))
			if err != nil {
				return nil, err
			}
			if elemRec != nil {
				res.Order = append(res.Order, elemRec)
			}
		}
		if int64(len(elements)+len(vals)) > total {
			return nil, wrapErr(r, "reading array elements", fmt.Errorf("element run overruns declared length %d", total))
		}
		elements = append(elements, vals...)
	}
	rec.Elements = elements

	return rec, nil
}

func wrapErr(r *nrbfprim.Reader, message string, err error) error {
	return &DecodeError{Offset: int64(r.Offset()), Message: message, Err: err}
}

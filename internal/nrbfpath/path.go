// Package nrbfpath resolves dot-joined path expressions ("Root.Items[2].Name")
// against a decoded record graph, following references at each step.
package nrbfpath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nrbfedit/nrbfedit/internal/nrbfrecord"
)

// Segment is one dot-separated path component: a member name, an
// array index, or both (a named member that is itself indexed, one
// level of a jagged array).
type Segment struct {
	Name     string
	HasIndex bool
	Index    int
}

// NotFoundError reports a path segment with no matching member or
// element, or one applied to a record kind it does not fit (indexing
// a class, naming into an array).
type NotFoundError struct {
	Path    string
	Segment string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("nrbfpath: %q: segment %q not found", e.Path, e.Segment)
}

// DanglingReferenceError reports a step through a reference whose
// target id was never declared.
type DanglingReferenceError struct {
	Path string
	ID   int32
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("nrbfpath: %q: dangling reference to object %d", e.Path, e.ID)
}

// Resolver looks up a record by the object id a Value names.
type Resolver interface {
	Lookup(id int32) (nrbfrecord.Record, bool)
}

// Parse splits path into segments. Each dot-separated token is a name,
// an "[i]" index, or a "name[i]" combination.
func Parse(path string) ([]Segment, error) {
	if path == "" {
		return nil, fmt.Errorf("nrbfpath: empty path")
	}
	parts := strings.Split(path, ".")
	segs := make([]Segment, 0, len(parts))
	for _, p := range parts {
		seg, err := parseSegment(p)
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

func parseSegment(tok string) (Segment, error) {
	var seg Segment
	open := strings.IndexByte(tok, '[')
	if open < 0 {
		if tok == "" {
			return seg, fmt.Errorf("nrbfpath: empty path segment")
		}
		seg.Name = tok
		return seg, nil
	}
	if !strings.HasSuffix(tok, "]") {
		return seg, fmt.Errorf("nrbfpath: malformed segment %q", tok)
	}
	seg.Name = tok[:open]
	idx, err := strconv.Atoi(tok[open+1 : len(tok)-1])
	if err != nil {
		return seg, fmt.Errorf("nrbfpath: malformed index in segment %q: %w", tok, err)
	}
	seg.HasIndex = true
	seg.Index = idx
	return seg, nil
}

// Resolve walks path starting from root, following member lookups,
// array indexing, and reference resolution at each step. It returns
// the final slot's Value; a path ending on a primitive or null returns
// it as is, and a path ending on a reference is followed one more hop
// and returns a KindRecord naming the referent (a DanglingReferenceError
// if the target id is unknown).
func Resolve(root nrbfrecord.Record, resolver Resolver, path string) (nrbfrecord.Value, error) {
	segs, err := Parse(path)
	if err != nil {
		return nrbfrecord.Value{}, err
	}

	cur := nrbfrecord.Value{Kind: nrbfrecord.KindRecord, RecordID: objectID(root)}

	for _, seg := range segs {
		if seg.Name != "" {
			rec, err := resolveRecord(resolver, cur, path)
			if err != nil {
				return nrbfrecord.Value{}, err
			}
			cr, ok := rec.(*nrbfrecord.ClassRecord)
			if !ok {
				return nrbfrecord.Value{}, &NotFoundError{Path: path, Segment: seg.Name}
			}
			v, ok := cr.Members[seg.Name]
			if !ok {
				return nrbfrecord.Value{}, &NotFoundError{Path: path, Segment: seg.Name}
			}
			cur = v
		}
		if seg.HasIndex {
			rec, err := resolveRecord(resolver, cur, path)
			if err != nil {
				return nrbfrecord.Value{}, err
			}
			ar, ok := rec.(*nrbfrecord.ArrayRecord)
			if !ok {
				return nrbfrecord.Value{}, &NotFoundError{Path: path, Segment: fmt.Sprintf("[%d]", seg.Index)}
			}
			if seg.Index < 0 || seg.Index >= len(ar.Elements) {
				return nrbfrecord.Value{}, &NotFoundError{Path: path, Segment: fmt.Sprintf("[%d]", seg.Index)}
			}
			cur = ar.Elements[seg.Index]
		}
	}

	// A path that lands on a MemberReference is resolved one more hop
	// so callers see the referent directly, matching every other step
	// of the walk.
	if cur.Kind == nrbfrecord.KindReference {
		rec, err := resolveRecord(resolver, cur, path)
		if err != nil {
			return nrbfrecord.Value{}, err
		}
		cur = nrbfrecord.Value{Kind: nrbfrecord.KindRecord, RecordID: objectID(rec)}
	}

	return cur, nil
}

// Accessor names a single mutable slot reached by a path: a named
// member of a class record, or an indexed element of an array record.
type Accessor struct {
	Kind       AccessorKind
	ClassRec   *nrbfrecord.ClassRecord
	MemberName string
	ArrayRec   *nrbfrecord.ArrayRecord
	Index      int
}

// AccessorKind distinguishes the two slot shapes an Accessor can name.
type AccessorKind uint8

const (
	AccessorMember AccessorKind = iota
	AccessorIndex
)

// Get reads the slot's current value.
func (a Accessor) Get() nrbfrecord.Value {
	if a.Kind == AccessorMember {
		return a.ClassRec.Members[a.MemberName]
	}
	return a.ArrayRec.Elements[a.Index]
}

// Set overwrites the slot's value in place.
func (a Accessor) Set(v nrbfrecord.Value) {
	if a.Kind == AccessorMember {
		a.ClassRec.Members[a.MemberName] = v
		return
	}
	a.ArrayRec.Elements[a.Index] = v
}

// ResolveAccessor walks path like Resolve, but returns a handle to the
// final slot itself rather than its value, so callers can overwrite it.
func ResolveAccessor(root nrbfrecord.Record, resolver Resolver, path string) (Accessor, error) {
	segs, err := Parse(path)
	if err != nil {
		return Accessor{}, err
	}
	if len(segs) == 0 {
		return Accessor{}, fmt.Errorf("nrbfpath: empty path")
	}

	cur := nrbfrecord.Value{Kind: nrbfrecord.KindRecord, RecordID: objectID(root)}
	var acc Accessor

	for i, seg := range segs {
		isLast := i == len(segs)-1

		if seg.Name != "" {
			rec, err := resolveRecord(resolver, cur, path)
			if err != nil {
				return Accessor{}, err
			}
			cr, ok := rec.(*nrbfrecord.ClassRecord)
			if !ok {
				return Accessor{}, &NotFoundError{Path: path, Segment: seg.Name}
			}
			v, ok := cr.Members[seg.Name]
			if !ok {
				return Accessor{}, &NotFoundError{Path: path, Segment: seg.Name}
			}
			if isLast && !seg.HasIndex {
				acc = Accessor{Kind: AccessorMember, ClassRec: cr, MemberName: seg.Name}
			}
			cur = v
		}

		if seg.HasIndex {
			rec, err := resolveRecord(resolver, cur, path)
			if err != nil {
				return Accessor{}, err
			}
			ar, ok := rec.(*nrbfrecord.ArrayRecord)
			if !ok {
				return Accessor{}, &NotFoundError{Path: path, Segment: fmt.Sprintf("[%d]", seg.Index)}
			}
			if seg.Index < 0 || seg.Index >= len(ar.Elements) {
				return Accessor{}, &NotFoundError{Path: path, Segment: fmt.Sprintf("[%d]", seg.Index)}
			}
			if isLast {
				acc = Accessor{Kind: AccessorIndex, ArrayRec: ar, Index: seg.Index}
			}
			cur = ar.Elements[seg.Index]
		}
	}

	return acc, nil
}

func resolveRecord(resolver Resolver, v nrbfrecord.Value, path string) (nrbfrecord.Record, error) {
	var id int32
	switch v.Kind {
	case nrbfrecord.KindRecord:
		id = v.RecordID
	case nrbfrecord.KindReference:
		id = v.RefID
	default:
		return nil, &NotFoundError{Path: path, Segment: "(non-record value)"}
	}
	rec, ok := resolver.Lookup(id)
	if !ok {
		return nil, &DanglingReferenceError{Path: path, ID: id}
	}
	return rec, nil
}

func objectID(rec nrbfrecord.Record) int32 {
	switch r := rec.(type) {
	case *nrbfrecord.ClassRecord:
		return r.ObjectID
	case *nrbfrecord.ArrayRecord:
		return r.ObjectID
	case *nrbfrecord.StringRecord:
		return r.ObjectID
	default:
		return 0
	}
}

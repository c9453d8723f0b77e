// Package nrbfdiff compares two decoded record graphs structurally,
// producing an ordered list of field-level changes.
package nrbfdiff

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"

	"github.com/nrbfedit/nrbfedit/internal/nrbfrecord"
)

// ChangeKind classifies a single FieldChange.
type ChangeKind uint8

const (
	ChangeModified ChangeKind = iota
	ChangeAdded
	ChangeRemoved
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeModified:
		return "modified"
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// FieldChange is one detected difference, addressed by the same path
// syntax internal/nrbfpath resolves.
type FieldChange struct {
	Path   string     `json:"path"`
	Kind   ChangeKind `json:"kind"`
	Before string     `json:"before,omitempty"`
	After  string     `json:"after,omitempty"`
}

// MarshalJSON renders Kind as its lowercase name rather than its
// underlying number, so MCP/CLI JSON output matches diffHandler's
// other string fields.
func (k ChangeKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// Resolver looks up a record by the object id a Value names.
type Resolver interface {
	Lookup(id int32) (nrbfrecord.Record, bool)
}

// Diff walks rootA/rootB in lockstep, pre-order, following each side's
// own member and element order, and returns every detected change in
// the order encountered.
func Diff(rootA nrbfrecord.Record, resolverA Resolver, rootB nrbfrecord.Record, resolverB Resolver) []FieldChange {
	var out []FieldChange
	seen := make(map[string]bool)
	diffRecord("", rootA, resolverA, rootB, resolverB, seen, &out)
	return out
}

func diffRecord(path string, a nrbfrecord.Record, ra Resolver, b nrbfrecord.Record, rb Resolver, seen map[string]bool, out *[]FieldChange) {
	key := fmt.Sprintf("%s#%d|%d", path, objectID(a), objectID(b))
	if seen[key] {
		return
	}
	seen[key] = true

	switch ta := a.(type) {
	case *nrbfrecord.ClassRecord:
		tb, ok := b.(*nrbfrecord.ClassRecord)
		if !ok {
			*out = append(*out, FieldChange{Path: path, Kind: ChangeModified, Before: describeRecord(a), After: describeRecord(b)})
			return
		}
		if isGuid(ta) && isGuid(tb) {
			ga, errA := guidText(ta)
			gb, errB := guidText(tb)
			if errA == nil && errB == nil && ga != gb {
				*out = append(*out, FieldChange{Path: path, Kind: ChangeModified, Before: ga, After: gb})
			}
			return
		}
		if ta.Info.Name != tb.Info.Name {
			// Different classes at the same slot: the member sets aren't
			// comparable, so collapse the whole subtree to one change
			// instead of recursing into diffClassMembers.
			*out = append(*out, FieldChange{Path: path, Kind: ChangeModified, Before: describeRecord(ta), After: describeRecord(tb)})
			return
		}
		diffClassMembers(path, ta, ra, tb, rb, seen, out)

	case *nrbfrecord.ArrayRecord:
		tb, ok := b.(*nrbfrecord.ArrayRecord)
		if !ok {
			*out = append(*out, FieldChange{Path: path, Kind: ChangeModified, Before: describeRecord(a), After: describeRecord(b)})
			return
		}
		diffArrayElements(path, ta, ra, tb, rb, seen, out)

	case *nrbfrecord.StringRecord:
		tb, ok := b.(*nrbfrecord.StringRecord)
		if !ok || tb.Value != ta.Value {
			*out = append(*out, FieldChange{Path: path, Kind: ChangeModified, Before: quoteOrDesc(a, ok), After: quoteOrDesc(b, ok)})
		}
	}
}

func quoteOrDesc(rec nrbfrecord.Record, sameKind bool) string {
	if sr, ok := rec.(*nrbfrecord.StringRecord); ok {
		return fmt.Sprintf("%q", sr.Value)
	}
	return describeRecord(rec)
}

func diffClassMembers(path string, ta *nrbfrecord.ClassRecord, ra Resolver, tb *nrbfrecord.ClassRecord, rb Resolver, seen map[string]bool, out *[]FieldChange) {
	inB := make(map[string]bool, len(tb.Info.MemberNames))
	for _, n := range tb.Info.MemberNames {
		inB[n] = true
	}
	inA := make(map[string]bool, len(ta.Info.MemberNames))
	for _, n := range ta.Info.MemberNames {
		inA[n] = true
	}

	for _, name := range ta.Info.MemberNames {
		childPath := joinPath(path, name)
		va := ta.Members[name]
		if !inB[name] {
			*out = append(*out, FieldChange{Path: childPath, Kind: ChangeRemoved, Before: describeValue(va, ra)})
			continue
		}
		diffValue(childPath, va, ra, tb.Members[name], rb, seen, out)
	}
	for _, name := range tb.Info.MemberNames {
		if inA[name] {
			continue
		}
		childPath := joinPath(path, name)
		*out = append(*out, FieldChange{Path: childPath, Kind: ChangeAdded, After: describeValue(tb.Members[name], rb)})
	}
}

func diffArrayElements(path string, ta *nrbfrecord.ArrayRecord, ra Resolver, tb *nrbfrecord.ArrayRecord, rb Resolver, seen map[string]bool, out *[]FieldChange) {
	minLen := len(ta.Elements)
	if len(tb.Elements) < minLen {
		minLen = len(tb.Elements)
	}
	for i := 0; i < minLen; i++ {
		childPath := fmt.Sprintf("%s[%d]", path, i)
		diffValue(childPath, ta.Elements[i], ra, tb.Elements[i], rb, seen, out)
	}
	for i := minLen; i < len(ta.Elements); i++ {
		childPath := fmt.Sprintf("%s[%d]", path, i)
		*out = append(*out, FieldChange{Path: childPath, Kind: ChangeRemoved, Before: describeValue(ta.Elements[i], ra)})
	}
	for i := minLen; i < len(tb.Elements); i++ {
		childPath := fmt.Sprintf("%s[%d]", path, i)
		*out = append(*out, FieldChange{Path: childPath, Kind: ChangeAdded, After: describeValue(tb.Elements[i], rb)})
	}
}

func diffValue(path string, va nrbfrecord.Value, ra Resolver, vb nrbfrecord.Value, rb Resolver, seen map[string]bool, out *[]FieldChange) {
	if va.Kind == nrbfrecord.KindNull && vb.Kind == nrbfrecord.KindNull {
		return
	}

	recA, errA := resolve(ra, va)
	recB, errB := resolve(rb, vb)

	if recA != nil || recB != nil {
		switch {
		case errA != nil || errB != nil:
			*out = append(*out, FieldChange{Path: path, Kind: ChangeModified, Before: describeValue(va, ra), After: describeValue(vb, rb)})
		case recA == nil:
			*out = append(*out, FieldChange{Path: path, Kind: ChangeAdded, After: describeValue(vb, rb)})
		case recB == nil:
			*out = append(*out, FieldChange{Path: path, Kind: ChangeRemoved, Before: describeValue(va, ra)})
		default:
			diffRecord(path, recA, ra, recB, rb, seen, out)
		}
		return
	}

	if !valuesEqual(va, vb) {
		*out = append(*out, FieldChange{Path: path, Kind: ChangeModified, Before: describeValue(va, ra), After: describeValue(vb, rb)})
	}
}

func valuesEqual(a, b nrbfrecord.Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind != nrbfrecord.KindPrimitive {
		return true
	}
	return a.Primitive.Kind == b.Primitive.Kind && reflect.DeepEqual(a.Primitive.Value, b.Primitive.Value)
}

func resolve(r Resolver, v nrbfrecord.Value) (nrbfrecord.Record, error) {
	var id int32
	switch v.Kind {
	case nrbfrecord.KindRecord:
		id = v.RecordID
	case nrbfrecord.KindReference:
		id = v.RefID
	default:
		return nil, nil
	}
	rec, ok := r.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("nrbfdiff: dangling reference to object %d", id)
	}
	return rec, nil
}

func describeValue(v nrbfrecord.Value, r Resolver) string {
	switch v.Kind {
	case nrbfrecord.KindNull:
		return "null"
	case nrbfrecord.KindPrimitive:
		if v.Primitive.Kind == nrbfrecord.PrimitiveString {
			return fmt.Sprintf("%q", v.Primitive.Value)
		}
		return fmt.Sprintf("%v", v.Primitive.Value)
	case nrbfrecord.KindReference:
		rec, ok := r.Lookup(v.RefID)
		if !ok {
			return fmt.Sprintf("-> #%d (dangling)", v.RefID)
		}
		return describeRecord(rec)
	case nrbfrecord.KindRecord:
		rec, ok := r.Lookup(v.RecordID)
		if !ok {
			return fmt.Sprintf("#%d (dangling)", v.RecordID)
		}
		return describeRecord(rec)
	default:
		return "?"
	}
}

func describeRecord(rec nrbfrecord.Record) string {
	if rec == nil {
		return "null"
	}
	switch r := rec.(type) {
	case *nrbfrecord.ClassRecord:
		if isGuid(r) {
			if s, err := guidText(r); err == nil {
				return s
			}
		}
		return r.Info.Name
	case *nrbfrecord.ArrayRecord:
		return fmt.Sprintf("array(len=%d)", len(r.Elements))
	case *nrbfrecord.StringRecord:
		return fmt.Sprintf("%q", r.Value)
	default:
		return fmt.Sprintf("%T", rec)
	}
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
		return -1
	}
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

var guidFieldOrder = []string{"_a", "_b", "_c", "_d", "_e", "_f", "_g", "_h", "_i", "_j", "_k"}

func isGuid(rec *nrbfrecord.ClassRecord) bool {
	if rec == nil || rec.Info == nil || !strings.Contains(rec.Info.Name, "System.Guid") {
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

func guidText(rec *nrbfrecord.ClassRecord) (string, error) {
	ints := make([]int64, len(guidFieldOrder))
	for i, name := range guidFieldOrder {
		v, ok := rec.Members[name]
		if !ok {
			return "", fmt.Errorf("nrbfdiff: guid field %q missing", name)
		}
		n, ok := toInt64(v.Primitive.Value)
		if !ok {
			return "", fmt.Errorf("nrbfdiff: guid field %q is not an integer", name)
		}
		ints[i] = n
	}

	var raw [16]byte
	a, b, c := ints[0], ints[1], ints[2]
	raw[0], raw[1], raw[2], raw[3] = byte(a), byte(a>>8), byte(a>>16), byte(a>>24)
	raw[4], raw[5] = byte(b), byte(b>>8)
	raw[6], raw[7] = byte(c), byte(c>>8)
	for i, n := range ints[3:] {
		raw[8+i] = byte(n)
	}
	return uuid.UUID(raw).String(), nil
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case byte:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case uint16:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint32:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}

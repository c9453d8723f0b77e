package nrbf

import "github.com/nrbfedit/nrbfedit/internal/nrbfrecord"

// Resolve follows a single value one hop: a KindReference is looked up
// in the identity map, a KindRecord is looked up by its own id, and a
// primitive or null value resolves to (nil, nil) since it names
// no record.
//
// path is used only to annotate a DanglingReferenceError; pass "" when
// none is available.
func (d *Document) Resolve(path string, v nrbfrecord.Value) (nrbfrecord.Record, error) {
	var id int32
	switch v.Kind {
	case nrbfrecord.KindRecord:
		id = v.RecordID
	case nrbfrecord.KindReference:
		id = v.RefID
	default:
		return nil, nil
	}
	rec, ok := d.identity[id]
	if !ok {
		return nil, &DanglingReferenceError{Path: path, ID: id}
	}
	return rec, nil
}

// Member returns the value of a named member on a class record, in
// Info.MemberNames order semantics (map lookup, name must be declared).
func Member(rec *nrbfrecord.ClassRecord, name string) (nrbfrecord.Value, bool) {
	v, ok := rec.Members[name]
	return v, ok
}

// MemberNames returns a class record's declared member names in
// declaration order.
func MemberNames(rec *nrbfrecord.ClassRecord) []string {
	return rec.Info.MemberNames
}

// Walk performs a cycle-safe depth-first traversal of the object graph
// reachable from root, calling visit once for every record reached
// (the root included). A record already visited is not revisited or
// recursed into again, so self-referential and mutually-referential
// cycles terminate safely.
func (d *Document) Walk(root nrbfrecord.Record, visit func(nrbfrecord.Record) error) error {
	seen := make(map[nrbfrecord.Record]bool)
	return d.walk(root, seen, visit)
}

func (d *Document) walk(rec nrbfrecord.Record, seen map[nrbfrecord.Record]bool, visit func(nrbfrecord.Record) error) error {
	if rec == nil || seen[rec] {
		return nil
	}
	seen[rec] = true
	if err := visit(rec); err != nil {
		return err
	}

	switch r := rec.(type) {
	case *nrbfrecord.ClassRecord:
		for _, name := range r.Info.MemberNames {
			v := r.Members[name]
			child, err := d.Resolve("", v)
			if err != nil {
				continue // dangling references are reported by callers that need them, not by Walk
			}
			if err := d.walk(child, seen, visit); err != nil {
				return err
			}
		}
	case *nrbfrecord.ArrayRecord:
		for _, v := range r.Elements {
			child, err := d.Resolve("", v)
			if err != nil {
				continue
			}
			if err := d.walk(child, seen, visit); err != nil {
				return err
			}
		}
	}
	return nil
}

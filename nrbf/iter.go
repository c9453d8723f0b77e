package nrbf

import (
	"fmt"
	"iter"

	"github.com/nrbfedit/nrbfedit/internal/nrbfrecord"
)

// Traverse yields every addressable (path, value) pair reachable from
// the document root, depth first. A record already visited by its
// object id is not walked again, so cyclic graphs terminate. A
// dangling reference is reported to the document's log sink at Warn
// level and not followed. The sequence is finite and single-pass;
// range over it once per call.
func (d *Document) Traverse() iter.Seq2[string, nrbfrecord.Value] {
	return func(yield func(string, nrbfrecord.Value) bool) {
		seen := make(map[int32]bool)
		d.traverse("", d.Root(), seen, yield)
	}
}

func (d *Document) traverse(path string, rec nrbfrecord.Record, seen map[int32]bool, yield func(string, nrbfrecord.Value) bool) bool {
	switch r := rec.(type) {
	case *nrbfrecord.ClassRecord:
		if seen[r.ObjectID] {
			return true
		}
		seen[r.ObjectID] = true
		for _, name := range r.Info.MemberNames {
			v := r.Members[name]
			childPath := joinPath(path, name)
			if !yield(childPath, v) {
				return false
			}
			if child, err := d.Resolve(childPath, v); err != nil {
				d.sink.Warn("dangling reference during traversal", "path", childPath, "error", err)
			} else if child != nil {
				if !d.traverse(childPath, child, seen, yield) {
					return false
				}
			}
		}
	case *nrbfrecord.ArrayRecord:
		if seen[r.ObjectID] {
			return true
		}
		seen[r.ObjectID] = true
		for i, v := range r.Elements {
			childPath := fmt.Sprintf("%s[%d]", path, i)
			if !yield(childPath, v) {
				return false
			}
			if child, err := d.Resolve(childPath, v); err != nil {
				d.sink.Warn("dangling reference during traversal", "path", childPath, "error", err)
			} else if child != nil {
				if !d.traverse(childPath, child, seen, yield) {
					return false
				}
			}
		}
	}
	return true
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

package nrbf

import "github.com/nrbfedit/nrbfedit/internal/nrbfdiff"

// ChangeKind classifies a single FieldChange.
type ChangeKind = nrbfdiff.ChangeKind

// The three change kinds Diff can report.
const (
	ChangeModified = nrbfdiff.ChangeModified
	ChangeAdded    = nrbfdiff.ChangeAdded
	ChangeRemoved  = nrbfdiff.ChangeRemoved
)

// FieldChange is one detected difference between two documents.
type FieldChange = nrbfdiff.FieldChange

// Diff compares d against other, walking both root objects in
// lockstep and returning every field-level change in encounter order.
func (d *Document) Diff(other *Document) []FieldChange {
	return nrbfdiff.Diff(d.Root(), d, other.Root(), other)
}

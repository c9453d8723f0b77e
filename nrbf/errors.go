package nrbf

import "fmt"

// TypeMismatchError reports that an edit or query expected a different
// value kind than what a member or element actually holds.
type TypeMismatchError struct {
	Path     string
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("nrbf: %s: expected %s, got %s", e.Path, e.Expected, e.Got)
}

// DanglingReferenceError reports a MemberReference (or resolved path
// step) whose target id was never declared by any record.
type DanglingReferenceError struct {
	Path string
	ID   int32
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("nrbf: %s: dangling reference to object %d", e.Path, e.ID)
}

// InvalidGuidFormatError reports a string that does not parse as a
// canonical 36-character GUID, or a System.Guid record whose 11 fields
// could not be decomposed or recomposed.
type InvalidGuidFormatError struct {
	Value string
	Err   error
}

func (e *InvalidGuidFormatError) Error() string {
	return fmt.Sprintf("nrbf: invalid GUID %q: %v", e.Value, e.Err)
}

func (e *InvalidGuidFormatError) Unwrap() error { return e.Err }

// NotEditableError reports an attempt to edit a value outside the
// closed set the editor supports (primitives, strings, GUIDs): class
// shapes, array shapes, and reference targets are structural and are
// not mutated in place.
type NotEditableError struct {
	Path   string
	Reason string
}

func (e *NotEditableError) Error() string {
	return fmt.Sprintf("nrbf: %s: not editable: %s", e.Path, e.Reason)
}

// PathNotFoundError reports a path expression that does not resolve to
// any member or element of the document.
type PathNotFoundError struct {
	Path    string
	Segment string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("nrbf: path %q: segment %q not found", e.Path, e.Segment)
}

package nrbfencode

import "fmt"

// UnresolvableReferenceError reports a MemberReference (or a
// KindReference/KindRecord value) whose target id is not declared by
// any record being encoded.
type UnresolvableReferenceError struct{ ID int32 }

func (e *UnresolvableReferenceError) Error() string {
	return fmt.Sprintf("nrbfencode: unresolvable reference to object %d", e.ID)
}

// MissingTypeInfoError reports a class record whose wire kind requires
// a MemberTypeInfo that is nil.
type MissingTypeInfoError struct{ ObjectID int32 }

func (e *MissingTypeInfoError) Error() string {
	return fmt.Sprintf("nrbfencode: class %d is missing required type info", e.ObjectID)
}

// EncodeIntegerOutOfRangeError reports a count or length that cannot
// be represented on the wire (negative, or beyond a 32-bit encoding).
type EncodeIntegerOutOfRangeError struct {
	Field string
	Value int64
}

func (e *EncodeIntegerOutOfRangeError) Error() string {
	return fmt.Sprintf("nrbfencode: %s value %d is out of range", e.Field, e.Value)
}

// InconsistentArrayLengthError reports an array record whose Elements
// slice does not match the length its header declares.
type InconsistentArrayLengthError struct {
	ObjectID int32
	Declared int64
	Actual   int
}

func (e *InconsistentArrayLengthError) Error() string {
	return fmt.Sprintf("nrbfencode: array %d declares length %d but has %d elements", e.ObjectID, e.Declared, e.Actual)
}

package nrbfdecode

import (
	"fmt"

	"github.com/nrbfedit/nrbfedit/internal/nrbfprim"
)

// DecodeError wraps a structural decode failure with the byte offset
// at which it was detected, mirroring the teacher's ParseError shape.
type DecodeError struct {
	Offset  int64
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("nrbfdecode: %s at offset 0x%x: %v", e.Message, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Sentinel error kinds. Use errors.Is against these; DecodeError wraps
// the underlying failure (one of these, or one of the typed errors
// below) as Err, with Message/Offset carrying the specifics. The three
// reader-level kinds are the nrbfprim sentinels the reader returns.
var (
	ErrBadHeader             = baseErr("bad stream header")
	ErrUnexpectedEOF         = nrbfprim.ErrUnexpectedEOF
	ErrVarIntOverflow        = nrbfprim.ErrVarIntOverflow
	ErrMalformedString       = nrbfprim.ErrMalformedString
	ErrRecordBudgetExceeded  = baseErr("record budget exceeded")
)

type baseError string

func (e baseError) Error() string { return string(e) }

func baseErr(msg string) error { return baseError(msg) }

// UnknownRecordTagError reports an unrecognized record tag byte.
type UnknownRecordTagError struct{ Tag byte }

func (e *UnknownRecordTagError) Error() string {
	return fmt.Sprintf("nrbfdecode: unknown record tag %d", e.Tag)
}

// UnknownPrimitiveTagError reports an unrecognized primitive kind byte.
type UnknownPrimitiveTagError struct{ Tag byte }

func (e *UnknownPrimitiveTagError) Error() string {
	return fmt.Sprintf("nrbfdecode: unknown primitive tag %d", e.Tag)
}

// UnknownBinaryTypeTagError reports an unrecognized BinaryTypeTag byte.
type UnknownBinaryTypeTagError struct{ Tag byte }

func (e *UnknownBinaryTypeTagError) Error() string {
	return fmt.Sprintf("nrbfdecode: unknown binary type tag %d", e.Tag)
}

// UnknownArrayShapeTagError reports an unrecognized ArrayShape byte.
type UnknownArrayShapeTagError struct{ Tag byte }

func (e *UnknownArrayShapeTagError) Error() string {
	return fmt.Sprintf("nrbfdecode: unknown array shape tag %d", e.Tag)
}

// DuplicateObjectIDError reports an object id seen more than once.
type DuplicateObjectIDError struct{ ID int32 }

func (e *DuplicateObjectIDError) Error() string {
	return fmt.Sprintf("nrbfdecode: duplicate object id %d", e.ID)
}

// UnknownMetadataIDError reports a ClassWithId referring to a metadata
// id that was never declared.
type UnknownMetadataIDError struct{ ID int32 }

func (e *UnknownMetadataIDError) Error() string {
	return fmt.Sprintf("nrbfdecode: unknown metadata id %d", e.ID)
}

// RootNotFoundError reports that the header's rootId was never
// declared by any record.
type RootNotFoundError struct{ ID int32 }

func (e *RootNotFoundError) Error() string {
	return fmt.Sprintf("nrbfdecode: root object %d not found", e.ID)
}

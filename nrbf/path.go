package nrbf

import (
	"github.com/nrbfedit/nrbfedit/internal/nrbfpath"
	"github.com/nrbfedit/nrbfedit/internal/nrbfrecord"
)

// Get resolves a dot-joined path ("Root.Items[2].Name") against the
// document's root and returns the value found there. If the path
// lands on a MemberReference, it is followed one more hop so the
// returned value names the referent directly; callers that need the
// referent's record (not just its id) should pass the result to
// Resolve.
func (d *Document) Get(path string) (nrbfrecord.Value, error) {
	v, err := nrbfpath.Resolve(d.Root(), d, path)
	if err != nil {
		return nrbfrecord.Value{}, translatePathErr(path, err)
	}
	return v, nil
}

func (d *Document) accessor(path string) (nrbfpath.Accessor, error) {
	acc, err := nrbfpath.ResolveAccessor(d.Root(), d, path)
	if err != nil {
		return nrbfpath.Accessor{}, translatePathErr(path, err)
	}
	return acc, nil
}

func translatePathErr(path string, err error) error {
	switch e := err.(type) {
	case *nrbfpath.NotFoundError:
		return &PathNotFoundError{Path: e.Path, Segment: e.Segment}
	case *nrbfpath.DanglingReferenceError:
		return &DanglingReferenceError{Path: e.Path, ID: e.ID}
	default:
		return err
	}
}

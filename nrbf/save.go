package nrbf

import "github.com/nrbfedit/nrbfedit/internal/nrbfencode"

// Save re-encodes the document to NRBF bytes. If the document has
// never been edited (Dirty reports false), the output is byte-exact
// with what Load originally read; after edits, the emission-ordered
// record list is replayed with each record's current field values.
func (d *Document) Save() ([]byte, error) {
	return nrbfencode.Encode(&nrbfencode.Input{
		Header:   d.header,
		Order:    d.order,
		Identity: d.identity,
	})
}

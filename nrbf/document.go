// Package nrbf is the NRBF object model: a Document loads a byte
// buffer into an in-memory object graph, exposes typed navigation and
// a closed set of edits, and re-encodes byte-exact output for anything
// left unedited.
package nrbf

import (
	"sync"

	"github.com/nrbfedit/nrbfedit/internal/nrbfdecode"
	"github.com/nrbfedit/nrbfedit/internal/nrbflog"
	"github.com/nrbfedit/nrbfedit/internal/nrbfrecord"
)

// LibraryInfo is a declared BinaryLibrary entry.
type LibraryInfo struct {
	ID   int32
	Name string
}

// Document is a decoded NRBF stream: its emission-ordered record list,
// its three namespaces (object ids, metadata ids, library ids), and
// its root handle.
//
// A Document is not safe for concurrent edits; callers that share one
// across goroutines (the MCP server, for instance) must hold their own
// lock around mutating calls.
type Document struct {
	header    nrbfrecord.Header
	order     []nrbfrecord.Record
	identity  map[int32]nrbfrecord.Record
	metadata  map[int32]*nrbfrecord.ClassRecord
	libraries map[int32]string
	dirty     bool

	sink nrbflog.Sink

	classesOnce sync.Once
	classesView []*nrbfrecord.ClassRecord

	librariesOnce sync.Once
	librariesView []LibraryInfo

	stringsOnce sync.Once
	stringsView []*nrbfrecord.StringRecord
}

// LoadOption configures Load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	recordBudget int
	strictChar   bool
	sink         nrbflog.Sink
}

// WithRecordBudget overrides the decoder's default record budget.
func WithRecordBudget(n int) LoadOption {
	return func(c *loadConfig) { c.recordBudget = n }
}

// WithStrictChar switches Char decoding to 2-byte mode.
func WithStrictChar(strict bool) LoadOption {
	return func(c *loadConfig) { c.strictChar = strict }
}

// WithLogSink installs a diagnostic sink. The document's Traverse
// reports dangling references to it; the decoder receives it as well.
func WithLogSink(sink nrbflog.Sink) LoadOption {
	return func(c *loadConfig) { c.sink = sink }
}

// Load decodes data into a Document.
func Load(data []byte, opts ...LoadOption) (*Document, error) {
	cfg := &loadConfig{recordBudget: nrbfdecode.DefaultRecordBudget, sink: nrbflog.NoOp()}
	for _, opt := range opts {
		opt(cfg)
	}

	decOpts := []nrbfdecode.Option{
		nrbfdecode.WithRecordBudget(cfg.recordBudget),
		nrbfdecode.WithStrictChar(cfg.strictChar),
		nrbfdecode.WithLogSink(cfg.sink),
	}
	res, err := nrbfdecode.NewDecoder(decOpts...).Decode(data)
	if err != nil {
		return nil, err
	}

	return &Document{
		header:    res.Header,
		order:     res.Order,
		identity:  res.Identity,
		metadata:  res.Metadata,
		libraries: res.Libraries,
		sink:      cfg.sink,
	}, nil
}

// Header returns the decoded stream header.
func (d *Document) Header() nrbfrecord.Header { return d.header }

// RootID returns the header's root object id.
func (d *Document) RootID() int32 { return d.header.RootID }

// Root returns the record declared as this document's root.
func (d *Document) Root() nrbfrecord.Record {
	// Load already validated the root id resolves; a Document is never
	// constructed otherwise.
	return d.identity[d.header.RootID]
}

// Lookup returns the record declared under object id, if any.
func (d *Document) Lookup(id int32) (nrbfrecord.Record, bool) {
	rec, ok := d.identity[id]
	return rec, ok
}

// Order returns every record in the order it was (or will be)
// physically encoded. The slice is shared; callers must not mutate it.
func (d *Document) Order() []nrbfrecord.Record { return d.order }

// Classes returns every class record in the document, in emission
// order, lazily computed and cached on first use.
func (d *Document) Classes() []*nrbfrecord.ClassRecord {
	d.classesOnce.Do(func() {
		for _, rec := range d.order {
			if cr, ok := rec.(*nrbfrecord.ClassRecord); ok {
				d.classesView = append(d.classesView, cr)
			}
		}
	})
	return d.classesView
}

// Libraries returns every declared library, in declaration order.
func (d *Document) Libraries() []LibraryInfo {
	d.librariesOnce.Do(func() {
		for _, rec := range d.order {
			if lr, ok := rec.(*nrbfrecord.LibraryRecord); ok {
				d.librariesView = append(d.librariesView, LibraryInfo{ID: lr.LibraryID, Name: lr.Name})
			}
		}
	})
	return d.librariesView
}

// Strings returns every top-level string record, in emission order.
// Strings inlined via MemberPrimitiveTyped are not included; they
// carry no object identity of their own.
func (d *Document) Strings() []*nrbfrecord.StringRecord {
	d.stringsOnce.Do(func() {
		for _, rec := range d.order {
			if sr, ok := rec.(*nrbfrecord.StringRecord); ok {
				d.stringsView = append(d.stringsView, sr)
			}
		}
	})
	return d.stringsView
}

// Dirty reports whether the document has been edited since it was
// loaded. A dirty document no longer guarantees byte-exact re-encoding.
func (d *Document) Dirty() bool { return d.dirty }

func (d *Document) markDirty() {
	d.dirty = true
}

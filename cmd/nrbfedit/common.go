package main

import (
	"fmt"
	"os"

	"github.com/nrbfedit/nrbfedit/internal/nrbflog"
	"github.com/nrbfedit/nrbfedit/nrbf"
)

func loadDocument(path string) (*nrbf.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := nrbf.Load(data, nrbf.WithLogSink(nrbflog.NewSlog(logger)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return doc, nil
}

// Package nrbfmcp implements a Model Context Protocol front end over the
// nrbf programmatic surface: load, get, set, save, diff, and traverse.
package nrbfmcp

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nrbfedit/nrbfedit/nrbf"
)

// Server holds every open document session behind a single mutex.
// This is a development convenience, not a multi-tenant service: a
// session lives only as long as the process and is visible to any
// client connected to it.
type Server struct {
	mu       sync.RWMutex
	sessions map[string]*nrbf.Document
	paths    map[string]string

	Logger *slog.Logger
}

func NewServer(logger *slog.Logger) *Server {
	return &Server{
		sessions: make(map[string]*nrbf.Document),
		paths:    make(map[string]string),
		Logger:   logger,
	}
}

func (s *Server) newSessionID() (string, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf[:]), nil
}

func (s *Server) put(path string, doc *nrbf.Document) (string, error) {
	id, err := s.newSessionID()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = doc
	s.paths[id] = path
	return id, nil
}

func (s *Server) get(id string) (*nrbf.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.sessions[id]
	return doc, ok
}

func (s *Server) sourcePath(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paths[id]
}

func (s *Server) requireSession(id string) (*nrbf.Document, error) {
	doc, ok := s.get(id)
	if !ok {
		return nil, fmt.Errorf("unknown session id %q", id)
	}
	return doc, nil
}

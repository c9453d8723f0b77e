package nrbfmcp

import (
	"context"
	"encoding/json"
	"os"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nrbfedit/nrbfedit/nrbf"
)

const defaultTraverseLimit = 200

func (s *Server) loadHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path must be set"), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultErrorf("failed to read %s: %s", path, err), nil
	}

	doc, err := nrbf.Load(data)
	if err != nil {
		return mcp.NewToolResultErrorf("failed to decode %s: %s", path, err), nil
	}

	id, err := s.put(path, doc)
	if err != nil {
		return mcp.NewToolResultErrorf("failed to allocate session: %s", err), nil
	}

	result := map[string]any{
		"session_id": id,
		"records":    len(doc.Order()),
		"classes":    len(doc.Classes()),
		"strings":    len(doc.Strings()),
		"libraries":  len(doc.Libraries()),
	}
	jbytes, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultErrorf("failed to marshal result: %s", err), nil
	}

	s.Logger.Info("nrbf_load", "path", path, "session_id", id)
	return mcp.NewToolResultText(string(jbytes)), nil
}

func (s *Server) getHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id must be set"), nil
	}
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path must be set"), nil
	}

	doc, err := s.requireSession(sessionID)
	if err != nil {
		return mcp.NewToolResultErrorf("%s", err), nil
	}

	desc, err := doc.Describe(path)
	if err != nil {
		return mcp.NewToolResultErrorf("failed to resolve %s: %s", path, err), nil
	}

	s.Logger.Info("nrbf_get", "session_id", sessionID, "path", path)
	return mcp.NewToolResultText(desc), nil
}

func (s *Server) setPrimitiveHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id must be set"), nil
	}
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path must be set"), nil
	}
	kind, err := request.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError("kind must be set"), nil
	}
	raw, err := request.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value must be set"), nil
	}

	doc, err := s.requireSession(sessionID)
	if err != nil {
		return mcp.NewToolResultErrorf("%s", err), nil
	}

	if err := setPrimitiveByKind(doc, path, kind, raw); err != nil {
		return mcp.NewToolResultErrorf("failed to set %s: %s", path, err), nil
	}

	s.Logger.Info("nrbf_set_primitive", "session_id", sessionID, "path", path, "kind", kind)
	return mcp.NewToolResultText("ok"), nil
}

func (s *Server) setGuidHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id must be set"), nil
	}
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path must be set"), nil
	}
	value, err := request.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value must be set"), nil
	}

	doc, err := s.requireSession(sessionID)
	if err != nil {
		return mcp.NewToolResultErrorf("%s", err), nil
	}

	if err := doc.SetGuid(path, value); err != nil {
		return mcp.NewToolResultErrorf("failed to set %s: %s", path, err), nil
	}

	s.Logger.Info("nrbf_set_guid", "session_id", sessionID, "path", path)
	return mcp.NewToolResultText("ok"), nil
}

func (s *Server) setStringHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id must be set"), nil
	}
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path must be set"), nil
	}
	value, err := request.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value must be set"), nil
	}

	doc, err := s.requireSession(sessionID)
	if err != nil {
		return mcp.NewToolResultErrorf("%s", err), nil
	}

	if err := doc.SetString(path, value); err != nil {
		return mcp.NewToolResultErrorf("failed to set %s: %s", path, err), nil
	}

	s.Logger.Info("nrbf_set_string", "session_id", sessionID, "path", path)
	return mcp.NewToolResultText("ok"), nil
}

func (s *Server) saveHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id must be set"), nil
	}
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path must be set"), nil
	}

	doc, err := s.requireSession(sessionID)
	if err != nil {
		return mcp.NewToolResultErrorf("%s", err), nil
	}

	out, err := doc.Save()
	if err != nil {
		return mcp.NewToolResultErrorf("failed to re-encode session: %s", err), nil
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return mcp.NewToolResultErrorf("failed to write %s: %s", path, err), nil
	}

	s.Logger.Info("nrbf_save", "session_id", sessionID, "path", path, "bytes", len(out))
	return mcp.NewToolResultText(strconv.Itoa(len(out))), nil
}

func (s *Server) diffHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idA, err := request.RequireString("session_id_a")
	if err != nil {
		return mcp.NewToolResultError("session_id_a must be set"), nil
	}
	idB, err := request.RequireString("session_id_b")
	if err != nil {
		return mcp.NewToolResultError("session_id_b must be set"), nil
	}

	docA, err := s.requireSession(idA)
	if err != nil {
		return mcp.NewToolResultErrorf("%s", err), nil
	}
	docB, err := s.requireSession(idB)
	if err != nil {
		return mcp.NewToolResultErrorf("%s", err), nil
	}

	changes := docA.Diff(docB)
	jbytes, err := json.Marshal(changes)
	if err != nil {
		return mcp.NewToolResultErrorf("failed to marshal changes: %s", err), nil
	}

	s.Logger.Info("nrbf_diff", "session_id_a", idA, "session_id_b", idB, "changes", len(changes))
	return mcp.NewToolResultText(string(jbytes)), nil
}

type traversePair struct {
	Path  string `json:"path"`
	Value string `json:"value"`
}

func (s *Server) traverseHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id must be set"), nil
	}

	args := request.GetArguments()
	offset := intArg(args, "offset", 0)
	limit := intArg(args, "limit", defaultTraverseLimit)

	doc, err := s.requireSession(sessionID)
	if err != nil {
		return mcp.NewToolResultErrorf("%s", err), nil
	}

	var pairs []traversePair
	skipped := 0
	for path := range doc.Traverse() {
		if skipped < offset {
			skipped++
			continue
		}
		if len(pairs) >= limit {
			break
		}
		desc, err := doc.Describe(path)
		if err != nil {
			desc = "<error: " + err.Error() + ">"
		}
		pairs = append(pairs, traversePair{Path: path, Value: desc})
	}

	jbytes, err := json.Marshal(pairs)
	if err != nil {
		return mcp.NewToolResultErrorf("failed to marshal pairs: %s", err), nil
	}

	s.Logger.Info("nrbf_traverse", "session_id", sessionID, "offset", offset, "limit", limit, "returned", len(pairs))
	return mcp.NewToolResultText(string(jbytes)), nil
}

func intArg(args map[string]any, key string, def int) int {
	v, ok := args[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return def
	}
}

func setPrimitiveByKind(doc *nrbf.Document, path, kind, raw string) error {
	switch kind {
	case "bool":
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		return doc.SetBool(path, v)
	case "byte":
		v, err := strconv.ParseUint(raw, 10, 8)
		if err != nil {
			return err
		}
		return doc.SetByte(path, byte(v))
	case "sbyte":
		v, err := strconv.ParseInt(raw, 10, 8)
		if err != nil {
			return err
		}
		return doc.SetSByte(path, int8(v))
	case "char":
		r := []rune(raw)
		if len(r) != 1 {
			return &strconvCharError{raw}
		}
		return doc.SetChar(path, r[0])
	case "int16":
		v, err := strconv.ParseInt(raw, 10, 16)
		if err != nil {
			return err
		}
		return doc.SetInt16(path, int16(v))
	case "int32":
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return err
		}
		return doc.SetInt32(path, int32(v))
	case "int64":
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}
		return doc.SetInt64(path, v)
	case "uint16":
		v, err := strconv.ParseUint(raw, 10, 16)
		if err != nil {
			return err
		}
		return doc.SetUint16(path, uint16(v))
	case "uint32":
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return err
		}
		return doc.SetUint32(path, uint32(v))
	case "uint64":
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return err
		}
		return doc.SetUint64(path, v)
	case "float32":
		v, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return err
		}
		return doc.SetFloat32(path, float32(v))
	case "float64":
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		return doc.SetFloat64(path, v)
	default:
		return &unknownKindError{kind}
	}
}

type unknownKindError struct{ kind string }

func (e *unknownKindError) Error() string { return "unknown primitive kind " + e.kind }

type strconvCharError struct{ raw string }

func (e *strconvCharError) Error() string { return "char value must be exactly one rune: " + e.raw }

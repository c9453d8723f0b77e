package nrbfmcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcp_server "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers every nrbfedit tool on mcpServer.
func (s *Server) RegisterTools(mcpServer *mcp_server.MCPServer) {
	mcpServer.AddTool(
		mcp.NewTool("nrbf_load",
			mcp.WithDescription("Loads an NRBF file from disk and returns a session id plus record/class/string counts. The session stays open in memory until the process exits."),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Filesystem path to the .nrbf file to load"),
			),
		),
		s.loadHandler,
	)
	mcpServer.AddTool(
		mcp.NewTool("nrbf_get",
			mcp.WithDescription("Resolves a dot-joined path in an open session and returns the value description at that path."),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id returned by nrbf_load")),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path expression, e.g. Root.Items[2].Name")),
		),
		s.getHandler,
	)
	mcpServer.AddTool(
		mcp.NewTool("nrbf_set_primitive",
			mcp.WithDescription("Overwrites a primitive-typed slot at path. The value is parsed according to kind, which must match the slot's existing primitive kind."),
			mcp.WithDestructiveHintAnnotation(true),
			mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id returned by nrbf_load")),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path expression naming a primitive-typed slot")),
			mcp.WithString("kind",
				mcp.Required(),
				mcp.Description("Primitive kind of the value"),
				mcp.Enum("bool", "byte", "sbyte", "char", "int16", "int32", "int64",
					"uint16", "uint32", "uint64", "float32", "float64"),
			),
			mcp.WithString("value", mcp.Required(), mcp.Description("New value, formatted as decimal text (or true/false for bool)")),
		),
		s.setPrimitiveHandler,
	)
	mcpServer.AddTool(
		mcp.NewTool("nrbf_set_guid",
			mcp.WithDescription("Overwrites a System.Guid-shaped class record at path with the given canonical GUID text."),
			mcp.WithDestructiveHintAnnotation(true),
			mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id returned by nrbf_load")),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path expression naming a System.Guid record")),
			mcp.WithString("value", mcp.Required(), mcp.Description("GUID in canonical 8-4-4-4-12 text form")),
		),
		s.setGuidHandler,
	)
	mcpServer.AddTool(
		mcp.NewTool("nrbf_set_string",
			mcp.WithDescription("Overwrites a BinaryObjectString record, or an inline string-typed member, at path."),
			mcp.WithDestructiveHintAnnotation(true),
			mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id returned by nrbf_load")),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path expression naming a string slot")),
			mcp.WithString("value", mcp.Required(), mcp.Description("New string value")),
		),
		s.setStringHandler,
	)
	mcpServer.AddTool(
		mcp.NewTool("nrbf_save",
			mcp.WithDescription("Re-encodes a session's current state and writes it to the given path. Returns the number of bytes written."),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id returned by nrbf_load")),
			mcp.WithString("path", mcp.Required(), mcp.Description("Destination filesystem path")),
		),
		s.saveHandler,
	)
	mcpServer.AddTool(
		mcp.NewTool("nrbf_diff",
			mcp.WithDescription("Compares two open sessions field by field and returns the list of changes."),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithString("session_id_a", mcp.Required(), mcp.Description("First session id")),
			mcp.WithString("session_id_b", mcp.Required(), mcp.Description("Second session id")),
		),
		s.diffHandler,
	)
	mcpServer.AddTool(
		mcp.NewTool("nrbf_traverse",
			mcp.WithDescription("Lists every addressable (path, value) pair in a session, paginated."),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id returned by nrbf_load")),
			mcp.WithNumber("offset", mcp.Description("Number of pairs to skip (default 0)")),
			mcp.WithNumber("limit", mcp.Description("Maximum pairs to return (default 200)")),
		),
		s.traverseHandler,
	)
}

package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers cloneradar's MCP tools with the server, bound to
// the given Dependencies.
func RegisterTools(s *server.MCPServer, deps *Dependencies) {
	s.AddTool(mcp.NewTool("find_similar_fragments",
		mcp.WithDescription("Detect structurally similar code fragments under a path using a tree-edit-distance kernel over a language-agnostic canonical tree"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File or directory to analyze")),
		mcp.WithNumber("similarity_threshold",
			mcp.Description("Minimum similarity 0.0-1.0 for a pair to be reported (default: 0.85)")),
		mcp.WithNumber("min_lines",
			mcp.Description("Minimum fragment size in source lines (default: 5)")),
		mcp.WithNumber("min_nodes",
			mcp.Description("Minimum fragment size in canonical tree nodes")),
		mcp.WithBoolean("group",
			mcp.Description("Group transitively related pairs into clusters (default: false)")),
		mcp.WithArray("languages",
			mcp.Description("Restrict extraction to these languages (default: all supported)")),
	), deps.HandleFindSimilarFragments)

	s.AddTool(mcp.NewTool("compare_fragments",
		mcp.WithDescription("Score the structural similarity of two source snippets of the same language"),
		mcp.WithString("language",
			mcp.Required(),
			mcp.Description("Language of both fragments, e.g. go, python, javascript, css")),
		mcp.WithString("fragment1",
			mcp.Required(),
			mcp.Description("First source snippet")),
		mcp.WithString("fragment2",
			mcp.Required(),
			mcp.Description("Second source snippet")),
	), deps.HandleCompareFragments)
}

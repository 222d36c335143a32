package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

const (
	toolFindDeclaration       = "findDeclaration"
	toolGetDeclarationsForURI = "getDeclarationsForUri"
)

func findDeclarationTool() mcp.Tool {
	return mcp.NewTool(toolFindDeclaration,
		mcp.WithDescription("Locate the declaration of the symbol under a cursor position in a Modelica file"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Absolute path to the Modelica source file")),
		mcp.WithNumber("line", mcp.Required(), mcp.Description("Zero-based line number of the cursor")),
		mcp.WithNumber("column", mcp.Required(), mcp.Description("Zero-based byte column of the cursor")),
	)
}

func getDeclarationsForURITool() mcp.Tool {
	return mcp.NewTool(toolGetDeclarationsForURI,
		mcp.WithDescription("List the declared classes and members of a Modelica file"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Absolute path to the Modelica source file")),
	)
}

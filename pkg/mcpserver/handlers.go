package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/OpenModelica/modelica-language-server/pkg/outline"
	"github.com/OpenModelica/modelica-language-server/pkg/project"
	"github.com/OpenModelica/modelica-language-server/pkg/resolver"
	"github.com/OpenModelica/modelica-language-server/pkg/synt"
)

type declarationResult struct {
	Path        string `json:"path"`
	Kind        string `json:"kind"`
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
}

func (s *Server) handleFindDeclaration(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, _ := args["path"].(string)
	line, _ := args["line"].(float64)
	column, _ := args["column"].(float64)
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}

	doc, ok := s.project.GetDocument(path, project.GetOptions{})
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("document not found: %s", path)), nil
	}

	ref, ok := resolver.IdentifyReferenceAtCursor(doc, synt.Point{Row: uint32(line), Column: uint32(column)})
	if !ok {
		return mcp.NewToolResultText("null"), nil
	}

	resolved, found, err := s.resolver.Resolve(ref, resolver.Declaration)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !found {
		return mcp.NewToolResultText("null"), nil
	}

	result := declarationResult{
		Path:        resolved.Document.Path(),
		Kind:        resolved.Kind.String(),
		StartLine:   resolved.Node.StartPosition().Row,
		StartColumn: resolved.Node.StartPosition().Column,
		EndLine:     resolved.Node.EndPosition().Row,
		EndColumn:   resolved.Node.EndPosition().Column,
	}
	b, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

type outlineEntry struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
}

func (s *Server) handleGetDeclarationsForURI(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, _ := args["path"].(string)
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}

	doc, ok := s.project.GetDocument(path, project.GetOptions{})
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("document not found: %s", path)), nil
	}

	entries := outline.ForDocument(doc)
	out := make([]outlineEntry, 0, len(entries))
	for _, e := range entries {
		kind := "class"
		if e.Kind == outline.KindVariable {
			kind = "variable"
		}
		out = append(out, outlineEntry{
			Name:        e.Name,
			Kind:        kind,
			StartLine:   e.Start.Row,
			StartColumn: e.Start.Column,
			EndLine:     e.End.Row,
			EndColumn:   e.End.Column,
		})
	}

	b, err := json.Marshal(out)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

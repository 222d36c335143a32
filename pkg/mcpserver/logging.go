// Package mcpserver exposes the core's findDeclaration and
// getDeclarationsForUri operations as MCP tools over stdio.
package mcpserver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// callLogEntry is the schema for one JSONL line written per tool call.
type callLogEntry struct {
	Ts            string         `json:"ts"`
	Tool          string         `json:"tool"`
	Params        map[string]any `json:"params"`
	DurationMs    int64          `json:"duration_ms"`
	ResponseBytes int            `json:"response_bytes"`
	Error         *string        `json:"error"`

	// ResolvedKind is findDeclaration's resolved.Kind.String() ("class"
	// or "variable"), empty when the cursor resolved to nothing.
	ResolvedKind string `json:"resolved_kind,omitempty"`
	// DeclarationCount is getDeclarationsForUri's outline entry count.
	// Nil for any other tool.
	DeclarationCount *int `json:"declaration_count,omitempty"`
}

// callLogger appends structured JSONL entries to a file. Safe for
// concurrent use. A nil *callLogger is a valid, disabled logger.
type callLogger struct {
	mu  sync.Mutex
	f   *os.File
	enc *json.Encoder
}

// newCallLogger opens (or creates) the file at path for append-only
// writing. Returns nil, nil if path is empty — callers treat a nil
// logger as disabled.
func newCallLogger(path string) (*callLogger, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mcpserver: create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("mcpserver: open log file: %w", err)
	}
	return &callLogger{f: f, enc: json.NewEncoder(f)}, nil
}

func (l *callLogger) write(entry callLogEntry) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.enc.Encode(entry)
}

func (l *callLogger) close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}

func sanitizeParams(args map[string]any) map[string]any {
	const shortStringMax = 64
	out := make(map[string]any, len(args))
	for k, v := range args {
		if s, ok := v.(string); ok && len(s) > shortStringMax {
			out[k+"_len"] = len(s)
		} else {
			out[k] = v
		}
	}
	return out
}

func responseBytes(result *mcp.CallToolResult) int {
	if result == nil {
		return 0
	}
	b, err := json.Marshal(result.Content)
	if err != nil {
		return 0
	}
	return len(b)
}

// resultSummary pulls tool-specific fields out of result's text payload
// so the call log records what a lookup actually produced — the
// resolved declaration's kind, or how many declarations an outline
// listing returned — not just its size and timing.
func resultSummary(toolName string, result *mcp.CallToolResult) (resolvedKind string, declCount *int) {
	text := firstText(result)
	if text == "" || text == "null" {
		return "", nil
	}
	switch toolName {
	case toolFindDeclaration:
		var d declarationResult
		if err := json.Unmarshal([]byte(text), &d); err == nil {
			resolvedKind = d.Kind
		}
	case toolGetDeclarationsForURI:
		var entries []outlineEntry
		if err := json.Unmarshal([]byte(text), &entries); err == nil {
			n := len(entries)
			declCount = &n
		}
	}
	return resolvedKind, declCount
}

func firstText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

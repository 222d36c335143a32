package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/OpenModelica/modelica-language-server/pkg/library"
	"github.com/OpenModelica/modelica-language-server/pkg/mcpserver"
	"github.com/OpenModelica/modelica-language-server/pkg/obs"
	"github.com/OpenModelica/modelica-language-server/pkg/outline"
	"github.com/OpenModelica/modelica-language-server/pkg/parser"
	"github.com/OpenModelica/modelica-language-server/pkg/project"
	"github.com/OpenModelica/modelica-language-server/pkg/resolver"
	"github.com/OpenModelica/modelica-language-server/pkg/synt"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	switch command {
	case "index":
		runIndex(os.Args[2:])
	case "declaration":
		runDeclaration(os.Args[2:])
	case "outline":
		runOutline(os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	case "version":
		fmt.Printf("modelica-ls %s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`usage: modelica-ls <command> [arguments]

commands:
  index <libraryRoot>...              load libraries and report file counts
  declaration <file> <line> <col>     find the declaration under a cursor
  outline <file>                      list the classes and members a file declares
  serve [--lib path]... [--log path]  run the MCP server over stdio
  version                             print the version
  help                                show this message`)
}

// newProject builds a parser and project over libRoots, loading each
// root as a library. The caller owns the returned parser.Manager and
// must Close it.
func newProject(libRoots []string, logger *slog.Logger) (*parser.Manager, *project.Project, error) {
	grammar, err := loadGrammar()
	if err != nil {
		return nil, nil, err
	}

	mgr := parser.NewManager(parser.Config{Grammar: grammar, Logger: logger})
	proj := project.New(mgr, logger)

	for i, root := range libRoots {
		lib := library.New(root, i == 0 && len(libRoots) == 1)
		if err := lib.Load(mgr, logger); err != nil {
			mgr.Close()
			return nil, nil, fmt.Errorf("load library %q: %w", root, err)
		}
		proj.AddLibrary(lib)
	}
	return mgr, proj, nil
}

func runIndex(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: modelica-ls index <libraryRoot>...")
		os.Exit(1)
	}
	logger := obs.New(resolveLoggerConfig())
	mgr, proj, err := newProject(args, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "index failed: %v\n", err)
		os.Exit(1)
	}
	defer mgr.Close()

	for _, lib := range proj.Libraries() {
		fmt.Printf("%s  %d files\n", lib.Name(), lib.Count())
	}
}

func runDeclaration(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: modelica-ls declaration <file> <line> <column> [--lib path]...")
		os.Exit(1)
	}
	file, line, column := args[0], args[1], args[2]
	libs := resolveLibraryPaths(parseLibFlags(args[3:]))
	if len(libs) == 0 {
		fmt.Fprintln(os.Stderr, "no library paths configured: pass --lib or set library_paths in .modelica-ls/config.yaml")
		os.Exit(1)
	}

	logger := obs.New(resolveLoggerConfig())
	mgr, proj, err := newProject(libs, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "declaration lookup failed: %v\n", err)
		os.Exit(1)
	}
	defer mgr.Close()

	doc, ok := proj.GetDocument(file, project.GetOptions{})
	if !ok {
		fmt.Fprintf(os.Stderr, "document not found: %s\n", file)
		os.Exit(1)
	}

	row, col := parseUint(line), parseUint(column)
	ref, ok := resolver.IdentifyReferenceAtCursor(doc, synt.Point{Row: row, Column: col})
	if !ok {
		fmt.Println("null")
		return
	}

	res := resolver.New(proj, logger)
	resolved, found, err := res.Resolve(ref, resolver.Declaration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve failed: %v\n", err)
		os.Exit(1)
	}
	if !found {
		fmt.Println("null")
		return
	}

	out := map[string]any{
		"path":        resolved.Document.Path(),
		"kind":        resolved.Kind.String(),
		"startLine":   resolved.Node.StartPosition().Row,
		"startColumn": resolved.Node.StartPosition().Column,
		"endLine":     resolved.Node.EndPosition().Row,
		"endColumn":   resolved.Node.EndPosition().Column,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}

func runOutline(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: modelica-ls outline <file> [--lib path]...")
		os.Exit(1)
	}
	file := args[0]
	libs := resolveLibraryPaths(parseLibFlags(args[1:]))
	if len(libs) == 0 {
		fmt.Fprintln(os.Stderr, "no library paths configured: pass --lib or set library_paths in .modelica-ls/config.yaml")
		os.Exit(1)
	}

	logger := obs.New(resolveLoggerConfig())
	mgr, proj, err := newProject(libs, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "outline failed: %v\n", err)
		os.Exit(1)
	}
	defer mgr.Close()

	doc, ok := proj.GetDocument(file, project.GetOptions{})
	if !ok {
		fmt.Fprintf(os.Stderr, "document not found: %s\n", file)
		os.Exit(1)
	}

	entries := outline.ForDocument(doc)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(entries)
}

func runServe(args []string) {
	libs := resolveLibraryPaths(parseLibFlags(args))
	callLogFlag := ""
	for i := 0; i < len(args); i++ {
		if args[i] == "--log" && i+1 < len(args) {
			callLogFlag = args[i+1]
		}
	}

	logger := obs.New(resolveLoggerConfig())
	mgr, proj, err := newProject(libs, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "serve failed: %v\n", err)
		os.Exit(1)
	}
	defer mgr.Close()

	res := resolver.New(proj, logger)
	srv, err := mcpserver.NewServer(proj, res, logger, resolveCallLogPath(callLogFlag))
	if err != nil {
		fmt.Fprintf(os.Stderr, "serve failed: %v\n", err)
		os.Exit(1)
	}
	defer srv.Close()

	if err := srv.ServeStdio(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// parseLibFlags extracts every "--lib path" pair from args, in order.
func parseLibFlags(args []string) []string {
	var libs []string
	for i := 0; i < len(args); i++ {
		if args[i] == "--lib" && i+1 < len(args) {
			i++
			libs = append(libs, args[i])
		}
	}
	return libs
}

func parseUint(s string) uint32 {
	var n uint32
	for _, r := range s {
		if r < '0' || r > '9' {
			return n
		}
		n = n*10 + uint32(r-'0')
	}
	return n
}

package main

import (
	"fmt"
	"unsafe"
)

// loadGrammar returns the compiled tree-sitter Modelica language as an
// unsafe.Pointer suitable for parser.Config.Grammar.
//
// The core deliberately never links a concrete grammar (see
// pkg/parser's Config.Grammar doc); this binary is the boundary where
// one gets wired in. No tree-sitter-modelica binding ships in this
// module, so this build reports an error rather than linking one —
// swap this function out for a real cgo-backed grammar package to
// produce a working binary.
func loadGrammar() (unsafe.Pointer, error) {
	return nil, fmt.Errorf("no tree-sitter Modelica grammar linked into this build")
}

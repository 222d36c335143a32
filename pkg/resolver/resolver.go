// Package resolver implements the name resolver: identifying the
// reference at a cursor, converting a relative reference into
// candidate absolute references, walking an absolute reference
// symbol-by-symbol across the project, and following variable
// declarations into their declared class to continue member access.
package resolver

import (
	"log/slog"

	"github.com/OpenModelica/modelica-language-server/pkg/project"
	"github.com/OpenModelica/modelica-language-server/pkg/reference"
	"github.com/OpenModelica/modelica-language-server/pkg/rerr"
)

// Resolution selects what kind of location a lookup is after. Only
// Declaration is implemented; Definition is reserved for future work
// and always fails with rerr.ErrUnsupported.
type Resolution int

const (
	Declaration Resolution = iota
	Definition
)

// Resolver resolves references against one project.
type Resolver struct {
	project *project.Project
	logger  *slog.Logger
}

// New constructs a Resolver bound to proj.
func New(proj *project.Project, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{project: proj, logger: logger}
}

// Resolve is the resolver's single public operation: it resolves ref
// under the given resolution mode, returning the resolved reference
// and true on success, a zero value and false when the lookup fails
// with no result, or an error when the mode itself is unsupported. An
// invariant violation raised during the lookup is recovered here and
// returned as a *rerr.InvariantError.
func (r *Resolver) Resolve(ref reference.Unresolved, mode Resolution) (resolved reference.Resolved, found bool, err error) {
	defer rerr.Recover(&err)

	if mode != Declaration {
		return reference.Resolved{}, false, rerr.ErrUnsupported
	}

	if abs, ok := ref.AsAbsolute(); ok {
		res, found := r.resolveAbsolute(abs)
		return res, found, nil
	}
	if rel, ok := ref.AsRelative(); ok {
		res, found := r.resolveRelative(rel)
		return res, found, nil
	}
	return reference.Resolved{}, false, nil
}

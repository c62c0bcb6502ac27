// Package typecheck implements S1 (spec §4.1): it walks a parse tree,
// resolves names through a namespace, performs bidirectional type
// inference, checks trait constraints and storage purity, and emits the
// typed AST that every later stage consumes. Grounded on the teacher's
// internal/types package for its environment-threading shape (TypeEnv /
// Extend / ExtendScheme in typechecker.go, env.go), though the teacher's
// Hindley-Milner unification engine does not survive the transform: this
// compiler's types are all either written out in source or settled by
// straightforward bidirectional propagation (spec §4.1 step 3), so there
// is no need for a substitution-solving pass.
package typecheck

import "github.com/FuelLabs/sway-core-go/internal/types"

// env is a chain of lexical scopes binding local names to resolved types,
// generalized from the teacher's TypeEnv.Extend (env.go) which does the
// same thing for value bindings in a functional language.
type env struct {
	vars   map[string]types.TypeId
	parent *env
}

func newEnv(parent *env) *env {
	return &env{vars: make(map[string]types.TypeId), parent: parent}
}

// extend returns a new child scope binding name to t, leaving e untouched.
func (e *env) extend(name string, t types.TypeId) *env {
	child := newEnv(e)
	child.vars[name] = t
	return child
}

// bind adds name to e's own scope in place (used for sequential let
// statements within a single block so each one sees the previous).
func (e *env) bind(name string, t types.TypeId) { e.vars[name] = t }

// lookup searches e and its ancestors for name.
func (e *env) lookup(name string) (types.TypeId, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if t, ok := cur.vars[name]; ok {
			return t, true
		}
	}
	return 0, false
}

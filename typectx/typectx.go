// Package typectx implements the type-checking scope stack.
//
// Grounded directly on src/typing/type_context.c: a flat global function
// registry, a stack of per-scope variable lists and forward-declaration
// lists, and three independent namespace stacks (this/file/global). The C
// original hand-rolls doubling arrays over a fixed initial capacity; this
// package uses Go slices, which already grow by roughly doubling, while
// keeping the same operation set and failure semantics (pop_scope reports
// unresolved forwards but still unwinds the stack).
package typectx

import (
	"github.com/muyoamon/morphl/interner"
	"github.com/muyoamon/morphl/types"
)

type varEntry struct {
	name interner.Symbol
	typ  *types.Type
}

type forwardEntry struct {
	name     interner.Symbol
	typ      *types.Type
	resolved bool
}

// Scope is one lexical scope.
type Scope struct {
	vars             []varEntry
	forwards         []forwardEntry
	hasForwardErrors bool
}

type funcEntry struct {
	name interner.Symbol
	typ  *types.Type
}

// UnresolvedForward describes one forward declaration that never got a body,
// surfaced for the caller to turn into a diagnostic.
type UnresolvedForward struct {
	Name interner.Symbol
}

// TypeContext holds everything the inference pass needs across one
// compilation unit. It is not safe for concurrent use.
type TypeContext struct {
	functions []funcEntry
	scopes    []*Scope

	expectedReturn *types.Type

	fileType   *types.Type
	globalType *types.Type
	thisStack  []*types.Type
	fileStack  []*types.Type
	globalStack []*types.Type
}

// New creates a TypeContext with a single "global" scope already pushed:
// the scope stack always has at least one entry after initialization.
func New() *TypeContext {
	ctx := &TypeContext{}
	ctx.scopes = append(ctx.scopes, &Scope{})
	return ctx
}

// PushScope enters a new lexical scope.
func (c *TypeContext) PushScope() {
	c.scopes = append(c.scopes, &Scope{})
}

// PopScope exits the innermost scope. It always unwinds the stack, even on
// failure — the scope must never leak on error. It returns the scope's
// unresolved forwards, if any; callers turn these into diagnostics.
func (c *TypeContext) PopScope() []UnresolvedForward {
	n := len(c.scopes)
	if n == 0 {
		return nil
	}
	top := c.scopes[n-1]
	c.scopes = c.scopes[:n-1]

	var unresolved []UnresolvedForward
	for _, f := range top.forwards {
		if !f.resolved {
			unresolved = append(unresolved, UnresolvedForward{Name: f.name})
		}
	}
	return unresolved
}

// Depth reports how many scopes are currently on the stack.
func (c *TypeContext) Depth() int { return len(c.scopes) }

func (c *TypeContext) current() *Scope {
	return c.scopes[len(c.scopes)-1]
}

// DefineVar binds name in the innermost scope.
func (c *TypeContext) DefineVar(name interner.Symbol, t *types.Type) {
	s := c.current()
	s.vars = append(s.vars, varEntry{name: name, typ: t})
}

// UpdateVar rebinds name's type in the innermost scope only. Reports false
// if name is not bound there.
func (c *TypeContext) UpdateVar(name interner.Symbol, t *types.Type) bool {
	s := c.current()
	for i := range s.vars {
		if s.vars[i].name == name {
			s.vars[i].typ = t
			return true
		}
	}
	return false
}

// LookupVar walks scopes innermost-first.
func (c *TypeContext) LookupVar(name interner.Symbol) (*types.Type, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		s := c.scopes[i]
		for j := range s.vars {
			if s.vars[j].name == name {
				return s.vars[j].typ, true
			}
		}
	}
	return nil, false
}

// CheckDuplicateVar reports whether name is already bound in the innermost
// scope only.
func (c *TypeContext) CheckDuplicateVar(name interner.Symbol) bool {
	s := c.current()
	for i := range s.vars {
		if s.vars[i].name == name {
			return true
		}
	}
	return false
}

// DefineFunc adds name to the flat global function registry. Fails (returns
// false) if name is already registered ("name collisions on
// define fail").
func (c *TypeContext) DefineFunc(name interner.Symbol, t *types.Type) bool {
	for i := range c.functions {
		if c.functions[i].name == name {
			return false
		}
	}
	c.functions = append(c.functions, funcEntry{name: name, typ: t})
	return true
}

// UpdateFunc rebinds an existing function's type. Reports false if name is
// not registered.
func (c *TypeContext) UpdateFunc(name interner.Symbol, t *types.Type) bool {
	for i := range c.functions {
		if c.functions[i].name == name {
			c.functions[i].typ = t
			return true
		}
	}
	return false
}

// LookupFunc looks up name in the flat global function registry; functions
// do not shadow across scopes.
func (c *TypeContext) LookupFunc(name interner.Symbol) (*types.Type, bool) {
	for i := range c.functions {
		if c.functions[i].name == name {
			return c.functions[i].typ, true
		}
	}
	return nil, false
}

// DefineForward records an unresolved forward declaration in the current
// scope. Fails if name already has a forward in this scope.
func (c *TypeContext) DefineForward(name interner.Symbol, t *types.Type) bool {
	s := c.current()
	for i := range s.forwards {
		if s.forwards[i].name == name {
			return false
		}
	}
	s.forwards = append(s.forwards, forwardEntry{name: name, typ: t})
	return true
}

// DefineForwardBody resolves an existing forward declaration: it must
// exist, be unresolved, and the provided type must structurally equal the
// declared one.
func (c *TypeContext) DefineForwardBody(name interner.Symbol, t *types.Type) bool {
	s := c.current()
	for i := range s.forwards {
		if s.forwards[i].name == name {
			if s.forwards[i].resolved {
				return false
			}
			if !types.Equals(s.forwards[i].typ, t) {
				return false
			}
			s.forwards[i].resolved = true
			return true
		}
	}
	return false
}

// LookupForward reports the declared type and resolved state of a forward
// in the current scope.
func (c *TypeContext) LookupForward(name interner.Symbol) (*types.Type, bool, bool) {
	s := c.current()
	for i := range s.forwards {
		if s.forwards[i].name == name {
			return s.forwards[i].typ, s.forwards[i].resolved, true
		}
	}
	return nil, false, false
}

// CheckUnresolvedForwards scans every scope currently on the stack and
// returns all still-unresolved forward declarations, used for end-of-
// translation-unit validation.
func (c *TypeContext) CheckUnresolvedForwards() []UnresolvedForward {
	var out []UnresolvedForward
	for _, s := range c.scopes {
		for _, f := range s.forwards {
			if !f.resolved {
				out = append(out, UnresolvedForward{Name: f.name})
			}
		}
	}
	return out
}

// SetExpectedReturn / ExpectedReturn manage the return type expected while
// checking a function body ("set exactly while checking a function
// body").
func (c *TypeContext) SetExpectedReturn(t *types.Type) { c.expectedReturn = t }
func (c *TypeContext) ExpectedReturn() *types.Type     { return c.expectedReturn }
func (c *TypeContext) ClearExpectedReturn()            { c.expectedReturn = nil }

// PushThis / PopThis / This back the $this namespace operator.
func (c *TypeContext) PushThis(t *types.Type) { c.thisStack = append(c.thisStack, t) }
func (c *TypeContext) PopThis() bool {
	if len(c.thisStack) == 0 {
		return false
	}
	c.thisStack = c.thisStack[:len(c.thisStack)-1]
	return true
}
func (c *TypeContext) This() (*types.Type, bool) {
	if len(c.thisStack) == 0 {
		return nil, false
	}
	return c.thisStack[len(c.thisStack)-1], true
}

// PushFile / PopFile / File back the $file namespace operator.
func (c *TypeContext) PushFile(t *types.Type) {
	c.fileStack = append(c.fileStack, c.fileType)
	c.fileType = t
}
func (c *TypeContext) PopFile() bool {
	if len(c.fileStack) == 0 {
		return false
	}
	c.fileType = c.fileStack[len(c.fileStack)-1]
	c.fileStack = c.fileStack[:len(c.fileStack)-1]
	return true
}
func (c *TypeContext) File() *types.Type { return c.fileType }

// PushGlobal / PopGlobal / Global back the $global namespace operator.
func (c *TypeContext) PushGlobal(t *types.Type) {
	c.globalStack = append(c.globalStack, c.globalType)
	c.globalType = t
}
func (c *TypeContext) PopGlobal() bool {
	if len(c.globalStack) == 0 {
		return false
	}
	c.globalType = c.globalStack[len(c.globalStack)-1]
	c.globalStack = c.globalStack[:len(c.globalStack)-1]
	return true
}
func (c *TypeContext) Global() *types.Type { return c.globalType }

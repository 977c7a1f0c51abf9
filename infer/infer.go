// Package infer implements the single-pass type inference traversal.
//
// Grounded directly on src/typing/inference.c: one post-parse walk of the
// AST, dispatching per builtin operator into categories (arithmetic,
// float-arithmetic, comparison, logic, bitwise, structural) with the same
// operand-type rules the C switch statement encodes. Unlike the C original,
// a failed node does not abort the pass ("inference failures on
// one subtree must not prevent diagnostics for independent subtrees") —
// Infer always returns a (possibly Unknown) type for every node and keeps
// walking siblings, emitting one diagnostic per failure instead of
// returning early.
package infer

import (
	"github.com/muyoamon/morphl/ast"
	"github.com/muyoamon/morphl/diag"
	"github.com/muyoamon/morphl/interner"
	"github.com/muyoamon/morphl/registry"
	"github.com/muyoamon/morphl/token"
	"github.com/muyoamon/morphl/types"
	"github.com/muyoamon/morphl/typectx"
)

// Inferrer runs the inference pass over one translation unit.
type Inferrer struct {
	reg  *registry.Registry
	in   *interner.Interner
	ctx  *typectx.TypeContext
	sink *diag.Sink

	opAdd, opSub, opMul, opDiv             interner.Symbol
	opFAdd, opFSub, opFMul, opFDiv         interner.Symbol
	opEq, opNeq, opLt, opGt, opLte, opGte  interner.Symbol
	opAnd, opOr, opNot                     interner.Symbol
	opBAnd, opBOr, opBXor, opLShift, opRShift, opBNot interner.Symbol
	opCall, opFunc, opIf, opSet, opDecl, opForward    interner.Symbol
}

// New builds an Inferrer. in and reg must be the same Interner/Registry
// pair used by the lexer and parser for this translation unit, so operator
// symbols compare equal.
func New(in *interner.Interner, reg *registry.Registry, ctx *typectx.TypeContext, sink *diag.Sink) *Inferrer {
	return &Inferrer{
		reg: reg, in: in, ctx: ctx, sink: sink,

		opAdd: in.Intern(registry.OpAdd), opSub: in.Intern(registry.OpSub),
		opMul: in.Intern(registry.OpMul), opDiv: in.Intern(registry.OpDiv),
		opFAdd: in.Intern(registry.OpFAdd), opFSub: in.Intern(registry.OpFSub),
		opFMul: in.Intern(registry.OpFMul), opFDiv: in.Intern(registry.OpFDiv),

		opEq: in.Intern(registry.OpEq), opNeq: in.Intern(registry.OpNeq),
		opLt: in.Intern(registry.OpLt), opGt: in.Intern(registry.OpGt),
		opLte: in.Intern(registry.OpLte), opGte: in.Intern(registry.OpGte),

		opAnd: in.Intern(registry.OpAnd), opOr: in.Intern(registry.OpOr), opNot: in.Intern(registry.OpNot),

		opBAnd: in.Intern(registry.OpBAnd), opBOr: in.Intern(registry.OpBOr),
		opBXor: in.Intern(registry.OpBXor), opLShift: in.Intern(registry.OpLShift),
		opRShift: in.Intern(registry.OpRShift), opBNot: in.Intern(registry.OpBNot),

		opCall: in.Intern(registry.OpCall), opFunc: in.Intern(registry.OpFunc),
		opIf: in.Intern(registry.OpIf), opSet: in.Intern(registry.OpSet),
		opDecl: in.Intern(registry.OpDecl), opForward: in.Intern(registry.OpForward),
	}
}

func spanOf(s ast.Span) token.Span {
	return token.Span{Filename: s.Filename, Row: s.Row, Col: s.Col}
}

func (inf *Inferrer) fail(n *ast.Node, format string, args ...any) *types.Type {
	inf.sink.Errorf(spanOf(n.Span), diag.CodeTypeBase, format, args...)
	return types.NewUnknown()
}

// Infer computes and returns the type of n, recursing into children first.
// It never returns nil; on failure it emits a diagnostic and returns an
// Unknown-kinded type so the walk can continue.
func (inf *Inferrer) Infer(n *ast.Node) *types.Type {
	if n == nil {
		return types.NewUnknown()
	}
	switch n.Kind {
	case ast.Literal:
		return inf.inferLiteral(n)
	case ast.Ident:
		return inf.inferIdent(n)
	case ast.Group:
		return inf.inferGroup(n)
	case ast.Block:
		return inf.inferBlock(n)
	case ast.Call:
		return inf.inferCall(n)
	case ast.Func:
		return inf.inferFunc(n)
	case ast.If:
		return inf.inferIf(n)
	case ast.Set:
		return inf.inferSet(n)
	case ast.Decl:
		return inf.inferDecl(n)
	case ast.Builtin:
		return inf.inferBuiltin(n)
	default:
		return inf.fail(n, "cannot infer type of node kind %s", n.Kind)
	}
}

func (inf *Inferrer) inferLiteral(n *ast.Node) *types.Type {
	switch {
	case isIntLiteral(n.Value):
		return types.NewInt()
	case isFloatLiteral(n.Value):
		return types.NewFloat()
	default:
		return types.NewString()
	}
}

func isIntLiteral(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '-' && i == 0 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isFloatLiteral(s string) bool {
	seenDot := false
	seenDigit := false
	for i, r := range s {
		switch {
		case r == '-' && i == 0:
		case r == '.':
			if seenDot {
				return false
			}
			seenDot = true
		case r >= '0' && r <= '9':
			seenDigit = true
		default:
			return false
		}
	}
	return seenDot && seenDigit
}

func (inf *Inferrer) inferIdent(n *ast.Node) *types.Type {
	sym := inf.in.Intern(n.Value)
	if t, ok := inf.ctx.LookupVar(sym); ok {
		return t
	}
	if t, ok := inf.ctx.LookupFunc(sym); ok {
		return t
	}
	return inf.fail(n, "undeclared identifier %q", n.Value)
}

func (inf *Inferrer) inferGroup(n *ast.Node) *types.Type {
	elems := make([]*types.Type, len(n.Children))
	for i, c := range n.Children {
		elems[i] = inf.Infer(c)
	}
	return types.NewGroup(elems)
}

func (inf *Inferrer) inferBlock(n *ast.Node) *types.Type {
	inf.ctx.PushScope()
	var last *types.Type = types.NewVoid()
	for _, c := range n.Children {
		last = inf.Infer(c)
	}
	if unresolved := inf.ctx.PopScope(); len(unresolved) > 0 {
		for _, u := range unresolved {
			name := inf.in.Lookup(u.Name)
			inf.sink.Errorf(spanOf(n.Span), diag.CodeTypeBase+10, "unresolved forward declaration %q", name)
		}
	}
	return last
}

func (inf *Inferrer) inferCall(n *ast.Node) *types.Type {
	if len(n.Children) == 0 {
		return inf.fail(n, "$call requires a callee")
	}
	callee := inf.Infer(n.Children[0])
	if callee.Kind != types.Func {
		return inf.fail(n, "cannot call a value of kind %v", callee.Kind)
	}
	args := n.Children[1:]
	if len(args) != len(callee.Params) {
		return inf.fail(n, "expected %d argument(s), got %d", len(callee.Params), len(args))
	}
	ok := true
	for i, a := range args {
		got := inf.Infer(a)
		if !types.Equals(got, callee.Params[i]) {
			inf.sink.Errorf(spanOf(a.Span), diag.CodeTypeBase+1, "argument %d has wrong type", i)
			ok = false
		}
	}
	if !ok {
		return types.NewUnknown()
	}
	return callee.Ret
}

func (inf *Inferrer) inferFunc(n *ast.Node) *types.Type {
	if len(n.Children) < 2 {
		return inf.fail(n, "$func requires a parameter list and a body")
	}
	paramList := n.Children[0]
	params := make([]*types.Type, 0, len(paramList.Children))

	inf.ctx.PushScope()
	for _, p := range paramList.Children {
		pt := types.NewUnknown()
		params = append(params, pt)
		inf.ctx.DefineVar(inf.in.Intern(p.Value), pt)
	}
	var body *types.Type = types.NewVoid()
	for _, b := range n.Children[1:] {
		body = inf.Infer(b)
	}
	inf.ctx.PopScope()
	return types.NewFunc(params, body)
}

func (inf *Inferrer) inferIf(n *ast.Node) *types.Type {
	if len(n.Children) != 3 {
		return inf.fail(n, "$if requires exactly 3 arguments")
	}
	cond := inf.Infer(n.Children[0])
	if cond.Kind != types.Bool {
		inf.sink.Errorf(spanOf(n.Children[0].Span), diag.CodeTypeBase+2, "$if condition must be bool, got %v", cond.Kind)
	}
	thenT := inf.Infer(n.Children[1])
	elseT := inf.Infer(n.Children[2])
	if !types.Equals(thenT, elseT) {
		return inf.fail(n, "$if branches have mismatched types")
	}
	return thenT
}

func (inf *Inferrer) inferSet(n *ast.Node) *types.Type {
	if len(n.Children) != 2 {
		return inf.fail(n, "$set requires exactly 2 arguments")
	}
	target := n.Children[0]
	if target.Kind != ast.Ident {
		return inf.fail(n, "$set target must be an identifier")
	}
	sym := inf.in.Intern(target.Value)
	existing, ok := inf.ctx.LookupVar(sym)
	if !ok {
		return inf.fail(n, "cannot $set undeclared identifier %q", target.Value)
	}
	val := inf.Infer(n.Children[1])
	if !types.Equals(existing, val) {
		return inf.fail(n, "$set value type does not match declared type of %q", target.Value)
	}
	inf.ctx.UpdateVar(sym, val)
	return types.NewVoid()
}

// inferDecl implements $decl name value. If name has a pending forward
// declaration in the current scope, this $decl resolves it rather than
// introducing a fresh variable binding: the value's type is checked against
// the declared forward signature via DefineForwardBody, and, when it is a
// function type, registered in the flat function registry (DefineFunc, or
// UpdateFunc if a stale entry is already present) so lookup_func finds it —
// scenario 3's "pop_scope succeeds; lookup_func(foo) returns the declared
// type" requires exactly this wiring.
func (inf *Inferrer) inferDecl(n *ast.Node) *types.Type {
	if len(n.Children) != 2 {
		return inf.fail(n, "$decl requires exactly 2 arguments")
	}
	target := n.Children[0]
	if target.Kind != ast.Ident {
		return inf.fail(n, "$decl target must be an identifier")
	}
	sym := inf.in.Intern(target.Value)
	_, resolved, hasForward := inf.ctx.LookupForward(sym)
	if hasForward {
		if resolved {
			return inf.fail(n, "redeclaration of %q in the same scope", target.Value)
		}
		val := inf.Infer(n.Children[1])
		if !inf.ctx.DefineForwardBody(sym, val) {
			return inf.fail(n, "$decl for %q does not match its forward declaration", target.Value)
		}
		if val.Kind == types.Func {
			if !inf.ctx.DefineFunc(sym, val) {
				inf.ctx.UpdateFunc(sym, val)
			}
		}
		return types.NewVoid()
	}
	if inf.ctx.CheckDuplicateVar(sym) {
		return inf.fail(n, "redeclaration of %q in the same scope", target.Value)
	}
	val := inf.Infer(n.Children[1])
	inf.ctx.DefineVar(sym, val)
	return types.NewVoid()
}

func (inf *Inferrer) inferBuiltin(n *ast.Node) *types.Type {
	switch n.Op {
	case inf.opAdd, inf.opSub, inf.opMul, inf.opDiv:
		return inf.binaryNumeric(n, types.Int)
	case inf.opFAdd, inf.opFSub, inf.opFMul, inf.opFDiv:
		return inf.binaryNumeric(n, types.Float)
	case inf.opEq, inf.opNeq:
		return inf.comparison(n, false)
	case inf.opLt, inf.opGt, inf.opLte, inf.opGte:
		return inf.comparison(n, true)
	case inf.opAnd, inf.opOr:
		return inf.logic(n, 2)
	case inf.opNot:
		return inf.logic(n, 1)
	case inf.opBAnd, inf.opBOr, inf.opBXor, inf.opLShift, inf.opRShift:
		return inf.binaryNumeric(n, types.Int)
	case inf.opBNot:
		return inf.unaryNumeric(n, types.Int)
	case inf.opForward:
		return inf.inferForward(n)
	default:
		// spec: unknown operator reaching inference is a warning, not an
		// error, and yields Void rather than Unknown.
		for _, c := range n.Children {
			inf.Infer(c)
		}
		name := inf.in.Lookup(n.Op)
		inf.sink.Warnf(spanOf(n.Span), diag.CodeTypeBase+20, "unknown operator %q", name)
		return types.NewVoid()
	}
}

func (inf *Inferrer) binaryNumeric(n *ast.Node, want types.Kind) *types.Type {
	if len(n.Children) != 2 {
		return inf.fail(n, "operator requires exactly 2 arguments")
	}
	a := inf.Infer(n.Children[0])
	b := inf.Infer(n.Children[1])
	if a.Kind != want || b.Kind != want {
		return inf.fail(n, "operands must both be %v", want)
	}
	if want == types.Int {
		return types.NewInt()
	}
	return types.NewFloat()
}

func (inf *Inferrer) unaryNumeric(n *ast.Node, want types.Kind) *types.Type {
	if len(n.Children) != 1 {
		return inf.fail(n, "operator requires exactly 1 argument")
	}
	a := inf.Infer(n.Children[0])
	if a.Kind != want {
		return inf.fail(n, "operand must be %v", want)
	}
	return types.NewInt()
}

func (inf *Inferrer) comparison(n *ast.Node, numericOnly bool) *types.Type {
	if len(n.Children) != 2 {
		return inf.fail(n, "operator requires exactly 2 arguments")
	}
	a := inf.Infer(n.Children[0])
	b := inf.Infer(n.Children[1])
	if numericOnly && a.Kind != types.Int && a.Kind != types.Float {
		return inf.fail(n, "ordering comparison requires numeric operands")
	}
	if !types.Equals(a, b) {
		return inf.fail(n, "comparison operands have mismatched types")
	}
	return types.NewBool()
}

func (inf *Inferrer) logic(n *ast.Node, arity int) *types.Type {
	if len(n.Children) != arity {
		return inf.fail(n, "operator requires exactly %d argument(s)", arity)
	}
	for _, c := range n.Children {
		t := inf.Infer(c)
		if t.Kind != types.Bool {
			return inf.fail(n, "logical operator requires bool operands")
		}
	}
	return types.NewBool()
}

func (inf *Inferrer) inferForward(n *ast.Node) *types.Type {
	if len(n.Children) != 2 {
		return inf.fail(n, "$forward requires exactly 2 arguments")
	}
	target := n.Children[0]
	if target.Kind != ast.Ident {
		return inf.fail(n, "$forward target must be an identifier")
	}
	sym := inf.in.Intern(target.Value)
	sig := inf.Infer(n.Children[1])
	if !inf.ctx.DefineForward(sym, sig) {
		return inf.fail(n, "duplicate forward declaration for %q", target.Value)
	}
	return types.NewVoid()
}

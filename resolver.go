package es5

import "github.com/midbel/es5/environ"

// ScopeKind distinguishes the five node kinds that introduce a scope.
// With and Catch scopes do not receive hoisted var/function declarations
// of their own; those still target the nearest enclosing Program/Fun.
type ScopeKind int

const (
	ScopeProgram ScopeKind = iota
	ScopeFun
	ScopeNamedFunction
	ScopeWith
	ScopeCatch
)

// Resolver runs the two-pass variable resolution: collect walks the tree
// once to discover every scope's hoisted declarations and to flag which
// function-like scopes contain a direct call to eval; resolve then walks
// the tree a second time, threading a chain of scope objects built from
// those facts, resolving every identifier and operator reference against
// it.
type Resolver struct {
	nextUniqueID uint32

	scopeKind  map[NodeID]ScopeKind
	declared   map[NodeID]map[string]*Var
	evalScopes map[NodeID]bool

	resolution map[NodeID]*Var
}

func NewResolver() *Resolver {
	return &Resolver{
		scopeKind:  make(map[NodeID]ScopeKind),
		declared:   make(map[NodeID]map[string]*Var),
		evalScopes: make(map[NodeID]bool),
		resolution: make(map[NodeID]*Var),
	}
}

// Resolve runs both passes over prog and returns the map from every
// VariableUse/VariableDeclaration/Parameter node, and every Binary/Prefix
// operator use, to the Var it was resolved to.
func Resolve(prog *Program) map[NodeID]*Var {
	r := NewResolver()
	r.collectNode(prog, 0)

	root := newScope(r, ScopeProgram, prog, nil, r.declared[prog.ID()])
	r.resolveNode(prog, root)
	return r.resolution
}

func (r *Resolver) newVar(id string, isGlobal, isParam, isOperator bool) *Var {
	r.nextUniqueID++
	return &Var{ID: id, UniqueID: r.nextUniqueID, IsGlobal: isGlobal, IsParam: isParam, IsOperator: isOperator}
}

func (r *Resolver) newImplicitGlobal(name string) *Var {
	r.nextUniqueID++
	return &Var{ID: name, UniqueID: r.nextUniqueID, IsGlobal: true, IsImplicit: true}
}

func (r *Resolver) newInterceptor(name string, intercepted *Var, reason Node) *Var {
	r.nextUniqueID++
	return &Var{ID: name, UniqueID: r.nextUniqueID, Intercept: &Intercept{Intercepted: intercepted, Reason: reason}}
}

// ---- pass 1: collect ----

// declareHoisted records name as a hoisted declaration of the scope
// identified by fnID, unless that scope already declared it (the first
// declaration wins, matching function/var hoisting order).
func (r *Resolver) declareHoisted(fnID NodeID, name string, isParam bool) {
	decl := r.declared[fnID]
	if decl == nil {
		decl = make(map[string]*Var)
		r.declared[fnID] = decl
	}
	if _, ok := decl[name]; ok {
		return
	}
	decl[name] = r.newVar(name, r.scopeKind[fnID] == ScopeProgram, isParam, false)
}

// collectNode walks node once, recording every hoisted declaration and
// every eval scope. fnID is the nearest enclosing Program/Fun scope; it is
// the target for var/function declarations and is left unchanged while
// descending into a With or Catch, since neither hoists into its own
// scope.
func (r *Resolver) collectNode(node Node, fnID NodeID) {
	switch n := node.(type) {
	case *Program:
		r.scopeKind[n.ID()] = ScopeProgram
		decl := make(map[string]*Var, len(operatorSymbols))
		for _, sym := range operatorSymbols {
			decl[sym] = r.newVar(sym, true, false, true)
		}
		r.declared[n.ID()] = decl
		for _, s := range n.Body {
			r.collectNode(s, n.ID())
		}
	case *VariableDeclaration:
		r.declareHoisted(fnID, n.Name, false)
	case *FunctionDeclaration:
		r.declareHoisted(fnID, n.Name, false)
		r.collectNode(n.Fun, fnID)
	case *Fun:
		fid := n.ID()
		r.scopeKind[fid] = ScopeFun
		decl := map[string]*Var{
			"this":      r.newVar("this", false, true, false),
			"arguments": r.newVar("arguments", false, true, false),
		}
		for _, p := range n.Params {
			decl[p.Name] = r.newVar(p.Name, false, true, false)
		}
		r.declared[fid] = decl
		r.collectNode(n.Body, fid)
	case *NamedFunction:
		nid := n.ID()
		r.scopeKind[nid] = ScopeNamedFunction
		r.declared[nid] = map[string]*Var{n.Name: r.newVar(n.Name, false, false, false)}
		r.collectNode(n.Fun, fnID)
	case *With:
		r.scopeKind[n.ID()] = ScopeWith
		r.declared[n.ID()] = map[string]*Var{}
		r.collectNode(n.Obj, fnID)
		r.collectNode(n.Body, fnID)
	case *Catch:
		r.scopeKind[n.ID()] = ScopeCatch
		r.declared[n.ID()] = map[string]*Var{n.Decl.Name: r.newVar(n.Decl.Name, false, true, false)}
		r.collectNode(n.Body, fnID)
	case *Call:
		if target, ok := n.Target.(*VariableUse); ok && target.Name == "eval" {
			r.evalScopes[fnID] = true
		}
		Walk(n, func(child Node) { r.collectNode(child, fnID) })
	default:
		Walk(n, func(child Node) { r.collectNode(child, fnID) })
	}
}

// ---- pass 2: resolve ----

// scope adapts environ.Env[*Var] into this codebase's lookup rules: a
// local hit wins outright, a With or eval-tainted scope synthesizes an
// Interceptor on miss instead of delegating to the parent, and a Program
// scope with no parent synthesizes an implicit global rather than
// failing.
type scope struct {
	kind   ScopeKind
	node   Node
	eval   bool
	local  *environ.Env[*Var]
	parent *scope
	r      *Resolver
}

func newScope(r *Resolver, kind ScopeKind, node Node, parent *scope, seed map[string]*Var) *scope {
	local := environ.Empty[*Var]().(*environ.Env[*Var])
	for name, v := range seed {
		local.Define(name, v)
	}
	return &scope{kind: kind, node: node, parent: parent, r: r, local: local}
}

func (s *scope) resolve(name string) *Var {
	if v, ok := s.local.Local(name); ok {
		return v
	}
	if s.kind == ScopeWith || s.eval {
		var outer *Var
		if s.parent != nil {
			outer = s.parent.resolve(name)
		} else {
			outer = s.r.newImplicitGlobal(name)
		}
		iv := s.r.newInterceptor(name, outer, s.node)
		s.local.Define(name, iv)
		return iv
	}
	if s.parent != nil {
		return s.parent.resolve(name)
	}
	g := s.r.newImplicitGlobal(name)
	s.local.Define(name, g)
	return g
}

// resolveNode walks node once, resolving every identifier/operator
// reference against scope and pushing a fresh scope whenever node
// introduces one.
func (r *Resolver) resolveNode(node Node, scope *scope) {
	switch n := node.(type) {
	case *VariableUse:
		r.resolution[n.ID()] = scope.resolve(n.Name)
	case *VariableDeclaration:
		r.resolution[n.ID()] = scope.resolve(n.Name)
	case *Parameter:
		r.resolution[n.ID()] = scope.resolve(n.Name)
	case *Binary:
		r.resolution[n.ID()] = scope.resolve(n.Op)
		r.resolveNode(n.LHS, scope)
		r.resolveNode(n.RHS, scope)
	case *Prefix:
		r.resolution[n.ID()] = scope.resolve(n.Op)
		r.resolveNode(n.Expr, scope)
	case *Fun:
		fs := newScope(r, ScopeFun, n, scope, r.declared[n.ID()])
		fs.eval = r.evalScopes[n.ID()]
		for _, p := range n.Params {
			r.resolveNode(p, fs)
		}
		r.resolveNode(n.Body, fs)
	case *NamedFunction:
		ns := newScope(r, ScopeNamedFunction, n, scope, r.declared[n.ID()])
		r.resolveNode(n.Fun, ns)
	case *With:
		ws := newScope(r, ScopeWith, n, scope, r.declared[n.ID()])
		r.resolveNode(n.Obj, scope)
		r.resolveNode(n.Body, ws)
	case *Catch:
		cs := newScope(r, ScopeCatch, n, scope, r.declared[n.ID()])
		r.resolveNode(n.Decl, cs)
		r.resolveNode(n.Body, cs)
	default:
		Walk(n, func(child Node) { r.resolveNode(child, scope) })
	}
}

package es5

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Printer walks a Program and writes pretty-printed, fully re-parseable
// source text to an output buffer (the same buffered-writer-plus-indent-
// level idiom this codebase's other tree-serializer uses). Setting
// resolution turns it into the resolver-annotated variant described in
// the design notes as ResolverPrinter: rather than a separate type, that
// behavior is a field this base type checks, since Go has no subclasses
// to override individual visit methods with.
type Printer struct {
	w      *bufio.Writer
	Indent string
	depth  int

	resolution map[NodeID]*Var
	tags       map[*Var]int
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: bufio.NewWriter(w), Indent: "  "}
}

// NewResolverPrinter returns a Printer that, after every variable-
// reference node, appends "<k>" where k is the index of the resolved Var
// in a printer-local table assigned on first appearance. Operator Vars
// are left untagged.
func NewResolverPrinter(w io.Writer, resolution map[NodeID]*Var) *Printer {
	p := NewPrinter(w)
	p.resolution = resolution
	p.tags = make(map[*Var]int)
	return p
}

func (p *Printer) Print(prog *Program) error {
	p.w.WriteString("/* Program */\n")
	for _, s := range prog.Body {
		p.writeStatement(s)
	}
	return p.w.Flush()
}

func (p *Printer) writeIndent() {
	if p.depth > 0 {
		p.w.WriteString(strings.Repeat(p.Indent, p.depth))
	}
}

// tagSuffix returns "<k>" for a variable-reference node n when running in
// resolver-annotated mode and n resolved to a non-operator Var, otherwise
// the empty string.
func (p *Printer) tagSuffix(n Node) string {
	if p.resolution == nil {
		return ""
	}
	v, ok := p.resolution[n.ID()]
	if !ok || v.IsOperator {
		return ""
	}
	k, ok := p.tags[v]
	if !ok {
		k = len(p.tags)
		p.tags[v] = k
	}
	return "<" + strconv.Itoa(k) + ">"
}

// writeBody prints body as a braced block, assuming the caller has
// already written everything up to and including the opening space.
// A non-Block body is braced too: the printer always braces statement
// bodies, which trivially satisfies the dangling-else rule (an outer If
// with an Else never sees an unbraced inner If) without needing a special
// case for it.
func (p *Printer) writeBody(body Node) {
	p.w.WriteString("{\n")
	p.depth++
	if blk, ok := body.(*Block); ok {
		for _, s := range blk.Statements {
			p.writeStatement(s)
		}
	} else {
		p.writeStatement(body)
	}
	p.depth--
	p.writeIndent()
	p.w.WriteString("}")
}

func (p *Printer) writeStatement(node Node) {
	p.writeIndent()
	switch n := node.(type) {
	case *Block:
		p.writeBody(n)
		p.w.WriteString("\n")
	case *ExpressionStatement:
		p.w.WriteString(p.expr(n.Expr))
		p.w.WriteString(";\n")
	case *EmptyStatement:
		p.w.WriteString(";\n")
	case *VariableDeclarationList:
		p.w.WriteString(p.varDeclList(n))
		p.w.WriteString(";\n")
	case *If:
		p.w.WriteString("if (")
		p.w.WriteString(p.expr(n.Cond))
		p.w.WriteString(") ")
		p.writeBody(n.Then)
		if n.HasElse {
			p.w.WriteString(" else ")
			p.writeBody(n.Else)
		}
		p.w.WriteString("\n")
	case *For:
		p.w.WriteString("for (")
		p.w.WriteString(p.forInit(n.Init))
		p.w.WriteString("; ")
		p.w.WriteString(p.expr(n.Cond))
		p.w.WriteString("; ")
		if n.Update != nil {
			p.w.WriteString(p.expr(n.Update))
		}
		p.w.WriteString(") ")
		p.writeBody(n.Body)
		p.w.WriteString("\n")
	case *ForIn:
		p.w.WriteString("for (")
		p.w.WriteString(p.forInit(n.LHS))
		p.w.WriteString(" in ")
		p.w.WriteString(p.expr(n.Obj))
		p.w.WriteString(") ")
		p.writeBody(n.Body)
		p.w.WriteString("\n")
	case *While:
		p.w.WriteString("while (")
		p.w.WriteString(p.expr(n.Cond))
		p.w.WriteString(") ")
		p.writeBody(n.Body)
		p.w.WriteString("\n")
	case *Do:
		p.w.WriteString("do ")
		p.writeBody(n.Body)
		p.w.WriteString(" while (")
		p.w.WriteString(p.expr(n.Cond))
		p.w.WriteString(");\n")
	case *Continue:
		p.w.WriteString("continue")
		if n.Label != "" {
			p.w.WriteString(" " + n.Label)
		}
		p.w.WriteString(";\n")
	case *Break:
		p.w.WriteString("break")
		if n.Label != "" {
			p.w.WriteString(" " + n.Label)
		}
		p.w.WriteString(";\n")
	case *Return:
		p.w.WriteString("return ")
		if _, ok := n.Value.(*LiteralUndefined); ok {
			p.w.WriteString("(void 0)")
		} else {
			p.w.WriteString(p.expr(n.Value))
		}
		p.w.WriteString(";\n")
	case *Throw:
		p.w.WriteString("throw ")
		p.w.WriteString(p.expr(n.Expr))
		p.w.WriteString(";\n")
	case *Try:
		p.w.WriteString("try ")
		p.writeBody(n.Body)
		if n.Catch != nil {
			p.w.WriteString(" catch (")
			p.w.WriteString(n.Catch.Decl.Name)
			p.w.WriteString(p.tagSuffix(n.Catch.Decl))
			p.w.WriteString(") ")
			p.writeBody(n.Catch.Body)
		}
		if n.Finally != nil {
			p.w.WriteString(" finally ")
			p.writeBody(n.Finally)
		}
		p.w.WriteString("\n")
	case *With:
		p.w.WriteString("with (")
		p.w.WriteString(p.expr(n.Obj))
		p.w.WriteString(") ")
		p.writeBody(n.Body)
		p.w.WriteString("\n")
	case *Switch:
		p.w.WriteString("switch (")
		p.w.WriteString(p.expr(n.Key))
		p.w.WriteString(") {\n")
		p.depth++
		for _, c := range n.Cases {
			p.writeSwitchCase(c)
		}
		p.depth--
		p.writeIndent()
		p.w.WriteString("}\n")
	case *FunctionDeclaration:
		p.w.WriteString("function " + n.Name + "(" + p.paramList(n.Fun.Params) + ") ")
		p.writeBody(n.Fun.Body)
		p.w.WriteString("\n")
	case *LabeledStatement:
		p.w.WriteString(n.Label + ":\n")
		p.depth++
		p.writeStatement(n.Body)
		p.depth--
	default:
		assertf(false, "writeStatement: unhandled node type %T", node)
	}
}

func (p *Printer) writeSwitchCase(node Node) {
	p.writeIndent()
	switch n := node.(type) {
	case *Case:
		p.w.WriteString("case " + p.expr(n.Expr) + ":\n")
		p.depth++
		for _, s := range n.Body.Statements {
			p.writeStatement(s)
		}
		p.depth--
	case *Default:
		p.w.WriteString("default:\n")
		p.depth++
		for _, s := range n.Body.Statements {
			p.writeStatement(s)
		}
		p.depth--
	default:
		assertf(false, "writeSwitchCase: unhandled node type %T", node)
	}
}

// forInit renders a for/for-in head slot, which is either a var
// declaration list (no trailing semicolon) or a plain expression.
func (p *Printer) forInit(n Node) string {
	if n == nil {
		return ""
	}
	if vdl, ok := n.(*VariableDeclarationList); ok {
		return p.varDeclList(vdl)
	}
	return p.expr(n)
}

func (p *Printer) varDeclList(n *VariableDeclarationList) string {
	parts := make([]string, len(n.Inits))
	for i, init := range n.Inits {
		s := init.Decl.Name + p.tagSuffix(init.Decl)
		if init.Value != nil {
			s += " = " + p.expr(init.Value)
		}
		parts[i] = s
	}
	return "var " + strings.Join(parts, ", ")
}

func (p *Printer) paramList(params []*Parameter) string {
	parts := make([]string, len(params))
	for i, param := range params {
		parts[i] = param.Name + p.tagSuffix(param)
	}
	return strings.Join(parts, ", ")
}

// expr renders an expression node to text. Compound expressions are
// fully parenthesized (defensive, round-trip-safe); PropertyAccess never
// wraps itself since "." was already normalized to "[...]" by the parser.
func (p *Printer) expr(node Node) string {
	switch n := node.(type) {
	case *Sequence:
		parts := make([]string, len(n.Exprs))
		for i, e := range n.Exprs {
			parts[i] = p.expr(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *VariableDeclarationList:
		return p.varDeclList(n)
	case *Assignment:
		return "(" + p.expr(n.LHS) + " " + n.Op + "= " + p.expr(n.RHS) + ")"
	case *Conditional:
		return "(" + p.expr(n.Cond) + " ? " + p.expr(n.Then) + " : " + p.expr(n.Else) + ")"
	case *New:
		return "(new " + p.expr(n.Target) + "(" + p.exprList(n.Args) + "))"
	case *Call:
		return "(" + p.expr(n.Target) + "(" + p.exprList(n.Args) + "))"
	case *Binary:
		return "(" + p.expr(n.LHS) + " " + n.Op + p.tagSuffix(n) + " " + p.expr(n.RHS) + ")"
	case *Prefix:
		op := strings.TrimPrefix(n.Op, "prefix")
		sep := ""
		if op == "delete" || op == "void" || op == "typeof" {
			sep = " "
		}
		return "(" + op + p.tagSuffix(n) + sep + p.expr(n.Expr) + ")"
	case *Postfix:
		return "(" + p.expr(n.Expr) + n.Op + ")"
	case *VariableUse:
		return n.Name + p.tagSuffix(n)
	case *This:
		return "this"
	case *PropertyAccess:
		return p.expr(n.Receiver) + "[" + p.expr(n.Selector) + "]"
	case *NamedFunction:
		return "function " + n.Name + "(" + p.paramList(n.Fun.Params) + ") " + p.blockText(n.Fun.Body)
	case *Fun:
		return "function (" + p.paramList(n.Params) + ") " + p.blockText(n.Body)
	case *VariableDeclaration:
		return n.Name + p.tagSuffix(n)
	case *LiteralBool:
		if n.Value {
			return "true"
		}
		return "false"
	case *LiteralString:
		return n.Raw
	case *LiteralNumber:
		return n.Raw
	case *LiteralNull:
		return "null"
	case *LiteralUndefined:
		return "undefined"
	case *ArrayInitializer:
		return p.arrayInitializer(n)
	case *ObjectInitializer:
		return p.objectInitializer(n)
	case *RegExpLiteral:
		return n.Raw
	default:
		assertf(false, "expr: unhandled node type %T", node)
		return ""
	}
}

func (p *Printer) exprList(exprs []Node) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = p.expr(e)
	}
	return strings.Join(parts, ", ")
}

// blockText renders a block inline (used inside an expression, where
// writeBody's indent-tracking side effects on p.depth would be safe to
// reuse but the caller has no preceding writeIndent of its own).
func (p *Printer) blockText(n *Block) string {
	var sb strings.Builder
	sb.WriteString("{\n")
	p.depth++
	for _, s := range n.Statements {
		sb.WriteString(p.statementText(s))
	}
	p.depth--
	sb.WriteString(strings.Repeat(p.Indent, p.depth))
	sb.WriteString("}")
	return sb.String()
}

// statementText renders a single statement the same way writeStatement
// does, but to a string instead of the printer's writer, for use from
// expr's function-literal case. p.depth is left untouched so that any
// nested block inside node indents relative to the real nesting level.
func (p *Printer) statementText(node Node) string {
	var buf strings.Builder
	saved := p.w
	p.w = bufio.NewWriter(&buf)
	p.writeStatement(node)
	p.w.Flush()
	p.w = saved
	return buf.String()
}

func (p *Printer) arrayInitializer(n *ArrayInitializer) string {
	slots := make([]string, n.Length)
	for _, e := range n.Elements {
		if e.Index >= 0 && e.Index < n.Length {
			slots[e.Index] = p.expr(e.Value)
		}
	}
	return "[" + strings.Join(slots, ", ") + "]"
}

func (p *Printer) objectInitializer(n *ObjectInitializer) string {
	parts := make([]string, len(n.Properties))
	for i, prop := range n.Properties {
		parts[i] = p.expr(prop.Name) + ": " + p.expr(prop.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

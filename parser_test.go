package es5

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := ParseProgram(src, false)
	require.NoError(t, err)
	require.NotNil(t, prog)
	return prog
}

func TestParserBinaryPrecedence(t *testing.T) {
	prog := mustParse(t, "a = 1 + 2 * 3;")
	stmt := prog.Body[0].(*ExpressionStatement)
	assign := stmt.Expr.(*Assignment)
	add := assign.RHS.(*Binary)
	assert.Equal(t, "+", add.Op)
	mul := add.RHS.(*Binary)
	assert.Equal(t, "*", mul.Op)
}

func TestParserNewCallPrecedence(t *testing.T) {
	// new Foo().bar() must parse as a Call on a PropertyAccess on a New,
	// not as `new (Foo().bar())`.
	prog := mustParse(t, "new Foo().bar();")
	stmt := prog.Body[0].(*ExpressionStatement)
	outer := stmt.Expr.(*Call)
	access := outer.Target.(*PropertyAccess)
	n := access.Receiver.(*New)
	use := n.Target.(*VariableUse)
	assert.Equal(t, "Foo", use.Name)
	assert.Len(t, n.Args, 0)
}

func TestParserDotAccessRewritesToBracket(t *testing.T) {
	prog := mustParse(t, "a.b;")
	stmt := prog.Body[0].(*ExpressionStatement)
	access := stmt.Expr.(*PropertyAccess)
	sel := access.Selector.(*LiteralString)
	assert.Equal(t, `"b"`, sel.Raw)
}

func TestParserRegExpInPrimaryPosition(t *testing.T) {
	prog := mustParse(t, "var r = /ab+c/gi;")
	decl := prog.Body[0].(*VariableDeclarationList)
	re := decl.Inits[0].Value.(*RegExpLiteral)
	assert.Equal(t, "/ab+c/gi", re.Raw)
}

func TestParserDivisionAfterIdentifier(t *testing.T) {
	// with a left-hand operand already parsed, `/` must bind as the
	// division operator, not trigger regex reinterpretation.
	prog := mustParse(t, "a / b;")
	stmt := prog.Body[0].(*ExpressionStatement)
	bin := stmt.Expr.(*Binary)
	assert.Equal(t, "/", bin.Op)
	assert.IsType(t, &VariableUse{}, bin.LHS)
	assert.IsType(t, &VariableUse{}, bin.RHS)
}

func TestParserForInExcludesInFromBinary(t *testing.T) {
	prog := mustParse(t, "for (var k in obj) {}")
	forIn := prog.Body[0].(*ForIn)
	lhs := forIn.LHS.(*VariableDeclarationList)
	assert.Len(t, lhs.Inits, 1)
	assert.Equal(t, "k", lhs.Inits[0].Decl.Name)
}

func TestParserForWithThreeClauses(t *testing.T) {
	prog := mustParse(t, "for (var i = 0; i < 10; i++) {}")
	f := prog.Body[0].(*For)
	init := f.Init.(*VariableDeclarationList)
	assert.Equal(t, "i", init.Inits[0].Decl.Name)
	cond := f.Cond.(*Binary)
	assert.Equal(t, "<", cond.Op)
	update := f.Update.(*Postfix)
	assert.Equal(t, "++", update.Op)
}

func TestParserArrayTrailingCommaAddsNoSlot(t *testing.T) {
	prog := mustParse(t, "var a = [x,];")
	decl := prog.Body[0].(*VariableDeclarationList)
	arr := decl.Inits[0].Value.(*ArrayInitializer)
	assert.Equal(t, 1, arr.Length)
	require.Len(t, arr.Elements, 1)
	assert.Equal(t, 0, arr.Elements[0].Index)
}

func TestParserBareElisionHasLengthTwo(t *testing.T) {
	prog := mustParse(t, "var a = [,];")
	decl := prog.Body[0].(*VariableDeclarationList)
	arr := decl.Inits[0].Value.(*ArrayInitializer)
	assert.Equal(t, 2, arr.Length)
	assert.Len(t, arr.Elements, 0)
}

func TestParserObjectInitializerPromotesKeys(t *testing.T) {
	prog := mustParse(t, `var o = {a: 1, "b": 2, 3: 3};`)
	decl := prog.Body[0].(*VariableDeclarationList)
	obj := decl.Inits[0].Value.(*ObjectInitializer)
	require.Len(t, obj.Properties, 3)
	assert.Equal(t, `"a"`, obj.Properties[0].Name.Raw)
	assert.Equal(t, `"b"`, obj.Properties[1].Name.Raw)
	assert.Equal(t, `"3"`, obj.Properties[2].Name.Raw)
}

func TestParserASIInsertsBeforeNewlineRestrictedToken(t *testing.T) {
	prog := mustParse(t, "a = b\n++c")
	require.Len(t, prog.Body, 2)
	assert.IsType(t, &ExpressionStatement{}, prog.Body[0])
	second := prog.Body[1].(*ExpressionStatement)
	assert.IsType(t, &Prefix{}, second.Expr)
}

func TestParserReturnWithoutValueDefaultsToUndefined(t *testing.T) {
	prog := mustParse(t, "function f() { return; }")
	decl := prog.Body[0].(*FunctionDeclaration)
	ret := decl.Fun.Body.Statements[0].(*Return)
	assert.IsType(t, &LiteralUndefined{}, ret.Value)
}

func TestParserThrowNewlineIsAnError(t *testing.T) {
	_, err := ParseProgram("throw\na;", false)
	assert.Error(t, err)
}

func TestParserTryWithoutHandlersIsAnError(t *testing.T) {
	_, err := ParseProgram("try { a; }", false)
	assert.Error(t, err)
}

func TestParserDuplicateDefaultIsAnError(t *testing.T) {
	_, err := ParseProgram("switch (a) { default: ; default: ; }", false)
	assert.Error(t, err)
}

func TestParserInvalidAssignmentTargetIsAnError(t *testing.T) {
	_, err := ParseProgram("1 = 2;", false)
	assert.Error(t, err)
}

func TestParserFunctionExpressionIsAnonymousUnlessNamed(t *testing.T) {
	prog := mustParse(t, "var f = function () {};")
	decl := prog.Body[0].(*VariableDeclarationList)
	assert.IsType(t, &Fun{}, decl.Inits[0].Value)

	prog = mustParse(t, "var g = function named() {};")
	decl = prog.Body[0].(*VariableDeclarationList)
	assert.IsType(t, &NamedFunction{}, decl.Inits[0].Value)
}

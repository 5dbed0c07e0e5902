package es5

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveSrc(t *testing.T, src string) (*Program, map[NodeID]*Var) {
	t.Helper()
	prog, err := ParseProgram(src, false)
	require.NoError(t, err)
	return prog, Resolve(prog)
}

func TestResolverVarHoistsToFunctionScope(t *testing.T) {
	prog, res := resolveSrc(t, `
		function f() {
			if (true) {
				var x = 1;
			}
			return x;
		}
	`)
	fn := prog.Body[0].(*FunctionDeclaration)
	ret := fn.Fun.Body.Statements[1].(*Return)
	use := ret.Value.(*VariableUse)
	v := res[use.ID()]
	require.NotNil(t, v)
	assert.False(t, v.IsImplicit)
	assert.False(t, v.IsGlobal)
}

func TestResolverUndeclaredNameIsImplicitGlobal(t *testing.T) {
	prog, res := resolveSrc(t, "x;")
	use := prog.Body[0].(*ExpressionStatement).Expr.(*VariableUse)
	v := res[use.ID()]
	require.NotNil(t, v)
	assert.True(t, v.IsGlobal)
	assert.True(t, v.IsImplicit)
}

func TestResolverWithInterceptsMisses(t *testing.T) {
	prog, res := resolveSrc(t, `
		var x = 1;
		with (obj) {
			x;
		}
	`)
	with := prog.Body[1].(*With)
	use := with.Body.(*Block).Statements[0].(*ExpressionStatement).Expr.(*VariableUse)
	v := res[use.ID()]
	require.NotNil(t, v)
	require.NotNil(t, v.Intercept)
	assert.Equal(t, "x", v.Intercept.Intercepted.ID)
	assert.False(t, v.Intercept.Intercepted.IsImplicit)
}

func TestResolverEvalScopeIntercepts(t *testing.T) {
	prog, res := resolveSrc(t, `
		function f() {
			eval("var y");
			return y;
		}
	`)
	fn := prog.Body[0].(*FunctionDeclaration)
	ret := fn.Fun.Body.Statements[1].(*Return)
	use := ret.Value.(*VariableUse)
	v := res[use.ID()]
	require.NotNil(t, v)
	require.NotNil(t, v.Intercept)
}

func TestResolverBinaryOperatorResolvesToOperatorVar(t *testing.T) {
	prog, res := resolveSrc(t, "a + b;")
	bin := prog.Body[0].(*ExpressionStatement).Expr.(*Binary)
	v := res[bin.ID()]
	require.NotNil(t, v)
	assert.True(t, v.IsOperator)
	assert.Equal(t, "+", v.ID)
}

func TestResolverPrefixTildeIsNotAnOperatorVar(t *testing.T) {
	// "~" and "!" are not in the preloaded operator set; they resolve as
	// ordinary implicit globals instead.
	prog, res := resolveSrc(t, "~a;")
	pfx := prog.Body[0].(*ExpressionStatement).Expr.(*Prefix)
	v := res[pfx.ID()]
	require.NotNil(t, v)
	assert.False(t, v.IsOperator)
	assert.True(t, v.IsImplicit)
}

func TestResolverPostfixHasNoResolutionEntry(t *testing.T) {
	prog, res := resolveSrc(t, "a++;")
	pfx := prog.Body[0].(*ExpressionStatement).Expr.(*Postfix)
	_, ok := res[pfx.ID()]
	assert.False(t, ok)
}

func TestResolverParametersShadowOuterScope(t *testing.T) {
	prog, res := resolveSrc(t, `
		var x = 1;
		function f(x) {
			return x;
		}
	`)
	fn := prog.Body[1].(*FunctionDeclaration)
	param := fn.Fun.Params[0]
	ret := fn.Fun.Body.Statements[0].(*Return)
	use := ret.Value.(*VariableUse)
	assert.Same(t, res[param.ID()], res[use.ID()])
}

func TestResolverEachUseGetsDistinctVarPerDeclaration(t *testing.T) {
	prog, res := resolveSrc(t, `
		function f() { var x = 1; }
		function g() { var x = 2; }
	`)
	f := prog.Body[0].(*FunctionDeclaration)
	g := prog.Body[1].(*FunctionDeclaration)
	fx := f.Fun.Body.Statements[0].(*VariableDeclarationList).Inits[0].Decl
	gx := g.Fun.Body.Statements[0].(*VariableDeclarationList).Inits[0].Decl
	assert.NotSame(t, res[fx.ID()], res[gx.ID()])
}

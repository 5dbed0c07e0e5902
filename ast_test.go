package es5

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderAssignsIncreasingIDs(t *testing.T) {
	var b Builder
	n1 := b.node(Position{})
	n2 := b.node(Position{})
	assert.NotEqual(t, n1.ID(), n2.ID())
	assert.Less(t, n1.ID(), n2.ID())
}

func TestWalkVisitsDirectChildrenOnly(t *testing.T) {
	prog, err := ParseProgram("if (a) { b; } else { c; }", false)
	require.NoError(t, err)

	ifStmt := prog.Body[0].(*If)
	var visited []Node
	Walk(ifStmt, func(n Node) { visited = append(visited, n) })

	require.Len(t, visited, 3)
	assert.IsType(t, &VariableUse{}, visited[0])
	assert.IsType(t, &Block{}, visited[1])
	assert.IsType(t, &Block{}, visited[2])
}

func TestWalkOnLeafNodeVisitsNothing(t *testing.T) {
	var called bool
	Walk(&LiteralNull{}, func(Node) { called = true })
	assert.False(t, called)
}

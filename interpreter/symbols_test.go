package interpreter

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shibukawa/snaptmpl/tmplerror"
)

func TestSymbolTableLookup(t *testing.T) {
	table := NewSymbolTable(map[string]any{"g": "global"})

	outer, inner := uuid.New(), uuid.New()

	table.Push(outer)
	require.NoError(t, table.Declare(outer, "x", "outer"))

	table.Push(inner)
	require.NoError(t, table.Declare(inner, "x", "inner"))

	value, ok := table.Lookup([]uuid.UUID{outer, inner}, "x")
	assert.True(t, ok)
	assert.Equal(t, "inner", value)

	value, ok = table.Lookup([]uuid.UUID{outer}, "x")
	assert.True(t, ok)
	assert.Equal(t, "outer", value)

	value, ok = table.Lookup(nil, "g")
	assert.True(t, ok)
	assert.Equal(t, "global", value)

	_, ok = table.Lookup(nil, "x")
	assert.False(t, ok, "frames outside the chain are invisible")

	table.Pop()
	_, ok = table.Lookup([]uuid.UUID{outer, inner}, "x")
	assert.True(t, ok)

	table.Pop()
	_, ok = table.Lookup([]uuid.UUID{outer, inner}, "x")
	assert.False(t, ok)
	assert.Equal(t, 0, table.Depth())

	table.Pop()
	assert.Equal(t, 0, table.Depth())
}

func TestSymbolTableDeclareConflict(t *testing.T) {
	table := NewSymbolTable(map[string]any{"x": 1})
	owner := uuid.New()
	table.Push(owner)

	err := table.Declare(owner, "x", 2)
	assert.True(t, errors.Is(err, tmplerror.ErrScopeConflict))

	err = table.Declare(uuid.New(), "y", 2)
	assert.True(t, errors.Is(err, ErrNoFrame))
}

func TestSymbolTableAssign(t *testing.T) {
	table := NewSymbolTable(nil)
	owner := uuid.New()
	table.Push(owner)

	assert.True(t, errors.Is(table.Assign(owner, "x", 1), tmplerror.ErrUnknownVariable))

	require.NoError(t, table.Declare(owner, "x", nil))
	require.NoError(t, table.Assign(owner, "x", 1))

	value, _ := table.Lookup([]uuid.UUID{owner}, "x")
	assert.Equal(t, 1, value)
}

package argfn

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallScopedSet(t *testing.T) {
	c := newCall()

	assert.False(t, c.IsPartial())
	assert.False(t, c.IsPreOnly())
	assert.Equal(t, -1, c.ParametrizeIndex())

	restore := c.Set(SetPartial(true), SetPreOnly(true))
	assert.True(t, c.IsPartial())
	assert.True(t, c.IsPreOnly())

	// Overrides nest and restore in reverse.
	inner := c.Set(SetPartial(false))
	assert.False(t, c.IsPartial())
	assert.True(t, c.IsPreOnly())
	inner()
	assert.True(t, c.IsPartial())

	restore()
	assert.False(t, c.IsPartial())
	assert.False(t, c.IsPreOnly())
}

func TestCallSetParametrize(t *testing.T) {
	c := newCall()

	vals := []any{1, 2, 3}
	restore := c.Set(SetParametrize("val", 2, 1, vals))
	assert.Equal(t, "val", c.ParametrizeArg())
	assert.Equal(t, 2, c.ParametrizeVal())
	assert.Equal(t, 1, c.ParametrizeIndex())
	assert.Equal(t, vals, c.ParametrizeVals())

	restore()
	assert.Equal(t, "", c.ParametrizeArg())
	assert.Nil(t, c.ParametrizeVal())
	assert.Equal(t, -1, c.ParametrizeIndex())
	assert.Nil(t, c.ParametrizeVals())
}

func TestCallRestoredOnPanic(t *testing.T) {
	c := newCall()

	func() {
		defer func() { _ = recover() }()
		defer c.Set(SetPartial(true))()
		panic("inner failure")
	}()

	assert.False(t, c.IsPartial())
}

func TestCallIDsAreUnique(t *testing.T) {
	a, b := newCall(), newCall()
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestCallFromContext(t *testing.T) {
	_, ok := CallFromContext(context.Background())
	assert.False(t, ok)

	var seen *Call
	target := CtxFn0(func(ctx context.Context) (any, error) {
		seen = CurrentCall(ctx)
		fromCtx, ok := CallFromContext(ctx)
		assert.True(t, ok)
		assert.Same(t, seen, fromCtx)
		return nil, nil
	})

	_, err := Wrap(target).Call(context.Background())
	require.NoError(t, err)
	require.NotNil(t, seen)
	assert.NotEmpty(t, seen.ID())
}

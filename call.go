package argfn

import (
	"context"

	"github.com/google/uuid"
)

// Call holds the ambient state of one executing top-level invocation: the
// run-mode flags and the parametrization snapshot. Exactly one Call flows
// through a single invocation's call graph, carried by the context.Context
// the chain was entered with.
type Call struct {
	id string

	partial bool
	preOnly bool

	paramArg   string
	paramVal   any
	paramIndex int
	paramVals  []any
}

func newCall() *Call {
	return &Call{
		id:         uuid.NewString(),
		paramIndex: -1,
	}
}

// ID returns the unique id of this invocation.
func (c *Call) ID() string { return c.id }

// IsPartial reports whether the invocation runs in partial mode, where
// chain nodes whose arguments cannot yet be bound are skipped.
func (c *Call) IsPartial() bool { return c.partial }

// IsPreOnly reports whether the invocation runs every chain node but stops
// short of invoking the innermost target.
func (c *Call) IsPreOnly() bool { return c.preOnly }

// ParametrizeArg returns the name of the currently parametrized argument,
// or "" outside a parametrized run.
func (c *Call) ParametrizeArg() string { return c.paramArg }

// ParametrizeVal returns the current parametrized value.
func (c *Call) ParametrizeVal() any { return c.paramVal }

// ParametrizeIndex returns the index of the current parametrized value, or
// -1 outside a parametrized run.
func (c *Call) ParametrizeIndex() int { return c.paramIndex }

// ParametrizeVals returns the full sequence of values being iterated.
func (c *Call) ParametrizeVals() []any { return c.paramVals }

// CallField is a scoped override of one Call field. Applying it returns the
// restore closure for its previous value.
type CallField func(c *Call) (restore func())

// SetPartial overrides the partial-mode flag.
func SetPartial(v bool) CallField {
	return func(c *Call) func() {
		prev := c.partial
		c.partial = v
		return func() { c.partial = prev }
	}
}

// SetPreOnly overrides the pre-only-mode flag.
func SetPreOnly(v bool) CallField {
	return func(c *Call) func() {
		prev := c.preOnly
		c.preOnly = v
		return func() { c.preOnly = prev }
	}
}

// SetParametrize overrides the parametrization snapshot.
func SetParametrize(arg string, val any, index int, vals []any) CallField {
	return func(c *Call) func() {
		prevArg, prevVal, prevIndex, prevVals := c.paramArg, c.paramVal, c.paramIndex, c.paramVals
		c.paramArg, c.paramVal, c.paramIndex, c.paramVals = arg, val, index, vals
		return func() {
			c.paramArg, c.paramVal, c.paramIndex, c.paramVals = prevArg, prevVal, prevIndex, prevVals
		}
	}
}

// Set temporarily applies field overrides and returns a restore closure that
// puts the previous values back. Overrides nest; callers are expected to
// defer the restore so it runs on every exit path.
func (c *Call) Set(fields ...CallField) (restore func()) {
	restores := make([]func(), 0, len(fields))
	for _, f := range fields {
		restores = append(restores, f(c))
	}
	return func() {
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
	}
}

type callKey struct{}

func withCall(ctx context.Context, c *Call) context.Context {
	return context.WithValue(ctx, callKey{}, c)
}

// CallFromContext returns the Call carried by ctx, if any.
func CallFromContext(ctx context.Context) (*Call, bool) {
	c, ok := ctx.Value(callKey{}).(*Call)
	return c, ok
}

// CurrentCall returns the Call of the currently executing top-level
// invocation. It panics when no invocation is running; it must only be used
// from collaborators invoked inside a chain.
func CurrentCall(ctx context.Context) *Call {
	c, ok := CallFromContext(ctx)
	if !ok {
		panic("argfn: no argfn call is running")
	}
	return c
}

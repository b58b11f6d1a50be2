package argfn

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Args is a decorated callable: the innermost plain target plus a chain of
// behavior nodes applied outer to inner. Chains are immutable once built;
// decorating an Args produces a new outer link.
type Args struct {
	fn    *Func
	inner *Args
	node  behavior
	exts  []Extension
}

// behavior is the closed set of chain-node kinds. Every node consumes the
// merged argument mapping and delegates inward with its own additions,
// never mutating the mapping it received.
type behavior interface {
	kind() OperationKind
	detail() string
	process(ctx context.Context, inner *Args, vals Values) (any, error)
}

// Decorator wraps a chain in one more behavior node.
type Decorator func(*Args) *Args

// New wraps a plain declared callable into a chain with no behavior nodes.
func New(fn *Func) *Args {
	if fn == nil {
		panic("argfn: New requires a non-nil *Func")
	}
	return &Args{fn: fn}
}

// Wrap applies decorators to a declared callable, outermost first.
func Wrap(fn *Func, decorators ...Decorator) *Args {
	return Compose(decorators...)(New(fn))
}

// Compose folds an ordered decorator list into one. The first decorator
// listed becomes the outermost node, mirroring stacked decoration.
func Compose(decorators ...Decorator) Decorator {
	return func(a *Args) *Args {
		for i := len(decorators) - 1; i >= 0; i-- {
			a = decorators[i](a)
		}
		return a
	}
}

func wrapNode(inner *Args, n behavior) *Args {
	return &Args{
		fn:    inner.fn,
		inner: inner,
		node:  n,
		exts:  inner.exts,
	}
}

// Fn returns the innermost plain target of the chain.
func (a *Args) Fn() *Func {
	return a.fn
}

// Partial returns a variant of the chain where validators, contexts,
// defaults and parametrization run against partial arguments: a node whose
// required arguments are not yet present is skipped instead of failing.
func (a *Args) Partial() *Args {
	return Contexts(modeProvider("partial", SetPartial(true)))(a)
}

// PreOnly returns a variant of the chain that runs every node but stops
// short of invoking the innermost target.
func (a *Args) PreOnly() *Args {
	return Contexts(modeProvider("pre_only", SetPreOnly(true)))(a)
}

// Call is the entry point of a decorated chain. It establishes the Call
// context for this invocation on the supplied ctx, binds the caller's
// arguments partially and extra-tolerantly against the target's signature,
// and runs the chain from the outermost node inward. The Call context lives
// only on the derived ctx, so it is gone once Call returns, on every path.
//
// Keyword arguments are written with Named. Entering a chain from within a
// running chain invocation (a ctx that already carries a Call) is a
// programmer error and panics.
func (a *Args) Call(ctx context.Context, args ...any) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, active := CallFromContext(ctx); active {
		panic("argfn: an argfn call is already running on this context")
	}
	ctx = withCall(ctx, newCall())

	pos, kw := splitArgs(args)
	vals, err := bindArgs(a.fn, pos, kw, true, true)
	if err != nil {
		return nil, err
	}
	return a.call(ctx, vals)
}

// call runs this link of the chain, wrapped by any registered extensions.
func (a *Args) call(ctx context.Context, vals Values) (any, error) {
	op := &Operation{Kind: a.kindOf(), Fn: a.fn.name}
	if c, ok := CallFromContext(ctx); ok {
		op.Call = c
	}

	next := func() (any, error) {
		if a.node != nil {
			return a.node.process(ctx, a.inner, vals)
		}
		return a.terminal(ctx, vals)
	}

	for i := len(a.exts) - 1; i >= 0; i-- {
		ext := a.exts[i]
		currentNext := next
		next = func() (any, error) {
			return ext.Wrap(ctx, currentNext, op)
		}
	}

	res, err := next()
	if err != nil {
		for _, ext := range a.exts {
			ext.OnError(err, op)
		}
	}
	return res, err
}

// terminal re-binds the accumulated mapping strictly against the target and
// invokes it. The strict re-bind runs regardless of upstream partial
// binding, so a missing required parameter always surfaces here. In
// pre-only mode the target is not invoked.
func (a *Args) terminal(ctx context.Context, vals Values) (any, error) {
	if CurrentCall(ctx).IsPreOnly() {
		return nil, nil
	}
	bound, err := bindArgs(a.fn, nil, vals, false, false)
	if err != nil {
		return nil, err
	}
	return a.fn.invoke(ctx, bound)
}

func (a *Args) kindOf() OperationKind {
	if a.node == nil {
		return OpCall
	}
	return a.node.kind()
}

// NodeInfo describes one link of a decorated chain.
type NodeInfo struct {
	Kind   OperationKind
	Detail string
}

// Chain returns the chain's links outermost first, ending with the terminal
// target invocation.
func (a *Args) Chain() []NodeInfo {
	var out []NodeInfo
	for n := a; n != nil; n = n.inner {
		if n.node != nil {
			out = append(out, NodeInfo{Kind: n.node.kind(), Detail: n.node.detail()})
			continue
		}
		out = append(out, NodeInfo{Kind: OpCall, Detail: n.fn.name})
	}
	return out
}

// Scoped is a resource yielded by a context provider together with its
// release. Providers returning any other value contribute it as-is with no
// release step.
type Scoped struct {
	Value   any
	Release func() error
}

// NewScoped pairs a resource with its release function.
func NewScoped(value any, release func() error) *Scoped {
	return &Scoped{Value: value, Release: release}
}

// Validators returns a decorator that runs each validator against the
// current argument mapping, purely for its error. A validator is a string,
// a declared callable, or a lazy value; in partial mode a validator whose
// arguments cannot yet be bound is skipped.
func Validators(checks ...any) Decorator {
	lz := make([]*Lazy, len(checks))
	for i, c := range checks {
		lz[i] = toLazy(c)
	}
	return func(a *Args) *Args {
		return wrapNode(a, &validatorsNode{checks: lz})
	}
}

// Contexts returns a decorator that acquires scoped resources before
// delegating inward. Plain entries are unnamed providers; Named entries
// merge the acquired resource into the argument mapping under their name,
// visible to later contexts and to every inner node. All acquired resources
// are released when the node exits, most recently acquired first, on every
// exit path.
func Contexts(providers ...any) Decorator {
	var entries []ctxEntry
	for _, p := range providers {
		if na, ok := p.(NamedArg); ok {
			entries = append(entries, ctxEntry{name: na.Name, provider: toLazy(na.Value)})
			continue
		}
		entries = append(entries, ctxEntry{provider: toLazy(p)})
	}
	return func(a *Args) *Args {
		return wrapNode(a, &contextsNode{entries: entries})
	}
}

// Defaults returns a decorator that computes argument values before
// delegating inward. Each Named entry maps a parameter name to a callable
// or lazy value evaluated against the mapping merged with the defaults
// already computed by this node, in declaration order.
func Defaults(defaults ...NamedArg) Decorator {
	var entries []defaultEntry
	for _, d := range defaults {
		entries = append(entries, defaultEntry{name: d.Name, fn: toLazy(d.Value)})
	}
	return func(a *Args) *Args {
		return wrapNode(a, &defaultsNode{entries: entries})
	}
}

// Parametrize returns a decorator that fans the chain out over a sequence:
// fn is evaluated against the mapping to obtain the values, and the inner
// chain runs once per value with name overridden, collecting the results in
// iteration order. Exactly one parameter is parametrized per node, which the
// signature enforces.
func Parametrize(name string, fn any) Decorator {
	lz := toLazy(fn)
	return func(a *Args) *Args {
		return wrapNode(a, &parametrizeNode{name: name, fn: lz})
	}
}

// Use registers extensions on every link of the chain built so far; links
// wrapped around the result inherit them.
func Use(exts ...Extension) Decorator {
	return func(a *Args) *Args {
		merged := append(append([]Extension{}, a.exts...), exts...)
		sort.SliceStable(merged, func(i, j int) bool {
			return merged[i].Order() < merged[j].Order()
		})
		for n := a; n != nil; n = n.inner {
			n.exts = merged
		}
		return a
	}
}

// suppressed reports whether err is a partial-mode bind failure that the
// node should swallow by skipping the failing collaborator.
func suppressed(ctx context.Context, err error) bool {
	return IsBindError(err) && CurrentCall(ctx).IsPartial()
}

type validatorsNode struct {
	checks []*Lazy
}

func (n *validatorsNode) kind() OperationKind { return OpValidators }

func (n *validatorsNode) detail() string {
	return describeLazies(n.checks)
}

func (n *validatorsNode) process(ctx context.Context, inner *Args, vals Values) (any, error) {
	for _, check := range n.checks {
		if _, err := check.load(ctx, vals); err != nil {
			if suppressed(ctx, err) {
				continue
			}
			return nil, err
		}
	}
	return inner.call(ctx, vals)
}

type ctxEntry struct {
	name     string
	provider *Lazy
}

type contextsNode struct {
	entries []ctxEntry
}

func (n *contextsNode) kind() OperationKind { return OpContexts }

func (n *contextsNode) detail() string {
	parts := make([]string, len(n.entries))
	for i, e := range n.entries {
		if e.name != "" {
			parts[i] = fmt.Sprintf("%s=%s", e.name, e.provider.desc)
		} else {
			parts[i] = e.provider.desc
		}
	}
	return strings.Join(parts, ", ")
}

func (n *contextsNode) process(ctx context.Context, inner *Args, vals Values) (res any, err error) {
	acquired := Values{}
	var releases []func() error
	defer func() {
		for i := len(releases) - 1; i >= 0; i-- {
			if rerr := releases[i](); rerr != nil {
				err = errors.Join(err, rerr)
			}
		}
	}()

	for _, entry := range n.entries {
		resource, lerr := entry.provider.load(ctx, vals.merge(acquired))
		if lerr != nil {
			if suppressed(ctx, lerr) {
				continue
			}
			return nil, lerr
		}
		if sc, ok := resource.(*Scoped); ok {
			if sc.Release != nil {
				releases = append(releases, sc.Release)
			}
			resource = sc.Value
		}
		if entry.name != "" {
			acquired[entry.name] = resource
		}
	}

	return inner.call(ctx, vals.merge(acquired))
}

type defaultEntry struct {
	name string
	fn   *Lazy
}

type defaultsNode struct {
	entries []defaultEntry
}

func (n *defaultsNode) kind() OperationKind { return OpDefaults }

func (n *defaultsNode) detail() string {
	parts := make([]string, len(n.entries))
	for i, e := range n.entries {
		parts[i] = fmt.Sprintf("%s=%s", e.name, e.fn.desc)
	}
	return strings.Join(parts, ", ")
}

func (n *defaultsNode) process(ctx context.Context, inner *Args, vals Values) (any, error) {
	computed := Values{}
	for _, entry := range n.entries {
		v, err := entry.fn.load(ctx, vals.merge(computed))
		if err != nil {
			if suppressed(ctx, err) {
				continue
			}
			return nil, err
		}
		computed[entry.name] = v
	}
	return inner.call(ctx, vals.merge(computed))
}

type parametrizeNode struct {
	name string
	fn   *Lazy
}

func (n *parametrizeNode) kind() OperationKind { return OpParametrize }

func (n *parametrizeNode) detail() string {
	return fmt.Sprintf("%s=%s", n.name, n.fn.desc)
}

func (n *parametrizeNode) process(ctx context.Context, inner *Args, vals Values) (any, error) {
	c := CurrentCall(ctx)

	seqVal, err := n.fn.load(ctx, vals)
	if err != nil {
		// In partial mode an unbindable parametrization is skipped and the
		// chain keeps running once, unparametrized.
		if suppressed(ctx, err) {
			return inner.call(ctx, vals)
		}
		return nil, err
	}

	seq, err := toAnySlice(seqVal)
	if err != nil {
		return nil, fmt.Errorf("parametrize %q: %w", n.name, err)
	}

	results := make([]any, 0, len(seq))
	for i, v := range seq {
		res, err := func() (any, error) {
			defer c.Set(SetParametrize(n.name, v, i, seq))()
			return inner.call(ctx, vals.merge(Values{n.name: v}))
		}()
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func describeLazies(lz []*Lazy) string {
	parts := make([]string, len(lz))
	for i, l := range lz {
		parts[i] = l.desc
	}
	return strings.Join(parts, ", ")
}

func toAnySlice(v any) ([]any, error) {
	if s, ok := v.([]any); ok {
		return s, nil
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, fmt.Errorf("cannot iterate over %T", v)
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

// modeProvider builds the scoped-context provider behind Partial and
// PreOnly: acquisition flips the mode flag, release restores it.
func modeProvider(name string, field CallField) *Lazy {
	fn := CtxFn0(func(ctx context.Context) (*Scoped, error) {
		restore := CurrentCall(ctx).Set(field)
		return &Scoped{Release: func() error {
			restore()
			return nil
		}}, nil
	}, WithName(name))
	return Defer(fn)
}

package argfn

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

// step is one recorded entry of a lazy value's call-chain log. A step with a
// name is an attribute or method lookup, optionally followed by an
// invocation. A step without a name invokes the current value directly.
type step struct {
	name string
	args []any
	call bool
}

// Lazy is a value obtainable later given an argument mapping. Concrete
// behavior comes from a closed set of strategies built by Defer, Val, First
// and Init. A Lazy additionally owns a call-chain log recorded through Attr
// and Call; the log is replayed, in order, against the strategy's result
// every time the lazy value is loaded.
type Lazy struct {
	steps []step
	eval  func(ctx context.Context, vals Values) (any, error)

	// fn is the innermost declared callable when the strategy has one.
	// Defer uses it to bind arguments before recursing into a wrapped Lazy.
	fn *Func

	desc        string
	fallback    any
	hasFallback bool
}

// LazyOption is a modifier for lazy values.
type LazyOption func(*Lazy)

// Fallback sets the value returned when the lazy value's arguments cannot
// be bound, instead of propagating the *BindError.
func Fallback(v any) LazyOption {
	return func(l *Lazy) {
		l.fallback = v
		l.hasFallback = true
	}
}

// Attr records an attribute or method lookup on the eventual result.
// It returns the same lazy value for chaining.
func (l *Lazy) Attr(name string) *Lazy {
	l.steps = append(l.steps, step{name: name})
	return l
}

// Call records an invocation. It attaches to the most recently recorded
// lookup; with no lookup recorded yet (or one that already carries a call)
// it records a standalone step that invokes the current value directly.
func (l *Lazy) Call(args ...any) *Lazy {
	if n := len(l.steps); n > 0 && !l.steps[n-1].call && l.steps[n-1].name != "" {
		l.steps[n-1].call = true
		l.steps[n-1].args = args
		return l
	}
	l.steps = append(l.steps, step{call: true, args: args})
	return l
}

// load evaluates the strategy against vals and replays the call-chain log
// over the result.
func (l *Lazy) load(ctx context.Context, vals Values) (any, error) {
	v, err := l.eval(ctx, vals)
	if err != nil {
		return nil, err
	}

	for _, st := range l.steps {
		v, err = applyStep(ctx, v, st)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", l.desc, err)
		}
	}
	return v, nil
}

// Load evaluates a lazy value against an argument mapping. A *Func is
// admitted and wrapped in Defer on the fly.
func Load(ctx context.Context, target any, vals Values) (any, error) {
	switch t := target.(type) {
	case *Lazy:
		return t.load(ctx, vals)
	case *Func:
		return Defer(t).load(ctx, vals)
	}
	panic(fmt.Sprintf("argfn: Load target must be a *Lazy or *Func, got %T", target))
}

// Defer wraps a declared callable (or another lazy value) for deferred
// signature-bound invocation. On load, the argument mapping is strictly
// bound against the callable's declared parameters, ignoring entries the
// callable does not declare; a *BindError yields the Fallback value when one
// was configured and propagates otherwise. A Lazy target is recursively
// loaded with the bound arguments.
func Defer(target any, opts ...LazyOption) *Lazy {
	l := &Lazy{}

	var inner *Lazy
	switch t := target.(type) {
	case *Func:
		l.fn = t
	case *Lazy:
		if t.fn == nil {
			panic(fmt.Sprintf("argfn: Defer target %s has no declared signature", t.desc))
		}
		l.fn = t.fn
		inner = t
	default:
		panic(fmt.Sprintf("argfn: Defer target must be a *Func or *Lazy, got %T", target))
	}
	l.desc = l.fn.name

	for _, opt := range opts {
		opt(l)
	}

	l.eval = func(ctx context.Context, vals Values) (any, error) {
		bound, err := bindArgs(l.fn, nil, vals, false, false)
		if err != nil {
			if l.hasFallback {
				return l.fallback, nil
			}
			return nil, err
		}
		if inner != nil {
			return inner.load(ctx, bound)
		}
		return l.fn.invoke(ctx, bound)
	}
	return l
}

// Val lazily returns the value bound to a single parameter name.
func Val(name string, opts ...LazyOption) *Lazy {
	l := Defer(identityFunc(name), opts...)
	l.desc = fmt.Sprintf("val(%q)", name)
	return l
}

// First tries each candidate in order and yields the first one that loads
// without a *BindError. A string candidate becomes Val, a *Func becomes
// Defer and a *Lazy is used as-is; anything else is rejected at construction
// time. When every candidate fails to bind, the Fallback value is returned
// if configured, otherwise a *BindError naming all candidates.
func First(candidates ...any) *Lazy {
	l := &Lazy{desc: "first"}

	var cands []*Lazy
	for _, c := range candidates {
		if opt, ok := c.(LazyOption); ok {
			opt(l)
			continue
		}
		cands = append(cands, toLazy(c))
	}

	l.eval = func(ctx context.Context, vals Values) (any, error) {
		for _, cand := range cands {
			res, err := cand.load(ctx, vals)
			if err == nil {
				return res, nil
			}
			if !IsBindError(err) {
				return nil, err
			}
		}

		if l.hasFallback {
			return l.fallback, nil
		}

		names := make([]string, len(cands))
		for i, cand := range cands {
			names[i] = cand.desc
		}
		return nil, newBindError("first", nil, vals,
			fmt.Sprintf("no candidate could be bound: [%s]", strings.Join(names, ", ")))
	}
	return l
}

// Init lazily constructs a value. Positional arguments and Named keyword
// arguments may themselves be lazy values; they are loaded against the
// call-time mapping before the constructor is invoked.
func Init(ctor *Func, args ...any) *Lazy {
	l := &Lazy{desc: fmt.Sprintf("init(%s)", ctor.name)}

	l.eval = func(ctx context.Context, vals Values) (any, error) {
		var pos []any
		kw := Values{}
		for _, a := range args {
			if na, ok := a.(NamedArg); ok {
				v, err := resolveArg(ctx, na.Value, vals)
				if err != nil {
					return nil, err
				}
				kw[na.Name] = v
				continue
			}
			v, err := resolveArg(ctx, a, vals)
			if err != nil {
				return nil, err
			}
			pos = append(pos, v)
		}

		bound, err := bindArgs(ctor, pos, kw, false, false)
		if err != nil {
			return nil, err
		}
		return ctor.invoke(ctx, bound)
	}
	return l
}

func resolveArg(ctx context.Context, a any, vals Values) (any, error) {
	if lz, ok := a.(*Lazy); ok {
		return lz.load(ctx, vals)
	}
	return a, nil
}

// toLazy normalizes a configured collaborator into a lazy value: strings
// reference an argument by name, declared callables are deferred, lazy
// values pass through. Any other shape is a programmer error.
func toLazy(v any) *Lazy {
	switch t := v.(type) {
	case *Lazy:
		return t
	case string:
		return Val(t)
	case *Func:
		return Defer(t)
	}
	panic(fmt.Sprintf("argfn: %v (%T) must be a string, a *Func, or a *Lazy", v, v))
}

// applyStep replays one recorded step against a concrete value.
func applyStep(ctx context.Context, v any, st step) (any, error) {
	if st.name == "" {
		// Standalone invocation of the current value itself.
		return callValue(ctx, v, nil)
	}

	cur, err := lookup(v, st.name)
	if err != nil {
		return nil, err
	}
	if !st.call {
		return cur, nil
	}
	return callValue(ctx, cur, st.args)
}

// lookup resolves a named step: method first, then struct field, then map
// key for string-keyed maps.
func lookup(v any, name string) (any, error) {
	if v == nil {
		return nil, fmt.Errorf("cannot access %q on nil value", name)
	}

	rv := reflect.ValueOf(v)
	if m := rv.MethodByName(name); m.IsValid() {
		return m.Interface(), nil
	}

	elem := rv
	for elem.Kind() == reflect.Pointer {
		if elem.IsNil() {
			return nil, fmt.Errorf("cannot access %q on nil %s", name, rv.Type())
		}
		elem = elem.Elem()
	}

	switch elem.Kind() {
	case reflect.Struct:
		if f := elem.FieldByName(name); f.IsValid() {
			return f.Interface(), nil
		}
	case reflect.Map:
		if elem.Type().Key().Kind() == reflect.String {
			if mv := elem.MapIndex(reflect.ValueOf(name)); mv.IsValid() {
				return mv.Interface(), nil
			}
		}
	}

	return nil, fmt.Errorf("%s has no method, field, or key %q", rv.Type(), name)
}

// callValue invokes a concrete value obtained during replay. Declared
// callables are bound positionally; plain Go funcs are invoked through
// reflection with the usual (R, error) conventions.
func callValue(ctx context.Context, v any, args []any) (any, error) {
	if f, ok := v.(*Func); ok {
		return f.Call(ctx, args...)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func {
		return nil, fmt.Errorf("cannot call non-function value of type %T", v)
	}

	rt := rv.Type()
	if rt.IsVariadic() {
		if len(args) < rt.NumIn()-1 {
			return nil, fmt.Errorf("%s takes at least %d arguments but %d were given", rt, rt.NumIn()-1, len(args))
		}
	} else if rt.NumIn() != len(args) {
		return nil, fmt.Errorf("%s takes %d arguments but %d were given", rt, rt.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		var at reflect.Type
		if rt.IsVariadic() && i >= rt.NumIn()-1 {
			at = rt.In(rt.NumIn() - 1).Elem()
		} else {
			at = rt.In(i)
		}
		if a == nil {
			in[i] = reflect.Zero(at)
			continue
		}
		av := reflect.ValueOf(a)
		if av.Type() != at && av.Type().ConvertibleTo(at) {
			av = av.Convert(at)
		}
		in[i] = av
	}

	out := rv.Call(in)
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if err, ok := out[0].Interface().(error); ok {
			return nil, err
		}
		return out[0].Interface(), nil
	case 2:
		res := out[0].Interface()
		if err, ok := out[1].Interface().(error); ok && err != nil {
			return nil, err
		}
		return res, nil
	}
	return nil, fmt.Errorf("%s returns %d values, want at most 2", rt, len(out))
}

package argfn

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Values is the argument mapping threaded through a call chain: parameter
// name to value. Nodes never mutate a Values they received; they merge their
// additions into a copy.
type Values map[string]any

func (v Values) clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// merge returns a copy of v with more overlaid on top.
func (v Values) merge(more Values) Values {
	out := v.clone()
	for k, val := range more {
		out[k] = val
	}
	return out
}

// NamedArg pairs a parameter name with a value. It is how keyword arguments
// are written at call sites and how named entries are configured on
// decorators (named contexts, default functions, Init keyword arguments).
type NamedArg struct {
	Name  string
	Value any
}

// Named constructs a NamedArg.
func Named(name string, value any) NamedArg {
	return NamedArg{Name: name, Value: value}
}

// splitArgs separates a variadic call-site argument list into positional
// arguments and keyword arguments.
func splitArgs(args []any) ([]any, Values) {
	var pos []any
	kw := Values{}
	for _, a := range args {
		if na, ok := a.(NamedArg); ok {
			kw[na.Name] = na.Value
		} else {
			pos = append(pos, a)
		}
	}
	return pos, kw
}

type param struct {
	name   string
	def    any
	hasDef bool
}

// Func is a callable with an explicitly declared parameter list. Go cannot
// recover parameter names through reflection, so every collaborator the
// chain invokes (targets, validators, default functions, context providers,
// parametrization functions) is declared through one of the FnN, CtxFnN or
// CheckN constructors.
type Func struct {
	name   string
	params []param
	invoke func(ctx context.Context, vals Values) (any, error)
}

// FuncOption is a modifier for Func declarations.
type FuncOption func(*Func)

// WithName overrides the name reported in binding errors. The default is
// derived from the wrapped Go function's symbol name.
func WithName(name string) FuncOption {
	return func(f *Func) {
		f.name = name
	}
}

// Default declares a default value for a parameter, making it optional.
func Default(name string, value any) FuncOption {
	return func(f *Func) {
		for i := range f.params {
			if f.params[i].name == name {
				f.params[i].def = value
				f.params[i].hasDef = true
				return
			}
		}
		panic(fmt.Sprintf("argfn: Default(%q) does not match a declared parameter of %q", name, f.name))
	}
}

// Name returns the callable's name as used in binding errors.
func (f *Func) Name() string {
	return f.name
}

// Params returns the declared parameter names in order.
func (f *Func) Params() []string {
	out := make([]string, len(f.params))
	for i, p := range f.params {
		out[i] = p.name
	}
	return out
}

// Call binds args strictly against the declared parameters and invokes the
// function. Keyword arguments are written with Named.
func (f *Func) Call(ctx context.Context, args ...any) (any, error) {
	pos, kw := splitArgs(args)
	vals, err := bindArgs(f, pos, kw, false, false)
	if err != nil {
		return nil, err
	}
	return f.invoke(ctx, vals)
}

func newFunc(goFn any, paramNames []string, invoke func(context.Context, Values) (any, error), opts []FuncOption) *Func {
	f := &Func{
		name:   funcName(goFn),
		invoke: invoke,
	}
	for _, n := range paramNames {
		f.params = append(f.params, param{name: n})
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// argOf extracts the i-th declared parameter from a strictly bound mapping.
func argOf[T any](f *Func, i int, vals Values) (T, error) {
	name := f.params[i].name
	v, err := safeAssert[T](vals[name])
	if err != nil {
		var zero T
		return zero, fmt.Errorf("parameter %q of %q: %w", name, f.name, err)
	}
	return v, nil
}

func funcName(goFn any) string {
	rv := reflect.ValueOf(goFn)
	if rv.Kind() != reflect.Func {
		return fmt.Sprintf("%T", goFn)
	}
	pc := runtime.FuncForPC(rv.Pointer())
	if pc == nil {
		return "func"
	}
	name := pc.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// identityFunc builds the trivial single-parameter extractor backing Val.
func identityFunc(name string) *Func {
	return &Func{
		name:   name,
		params: []param{{name: name}},
		invoke: func(ctx context.Context, vals Values) (any, error) {
			return vals[name], nil
		},
	}
}

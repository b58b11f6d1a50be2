package argfn

//go:generate go run codegen/main.go -w

import "context"

func Fn0[R any](
	fn func() (R, error),
	opts ...FuncOption,
) *Func {
	var f *Func
	f = newFunc(fn, []string{}, func(ctx context.Context, vals Values) (any, error) {
		return fn()
	}, opts)
	return f
}

func Fn1[A1 any, R any](
	p1 string,
	fn func(A1) (R, error),
	opts ...FuncOption,
) *Func {
	var f *Func
	f = newFunc(fn, []string{p1}, func(ctx context.Context, vals Values) (any, error) {
		a1, err := argOf[A1](f, 0, vals)
		if err != nil {
			return nil, err
		}
		return fn(a1)
	}, opts)
	return f
}

func Fn2[A1 any, A2 any, R any](
	p1 string,
	p2 string,
	fn func(A1, A2) (R, error),
	opts ...FuncOption,
) *Func {
	var f *Func
	f = newFunc(fn, []string{p1, p2}, func(ctx context.Context, vals Values) (any, error) {
		a1, err := argOf[A1](f, 0, vals)
		if err != nil {
			return nil, err
		}
		a2, err := argOf[A2](f, 1, vals)
		if err != nil {
			return nil, err
		}
		return fn(a1, a2)
	}, opts)
	return f
}

func Fn3[A1 any, A2 any, A3 any, R any](
	p1 string,
	p2 string,
	p3 string,
	fn func(A1, A2, A3) (R, error),
	opts ...FuncOption,
) *Func {
	var f *Func
	f = newFunc(fn, []string{p1, p2, p3}, func(ctx context.Context, vals Values) (any, error) {
		a1, err := argOf[A1](f, 0, vals)
		if err != nil {
			return nil, err
		}
		a2, err := argOf[A2](f, 1, vals)
		if err != nil {
			return nil, err
		}
		a3, err := argOf[A3](f, 2, vals)
		if err != nil {
			return nil, err
		}
		return fn(a1, a2, a3)
	}, opts)
	return f
}

func Fn4[A1 any, A2 any, A3 any, A4 any, R any](
	p1 string,
	p2 string,
	p3 string,
	p4 string,
	fn func(A1, A2, A3, A4) (R, error),
	opts ...FuncOption,
) *Func {
	var f *Func
	f = newFunc(fn, []string{p1, p2, p3, p4}, func(ctx context.Context, vals Values) (any, error) {
		a1, err := argOf[A1](f, 0, vals)
		if err != nil {
			return nil, err
		}
		a2, err := argOf[A2](f, 1, vals)
		if err != nil {
			return nil, err
		}
		a3, err := argOf[A3](f, 2, vals)
		if err != nil {
			return nil, err
		}
		a4, err := argOf[A4](f, 3, vals)
		if err != nil {
			return nil, err
		}
		return fn(a1, a2, a3, a4)
	}, opts)
	return f
}

func Fn5[A1 any, A2 any, A3 any, A4 any, A5 any, R any](
	p1 string,
	p2 string,
	p3 string,
	p4 string,
	p5 string,
	fn func(A1, A2, A3, A4, A5) (R, error),
	opts ...FuncOption,
) *Func {
	var f *Func
	f = newFunc(fn, []string{p1, p2, p3, p4, p5}, func(ctx context.Context, vals Values) (any, error) {
		a1, err := argOf[A1](f, 0, vals)
		if err != nil {
			return nil, err
		}
		a2, err := argOf[A2](f, 1, vals)
		if err != nil {
			return nil, err
		}
		a3, err := argOf[A3](f, 2, vals)
		if err != nil {
			return nil, err
		}
		a4, err := argOf[A4](f, 3, vals)
		if err != nil {
			return nil, err
		}
		a5, err := argOf[A5](f, 4, vals)
		if err != nil {
			return nil, err
		}
		return fn(a1, a2, a3, a4, a5)
	}, opts)
	return f
}

func Fn6[A1 any, A2 any, A3 any, A4 any, A5 any, A6 any, R any](
	p1 string,
	p2 string,
	p3 string,
	p4 string,
	p5 string,
	p6 string,
	fn func(A1, A2, A3, A4, A5, A6) (R, error),
	opts ...FuncOption,
) *Func {
	var f *Func
	f = newFunc(fn, []string{p1, p2, p3, p4, p5, p6}, func(ctx context.Context, vals Values) (any, error) {
		a1, err := argOf[A1](f, 0, vals)
		if err != nil {
			return nil, err
		}
		a2, err := argOf[A2](f, 1, vals)
		if err != nil {
			return nil, err
		}
		a3, err := argOf[A3](f, 2, vals)
		if err != nil {
			return nil, err
		}
		a4, err := argOf[A4](f, 3, vals)
		if err != nil {
			return nil, err
		}
		a5, err := argOf[A5](f, 4, vals)
		if err != nil {
			return nil, err
		}
		a6, err := argOf[A6](f, 5, vals)
		if err != nil {
			return nil, err
		}
		return fn(a1, a2, a3, a4, a5, a6)
	}, opts)
	return f
}

func CtxFn0[R any](
	fn func(context.Context) (R, error),
	opts ...FuncOption,
) *Func {
	var f *Func
	f = newFunc(fn, []string{}, func(ctx context.Context, vals Values) (any, error) {
		return fn(ctx)
	}, opts)
	return f
}

func CtxFn1[A1 any, R any](
	p1 string,
	fn func(context.Context, A1) (R, error),
	opts ...FuncOption,
) *Func {
	var f *Func
	f = newFunc(fn, []string{p1}, func(ctx context.Context, vals Values) (any, error) {
		a1, err := argOf[A1](f, 0, vals)
		if err != nil {
			return nil, err
		}
		return fn(ctx, a1)
	}, opts)
	return f
}

func CtxFn2[A1 any, A2 any, R any](
	p1 string,
	p2 string,
	fn func(context.Context, A1, A2) (R, error),
	opts ...FuncOption,
) *Func {
	var f *Func
	f = newFunc(fn, []string{p1, p2}, func(ctx context.Context, vals Values) (any, error) {
		a1, err := argOf[A1](f, 0, vals)
		if err != nil {
			return nil, err
		}
		a2, err := argOf[A2](f, 1, vals)
		if err != nil {
			return nil, err
		}
		return fn(ctx, a1, a2)
	}, opts)
	return f
}

func CtxFn3[A1 any, A2 any, A3 any, R any](
	p1 string,
	p2 string,
	p3 string,
	fn func(context.Context, A1, A2, A3) (R, error),
	opts ...FuncOption,
) *Func {
	var f *Func
	f = newFunc(fn, []string{p1, p2, p3}, func(ctx context.Context, vals Values) (any, error) {
		a1, err := argOf[A1](f, 0, vals)
		if err != nil {
			return nil, err
		}
		a2, err := argOf[A2](f, 1, vals)
		if err != nil {
			return nil, err
		}
		a3, err := argOf[A3](f, 2, vals)
		if err != nil {
			return nil, err
		}
		return fn(ctx, a1, a2, a3)
	}, opts)
	return f
}

func Check1[A1 any](
	p1 string,
	fn func(A1) error,
	opts ...FuncOption,
) *Func {
	var f *Func
	f = newFunc(fn, []string{p1}, func(ctx context.Context, vals Values) (any, error) {
		a1, err := argOf[A1](f, 0, vals)
		if err != nil {
			return nil, err
		}
		return nil, fn(a1)
	}, opts)
	return f
}

func Check2[A1 any, A2 any](
	p1 string,
	p2 string,
	fn func(A1, A2) error,
	opts ...FuncOption,
) *Func {
	var f *Func
	f = newFunc(fn, []string{p1, p2}, func(ctx context.Context, vals Values) (any, error) {
		a1, err := argOf[A1](f, 0, vals)
		if err != nil {
			return nil, err
		}
		a2, err := argOf[A2](f, 1, vals)
		if err != nil {
			return nil, err
		}
		return nil, fn(a1, a2)
	}, opts)
	return f
}

func Check3[A1 any, A2 any, A3 any](
	p1 string,
	p2 string,
	p3 string,
	fn func(A1, A2, A3) error,
	opts ...FuncOption,
) *Func {
	var f *Func
	f = newFunc(fn, []string{p1, p2, p3}, func(ctx context.Context, vals Values) (any, error) {
		a1, err := argOf[A1](f, 0, vals)
		if err != nil {
			return nil, err
		}
		a2, err := argOf[A2](f, 1, vals)
		if err != nil {
			return nil, err
		}
		a3, err := argOf[A3](f, 2, vals)
		if err != nil {
			return nil, err
		}
		return nil, fn(a1, a2, a3)
	}, opts)
	return f
}

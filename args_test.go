package argfn

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upperDefault(name string) *Lazy {
	return Val(name).Attr("Upper").Call()
}

func TestBasicDefaultsDecorator(t *testing.T) {
	ctx := context.Background()

	target := Fn2("arg", "kwarg", func(arg chainString, kwarg string) (string, error) {
		return fmt.Sprintf("%s/%s", arg, kwarg), nil
	}, Default("kwarg", "none"))

	decorated := Wrap(target, Defaults(Named("arg", upperDefault("arg"))))

	got, err := decorated.Call(ctx, chainString("to_upper"))
	require.NoError(t, err)
	assert.Equal(t, "TO_UPPER/none", got)
}

func TestDependentDefaultsDecorator(t *testing.T) {
	ctx := context.Background()

	target := Fn3("arg1", "arg2", "arg3", func(arg1 chainString, arg2 chainString, arg3 string) (string, error) {
		return fmt.Sprintf("%s/%s/%s", arg1, arg2, arg3), nil
	})

	fromExtra := Fn1("extra", func(extra string) (string, error) {
		return extra, nil
	})

	decorated := Wrap(target, Defaults(
		Named("arg1", upperDefault("arg2")),
		Named("arg3", fromExtra),
	))

	// "extra" is not declared by the target; the entry bind still admits it
	// for the default functions to consume.
	got, err := decorated.Call(ctx,
		Named("arg2", chainString("arg2")),
		Named("extra", "extra"),
	)
	require.NoError(t, err)
	assert.Equal(t, "ARG2/arg2/extra", got)
}

func TestDefaultsSeeEarlierDefaults(t *testing.T) {
	ctx := context.Background()

	target := Fn2("a", "b", func(a, b int) (int, error) {
		return a + b, nil
	})

	decorated := Wrap(target, Defaults(
		Named("a", Fn1("seed", func(seed int) (int, error) { return seed * 10, nil })),
		Named("b", Fn1("a", func(a int) (int, error) { return a + 1, nil })),
	))

	got, err := decorated.Call(ctx, Named("seed", 2))
	require.NoError(t, err)
	assert.Equal(t, 41, got)
}

func TestBasicValidatorsDecorator(t *testing.T) {
	ctx := context.Background()

	passes := Check1("arg", func(arg string) error { return nil })
	fails := Check1("arg", func(arg string) error { return errors.New("rejected") })

	target := Fn1("arg", func(arg string) (string, error) {
		return arg, nil
	})

	passing := Wrap(target, Validators(passes))
	got, err := passing.Call(ctx, "value")
	require.NoError(t, err)
	assert.Equal(t, "value", got)

	failing := Wrap(target, Validators(passes, fails))
	_, err = failing.Call(ctx, "value")
	assert.EqualError(t, err, "rejected")
}

func TestValidatorsWithDefaults(t *testing.T) {
	ctx := context.Background()

	checkUpperInvalid := Check1("arg1", func(arg1 chainString) error {
		if arg1 == "UPPER" {
			return errors.New("UPPER is invalid")
		}
		return nil
	})

	target := Fn1("arg1", func(arg1 chainString) (chainString, error) {
		return arg1, nil
	})

	// Defaults declared outer run before inner validators.
	decorated := Wrap(target,
		Defaults(Named("arg1", upperDefault("arg1"))),
		Validators(checkUpperInvalid),
	)

	_, err := decorated.Call(ctx, Named("arg1", chainString("upper")))
	assert.EqualError(t, err, "UPPER is invalid")

	got, err := decorated.Call(ctx, Named("arg1", chainString("lower")))
	require.NoError(t, err)
	assert.Equal(t, chainString("LOWER"), got)
}

func TestCompose(t *testing.T) {
	ctx := context.Background()

	fails := Check1("arg1", func(arg1 chainString) error {
		if arg1 == "UPPER" {
			return errors.New("UPPER is invalid")
		}
		return nil
	})

	target := Fn1("arg1", func(arg1 chainString) (chainString, error) {
		return arg1, nil
	})

	runner := Compose(
		Defaults(Named("arg1", upperDefault("arg1"))),
		Validators(fails),
	)

	_, err := runner(New(target)).Call(ctx, Named("arg1", chainString("upper")))
	assert.EqualError(t, err, "UPPER is invalid")

	got, err := runner(New(target)).Call(ctx, Named("arg1", chainString("lower")))
	require.NoError(t, err)
	assert.Equal(t, chainString("LOWER"), got)

	// Composing nothing still yields a callable chain.
	got, err = Wrap(target).Call(ctx, chainString("hello"))
	require.NoError(t, err)
	assert.Equal(t, chainString("hello"), got)
}

func TestBasicContextsDecorator(t *testing.T) {
	ctx := context.Background()

	var logs []string
	loggingContext := Fn0(func() (*Scoped, error) {
		logs = append(logs, "starting")
		return NewScoped(nil, func() error {
			logs = append(logs, "stopping")
			return nil
		}), nil
	})

	target := Fn2("arg", "kwarg", func(arg, kwarg string) (string, error) {
		return arg + kwarg, nil
	}, Default("kwarg", ""))

	decorated := Wrap(target, Contexts(loggingContext))

	got, err := decorated.Call(ctx, "arg", Named("kwarg", "kwarg"))
	require.NoError(t, err)
	assert.Equal(t, "argkwarg", got)
	assert.Equal(t, []string{"starting", "stopping"}, logs)
}

func TestContextsWithArguments(t *testing.T) {
	ctx := context.Background()

	var logs []string
	loggingContext := Fn1("value_to_log", func(valueToLog string) (*Scoped, error) {
		logs = append(logs, "starting "+valueToLog)
		return NewScoped(nil, func() error {
			logs = append(logs, "stopping "+valueToLog)
			return nil
		}), nil
	})

	target := Fn2("arg", "value_to_log", func(arg, valueToLog string) (string, error) {
		return arg, nil
	}, Default("value_to_log", "none"))

	decorated := Wrap(target, Contexts(loggingContext))

	_, err := decorated.Call(ctx, "arg", Named("value_to_log", "value"))
	require.NoError(t, err)
	assert.Equal(t, []string{"starting value", "stopping value"}, logs)

	logs = nil
	_, err = decorated.Call(ctx, "arg")
	require.NoError(t, err)
	assert.Equal(t, []string{"starting none", "stopping none"}, logs)
}

func TestNamedContextsDecorator(t *testing.T) {
	ctx := context.Background()

	namedContext := Fn0(func() (string, error) {
		return "value", nil
	})

	target := Fn1("arg", func(arg string) (string, error) {
		return arg, nil
	})

	decorated := Wrap(target, Contexts(Named("arg", namedContext)))

	got, err := decorated.Call(ctx)
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}

func TestContextsSeeEarlierResources(t *testing.T) {
	ctx := context.Background()

	first := Fn0(func() (string, error) { return "conn", nil })
	second := Fn1("conn", func(conn string) (string, error) {
		return conn + "/tx", nil
	})

	target := Fn1("tx", func(tx string) (string, error) {
		return tx, nil
	})

	decorated := Wrap(target, Contexts(
		Named("conn", first),
		Named("tx", second),
	))

	got, err := decorated.Call(ctx)
	require.NoError(t, err)
	assert.Equal(t, "conn/tx", got)
}

func TestContextReleaseOrderOnError(t *testing.T) {
	ctx := context.Background()

	var released []string
	provider := func(name string) *Func {
		return Fn0(func() (*Scoped, error) {
			return NewScoped(name, func() error {
				released = append(released, name)
				return nil
			}), nil
		}, WithName(name))
	}

	boom := errors.New("boom")
	target := Fn0(func() (any, error) {
		return nil, boom
	})

	decorated := Wrap(target, Contexts(
		Named("outer", provider("outer")),
		Named("inner", provider("inner")),
	))

	_, err := decorated.Call(ctx)
	assert.ErrorIs(t, err, boom)
	// Released exactly once each, most recently acquired first.
	assert.Equal(t, []string{"inner", "outer"}, released)
}

func TestParametrize(t *testing.T) {
	ctx := context.Background()

	double := Wrap(
		Fn1("val", func(val int) (int, error) { return val * 2, nil }),
		Parametrize("val", Val("vals")),
	)

	got, err := double.Call(ctx, Named("vals", []int{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, []any{2, 4, 6}, got)

	// Without the parametrization source the chain cannot bind.
	_, err = double.Call(ctx, Named("val", 1))
	assert.True(t, IsBindError(err))

	// Partial runs skip the parametrization and run once, unparametrized.
	got, err = double.Partial().Call(ctx, Named("val", 1))
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestParametrizeCallContext(t *testing.T) {
	ctx := context.Background()

	var argNames []string
	var argVals []any
	var argIndexes []int
	gather := CtxFn0(func(ctx context.Context) (any, error) {
		c := CurrentCall(ctx)
		argNames = append(argNames, c.ParametrizeArg())
		argVals = append(argVals, c.ParametrizeVal())
		argIndexes = append(argIndexes, c.ParametrizeIndex())
		return nil, nil
	})

	double := Wrap(
		Fn1("val", func(val int) (int, error) { return val * 2, nil }),
		Parametrize("val", Val("vals")),
		Contexts(gather),
	)

	got, err := double.Call(ctx, Named("vals", []int{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, []any{2, 4, 6}, got)
	assert.Equal(t, []string{"val", "val", "val"}, argNames)
	assert.Equal(t, []any{1, 2, 3}, argVals)
	assert.Equal(t, []int{0, 1, 2}, argIndexes)
}

func TestMissingRequiredParameter(t *testing.T) {
	ctx := context.Background()

	target := Fn2("a", "b", func(a, b string) (string, error) {
		return a + b, nil
	})

	_, err := Wrap(target).Call(ctx, "only-a")
	var be *BindError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, []string{"b"}, be.Missing)
}

func TestPreOnlyInterface(t *testing.T) {
	ctx := context.Background()

	invoked := 0
	validated := 0

	passes := Fn0(func() (any, error) {
		validated++
		return nil, nil
	})

	target := Fn1("arg", func(arg string) (string, error) {
		invoked++
		return arg, nil
	})

	decorated := Wrap(target, Validators(passes))

	got, err := decorated.PreOnly().Call(ctx, "value")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 1, validated)
	assert.Equal(t, 0, invoked)

	// The unmodified chain still invokes the target.
	_, err = decorated.Call(ctx, "value")
	require.NoError(t, err)
	assert.Equal(t, 1, invoked)
}

func TestNestedPartialValidatorsInterface(t *testing.T) {
	ctx := context.Background()

	rejected := errors.New("arg2 rejected")
	passes := Check1("arg1", func(arg1 string) error { return nil })
	fails := Check1("arg2", func(arg2 string) error { return rejected })

	target := Fn2("arg1", "arg2", func(arg1, arg2 string) (string, error) {
		return arg1 + arg2, nil
	})

	decorated := Validators(fails)(Validators(passes)(New(target)))

	_, err := decorated.PreOnly().Call(ctx, "arg1", "arg2")
	assert.ErrorIs(t, err, rejected)

	// Partial mode runs only the validators that can bind.
	_, err = decorated.Partial().PreOnly().Call(ctx, Named("arg2", "arg2"))
	assert.ErrorIs(t, err, rejected)

	_, err = decorated.Partial().PreOnly().Call(ctx, Named("arg1", "arg1"))
	require.NoError(t, err)

	// Outside partial mode, a validator that cannot bind is a bind error.
	_, err = decorated.PreOnly().Call(ctx, Named("arg1", "arg1"))
	assert.True(t, IsBindError(err))
}

func TestFnAccessorBypassesChain(t *testing.T) {
	ctx := context.Background()

	fails := Fn0(func() (any, error) {
		return nil, errors.New("never valid")
	})

	target := Fn2("arg", "kwarg", func(arg, kwarg string) (string, error) {
		return arg + kwarg, nil
	}, Default("kwarg", ""))

	decorated := Wrap(target, Validators(fails))

	_, err := decorated.Call(ctx, "arg")
	assert.Error(t, err)

	got, err := decorated.Fn().Call(ctx, "arg", Named("kwarg", "kwarg"))
	require.NoError(t, err)
	assert.Equal(t, "argkwarg", got)
}

func TestReentrantCallPanics(t *testing.T) {
	ctx := context.Background()

	var decorated *Args
	target := CtxFn0(func(ctx context.Context) (any, error) {
		// A chain must not be re-entered with a ctx that already carries
		// the running invocation.
		return decorated.Call(ctx)
	})
	decorated = Wrap(target)

	assert.Panics(t, func() {
		decorated.Call(ctx) //nolint:errcheck
	})
}

func TestCurrentCallOutsideInvocationPanics(t *testing.T) {
	assert.Panics(t, func() {
		CurrentCall(context.Background())
	})
}

func TestChainIntrospection(t *testing.T) {
	target := Fn1("arg", func(arg string) (string, error) {
		return arg, nil
	}, WithName("target"))

	decorated := Wrap(target,
		Defaults(Named("arg", Val("other"))),
		Validators(Check1("arg", func(arg string) error { return nil })),
	)

	chain := decorated.Chain()
	require.Len(t, chain, 3)
	assert.Equal(t, OpDefaults, chain[0].Kind)
	assert.Equal(t, OpValidators, chain[1].Kind)
	assert.Equal(t, OpCall, chain[2].Kind)
	assert.Equal(t, "target", chain[2].Detail)
}

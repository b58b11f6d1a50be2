// Package argfn attaches declarative argument-processing behaviors to
// functions: validation, computed defaults, scoped resources and
// parametrized fan-out, composed as a chain around an unmodified target.
//
// # Overview
//
// Argfn organizes code around three core concepts:
//
//  1. Declared callables: functions with an explicit parameter-name list
//  2. Lazy values: deferred computations evaluated against call arguments
//  3. Decorated chains: ordered behavior nodes wrapped around a target
//
// # Basic Usage
//
// Declare the target and wrap it:
//
//	greet := argfn.Fn1("name", func(name string) (string, error) {
//	    return "hello " + name, nil
//	})
//
//	decorated := argfn.Wrap(greet,
//	    argfn.Defaults(argfn.Named("name", argfn.Val("name").Attr("Upper").Call())),
//	)
//
//	out, err := decorated.Call(ctx, argfn.Named("name", upperable("bob")))
//
// Each behavior's collaborators are ordinary declared callables whose
// parameter names are matched against the accumulated argument mapping;
// entries a collaborator does not declare are ignored.
//
// # Lazy Values
//
// Lazy values defer work until call time and chain recorded operations:
//
//	// the value bound to "email", defaulting when absent
//	argfn.Val("email", argfn.Fallback("nobody@example.com"))
//
//	// a deferred call, bound against the mapping at load time
//	argfn.Defer(argfn.Fn1("user", lookupProfile))
//
//	// the first candidate that binds
//	argfn.First("profile", "user", argfn.Fallback("anonymous"))
//
//	// deferred construction, arguments may themselves be lazy
//	argfn.Init(newReport, argfn.Named("owner", argfn.Val("user")))
//
// Recorded steps replay against the loaded result:
//
//	argfn.Val("name").Attr("Upper").Call()  // name.Upper() at load time
//
// # Chain Behaviors
//
// Decorators stack outer to inner; every node sees the arguments
// accumulated by the nodes before it:
//
//	runner := argfn.Wrap(target,
//	    argfn.Defaults(argfn.Named("email", normalizeEmail)),
//	    argfn.Validators(checkEmail),
//	    argfn.Contexts(argfn.Named("tx", beginTx)),
//	    argfn.Parametrize("region", argfn.Val("regions")),
//	)
//
// A context provider may return *Scoped to pair its resource with a release
// step; releases run in reverse acquisition order on every exit path.
//
// # Run Modes
//
// Partial mode skips any validator, context, default or parametrization
// whose arguments cannot yet be bound, allowing pre-validation on
// incomplete argument sets. Pre-only mode runs every node but never invokes
// the target:
//
//	runner.Partial().Call(ctx, argfn.Named("email", "x@y.z"))
//	runner.PreOnly().Call(ctx, "full", "argument", "set")
//
// The terminal node always re-binds strictly, so a missing required
// parameter surfaces as a *BindError no matter what ran before it.
//
// # Call Context
//
// Every top-level invocation carries a Call on its context.Context:
// mode flags plus the current parametrization snapshot. Collaborators
// declared with CtxFnN receive the ctx and can inspect it:
//
//	probe := argfn.CtxFn0(func(ctx context.Context) (any, error) {
//	    c := argfn.CurrentCall(ctx)
//	    fmt.Println(c.ParametrizeIndex(), c.ParametrizeVal())
//	    return nil, nil
//	})
//
// A chain must not be re-entered from inside a running invocation; doing so
// panics rather than deadlocking or nesting state.
//
// # Extensions
//
// Extensions observe and wrap every chain node, middleware style:
//
//	type timing struct{ argfn.BaseExtension }
//
//	func (e *timing) Wrap(ctx context.Context, next func() (any, error), op *argfn.Operation) (any, error) {
//	    start := time.Now()
//	    defer func() { log.Printf("%s took %v", op.Kind, time.Since(start)) }()
//	    return next()
//	}
//
//	runner := argfn.Wrap(target, argfn.Use(&timing{}), argfn.Validators(check))
//
// # Thread Safety
//
// Chains and lazy values are built once and are safe for concurrent calls
// as long as construction has finished: all per-invocation state lives on
// the Call carried by each invocation's ctx, so independent goroutines can
// run independent top-level invocations of the same chain concurrently.
package argfn

package argfn

import "context"

// Extension provides hooks into chain execution. Extensions wrap every node
// of a decorated chain middleware-style and observe errors as they surface.
type Extension interface {
	// Name returns the extension's name
	Name() string

	// Order determines extension execution order (lower = earlier)
	Order() int

	// Wrap intercepts one chain-node execution
	Wrap(ctx context.Context, next func() (any, error), op *Operation) (any, error)

	// OnError observes an error surfacing from a chain node
	OnError(err error, op *Operation)
}

// BaseExtension provides default implementations for Extension methods
type BaseExtension struct {
	name string
}

// NewBaseExtension creates a new base extension with the given name
func NewBaseExtension(name string) BaseExtension {
	return BaseExtension{name: name}
}

func (e *BaseExtension) Name() string {
	return e.name
}

func (e *BaseExtension) Order() int {
	return 100
}

func (e *BaseExtension) Wrap(ctx context.Context, next func() (any, error), op *Operation) (any, error) {
	return next()
}

func (e *BaseExtension) OnError(err error, op *Operation) {
}

// Operation describes the chain node being executed
type Operation struct {
	Kind OperationKind
	Fn   string
	Call *Call
}

// OperationKind represents the type of chain node
type OperationKind string

const (
	// OpValidators indicates a validators node
	OpValidators OperationKind = "validators"
	// OpContexts indicates a scoped-contexts node
	OpContexts OperationKind = "contexts"
	// OpDefaults indicates a defaults node
	OpDefaults OperationKind = "defaults"
	// OpParametrize indicates a parametrize node
	OpParametrize OperationKind = "parametrize"
	// OpCall indicates the terminal invocation of the wrapped target
	OpCall OperationKind = "call"
)

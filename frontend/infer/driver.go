package infer

import (
	"log/slog"
	"slices"

	"github.com/cottand/ileinfer/frontend/ast"
	"github.com/cottand/ileinfer/frontend/constraint"
	"github.com/cottand/ileinfer/frontend/ilerr"
	"github.com/cottand/ileinfer/frontend/types"
	"github.com/cottand/ileinfer/internal/log"
	"github.com/cottand/ileinfer/util"
	"github.com/hashicorp/go-set/v3"
)

// Config decides how Check infers types
type Config struct {
	Strategy Strategy
	// Builtins returns the bindings of the root context,
	// drawing any variable it needs from the supply
	Builtins func(supply *types.Supply) map[string]types.Scheme
	Supply   *types.Supply
	Logger   *slog.Logger
}

type Option func(*Config)

func WithStrategy(s Strategy) Option {
	return func(c *Config) { c.Strategy = s }
}

func WithBuiltins(builtins func(*types.Supply) map[string]types.Scheme) Option {
	return func(c *Config) { c.Builtins = builtins }
}

func WithSupply(supply *types.Supply) Option {
	return func(c *Config) { c.Supply = supply }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

func newConfig(opts ...Option) Config {
	config := Config{
		Strategy: ConstraintStrategy,
		Builtins: DefaultBuiltins,
		Supply:   types.DefaultSupply,
		Logger:   log.DefaultLogger.With("section", "infer/driver"),
	}
	for _, opt := range opts {
		opt(&config)
	}
	return config
}

// Result is the outcome of inferring the types of a whole program
type Result struct {
	// Type is the generalized type of the root expression
	Type types.Scheme
	// Typed is the root expression with every type fully resolved.
	// It is nil when there are Errors
	Typed *TypedExpr
	// Substitution solves Constraints
	Substitution types.Substitution
	Constraints  constraint.Set
	Errors       *ilerr.Errors
}

func (r *Result) OK() bool {
	return !r.Errors.HasError()
}

// Check infers the type of root in a root context made of the configured builtins.
//
// Diagnostics found while collecting constraints are always reported. Solving
// stops at the first constraint that cannot be solved, in which case no types
// are resolved and Result.Typed is nil.
func Check(root ast.Expr, opts ...Option) *Result {
	config := newConfig(opts...)
	logger := config.Logger

	ctx := NewRootContext(config.Builtins(config.Supply))
	collector := NewCollector(config.Supply, config.Strategy)
	typed := collector.SynthesizeTyped(ctx, root)

	result := &Result{
		Constraints: collector.Constraints(),
		Errors:      (&ilerr.Errors{}).Merge(collector.Errors()),
	}
	logger.Debug("collected constraints",
		"strategy", config.Strategy.Name(),
		"count", result.Constraints.Len(),
		"diagnostics", result.Errors.Len())

	sub, err := collector.Solution()
	if err != nil {
		result.Errors = result.Errors.With(asIleError(err, root))
		logger.Debug("solving failed", "errors", result.Errors)
		return result
	}
	result.Substitution = sub

	applied := typed.Apply(sub)
	result.Type = Generalize(ctx.Apply(sub), applied.Type)

	result.Errors = result.Errors.With(collector.checkObligations(sub)...)
	result.Errors = result.Errors.With(collector.checkResolved(applied, sub, result.Type)...)

	if !result.Errors.HasError() {
		result.Typed = applied
	}
	logger.Debug("checked", "type", result.Type.String(), "errors", result.Errors)
	return result
}

func asIleError(err error, at ast.Positioner) ilerr.IleError {
	if ileErr, ok := err.(ilerr.IleError); ok {
		return ileErr
	}
	return ilerr.New(ilerr.Unclassified{From: err, Positioner: at})
}

// checkObligations reports the operands whose solved type an operator
// does not accept. Operands whose type is still unknown are accepted
func (c *Collector) checkObligations(sub types.Substitution) []ilerr.IleError {
	var errs []ilerr.IleError
	for _, ob := range c.obligations {
		t := sub.Apply(ob.t)
		if _, ok := t.(types.TypeVar); ok {
			continue
		}
		allowed := slices.ContainsFunc(ob.allowed, func(a types.Type) bool {
			return types.Equal(a, t)
		})
		if !allowed {
			errs = append(errs, ilerr.New(ilerr.NewNotNumeric{
				Positioner: ob.at,
				Operator:   ob.op,
				Type:       t,
				Allowed:    ob.allowed,
			}))
		}
	}
	return errs
}

// checkResolved reports every expression of typed whose type mentions a variable that
// is not accounted for by a scheme, nor by an expression that already has a diagnostic.
// Each variable is reported once, at the first expression it appears in
func (c *Collector) checkResolved(typed *TypedExpr, sub types.Substitution, root types.Scheme) []ilerr.IleError {
	allowed := util.SetFromSeq(util.ConcatIter(c.quantified.Items(), slices.Values(root.Vars)), c.quantified.Size())
	for v := range c.placeholders.Items() {
		allowed.InsertSet(types.FreeTypeVars(sub.Apply(v)))
	}

	reported := set.New[types.TypeVar](0)
	var errs []ilerr.IleError
	typed.Walk(func(node *TypedExpr) bool {
		unresolved := types.FreeTypeVars(node.Type).Difference(allowed)
		if unresolved.Empty() || unresolved.Subset(reported) {
			return true
		}
		reported.InsertSet(unresolved)
		errs = append(errs, ilerr.New(ilerr.NewUnresolvedType{
			Positioner:  node.Expr,
			Description: node.Expr.Describe(),
			Type:        node.Type,
		}))
		return true
	})
	return errs
}

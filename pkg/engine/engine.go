// Package engine coordinates the full configuration pipeline: resolve the
// target type, validate the payload against the operation's schema, then bind
// the merged values onto the live target. Each stage is injectable; the
// constructor wires built-in implementations over the supplied host so
// callers can start with a single call.
package engine

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-propbind/pkg/bind"
	"github.com/goliatone/go-propbind/pkg/coerce"
	"github.com/goliatone/go-propbind/pkg/model"
	"github.com/goliatone/go-propbind/pkg/resolve"
	"github.com/goliatone/go-propbind/pkg/schema"
)

// Host is the surface the engine needs from the embedding application: a
// type universe and a mutator. Hosts that also implement
// model.ReferenceResolver or model.LayerProvider get reference and
// layer-mask coercion wired automatically.
type Host interface {
	model.Universe
	model.Mutator
}

// Option customises the engine configuration.
type Option func(*Engine)

// WithSchemas installs the operation schema registry consulted before
// binding.
func WithSchemas(registry *schema.Registry) Option {
	return func(e *Engine) { e.schemas = registry }
}

// WithResolver overrides the type resolver.
func WithResolver(r *resolve.Resolver) Option {
	return func(e *Engine) { e.resolver = r }
}

// WithValidator overrides the payload validator.
func WithValidator(v *schema.Validator) Option {
	return func(e *Engine) { e.validator = v }
}

// WithBinder overrides the property binder.
func WithBinder(b *bind.Binder) Option {
	return func(e *Engine) { e.binder = b }
}

// WithCoercer overrides the coercer shared by the default validator and
// binder. Ignored when both are injected explicitly.
func WithCoercer(c *coerce.Coercer) Option {
	return func(e *Engine) { e.coercer = c }
}

// WithLogger installs a structured logger. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// Engine validates operation payloads and applies them to live targets.
type Engine struct {
	host      Host
	schemas   *schema.Registry
	resolver  *resolve.Resolver
	validator *schema.Validator
	binder    *bind.Binder
	coercer   *coerce.Coercer
	log       *zap.Logger
}

// New constructs an engine over host. Missing collaborators are built from
// the host: the coercer picks up reference resolution and layers when the
// host provides them, the resolver caches host descriptors, and the
// validator and binder share the coercer.
func New(host Host, options ...Option) *Engine {
	e := &Engine{
		host: host,
		log:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	e.applyDefaults()
	return e
}

func (e *Engine) applyDefaults() {
	if e.schemas == nil {
		e.schemas = schema.NewRegistry()
	}
	if e.coercer == nil {
		opts := []coerce.Option{
			coerce.WithTypeLookup(e.host.Describe),
		}
		if refs, ok := e.host.(model.ReferenceResolver); ok {
			opts = append(opts, coerce.WithReferenceResolver(refs))
		}
		if layers, ok := e.host.(model.LayerProvider); ok {
			opts = append(opts, coerce.WithLayerProvider(layers))
		}
		e.coercer = coerce.New(opts...)
	}
	if e.resolver == nil {
		e.resolver = resolve.New(e.host)
	}
	if e.validator == nil {
		e.validator = schema.NewValidator(schema.WithCoercer(e.coercer))
	}
	if e.binder == nil {
		e.binder = bind.New(e.host, e.host, bind.WithCoercer(e.coercer))
	}
}

// Request describes one apply: the operation whose schema governs the
// payload, the canonical or aliased target type name, the live instance, and
// the raw payload values.
type Request struct {
	Operation  string
	TargetType string
	Target     any
	Payload    map[string]any
}

// BindFailure records one member assignment that did not happen.
type BindFailure struct {
	Field string
	Err   error
}

// Report is the outcome of one apply. Validation issues and bind failures
// accumulate here; Apply returns a non-nil error only for infrastructure
// problems such as an unknown operation or an unresolvable target type.
type Report struct {
	Operation string
	Type      string
	Result    schema.Result
	Applied   []string
	Failures  []BindFailure
}

// OK reports whether validation passed and every field bound.
func (r Report) OK() bool {
	return r.Result.Valid && len(r.Failures) == 0
}

// Apply validates req.Payload against the operation's schema and binds the
// merged values onto req.Target in schema declaration order. Validation
// failure stops before any assignment; bind failures are per-field and do
// not stop the remaining assignments.
func (e *Engine) Apply(ctx context.Context, req Request) (Report, error) {
	if ctx == nil {
		return Report{}, errors.New("engine: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	if req.Operation == "" {
		return Report{}, errors.New("engine: operation is required")
	}
	if req.TargetType == "" {
		return Report{}, errors.New("engine: target type is required")
	}

	s, err := e.schemas.Get(req.Operation)
	if err != nil {
		return Report{}, fmt.Errorf("engine: %w", err)
	}
	desc, err := e.resolver.Resolve(req.TargetType)
	if err != nil {
		return Report{}, fmt.Errorf("engine: %w", err)
	}

	report := Report{Operation: s.Operation, Type: desc.Name}
	report.Result = e.validator.Validate(req.Payload, s)
	if !report.Result.Valid {
		e.log.Warn("payload rejected",
			zap.String("operation", s.Operation),
			zap.String("type", desc.Name),
			zap.Strings("issues", report.Result.Messages()))
		return report, nil
	}

	target := model.Target{Type: desc.Name, Instance: req.Target}
	for _, entry := range s.Entries {
		value, ok := report.Result.Merged[entry.Name]
		if !ok {
			continue
		}
		if err := e.binder.Bind(target, entry.Name, value); err != nil {
			e.log.Warn("bind failed",
				zap.String("operation", s.Operation),
				zap.String("field", entry.Name),
				zap.Error(err))
			report.Failures = append(report.Failures, BindFailure{Field: entry.Name, Err: err})
			continue
		}
		e.log.Debug("bound",
			zap.String("operation", s.Operation),
			zap.String("field", entry.Name))
		report.Applied = append(report.Applied, entry.Name)
	}

	e.log.Info("apply finished",
		zap.String("operation", s.Operation),
		zap.String("type", desc.Name),
		zap.Int("applied", len(report.Applied)),
		zap.Int("failed", len(report.Failures)))
	return report, nil
}

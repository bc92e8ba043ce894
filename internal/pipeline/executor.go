package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/wolfeidau/gwctl/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/wolfeidau/gwctl/internal/pipeline"

// Operation binds a Descriptor to the functions that build its request, call
// the remote client and project the response. C is the client type, Req and
// Resp the SDK request and response values.
type Operation[C, Req, Resp any] struct {
	Descriptor Descriptor

	// PreLoad may rewrite the bound parameters before transfer.
	PreLoad func(Params) (Params, error)
	// PostLoad may adjust the populated context before the request is built.
	PostLoad func(*ExecContext) error

	Build func(*ExecContext) (*Req, error)
	Call  func(context.Context, C, *Req) (*Resp, error)

	// Project overrides the payload the declared policy would emit.
	Project func(*ExecContext, *Resp) (any, error)
	// Notes extracts side channel messages from the response.
	Notes func(*Resp) []string
}

// Recorder keeps completed outcomes for later introspection.
type Recorder interface {
	Record(ctx context.Context, outcome *Outcome) error
}

// Executor runs operations through the pipeline. One executor serves many
// invocations, one at a time.
type Executor struct {
	confirmer Confirmer
	threshold Impact
	settings  Settings
	logger    zerolog.Logger
	recorder  Recorder
	metrics   *telemetry.Metrics
	tracer    trace.Tracer
}

// ExecutorOption configures optional executor dependencies.
type ExecutorOption func(*Executor)

// WithConfirmer sets the collaborator asked before destructive operations.
func WithConfirmer(c Confirmer) ExecutorOption {
	return func(e *Executor) { e.confirmer = c }
}

// WithThreshold sets the lowest impact that triggers confirmation.
func WithThreshold(i Impact) ExecutorOption {
	return func(e *Executor) { e.threshold = i }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) ExecutorOption {
	return func(e *Executor) { e.logger = l }
}

// WithRecorder sets where outcomes are recorded.
func WithRecorder(r Recorder) ExecutorOption {
	return func(e *Executor) { e.recorder = r }
}

// WithMetrics sets the metric instruments.
func WithMetrics(m *telemetry.Metrics) ExecutorOption {
	return func(e *Executor) { e.metrics = m }
}

// NewExecutor creates an executor for the given ambient settings. Without a
// confirmer every destructive operation is declined unless forced.
func NewExecutor(settings Settings, opts ...ExecutorOption) *Executor {
	e := &Executor{
		confirmer: &AutoConfirmer{Answer: false},
		threshold: ImpactLow,
		settings:  settings,
		logger:    zerolog.Nop(),
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Settings returns the ambient settings handed to every invocation.
func (e *Executor) Settings() Settings {
	return e.settings
}

// Execute runs op once with params. It returns nil when a destructive
// operation is declined; otherwise the returned Outcome holds either the
// success payload or the error, never both. At most one remote call is made.
func Execute[C, Req, Resp any](
	ctx context.Context,
	e *Executor,
	op Operation[C, Req, Resp],
	handle *Handle[C],
	params Params,
	force bool,
) *Outcome {
	desc := op.Descriptor
	log := e.logger.With().Str("operation", desc.Name).Logger()

	// Step 1: confirmation gate, before any state is built.
	if desc.Destructive && desc.ConfirmImpact() >= e.threshold {
		if !e.confirmer.Confirm(desc.Summary(params), force) {
			log.Debug().Msg("confirmation declined")
			if e.metrics != nil {
				e.metrics.DeclinedTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", desc.Name)))
			}
			return nil
		}
	}

	ctx, span := e.tracer.Start(ctx, desc.Name, trace.WithAttributes(
		attribute.String("gwctl.operation", desc.Name),
		attribute.Bool("gwctl.destructive", desc.Destructive),
		attribute.String("cloud.region", e.settings.Region),
	))
	defer span.End()

	started := time.Now()
	outcome := run(ctx, e, op, handle, params, log)
	outcome.StartedAt = started
	outcome.Duration = time.Since(started)

	attrs := metric.WithAttributes(attribute.String("operation", desc.Name))
	if e.metrics != nil {
		e.metrics.InvocationsTotal.Add(ctx, 1, attrs)
		e.metrics.DispatchDuration.Record(ctx, float64(outcome.Duration)/float64(time.Millisecond), attrs)
	}

	if outcome.Failed() {
		span.RecordError(outcome.Err)
		span.SetStatus(codes.Error, outcome.Err.Error())

		var transportErr *TransportError
		isTransport := errors.As(outcome.Err, &transportErr)

		if e.metrics != nil {
			e.metrics.FailuresTotal.Add(ctx, 1, attrs)
			if isTransport {
				e.metrics.TransportErrorsTotal.Add(ctx, 1, attrs)
			}
		}

		log.Warn().Err(outcome.Err).Bool("transport", isTransport).Dur("duration", outcome.Duration).Msg("operation failed")
	} else {
		log.Info().Dur("duration", outcome.Duration).Msg("operation completed")
	}

	if e.recorder != nil {
		if err := e.recorder.Record(ctx, outcome); err != nil {
			log.Warn().Err(err).Msg("failed to record outcome")
		}
	}

	return outcome
}

// run performs steps 2 to 8. Every error and panic ends in a Failure.
func run[C, Req, Resp any](
	ctx context.Context,
	e *Executor,
	op Operation[C, Req, Resp],
	handle *Handle[C],
	params Params,
	log zerolog.Logger,
) (outcome *Outcome) {
	name := op.Descriptor.Name

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			outcome = failure(name, &PanicError{Operation: name, Value: r})
		}
	}()

	// Step 2: context construction with ambient settings.
	ec := newExecContext(e.settings)

	// Step 3: pre-load hook on a copy of the raw parameters.
	bound := params.Clone()
	if op.PreLoad != nil {
		rewritten, err := op.PreLoad(bound)
		if err != nil {
			return failure(name, fmt.Errorf("%s: pre-load: %w", name, err))
		}
		bound = rewritten
	}

	// Step 4: transfer only the parameters that were bound.
	ec.transfer(bound)
	log.Debug().Strs("bound", bound.Names()).Msg("parameters transferred")

	// Step 5: post-load hook.
	if op.PostLoad != nil {
		if err := op.PostLoad(ec); err != nil {
			return failure(name, fmt.Errorf("%s: post-load: %w", name, err))
		}
	}

	// Step 6: request construction.
	if op.Build == nil || op.Call == nil {
		return failure(name, fmt.Errorf("%s: operation is missing a builder or call", name))
	}
	req, err := op.Build(ec)
	if err != nil {
		return failure(name, fmt.Errorf("%s: build request: %w", name, err))
	}

	// Step 7: dispatch, exactly one blocking call.
	client, err := handle.Get(ctx, ec.Settings)
	if err != nil {
		return failure(name, Classify(name, ec.Settings, err))
	}

	resp, err := op.Call(ctx, client, req)
	if err != nil {
		return failure(name, Classify(name, ec.Settings, err))
	}

	// Step 8: normalization.
	output, err := project(op, ec, resp)
	if err != nil {
		return failure(name, fmt.Errorf("%s: project response: %w", name, err))
	}

	var notes []string
	if op.Notes != nil {
		notes = op.Notes(resp)
	}

	return success(name, output, resp, notes)
}

func project[C, Req, Resp any](op Operation[C, Req, Resp], ec *ExecContext, resp *Resp) (any, error) {
	if op.Project != nil {
		return op.Project(ec, resp)
	}

	switch op.Descriptor.Policy {
	case Identifier:
		if len(op.Descriptor.Identity) == 0 {
			return nil, errors.New("identifier policy without identity parameter")
		}
		id, ok := ec.values[op.Descriptor.Identity[0]]
		if !ok {
			return nil, fmt.Errorf("identity parameter %q not bound", op.Descriptor.Identity[0])
		}
		return id, nil
	default:
		return resp, nil
	}
}

// ExecuteEach runs op once per parameter set, strictly in order. Each outcome
// is handed to emit before the next invocation starts; declined invocations
// are skipped. It returns the number of failures.
func ExecuteEach[C, Req, Resp any](
	ctx context.Context,
	e *Executor,
	op Operation[C, Req, Resp],
	handle *Handle[C],
	inputs []Params,
	force bool,
	emit func(*Outcome),
) int {
	failed := 0
	for _, params := range inputs {
		outcome := Execute(ctx, e, op, handle, params, force)
		if outcome == nil {
			continue
		}
		if outcome.Failed() {
			failed++
		}
		emit(outcome)
	}
	return failed
}

package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/wolfeidau/gwctl/internal/client"
	"github.com/wolfeidau/gwctl/internal/gateway"
	"github.com/wolfeidau/gwctl/internal/history"
	"github.com/wolfeidau/gwctl/internal/logger"
	"github.com/wolfeidau/gwctl/internal/output"
	"github.com/wolfeidau/gwctl/internal/pipeline"
	"github.com/wolfeidau/gwctl/internal/profile"
	"github.com/wolfeidau/gwctl/internal/telemetry"
	"github.com/wolfeidau/gwctl/internal/util"
)

// Globals carries the global flags into every command. The IO and
// collaborator fields are nil in normal runs and set by tests.
type Globals struct {
	Debug   bool
	Version string

	Region          string
	Endpoint        string
	AWSProfile      string
	Profile         string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	MaxAttempts     int
	Timeout         time.Duration

	Output        string
	ConfirmImpact string
	Tracing       bool
	NoHistory     bool
	ProfileDir    string
	HistoryFile   string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	API       gateway.API
	Confirmer pipeline.Confirmer
	History   history.Store
}

func (g *Globals) stdin() io.Reader {
	if g.Stdin != nil {
		return g.Stdin
	}
	return os.Stdin
}

func (g *Globals) stdout() io.Writer {
	if g.Stdout != nil {
		return g.Stdout
	}
	return os.Stdout
}

func (g *Globals) stderr() io.Writer {
	if g.Stderr != nil {
		return g.Stderr
	}
	return os.Stderr
}

// settings resolves the ambient settings: flags and env first, then the
// selected or default profile.
func (g *Globals) settings() (pipeline.Settings, error) {
	s := pipeline.Settings{
		Region:   g.Region,
		Endpoint: g.Endpoint,
		Profile:  g.AWSProfile,
		Credentials: pipeline.Credentials{
			AccessKeyID:     g.AccessKeyID,
			SecretAccessKey: g.SecretAccessKey,
			SessionToken:    g.SessionToken,
		},
		MaxAttempts: g.MaxAttempts,
	}

	store, err := profile.NewStore(g.ProfileDir)
	if err != nil {
		return s, fmt.Errorf("failed to initialize profile store: %w", err)
	}

	p, err := store.Resolve(g.Profile)
	if err != nil {
		return s, fmt.Errorf("failed to resolve profile %q: %w", g.Profile, err)
	}
	if p != nil {
		s = p.Apply(s)
	}

	return s, nil
}

func (g *Globals) historyStore() (history.Store, error) {
	if g.History != nil {
		return g.History, nil
	}
	if g.NoHistory {
		return history.NewMemoryStore(history.DefaultCapacity), nil
	}
	return history.NewFileStore(g.HistoryFile, history.DefaultCapacity)
}

// runtime is everything a gateway command needs for one process.
type runtime struct {
	executor *pipeline.Executor
	handle   *pipeline.Handle[gateway.API]
	printer  *output.Printer
	shutdown telemetry.Shutdown
	log      zerolog.Logger
}

func (g *Globals) runtime(ctx context.Context) (*runtime, error) {
	log := logger.Setup(g.Debug, g.stderr())

	format, err := output.ParseFormat(g.Output)
	if err != nil {
		return nil, err
	}

	threshold, err := pipeline.ParseImpact(g.ConfirmImpact)
	if err != nil {
		return nil, err
	}

	settings, err := g.settings()
	if err != nil {
		return nil, err
	}

	recorder, err := g.historyStore()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize history: %w", err)
	}

	confirmer := g.Confirmer
	if confirmer == nil {
		confirmer = pipeline.NewPromptConfirmer(g.stdin(), g.stderr())
	}

	opts := []pipeline.ExecutorOption{
		pipeline.WithConfirmer(confirmer),
		pipeline.WithThreshold(threshold),
		pipeline.WithLogger(log),
		pipeline.WithRecorder(recorder),
	}

	shutdown := telemetry.Shutdown(func(context.Context) error { return nil })
	if g.Tracing {
		shutdown, err = telemetry.Init(ctx, telemetry.Config{
			ServiceName: "gwctl",
			Version:     g.Version,
			Region:      settings.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		opts = append(opts, pipeline.WithMetrics(telemetry.GetMetrics()))
	}

	var handle *pipeline.Handle[gateway.API]
	if g.API != nil {
		handle = pipeline.StaticHandle(g.API)
	} else {
		cfg := client.DefaultConfig()
		cfg.Logger = log
		if g.Timeout > 0 {
			cfg.Timeout = g.Timeout
		}
		handle = client.NewHandle(cfg)
	}

	log.Debug().
		Str("region", settings.Region).
		Str("endpoint", settings.Target()).
		Str("threshold", threshold.String()).
		Msg("runtime configured")

	return &runtime{
		executor: pipeline.NewExecutor(settings, opts...),
		handle:   handle,
		printer:  output.NewPrinter(format, g.stdout(), g.stderr()),
		shutdown: shutdown,
		log:      log,
	}, nil
}

func (r *runtime) close(ctx context.Context) {
	if err := r.shutdown(ctx); err != nil {
		r.log.Warn().Err(err).Msg("failed to shutdown telemetry")
	}
}

// run executes op once per parameter set, printing each outcome as it
// completes, and reports an error when any invocation failed.
func run[Req, Resp any](ctx context.Context, g *Globals, op pipeline.Operation[gateway.API, Req, Resp], inputs []pipeline.Params, force bool) error {
	rt, err := g.runtime(ctx)
	if err != nil {
		return err
	}
	defer rt.close(ctx)

	failed := pipeline.ExecuteEach(ctx, rt.executor, op, rt.handle, inputs, force, rt.printer.Emit)
	if failed > 0 {
		return fmt.Errorf("%d of %d %s invocations failed", failed, len(inputs), op.Descriptor.Name)
	}
	return nil
}

// perID expands "-" arguments from stdin and builds one parameter set per
// identifier, each starting from a copy of shared.
func perID(g *Globals, ids []string, name string, shared pipeline.Params) ([]pipeline.Params, error) {
	expanded, err := util.ExpandArgs(ids, g.stdin())
	if err != nil {
		return nil, err
	}
	if len(expanded) == 0 {
		return nil, fmt.Errorf("no %s given", name)
	}

	inputs := make([]pipeline.Params, 0, len(expanded))
	for _, id := range expanded {
		p := shared.Clone()
		p.Set(name, id)
		inputs = append(inputs, p)
	}
	return inputs, nil
}

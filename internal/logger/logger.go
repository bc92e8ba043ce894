package logger

import (
	"context"
	"io"
	"os"
	"time"

	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/smithy-go/middleware"
	"github.com/rs/zerolog"
)

// Setup returns the CLI logger. Command output owns stdout, so logs always go
// to stderr (or out when given). Only warnings and errors are shown unless
// debug is enabled.
func Setup(debug bool, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}

	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: out, FormatTimestamp: func(i any) string {
		return time.Now().Format(time.RFC3339)
	}}).Level(level).With().Timestamp().Logger()

	if debug {
		logger = logger.With().Caller().Stack().Logger()
	}

	return logger
}

var _ middleware.InitializeMiddleware = (*RequestLogger)(nil)

// RequestLogger is an SDK middleware that logs every remote call with its
// service, operation, request ID and duration.
type RequestLogger struct {
	logger zerolog.Logger
}

func NewRequestLogger(logger zerolog.Logger) *RequestLogger {
	return &RequestLogger{logger: logger}
}

func (r *RequestLogger) ID() string {
	return "gwctl.RequestLogger"
}

func (r *RequestLogger) HandleInitialize(
	ctx context.Context,
	in middleware.InitializeInput,
	next middleware.InitializeHandler,
) (middleware.InitializeOutput, middleware.Metadata, error) {
	started := time.Now()

	ctx = r.logger.With().
		Str("service", awsmiddleware.GetServiceID(ctx)).
		Str("op", awsmiddleware.GetOperationName(ctx)).
		Logger().WithContext(ctx)

	out, md, err := next.HandleInitialize(ctx, in)

	requestID, _ := awsmiddleware.GetRequestIDMetadata(md)

	zerolog.Ctx(ctx).Debug().
		Err(err).
		Str("request_id", requestID).
		Dur("duration", time.Since(started)).
		Msg("api call")

	return out, md, err
}

// AddTo registers the middleware first in the initialize step. It matches the
// SDK's APIOptions signature.
func (r *RequestLogger) AddTo(stack *middleware.Stack) error {
	return stack.Initialize.Add(r, middleware.Before)
}

package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/aws/smithy-go/middleware"
	"github.com/stretchr/testify/require"
)

func TestSetup_Levels(t *testing.T) {
	var buf bytes.Buffer

	log := Setup(false, &buf)
	log.Info().Msg("hidden")
	require.Empty(t, buf.String())

	log.Warn().Msg("shown")
	require.Contains(t, buf.String(), "shown")

	buf.Reset()
	log = Setup(true, &buf)
	log.Debug().Msg("debugging")
	require.Contains(t, buf.String(), "debugging")
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	rl := NewRequestLogger(Setup(true, &buf))

	stack := middleware.NewStack("test", func() interface{} { return nil })
	require.NoError(t, rl.AddTo(stack))

	ids := stack.Initialize.List()
	require.Contains(t, ids, "gwctl.RequestLogger")

	next := middleware.InitializeHandlerFunc(func(ctx context.Context, in middleware.InitializeInput) (middleware.InitializeOutput, middleware.Metadata, error) {
		return middleware.InitializeOutput{}, middleware.Metadata{}, errors.New("dial tcp: no such host")
	})

	_, _, err := rl.HandleInitialize(context.Background(), middleware.InitializeInput{}, next)
	require.Error(t, err)
	require.Contains(t, buf.String(), "api call")
	require.Contains(t, buf.String(), "no such host")
}

package pipeline

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfeidau/gwctl/internal/telemetry"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type keyRequest struct {
	ID           *string
	IncludeValue *bool
	Name         *string
}

type keyResponse struct {
	ID    string
	Value string
}

type fakeKeys struct {
	calls    int
	requests []*keyRequest
	resp     *keyResponse
	err      error
}

func (f *fakeKeys) Get(ctx context.Context, req *keyRequest) (*keyResponse, error) {
	f.calls++
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func buildKeyRequest(ec *ExecContext) (*keyRequest, error) {
	req := &keyRequest{}
	if v, ok := Value[string](ec, "id"); ok {
		req.ID = &v
	}
	if v, ok := Value[bool](ec, "includeValue"); ok {
		req.IncludeValue = &v
	}
	if v, ok := Value[string](ec, "name"); ok {
		req.Name = &v
	}
	return req, nil
}

func getKeyOp() Operation[*fakeKeys, keyRequest, keyResponse] {
	return Operation[*fakeKeys, keyRequest, keyResponse]{
		Descriptor: Descriptor{Name: "GetKey", Noun: "key", Identity: []string{"id"}},
		Build:      buildKeyRequest,
		Call: func(ctx context.Context, c *fakeKeys, req *keyRequest) (*keyResponse, error) {
			return c.Get(ctx, req)
		},
	}
}

func deleteKeyOp() Operation[*fakeKeys, keyRequest, keyResponse] {
	op := getKeyOp()
	op.Descriptor = Descriptor{
		Name:        "DeleteKey",
		Noun:        "key",
		Destructive: true,
		Impact:      ImpactHigh,
		Identity:    []string{"id"},
		Policy:      Identifier,
	}
	return op
}

func TestExecute_ReadBuildsRequestFromBoundParams(t *testing.T) {
	fake := &fakeKeys{resp: &keyResponse{ID: "abc123", Value: "secret"}}
	exec := NewExecutor(Settings{Region: "us-east-1"})

	params := NewParams()
	params.Set("id", "abc123")
	params.Set("includeValue", true)

	outcome := Execute(context.Background(), exec, getKeyOp(), StaticHandle(fake), params, false)
	require.NotNil(t, outcome)
	require.True(t, outcome.Succeeded())
	require.False(t, outcome.Failed())

	require.Equal(t, 1, fake.calls)
	req := fake.requests[0]
	require.NotNil(t, req.ID)
	require.Equal(t, "abc123", *req.ID)
	require.NotNil(t, req.IncludeValue)
	require.True(t, *req.IncludeValue)
	require.Nil(t, req.Name, "unbound parameters must stay absent")

	require.Same(t, fake.resp, outcome.Output)
	require.Same(t, fake.resp, outcome.Response)
	require.Equal(t, "GetKey", outcome.Operation)
}

func TestExecute_ExplicitFalseIsBound(t *testing.T) {
	fake := &fakeKeys{resp: &keyResponse{}}
	exec := NewExecutor(Settings{})

	params := NewParams()
	params.Set("id", "abc123")
	params.Set("includeValue", false)

	outcome := Execute(context.Background(), exec, getKeyOp(), StaticHandle(fake), params, false)
	require.True(t, outcome.Succeeded())
	require.NotNil(t, fake.requests[0].IncludeValue)
	require.False(t, *fake.requests[0].IncludeValue)
}

func TestExecute_DestructiveDeclined(t *testing.T) {
	fake := &fakeKeys{resp: &keyResponse{}}
	confirmer := &AutoConfirmer{Answer: false}
	exec := NewExecutor(Settings{}, WithConfirmer(confirmer))

	built := 0
	handle := NewHandle(func(ctx context.Context, s Settings) (*fakeKeys, error) {
		built++
		return fake, nil
	})

	params := NewParams()
	params.Set("id", "abc123")

	outcome := Execute(context.Background(), exec, deleteKeyOp(), handle, params, false)
	require.Nil(t, outcome)
	require.Equal(t, 1, confirmer.Prompts)
	require.Equal(t, 0, fake.calls)
	require.Equal(t, 0, built, "client must not be built when declined")
}

func TestExecute_DestructiveImpactNoneStillPrompts(t *testing.T) {
	fake := &fakeKeys{resp: &keyResponse{}}
	confirmer := &AutoConfirmer{Answer: false}
	exec := NewExecutor(Settings{}, WithConfirmer(confirmer))

	op := deleteKeyOp()
	op.Descriptor.Impact = ImpactNone

	params := NewParams()
	params.Set("id", "abc123")

	outcome := Execute(context.Background(), exec, op, StaticHandle(fake), params, false)
	require.Nil(t, outcome)
	require.Equal(t, 1, confirmer.Prompts)
	require.Equal(t, 0, fake.calls)
}

func TestExecute_DestructiveForced(t *testing.T) {
	fake := &fakeKeys{resp: &keyResponse{}}
	confirmer := &AutoConfirmer{Answer: false}
	exec := NewExecutor(Settings{}, WithConfirmer(confirmer))

	params := NewParams()
	params.Set("id", "abc123")

	outcome := Execute(context.Background(), exec, deleteKeyOp(), StaticHandle(fake), params, true)
	require.NotNil(t, outcome)
	require.True(t, outcome.Succeeded())
	require.Equal(t, 0, confirmer.Prompts)
	require.Equal(t, 1, fake.calls)
	require.Equal(t, "abc123", outcome.Output)
	require.Same(t, fake.resp, outcome.Response)
}

func TestExecute_DestructiveConfirmed(t *testing.T) {
	fake := &fakeKeys{resp: &keyResponse{}}
	exec := NewExecutor(Settings{}, WithConfirmer(&AutoConfirmer{Answer: true}))

	params := NewParams()
	params.Set("id", "abc123")

	outcome := Execute(context.Background(), exec, deleteKeyOp(), StaticHandle(fake), params, false)
	require.True(t, outcome.Succeeded())
	require.Equal(t, 1, fake.calls)
}

func TestExecute_BelowThresholdSkipsPrompt(t *testing.T) {
	fake := &fakeKeys{resp: &keyResponse{}}
	confirmer := &AutoConfirmer{Answer: false}
	exec := NewExecutor(Settings{}, WithConfirmer(confirmer), WithThreshold(ImpactHigh))

	op := deleteKeyOp()
	op.Descriptor.Impact = ImpactMedium

	params := NewParams()
	params.Set("id", "abc123")

	outcome := Execute(context.Background(), exec, op, StaticHandle(fake), params, false)
	require.True(t, outcome.Succeeded())
	require.Equal(t, 0, confirmer.Prompts)
}

func TestExecute_TransportErrorRewrapped(t *testing.T) {
	dnsErr := &net.DNSError{Err: "no such host", Name: "apigateway.nowhere-1.amazonaws.com", IsNotFound: true}
	fake := &fakeKeys{err: dnsErr}
	exec := NewExecutor(Settings{Region: "nowhere-1"})

	params := NewParams()
	params.Set("id", "abc123")

	outcome := Execute(context.Background(), exec, getKeyOp(), StaticHandle(fake), params, false)
	require.True(t, outcome.Failed())
	require.Nil(t, outcome.Output)
	require.Nil(t, outcome.Response)

	var transportErr *TransportError
	require.ErrorAs(t, outcome.Err, &transportErr)
	require.Equal(t, "https://apigateway.nowhere-1.amazonaws.com", transportErr.Endpoint)
	require.Contains(t, outcome.Err.Error(), "unable to reach https://apigateway.nowhere-1.amazonaws.com")
	require.ErrorIs(t, outcome.Err, dnsErr)
}

type throttled struct{}

func (throttled) Error() string { return "TooManyRequestsException: slow down" }

func TestExecute_ServiceErrorPassesThrough(t *testing.T) {
	svcErr := throttled{}
	fake := &fakeKeys{err: svcErr}
	exec := NewExecutor(Settings{})

	params := NewParams()
	params.Set("id", "abc123")

	outcome := Execute(context.Background(), exec, getKeyOp(), StaticHandle(fake), params, false)
	require.True(t, outcome.Failed())
	require.Equal(t, svcErr, outcome.Err)
	require.Equal(t, "TooManyRequestsException: slow down", outcome.Err.Error())
}

func TestExecute_ClientFactoryError(t *testing.T) {
	exec := NewExecutor(Settings{})
	handle := NewHandle(func(ctx context.Context, s Settings) (*fakeKeys, error) {
		return nil, errors.New("failed to load AWS config")
	})

	outcome := Execute(context.Background(), exec, getKeyOp(), handle, NewParams(), false)
	require.True(t, outcome.Failed())
	require.EqualError(t, outcome.Err, "failed to load AWS config")
	require.False(t, handle.Built())
}

func TestExecute_PanicInBuildBecomesFailure(t *testing.T) {
	fake := &fakeKeys{resp: &keyResponse{}}
	exec := NewExecutor(Settings{})

	op := getKeyOp()
	op.Build = func(ec *ExecContext) (*keyRequest, error) {
		var m map[string]string
		m["boom"] = "x"
		return nil, nil
	}

	outcome := Execute(context.Background(), exec, op, StaticHandle(fake), NewParams(), false)
	require.True(t, outcome.Failed())

	var panicErr *PanicError
	require.ErrorAs(t, outcome.Err, &panicErr)
	require.Equal(t, 0, fake.calls)
}

func TestExecute_BuildErrorBecomesFailure(t *testing.T) {
	fake := &fakeKeys{resp: &keyResponse{}}
	exec := NewExecutor(Settings{})

	op := getKeyOp()
	op.Build = func(ec *ExecContext) (*keyRequest, error) {
		return nil, errors.New("id is required")
	}

	outcome := Execute(context.Background(), exec, op, StaticHandle(fake), NewParams(), false)
	require.True(t, outcome.Failed())
	require.ErrorContains(t, outcome.Err, "GetKey: build request: id is required")
	require.Equal(t, 0, fake.calls)
}

func TestExecute_Hooks(t *testing.T) {
	fake := &fakeKeys{resp: &keyResponse{}}
	exec := NewExecutor(Settings{Region: "ap-southeast-2"})

	var order []string
	op := getKeyOp()
	op.PreLoad = func(p Params) (Params, error) {
		order = append(order, "pre")
		p.Set("name", "renamed")
		return p, nil
	}
	op.PostLoad = func(ec *ExecContext) error {
		order = append(order, "post")
		require.Equal(t, "ap-southeast-2", ec.Settings.Region)
		require.True(t, ec.Has("name"))
		ec.Delete("includeValue")
		return nil
	}

	params := NewParams()
	params.Set("id", "abc123")
	params.Set("includeValue", true)

	outcome := Execute(context.Background(), exec, op, StaticHandle(fake), params, false)
	require.True(t, outcome.Succeeded())
	require.Equal(t, []string{"pre", "post"}, order)

	req := fake.requests[0]
	require.Equal(t, "renamed", *req.Name)
	require.Nil(t, req.IncludeValue)

	// the caller's params are untouched by the pre-load hook
	require.False(t, params.IsBound("name"))
}

func TestExecute_HookErrorBecomesFailure(t *testing.T) {
	fake := &fakeKeys{resp: &keyResponse{}}
	exec := NewExecutor(Settings{})

	op := getKeyOp()
	op.PostLoad = func(ec *ExecContext) error { return errors.New("invalid combination") }

	outcome := Execute(context.Background(), exec, op, StaticHandle(fake), NewParams(), false)
	require.True(t, outcome.Failed())
	require.ErrorContains(t, outcome.Err, "post-load: invalid combination")
	require.Equal(t, 0, fake.calls)
}

func TestExecute_ProjectAndNotes(t *testing.T) {
	fake := &fakeKeys{resp: &keyResponse{ID: "abc123", Value: "secret"}}
	exec := NewExecutor(Settings{})

	op := getKeyOp()
	op.Project = func(ec *ExecContext, resp *keyResponse) (any, error) {
		return resp.Value, nil
	}
	op.Notes = func(resp *keyResponse) []string {
		return []string{"value is sensitive"}
	}

	outcome := Execute(context.Background(), exec, op, StaticHandle(fake), NewParams(), false)
	require.True(t, outcome.Succeeded())
	require.Equal(t, "secret", outcome.Output)
	require.Same(t, fake.resp, outcome.Response)
	require.Equal(t, []string{"value is sensitive"}, outcome.Notes)
}

type memRecorder struct {
	outcomes []*Outcome
}

func (m *memRecorder) Record(ctx context.Context, o *Outcome) error {
	m.outcomes = append(m.outcomes, o)
	return nil
}

func TestExecute_RecordsOutcomes(t *testing.T) {
	fake := &fakeKeys{resp: &keyResponse{}}
	rec := &memRecorder{}
	exec := NewExecutor(Settings{}, WithRecorder(rec), WithConfirmer(&AutoConfirmer{Answer: false}))

	params := NewParams()
	params.Set("id", "abc123")

	Execute(context.Background(), exec, getKeyOp(), StaticHandle(fake), params, false)
	Execute(context.Background(), exec, deleteKeyOp(), StaticHandle(fake), params, false)

	require.Len(t, rec.outcomes, 1, "declined invocations are not recorded")
	require.False(t, rec.outcomes[0].StartedAt.IsZero())
}

func TestExecute_DispatchDurationKeepsFractionalMillis(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))

	fake := &fakeKeys{resp: &keyResponse{ID: "abc123"}}
	exec := NewExecutor(Settings{}, WithMetrics(telemetry.GetMetrics()))

	params := NewParams()
	params.Set("id", "abc123")

	ctx := context.Background()
	outcome := Execute(ctx, exec, getKeyOp(), StaticHandle(fake), params, false)
	require.True(t, outcome.Succeeded())

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	var sum float64
	var found bool
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			if md.Name != "gwctl.dispatch.duration" {
				continue
			}
			hist, ok := md.Data.(metricdata.Histogram[float64])
			require.True(t, ok)
			for _, dp := range hist.DataPoints {
				sum += dp.Sum
				found = true
			}
		}
	}

	require.True(t, found)
	require.Greater(t, sum, 0.0)
	require.InDelta(t, float64(outcome.Duration)/float64(time.Millisecond), sum, 1e-9)
}

func TestExecute_IdempotentReadShape(t *testing.T) {
	fake := &fakeKeys{resp: &keyResponse{ID: "abc123"}}
	exec := NewExecutor(Settings{})

	params := NewParams()
	params.Set("id", "abc123")

	first := Execute(context.Background(), exec, getKeyOp(), StaticHandle(fake), params, false)
	second := Execute(context.Background(), exec, getKeyOp(), StaticHandle(fake), params, false)

	require.IsType(t, first.Output, second.Output)
	require.Equal(t, 2, fake.calls)
}

func TestExecuteEach_SequentialInOrder(t *testing.T) {
	fake := &fakeKeys{resp: &keyResponse{}}
	exec := NewExecutor(Settings{})

	var inputs []Params
	for _, id := range []string{"a", "b", "c"} {
		p := NewParams()
		p.Set("id", id)
		inputs = append(inputs, p)
	}

	var emitted []any
	failed := ExecuteEach(context.Background(), exec, deleteKeyOp(), StaticHandle(fake), inputs, true, func(o *Outcome) {
		// each outcome is emitted before the next call is issued
		assert.Equal(t, len(emitted)+1, fake.calls)
		emitted = append(emitted, o.Output)
	})

	require.Equal(t, 0, failed)
	require.Equal(t, []any{"a", "b", "c"}, emitted)
	require.Equal(t, []string{"a", "b", "c"}, []string{*fake.requests[0].ID, *fake.requests[1].ID, *fake.requests[2].ID})
}

func TestExecuteEach_CountsFailuresAndSkipsDeclined(t *testing.T) {
	fake := &fakeKeys{err: throttled{}}
	exec := NewExecutor(Settings{}, WithConfirmer(&AutoConfirmer{Answer: false}))

	p := NewParams()
	p.Set("id", "a")

	emitted := 0
	failed := ExecuteEach(context.Background(), exec, deleteKeyOp(), StaticHandle(fake), []Params{p, p}, false, func(o *Outcome) {
		emitted++
	})
	require.Equal(t, 0, failed)
	require.Equal(t, 0, emitted)

	failed = ExecuteEach(context.Background(), exec, getKeyOp(), StaticHandle(fake), []Params{p, p}, false, func(o *Outcome) {
		emitted++
	})
	require.Equal(t, 2, failed)
	require.Equal(t, 2, emitted)
}

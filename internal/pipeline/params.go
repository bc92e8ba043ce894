package pipeline

import "fmt"

// Params holds the parameters the caller actually bound. A parameter that was
// never bound is absent, which is different from one bound to its zero value.
type Params struct {
	names  []string
	values map[string]any
}

// NewParams returns an empty parameter set.
func NewParams() Params {
	return Params{values: make(map[string]any)}
}

// Set binds name to v, keeping the order in which names were first bound.
func (p *Params) Set(name string, v any) {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	if _, exists := p.values[name]; !exists {
		p.names = append(p.names, name)
	}
	p.values[name] = v
}

// Get returns the bound value for name.
func (p Params) Get(name string) (any, bool) {
	v, ok := p.values[name]
	return v, ok
}

// IsBound reports whether the caller supplied name.
func (p Params) IsBound(name string) bool {
	_, ok := p.values[name]
	return ok
}

// Names returns the bound parameter names in bind order.
func (p Params) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Len returns the number of bound parameters.
func (p Params) Len() int {
	return len(p.names)
}

// Clone returns a copy that can be changed without affecting p.
func (p Params) Clone() Params {
	c := NewParams()
	for _, name := range p.names {
		c.Set(name, p.values[name])
	}
	return c
}

// Bind binds name when ptr is non-nil. CLI flags declared as pointers are nil
// unless the user passed them, which is how "was this bound" is answered.
func Bind[T any](p *Params, name string, ptr *T) {
	if ptr == nil {
		return
	}
	p.Set(name, *ptr)
}

// BindSlice binds name when the slice is non-empty.
func BindSlice[T any](p *Params, name string, vals []T) {
	if len(vals) == 0 {
		return
	}
	p.Set(name, vals)
}

// Credentials is a static credential handle. The zero value means the SDK
// default chain resolves credentials.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

func (c Credentials) IsZero() bool {
	return c.AccessKeyID == "" && c.SecretAccessKey == ""
}

// Settings are the ambient connection settings every invocation receives.
type Settings struct {
	Region   string
	Endpoint string
	// Profile is the shared config profile handed to the SDK.
	Profile     string
	Credentials Credentials
	// MaxAttempts overrides the client's retry attempts when non-zero.
	MaxAttempts int
}

// Target renders the endpoint the client talks to, for diagnostics.
func (s Settings) Target() string {
	if s.Endpoint != "" {
		return s.Endpoint
	}
	if s.Region != "" {
		return fmt.Sprintf("https://apigateway.%s.amazonaws.com", s.Region)
	}
	return "the default API Gateway endpoint"
}

// ExecContext is the per-invocation holder of transferred parameters and
// ambient settings. It is created fresh for each invocation.
type ExecContext struct {
	Settings Settings

	values map[string]any
}

func newExecContext(settings Settings) *ExecContext {
	return &ExecContext{
		Settings: settings,
		values:   make(map[string]any),
	}
}

// Set stores v under name.
func (ec *ExecContext) Set(name string, v any) {
	ec.values[name] = v
}

// Delete removes name from the context so the request omits it.
func (ec *ExecContext) Delete(name string) {
	delete(ec.values, name)
}

// Has reports whether name is present in the context.
func (ec *ExecContext) Has(name string) bool {
	_, ok := ec.values[name]
	return ok
}

// Value returns the context value for name converted to T. The second result
// is false when the value is absent or of a different type.
func Value[T any](ec *ExecContext, name string) (T, bool) {
	var zero T
	raw, ok := ec.values[name]
	if !ok || raw == nil {
		return zero, false
	}
	v, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// transfer copies every bound parameter into the context under the same name.
func (ec *ExecContext) transfer(p Params) {
	for _, name := range p.names {
		ec.values[name] = p.values[name]
	}
}

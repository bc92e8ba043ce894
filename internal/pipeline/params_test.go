package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParams_Bind(t *testing.T) {
	p := NewParams()

	var name *string
	enabled := false
	limit := int32(0)

	Bind(&p, "name", name)
	Bind(&p, "enabled", &enabled)
	Bind(&p, "limit", &limit)
	BindSlice(&p, "tags", []string(nil))
	BindSlice(&p, "stages", []string{"prod"})

	require.False(t, p.IsBound("name"))
	require.False(t, p.IsBound("tags"))
	require.True(t, p.IsBound("enabled"))
	require.True(t, p.IsBound("limit"))
	require.Equal(t, []string{"enabled", "limit", "stages"}, p.Names())

	v, ok := p.Get("enabled")
	require.True(t, ok)
	require.Equal(t, false, v)
}

func TestParams_SetKeepsFirstOrder(t *testing.T) {
	var p Params
	p.Set("a", 1)
	p.Set("b", 2)
	p.Set("a", 3)

	require.Equal(t, []string{"a", "b"}, p.Names())
	require.Equal(t, 2, p.Len())

	v, _ := p.Get("a")
	require.Equal(t, 3, v)
}

func TestParams_Clone(t *testing.T) {
	p := NewParams()
	p.Set("id", "abc")

	c := p.Clone()
	c.Set("extra", true)

	require.False(t, p.IsBound("extra"))
	require.True(t, c.IsBound("id"))
}

func TestValue(t *testing.T) {
	ec := newExecContext(Settings{})
	ec.Set("id", "abc")
	ec.Set("limit", int32(5))
	ec.Set("nothing", nil)

	id, ok := Value[string](ec, "id")
	require.True(t, ok)
	require.Equal(t, "abc", id)

	_, ok = Value[int](ec, "limit")
	require.False(t, ok, "type mismatch is treated as absent")

	limit, ok := Value[int32](ec, "limit")
	require.True(t, ok)
	require.Equal(t, int32(5), limit)

	_, ok = Value[string](ec, "nothing")
	require.False(t, ok)

	_, ok = Value[string](ec, "missing")
	require.False(t, ok)
}

func TestSettings_Target(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		want     string
	}{
		{name: "explicit endpoint", settings: Settings{Region: "us-east-1", Endpoint: "http://localhost:4566"}, want: "http://localhost:4566"},
		{name: "region only", settings: Settings{Region: "eu-west-1"}, want: "https://apigateway.eu-west-1.amazonaws.com"},
		{name: "nothing", settings: Settings{}, want: "the default API Gateway endpoint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.settings.Target())
		})
	}
}

func TestCredentials_IsZero(t *testing.T) {
	require.True(t, Credentials{}.IsZero())
	require.True(t, Credentials{SessionToken: "tok"}.IsZero())
	require.False(t, Credentials{AccessKeyID: "AKIA", SecretAccessKey: "secret"}.IsZero())
}

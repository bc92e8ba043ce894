package client

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wolfeidau/gwctl/internal/pipeline"
)

func isolateAWSEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", dir+"/config")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", dir+"/credentials")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_CA_BUNDLE", "")
}

func writeCABundle(t *testing.T) string {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "gwctl test CA"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600))
	return path
}

func TestLoadAWSConfig_StaticCredentials(t *testing.T) {
	isolateAWSEnv(t)
	ctx := context.Background()

	settings := pipeline.Settings{
		Region: "ap-southeast-2",
		Credentials: pipeline.Credentials{
			AccessKeyID:     "AKIDEXAMPLE",
			SecretAccessKey: "secret",
		},
		MaxAttempts: 2,
	}

	cfg, err := LoadAWSConfig(ctx, settings, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, "ap-southeast-2", cfg.Region)
	require.Equal(t, 2, cfg.RetryMaxAttempts)

	creds, err := cfg.Credentials.Retrieve(ctx)
	require.NoError(t, err)
	require.Equal(t, "AKIDEXAMPLE", creds.AccessKeyID)
}

func TestLoadAWSConfig_CABundle(t *testing.T) {
	isolateAWSEnv(t)
	t.Setenv("AWS_CA_BUNDLE", writeCABundle(t))

	cfg, err := LoadAWSConfig(context.Background(), pipeline.Settings{Region: "us-east-1"}, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, "us-east-1", cfg.Region)
	require.NotNil(t, cfg.HTTPClient)
}

func TestLoadAWSConfig_NoRegion(t *testing.T) {
	isolateAWSEnv(t)

	_, err := LoadAWSConfig(context.Background(), pipeline.Settings{}, DefaultConfig())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no region configured")
}

func TestNewHandle_Lazy(t *testing.T) {
	isolateAWSEnv(t)

	h := NewHandle(DefaultConfig())
	require.False(t, h.Built())

	api, err := h.Get(context.Background(), pipeline.Settings{
		Region:   "us-east-1",
		Endpoint: "http://localhost:4566",
		Credentials: pipeline.Credentials{
			AccessKeyID:     "test",
			SecretAccessKey: "test",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, api)
	require.True(t, h.Built())
}

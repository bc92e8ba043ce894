package client

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/rs/zerolog"
	"github.com/wolfeidau/gwctl/internal/gateway"
	"github.com/wolfeidau/gwctl/internal/logger"
	"github.com/wolfeidau/gwctl/internal/pipeline"
)

// Config holds common client configuration
type Config struct {
	Timeout time.Duration
	Logger  zerolog.Logger
}

// DefaultConfig returns a default client configuration
func DefaultConfig() Config {
	return Config{
		Timeout: 30 * time.Second,
		Logger:  zerolog.Nop(),
	}
}

// LoadAWSConfig resolves the SDK configuration for the ambient settings.
// Explicit region, profile and static credentials win over the default chain.
func LoadAWSConfig(ctx context.Context, settings pipeline.Settings, cfg Config) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error

	if settings.Region != "" {
		opts = append(opts, config.WithRegion(settings.Region))
	}

	if settings.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(settings.Profile))
	}

	if !settings.Credentials.IsZero() {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			settings.Credentials.AccessKeyID,
			settings.Credentials.SecretAccessKey,
			settings.Credentials.SessionToken,
		)))
	}

	if settings.MaxAttempts > 0 {
		opts = append(opts, config.WithRetryMaxAttempts(settings.MaxAttempts))
	}

	if cfg.Timeout > 0 {
		opts = append(opts, config.WithHTTPClient(awshttp.NewBuildableClient().WithTimeout(cfg.Timeout)))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if awsConfig.Region == "" {
		return aws.Config{}, fmt.Errorf("no region configured, set --region, GWCTL_REGION or AWS_REGION")
	}

	return awsConfig, nil
}

// NewAPIGateway creates an API Gateway client for the ambient settings.
func NewAPIGateway(ctx context.Context, settings pipeline.Settings, cfg Config) (*apigateway.Client, error) {
	awsConfig, err := LoadAWSConfig(ctx, settings, cfg)
	if err != nil {
		return nil, err
	}

	requestLogger := logger.NewRequestLogger(cfg.Logger)

	return apigateway.NewFromConfig(awsConfig, func(o *apigateway.Options) {
		if settings.Endpoint != "" {
			o.BaseEndpoint = aws.String(settings.Endpoint)
		}
		o.APIOptions = append(o.APIOptions, requestLogger.AddTo)
	}), nil
}

// Factory adapts NewAPIGateway to a pipeline client factory.
func Factory(cfg Config) pipeline.ClientFactory[gateway.API] {
	return func(ctx context.Context, settings pipeline.Settings) (gateway.API, error) {
		api, err := NewAPIGateway(ctx, settings, cfg)
		if err != nil {
			return nil, err
		}
		return api, nil
	}
}

// NewHandle returns a lazily built, reusable API Gateway client handle.
func NewHandle(cfg Config) *pipeline.Handle[gateway.API] {
	return pipeline.NewHandle(Factory(cfg))
}

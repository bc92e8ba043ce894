// Package gateway declares the API Gateway operations run through the
// pipeline executor. Each operation is a descriptor plus the functions that
// build its SDK input from the execution context and make the call.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/wolfeidau/gwctl/internal/pipeline"
)

// API is the subset of the API Gateway client used by the declared operations.
type API interface {
	GetApiKey(ctx context.Context, params *apigateway.GetApiKeyInput, optFns ...func(*apigateway.Options)) (*apigateway.GetApiKeyOutput, error)
	GetApiKeys(ctx context.Context, params *apigateway.GetApiKeysInput, optFns ...func(*apigateway.Options)) (*apigateway.GetApiKeysOutput, error)
	CreateApiKey(ctx context.Context, params *apigateway.CreateApiKeyInput, optFns ...func(*apigateway.Options)) (*apigateway.CreateApiKeyOutput, error)
	UpdateApiKey(ctx context.Context, params *apigateway.UpdateApiKeyInput, optFns ...func(*apigateway.Options)) (*apigateway.UpdateApiKeyOutput, error)
	DeleteApiKey(ctx context.Context, params *apigateway.DeleteApiKeyInput, optFns ...func(*apigateway.Options)) (*apigateway.DeleteApiKeyOutput, error)

	GetRestApi(ctx context.Context, params *apigateway.GetRestApiInput, optFns ...func(*apigateway.Options)) (*apigateway.GetRestApiOutput, error)
	GetRestApis(ctx context.Context, params *apigateway.GetRestApisInput, optFns ...func(*apigateway.Options)) (*apigateway.GetRestApisOutput, error)
	DeleteRestApi(ctx context.Context, params *apigateway.DeleteRestApiInput, optFns ...func(*apigateway.Options)) (*apigateway.DeleteRestApiOutput, error)

	GetUsagePlan(ctx context.Context, params *apigateway.GetUsagePlanInput, optFns ...func(*apigateway.Options)) (*apigateway.GetUsagePlanOutput, error)
	GetUsagePlans(ctx context.Context, params *apigateway.GetUsagePlansInput, optFns ...func(*apigateway.Options)) (*apigateway.GetUsagePlansOutput, error)
	DeleteUsagePlan(ctx context.Context, params *apigateway.DeleteUsagePlanInput, optFns ...func(*apigateway.Options)) (*apigateway.DeleteUsagePlanOutput, error)
}

var _ API = (*apigateway.Client)(nil)

// ErrMissingParameter is returned when a required parameter was not bound.
var ErrMissingParameter = errors.New("missing required parameter")

// Parameter names shared by the CLI binding and the request builders.
const (
	ParamAPIKey             = "apiKey"
	ParamIncludeValue       = "includeValue"
	ParamIncludeValues      = "includeValues"
	ParamName               = "name"
	ParamNameQuery          = "nameQuery"
	ParamDescription        = "description"
	ParamEnabled            = "enabled"
	ParamValue              = "value"
	ParamCustomerID         = "customerId"
	ParamGenerateDistinctID = "generateDistinctId"
	ParamTags               = "tags"
	ParamLimit              = "limit"
	ParamPosition           = "position"
	ParamRestAPIID          = "restApiId"
	ParamUsagePlanID        = "usagePlanId"
	ParamKeyID              = "keyId"
)

func required(ec *pipeline.ExecContext, name string) (*string, error) {
	v, ok := pipeline.Value[string](ec, name)
	if !ok || v == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingParameter, name)
	}
	return aws.String(v), nil
}

func optString(ec *pipeline.ExecContext, name string) *string {
	if v, ok := pipeline.Value[string](ec, name); ok {
		return aws.String(v)
	}
	return nil
}

func optBool(ec *pipeline.ExecContext, name string) *bool {
	if v, ok := pipeline.Value[bool](ec, name); ok {
		return aws.Bool(v)
	}
	return nil
}

func optInt32(ec *pipeline.ExecContext, name string) *int32 {
	if v, ok := pipeline.Value[int32](ec, name); ok {
		return aws.Int32(v)
	}
	return nil
}

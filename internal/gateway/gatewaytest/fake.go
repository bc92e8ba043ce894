// Package gatewaytest provides an in-memory API Gateway client for tests.
package gatewaytest

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/wolfeidau/gwctl/internal/gateway"
)

// Fake records the inputs it receives and returns canned outputs. When Err is
// set every call fails with it.
type Fake struct {
	Calls  []string
	Inputs []any
	Err    error

	APIKeys *apigateway.GetApiKeysOutput
}

var _ gateway.API = (*Fake)(nil)

func (f *Fake) record(op string, in any) error {
	f.Calls = append(f.Calls, op)
	f.Inputs = append(f.Inputs, in)
	return f.Err
}

// Last returns the most recent input.
func (f *Fake) Last() any {
	if len(f.Inputs) == 0 {
		return nil
	}
	return f.Inputs[len(f.Inputs)-1]
}

func (f *Fake) GetApiKey(ctx context.Context, in *apigateway.GetApiKeyInput, _ ...func(*apigateway.Options)) (*apigateway.GetApiKeyOutput, error) {
	if err := f.record("GetApiKey", in); err != nil {
		return nil, err
	}
	return &apigateway.GetApiKeyOutput{Id: in.ApiKey, Name: in.ApiKey}, nil
}

func (f *Fake) GetApiKeys(ctx context.Context, in *apigateway.GetApiKeysInput, _ ...func(*apigateway.Options)) (*apigateway.GetApiKeysOutput, error) {
	if err := f.record("GetApiKeys", in); err != nil {
		return nil, err
	}
	if f.APIKeys != nil {
		return f.APIKeys, nil
	}
	return &apigateway.GetApiKeysOutput{}, nil
}

func (f *Fake) CreateApiKey(ctx context.Context, in *apigateway.CreateApiKeyInput, _ ...func(*apigateway.Options)) (*apigateway.CreateApiKeyOutput, error) {
	if err := f.record("CreateApiKey", in); err != nil {
		return nil, err
	}
	return &apigateway.CreateApiKeyOutput{Name: in.Name, Enabled: in.Enabled}, nil
}

func (f *Fake) UpdateApiKey(ctx context.Context, in *apigateway.UpdateApiKeyInput, _ ...func(*apigateway.Options)) (*apigateway.UpdateApiKeyOutput, error) {
	if err := f.record("UpdateApiKey", in); err != nil {
		return nil, err
	}
	return &apigateway.UpdateApiKeyOutput{Id: in.ApiKey}, nil
}

func (f *Fake) DeleteApiKey(ctx context.Context, in *apigateway.DeleteApiKeyInput, _ ...func(*apigateway.Options)) (*apigateway.DeleteApiKeyOutput, error) {
	if err := f.record("DeleteApiKey", in); err != nil {
		return nil, err
	}
	return &apigateway.DeleteApiKeyOutput{}, nil
}

func (f *Fake) GetRestApi(ctx context.Context, in *apigateway.GetRestApiInput, _ ...func(*apigateway.Options)) (*apigateway.GetRestApiOutput, error) {
	if err := f.record("GetRestApi", in); err != nil {
		return nil, err
	}
	return &apigateway.GetRestApiOutput{Id: in.RestApiId}, nil
}

func (f *Fake) GetRestApis(ctx context.Context, in *apigateway.GetRestApisInput, _ ...func(*apigateway.Options)) (*apigateway.GetRestApisOutput, error) {
	if err := f.record("GetRestApis", in); err != nil {
		return nil, err
	}
	return &apigateway.GetRestApisOutput{}, nil
}

func (f *Fake) DeleteRestApi(ctx context.Context, in *apigateway.DeleteRestApiInput, _ ...func(*apigateway.Options)) (*apigateway.DeleteRestApiOutput, error) {
	if err := f.record("DeleteRestApi", in); err != nil {
		return nil, err
	}
	return &apigateway.DeleteRestApiOutput{}, nil
}

func (f *Fake) GetUsagePlan(ctx context.Context, in *apigateway.GetUsagePlanInput, _ ...func(*apigateway.Options)) (*apigateway.GetUsagePlanOutput, error) {
	if err := f.record("GetUsagePlan", in); err != nil {
		return nil, err
	}
	return &apigateway.GetUsagePlanOutput{Id: in.UsagePlanId}, nil
}

func (f *Fake) GetUsagePlans(ctx context.Context, in *apigateway.GetUsagePlansInput, _ ...func(*apigateway.Options)) (*apigateway.GetUsagePlansOutput, error) {
	if err := f.record("GetUsagePlans", in); err != nil {
		return nil, err
	}
	return &apigateway.GetUsagePlansOutput{}, nil
}

func (f *Fake) DeleteUsagePlan(ctx context.Context, in *apigateway.DeleteUsagePlanInput, _ ...func(*apigateway.Options)) (*apigateway.DeleteUsagePlanOutput, error) {
	if err := f.record("DeleteUsagePlan", in); err != nil {
		return nil, err
	}
	return &apigateway.DeleteUsagePlanOutput{}, nil
}

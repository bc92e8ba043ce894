package gateway

import (
	"context"
	"errors"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/aws/aws-sdk-go-v2/service/apigateway/types"
	"github.com/wolfeidau/gwctl/internal/pipeline"
)

var GetAPIKey = pipeline.Operation[API, apigateway.GetApiKeyInput, apigateway.GetApiKeyOutput]{
	Descriptor: pipeline.Descriptor{
		Name:     "GetApiKey",
		Noun:     "API key",
		Identity: []string{ParamAPIKey},
	},
	Build: func(ec *pipeline.ExecContext) (*apigateway.GetApiKeyInput, error) {
		id, err := required(ec, ParamAPIKey)
		if err != nil {
			return nil, err
		}
		return &apigateway.GetApiKeyInput{
			ApiKey:       id,
			IncludeValue: optBool(ec, ParamIncludeValue),
		}, nil
	},
	Call: func(ctx context.Context, api API, in *apigateway.GetApiKeyInput) (*apigateway.GetApiKeyOutput, error) {
		return api.GetApiKey(ctx, in)
	},
}

var ListAPIKeys = pipeline.Operation[API, apigateway.GetApiKeysInput, apigateway.GetApiKeysOutput]{
	Descriptor: pipeline.Descriptor{
		Name: "GetApiKeys",
		Noun: "API keys",
	},
	PreLoad: normalizeLimit,
	Build: func(ec *pipeline.ExecContext) (*apigateway.GetApiKeysInput, error) {
		return &apigateway.GetApiKeysInput{
			CustomerId:    optString(ec, ParamCustomerID),
			IncludeValues: optBool(ec, ParamIncludeValues),
			Limit:         optInt32(ec, ParamLimit),
			NameQuery:     optString(ec, ParamNameQuery),
			Position:      optString(ec, ParamPosition),
		}, nil
	},
	Call: func(ctx context.Context, api API, in *apigateway.GetApiKeysInput) (*apigateway.GetApiKeysOutput, error) {
		return api.GetApiKeys(ctx, in)
	},
	Notes: func(out *apigateway.GetApiKeysOutput) []string {
		return out.Warnings
	},
}

var CreateAPIKey = pipeline.Operation[API, apigateway.CreateApiKeyInput, apigateway.CreateApiKeyOutput]{
	Descriptor: pipeline.Descriptor{
		Name:     "CreateApiKey",
		Noun:     "API key",
		Identity: []string{ParamName},
	},
	Build: func(ec *pipeline.ExecContext) (*apigateway.CreateApiKeyInput, error) {
		in := &apigateway.CreateApiKeyInput{
			CustomerId:  optString(ec, ParamCustomerID),
			Description: optString(ec, ParamDescription),
			Name:        optString(ec, ParamName),
			Value:       optString(ec, ParamValue),
		}

		// the SDK models these as plain bools, unbound leaves the service default (false)
		if v, ok := pipeline.Value[bool](ec, ParamEnabled); ok {
			in.Enabled = v
		}
		if v, ok := pipeline.Value[bool](ec, ParamGenerateDistinctID); ok {
			in.GenerateDistinctId = v
		}

		if tags, ok := pipeline.Value[map[string]string](ec, ParamTags); ok && len(tags) > 0 {
			in.Tags = tags
		}

		return in, nil
	},
	Call: func(ctx context.Context, api API, in *apigateway.CreateApiKeyInput) (*apigateway.CreateApiKeyOutput, error) {
		return api.CreateApiKey(ctx, in)
	},
}

// apiKeyPatchPaths maps the updatable parameters to their patch paths.
var apiKeyPatchPaths = []struct {
	param string
	path  string
}{
	{ParamName, "/name"},
	{ParamDescription, "/description"},
	{ParamEnabled, "/enabled"},
	{ParamCustomerID, "/customerId"},
}

var UpdateAPIKey = pipeline.Operation[API, apigateway.UpdateApiKeyInput, apigateway.UpdateApiKeyOutput]{
	Descriptor: pipeline.Descriptor{
		Name:     "UpdateApiKey",
		Noun:     "API key",
		Identity: []string{ParamAPIKey},
	},
	PostLoad: func(ec *pipeline.ExecContext) error {
		for _, p := range apiKeyPatchPaths {
			if ec.Has(p.param) {
				return nil
			}
		}
		return errors.New("nothing to update, pass at least one of --name, --description, --enabled, --customer-id")
	},
	Build: func(ec *pipeline.ExecContext) (*apigateway.UpdateApiKeyInput, error) {
		id, err := required(ec, ParamAPIKey)
		if err != nil {
			return nil, err
		}
		return &apigateway.UpdateApiKeyInput{
			ApiKey:          id,
			PatchOperations: patchOperations(ec),
		}, nil
	},
	Call: func(ctx context.Context, api API, in *apigateway.UpdateApiKeyInput) (*apigateway.UpdateApiKeyOutput, error) {
		return api.UpdateApiKey(ctx, in)
	},
}

// patchOperations emits one replace per bound field so untouched fields keep
// their server side values.
func patchOperations(ec *pipeline.ExecContext) []types.PatchOperation {
	var ops []types.PatchOperation
	for _, p := range apiKeyPatchPaths {
		var value string
		if p.param == ParamEnabled {
			v, ok := pipeline.Value[bool](ec, p.param)
			if !ok {
				continue
			}
			value = strconv.FormatBool(v)
		} else {
			v, ok := pipeline.Value[string](ec, p.param)
			if !ok {
				continue
			}
			value = v
		}

		ops = append(ops, types.PatchOperation{
			Op:    types.OpReplace,
			Path:  aws.String(p.path),
			Value: aws.String(value),
		})
	}
	return ops
}

var DeleteAPIKey = pipeline.Operation[API, apigateway.DeleteApiKeyInput, apigateway.DeleteApiKeyOutput]{
	Descriptor: pipeline.Descriptor{
		Name:        "DeleteApiKey",
		Noun:        "API key",
		Destructive: true,
		Impact:      pipeline.ImpactHigh,
		Identity:    []string{ParamAPIKey},
		Policy:      pipeline.Identifier,
	},
	Build: func(ec *pipeline.ExecContext) (*apigateway.DeleteApiKeyInput, error) {
		id, err := required(ec, ParamAPIKey)
		if err != nil {
			return nil, err
		}
		return &apigateway.DeleteApiKeyInput{ApiKey: id}, nil
	},
	Call: func(ctx context.Context, api API, in *apigateway.DeleteApiKeyInput) (*apigateway.DeleteApiKeyOutput, error) {
		return api.DeleteApiKey(ctx, in)
	},
}

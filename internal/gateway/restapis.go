package gateway

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/wolfeidau/gwctl/internal/pipeline"
)

var GetRestAPI = pipeline.Operation[API, apigateway.GetRestApiInput, apigateway.GetRestApiOutput]{
	Descriptor: pipeline.Descriptor{
		Name:     "GetRestApi",
		Noun:     "REST API",
		Identity: []string{ParamRestAPIID},
	},
	Build: func(ec *pipeline.ExecContext) (*apigateway.GetRestApiInput, error) {
		id, err := required(ec, ParamRestAPIID)
		if err != nil {
			return nil, err
		}
		return &apigateway.GetRestApiInput{RestApiId: id}, nil
	},
	Call: func(ctx context.Context, api API, in *apigateway.GetRestApiInput) (*apigateway.GetRestApiOutput, error) {
		return api.GetRestApi(ctx, in)
	},
}

var ListRestAPIs = pipeline.Operation[API, apigateway.GetRestApisInput, apigateway.GetRestApisOutput]{
	Descriptor: pipeline.Descriptor{
		Name: "GetRestApis",
		Noun: "REST APIs",
	},
	PreLoad: normalizeLimit,
	Build: func(ec *pipeline.ExecContext) (*apigateway.GetRestApisInput, error) {
		return &apigateway.GetRestApisInput{
			Limit:    optInt32(ec, ParamLimit),
			Position: optString(ec, ParamPosition),
		}, nil
	},
	Call: func(ctx context.Context, api API, in *apigateway.GetRestApisInput) (*apigateway.GetRestApisOutput, error) {
		return api.GetRestApis(ctx, in)
	},
}

var DeleteRestAPI = pipeline.Operation[API, apigateway.DeleteRestApiInput, apigateway.DeleteRestApiOutput]{
	Descriptor: pipeline.Descriptor{
		Name:        "DeleteRestApi",
		Noun:        "REST API",
		Destructive: true,
		Impact:      pipeline.ImpactHigh,
		Identity:    []string{ParamRestAPIID},
		Policy:      pipeline.Identifier,
	},
	Build: func(ec *pipeline.ExecContext) (*apigateway.DeleteRestApiInput, error) {
		id, err := required(ec, ParamRestAPIID)
		if err != nil {
			return nil, err
		}
		return &apigateway.DeleteRestApiInput{RestApiId: id}, nil
	},
	Call: func(ctx context.Context, api API, in *apigateway.DeleteRestApiInput) (*apigateway.DeleteRestApiOutput, error) {
		return api.DeleteRestApi(ctx, in)
	},
}

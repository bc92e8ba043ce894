package gateway

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/wolfeidau/gwctl/internal/pipeline"
)

var GetUsagePlan = pipeline.Operation[API, apigateway.GetUsagePlanInput, apigateway.GetUsagePlanOutput]{
	Descriptor: pipeline.Descriptor{
		Name:     "GetUsagePlan",
		Noun:     "usage plan",
		Identity: []string{ParamUsagePlanID},
	},
	Build: func(ec *pipeline.ExecContext) (*apigateway.GetUsagePlanInput, error) {
		id, err := required(ec, ParamUsagePlanID)
		if err != nil {
			return nil, err
		}
		return &apigateway.GetUsagePlanInput{UsagePlanId: id}, nil
	},
	Call: func(ctx context.Context, api API, in *apigateway.GetUsagePlanInput) (*apigateway.GetUsagePlanOutput, error) {
		return api.GetUsagePlan(ctx, in)
	},
}

var ListUsagePlans = pipeline.Operation[API, apigateway.GetUsagePlansInput, apigateway.GetUsagePlansOutput]{
	Descriptor: pipeline.Descriptor{
		Name: "GetUsagePlans",
		Noun: "usage plans",
	},
	PreLoad: normalizeLimit,
	Build: func(ec *pipeline.ExecContext) (*apigateway.GetUsagePlansInput, error) {
		return &apigateway.GetUsagePlansInput{
			KeyId:    optString(ec, ParamKeyID),
			Limit:    optInt32(ec, ParamLimit),
			Position: optString(ec, ParamPosition),
		}, nil
	},
	Call: func(ctx context.Context, api API, in *apigateway.GetUsagePlansInput) (*apigateway.GetUsagePlansOutput, error) {
		return api.GetUsagePlans(ctx, in)
	},
}

// DeleteUsagePlan is medium impact: keys attached to the plan survive.
var DeleteUsagePlan = pipeline.Operation[API, apigateway.DeleteUsagePlanInput, apigateway.DeleteUsagePlanOutput]{
	Descriptor: pipeline.Descriptor{
		Name:        "DeleteUsagePlan",
		Noun:        "usage plan",
		Destructive: true,
		Impact:      pipeline.ImpactMedium,
		Identity:    []string{ParamUsagePlanID},
		Policy:      pipeline.Identifier,
	},
	Build: func(ec *pipeline.ExecContext) (*apigateway.DeleteUsagePlanInput, error) {
		id, err := required(ec, ParamUsagePlanID)
		if err != nil {
			return nil, err
		}
		return &apigateway.DeleteUsagePlanInput{UsagePlanId: id}, nil
	},
	Call: func(ctx context.Context, api API, in *apigateway.DeleteUsagePlanInput) (*apigateway.DeleteUsagePlanOutput, error) {
		return api.DeleteUsagePlan(ctx, in)
	},
}

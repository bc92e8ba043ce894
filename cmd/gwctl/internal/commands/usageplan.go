package commands

import (
	"context"

	"github.com/wolfeidau/gwctl/internal/gateway"
	"github.com/wolfeidau/gwctl/internal/pipeline"
)

// UsagePlanCmd manages API Gateway usage plans.
type UsagePlanCmd struct {
	Get    UsagePlanGetCmd    `cmd:"" help:"Get usage plans by ID"`
	List   UsagePlanListCmd   `cmd:"" help:"List usage plans"`
	Delete UsagePlanDeleteCmd `cmd:"" help:"Delete usage plans"`
}

type UsagePlanGetCmd struct {
	IDs []string `arg:"" name:"id" help:"Usage plan IDs, - reads them from stdin"`
}

func (c *UsagePlanGetCmd) Run(ctx context.Context, globals *Globals) error {
	inputs, err := perID(globals, c.IDs, gateway.ParamUsagePlanID, pipeline.NewParams())
	if err != nil {
		return err
	}

	return run(ctx, globals, gateway.GetUsagePlan, inputs, false)
}

type UsagePlanListCmd struct {
	KeyID    *string `name:"key-id" help:"Only plans associated with this API key"`
	Limit    *int    `help:"Maximum number of plans per page (1-500)"`
	Position *string `help:"Page token from a previous list"`
}

func (c *UsagePlanListCmd) Run(ctx context.Context, globals *Globals) error {
	params := pipeline.NewParams()
	pipeline.Bind(&params, gateway.ParamKeyID, c.KeyID)
	pipeline.Bind(&params, gateway.ParamLimit, c.Limit)
	pipeline.Bind(&params, gateway.ParamPosition, c.Position)

	return run(ctx, globals, gateway.ListUsagePlans, []pipeline.Params{params}, false)
}

type UsagePlanDeleteCmd struct {
	IDs   []string `arg:"" name:"id" help:"Usage plan IDs, - reads them from stdin"`
	Force bool     `help:"Skip confirmation" default:"false"`
}

func (c *UsagePlanDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	inputs, err := perID(globals, c.IDs, gateway.ParamUsagePlanID, pipeline.NewParams())
	if err != nil {
		return err
	}

	return run(ctx, globals, gateway.DeleteUsagePlan, inputs, c.Force)
}

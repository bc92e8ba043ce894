package commands

import (
	"context"

	"github.com/wolfeidau/gwctl/internal/gateway"
	"github.com/wolfeidau/gwctl/internal/pipeline"
)

// RestAPICmd manages API Gateway REST APIs.
type RestAPICmd struct {
	Get    RestAPIGetCmd    `cmd:"" help:"Get REST APIs by ID"`
	List   RestAPIListCmd   `cmd:"" help:"List REST APIs"`
	Delete RestAPIDeleteCmd `cmd:"" help:"Delete REST APIs"`
}

type RestAPIGetCmd struct {
	IDs []string `arg:"" name:"id" help:"REST API IDs, - reads them from stdin"`
}

func (c *RestAPIGetCmd) Run(ctx context.Context, globals *Globals) error {
	inputs, err := perID(globals, c.IDs, gateway.ParamRestAPIID, pipeline.NewParams())
	if err != nil {
		return err
	}

	return run(ctx, globals, gateway.GetRestAPI, inputs, false)
}

type RestAPIListCmd struct {
	Limit    *int    `help:"Maximum number of APIs per page (1-500)"`
	Position *string `help:"Page token from a previous list"`
}

func (c *RestAPIListCmd) Run(ctx context.Context, globals *Globals) error {
	params := pipeline.NewParams()
	pipeline.Bind(&params, gateway.ParamLimit, c.Limit)
	pipeline.Bind(&params, gateway.ParamPosition, c.Position)

	return run(ctx, globals, gateway.ListRestAPIs, []pipeline.Params{params}, false)
}

type RestAPIDeleteCmd struct {
	IDs   []string `arg:"" name:"id" help:"REST API IDs, - reads them from stdin"`
	Force bool     `help:"Skip confirmation" default:"false"`
}

func (c *RestAPIDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	inputs, err := perID(globals, c.IDs, gateway.ParamRestAPIID, pipeline.NewParams())
	if err != nil {
		return err
	}

	return run(ctx, globals, gateway.DeleteRestAPI, inputs, c.Force)
}

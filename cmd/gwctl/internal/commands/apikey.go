package commands

import (
	"context"

	"github.com/wolfeidau/gwctl/internal/gateway"
	"github.com/wolfeidau/gwctl/internal/pipeline"
)

// APIKeyCmd manages API Gateway API keys.
type APIKeyCmd struct {
	Get    APIKeyGetCmd    `cmd:"" help:"Get API keys by ID"`
	List   APIKeyListCmd   `cmd:"" help:"List API keys"`
	Create APIKeyCreateCmd `cmd:"" help:"Create an API key"`
	Update APIKeyUpdateCmd `cmd:"" help:"Update an API key"`
	Delete APIKeyDeleteCmd `cmd:"" help:"Delete API keys"`
}

type APIKeyGetCmd struct {
	IDs          []string `arg:"" name:"id" help:"API key IDs, - reads them from stdin"`
	IncludeValue *bool    `help:"Include the key value in the response"`
}

func (c *APIKeyGetCmd) Run(ctx context.Context, globals *Globals) error {
	shared := pipeline.NewParams()
	pipeline.Bind(&shared, gateway.ParamIncludeValue, c.IncludeValue)

	inputs, err := perID(globals, c.IDs, gateway.ParamAPIKey, shared)
	if err != nil {
		return err
	}

	return run(ctx, globals, gateway.GetAPIKey, inputs, false)
}

type APIKeyListCmd struct {
	NameQuery     *string `help:"Only keys whose name starts with this prefix"`
	CustomerID    *string `name:"customer-id" help:"Only keys for this customer"`
	IncludeValues *bool   `help:"Include key values in the response"`
	Limit         *int    `help:"Maximum number of keys per page (1-500)"`
	Position      *string `help:"Page token from a previous list"`
}

func (c *APIKeyListCmd) Run(ctx context.Context, globals *Globals) error {
	params := pipeline.NewParams()
	pipeline.Bind(&params, gateway.ParamNameQuery, c.NameQuery)
	pipeline.Bind(&params, gateway.ParamCustomerID, c.CustomerID)
	pipeline.Bind(&params, gateway.ParamIncludeValues, c.IncludeValues)
	pipeline.Bind(&params, gateway.ParamLimit, c.Limit)
	pipeline.Bind(&params, gateway.ParamPosition, c.Position)

	return run(ctx, globals, gateway.ListAPIKeys, []pipeline.Params{params}, false)
}

type APIKeyCreateCmd struct {
	Name               *string           `help:"Key name" required:""`
	Description        *string           `help:"Key description"`
	Enabled            *bool             `help:"Enable the key"`
	Value              *string           `help:"Key value, generated when omitted"`
	CustomerID         *string           `name:"customer-id" help:"AWS Marketplace customer ID"`
	GenerateDistinctID *bool             `name:"generate-distinct-id" help:"Generate a distinct key identifier"`
	Tags               map[string]string `name:"tag" help:"Tags as key=value, repeatable"`
}

func (c *APIKeyCreateCmd) Run(ctx context.Context, globals *Globals) error {
	params := pipeline.NewParams()
	pipeline.Bind(&params, gateway.ParamName, c.Name)
	pipeline.Bind(&params, gateway.ParamDescription, c.Description)
	pipeline.Bind(&params, gateway.ParamEnabled, c.Enabled)
	pipeline.Bind(&params, gateway.ParamValue, c.Value)
	pipeline.Bind(&params, gateway.ParamCustomerID, c.CustomerID)
	pipeline.Bind(&params, gateway.ParamGenerateDistinctID, c.GenerateDistinctID)
	if len(c.Tags) > 0 {
		params.Set(gateway.ParamTags, c.Tags)
	}

	return run(ctx, globals, gateway.CreateAPIKey, []pipeline.Params{params}, false)
}

type APIKeyUpdateCmd struct {
	ID          string  `arg:"" help:"API key ID"`
	Name        *string `help:"New key name"`
	Description *string `help:"New key description"`
	Enabled     *bool   `help:"Enable or disable the key (--enabled=false)"`
	CustomerID  *string `name:"customer-id" help:"New AWS Marketplace customer ID"`
}

func (c *APIKeyUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	params := pipeline.NewParams()
	params.Set(gateway.ParamAPIKey, c.ID)
	pipeline.Bind(&params, gateway.ParamName, c.Name)
	pipeline.Bind(&params, gateway.ParamDescription, c.Description)
	pipeline.Bind(&params, gateway.ParamEnabled, c.Enabled)
	pipeline.Bind(&params, gateway.ParamCustomerID, c.CustomerID)

	return run(ctx, globals, gateway.UpdateAPIKey, []pipeline.Params{params}, false)
}

type APIKeyDeleteCmd struct {
	IDs   []string `arg:"" name:"id" help:"API key IDs, - reads them from stdin"`
	Force bool     `help:"Skip confirmation" default:"false"`
}

func (c *APIKeyDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	inputs, err := perID(globals, c.IDs, gateway.ParamAPIKey, pipeline.NewParams())
	if err != nil {
		return err
	}

	return run(ctx, globals, gateway.DeleteAPIKey, inputs, c.Force)
}

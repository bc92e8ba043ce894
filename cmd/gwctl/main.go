package main

import (
	"context"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/gwctl/cmd/gwctl/internal/commands"
	"github.com/wolfeidau/gwctl/internal/logger"
)

var (
	version = "dev"
	cli     struct {
		APIKey    commands.APIKeyCmd    `cmd:"" name:"apikey" help:"Manage API keys"`
		RestAPI   commands.RestAPICmd   `cmd:"" name:"restapi" help:"Manage REST APIs"`
		UsagePlan commands.UsagePlanCmd `cmd:"" name:"usageplan" help:"Manage usage plans"`
		Profile   commands.ProfileCmd   `cmd:"" help:"Manage gwctl profiles"`
		History   commands.HistoryCmd   `cmd:"" help:"Inspect recorded invocations"`

		Region          string        `help:"AWS region" env:"GWCTL_REGION"`
		Endpoint        string        `help:"API Gateway endpoint URL override" env:"GWCTL_ENDPOINT"`
		AWSProfile      string        `name:"aws-profile" help:"AWS shared config profile" env:"GWCTL_AWS_PROFILE"`
		UseProfile      string        `name:"profile" short:"p" help:"gwctl profile, the default profile when empty" env:"GWCTL_PROFILE"`
		AccessKeyID     string        `name:"access-key-id" help:"Static AWS access key ID" env:"GWCTL_ACCESS_KEY_ID"`
		SecretAccessKey string        `name:"secret-access-key" help:"Static AWS secret access key" env:"GWCTL_SECRET_ACCESS_KEY"`
		SessionToken    string        `name:"session-token" help:"Static AWS session token" env:"GWCTL_SESSION_TOKEN"`
		MaxAttempts     int           `help:"Maximum SDK attempts per call, 0 keeps the SDK default" env:"GWCTL_MAX_ATTEMPTS"`
		Timeout         time.Duration `help:"HTTP client timeout" default:"30s" env:"GWCTL_TIMEOUT"`
		Output          string        `short:"o" help:"Output format" enum:"json,yaml,text" default:"json" env:"GWCTL_OUTPUT"`
		ConfirmImpact   string        `help:"Lowest impact that asks for confirmation" enum:"none,low,medium,high" default:"low" env:"GWCTL_CONFIRM_IMPACT"`
		Tracing         bool          `help:"Export traces and metrics over OTLP" env:"GWCTL_TRACING"`
		NoHistory       bool          `help:"Do not record invocations to the history file" env:"GWCTL_NO_HISTORY"`
		ProfileDir      string        `help:"Custom profiles directory" env:"GWCTL_PROFILE_DIR"`
		HistoryFile     string        `help:"Custom history file" env:"GWCTL_HISTORY_FILE"`
		Debug           bool          `help:"Enable debug mode." env:"GWCTL_DEBUG"`
		Version         kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Name("gwctl"),
		kong.Description("Manage Amazon API Gateway resources."),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))

	// stores log through the global logger
	log.Logger = logger.Setup(cli.Debug, nil)

	err := cmd.Run(&commands.Globals{
		Debug:           cli.Debug,
		Version:         version,
		Region:          cli.Region,
		Endpoint:        cli.Endpoint,
		AWSProfile:      cli.AWSProfile,
		Profile:         cli.UseProfile,
		AccessKeyID:     cli.AccessKeyID,
		SecretAccessKey: cli.SecretAccessKey,
		SessionToken:    cli.SessionToken,
		MaxAttempts:     cli.MaxAttempts,
		Timeout:         cli.Timeout,
		Output:          cli.Output,
		ConfirmImpact:   cli.ConfirmImpact,
		Tracing:         cli.Tracing,
		NoHistory:       cli.NoHistory,
		ProfileDir:      cli.ProfileDir,
		HistoryFile:     cli.HistoryFile,
	})
	cmd.FatalIfErrorf(err)
}

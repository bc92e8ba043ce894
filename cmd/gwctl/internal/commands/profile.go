package commands

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/wolfeidau/gwctl/internal/profile"
)

// ProfileCmd manages local gwctl profiles.
type ProfileCmd struct {
	List       ProfileListCmd       `cmd:"" help:"List all profiles"`
	Show       ProfileShowCmd       `cmd:"" help:"Show profile details"`
	Set        ProfileSetCmd        `cmd:"" help:"Create or update a profile"`
	Delete     ProfileDeleteCmd     `cmd:"" help:"Delete a profile"`
	SetDefault ProfileSetDefaultCmd `cmd:"" name:"set-default" help:"Set the default profile"`
}

func openProfiles(globals *Globals) (*profile.Store, error) {
	store, err := profile.NewStore(globals.ProfileDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize profile store: %w", err)
	}
	return store, nil
}

func notFound(name string, err error) error {
	if errors.Is(err, profile.ErrProfileNotFound) {
		return fmt.Errorf("profile %q not found\n\nRun 'gwctl profile list' to see available profiles", name)
	}
	return fmt.Errorf("profile %q: %w", name, err)
}

// ProfileListCmd lists all profiles.
type ProfileListCmd struct{}

func (c *ProfileListCmd) Run(ctx context.Context, globals *Globals) error {
	store, err := openProfiles(globals)
	if err != nil {
		return err
	}

	profiles, err := store.List()
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	out := globals.stdout()

	if len(profiles) == 0 {
		fmt.Fprintln(out, "No profiles found.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "To create a new profile:")
		fmt.Fprintln(out, "  gwctl profile set <name> --region <region>")
		return nil
	}

	defaultName, err := store.DefaultName()
	if err != nil {
		return fmt.Errorf("failed to read default profile: %w", err)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tREGION\tENDPOINT\tAWS PROFILE\tDEFAULT")

	for _, p := range profiles {
		isDefault := ""
		if p.Name == defaultName {
			isDefault = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.Name, dash(p.Region), dash(p.Endpoint), dash(p.AWSProfile), isDefault)
	}

	return w.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// ProfileShowCmd shows details of a profile.
type ProfileShowCmd struct {
	Name string `arg:"" help:"Profile name"`
}

func (c *ProfileShowCmd) Run(ctx context.Context, globals *Globals) error {
	store, err := openProfiles(globals)
	if err != nil {
		return err
	}

	p, err := store.Get(c.Name)
	if err != nil {
		return notFound(c.Name, err)
	}

	out := globals.stdout()
	fmt.Fprintf(out, "Name:         %s\n", p.Name)
	fmt.Fprintf(out, "Region:       %s\n", dash(p.Region))
	fmt.Fprintf(out, "Endpoint:     %s\n", dash(p.Endpoint))
	fmt.Fprintf(out, "AWS Profile:  %s\n", dash(p.AWSProfile))
	fmt.Fprintf(out, "Created:      %s\n", p.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Updated:      %s\n", p.UpdatedAt.Format("2006-01-02 15:04:05"))

	return nil
}

// ProfileSetCmd creates or replaces a profile from the global --region,
// --endpoint and --aws-profile flags.
type ProfileSetCmd struct {
	Name string `arg:"" help:"Profile name"`
}

func (c *ProfileSetCmd) Run(ctx context.Context, globals *Globals) error {
	store, err := openProfiles(globals)
	if err != nil {
		return err
	}

	p, err := store.Set(profile.Profile{
		Name:       c.Name,
		Region:     globals.Region,
		Endpoint:   globals.Endpoint,
		AWSProfile: globals.AWSProfile,
	})
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	fmt.Fprintf(globals.stdout(), "Profile %q saved.\n", p.Name)
	return nil
}

// ProfileDeleteCmd deletes a profile.
type ProfileDeleteCmd struct {
	Name string `arg:"" help:"Profile name"`
}

func (c *ProfileDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	store, err := openProfiles(globals)
	if err != nil {
		return err
	}

	if err := store.Delete(c.Name); err != nil {
		return notFound(c.Name, err)
	}

	fmt.Fprintf(globals.stdout(), "Profile %q deleted.\n", c.Name)
	return nil
}

// ProfileSetDefaultCmd sets the default profile.
type ProfileSetDefaultCmd struct {
	Name string `arg:"" help:"Profile name"`
}

func (c *ProfileSetDefaultCmd) Run(ctx context.Context, globals *Globals) error {
	store, err := openProfiles(globals)
	if err != nil {
		return err
	}

	if err := store.SetDefault(c.Name); err != nil {
		return notFound(c.Name, err)
	}

	fmt.Fprintf(globals.stdout(), "Default profile set to %q.\n", c.Name)
	return nil
}

package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wolfeidau/gwctl/internal/history"
	"github.com/wolfeidau/gwctl/internal/output"
)

// HistoryCmd inspects recorded invocations.
type HistoryCmd struct {
	List  HistoryListCmd  `cmd:"" help:"List recent invocations, newest first"`
	Show  HistoryShowCmd  `cmd:"" help:"Show a recorded invocation with its service response"`
	Clear HistoryClearCmd `cmd:"" help:"Remove all recorded invocations"`
}

type historyListing struct {
	Items []history.Entry
}

type HistoryListCmd struct {
	Limit int `help:"Maximum number of entries to show, 0 for all" default:"20"`
}

func (c *HistoryListCmd) Run(ctx context.Context, globals *Globals) error {
	store, printer, err := openHistory(globals)
	if err != nil {
		return err
	}

	entries, err := store.List(ctx, c.Limit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	return printer.Print(historyListing{Items: entries})
}

type HistoryShowCmd struct {
	ID string `arg:"" help:"Entry ID"`
}

func (c *HistoryShowCmd) Run(ctx context.Context, globals *Globals) error {
	id, err := uuid.Parse(c.ID)
	if err != nil {
		return fmt.Errorf("invalid entry id %q: %w", c.ID, err)
	}

	store, printer, err := openHistory(globals)
	if err != nil {
		return err
	}

	entry, err := store.Get(ctx, id)
	if errors.Is(err, history.ErrEntryNotFound) {
		return fmt.Errorf("history entry %s not found\n\nRun 'gwctl history list' to see recorded invocations", id)
	}
	if err != nil {
		return fmt.Errorf("failed to get history entry: %w", err)
	}

	return printer.Print(entry)
}

type HistoryClearCmd struct{}

func (c *HistoryClearCmd) Run(ctx context.Context, globals *Globals) error {
	store, _, err := openHistory(globals)
	if err != nil {
		return err
	}

	if err := store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	fmt.Fprintln(globals.stdout(), "History cleared.")
	return nil
}

func openHistory(globals *Globals) (history.Store, *output.Printer, error) {
	format, err := output.ParseFormat(globals.Output)
	if err != nil {
		return nil, nil, err
	}

	store, err := globals.historyStore()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize history: %w", err)
	}

	return store, output.NewPrinter(format, globals.stdout(), globals.stderr()), nil
}

// Package output renders pipeline outcomes for the shell.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/wolfeidau/gwctl/internal/pipeline"
	"gopkg.in/yaml.v3"
)

// Format selects how success payloads are rendered.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// ParseFormat validates a --output flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatText:
		return f, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (json, yaml, text)", s)
	}
}

// SDK bookkeeping fields that carry nothing for the user.
var dropKeys = []string{"ResultMetadata"}

// Printer writes success payloads to Out and notes and errors to Err.
type Printer struct {
	Format Format
	Out    io.Writer
	Err    io.Writer
}

// NewPrinter creates a Printer writing results to out and diagnostics to errOut.
func NewPrinter(format Format, out, errOut io.Writer) *Printer {
	return &Printer{Format: format, Out: out, Err: errOut}
}

// Emit prints one outcome. A nil outcome, from a declined confirmation,
// prints nothing.
func (p *Printer) Emit(o *pipeline.Outcome) {
	if o == nil {
		return
	}

	for _, note := range o.Notes {
		fmt.Fprintf(p.Err, "WARNING: %s\n", note)
	}

	if o.Failed() {
		fmt.Fprintf(p.Err, "Error: %v\n", o.Err)
		return
	}

	if err := p.Print(o.Output); err != nil {
		fmt.Fprintf(p.Err, "Error: failed to render %s output: %v\n", o.Operation, err)
	}
}

// Print renders a single value in the configured format.
func (p *Printer) Print(v any) error {
	if s, ok := v.(string); ok {
		if p.Format == FormatJSON {
			return p.writeJSON(s)
		}
		_, err := fmt.Fprintln(p.Out, s)
		return err
	}

	doc, err := Normalize(v)
	if err != nil {
		return err
	}

	switch p.Format {
	case FormatYAML:
		enc := yaml.NewEncoder(p.Out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatText:
		return writeText(p.Out, doc)
	default:
		return p.writeJSON(doc)
	}
}

func (p *Printer) writeJSON(v any) error {
	enc := json.NewEncoder(p.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Normalize converts an SDK value into plain maps, slices and scalars using
// its JSON shape, dropping SDK bookkeeping fields.
func Normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal output: %w", err)
	}

	if m, ok := doc.(map[string]any); ok {
		for _, k := range dropKeys {
			delete(m, k)
		}
	}

	return doc, nil
}

// writeText prints a flat view: scalars as "Key: value" lines and an Items
// list as a table of its scalar columns.
func writeText(w io.Writer, doc any) error {
	m, ok := doc.(map[string]any)
	if !ok {
		_, err := fmt.Fprintln(w, scalar(doc))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	keys := sortedKeys(m)
	for _, k := range keys {
		switch m[k].(type) {
		case map[string]any, []any:
			continue
		}
		fmt.Fprintf(tw, "%s:\t%s\n", k, scalar(m[k]))
	}

	if items, ok := m["Items"].([]any); ok && len(items) > 0 {
		if err := tw.Flush(); err != nil {
			return err
		}
		writeTable(tw, items)
	}

	return tw.Flush()
}

func writeTable(tw *tabwriter.Writer, items []any) {
	var columns []string
	seen := map[string]bool{}
	for _, it := range items {
		row, ok := it.(map[string]any)
		if !ok {
			continue
		}
		for _, k := range sortedKeys(row) {
			switch row[k].(type) {
			case map[string]any, []any:
				continue
			}
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	sort.Strings(columns)

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = strings.ToUpper(c)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, it := range items {
		row, _ := it.(map[string]any)
		cells := make([]string, len(columns))
		for i, c := range columns {
			cells[i] = scalar(row[c])
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return "-"
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprint(t)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

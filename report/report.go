// Package report renders the outcomes of a rename pass.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"

	"github.com/kxue43/compdb-rename/rename"
)

type (
	Format string

	record struct {
		File   string        `json:"file" yaml:"file"`
		Path   string        `json:"path,omitempty" yaml:"path,omitempty"`
		Target string        `json:"target,omitempty" yaml:"target,omitempty"`
		Status rename.Status `json:"status" yaml:"status"`
		Error  string        `json:"error,omitempty" yaml:"error,omitempty"`
		Index  int           `json:"index" yaml:"index"`
	}

	document struct {
		Outcomes []record       `json:"outcomes" yaml:"outcomes"`
		Summary  rename.Summary `json:"summary" yaml:"summary"`
	}
)

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

var (
	palette = struct {
		green   lipgloss.Color
		magenta lipgloss.Color
		red     lipgloss.Color
		grey    lipgloss.Color
	}{
		green:   lipgloss.Color("42"),
		magenta: lipgloss.Color("212"),
		red:     lipgloss.Color("196"),
		grey:    lipgloss.Color("245"),
	}

	statusColors = map[rename.Status]lipgloss.Color{
		rename.Renamed:  palette.green,
		rename.Planned:  palette.magenta,
		rename.Excluded: palette.grey,
		rename.Invalid:  palette.red,
		rename.Failed:   palette.red,
	}
)

func (f *Format) UnmarshalText(text []byte) error {
	switch v := Format(strings.ToLower(string(text))); v {
	case Text, JSON, YAML:
		*f = v

		return nil
	default:
		return fmt.Errorf("%q is not one of %q, %q or %q", string(text), Text, JSON, YAML)
	}
}

func (f Format) String() string {
	return string(f)
}

// Write renders result to w.
// The text format leaves out skipped entries, which are already reported while the pass runs.
func Write(w io.Writer, format Format, result rename.Result) error {
	switch format {
	case Text, "":
		return writeText(w, result)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(toDocument(result)); err != nil {
			return fmt.Errorf("failed to write JSON report: %w", err)
		}

		return nil
	case YAML:
		contents, err := yaml.Marshal(toDocument(result))
		if err != nil {
			return fmt.Errorf("failed to marshal YAML report: %w", err)
		}

		if _, err = w.Write(contents); err != nil {
			return fmt.Errorf("failed to write YAML report: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func toDocument(result rename.Result) document {
	doc := document{Outcomes: make([]record, 0, len(result.Outcomes)), Summary: result.Summary()}

	for _, o := range result.Outcomes {
		r := record{Index: o.Index, File: o.File, Path: o.Path, Target: o.Target, Status: o.Status}

		if o.Err != nil {
			r.Error = o.Err.Error()
		}

		doc.Outcomes = append(doc.Outcomes, r)
	}

	return doc
}

func writeText(w io.Writer, result rename.Result) error {
	var b strings.Builder

	// styles only render when w is a terminal
	renderer := lipgloss.NewRenderer(w)
	bold := renderer.NewStyle().Bold(true)

	for _, o := range result.Outcomes {
		if o.Status == rename.Skipped {
			continue
		}

		label := renderer.NewStyle().Foreground(statusColors[o.Status]).Render(fmt.Sprintf("%-8s", o.Status))

		switch o.Status {
		case rename.Renamed, rename.Planned:
			fmt.Fprintf(&b, "%s %s -> %s\n", label, o.Path, o.Target)
		case rename.Excluded:
			fmt.Fprintf(&b, "%s %s\n", label, o.Path)
		default:
			fmt.Fprintf(&b, "%s %s\n", label, o.Err)
		}
	}

	s := result.Summary()

	b.WriteString(bold.Render(fmt.Sprintf(
		"%d entries: %d renamed, %d planned, %d skipped, %d excluded, %d invalid, %d failed",
		s.Total, s.Renamed, s.Planned, s.Skipped, s.Excluded, s.Invalid, s.Failed,
	)))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())

	return err
}

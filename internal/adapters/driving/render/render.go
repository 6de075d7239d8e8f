// Package render writes command results in the user's chosen output format.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/jiri/internal/adapters/driving/tui/styles"
)

// Format is an output format.
type Format string

// Supported formats.
const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatPlain Format = "plain"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists the supported format names.
var Formats = []Format{FormatTable, FormatCSV, FormatPlain, FormatJSON, FormatYAML}

// ParseFormat parses a format name. An empty name is the table format.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatTable, nil
	}
	f := Format(strings.ToLower(name))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", name)
}

// Structured reports whether the format encodes records rather than cells.
func (f Format) Structured() bool {
	return f == FormatJSON || f == FormatYAML
}

// Renderer writes tables and values in one format.
type Renderer struct {
	Format   Format
	NoHeader bool
	Styles   *styles.Styles
}

// New creates a renderer. Colour is used only when color is true.
func New(format Format, noHeader, color bool) *Renderer {
	s := styles.PlainStyles()
	if color {
		s = styles.DefaultStyles()
	}
	return &Renderer{Format: format, NoHeader: noHeader, Styles: s}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Table writes headers and rows.
//
// Structured formats write one object per row keyed by header; every other
// format writes a grid. NoHeader drops the header row from grid formats.
func (r *Renderer) Table(w io.Writer, headers []string, rows [][]string) error {
	switch r.Format {
	case FormatJSON, FormatYAML:
		return r.Value(w, Records(headers, rows))
	case FormatCSV:
		return r.csv(w, headers, rows)
	case FormatPlain:
		return r.plain(w, headers, rows)
	default:
		return r.table(w, headers, rows)
	}
}

// Value writes v as JSON or YAML. Other formats fall back to indented JSON.
func (r *Renderer) Value(w io.Writer, v any) error {
	if r.Format == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// Records converts a grid into one ordered map per row.
func Records(headers []string, rows [][]string) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := make(Record, len(headers))
		for i, h := range headers {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			rec[i] = Cell{Key: strings.ToLower(h), Value: cell}
		}
		records = append(records, rec)
	}
	return records
}

func (r *Renderer) table(w io.Writer, headers []string, rows [][]string) error {
	if len(rows) == 0 && (r.NoHeader || len(headers) == 0) {
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.Styles.Border).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.Styles.Header
			}
			return r.Styles.Cell
		}).
		Rows(rows...)
	if !r.NoHeader {
		t = t.Headers(headers...)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func (r *Renderer) csv(w io.Writer, headers []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if !r.NoHeader {
		if err := cw.Write(headers); err != nil {
			return err
		}
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// plain writes space-padded columns separated by two spaces.
func (r *Renderer) plain(w io.Writer, headers []string, rows [][]string) error {
	grid := rows
	if !r.NoHeader {
		grid = append([][]string{headers}, rows...)
	}

	var widths []int
	for _, row := range grid {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], ansi.StringWidth(cell))
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		var line strings.Builder
		for i, cell := range row {
			if i > 0 {
				line.WriteString("  ")
			}
			line.WriteString(cell)
			line.WriteString(strings.Repeat(" ", widths[i]-ansi.StringWidth(cell)))
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

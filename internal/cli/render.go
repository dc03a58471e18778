package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spektr-org/trendboard/engine"
)

// ============================================================================
// OUTPUT — json, pretty, text and csv renderings of a dashboard
// ============================================================================

// Output formats.
const (
	formatJSON   = "json"
	formatPretty = "pretty"
	formatText   = "text"
	formatCSV    = "csv"
)

func validFormat(format string) bool {
	switch format {
	case formatJSON, formatPretty, formatText, formatCSV:
		return true
	}
	return false
}

func writePayload(w io.Writer, p *engine.DashboardPayload, format string) error {
	switch format {
	case formatText:
		return writeText(w, p)
	case formatCSV:
		return writeCSV(w, p)
	default:
		return writeJSON(w, p, format)
	}
}

func writeJSON(w io.Writer, v any, format string) error {
	var out []byte
	var err error

	if format == formatPretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// ============================================================================
// TEXT OUTPUT
// ============================================================================

func writeText(w io.Writer, p *engine.DashboardPayload) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for _, card := range p.Cards {
		value := card.Value
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\n", card.Label, value)
	}
	if p.Empty {
		fmt.Fprintln(tw, "\nNo posts match the selected filters.")
		return tw.Flush()
	}

	for _, view := range p.Views {
		table := engine.BuildTable(view)
		fmt.Fprintf(tw, "\n%s\n", table.Title)
		fmt.Fprintln(tw, strings.Join(table.Headers(), "\t"))
		for _, row := range table.Rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		fmt.Fprintln(tw, strings.Join(summaryRow(table), "\t"))
	}
	return tw.Flush()
}

// ============================================================================
// CSV OUTPUT — KPIs, then one block per view, blank line between blocks
// ============================================================================

func writeCSV(w io.Writer, p *engine.DashboardPayload) error {
	cw := csv.NewWriter(w)

	cw.Write([]string{"KPI", "Value"})
	for _, card := range p.Cards {
		cw.Write([]string{card.Label, card.Value})
	}

	for _, view := range p.Views {
		table := engine.BuildTable(view)
		cw.Write(nil)
		cw.Write([]string{table.Title})
		cw.Write(table.Headers())
		for _, row := range table.Rows {
			cw.Write(row)
		}
	}

	cw.Flush()
	return cw.Error()
}

func summaryRow(t *engine.TableData) []string {
	row := make([]string, len(t.Columns))
	row[0] = t.Summary.Label
	for i, c := range t.Columns[1:] {
		row[i+1] = t.Summary.Values[c.Key]
	}
	return row
}

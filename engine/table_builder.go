package engine

import (
	"strconv"
)

// ============================================================================
// TABLE BUILDER — Flattens a ChartView into TableData
// ============================================================================
// Used by text and CSV outputs. One row per label, one numeric column per
// series, and a totals summary.
// ============================================================================

// BuildTable produces a TableData from a ChartView.
func BuildTable(view ChartView) *TableData {
	labelKey := "label"
	labelName := view.XAxis
	if view.ChartType == ChartBarHorizontal {
		labelName = view.YAxis
	}
	if labelName == "" {
		labelName = "Label"
	}

	columns := make([]Column, 0, len(view.Series)+1)
	columns = append(columns, Column{Key: labelKey, Label: labelName, Type: "text", Align: "left"})
	for _, s := range view.Series {
		columns = append(columns, Column{Key: s.Name, Label: s.Name, Type: "number", Align: "right"})
	}

	n := view.Len()
	rows := make([][]string, 0, n)
	totals := make([]int64, len(view.Series))
	for i := 0; i < n; i++ {
		row := make([]string, 0, len(columns))
		row = append(row, view.Series[0].Data[i].Label)
		for j, s := range view.Series {
			var v int64
			if i < len(s.Data) {
				v = s.Data[i].Value
			}
			row = append(row, strconv.FormatInt(v, 10))
			totals[j] += v
		}
		rows = append(rows, row)
	}

	values := make(map[string]string, len(view.Series))
	for j, s := range view.Series {
		values[s.Name] = FormatInt(totals[j])
	}

	return &TableData{
		Title:   view.Title,
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label:  "Total (" + strconv.Itoa(n) + " rows)",
			Values: values,
		},
	}
}

// Headers returns the column labels of a table.
func (t *TableData) Headers() []string {
	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Label
	}
	return headers
}

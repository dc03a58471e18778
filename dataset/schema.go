package dataset

import (
	"strings"

	"github.com/spektr-org/trendboard/engine"
)

// ============================================================================
// SCHEMA — Fixed column layout of the posts dataset
// ============================================================================
// Source headers are matched case-insensitively after snake_casing, so
// "Content_Type", "content type" and "content-type" all map to content_type.
// Extra source columns are ignored.
// ============================================================================

// Role classifies a column.
type Role string

const (
	RoleDimension Role = "dimension"
	RoleMeasure   Role = "measure"
)

// ColumnMeta describes one source column.
type ColumnMeta struct {
	Key         string `json:"key"`
	Header      string `json:"header"` // canonical CSV header
	DisplayName string `json:"displayName"`
	Role        Role   `json:"role"`
	Filterable  bool   `json:"filterable"`
}

var columns = []ColumnMeta{
	{Key: engine.DimPlatform, Header: "Platform", DisplayName: "Platform", Role: RoleDimension, Filterable: true},
	{Key: engine.DimRegion, Header: "Region", DisplayName: "Region", Role: RoleDimension, Filterable: true},
	{Key: engine.DimContentType, Header: "Content_Type", DisplayName: "Content Type", Role: RoleDimension, Filterable: true},
	{Key: engine.DimEngagementLevel, Header: "Engagement_Level", DisplayName: "Engagement Level", Role: RoleDimension, Filterable: true},
	{Key: engine.DimHashtag, Header: "Hashtag", DisplayName: "Hashtag", Role: RoleDimension},
	{Key: engine.MeasureLikes, Header: "Likes", DisplayName: "Likes", Role: RoleMeasure},
	{Key: engine.MeasureShares, Header: "Shares", DisplayName: "Shares", Role: RoleMeasure},
	{Key: engine.MeasureComments, Header: "Comments", DisplayName: "Comments", Role: RoleMeasure},
	{Key: engine.MeasureViews, Header: "Views", DisplayName: "Views", Role: RoleMeasure},
}

// Columns returns the required source columns in canonical order.
func Columns() []ColumnMeta {
	out := make([]ColumnMeta, len(columns))
	copy(out, columns)
	return out
}

// ColumnKeys returns the snake_case keys of the required columns.
func ColumnKeys() []string {
	keys := make([]string, len(columns))
	for i, c := range columns {
		keys[i] = c.Key
	}
	return keys
}

// Headers returns the canonical CSV header row.
func Headers() []string {
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.Header
	}
	return headers
}

// Column looks up a column by key.
func Column(key string) (ColumnMeta, bool) {
	for _, c := range columns {
		if c.Key == key {
			return c, true
		}
	}
	return ColumnMeta{}, false
}

// toSnakeCase converts "Column Name" → "column_name".
func toSnakeCase(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// columnIndex maps each required key to its position in headers.
// Returns the first required key that is absent.
func columnIndex(headers []string) (map[string]int, string) {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		key := toSnakeCase(h)
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	for _, c := range columns {
		if _, ok := idx[c.Key]; !ok {
			return nil, c.Header
		}
	}
	return idx, ""
}

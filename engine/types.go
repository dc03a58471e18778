package engine

// ============================================================================
// TRENDBOARD ENGINE TYPES — Filter → Aggregate → Assemble
// ============================================================================
// The engine reads posts through RecordView and never owns consumer data.
// Every value produced here (views, KPIs, payload) is allocated per call.
// ============================================================================

// ============================================================================
// COLUMN KEYS
// ============================================================================

// Dimension keys (categorical columns).
const (
	DimPlatform        = "platform"
	DimRegion          = "region"
	DimContentType     = "content_type"
	DimEngagementLevel = "engagement_level"
	DimHashtag         = "hashtag"
)

// Measure keys (non-negative integer columns).
const (
	MeasureLikes           = "likes"
	MeasureShares          = "shares"
	MeasureComments        = "comments"
	MeasureViews           = "views"
	MeasureTotalEngagement = "total_engagement"
)

// FilterColumns returns the four filterable dimensions in display order.
func FilterColumns() []string {
	return []string{DimPlatform, DimRegion, DimContentType, DimEngagementLevel}
}

// ============================================================================
// RECORD — Generic data row
// ============================================================================

// Record is a single data row with string dimensions and integer measures.
// Used with SliceView for ad-hoc data; typed datasets bind through DomainAdapter.
type Record struct {
	Dimensions map[string]string `json:"dimensions"`
	Measures   map[string]int64  `json:"measures"`
}

// ============================================================================
// FILTERSPEC — Multi-select state across the four filterable columns
// ============================================================================

// FilterSpec holds the accepted values per filterable column.
// OR within a column, AND across columns. A column with no accepted
// values rejects every record.
type FilterSpec struct {
	Platform        []string `json:"platform" form:"platform"`
	Region          []string `json:"region" form:"region"`
	ContentType     []string `json:"content_type" form:"content_type"`
	EngagementLevel []string `json:"engagement_level" form:"engagement_level"`
}

// Values returns the accepted values for a filterable column.
// Unknown columns have no accepted values.
func (f FilterSpec) Values(column string) []string {
	switch column {
	case DimPlatform:
		return f.Platform
	case DimRegion:
		return f.Region
	case DimContentType:
		return f.ContentType
	case DimEngagementLevel:
		return f.EngagementLevel
	default:
		return nil
	}
}

// Missing returns the filterable columns with no accepted values.
func (f FilterSpec) Missing() []string {
	var missing []string
	for _, col := range FilterColumns() {
		if len(f.Values(col)) == 0 {
			missing = append(missing, col)
		}
	}
	return missing
}

// RejectsAll reports whether f can match no record at all.
func (f FilterSpec) RejectsAll() bool {
	return len(f.Missing()) > 0
}

// ============================================================================
// GROUP — Intermediate computation result
// ============================================================================

// Group represents a grouped/aggregated result.
// Builders convert these into ChartView series.
type Group struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Value int64      `json:"value"`
	Count int        `json:"count"`
	View  RecordView `json:"-"` // records in this group, original order (zero-copy)
}

// ============================================================================
// KPI TYPES
// ============================================================================

// KPIRecord holds the four headline statistics.
// On an empty FilteredView: TotalPosts=0, AvgViews=0, TopHashtag="", TopPlatform="".
type KPIRecord struct {
	TotalPosts  int    `json:"total_posts"`
	AvgViews    int64  `json:"avg_views"`
	TopHashtag  string `json:"top_hashtag"`
	TopPlatform string `json:"top_platform"`
}

// KPICard is the display form of one KPI.
type KPICard struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// ============================================================================
// CHART VIEW TYPES
// ============================================================================

// View names, in payload order.
const (
	ViewTopHashtags                 = "top_hashtags"
	ViewEngagementByContentType     = "engagement_by_content_type"
	ViewInteractionsByPlatform      = "interactions_by_platform"
	ViewViewsByRegion               = "views_by_region"
	ViewEngagementLevelDistribution = "engagement_level_distribution"
)

// ViewCount is the fixed number of chart views in a DashboardPayload.
const ViewCount = 5

// ViewNames returns the view names in payload order.
func ViewNames() [ViewCount]string {
	return [ViewCount]string{
		ViewTopHashtags,
		ViewEngagementByContentType,
		ViewInteractionsByPlatform,
		ViewViewsByRegion,
		ViewEngagementLevelDistribution,
	}
}

// Chart type hints for the rendering collaborator.
const (
	ChartBarHorizontal = "bar_horizontal"
	ChartPie           = "pie"
	ChartGroupedBar    = "grouped_bar"
	ChartChoropleth    = "choropleth"
	ChartHistogram     = "histogram"
)

// ChartView is one derived table feeding one chart.
// Every series shares the same label order.
type ChartView struct {
	Name         string        `json:"name"`
	Title        string        `json:"title"`
	ChartType    string        `json:"chartType"`
	XAxis        string        `json:"xAxis,omitempty"`
	YAxis        string        `json:"yAxis,omitempty"`
	LocationMode string        `json:"locationMode,omitempty"`
	Series       []ChartSeries `json:"series"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name string       `json:"name"`
	Data []ChartPoint `json:"data"`
}

// ChartPoint represents a single data point.
// Count is the number of records behind the point.
type ChartPoint struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
	Count int    `json:"count"`
}

// Len returns the number of rows (labels) in the view.
func (c ChartView) Len() int {
	if len(c.Series) == 0 {
		return 0
	}
	return len(c.Series[0].Data)
}

// Labels returns the row labels in order.
func (c ChartView) Labels() []string {
	if len(c.Series) == 0 {
		return nil
	}
	labels := make([]string, len(c.Series[0].Data))
	for i, p := range c.Series[0].Data {
		labels[i] = p.Label
	}
	return labels
}

// SeriesByName returns the named series, if present.
func (c ChartView) SeriesByName(name string) (ChartSeries, bool) {
	for _, s := range c.Series {
		if s.Name == name {
			return s, true
		}
	}
	return ChartSeries{}, false
}

// ============================================================================
// DASHBOARD PAYLOAD — Fixed output contract
// ============================================================================

// DashboardPayload is the render-ready output of one pipeline pass:
// four KPIs followed by five views in fixed order.
type DashboardPayload struct {
	KPIs  KPIRecord            `json:"kpis"`
	Cards [4]KPICard           `json:"cards"`
	Views [ViewCount]ChartView `json:"views"`
	Empty bool                 `json:"empty"` // no record matched the filters
}

// View returns the view with the given name.
func (p *DashboardPayload) View(name string) (ChartView, bool) {
	for _, v := range p.Views {
		if v.Name == name {
			return v, true
		}
	}
	return ChartView{}, false
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData is a ChartView flattened into text cells for CLI/CSV output.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

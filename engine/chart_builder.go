package engine

import "fmt"

// ============================================================================
// CHART BUILDER — The five dashboard views
// ============================================================================
// Each builder reads the same filtered view and nothing else; no view
// depends on another's output. Empty input yields a view with its series
// present and zero points.
// ============================================================================

// DefaultTopHashtags is the row limit of the top hashtags view.
const DefaultTopHashtags = 10

// Series names of the interactions view.
const (
	SeriesLikes    = "Likes"
	SeriesShares   = "Shares"
	SeriesComments = "Comments"
)

// BuildTopHashtags groups by hashtag, sums total engagement, ranks
// descending (ties keep first-seen order) and keeps the first limit rows.
func BuildTopHashtags(view RecordView, limit int) ChartView {
	if limit <= 0 {
		limit = DefaultTopHashtags
	}
	groups := GroupAndAggregate(view, DimHashtag, MeasureTotalEngagement, AggSum, true, limit)
	return ChartView{
		Name:      ViewTopHashtags,
		Title:     fmt.Sprintf("Top %d Hashtags by Engagement", limit),
		ChartType: ChartBarHorizontal,
		XAxis:     "Total Engagement",
		YAxis:     "Hashtag",
		Series:    []ChartSeries{buildSingleSeries(groups, "Total Engagement")},
	}
}

// BuildEngagementByContentType sums total engagement per content type.
// Proportions are left to the renderer.
func BuildEngagementByContentType(view RecordView) ChartView {
	groups := GroupAndAggregate(view, DimContentType, MeasureTotalEngagement, AggSum, false, 0)
	return ChartView{
		Name:      ViewEngagementByContentType,
		Title:     "Engagement by Content Type",
		ChartType: ChartPie,
		XAxis:     "Content Type",
		YAxis:     "Total Engagement",
		Series:    []ChartSeries{buildSingleSeries(groups, "Total Engagement")},
	}
}

// BuildInteractionsByPlatform sums likes, shares and comments per platform
// as three parallel series.
func BuildInteractionsByPlatform(view RecordView) ChartView {
	groups := groupBySingle(view, DimPlatform)
	return ChartView{
		Name:      ViewInteractionsByPlatform,
		Title:     "Interactions by Platform",
		ChartType: ChartGroupedBar,
		XAxis:     "Platform",
		YAxis:     "Interactions",
		Series: []ChartSeries{
			buildMeasureSeries(groups, SeriesLikes, MeasureLikes),
			buildMeasureSeries(groups, SeriesShares, MeasureShares),
			buildMeasureSeries(groups, SeriesComments, MeasureComments),
		},
	}
}

// BuildViewsByRegion sums views per region. Region values are passed
// through unvalidated; the renderer resolves them as country names.
func BuildViewsByRegion(view RecordView) ChartView {
	groups := GroupAndAggregate(view, DimRegion, MeasureViews, AggSum, false, 0)
	return ChartView{
		Name:         ViewViewsByRegion,
		Title:        "Views by Region",
		ChartType:    ChartChoropleth,
		XAxis:        "Region",
		YAxis:        "Views",
		LocationMode: "country names",
		Series:       []ChartSeries{buildSingleSeries(groups, "Views")},
	}
}

// BuildEngagementLevelDistribution counts records per observed engagement
// level. Levels with no records are absent.
func BuildEngagementLevelDistribution(view RecordView) ChartView {
	groups := GroupAndAggregate(view, DimEngagementLevel, "", AggCount, false, 0)
	return ChartView{
		Name:      ViewEngagementLevelDistribution,
		Title:     "Engagement Level Distribution",
		ChartType: ChartHistogram,
		XAxis:     "Engagement Level",
		YAxis:     "Count",
		Series:    []ChartSeries{buildSingleSeries(groups, "Count")},
	}
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

func buildSingleSeries(groups []Group, seriesName string) ChartSeries {
	points := make([]ChartPoint, 0, len(groups))
	for _, g := range groups {
		points = append(points, ChartPoint{
			Label: g.Label,
			Value: g.Value,
			Count: g.Count,
		})
	}
	return ChartSeries{Name: seriesName, Data: points}
}

func buildMeasureSeries(groups []Group, seriesName, measure string) ChartSeries {
	points := make([]ChartPoint, 0, len(groups))
	for _, g := range groups {
		points = append(points, ChartPoint{
			Label: g.Label,
			Value: SumMeasure(g.View, measure),
			Count: g.View.Len(),
		})
	}
	return ChartSeries{Name: seriesName, Data: points}
}

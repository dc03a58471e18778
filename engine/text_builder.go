package engine

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
)

// ============================================================================
// KPI BUILDER — Headline statistics and their display cards
// ============================================================================

// KPI keys and labels, in card order.
const (
	KPITotalPosts  = "total_posts"
	KPIAvgViews    = "avg_views"
	KPITopHashtag  = "top_hashtag"
	KPITopPlatform = "top_platform"
)

// TotalPosts is the number of records in the view.
func TotalPosts(view RecordView) int {
	return view.Len()
}

// AvgViews is the mean of views truncated to an integer.
// Returns ErrEmptyAggregation on an empty view.
func AvgViews(view RecordView) (int64, error) {
	return AvgMeasure(view, MeasureViews)
}

// TopHashtag is the hashtag with the largest summed total engagement.
// Ties resolve to the hashtag seen first in the view.
func TopHashtag(view RecordView) (string, error) {
	top, err := TopGroup(GroupAndAggregate(view, DimHashtag, MeasureTotalEngagement, AggSum, false, 0))
	if err != nil {
		return "", err
	}
	return top.Key, nil
}

// TopPlatform is the platform with the most records.
// Ties resolve to the platform seen first in the view.
func TopPlatform(view RecordView) (string, error) {
	top, err := TopGroup(GroupAndAggregate(view, DimPlatform, "", AggCount, false, 0))
	if err != nil {
		return "", err
	}
	return top.Key, nil
}

// BuildKPIs computes the four KPIs. On an empty view every statistic that
// needs data takes its zero value and empty is true. Any other failure is
// returned in err; the affected KPI keeps its zero value.
func BuildKPIs(view RecordView) (kpis KPIRecord, empty bool, err error) {
	kpis.TotalPosts = TotalPosts(view)

	var errs []error
	check := func(name string, e error) {
		switch {
		case e == nil:
		case errors.Is(e, ErrEmptyAggregation):
			empty = true
		default:
			errs = append(errs, fmt.Errorf("%s: %w", name, e))
		}
	}

	var e error
	kpis.AvgViews, e = AvgViews(view)
	check(KPIAvgViews, e)
	kpis.TopHashtag, e = TopHashtag(view)
	check(KPITopHashtag, e)
	kpis.TopPlatform, e = TopPlatform(view)
	check(KPITopPlatform, e)

	return kpis, empty, errors.Join(errs...)
}

// BuildCards formats the KPIs for display. Avg Views uses thousands
// separators.
func BuildCards(kpis KPIRecord) [4]KPICard {
	return [4]KPICard{
		{Key: KPITotalPosts, Label: "Total Posts", Value: strconv.Itoa(kpis.TotalPosts)},
		{Key: KPIAvgViews, Label: "Avg Views", Value: FormatInt(kpis.AvgViews)},
		{Key: KPITopHashtag, Label: "Top Hashtag", Value: kpis.TopHashtag},
		{Key: KPITopPlatform, Label: "Top Platform", Value: kpis.TopPlatform},
	}
}

// FormatInt formats an integer with comma separators.
func FormatInt(n int64) string {
	return humanize.Comma(n)
}

package engine

import (
	"errors"
	"sort"
	"strings"
)

// ============================================================================
// AGGREGATORS — Grouping, Aggregation, and Ranking via RecordView
// ============================================================================
// All functions read through RecordView and never copy rows.
// Grouping produces SubViews (index lists into parent view).
// Group order is first-seen order; records keep their original order
// inside a group. Ranking is stable, so ties keep first-seen order.
// ============================================================================

// ErrEmptyAggregation is returned when a statistic needs at least one record.
var ErrEmptyAggregation = errors.New("aggregation over empty view")

// Aggregation kinds accepted by GroupAndAggregate.
const (
	AggSum   = "sum"
	AggCount = "count"
)

// GroupAndAggregate groups view by a dimension and aggregates each group.
// Pipeline: group → aggregate → rank (optional) → limit (optional).
func GroupAndAggregate(view RecordView, dimension, measure, aggregation string, rank bool, limit int) []Group {
	groups := groupBySingle(view, dimension)

	for i := range groups {
		aggregateGroup(&groups[i], measure, aggregation)
	}

	if rank {
		RankGroups(groups)
	}

	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}

	return groups
}

// ============================================================================
// GROUPING
// ============================================================================

func groupBySingle(view RecordView, dimension string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, dimension)
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, Group{
			Key:   key,
			Label: key,
			View:  newSubView(view, grouped[key]),
		})
	}
	return groups
}

// ============================================================================
// AGGREGATION
// ============================================================================

func aggregateGroup(group *Group, measure string, aggregation string) {
	group.Count = group.View.Len()
	if group.Count == 0 {
		return
	}

	switch aggregation {
	case AggCount:
		group.Value = int64(group.Count)
	default:
		group.Value = SumMeasure(group.View, measure)
	}
}

// SumMeasure sums a named measure across a view.
func SumMeasure(view RecordView, measure string) int64 {
	var total int64
	for i := 0; i < view.Len(); i++ {
		total += view.Measure(i, measure)
	}
	return total
}

// AvgMeasure returns the mean of a named measure truncated toward zero.
func AvgMeasure(view RecordView, measure string) (int64, error) {
	n := view.Len()
	if n == 0 {
		return 0, ErrEmptyAggregation
	}
	return SumMeasure(view, measure) / int64(n), nil
}

// ============================================================================
// RANKING
// ============================================================================

// RankGroups sorts groups by value descending. Equal values keep their
// current (first-seen) order.
func RankGroups(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value > groups[j].Value })
}

// TopGroup returns the group with the highest value. Ties resolve to the
// earliest group in the slice.
func TopGroup(groups []Group) (Group, error) {
	if len(groups) == 0 {
		return Group{}, ErrEmptyAggregation
	}
	top := groups[0]
	for _, g := range groups[1:] {
		if g.Value > top.Value {
			top = g
		}
	}
	return top, nil
}

// ============================================================================
// DISTINCT VALUES & LABELS
// ============================================================================

// UniqueValues returns distinct values for a dimension across a view,
// in first-seen order.
func UniqueValues(view RecordView, dimension string) []string {
	seen := make(map[string]bool)
	var result []string
	for i := 0; i < view.Len(); i++ {
		val := view.Dimension(i, dimension)
		if val != "" && !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}

// LabelForDimension returns a display label for a column key:
// "content_type" → "Content Type".
func LabelForDimension(key string) string {
	parts := strings.Split(key, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

package engine

import (
	"time"
)

// ============================================================================
// EXECUTOR — Filter → Aggregate → Assemble
// ============================================================================
// Entry point: Build(view, spec, opts...)
//
// Pipeline:
//   1. Apply FilterSpec → SubView
//   2. Compute KPIs and the five views from that one SubView
//   3. Assemble the fixed-shape DashboardPayload
//
// Build is pure: the same view and spec always give an equal payload.
// Nothing is cached between calls; concurrent calls share only the
// read-only input view.
// ============================================================================

// Build runs one full pipeline pass and returns a render-ready payload.
func Build(view RecordView, spec FilterSpec, opts ...Option) *DashboardPayload {
	cfg := applyOptions(opts)
	start := time.Now()

	if spec.RejectsAll() {
		cfg.Logger.Debug("filter columns without accepted values reject all records",
			"columns", spec.Missing())
	}

	filtered := ApplyFilters(view, spec)

	kpis, empty, err := BuildKPIs(filtered)
	if err != nil {
		cfg.Logger.Error("kpi computation failed", "error", err)
	}
	views := [ViewCount]ChartView{
		BuildTopHashtags(filtered, cfg.TopHashtags),
		BuildEngagementByContentType(filtered),
		BuildInteractionsByPlatform(filtered),
		BuildViewsByRegion(filtered),
		BuildEngagementLevelDistribution(filtered),
	}

	payload := Assemble(kpis, views)
	payload.Empty = empty

	elapsed := time.Since(start)
	cfg.Logger.Debug("dashboard built",
		"total", view.Len(),
		"filtered", filtered.Len(),
		"empty", empty,
		"elapsed", elapsed)
	if cfg.Observer != nil {
		cfg.Observer.ObservePipeline(view.Len(), filtered.Len(), empty, elapsed)
	}

	return payload
}

// Assemble packages KPIs and views into a DashboardPayload. Views keep the
// order they are given in; callers pass them in ViewNames() order.
func Assemble(kpis KPIRecord, views [ViewCount]ChartView) *DashboardPayload {
	return &DashboardPayload{
		KPIs:  kpis,
		Cards: BuildCards(kpis),
		Views: views,
	}
}

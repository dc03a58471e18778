package engine

// ============================================================================
// FILTERS — Multi-select filtering via RecordView
// ============================================================================
// Single-pass filter: checks all four column constraints per record in one
// loop and returns a SubView of matching indices. No data is copied.
// ============================================================================

type columnSet struct {
	column  string
	allowed map[string]struct{}
}

// ApplyFilters returns a view of records matching every filterable column.
// Columns are AND-combined; values within a column are OR-combined.
// Matching is exact. A column with no accepted values rejects all records.
func ApplyFilters(view RecordView, spec FilterSpec) RecordView {
	columns := FilterColumns()
	sets := make([]columnSet, 0, len(columns))
	for _, col := range columns {
		allowed := spec.Values(col)
		if len(allowed) == 0 {
			return newSubView(view, []int{})
		}
		sets = append(sets, columnSet{column: col, allowed: toSet(allowed)})
	}

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if matchesAll(view, i, sets) {
			indices = append(indices, i)
		}
	}

	return newSubView(view, indices)
}

func matchesAll(view RecordView, i int, sets []columnSet) bool {
	for _, s := range sets {
		if _, ok := s.allowed[view.Dimension(i, s.column)]; !ok {
			return false
		}
	}
	return true
}

// toSet converts a string slice to a lookup set.
func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

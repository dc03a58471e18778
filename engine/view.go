package engine

// ============================================================================
// RECORD VIEW — Read-only indexed access to posts
// ============================================================================
// The engine never copies or owns the dataset. Every stage reads through
// RecordView, and filtering or grouping produce SubViews that hold only
// row indices into their parent.
//
//   SliceView      []Record, used for ad-hoc data and tests
//   DomainView[T]  typed structs read through accessor funcs
//   SubView        ascending indices into a parent view
//
// Nothing here writes to the underlying data, so any number of pipeline
// passes may read the same view concurrently.
// ============================================================================

// RecordView provides indexed access to a table of posts. Out-of-range
// indices and unknown keys read as "" and 0.
type RecordView interface {
	Len() int
	Dimension(index int, key string) string
	Measure(index int, key string) int64
}

// SliceView wraps a []Record slice as a RecordView.
type SliceView struct {
	records []Record
}

// NewSliceView creates a RecordView over records without copying them.
func NewSliceView(records []Record) RecordView {
	return &SliceView{records: records}
}

func (v *SliceView) Len() int { return len(v.records) }

func (v *SliceView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.records) {
		return ""
	}
	return v.records[i].Dimensions[key]
}

func (v *SliceView) Measure(i int, key string) int64 {
	if i < 0 || i >= len(v.records) {
		return 0
	}
	return v.records[i].Measures[key]
}

// ============================================================================
// SUB VIEW
// ============================================================================

// SubView is the subset of a parent view selected by indices. Indices are
// ascending, so a SubView keeps the parent's row order.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.indices) {
		return ""
	}
	return v.parent.Dimension(v.indices[i], key)
}

func (v *SubView) Measure(i int, key string) int64 {
	if i < 0 || i >= len(v.indices) {
		return 0
	}
	return v.parent.Measure(v.indices[i], key)
}

// ============================================================================
// DOMAIN ADAPTER — typed structs as a RecordView
// ============================================================================
//
//	adapter := engine.NewDomainAdapter[Post]().
//	    Dimension(engine.DimPlatform, func(p Post) string { return p.Platform }).
//	    Measure(engine.MeasureViews, func(p Post) int64 { return p.Views })
//
//	payload := engine.Build(adapter.Bind(posts), spec)
// ============================================================================

// DomainAdapter maps column keys to accessor funcs on T. Register every
// column once at package init, then Bind per dataset.
type DomainAdapter[T any] struct {
	dims map[string]func(T) string
	meas map[string]func(T) int64
}

// NewDomainAdapter returns an adapter with no columns.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{
		dims: make(map[string]func(T) string),
		meas: make(map[string]func(T) int64),
	}
}

// Dimension registers a categorical column. A later call for the same key
// replaces the accessor.
func (a *DomainAdapter[T]) Dimension(key string, fn func(T) string) *DomainAdapter[T] {
	a.dims[key] = fn
	return a
}

// Measure registers a counter column.
func (a *DomainAdapter[T]) Measure(key string, fn func(T) int64) *DomainAdapter[T] {
	a.meas[key] = fn
	return a
}

// Bind returns a view over data. The slice is referenced, not copied, and
// must not be modified while the view is in use.
func (a *DomainAdapter[T]) Bind(data []T) RecordView {
	return &DomainView[T]{data: data, adapter: a}
}

// DomainView is a RecordView over a []T bound by a DomainAdapter.
type DomainView[T any] struct {
	data    []T
	adapter *DomainAdapter[T]
}

func (v *DomainView[T]) Len() int { return len(v.data) }

func (v *DomainView[T]) Dimension(i int, key string) string {
	fn, ok := v.adapter.dims[key]
	if !ok || i < 0 || i >= len(v.data) {
		return ""
	}
	return fn(v.data[i])
}

func (v *DomainView[T]) Measure(i int, key string) int64 {
	fn, ok := v.adapter.meas[key]
	if !ok || i < 0 || i >= len(v.data) {
		return 0
	}
	return fn(v.data[i])
}

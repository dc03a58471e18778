// Package dataset loads the social-media posts table and exposes it to the
// engine as an immutable, read-only RecordView.
//
// A Dataset is built once at startup (from CSV, SQLite or PostgreSQL) and
// shared by every pipeline pass. Nothing in this package mutates a Dataset
// after New returns, so concurrent readers need no locking.
package dataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/spektr-org/trendboard/engine"
)

// Post is one social-media post.
type Post struct {
	Platform        string `json:"platform"`
	Region          string `json:"region"`
	ContentType     string `json:"content_type"`
	EngagementLevel string `json:"engagement_level"`
	Hashtag         string `json:"hashtag"`
	Likes           int64  `json:"likes"`
	Shares          int64  `json:"shares"`
	Comments        int64  `json:"comments"`
	Views           int64  `json:"views"`

	// TotalEngagement is Likes + Shares + Comments. Dataset construction
	// recomputes it for every post.
	TotalEngagement int64 `json:"total_engagement"`
}

// NewPost builds a Post with TotalEngagement derived from its counters.
func NewPost(platform, region, contentType, engagementLevel, hashtag string, likes, shares, comments, views int64) Post {
	p := Post{
		Platform:        platform,
		Region:          region,
		ContentType:     contentType,
		EngagementLevel: engagementLevel,
		Hashtag:         hashtag,
		Likes:           likes,
		Shares:          shares,
		Comments:        comments,
		Views:           views,
	}
	p.TotalEngagement = p.Likes + p.Shares + p.Comments
	return p
}

var postAdapter = engine.NewDomainAdapter[Post]().
	Dimension(engine.DimPlatform, func(p Post) string { return p.Platform }).
	Dimension(engine.DimRegion, func(p Post) string { return p.Region }).
	Dimension(engine.DimContentType, func(p Post) string { return p.ContentType }).
	Dimension(engine.DimEngagementLevel, func(p Post) string { return p.EngagementLevel }).
	Dimension(engine.DimHashtag, func(p Post) string { return p.Hashtag }).
	Measure(engine.MeasureLikes, func(p Post) int64 { return p.Likes }).
	Measure(engine.MeasureShares, func(p Post) int64 { return p.Shares }).
	Measure(engine.MeasureComments, func(p Post) int64 { return p.Comments }).
	Measure(engine.MeasureViews, func(p Post) int64 { return p.Views }).
	Measure(engine.MeasureTotalEngagement, func(p Post) int64 { return p.TotalEngagement })

// Dataset is the immutable loaded table.
type Dataset struct {
	source   string
	posts    []Post
	view     engine.RecordView
	distinct map[string][]string
}

// New validates posts and builds a Dataset over a private copy of them.
// The dataset must be non-empty, every categorical cell non-blank and every
// counter non-negative, so the default filter selection covers every row.
func New(source string, posts []Post) (*Dataset, error) {
	if len(posts) == 0 {
		return nil, loadErr(source, 0, "", ErrNoRows)
	}

	owned := make([]Post, len(posts))
	for i, p := range posts {
		if err := checkPost(p); err != nil {
			return nil, loadErr(source, i+1, err.column, err.err)
		}
		p.TotalEngagement = p.Likes + p.Shares + p.Comments
		owned[i] = p
	}

	view := postAdapter.Bind(owned)
	distinct := make(map[string][]string)
	for _, c := range columns {
		if c.Role != RoleDimension {
			continue
		}
		distinct[c.Key] = engine.UniqueValues(view, c.Key)
	}

	return &Dataset{
		source:   source,
		posts:    owned,
		view:     view,
		distinct: distinct,
	}, nil
}

// Load reads posts from src and builds a Dataset. Every failure is a
// *LoadError.
func Load(ctx context.Context, src Source) (*Dataset, error) {
	posts, err := src.Posts(ctx)
	if err != nil {
		if _, ok := AsLoadError(err); ok {
			return nil, err
		}
		return nil, loadErr(src.Name(), 0, "", err)
	}
	return New(src.Name(), posts)
}

// Source returns the label of the source the dataset was loaded from.
func (d *Dataset) Source() string { return d.source }

// Len returns the number of posts.
func (d *Dataset) Len() int { return len(d.posts) }

// Posts returns a copy of all posts in source order.
func (d *Dataset) Posts() []Post {
	out := make([]Post, len(d.posts))
	copy(out, d.posts)
	return out
}

// View returns the read-only engine view over the dataset.
func (d *Dataset) View() engine.RecordView { return d.view }

// DistinctValues returns the distinct non-empty values of a categorical
// column in first-seen order. Unknown or numeric columns return nil.
func (d *Dataset) DistinctValues(column string) []string {
	values, ok := d.distinct[column]
	if !ok {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// FilterOption is the option list of one filterable column.
type FilterOption struct {
	Column string   `json:"column"`
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// FilterOptions returns the option lists of the four filterable columns
// in display order.
func (d *Dataset) FilterOptions() []FilterOption {
	cols := engine.FilterColumns()
	opts := make([]FilterOption, 0, len(cols))
	for _, key := range cols {
		meta, _ := Column(key)
		opts = append(opts, FilterOption{
			Column: key,
			Label:  meta.DisplayName,
			Values: d.DistinctValues(key),
		})
	}
	return opts
}

// DefaultFilterSpec selects every distinct value of every filterable
// column, which matches the whole dataset.
func (d *Dataset) DefaultFilterSpec() engine.FilterSpec {
	return engine.FilterSpec{
		Platform:        d.DistinctValues(engine.DimPlatform),
		Region:          d.DistinctValues(engine.DimRegion),
		ContentType:     d.DistinctValues(engine.DimContentType),
		EngagementLevel: d.DistinctValues(engine.DimEngagementLevel),
	}
}

// Build runs the dashboard pipeline over the dataset.
func (d *Dataset) Build(spec engine.FilterSpec, opts ...engine.Option) *engine.DashboardPayload {
	return engine.Build(d.view, spec, opts...)
}

// checkPost rejects blank categorical cells and negative counters. A blank
// cell would never appear among the filter options, so the default
// selection would silently drop its row.
func checkPost(p Post) *cellError {
	categories := []struct {
		header string
		value  string
	}{
		{"Platform", p.Platform},
		{"Region", p.Region},
		{"Content_Type", p.ContentType},
		{"Engagement_Level", p.EngagementLevel},
		{"Hashtag", p.Hashtag},
	}
	for _, c := range categories {
		if strings.TrimSpace(c.value) == "" {
			return &cellError{column: c.header, err: fmt.Errorf("%w: blank value", ErrInvalidValue)}
		}
	}

	counters := []struct {
		header string
		value  int64
	}{
		{"Likes", p.Likes},
		{"Shares", p.Shares},
		{"Comments", p.Comments},
		{"Views", p.Views},
	}
	for _, c := range counters {
		if c.value < 0 {
			return &cellError{column: c.header, err: fmt.Errorf("%w: negative count %d", ErrInvalidValue, c.value)}
		}
	}
	return nil
}

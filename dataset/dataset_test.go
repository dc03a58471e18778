package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/trendboard/engine"
)

func loadFixture(t *testing.T) *Dataset {
	t.Helper()
	ds, err := Load(context.Background(), FileSource{Path: filepath.Join("testdata", "posts.csv")})
	require.NoError(t, err)
	return ds
}

func TestLoadFixture(t *testing.T) {
	ds := loadFixture(t)
	require.Equal(t, 6, ds.Len())

	first := ds.Posts()[0]
	assert.Equal(t, NewPost("TikTok", "USA", "Video", "High", "#Challenge", 100, 20, 10, 1000), first)
	assert.Equal(t, int64(130), first.TotalEngagement)
	assert.Equal(t, filepath.Join("testdata", "posts.csv"), ds.Source())
}

func TestDistinctValuesFirstSeenOrder(t *testing.T) {
	ds := loadFixture(t)

	assert.Equal(t, []string{"TikTok", "Instagram", "YouTube"}, ds.DistinctValues(engine.DimPlatform))
	assert.Equal(t, []string{"USA", "UK", "Brazil"}, ds.DistinctValues(engine.DimRegion))
	assert.Equal(t, []string{"Video", "Reel", "Shorts", "Post"}, ds.DistinctValues(engine.DimContentType))
	assert.Equal(t, []string{"High", "Medium", "Low"}, ds.DistinctValues(engine.DimEngagementLevel))
	assert.Nil(t, ds.DistinctValues(engine.MeasureViews))
	assert.Nil(t, ds.DistinctValues("nope"))

	// reproducible, and callers cannot alter the stored order
	values := ds.DistinctValues(engine.DimPlatform)
	values[0] = "mutated"
	assert.Equal(t, []string{"TikTok", "Instagram", "YouTube"}, ds.DistinctValues(engine.DimPlatform))
}

func TestFilterOptionsAndDefaultSpec(t *testing.T) {
	ds := loadFixture(t)

	opts := ds.FilterOptions()
	require.Len(t, opts, 4)
	assert.Equal(t, engine.DimPlatform, opts[0].Column)
	assert.Equal(t, "Content Type", opts[2].Label)
	assert.Equal(t, []string{"High", "Medium", "Low"}, opts[3].Values)

	spec := ds.DefaultFilterSpec()
	assert.Empty(t, spec.Missing())
	payload := ds.Build(spec)
	assert.Equal(t, 6, payload.KPIs.TotalPosts)
	assert.Equal(t, int64(1300), payload.KPIs.AvgViews)
	assert.Equal(t, "#Tech", payload.KPIs.TopHashtag)
	assert.Equal(t, "TikTok", payload.KPIs.TopPlatform)
}

func TestNewRecomputesTotalEngagement(t *testing.T) {
	p := NewPost("A", "USA", "Video", "High", "#x", 1, 2, 3, 4)
	p.TotalEngagement = 999

	ds, err := New("inline", []Post{p})
	require.NoError(t, err)
	assert.Equal(t, int64(6), ds.Posts()[0].TotalEngagement)
	assert.Equal(t, int64(6), ds.View().Measure(0, engine.MeasureTotalEngagement))
}

func TestNewCopiesInput(t *testing.T) {
	posts := []Post{NewPost("A", "USA", "Video", "High", "#x", 1, 2, 3, 4)}
	ds, err := New("inline", posts)
	require.NoError(t, err)

	posts[0].Platform = "changed"
	assert.Equal(t, "A", ds.Posts()[0].Platform)

	out := ds.Posts()
	out[0].Platform = "changed"
	assert.Equal(t, "A", ds.Posts()[0].Platform)
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name  string
		posts []Post
		want  error
	}{
		{"no rows", nil, ErrNoRows},
		{"negative", []Post{NewPost("A", "USA", "Video", "High", "#x", -1, 0, 0, 0)}, ErrInvalidValue},
		{"empty column", []Post{NewPost("A", "", "Video", "High", "#x", 1, 0, 0, 0)}, ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("inline", tt.posts)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			_, ok := AsLoadError(err)
			assert.True(t, ok)
		})
	}
}

func TestNewRejectsBlankCategories(t *testing.T) {
	valid := NewPost("TikTok", "USA", "Video", "High", "#a", 1, 1, 1, 1)
	blank := []struct {
		column string
		edit   func(*Post)
	}{
		{"Platform", func(p *Post) { p.Platform = "" }},
		{"Region", func(p *Post) { p.Region = " " }},
		{"Content_Type", func(p *Post) { p.ContentType = "" }},
		{"Engagement_Level", func(p *Post) { p.EngagementLevel = "" }},
		{"Hashtag", func(p *Post) { p.Hashtag = "" }},
	}
	for _, tt := range blank {
		t.Run(tt.column, func(t *testing.T) {
			p := valid
			tt.edit(&p)

			_, err := New("inline", []Post{valid, p})
			require.ErrorIs(t, err, ErrInvalidValue)
			le, ok := AsLoadError(err)
			require.True(t, ok)
			assert.Equal(t, 2, le.Line)
			assert.Equal(t, tt.column, le.Column)
		})
	}
}

func TestDefaultFilterSpecCoversEveryRow(t *testing.T) {
	data := header +
		"TikTok,USA,Video,High,#a,1,1,1,10\n" +
		"TikTok,,Video,High,#a,1,1,1,20\n"

	_, err := Load(context.Background(), ReaderSource{Label: "two-rows", Reader: strings.NewReader(data)})
	require.ErrorIs(t, err, ErrInvalidValue)
	le, _ := AsLoadError(err)
	assert.Equal(t, 3, le.Line)
	assert.Equal(t, "Region", le.Column)

	ds := loadFixture(t)
	assert.Equal(t, ds.Len(), ds.Build(ds.DefaultFilterSpec()).KPIs.TotalPosts)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), FileSource{Path: filepath.Join(t.TempDir(), "missing.csv")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestLoadWrapsForeignErrors(t *testing.T) {
	_, err := Load(context.Background(), failingSource{})
	require.Error(t, err)
	le, ok := AsLoadError(err)
	require.True(t, ok)
	assert.Equal(t, "failing", le.Source)
	assert.True(t, errors.Is(err, errBoom))
}

func TestLoadFromReader(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "posts.csv"))
	require.NoError(t, err)

	ds, err := Load(context.Background(), ReaderSource{Label: "stdin", Reader: strings.NewReader(string(data))})
	require.NoError(t, err)
	assert.Equal(t, 6, ds.Len())
}

var errBoom = errors.New("boom")

type failingSource struct{}

func (failingSource) Name() string                          { return "failing" }
func (failingSource) Posts(context.Context) ([]Post, error) { return nil, errBoom }

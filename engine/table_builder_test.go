package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTableGroupedBar(t *testing.T) {
	table := BuildTable(BuildInteractionsByPlatform(sampleView()))

	assert.Equal(t, "Interactions by Platform", table.Title)
	assert.Equal(t, []string{"Platform", "Likes", "Shares", "Comments"}, table.Headers())
	require.Len(t, table.Rows, 3)
	assert.Equal(t, []string{"TikTok", "140", "27", "16"}, table.Rows[0])
	assert.Equal(t, []string{"Instagram", "130", "30", "15"}, table.Rows[1])
	assert.Equal(t, []string{"YouTube", "200", "50", "30"}, table.Rows[2])

	require.NotNil(t, table.Summary)
	assert.Equal(t, "Total (3 rows)", table.Summary.Label)
	assert.Equal(t, map[string]string{"Likes": "470", "Shares": "107", "Comments": "61"}, table.Summary.Values)
}

func TestBuildTableHorizontalBarUsesYAxisLabel(t *testing.T) {
	table := BuildTable(BuildTopHashtags(sampleView(), 2))

	assert.Equal(t, "Hashtag", table.Columns[0].Label)
	assert.Equal(t, [][]string{{"#tech", "280"}, {"#dance", "175"}}, table.Rows)
	assert.Equal(t, "455", table.Summary.Values["Total Engagement"])
}

func TestBuildTableEmptyView(t *testing.T) {
	empty := ApplyFilters(sampleView(), FilterSpec{})
	table := BuildTable(BuildViewsByRegion(empty))

	assert.Empty(t, table.Rows)
	assert.Equal(t, []string{"Region", "Views"}, table.Headers())
	assert.Equal(t, "Total (0 rows)", table.Summary.Label)
	assert.Equal(t, "0", table.Summary.Values["Views"])
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "0", FormatInt(0))
	assert.Equal(t, "1,300", FormatInt(1300))
	assert.Equal(t, "-12,345,678", FormatInt(-12345678))
}

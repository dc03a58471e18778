package engine

// ============================================================================
// TEST FIXTURES
// ============================================================================

func post(platform, region, content, level, hashtag string, likes, shares, comments, views int64) Record {
	return Record{
		Dimensions: map[string]string{
			DimPlatform:        platform,
			DimRegion:          region,
			DimContentType:     content,
			DimEngagementLevel: level,
			DimHashtag:         hashtag,
		},
		Measures: map[string]int64{
			MeasureLikes:           likes,
			MeasureShares:          shares,
			MeasureComments:        comments,
			MeasureViews:           views,
			MeasureTotalEngagement: likes + shares + comments,
		},
	}
}

// samplePosts: total engagement per hashtag is
// #challenge 170, #dance 175, #tech 280, #fitness 13.
func samplePosts() []Record {
	return []Record{
		post("TikTok", "USA", "Video", "High", "#challenge", 100, 20, 10, 1000),
		post("Instagram", "UK", "Reel", "Medium", "#dance", 50, 10, 5, 500),
		post("TikTok", "Brazil", "Video", "Low", "#challenge", 30, 5, 5, 300),
		post("YouTube", "USA", "Shorts", "High", "#tech", 200, 50, 30, 5000),
		post("Instagram", "USA", "Post", "Medium", "#dance", 80, 20, 10, 800),
		post("TikTok", "UK", "Video", "High", "#fitness", 10, 2, 1, 200),
	}
}

func sampleView() RecordView {
	return NewSliceView(samplePosts())
}

func selectAll(view RecordView) FilterSpec {
	return FilterSpec{
		Platform:        UniqueValues(view, DimPlatform),
		Region:          UniqueValues(view, DimRegion),
		ContentType:     UniqueValues(view, DimContentType),
		EngagementLevel: UniqueValues(view, DimEngagementLevel),
	}
}

func seriesValues(s ChartSeries) []int64 {
	out := make([]int64, len(s.Data))
	for i, p := range s.Data {
		out[i] = p.Value
	}
	return out
}

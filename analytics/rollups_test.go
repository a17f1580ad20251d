package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialpulse/models"
)

func post(mediaType string, hour, day int, likes, shares, comments int64, hashtags ...string) models.Post {
	return models.Post{
		MediaType: mediaType,
		HourOfDay: hour,
		DayOfWeek: day,
		Likes:     likes,
		Shares:    shares,
		Comments:  comments,
		Hashtags:  hashtags,
	}
}

func TestCountsByMediaType(t *testing.T) {
	posts := []models.Post{
		post(models.MediaImage, 9, 1, 1, 0, 0),
		post(models.MediaImage, 10, 2, 2, 0, 0),
		post(models.MediaVideo, 11, 3, 3, 0, 0),
	}

	counts := CountsByMediaType(posts)
	require.Len(t, counts, 2)
	assert.Equal(t, MediaTypeCount{MediaType: "image", Count: 2}, counts[0])
	assert.Equal(t, MediaTypeCount{MediaType: "video", Count: 1}, counts[1])

	// Partition counts must add up to the input size, and absent media
	// types must not be reported at all.
	total := 0
	for _, mc := range counts {
		assert.GreaterOrEqual(t, mc.Count, 1)
		total += mc.Count
	}
	assert.Equal(t, len(posts), total)
}

func TestCountsByMediaType_Empty(t *testing.T) {
	assert.Empty(t, CountsByMediaType(nil))
}

func TestAvgEngagementByMediaType(t *testing.T) {
	posts := []models.Post{
		post(models.MediaVideo, 9, 1, 10, 4, 2),
		post(models.MediaVideo, 10, 2, 20, 6, 4),
		post(models.MediaText, 11, 3, 5, 1, 1),
	}

	engagement := AvgEngagementByMediaType(posts)
	require.Len(t, engagement, 2)

	// sorted by media type: text before video
	assert.Equal(t, "text", engagement[0].MediaType)
	assert.Equal(t, 1, engagement[0].Count)
	assert.Equal(t, 5.0, engagement[0].AvgLikes)

	video := engagement[1]
	assert.Equal(t, "video", video.MediaType)
	assert.Equal(t, 2, video.Count)
	assert.Equal(t, 15.0, video.AvgLikes) // (10+20)/2
	assert.Equal(t, 5.0, video.AvgShares)
	assert.Equal(t, 3.0, video.AvgComments)
}

func TestCountsByDayAndHour(t *testing.T) {
	posts := []models.Post{
		post(models.MediaText, 8, 0, 0, 0, 0),
		post(models.MediaText, 8, 0, 0, 0, 0),
		post(models.MediaText, 23, 6, 0, 0, 0),
	}

	days := CountsByDayOfWeek(posts)
	require.Len(t, days, 2)
	assert.Equal(t, DayCount{Day: 0, Count: 2}, days[0])
	assert.Equal(t, DayCount{Day: 6, Count: 1}, days[1])

	hours := CountsByHourOfDay(posts)
	require.Len(t, hours, 2)
	assert.Equal(t, HourCount{Hour: 8, Count: 2}, hours[0])
	assert.Equal(t, HourCount{Hour: 23, Count: 1}, hours[1])
}

func TestTopHashtags_ThresholdBoundary(t *testing.T) {
	posts := []models.Post{
		post(models.MediaText, 9, 1, 0, 0, 0, "once", "twice"),
		post(models.MediaText, 9, 1, 0, 0, 0, "twice", "thrice"),
		post(models.MediaText, 9, 1, 0, 0, 0, "thrice"),
		post(models.MediaText, 9, 1, 0, 0, 0, "thrice"),
	}

	top := TopHashtags(posts)
	require.Len(t, top, 2)
	assert.Equal(t, HashtagCount{Hashtag: "thrice", Count: 3}, top[0])
	assert.Equal(t, HashtagCount{Hashtag: "twice", Count: 2}, top[1])

	for _, h := range top {
		assert.NotEqual(t, "once", h.Hashtag, "single-use hashtag must be excluded")
	}
}

func TestTopHashtags_LimitAndOrder(t *testing.T) {
	// 30 hashtags, each used twice, with increasing extra usage so counts
	// differ: tag-29 is the most used.
	var posts []models.Post
	for i := 0; i < 30; i++ {
		tag := fmt.Sprintf("tag-%02d", i)
		for j := 0; j < 2+i; j++ {
			posts = append(posts, post(models.MediaText, 9, 1, 0, 0, 0, tag))
		}
	}

	top := TopHashtags(posts)
	require.Len(t, top, TopHashtagLimit)
	assert.Equal(t, "tag-29", top[0].Hashtag)
	assert.Equal(t, 31, top[0].Count)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Count, top[i].Count, "result must be sorted non-increasing")
	}
}

func TestTopHashtags_TieBreaksLexicographically(t *testing.T) {
	posts := []models.Post{
		post(models.MediaText, 9, 1, 0, 0, 0, "zebra", "alpha"),
		post(models.MediaText, 9, 1, 0, 0, 0, "zebra", "alpha"),
	}

	top := TopHashtags(posts)
	require.Len(t, top, 2)
	assert.Equal(t, "alpha", top[0].Hashtag)
	assert.Equal(t, "zebra", top[1].Hashtag)
}

func TestEngagementByHour_RanksByMeanOfSums(t *testing.T) {
	posts := []models.Post{
		// hour 9: totals 30 and 10, mean 20
		post(models.MediaText, 9, 1, 20, 5, 5),
		post(models.MediaText, 9, 2, 5, 3, 2),
		// hour 18: total 100, mean 100
		post(models.MediaText, 18, 3, 80, 10, 10),
	}

	ranking := EngagementByHour(posts)
	require.Len(t, ranking, 2)

	assert.Equal(t, 18, ranking[0].Hour)
	assert.Equal(t, 100.0, ranking[0].AvgEngagement)
	assert.Equal(t, 1, ranking[0].Count)

	assert.Equal(t, 9, ranking[1].Hour)
	assert.Equal(t, 20.0, ranking[1].AvgEngagement)
	assert.Equal(t, 12.5, ranking[1].AvgLikes)
	assert.Equal(t, 2, ranking[1].Count)
}

func TestEngagementByDay_RanksByMeanOfSums(t *testing.T) {
	posts := []models.Post{
		post(models.MediaText, 9, 5, 10, 0, 0),
		post(models.MediaText, 9, 2, 50, 0, 0),
	}

	ranking := EngagementByDay(posts)
	require.Len(t, ranking, 2)
	assert.Equal(t, 2, ranking[0].Day)
	assert.Equal(t, 5, ranking[1].Day)
}

func TestBestTimeByMediaType(t *testing.T) {
	posts := []models.Post{
		// video peaks at hour 20, day 5
		post(models.MediaVideo, 20, 5, 200, 50, 50),
		post(models.MediaVideo, 8, 1, 10, 2, 3),
		// image peaks at hour 12, day 3
		post(models.MediaImage, 12, 3, 90, 5, 5),
		post(models.MediaImage, 7, 0, 1, 1, 1),
	}

	best := BestTimeByMediaType(posts)
	require.Len(t, best, 2)

	image := best[0]
	assert.Equal(t, "image", image.MediaType)
	assert.Equal(t, 12, image.Hour)
	assert.Equal(t, 3, image.Day)
	assert.Equal(t, 100.0, image.AvgEngagement)
	assert.Equal(t, 1, image.Count)

	video := best[1]
	assert.Equal(t, "video", video.MediaType)
	assert.Equal(t, 20, video.Hour)
	assert.Equal(t, 5, video.Day)
	assert.Equal(t, 300.0, video.AvgEngagement)
}

func TestBestTimeByMediaType_TieResolvesToEarlierSlot(t *testing.T) {
	posts := []models.Post{
		post(models.MediaText, 15, 4, 50, 0, 0),
		post(models.MediaText, 10, 2, 50, 0, 0),
	}

	best := BestTimeByMediaType(posts)
	require.Len(t, best, 1)
	assert.Equal(t, 2, best[0].Day)
	assert.Equal(t, 10, best[0].Hour)
}

func TestRollups_Idempotent(t *testing.T) {
	posts := []models.Post{
		post(models.MediaImage, 9, 1, 3, 1, 1, "go", "testing"),
		post(models.MediaVideo, 18, 5, 40, 10, 5, "go"),
		post(models.MediaText, 9, 1, 7, 0, 2, "go", "testing"),
	}

	require.Equal(t, CountsByMediaType(posts), CountsByMediaType(posts))
	require.Equal(t, AvgEngagementByMediaType(posts), AvgEngagementByMediaType(posts))
	require.Equal(t, CountsByDayOfWeek(posts), CountsByDayOfWeek(posts))
	require.Equal(t, CountsByHourOfDay(posts), CountsByHourOfDay(posts))
	require.Equal(t, TopHashtags(posts), TopHashtags(posts))
	require.Equal(t, EngagementByHour(posts), EngagementByHour(posts))
	require.Equal(t, EngagementByDay(posts), EngagementByDay(posts))
	require.Equal(t, BestTimeByMediaType(posts), BestTimeByMediaType(posts))
}

// Package analytics holds the rollup and scoring core behind the stats
// endpoints. Everything here is a pure pass over records already fetched
// from MongoDB: no I/O, no shared state, same input always yields the same
// output.
package analytics

import (
	"sort"

	"github.com/montanaflynn/stats"

	"socialpulse/models"
)

// TopHashtagLimit caps the hashtag leaderboard.
const TopHashtagLimit = 20

type MediaTypeCount struct {
	MediaType string `json:"mediaType"`
	Count     int    `json:"count"`
}

type MediaTypeEngagement struct {
	MediaType   string  `json:"mediaType"`
	AvgLikes    float64 `json:"avgLikes"`
	AvgShares   float64 `json:"avgShares"`
	AvgComments float64 `json:"avgComments"`
	Count       int     `json:"count"`
}

type DayCount struct {
	Day   int `json:"day"` // 0-6, 0 = Sunday
	Count int `json:"count"`
}

type HourCount struct {
	Hour  int `json:"hour"` // 0-23
	Count int `json:"count"`
}

type HashtagCount struct {
	Hashtag string `json:"hashtag"`
	Count   int    `json:"count"`
}

type HourEngagement struct {
	Hour          int     `json:"hour"`
	AvgLikes      float64 `json:"avgLikes"`
	AvgShares     float64 `json:"avgShares"`
	AvgComments   float64 `json:"avgComments"`
	AvgEngagement float64 `json:"avgEngagement"`
	Count         int     `json:"count"`
}

type DayEngagement struct {
	Day           int     `json:"day"`
	AvgLikes      float64 `json:"avgLikes"`
	AvgShares     float64 `json:"avgShares"`
	AvgEngagement float64 `json:"avgEngagement"`
	AvgComments   float64 `json:"avgComments"`
	Count         int     `json:"count"`
}

type BestTime struct {
	MediaType     string  `json:"mediaType"`
	Hour          int     `json:"hour"`
	Day           int     `json:"day"`
	AvgEngagement float64 `json:"avgEngagement"`
	Count         int     `json:"count"`
}

// mean defaults to 0 on an empty partition. Unfiltered partitions are never
// empty (only observed keys are grouped) but caller-supplied filters can
// produce them.
func mean(vals []float64) float64 {
	m, err := stats.Mean(vals)
	if err != nil {
		return 0
	}
	return m
}

// CountsByMediaType partitions posts by media type. Only media types that
// actually occur are reported, sorted by name for a stable response.
func CountsByMediaType(posts []models.Post) []MediaTypeCount {
	counts := make(map[string]int)
	for _, p := range posts {
		counts[p.MediaType]++
	}

	out := make([]MediaTypeCount, 0, len(counts))
	for mt, n := range counts {
		out = append(out, MediaTypeCount{MediaType: mt, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MediaType < out[j].MediaType })
	return out
}

// AvgEngagementByMediaType reports mean likes/shares/comments and partition
// size per observed media type.
func AvgEngagementByMediaType(posts []models.Post) []MediaTypeEngagement {
	type bucket struct {
		likes, shares, comments []float64
	}
	buckets := make(map[string]*bucket)
	for _, p := range posts {
		b, ok := buckets[p.MediaType]
		if !ok {
			b = &bucket{}
			buckets[p.MediaType] = b
		}
		b.likes = append(b.likes, float64(p.Likes))
		b.shares = append(b.shares, float64(p.Shares))
		b.comments = append(b.comments, float64(p.Comments))
	}

	out := make([]MediaTypeEngagement, 0, len(buckets))
	for mt, b := range buckets {
		out = append(out, MediaTypeEngagement{
			MediaType:   mt,
			AvgLikes:    mean(b.likes),
			AvgShares:   mean(b.shares),
			AvgComments: mean(b.comments),
			Count:       len(b.likes),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MediaType < out[j].MediaType })
	return out
}

// CountsByDayOfWeek reports post counts keyed by the 0-6 day value. Mapping
// day numbers to Sunday..Saturday names is the consumer's job.
func CountsByDayOfWeek(posts []models.Post) []DayCount {
	counts := make(map[int]int)
	for _, p := range posts {
		counts[p.DayOfWeek]++
	}

	out := make([]DayCount, 0, len(counts))
	for day, n := range counts {
		out = append(out, DayCount{Day: day, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// CountsByHourOfDay reports post counts keyed by the 0-23 hour value.
func CountsByHourOfDay(posts []models.Post) []HourCount {
	counts := make(map[int]int)
	for _, p := range posts {
		counts[p.HourOfDay]++
	}

	out := make([]HourCount, 0, len(counts))
	for hour, n := range counts {
		out = append(out, HourCount{Hour: hour, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}

// TopHashtags flattens hashtag lists across all posts (one row per
// post-hashtag pair), drops hashtags used in only one post, and returns the
// top entries by count. Ties are broken lexicographically so repeated calls
// agree on the cut at the limit.
func TopHashtags(posts []models.Post) []HashtagCount {
	counts := make(map[string]int)
	for _, p := range posts {
		for _, tag := range p.Hashtags {
			counts[tag]++
		}
	}

	out := make([]HashtagCount, 0, len(counts))
	for tag, n := range counts {
		if n <= 1 {
			continue
		}
		out = append(out, HashtagCount{Hashtag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Hashtag < out[j].Hashtag
	})
	if len(out) > TopHashtagLimit {
		out = out[:TopHashtagLimit]
	}
	return out
}

// EngagementByHour ranks hours of the day by mean total engagement, the
// average of per-post likes+shares+comments sums. Highest first; equal
// engagement resolves to the earlier hour.
func EngagementByHour(posts []models.Post) []HourEngagement {
	type bucket struct {
		likes, shares, comments, totals []float64
	}
	buckets := make(map[int]*bucket)
	for _, p := range posts {
		b, ok := buckets[p.HourOfDay]
		if !ok {
			b = &bucket{}
			buckets[p.HourOfDay] = b
		}
		b.likes = append(b.likes, float64(p.Likes))
		b.shares = append(b.shares, float64(p.Shares))
		b.comments = append(b.comments, float64(p.Comments))
		b.totals = append(b.totals, float64(p.TotalEngagement()))
	}

	out := make([]HourEngagement, 0, len(buckets))
	for hour, b := range buckets {
		out = append(out, HourEngagement{
			Hour:          hour,
			AvgLikes:      mean(b.likes),
			AvgShares:     mean(b.shares),
			AvgComments:   mean(b.comments),
			AvgEngagement: mean(b.totals),
			Count:         len(b.totals),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgEngagement != out[j].AvgEngagement {
			return out[i].AvgEngagement > out[j].AvgEngagement
		}
		return out[i].Hour < out[j].Hour
	})
	return out
}

// EngagementByDay is EngagementByHour over the day-of-week key.
func EngagementByDay(posts []models.Post) []DayEngagement {
	type bucket struct {
		likes, shares, comments, totals []float64
	}
	buckets := make(map[int]*bucket)
	for _, p := range posts {
		b, ok := buckets[p.DayOfWeek]
		if !ok {
			b = &bucket{}
			buckets[p.DayOfWeek] = b
		}
		b.likes = append(b.likes, float64(p.Likes))
		b.shares = append(b.shares, float64(p.Shares))
		b.comments = append(b.comments, float64(p.Comments))
		b.totals = append(b.totals, float64(p.TotalEngagement()))
	}

	out := make([]DayEngagement, 0, len(buckets))
	for day, b := range buckets {
		out = append(out, DayEngagement{
			Day:           day,
			AvgLikes:      mean(b.likes),
			AvgShares:     mean(b.shares),
			AvgComments:   mean(b.comments),
			AvgEngagement: mean(b.totals),
			Count:         len(b.totals),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgEngagement != out[j].AvgEngagement {
			return out[i].AvgEngagement > out[j].AvgEngagement
		}
		return out[i].Day < out[j].Day
	})
	return out
}

// BestTimeByMediaType groups posts by (media type, hour, day) triples, sorts
// all triples by mean total engagement, then keeps the single best triple per
// media type. Ties resolve to the earlier (day, hour) pair.
func BestTimeByMediaType(posts []models.Post) []BestTime {
	type key struct {
		mediaType string
		hour, day int
	}
	buckets := make(map[key][]float64)
	for _, p := range posts {
		k := key{mediaType: p.MediaType, hour: p.HourOfDay, day: p.DayOfWeek}
		buckets[k] = append(buckets[k], float64(p.TotalEngagement()))
	}

	triples := make([]BestTime, 0, len(buckets))
	for k, totals := range buckets {
		triples = append(triples, BestTime{
			MediaType:     k.mediaType,
			Hour:          k.hour,
			Day:           k.day,
			AvgEngagement: mean(totals),
			Count:         len(totals),
		})
	}
	sort.Slice(triples, func(i, j int) bool {
		if triples[i].AvgEngagement != triples[j].AvgEngagement {
			return triples[i].AvgEngagement > triples[j].AvgEngagement
		}
		if triples[i].Day != triples[j].Day {
			return triples[i].Day < triples[j].Day
		}
		return triples[i].Hour < triples[j].Hour
	})

	seen := make(map[string]bool)
	var out []BestTime
	for _, t := range triples {
		if seen[t.MediaType] {
			continue
		}
		seen[t.MediaType] = true
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MediaType < out[j].MediaType })
	return out
}

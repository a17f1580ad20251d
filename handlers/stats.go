package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"socialpulse/analytics"
	"socialpulse/database"
	"socialpulse/models"
)

// buildPostFilter translates the shared stats/list query params into a Mongo
// filter. Supported: mediaType, uploadedBy, from, to (Unix seconds on
// postedAt). An empty query means the whole store.
func buildPostFilter(c *gin.Context) (bson.M, error) {
	filter := bson.M{}

	if mt := c.Query("mediaType"); mt != "" {
		if !models.ValidMediaType(mt) {
			return nil, fmt.Errorf("invalid media type %q", mt)
		}
		filter["mediaType"] = mt
	}

	if raw := c.Query("uploadedBy"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid uploadedBy id")
		}
		filter["uploadedBy"] = id
	}

	window := bson.M{}
	if raw := c.Query("from"); raw != "" {
		ts, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("from must be a Unix timestamp")
		}
		window["$gte"] = ts
	}
	if raw := c.Query("to"); raw != "" {
		ts, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("to must be a Unix timestamp")
		}
		window["$lte"] = ts
	}
	if len(window) > 0 {
		filter["postedAt"] = window
	}

	return filter, nil
}

// fetchPosts materializes the filtered post set. The rollups run in-process
// over this slice, so every stats call sees one consistent read.
func fetchPosts(ctx context.Context, filter bson.M) ([]models.Post, error) {
	cursor, err := database.Posts.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// statsHandler wraps the fetch-then-rollup flow shared by every stats
// endpoint; compute receives the materialized posts and returns the payload.
func statsHandler(c *gin.Context, compute func([]models.Post) interface{}) {
	filter, err := buildPostFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	posts, err := fetchPosts(ctx, filter)
	if err != nil {
		log.Printf("stats fetch error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, compute(posts))
}

func StatsMediaTypes(c *gin.Context) {
	statsHandler(c, func(posts []models.Post) interface{} {
		return gin.H{"mediaTypes": analytics.CountsByMediaType(posts)}
	})
}

func StatsEngagement(c *gin.Context) {
	statsHandler(c, func(posts []models.Post) interface{} {
		return gin.H{"engagement": analytics.AvgEngagementByMediaType(posts)}
	})
}

func StatsDays(c *gin.Context) {
	statsHandler(c, func(posts []models.Post) interface{} {
		return gin.H{"days": analytics.CountsByDayOfWeek(posts)}
	})
}

func StatsHours(c *gin.Context) {
	statsHandler(c, func(posts []models.Post) interface{} {
		return gin.H{"hours": analytics.CountsByHourOfDay(posts)}
	})
}

func StatsHashtags(c *gin.Context) {
	statsHandler(c, func(posts []models.Post) interface{} {
		return gin.H{"hashtags": analytics.TopHashtags(posts)}
	})
}

// StatsBestTimes returns the hourly and daily engagement rankings dashboards
// use for best-time-to-post hints.
func StatsBestTimes(c *gin.Context) {
	statsHandler(c, func(posts []models.Post) interface{} {
		return gin.H{
			"byHour": analytics.EngagementByHour(posts),
			"byDay":  analytics.EngagementByDay(posts),
		}
	})
}

func StatsBestTimesByMediaType(c *gin.Context) {
	statsHandler(c, func(posts []models.Post) interface{} {
		return gin.H{"bestTimes": analytics.BestTimeByMediaType(posts)}
	})
}

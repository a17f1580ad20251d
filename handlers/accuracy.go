package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"socialpulse/analytics"
	"socialpulse/database"
	"socialpulse/models"
)

// PredictionAccuracy scores every prediction whose actual outcomes have been
// recorded. An empty qualifying set is a successful zero-count result.
func PredictionAccuracy(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	filter := bson.M{
		"actualLikes":    bson.M{"$exists": true, "$ne": nil},
		"actualShares":   bson.M{"$exists": true, "$ne": nil},
		"actualComments": bson.M{"$exists": true, "$ne": nil},
	}

	cursor, err := database.Predictions.Find(ctx, filter)
	if err != nil {
		log.Printf("PredictionAccuracy error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch predictions"})
		return
	}
	defer cursor.Close(ctx)

	preds := []models.Prediction{}
	if err := cursor.All(ctx, &preds); err != nil {
		log.Printf("PredictionAccuracy decode error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode predictions"})
		return
	}

	c.JSON(http.StatusOK, analytics.ScoreAccuracy(preds))
}

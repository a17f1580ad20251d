package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"socialpulse/database"
	"socialpulse/mlclient"
	"socialpulse/models"
)

type PredictRequest struct {
	Content        string   `json:"content" binding:"required"`
	MediaType      string   `json:"mediaType" binding:"required"`
	Hashtags       []string `json:"hashtags"`
	FollowerCount  int64    `json:"followerCount" binding:"min=0"`
	FollowingCount int64    `json:"followingCount" binding:"min=0"`
	AccountAgeDays int64    `json:"accountAgeDays" binding:"min=0"`
}

// CreatePrediction forwards the snapshot to the ML service and persists the
// forecast it returns.
func CreatePrediction(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidMediaType(req.MediaType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mediaType must be image, video or text"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 35*time.Second)
	defer cancel()

	result, err := ml.Predict(ctx, mlclient.Snapshot{
		Content:        req.Content,
		MediaType:      req.MediaType,
		Hashtags:       req.Hashtags,
		FollowerCount:  req.FollowerCount,
		FollowingCount: req.FollowingCount,
		AccountAgeDays: req.AccountAgeDays,
	})
	if err != nil {
		log.Printf("CreatePrediction ml error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Prediction service unavailable"})
		return
	}

	pred := models.Prediction{
		ID:                primitive.NewObjectID(),
		Content:           req.Content,
		MediaType:         req.MediaType,
		Hashtags:          req.Hashtags,
		FollowerCount:     req.FollowerCount,
		FollowingCount:    req.FollowingCount,
		AccountAgeDays:    req.AccountAgeDays,
		PredictedLikes:    result.PredictedLikes,
		PredictedShares:   result.PredictedShares,
		PredictedComments: result.PredictedComments,
		EngagementLevel:   result.EngagementLevel,
		FeatureImportance: result.FeatureImportance,
		Confidence:        result.Confidence,
		RecommendedTime:   result.RecommendedTime,
		CreatedBy:         userID,
		CreatedAt:         time.Now().Unix(),
	}
	if err := pred.Validate(); err != nil {
		// The model spoke garbage; don't persist it.
		log.Printf("CreatePrediction invalid ml result: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Prediction service returned an invalid result"})
		return
	}

	if _, err := database.Predictions.InsertOne(ctx, pred); err != nil {
		log.Printf("CreatePrediction insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save prediction"})
		return
	}

	c.JSON(http.StatusCreated, pred)
}

// ListPredictions returns the caller's predictions, newest first. Admins see
// everyone's.
func ListPredictions(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	filter := bson.M{}
	if !isAdmin(c) {
		filter["createdBy"] = userID
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.Predictions.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("ListPredictions error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch predictions"})
		return
	}
	defer cursor.Close(ctx)

	preds := []models.Prediction{}
	if err := cursor.All(ctx, &preds); err != nil {
		log.Printf("ListPredictions decode error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode predictions"})
		return
	}

	c.JSON(http.StatusOK, preds)
}

type AttachActualsRequest struct {
	ActualLikes    *int64              `json:"actualLikes" binding:"required"`
	ActualShares   *int64              `json:"actualShares" binding:"required"`
	ActualComments *int64              `json:"actualComments" binding:"required"`
	PostRef        *primitive.ObjectID `json:"postRef,omitempty"`
}

// AttachActuals records the observed outcome on a prediction. All three
// metrics are required together: a half-reconciled prediction is not a state
// this API can produce, which keeps the accuracy scorer's filter exact.
// Reconciliation happens once; a second attempt is a conflict.
func AttachActuals(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prediction ID"})
		return
	}

	var req AttachActualsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *req.ActualLikes < 0 || *req.ActualShares < 0 || *req.ActualComments < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Actual metrics must not be negative"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	filter := bson.M{
		"_id":         id,
		"actualLikes": bson.M{"$exists": false},
	}
	if !isAdmin(c) {
		filter["createdBy"] = userID
	}

	update := bson.M{"$set": bson.M{
		"actualLikes":    *req.ActualLikes,
		"actualShares":   *req.ActualShares,
		"actualComments": *req.ActualComments,
	}}
	if req.PostRef != nil {
		update["$set"].(bson.M)["postRef"] = *req.PostRef
	}

	res, err := database.Predictions.UpdateOne(ctx, filter, update)
	if err != nil {
		log.Printf("AttachActuals error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update prediction"})
		return
	}
	if res.MatchedCount == 0 {
		// Either missing, not the caller's, or already reconciled
		var existing models.Prediction
		lookupErr := database.Predictions.FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if lookupErr == nil && existing.Reconciled() {
			c.JSON(http.StatusConflict, gin.H{"error": "Prediction already has actual outcomes recorded"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Prediction not found or not yours to update"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Actual outcomes recorded"})
}

func DeletePrediction(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prediction ID"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if !isAdmin(c) {
		filter["createdBy"] = userID
	}

	res, err := database.Predictions.DeleteOne(ctx, filter)
	if err != nil {
		log.Printf("DeletePrediction error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prediction"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prediction not found or not yours to delete"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prediction deleted"})
}

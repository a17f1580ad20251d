package models

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Engagement levels the classifier and the ML service speak.
const (
	EngagementLow    = "low"
	EngagementMedium = "medium"
	EngagementHigh   = "high"
)

func ValidEngagementLevel(level string) bool {
	return level == EngagementLow || level == EngagementMedium || level == EngagementHigh
}

// Prediction is one forecast returned by the ML service for a (possibly
// hypothetical) post, plus the input snapshot it was made from. The actual*
// fields are attached later, in a single reconciliation, once the real-world
// outcome is known. They are set as a triple or not at all.
type Prediction struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Content           string              `bson:"content" json:"content"`
	MediaType         string              `bson:"mediaType" json:"mediaType"`
	Hashtags          []string            `bson:"hashtags" json:"hashtags"`
	FollowerCount     int64               `bson:"followerCount" json:"followerCount"`
	FollowingCount    int64               `bson:"followingCount" json:"followingCount"`
	AccountAgeDays    int64               `bson:"accountAgeDays" json:"accountAgeDays"`
	PredictedLikes    float64             `bson:"predictedLikes" json:"predictedLikes"`
	PredictedShares   float64             `bson:"predictedShares" json:"predictedShares"`
	PredictedComments float64             `bson:"predictedComments" json:"predictedComments"`
	EngagementLevel   string              `bson:"engagementLevel" json:"engagementLevel"`
	FeatureImportance map[string]float64  `bson:"featureImportance" json:"featureImportance"`
	Confidence        float64             `bson:"confidence" json:"confidence"`
	RecommendedTime   string              `bson:"recommendedTime,omitempty" json:"recommendedTime,omitempty"`
	ActualLikes       *int64              `bson:"actualLikes,omitempty" json:"actualLikes,omitempty"`
	ActualShares      *int64              `bson:"actualShares,omitempty" json:"actualShares,omitempty"`
	ActualComments    *int64              `bson:"actualComments,omitempty" json:"actualComments,omitempty"`
	PostRef           *primitive.ObjectID `bson:"postRef,omitempty" json:"postRef,omitempty"`
	CreatedBy         primitive.ObjectID  `bson:"createdBy" json:"createdBy"`
	CreatedAt         int64               `bson:"createdAt" json:"createdAt"`
}

// Reconciled reports whether actual outcomes have been attached. The write
// path only ever sets the three fields together, so checking all of them is
// an exact filter, not a defensive one.
func (p *Prediction) Reconciled() bool {
	return p.ActualLikes != nil && p.ActualShares != nil && p.ActualComments != nil
}

func (p *Prediction) Validate() error {
	if !ValidMediaType(p.MediaType) {
		return fmt.Errorf("invalid media type %q", p.MediaType)
	}
	if !ValidEngagementLevel(p.EngagementLevel) {
		return fmt.Errorf("invalid engagement level %q", p.EngagementLevel)
	}
	if p.Confidence < 0 || p.Confidence > 1 {
		return fmt.Errorf("confidence %v out of range [0,1]", p.Confidence)
	}
	if p.PredictedLikes < 0 || p.PredictedShares < 0 || p.PredictedComments < 0 {
		return errors.New("predicted metrics must not be negative")
	}
	for name, v := range map[string]int64{
		"followerCount":  p.FollowerCount,
		"followingCount": p.FollowingCount,
		"accountAgeDays": p.AccountAgeDays,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	return nil
}

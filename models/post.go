package models

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Media types a post can carry.
const (
	MediaImage = "image"
	MediaVideo = "video"
	MediaText  = "text"
)

func ValidMediaType(mt string) bool {
	return mt == MediaImage || mt == MediaVideo || mt == MediaText
}

// Post is one observed social-media post with known outcomes. Records are
// immutable after insert; the only write after creation is deletion by the
// uploader or an admin.
type Post struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID         string             `bson:"postId" json:"postId"`
	Content        string             `bson:"content" json:"content"`
	MediaType      string             `bson:"mediaType" json:"mediaType"`
	Hashtags       []string           `bson:"hashtags" json:"hashtags"`
	PostedAt       int64              `bson:"postedAt" json:"postedAt"` // Unix timestamp
	AuthorHandle   string             `bson:"authorHandle" json:"authorHandle"`
	FollowerCount  int64              `bson:"followerCount" json:"followerCount"`
	FollowingCount int64              `bson:"followingCount" json:"followingCount"`
	AccountAgeDays int64              `bson:"accountAgeDays" json:"accountAgeDays"`
	Likes          int64              `bson:"likes" json:"likes"`
	Shares         int64              `bson:"shares" json:"shares"`
	Comments       int64              `bson:"comments" json:"comments"`
	TextLength     int                `bson:"textLength" json:"textLength"`
	HourOfDay      int                `bson:"hourOfDay" json:"hourOfDay"` // 0-23
	DayOfWeek      int                `bson:"dayOfWeek" json:"dayOfWeek"` // 0-6, 0 = Sunday
	UploadedBy     primitive.ObjectID `bson:"uploadedBy" json:"uploadedBy"`
}

// Derive fills the fields computed from content and timestamp. Must be called
// before insert so hourOfDay/dayOfWeek always agree with postedAt.
func (p *Post) Derive() {
	p.TextLength = utf8.RuneCountInString(p.Content)
	t := time.Unix(p.PostedAt, 0)
	p.HourOfDay = t.Hour()
	p.DayOfWeek = int(t.Weekday())
}

func (p *Post) Validate() error {
	if p.PostID == "" {
		return errors.New("postId is required")
	}
	if !ValidMediaType(p.MediaType) {
		return fmt.Errorf("invalid media type %q", p.MediaType)
	}
	if p.PostedAt <= 0 {
		return errors.New("postedAt is required")
	}
	for name, v := range map[string]int64{
		"followerCount":  p.FollowerCount,
		"followingCount": p.FollowingCount,
		"accountAgeDays": p.AccountAgeDays,
		"likes":          p.Likes,
		"shares":         p.Shares,
		"comments":       p.Comments,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	return nil
}

// TotalEngagement is the per-post sum of outcome metrics.
func (p *Post) TotalEngagement() int64 {
	return p.Likes + p.Shares + p.Comments
}

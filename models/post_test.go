package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPost() Post {
	p := Post{
		PostID:    "post-001",
		Content:   "hello world",
		MediaType: MediaImage,
		PostedAt:  time.Date(2024, 3, 5, 14, 30, 0, 0, time.Local).Unix(), // Tuesday
		Likes:     10,
		Shares:    2,
		Comments:  1,
	}
	p.Derive()
	return p
}

func TestValidMediaType(t *testing.T) {
	assert.True(t, ValidMediaType(MediaImage))
	assert.True(t, ValidMediaType(MediaVideo))
	assert.True(t, ValidMediaType(MediaText))
	assert.False(t, ValidMediaType("gif"))
	assert.False(t, ValidMediaType(""))
}

func TestPost_DeriveFromTimestamp(t *testing.T) {
	p := validPost()

	// 2024-03-05 14:30 local time is a Tuesday
	assert.Equal(t, 14, p.HourOfDay)
	assert.Equal(t, 2, p.DayOfWeek)
	assert.Equal(t, len("hello world"), p.TextLength)
}

func TestPost_DeriveCountsRunesNotBytes(t *testing.T) {
	p := Post{Content: "héllo"}
	p.Derive()
	assert.Equal(t, 5, p.TextLength)
}

func TestPost_DeriveSundayIsZero(t *testing.T) {
	p := Post{PostedAt: time.Date(2024, 3, 10, 0, 5, 0, 0, time.Local).Unix()} // Sunday
	p.Derive()
	assert.Equal(t, 0, p.DayOfWeek)
	assert.Equal(t, 0, p.HourOfDay)
}

func TestPost_Validate(t *testing.T) {
	p := validPost()
	require.NoError(t, p.Validate())

	p = validPost()
	p.PostID = ""
	assert.Error(t, p.Validate())

	p = validPost()
	p.MediaType = "carousel"
	assert.Error(t, p.Validate())

	p = validPost()
	p.Likes = -1
	assert.Error(t, p.Validate())

	p = validPost()
	p.FollowerCount = -5
	assert.Error(t, p.Validate())

	p = validPost()
	p.PostedAt = 0
	assert.Error(t, p.Validate())
}

func TestPost_TotalEngagement(t *testing.T) {
	p := validPost()
	assert.Equal(t, int64(13), p.TotalEngagement())
}

package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"socialpulse/database"
	"socialpulse/models"
)

type CreatePostRequest struct {
	PostID         string   `json:"postId" binding:"required"`
	Content        string   `json:"content"`
	MediaType      string   `json:"mediaType" binding:"required"`
	Hashtags       []string `json:"hashtags"`
	PostedAt       int64    `json:"postedAt" binding:"required"`
	AuthorHandle   string   `json:"authorHandle"`
	FollowerCount  int64    `json:"followerCount"`
	FollowingCount int64    `json:"followingCount"`
	AccountAgeDays int64    `json:"accountAgeDays"`
	Likes          int64    `json:"likes"`
	Shares         int64    `json:"shares"`
	Comments       int64    `json:"comments"`
}

func (req *CreatePostRequest) toPost(uploadedBy primitive.ObjectID) models.Post {
	post := models.Post{
		ID:             primitive.NewObjectID(),
		PostID:         req.PostID,
		Content:        req.Content,
		MediaType:      req.MediaType,
		Hashtags:       req.Hashtags,
		PostedAt:       req.PostedAt,
		AuthorHandle:   req.AuthorHandle,
		FollowerCount:  req.FollowerCount,
		FollowingCount: req.FollowingCount,
		AccountAgeDays: req.AccountAgeDays,
		Likes:          req.Likes,
		Shares:         req.Shares,
		Comments:       req.Comments,
		UploadedBy:     uploadedBy,
	}
	post.Derive()
	return post
}

func CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	post := req.toPost(userID)
	if err := post.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if _, err := database.Posts.InsertOne(ctx, post); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "A post with this postId already exists"})
			return
		}
		log.Printf("CreatePost error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

type BulkImportRequest struct {
	Posts []CreatePostRequest `json:"posts" binding:"required,min=1"`
}

// BulkImportPosts inserts a batch of posts in one write. Validation is
// all-or-nothing: one bad record rejects the whole batch, so a partial
// import never reaches the store.
func BulkImportPosts(c *gin.Context) {
	var req BulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	docs := make([]interface{}, 0, len(req.Posts))
	for i := range req.Posts {
		post := req.Posts[i].toPost(userID)
		if err := post.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
				"index": i,
			})
			return
		}
		docs = append(docs, post)
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	res, err := database.Posts.InsertMany(ctx, docs)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Batch contains an already existing postId"})
			return
		}
		log.Printf("BulkImportPosts error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import posts"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Posts imported successfully",
		"imported": len(res.InsertedIDs),
	})
}

func ListPosts(c *gin.Context) {
	filter, err := buildPostFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := int64(50)
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 || n > 500 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 500"})
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "postedAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := database.Posts.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("ListPosts error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		log.Printf("ListPosts decode error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode posts"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

func GetPost(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	var post models.Post
	err = database.Posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		log.Printf("GetPost error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost removes a post. Only the uploader or an admin may delete;
// everything else about a stored post is immutable.
func DeletePost(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
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
		filter["uploadedBy"] = userID
	}

	res, err := database.Posts.DeleteOne(ctx, filter)
	if err != nil {
		log.Printf("DeletePost error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found or not yours to delete"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

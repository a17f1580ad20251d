package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"socialpulse/mlclient"
)

// Per-request store deadline shared by all handlers.
const requestTimeout = 10 * time.Second

var ml *mlclient.Client

// SetMLClient wires the prediction handlers to the external ML service.
func SetMLClient(client *mlclient.Client) {
	ml = client
}

// callerID returns the authenticated caller's id. Responds 401 and returns
// false when the middleware didn't leave a usable id behind.
func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func isAdmin(c *gin.Context) bool {
	return c.GetBool("isAdmin")
}

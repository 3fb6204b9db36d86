package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func Healthcheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"message":   "Server is running properly",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Test mirrors Healthcheck under the older /api/test path some clients still
// call.
func Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Server is running properly",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

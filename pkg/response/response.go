package response

import (
	"log"
	"net/http"
	"os"

	"github.com/anusasana/portal/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// GetUserID retrieves the authenticated user ID from the context, when the
// request carried a valid token. Callers must handle its absence: most routes
// accept unauthenticated requests.
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	return id, ok && id != ""
}

// Error renders a standardized error response.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)
	msg := err.Error()

	// Log internal errors; suppress their detail outside development.
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
		if os.Getenv("APP_ENV") == "production" {
			msg = "internal server error"
		}
	}

	c.JSON(code, gin.H{"error": msg})
}

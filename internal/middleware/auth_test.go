package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anusasana/portal/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret, subject string, ttl time.Duration) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func identifyRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(NewAuthMiddleware(secret).Identify())
	router.GET("/whoami", func(c *gin.Context) {
		userID, ok := response.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID, "identified": ok})
	})
	return router
}

func TestIdentify(t *testing.T) {
	const secret = "test-secret"
	router := identifyRouter(secret)

	get := func(t *testing.T, header, query string) *httptest.ResponseRecorder {
		t.Helper()

		target := "/whoami"
		if query != "" {
			target += "?token=" + query
		}
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("bearer token binds the user id", func(t *testing.T) {
		token := signToken(t, secret, "user-123", time.Hour)
		w := get(t, "Bearer "+token, "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"userId":"user-123"`)
		assert.Contains(t, w.Body.String(), `"identified":true`)
	})

	t.Run("token query parameter works for websocket upgrades", func(t *testing.T) {
		token := signToken(t, secret, "user-456", time.Hour)
		w := get(t, "", token)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"userId":"user-456"`)
	})

	t.Run("requests pass through without a token", func(t *testing.T) {
		w := get(t, "", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"identified":false`)
	})

	t.Run("garbage and expired tokens do not block the request", func(t *testing.T) {
		for _, token := range []string{
			"not-a-jwt",
			signToken(t, "wrong-secret", "user-123", time.Hour),
			signToken(t, secret, "user-123", -time.Hour),
		} {
			w := get(t, "Bearer "+token, "")
			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `"identified":false`)
		}
	})
}

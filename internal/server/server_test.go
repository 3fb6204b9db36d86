package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/anusasana/portal/internal/config"
	"github.com/anusasana/portal/internal/repository/memory"
	"github.com/anusasana/portal/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		AppEnv:        "test",
		JWTSecret:     "test-secret",
		JWTTTLMinutes: time.Hour,
	}
	return NewWithRepos(cfg, memory.NewSet(), nil, nil, service.StubExtractor{})
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func register(t *testing.T, srv *Server, email, role string) map[string]interface{} {
	t.Helper()

	w := doJSON(t, srv, http.MethodPost, "/api/register", gin.H{
		"name":     "Asha Rao",
		"email":    email,
		"password": "s3cret-pw",
		"role":     role,
		"college":  "Hillside College",
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	return decode(t, w)
}

func TestRegisterEndpoint(t *testing.T) {
	srv := newTestServer(t)

	t.Run("creates a user with a prefixed uniqueId", func(t *testing.T) {
		body := register(t, srv, "asha@example.com", "student")

		assert.Equal(t, true, body["success"])
		assert.NotEmpty(t, body["userId"])

		user := body["user"].(map[string]interface{})
		assert.Equal(t, "asha@example.com", user["email"])
		assert.True(t, strings.HasPrefix(user["uniqueId"].(string), "STU-"))
		_, hasPassword := user["password"]
		assert.False(t, hasPassword)
	})

	t.Run("duplicate email is a 400", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/register", gin.H{
			"name": "Imposter", "email": "asha@example.com", "password": "x",
			"role": "student", "college": "Hillside College",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "user with this email already exists", decode(t, w)["error"])
	})

	t.Run("binding failures are a 400", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/register", gin.H{
			"name": "Asha", "email": "not-an-email", "password": "x",
			"role": "student", "college": "Hillside College",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotEmpty(t, decode(t, w)["error"])
	})
}

func TestLoginEndpoint(t *testing.T) {
	srv := newTestServer(t)
	register(t, srv, "asha@example.com", "student")

	t.Run("valid credentials return a token", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/login", gin.H{
			"email": "asha@example.com", "password": "s3cret-pw",
		})
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		assert.NotEmpty(t, body["token"])
	})

	t.Run("bad password and unknown email are indistinguishable", func(t *testing.T) {
		wrongPw := doJSON(t, srv, http.MethodPost, "/api/login", gin.H{
			"email": "asha@example.com", "password": "nope",
		})
		unknown := doJSON(t, srv, http.MethodPost, "/api/login", gin.H{
			"email": "ghost@example.com", "password": "nope",
		})

		assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, wrongPw.Body.String(), unknown.Body.String())
	})
}

func TestUserLookupEndpoints(t *testing.T) {
	srv := newTestServer(t)
	body := register(t, srv, "asha@example.com", "student")
	uniqueID := body["user"].(map[string]interface{})["uniqueId"].(string)
	register(t, srv, "rao@example.com", "teacher")

	t.Run("list students", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodGet, "/api/students", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var users []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
		require.Len(t, users, 1)
		assert.Equal(t, "asha@example.com", users[0]["email"])
	})

	t.Run("lookup by uniqueId", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodGet, "/api/students/"+uniqueID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "asha@example.com", decode(t, w)["email"])
	})

	t.Run("student id does not resolve as a teacher", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodGet, "/api/teachers/"+uniqueID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodGet, "/api/students/STU-XXXX", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMessageEndpoints(t *testing.T) {
	srv := newTestServer(t)

	t.Run("send and fetch per user", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/messages", gin.H{
			"senderId": "A", "receiverId": "B", "text": "hello",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		assert.NotEmpty(t, body["id"])
		assert.NotEmpty(t, body["timestamp"])

		w = doJSON(t, srv, http.MethodGet, "/api/messages/B", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var msgs []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msgs))
		require.Len(t, msgs, 1)
		assert.Equal(t, "hello", msgs[0]["text"])
		assert.Equal(t, false, msgs[0]["isSent"])

		w = doJSON(t, srv, http.MethodGet, "/messages", nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing text is a 400", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/messages", gin.H{
			"senderId": "A", "receiverId": "B",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "missing required fields", decode(t, w)["error"])
	})
}

func TestAssignmentEndpoints(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/assignments", gin.H{
		"name": "Essay 1", "text": "my work", "studentId": "STU-0001",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)
	assert.Equal(t, "pending", created["status"])
	id := created["id"].(string)

	w = doJSON(t, srv, http.MethodPatch, fmt.Sprintf("/assignments/%s/grade", id), gin.H{
		"grade": 85, "feedback": "well argued",
	})
	require.Equal(t, http.StatusOK, w.Code)
	graded := decode(t, w)
	assert.Equal(t, "graded", graded["status"])
	assert.Equal(t, float64(85), graded["grade"])

	// Terminal state holds on a repeat grade.
	w = doJSON(t, srv, http.MethodPatch, fmt.Sprintf("/assignments/%s/grade", id), gin.H{"grade": 10})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(85), decode(t, w)["grade"])

	w = doJSON(t, srv, http.MethodGet, "/assignments", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
}

func TestDoubtEndpoints(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/doubts", gin.H{
		"text": "Why is the sky blue?", "studentId": "STU-0001", "status": "pending",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["id"].(string)

	w = doJSON(t, srv, http.MethodPatch, fmt.Sprintf("/doubts/%s/resolve", id), gin.H{
		"answer": "Rayleigh scattering.",
	})
	require.Equal(t, http.StatusOK, w.Code)
	resolved := decode(t, w)
	assert.Equal(t, "resolved", resolved["status"])
	assert.Equal(t, "Rayleigh scattering.", resolved["answer"])

	w = doJSON(t, srv, http.MethodPatch, fmt.Sprintf("/doubts/%s/resolve", id), gin.H{
		"answer": "Magic.",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Rayleigh scattering.", decode(t, w)["answer"])
}

func TestBoardEndpoints(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/tasks", gin.H{
		"name": "Read chapter 4", "dueDate": "2025-04-01", "teacherId": "TCH-0001",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/classes", gin.H{
		"title": "Physics 101", "teacherId": "TCH-0001",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/announcements", gin.H{
		"text": "Exam moved to Friday", "teacherId": "TCH-0001",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	for _, path := range []string{"/tasks", "/classes", "/announcements"} {
		w = doJSON(t, srv, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)

		var list []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Len(t, list, 1, path)
	}
}

func TestExtractTextEndpoint(t *testing.T) {
	srv := newTestServer(t)

	upload := func(t *testing.T, contentType, body string) *httptest.ResponseRecorder {
		t.Helper()

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="notes.txt"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte(body))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/extract-text", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		srv.Engine().ServeHTTP(w, req)
		return w
	}

	t.Run("plain text passes through", func(t *testing.T) {
		w := upload(t, "text/plain", "raw lecture notes")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "raw lecture notes", decode(t, w)["text"])
	})

	t.Run("images yield simulated OCR text", func(t *testing.T) {
		w := upload(t, "image/jpeg", "\xff\xd8\xff")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, decode(t, w)["text"], "simulated OCR")
	})

	t.Run("missing file is a 400", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/extract-text", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/healthcheck", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])

	w = doJSON(t, srv, http.MethodGet, "/api/test", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["success"])
}

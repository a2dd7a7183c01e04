package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yibyerm/internal/models"
)

func testRouter(m *Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", m.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": ClaimsFrom(c).UserID})
	})
	r.GET("/admin", m.RequireAuth(), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	m := NewManager("secret")
	r := testRouter(m)

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/me", "garbage").Code)

	token, err := m.GenerateToken(&models.User{ID: uuid.New(), Email: "a@b.th", Role: models.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, doRequest(r, "/me", token).Code)
}

func TestRequireAdmin(t *testing.T) {
	m := NewManager("secret")
	r := testRouter(m)

	userToken, err := m.GenerateToken(&models.User{ID: uuid.New(), Email: "u@b.th", Role: models.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, doRequest(r, "/admin", userToken).Code)

	adminToken, err := m.GenerateToken(&models.User{ID: uuid.New(), Email: "a@b.th", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, doRequest(r, "/admin", adminToken).Code)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aodai_back_end/internal/utils"
)

func request(t *testing.T, header string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	if header != "" {
		c.Request.Header.Set("Authorization", header)
	}

	AuthRequired()(c)
	return w
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	token, err := utils.GenerateToken("66f0c1d2e3a4b5c6d7e8f901", false)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	c.Request.Header.Set("Authorization", "Bearer "+token)

	AuthRequired()(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, "66f0c1d2e3a4b5c6d7e8f901", c.GetString("user_id"))
	assert.False(t, c.GetBool("is_admin"))
}

func TestAuthRequiredRejectsMissingHeader(t *testing.T) {
	w := request(t, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsMalformedHeader(t *testing.T) {
	w := request(t, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsGarbageToken(t *testing.T) {
	w := request(t, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/orders/all", nil)
	c.Set("is_admin", false)

	RequireAdmin(c)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/api/orders/all", nil)
	c2.Set("is_admin", true)

	RequireAdmin(c2)
	assert.False(t, c2.IsAborted())
}

package middleware

import (
	"bitwise74/medflow-api/pkg/security"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(NewRequestIDMiddleware())
	r.Use(mw...)
	r.Any("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString("userID"), "role": c.GetString("role")})
	})
	return r
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := newEngine()

	w := do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 10)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "from-proxy")
	w = do(r, req)
	assert.Equal(t, "from-proxy", w.Header().Get(RequestIDHeader))
}

func TestJWTMiddleware(t *testing.T) {
	r := newEngine(NewJWTMiddleware("secret"), RequireAdmin())

	w := do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, do(r, req).Code)

	student, err := security.SignSession("secret", "s1", "student", time.Now(), time.Hour)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+student)
	assert.Equal(t, http.StatusForbidden, do(r, req).Code)

	admin, err := security.SignSession("secret", "a1", "admin", time.Now(), time.Hour)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	w = do(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userID":"a1"`)
}

func TestRateLimiter(t *testing.T) {
	r := newEngine(RateLimiterMiddleware(RateLimiterConfig{RequestsPerSecond: 1, Burst: 2}))

	codes := []int{}
	for range 3 {
		codes = append(codes, do(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestBodySizeLimiter(t *testing.T) {
	r := newEngine(BodySizeLimiter(8))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("way more than eight bytes"))
	assert.Equal(t, http.StatusRequestEntityTooLarge, do(r, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("tiny"))
	assert.Equal(t, http.StatusOK, do(r, req).Code)
}

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"farm_market/internal/auth"
	"farm_market/internal/models"
)

type stubParser struct {
	actor *auth.Actor
	err   error
}

func (s stubParser) Parse(string) (*auth.Actor, error) {
	return s.actor, s.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		actor := CurrentActor(c)
		if actor == nil {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": actor.UserID})
	})
	r.GET("/", handlers...)
	return r
}

func do(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	shopper := &auth.Actor{UserID: 4, Role: models.RoleShopper}

	t.Run("MissingHeader", func(t *testing.T) {
		w := do(newRouter(RequireAuth(stubParser{actor: shopper})), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("NotBearer", func(t *testing.T) {
		w := do(newRouter(RequireAuth(stubParser{actor: shopper})), "Basic abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		w := do(newRouter(RequireAuth(stubParser{err: errors.New("bad")})), "Bearer abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid or expired token")
	})

	t.Run("Valid", func(t *testing.T) {
		w := do(newRouter(RequireAuth(stubParser{actor: shopper})), "Bearer abc")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":4}`, w.Body.String())
	})
}

func TestRequireRole(t *testing.T) {
	farmer := &auth.Actor{UserID: 9, Role: models.RoleFarmer}

	t.Run("WrongRole", func(t *testing.T) {
		w := do(newRouter(RequireAuth(stubParser{actor: farmer}), RequireRole(models.RoleShopper)), "Bearer abc")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "shoppers only")
	})

	t.Run("RightRole", func(t *testing.T) {
		w := do(newRouter(RequireAuth(stubParser{actor: farmer}), RequireRole(models.RoleFarmer)), "Bearer abc")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("WithoutAuth", func(t *testing.T) {
		w := do(newRouter(RequireRole(models.RoleFarmer)), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	r := newRouter(rl.Middleware())

	assert.Equal(t, http.StatusNoContent, do(r, "").Code)
	assert.Equal(t, http.StatusNoContent, do(r, "").Code)

	w := do(r, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestRateLimiter_DropsIdleVisitors(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	rl.getVisitor("10.0.0.1")
	now = now.Add(2 * visitorTTL)
	rl.getVisitor("10.0.0.2")

	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "10.0.0.2")
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jemo-market/api/internal/constants"
	"github.com/jemo-market/api/internal/models"
	"github.com/jemo-market/api/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	if strings.TrimSpace(w2.Header().Get(requestIDHeader)) == "" {
		t.Fatalf("generated request id should not be blank")
	}
}

func TestJWTAuthMiddlewareMissingSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuthMiddleware("", nil))
	r.GET("/admin/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d", w.Code)
	}
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}

func TestUserJWTAuthMiddlewareMalformedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(UserJWTAuthMiddleware("test-secret", stubUserRepoForAuth{}))
	r.GET("/market/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	cases := []struct {
		name   string
		header string
	}{
		{name: "missing", header: ""},
		{name: "no scheme", header: "abcdef"},
		{name: "wrong scheme", header: "Basic abcdef"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/market/ping", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status want 401 got %d", w.Code)
			}
		})
	}
}

// stubUserRepoForAuth satisfies repository.UserRepository for paths that
// reject before any lookup happens.
type stubUserRepoForAuth struct{}

func (stubUserRepoForAuth) Create(*models.User) error          { return nil }
func (stubUserRepoForAuth) GetByID(uint) (*models.User, error) { return nil, gorm.ErrRecordNotFound }
func (stubUserRepoForAuth) GetByPhone(string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (stubUserRepoForAuth) Update(*models.User) error                       { return nil }
func (stubUserRepoForAuth) UpdateFields(uint, map[string]interface{}) error { return nil }
func (stubUserRepoForAuth) WithTx(*gorm.DB) *repository.GormUserRepository  { return nil }
func (stubUserRepoForAuth) List(repository.UserListFilter) ([]models.User, int64, error) {
	return nil, 0, nil
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(role string, required ...string) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			if role != "" {
				c.Set("user_role", role)
			}
			c.Next()
		})
		r.Use(RequireRoles(required...))
		r.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
		return r
	}

	cases := []struct {
		name     string
		role     string
		required []string
		want     int
	}{
		{name: "vendor allowed", role: constants.RoleVendor, required: []string{constants.RoleVendor}, want: http.StatusOK},
		{name: "customer rejected on vendor route", role: constants.RoleCustomer, required: []string{constants.RoleVendor}, want: http.StatusForbidden},
		{name: "rider passes agency gate", role: constants.RoleRider, required: []string{constants.RoleAgency}, want: http.StatusOK},
		{name: "agency passes agency gate", role: constants.RoleAgency, required: []string{constants.RoleAgency}, want: http.StatusOK},
		{name: "missing role rejected", role: "", required: []string{constants.RoleCustomer}, want: http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			newRouter(tc.role, tc.required...).ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("status want %d got %d", tc.want, w.Code)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/ping", nil)
	c.Request.Header.Set("Authorization", "Bearer abc.def.ghi")

	token, ok := bearerToken(c)
	if !ok || token != "abc.def.ghi" {
		t.Fatalf("token want abc.def.ghi got %q ok=%v", token, ok)
	}

	c.Request.Header.Set("Authorization", "Token abc")
	if _, ok := bearerToken(c); ok {
		t.Fatalf("non-bearer scheme should not parse")
	}
}

package shared

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestNormalizePagination(t *testing.T) {
	cases := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{name: "defaults", page: 0, pageSize: 0, wantPage: 1, wantPageSize: 20},
		{name: "negative", page: -5, pageSize: -1, wantPage: 1, wantPageSize: 20},
		{name: "capped", page: 3, pageSize: 500, wantPage: 3, wantPageSize: 100},
		{name: "passthrough", page: 2, pageSize: 50, wantPage: 2, wantPageSize: 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, pageSize := NormalizePagination(tc.page, tc.pageSize)
			require.Equal(t, tc.wantPage, page)
			require.Equal(t, tc.wantPageSize, pageSize)
		})
	}
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/items?page=4&page_size=30", nil)

	page, pageSize := ParsePagination(c)
	require.Equal(t, 4, page)
	require.Equal(t, 30, pageSize)

	// gin caches query params per context, so use a fresh context for the second request.
	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/items?page=abc", nil)
	page, pageSize = ParsePagination(c)
	require.Equal(t, 1, page)
	require.Equal(t, 20, pageSize)
}

package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDList(t *testing.T) {
	ids, err := ParseIDList("1, 2,,3")
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3}, ids)

	ids, err = ParseIDList("")
	require.NoError(t, err)
	assert.Nil(t, ids)

	_, err = ParseIDList("1,abc")
	assert.Error(t, err)

	_, err = ParseIDList("0")
	assert.Error(t, err)
}

func TestGetPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query string
		want  Pagination
	}{
		{query: "", want: Pagination{Page: 1, Limit: 10, Skip: 0}},
		{query: "page=3&limit=20", want: Pagination{Page: 3, Limit: 20, Skip: 40}},
		{query: "page=0&limit=-5", want: Pagination{Page: 1, Limit: 10, Skip: 0}},
		{query: "page=2&limit=500", want: Pagination{Page: 2, Limit: 100, Skip: 100}},
		{query: "page=x&limit=y", want: Pagination{Page: 1, Limit: 10, Skip: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/orders?"+tt.query, nil)
			assert.Equal(t, tt.want, GetPagination(c))
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c
}

func TestParseIDs(t *testing.T) {
	assert.Equal(t, []uint{3, 7, 3}, ParseIDs([]string{"3", " 7 ", "x", "0", "-2", "", "3"}))
	assert.Empty(t, ParseIDs(nil))
}

func TestParseParamID(t *testing.T) {
	c := testContext("/events/12")
	c.Params = gin.Params{{Key: "eventId", Value: "12"}}
	id, err := ParseParamID(c, "eventId")
	require.NoError(t, err)
	assert.EqualValues(t, 12, id)

	c.Params = gin.Params{{Key: "eventId", Value: "twelve"}}
	_, err = ParseParamID(c, "eventId")
	assert.Error(t, err)

	c.Params = gin.Params{{Key: "eventId", Value: "0"}}
	_, err = ParseParamID(c, "eventId")
	assert.Error(t, err)
}

func TestParsePagination(t *testing.T) {
	cases := []struct {
		query    string
		page     int
		pageSize int
	}{
		{"", 1, 0},
		{"?page=3&page_size=20", 3, 20},
		{"?page=-1&page_size=-5", 1, 0},
		{"?page=x&page_size=500", 1, 100},
	}
	for _, tc := range cases {
		page, size := ParsePagination(testContext("/admin/users" + tc.query))
		assert.Equal(t, tc.page, page, tc.query)
		assert.Equal(t, tc.pageSize, size, tc.query)
	}
}

func TestQueryFlag(t *testing.T) {
	c := testContext("/login?verified=1&reset=")
	assert.True(t, QueryFlag(c, "verified"))
	assert.False(t, QueryFlag(c, "reset"))
	assert.False(t, QueryFlag(c, "missing"))
}

package ratelimit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceyewan/idforge/response"
)

func newTestRouter(t *testing.T, limit Limit) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	l := newTestLimiter(t)
	limitFunc := func(*gin.Context) Limit { return limit }
	costFunc := func(c *gin.Context) int {
		n, _ := strconv.Atoi(c.DefaultQuery("n", "1"))
		return n
	}

	r := gin.New()
	r.GET("/ids/next", GinMiddleware(l, nil, limitFunc, nil), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/ids/batch", GinMiddleware(l, nil, limitFunc, costFunc), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func get(r *gin.Engine, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func TestGinMiddleware_SingleRequests(t *testing.T) {
	r := newTestRouter(t, Limit{Rate: 0.001, Burst: 2})

	assert.Equal(t, http.StatusOK, get(r, "/ids/next").Code)
	assert.Equal(t, http.StatusOK, get(r, "/ids/next").Code)

	w := get(r, "/ids/next")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	var body response.Response[response.ErrorData]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusTooManyRequests, body.Code)
	assert.Equal(t, ErrRateLimitExceeded.Error(), body.Message)
}

func TestGinMiddleware_BatchCost(t *testing.T) {
	r := newTestRouter(t, Limit{Rate: 0.001, Burst: 100})

	assert.Equal(t, http.StatusOK, get(r, "/ids/batch?n=80").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "/ids/batch?n=30").Code)
	assert.Equal(t, http.StatusOK, get(r, "/ids/batch?n=20").Code)

	// 非法的 n 放行，由处理函数校验
	assert.Equal(t, http.StatusOK, get(r, "/ids/batch?n=abc").Code)
}

func TestGinMiddleware_InvalidLimitPassesThrough(t *testing.T) {
	r := newTestRouter(t, Limit{})
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, get(r, "/ids/next").Code)
	}
}

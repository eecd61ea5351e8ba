package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(swipesTotal.WithLabelValues("like"))
	SwipeCommitted("like")
	SwipeCommitted("like")
	assert.Equal(t, before+2, testutil.ToFloat64(swipesTotal.WithLabelValues("like")))

	before = testutil.ToFloat64(swipePersistFailures)
	SwipePersistFailed()
	assert.Equal(t, before+1, testutil.ToFloat64(swipePersistFailures))

	before = testutil.ToFloat64(extractions.WithLabelValues("heuristic"))
	Extracted("heuristic")
	assert.Equal(t, before+1, testutil.ToFloat64(extractions.WithLabelValues("heuristic")))
}

func TestMiddlewareObservesRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware())
	router.GET("/api/swipes/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.CollectAndCount(httpDuration)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/swipes/abc", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, before+2, testutil.CollectAndCount(httpDuration))
}

package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordImageOp(t *testing.T) {
	before := testutil.ToFloat64(imageOps.WithLabelValues("delete", "error"))
	RecordImageOp("delete", errors.New("gone"))
	assert.Equal(t, before+1, testutil.ToFloat64(imageOps.WithLabelValues("delete", "error")))

	before = testutil.ToFloat64(imageOps.WithLabelValues("upload", "ok"))
	RecordImageOp("upload", nil)
	assert.Equal(t, before+1, testutil.ToFloat64(imageOps.WithLabelValues("upload", "ok")))
}

func TestInstrumentAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Instrument())
	r.GET("/api/shops/:shopId/products", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(Handler()))

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/shops/:shopId/products", "200"))

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/shops/7/products", nil)
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/shops/:shopId/products", "200")))

	rr = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/metrics", nil)
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "farm_market_http_requests_total")
}

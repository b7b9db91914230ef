package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserve(t *testing.T) {
	Init()
	Init()

	before := testutil.ToFloat64(validationsTotal.WithLabelValues(ResultInvalid))
	ObserveValidation(false, map[string]string{"zip": "missing"})
	assert.Equal(t, before+1, testutil.ToFloat64(validationsTotal.WithLabelValues(ResultInvalid)))
	assert.GreaterOrEqual(t, testutil.ToFloat64(fieldErrorsTotal.WithLabelValues("zip", "missing")), float64(1))

	before = testutil.ToFloat64(submissionsTotal.WithLabelValues(ResultDuplicate))
	ObserveSubmission(ResultDuplicate)
	assert.Equal(t, before+1, testutil.ToFloat64(submissionsTotal.WithLabelValues(ResultDuplicate)))
}

func TestGinMiddleware(t *testing.T) {
	Init()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/stations/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", Handler())

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/stations/:id", http.MethodGet, "200"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/stations/1", nil))
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/stations/:id", http.MethodGet, "200")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "evchart_http_requests_total")
}

package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricPrefix = "evchart_"

	ResultValid   = "valid"
	ResultInvalid = "invalid"

	ResultCreated   = "created"
	ResultDuplicate = "duplicate"
	ResultRejected  = "rejected"
	ResultError     = "error"
)

var (
	registerOnce sync.Once

	validationsTotal  *prometheus.CounterVec
	fieldErrorsTotal  *prometheus.CounterVec
	submissionsTotal  *prometheus.CounterVec
	httpRequestsTotal *prometheus.CounterVec
	httpLatency       *prometheus.HistogramVec
)

// Init 注册指标，可重复调用
func Init() {
	registerOnce.Do(func() {
		validationsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "validations_total",
				Help: "Total station validations by result",
			},
			[]string{"result"},
		)
		fieldErrorsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "field_errors_total",
				Help: "Total invalid fields by field key and status",
			},
			[]string{"field", "status"},
		)
		submissionsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "submissions_total",
				Help: "Total station create/update submissions by result",
			},
			[]string{"result"},
		)
		httpRequestsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_latency_seconds",
				Help:    "HTTP latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		)

		prometheus.MustRegister(
			validationsTotal,
			fieldErrorsTotal,
			submissionsTotal,
			httpRequestsTotal,
			httpLatency,
		)
	})
}

// ObserveValidation 记录一次校验结果，invalid 为字段键到状态名
func ObserveValidation(valid bool, invalid map[string]string) {
	if validationsTotal == nil {
		return
	}
	if valid {
		validationsTotal.WithLabelValues(ResultValid).Inc()
		return
	}
	validationsTotal.WithLabelValues(ResultInvalid).Inc()
	for field, status := range invalid {
		fieldErrorsTotal.WithLabelValues(field, status).Inc()
	}
}

// ObserveSubmission 记录一次提交结果
func ObserveSubmission(result string) {
	if submissionsTotal == nil {
		return
	}
	submissionsTotal.WithLabelValues(result).Inc()
}

// GinMiddleware 记录请求数量和耗时，route 使用路由模板
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if httpRequestsTotal == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpLatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Handler /metrics 接口
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// unmatchedRoute labels requests that matched no route.
const unmatchedRoute = "unknown"

// probePaths are polled by orchestrators and left out of request metrics.
var probePaths = map[string]struct{}{
	"/health": {},
	"/ready":  {},
}

type httpMetrics struct {
	requestCounter metric.Int64Counter
	durationHisto  metric.Float64Histogram
}

// HTTPMetricsMiddleware records request counts and durations labelled by method, route
// pattern and status code. Content ids never appear in labels since /v1/content/:type/:id
// is recorded as its pattern.
func HTTPMetricsMiddleware(meterProvider metric.MeterProvider, namespace string) gin.HandlerFunc {
	instruments, err := newHTTPMetrics(meterProvider, namespace)
	if err != nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		if _, ok := probePaths[c.FullPath()]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		attrs := metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("path", sanitizePath(c.FullPath())),
			attribute.String("status_code", strconv.Itoa(c.Writer.Status())),
		)
		instruments.requestCounter.Add(c.Request.Context(), 1, attrs)
		instruments.durationHisto.Record(c.Request.Context(), time.Since(start).Seconds(), attrs)
	}
}

func newHTTPMetrics(meterProvider metric.MeterProvider, namespace string) (*httpMetrics, error) {
	meter := meterProvider.Meter(namespace)

	requestCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_http_requests_total", namespace),
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_http_request_duration_seconds", namespace),
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &httpMetrics{requestCounter: requestCounter, durationHisto: durationHisto}, nil
}

// sanitizePath returns the route pattern, or unmatchedRoute when no route matched.
func sanitizePath(fullPath string) string {
	if fullPath == "" {
		return unmatchedRoute
	}
	return fullPath
}

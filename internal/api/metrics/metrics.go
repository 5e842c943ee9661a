// Package metrics defines the Prometheus collectors exposed on /metrics.
//
// Collectors register with the default registry when the package loads.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bandhub"

// Outcome label values shared by the flow counters.
const (
	ResultSuccess = "success"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// ── HTTP ─────────────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts answered requests.
// Labels: method, route (the registered path template or "unmatched"), code.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests, by method, route and status code.",
	},
	[]string{"method", "route", "code"},
)

// HTTPRequestDuration measures handler latency including error rendering.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// ── Auth ─────────────────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts by result.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts by result. A wrong password is "invalid".
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Content ──────────────────────────────────────────────────────────────────

var SongSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "song_submissions_total",
		Help:      "Total number of song submissions, by result.",
	},
	[]string{"result"},
)

var WebboardPostsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webboard_posts_total",
		Help:      "Total number of webboard posts, by result.",
	},
	[]string{"result"},
)

// Middleware records HTTPRequestsTotal and HTTPRequestDuration. Handler
// errors are rendered here through c.Error so the final status is known.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			code := strconv.Itoa(c.Response().Status)

			HTTPRequestsTotal.WithLabelValues(method, route, code).Inc()
			HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// Handler serves the default registry.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

// ErrResult maps an error to a result label.
func ErrResult(err error, invalid ...error) string {
	if err == nil {
		return ResultSuccess
	}
	for _, target := range invalid {
		if errors.Is(err, target) {
			return ResultInvalid
		}
	}
	return ResultError
}

package middleware

import (
	"net/http"
	"time"

	"github.com/vestiplan/vestiplan-backend/pkg/metrics"
)

// Metrics records per-route request duration and status counts. The chi
// route pattern keeps label cardinality bounded.
func Metrics(httpMetrics *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if httpMetrics == nil {
				next.ServeHTTP(w, r)
				return
			}

			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			httpMetrics.ObserveRequest(routePattern(r), r.Method, rec.status, time.Since(start))
		})
	}
}

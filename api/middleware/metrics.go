package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/marisolvega/vendorhub-backend/pkg/metrics"
)

// Metrics records per-route request counts and latency using the chi
// route pattern so path ids do not explode label cardinality.
func Metrics(m *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m == nil {
				next.ServeHTTP(w, r)
				return
			}

			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(rec, r)

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			m.Observe(r.Method, routePattern(r), strconv.Itoa(status), time.Since(start))
		})
	}
}

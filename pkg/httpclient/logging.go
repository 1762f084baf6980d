package httpclient

import (
	"net/http"
	"time"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// LogRequests returns a middleware that logs each outbound request with its
// method, URL, status, and duration. The logger is taken from the request
// context via zctx, so session-scoped fields ride along automatically.
func LogRequests() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			lg := zctx.From(req.Context())
			start := time.Now()

			resp, err := next.RoundTrip(req)
			elapsed := time.Since(start)

			if err != nil {
				lg.Warn("Request failed",
					zap.String("method", req.Method),
					zap.String("url", req.URL.String()),
					zap.Duration("duration", elapsed),
					zap.Error(err))
				return nil, err
			}

			lg.Debug("Request completed",
				zap.String("method", req.Method),
				zap.String("url", req.URL.String()),
				zap.Int("status", resp.StatusCode),
				zap.Duration("duration", elapsed))
			return resp, nil
		})
	}
}

// Package httpclient assembles the outbound HTTP transport stack: request
// IDs, request logging, and OpenTelemetry instrumentation layered as
// RoundTripper middleware over a base transport.
package httpclient

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Middleware wraps an http.RoundTripper with additional behaviour.
type Middleware func(http.RoundTripper) http.RoundTripper

// roundTripperFunc adapts a function to http.RoundTripper.
type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Wrap applies middlewares to base so that the first middleware in the list
// is the outermost (sees the request first).
func Wrap(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	rt := base
	for i := len(mws) - 1; i >= 0; i-- {
		rt = mws[i](rt)
	}
	return rt
}

// New returns an *http.Client with the standard storefront transport stack:
// request ID injection, request logging, and otel tracing over the default
// transport.
func New(timeout time.Duration, userAgent string) *http.Client {
	base := otelhttp.NewTransport(http.DefaultTransport)
	return &http.Client{
		Timeout: timeout,
		Transport: Wrap(base,
			RequestID(),
			UserAgent(userAgent),
			LogRequests(),
		),
	}
}

// UserAgent returns a middleware that sets the User-Agent header when the
// request does not carry one.
func UserAgent(ua string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if ua != "" && req.Header.Get("User-Agent") == "" {
				req = cloneRequest(req)
				req.Header.Set("User-Agent", ua)
			}
			return next.RoundTrip(req)
		})
	}
}

// cloneRequest shallow-copies req with a deep copy of its headers.
// RoundTrippers must not mutate the caller's request.
func cloneRequest(req *http.Request) *http.Request {
	out := req.Clone(req.Context())
	return out
}

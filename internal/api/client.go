// Package api is the HTTP client for the remote commerce API. It maps JSON
// wire shapes to the domain types and implements the interfaces the domain
// packages consume (product.Catalog, checkout.Submitter, siteconfig.Fetcher).
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-faster/errors"
)

// StatusError is returned for non-2xx API responses that are not covered by
// a more specific sentinel.
type StatusError struct {
	Status int
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: %s returned status %d", e.URL, e.Status)
}

// Client talks to the commerce API under a single base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client for the API at baseURL. The *http.Client
// carries the transport middleware stack (request IDs, logging, tracing);
// see pkg/httpclient.
func NewClient(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    hc,
	}
}

// getJSON performs a GET and decodes a 2xx JSON body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "GET %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Status: resp.StatusCode, URL: path}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s response", path)
	}
	return nil
}

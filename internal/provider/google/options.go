package google

import (
	"log"
	"net/http"

	"golang.org/x/oauth2"
)

// Option configures the Google provider.
type Option func(*options)

type options struct {
	httpClient  *http.Client
	endpoint    *oauth2.Endpoint
	userInfoURL string
	logger      *log.Logger
}

// WithHTTPClient sets the HTTP client used for userinfo requests.
// Useful for testing with httptest servers or injecting custom
// transports.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithEndpoint overrides Google's authorization and token endpoints.
func WithEndpoint(endpoint oauth2.Endpoint) Option {
	return func(o *options) {
		o.endpoint = &endpoint
	}
}

// WithUserInfoEndpoint overrides the protected userinfo resource URL.
func WithUserInfoEndpoint(url string) Option {
	return func(o *options) {
		o.userInfoURL = url
	}
}

// WithLogger enables debug diagnostics. Without a logger the adapter is
// silent.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

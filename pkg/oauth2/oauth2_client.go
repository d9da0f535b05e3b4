// Package oauth2 provides an abstraction over the golang.org/x/oauth2
// client. It covers the two RFC 6749 operations a provider adapter
// delegates: building the authorization-code consent URL and exchanging
// a code for a token. The interface exists so handler and adapter tests
// can substitute a mock.
package oauth2

import (
	"context"

	"golang.org/x/oauth2"
)

// Oauth2Client defines the OAuth2 client capability consumed by
// provider adapters.
type Oauth2Client interface {
	// AuthCodeURL builds the consent-page URL for the given state.
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string

	// Exchange trades an authorization code for an access token.
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)

	// Extra returns an additional field of the token response, such as
	// "id_token".
	Extra(key string, token *oauth2.Token) interface{}
}

// Client implements Oauth2Client on top of an oauth2.Config. The config
// is fixed at construction and never mutated.
type Client struct {
	cfg *oauth2.Config
}

func NewClient(cfg *oauth2.Config) *Client {
	return &Client{cfg: cfg}
}

func (c *Client) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return c.cfg.AuthCodeURL(state, opts...)
}

func (c *Client) Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error) {
	return c.cfg.Exchange(ctx, code, opts...)
}

func (c *Client) Extra(key string, token *oauth2.Token) interface{} {
	return token.Extra(key)
}

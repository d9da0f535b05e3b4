// Package provider defines the contract between the host application
// and a pluggable OAuth identity provider. A concrete provider (Google,
// others) implements ServiceProvider and is selected by host
// configuration; the host never talks to a provider endpoint directly.
package provider

import "context"

// Token is an access token returned by a provider's token endpoint.
// Secret is unused in OAuth 2.0 and exists for symmetry with the OAuth1
// half of the host interface. Raw carries the token response body,
// which may itself contain a signed id_token used for legacy identity
// linking. A Token is immutable once constructed.
type Token struct {
	Token  string
	Secret string
	Raw    string
}

// UserInfo is the normalized user profile fetched from a provider.
// ExternalID is required; the remaining fields are optional.
// ClaimedIdentity is populated only when linking to existing OpenID
// accounts is enabled and the provider embedded a legacy identifier.
type UserInfo struct {
	ExternalID      string
	Email           string
	DisplayName     string
	ClaimedIdentity string
}

// ServiceProvider is the operation set every identity provider
// implements. All operations are safe for concurrent use: providers
// hold only configuration fixed at construction.
type ServiceProvider interface {
	// GetRequestToken is the OAuth1 entry point. OAuth2 providers
	// always fail with ErrRequestTokenUnsupported.
	GetRequestToken() (*Token, error)

	// GetAuthorizationURL builds the provider's consent-page URL for
	// the given host-generated state. The same inputs always yield the
	// same URL.
	GetAuthorizationURL(state string) (string, error)

	// GetAccessToken exchanges the one-time verifier (authorization
	// code) for an access token. The verifier is not validated
	// locally; provider-side rejections propagate as exchange errors.
	GetAccessToken(ctx context.Context, verifier string) (*Token, error)

	// GetUserInfo fetches the user profile authenticated by token.
	GetUserInfo(ctx context.Context, token *Token) (*UserInfo, error)

	// GetVersion returns the protocol version, e.g. "2.0".
	GetVersion() string

	// GetName returns the human-readable provider name.
	GetName() string
}

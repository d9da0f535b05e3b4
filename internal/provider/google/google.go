// Package google implements the Google OAuth2 identity provider.
//
// Besides the plain authorization-code flow it supports linking to
// accounts created under the legacy OpenID protocol: when enabled, the
// consent URL carries an openid.realm parameter and the userinfo result
// includes the legacy claimed identifier harvested from the id_token
// returned by the token endpoint.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/josephsnyder/gerrit-oauth-provider/internal/provider"
	oauth2client "github.com/josephsnyder/gerrit-oauth-provider/pkg/oauth2"
)

const (
	providerName    = "Google OAuth2"
	providerVersion = "2.0"

	userInfoEndpoint = "https://www.googleapis.com/userinfo/v2/me"
)

// baseScopes is the scope set requested from Google. ScopeOpenID is
// prepended when linking to existing OpenID accounts is enabled, which
// makes the token endpoint return an id_token.
var baseScopes = []string{"email", "profile"}

// Config holds the host-supplied provider configuration. All fields are
// read once at construction.
type Config struct {
	ClientID     string
	ClientSecret string

	// CanonicalWebURL is the host's base URL. The OAuth callback is
	// CanonicalWebURL + "oauth"; with linking enabled it also becomes
	// the openid.realm value.
	CanonicalWebURL string

	// LinkToExistingOpenIDAccounts requests the legacy claimed
	// identifier so new OAuth logins can be linked to accounts created
	// under the old OpenID protocol.
	LinkToExistingOpenIDAccounts bool
}

// Service is the Google provider adapter. It holds only immutable
// configuration and is safe for concurrent use.
type Service struct {
	client                       oauth2client.Oauth2Client
	httpClient                   *http.Client
	userInfoURL                  string
	canonicalWebURL              string
	linkToExistingOpenIDAccounts bool
	logger                       *log.Logger
}

// New validates cfg and builds the adapter. Missing credentials or an
// unusable canonical URL are rejected here; the per-operation paths
// assume a well-formed configuration.
func New(cfg Config, opts ...Option) (*Service, error) {
	if cfg.ClientID == "" {
		return nil, provider.ErrMissingClientID
	}
	if cfg.ClientSecret == "" {
		return nil, provider.ErrMissingClientSecret
	}
	u, err := url.Parse(cfg.CanonicalWebURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", provider.ErrInvalidCanonicalURL, cfg.CanonicalWebURL)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	canonical := strings.TrimRight(cfg.CanonicalWebURL, "/") + "/"

	scopes := baseScopes
	if cfg.LinkToExistingOpenIDAccounts {
		scopes = append([]string{oidc.ScopeOpenID}, baseScopes...)
	}

	endpoint := google.Endpoint
	if o.endpoint != nil {
		endpoint = *o.endpoint
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	userInfoURL := userInfoEndpoint
	if o.userInfoURL != "" {
		userInfoURL = o.userInfoURL
	}

	s := &Service{
		client: oauth2client.NewClient(&oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  canonical + "oauth",
			Scopes:       scopes,
			Endpoint:     endpoint,
		}),
		httpClient:                   httpClient,
		userInfoURL:                  userInfoURL,
		canonicalWebURL:              canonical,
		linkToExistingOpenIDAccounts: cfg.LinkToExistingOpenIDAccounts,
		logger:                       o.logger,
	}
	s.debugf("canonicalWebUrl=%s", s.canonicalWebURL)
	s.debugf("scope=%s", strings.Join(scopes, " "))
	s.debugf("linkToExistingOpenIDAccounts=%t", s.linkToExistingOpenIDAccounts)
	return s, nil
}

// GetRequestToken always fails: request tokens exist only in OAuth 1.0.
func (s *Service) GetRequestToken() (*provider.Token, error) {
	return nil, provider.ErrRequestTokenUnsupported
}

// GetAuthorizationURL builds the consent-page URL for the given state.
// With linking enabled the percent-encoded canonical URL is appended as
// the openid.realm parameter so Google includes the legacy claimed
// identifier in the issued id_token.
func (s *Service) GetAuthorizationURL(state string) (string, error) {
	u := s.client.AuthCodeURL(state)
	if s.linkToExistingOpenIDAccounts {
		u += "&openid.realm=" + url.QueryEscape(s.canonicalWebURL)
	}
	s.debugf("authorization URL=%s", u)
	return u, nil
}

// GetAccessToken exchanges the verifier for an access token. The
// returned Token's Raw field carries the token response fields needed
// by the legacy identity lookup, in particular id_token.
func (s *Service) GetAccessToken(ctx context.Context, verifier string) (*provider.Token, error) {
	tok, err := s.client.Exchange(ctx, verifier)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	idToken, _ := s.client.Extra("id_token", tok).(string)
	raw, _ := json.Marshal(tokenResponse{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
		IDToken:     idToken,
	})
	return &provider.Token{Token: tok.AccessToken, Raw: string(raw)}, nil
}

// GetUserInfo fetches the user profile from the userinfo endpoint.
// The response must be a 200 with a JSON object carrying a non-null id;
// email and name are optional and degrade to empty. With linking
// enabled, the legacy claimed identity from the token's raw response is
// attached.
func (s *Service) GetUserInfo(ctx context.Context, token *provider.Token) (*provider.UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read userinfo response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d (%s) for request %s",
			provider.ErrRequestFailed, resp.StatusCode, body, s.userInfoURL)
	}

	var profile map[string]interface{}
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON '%s'", provider.ErrInvalidResponse, body)
	}

	id, ok := stringField(profile, "id")
	if !ok {
		return nil, provider.ErrMissingUserID
	}

	info := &provider.UserInfo{ExternalID: id}
	info.Email, _ = stringField(profile, "email")
	info.DisplayName, _ = stringField(profile, "name")

	if s.linkToExistingOpenIDAccounts {
		claimed, err := lookupClaimedIdentity(token.Raw)
		if err != nil {
			return nil, err
		}
		info.ClaimedIdentity = claimed
		s.debugf("openid_id=%s", claimed)
	}
	return info, nil
}

// GetVersion returns the OAuth protocol version.
func (s *Service) GetVersion() string {
	return providerVersion
}

// GetName returns the human-readable provider name.
func (s *Service) GetName() string {
	return providerName
}

func (s *Service) debugf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Printf("OAuth2: "+format, args...)
	}
}

// tokenResponse is the subset of the token endpoint response preserved
// in Token.Raw.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	IDToken     string `json:"id_token,omitempty"`
}

// stringField returns obj[key] rendered as a string. Absent, null and
// non-scalar values report false; numeric identifiers are rendered in
// decimal.
func stringField(obj map[string]interface{}, key string) (string, bool) {
	switch v := obj[key].(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	}
	return "", false
}

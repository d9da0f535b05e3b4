package provider

import "errors"

var (
	// ErrRequestTokenUnsupported is returned by GetRequestToken on
	// OAuth2 providers: the request-token workflow exists only in
	// OAuth 1.0.
	ErrRequestTokenUnsupported = errors.New("provider: request token workflow not supported in OAuth 2.0")

	// ErrMissingClientID is returned when a provider is constructed
	// without a client id.
	ErrMissingClientID = errors.New("provider: missing client id")

	// ErrMissingClientSecret is returned when a provider is constructed
	// without a client secret.
	ErrMissingClientSecret = errors.New("provider: missing client secret")

	// ErrInvalidCanonicalURL is returned when the configured canonical
	// web URL cannot be parsed. Treated as fatal misconfiguration.
	ErrInvalidCanonicalURL = errors.New("provider: invalid canonical web url")

	// ErrRequestFailed is returned when the userinfo endpoint answers
	// with a non-200 status. The wrapped message carries status, body
	// and URL; retry policy is the caller's decision.
	ErrRequestFailed = errors.New("provider: userinfo request failed")

	// ErrInvalidResponse is returned when the userinfo response body is
	// not a JSON object.
	ErrInvalidResponse = errors.New("provider: response is not a JSON object")

	// ErrMissingUserID is returned when the userinfo response lacks a
	// non-null id field.
	ErrMissingUserID = errors.New("provider: response doesn't contain id field")

	// ErrMalformedIDToken is returned when a present id_token is not a
	// three-part dot-separated structure. The lookup is only invoked
	// when an id_token was confirmed present, so this is a contract
	// violation rather than a soft miss.
	ErrMalformedIDToken = errors.New("provider: malformed id_token")
)

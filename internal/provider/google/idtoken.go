package google

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/josephsnyder/gerrit-oauth-provider/internal/provider"
)

// lookupClaimedIdentity harvests the legacy OpenID identifier from a
// token endpoint response. raw must be a JSON object with an id_token
// field holding a header.payload.signature structure whose payload is a
// JSON object; the openid_id claim, when present, is the identifier.
//
// The token is not verified: no signature, issuer, audience or expiry
// checks. It was returned by the same provider exchange that just
// authenticated the user, and deployments relying on the legacy-linking
// semantics depend on exactly this behavior.
//
// A raw response without a usable id_token, or a payload without
// openid_id, yields an empty identifier and no error. An id_token that
// is present but not a three-part structure is a contract violation and
// fails with ErrMalformedIDToken.
func lookupClaimedIdentity(raw string) (string, error) {
	var body map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		return "", nil
	}
	idToken, ok := body["id_token"].(string)
	if !ok || idToken == "" {
		return "", nil
	}

	payload, err := decodePayload(idToken)
	if err != nil {
		return "", err
	}
	if len(payload) == 0 {
		return "", nil
	}

	var claims map[string]interface{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return "", nil
	}
	if id, ok := claims["openid_id"].(string); ok {
		return id, nil
	}
	return "", nil
}

// decodePayload extracts and base64-decodes the middle segment of a
// three-part signed token.
func decodePayload(idToken string) ([]byte, error) {
	parts := strings.Split(idToken, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: want 3 dot-separated segments, got %d",
			provider.ErrMalformedIDToken, len(parts))
	}
	return decodeSegment(parts[1])
}

// decodeSegment accepts both the URL-safe and standard base64
// alphabets, padded or not, matching the lenient codec the legacy
// tokens were produced for.
func decodeSegment(seg string) ([]byte, error) {
	seg = strings.TrimRight(seg, "=")
	if b, err := base64.RawURLEncoding.DecodeString(seg); err == nil {
		return b, nil
	}
	b, err := base64.RawStdEncoding.DecodeString(seg)
	if err != nil {
		return nil, fmt.Errorf("%w: payload segment is not base64", provider.ErrMalformedIDToken)
	}
	return b, nil
}

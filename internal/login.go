package internal

import (
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/josephsnyder/gerrit-oauth-provider/internal/provider"
	"github.com/josephsnyder/gerrit-oauth-provider/pkg/encryptor"
	"github.com/josephsnyder/gerrit-oauth-provider/pkg/random"
	"github.com/josephsnyder/gerrit-oauth-provider/pkg/redis"
	"github.com/josephsnyder/gerrit-oauth-provider/pkg/serializer"
)

// stateTTL bounds how long a login attempt may take between the
// redirect to the provider and the callback.
const stateTTL = 5 * time.Minute

// AuthState is the per-login record stored under the state key while
// the user is away at the provider's consent page.
type AuthState struct {
	Provider string `json:"provider"`
}

// AuthService drives the authorization-code flow against a registered
// identity provider: /login/{provider} redirects to the consent page,
// /oauth consumes the callback.
type AuthService struct {
	providers  *provider.Registry
	cacheStore redis.RedisStore
	randomGen  random.RandomGenerator
	serializer serializer.JSONSerializer
	encryptor  encryptor.AESEncryptor
	logger     *log.Logger
	limiter    *rate.Limiter
}

func NewAuthService(providers *provider.Registry, cacheStore redis.RedisStore,
	randomGen random.RandomGenerator, ser serializer.JSONSerializer,
	enc encryptor.AESEncryptor, logger *log.Logger) *AuthService {
	return &AuthService{
		providers:  providers,
		cacheStore: cacheStore,
		randomGen:  randomGen,
		serializer: ser,
		encryptor:  enc,
		logger:     logger,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 10),
	}
}

// Login starts an authentication attempt: it records the state in the
// cache store and redirects the user to the provider's consent page.
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	name := r.URL.Path[len("/login/"):]
	if name == "" {
		http.Error(w, "Provider is required", http.StatusBadRequest)
		return
	}

	p, err := s.providers.Get(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	state, err := s.randomGen.String(32)
	if err != nil {
		http.Error(w, "Failed to generate state", http.StatusInternalServerError)
		return
	}

	encodedState, err := s.serializer.Encode(&AuthState{Provider: name})
	if err != nil {
		http.Error(w, "Failed to serialize state", http.StatusInternalServerError)
		return
	}

	if err := s.cacheStore.Set(state, encodedState, stateTTL); err != nil {
		http.Error(w, "Failed to save state", http.StatusInternalServerError)
		return
	}

	authURL, err := p.GetAuthorizationURL(state)
	if err != nil {
		s.logger.Printf("Failed to build authorization URL: %v", err)
		http.Error(w, "Failed to build authorization URL", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, authURL, http.StatusTemporaryRedirect)
}

// LoginCallback consumes the provider redirect: it validates the state,
// exchanges the verifier code, fetches the user profile, and issues the
// encrypted session cookie with the identity as the response body.
func (s *AuthService) LoginCallback(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	state := r.URL.Query().Get("state")
	encodedState, err := s.cacheStore.Get(state)
	if err != nil {
		http.Error(w, "Invalid state", http.StatusBadRequest)
		return
	}
	// One-shot: a replayed callback must not find the state again.
	if err := s.cacheStore.Delete(state); err != nil {
		s.logger.Printf("Failed to delete state %s: %v", state, err)
	}

	authState := &AuthState{}
	if err := s.serializer.Decode(encodedState, authState); err != nil {
		http.Error(w, "Error deserializing state", http.StatusInternalServerError)
		return
	}

	p, err := s.providers.Get(authState.Provider)
	if err != nil {
		http.Error(w, "Invalid provider", http.StatusBadRequest)
		return
	}

	token, err := p.GetAccessToken(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		s.logger.Printf("Failed to exchange token: %v", err)
		http.Error(w, "Failed to exchange token", http.StatusInternalServerError)
		return
	}

	userInfo, err := p.GetUserInfo(r.Context(), token)
	if err != nil {
		s.logger.Printf("Failed to fetch user info: %v", err)
		http.Error(w, "Failed to fetch user info", http.StatusInternalServerError)
		return
	}

	encodedToken, err := s.serializer.Encode(token)
	if err != nil {
		http.Error(w, "Failed to serialize token", http.StatusInternalServerError)
		return
	}

	encryptedToken, err := s.encryptor.Encrypt(encodedToken)
	if err != nil {
		http.Error(w, "Failed to encrypt token", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    encryptedToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	body, err := s.serializer.Encode(&identityResponse{
		ExternalID:      userInfo.ExternalID,
		Email:           userInfo.Email,
		DisplayName:     userInfo.DisplayName,
		ClaimedIdentity: userInfo.ClaimedIdentity,
	})
	if err != nil {
		http.Error(w, "Failed to serialize identity", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// identityResponse is the JSON shape returned to the host after a
// successful login.
type identityResponse struct {
	ExternalID      string `json:"external_id"`
	Email           string `json:"email,omitempty"`
	DisplayName     string `json:"display_name,omitempty"`
	ClaimedIdentity string `json:"claimed_identity,omitempty"`
}

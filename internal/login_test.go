package internal

import (
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/josephsnyder/gerrit-oauth-provider/internal/provider"
	providermock "github.com/josephsnyder/gerrit-oauth-provider/tools/mock/provider"
	encryptormock "github.com/josephsnyder/gerrit-oauth-provider/tools/mock/pkg/encryptor"
	randommock "github.com/josephsnyder/gerrit-oauth-provider/tools/mock/pkg/random"
	redismock "github.com/josephsnyder/gerrit-oauth-provider/tools/mock/pkg/redis"
	serializermock "github.com/josephsnyder/gerrit-oauth-provider/tools/mock/pkg/serializer"
)

type authServiceMocks struct {
	provider   *providermock.MockServiceProvider
	redis      *redismock.MockRedisClient
	random     *randommock.MockRandom
	serializer *serializermock.MockSerialization
	encryptor  *encryptormock.MockAesEncryptor
}

func newTestAuthService() (*AuthService, *authServiceMocks) {
	m := &authServiceMocks{
		provider:   &providermock.MockServiceProvider{},
		redis:      &redismock.MockRedisClient{},
		random:     &randommock.MockRandom{},
		serializer: &serializermock.MockSerialization{},
		encryptor:  &encryptormock.MockAesEncryptor{},
	}
	registry := provider.NewRegistry()
	registry.Register("google", m.provider)
	s := NewAuthService(registry, m.redis, m.random, m.serializer, m.encryptor,
		log.New(io.Discard, "", 0))
	return s, m
}

func TestLogin_WhenAllSystemsOperational_ShouldRedirectToAuthProvider(t *testing.T) {
	s, m := newTestAuthService()
	encodedState := []byte(`{"provider":"google"}`)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/login/google", nil)

	m.random.On("String", int64(32)).Return("state123", nil).Once()
	m.serializer.On("Encode", mock.MatchedBy(func(as *AuthState) bool {
		return as.Provider == "google"
	})).Return(encodedState, nil).Once()
	m.redis.On("Set", "state123", encodedState, 5*time.Minute).Return(nil).Once()

	expectedURL := "https://accounts.example/auth?state=state123"
	m.provider.On("GetAuthorizationURL", "state123").Return(expectedURL, nil).Once()

	s.Login(w, r)

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, expectedURL, w.Header().Get("Location"))

	m.random.AssertExpectations(t)
	m.serializer.AssertExpectations(t)
	m.redis.AssertExpectations(t)
	m.provider.AssertExpectations(t)
}

func TestLogin_WhenProviderUnknown_ShouldRejectRequest(t *testing.T) {
	s, _ := newTestAuthService()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/login/github", nil)

	s.Login(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_WhenProviderMissing_ShouldRejectRequest(t *testing.T) {
	s, _ := newTestAuthService()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/login/", nil)

	s.Login(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginCallback_WhenValidStateAndCode_ShouldSetSessionCookie(t *testing.T) {
	s, m := newTestAuthService()
	encodedState := []byte(`{"provider":"google"}`)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/oauth?state=state123&code=code123", nil)

	m.redis.On("Get", "state123").Return(encodedState, nil).Once()
	m.redis.On("Delete", "state123").Return(nil).Once()
	m.serializer.On("Decode", encodedState, mock.AnythingOfType("*internal.AuthState")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*AuthState).Provider = "google"
		}).Return(nil).Once()

	token := &provider.Token{Token: "access123", Raw: `{"access_token":"access123"}`}
	m.provider.On("GetAccessToken", mock.Anything, "code123").Return(token, nil).Once()

	userInfo := &provider.UserInfo{ExternalID: "42", Email: "a@b.com", DisplayName: "A B"}
	m.provider.On("GetUserInfo", mock.Anything, token).Return(userInfo, nil).Once()

	tokenBytes := []byte("serialized-token")
	m.serializer.On("Encode", mock.AnythingOfType("*provider.Token")).Return(tokenBytes, nil).Once()
	m.encryptor.On("Encrypt", tokenBytes).Return("encrypted-token", nil).Once()

	identityBytes := []byte(`{"external_id":"42","email":"a@b.com","display_name":"A B"}`)
	m.serializer.On("Encode", mock.AnythingOfType("*internal.identityResponse")).
		Return(identityBytes, nil).Once()

	s.LoginCallback(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `"external_id":"42"`)

	cookies := w.Result().Cookies()
	if assert.Len(t, cookies, 1) {
		assert.Equal(t, "session_token", cookies[0].Name)
		assert.Equal(t, "encrypted-token", cookies[0].Value)
	}

	m.redis.AssertExpectations(t)
	m.serializer.AssertExpectations(t)
	m.provider.AssertExpectations(t)
	m.encryptor.AssertExpectations(t)
}

func TestLoginCallback_WhenStateUnknown_ShouldRejectRequest(t *testing.T) {
	s, m := newTestAuthService()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/oauth?state=forged&code=code123", nil)

	m.redis.On("Get", "forged").Return(nil, errors.New("redis: nil")).Once()

	s.LoginCallback(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	m.redis.AssertExpectations(t)
}

func TestLoginCallback_WhenExchangeFails_ShouldReportServerError(t *testing.T) {
	s, m := newTestAuthService()
	encodedState := []byte(`{"provider":"google"}`)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/oauth?state=state123&code=badcode", nil)

	m.redis.On("Get", "state123").Return(encodedState, nil).Once()
	m.redis.On("Delete", "state123").Return(nil).Once()
	m.serializer.On("Decode", encodedState, mock.AnythingOfType("*internal.AuthState")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*AuthState).Provider = "google"
		}).Return(nil).Once()
	m.provider.On("GetAccessToken", mock.Anything, "badcode").
		Return(nil, errors.New("invalid_grant")).Once()

	s.LoginCallback(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	m.provider.AssertExpectations(t)
}

func TestLoginCallback_WhenUserInfoFails_ShouldReportServerError(t *testing.T) {
	s, m := newTestAuthService()
	encodedState := []byte(`{"provider":"google"}`)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/oauth?state=state123&code=code123", nil)

	m.redis.On("Get", "state123").Return(encodedState, nil).Once()
	m.redis.On("Delete", "state123").Return(nil).Once()
	m.serializer.On("Decode", encodedState, mock.AnythingOfType("*internal.AuthState")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*AuthState).Provider = "google"
		}).Return(nil).Once()

	token := &provider.Token{Token: "access123"}
	m.provider.On("GetAccessToken", mock.Anything, "code123").Return(token, nil).Once()
	m.provider.On("GetUserInfo", mock.Anything, token).
		Return(nil, provider.ErrMissingUserID).Once()

	s.LoginCallback(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	m.provider.AssertExpectations(t)
}

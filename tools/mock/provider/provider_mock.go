package provider

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/josephsnyder/gerrit-oauth-provider/internal/provider"
)

type MockServiceProvider struct {
	mock.Mock
}

func (m *MockServiceProvider) GetRequestToken() (*provider.Token, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Token), args.Error(1)
}

func (m *MockServiceProvider) GetAuthorizationURL(state string) (string, error) {
	args := m.Called(state)
	return args.String(0), args.Error(1)
}

func (m *MockServiceProvider) GetAccessToken(ctx context.Context, verifier string) (*provider.Token, error) {
	args := m.Called(ctx, verifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Token), args.Error(1)
}

func (m *MockServiceProvider) GetUserInfo(ctx context.Context, token *provider.Token) (*provider.UserInfo, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.UserInfo), args.Error(1)
}

func (m *MockServiceProvider) GetVersion() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockServiceProvider) GetName() string {
	args := m.Called()
	return args.String(0)
}

package encryptor

import (
	"github.com/stretchr/testify/mock"
)

type MockAesEncryptor struct {
	mock.Mock
}

func (m *MockAesEncryptor) Encrypt(plaintext []byte) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *MockAesEncryptor) Decrypt(ciphertext string) ([]byte, error) {
	args := m.Called(ciphertext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

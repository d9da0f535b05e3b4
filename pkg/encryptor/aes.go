// Package encryptor provides AES-GCM encryption for the session cookie
// value.
package encryptor

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

type AESEncryptor interface {
	Encrypt(plaintext []byte) (string, error)
	Decrypt(ciphertext string) ([]byte, error)
}

// Aes implements AESEncryptor with AES-GCM and a fresh random nonce per
// message.
type Aes struct {
	key []byte
}

// NewAesEncryptor creates an encryptor from a 16, 24 or 32 byte key.
func NewAesEncryptor(key string) (*Aes, error) {
	keyBytes := []byte(key)
	if len(keyBytes) != 16 && len(keyBytes) != 24 && len(keyBytes) != 32 {
		return nil, fmt.Errorf("key must be 16, 24, or 32 bytes long")
	}
	return &Aes{key: keyBytes}, nil
}

// Encrypt encrypts plaintext and returns a base64 encoded string with
// the nonce prepended.
func (e *Aes) Encrypt(plaintext []byte) (string, error) {
	block, err := aes.NewCipher(e.key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	encrypted := gcm.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(encrypted), nil
}

// Decrypt decrypts a base64 encoded ciphertext produced by Encrypt.
func (e *Aes) Decrypt(ciphertext string) ([]byte, error) {
	block, err := aes.NewCipher(e.key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	decoded, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(decoded) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, sealed := decoded[:nonceSize], decoded[nonceSize:]
	return gcm.Open(nil, nonce, sealed, nil)
}

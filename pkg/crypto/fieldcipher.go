// Package crypto provides the field-level encryption collaborator used to
// persist triage results. It wraps a standard authenticated-encryption
// primitive; nothing here participates in triage decisions.
package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

var errCiphertextTooShort = errors.New("ciphertext shorter than nonce")

// FieldCipher encrypts and decrypts small payloads with XChaCha20-Poly1305.
// The nonce is generated per message and prepended to the ciphertext.
type FieldCipher struct {
	aead cipher.AEAD
}

// NewFieldCipher builds a cipher from a 32-byte key.
func NewFieldCipher(key []byte) (*FieldCipher, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("init field cipher: %w", err)
	}
	return &FieldCipher{aead: aead}, nil
}

// Encrypt seals the plaintext under a fresh random nonce.
func (c *FieldCipher) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return c.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens a payload produced by Encrypt.
func (c *FieldCipher) Decrypt(ciphertext []byte) ([]byte, error) {
	size := c.aead.NonceSize()
	if len(ciphertext) < size {
		return nil, errCiphertextTooShort
	}
	plain, err := c.aead.Open(nil, ciphertext[:size], ciphertext[size:], nil)
	if err != nil {
		return nil, fmt.Errorf("open field ciphertext: %w", err)
	}
	return plain, nil
}

// Package cryptox implements the symmetric cipher protecting secret payloads
// at rest. A single Cipher is built from configuration at process start and
// injected into every service that stores or reads secrets; it is never
// reconstructed per call.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/drivenpass/drivenpass/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	keyLength = 32 // AES-256
	nonceSize = 12 // standard GCM nonce
	kdfIters  = 10000
)

// keySalt is fixed: the derived key must be stable across restarts so that
// previously persisted ciphertext stays readable.
var keySalt = []byte("drivenpass.cipher.v1")

// Cipher encrypts and decrypts secret payloads with a process-wide key
// derived from a configured secret string.
type Cipher struct {
	aead cipher.AEAD
}

// New derives a 256-bit AES key from secret with PBKDF2-SHA256 and returns a
// ready-to-use Cipher.
func New(secret string) (*Cipher, error) {
	key := pbkdf2.Key([]byte(secret), keySalt, kdfIters, keyLength, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cipher init: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher init: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// Encrypt seals plaintext with AES-GCM under a fresh random nonce and returns
// base64(nonce || ciphertext).
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("nonce generation: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Any value that was not produced by Encrypt under
// the same key fails with an error matching common.ErrCipher.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: invalid encoding", common.ErrCipher)
	}

	if len(raw) < nonceSize {
		return "", fmt.Errorf("%w: ciphertext too short", common.ErrCipher)
	}

	plaintext, err := c.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrCipher, err)
	}

	return string(plaintext), nil
}

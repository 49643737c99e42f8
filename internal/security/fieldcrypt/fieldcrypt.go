// Package fieldcrypt protects the employee document number: reversible
// encryption for the stored value plus a deterministic index hash so
// uniqueness can be answered without ever decrypting rows.
package fieldcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	nonceSize  = 12 // AES-GCM standard nonce size (96 bits)
	keyLength  = 32 // 32 bytes => AES-256
	legacyPref = "ENCRYPTED_"
)

var ErrInvalidKey = errors.New("fieldcrypt: key must be 32 bytes (base64 or hex encoded)")

// Cipher performs field encryption with a key injected at construction time.
// The key is supplied at process start and rotated out of band; it is never
// compiled into the binary.
type Cipher struct {
	aead cipher.AEAD
}

// New builds a Cipher from an encoded 32-byte key (base64 or hex).
func New(encodedKey string) (*Cipher, error) {
	key, err := decodeKey(encodedKey)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("fieldcrypt: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("fieldcrypt: %w", err)
	}
	return &Cipher{aead: aead}, nil
}

func decodeKey(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if b, err := base64.StdEncoding.DecodeString(encoded); err == nil && len(b) == keyLength {
		return b, nil
	}
	if b, err := base64.RawStdEncoding.DecodeString(encoded); err == nil && len(b) == keyLength {
		return b, nil
	}
	if len(encoded) == hex.EncodedLen(keyLength) {
		if b, err := hex.DecodeString(encoded); err == nil {
			return b, nil
		}
	}
	return nil, ErrInvalidKey
}

// Encrypt seals the plaintext with a fresh random nonce and returns
// base64(nonce||ciphertext). The stored value is self-describing: decryption
// splits the leading nonce back off.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("fieldcrypt: nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Older records carry an "ENCRYPTED_" prefix ahead
// of the base64 blob; it is stripped before decoding.
func (c *Cipher) Decrypt(encrypted string) (string, error) {
	encrypted = strings.TrimPrefix(encrypted, legacyPref)

	raw, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", fmt.Errorf("fieldcrypt: decode: %w", err)
	}
	if len(raw) < nonceSize {
		return "", errors.New("fieldcrypt: encrypted value too short to contain nonce")
	}

	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("fieldcrypt: decrypt: %w", err)
	}
	return string(plaintext), nil
}

// IndexHash returns the deterministic, unsalted SHA-256 digest of the
// plaintext document number. Equal plaintexts always hash identically, which
// enables exact-match dedup at the cost of offline correlation against known
// identifiers; that trade-off is accepted for this field.
func IndexHash(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// Package seal encrypts slot payloads at rest.
//
// The cipher is deliberately fail-open: encryption or decryption
// failures log a diagnostic and hand back the input verbatim instead
// of erroring. A corrupted key or payload must degrade to readable
// plaintext handling, never to losing the stored tickets. The
// consequence is that the wrapper is tolerant but not authenticated:
// it cannot tell tampered ciphertext from a payload that was never
// encrypted - both come back unchanged.
package seal

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// sealedPrefix marks a payload produced by Encrypt. Payloads without
// it are passed through Decrypt untouched (legacy plaintext).
const sealedPrefix = "stg1:"

// blobVersion is prepended to every sealed blob and bound as AEAD
// additional data, so tampering with it fails authentication.
const blobVersion byte = 0x01

// hkdfInfo is the HKDF domain-separation string for slot payload keys.
// Changing it invalidates all existing ciphertext.
var hkdfInfo = []byte("ticketgrid.seal.v1")

// DefaultPassphrase is the built-in passphrase used when the caller
// supplies none. A static source-embedded key is light obfuscation,
// not real confidentiality; callers wanting more pass their own key
// material to New.
const DefaultPassphrase = "ticketgrid-local-storage"

// Cipher seals and opens string payloads under a passphrase-derived
// symmetric key. The zero value is not usable; construct with New.
type Cipher struct {
	key    []byte
	logger *slog.Logger
}

// Option configures a Cipher.
type Option func(*Cipher)

// WithLogger sets the logger for fail-open diagnostics. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cipher) {
		c.logger = logger
	}
}

// New derives a 32-byte XChaCha20-Poly1305 key from the passphrase via
// HKDF-SHA256. An empty passphrase falls back to DefaultPassphrase.
func New(passphrase string, opts ...Option) *Cipher {
	if passphrase == "" {
		passphrase = DefaultPassphrase
	}

	key := make([]byte, chacha20poly1305.KeySize)
	kdf := hkdf.New(sha256.New, []byte(passphrase), nil, hkdfInfo)
	if _, err := io.ReadFull(kdf, key); err != nil {
		// HKDF over SHA-256 cannot fail for a 32-byte read.
		panic(fmt.Sprintf("seal: derive key: %v", err))
	}

	c := &Cipher{key: key, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encrypt seals plaintext and returns the sealed payload:
//
//	"stg1:" + base64( [version: 1 byte] [nonce: 24 bytes] [ciphertext+tag] )
//
// On any internal failure the plaintext is returned unchanged and the
// cause is logged.
func (c *Cipher) Encrypt(plaintext string) string {
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		c.logger.Warn("seal: cipher construction failed, storing plaintext", "error", err)
		return plaintext
	}

	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		c.logger.Warn("seal: nonce generation failed, storing plaintext", "error", err)
		return plaintext
	}

	blob := make([]byte, 0, 1+len(nonce)+len(plaintext)+chacha20poly1305.Overhead)
	blob = append(blob, blobVersion)
	blob = append(blob, nonce...)
	blob = aead.Seal(blob, nonce, []byte(plaintext), []byte{blobVersion})

	return sealedPrefix + base64.StdEncoding.EncodeToString(blob)
}

// Decrypt opens a payload produced by Encrypt. Inputs without the
// sealed prefix, with malformed base64, with an unknown version, or
// failing authentication all come back verbatim with a logged
// diagnostic - never an error.
func (c *Cipher) Decrypt(payload string) string {
	if !strings.HasPrefix(payload, sealedPrefix) {
		return payload
	}

	blob, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(payload, sealedPrefix))
	if err != nil {
		c.logger.Warn("seal: payload is not valid base64, returning input", "error", err)
		return payload
	}
	if len(blob) < 1+chacha20poly1305.NonceSizeX+chacha20poly1305.Overhead {
		c.logger.Warn("seal: payload too short, returning input", "length", len(blob))
		return payload
	}
	if blob[0] != blobVersion {
		c.logger.Warn("seal: unknown payload version, returning input", "version", blob[0])
		return payload
	}

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		c.logger.Warn("seal: cipher construction failed, returning input", "error", err)
		return payload
	}

	nonce := blob[1 : 1+chacha20poly1305.NonceSizeX]
	ciphertext := blob[1+chacha20poly1305.NonceSizeX:]

	plaintext, err := aead.Open(nil, nonce, ciphertext, []byte{blobVersion})
	if err != nil {
		c.logger.Warn("seal: decryption failed, returning input", "error", err)
		return payload
	}
	return string(plaintext)
}

// Package password derives and verifies salted password hashes.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"

	"task_backend/internal/platform/config"
)

const saltLength = 16

// Hasher computes argon2id hashes keyed by a per-user salt.
// Hash is deterministic for a given (plaintext, salt) pair.
type Hasher struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
}

// NewHasher creates a Hasher with the given argon2id parameters.
// Zero values fall back to the defaults from config.Default.
func NewHasher(cfg config.PasswordConfig) *Hasher {
	def := config.Default().Password
	if cfg.Time == 0 {
		cfg.Time = def.Time
	}
	if cfg.Memory == 0 {
		cfg.Memory = def.Memory
	}
	if cfg.Threads == 0 {
		cfg.Threads = def.Threads
	}
	if cfg.KeyLen == 0 {
		cfg.KeyLen = def.KeyLen
	}
	return &Hasher{
		time:    cfg.Time,
		memory:  cfg.Memory,
		threads: cfg.Threads,
		keyLen:  cfg.KeyLen,
	}
}

// NewSalt returns a fresh random salt, base64 encoded.
func (h *Hasher) NewSalt() (string, error) {
	b := make([]byte, saltLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return base64.RawStdEncoding.EncodeToString(b), nil
}

// Hash derives the hash of plaintext under salt.
func (h *Hasher) Hash(plaintext, salt string) string {
	key := argon2.IDKey([]byte(plaintext), []byte(salt), h.time, h.memory, h.threads, h.keyLen)
	return base64.RawStdEncoding.EncodeToString(key)
}

// Verify reports whether plaintext hashed under salt equals storedHash.
func (h *Hasher) Verify(plaintext, salt, storedHash string) bool {
	computed := h.Hash(plaintext, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}

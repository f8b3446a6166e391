package auth

import (
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes new credentials and checks stored ones.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare reports whether password matches stored and whether stored
	// uses an outdated encoding that should be replaced.
	Compare(stored, password string) (match bool, outdated bool)
}

// BcryptHasher stores bcrypt hashes. Registries written before hashing was
// introduced hold base64 encoded passwords; those still compare and are
// reported as outdated.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *BcryptHasher) Compare(stored, password string) (bool, bool) {
	if isBcrypt(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil, false
	}
	if stored == "" {
		return false, false
	}
	return stored == legacyEncode(password), true
}

func isBcrypt(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

func legacyEncode(password string) string {
	return base64.StdEncoding.EncodeToString([]byte(password))
}

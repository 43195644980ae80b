package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the PBKDF2-SHA256 work factor for new hashes.
	DefaultIterations = 600000
	// SaltLength is the number of salt characters stored with each hash.
	SaltLength = 8

	// legacyIterations applies to "pbkdf2:sha256" digests that omit the count.
	legacyIterations = 260000
	saltChars        = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var ErrMalformedHash = errors.New("malformed password hash")

// PasswordHasher produces and checks "pbkdf2:sha256:<iterations>$<salt>$<hex>" digests.
// Digests in that format are interchangeable with werkzeug's generate_password_hash.
type PasswordHasher struct {
	Iterations int
}

// NewPasswordHasher returns a hasher; iterations <= 0 selects DefaultIterations.
func NewPasswordHasher(iterations int) *PasswordHasher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &PasswordHasher{Iterations: iterations}
}

// Hash salts and hashes a plain password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt, err := genSalt(SaltLength)
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	sum := pbkdf2.Key([]byte(password), []byte(salt), h.Iterations, sha256.Size, sha256.New)
	return fmt.Sprintf("pbkdf2:sha256:%d$%s$%s", h.Iterations, salt, hex.EncodeToString(sum)), nil
}

// Check compares a plain password with a stored digest. bcrypt digests are accepted as well.
func (h *PasswordHasher) Check(plain, hashed string) bool {
	if strings.HasPrefix(hashed, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
	}
	iterations, salt, want, err := parsePBKDF2(hashed)
	if err != nil {
		return false
	}
	got := pbkdf2.Key([]byte(plain), []byte(salt), iterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func parsePBKDF2(hashed string) (iterations int, salt string, sum []byte, err error) {
	parts := strings.SplitN(hashed, "$", 3)
	if len(parts) != 3 {
		return 0, "", nil, ErrMalformedHash
	}
	method := strings.Split(parts[0], ":")
	if len(method) < 2 || method[0] != "pbkdf2" || method[1] != "sha256" {
		return 0, "", nil, ErrMalformedHash
	}
	iterations = legacyIterations
	if len(method) == 3 {
		iterations, err = strconv.Atoi(method[2])
		if err != nil || iterations <= 0 {
			return 0, "", nil, ErrMalformedHash
		}
	}
	sum, err = hex.DecodeString(parts[2])
	if err != nil || len(sum) == 0 {
		return 0, "", nil, ErrMalformedHash
	}
	return iterations, parts[1], sum, nil
}

func genSalt(n int) (string, error) {
	var b strings.Builder
	limit := big.NewInt(int64(len(saltChars)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b.WriteByte(saltChars[idx.Int64()])
	}
	return b.String(), nil
}

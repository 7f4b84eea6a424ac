package services

import (
	cryptorand "crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher produces salted, irreversible password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hashedPassword string) bool
}

// NewPasswordHasher builds the hasher selected by password.algorithm.
func NewPasswordHasher() (PasswordHasher, error) {
	switch algo := strings.ToLower(viper.GetString("password.algorithm")); algo {
	case "", "bcrypt":
		return &BcryptHasher{Cost: viper.GetInt("password.bcrypt_cost")}, nil
	case "argon2id", "argon2":
		return &Argon2Hasher{
			Time:       uint32(viper.GetInt("argon2.time")),
			Memory:     uint32(viper.GetInt("argon2.memory")),
			Threads:    uint8(viper.GetInt("argon2.threads")),
			KeyLength:  uint32(viper.GetInt("argon2.key_length")),
			SaltLength: viper.GetInt("argon2.salt_length"),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported password algorithm %q", algo)
	}
}

// BcryptHasher hashes with bcrypt; a zero Cost means bcrypt.DefaultCost.
type BcryptHasher struct {
	Cost int
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(b), err
}

func (h *BcryptHasher) Verify(password, hashedPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// Argon2Hasher stores hashes as base64(salt)$base64(key).
type Argon2Hasher struct {
	Time       uint32
	Memory     uint32
	Threads    uint8
	KeyLength  uint32
	SaltLength int
}

func (h *Argon2Hasher) Hash(password string) (string, error) {
	if h.SaltLength <= 0 || h.KeyLength == 0 {
		return "", fmt.Errorf("argon2 salt and key length must be positive")
	}
	salt := make([]byte, h.SaltLength)
	if _, err := cryptorand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, h.Time, h.Memory, h.Threads, h.KeyLength)
	return fmt.Sprintf("%s$%s", base64.StdEncoding.EncodeToString(salt), base64.StdEncoding.EncodeToString(hash)), nil
}

func (h *Argon2Hasher) Verify(password, hashedPassword string) bool {
	parts := strings.Split(hashedPassword, "$")
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}

	hash, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	computedHash := argon2.IDKey([]byte(password), salt, h.Time, h.Memory, h.Threads, uint32(len(hash)))
	return subtle.ConstantTimeCompare(hash, computedHash) == 1
}

package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

var (
	// ErrPasswordTooShort is returned by Hash for inputs below the minimum
	// length.
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	// ErrInvalidCost is returned by NewBcrypt for a cost outside bcrypt's
	// supported range.
	ErrInvalidCost = errors.New("bcrypt cost outside supported range")
)

// Config holds the bcrypt parameters.
type Config struct {
	// Cost is the bcrypt work factor. Zero selects bcrypt.DefaultCost.
	Cost int
}

// Bcrypt hashes and verifies credentials with a fixed cost. Safe for
// concurrent use.
type Bcrypt struct {
	cost int
}

// NewBcrypt validates cfg and returns a hasher.
func NewBcrypt(cfg Config) (*Bcrypt, error) {
	cost := cfg.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, ErrInvalidCost
	}
	return &Bcrypt{cost: cost}, nil
}

// Hash derives a bcrypt hash of the plaintext.
func (b *Bcrypt) Hash(plaintext string) (string, error) {
	if len(plaintext) < minPasswordLength {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash. A mismatch is
// (false, nil); any other failure is an error.
func (b *Bcrypt) Verify(hash, plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}

// Cost returns the configured work factor.
func (b *Bcrypt) Cost() int {
	return b.cost
}

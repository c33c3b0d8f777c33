package goSignup

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config carries every tunable the engine consumes. Values are read at
// Build time and treated as immutable afterwards.
type Config struct {
	Challenge    ChallengeConfig
	Registration RegistrationConfig
	Activation   ActivationConfig
	Password     PasswordConfig
	JWT          JWTConfig
	Audit        AuditConfig
	Metrics      MetricsConfig
}

/*
====================================
CHALLENGE CONFIG
====================================
*/

// ChallengeConfig governs OTP challenge issuance and redemption.
type ChallengeConfig struct {
	// OTPDigits is the exact length of generated codes. 4..10.
	OTPDigits int
	// ExpiryWindow bounds how long after issuance a challenge may be
	// redeemed. Enforced by the activation workflow, not the store.
	ExpiryWindow time.Duration
	// HistoryLimit caps the per-identity challenge history kept in Redis.
	// Trimming discards oldest entries only; recency semantics are
	// unaffected.
	HistoryLimit int
	// RedisPrefix namespaces challenge keys.
	RedisPrefix string
}

/*
====================================
REGISTRATION / ACTIVATION CONFIG
====================================
*/

// RegistrationConfig governs account creation defaults.
type RegistrationConfig struct {
	// DefaultRole is resolved through the RoleProvider for every new
	// account. Registration fails with FailureRoleNotFound when the catalog
	// does not know it.
	DefaultRole string
	// DefaultLocale is applied when the request carries no locale.
	DefaultLocale string
}

// ActivationConfig governs post-activation behavior.
type ActivationConfig struct {
	// AutoLogin, when set, issues a signed access token for the freshly
	// activated account. Requires a valid JWT section.
	AutoLogin bool
}

// PasswordConfig holds the bcrypt cost factor for credential hashing.
type PasswordConfig struct {
	Cost int
}

// JWTConfig configures access-token issuance for activation auto-login.
type JWTConfig struct {
	AccessTTL     time.Duration
	SigningMethod string // "hs256" (default) or "ed25519"
	PrivateKey    []byte
	PublicKey     []byte
	Issuer        string
}

// AuditConfig controls the buffered audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls the in-process metrics counters.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the baseline configuration: 6-digit codes, a
// 10-minute redemption window, a 10-entry history, bcrypt default cost, and
// metrics on.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Challenge: ChallengeConfig{
			OTPDigits:    6,
			ExpiryWindow: 10 * time.Minute,
			HistoryLimit: 10,
			RedisPrefix:  "otp",
		},
		Registration: RegistrationConfig{
			DefaultRole:   "USER",
			DefaultLocale: "en",
		},
		Activation: ActivationConfig{
			AutoLogin: false,
		},
		Password: PasswordConfig{
			Cost: bcrypt.DefaultCost,
		},
		JWT: JWTConfig{
			AccessTTL:     15 * time.Minute,
			SigningMethod: "hs256",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 true,
			EnableLatencyHistograms: false,
		},
	}
}

// Validate rejects configurations the engine cannot honor. Called by
// [Builder.Build]; exposed for callers that assemble Config from external
// sources.
func (c *Config) Validate() error {
	if c.Challenge.OTPDigits < 4 || c.Challenge.OTPDigits > 10 {
		return errors.New("Challenge OTPDigits must be between 4 and 10")
	}
	if c.Challenge.ExpiryWindow <= 0 {
		return errors.New("Challenge ExpiryWindow must be > 0")
	}
	if c.Challenge.ExpiryWindow > 24*time.Hour {
		return errors.New("Challenge ExpiryWindow must be <= 24h")
	}
	if c.Challenge.HistoryLimit < 1 {
		return errors.New("Challenge HistoryLimit must be >= 1")
	}
	if c.Challenge.RedisPrefix == "" {
		return errors.New("Challenge RedisPrefix must not be empty")
	}
	if c.Registration.DefaultRole == "" {
		return errors.New("Registration DefaultRole must not be empty")
	}
	if c.Registration.DefaultLocale == "" {
		return errors.New("Registration DefaultLocale must not be empty")
	}
	if c.Password.Cost != 0 && (c.Password.Cost < bcrypt.MinCost || c.Password.Cost > bcrypt.MaxCost) {
		return errors.New("Password Cost outside bcrypt bounds")
	}
	if c.Activation.AutoLogin {
		if c.JWT.AccessTTL <= 0 {
			return errors.New("Activation AutoLogin requires JWT AccessTTL > 0")
		}
		switch c.JWT.SigningMethod {
		case "hs256", "ed25519":
		default:
			return errors.New("JWT SigningMethod must be hs256 or ed25519")
		}
		if len(c.JWT.PrivateKey) == 0 {
			return errors.New("Activation AutoLogin requires JWT PrivateKey")
		}
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("Audit BufferSize must be >= 0")
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.JWT.PrivateKey = cloneBytes(cfg.JWT.PrivateKey)
	out.JWT.PublicKey = cloneBytes(cfg.JWT.PublicKey)
	return out
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

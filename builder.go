package goSignup

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	sjwt "github.com/MrEthical07/goSignup/jwt"
	"github.com/MrEthical07/goSignup/password"
)

// Builder assembles an [Engine]. Obtain one with [New], chain the With*
// methods, then call [Builder.Build] exactly once. Builders are not safe for
// concurrent use and must not be reused after Build.
type Builder struct {
	cfg       Config
	redis     *redis.Client
	accounts  AccountProvider
	roles     RoleProvider
	notifier  Notifier
	codes     CodeGenerator
	auditSink AuditSink
	built     bool
}

// New starts a builder seeded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		cfg: defaultConfig(),
	}
}

// WithConfig replaces the entire configuration. Zero-valued sections are not
// backfilled; start from [DefaultConfig] and override fields instead of
// building Config from scratch.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.cfg = cloneConfig(cfg)
	return b
}

// WithRedis sets the Redis client backing the challenge store. Required.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithAccountProvider sets the account persistence collaborator. Required.
func (b *Builder) WithAccountProvider(p AccountProvider) *Builder {
	b.accounts = p
	return b
}

// WithRoleProvider sets the role catalog collaborator. Required.
func (b *Builder) WithRoleProvider(p RoleProvider) *Builder {
	b.roles = p
	return b
}

// WithNotifier sets the notification collaborator. Required.
func (b *Builder) WithNotifier(n Notifier) *Builder {
	b.notifier = n
	return b
}

// WithCodeGenerator overrides the default crypto/rand code generator.
func (b *Builder) WithCodeGenerator(g CodeGenerator) *Builder {
	b.codes = g
	return b
}

// WithAuditSink enables auditing and routes events to sink.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.cfg.Audit.Enabled = true
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles metric collection.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.cfg.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the activation latency histogram. Has no
// effect unless metrics are enabled.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.cfg.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and collaborators and returns a ready
// engine. A builder can build only once.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("goSignup: builder already used")
	}

	if err := b.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("goSignup: invalid config: %w", err)
	}
	if b.redis == nil {
		return nil, errors.New("goSignup: redis client is required")
	}
	if b.accounts == nil {
		return nil, errors.New("goSignup: account provider is required")
	}
	if b.roles == nil {
		return nil, errors.New("goSignup: role provider is required")
	}
	if b.notifier == nil {
		return nil, errors.New("goSignup: notifier is required")
	}

	hasher, err := password.NewBcrypt(password.Config{Cost: b.cfg.Password.Cost})
	if err != nil {
		return nil, fmt.Errorf("goSignup: password hasher: %w", err)
	}

	var tokens *sjwt.Manager
	if b.cfg.Activation.AutoLogin {
		tokens, err = sjwt.NewManager(sjwt.Config{
			AccessTTL:     b.cfg.JWT.AccessTTL,
			SigningMethod: sjwt.SigningMethod(b.cfg.JWT.SigningMethod),
			PrivateKey:    b.cfg.JWT.PrivateKey,
			PublicKey:     b.cfg.JWT.PublicKey,
			Issuer:        b.cfg.JWT.Issuer,
		})
		if err != nil {
			return nil, fmt.Errorf("goSignup: jwt manager: %w", err)
		}
	}

	codes := b.codes
	if codes == nil {
		codes = cryptoCodeGenerator{}
	}

	e := &Engine{
		config:     b.cfg,
		challenges: newOTPChallengeStore(b.redis, b.cfg.Challenge.RedisPrefix, b.cfg.Challenge.HistoryLimit),
		accounts:   b.accounts,
		roles:      b.roles,
		notifier:   b.notifier,
		codes:      codes,
		audit:      newAuditDispatcher(b.cfg.Audit, b.auditSink),
		metrics:    NewMetrics(b.cfg.Metrics),
		passwords:  hasher,
		tokens:     tokens,
	}

	b.built = true
	return e, nil
}

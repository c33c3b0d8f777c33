package goSignup

import (
	"context"
	"time"
)

// AccountState represents the lifecycle state of an account. New accounts are
// always created in [AccountPendingActivation]; the only defined transition is
// to [AccountActive], performed exclusively by [Engine.Activate].
type AccountState uint8

const (
	// AccountPendingActivation is the state of every newly registered account
	// until its challenge is redeemed.
	AccountPendingActivation AccountState = iota
	// AccountActive is the terminal state reached through activation.
	AccountActive
)

// String implements fmt.Stringer.
func (s AccountState) String() string {
	switch s {
	case AccountPendingActivation:
		return "pending_activation"
	case AccountActive:
		return "active"
	default:
		return "unknown"
	}
}

// Profile holds the per-account presentation data captured at registration.
type Profile struct {
	Locale         string
	BirthDate      *time.Time
	AvatarURL      string
	LastConnection time.Time
}

// Account is the full account record exchanged with [AccountProvider].
type Account struct {
	ID             string
	Email          string
	Username       string
	CredentialHash string
	State          AccountState
	Profile        Profile
	RoleIDs        []string
	CreatedAt      time.Time
}

// Role is the catalog record returned by [RoleProvider].
type Role struct {
	ID          string
	Name        string
	Description string
	Permissions []string
}

// OtpChallenge is one entry of an account's challenge history. Challenges are
// immutable once issued; redemption never deletes them. Only the most
// recently created challenge for an identity is eligible.
type OtpChallenge struct {
	Email     string
	Code      int64
	CreatedAt time.Time
}

// AccountProvider is the persistence contract the engine consumes. The
// implementation owns storage; the engine imposes two atomicity requirements
// on it: Create must reject a duplicate email with
// [ErrProviderDuplicateEmail] backed by a uniqueness constraint, and
// SetActive must be atomic (compare-and-set or constraint-backed) so that
// concurrent activations cannot corrupt state.
type AccountProvider interface {
	// FindByEmail returns the account, or ErrProviderNotFound when absent.
	FindByEmail(ctx context.Context, email string) (Account, error)
	// Exists reports whether an account with the email exists.
	Exists(ctx context.Context, email string) (bool, error)
	// Create persists a new account. ErrProviderDuplicateEmail on conflict.
	Create(ctx context.Context, account Account) error
	// SetActive transitions the account to AccountActive and stamps the
	// profile's last-connection time.
	SetActive(ctx context.Context, email string) error
	// Delete removes the account. Used only by registration compensation.
	Delete(ctx context.Context, email string) error
}

// RoleProvider resolves catalog roles by name.
type RoleProvider interface {
	// FindByName returns the role, or ErrProviderNotFound when absent.
	FindByName(ctx context.Context, name string) (Role, error)
}

// ConfirmationMessage carries a freshly issued challenge code to the account
// owner's out-of-band channel.
type ConfirmationMessage struct {
	Email    string
	Username string
	Code     string
}

// WelcomeMessage is sent once after successful activation.
type WelcomeMessage struct {
	Email    string
	Username string
}

// Notifier delivers account mail. Each send either succeeds or fails
// atomically; the engine never retries a send. Delivery retry policy, if
// any, belongs to the implementation.
type Notifier interface {
	SendConfirmation(ctx context.Context, msg ConfirmationMessage) error
	SendWelcome(ctx context.Context, msg WelcomeMessage) error
}

// CodeGenerator produces the random digit strings behind OTP challenges. The
// default implementation draws each digit independently from crypto/rand;
// tests inject deterministic generators.
type CodeGenerator interface {
	// Generate returns a decimal string of exactly the requested length.
	// Leading zeros are permitted.
	Generate(digits int) (string, error)
}

// RegisterRequest is the input to [Engine.Register]. Locale defaults to
// [RegistrationConfig.DefaultLocale] when empty; AvatarURL and BirthDate are
// optional.
type RegisterRequest struct {
	Email     string
	Username  string
	Password  string
	Locale    string
	AvatarURL string
	BirthDate *time.Time
}

// ActivationResult is the success payload of [Engine.Activate]. AccessToken
// is populated only when [ActivationConfig.AutoLogin] is enabled and token
// issuance succeeded; activation itself is final either way.
type ActivationResult struct {
	AccountID   string
	AccessToken string
}

package goSignup

import "errors"

// FailureKind tags the failure side of an [Outcome]. The set is closed per
// workflow:
//
//	Register: FailureRoleNotFound, FailureAccountExists, FailureUnexpected
//	Activate: FailureAccountNotFound, FailureAccountAlreadyActive,
//	          FailureNoChallenge, FailureChallengeExpired,
//	          FailureChallengeMismatch, FailureUnexpected
//	Reissue:  FailureAccountNotFound, FailureAccountAlreadyActive,
//	          FailureUnexpected
type FailureKind uint8

const (
	// FailureUnexpected wraps any unanticipated collaborator fault after
	// compensation, if any, has been attempted.
	FailureUnexpected FailureKind = iota
	// FailureRoleNotFound reports that the configured default role does not
	// exist in the role catalog.
	FailureRoleNotFound
	// FailureAccountExists reports a registration against an email that
	// already has an account.
	FailureAccountExists
	// FailureAccountNotFound reports an activation or reissuance against an
	// unknown email.
	FailureAccountNotFound
	// FailureAccountAlreadyActive reports an activation or reissuance against
	// an account that is already active.
	FailureAccountAlreadyActive
	// FailureNoChallenge reports an activation for an account with no issued
	// challenge.
	FailureNoChallenge
	// FailureChallengeExpired reports a challenge older than the configured
	// expiry window.
	FailureChallengeExpired
	// FailureChallengeMismatch reports a submitted code that does not match
	// the most recently issued challenge.
	FailureChallengeMismatch
)

// String implements fmt.Stringer so failure kinds read well in logs.
func (k FailureKind) String() string {
	switch k {
	case FailureUnexpected:
		return "unexpected_error"
	case FailureRoleNotFound:
		return "role_not_found"
	case FailureAccountExists:
		return "account_already_exists"
	case FailureAccountNotFound:
		return "account_not_found"
	case FailureAccountAlreadyActive:
		return "account_already_active"
	case FailureNoChallenge:
		return "no_challenge_for_account"
	case FailureChallengeExpired:
		return "challenge_expired"
	case FailureChallengeMismatch:
		return "invalid_challenge"
	default:
		return "unknown_failure"
	}
}

var (
	// ErrProviderNotFound must be returned by [AccountProvider.FindByEmail]
	// and [RoleProvider.FindByName] (possibly wrapped) when the requested
	// record is absent. The engine translates it into the matching domain
	// failure kind.
	ErrProviderNotFound = errors.New("provider record not found")
	// ErrProviderDuplicateEmail must be returned by [AccountProvider.Create]
	// when the email violates the store's uniqueness constraint. The engine
	// translates it into FailureAccountExists, which makes concurrent
	// registrations for the same email race-safe.
	ErrProviderDuplicateEmail = errors.New("provider duplicate email")
	// ErrEngineNotReady is returned by Build-time validation paths when a
	// required collaborator was not supplied.
	ErrEngineNotReady = errors.New("engine not initialized")
)

package goSignup

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Register creates a pending account and issues its first activation
// challenge. The flow resolves the configured default role, hashes the
// credential, persists the account, then stores a challenge and sends the
// confirmation message. If the challenge or confirmation step fails, the
// freshly created account is deleted again so a retry starts from a clean
// slate; the compensation error itself is audited and never surfaced.
//
// No account ever becomes visible in an active state through this path.
func (e *Engine) Register(ctx context.Context, req RegisterRequest) Outcome[Void] {
	if e == nil || e.accounts == nil || e.roles == nil || e.notifier == nil {
		return FailWith[Void](FailureUnexpected, "engine not ready", ErrEngineNotReady)
	}
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return FailWith[Void](FailureUnexpected, "email, username and password are required", nil)
	}

	role, err := e.roles.FindByName(ctx, e.config.Registration.DefaultRole)
	if err != nil {
		if errors.Is(err, ErrProviderNotFound) {
			return e.failRegister(ctx, req.Email, FailureRoleNotFound, "default role is not configured in the catalog", nil)
		}
		return e.failRegister(ctx, req.Email, FailureUnexpected, "role lookup failed", err)
	}

	hash, err := e.passwords.Hash(req.Password)
	if err != nil {
		return e.failRegister(ctx, req.Email, FailureUnexpected, "credential hashing failed", err)
	}

	exists, err := e.accounts.Exists(ctx, req.Email)
	if err != nil {
		return e.failRegister(ctx, req.Email, FailureUnexpected, "account lookup failed", err)
	}
	if exists {
		return e.failRegister(ctx, req.Email, FailureAccountExists, "an account with this email already exists", nil)
	}

	now := time.Now()
	locale := req.Locale
	if locale == "" {
		locale = e.config.Registration.DefaultLocale
	}

	account := Account{
		ID:             uuid.NewString(),
		Email:          req.Email,
		Username:       req.Username,
		CredentialHash: hash,
		State:          AccountPendingActivation,
		Profile: Profile{
			Locale:         locale,
			BirthDate:      req.BirthDate,
			AvatarURL:      req.AvatarURL,
			LastConnection: now,
		},
		RoleIDs:   []string{role.ID},
		CreatedAt: now,
	}

	if err := e.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, ErrProviderDuplicateEmail) {
			// Lost the race between Exists and Create. The uniqueness
			// constraint is the authority; report it as a plain duplicate.
			e.metricInc(MetricRegisterDuplicate)
			return e.failRegister(ctx, req.Email, FailureAccountExists, "an account with this email already exists", nil)
		}
		return e.failRegister(ctx, req.Email, FailureUnexpected, "account creation failed", err)
	}

	// The account row exists from here on. Everything that can still fail is
	// wrapped in a compensation scope that deletes it again.
	err = runCompensated(ctx,
		func(ctx context.Context) error {
			codeStr, err := e.codes.Generate(e.config.Challenge.OTPDigits)
			if err != nil {
				return err
			}
			code, err := parseOTPCode(codeStr)
			if err != nil {
				return err
			}
			if err := e.challenges.Append(ctx, req.Email, code, time.Now()); err != nil {
				return err
			}
			e.metricInc(MetricChallengeIssued)
			return e.notifier.SendConfirmation(ctx, ConfirmationMessage{
				Email:    req.Email,
				Username: req.Username,
				Code:     codeStr,
			})
		},
		func(ctx context.Context) error {
			e.metricInc(MetricRegisterCompensated)
			return e.accounts.Delete(ctx, req.Email)
		},
		func(undoErr error) {
			e.emitAudit(ctx, auditEventRegistrationCompensation, false, req.Email, account.ID, undoErr, nil)
		},
	)
	if err != nil {
		return e.failRegister(ctx, req.Email, FailureUnexpected, "challenge delivery failed", err)
	}

	e.metricInc(MetricRegisterSuccess)
	e.emitAudit(ctx, auditEventRegistration, true, req.Email, account.ID, nil, func() map[string]string {
		return map[string]string{"role": role.Name}
	})

	return Succeed(Void{})
}

func (e *Engine) failRegister(ctx context.Context, email string, kind FailureKind, message string, cause error) Outcome[Void] {
	e.metricInc(MetricRegisterFailure)

	out := FailWith[Void](kind, message, cause)
	failure := out.Failure()
	e.emitAudit(ctx, auditEventRegistration, false, email, "", failure, nil)

	return out
}

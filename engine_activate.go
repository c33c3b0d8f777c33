package goSignup

import (
	"context"
	"errors"
	"time"
)

const auditEventAutoLoginFailure = "auto_login_failure"

// Activate redeems the most recent challenge for the email and transitions
// the account to [AccountActive]. Checks run in a fixed order: account
// existence, current state, challenge presence, challenge age, code match.
// Only the latest challenge is ever consulted; submitting an older code that
// was since superseded fails as a mismatch.
//
// Once the state transition has been persisted the activation is final.
// Auto-login token issuance and the welcome message are best effort on top of
// it; their failures are audited and counted but never roll the account back
// or fail the call.
func (e *Engine) Activate(ctx context.Context, email, code string) Outcome[ActivationResult] {
	if e == nil || e.accounts == nil || e.notifier == nil {
		return FailWith[ActivationResult](FailureUnexpected, "engine not ready", ErrEngineNotReady)
	}

	start := time.Now()

	account, err := e.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrProviderNotFound) {
			return e.failActivate(ctx, email, FailureAccountNotFound, "no account for this email", nil)
		}
		return e.failActivate(ctx, email, FailureUnexpected, "account lookup failed", err)
	}
	if account.State == AccountActive {
		return e.failActivate(ctx, email, FailureAccountAlreadyActive, "account is already active", nil)
	}

	challenge, err := e.challenges.MostRecent(ctx, email)
	if err != nil {
		if errors.Is(err, errChallengeNotFound) {
			return e.failActivate(ctx, email, FailureNoChallenge, "no challenge has been issued for this account", nil)
		}
		return e.failActivate(ctx, email, FailureUnexpected, "challenge lookup failed", err)
	}

	if time.Since(challenge.CreatedAt) > e.config.Challenge.ExpiryWindow {
		e.metricInc(MetricActivateExpired)
		return e.failActivate(ctx, email, FailureChallengeExpired, "challenge has expired, request a new one", nil)
	}

	submitted, err := parseOTPCode(code)
	if err != nil || submitted != challenge.Code {
		// A malformed code is indistinguishable from a wrong one on purpose.
		e.metricInc(MetricActivateMismatch)
		return e.failActivate(ctx, email, FailureChallengeMismatch, "submitted code does not match", nil)
	}

	if err := e.accounts.SetActive(ctx, email); err != nil {
		return e.failActivate(ctx, email, FailureUnexpected, "account activation failed", err)
	}

	result := ActivationResult{AccountID: account.ID}

	if e.config.Activation.AutoLogin && e.tokens != nil {
		token, err := e.tokens.Issue(account.ID, account.Email, e.config.Registration.DefaultRole)
		if err != nil {
			e.emitAudit(ctx, auditEventAutoLoginFailure, false, email, account.ID, err, nil)
		} else {
			result.AccessToken = token
		}
	}

	if err := e.notifier.SendWelcome(ctx, WelcomeMessage{
		Email:    account.Email,
		Username: account.Username,
	}); err != nil {
		e.metricInc(MetricWelcomeDeliveryFailure)
		e.emitAudit(ctx, auditEventActivationWelcomeFailure, false, email, account.ID, err, nil)
	}

	e.metricInc(MetricActivateSuccess)
	e.metricObserve(MetricActivateLatency, time.Since(start))
	e.emitAudit(ctx, auditEventActivation, true, email, account.ID, nil, nil)

	return Succeed(result)
}

func (e *Engine) failActivate(ctx context.Context, email string, kind FailureKind, message string, cause error) Outcome[ActivationResult] {
	e.metricInc(MetricActivateFailure)

	out := FailWith[ActivationResult](kind, message, cause)
	failure := out.Failure()
	e.emitAudit(ctx, auditEventActivation, false, email, "", failure, nil)

	return out
}

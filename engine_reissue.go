package goSignup

import (
	"context"
	"errors"
	"time"
)

// Reissue generates a fresh challenge for a pending account and delivers it.
// The new challenge supersedes all earlier ones the moment it is persisted.
// The confirmation message is sent before the challenge is stored, so a
// delivery failure leaves the previous challenge in force; the inverse window,
// where the message is out but persistence failed, closes itself on the next
// reissue. There is no compensation here, nothing was created that needs
// undoing.
func (e *Engine) Reissue(ctx context.Context, email string) Outcome[Void] {
	if e == nil || e.accounts == nil || e.notifier == nil {
		return FailWith[Void](FailureUnexpected, "engine not ready", ErrEngineNotReady)
	}

	account, err := e.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrProviderNotFound) {
			return e.failReissue(ctx, email, FailureAccountNotFound, "no account for this email", nil)
		}
		return e.failReissue(ctx, email, FailureUnexpected, "account lookup failed", err)
	}
	if account.State == AccountActive {
		return e.failReissue(ctx, email, FailureAccountAlreadyActive, "account is already active", nil)
	}

	codeStr, err := e.codes.Generate(e.config.Challenge.OTPDigits)
	if err != nil {
		return e.failReissue(ctx, email, FailureUnexpected, "challenge generation failed", err)
	}
	code, err := parseOTPCode(codeStr)
	if err != nil {
		return e.failReissue(ctx, email, FailureUnexpected, "challenge generation failed", err)
	}

	if err := e.notifier.SendConfirmation(ctx, ConfirmationMessage{
		Email:    account.Email,
		Username: account.Username,
		Code:     codeStr,
	}); err != nil {
		return e.failReissue(ctx, email, FailureUnexpected, "confirmation delivery failed", err)
	}

	if err := e.challenges.Append(ctx, email, code, time.Now()); err != nil {
		return e.failReissue(ctx, email, FailureUnexpected, "challenge persistence failed", err)
	}
	e.metricInc(MetricChallengeIssued)

	e.metricInc(MetricReissueSuccess)
	e.emitAudit(ctx, auditEventReissue, true, email, account.ID, nil, nil)

	return Succeed(Void{})
}

func (e *Engine) failReissue(ctx context.Context, email string, kind FailureKind, message string, cause error) Outcome[Void] {
	e.metricInc(MetricReissueFailure)

	out := FailWith[Void](kind, message, cause)
	failure := out.Failure()
	e.emitAudit(ctx, auditEventReissue, false, email, "", failure, nil)

	return out
}

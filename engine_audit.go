package goSignup

import (
	"context"
	"time"
)

const (
	auditEventRegistration             = "registration"
	auditEventRegistrationCompensation = "registration_compensation"
	auditEventActivation               = "activation"
	auditEventActivationWelcomeFailure = "activation_welcome_failure"
	auditEventReissue                  = "reissue"
)

// emitAudit assembles and dispatches one audit event. metaFn is lazy so
// metadata maps are only allocated when auditing is enabled.
func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	email string,
	accountID string,
	err error,
	metaFn func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	event := AuditEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		Email:     email,
		AccountID: accountID,
		IP:        clientIPFromContext(ctx),
		Success:   success,
	}
	if err != nil {
		event.Error = err.Error()
	}
	if metaFn != nil {
		event.Metadata = metaFn()
	}

	e.audit.Emit(ctx, event)
}

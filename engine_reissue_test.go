package goSignup

import (
	"context"
	"testing"
)

func TestReissueSuccess(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	deps := defaultTestDeps()
	engine := newTestEngine(t, rdb, deps)
	ctx := context.Background()

	registerTestAccount(t, engine, "alice@example.com")

	engine.codes = fixedCodeGenerator{code: "222222"}

	out := engine.Reissue(ctx, "alice@example.com")
	if out.IsFailure() {
		t.Fatalf("Reissue failed: %v", out.Failure())
	}

	if deps.notifier.confirmationCount() != 2 {
		t.Fatalf("expected two confirmations, got %d", deps.notifier.confirmationCount())
	}
	msg, _ := deps.notifier.lastConfirmation()
	if msg.Code != "222222" {
		t.Fatalf("expected fresh code in confirmation, got %q", msg.Code)
	}

	challenge, err := engine.challenges.MostRecent(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("MostRecent failed: %v", err)
	}
	if challenge.Code != 222222 {
		t.Fatalf("expected latest stored code 222222, got %d", challenge.Code)
	}
}

func TestReissueSupersedesOldCode(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	deps := defaultTestDeps()
	engine := newTestEngine(t, rdb, deps)
	ctx := context.Background()

	registerTestAccount(t, engine, "alice@example.com")

	engine.codes = fixedCodeGenerator{code: "222222"}
	if out := engine.Reissue(ctx, "alice@example.com"); out.IsFailure() {
		t.Fatalf("Reissue failed: %v", out.Failure())
	}

	out := engine.Activate(ctx, "alice@example.com", "111111")
	mustFailWithKind(t, out, FailureChallengeMismatch)

	if out := engine.Activate(ctx, "alice@example.com", "222222"); out.IsFailure() {
		t.Fatalf("Activate with reissued code failed: %v", out.Failure())
	}
}

func TestReissueUnknownAccount(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	deps := defaultTestDeps()
	engine := newTestEngine(t, rdb, deps)

	out := engine.Reissue(context.Background(), "nobody@example.com")
	mustFailWithKind(t, out, FailureAccountNotFound)

	if deps.notifier.confirmationCount() != 0 {
		t.Fatal("expected no confirmation for unknown account")
	}
}

func TestReissueAlreadyActive(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	deps := defaultTestDeps()
	engine := newTestEngine(t, rdb, deps)
	ctx := context.Background()

	registerTestAccount(t, engine, "alice@example.com")
	if out := engine.Activate(ctx, "alice@example.com", "111111"); out.IsFailure() {
		t.Fatalf("Activate failed: %v", out.Failure())
	}

	out := engine.Reissue(ctx, "alice@example.com")
	mustFailWithKind(t, out, FailureAccountAlreadyActive)

	// The store still holds only the original challenge.
	challenge, err := engine.challenges.MostRecent(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("MostRecent failed: %v", err)
	}
	if challenge.Code != 111111 {
		t.Fatalf("store was touched by rejected reissue: %d", challenge.Code)
	}
}

func TestReissueDeliveryFailureLeavesStoreUntouched(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	deps := defaultTestDeps()
	engine := newTestEngine(t, rdb, deps)
	ctx := context.Background()

	registerTestAccount(t, engine, "alice@example.com")

	deps.notifier.failConfirmation = errBoom
	engine.codes = fixedCodeGenerator{code: "222222"}

	out := engine.Reissue(ctx, "alice@example.com")
	mustFailWithKind(t, out, FailureUnexpected)

	// The previous challenge remains in force.
	challenge, err := engine.challenges.MostRecent(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("MostRecent failed: %v", err)
	}
	if challenge.Code != 111111 {
		t.Fatalf("expected original challenge to survive, got %d", challenge.Code)
	}

	if got := engine.metrics.Value(MetricReissueFailure); got != 1 {
		t.Fatalf("expected reissue failure metric 1, got %d", got)
	}
}

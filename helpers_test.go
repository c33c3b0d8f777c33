package goSignup

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	sjwt "github.com/MrEthical07/goSignup/jwt"
	"github.com/MrEthical07/goSignup/password"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, client
}

// mockAccountProvider is an in-memory AccountProvider with per-method failure
// switches.
type mockAccountProvider struct {
	mu       sync.Mutex
	accounts map[string]Account

	failFind      error
	failExists    error
	failCreate    error
	failSetActive error
	failDelete    error

	createCalls int
	deleteCalls int
}

func newMockAccountProvider() *mockAccountProvider {
	return &mockAccountProvider{accounts: make(map[string]Account)}
}

func (m *mockAccountProvider) FindByEmail(_ context.Context, email string) (Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFind != nil {
		return Account{}, m.failFind
	}
	account, ok := m.accounts[email]
	if !ok {
		return Account{}, ErrProviderNotFound
	}
	return account, nil
}

func (m *mockAccountProvider) Exists(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failExists != nil {
		return false, m.failExists
	}
	_, ok := m.accounts[email]
	return ok, nil
}

func (m *mockAccountProvider) Create(_ context.Context, account Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if m.failCreate != nil {
		return m.failCreate
	}
	if _, ok := m.accounts[account.Email]; ok {
		return ErrProviderDuplicateEmail
	}
	m.accounts[account.Email] = account
	return nil
}

func (m *mockAccountProvider) SetActive(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSetActive != nil {
		return m.failSetActive
	}
	account, ok := m.accounts[email]
	if !ok {
		return ErrProviderNotFound
	}
	account.State = AccountActive
	account.Profile.LastConnection = time.Now()
	m.accounts[email] = account
	return nil
}

func (m *mockAccountProvider) Delete(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCalls++
	if m.failDelete != nil {
		return m.failDelete
	}
	delete(m.accounts, email)
	return nil
}

func (m *mockAccountProvider) get(email string) (Account, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[email]
	return account, ok
}

func (m *mockAccountProvider) put(account Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.Email] = account
}

// mockRoleProvider resolves a fixed role catalog.
type mockRoleProvider struct {
	roles map[string]Role
}

func newMockRoleProvider() *mockRoleProvider {
	return &mockRoleProvider{
		roles: map[string]Role{
			"USER": {ID: "role-user", Name: "USER"},
		},
	}
}

func (m *mockRoleProvider) FindByName(_ context.Context, name string) (Role, error) {
	role, ok := m.roles[name]
	if !ok {
		return Role{}, ErrProviderNotFound
	}
	return role, nil
}

// mockNotifier records sends and can be told to fail either channel.
type mockNotifier struct {
	mu sync.Mutex

	failConfirmation error
	failWelcome      error

	confirmations []ConfirmationMessage
	welcomes      []WelcomeMessage
}

func (m *mockNotifier) SendConfirmation(_ context.Context, msg ConfirmationMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failConfirmation != nil {
		return m.failConfirmation
	}
	m.confirmations = append(m.confirmations, msg)
	return nil
}

func (m *mockNotifier) SendWelcome(_ context.Context, msg WelcomeMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWelcome != nil {
		return m.failWelcome
	}
	m.welcomes = append(m.welcomes, msg)
	return nil
}

func (m *mockNotifier) confirmationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.confirmations)
}

func (m *mockNotifier) lastConfirmation() (ConfirmationMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.confirmations) == 0 {
		return ConfirmationMessage{}, false
	}
	return m.confirmations[len(m.confirmations)-1], true
}

func (m *mockNotifier) welcomeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.welcomes)
}

// fixedCodeGenerator always returns the same code.
type fixedCodeGenerator struct {
	code string
	err  error
}

func (g fixedCodeGenerator) Generate(int) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.code, nil
}

type testEngineDeps struct {
	accounts *mockAccountProvider
	roles    *mockRoleProvider
	notifier *mockNotifier
	codes    CodeGenerator
	cfg      Config
}

func defaultTestDeps() testEngineDeps {
	return testEngineDeps{
		accounts: newMockAccountProvider(),
		roles:    newMockRoleProvider(),
		notifier: &mockNotifier{},
		codes:    fixedCodeGenerator{code: "111111"},
		cfg:      defaultConfig(),
	}
}

func newTestEngine(t *testing.T, rdb *redis.Client, deps testEngineDeps) *Engine {
	t.Helper()

	hasher, err := password.NewBcrypt(password.Config{Cost: 4})
	if err != nil {
		t.Fatalf("NewBcrypt failed: %v", err)
	}

	codes := deps.codes
	if codes == nil {
		codes = cryptoCodeGenerator{}
	}

	return &Engine{
		config:     deps.cfg,
		challenges: newOTPChallengeStore(rdb, deps.cfg.Challenge.RedisPrefix, deps.cfg.Challenge.HistoryLimit),
		accounts:   deps.accounts,
		roles:      deps.roles,
		notifier:   deps.notifier,
		codes:      codes,
		metrics:    NewMetrics(deps.cfg.Metrics),
		passwords:  hasher,
	}
}

func newTestJWTManager(t *testing.T, cfg Config) *sjwt.Manager {
	t.Helper()

	manager, err := sjwt.NewManager(sjwt.Config{
		AccessTTL:     cfg.JWT.AccessTTL,
		SigningMethod: sjwt.SigningMethod(cfg.JWT.SigningMethod),
		PrivateKey:    cfg.JWT.PrivateKey,
		PublicKey:     cfg.JWT.PublicKey,
		Issuer:        cfg.JWT.Issuer,
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return manager
}

func registerTestAccount(t *testing.T, engine *Engine, email string) {
	t.Helper()

	out := engine.Register(context.Background(), RegisterRequest{
		Email:    email,
		Username: "alice",
		Password: "correct-horse-battery",
	})
	if out.IsFailure() {
		t.Fatalf("Register failed: %v", out.Failure())
	}
}

func mustFailWithKind[T any](t *testing.T, out Outcome[T], want FailureKind) Failure {
	t.Helper()

	if !out.IsFailure() {
		t.Fatalf("expected failure %v, got success", want)
	}
	failure := out.Failure()
	if failure.Kind != want {
		t.Fatalf("expected failure kind %v, got %v (%s)", want, failure.Kind, failure.Message)
	}
	return failure
}

var errBoom = errors.New("boom")

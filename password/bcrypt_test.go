package password

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHashAndVerify(t *testing.T) {
	hasher, err := NewBcrypt(Config{Cost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("NewBcrypt failed: %v", err)
	}

	hash, err := hasher.Hash("correct-horse-battery")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "correct-horse-battery" {
		t.Fatal("hash must not equal the plaintext")
	}

	ok, err := hasher.Verify(hash, "correct-horse-battery")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !ok {
		t.Fatal("expected match")
	}

	ok, err = hasher.Verify(hash, "wrong-password-1")
	if err != nil {
		t.Fatalf("Verify on mismatch returned error: %v", err)
	}
	if ok {
		t.Fatal("expected mismatch")
	}
}

func TestBcryptDefaultCost(t *testing.T) {
	hasher, err := NewBcrypt(Config{})
	if err != nil {
		t.Fatalf("NewBcrypt failed: %v", err)
	}
	if hasher.Cost() != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", hasher.Cost())
	}
}

func TestBcryptInvalidCost(t *testing.T) {
	if _, err := NewBcrypt(Config{Cost: bcrypt.MaxCost + 1}); !errors.Is(err, ErrInvalidCost) {
		t.Fatalf("expected ErrInvalidCost, got %v", err)
	}
}

func TestBcryptRejectsShortPassword(t *testing.T) {
	hasher, err := NewBcrypt(Config{Cost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("NewBcrypt failed: %v", err)
	}

	if _, err := hasher.Hash("short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestBcryptVerifyGarbageHash(t *testing.T) {
	hasher, err := NewBcrypt(Config{Cost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("NewBcrypt failed: %v", err)
	}

	ok, err := hasher.Verify("not-a-bcrypt-hash", "whatever-password")
	if err == nil {
		t.Fatal("expected error for malformed hash")
	}
	if ok {
		t.Fatal("malformed hash must not verify")
	}
}

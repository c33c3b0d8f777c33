package goSignup

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

const (
	minOTPDigits = 4
	maxOTPDigits = 10
)

// cryptoCodeGenerator is the default [CodeGenerator]. Each digit is drawn
// independently from crypto/rand, so the digit space is uniform and leading
// zeros occur at the natural rate.
type cryptoCodeGenerator struct{}

func (cryptoCodeGenerator) Generate(digits int) (string, error) {
	if digits < minOTPDigits || digits > maxOTPDigits {
		return "", errors.New("invalid otp digits")
	}

	var b strings.Builder
	b.Grow(digits)

	max := big.NewInt(10)
	for i := 0; i < digits; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}

	otp := b.String()
	if len(otp) != digits {
		return "", fmt.Errorf("invalid otp generation length")
	}
	return otp, nil
}

// parseOTPCode converts a generated or submitted digit string into the
// canonical numeric representation. Codes are stored and compared as
// integers, so "001234" and "1234" denote the same challenge.
func parseOTPCode(code string) (int64, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return 0, errors.New("empty otp code")
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return 0, errors.New("otp code contains non-digit characters")
		}
	}
	n, err := strconv.ParseInt(code, 10, 64)
	if err != nil {
		return 0, err
	}
	return n, nil
}

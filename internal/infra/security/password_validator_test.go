package security

import (
	"errors"
	"testing"

	zxcvbn "github.com/nbutton23/zxcvbn-go"
)

func TestRegistrationPasswordValidatorSuccess(t *testing.T) {
	validator := RegistrationPasswordValidator()

	password := "Tr4cking!Orbits#2026"
	if strength := zxcvbn.PasswordStrength(password, nil); strength.Score < registrationMinZxcvbn {
		t.Fatalf("test password unexpectedly weak: score=%d", strength.Score)
	}
	if err := validator.Validate(password); err != nil {
		t.Fatalf("expected password to pass validation, got %v", err)
	}
}

func TestRegistrationPasswordValidatorViolations(t *testing.T) {
	validator := RegistrationPasswordValidator()

	assertViolation := func(password, expectedCode string) {
		t.Helper()
		err := validator.Validate(password)
		if err == nil {
			t.Fatalf("expected validation error for %s", expectedCode)
		}
		var vErr *PasswordValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected PasswordValidationError, got %T", err)
		}
		if vErr.Code != expectedCode {
			t.Fatalf("expected %s code, got %s", expectedCode, vErr.Code)
		}
	}

	assertViolation("Short1", "min_length")
	assertViolation("alllowercase1", "uppercase")
	assertViolation("ALLUPPERCASE1", "lowercase")
	assertViolation("NoDigitsHere", "digit")
	assertViolation("Password123", "weak_password")
}

func TestCustomPasswordValidator(t *testing.T) {
	validator := NewPasswordValidator(
		MinLengthRule(4),
		RequireDigitRule(),
	)

	if err := validator.Validate("ab1"); err == nil {
		t.Fatalf("expected validation error for short password")
	}

	if err := validator.Validate("abcd"); err == nil {
		t.Fatalf("expected validation error for missing digit")
	}

	if err := validator.Validate("abcd1"); err != nil {
		t.Fatalf("expected password to pass custom validation, got %v", err)
	}
}

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidSpacing, "spacing has %d values", 5)

	if err.Code != ErrCodeInvalidSpacing {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidSpacing)
	}

	if err.Message != "spacing has 5 values" {
		t.Errorf("Message = %v, want %v", err.Message, "spacing has 5 values")
	}

	expected := "INVALID_SPACING: spacing has 5 values"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidDocument, cause, "decode layout.toml")

	if err.Code != ErrCodeInvalidDocument {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidDocument)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "INVALID_DOCUMENT: decode layout.toml: unexpected EOF"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidSpacing, "test"),
			code:     ErrCodeInvalidSpacing,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidSpacing, "test"),
			code:     ErrCodeInvalidSize,
			expected: false,
		},
		{
			name:     "wrapped by fmt",
			err:      fmt.Errorf("node root/1: %w", New(ErrCodeInvalidSpacing, "inner")),
			code:     ErrCodeInvalidSpacing,
			expected: true,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeInvalidDocument, New(ErrCodeInvalidSpacing, "inner"), "outer"),
			code:     ErrCodeInvalidDocument,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidSize, "x")); got != ErrCodeInvalidSize {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeInvalidSize)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode() = %v, want empty", got)
	}
}

func TestIsStructural(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"spacing", New(ErrCodeInvalidSpacing, "x"), true},
		{"document", New(ErrCodeInvalidDocument, "x"), true},
		{"size", New(ErrCodeInvalidSize, "x"), true},
		{"format", New(ErrCodeInvalidFormat, "x"), true},
		{"file not found", New(ErrCodeFileNotFound, "x"), false},
		{"internal", New(ErrCodeInternal, "x"), false},
		{"plain", errors.New("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStructural(tt.err); got != tt.want {
				t.Errorf("IsStructural() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "structured error",
			err:      New(ErrCodeInvalidSpacing, "bad spacing value"),
			expected: "bad spacing value",
		},
		{
			name:     "wrapped structured error",
			err:      Wrap(ErrCodeInvalidDocument, New(ErrCodeInvalidSpacing, "bad spacing value"), "node root/0"),
			expected: "node root/0: bad spacing value",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error message"),
			expected: "plain error message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidClue, "clue %d out of range", 9)

	if err.Code != ErrCodeInvalidClue {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidClue)
	}
	if err.Message != "clue 9 out of range" {
		t.Errorf("Message = %v, want %v", err.Message, "clue 9 out of range")
	}

	expected := "INVALID_CLUE: clue 9 out of range"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidFormat, cause, "parse puzzle.toml")

	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFormat)
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
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{name: "MatchingCode", err: New(ErrCodeGameNotFound, "no such game"), code: ErrCodeGameNotFound, want: true},
		{name: "DifferentCode", err: New(ErrCodeGameNotFound, "no such game"), code: ErrCodeInvalidMove, want: false},
		{name: "PlainError", err: errors.New("plain"), code: ErrCodeInternal, want: false},
		{name: "WrappedInFmt", err: fmt.Errorf("context: %w", New(ErrCodeNoSolution, "exhausted")), code: ErrCodeNoSolution, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInternal, "boom")); got != ErrCodeInternal {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeInternal)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidMove, "cell occupied")); got != "cell occupied" {
		t.Errorf("UserMessage = %q, want %q", got, "cell occupied")
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage on plain error = %q, want %q", got, "plain")
	}
}

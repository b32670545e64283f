package errors

import (
	stderrors "errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "unknown output format: %s", "yaml")

	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeInvalidFormat)
	}
	if err.Message != "unknown output format: yaml" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("Cause should be nil")
	}

	want := "INVALID_FORMAT: unknown output format: yaml"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("file does not exist")
	err := Wrap(ErrCodeFileNotFound, cause, "open %s", "graph.json")

	if err.Cause != cause {
		t.Error("Cause should be preserved")
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should unwrap to cause")
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeNodeNotFound, "no node with id %s", "abc")

	if !Is(err, ErrCodeNodeNotFound) {
		t.Error("Is should match the error code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeNodeNotFound) {
		t.Error("Is should not match a non-structured error")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeTypeMismatch, "x")); got != ErrCodeTypeMismatch {
		t.Errorf("GetCode = %s", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %s, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeNodeNotFound, "no node with id abc")
	if UserMessage(err) != "no node with id abc" {
		t.Errorf("UserMessage = %q", UserMessage(err))
	}

	plain := stderrors.New("plain failure")
	if UserMessage(plain) != "plain failure" {
		t.Errorf("UserMessage on plain error = %q", UserMessage(plain))
	}
}

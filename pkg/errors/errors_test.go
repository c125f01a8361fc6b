package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestError_Format(t *testing.T) {
	err := New(ErrCodeInvalidPattern, "pattern %q is empty", "")
	want := `INVALID_PATTERN: pattern "" is empty`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(ErrCodeReportIO, cause, "write report")

	if !stderrors.Is(err, cause) {
		t.Errorf("wrapped error lost its cause")
	}
	if !Is(err, ErrCodeReportIO) {
		t.Errorf("Is() = false for the wrapping code")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidSlicing, "x")); got != ErrCodeInvalidSlicing {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeInvalidSlicing)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode(plain error) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeClasspathNotFound, "missing build/classes")
	if got := UserMessage(err); got != "missing build/classes" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestValidateSlicingName(t *testing.T) {
	if err := ValidateSlicingName("module"); err != nil {
		t.Errorf("ValidateSlicingName(module) = %v, want nil", err)
	}
	for _, bad := range []string{"", "with space", "a/b"} {
		if err := ValidateSlicingName(bad); err == nil {
			t.Errorf("ValidateSlicingName(%q) = nil, want error", bad)
		}
	}
}

func TestValidateClasspathEntry(t *testing.T) {
	if err := ValidateClasspathEntry("build/classes"); err != nil {
		t.Errorf("ValidateClasspathEntry = %v, want nil", err)
	}
	for _, bad := range []string{"", "https://example.com/classes"} {
		if err := ValidateClasspathEntry(bad); err == nil {
			t.Errorf("ValidateClasspathEntry(%q) = nil, want error", bad)
		}
	}
}

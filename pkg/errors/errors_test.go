package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeMissingRoot, "fragment %s has no root", "f1-")

	if err.Code != ErrCodeMissingRoot {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeMissingRoot)
	}

	if err.Message != "fragment f1- has no root" {
		t.Errorf("Message = %v, want %v", err.Message, "fragment f1- has no root")
	}

	expected := "MISSING_ROOT: fragment f1- has no root"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidFragment, cause, "decode fragment")

	if err.Code != ErrCodeInvalidFragment {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFragment)
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

	expected := "INVALID_FRAGMENT: decode fragment: unexpected EOF"
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
			err:      New(ErrCodeMissingRoot, "test"),
			code:     ErrCodeMissingRoot,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeMissingRoot, "test"),
			code:     ErrCodeDanglingEdge,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInternal, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeInternal,
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
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidFragment, "test"),
			expected: ErrCodeInvalidFragment,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
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
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
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

func TestWarning(t *testing.T) {
	w := Warn(ErrCodeDanglingEdge, "edge-a-x", "target %q does not exist", "x")

	if w.Code != ErrCodeDanglingEdge {
		t.Errorf("Code = %v, want %v", w.Code, ErrCodeDanglingEdge)
	}
	expected := `DANGLING_EDGE edge-a-x: target "x" does not exist`
	if w.String() != expected {
		t.Errorf("String() = %v, want %v", w.String(), expected)
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"simple", "A", false},
		{"prefixed", "f1-success", false},
		{"unicode", "knoten-ä", false},
		{"empty", "", true},
		{"control", "a\x00b", true},
		{"newline", "a\nb", true},
		{"leading space", " a", true},
		{"too long", string(make([]byte, maxIDLength+1)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID("node", tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidFragment) {
				t.Errorf("ValidateID(%q) code = %v, want %v", tt.id, GetCode(err), ErrCodeInvalidFragment)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative", "fragments/a.json", false},
		{"absolute", "/tmp/canvas.json", false},
		{"dotfile", "./a.toml", false},
		{"empty", "", true},
		{"traversal", "../secret.json", true},
		{"nested traversal", "a/../../b.json", true},
		{"null byte", "a\x00.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

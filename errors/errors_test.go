package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseRelease,
				Kind:   KindCloseFailed,
				Op:     "native_handle_close",
				Detail: "status -9, want 0",
			},
			contains: []string{"[release]", "close_failed", "in native_handle_close", "status -9"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseTable,
				Kind:  KindNotFound,
			},
			contains: []string{"[table]", "not_found"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseHost,
				Kind:   KindInvalidInput,
				Detail: "bad id",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[host]", "invalid_input", "bad id", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseClone,
		Kind:  KindCloneFailed,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseRelease,
		Kind:  KindDeleteFailed,
		Op:    "native_handle_delete",
	}

	if !err.Is(&Error{Phase: PhaseRelease, Kind: KindDeleteFailed}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseClone, Kind: KindDeleteFailed}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseRelease, Kind: KindCloseFailed}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseRelease, Kind: KindDeleteFailed}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}

	var asErr *Error
	if !errors.As(Wrap(PhaseTable, KindClosed, err, "outer"), &asErr) {
		t.Fatal("errors.As should find *Error")
	}
	if asErr.Phase != PhaseTable {
		t.Errorf("Phase = %v, want %v", asErr.Phase, PhaseTable)
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseRelease, KindCloseFailed).
		Op("native_handle_close").
		Value(-9).
		Cause(cause).
		Detail("status %d, want %d", -9, 0).
		Build()

	if err.Phase != PhaseRelease {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseRelease)
	}
	if err.Kind != KindCloseFailed {
		t.Errorf("Kind = %v, want %v", err.Kind, KindCloseFailed)
	}
	if err.Op != "native_handle_close" {
		t.Errorf("Op = %v, want native_handle_close", err.Op)
	}
	if err.Value != -9 {
		t.Errorf("Value = %v, want -9", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "status -9, want 0" {
		t.Errorf("Detail = %v, want 'status -9, want 0'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("CloneFailed", func(t *testing.T) {
		err := CloneFailed(PhaseClone, "native_handle_clone")
		if err.Kind != KindCloneFailed {
			t.Errorf("Kind = %v, want %v", err.Kind, KindCloneFailed)
		}
		if err.Detail != "native_handle_clone returned null" {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("ReleaseFailed", func(t *testing.T) {
		err := ReleaseFailed(KindDeleteFailed, "native_handle_delete", -22)
		if err.Phase != PhaseRelease || err.Kind != KindDeleteFailed {
			t.Errorf("Phase=%v Kind=%v", err.Phase, err.Kind)
		}
		if err.Value != -22 {
			t.Errorf("Value = %v, want -22", err.Value)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseTable, "handle", uint32(7))
		if err.Kind != KindNotFound {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotFound)
		}
		if !strings.Contains(err.Detail, "7") {
			t.Errorf("Detail = %v, should contain id", err.Detail)
		}
	})

	t.Run("Borrowed", func(t *testing.T) {
		err := Borrowed(PhaseTable, uint32(3), 2)
		if err.Kind != KindBorrowed {
			t.Errorf("Kind = %v, want %v", err.Kind, KindBorrowed)
		}
	})

	t.Run("Exhausted", func(t *testing.T) {
		err := Exhausted(PhaseTable, 8)
		if err.Kind != KindExhausted || err.Value != 8 {
			t.Errorf("Kind=%v Value=%v", err.Kind, err.Value)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseHost, 10, 5)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
		if err.Value != 10 {
			t.Errorf("Value = %v, want 10", err.Value)
		}
	})

	t.Run("Closed", func(t *testing.T) {
		err := Closed(PhaseTable, "table")
		if err.Kind != KindClosed || err.Detail != "table closed" {
			t.Errorf("Kind=%v Detail=%q", err.Kind, err.Detail)
		}
	})

	t.Run("Instantiation", func(t *testing.T) {
		cause := errors.New("module already exists")
		err := Instantiation("env", cause)
		if err.Phase != PhaseHost || err.Kind != KindInstantiation {
			t.Errorf("Phase=%v Kind=%v", err.Phase, err.Kind)
		}
		if !errors.Is(err, cause) {
			t.Error("Instantiation should wrap its cause")
		}
		if !strings.Contains(err.Error(), "instantiate env") {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		err := InvalidInput(PhaseTable, "nil handle")
		if err.Kind != KindInvalidInput {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidInput)
		}
	})
}

func TestHasKind(t *testing.T) {
	inner := Borrowed(PhaseTable, uint32(1), 1)
	outer := Wrap(PhaseHost, KindInvalidInput, inner, "drop")

	if !HasKind(outer, KindInvalidInput) {
		t.Error("HasKind should match the outer kind")
	}
	if !HasKind(outer, KindBorrowed) {
		t.Error("HasKind should match a wrapped kind")
	}
	if HasKind(outer, KindNotFound) {
		t.Error("HasKind should not match an absent kind")
	}
	if HasKind(errors.New("plain"), KindNotFound) {
		t.Error("HasKind should not match a plain error")
	}
	if HasKind(nil, KindNotFound) {
		t.Error("HasKind(nil) should be false")
	}
}

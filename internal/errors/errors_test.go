package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestCodeOf(t *testing.T) {
	t.Run("StructuredError", func(t *testing.T) {
		err := New(CodeDuplicateValue, "already selected", nil)
		if CodeOf(err) != CodeDuplicateValue {
			t.Errorf("expected duplicate_value, got %s", CodeOf(err))
		}
	})

	t.Run("WrappedStructuredError", func(t *testing.T) {
		inner := New(CodeLimitExceeded, "", nil)
		wrapped := fmt.Errorf("add option: %w", inner)
		if CodeOf(wrapped) != CodeLimitExceeded {
			t.Errorf("expected limit_exceeded through wrap, got %s", CodeOf(wrapped))
		}
	})

	t.Run("PlainError", func(t *testing.T) {
		if CodeOf(stderrors.New("boom")) != CodeUnknown {
			t.Error("plain errors should map to unknown")
		}
	})
}

func TestErrorMessage(t *testing.T) {
	t.Run("MessagePreferred", func(t *testing.T) {
		err := New(CodeNotFound, "no such value", stderrors.New("inner"))
		if err.Error() != "no such value" {
			t.Errorf("unexpected message: %s", err.Error())
		}
	})

	t.Run("FallsBackToWrapped", func(t *testing.T) {
		err := New(CodeNotFound, "", stderrors.New("inner"))
		if err.Error() != "inner" {
			t.Errorf("unexpected message: %s", err.Error())
		}
	})

	t.Run("FallsBackToCode", func(t *testing.T) {
		err := New(CodeInvalidRestore, "", nil)
		if err.Error() != "invalid_restore" {
			t.Errorf("unexpected message: %s", err.Error())
		}
	})
}

func TestIsCode(t *testing.T) {
	err := New(CodePersistenceLoadFailed, "db gone", nil)
	if !IsCode(err, CodePersistenceLoadFailed) {
		t.Error("expected IsCode match")
	}
	if IsCode(err, CodeNotFound) {
		t.Error("unexpected IsCode match")
	}
}

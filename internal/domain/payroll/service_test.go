package payroll

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"hrms/internal/domain/employee"
)

func TestPayInfoErrorMapsMissingRecord(t *testing.T) {
	err := payInfoError(fmt.Errorf("lookup: %w", employee.ErrPayInfoNotFound), "jdoe")
	if !errors.Is(err, ErrPayInfoMissing) {
		t.Fatalf("expected ErrPayInfoMissing, got %v", err)
	}
	if !strings.Contains(err.Error(), "jdoe") {
		t.Fatalf("expected the username in the message, got %q", err.Error())
	}
}

func TestPayInfoErrorPassesThroughOtherFailures(t *testing.T) {
	err := payInfoError(context.Canceled, "jdoe")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if errors.Is(err, ErrPayInfoMissing) {
		t.Fatalf("a cancelled lookup must not read as missing pay info, got %v", err)
	}
}

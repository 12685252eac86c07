package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMetadataFor(t *testing.T) {
	if got := MetadataFor(CodeValidation).HTTPStatus; got != http.StatusBadRequest {
		t.Fatalf("validation status = %d", got)
	}
	if got := MetadataFor(CodeFeatureNotReady); got.HTTPStatus != http.StatusServiceUnavailable || got.PublicMessage != "feature is pending setup" {
		t.Fatalf("unexpected feature-not-ready metadata: %+v", got)
	}
	if got := MetadataFor(Code("made-up")).HTTPStatus; got != http.StatusInternalServerError {
		t.Fatalf("unknown code should map to internal, got %d", got)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("broken pipe")
	err := Wrap(CodeDependency, cause, "query orders")
	if !errors.Is(err, cause) {
		t.Fatal("wrapped cause should survive errors.Is")
	}
	if typed := As(fmt.Errorf("outer: %w", err)); typed == nil || typed.Code() != CodeDependency {
		t.Fatalf("As failed to recover typed error: %v", typed)
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeValidation, "bad payload").WithDetails(map[string]string{"qty": "must be positive"})
	details, ok := err.Details().(map[string]string)
	if !ok || details["qty"] != "must be positive" {
		t.Fatalf("unexpected details: %v", err.Details())
	}
}

func TestDumpExtractsPGError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "42P01", TableName: "draft_orders", Message: "relation does not exist"}
	err := Wrap(CodeFeatureNotReady, pgErr, "list drafts")

	d := Dump(err)
	if d.PGCode != "42P01" || d.PGTable != "draft_orders" {
		t.Fatalf("missing pg diagnostics: %+v", d)
	}
	if d.Code != CodeFeatureNotReady {
		t.Fatalf("unexpected code: %s", d.Code)
	}
	if len(d.Chain) < 2 {
		t.Fatalf("expected full chain, got %v", d.Chain)
	}
}

package infra

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsNoRows(t *testing.T) {
	if !IsNoRows(fmt.Errorf("scan donor: %w", pgx.ErrNoRows)) {
		t.Fatal("wrapped ErrNoRows not detected")
	}
	if IsNoRows(fmt.Errorf("boom")) {
		t.Fatal("unexpected match")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert payment: %w", &pgconn.PgError{Code: "23505"})
	if !IsUniqueViolation(err) {
		t.Fatal("unique violation not detected")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("foreign key violation misclassified")
	}
}

func TestIsInvalidText(t *testing.T) {
	err := fmt.Errorf("select donor: %w", &pgconn.PgError{Code: "22P02"})
	if !IsInvalidText(err) {
		t.Fatal("invalid text representation not detected")
	}
	if IsInvalidText(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("unique violation misclassified")
	}
}

package credentials

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"donorbook/internal/domain"
)

type stubExecutor struct {
	user    *domain.StaffUser
	err     error
	execErr error
	tag     pgconn.CommandTag
	exec    struct {
		query string
		args  []any
	}
	rowArgs []any
}

func (s *stubExecutor) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.exec.query = query
	s.exec.args = args
	return s.tag, s.execErr
}

func (s *stubExecutor) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	s.rowArgs = args
	return stubRow{user: s.user, err: s.err}
}

func (s *stubExecutor) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

type stubRow struct {
	user *domain.StaffUser
	err  error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != 6 {
		return errors.New("unexpected dest count")
	}
	*dest[0].(*string) = r.user.ID
	*dest[1].(*string) = r.user.Username
	*dest[2].(*string) = r.user.Name
	*dest[3].(*string) = r.user.Email
	*dest[4].(*string) = r.user.PasswordHash
	*dest[5].(*time.Time) = r.user.CreatedAt
	return nil
}

func TestGetByUsername(t *testing.T) {
	exec := &stubExecutor{user: &domain.StaffUser{ID: "u1", Username: "treasurer", PasswordHash: "h"}}
	store := NewStore(exec)
	user, err := store.GetByUsername(context.Background(), " treasurer ")
	if err != nil {
		t.Fatalf("GetByUsername error: %v", err)
	}
	if user.ID != "u1" || user.PasswordHash != "h" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if got := exec.rowArgs[0]; got != "treasurer" {
		t.Fatalf("username not trimmed: %q", got)
	}
}

func TestGetByUsername_NoRows(t *testing.T) {
	store := NewStore(&stubExecutor{err: pgx.ErrNoRows})
	if _, err := store.GetByUsername(context.Background(), "ghost"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateDuplicate(t *testing.T) {
	store := NewStore(&stubExecutor{execErr: &pgconn.PgError{Code: "23505"}})
	err := store.Create(context.Background(), &domain.StaffUser{ID: "u1", Username: "a"})
	if err != domain.ErrDuplicateUser {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}
}

func TestCreatePassesColumns(t *testing.T) {
	exec := &stubExecutor{}
	store := NewStore(exec)
	if err := store.Create(context.Background(), &domain.StaffUser{ID: "u1", Username: "a", PasswordHash: "hash"}); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if len(exec.exec.args) != 6 {
		t.Fatalf("expected 6 args, got %d", len(exec.exec.args))
	}
	if v, ok := exec.exec.args[4].(string); !ok || v != "hash" {
		t.Fatalf("expected hash argument, got %T %v", exec.exec.args[4], exec.exec.args[4])
	}
}

func TestSetPasswordUnknownUser(t *testing.T) {
	store := NewStore(&stubExecutor{tag: pgconn.NewCommandTag("UPDATE 0")})
	if err := store.SetPassword(context.Background(), "ghost", "h"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !CheckPassword(hash, "correct horse") {
		t.Fatal("expected password to match")
	}
	if CheckPassword(hash, "wrong horse") {
		t.Fatal("expected mismatch")
	}
	if _, err := HashPassword("short"); err != ErrWeakPassword {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

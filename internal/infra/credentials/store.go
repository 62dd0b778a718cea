package credentials

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"donorbook/internal/domain"
	"donorbook/internal/infra"
	"donorbook/internal/sqlinline"
)

const minPasswordLength = 8

var ErrWeakPassword = domain.Invalid(fmt.Sprintf("password must be at least %d characters", minPasswordLength))

// Store keeps staff credentials in Postgres.
type Store struct {
	sql infra.SQLExecutor
}

func NewStore(sql infra.SQLExecutor) *Store {
	return &Store{sql: sql}
}

func (s *Store) Create(ctx context.Context, user *domain.StaffUser) error {
	_, err := s.sql.Exec(ctx, sqlinline.QInsertStaffUser,
		user.ID, user.Username, user.Name, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if infra.IsUniqueViolation(err) {
			return domain.ErrDuplicateUser
		}
		return fmt.Errorf("insert staff user: %w", err)
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*domain.StaffUser, error) {
	return scanUser(s.sql.QueryRow(ctx, sqlinline.QSelectStaffUserByID, id))
}

func (s *Store) GetByUsername(ctx context.Context, username string) (*domain.StaffUser, error) {
	return scanUser(s.sql.QueryRow(ctx, sqlinline.QSelectStaffUserByUsername, strings.TrimSpace(username)))
}

func (s *Store) SetPassword(ctx context.Context, username, passwordHash string) error {
	tag, err := s.sql.Exec(ctx, sqlinline.QUpdateStaffPassword, strings.TrimSpace(username), passwordHash)
	if err != nil {
		return fmt.Errorf("update staff password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.StaffUser, error) {
	var u domain.StaffUser
	if err := row.Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan staff user: %w", err)
	}
	return &u, nil
}

// HashPassword bcrypt-hashes a plaintext password.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var _ domain.UserRepository = (*Store)(nil)

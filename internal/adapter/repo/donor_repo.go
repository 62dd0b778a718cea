package repo

import (
	"context"
	"fmt"

	"donorbook/internal/domain"
	"donorbook/internal/infra"
	"donorbook/internal/sqlinline"
)

// DonorRepositoryPG implements domain.DonorRepository using PostgreSQL.
type DonorRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewDonorRepository creates a new donor repo.
func NewDonorRepository(sql infra.SQLExecutor) *DonorRepositoryPG {
	return &DonorRepositoryPG{sql: sql}
}

func (r *DonorRepositoryPG) Create(ctx context.Context, d *domain.Donor) error {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertDonor, d.ID, d.Name, optionalText(d.Contact), d.MonthlyAmount, d.IsActive, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert donor: %w", err)
	}
	return nil
}

// CreateMany inserts donors one by one and stops at the first failure.
// Callers validate the whole batch beforehand.
func (r *DonorRepositoryPG) CreateMany(ctx context.Context, donors []domain.Donor) (int, error) {
	for i := range donors {
		if err := r.Create(ctx, &donors[i]); err != nil {
			return i, err
		}
	}
	return len(donors), nil
}

func (r *DonorRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Donor, error) {
	d, err := scanDonor(r.sql.QueryRow(ctx, sqlinline.QSelectDonorByID, id))
	if err != nil {
		return nil, notFound(err, domain.ErrDonorNotFound)
	}
	return d, nil
}

func (r *DonorRepositoryPG) List(ctx context.Context) ([]domain.Donor, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListDonors)
	if err != nil {
		return nil, fmt.Errorf("list donors: %w", err)
	}
	return collect(rows, scanDonor)
}

func (r *DonorRepositoryPG) ListActive(ctx context.Context) ([]domain.Donor, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListActiveDonors)
	if err != nil {
		return nil, fmt.Errorf("list active donors: %w", err)
	}
	return collect(rows, scanDonor)
}

func (r *DonorRepositoryPG) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := r.sql.QueryRow(ctx, sqlinline.QCountActiveDonors).Scan(&n); err != nil {
		return 0, fmt.Errorf("count active donors: %w", err)
	}
	return n, nil
}

func (r *DonorRepositoryPG) Update(ctx context.Context, d *domain.Donor) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QUpdateDonor, d.ID, d.Name, optionalText(d.Contact), d.MonthlyAmount, d.IsActive, d.UpdatedAt)
	if err != nil {
		return notFound(fmt.Errorf("update donor: %w", err), domain.ErrDonorNotFound)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDonorNotFound
	}
	return nil
}

// Delete removes the donor; its payments go with it through the foreign key cascade.
func (r *DonorRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteDonor, id)
	if err != nil {
		return notFound(fmt.Errorf("delete donor: %w", err), domain.ErrDonorNotFound)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDonorNotFound
	}
	return nil
}

func optionalText(contact *string) string {
	if contact == nil {
		return ""
	}
	return *contact
}

var _ domain.DonorRepository = (*DonorRepositoryPG)(nil)

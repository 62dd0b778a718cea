package repo

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"donorbook/internal/domain"
	"donorbook/internal/infra"
	"donorbook/internal/sqlinline"
)

// PaymentRepositoryPG implements domain.PaymentRepository using PostgreSQL.
type PaymentRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewPaymentRepository creates a new payment repo.
func NewPaymentRepository(sql infra.SQLExecutor) *PaymentRepositoryPG {
	return &PaymentRepositoryPG{sql: sql}
}

func (r *PaymentRepositoryPG) Create(ctx context.Context, p *domain.MonthlyPayment) error {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertPayment,
		p.ID, p.DonorID, p.Month.String(), p.Amount, string(p.Status), p.PaidAt, p.CreatedAt)
	if err != nil {
		if infra.IsUniqueViolation(err) {
			return domain.ErrDuplicatePayment
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepositoryPG) InsertIfAbsent(ctx context.Context, p *domain.MonthlyPayment) (bool, error) {
	tag, err := r.sql.Exec(ctx, sqlinline.QInsertPaymentIfAbsent,
		p.ID, p.DonorID, p.Month.String(), p.Amount, string(p.Status), p.PaidAt, p.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("insert payment if absent: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PaymentRepositoryPG) GetByID(ctx context.Context, id string) (*domain.MonthlyPayment, error) {
	p, err := scanPayment(r.sql.QueryRow(ctx, sqlinline.QSelectPaymentByID, id))
	if err != nil {
		return nil, notFound(err, domain.ErrPaymentNotFound)
	}
	return p, nil
}

func (r *PaymentRepositoryPG) GetByDonorAndMonth(ctx context.Context, donorID string, month domain.Month) (*domain.MonthlyPayment, error) {
	p, err := scanPayment(r.sql.QueryRow(ctx, sqlinline.QSelectPaymentByDonorMonth, donorID, month.String()))
	if err != nil {
		return nil, notFound(err, domain.ErrPaymentNotFound)
	}
	return p, nil
}

func (r *PaymentRepositoryPG) ListByMonth(ctx context.Context, month domain.Month) ([]domain.MonthlyPayment, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListPaymentsByMonth, month.String())
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return collect(rows, scanPayment)
}

func (r *PaymentRepositoryPG) LastPaidByDonor(ctx context.Context) (map[string]domain.MonthlyPayment, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QLastPaidByDonor)
	if err != nil {
		return nil, fmt.Errorf("last paid by donor: %w", err)
	}
	items, err := collect(rows, scanPayment)
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.MonthlyPayment, len(items))
	for _, p := range items {
		out[p.DonorID] = p
	}
	return out, nil
}

func (r *PaymentRepositoryPG) LastPaidInMonth(ctx context.Context, month domain.Month) (*domain.MonthlyPayment, error) {
	p, err := scanPayment(r.sql.QueryRow(ctx, sqlinline.QLastPaidInMonth, month.String()))
	if err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return p, nil
}

func (r *PaymentRepositoryPG) Update(ctx context.Context, p *domain.MonthlyPayment) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QUpdatePayment, p.ID, p.Amount, string(p.Status), p.PaidAt, p.UpdatedAt)
	if err != nil {
		return notFound(fmt.Errorf("update payment: %w", err), domain.ErrPaymentNotFound)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepositoryPG) SumPaidByMonth(ctx context.Context, month domain.Month) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.sql.QueryRow(ctx, sqlinline.QSumPaidByMonth, month.String()).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum paid by month: %w", err)
	}
	return total, nil
}

func (r *PaymentRepositoryPG) CountByMonthAndStatus(ctx context.Context, month domain.Month, status domain.PaymentStatus) (int, error) {
	var n int
	if err := r.sql.QueryRow(ctx, sqlinline.QCountPaymentsByMonthStatus, month.String(), string(status)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count payments: %w", err)
	}
	return n, nil
}

func (r *PaymentRepositoryPG) PaidDonorIDs(ctx context.Context, month domain.Month) ([]string, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QPaidDonorIDs, month.String())
	if err != nil {
		return nil, fmt.Errorf("paid donor ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PaymentRepositoryPG) SumAllPaid(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.sql.QueryRow(ctx, sqlinline.QSumAllPaid).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum all paid: %w", err)
	}
	return total, nil
}

var _ domain.PaymentRepository = (*PaymentRepositoryPG)(nil)

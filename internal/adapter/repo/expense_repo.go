package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"donorbook/internal/domain"
	"donorbook/internal/infra"
	"donorbook/internal/sqlinline"
)

// ExpenseRepositoryPG implements domain.ExpenseRepository using PostgreSQL.
type ExpenseRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewExpenseRepository creates a new expense repo.
func NewExpenseRepository(sql infra.SQLExecutor) *ExpenseRepositoryPG {
	return &ExpenseRepositoryPG{sql: sql}
}

func (r *ExpenseRepositoryPG) Create(ctx context.Context, e *domain.Expense) error {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertExpense,
		e.ID, e.Title, optionalText(e.Description), e.Amount, e.Category, e.Date, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	e, err := scanExpense(r.sql.QueryRow(ctx, sqlinline.QSelectExpenseByID, id))
	if err != nil {
		return nil, notFound(err, domain.ErrExpenseNotFound)
	}
	return e, nil
}

func (r *ExpenseRepositoryPG) List(ctx context.Context) ([]domain.Expense, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListExpenses)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return collect(rows, scanExpense)
}

func (r *ExpenseRepositoryPG) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Expense, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListExpensesBetween, from, to)
	if err != nil {
		return nil, fmt.Errorf("list expenses between: %w", err)
	}
	return collect(rows, scanExpense)
}

func (r *ExpenseRepositoryPG) ListPage(ctx context.Context, filter domain.ExpenseFilter) (*domain.ExpensePage, error) {
	var from, to *time.Time
	if rng, ok := filter.Range(); ok {
		from, to = &rng.From, &rng.To
	}

	page := &domain.ExpensePage{Page: filter.Page, PageSize: filter.PageSize}
	if err := r.sql.QueryRow(ctx, sqlinline.QExpensesPageTotals, from, to).Scan(&page.Total, &page.TotalAmount); err != nil {
		return nil, fmt.Errorf("expense page totals: %w", err)
	}

	rows, err := r.sql.Query(ctx, sqlinline.QListExpensesPage, from, to, filter.PageSize, filter.Offset())
	if err != nil {
		return nil, fmt.Errorf("list expense page: %w", err)
	}
	items, err := collect(rows, scanExpense)
	if err != nil {
		return nil, err
	}
	page.Items = items
	return page, nil
}

func (r *ExpenseRepositoryPG) Update(ctx context.Context, e *domain.Expense) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QUpdateExpense,
		e.ID, e.Title, optionalText(e.Description), e.Amount, e.Category, e.Date, e.UpdatedAt)
	if err != nil {
		return notFound(fmt.Errorf("update expense: %w", err), domain.ErrExpenseNotFound)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func (r *ExpenseRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteExpense, id)
	if err != nil {
		return notFound(fmt.Errorf("delete expense: %w", err), domain.ErrExpenseNotFound)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func (r *ExpenseRepositoryPG) SumBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.sql.QueryRow(ctx, sqlinline.QSumExpensesBetween, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum expenses: %w", err)
	}
	return total, nil
}

func (r *ExpenseRepositoryPG) SumAll(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.sql.QueryRow(ctx, sqlinline.QSumAllExpenses).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum all expenses: %w", err)
	}
	return total, nil
}

var _ domain.ExpenseRepository = (*ExpenseRepositoryPG)(nil)

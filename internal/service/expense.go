package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"donorbook/internal/domain"
	"donorbook/internal/infra"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100

	// maxOffset keeps the skipped row count inside the int4 bound parameter.
	maxOffset = math.MaxInt32
)

// Categories is the closed set of expense categories, matched case-insensitively.
type Categories struct {
	canonical map[string]string
	names     []string
}

// NewCategories builds the set; an empty list falls back to the defaults.
func NewCategories(names []string) Categories {
	if len(names) == 0 {
		names = domain.DefaultExpenseCategories
	}
	c := Categories{canonical: make(map[string]string, len(names))}
	fold := cases.Fold()
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		key := fold.String(n)
		if _, dup := c.canonical[key]; dup {
			continue
		}
		c.canonical[key] = n
		c.names = append(c.names, n)
	}
	return c
}

// Normalize returns the canonical spelling of name.
func (c Categories) Normalize(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrCategoryRequired
	}
	canonical, ok := c.canonical[cases.Fold().String(name)]
	if !ok {
		return "", domain.ErrInvalidCategory
	}
	return canonical, nil
}

// Names lists the categories in configured order.
func (c Categories) Names() []string {
	return append([]string(nil), c.names...)
}

// ExpenseService validates and stores expenses.
type ExpenseService struct {
	expenses   domain.ExpenseRepository
	categories Categories
	events     emitter
	now        func() time.Time
	logger     infra.Logger
}

func NewExpenseService(d Deps, categories Categories) *ExpenseService {
	return &ExpenseService{
		expenses:   d.Expenses,
		categories: categories,
		events:     newEmitter(d),
		now:        d.clock(),
		logger:     d.Logger,
	}
}

// Categories exposes the configured category set.
func (s *ExpenseService) Categories() []string {
	return s.categories.Names()
}

func (s *ExpenseService) List(ctx context.Context) ([]domain.Expense, error) {
	return s.expenses.List(ctx)
}

// ListByMonth returns expenses dated inside the month window.
func (s *ExpenseService) ListByMonth(ctx context.Context, month string) ([]domain.Expense, error) {
	m, err := domain.ParseMonth(month)
	if err != nil {
		return nil, err
	}
	from, to := m.Window()
	return s.expenses.ListBetween(ctx, from, to)
}

// ListPaged returns one page plus totals over the whole filter.
func (s *ExpenseService) ListPaged(ctx context.Context, filter domain.ExpenseFilter) (*domain.ExpensePage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	switch {
	case filter.PageSize < 1:
		filter.PageSize = defaultPageSize
	case filter.PageSize > maxPageSize:
		filter.PageSize = maxPageSize
	}
	if filter.Page-1 > maxOffset/filter.PageSize {
		return nil, domain.ErrPageOutOfRange
	}
	if filter.Month != 0 && (filter.Year == 0 || filter.Month < 1 || filter.Month > 12) {
		return nil, domain.ErrInvalidMonth
	}
	return s.expenses.ListPage(ctx, filter)
}

func (s *ExpenseService) Get(ctx context.Context, id string) (*domain.Expense, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrIDRequired
	}
	return s.expenses.GetByID(ctx, id)
}

// Create records an expense dated on the calendar day of in.Date.
func (s *ExpenseService) Create(ctx context.Context, in domain.ExpenseInput) (*domain.Expense, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrTitleRequired
	}
	if err := domain.ValidateAmount(in.Amount); err != nil {
		return nil, err
	}
	category, err := s.categories.Normalize(in.Category)
	if err != nil {
		return nil, err
	}
	if in.Date.IsZero() {
		return nil, domain.ErrInvalidDate
	}

	now := s.now()
	e := &domain.Expense{
		ID:          uuid.NewString(),
		Title:       title,
		Description: optional(in.Description),
		Amount:      in.Amount,
		Category:    category,
		Date:        calendarDate(in.Date),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.expenses.Create(ctx, e); err != nil {
		return nil, err
	}
	s.logger.Info().Str("expense_id", e.ID).Str("category", category).Msg("expense recorded")
	s.events.emit(ctx, domain.EventExpenseCreated, e)
	return e, nil
}

// Update applies a partial update.
func (s *ExpenseService) Update(ctx context.Context, id string, patch domain.ExpensePatch) (*domain.Expense, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, domain.ErrTitleRequired
		}
		e.Title = title
	}
	if patch.Description != nil {
		e.Description = optional(*patch.Description)
	}
	if patch.Amount != nil {
		if err := domain.ValidateAmount(*patch.Amount); err != nil {
			return nil, err
		}
		e.Amount = *patch.Amount
	}
	if patch.Category != nil {
		category, err := s.categories.Normalize(*patch.Category)
		if err != nil {
			return nil, err
		}
		e.Category = category
	}
	if patch.Date != nil {
		if patch.Date.IsZero() {
			return nil, domain.ErrInvalidDate
		}
		e.Date = calendarDate(*patch.Date)
	}
	e.UpdatedAt = s.now()

	if err := s.expenses.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrIDRequired
	}
	return s.expenses.Delete(ctx, id)
}

// calendarDate keeps the date as written and drops the clock.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Package memory keeps every repository in process memory. It backs the
// memory data backend and the service tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"donorbook/internal/domain"
)

// Store holds donors, payments, expenses and staff users behind one lock so
// cascading deletes stay consistent.
type Store struct {
	mu       sync.RWMutex
	donors   map[string]domain.Donor
	payments map[string]domain.MonthlyPayment
	expenses map[string]domain.Expense
	users    map[string]domain.StaffUser
}

func NewStore() *Store {
	return &Store{
		donors:   make(map[string]domain.Donor),
		payments: make(map[string]domain.MonthlyPayment),
		expenses: make(map[string]domain.Expense),
		users:    make(map[string]domain.StaffUser),
	}
}

// Donors returns the store's donor repository view.
func (s *Store) Donors() *DonorRepository { return &DonorRepository{s} }

// Payments returns the store's payment repository view.
func (s *Store) Payments() *PaymentRepository { return &PaymentRepository{s} }

// Expenses returns the store's expense repository view.
func (s *Store) Expenses() *ExpenseRepository { return &ExpenseRepository{s} }

// Users returns the store's staff user repository view.
func (s *Store) Users() *UserRepository { return &UserRepository{s} }

type DonorRepository struct{ s *Store }

func (r *DonorRepository) Create(ctx context.Context, d *domain.Donor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.donors[d.ID] = *d
	return nil
}

func (r *DonorRepository) CreateMany(ctx context.Context, donors []domain.Donor) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range donors {
		r.s.donors[d.ID] = d
	}
	return len(donors), nil
}

func (r *DonorRepository) GetByID(ctx context.Context, id string) (*domain.Donor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.donors[id]
	if !ok {
		return nil, domain.ErrDonorNotFound
	}
	return &d, nil
}

func (r *DonorRepository) List(ctx context.Context) ([]domain.Donor, error) {
	return r.list(false), nil
}

func (r *DonorRepository) ListActive(ctx context.Context) ([]domain.Donor, error) {
	return r.list(true), nil
}

func (r *DonorRepository) list(activeOnly bool) []domain.Donor {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Donor, 0, len(r.s.donors))
	for _, d := range r.s.donors {
		if activeOnly && !d.IsActive {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *DonorRepository) CountActive(ctx context.Context) (int, error) {
	return len(r.list(true)), nil
}

func (r *DonorRepository) Update(ctx context.Context, d *domain.Donor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.donors[d.ID]; !ok {
		return domain.ErrDonorNotFound
	}
	r.s.donors[d.ID] = *d
	return nil
}

// Delete removes the donor and cascades to its payments.
func (r *DonorRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.donors[id]; !ok {
		return domain.ErrDonorNotFound
	}
	delete(r.s.donors, id)
	for pid, p := range r.s.payments {
		if p.DonorID == id {
			delete(r.s.payments, pid)
		}
	}
	return nil
}

type PaymentRepository struct{ s *Store }

// findLocked returns the payment for (donor, month). Callers hold mu.
func (r *PaymentRepository) findLocked(donorID string, month domain.Month) (domain.MonthlyPayment, bool) {
	for _, p := range r.s.payments {
		if p.DonorID == donorID && p.Month == month {
			return p, true
		}
	}
	return domain.MonthlyPayment{}, false
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.MonthlyPayment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.findLocked(p.DonorID, p.Month); ok {
		return domain.ErrDuplicatePayment
	}
	r.s.payments[p.ID] = *p
	return nil
}

func (r *PaymentRepository) InsertIfAbsent(ctx context.Context, p *domain.MonthlyPayment) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.findLocked(p.DonorID, p.Month); ok {
		return false, nil
	}
	r.s.payments[p.ID] = *p
	return true, nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.MonthlyPayment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.payments[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	return &p, nil
}

func (r *PaymentRepository) GetByDonorAndMonth(ctx context.Context, donorID string, month domain.Month) (*domain.MonthlyPayment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.findLocked(donorID, month)
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	return &p, nil
}

func (r *PaymentRepository) filter(keep func(domain.MonthlyPayment) bool) []domain.MonthlyPayment {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.MonthlyPayment, 0)
	for _, p := range r.s.payments {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func (r *PaymentRepository) ListByMonth(ctx context.Context, month domain.Month) ([]domain.MonthlyPayment, error) {
	out := r.filter(func(p domain.MonthlyPayment) bool { return p.Month == month })
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *PaymentRepository) LastPaidByDonor(ctx context.Context) (map[string]domain.MonthlyPayment, error) {
	out := make(map[string]domain.MonthlyPayment)
	for _, p := range r.filter(domain.MonthlyPayment.IsPaid) {
		cur, ok := out[p.DonorID]
		if !ok || monthAfter(p.Month, cur.Month) {
			out[p.DonorID] = p
		}
	}
	return out, nil
}

func (r *PaymentRepository) LastPaidInMonth(ctx context.Context, month domain.Month) (*domain.MonthlyPayment, error) {
	var best *domain.MonthlyPayment
	for _, p := range r.filter(func(p domain.MonthlyPayment) bool { return p.Month == month && p.IsPaid() && p.PaidAt != nil }) {
		p := p
		if best == nil || p.PaidAt.After(*best.PaidAt) {
			best = &p
		}
	}
	if best == nil {
		return nil, domain.ErrNotFound
	}
	return best, nil
}

func (r *PaymentRepository) Update(ctx context.Context, p *domain.MonthlyPayment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.payments[p.ID]; !ok {
		return domain.ErrPaymentNotFound
	}
	r.s.payments[p.ID] = *p
	return nil
}

func (r *PaymentRepository) SumPaidByMonth(ctx context.Context, month domain.Month) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range r.filter(func(p domain.MonthlyPayment) bool { return p.Month == month && p.IsPaid() }) {
		total = total.Add(p.Amount)
	}
	return total, nil
}

func (r *PaymentRepository) CountByMonthAndStatus(ctx context.Context, month domain.Month, status domain.PaymentStatus) (int, error) {
	return len(r.filter(func(p domain.MonthlyPayment) bool { return p.Month == month && p.Status == status })), nil
}

func (r *PaymentRepository) PaidDonorIDs(ctx context.Context, month domain.Month) ([]string, error) {
	paid := r.filter(func(p domain.MonthlyPayment) bool { return p.Month == month && p.IsPaid() })
	ids := make([]string, 0, len(paid))
	for _, p := range paid {
		ids = append(ids, p.DonorID)
	}
	return ids, nil
}

func (r *PaymentRepository) SumAllPaid(ctx context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range r.filter(domain.MonthlyPayment.IsPaid) {
		total = total.Add(p.Amount)
	}
	return total, nil
}

func monthAfter(a, b domain.Month) bool {
	if a.Year != b.Year {
		return a.Year > b.Year
	}
	return a.Month > b.Month
}

type ExpenseRepository struct{ s *Store }

func (r *ExpenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.expenses[e.ID] = *e
	return nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.expenses[id]
	if !ok {
		return nil, domain.ErrExpenseNotFound
	}
	return &e, nil
}

func (r *ExpenseRepository) between(from, to *time.Time) []domain.Expense {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Expense, 0)
	for _, e := range r.s.expenses {
		if from != nil && e.Date.Before(*from) {
			continue
		}
		if to != nil && e.Date.After(*to) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *ExpenseRepository) List(ctx context.Context) ([]domain.Expense, error) {
	return r.between(nil, nil), nil
}

func (r *ExpenseRepository) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Expense, error) {
	return r.between(&from, &to), nil
}

func (r *ExpenseRepository) ListPage(ctx context.Context, filter domain.ExpenseFilter) (*domain.ExpensePage, error) {
	var all []domain.Expense
	if rng, ok := filter.Range(); ok {
		all = r.between(&rng.From, &rng.To)
	} else {
		all = r.between(nil, nil)
	}

	page := &domain.ExpensePage{Total: len(all), TotalAmount: decimal.Zero, Page: filter.Page, PageSize: filter.PageSize}
	for _, e := range all {
		page.TotalAmount = page.TotalAmount.Add(e.Amount)
	}
	start := min(filter.Offset(), len(all))
	end := min(start+filter.PageSize, len(all))
	page.Items = append(make([]domain.Expense, 0, end-start), all[start:end]...)
	return page, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, e *domain.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.expenses[e.ID]; !ok {
		return domain.ErrExpenseNotFound
	}
	r.s.expenses[e.ID] = *e
	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.expenses[id]; !ok {
		return domain.ErrExpenseNotFound
	}
	delete(r.s.expenses, id)
	return nil
}

func (r *ExpenseRepository) SumBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range r.between(&from, &to) {
		total = total.Add(e.Amount)
	}
	return total, nil
}

func (r *ExpenseRepository) SumAll(ctx context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range r.between(nil, nil) {
		total = total.Add(e.Amount)
	}
	return total, nil
}

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(ctx context.Context, u *domain.StaffUser) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Username, u.Username) {
			return domain.ErrDuplicateUser
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.StaffUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.StaffUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Username, strings.TrimSpace(username)) {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *UserRepository) SetPassword(ctx context.Context, username, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, u := range r.s.users {
		if strings.EqualFold(u.Username, strings.TrimSpace(username)) {
			u.PasswordHash = passwordHash
			r.s.users[id] = u
			return nil
		}
	}
	return domain.ErrNotFound
}

var (
	_ domain.DonorRepository   = (*DonorRepository)(nil)
	_ domain.PaymentRepository = (*PaymentRepository)(nil)
	_ domain.ExpenseRepository = (*ExpenseRepository)(nil)
	_ domain.UserRepository    = (*UserRepository)(nil)
)

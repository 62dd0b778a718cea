package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"donorbook/internal/domain"
	"donorbook/internal/infra"
)

// PaymentService owns the monthly payment lifecycle.
type PaymentService struct {
	donors   domain.DonorRepository
	payments domain.PaymentRepository
	events   emitter
	now      func() time.Time
	logger   infra.Logger
}

func NewPaymentService(d Deps) *PaymentService {
	return &PaymentService{
		donors:   d.Donors,
		payments: d.Payments,
		events:   newEmitter(d),
		now:      d.clock(),
		logger:   d.Logger,
	}
}

// CurrentMonth is the month containing now in the configured location.
func (s *PaymentService) CurrentMonth() domain.Month {
	return domain.MonthOf(s.now())
}

// CreatePayment records an ad hoc payment for one donor and month.
func (s *PaymentService) CreatePayment(ctx context.Context, in domain.CreatePaymentInput) (*domain.MonthlyPayment, error) {
	donorID := strings.TrimSpace(in.DonorID)
	if donorID == "" {
		return nil, domain.ErrDonorIDRequired
	}
	month, err := domain.ParseMonth(in.Month)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(in.Amount); err != nil {
		return nil, err
	}
	status := domain.PaymentStatusUnpaid
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		status = *in.Status
	}

	if _, err := s.donors.GetByID(ctx, donorID); err != nil {
		return nil, err
	}
	existing, err := s.payments.GetByDonorAndMonth(ctx, donorID, month)
	switch {
	case err == nil && existing != nil:
		return nil, domain.ErrDuplicatePayment
	case err != nil && !errors.Is(err, domain.ErrPaymentNotFound):
		return nil, fmt.Errorf("check existing payment: %w", err)
	}

	now := s.now()
	p := &domain.MonthlyPayment{
		ID:        uuid.NewString(),
		DonorID:   donorID,
		Month:     month,
		Amount:    in.Amount,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if status == domain.PaymentStatusPaid {
		p.PaidAt = &now
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info().Str("payment_id", p.ID).Str("donor_id", donorID).Str("month", month.String()).Msg("payment created")
	s.events.emit(ctx, domain.EventPaymentCreated, p)
	return p, nil
}

// UpdatePayment applies a partial update. A status transition stamps or
// clears PaidAt; re-supplying the current status leaves it untouched.
func (s *PaymentService) UpdatePayment(ctx context.Context, id string, patch domain.PaymentPatch) (*domain.MonthlyPayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrIDRequired
	}
	if patch.Amount != nil {
		if err := domain.ValidateAmount(*patch.Amount); err != nil {
			return nil, err
		}
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	p, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if patch.Amount != nil {
		p.Amount = *patch.Amount
	}
	if patch.Status != nil {
		p.ApplyStatus(*patch.Status, now)
	}
	p.UpdatedAt = now

	if err := s.payments.Update(ctx, p); err != nil {
		return nil, err
	}
	s.events.emit(ctx, domain.EventPaymentUpdated, p)
	return p, nil
}

// MarkAsPaid moves an UNPAID payment to PAID.
func (s *PaymentService) MarkAsPaid(ctx context.Context, id string) (*domain.MonthlyPayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrIDRequired
	}
	p, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsPaid() {
		return nil, domain.ErrAlreadyPaid
	}

	now := s.now()
	p.ApplyStatus(domain.PaymentStatusPaid, now)
	p.UpdatedAt = now
	if err := s.payments.Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info().Str("payment_id", p.ID).Str("month", p.Month.String()).Msg("payment marked as paid")
	s.events.emit(ctx, domain.EventPaymentPaid, p)
	return p, nil
}

// GenerateMonthlyPayments creates an UNPAID payment at the pledged amount for
// every active donor lacking one for the month.
func (s *PaymentService) GenerateMonthlyPayments(ctx context.Context, month string) (*domain.GenerateResult, error) {
	m, err := domain.ParseMonth(month)
	if err != nil {
		return nil, err
	}
	return s.Generate(ctx, m)
}

// Generate is GenerateMonthlyPayments for an already parsed month.
func (s *PaymentService) Generate(ctx context.Context, month domain.Month) (*domain.GenerateResult, error) {
	donors, err := s.donors.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active donors: %w", err)
	}
	if len(donors) == 0 {
		return nil, domain.ErrNoActiveDonors
	}

	now := s.now()
	created := 0
	for _, d := range donors {
		inserted, err := s.payments.InsertIfAbsent(ctx, &domain.MonthlyPayment{
			ID:        uuid.NewString(),
			DonorID:   d.ID,
			Month:     month,
			Amount:    d.MonthlyAmount,
			Status:    domain.PaymentStatusUnpaid,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return nil, fmt.Errorf("generate payment for donor %s: %w", d.ID, err)
		}
		if inserted {
			created++
		}
	}

	res := &domain.GenerateResult{Month: month, Count: created}
	s.logger.Info().Str("month", month.String()).Int("created", created).Int("active_donors", len(donors)).Msg("monthly payments generated")
	s.events.emit(ctx, domain.EventPaymentsGenerated, res)
	return res, nil
}

// DonorsWithPaymentStatus pairs every active donor with its payment for the
// month, or nil when none exists.
func (s *PaymentService) DonorsWithPaymentStatus(ctx context.Context, month string) ([]domain.DonorPaymentStatus, error) {
	m, err := domain.ParseMonth(month)
	if err != nil {
		return nil, err
	}
	return s.StatusForMonth(ctx, m)
}

// StatusForMonth is DonorsWithPaymentStatus for an already parsed month.
func (s *PaymentService) StatusForMonth(ctx context.Context, month domain.Month) ([]domain.DonorPaymentStatus, error) {
	donors, err := s.donors.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active donors: %w", err)
	}
	payments, err := s.payments.ListByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	byDonor := make(map[string]domain.MonthlyPayment, len(payments))
	for _, p := range payments {
		byDonor[p.DonorID] = p
	}

	out := make([]domain.DonorPaymentStatus, 0, len(donors))
	for _, d := range donors {
		row := domain.DonorPaymentStatus{Donor: domain.DonorSummary{
			ID:            d.ID,
			Name:          d.Name,
			Contact:       d.Contact,
			MonthlyAmount: d.MonthlyAmount,
		}}
		if p, ok := byDonor[d.ID]; ok {
			row.Payment = &p
		}
		out = append(out, row)
	}
	return out, nil
}

// PaymentsByMonth lists the month's payment rows, largest amount first.
func (s *PaymentService) PaymentsByMonth(ctx context.Context, month string) ([]domain.MonthlyPayment, error) {
	m, err := domain.ParseMonth(month)
	if err != nil {
		return nil, err
	}
	return s.payments.ListByMonth(ctx, m)
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"donorbook/internal/domain"
	"donorbook/internal/infra"
)

// DonorService validates and stores donors.
type DonorService struct {
	donors   domain.DonorRepository
	payments domain.PaymentRepository
	now      func() time.Time
	logger   infra.Logger
}

func NewDonorService(d Deps) *DonorService {
	return &DonorService{donors: d.Donors, payments: d.Payments, now: d.clock(), logger: d.Logger}
}

func (s *DonorService) List(ctx context.Context) ([]domain.Donor, error) {
	return s.donors.List(ctx)
}

// ListWithLastPayment pairs every donor with its latest PAID payment by month.
func (s *DonorService) ListWithLastPayment(ctx context.Context) ([]domain.DonorWithLastPayment, error) {
	donors, err := s.donors.List(ctx)
	if err != nil {
		return nil, err
	}
	last, err := s.payments.LastPaidByDonor(ctx)
	if err != nil {
		return nil, fmt.Errorf("last paid by donor: %w", err)
	}
	out := make([]domain.DonorWithLastPayment, 0, len(donors))
	for _, d := range donors {
		row := domain.DonorWithLastPayment{Donor: d}
		if p, ok := last[d.ID]; ok {
			row.LastPayment = &domain.LastPayment{Month: p.Month, PaidAt: p.PaidAt}
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *DonorService) Get(ctx context.Context, id string) (*domain.Donor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrIDRequired
	}
	return s.donors.GetByID(ctx, id)
}

// Create registers an active donor.
func (s *DonorService) Create(ctx context.Context, in domain.DonorInput) (*domain.Donor, error) {
	d, err := s.build(in)
	if err != nil {
		return nil, err
	}
	if err := s.donors.Create(ctx, d); err != nil {
		return nil, err
	}
	s.logger.Info().Str("donor_id", d.ID).Msg("donor created")
	return d, nil
}

// CreateBulk validates the whole batch before inserting anything. Errors
// name the 1-based row at fault.
func (s *DonorService) CreateBulk(ctx context.Context, in []domain.DonorInput) (int, error) {
	if len(in) == 0 {
		return 0, domain.ErrEmptyBatch
	}
	donors := make([]domain.Donor, 0, len(in))
	for i, row := range in {
		d, err := s.build(row)
		if err != nil {
			return 0, domain.Invalid(fmt.Sprintf("donor %d: %s", i+1, err.Error()))
		}
		donors = append(donors, *d)
	}
	n, err := s.donors.CreateMany(ctx, donors)
	if err != nil {
		return n, fmt.Errorf("bulk create donors: %w", err)
	}
	s.logger.Info().Int("count", n).Msg("donors imported")
	return n, nil
}

func (s *DonorService) build(in domain.DonorInput) (*domain.Donor, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if err := domain.ValidateAmount(in.MonthlyAmount); err != nil {
		return nil, err
	}
	now := s.now()
	return &domain.Donor{
		ID:            uuid.NewString(),
		Name:          name,
		Contact:       optional(in.Contact),
		MonthlyAmount: in.MonthlyAmount,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Update applies a partial update; an empty contact clears it.
func (s *DonorService) Update(ctx context.Context, id string, patch domain.DonorPatch) (*domain.Donor, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, domain.ErrNameRequired
		}
		d.Name = name
	}
	if patch.MonthlyAmount != nil {
		if err := domain.ValidateAmount(*patch.MonthlyAmount); err != nil {
			return nil, err
		}
		d.MonthlyAmount = *patch.MonthlyAmount
	}
	if patch.Contact != nil {
		d.Contact = optional(*patch.Contact)
	}
	if patch.IsActive != nil {
		d.IsActive = *patch.IsActive
	}
	d.UpdatedAt = s.now()

	if err := s.donors.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes the donor together with its payments.
func (s *DonorService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrIDRequired
	}
	if err := s.donors.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("donor_id", id).Msg("donor deleted")
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

package notify

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/jordan-wright/email"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donorbook/internal/domain"
	"donorbook/internal/infra"
)

func sampleStatement() Statement {
	month := domain.Month{Year: 2024, Month: time.April}
	paidAt := time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC)
	return Statement{
		Organization: "Hope House",
		Stats: domain.MonthlyStats{
			Month:             month,
			TotalDonations:    decimal.NewFromInt(1250),
			TotalExpenses:     decimal.RequireFromString("300.5"),
			NetBalance:        decimal.RequireFromString("949.5"),
			PaidCount:         1,
			UnpaidDonorsCount: 2,
		},
		Donors: []domain.DonorPaymentStatus{
			{
				Donor:   domain.DonorSummary{ID: "d1", Name: "Alice", MonthlyAmount: decimal.NewFromInt(1250)},
				Payment: &domain.MonthlyPayment{Status: domain.PaymentStatusPaid, PaidAt: &paidAt},
			},
			{Donor: domain.DonorSummary{ID: "d2", Name: "Bob", MonthlyAmount: decimal.NewFromInt(50)}},
			{
				Donor:   domain.DonorSummary{ID: "d3", Name: "Carol", MonthlyAmount: decimal.NewFromInt(2000)},
				Payment: &domain.MonthlyPayment{Status: domain.PaymentStatusUnpaid},
			},
		},
		Expenses: []domain.Expense{{
			Title:    "Rent",
			Category: "Rent",
			Amount:   decimal.RequireFromString("300.5"),
			Date:     time.Date(2024, time.April, 5, 0, 0, 0, 0, time.UTC),
		}},
	}
}

func TestStatementRender(t *testing.T) {
	st := sampleStatement()
	body := string(st.Render())

	assert.Equal(t, "Hope House statement for 2024-04", st.Subject())
	assert.Contains(t, body, "Donations received: 1,250.00")
	assert.Contains(t, body, "Net balance:        949.50")
	assert.Contains(t, body, "Unpaid donors:      2")
	assert.Contains(t, body, "2024-04-05 Rent [Rent] 300.50")
	assert.NotContains(t, body, "Alice (")

	carol := strings.Index(body, "Carol (2,000.00)")
	bob := strings.Index(body, "Bob (50.00)")
	require.True(t, carol >= 0 && bob >= 0, body)
	assert.Less(t, carol, bob)
}

func TestNewMailerRequiresSMTP(t *testing.T) {
	_, err := NewMailer(&infra.Config{}, zerolog.Nop())
	require.Error(t, err)
}

func TestSendStatement(t *testing.T) {
	cfg := &infra.Config{
		SMTPHost:            "smtp.example.org",
		SMTPPort:            2525,
		SMTPUsername:        "mailer",
		SMTPPassword:        "secret",
		MailFrom:            "books@example.org",
		StatementRecipients: []string{"board@example.org"},
	}
	m, err := NewMailer(cfg, zerolog.Nop())
	require.NoError(t, err)

	var (
		sent    *email.Email
		gotAddr string
	)
	m.send = func(e *email.Email, addr string, _ smtp.Auth) error {
		sent, gotAddr = e, addr
		return nil
	}

	require.NoError(t, m.SendStatement(context.Background(), sampleStatement(), "donorbook-2024-04.zip", []byte("PK")))
	require.NotNil(t, sent)
	assert.Equal(t, "smtp.example.org:2525", gotAddr)
	assert.Equal(t, []string{"board@example.org"}, sent.To)
	assert.Equal(t, "books@example.org", sent.From)
	require.Len(t, sent.Attachments, 1)
	assert.Equal(t, "donorbook-2024-04.zip", sent.Attachments[0].Filename)

	boom := errors.New("554 rejected")
	m.send = func(*email.Email, string, smtp.Auth) error { return boom }
	require.ErrorIs(t, m.SendStatement(context.Background(), sampleStatement(), "", nil), boom)
}

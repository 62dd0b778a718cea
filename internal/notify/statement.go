// Package notify mails the monthly statement to the organization's staff.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"sort"
	"strconv"

	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"donorbook/internal/domain"
	"donorbook/internal/infra"
)

// Statement is everything the monthly statement reports on.
type Statement struct {
	Organization string
	Stats        domain.MonthlyStats
	Donors       []domain.DonorPaymentStatus
	Expenses     []domain.Expense
}

// Subject is the mail subject line for the statement.
func (s Statement) Subject() string {
	return fmt.Sprintf("%s statement for %s", s.Organization, s.Stats.Month)
}

func amount(p *message.Printer, d decimal.Decimal) string {
	return p.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(2)))
}

// Render writes the plain-text statement body. Unpaid donors are listed by
// name, largest pledge first.
func (s Statement) Render() []byte {
	p := message.NewPrinter(language.English)
	var b bytes.Buffer

	p.Fprintf(&b, "%s: statement for %s\n\n", s.Organization, s.Stats.Month)
	p.Fprintf(&b, "Donations received: %s\n", amount(p, s.Stats.TotalDonations))
	p.Fprintf(&b, "Expenses:           %s\n", amount(p, s.Stats.TotalExpenses))
	p.Fprintf(&b, "Net balance:        %s\n", amount(p, s.Stats.NetBalance))
	p.Fprintf(&b, "Paid payments:      %d\n", s.Stats.PaidCount)
	p.Fprintf(&b, "Unpaid donors:      %d\n", s.Stats.UnpaidDonorsCount)

	var unpaid []domain.DonorSummary
	for _, d := range s.Donors {
		if d.Payment == nil || !d.Payment.IsPaid() {
			unpaid = append(unpaid, d.Donor)
		}
	}
	if len(unpaid) > 0 {
		sort.SliceStable(unpaid, func(i, j int) bool {
			return unpaid[i].MonthlyAmount.GreaterThan(unpaid[j].MonthlyAmount)
		})
		p.Fprintf(&b, "\nOutstanding pledges\n")
		for _, d := range unpaid {
			p.Fprintf(&b, "  - %s (%s)\n", d.Name, amount(p, d.MonthlyAmount))
		}
	}

	if len(s.Expenses) > 0 {
		p.Fprintf(&b, "\nExpenses\n")
		for _, e := range s.Expenses {
			p.Fprintf(&b, "  - %s %s [%s] %s\n", e.Date.Format("2006-01-02"), e.Title, e.Category, amount(p, e.Amount))
		}
	}
	return b.Bytes()
}

// Mailer sends statements over SMTP.
type Mailer struct {
	addr       string
	auth       smtp.Auth
	from       string
	recipients []string
	logger     infra.Logger
	send       func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewMailer builds a Mailer from the SMTP settings in cfg.
func NewMailer(cfg *infra.Config, logger infra.Logger) (*Mailer, error) {
	if !cfg.MailEnabled() {
		return nil, errors.New("notify: SMTP_HOST, MAIL_FROM and STATEMENT_RECIPIENTS are required")
	}
	var auth smtp.Auth
	if cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return &Mailer{
		addr:       cfg.SMTPHost + ":" + strconv.Itoa(cfg.SMTPPort),
		auth:       auth,
		from:       cfg.MailFrom,
		recipients: cfg.StatementRecipients,
		logger:     logger,
		send:       (*email.Email).Send,
	}, nil
}

// SendStatement mails st with the month archive attached when provided.
func (m *Mailer) SendStatement(ctx context.Context, st Statement, archiveName string, archive []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := email.NewEmail()
	e.From = m.from
	e.To = m.recipients
	e.Subject = st.Subject()
	e.Text = st.Render()
	if len(archive) > 0 {
		if _, err := e.Attach(bytes.NewReader(archive), archiveName, "application/zip"); err != nil {
			return fmt.Errorf("attach archive: %w", err)
		}
	}
	if err := m.send(e, m.addr, m.auth); err != nil {
		m.logger.Error().Err(err).Str("month", st.Stats.Month.String()).Msg("statement mail failed")
		return fmt.Errorf("send statement: %w", err)
	}
	m.logger.Info().
		Str("month", st.Stats.Month.String()).
		Int("recipients", len(m.recipients)).
		Msg("statement mailed")
	return nil
}

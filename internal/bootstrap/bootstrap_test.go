package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donorbook/internal/domain"
	"donorbook/internal/infra"
)

func TestOpenMemoryBackend(t *testing.T) {
	cfg := &infra.Config{
		DataBackend:       infra.BackendMemory,
		Location:          time.UTC,
		ExpenseCategories: []string{"Food", "Rent"},
	}
	rt, err := Open(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer rt.Close()

	ctx := context.Background()
	donor, err := rt.Donors.Create(ctx, domain.DonorInput{Name: "Alice", MonthlyAmount: decimal.NewFromInt(10)})
	require.NoError(t, err)

	got, err := rt.Payments.Generate(ctx, rt.Payments.CurrentMonth())
	require.NoError(t, err)
	assert.Equal(t, 1, got.Count)

	status, err := rt.Payments.StatusForMonth(ctx, rt.Payments.CurrentMonth())
	require.NoError(t, err)
	require.Len(t, status, 1)
	assert.Equal(t, donor.ID, status[0].Donor.ID)

	assert.Equal(t, []string{"Food", "Rent"}, rt.Expenses.Categories())
	assert.Nil(t, rt.Deps.Events)
}

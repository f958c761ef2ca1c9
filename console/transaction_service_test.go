package console

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdms-server/alerts"
	"sdms-server/api"
	"sdms-server/shared"
)

func newTransactionService(t *testing.T) (*TransactionService, *fixture) {
	f := newFixture(t)
	gateway := api.NewService(0, f.log)
	return NewTransactionService(f.alerts, gateway, f.log), f
}

func balancedLegs() []shared.TransactionLeg {
	return []shared.TransactionLeg{
		{Account: "001-000123", Leg: shared.LegDebit, Amount: 150, Narration: "cash deposit"},
		{Account: "001-000456", Leg: shared.LegCredit, Amount: 100},
		{Account: "001-000789", Leg: shared.LegCredit, Amount: 50},
	}
}

func TestTotalsSumsEachSide(t *testing.T) {
	debit, credit := Totals(balancedLegs())
	assert.Equal(t, 150.0, debit)
	assert.Equal(t, 150.0, credit)

	debit, credit = Totals(nil)
	assert.Zero(t, debit)
	assert.Zero(t, credit)
}

func TestPostRejectsUnbalancedEntry(t *testing.T) {
	svc, f := newTransactionService(t)

	legs := balancedLegs()
	legs[0].Amount = 151
	_, err := svc.Post(context.Background(), legs)
	require.EqualError(t, err, "Debit amount does not equal credit amount.")
	assert.Equal(t, alerts.Error, f.lastAlert(t).Kind)
}

func TestPostRejectsZeroEntry(t *testing.T) {
	svc, _ := newTransactionService(t)

	_, err := svc.Post(context.Background(), nil)
	require.Error(t, err)
}

func TestPostBalancedEntry(t *testing.T) {
	svc, f := newTransactionService(t)

	id, err := svc.Post(context.Background(), balancedLegs())
	require.NoError(t, err)
	assert.Regexp(t, `^TRN-[0-9A-Z]{6}$`, id)

	last := f.lastAlert(t)
	assert.Equal(t, alerts.Success, last.Kind)
	assert.Contains(t, last.Message, id)
}

func TestPostStopsWhenContextIsCancelled(t *testing.T) {
	f := newFixture(t)
	gateway := api.NewService(api.DefaultLatency, f.log)
	svc := NewTransactionService(f.alerts, gateway, f.log)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Post(ctx, balancedLegs())
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, f.alertCount())
}

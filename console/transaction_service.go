package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"sdms-server/alerts"
	"sdms-server/api"
	"sdms-server/shared"
)

// TransactionService accepts multi-leg entries. Entries must balance; they
// are handed to the mock upstream gateway and are not persisted locally,
// matching the original console.
type TransactionService struct {
	alerts  *alerts.Channel
	gateway *api.Service
	log     *zap.Logger
}

func NewTransactionService(ch *alerts.Channel, gateway *api.Service, log *zap.Logger) *TransactionService {
	return &TransactionService{alerts: ch, gateway: gateway, log: log}
}

// Totals sums the debit and credit legs.
func Totals(legs []shared.TransactionLeg) (debit, credit float64) {
	debit = lo.SumBy(legs, func(l shared.TransactionLeg) float64 {
		if l.Leg == shared.LegDebit {
			return l.Amount
		}
		return 0
	})
	credit = lo.SumBy(legs, func(l shared.TransactionLeg) float64 {
		if l.Leg == shared.LegCredit {
			return l.Amount
		}
		return 0
	})
	return debit, credit
}

// Post validates that the entry balances, mints a TRN reference and posts the
// legs upstream. Returns the reference.
func (s *TransactionService) Post(ctx context.Context, legs []shared.TransactionLeg) (string, error) {
	debit, credit := Totals(legs)
	if debit != credit || debit <= 0 {
		msg := "Debit amount does not equal credit amount."
		s.alerts.Push(alerts.Error, msg)
		return "", errors.New(msg)
	}

	id := shared.NewRecordID("TRN")
	for _, leg := range legs {
		_, err := s.gateway.PostTransaction(ctx, shared.Transaction{
			AccountNo: leg.Account,
			Type:      leg.Leg,
			Amount:    leg.Amount,
			Reference: id,
		})
		if err != nil {
			return "", err
		}
	}

	s.alerts.Push(alerts.Success, fmt.Sprintf("Transaction saved with ID: %s", id))
	s.log.Info("transaction posted", zap.String("id", id), zap.Float64("amount", debit), zap.Int("legs", len(legs)))
	return id, nil
}

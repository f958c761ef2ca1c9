// Package api is the mock upstream core-banking gateway. Calls return canned
// data after a simulated network delay; the wait aborts as soon as the
// caller's context is cancelled, so a torn-down caller never sees a late
// response.
package api

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sdms-server/shared"
)

// DefaultLatency matches the simulated round-trip of the original mock API.
const DefaultLatency = 300 * time.Millisecond

type Service struct {
	Latency time.Duration
	log     *zap.Logger
}

func NewService(latency time.Duration, log *zap.Logger) *Service {
	if latency < 0 {
		latency = DefaultLatency
	}
	return &Service{Latency: latency, log: log}
}

func (s *Service) wait(ctx context.Context) error {
	if s.Latency == 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.Latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ListCustomers returns the gateway's canned customer page.
func (s *Service) ListCustomers(ctx context.Context) ([]shared.Customer, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return []shared.Customer{
		{
			Id:        "c1",
			CustType:  shared.CustTypeIndividual,
			FirstName: "John",
			LastName:  "Doe",
			Email:     "john@bank.test",
		},
	}, nil
}

// ListAccounts returns the gateway's canned account page.
func (s *Service) ListAccounts(ctx context.Context) ([]shared.Account, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return []shared.Account{
		{
			Id:        "a1",
			AccountNo: "001-000123",
			CustId:    "c1",
			ProductId: "p1",
			Balance:   12500,
		},
	}, nil
}

// PostTransaction accepts an entry and echoes it back with an id and posting
// date, the way the upstream would.
func (s *Service) PostTransaction(ctx context.Context, txn shared.Transaction) (shared.Transaction, error) {
	if err := s.wait(ctx); err != nil {
		return shared.Transaction{}, err
	}
	txn.Id = uuid.New().String()
	txn.Date = shared.Today()
	s.log.Debug("transaction posted upstream", zap.String("id", txn.Id), zap.String("reference", txn.Reference))
	return txn, nil
}

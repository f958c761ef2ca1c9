// Package console holds the entity form controllers: one service per screen
// of the back office. Each follows the same shape: validate the draft,
// mint a prefixed id, append to the record store, notify through the alert
// channel. Reads always go through the merged view, bundled seed records
// first, then whatever the store holds.
package console

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"sdms-server/alerts"
	"sdms-server/data"
	"sdms-server/refdata"
	"sdms-server/shared"
)

// DefaultSearchDelay matches the simulated lookup latency of the original
// CIF search.
const DefaultSearchDelay = 500 * time.Millisecond

type CustomerService struct {
	store  data.Store
	ref    *refdata.Catalog
	alerts *alerts.Channel
	log    *zap.Logger

	// SearchDelay is the simulated latency of SearchByCIF. Tests set it to
	// zero.
	SearchDelay time.Duration
}

func NewCustomerService(store data.Store, ref *refdata.Catalog, ch *alerts.Channel, log *zap.Logger) *CustomerService {
	return &CustomerService{
		store:       store,
		ref:         ref,
		alerts:      ch,
		log:         log,
		SearchDelay: DefaultSearchDelay,
	}
}

// All is the merged customer collection: seed entries first, stored entries
// after, in insertion order.
func (s *CustomerService) All() []shared.Customer {
	return append(s.ref.Customers(), data.GetList[shared.Customer](s.store, shared.CustomersKey)...)
}

// Save validates the draft, mints a CIF id, stamps the creation time and
// appends the record. On a validation failure nothing is written and the
// error message is also pushed as an alert so the form can surface it.
func (s *CustomerService) Save(draft shared.Customer) (shared.Customer, error) {
	if err := validateCustomer(draft); err != nil {
		s.alerts.Push(alerts.Error, err.Error())
		return shared.Customer{}, err
	}

	draft.Id = shared.NewRecordID("CIF")
	draft.CreatedAt = shared.NowISO()
	if err := data.AddItem(s.store, shared.CustomersKey, draft); err != nil {
		s.alerts.Push(alerts.Error, "Could not save customer")
		return shared.Customer{}, err
	}

	s.alerts.Push(alerts.Success, fmt.Sprintf("Customer created with ID: %s", draft.Id))
	s.log.Info("customer created", zap.String("id", draft.Id), zap.String("custType", draft.CustType))
	return draft, nil
}

func validateCustomer(draft shared.Customer) error {
	if draft.CustType == "" {
		return errors.New("Customer Type is required")
	}
	if draft.CustType == shared.CustTypeIndividual {
		if draft.FirstName == "" || draft.LastName == "" {
			return errors.New("First and Last Name are required")
		}
	} else if draft.TradeName == "" {
		return errors.New("Trade Name is required")
	}
	return nil
}

// SearchByCIF scans the merged collection for an exact external-CIF match
// after the simulated lookup delay. The wait aborts when ctx is cancelled and
// no notification fires in that case.
func (s *CustomerService) SearchByCIF(ctx context.Context, cif string) (shared.Customer, bool, error) {
	if s.SearchDelay > 0 {
		t := time.NewTimer(s.SearchDelay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return shared.Customer{}, false, ctx.Err()
		case <-t.C:
		}
	}

	found, ok := lo.Find(s.All(), func(c shared.Customer) bool { return c.ExternalCif == cif })
	if ok {
		s.alerts.Push(alerts.Info, fmt.Sprintf("Customer found with External CIF: %s", cif))
	} else {
		s.alerts.Push(alerts.Error, fmt.Sprintf("No customer found with External CIF: %s. You can create a new one.", cif))
	}
	return found, ok, nil
}

// SearchByID scans the merged collection for an exact id match.
func (s *CustomerService) SearchByID(id string) (shared.Customer, bool) {
	found, ok := lo.Find(s.All(), func(c shared.Customer) bool { return c.Id == id })
	if ok {
		s.alerts.Push(alerts.Info, fmt.Sprintf("Customer found: %s", found.Id))
	} else {
		s.alerts.Push(alerts.Error, fmt.Sprintf("No customer found with ID: %s", id))
	}
	return found, ok
}

// Update replaces the stored record whose id matches the edited one and
// rewrites the whole collection. Seed records only exist in the merged read
// view, so editing one of those changes nothing.
func (s *CustomerService) Update(edited shared.Customer) error {
	customers := data.GetList[shared.Customer](s.store, shared.CustomersKey)
	updated := lo.Map(customers, func(c shared.Customer, _ int) shared.Customer {
		if c.Id == edited.Id {
			return edited
		}
		return c
	})
	if err := data.SetList(s.store, shared.CustomersKey, updated); err != nil {
		return err
	}
	s.alerts.Push(alerts.Success, "Customer updated successfully")
	s.log.Info("customer updated", zap.String("id", edited.Id))
	return nil
}

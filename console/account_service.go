package console

import (
	"errors"
	"fmt"
	"time"

	"github.com/bxcodec/faker/v3"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"sdms-server/alerts"
	"sdms-server/data"
	"sdms-server/refdata"
	"sdms-server/shared"
)

// DefaultUploadDelay matches the simulated completion delay of the document
// upload.
const DefaultUploadDelay = 500 * time.Millisecond

type AccountService struct {
	store  data.Store
	ref    *refdata.Catalog
	alerts *alerts.Channel
	log    *zap.Logger

	// UploadDelay is how long after UploadDocument the success notification
	// fires. Tests set it to zero.
	UploadDelay time.Duration
}

func NewAccountService(store data.Store, ref *refdata.Catalog, ch *alerts.Channel, log *zap.Logger) *AccountService {
	return &AccountService{
		store:       store,
		ref:         ref,
		alerts:      ch,
		log:         log,
		UploadDelay: DefaultUploadDelay,
	}
}

// All returns the stored accounts. Accounts have no bundled seed collection.
func (s *AccountService) All() []shared.Account {
	return data.GetList[shared.Account](s.store, shared.AccountsKey)
}

// NewDraft returns the field defaults of the create form: opened today,
// active, USD, and a randomly seeded opening balance with two decimal places.
func (s *AccountService) NewDraft() shared.Account {
	cents, _ := faker.RandomInt(0, 9999, 1)
	balance := 0.0
	if len(cents) > 0 {
		balance = float64(cents[0]) / 100
	}
	return shared.Account{
		OpenedOn:  shared.Today(),
		Status:    shared.StatusActive,
		Balance:   balance,
		Currency:  "USD",
		CreatedAt: shared.NowISO(),
	}
}

func (s *AccountService) allCustomers() []shared.Customer {
	return append(s.ref.Customers(), data.GetList[shared.Customer](s.store, shared.CustomersKey)...)
}

// LookupCustomer resolves custId against the merged customer collection so
// the form can pre-fill the customer name and external CIF.
func (s *AccountService) LookupCustomer(custId string) (shared.Customer, bool) {
	if custId == "" {
		s.alerts.Push(alerts.Error, "Please select a customer ID first")
		return shared.Customer{}, false
	}

	customer, ok := lo.Find(s.allCustomers(), func(c shared.Customer) bool { return c.Id == custId })
	if !ok {
		s.alerts.Push(alerts.Error, "Customer not found")
		return shared.Customer{}, false
	}

	s.alerts.Push(alerts.Info, "Customer information loaded")
	return customer, true
}

// GenerateAccountNumber produces "001-" plus six zero-padded digits once a
// customer and a sub-product have been chosen. The value is not checked
// against existing accounts; a duplicate is possible and tolerated.
func (s *AccountService) GenerateAccountNumber(custId, subProductId string) (string, error) {
	if custId == "" || subProductId == "" {
		msg := "Please select Customer and Sub-Product first"
		s.alerts.Push(alerts.Error, msg)
		return "", errors.New(msg)
	}

	n, err := faker.RandomInt(0, 999999, 1)
	if err != nil || len(n) == 0 {
		return "", fmt.Errorf("generate account number: %w", err)
	}
	accountNo := fmt.Sprintf("001-%06d", n[0])
	s.alerts.Push(alerts.Info, fmt.Sprintf("Account number generated: %s", accountNo))
	return accountNo, nil
}

// Create validates the draft and appends it. Account name, branch code and a
// previously generated account number are required.
func (s *AccountService) Create(draft shared.Account) (shared.Account, error) {
	if draft.AccountName == "" || draft.BranchCode == "" || draft.AccountNo == "" {
		msg := "Please fill all required fields and generate an account number"
		s.alerts.Push(alerts.Error, msg)
		return shared.Account{}, errors.New(msg)
	}

	draft.Id = shared.NewRecordID("ACC")
	draft.CreatedAt = shared.NowISO()
	if err := data.AddItem(s.store, shared.AccountsKey, draft); err != nil {
		s.alerts.Push(alerts.Error, "Could not save account")
		return shared.Account{}, err
	}

	s.alerts.Push(alerts.Success, fmt.Sprintf("Account created with ID: %s", draft.Id))
	s.log.Info("account created",
		zap.String("id", draft.Id),
		zap.String("accountNo", draft.AccountNo),
		zap.String("custId", draft.CustId))
	return draft, nil
}

// SearchByAccountNo scans stored accounts for an exact account-number match.
func (s *AccountService) SearchByAccountNo(accountNo string) (shared.Account, bool) {
	found, ok := lo.Find(s.All(), func(a shared.Account) bool { return a.AccountNo == accountNo })
	if ok {
		s.alerts.Push(alerts.Info, fmt.Sprintf("Account found: %s", found.AccountNo))
	} else {
		s.alerts.Push(alerts.Error, fmt.Sprintf("No account found with Account No: %s", accountNo))
	}
	return found, ok
}

// Update replaces the stored record matching the edited id and rewrites the
// collection.
func (s *AccountService) Update(edited shared.Account) error {
	accounts := data.GetList[shared.Account](s.store, shared.AccountsKey)
	updated := lo.Map(accounts, func(a shared.Account, _ int) shared.Account {
		if a.Id == edited.Id {
			return edited
		}
		return a
	})
	if err := data.SetList(s.store, shared.AccountsKey, updated); err != nil {
		return err
	}
	s.alerts.Push(alerts.Success, "Account updated successfully")
	s.log.Info("account updated", zap.String("id", edited.Id))
	return nil
}

// UploadDocument records document metadata for the draft. Only name, size and
// upload date are kept, never the bytes. The success notification fires after
// the simulated upload delay through the alert channel's own timer, so it
// dies with the channel instead of firing against torn-down state.
func (s *AccountService) UploadDocument(name string, sizeKB float64) shared.DocumentMeta {
	meta := shared.DocumentMeta{
		Name:       name,
		Size:       fmt.Sprintf("%.2f KB", sizeKB),
		UploadDate: shared.NowISO(),
	}
	s.alerts.PushAfter(s.UploadDelay, alerts.Success, fmt.Sprintf("File %q uploaded successfully", name))
	return meta
}

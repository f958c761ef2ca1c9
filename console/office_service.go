package console

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"sdms-server/alerts"
	"sdms-server/data"
	"sdms-server/shared"
)

// OfficeAccountService manages internal GL-backed office accounts such as
// vault cash. They live under their own collection key and have no bundled
// seed.
type OfficeAccountService struct {
	store  data.Store
	alerts *alerts.Channel
	log    *zap.Logger
}

func NewOfficeAccountService(store data.Store, ch *alerts.Channel, log *zap.Logger) *OfficeAccountService {
	return &OfficeAccountService{store: store, alerts: ch, log: log}
}

func (s *OfficeAccountService) All() []shared.OfficeAccount {
	return data.GetList[shared.OfficeAccount](s.store, shared.OfficeAccountsKey)
}

// Create validates and appends an office account. GL number and name are
// required.
func (s *OfficeAccountService) Create(draft shared.OfficeAccount) (shared.OfficeAccount, error) {
	if draft.GlNum == "" || draft.Name == "" {
		msg := "GL Number and Name are required"
		s.alerts.Push(alerts.Error, msg)
		return shared.OfficeAccount{}, errors.New(msg)
	}

	draft.Id = shared.NewRecordID("OFF")
	if err := data.AddItem(s.store, shared.OfficeAccountsKey, draft); err != nil {
		s.alerts.Push(alerts.Error, "Could not save office account")
		return shared.OfficeAccount{}, err
	}

	s.alerts.Push(alerts.Success, fmt.Sprintf("Record created with ID: %s", draft.Id))
	s.log.Info("office account created", zap.String("id", draft.Id), zap.String("glNum", draft.GlNum))
	return draft, nil
}

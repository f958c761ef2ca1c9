package console

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"sdms-server/alerts"
	"sdms-server/data"
	"sdms-server/refdata"
	"sdms-server/shared"
)

type SubProductService struct {
	store  data.Store
	ref    *refdata.Catalog
	alerts *alerts.Channel
	log    *zap.Logger
}

func NewSubProductService(store data.Store, ref *refdata.Catalog, ch *alerts.Channel, log *zap.Logger) *SubProductService {
	return &SubProductService{store: store, ref: ref, alerts: ch, log: log}
}

// All is the merged sub-product catalog, bundled entries first.
func (s *SubProductService) All() []shared.SubProduct {
	return append(s.ref.SubProducts(), data.GetList[shared.SubProduct](s.store, shared.SubProductsKey)...)
}

// Save validates and appends a sub-product. Code, name, a parent product and
// a layer-4 GL number are required; neither reference is validated against
// its collection.
func (s *SubProductService) Save(draft shared.SubProduct) (shared.SubProduct, error) {
	if draft.Code == "" || draft.Name == "" || draft.ProductId == "" || draft.CumGlNum == "" {
		msg := "Sub Product Code, Name, Parent Product and Cum_GL_Num are required"
		s.alerts.Push(alerts.Error, msg)
		return shared.SubProduct{}, errors.New(msg)
	}

	draft.Id = shared.NewRecordID("SUB")
	if err := data.AddItem(s.store, shared.SubProductsKey, draft); err != nil {
		s.alerts.Push(alerts.Error, "Could not save sub-product")
		return shared.SubProduct{}, err
	}

	s.alerts.Push(alerts.Success, fmt.Sprintf("Record created with ID: %s", draft.Id))
	s.log.Info("sub-product created", zap.String("id", draft.Id), zap.String("productId", draft.ProductId))
	return draft, nil
}

// SearchByID scans the merged catalog for an exact id match.
func (s *SubProductService) SearchByID(id string) (shared.SubProduct, bool) {
	found, ok := lo.Find(s.All(), func(sp shared.SubProduct) bool { return sp.Id == id })
	if !ok {
		s.alerts.Push(alerts.Error, fmt.Sprintf("No sub-product found with ID: %s", id))
	}
	return found, ok
}

// Update replaces the stored record matching the edited id.
func (s *SubProductService) Update(edited shared.SubProduct) error {
	subProducts := data.GetList[shared.SubProduct](s.store, shared.SubProductsKey)
	updated := lo.Map(subProducts, func(sp shared.SubProduct, _ int) shared.SubProduct {
		if sp.Id == edited.Id {
			return edited
		}
		return sp
	})
	if err := data.SetList(s.store, shared.SubProductsKey, updated); err != nil {
		return err
	}
	s.alerts.Push(alerts.Success, "Record modified successfully")
	return nil
}

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

type ProductService struct {
	store  data.Store
	ref    *refdata.Catalog
	alerts *alerts.Channel
	log    *zap.Logger
}

func NewProductService(store data.Store, ref *refdata.Catalog, ch *alerts.Channel, log *zap.Logger) *ProductService {
	return &ProductService{store: store, ref: ref, alerts: ch, log: log}
}

// All is the merged product catalog: bundled products first, then the
// operator-created ones.
func (s *ProductService) All() []shared.Product {
	return append(s.ref.Products(), data.GetList[shared.Product](s.store, shared.ProductsKey)...)
}

// Save validates and appends a product. Code, name and a layer-3 GL number
// are required. The GL number is a soft reference; it is not checked against
// the chart.
func (s *ProductService) Save(draft shared.Product) (shared.Product, error) {
	if draft.Code == "" || draft.Name == "" || draft.CumGlNum == "" {
		msg := "Product Code, Name and Cum_GL_Num are required"
		s.alerts.Push(alerts.Error, msg)
		return shared.Product{}, errors.New(msg)
	}
	if draft.Status == "" {
		draft.Status = shared.StatusActive
	}

	draft.Id = shared.NewRecordID("PRD")
	if err := data.AddItem(s.store, shared.ProductsKey, draft); err != nil {
		s.alerts.Push(alerts.Error, "Could not save product")
		return shared.Product{}, err
	}

	s.alerts.Push(alerts.Success, fmt.Sprintf("Record created with ID: %s", draft.Id))
	s.log.Info("product created", zap.String("id", draft.Id), zap.String("code", draft.Code))
	return draft, nil
}

// SearchByID scans the merged catalog for an exact id match.
func (s *ProductService) SearchByID(id string) (shared.Product, bool) {
	found, ok := lo.Find(s.All(), func(p shared.Product) bool { return p.Id == id })
	if !ok {
		s.alerts.Push(alerts.Error, fmt.Sprintf("No product found with ID: %s", id))
	}
	return found, ok
}

// Update replaces the stored record matching the edited id. Bundled products
// are not stored and therefore not editable.
func (s *ProductService) Update(edited shared.Product) error {
	products := data.GetList[shared.Product](s.store, shared.ProductsKey)
	updated := lo.Map(products, func(p shared.Product, _ int) shared.Product {
		if p.Id == edited.Id {
			return edited
		}
		return p
	})
	if err := data.SetList(s.store, shared.ProductsKey, updated); err != nil {
		return err
	}
	s.alerts.Push(alerts.Success, "Record modified successfully")
	return nil
}

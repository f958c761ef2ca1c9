package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdms-server/data"
	"sdms-server/shared"
)

func newSubProductService(t *testing.T) (*SubProductService, *fixture) {
	f := newFixture(t)
	return NewSubProductService(f.store, f.catalog, f.alerts, f.log), f
}

func validSubProduct() shared.SubProduct {
	return shared.SubProduct{
		Code:      "MMD-90",
		Name:      "MM Deposit 90 Days",
		ProductId: "PRD-001",
		CumGlNum:  "13010105",
	}
}

func TestSubProductSaveRequiresAllFields(t *testing.T) {
	svc, f := newSubProductService(t)

	for _, mutate := range []func(*shared.SubProduct){
		func(sp *shared.SubProduct) { sp.Code = "" },
		func(sp *shared.SubProduct) { sp.Name = "" },
		func(sp *shared.SubProduct) { sp.ProductId = "" },
		func(sp *shared.SubProduct) { sp.CumGlNum = "" },
	} {
		draft := validSubProduct()
		mutate(&draft)
		_, err := svc.Save(draft)
		require.Error(t, err)
	}
	assert.Empty(t, data.GetList[shared.SubProduct](f.store, shared.SubProductsKey))
}

func TestSubProductSaveAppendsWithMintedId(t *testing.T) {
	svc, f := newSubProductService(t)
	seedCount := len(f.catalog.SubProducts())

	record, err := svc.Save(validSubProduct())
	require.NoError(t, err)
	assert.Regexp(t, `^SUB-[0-9A-Z]{6}$`, record.Id)

	all := svc.All()
	require.Len(t, all, seedCount+1)
	assert.Equal(t, "SUB-001", all[0].Id)
	assert.Equal(t, record.Id, all[seedCount].Id)
}

func TestSubProductParentIsNotValidated(t *testing.T) {
	svc, _ := newSubProductService(t)

	draft := validSubProduct()
	draft.ProductId = "PRD-404"
	_, err := svc.Save(draft)
	assert.NoError(t, err)
}

func TestSubProductSearchAndUpdate(t *testing.T) {
	svc, f := newSubProductService(t)

	seed, ok := svc.SearchByID("SUB-003")
	require.True(t, ok)
	assert.Equal(t, "PRD-002", seed.ProductId)

	created, err := svc.Save(validSubProduct())
	require.NoError(t, err)

	edited := created
	edited.Name = "MM Deposit 180 Days"
	require.NoError(t, svc.Update(edited))

	stored := data.GetList[shared.SubProduct](f.store, shared.SubProductsKey)
	require.Len(t, stored, 1)
	assert.Equal(t, "MM Deposit 180 Days", stored[0].Name)
}

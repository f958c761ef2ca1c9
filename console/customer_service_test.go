package console

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdms-server/alerts"
	"sdms-server/data"
	"sdms-server/shared"
)

func newCustomerService(t *testing.T) (*CustomerService, *fixture) {
	f := newFixture(t)
	svc := NewCustomerService(f.store, f.catalog, f.alerts, f.log)
	svc.SearchDelay = 0
	return svc, f
}

func validIndividual() shared.Customer {
	return shared.Customer{
		CustType:  shared.CustTypeIndividual,
		FirstName: "Jane",
		LastName:  "Smith",
		Mobile:    "15550142",
	}
}

func TestSaveRequiresCustomerType(t *testing.T) {
	svc, f := newCustomerService(t)

	_, err := svc.Save(shared.Customer{FirstName: "Jane", LastName: "Smith"})
	require.EqualError(t, err, "Customer Type is required")

	assert.Empty(t, data.GetList[shared.Customer](f.store, shared.CustomersKey))
	assert.Equal(t, alerts.Error, f.lastAlert(t).Kind)
}

func TestSaveIndividualRequiresBothNames(t *testing.T) {
	svc, f := newCustomerService(t)

	draft := validIndividual()
	draft.LastName = ""
	_, err := svc.Save(draft)
	require.EqualError(t, err, "First and Last Name are required")
	assert.Empty(t, data.GetList[shared.Customer](f.store, shared.CustomersKey))
}

func TestSaveCorporateRequiresTradeName(t *testing.T) {
	svc, _ := newCustomerService(t)

	_, err := svc.Save(shared.Customer{CustType: shared.CustTypeCorporate})
	require.EqualError(t, err, "Trade Name is required")

	_, err = svc.Save(shared.Customer{CustType: shared.CustTypeBank})
	require.EqualError(t, err, "Trade Name is required")

	_, err = svc.Save(shared.Customer{CustType: shared.CustTypeBank, TradeName: "First Mutual"})
	require.NoError(t, err)
}

func TestSaveMintsIdAndStampsCreation(t *testing.T) {
	svc, f := newCustomerService(t)

	record, err := svc.Save(validIndividual())
	require.NoError(t, err)
	assert.Regexp(t, `^CIF-[0-9A-Z]{6}$`, record.Id)
	assert.NotEmpty(t, record.CreatedAt)

	stored := data.GetList[shared.Customer](f.store, shared.CustomersKey)
	require.Len(t, stored, 1)
	assert.Equal(t, record, stored[0])

	last := f.lastAlert(t)
	assert.Equal(t, alerts.Success, last.Kind)
	assert.Contains(t, last.Message, record.Id)
}

func TestListingIsSeedThenStoredInSubmissionOrder(t *testing.T) {
	svc, f := newCustomerService(t)
	seedCount := len(f.catalog.Customers())

	var created []shared.Customer
	for i := 0; i < 3; i++ {
		draft := validIndividual()
		draft.FirstName = fmt.Sprintf("Jane%d", i)
		record, err := svc.Save(draft)
		require.NoError(t, err)
		created = append(created, record)
	}

	all := svc.All()
	require.Len(t, all, seedCount+3)
	assert.Equal(t, "CIF-SEED01", all[0].Id)
	for i, record := range created {
		assert.Equal(t, record.Id, all[seedCount+i].Id)
	}
}

func TestSearchByCIFFindsSeedRecord(t *testing.T) {
	svc, f := newCustomerService(t)

	found, ok, err := svc.SearchByCIF(context.Background(), "EXT-1001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "CIF-SEED01", found.Id)
	assert.Equal(t, alerts.Info, f.lastAlert(t).Kind)
}

func TestSearchByCIFMissProducesOneErrorNotification(t *testing.T) {
	svc, f := newCustomerService(t)

	_, ok, err := svc.SearchByCIF(context.Background(), "EXT-404")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, f.alertCount())
	assert.Equal(t, alerts.Error, f.lastAlert(t).Kind)
}

func TestSearchByCIFAbortsOnCancelledContext(t *testing.T) {
	svc, f := newCustomerService(t)
	svc.SearchDelay = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := svc.SearchByCIF(ctx, "EXT-1001")
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, f.alertCount())
}

func TestSearchByID(t *testing.T) {
	svc, f := newCustomerService(t)

	found, ok := svc.SearchByID("CIF-SEED03")
	require.True(t, ok)
	assert.Equal(t, "Acme Traders Ltd", found.TradeName)

	_, ok = svc.SearchByID("CIF-NOPE00")
	assert.False(t, ok)
	assert.Equal(t, alerts.Error, f.lastAlert(t).Kind)
}

func TestUpdateReplacesExactlyOneRecord(t *testing.T) {
	svc, f := newCustomerService(t)

	first, err := svc.Save(validIndividual())
	require.NoError(t, err)
	second, err := svc.Save(shared.Customer{CustType: shared.CustTypeCorporate, TradeName: "Acme Two"})
	require.NoError(t, err)

	edited := first
	edited.Mobile = "15550999"
	require.NoError(t, svc.Update(edited))

	stored := data.GetList[shared.Customer](f.store, shared.CustomersKey)
	require.Len(t, stored, 2)
	assert.Equal(t, "15550999", stored[0].Mobile)
	assert.Equal(t, second, stored[1])
}

func TestUpdateOfSeedRecordChangesNothing(t *testing.T) {
	svc, f := newCustomerService(t)

	seed := f.catalog.Customers()[0]
	seed.Mobile = "00000000"
	require.NoError(t, svc.Update(seed))

	// seed records are merged at read time, never written to the store
	assert.Empty(t, data.GetList[shared.Customer](f.store, shared.CustomersKey))
	assert.Equal(t, "15550100", svc.All()[0].Mobile)
}

package entries

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pagarwal884/Aapni-Dairy/internal/domain/apperr"
	"github.com/pagarwal884/Aapni-Dairy/internal/domain/models"
)

type fakeStore struct {
	customers map[int64]models.Customer
	entries   map[primitive.ObjectID]models.MilkEntry
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers: make(map[int64]models.Customer),
		entries:   make(map[primitive.ObjectID]models.MilkEntry),
	}
}

func (f *fakeStore) addCustomer(userID primitive.ObjectID, seqNo int64) models.Customer {
	c := models.Customer{ID: primitive.NewObjectID(), UserID: userID, SeqNo: seqNo, Name: "test"}
	f.customers[seqNo] = c
	return c
}

func (f *fakeStore) FindCustomerBySeq(_ context.Context, userID primitive.ObjectID, seqNo int64) (models.Customer, error) {
	c, ok := f.customers[seqNo]
	if !ok || c.UserID != userID {
		return models.Customer{}, apperr.NotFound("customer not found")
	}
	return c, nil
}

func (f *fakeStore) InsertEntry(_ context.Context, entry models.MilkEntry) (models.MilkEntry, error) {
	entry.ID = primitive.NewObjectID()
	f.entries[entry.ID] = entry
	return entry, nil
}

func (f *fakeStore) FindEntry(_ context.Context, userID, id primitive.ObjectID) (models.MilkEntry, error) {
	entry, ok := f.entries[id]
	if !ok || entry.UserID != userID {
		return models.MilkEntry{}, apperr.NotFound("entry not found")
	}
	return entry, nil
}

func (f *fakeStore) ReplaceEntry(_ context.Context, entry models.MilkEntry) (models.MilkEntry, error) {
	if _, ok := f.entries[entry.ID]; !ok {
		return models.MilkEntry{}, apperr.NotFound("entry not found")
	}
	f.entries[entry.ID] = entry
	return entry, nil
}

func (f *fakeStore) DeleteEntry(_ context.Context, userID, id primitive.ObjectID) error {
	entry, ok := f.entries[id]
	if !ok || entry.UserID != userID {
		return apperr.NotFound("entry not found")
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeStore) ListEntriesByCustomer(_ context.Context, userID, customerID primitive.ObjectID, window *models.DateWindow) ([]models.MilkEntry, error) {
	var out []models.MilkEntry
	for _, e := range f.entries {
		if e.UserID != userID || e.CustomerID != customerID {
			continue
		}
		if window != nil && (e.EntryDate.Before(window.Start) || e.EntryDate.After(window.End)) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeStore) ListEntriesWithCustomer(_ context.Context, userID primitive.ObjectID) ([]models.EntryListItem, error) {
	var out []models.EntryListItem
	for _, e := range f.entries {
		if e.UserID != userID {
			continue
		}
		out = append(out, models.EntryListItem{ID: e.ID, CustomerSeqNo: e.CustomerSeqNo, Quantity: e.Quantity})
	}
	return out, nil
}

func floatPtr(v float64) *float64 { return &v }

func testTenant() models.Tenant {
	return models.Tenant{ID: primitive.NewObjectID(), A: 8, B: 2}
}

func TestCreateComputesRateAndTotal(t *testing.T) {
	store := newFakeStore()
	tenant := testTenant()
	customer := store.addCustomer(tenant.ID, 3)
	svc := NewService(store, nil)

	entry, err := svc.Create(context.Background(), tenant, CreateInput{
		CustomerSeqNo: 3,
		Shift:         "morning",
		Quantity:      floatPtr(10),
		Fat:           floatPtr(4.0),
	})
	require.NoError(t, err)

	assert.Equal(t, 34.0, entry.Rate)
	assert.Equal(t, 340.0, entry.TotalAmount)
	assert.Equal(t, customer.ID, entry.CustomerID)
	assert.Equal(t, int64(3), entry.CustomerSeqNo)
	assert.Equal(t, 8.0, entry.A, "coefficients are snapshotted onto the entry")
	assert.Equal(t, 2.0, entry.B)
	assert.Equal(t, models.DefaultSnf, entry.Snf)
	assert.Equal(t, 0.0, entry.SnfK)
}

func TestCreateHonorsOverrides(t *testing.T) {
	store := newFakeStore()
	tenant := testTenant()
	store.addCustomer(tenant.ID, 1)
	svc := NewService(store, nil)

	entry, err := svc.Create(context.Background(), tenant, CreateInput{
		CustomerSeqNo: 1,
		Shift:         "evening",
		Quantity:      floatPtr(10),
		Fat:           floatPtr(4.0),
		Rate:          floatPtr(40),
		TotalAmount:   floatPtr(111),
	})
	require.NoError(t, err)

	assert.Equal(t, 40.0, entry.Rate)
	assert.Equal(t, 111.0, entry.TotalAmount)
}

func TestCreateMissingFields(t *testing.T) {
	store := newFakeStore()
	tenant := testTenant()
	store.addCustomer(tenant.ID, 1)
	svc := NewService(store, nil)

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"missing quantity", CreateInput{CustomerSeqNo: 1, Shift: "morning", Fat: floatPtr(4)}},
		{"missing fat", CreateInput{CustomerSeqNo: 1, Shift: "morning", Quantity: floatPtr(10)}},
		{"missing shift", CreateInput{CustomerSeqNo: 1, Quantity: floatPtr(10), Fat: floatPtr(4)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tenant, tc.in)
			assert.True(t, apperr.IsValidation(err))
		})
	}
}

func TestCreateUnknownCustomer(t *testing.T) {
	svc := NewService(newFakeStore(), nil)

	_, err := svc.Create(context.Background(), testTenant(), CreateInput{
		CustomerSeqNo: 99,
		Shift:         "morning",
		Quantity:      floatPtr(10),
		Fat:           floatPtr(4),
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateRecomputesAndDiscardsOverrides(t *testing.T) {
	store := newFakeStore()
	tenant := testTenant()
	store.addCustomer(tenant.ID, 1)
	svc := NewService(store, nil)

	created, err := svc.Create(context.Background(), tenant, CreateInput{
		CustomerSeqNo: 1,
		Shift:         "morning",
		Quantity:      floatPtr(10),
		Fat:           floatPtr(4.0),
		Rate:          floatPtr(99),
		TotalAmount:   floatPtr(9999),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), tenant, created.ID.Hex(), UpdateInput{
		Fat: floatPtr(4.5),
	})
	require.NoError(t, err)

	assert.Equal(t, 38.0, updated.Rate, "update recomputes from current values")
	assert.Equal(t, 380.0, updated.TotalAmount)
}

func TestUpdateUsesCurrentCoefficients(t *testing.T) {
	store := newFakeStore()
	tenant := testTenant()
	store.addCustomer(tenant.ID, 1)
	svc := NewService(store, nil)

	created, err := svc.Create(context.Background(), tenant, CreateInput{
		CustomerSeqNo: 1,
		Shift:         "morning",
		Quantity:      floatPtr(10),
		Fat:           floatPtr(4.0),
	})
	require.NoError(t, err)

	// Owner changed coefficients since the entry was written.
	tenant.A, tenant.B = 9, 1

	updated, err := svc.Update(context.Background(), tenant, created.ID.Hex(), UpdateInput{})
	require.NoError(t, err)

	assert.Equal(t, 37.0, updated.Rate)
	assert.Equal(t, 370.0, updated.TotalAmount)
	assert.Equal(t, 9.0, updated.A, "snapshot is refreshed on update")
	assert.Equal(t, 1.0, updated.B)
}

func TestUpdateInvalidID(t *testing.T) {
	svc := NewService(newFakeStore(), nil)

	_, err := svc.Update(context.Background(), testTenant(), "nope", UpdateInput{})
	assert.True(t, apperr.IsValidation(err))
}

func TestListByCustomerDayWindow(t *testing.T) {
	store := newFakeStore()
	tenant := testTenant()
	store.addCustomer(tenant.ID, 1)
	svc := NewService(store, nil)

	target := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{0, 6 * time.Hour, 30 * time.Hour} {
		date := target.Add(offset)
		_, err := svc.Create(context.Background(), tenant, CreateInput{
			CustomerSeqNo: 1,
			Shift:         "morning",
			Quantity:      floatPtr(5),
			Fat:           floatPtr(4),
			EntryDate:     &date,
		})
		require.NoError(t, err)
	}

	day := target
	list, err := svc.ListByCustomer(context.Background(), tenant.ID, 1, &day)
	require.NoError(t, err)
	assert.Len(t, list, 2, "only the two entries inside the calendar day")

	all, err := svc.ListByCustomer(context.Background(), tenant.ID, 1, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDeleteEntry(t *testing.T) {
	store := newFakeStore()
	tenant := testTenant()
	store.addCustomer(tenant.ID, 1)
	svc := NewService(store, nil)

	created, err := svc.Create(context.Background(), tenant, CreateInput{
		CustomerSeqNo: 1,
		Shift:         "morning",
		Quantity:      floatPtr(10),
		Fat:           floatPtr(4),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), tenant.ID, created.ID.Hex()))
	err = svc.Delete(context.Background(), tenant.ID, created.ID.Hex())
	assert.True(t, apperr.IsNotFound(err))
}

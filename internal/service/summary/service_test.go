package summary

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

// fakeStore groups entries in Go the way the Mongo pipeline does, so the
// service can be exercised against real window/grouping semantics.
type fakeStore struct {
	customers map[primitive.ObjectID]models.Customer
	entries   []models.MilkEntry
}

func newFakeStore() *fakeStore {
	return &fakeStore{customers: make(map[primitive.ObjectID]models.Customer)}
}

func (f *fakeStore) addCustomer(userID primitive.ObjectID, seqNo int64, name string) models.Customer {
	c := models.Customer{ID: primitive.NewObjectID(), UserID: userID, SeqNo: seqNo, Name: name}
	f.customers[c.ID] = c
	return c
}

func (f *fakeStore) addEntry(userID primitive.ObjectID, customer models.Customer, qty, amount, snf float64, date time.Time) {
	f.entries = append(f.entries, models.MilkEntry{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		CustomerID:    customer.ID,
		CustomerSeqNo: customer.SeqNo,
		Quantity:      qty,
		TotalAmount:   amount,
		Snf:           snf,
		EntryDate:     date,
	})
}

func (f *fakeStore) AggregateEntries(_ context.Context, userID primitive.ObjectID, window *models.DateWindow, customerID *primitive.ObjectID) ([]models.CustomerSummary, error) {
	groups := make(map[primitive.ObjectID]*models.CustomerSummary)
	for _, e := range f.entries {
		if e.UserID != userID {
			continue
		}
		if customerID != nil && e.CustomerID != *customerID {
			continue
		}
		if window != nil && (e.EntryDate.Before(window.Start) || e.EntryDate.After(window.End)) {
			continue
		}

		group, ok := groups[e.CustomerID]
		if !ok {
			customer := f.customers[e.CustomerID]
			group = &models.CustomerSummary{CustomerSeqNo: customer.SeqNo, Name: customer.Name}
			groups[e.CustomerID] = group
		}
		group.TotalQty += e.Quantity
		group.TotalAmount += e.TotalAmount
		group.TotalSnf += e.Snf
	}

	var rows []models.CustomerSummary
	for _, g := range groups {
		rows = append(rows, *g)
	}
	return rows, nil
}

func day(d int) time.Time {
	return time.Date(2025, 3, d, 12, 0, 0, 0, time.UTC)
}

func TestSummarizeTotalsAndPayable(t *testing.T) {
	store := newFakeStore()
	userID := primitive.NewObjectID()
	customer := store.addCustomer(userID, 1, "Ramesh")
	store.addEntry(userID, customer, 10, 340, 8.5, day(1))
	store.addEntry(userID, customer, 5, 170, 8.5, day(2))

	svc := NewService(store, nil)
	result, err := svc.Summarize(context.Background(), userID, nil, nil)
	require.NoError(t, err)

	require.Len(t, result.Customers, 1)
	row := result.Customers[0]
	assert.Equal(t, 15.0, row.TotalQty)
	assert.Equal(t, 510.0, row.TotalAmount)
	assert.Equal(t, 17.0, row.TotalSnf)

	assert.Equal(t, 15.0, result.Totals.Qty)
	assert.Equal(t, 510.0, result.Totals.Amount)
	assert.Equal(t, 17.0, result.Totals.Snf)
	assert.Equal(t, 493.0, result.Totals.Payable)
}

func TestSummarizeEmptyRange(t *testing.T) {
	store := newFakeStore()
	userID := primitive.NewObjectID()

	svc := NewService(store, nil)
	window := models.NewDateWindow(day(1), day(5))
	result, err := svc.Summarize(context.Background(), userID, &window, nil)
	require.NoError(t, err)

	assert.Empty(t, result.Customers)
	assert.NotNil(t, result.Customers, "empty list, not null")
	assert.Equal(t, models.GrandTotals{}, result.Totals)
}

func TestSummarizeWindowBoundariesInclusive(t *testing.T) {
	store := newFakeStore()
	userID := primitive.NewObjectID()
	customer := store.addCustomer(userID, 1, "Ramesh")
	store.addEntry(userID, customer, 1, 10, 1, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	store.addEntry(userID, customer, 1, 10, 1, time.Date(2025, 3, 3, 23, 59, 59, int(999*time.Millisecond), time.UTC))
	store.addEntry(userID, customer, 1, 10, 1, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC))

	svc := NewService(store, nil)
	window := models.NewDateWindow(day(1), day(3))
	result, err := svc.Summarize(context.Background(), userID, &window, nil)
	require.NoError(t, err)

	require.Len(t, result.Customers, 1)
	assert.Equal(t, 2.0, result.Customers[0].TotalQty, "midnight start and last-millisecond end are inside")
}

func TestSummarizePartitionLaw(t *testing.T) {
	store := newFakeStore()
	userID := primitive.NewObjectID()
	ramesh := store.addCustomer(userID, 1, "Ramesh")
	suresh := store.addCustomer(userID, 2, "Suresh")
	for d := 1; d <= 10; d++ {
		store.addEntry(userID, ramesh, float64(d), float64(d)*34, 8.5, day(d))
		store.addEntry(userID, suresh, float64(d)*2, float64(d)*68, 8.0, day(d))
	}

	svc := NewService(store, nil)

	full := models.NewDateWindow(day(1), day(10))
	left := models.NewDateWindow(day(1), day(5))
	right := models.NewDateWindow(day(6), day(10))

	whole, err := svc.Summarize(context.Background(), userID, &full, nil)
	require.NoError(t, err)
	first, err := svc.Summarize(context.Background(), userID, &left, nil)
	require.NoError(t, err)
	second, err := svc.Summarize(context.Background(), userID, &right, nil)
	require.NoError(t, err)

	assert.InDelta(t, whole.Totals.Qty, first.Totals.Qty+second.Totals.Qty, 1e-9)
	assert.InDelta(t, whole.Totals.Amount, first.Totals.Amount+second.Totals.Amount, 1e-9)
	assert.InDelta(t, whole.Totals.Snf, first.Totals.Snf+second.Totals.Snf, 1e-9)
	assert.InDelta(t, whole.Totals.Payable, first.Totals.Payable+second.Totals.Payable, 1e-9)
}

func TestSummarizeCustomerFilter(t *testing.T) {
	store := newFakeStore()
	userID := primitive.NewObjectID()
	ramesh := store.addCustomer(userID, 1, "Ramesh")
	suresh := store.addCustomer(userID, 2, "Suresh")
	store.addEntry(userID, ramesh, 10, 340, 8.5, day(1))
	store.addEntry(userID, suresh, 20, 680, 8.5, day(1))

	svc := NewService(store, nil)
	result, err := svc.Summarize(context.Background(), userID, nil, &ramesh.ID)
	require.NoError(t, err)

	require.Len(t, result.Customers, 1)
	assert.Equal(t, "Ramesh", result.Customers[0].Name)
	assert.Equal(t, 10.0, result.Totals.Qty)
}

func TestSummarizeTenantIsolation(t *testing.T) {
	store := newFakeStore()
	ownerA := primitive.NewObjectID()
	ownerB := primitive.NewObjectID()
	customerA := store.addCustomer(ownerA, 1, "A")
	customerB := store.addCustomer(ownerB, 1, "B")
	store.addEntry(ownerA, customerA, 10, 340, 8.5, day(1))
	store.addEntry(ownerB, customerB, 99, 990, 8.5, day(1))

	svc := NewService(store, nil)
	result, err := svc.Summarize(context.Background(), ownerA, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 10.0, result.Totals.Qty)
}

func TestSummarizeRequiresUser(t *testing.T) {
	svc := NewService(newFakeStore(), nil)

	_, err := svc.Summarize(context.Background(), primitive.NilObjectID, nil, nil)
	assert.True(t, apperr.IsValidation(err))
}

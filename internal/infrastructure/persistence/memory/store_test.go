package memory

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourdesk/backend/internal/domain/tourism"
)

func TestStore_DashboardStats(t *testing.T) {
	store := NewStore()

	for _, status := range []tourism.TourStatus{tourism.TourStatusActive, tourism.TourStatusPending, tourism.TourStatusActive} {
		in := sampleTourInput("tour")
		in.Status = status
		store.Tours.Create(in)
	}
	store.Tourists.Create(tourism.TouristInput{Name: "Ana", Email: "ana@example.com", BookingDate: "2025-05-01"})

	for _, tx := range []struct {
		kind   tourism.TransactionType
		amount string
	}{
		{tourism.TransactionTypeIncome, "100.00"},
		{tourism.TransactionTypeExpense, "40.00"},
		{tourism.TransactionTypeIncome, "25.50"},
	} {
		store.Transactions.Create(tourism.TransactionInput{
			Type:        tx.kind,
			Category:    "other-income",
			Description: "entry",
			Amount:      decimal.RequireFromString(tx.amount),
			Date:        "2025-05-01",
		})
	}

	stats := store.DashboardStats()
	assert.Equal(t, 2, stats.ActiveTours)
	assert.Equal(t, 1, stats.TotalTourists)
	assert.Equal(t, "125.50", stats.TotalRevenue.StringFixed(2))
	assert.Equal(t, "85.50", stats.NetProfit.StringFixed(2))

	// Recomputed on every call
	store.Tours.Create(sampleTourInput("another"))
	assert.Equal(t, 3, store.DashboardStats().ActiveTours)
}

func TestStore_WeakReferences(t *testing.T) {
	store := NewStore()

	tourist := store.Tourists.Create(tourism.TouristInput{
		Name:        "Ben",
		Email:       "ben@example.com",
		TourID:      ptr("no-such-tour"),
		BookingDate: "2025-05-01",
	})
	require.NotNil(t, tourist.TourID)

	tour := store.Tours.Create(sampleTourInput("linked"))
	linked := store.Tourists.Create(tourism.TouristInput{
		Name:        "Cleo",
		Email:       "cleo@example.com",
		TourID:      &tour.ID,
		BookingDate: "2025-05-02",
	})

	require.True(t, store.Tours.Delete(tour.ID))

	got, ok := store.Tourists.Get(linked.ID)
	require.True(t, ok, "deleting a tour leaves its tourists alone")
	assert.Equal(t, linked, got)
	assert.Equal(t, 2, store.Tourists.Len())
}

func TestStore_Counts(t *testing.T) {
	store := NewStore()
	store.Tours.Create(sampleTourInput("a"))
	store.Files.Create(tourism.FileInput{Filename: "abc", OriginalName: "a.pdf"})

	assert.Equal(t, map[string]int{"tours": 1, "tourists": 0, "transactions": 0, "files": 1}, store.Counts())
}

func TestStore_DashboardStatsUnderConcurrentWrites(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				store.Transactions.Create(tourism.TransactionInput{Type: tourism.TransactionTypeIncome, Amount: decimal.NewFromInt(1)})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = store.DashboardStats()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, "200.00", store.DashboardStats().TotalRevenue.StringFixed(2))
}

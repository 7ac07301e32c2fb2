package tourism

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[V any](v V) *V { return &v }

var fixedTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func TestTourInput_Build(t *testing.T) {
	in := TourInput{
		Name:      "Alpine Lakes",
		Location:  "Interlaken",
		StartDate: "2025-06-01",
		EndDate:   "2025-06-08",
		Capacity:  12,
		Price:     decimal.RequireFromString("1499.00"),
	}

	tour := in.Build("tour-1", fixedTime)

	assert.Equal(t, "tour-1", tour.ID)
	assert.Equal(t, fixedTime, tour.CreatedAt)
	assert.Equal(t, TourStatusActive, tour.Status, "status defaults to active")
	assert.Nil(t, tour.Description)
	assert.True(t, tour.Price.Equal(in.Price))

	in.Status = TourStatusPending
	assert.Equal(t, TourStatusPending, in.Build("tour-2", fixedTime).Status)
}

func TestTourPatch_Apply(t *testing.T) {
	base := TourInput{Name: "Old", Location: "Rome", Capacity: 10, Price: decimal.NewFromInt(100)}.Build("id-1", fixedTime)

	t.Run("empty patch leaves record unchanged", func(t *testing.T) {
		assert.Equal(t, base, TourPatch{}.Apply(base))
	})

	t.Run("changes only the given field", func(t *testing.T) {
		updated := TourPatch{Capacity: ptr(20)}.Apply(base)

		want := base
		want.Capacity = 20
		assert.Equal(t, want, updated)
	})

	t.Run("description is copied, not aliased", func(t *testing.T) {
		desc := "Walking tour"
		updated := TourPatch{Description: &desc}.Apply(base)
		desc = "mutated"

		require.NotNil(t, updated.Description)
		assert.Equal(t, "Walking tour", *updated.Description)
	})
}

func TestTouristInput_Build(t *testing.T) {
	tourist := TouristInput{
		Name:        "Ana",
		Email:       "ana@example.com",
		TourID:      ptr("does-not-exist"),
		BookingDate: "2025-05-01",
	}.Build("tourist-1", fixedTime)

	assert.Equal(t, TouristStatusPending, tourist.Status)
	require.NotNil(t, tourist.TourID)
	assert.Equal(t, "does-not-exist", *tourist.TourID)
}

func TestTouristPatch_Apply(t *testing.T) {
	base := TouristInput{Name: "Ana", Email: "ana@example.com", BookingDate: "2025-05-01"}.Build("t-1", fixedTime)

	updated := TouristPatch{Status: ptr(TouristStatusConfirmed), Phone: ptr("+34 600 000 000")}.Apply(base)

	assert.Equal(t, TouristStatusConfirmed, updated.Status)
	assert.Equal(t, "+34 600 000 000", *updated.Phone)
	assert.Equal(t, base.Name, updated.Name)
	assert.Equal(t, base.ID, updated.ID)
	assert.Equal(t, base.CreatedAt, updated.CreatedAt)
}

func TestTransactionPatch_Apply(t *testing.T) {
	base := TransactionInput{
		Type:        TransactionTypeIncome,
		Category:    "tour-bookings",
		Description: "Deposit",
		Amount:      decimal.RequireFromString("100.00"),
		Date:        "2025-04-02",
	}.Build("tx-1", fixedTime)

	updated := TransactionPatch{Amount: ptr(decimal.RequireFromString("120.50"))}.Apply(base)

	assert.Equal(t, "120.50", updated.Amount.StringFixed(2))
	assert.Equal(t, base.Type, updated.Type)
	assert.True(t, updated.IsIncome())
	assert.False(t, updated.IsExpense())
}

func TestFileInput_Build(t *testing.T) {
	f := FileInput{Filename: "a1b2", OriginalName: "itinerary.pdf", FileType: "application/pdf", FileSize: 2048, UploadDate: "2025-03-14"}.Build("f-1", fixedTime)
	assert.Equal(t, DefaultFileCategory, f.Category)

	f = FilePatch{Category: ptr("contracts")}.Apply(f)
	assert.Equal(t, "contracts", f.Category)
	assert.Equal(t, "itinerary.pdf", f.OriginalName)
}

func TestStatusValidity(t *testing.T) {
	for _, s := range TourStatuses {
		assert.True(t, s.IsValid(), s.String())
	}
	assert.False(t, TourStatus("archived").IsValid())

	assert.True(t, TouristStatusConfirmed.IsValid())
	assert.False(t, TouristStatus("active").IsValid())

	assert.True(t, TransactionTypeExpense.IsValid())
	assert.False(t, TransactionType("transfer").IsValid())
}

func TestSuggestedCategories(t *testing.T) {
	assert.Contains(t, SuggestedCategories(TransactionTypeIncome), "tour-bookings")
	assert.Contains(t, SuggestedCategories(TransactionTypeExpense), "staff-wages")
	assert.Nil(t, SuggestedCategories("other"))

	// Callers get a copy
	got := SuggestedCategories(TransactionTypeIncome)
	got[0] = "changed"
	assert.Equal(t, "tour-bookings", IncomeCategories[0])
}

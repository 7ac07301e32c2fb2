package memory

import (
	"errors"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/tourdesk/backend/internal/domain/tourism"
)

// ErrStoreNotEmpty is returned by Seed when any collection already has records
var ErrStoreNotEmpty = errors.New("memory: seed requires an empty store")

// SeedOptions controls how many demo records Seed generates.
// A zero Seed picks a random one.
type SeedOptions struct {
	Tours        int
	Tourists     int
	Transactions int
	Seed         uint64
	// Today anchors generated dates; zero means time.Now()
	Today time.Time
}

// DefaultSeedOptions returns a small data set suitable for a demo dashboard
func DefaultSeedOptions() SeedOptions {
	return SeedOptions{Tours: 8, Tourists: 40, Transactions: 60}
}

// Seed fills an empty store with generated tours, tourists and transactions.
// Tourists and transactions reference the generated tours.
func Seed(s *Store, opts SeedOptions) error {
	for kind, n := range s.Counts() {
		if n > 0 {
			return fmt.Errorf("%w: %s has %d records", ErrStoreNotEmpty, kind, n)
		}
	}

	today := opts.Today
	if today.IsZero() {
		today = time.Now()
	}
	f := gofakeit.New(opts.Seed)
	day := func(offset int) string {
		return today.AddDate(0, 0, offset).Format(tourism.DateLayout)
	}
	pick := func(values []string) string {
		return values[f.Number(0, len(values)-1)]
	}

	tourIDs := make([]string, 0, opts.Tours)
	for range opts.Tours {
		start := f.Number(-60, 90)
		description := f.Sentence(8)
		tour := s.Tours.Create(tourism.TourInput{
			Name:        f.City() + " " + f.BuzzWord() + " Tour",
			Description: &description,
			Location:    f.City() + ", " + f.Country(),
			StartDate:   day(start),
			EndDate:     day(start + f.Number(1, 14)),
			Capacity:    f.Number(6, 40),
			Price:       decimal.NewFromFloat(f.Price(150, 4000)).Round(2),
			Status:      tourism.TourStatuses[f.Number(0, len(tourism.TourStatuses)-1)],
		})
		tourIDs = append(tourIDs, tour.ID)
	}

	tourRef := func() *string {
		if len(tourIDs) == 0 {
			return nil
		}
		id := tourIDs[f.Number(0, len(tourIDs)-1)]
		return &id
	}

	touristStatuses := []tourism.TouristStatus{
		tourism.TouristStatusPending, tourism.TouristStatusConfirmed, tourism.TouristStatusCancelled,
	}
	for range opts.Tourists {
		phone := f.Phone()
		nationality := f.Country()
		s.Tourists.Create(tourism.TouristInput{
			Name:        f.Name(),
			Email:       f.Email(),
			Phone:       &phone,
			Nationality: &nationality,
			TourID:      tourRef(),
			BookingDate: day(-f.Number(0, 120)),
			Status:      touristStatuses[f.Number(0, len(touristStatuses)-1)],
		})
	}

	for range opts.Transactions {
		in := tourism.TransactionInput{
			Type:   tourism.TransactionTypeExpense,
			Amount: decimal.NewFromFloat(f.Price(20, 2500)).Round(2),
			Date:   day(-f.Number(0, 120)),
			TourID: tourRef(),
		}
		if f.Bool() {
			in.Type = tourism.TransactionTypeIncome
		}
		in.Category = pick(tourism.SuggestedCategories(in.Type))
		in.Description = f.Sentence(5)
		s.Transactions.Create(in)
	}
	return nil
}

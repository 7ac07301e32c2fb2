package memory

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourdesk/backend/internal/domain/tourism"
)

func ptr[V any](v V) *V { return &v }

var fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func newTourRepo(opts ...Option) *TourRepository {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewRepository[tourism.Tour, tourism.TourInput, tourism.TourPatch](opts...)
}

func sampleTourInput(name string) tourism.TourInput {
	return tourism.TourInput{
		Name:      name,
		Location:  "Lisbon",
		StartDate: "2025-07-01",
		EndDate:   "2025-07-05",
		Capacity:  20,
		Price:     decimal.RequireFromString("350.00"),
		Status:    tourism.TourStatusActive,
	}
}

func TestRepository_CreateThenGet(t *testing.T) {
	repo := newTourRepo()
	in := sampleTourInput("Old Town Walk")

	created := repo.Create(in)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, fixedNow, created.CreatedAt)

	got, ok := repo.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, created, got)
	assert.Equal(t, in.Build(created.ID, fixedNow), got)
}

func TestRepository_GetMissing(t *testing.T) {
	repo := newTourRepo()

	got, ok := repo.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, tourism.Tour{}, got)
}

func TestRepository_List(t *testing.T) {
	t.Run("empty collection yields empty slice", func(t *testing.T) {
		list := newTourRepo().List()
		require.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("insertion order and stable across calls", func(t *testing.T) {
		repo := newTourRepo()
		names := []string{"c", "a", "b", "d"}
		for _, n := range names {
			repo.Create(sampleTourInput(n))
		}

		first := repo.List()
		second := repo.List()
		assert.Equal(t, first, second)

		got := make([]string, 0, len(first))
		for _, tour := range first {
			got = append(got, tour.Name)
		}
		assert.Equal(t, names, got)
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		repo := newTourRepo()
		repo.Create(sampleTourInput("a"))

		list := repo.List()
		list[0].Name = "changed"

		assert.Equal(t, "a", repo.List()[0].Name)
	})
}

func TestRepository_Update(t *testing.T) {
	t.Run("empty patch returns record unchanged", func(t *testing.T) {
		repo := newTourRepo()
		created := repo.Create(sampleTourInput("a"))

		updated, ok := repo.Update(created.ID, tourism.TourPatch{})
		require.True(t, ok)
		assert.Equal(t, created, updated)
	})

	t.Run("changes only the patched field", func(t *testing.T) {
		repo := newTourRepo()
		created := repo.Create(sampleTourInput("a"))

		updated, ok := repo.Update(created.ID, tourism.TourPatch{Status: ptr(tourism.TourStatusCompleted)})
		require.True(t, ok)

		want := created
		want.Status = tourism.TourStatusCompleted
		assert.Equal(t, want, updated)

		stored, _ := repo.Get(created.ID)
		assert.Equal(t, want, stored)
	})

	t.Run("missing id reports not found", func(t *testing.T) {
		repo := newTourRepo()

		_, ok := repo.Update("missing", tourism.TourPatch{Name: ptr("x")})
		assert.False(t, ok)
		assert.Equal(t, 0, repo.Len())
	})
}

func TestRepository_Delete(t *testing.T) {
	repo := newTourRepo()
	a := repo.Create(sampleTourInput("a"))
	b := repo.Create(sampleTourInput("b"))
	c := repo.Create(sampleTourInput("c"))

	assert.True(t, repo.Delete(b.ID))
	_, ok := repo.Get(b.ID)
	assert.False(t, ok)
	assert.Equal(t, []tourism.Tour{a, c}, repo.List())

	assert.False(t, repo.Delete(b.ID))
	assert.False(t, repo.Delete("missing"))
	assert.Equal(t, 2, repo.Len())
}

func TestRepository_Remove(t *testing.T) {
	repo := newTourRepo()
	created := repo.Create(sampleTourInput("a"))

	removed, ok := repo.Remove(created.ID)
	require.True(t, ok)
	assert.Equal(t, created, removed)
	assert.Equal(t, 0, repo.Len())

	_, ok = repo.Remove(created.ID)
	assert.False(t, ok)
}

func TestRepository_ReturnedRecordsDoNotAliasStoredState(t *testing.T) {
	repo := newTourRepo()
	in := sampleTourInput("Cliff Trail")
	in.Description = ptr("orig")
	created := repo.Create(in)

	*created.Description = "changed via create result"
	got, ok := repo.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "orig", *got.Description)

	*got.Description = "changed via get result"
	*repo.List()[0].Description = "changed via list result"
	updated, ok := repo.Update(created.ID, tourism.TourPatch{Capacity: ptr(5)})
	require.True(t, ok)
	assert.Equal(t, "orig", *updated.Description)

	*updated.Description = "changed via update result"
	got, _ = repo.Get(created.ID)
	assert.Equal(t, "orig", *got.Description)
}

func TestRepository_TouristReferencesAreCopied(t *testing.T) {
	repo := NewStore().Tourists
	created := repo.Create(tourism.TouristInput{
		Name:        "Ana",
		Email:       "ana@example.com",
		Phone:       ptr("+351 900"),
		Nationality: ptr("PT"),
		TourID:      ptr("tour-1"),
		BookingDate: "2025-05-01",
	})

	got, _ := repo.Get(created.ID)
	*got.TourID = "other-tour"
	*got.Phone = "000"
	*got.Nationality = "XX"

	again, _ := repo.Get(created.ID)
	assert.Equal(t, "tour-1", *again.TourID)
	assert.Equal(t, "+351 900", *again.Phone)
	assert.Equal(t, "PT", *again.Nationality)
}

func TestRepository_IDsNeverReused(t *testing.T) {
	ids := []string{"", "dup", "dup", "dup", "fresh"}
	i := 0
	gen := func() string {
		id := ids[i]
		i++
		return id
	}
	repo := newTourRepo(WithIDGenerator(gen))

	first := repo.Create(sampleTourInput("a"))
	assert.Equal(t, "dup", first.ID, "empty ids are skipped")

	require.True(t, repo.Delete(first.ID))

	second := repo.Create(sampleTourInput("b"))
	assert.Equal(t, "fresh", second.ID, "deleted ids are not handed out again")
}

func TestRepository_ConcurrentCreatesGetDistinctIDs(t *testing.T) {
	repo := NewRepository[tourism.Tour, tourism.TourInput, tourism.TourPatch]()

	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				repo.Create(sampleTourInput(fmt.Sprintf("w%d-%d", w, i)))
			}
		}(w)
	}
	wg.Wait()

	list := repo.List()
	require.Len(t, list, workers*perWorker)
	seen := make(map[string]struct{}, len(list))
	for _, tour := range list {
		seen[tour.ID] = struct{}{}
	}
	assert.Len(t, seen, workers*perWorker)
}

func TestRepository_UpdateNeverResurrectsDeleted(t *testing.T) {
	for round := 0; round < 100; round++ {
		repo := NewRepository[tourism.Tour, tourism.TourInput, tourism.TourPatch]()
		created := repo.Create(sampleTourInput("race"))

		var wg sync.WaitGroup
		var updated bool
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, updated = repo.Update(created.ID, tourism.TourPatch{Name: ptr("renamed")})
		}()
		go func() {
			defer wg.Done()
			assert.True(t, repo.Delete(created.ID))
		}()
		wg.Wait()

		_, exists := repo.Get(created.ID)
		assert.False(t, exists, "update must not re-insert a deleted record (updated=%v)", updated)
		assert.Equal(t, 0, repo.Len())
	}
}

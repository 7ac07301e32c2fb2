package memory

import (
	"github.com/tourdesk/backend/internal/domain/shared"
	"github.com/tourdesk/backend/internal/domain/tourism"
)

type (
	// TourRepository stores tours
	TourRepository = Repository[tourism.Tour, tourism.TourInput, tourism.TourPatch]
	// TouristRepository stores tourists
	TouristRepository = Repository[tourism.Tourist, tourism.TouristInput, tourism.TouristPatch]
	// TransactionRepository stores income and expense entries
	TransactionRepository = Repository[tourism.Transaction, tourism.TransactionInput, tourism.TransactionPatch]
	// FileRepository stores uploaded file metadata
	FileRepository = Repository[tourism.File, tourism.FileInput, tourism.FilePatch]
)

var (
	_ shared.Repository[tourism.Tour, tourism.TourInput, tourism.TourPatch]                      = (*TourRepository)(nil)
	_ shared.Repository[tourism.Tourist, tourism.TouristInput, tourism.TouristPatch]             = (*TouristRepository)(nil)
	_ shared.Repository[tourism.Transaction, tourism.TransactionInput, tourism.TransactionPatch] = (*TransactionRepository)(nil)
	_ shared.Repository[tourism.File, tourism.FileInput, tourism.FilePatch]                      = (*FileRepository)(nil)
)

// Store owns the four collections. Nothing else holds record state.
type Store struct {
	Tours        *TourRepository
	Tourists     *TouristRepository
	Transactions *TransactionRepository
	Files        *FileRepository
}

// NewStore creates an empty store. Options apply to every collection.
func NewStore(opts ...Option) *Store {
	return &Store{
		Tours:        NewRepository[tourism.Tour, tourism.TourInput, tourism.TourPatch](opts...),
		Tourists:     NewRepository[tourism.Tourist, tourism.TouristInput, tourism.TouristPatch](opts...),
		Transactions: NewRepository[tourism.Transaction, tourism.TransactionInput, tourism.TransactionPatch](opts...),
		Files:        NewRepository[tourism.File, tourism.FileInput, tourism.FilePatch](opts...),
	}
}

// DashboardStats recomputes the dashboard summary from a consistent view of
// tours, tourists and transactions. Read locks are taken in that fixed order.
func (s *Store) DashboardStats() tourism.DashboardStats {
	s.Tours.mu.RLock()
	defer s.Tours.mu.RUnlock()
	s.Tourists.mu.RLock()
	defer s.Tourists.mu.RUnlock()
	s.Transactions.mu.RLock()
	defer s.Transactions.mu.RUnlock()

	return tourism.ComputeDashboardStats(
		s.Tours.listLocked(),
		len(s.Tourists.order),
		s.Transactions.listLocked(),
	)
}

// Counts returns the size of each collection keyed by entity kind
func (s *Store) Counts() map[string]int {
	return map[string]int{
		"tours":        s.Tours.Len(),
		"tourists":     s.Tourists.Len(),
		"transactions": s.Transactions.Len(),
		"files":        s.Files.Len(),
	}
}

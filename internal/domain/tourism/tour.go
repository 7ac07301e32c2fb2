// Package tourism holds the records a tour operator manages: tours,
// tourists booked on them, financial transactions and uploaded files.
package tourism

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format of every date field
const DateLayout = "2006-01-02"

// TourStatus represents the lifecycle status of a tour
type TourStatus string

const (
	TourStatusActive    TourStatus = "active"
	TourStatusPending   TourStatus = "pending"
	TourStatusCompleted TourStatus = "completed"
	TourStatusCancelled TourStatus = "cancelled"
)

// DefaultTourStatus is assigned when a tour is created without a status
const DefaultTourStatus = TourStatusActive

// TourStatuses lists every valid tour status
var TourStatuses = []TourStatus{TourStatusActive, TourStatusPending, TourStatusCompleted, TourStatusCancelled}

// IsValid checks if the status is a valid TourStatus
func (s TourStatus) IsValid() bool {
	switch s {
	case TourStatusActive, TourStatusPending, TourStatusCompleted, TourStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of TourStatus
func (s TourStatus) String() string {
	return string(s)
}

// Tour is a scheduled tour offering
type Tour struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Location    string          `json:"location"`
	StartDate   string          `json:"startDate"`
	EndDate     string          `json:"endDate"`
	Capacity    int             `json:"capacity"`
	Price       decimal.Decimal `json:"price"`
	Status      TourStatus      `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Clone returns a copy that shares no pointers with t
func (t Tour) Clone() Tour {
	t.Description = cloneString(t.Description)
	return t
}

// TourInput carries the caller-supplied fields of a new tour
type TourInput struct {
	Name        string
	Description *string
	Location    string
	StartDate   string
	EndDate     string
	Capacity    int
	Price       decimal.Decimal
	Status      TourStatus
}

// Build materializes the input into a Tour, applying the default status
func (in TourInput) Build(id string, createdAt time.Time) Tour {
	status := in.Status
	if status == "" {
		status = DefaultTourStatus
	}
	return Tour{
		ID:          id,
		Name:        in.Name,
		Description: cloneString(in.Description),
		Location:    in.Location,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Capacity:    in.Capacity,
		Price:       in.Price,
		Status:      status,
		CreatedAt:   createdAt,
	}
}

// TourPatch is a partial update; nil fields are left untouched
type TourPatch struct {
	Name        *string
	Description *string
	Location    *string
	StartDate   *string
	EndDate     *string
	Capacity    *int
	Price       *decimal.Decimal
	Status      *TourStatus
}

// Apply merges the patch into t. ID and CreatedAt are never changed.
func (p TourPatch) Apply(t Tour) Tour {
	setIfPresent(&t.Name, p.Name)
	if p.Description != nil {
		t.Description = cloneString(p.Description)
	}
	setIfPresent(&t.Location, p.Location)
	setIfPresent(&t.StartDate, p.StartDate)
	setIfPresent(&t.EndDate, p.EndDate)
	setIfPresent(&t.Capacity, p.Capacity)
	setIfPresent(&t.Price, p.Price)
	setIfPresent(&t.Status, p.Status)
	return t
}

func setIfPresent[V any](dst *V, src *V) {
	if src != nil {
		*dst = *src
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

package tourism

import "time"

// TouristStatus represents the booking status of a tourist
type TouristStatus string

const (
	TouristStatusPending   TouristStatus = "pending"
	TouristStatusConfirmed TouristStatus = "confirmed"
	TouristStatusCancelled TouristStatus = "cancelled"
)

// DefaultTouristStatus is assigned when a tourist is created without a status
const DefaultTouristStatus = TouristStatusPending

// IsValid checks if the status is a valid TouristStatus
func (s TouristStatus) IsValid() bool {
	switch s {
	case TouristStatusPending, TouristStatusConfirmed, TouristStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of TouristStatus
func (s TouristStatus) String() string {
	return string(s)
}

// Tourist is a person booked (or about to be booked) on a tour.
//
// TourID is a lookup, not ownership: it is never checked against the tour
// collection and deleting the tour leaves it dangling.
type Tourist struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Phone       *string       `json:"phone"`
	Nationality *string       `json:"nationality"`
	TourID      *string       `json:"tourId"`
	BookingDate string        `json:"bookingDate"`
	Status      TouristStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// Clone returns a copy that shares no pointers with t
func (t Tourist) Clone() Tourist {
	t.Phone = cloneString(t.Phone)
	t.Nationality = cloneString(t.Nationality)
	t.TourID = cloneString(t.TourID)
	return t
}

// TouristInput carries the caller-supplied fields of a new tourist
type TouristInput struct {
	Name        string
	Email       string
	Phone       *string
	Nationality *string
	TourID      *string
	BookingDate string
	Status      TouristStatus
}

// Build materializes the input into a Tourist, applying the default status
func (in TouristInput) Build(id string, createdAt time.Time) Tourist {
	status := in.Status
	if status == "" {
		status = DefaultTouristStatus
	}
	return Tourist{
		ID:          id,
		Name:        in.Name,
		Email:       in.Email,
		Phone:       cloneString(in.Phone),
		Nationality: cloneString(in.Nationality),
		TourID:      cloneString(in.TourID),
		BookingDate: in.BookingDate,
		Status:      status,
		CreatedAt:   createdAt,
	}
}

// TouristPatch is a partial update; nil fields are left untouched
type TouristPatch struct {
	Name        *string
	Email       *string
	Phone       *string
	Nationality *string
	TourID      *string
	BookingDate *string
	Status      *TouristStatus
}

// Apply merges the patch into t
func (p TouristPatch) Apply(t Tourist) Tourist {
	setIfPresent(&t.Name, p.Name)
	setIfPresent(&t.Email, p.Email)
	if p.Phone != nil {
		t.Phone = cloneString(p.Phone)
	}
	if p.Nationality != nil {
		t.Nationality = cloneString(p.Nationality)
	}
	if p.TourID != nil {
		t.TourID = cloneString(p.TourID)
	}
	setIfPresent(&t.BookingDate, p.BookingDate)
	setIfPresent(&t.Status, p.Status)
	return t
}

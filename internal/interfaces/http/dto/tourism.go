package dto

import (
	"time"

	"github.com/shopspring/decimal"
	tourismapp "github.com/tourdesk/backend/internal/application/tourism"
	"github.com/tourdesk/backend/internal/domain/tourism"
)

// moneyPlaces is the number of fractional digits kept for money
const moneyPlaces = 2

// money rounds to the stored precision
func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}

func moneyString(d decimal.Decimal) string {
	return d.StringFixed(moneyPlaces)
}

// CreateTourRequest is the body of POST /tours
type CreateTourRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Location    string           `json:"location" binding:"required,min=1,max=200"`
	StartDate   string           `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate     string           `json:"endDate" binding:"required,datetime=2006-01-02"`
	Capacity    int              `json:"capacity" binding:"required,gt=0"`
	Price       *decimal.Decimal `json:"price" binding:"required,gte=0"`
	Status      string           `json:"status" binding:"omitempty,oneof=active pending completed cancelled"`
}

// ToInput converts the request to a domain input
func (r CreateTourRequest) ToInput() tourism.TourInput {
	return tourism.TourInput{
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Capacity:    r.Capacity,
		Price:       money(*r.Price),
		Status:      tourism.TourStatus(r.Status),
	}
}

// UpdateTourRequest is the body of PUT /tours/:id. Absent or null fields
// are left unchanged.
type UpdateTourRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Location    *string          `json:"location" binding:"omitempty,min=1,max=200"`
	StartDate   *string          `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate     *string          `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Capacity    *int             `json:"capacity" binding:"omitempty,gt=0"`
	Price       *decimal.Decimal `json:"price" binding:"omitempty,gte=0"`
	Status      *string          `json:"status" binding:"omitempty,oneof=active pending completed cancelled"`
}

// ToPatch converts the request to a domain patch
func (r UpdateTourRequest) ToPatch() tourism.TourPatch {
	patch := tourism.TourPatch{
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Capacity:    r.Capacity,
	}
	if r.Price != nil {
		p := money(*r.Price)
		patch.Price = &p
	}
	if r.Status != nil {
		s := tourism.TourStatus(*r.Status)
		patch.Status = &s
	}
	return patch
}

// TourResponse renders a tour with its price as a fixed two-place string
type TourResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Location    string    `json:"location"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	Capacity    int       `json:"capacity"`
	Price       string    `json:"price"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewTourResponse renders t
func NewTourResponse(t tourism.Tour) TourResponse {
	return TourResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Location:    t.Location,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		Capacity:    t.Capacity,
		Price:       moneyString(t.Price),
		Status:      t.Status.String(),
		CreatedAt:   t.CreatedAt,
	}
}

// NewTourListResponse renders tours in order
func NewTourListResponse(tours []tourism.Tour) []TourResponse {
	out := make([]TourResponse, len(tours))
	for i, t := range tours {
		out[i] = NewTourResponse(t)
	}
	return out
}

// CreateTouristRequest is the body of POST /tourists
type CreateTouristRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=200"`
	Email       string  `json:"email" binding:"required,email"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Nationality *string `json:"nationality" binding:"omitempty,max=100"`
	TourID      *string `json:"tourId" binding:"omitempty,max=64"`
	BookingDate string  `json:"bookingDate" binding:"required,datetime=2006-01-02"`
	Status      string  `json:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
}

// ToInput converts the request to a domain input
func (r CreateTouristRequest) ToInput() tourism.TouristInput {
	return tourism.TouristInput{
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		Nationality: r.Nationality,
		TourID:      r.TourID,
		BookingDate: r.BookingDate,
		Status:      tourism.TouristStatus(r.Status),
	}
}

// UpdateTouristRequest is the body of PUT /tourists/:id
type UpdateTouristRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Nationality *string `json:"nationality" binding:"omitempty,max=100"`
	TourID      *string `json:"tourId" binding:"omitempty,max=64"`
	BookingDate *string `json:"bookingDate" binding:"omitempty,datetime=2006-01-02"`
	Status      *string `json:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
}

// ToPatch converts the request to a domain patch
func (r UpdateTouristRequest) ToPatch() tourism.TouristPatch {
	patch := tourism.TouristPatch{
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		Nationality: r.Nationality,
		TourID:      r.TourID,
		BookingDate: r.BookingDate,
	}
	if r.Status != nil {
		s := tourism.TouristStatus(*r.Status)
		patch.Status = &s
	}
	return patch
}

// CreateTransactionRequest is the body of POST /transactions
type CreateTransactionRequest struct {
	Type        string           `json:"type" binding:"required,oneof=income expense"`
	Category    string           `json:"category" binding:"required,min=1,max=100"`
	Description string           `json:"description" binding:"required,min=1,max=1000"`
	Amount      *decimal.Decimal `json:"amount" binding:"required,gte=0"`
	Date        string           `json:"date" binding:"required,datetime=2006-01-02"`
	TourID      *string          `json:"tourId" binding:"omitempty,max=64"`
}

// ToInput converts the request to a domain input
func (r CreateTransactionRequest) ToInput() tourism.TransactionInput {
	return tourism.TransactionInput{
		Type:        tourism.TransactionType(r.Type),
		Category:    r.Category,
		Description: r.Description,
		Amount:      money(*r.Amount),
		Date:        r.Date,
		TourID:      r.TourID,
	}
}

// UpdateTransactionRequest is the body of PUT /transactions/:id
type UpdateTransactionRequest struct {
	Type        *string          `json:"type" binding:"omitempty,oneof=income expense"`
	Category    *string          `json:"category" binding:"omitempty,min=1,max=100"`
	Description *string          `json:"description" binding:"omitempty,min=1,max=1000"`
	Amount      *decimal.Decimal `json:"amount" binding:"omitempty,gte=0"`
	Date        *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	TourID      *string          `json:"tourId" binding:"omitempty,max=64"`
}

// ToPatch converts the request to a domain patch
func (r UpdateTransactionRequest) ToPatch() tourism.TransactionPatch {
	patch := tourism.TransactionPatch{
		Category:    r.Category,
		Description: r.Description,
		Date:        r.Date,
		TourID:      r.TourID,
	}
	if r.Type != nil {
		t := tourism.TransactionType(*r.Type)
		patch.Type = &t
	}
	if r.Amount != nil {
		a := money(*r.Amount)
		patch.Amount = &a
	}
	return patch
}

// TransactionResponse renders a transaction with its amount as a string
type TransactionResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	Date        string    `json:"date"`
	TourID      *string   `json:"tourId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewTransactionResponse renders tx
func NewTransactionResponse(tx tourism.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID,
		Type:        tx.Type.String(),
		Category:    tx.Category,
		Description: tx.Description,
		Amount:      moneyString(tx.Amount),
		Date:        tx.Date,
		TourID:      tx.TourID,
		CreatedAt:   tx.CreatedAt,
	}
}

// NewTransactionListResponse renders transactions in order
func NewTransactionListResponse(txs []tourism.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		out[i] = NewTransactionResponse(tx)
	}
	return out
}

// UpdateFileRequest is the body of PUT /files/:id. Only the display name and
// category are editable; the stored name, type and size belong to the blob.
type UpdateFileRequest struct {
	OriginalName *string `json:"originalName" binding:"omitempty,min=1,max=255"`
	Category     *string `json:"category" binding:"omitempty,min=1,max=64"`
}

// ToPatch converts the request to a domain patch
func (r UpdateFileRequest) ToPatch() tourism.FilePatch {
	return tourism.FilePatch{
		OriginalName: r.OriginalName,
		Category:     r.Category,
	}
}

// DashboardStatsResponse renders the dashboard with money as strings
type DashboardStatsResponse struct {
	ActiveTours   int    `json:"activeTours"`
	TotalTourists int    `json:"totalTourists"`
	TotalRevenue  string `json:"totalRevenue"`
	NetProfit     string `json:"netProfit"`
}

// NewDashboardStatsResponse renders s
func NewDashboardStatsResponse(s tourism.DashboardStats) DashboardStatsResponse {
	return DashboardStatsResponse{
		ActiveTours:   s.ActiveTours,
		TotalTourists: s.TotalTourists,
		TotalRevenue:  moneyString(s.TotalRevenue),
		NetProfit:     moneyString(s.NetProfit),
	}
}

// DateRangeRequest is an inclusive YYYY-MM-DD window; either bound may be empty
type DateRangeRequest struct {
	From string `json:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `json:"to" binding:"omitempty,datetime=2006-01-02"`
}

// ExportRequest is the body of POST /export/:kind
type ExportRequest struct {
	Format    string            `json:"format" binding:"required,oneof=pdf excel word"`
	DateRange *DateRangeRequest `json:"dateRange"`
}

// ToExportRequest converts the request for the export service
func (r ExportRequest) ToExportRequest() tourismapp.ExportRequest {
	out := tourismapp.ExportRequest{Format: tourismapp.ExportFormat(r.Format)}
	if r.DateRange != nil {
		out.DateRange = &tourismapp.DateRange{From: r.DateRange.From, To: r.DateRange.To}
	}
	return out
}

// CategoriesResponse lists the suggested categories for the entry forms
type CategoriesResponse struct {
	Income  []string `json:"income"`
	Expense []string `json:"expense"`
	File    []string `json:"file"`
}

// NewCategoriesResponse returns the suggested category lists
func NewCategoriesResponse() CategoriesResponse {
	files := make([]string, len(tourism.FileCategories))
	copy(files, tourism.FileCategories)
	return CategoriesResponse{
		Income:  tourism.SuggestedCategories(tourism.TransactionTypeIncome),
		Expense: tourism.SuggestedCategories(tourism.TransactionTypeExpense),
		File:    files,
	}
}

package tourism

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType separates money coming in from money going out
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// IsValid checks if the type is a valid TransactionType
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// Transaction is a single income or expense entry.
// TourID is a lookup, not ownership.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	TourID      *string         `json:"tourId"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Clone returns a copy that shares no pointers with t
func (t Transaction) Clone() Transaction {
	t.TourID = cloneString(t.TourID)
	return t
}

// IsIncome reports whether the transaction counts towards revenue
func (t Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

// IsExpense reports whether the transaction is deducted from profit
func (t Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// TransactionInput carries the caller-supplied fields of a new transaction
type TransactionInput struct {
	Type        TransactionType
	Category    string
	Description string
	Amount      decimal.Decimal
	Date        string
	TourID      *string
}

// Build materializes the input into a Transaction
func (in TransactionInput) Build(id string, createdAt time.Time) Transaction {
	return Transaction{
		ID:          id,
		Type:        in.Type,
		Category:    in.Category,
		Description: in.Description,
		Amount:      in.Amount,
		Date:        in.Date,
		TourID:      cloneString(in.TourID),
		CreatedAt:   createdAt,
	}
}

// TransactionPatch is a partial update; nil fields are left untouched
type TransactionPatch struct {
	Type        *TransactionType
	Category    *string
	Description *string
	Amount      *decimal.Decimal
	Date        *string
	TourID      *string
}

// Apply merges the patch into t
func (p TransactionPatch) Apply(t Transaction) Transaction {
	setIfPresent(&t.Type, p.Type)
	setIfPresent(&t.Category, p.Category)
	setIfPresent(&t.Description, p.Description)
	setIfPresent(&t.Amount, p.Amount)
	setIfPresent(&t.Date, p.Date)
	if p.TourID != nil {
		t.TourID = cloneString(p.TourID)
	}
	return t
}

package tourism

// Suggested categories offered by the entry forms. Categories are free-form
// text; these lists only seed the selects.
var (
	IncomeCategories = []string{
		"tour-bookings",
		"additional-services",
		"merchandise",
		"tips",
		"other-income",
	}

	ExpenseCategories = []string{
		"transportation",
		"accommodation",
		"food",
		"equipment",
		"marketing",
		"insurance",
		"staff-wages",
		"maintenance",
		"other-expenses",
	}

	FileCategories = []string{
		"documents",
		"images",
		"reports",
		"contracts",
		DefaultFileCategory,
	}
)

// SuggestedCategories returns the suggested categories for a transaction type
func SuggestedCategories(t TransactionType) []string {
	var src []string
	switch t {
	case TransactionTypeIncome:
		src = IncomeCategories
	case TransactionTypeExpense:
		src = ExpenseCategories
	default:
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

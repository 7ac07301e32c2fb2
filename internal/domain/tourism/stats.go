package tourism

import "github.com/shopspring/decimal"

// DashboardStats is the headline summary shown on the dashboard
type DashboardStats struct {
	ActiveTours   int             `json:"activeTours"`
	TotalTourists int             `json:"totalTourists"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	NetProfit     decimal.Decimal `json:"netProfit"`
}

// ComputeDashboardStats derives the dashboard summary from current records.
// Revenue is the sum of income amounts; net profit subtracts the sum of
// expense amounts from it. Sums are exact decimal arithmetic.
func ComputeDashboardStats(tours []Tour, touristCount int, transactions []Transaction) DashboardStats {
	stats := DashboardStats{
		TotalTourists: touristCount,
		TotalRevenue:  decimal.Zero,
		NetProfit:     decimal.Zero,
	}

	for _, t := range tours {
		if t.Status == TourStatusActive {
			stats.ActiveTours++
		}
	}

	expenses := decimal.Zero
	for _, tx := range transactions {
		switch {
		case tx.IsIncome():
			stats.TotalRevenue = stats.TotalRevenue.Add(tx.Amount)
		case tx.IsExpense():
			expenses = expenses.Add(tx.Amount)
		}
	}
	stats.NetProfit = stats.TotalRevenue.Sub(expenses)

	return stats
}

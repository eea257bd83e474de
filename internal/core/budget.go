package core

// MonthlyBudgetLimit is the fixed budget the current-month total is compared
// against. Display-only: it is never enforced as a write constraint.
const MonthlyBudgetLimit float64 = 350

// BudgetStatus is the derived budget view for the current month.
type BudgetStatus struct {
	Limit      float64 `json:"limit"`
	Total      float64 `json:"total"`
	Remaining  float64 `json:"remaining"`
	OverBudget bool    `json:"overBudget"`
}

// NewBudgetStatus derives the remaining amount and over-budget flag from a
// current-month total. The total and limit pass through unmodified.
func NewBudgetStatus(total float64) BudgetStatus {
	return BudgetStatus{
		Limit:      MonthlyBudgetLimit,
		Total:      total,
		Remaining:  MonthlyBudgetLimit - total,
		OverBudget: total > MonthlyBudgetLimit,
	}
}

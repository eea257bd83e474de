package core

import (
	"errors"
	"strings"
)

var (
	// ErrMissingFields is returned when a create request omits a required field.
	ErrMissingFields = errors.New("missing required fields")
)

type (
	// Expense is a single persisted expense record. JSON tags define the wire
	// shape of the /expenses API and must not change.
	Expense struct {
		ID          int64   `json:"id"`
		Name        string  `json:"name"`
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		IsRecurring bool    `json:"isRecurring"`
		Date        string  `json:"date"`      // YYYY-MM-DD, the expense's effective date
		CreatedAt   string  `json:"createdAt"` // set by the store at insertion
	}

	// ExpenseInput carries the client-supplied fields of a new expense.
	ExpenseInput struct {
		Name        string  `json:"name"`
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		IsRecurring bool    `json:"isRecurring"`
		Date        string  `json:"date"`
	}

	// ExpensePatch is a partial update. Nil fields are left untouched.
	ExpensePatch struct {
		Name        *string  `json:"name,omitempty"`
		Amount      *float64 `json:"amount,omitempty"`
		Category    *string  `json:"category,omitempty"`
		IsRecurring *bool    `json:"isRecurring,omitempty"`
		Date        *string  `json:"date,omitempty"`
	}
)

// Validate checks that the required create fields are present. Only presence
// is checked: a zero amount counts as missing, but numeric sanity, date
// well-formedness and category membership are deliberately not validated.
func (in ExpenseInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrMissingFields
	}
	if in.Amount == 0 {
		return ErrMissingFields
	}
	if strings.TrimSpace(in.Category) == "" {
		return ErrMissingFields
	}
	if strings.TrimSpace(in.Date) == "" {
		return ErrMissingFields
	}
	return nil
}

// IsEmpty reports whether the patch supplies no fields at all. An empty patch
// is a valid no-op update.
func (p ExpensePatch) IsEmpty() bool {
	return p.Name == nil && p.Amount == nil && p.Category == nil &&
		p.IsRecurring == nil && p.Date == nil
}

// BaselineExpenses returns the fixed recurring records seeded once at first
// startup. Dates are assigned by the store at seed time.
func BaselineExpenses() []ExpenseInput {
	return []ExpenseInput{
		{Name: "Rent", Amount: 100, Category: "Housing", IsRecurring: true},
		{Name: "Internet", Amount: 50, Category: "Utilities", IsRecurring: true},
		{Name: "College", Amount: 70, Category: "Education", IsRecurring: true},
	}
}

package core

import (
	"testing"
	"time"
)

func TestExpenseInputValidate(t *testing.T) {
	valid := ExpenseInput{Name: "Coffee", Amount: 5, Category: "Food", Date: "2024-06-15"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	cases := []struct {
		name  string
		input ExpenseInput
	}{
		{"empty name", ExpenseInput{Name: "", Amount: 10, Category: "X", Date: "2024-01-01"}},
		{"whitespace name", ExpenseInput{Name: "   ", Amount: 10, Category: "X", Date: "2024-01-01"}},
		{"zero amount", ExpenseInput{Name: "A", Amount: 0, Category: "X", Date: "2024-01-01"}},
		{"empty category", ExpenseInput{Name: "A", Amount: 10, Category: "", Date: "2024-01-01"}},
		{"empty date", ExpenseInput{Name: "A", Amount: 10, Category: "X", Date: ""}},
	}
	for _, tc := range cases {
		if err := tc.input.Validate(); err != ErrMissingFields {
			t.Errorf("%s: expected ErrMissingFields, got %v", tc.name, err)
		}
	}

	// Only truthiness is validated: negative amounts and malformed dates pass.
	loose := ExpenseInput{Name: "A", Amount: -3, Category: "X", Date: "not-a-date"}
	if err := loose.Validate(); err != nil {
		t.Fatalf("permissive validation rejected input: %v", err)
	}
}

func TestExpensePatchIsEmpty(t *testing.T) {
	if !(ExpensePatch{}).IsEmpty() {
		t.Fatal("zero patch should be empty")
	}
	amount := 12.5
	if (ExpensePatch{Amount: &amount}).IsEmpty() {
		t.Fatal("patch with amount should not be empty")
	}
	rec := false
	if (ExpensePatch{IsRecurring: &rec}).IsEmpty() {
		t.Fatal("patch with explicit false should not be empty")
	}
}

func TestMonthRange(t *testing.T) {
	cases := []struct {
		in          time.Time
		first, last string
	}{
		{time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC), "2024-06-01", "2024-06-30"},
		{time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "2024-02-01", "2024-02-29"}, // leap
		{time.Date(2023, 2, 28, 23, 59, 0, 0, time.UTC), "2023-02-01", "2023-02-28"},
		{time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), "2024-12-01", "2024-12-31"},
		{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "2025-01-01", "2025-01-31"},
	}
	for _, tc := range cases {
		first, last := MonthRange(tc.in)
		if first != tc.first || last != tc.last {
			t.Errorf("MonthRange(%s) = %s..%s, want %s..%s",
				tc.in.Format(DateLayout), first, last, tc.first, tc.last)
		}
	}
}

func TestBaselineExpenses(t *testing.T) {
	seeds := BaselineExpenses()
	if len(seeds) != 3 {
		t.Fatalf("expected 3 baseline expenses, got %d", len(seeds))
	}
	var total float64
	for _, s := range seeds {
		if !s.IsRecurring {
			t.Errorf("baseline expense %q must be recurring", s.Name)
		}
		total += s.Amount
	}
	if total != 220 {
		t.Fatalf("baseline total = %v, want 220", total)
	}
}

func TestNewBudgetStatus(t *testing.T) {
	st := NewBudgetStatus(400)
	if st.Limit != 350 || st.Total != 400 || st.Remaining != -50 || !st.OverBudget {
		t.Fatalf("unexpected status for total 400: %+v", st)
	}

	st = NewBudgetStatus(0)
	if st.Remaining != 350 || st.OverBudget {
		t.Fatalf("unexpected status for empty month: %+v", st)
	}

	// Exactly at the limit is not over budget.
	st = NewBudgetStatus(350)
	if st.Remaining != 0 || st.OverBudget {
		t.Fatalf("unexpected status at the limit: %+v", st)
	}
}

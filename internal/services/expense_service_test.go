package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"budget/internal/core"
	"budget/internal/storage"
)

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) PublishExpenseEvent(ctx context.Context, id int64, action string) error {
	p.events = append(p.events, action)
	return nil
}

func newTestService(t *testing.T) (*ExpenseService, *recordingPublisher) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "expenses.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	pub := &recordingPublisher{}
	return NewExpenseService(store, pub), pub
}

func today(t *testing.T) string {
	t.Helper()
	return time.Now().Format(core.DateLayout)
}

func TestAddExpenseRecomputesTotal(t *testing.T) {
	ctx := context.Background()
	svc, pub := newTestService(t)

	// Seeded baseline: 100 + 50 + 70 dated today.
	total, err := svc.CurrentMonthTotal(ctx)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 220 {
		t.Fatalf("seeded total = %v, want 220", total)
	}

	expense, total, err := svc.AddExpense(ctx, core.ExpenseInput{
		Name: "Coffee", Amount: 5, Category: "Food", Date: today(t),
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if expense.ID == 0 {
		t.Fatal("no id assigned")
	}
	if total != 225 {
		t.Fatalf("total after add = %v, want 225", total)
	}
	if len(pub.events) != 1 || pub.events[0] != "created" {
		t.Fatalf("unexpected events: %v", pub.events)
	}
}

func TestAddExpenseOutsideCurrentMonthExcludedFromTotal(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	// One day before the current month starts.
	first, _ := core.CurrentMonthRange()
	start, err := time.Parse(core.DateLayout, first)
	if err != nil {
		t.Fatalf("parse first day: %v", err)
	}
	previous := start.AddDate(0, 0, -1).Format(core.DateLayout)

	if _, _, err := svc.AddExpense(ctx, core.ExpenseInput{
		Name: "Old", Amount: 999, Category: "X", Date: previous,
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	total, err := svc.CurrentMonthTotal(ctx)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 220 {
		t.Fatalf("adjacent-month record leaked into total: %v", total)
	}
}

func TestDeleteExpenseIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, pub := newTestService(t)

	expense, _, err := svc.AddExpense(ctx, core.ExpenseInput{
		Name: "Snack", Amount: 3, Category: "Food", Date: today(t),
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	total, err := svc.DeleteExpense(ctx, expense.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if total != 220 {
		t.Fatalf("total after delete = %v, want 220", total)
	}

	// Deleting again silently succeeds.
	total, err = svc.DeleteExpense(ctx, expense.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if total != 220 {
		t.Fatalf("total after repeat delete = %v", total)
	}

	if len(pub.events) != 3 { // created + 2 deleted
		t.Fatalf("unexpected events: %v", pub.events)
	}
}

func TestUpdateExpensePartial(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	expense, _, err := svc.AddExpense(ctx, core.ExpenseInput{
		Name: "Books", Amount: 20, Category: "Education", Date: today(t),
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	amount := 25.0
	total, err := svc.UpdateExpense(ctx, expense.ID, core.ExpensePatch{Amount: &amount})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if total != 245 { // 220 seed + 25
		t.Fatalf("total after update = %v, want 245", total)
	}

	all, _, err := svc.ListExpenses(ctx, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, e := range all {
		if e.ID == expense.ID {
			if e.Amount != 25 || e.Name != "Books" || e.Category != "Education" || e.Date != expense.Date {
				t.Fatalf("update touched other fields: %+v", e)
			}
		}
	}
}

func TestUpdateExpenseEmptyPatchNoEvent(t *testing.T) {
	ctx := context.Background()
	svc, pub := newTestService(t)

	total, err := svc.UpdateExpense(ctx, 42, core.ExpensePatch{})
	if err != nil {
		t.Fatalf("empty update errored: %v", err)
	}
	if total != 220 {
		t.Fatalf("total = %v, want 220", total)
	}
	if len(pub.events) != 0 {
		t.Fatalf("empty patch published events: %v", pub.events)
	}
}

func TestListExpensesScope(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if _, _, err := svc.AddExpense(ctx, core.ExpenseInput{
		Name: "Past", Amount: 10, Category: "X", Date: "2020-01-15",
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	all, _, err := svc.ListExpenses(ctx, false)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 4 { // 3 seeds + 1
		t.Fatalf("list all = %d records, want 4", len(all))
	}

	current, total, err := svc.ListExpenses(ctx, true)
	if err != nil {
		t.Fatalf("list current: %v", err)
	}
	if len(current) != 3 {
		t.Fatalf("current month = %d records, want 3 seeds", len(current))
	}
	if total != 220 {
		t.Fatalf("total = %v, want 220", total)
	}
}

func TestBudgetStatus(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	// Push the month over the 350 limit: 220 seed + 180 = 400.
	if _, _, err := svc.AddExpense(ctx, core.ExpenseInput{
		Name: "Flight", Amount: 180, Category: "Travel", Date: today(t),
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	st, err := svc.BudgetStatus(ctx)
	if err != nil {
		t.Fatalf("budget status: %v", err)
	}
	if st.Limit != 350 || st.Total != 400 || st.Remaining != -50 || !st.OverBudget {
		t.Fatalf("unexpected budget status: %+v", st)
	}
}

func TestNilPublisherIsSafe(t *testing.T) {
	ctx := context.Background()
	store, err := storage.Open(filepath.Join(t.TempDir(), "expenses.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	svc := NewExpenseService(store, nil)
	if _, _, err := svc.AddExpense(ctx, core.ExpenseInput{
		Name: "Tea", Amount: 2, Category: "Food", Date: today(t),
	}); err != nil {
		t.Fatalf("add without publisher: %v", err)
	}
}

package services

import (
	"context"
	"fmt"
	"log/slog"

	"budget/internal/amqp"
	"budget/internal/core"
	"budget/internal/storage"
)

// EventPublisher publishes expense change events. Satisfied by *amqp.Client;
// a nil publisher disables events without changing the write path.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, id int64, action string) error
}

// ExpenseService is the mutation and query layer over the record store.
// Every mutation recomputes the current-month total so callers always get a
// fresh figure alongside the result.
type ExpenseService struct {
	store  *storage.Store
	events EventPublisher
}

func NewExpenseService(store *storage.Store, events EventPublisher) *ExpenseService {
	return &ExpenseService{
		store:  store,
		events: events,
	}
}

// ListExpenses returns either all records or only the current month's,
// together with the current-month total. The total always covers the current
// month regardless of the list scope.
func (s *ExpenseService) ListExpenses(ctx context.Context, currentMonthOnly bool) ([]core.Expense, float64, error) {
	var (
		expenses []core.Expense
		err      error
	)
	if currentMonthOnly {
		first, last := core.CurrentMonthRange()
		expenses, err = s.store.ListBetween(ctx, first, last)
	} else {
		expenses, err = s.store.ListAll(ctx)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}

	total, err := s.CurrentMonthTotal(ctx)
	if err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

// CurrentMonthTotal sums the amounts of all records dated within the current
// calendar month. Plain floating-point addition; zero for an empty month.
func (s *ExpenseService) CurrentMonthTotal(ctx context.Context) (float64, error) {
	first, last := core.CurrentMonthRange()
	expenses, err := s.store.ListBetween(ctx, first, last)
	if err != nil {
		return 0, fmt.Errorf("current month expenses: %w", err)
	}

	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total, nil
}

// AddExpense persists a new record and returns it with the recomputed
// current-month total. Input validation belongs to the request handler; this
// layer trusts its input.
func (s *ExpenseService) AddExpense(ctx context.Context, in core.ExpenseInput) (core.Expense, float64, error) {
	expense, err := s.store.Insert(ctx, in)
	if err != nil {
		return core.Expense{}, 0, fmt.Errorf("add expense: %w", err)
	}

	s.publishEvent(ctx, expense.ID, amqp.ActionCreated)

	total, err := s.CurrentMonthTotal(ctx)
	if err != nil {
		return core.Expense{}, 0, err
	}
	return expense, total, nil
}

// DeleteExpense removes the record with the given id, if present, and returns
// the recomputed total. A missing id silently succeeds: the store's affected
// count is deliberately ignored so callers cannot distinguish "not found"
// from "deleted".
func (s *ExpenseService) DeleteExpense(ctx context.Context, id int64) (float64, error) {
	if _, err := s.store.DeleteByID(ctx, id); err != nil {
		return 0, fmt.Errorf("delete expense: %w", err)
	}

	s.publishEvent(ctx, id, amqp.ActionDeleted)

	return s.CurrentMonthTotal(ctx)
}

// UpdateExpense applies a partial update and returns the recomputed total.
// Empty patches and missing ids are no-ops, mirroring DeleteExpense.
func (s *ExpenseService) UpdateExpense(ctx context.Context, id int64, patch core.ExpensePatch) (float64, error) {
	if _, err := s.store.UpdateByID(ctx, id, patch); err != nil {
		return 0, fmt.Errorf("update expense: %w", err)
	}

	if !patch.IsEmpty() {
		s.publishEvent(ctx, id, amqp.ActionUpdated)
	}

	return s.CurrentMonthTotal(ctx)
}

// BudgetStatus derives the budget view from the current-month total.
func (s *ExpenseService) BudgetStatus(ctx context.Context) (core.BudgetStatus, error) {
	total, err := s.CurrentMonthTotal(ctx)
	if err != nil {
		return core.BudgetStatus{}, err
	}
	return core.NewBudgetStatus(total), nil
}

// publishEvent emits a change event when a publisher is configured. Publish
// failures are logged, never surfaced: the store write already succeeded.
func (s *ExpenseService) publishEvent(ctx context.Context, id int64, action string) {
	if s.events == nil || id <= 0 {
		return
	}
	if err := s.events.PublishExpenseEvent(ctx, id, action); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"id", id,
			"action", action,
			"error", err)
	}
}

// Close releases the underlying store.
func (s *ExpenseService) Close() error {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			return fmt.Errorf("close store: %w", err)
		}
	}
	return nil
}

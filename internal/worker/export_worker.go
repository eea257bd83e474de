package worker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"budget/internal/amqp"
	"budget/internal/sheets"
	"budget/internal/storage"
)

// ExportWorker mirrors created expenses into an external spreadsheet. It
// consumes change events, fetches the full record from the store and appends
// one row per creation. The sheet is append-only: update and delete events
// are acknowledged without touching it.
type ExportWorker struct {
	store *storage.Store
	sheet sheets.RowAppender
}

func NewExportWorker(store *storage.Store, sheet sheets.RowAppender) *ExportWorker {
	return &ExportWorker{
		store: store,
		sheet: sheet,
	}
}

// HandleEvent processes one expense change event. Returning an error requeues
// the event; unexportable events (record already gone) are dropped instead.
func (w *ExportWorker) HandleEvent(ctx context.Context, ev *amqp.ExpenseEvent) error {
	switch ev.Action {
	case amqp.ActionCreated:
		return w.exportExpense(ctx, ev.ID)
	case amqp.ActionUpdated, amqp.ActionDeleted:
		slog.DebugContext(ctx, "Skipping non-export event",
			"id", ev.ID,
			"action", ev.Action)
		return nil
	default:
		slog.WarnContext(ctx, "Dropping expense event with unknown action",
			"id", ev.ID,
			"action", ev.Action)
		return nil
	}
}

func (w *ExportWorker) exportExpense(ctx context.Context, id int64) error {
	expense, err := w.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Deleted between event and export; nothing left to mirror.
			slog.WarnContext(ctx, "Expense vanished before export", "id", id)
			return nil
		}
		return fmt.Errorf("load expense %d: %w", id, err)
	}

	if err := w.sheet.Append(ctx, expense); err != nil {
		return fmt.Errorf("export expense %d: %w", id, err)
	}

	return nil
}

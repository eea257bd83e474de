package sheets

import (
	"context"

	"budget/internal/core"
)

// RowAppender appends one expense record to an external spreadsheet.
type RowAppender interface {
	Append(ctx context.Context, e core.Expense) error
}

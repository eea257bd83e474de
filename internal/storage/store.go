package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"budget/internal/core"

	_ "modernc.org/sqlite"
)

// Store is the durable expense record store. It owns the schema (via
// migrations) and identity assignment, and performs the one-time seeding of
// the recurring baseline expenses.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at dbPath, applies
// migrations and seeds the baseline recurring expenses if none exist yet.
// Safe to call on every process start.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	s := &Store{db: db}

	if err := s.seedBaseline(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed baseline expenses: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// seedBaseline inserts the fixed recurring expenses dated today, but only if
// no recurring record exists yet. Restarts never duplicate the seed.
func (s *Store) seedBaseline(ctx context.Context) error {
	count, err := s.CountRecurring(ctx)
	if err != nil {
		return fmt.Errorf("count recurring: %w", err)
	}
	if count > 0 {
		return nil
	}

	today := time.Now().Format(core.DateLayout)
	for _, seed := range core.BaselineExpenses() {
		seed.Date = today
		if _, err := s.Insert(ctx, seed); err != nil {
			return fmt.Errorf("insert seed %q: %w", seed.Name, err)
		}
	}

	slog.InfoContext(ctx, "Seeded baseline recurring expenses",
		"count", len(core.BaselineExpenses()),
		"date", today)
	return nil
}

// Insert persists a new expense, assigning its id and createdAt.
func (s *Store) Insert(ctx context.Context, in core.ExpenseInput) (core.Expense, error) {
	createdAt := time.Now().UTC().Format(time.RFC3339)

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (name, amount, category, isRecurring, date, createdAt)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		in.Name, in.Amount, in.Category, boolToInt(in.IsRecurring), in.Date, createdAt)
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Expense{}, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"name", in.Name,
		"amount", in.Amount,
		"category", in.Category,
		"date", in.Date)

	return core.Expense{
		ID:          id,
		Name:        in.Name,
		Amount:      in.Amount,
		Category:    in.Category,
		IsRecurring: in.IsRecurring,
		Date:        in.Date,
		CreatedAt:   createdAt,
	}, nil
}

// ListAll returns every expense, most recent activity first.
func (s *Store) ListAll(ctx context.Context) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, amount, category, isRecurring, date, createdAt
		 FROM expenses
		 ORDER BY date DESC, createdAt DESC`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// ListBetween returns expenses whose date falls within [first, last],
// inclusive on both ends, ordered by date descending.
func (s *Store) ListBetween(ctx context.Context, first, last string) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, amount, category, isRecurring, date, createdAt
		 FROM expenses
		 WHERE date BETWEEN ? AND ?
		 ORDER BY date DESC`,
		first, last)
	if err != nil {
		return nil, fmt.Errorf("list expenses between %s and %s: %w", first, last, err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// GetByID returns a single expense. Returns sql.ErrNoRows when absent.
func (s *Store) GetByID(ctx context.Context, id int64) (core.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, amount, category, isRecurring, date, createdAt
		 FROM expenses WHERE id = ?`, id)

	var e core.Expense
	var recurring int64
	if err := row.Scan(&e.ID, &e.Name, &e.Amount, &e.Category, &recurring, &e.Date, &e.CreatedAt); err != nil {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, err)
	}
	e.IsRecurring = recurring != 0
	return e, nil
}

// UpdateByID applies only the fields supplied in the patch. An empty patch is
// a no-op. Returns the number of affected rows; updating a missing id affects
// zero rows and is not an error.
func (s *Store) UpdateByID(ctx context.Context, id int64, patch core.ExpensePatch) (int64, error) {
	if patch.IsEmpty() {
		return 0, nil
	}

	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Amount != nil {
		sets = append(sets, "amount = ?")
		args = append(args, *patch.Amount)
	}
	if patch.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *patch.Category)
	}
	if patch.IsRecurring != nil {
		sets = append(sets, "isRecurring = ?")
		args = append(args, boolToInt(*patch.IsRecurring))
	}
	if patch.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, *patch.Date)
	}
	args = append(args, id)

	query := "UPDATE expenses SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update expense %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

// DeleteByID removes the expense with the given id. Deleting a missing id
// affects zero rows and is not an error.
func (s *Store) DeleteByID(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete expense %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

// CountRecurring returns the number of recurring expense records.
func (s *Store) CountRecurring(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM expenses WHERE isRecurring = 1`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count recurring expenses: %w", err)
	}
	return count, nil
}

func scanExpenses(rows *sql.Rows) ([]core.Expense, error) {
	expenses := make([]core.Expense, 0)
	for rows.Next() {
		var e core.Expense
		var recurring int64
		if err := rows.Scan(&e.ID, &e.Name, &e.Amount, &e.Category, &recurring, &e.Date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense row: %w", err)
		}
		e.IsRecurring = recurring != 0
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense rows: %w", err)
	}
	return expenses, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

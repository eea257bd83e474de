package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"budget/internal/core"
)

// Wire shapes of the /expenses API. Field names are part of the contract.
type (
	listResponse struct {
		Expenses []core.Expense `json:"expenses"`
		Total    float64        `json:"total"`
	}

	createResponse struct {
		Expense core.Expense `json:"expense"`
		Total   float64      `json:"total"`
	}

	mutationResponse struct {
		Success bool    `json:"success"`
		Total   float64 `json:"total"`
	}
)

const (
	cacheKeyAll          = "all"
	cacheKeyCurrentMonth = "current-month"
)

// handleListExpenses serves GET /expenses?currentMonth=<true|false>.
// The response always carries the current-month total, whatever the scope.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	currentMonth := r.URL.Query().Get("currentMonth") == "true"

	key := cacheKeyAll
	if currentMonth {
		key = cacheKeyCurrentMonth
	}
	if resp, ok := s.listCache.Get(key); ok {
		slog.DebugContext(r.Context(), "List cache hit", "scope", key)
		writeJSON(w, http.StatusOK, resp)
		return
	}

	expenses, total, err := s.service.ListExpenses(r.Context(), currentMonth)
	if err != nil {
		slog.ErrorContext(r.Context(), "Error fetching expenses", "error", err, "current_month", currentMonth)
		writeError(w, http.StatusInternalServerError, "Failed to fetch expenses")
		return
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}

	resp := listResponse{Expenses: expenses, Total: total}
	s.listCache.Set(key, resp)
	writeJSON(w, http.StatusOK, resp)
}

// handleCreateExpense serves POST /expenses. Rejects with 400 when name,
// amount, category or date is missing; everything beyond presence is
// deliberately unvalidated.
func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var in core.ExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		slog.ErrorContext(r.Context(), "Error adding expense", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to add expense")
		return
	}

	if err := in.Validate(); err != nil {
		if errors.Is(err, core.ErrMissingFields) {
			writeError(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		slog.ErrorContext(r.Context(), "Error adding expense", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to add expense")
		return
	}

	expense, total, err := s.service.AddExpense(r.Context(), in)
	if err != nil {
		slog.ErrorContext(r.Context(), "Error adding expense", "error", err, "name", in.Name)
		writeError(w, http.StatusInternalServerError, "Failed to add expense")
		return
	}

	s.listCache.Purge()
	writeJSON(w, http.StatusOK, createResponse{Expense: expense, Total: total})
}

// handleDeleteExpense serves DELETE /expenses/{id}. A non-numeric id parses
// to the sentinel 0, which no record ever has, so the delete is a silent
// no-op and the response still reports success.
func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := parseID(r.PathValue("id"))

	total, err := s.service.DeleteExpense(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Error deleting expense", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "Failed to delete expense")
		return
	}

	s.listCache.Purge()
	writeJSON(w, http.StatusOK, mutationResponse{Success: true, Total: total})
}

// handleUpdateExpense serves PATCH /expenses/{id} with a partial body.
// Omitted fields keep their prior values; an empty body is a no-op. Missing
// ids succeed silently, same as delete.
func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := parseID(r.PathValue("id"))

	var patch core.ExpensePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		slog.ErrorContext(r.Context(), "Error updating expense", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "Failed to update expense")
		return
	}

	total, err := s.service.UpdateExpense(r.Context(), id, patch)
	if err != nil {
		slog.ErrorContext(r.Context(), "Error updating expense", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "Failed to update expense")
		return
	}

	s.listCache.Purge()
	writeJSON(w, http.StatusOK, mutationResponse{Success: true, Total: total})
}

// handleBudgetStatus serves GET /budget with the derived budget view for the
// current month.
func (s *Server) handleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.service.BudgetStatus(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Error fetching budget status", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch budget status")
		return
	}
	writeJSON(w, http.StatusOK, status)
}

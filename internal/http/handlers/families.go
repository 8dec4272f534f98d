package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/famfin/famfin-be/internal/http/respond"
	"github.com/famfin/famfin-be/internal/ledger"
	"github.com/famfin/famfin-be/internal/models/dto"
)

// FamilyHandler owns every route that reads or mutates a family balance.
type FamilyHandler struct {
	ledger *ledger.Service
}

// NewFamilyHandler constructs the handler.
func NewFamilyHandler(ledger *ledger.Service) *FamilyHandler {
	return &FamilyHandler{ledger: ledger}
}

// Register attaches the family routes to the mux.
func (h *FamilyHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/families/{familyId}/deposit", h.handleDeposit)
	mux.HandleFunc("/families/{familyId}/withdraw", h.handleWithdraw)
	mux.HandleFunc("/families/{familyId}/balance", h.handleBalance)
	mux.HandleFunc("/families/{familyId}/expenses", h.handleExpenses)
}

func (h *FamilyHandler) handleDeposit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	familyID, ok := parseFamilyID(w, r)
	if !ok {
		return
	}
	var req dto.BalanceMutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	balance, err := h.ledger.Deposit(r.Context(), familyID, req.UserID, req.Amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.BalanceMutationResponse{
		Message: "balance added successfully",
		Balance: balance,
	})
}

func (h *FamilyHandler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	familyID, ok := parseFamilyID(w, r)
	if !ok {
		return
	}
	var req dto.BalanceMutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	balance, err := h.ledger.Withdraw(r.Context(), familyID, req.UserID, req.Amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.BalanceMutationResponse{
		Message: "balance withdrawn successfully",
		Balance: balance,
	})
}

func (h *FamilyHandler) handleBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	familyID, ok := parseFamilyID(w, r)
	if !ok {
		return
	}
	balance, err := h.ledger.Balance(r.Context(), familyID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.BalanceResponse{Balance: balance, FamilyID: familyID})
}

func (h *FamilyHandler) handleExpenses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	familyID, ok := parseFamilyID(w, r)
	if !ok {
		return
	}
	var req dto.ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.Title == "" {
		respond.Error(w, http.StatusBadRequest, "title is required")
		return
	}
	expense, balance, err := h.ledger.RecordExpense(r.Context(), ledger.ExpenseInput{
		FamilyID:    familyID,
		UserID:      req.UserID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
	})
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.ExpenseResponse{
		Message:        "expense recorded successfully",
		Expense:        expense,
		UpdatedBalance: balance,
	})
}

// parseFamilyID reads the path parameter; an unparsable id cannot name
// an existing family, so it reads as not found.
func parseFamilyID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	familyID, err := uuid.Parse(r.PathValue("familyId"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, "family not found")
		return uuid.Nil, false
	}
	return familyID, true
}

// writeLedgerError maps ledger failures onto the error taxonomy: 400 for
// validation and funds, 403 for membership, 404 for missing records,
// and a logged generic 500 for everything else.
func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount):
		respond.Error(w, http.StatusBadRequest, "amount must be a positive number")
	case errors.Is(err, ledger.ErrInsufficientFunds):
		respond.Error(w, http.StatusBadRequest, "insufficient funds")
	case errors.Is(err, ledger.ErrNotAMember):
		respond.Error(w, http.StatusForbidden, "user does not belong to this family")
	case errors.Is(err, ledger.ErrFamilyNotFound):
		respond.Error(w, http.StatusNotFound, "family not found")
	case errors.Is(err, ledger.ErrCategoryNotFound):
		respond.Error(w, http.StatusNotFound, "category not found")
	default:
		log.Printf("ledger operation failed: %v", err)
		respond.Error(w, http.StatusInternalServerError, "operation failed")
	}
}

package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/famfin/famfin-be/internal/models/dto"
)

// seedFamilyWithBalance registers an owner with a fresh family and
// optionally deposits an opening balance.
func seedFamilyWithBalance(t *testing.T, env *testEnv, balance int64) (familyID, userID uuid.UUID) {
	t.Helper()
	owner := env.register(t, "Ana", uuid.NewString()+"@example.com", "Silva")
	if balance > 0 {
		var out dto.BalanceMutationResponse
		status := env.do(t, http.MethodPost, depositPath(owner.Family.ID), "", dto.BalanceMutationRequest{
			Amount: decimal.NewFromInt(balance),
			UserID: owner.ID,
		}, &out)
		if status != http.StatusOK {
			t.Fatalf("seed deposit status = %d", status)
		}
	}
	return owner.Family.ID, owner.ID
}

func depositPath(familyID uuid.UUID) string {
	return fmt.Sprintf("/families/%s/deposit", familyID)
}

func withdrawPath(familyID uuid.UUID) string {
	return fmt.Sprintf("/families/%s/withdraw", familyID)
}

func balancePath(familyID uuid.UUID) string {
	return fmt.Sprintf("/families/%s/balance", familyID)
}

func expensesPath(familyID uuid.UUID) string {
	return fmt.Sprintf("/families/%s/expenses", familyID)
}

func TestDepositEndpoint(t *testing.T) {
	env := newTestEnv(t)
	familyID, userID := seedFamilyWithBalance(t, env, 0)

	var out dto.BalanceMutationResponse
	status := env.do(t, http.MethodPost, depositPath(familyID), "", dto.BalanceMutationRequest{
		Amount: decimal.RequireFromString("99.90"),
		UserID: userID,
	}, &out)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if !out.Balance.Equal(decimal.RequireFromString("99.90")) {
		t.Errorf("balance = %s", out.Balance)
	}
	if out.Message == "" {
		t.Error("expected a message")
	}
}

func TestDepositRejectsNonMember(t *testing.T) {
	env := newTestEnv(t)
	familyID, _ := seedFamilyWithBalance(t, env, 0)
	stranger := env.register(t, "Rui", "rui@example.com", "")

	var out errorBody
	status := env.do(t, http.MethodPost, depositPath(familyID), "", dto.BalanceMutationRequest{
		Amount: decimal.NewFromInt(10),
		UserID: stranger.ID,
	}, &out)
	if status != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", status)
	}
}

func TestDepositUnknownFamilyEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, userID := seedFamilyWithBalance(t, env, 0)

	var out errorBody
	status := env.do(t, http.MethodPost, depositPath(uuid.New()), "", dto.BalanceMutationRequest{
		Amount: decimal.NewFromInt(10),
		UserID: userID,
	}, &out)
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
}

func TestDepositRejectsNonPositiveAmount(t *testing.T) {
	env := newTestEnv(t)
	familyID, userID := seedFamilyWithBalance(t, env, 0)

	for _, amount := range []string{"0", "-5"} {
		var out errorBody
		status := env.do(t, http.MethodPost, depositPath(familyID), "", dto.BalanceMutationRequest{
			Amount: decimal.RequireFromString(amount),
			UserID: userID,
		}, &out)
		if status != http.StatusBadRequest {
			t.Fatalf("amount %s: status = %d, want 400", amount, status)
		}
	}
}

func TestWithdrawEndpoint(t *testing.T) {
	env := newTestEnv(t)
	familyID, userID := seedFamilyWithBalance(t, env, 100)

	var out dto.BalanceMutationResponse
	status := env.do(t, http.MethodPost, withdrawPath(familyID), "", dto.BalanceMutationRequest{
		Amount: decimal.NewFromInt(60),
		UserID: userID,
	}, &out)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if !out.Balance.Equal(decimal.NewFromInt(40)) {
		t.Errorf("balance = %s, want 40", out.Balance)
	}

	// Second withdrawal exceeds the remaining balance.
	var errOut errorBody
	status = env.do(t, http.MethodPost, withdrawPath(familyID), "", dto.BalanceMutationRequest{
		Amount: decimal.NewFromInt(50),
		UserID: userID,
	}, &errOut)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if errOut.Error != "insufficient funds" {
		t.Errorf("error = %q", errOut.Error)
	}

	var balance dto.BalanceResponse
	status = env.do(t, http.MethodGet, balancePath(familyID), "", nil, &balance)
	if status != http.StatusOK {
		t.Fatalf("balance status = %d", status)
	}
	if !balance.Balance.Equal(decimal.NewFromInt(40)) {
		t.Errorf("stored balance = %s, want 40", balance.Balance)
	}
}

func TestBalanceEndpoint(t *testing.T) {
	env := newTestEnv(t)
	familyID, _ := seedFamilyWithBalance(t, env, 75)

	var out dto.BalanceResponse
	status := env.do(t, http.MethodGet, balancePath(familyID), "", nil, &out)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if !out.Balance.Equal(decimal.NewFromInt(75)) || out.FamilyID != familyID {
		t.Errorf("response = %+v", out)
	}

	var errOut errorBody
	status = env.do(t, http.MethodGet, balancePath(uuid.New()), "", nil, &errOut)
	if status != http.StatusNotFound {
		t.Fatalf("unknown family status = %d, want 404", status)
	}
}

func TestCreateCategory(t *testing.T) {
	env := newTestEnv(t)

	var out dto.CategoryResponse
	status := env.do(t, http.MethodPost, "/categories", "", dto.CategoryRequest{Category: "groceries"}, &out)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if out.Category.Name != "groceries" || out.Category.ID == uuid.Nil {
		t.Errorf("category = %+v", out.Category)
	}

	// Exact duplicate fails; a different casing is a different category.
	var errOut errorBody
	status = env.do(t, http.MethodPost, "/categories", "", dto.CategoryRequest{Category: "groceries"}, &errOut)
	if status != http.StatusBadRequest {
		t.Fatalf("duplicate status = %d, want 400", status)
	}
	if errOut.Error != "category already exists" {
		t.Errorf("error = %q", errOut.Error)
	}

	status = env.do(t, http.MethodPost, "/categories", "", dto.CategoryRequest{Category: "Groceries"}, nil)
	if status != http.StatusOK {
		t.Fatalf("case-variant status = %d, want 200", status)
	}
}

func TestRecordExpenseEndpoint(t *testing.T) {
	env := newTestEnv(t)
	familyID, userID := seedFamilyWithBalance(t, env, 40)

	var category dto.CategoryResponse
	if status := env.do(t, http.MethodPost, "/categories", "", dto.CategoryRequest{Category: "groceries"}, &category); status != http.StatusOK {
		t.Fatalf("create category status = %d", status)
	}

	var out dto.ExpenseResponse
	status := env.do(t, http.MethodPost, expensesPath(familyID), "", dto.ExpenseRequest{
		Title:       "weekly shop",
		Description: "supermarket",
		Amount:      decimal.NewFromInt(25),
		CategoryID:  category.Category.ID,
		UserID:      userID,
	}, &out)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if !out.UpdatedBalance.Equal(decimal.NewFromInt(15)) {
		t.Errorf("updated balance = %s, want 15", out.UpdatedBalance)
	}
	if out.Expense.Title != "weekly shop" || out.Expense.FamilyID != familyID {
		t.Errorf("expense = %+v", out.Expense)
	}
	if got := env.store.Expenses(); len(got) != 1 {
		t.Errorf("stored expenses = %d, want 1", len(got))
	}
}

func TestRecordExpenseUnknownCategoryEndpoint(t *testing.T) {
	env := newTestEnv(t)
	familyID, userID := seedFamilyWithBalance(t, env, 40)

	var out errorBody
	status := env.do(t, http.MethodPost, expensesPath(familyID), "", dto.ExpenseRequest{
		Title:      "mystery",
		Amount:     decimal.NewFromInt(5),
		CategoryID: uuid.New(),
		UserID:     userID,
	}, &out)
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if out.Error != "category not found" {
		t.Errorf("error = %q", out.Error)
	}
}

func TestRecordExpenseInsufficientFunds(t *testing.T) {
	env := newTestEnv(t)
	familyID, userID := seedFamilyWithBalance(t, env, 40)

	var category dto.CategoryResponse
	if status := env.do(t, http.MethodPost, "/categories", "", dto.CategoryRequest{Category: "travel"}, &category); status != http.StatusOK {
		t.Fatalf("create category status = %d", status)
	}

	var out errorBody
	status := env.do(t, http.MethodPost, expensesPath(familyID), "", dto.ExpenseRequest{
		Title:      "flight",
		Amount:     decimal.NewFromInt(50),
		CategoryID: category.Category.ID,
		UserID:     userID,
	}, &out)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}

	// Neither write persisted.
	if got := env.store.Expenses(); len(got) != 0 {
		t.Errorf("stored expenses = %d, want 0", len(got))
	}
	var balance dto.BalanceResponse
	if status := env.do(t, http.MethodGet, balancePath(familyID), "", nil, &balance); status != http.StatusOK {
		t.Fatalf("balance status = %d", status)
	}
	if !balance.Balance.Equal(decimal.NewFromInt(40)) {
		t.Errorf("balance = %s, want 40", balance.Balance)
	}
}

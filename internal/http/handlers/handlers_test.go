package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/famfin/famfin-be/internal/auth"
	"github.com/famfin/famfin-be/internal/config"
	"github.com/famfin/famfin-be/internal/ledger"
	"github.com/famfin/famfin-be/internal/middleware"
	"github.com/famfin/famfin-be/internal/models/dto"
	"github.com/famfin/famfin-be/internal/storage/memory"
)

// testEnv wires the full route surface against the in-memory store, the
// same shape the real server assembles in internal/server.
type testEnv struct {
	server *httptest.Server
	store  *memory.Store
	tokens *auth.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.Config{
		Port:        "0",
		JWTSecret:   "test-secret",
		JWTIssuer:   "famfin-test",
		JWTTTL:      time.Hour,
		BcryptCost:  bcrypt.MinCost,
		CORSOrigins: []string{"*"},
	}
	store := memory.New()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	authn := middleware.RequireAuth(tokens)
	ledgerService := ledger.NewService(store, store)

	mux := http.NewServeMux()
	NewHealthHandler(time.Now()).Register(mux)
	NewAuthHandler(store, store, tokens, &cfg).Register(mux, authn)
	NewFamilyHandler(ledgerService).Register(mux)
	NewCategoryHandler(store).Register(mux)
	NewReminderHandler(store).Register(mux, authn)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	return &testEnv{server: ts, store: store, tokens: tokens}
}

// do sends a JSON request and decodes the JSON response into out (when
// out is non-nil), returning the status code.
func (e *testEnv) do(t *testing.T, method, path, token string, payload, out any) int {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, e.server.URL+path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

// register creates a user, optionally creating a family for it.
func (e *testEnv) register(t *testing.T, name, email, familyName string) dto.RegisterResponse {
	t.Helper()
	var out dto.RegisterResponse
	status := e.do(t, http.MethodPost, "/register", "", dto.RegisterRequest{
		Name:       name,
		Email:      email,
		Password:   "correct-horse",
		FamilyName: familyName,
	}, &out)
	if status != http.StatusOK {
		t.Fatalf("register status = %d", status)
	}
	return out
}

// login returns a bearer token for a user created via register.
func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	var out dto.LoginResponse
	status := e.do(t, http.MethodPost, "/login", "", dto.LoginRequest{
		Email:    email,
		Password: "correct-horse",
	}, &out)
	if status != http.StatusOK {
		t.Fatalf("login status = %d", status)
	}
	if out.Token == "" {
		t.Fatal("login response missing token")
	}
	return out.Token
}

type errorBody struct {
	Error string `json:"error"`
}

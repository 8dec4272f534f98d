package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/famfin/famfin-be/internal/auth"
	"github.com/famfin/famfin-be/internal/config"
	"github.com/famfin/famfin-be/internal/http/respond"
	"github.com/famfin/famfin-be/internal/middleware"
	"github.com/famfin/famfin-be/internal/models"
	"github.com/famfin/famfin-be/internal/models/dto"
	"github.com/famfin/famfin-be/internal/storage"
)

// AuthHandler owns the register/login/reset-password/me endpoints.
type AuthHandler struct {
	users    storage.UserStore
	families storage.FamilyStore
	tokens   *auth.TokenManager
	cfg      *config.Config
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(users storage.UserStore, families storage.FamilyStore, tokens *auth.TokenManager, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, families: families, tokens: tokens, cfg: cfg}
}

// Register attaches auth routes to the mux. The authn middleware guards
// /me only; everything else is public.
func (h *AuthHandler) Register(mux *http.ServeMux, authn func(http.Handler) http.Handler) {
	mux.HandleFunc("/register", h.handleRegister)
	mux.HandleFunc("/login", h.handleLogin)
	mux.HandleFunc("/reset-password", h.handleResetPassword)
	mux.Handle("/me", authn(http.HandlerFunc(h.handleMe)))
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := validateCredentials(req.Name, req.Email, req.Password); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	if _, err := h.users.FindUserByEmail(ctx, strings.TrimSpace(req.Email)); err == nil {
		respond.Error(w, http.StatusBadRequest, "email already registered")
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		log.Printf("register: lookup email: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	// When joining, resolve the family before creating the user so a bad
	// familyId leaves no orphan account behind.
	var family *models.Family
	if req.FamilyID != nil {
		existing, err := h.families.GetFamily(ctx, *req.FamilyID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				respond.Error(w, http.StatusNotFound, "family not found")
				return
			}
			log.Printf("register: load family: %v", err)
			respond.Error(w, http.StatusInternalServerError, "failed to create user")
			return
		}
		family = &existing
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.cfg.BcryptCost)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(passwordHash),
	}
	created, err := h.users.CreateUser(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			respond.Error(w, http.StatusBadRequest, "email already registered")
		default:
			log.Printf("register: create user: %v", err)
			respond.Error(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	switch {
	case family != nil:
		// familyId wins over familyName when both are supplied.
		member := models.FamilyMember{FamilyID: family.ID, UserID: created.ID, Role: models.RoleMember}
		if err := h.families.AddMember(ctx, member); err != nil {
			log.Printf("register: add member: %v", err)
			respond.Error(w, http.StatusInternalServerError, "failed to join family")
			return
		}
	case strings.TrimSpace(req.FamilyName) != "":
		owner := models.FamilyMember{UserID: created.ID, Role: models.RoleOwner}
		newFamily, err := h.families.CreateFamily(ctx, models.Family{
			Name:    strings.TrimSpace(req.FamilyName),
			Balance: decimal.Zero,
		}, owner)
		if err != nil {
			log.Printf("register: create family: %v", err)
			respond.Error(w, http.StatusInternalServerError, "failed to create family")
			return
		}
		family = &newFamily
	}

	respond.JSON(w, http.StatusOK, dto.RegisterResponse{
		ID:     created.ID,
		Email:  created.Email,
		Name:   created.Name,
		Family: family,
	})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		respond.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}
	user, err := h.users.FindUserByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Same response as a wrong password: no hint which one failed.
			respond.Error(w, http.StatusBadRequest, "invalid credentials")
			return
		}
		log.Printf("login: fetch user: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid credentials")
		return
	}
	token, err := h.tokens.Generate(user)
	if err != nil {
		log.Printf("login: generate token: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respond.JSON(w, http.StatusOK, dto.LoginResponse{Token: token})
}

func (h *AuthHandler) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Email) == "" || len(req.Password) < minPasswordLength {
		respond.Error(w, http.StatusBadRequest, "email and a password of at least 8 characters are required")
		return
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.cfg.BcryptCost)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to hash password")
		return
	}
	if err := h.users.UpdatePassword(r.Context(), strings.TrimSpace(req.Email), string(passwordHash)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusBadRequest, "user not found")
			return
		}
		log.Printf("reset-password: update: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to reset password")
		return
	}
	respond.Text(w, http.StatusOK, "password updated")
}

func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{
		"id":    claims.Subject,
		"email": claims.Email,
	})
}

const minPasswordLength = 8

func validateCredentials(name, email, password string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return errors.New("name and email are required")
	}
	if len(password) < minPasswordLength || !utf8.ValidString(password) {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

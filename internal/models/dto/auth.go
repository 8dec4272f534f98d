package dto

import (
	"github.com/google/uuid"

	"github.com/famfin/famfin-be/internal/models"
)

// RegisterRequest carries the registration payload. FamilyID and
// FamilyName are both optional; FamilyID wins when both are present.
type RegisterRequest struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Password   string     `json:"password"`
	FamilyID   *uuid.UUID `json:"familyId,omitempty"`
	FamilyName string     `json:"familyName,omitempty"`
}

// RegisterResponse echoes the created user and the family it was
// created into or joined, if any.
type RegisterResponse struct {
	ID     uuid.UUID      `json:"id"`
	Email  string         `json:"email"`
	Name   string         `json:"name"`
	Family *models.Family `json:"family"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/famfin/famfin-be/internal/models"
	"github.com/famfin/famfin-be/internal/storage"
)

func TestAddMemberRules(t *testing.T) {
	store := New()
	ctx := context.Background()

	user, err := store.CreateUser(ctx, models.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "x"})
	require.NoError(t, err)
	family, err := store.CreateFamily(ctx, models.Family{Name: "Silva", Balance: decimal.Zero},
		models.FamilyMember{UserID: user.ID, Role: models.RoleOwner})
	require.NoError(t, err)

	err = store.AddMember(ctx, models.FamilyMember{FamilyID: family.ID, UserID: user.ID, Role: models.RoleMember})
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	err = store.AddMember(ctx, models.FamilyMember{FamilyID: uuid.New(), UserID: user.ID, Role: models.RoleMember})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdatePasswordUnknownUser(t *testing.T) {
	store := New()
	err := store.UpdatePassword(context.Background(), "nobody@example.com", "hash")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	store := New()
	ctx := context.Background()

	_, err := store.CreateUser(ctx, models.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "x"})
	require.NoError(t, err)
	_, err = store.CreateUser(ctx, models.User{Name: "Ana II", Email: "ana@example.com", PasswordHash: "y"})
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

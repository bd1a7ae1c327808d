package service

import (
	"context"
	"testing"

	"github.com/arbiterhq/arbiter/internal/database/types"
	"github.com/arbiterhq/arbiter/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type userUpdateCall struct {
	userID string
	update *types.UserUpdate
}

type fakeUserStore struct {
	user      *types.User
	created   []*types.User
	updates   []userUpdateCall
	updateErr error
	deleted   []string
}

func (f *fakeUserStore) GetUser(_ context.Context, userID string) (*types.User, error) {
	if f.user == nil || f.user.ID != userID {
		return nil, types.ErrUserNotFound
	}
	return f.user, nil
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *types.User) error {
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUserStore) UpdateUser(_ context.Context, userID string, update *types.UserUpdate) (*types.User, error) {
	f.updates = append(f.updates, userUpdateCall{userID: userID, update: update})
	if f.updateErr != nil {
		return nil, f.updateErr
	}

	user := f.user
	if user == nil {
		user = &types.User{ID: userID}
	}
	if update.Role != nil {
		user.Role = *update.Role
	}
	if update.Approved != nil {
		user.Approved = *update.Approved
	}
	if update.Teams != nil {
		user.Teams = update.Teams
	}

	return user, nil
}

func (f *fakeUserStore) DeleteUser(_ context.Context, userID string) error {
	f.deleted = append(f.deleted, userID)
	return nil
}

func TestRegisterUserForcesPendingState(t *testing.T) {
	t.Parallel()

	store := &fakeUserStore{}
	svc := NewUser(store, zap.NewNop())

	user := &types.User{
		ID:       "user-1",
		Email:    "mod@example.com",
		Role:     enum.UserRoleAdmin,
		Approved: true,
		Teams:    []string{"team-1"},
	}
	require.NoError(t, svc.RegisterUser(t.Context(), user))

	require.Len(t, store.created, 1)
	assert.Equal(t, enum.UserRolePending, user.Role)
	assert.False(t, user.Approved)
	assert.Empty(t, user.Teams)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestApproveUserReplacesTeamList(t *testing.T) {
	t.Parallel()

	store := &fakeUserStore{
		user: &types.User{ID: "user-1", Role: enum.UserRolePending, Teams: []string{"team-old"}},
	}
	svc := NewUser(store, zap.NewNop())

	user, err := svc.ApproveUser(t.Context(), "user-1", enum.UserRoleModerator, []string{"team-new"})
	require.NoError(t, err)

	// One update carries the whole approval, and the team list is the
	// given one, not a merge with the old memberships.
	require.Len(t, store.updates, 1)
	call := store.updates[0]
	assert.Equal(t, "user-1", call.userID)
	require.NotNil(t, call.update.Role)
	assert.Equal(t, enum.UserRoleModerator, *call.update.Role)
	require.NotNil(t, call.update.Approved)
	assert.True(t, *call.update.Approved)
	assert.Equal(t, []string{"team-new"}, call.update.Teams)

	assert.Equal(t, []string{"team-new"}, user.Teams)
	assert.True(t, user.Approved)
}

func TestApproveUserClearsTeamsWhenNoneGiven(t *testing.T) {
	t.Parallel()

	store := &fakeUserStore{
		user: &types.User{ID: "user-1", Role: enum.UserRolePending, Teams: []string{"team-old"}},
	}
	svc := NewUser(store, zap.NewNop())

	_, err := svc.ApproveUser(t.Context(), "user-1", enum.UserRoleAdmin, nil)
	require.NoError(t, err)

	require.Len(t, store.updates, 1)
	require.NotNil(t, store.updates[0].update.Teams)
	assert.Empty(t, store.updates[0].update.Teams)
}

func TestApproveUserRejectsUnassignableRole(t *testing.T) {
	t.Parallel()

	store := &fakeUserStore{}
	svc := NewUser(store, zap.NewNop())

	_, err := svc.ApproveUser(t.Context(), "user-1", enum.UserRolePending, nil)
	require.ErrorIs(t, err, types.ErrInvalidRole)
	assert.Empty(t, store.updates)

	_, err = svc.ApproveUser(t.Context(), "user-1", enum.UserRole("owner"), nil)
	require.ErrorIs(t, err, types.ErrInvalidRole)
	assert.Empty(t, store.updates)
}

func TestApproveUserPropagatesUnknownTeam(t *testing.T) {
	t.Parallel()

	store := &fakeUserStore{updateErr: types.ErrTeamNotFound}
	svc := NewUser(store, zap.NewNop())

	_, err := svc.ApproveUser(t.Context(), "user-1", enum.UserRoleModerator, []string{"no-such-team"})
	require.ErrorIs(t, err, types.ErrTeamNotFound)
}

func TestEditUserRejectsApprovingPendingAccount(t *testing.T) {
	t.Parallel()

	store := &fakeUserStore{
		user: &types.User{ID: "user-1", Role: enum.UserRolePending},
	}
	svc := NewUser(store, zap.NewNop())

	approved := true
	_, err := svc.EditUser(t.Context(), "user-1", &types.UserUpdate{Approved: &approved})
	require.ErrorIs(t, err, types.ErrInvalidRole)
	assert.Empty(t, store.updates)
}

func TestEditUserApprovesWithRoleAssignment(t *testing.T) {
	t.Parallel()

	store := &fakeUserStore{
		user: &types.User{ID: "user-1", Role: enum.UserRolePending},
	}
	svc := NewUser(store, zap.NewNop())

	role := enum.UserRoleModerator
	approved := true
	user, err := svc.EditUser(t.Context(), "user-1", &types.UserUpdate{Role: &role, Approved: &approved})
	require.NoError(t, err)

	require.Len(t, store.updates, 1)
	assert.Equal(t, enum.UserRoleModerator, user.Role)
	assert.True(t, user.Approved)
}

func TestEditUserRejectsDemotionToPending(t *testing.T) {
	t.Parallel()

	store := &fakeUserStore{
		user: &types.User{ID: "user-1", Role: enum.UserRoleModerator, Approved: true},
	}
	svc := NewUser(store, zap.NewNop())

	role := enum.UserRolePending
	_, err := svc.EditUser(t.Context(), "user-1", &types.UserUpdate{Role: &role})
	require.ErrorIs(t, err, types.ErrInvalidRole)
	assert.Empty(t, store.updates)
}

func TestRejectUserDeletesAccount(t *testing.T) {
	t.Parallel()

	store := &fakeUserStore{}
	svc := NewUser(store, zap.NewNop())

	require.NoError(t, svc.RejectUser(t.Context(), "user-1"))
	assert.Equal(t, []string{"user-1"}, store.deleted)
}

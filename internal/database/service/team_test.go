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

type memberCall struct {
	teamID string
	userID string
}

type fakeTeamStore struct {
	team    *types.Team
	created []*types.Team
	added   []memberCall
	removed []memberCall
	deleted []string
	updates []*types.TeamUpdate
}

func (f *fakeTeamStore) GetTeam(_ context.Context, teamID string) (*types.Team, error) {
	if f.team == nil || f.team.ID != teamID {
		return nil, types.ErrTeamNotFound
	}
	return f.team, nil
}

func (f *fakeTeamStore) CreateTeam(_ context.Context, team *types.Team) error {
	f.created = append(f.created, team)
	return nil
}

func (f *fakeTeamStore) UpdateTeam(_ context.Context, teamID string, update *types.TeamUpdate) (*types.Team, error) {
	f.updates = append(f.updates, update)
	if f.team == nil || f.team.ID != teamID {
		return nil, types.ErrTeamNotFound
	}
	return f.team, nil
}

func (f *fakeTeamStore) DeleteTeam(_ context.Context, teamID string) error {
	f.deleted = append(f.deleted, teamID)
	return nil
}

func (f *fakeTeamStore) AddMember(_ context.Context, teamID, userID string) error {
	if f.team == nil || f.team.ID != teamID {
		return types.ErrTeamNotFound
	}
	f.added = append(f.added, memberCall{teamID: teamID, userID: userID})
	return nil
}

func (f *fakeTeamStore) RemoveMember(_ context.Context, teamID, userID string) error {
	if f.team == nil || f.team.ID != teamID {
		return types.ErrTeamNotFound
	}
	f.removed = append(f.removed, memberCall{teamID: teamID, userID: userID})
	return nil
}

type fakeDirectory struct {
	users map[string]*types.User
}

func (f *fakeDirectory) GetUser(_ context.Context, userID string) (*types.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, types.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeDirectory) GetUsersByIDs(_ context.Context, userIDs []string) ([]*types.User, error) {
	var users []*types.User
	for _, userID := range userIDs {
		if user, ok := f.users[userID]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func setupTeamTest(t *testing.T) (*TeamService, *fakeTeamStore, *fakeDirectory) {
	t.Helper()

	store := &fakeTeamStore{}
	directory := &fakeDirectory{users: map[string]*types.User{}}

	return NewTeam(store, directory, zap.NewNop()), store, directory
}

func TestCreateTeamRequiresName(t *testing.T) {
	t.Parallel()

	svc, store, _ := setupTeamTest(t)

	_, err := svc.CreateTeam(t.Context(), "   ", "", nil, nil, "user-1")
	require.ErrorIs(t, err, types.ErrTeamNameRequired)
	assert.Empty(t, store.created)
}

func TestCreateTeamRequiresExistingCreator(t *testing.T) {
	t.Parallel()

	svc, store, _ := setupTeamTest(t)

	_, err := svc.CreateTeam(t.Context(), "Trust & Safety", "", nil, nil, "ghost")
	require.ErrorIs(t, err, types.ErrUserNotFound)
	assert.Empty(t, store.created)
}

func TestCreateTeamSeedsCreatorMembership(t *testing.T) {
	t.Parallel()

	svc, store, directory := setupTeamTest(t)
	directory.users["admin-1"] = &types.User{ID: "admin-1", Role: enum.UserRoleAdmin}

	team, err := svc.CreateTeam(t.Context(), "  Trust & Safety  ", "frontline reviews", nil, nil, "admin-1")
	require.NoError(t, err)

	require.Len(t, store.created, 1)
	assert.NotEmpty(t, team.ID)
	assert.Equal(t, "Trust & Safety", team.Name)
	assert.Equal(t, "admin-1", team.CreatedBy)
	assert.Equal(t, []string{"admin-1"}, team.Members)
	require.NotNil(t, team.Stats)
	assert.Zero(t, team.Stats.ContentReviewed)
}

func TestListMembersPreservesOrderAndDropsUnknown(t *testing.T) {
	t.Parallel()

	svc, store, directory := setupTeamTest(t)
	store.team = &types.Team{
		ID:      "team-1",
		Members: []string{"user-1", "user-gone", "user-2"},
	}
	directory.users["user-1"] = &types.User{ID: "user-1", DisplayName: "Ada", Role: enum.UserRoleModerator}
	directory.users["user-2"] = &types.User{ID: "user-2", DisplayName: "Grace", Role: enum.UserRoleAdmin}

	members, err := svc.ListMembers(t.Context(), "team-1")
	require.NoError(t, err)

	require.Len(t, members, 2)
	assert.Equal(t, "user-1", members[0].UserID)
	assert.Equal(t, "Ada", members[0].DisplayName)
	assert.Equal(t, "user-2", members[1].UserID)
	assert.Equal(t, enum.UserRoleAdmin, members[1].Role)
}

func TestAddMemberRequiresExistingUser(t *testing.T) {
	t.Parallel()

	svc, store, _ := setupTeamTest(t)
	store.team = &types.Team{ID: "team-1"}

	err := svc.AddMember(t.Context(), "team-1", "ghost")
	require.ErrorIs(t, err, types.ErrUserNotFound)
	assert.Empty(t, store.added)
}

func TestAddMemberUnknownTeam(t *testing.T) {
	t.Parallel()

	svc, _, directory := setupTeamTest(t)
	directory.users["user-1"] = &types.User{ID: "user-1"}

	err := svc.AddMember(t.Context(), "no-such-team", "user-1")
	require.ErrorIs(t, err, types.ErrTeamNotFound)
}

func TestRemoveMemberIsRepeatable(t *testing.T) {
	t.Parallel()

	svc, store, _ := setupTeamTest(t)
	store.team = &types.Team{ID: "team-1", Members: []string{"user-1"}}

	require.NoError(t, svc.RemoveMember(t.Context(), "team-1", "user-1"))
	require.NoError(t, svc.RemoveMember(t.Context(), "team-1", "user-1"))

	assert.Len(t, store.removed, 2)
}

func TestUpdateTeamRejectsBlankName(t *testing.T) {
	t.Parallel()

	svc, store, _ := setupTeamTest(t)
	store.team = &types.Team{ID: "team-1", Name: "old"}

	blank := "   "
	_, err := svc.UpdateTeam(t.Context(), "team-1", &types.TeamUpdate{Name: &blank})
	require.ErrorIs(t, err, types.ErrTeamNameRequired)
	assert.Empty(t, store.updates)
}

func TestUpdateTeamTrimsName(t *testing.T) {
	t.Parallel()

	svc, store, _ := setupTeamTest(t)
	store.team = &types.Team{ID: "team-1", Name: "old"}

	name := "  Escalations  "
	_, err := svc.UpdateTeam(t.Context(), "team-1", &types.TeamUpdate{Name: &name})
	require.NoError(t, err)

	require.Len(t, store.updates, 1)
	require.NotNil(t, store.updates[0].Name)
	assert.Equal(t, "Escalations", *store.updates[0].Name)
}

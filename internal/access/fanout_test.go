package access

import (
	"context"
	"testing"

	"resource-portal/internal/database"
	"resource-portal/internal/models"
	"resource-portal/internal/store"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return store.New(db, zap.NewNop())
}

func TestComputeGrantsNoSharesIsPublic(t *testing.T) {
	stores := newTestStore(t)
	svc := NewShareService(stores, zap.NewNop())

	grants := svc.ComputeGrants(context.Background(), "owner", nil, nil)

	require.True(t, grants.IsPublic)
	require.Equal(t, []string{"owner"}, grants.UserIDs)
	require.Empty(t, grants.GroupIDs)
}

func TestComputeGrantsExpandsGroupMembership(t *testing.T) {
	stores := newTestStore(t)
	svc := NewShareService(stores, zap.NewNop())
	ctx := context.Background()

	group := models.Group{Name: "Equipo", Type: models.GroupTypeWorkgroup, CreatedBy: "m1"}
	require.NoError(t, stores.Groups.Create(ctx, &group))
	require.NoError(t, stores.Groups.InsertMembers(ctx, []models.GroupMembership{
		{GroupID: group.ID, UserID: "m1"},
		{GroupID: group.ID, UserID: "m2"},
		{GroupID: group.ID, UserID: "m3"},
	}))

	grants := svc.ComputeGrants(ctx, "owner", nil, []string{group.ID})

	require.False(t, grants.IsPublic)
	require.Len(t, grants.UserIDs, 4, "3 members plus the owner")
	require.Equal(t, "owner", grants.UserIDs[0], "owner always leads the grant set")
	require.Equal(t, []string{group.ID}, grants.GroupIDs)
}

func TestComputeGrantsEmptyGroupStillAudited(t *testing.T) {
	stores := newTestStore(t)
	svc := NewShareService(stores, zap.NewNop())
	ctx := context.Background()

	group := models.Group{Name: "Vacío", Type: models.GroupTypeWorkgroup, CreatedBy: "someone"}
	require.NoError(t, stores.Groups.Create(ctx, &group))

	grants := svc.ComputeGrants(ctx, "owner", nil, []string{group.ID})
	require.False(t, grants.IsPublic)
	require.Equal(t, []string{"owner"}, grants.UserIDs)
	require.Equal(t, []string{group.ID}, grants.GroupIDs)

	svc.ApplyGrants(ctx, "res-1", grants)
	audits, err := stores.Shares.ListGroupSharesForResource(ctx, "res-1")
	require.NoError(t, err)
	require.Len(t, audits, 1)
}

func TestComputeGrantsDeduplicatesOverlappingSets(t *testing.T) {
	stores := newTestStore(t)
	svc := NewShareService(stores, zap.NewNop())
	ctx := context.Background()

	group := models.Group{Name: "Equipo", Type: models.GroupTypeWorkgroup, CreatedBy: "owner"}
	require.NoError(t, stores.Groups.Create(ctx, &group))
	require.NoError(t, stores.Groups.InsertMembers(ctx, []models.GroupMembership{
		{GroupID: group.ID, UserID: "owner"},
		{GroupID: group.ID, UserID: "u1"},
	}))

	grants := svc.ComputeGrants(ctx, "owner", []string{"u1", "owner"}, []string{group.ID})
	require.ElementsMatch(t, []string{"owner", "u1"}, grants.UserIDs)
}

func TestReplaceGrantsRevokesRemovedUser(t *testing.T) {
	stores := newTestStore(t)
	svc := NewShareService(stores, zap.NewNop())
	ctx := context.Background()

	res := models.Resource{Title: "doc", CreatedBy: "owner", IsPublic: false}
	require.NoError(t, stores.Resources.Create(ctx, &res))

	grants := svc.ComputeGrants(ctx, "owner", []string{"u-kept", "u-removed"}, nil)
	svc.ApplyGrants(ctx, res.ID, grants)

	svc.ReplaceGrants(ctx, res.ID, "owner", []string{"u-kept"}, nil)

	shares, err := stores.Shares.ListForResource(ctx, res.ID)
	require.NoError(t, err)

	verdict := ResolveVisibility("u-removed", &res, shares, nil, nil)
	require.False(t, verdict.Visible)

	keptVerdict := ResolveVisibility("u-kept", &res, shares, nil, nil)
	require.True(t, keptVerdict.Visible)
	require.Equal(t, ClassificationSharedDirect, keptVerdict.Classification)
}

func TestPublicResourceEndToEnd(t *testing.T) {
	stores := newTestStore(t)
	svc := NewShareService(stores, zap.NewNop())
	ctx := context.Background()

	grants := svc.ComputeGrants(ctx, "user-a", nil, nil)
	res := models.Resource{Title: "x", CreatedBy: "user-a", IsPublic: grants.IsPublic}
	require.NoError(t, stores.Resources.Create(ctx, &res))
	svc.ApplyGrants(ctx, res.ID, grants)

	require.True(t, res.IsPublic)

	shares, err := stores.Shares.ListForResource(ctx, res.ID)
	require.NoError(t, err)
	require.Empty(t, shares, "public resources carry no grant rows")

	verdict := ResolveVisibility("user-b", &res, shares, nil, nil)
	require.True(t, verdict.Visible)
	require.Equal(t, ClassificationPublic, verdict.Classification)
}

func TestGroupShareEndToEnd(t *testing.T) {
	stores := newTestStore(t)
	svc := NewShareService(stores, zap.NewNop())
	ctx := context.Background()

	group := models.Group{Name: "G", Type: models.GroupTypeWorkgroup, CreatedBy: "user-a"}
	require.NoError(t, stores.Groups.Create(ctx, &group))
	require.NoError(t, stores.Groups.InsertMembers(ctx, []models.GroupMembership{
		{GroupID: group.ID, UserID: "user-a"},
		{GroupID: group.ID, UserID: "user-c"},
		{GroupID: group.ID, UserID: "user-d"},
	}))

	grants := svc.ComputeGrants(ctx, "user-a", nil, []string{group.ID})
	res := models.Resource{Title: "y", CreatedBy: "user-a", IsPublic: grants.IsPublic}
	require.NoError(t, stores.Resources.Create(ctx, &res))
	svc.ApplyGrants(ctx, res.ID, grants)

	shares, err := stores.Shares.ListForResource(ctx, res.ID)
	require.NoError(t, err)
	shareUsers := make([]string, 0, len(shares))
	for _, s := range shares {
		shareUsers = append(shareUsers, s.UserID)
	}
	require.ElementsMatch(t, []string{"user-a", "user-c", "user-d"}, shareUsers)

	groupShares, err := stores.Shares.ListGroupSharesForResource(ctx, res.ID)
	require.NoError(t, err)
	require.Len(t, groupShares, 1)
	require.Equal(t, group.ID, groupShares[0].GroupID)

	// user-e is in no group and holds no share.
	verdict := ResolveVisibility("user-e", &res, shares, groupShares, nil)
	require.False(t, verdict.Visible)
}

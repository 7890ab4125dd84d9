package aggregate

import (
	"context"
	"testing"
	"time"

	"resource-portal/internal/access"
	"resource-portal/internal/database"
	"resource-portal/internal/models"
	"resource-portal/internal/scope"
	"resource-portal/internal/store"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	stores *store.Store
	svc    *Service
	shares *access.ShareService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	stores := store.New(db, zap.NewNop())
	return &fixture{
		stores: stores,
		svc:    NewService(stores, zap.NewNop()),
		shares: access.NewShareService(stores, zap.NewNop()),
	}
}

func (f *fixture) createResource(t *testing.T, title, owner string, isPublic bool, age time.Duration) *models.Resource {
	t.Helper()
	res := models.Resource{
		Title:     title,
		CreatedBy: owner,
		IsPublic:  isPublic,
		CreatedAt: time.Now().Add(-age),
	}
	require.NoError(t, f.stores.Resources.Create(context.Background(), &res))
	return &res
}

func (f *fixture) shareDirect(t *testing.T, resourceID, userID string) {
	t.Helper()
	require.NoError(t, f.stores.Shares.Insert(context.Background(), []models.Share{
		{ResourceID: resourceID, UserID: userID},
	}))
}

func TestHomeViewDedupOwnedWinsOverStaleShare(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.createResource(t, "mine", "viewer", false, time.Hour)
	// Stale share row pointing back at the owner.
	f.shareDirect(t, res.ID, "viewer")

	page, err := f.svc.BuildPageView(ctx, "viewer", scope.ContextHome, scope.TabGlobal, false)
	require.NoError(t, err)

	require.Len(t, page.Resources, 1)
	assert.Equal(t, access.ClassificationOwned, page.Resources[0].Classification)
	assert.False(t, page.Resources[0].IsSharedWithMe)
}

func TestHomeViewMergesAllSources(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.createResource(t, "owned", "viewer", false, 3*time.Hour)
	f.createResource(t, "public", "someone", true, 2*time.Hour)

	shared := f.createResource(t, "shared", "someone", false, 1*time.Hour)
	f.shareDirect(t, shared.ID, "viewer")

	group := models.Group{Name: "G", Type: models.GroupTypeWorkgroup, CreatedBy: "someone"}
	require.NoError(t, f.stores.Groups.Create(ctx, &group))
	require.NoError(t, f.stores.Groups.InsertMembers(ctx, []models.GroupMembership{
		{GroupID: group.ID, UserID: "viewer"},
	}))
	viaGroup := f.createResource(t, "via-group", "someone", false, 30*time.Minute)
	require.NoError(t, f.stores.Shares.InsertGroupShares(ctx, []models.GroupShare{
		{ResourceID: viaGroup.ID, GroupID: group.ID},
	}))

	// Invisible to the viewer: private, unshared.
	f.createResource(t, "hidden", "someone", false, 10*time.Minute)

	page, err := f.svc.BuildPageView(ctx, "viewer", scope.ContextHome, scope.TabGlobal, false)
	require.NoError(t, err)

	titles := []string{}
	for _, r := range page.Resources {
		titles = append(titles, r.Title)
	}
	assert.ElementsMatch(t, []string{"owned", "public", "shared", "via-group"}, titles)

	// Newest first.
	assert.Equal(t, "via-group", page.Resources[0].Title)

	byTitle := map[string]AnnotatedResource{}
	for _, r := range page.Resources {
		byTitle[r.Title] = r
	}
	assert.True(t, byTitle["shared"].IsSharedWithMe)
	assert.True(t, byTitle["via-group"].IsSharedWithMe)
	assert.Equal(t, access.ClassificationSharedGroup, byTitle["via-group"].Classification)
	assert.False(t, byTitle["owned"].IsSharedWithMe)
}

func TestMineViewOnlyOwnedResources(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.createResource(t, "mine", "viewer", true, time.Hour)
	other := f.createResource(t, "not-mine", "someone", false, time.Hour)
	f.shareDirect(t, other.ID, "viewer")

	page, err := f.svc.BuildPageView(ctx, "viewer", scope.ContextMine, "", false)
	require.NoError(t, err)

	require.Len(t, page.Resources, 1)
	assert.Equal(t, "mine", page.Resources[0].Title)
	assert.Equal(t, access.ClassificationOwned, page.Resources[0].Classification)
}

func TestSharedViewExcludesOwnResources(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	own := f.createResource(t, "own", "viewer", false, time.Hour)
	f.shareDirect(t, own.ID, "viewer")

	incoming := f.createResource(t, "incoming", "someone", false, 30*time.Minute)
	f.shareDirect(t, incoming.ID, "viewer")

	page, err := f.svc.BuildPageView(ctx, "viewer", scope.ContextShared, "", false)
	require.NoError(t, err)

	require.Len(t, page.Resources, 1)
	assert.Equal(t, "incoming", page.Resources[0].Title)
	assert.True(t, page.Resources[0].IsSharedWithMe)
}

func TestSharedViewDeduplicatesDirectAndGroup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	group := models.Group{Name: "G", Type: models.GroupTypeWorkgroup, CreatedBy: "someone"}
	require.NoError(t, f.stores.Groups.Create(ctx, &group))
	require.NoError(t, f.stores.Groups.InsertMembers(ctx, []models.GroupMembership{
		{GroupID: group.ID, UserID: "viewer"},
	}))

	res := f.createResource(t, "both-paths", "someone", false, time.Hour)
	f.shareDirect(t, res.ID, "viewer")
	require.NoError(t, f.stores.Shares.InsertGroupShares(ctx, []models.GroupShare{
		{ResourceID: res.ID, GroupID: group.ID},
	}))

	page, err := f.svc.BuildPageView(ctx, "viewer", scope.ContextShared, "", false)
	require.NoError(t, err)

	require.Len(t, page.Resources, 1)
	assert.Equal(t, access.ClassificationSharedDirect, page.Resources[0].Classification)
}

func TestFavoritesViewAndToggleLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.createResource(t, "z", "viewer", true, time.Hour)

	// Before any toggle the overlay is empty.
	favs, err := f.stores.Favorites.ResourceIDsForUser(ctx, "viewer")
	require.NoError(t, err)
	assert.NotContains(t, favs, res.ID)

	require.NoError(t, f.stores.Favorites.Insert(ctx, "viewer", res.ID))

	page, err := f.svc.BuildPageView(ctx, "viewer", scope.ContextFavorites, "", false)
	require.NoError(t, err)
	require.Len(t, page.Resources, 1)
	assert.True(t, page.Resources[0].IsFavorite)

	// Un-favorite: the row disappears and the flag drops.
	fav, err := f.stores.Favorites.Get(ctx, "viewer", res.ID)
	require.NoError(t, err)
	require.NotNil(t, fav)
	require.NoError(t, f.stores.Favorites.Delete(ctx, fav.ID))

	favs, err = f.stores.Favorites.ResourceIDsForUser(ctx, "viewer")
	require.NoError(t, err)
	assert.NotContains(t, favs, res.ID)

	page, err = f.svc.BuildPageView(ctx, "viewer", scope.ContextFavorites, "", false)
	require.NoError(t, err)
	assert.Empty(t, page.Resources)
}

func TestHomeViewFavoriteOverlay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.createResource(t, "starred", "viewer", true, time.Hour)
	f.createResource(t, "plain", "viewer", true, 2*time.Hour)
	require.NoError(t, f.stores.Favorites.Insert(ctx, "viewer", res.ID))

	page, err := f.svc.BuildPageView(ctx, "viewer", scope.ContextHome, scope.TabGlobal, false)
	require.NoError(t, err)

	byTitle := map[string]AnnotatedResource{}
	for _, r := range page.Resources {
		byTitle[r.Title] = r
	}
	assert.True(t, byTitle["starred"].IsFavorite)
	assert.False(t, byTitle["plain"].IsFavorite)
}

func TestHomeViewFoldersFollowTabScope(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.stores.Folders.Create(ctx, &models.Folder{Name: "Global", UserID: "admin", IsGlobal: true}))
	category := "Comunicaciones"
	require.NoError(t, f.stores.Folders.Create(ctx, &models.Folder{Name: "Prensa", UserID: "admin", Category: &category}))

	globalPage, err := f.svc.BuildPageView(ctx, "viewer", scope.ContextHome, scope.TabGlobal, false)
	require.NoError(t, err)
	require.Len(t, globalPage.Folders, 1)
	assert.Equal(t, "Global", globalPage.Folders[0].Name)

	commsPage, err := f.svc.BuildPageView(ctx, "viewer", scope.ContextHome, "Comunicaciones", false)
	require.NoError(t, err)
	require.Len(t, commsPage.Folders, 1)
	assert.Equal(t, "Prensa", commsPage.Folders[0].Name)
}

func TestSharedAndFavoritesFoldersAreViewerSilos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sharedView := scope.CategorySharedView
	require.NoError(t, f.stores.Folders.Create(ctx, &models.Folder{Name: "Para leer", UserID: "viewer", Category: &sharedView}))
	require.NoError(t, f.stores.Folders.Create(ctx, &models.Folder{Name: "Ajena", UserID: "other", Category: &sharedView}))

	page, err := f.svc.BuildPageView(ctx, "viewer", scope.ContextShared, "", false)
	require.NoError(t, err)
	require.Len(t, page.Folders, 1)
	assert.Equal(t, "Para leer", page.Folders[0].Name)
}

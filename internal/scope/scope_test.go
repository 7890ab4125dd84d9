package scope

import (
	"testing"

	"resource-portal/internal/apperr"
	"resource-portal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestGlobalFolderScope(t *testing.T) {
	folder := &models.Folder{ID: "f1", UserID: "viewer", IsGlobal: true, Category: nil}

	assert.True(t, InScope(folder, Query{Context: ContextHome, Tab: TabGlobal, ViewerID: "viewer"}))
	assert.False(t, InScope(folder, Query{Context: ContextHome, Tab: "Comunicaciones", ViewerID: "viewer"}))
	// Global folders never show in the private silo, even for their owner.
	assert.False(t, InScope(folder, Query{Context: ContextMine, ViewerID: "viewer"}))
}

func TestGlobalTabIgnoresCategoryLabel(t *testing.T) {
	// A global folder that somehow carries a label still matches by flag.
	folder := &models.Folder{ID: "f1", UserID: "u", IsGlobal: true, Category: strptr("RRHH")}
	assert.True(t, InScope(folder, Query{Context: ContextHome, Tab: TabGlobal}))
}

func TestSystemCategoryTabMatchesExactly(t *testing.T) {
	folder := &models.Folder{ID: "f1", UserID: "u", Category: strptr("Comunicaciones")}

	assert.True(t, InScope(folder, Query{Context: ContextHome, Tab: "Comunicaciones"}))
	assert.False(t, InScope(folder, Query{Context: ContextHome, Tab: "Admisión"}))
	assert.False(t, InScope(folder, Query{Context: ContextHome, Tab: TabGlobal}))
}

func TestAllTabIsAdminOnly(t *testing.T) {
	folder := &models.Folder{ID: "f1", UserID: "u", Category: strptr("Finanzas")}

	assert.True(t, InScope(folder, Query{Context: ContextHome, Tab: TabAll, IsAdmin: true}))
	assert.False(t, InScope(folder, Query{Context: ContextHome, Tab: TabAll, IsAdmin: false}))
}

func TestSyntheticSilosNeverLeakIntoHome(t *testing.T) {
	fav := &models.Folder{ID: "f1", UserID: "u", Category: strptr(CategoryFavoritesView)}
	shared := &models.Folder{ID: "f2", UserID: "u", Category: strptr(CategorySharedView)}

	assert.False(t, InScope(fav, Query{Context: ContextHome, Tab: TabAll, IsAdmin: true}))
	assert.False(t, InScope(shared, Query{Context: ContextHome, Tab: TabAll, IsAdmin: true}))
}

func TestSyntheticSiloScopeRequiresOwnership(t *testing.T) {
	fav := &models.Folder{ID: "f1", UserID: "owner", Category: strptr(CategoryFavoritesView)}

	assert.True(t, InScope(fav, Query{Context: ContextFavorites, ViewerID: "owner"}))
	assert.False(t, InScope(fav, Query{Context: ContextFavorites, ViewerID: "other"}))
	assert.False(t, InScope(fav, Query{Context: ContextShared, ViewerID: "owner"}))
}

func TestPrivateSiloScope(t *testing.T) {
	private := &models.Folder{ID: "f1", UserID: "owner", IsGlobal: false, Category: nil}

	assert.True(t, InScope(private, Query{Context: ContextMine, ViewerID: "owner"}))
	assert.False(t, InScope(private, Query{Context: ContextMine, ViewerID: "other"}))
}

func TestTargetSiloForCreate(t *testing.T) {
	tests := []struct {
		name    string
		q       Query
		want    Silo
		wantErr bool
	}{
		{
			name: "globales tab forces global with no category",
			q:    Query{Context: ContextHome, Tab: TabGlobal},
			want: Silo{IsGlobal: true},
		},
		{
			name: "system category tab forces non-global",
			q:    Query{Context: ContextHome, Tab: "Comunicaciones"},
			want: Silo{Category: strptr("Comunicaciones")},
		},
		{
			name: "todos tab resolves for admin",
			q:    Query{Context: ContextHome, Tab: TabAll, IsAdmin: true},
			want: Silo{IsGlobal: true},
		},
		{
			name:    "todos tab is ambiguous for non-admin",
			q:       Query{Context: ContextHome, Tab: TabAll},
			wantErr: true,
		},
		{
			name:    "unknown tab rejected",
			q:       Query{Context: ContextHome, Tab: "Inventado"},
			wantErr: true,
		},
		{
			name: "mine context creates private folders",
			q:    Query{Context: ContextMine},
			want: Silo{},
		},
		{
			name: "favorites context targets its synthetic silo",
			q:    Query{Context: ContextFavorites},
			want: Silo{Category: strptr(CategoryFavoritesView)},
		},
		{
			name: "shared context targets its synthetic silo",
			q:    Query{Context: ContextShared},
			want: Silo{Category: strptr(CategorySharedView)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			silo, err := TargetSiloForCreate(tt.q)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.IsGlobal, silo.IsGlobal)
			if tt.want.Category == nil {
				assert.Nil(t, silo.Category)
			} else {
				require.NotNil(t, silo.Category)
				assert.Equal(t, *tt.want.Category, *silo.Category)
			}
		})
	}
}

func TestSameSilo(t *testing.T) {
	globalA := &models.Folder{ID: "a", UserID: "u1", IsGlobal: true}
	globalB := &models.Folder{ID: "b", UserID: "u2", IsGlobal: true}
	privateU1 := &models.Folder{ID: "c", UserID: "u1"}
	privateU2 := &models.Folder{ID: "d", UserID: "u2"}
	comms := &models.Folder{ID: "e", UserID: "u1", Category: strptr("Comunicaciones")}
	commsOther := &models.Folder{ID: "f", UserID: "u2", Category: strptr("Comunicaciones")}
	favU1 := &models.Folder{ID: "g", UserID: "u1", Category: strptr(CategoryFavoritesView)}
	favU2 := &models.Folder{ID: "h", UserID: "u2", Category: strptr(CategoryFavoritesView)}

	assert.True(t, SameSilo(globalA, globalB), "global silo is shared")
	assert.True(t, SameSilo(privateU1, privateU1))
	assert.False(t, SameSilo(privateU1, privateU2), "private silos are per user")
	assert.False(t, SameSilo(globalA, privateU1))
	assert.True(t, SameSilo(comms, commsOther), "category silos span users")
	assert.False(t, SameSilo(comms, privateU1))
	assert.False(t, SameSilo(favU1, favU2), "synthetic silos are per user")
}

func TestFilterFoldersTreeTraversal(t *testing.T) {
	parent := "parent-id"
	folders := []models.Folder{
		{ID: "parent-id", Name: "Raíz", UserID: "u", IsGlobal: true},
		{ID: "child", Name: "Hija", UserID: "u", IsGlobal: true, ParentID: &parent},
		{ID: "other-root", Name: "Otra", UserID: "u", IsGlobal: true},
	}
	q := Query{Context: ContextHome, Tab: TabGlobal, ViewerID: "u"}

	roots := FilterFolders(folders, q, nil, "")
	ids := []string{}
	for _, f := range roots {
		ids = append(ids, f.ID)
	}
	assert.ElementsMatch(t, []string{"parent-id", "other-root"}, ids)

	children := FilterFolders(folders, q, &parent, "")
	require.Len(t, children, 1)
	assert.Equal(t, "child", children[0].ID)
}

func TestFilterFoldersSearchFlattensButKeepsScope(t *testing.T) {
	parent := "parent-id"
	folders := []models.Folder{
		{ID: "parent-id", Name: "Informes", UserID: "u", IsGlobal: true},
		{ID: "child", Name: "Informes 2024", UserID: "u", IsGlobal: true, ParentID: &parent},
		{ID: "private", Name: "Informes privados", UserID: "u", IsGlobal: false},
	}
	q := Query{Context: ContextHome, Tab: TabGlobal, ViewerID: "u"}

	found := FilterFolders(folders, q, nil, "informes")
	ids := []string{}
	for _, f := range found {
		ids = append(ids, f.ID)
	}
	// The nested folder surfaces, the out-of-scope private one does not.
	assert.ElementsMatch(t, []string{"parent-id", "child"}, ids)
}

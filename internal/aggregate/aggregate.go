// Package aggregate builds per-page result sets: it fans out the source
// queries concurrently, merges them into one deduplicated list and applies
// the per-viewer annotation flags.
package aggregate

import (
	"context"
	"sort"
	"sync"

	"resource-portal/internal/access"
	"resource-portal/internal/models"
	"resource-portal/internal/scope"
	"resource-portal/internal/store"

	"go.uber.org/zap"
)

// AnnotatedResource is a resource plus the viewer-specific flags computed
// during aggregation.
type AnnotatedResource struct {
	models.Resource
	Classification access.Classification `json:"classification"`
	IsFavorite     bool                  `json:"is_favorite"`
	IsSharedWithMe bool                  `json:"is_shared_with_me"`
}

// PageView is one fully merged page result.
type PageView struct {
	Resources []AnnotatedResource `json:"resources"`
	Folders   []models.Folder     `json:"folders"`
}

type Service struct {
	stores *store.Store
	logger *zap.Logger
}

func NewService(stores *store.Store, log *zap.Logger) *Service {
	return &Service{stores: stores, logger: log}
}

// BuildPageView assembles the resource and folder lists for one viewing
// context. Source queries run concurrently and merge only after all
// complete; a failed optional source contributes nothing instead of
// failing the page.
func (s *Service) BuildPageView(ctx context.Context, viewerID string, viewCtx scope.Context, tab string, isAdmin bool) (*PageView, error) {
	groupIDs, err := s.stores.Groups.GroupIDsForUser(ctx, viewerID)
	if err != nil {
		s.logger.Error("failed to load viewer groups, group shares skipped",
			zap.String("viewer_id", viewerID),
			zap.Error(err))
		groupIDs = nil
	}

	switch viewCtx {
	case scope.ContextHome:
		return s.buildHome(ctx, viewerID, tab, isAdmin, groupIDs)
	case scope.ContextMine:
		return s.buildMine(ctx, viewerID)
	case scope.ContextFavorites:
		return s.buildFavorites(ctx, viewerID)
	case scope.ContextShared:
		return s.buildShared(ctx, viewerID, groupIDs)
	default:
		return nil, &invalidContextError{ctx: string(viewCtx)}
	}
}

type invalidContextError struct{ ctx string }

func (e *invalidContextError) Error() string { return "unknown view context " + e.ctx }

// buildHome merges owned-or-public, direct shares and group shares; the
// first-inserted entry wins, and insertion order is owned first, so an
// owned resource is never overwritten by its shared annotation.
func (s *Service) buildHome(ctx context.Context, viewerID, tab string, isAdmin bool, groupIDs []string) (*PageView, error) {
	var (
		wg      sync.WaitGroup
		owned   []models.Resource
		direct  []models.Resource
		grouped []models.Resource
		folders []models.Folder
		favs    map[string]struct{}

		ownedErr error
	)

	wg.Add(5)
	go func() {
		defer wg.Done()
		owned, ownedErr = s.stores.Resources.ListOwnedOrPublic(ctx, viewerID)
	}()
	go func() {
		defer wg.Done()
		var err error
		if direct, err = s.stores.Resources.ListSharedWith(ctx, viewerID); err != nil {
			s.logger.Error("direct share query failed", zap.Error(err))
		}
	}()
	go func() {
		defer wg.Done()
		if len(groupIDs) == 0 {
			return
		}
		var err error
		if grouped, err = s.stores.Resources.ListSharedWithGroups(ctx, groupIDs); err != nil {
			s.logger.Error("group share query failed", zap.Error(err))
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if folders, err = s.stores.Folders.ListAll(ctx); err != nil {
			s.logger.Error("folder query failed", zap.Error(err))
		}
	}()
	go func() {
		defer wg.Done()
		favs = s.favoriteSet(ctx, viewerID)
	}()
	wg.Wait()

	// The owned/public source is the page's primary query; its failure
	// fails the view.
	if ownedErr != nil {
		return nil, ownedErr
	}

	seen := make(map[string]int)
	merged := make([]AnnotatedResource, 0, len(owned)+len(direct)+len(grouped))

	insert := func(res models.Resource, fromShares bool) {
		if _, ok := seen[res.ID]; ok {
			return
		}
		classification := access.ClassificationPublic
		switch {
		case res.CreatedBy == viewerID:
			classification = access.ClassificationOwned
		case !fromShares && res.IsPublic:
			classification = access.ClassificationPublic
		case fromShares:
			classification = access.ClassificationSharedDirect
		}
		seen[res.ID] = len(merged)
		merged = append(merged, AnnotatedResource{
			Resource:       res,
			Classification: classification,
			IsSharedWithMe: fromShares && res.CreatedBy != viewerID,
		})
	}

	for _, r := range owned {
		insert(r, false)
	}
	for _, r := range direct {
		insert(r, true)
	}
	for _, r := range grouped {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = len(merged)
		merged = append(merged, AnnotatedResource{
			Resource:       r,
			Classification: access.ClassificationSharedGroup,
			IsSharedWithMe: r.CreatedBy != viewerID,
		})
	}

	applyFavorites(merged, favs)
	sortByNewest(merged)

	q := scope.Query{Context: scope.ContextHome, Tab: tab, ViewerID: viewerID, IsAdmin: isAdmin}
	return &PageView{
		Resources: merged,
		Folders:   scope.FilterFolders(folders, q, nil, ""),
	}, nil
}

func (s *Service) buildMine(ctx context.Context, viewerID string) (*PageView, error) {
	var (
		wg       sync.WaitGroup
		owned    []models.Resource
		folders  []models.Folder
		favs     map[string]struct{}
		ownedErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		owned, ownedErr = s.stores.Resources.ListOwnedBy(ctx, viewerID)
	}()
	go func() {
		defer wg.Done()
		var err error
		if folders, err = s.stores.Folders.ListPrivate(ctx, viewerID); err != nil {
			s.logger.Error("private folder query failed", zap.Error(err))
		}
	}()
	go func() {
		defer wg.Done()
		favs = s.favoriteSet(ctx, viewerID)
	}()
	wg.Wait()

	if ownedErr != nil {
		return nil, ownedErr
	}

	merged := make([]AnnotatedResource, 0, len(owned))
	for _, r := range owned {
		merged = append(merged, AnnotatedResource{
			Resource:       r,
			Classification: access.ClassificationOwned,
		})
	}
	applyFavorites(merged, favs)
	sortByNewest(merged)

	return &PageView{Resources: merged, Folders: folders}, nil
}

func (s *Service) buildFavorites(ctx context.Context, viewerID string) (*PageView, error) {
	var (
		wg        sync.WaitGroup
		favorites []models.Resource
		folders   []models.Folder
		favErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		favorites, favErr = s.stores.Favorites.ListResourcesFor(ctx, viewerID)
	}()
	go func() {
		defer wg.Done()
		var err error
		if folders, err = s.stores.Folders.ListByCategory(ctx, viewerID, scope.CategoryFavoritesView); err != nil {
			s.logger.Error("favorites folder query failed", zap.Error(err))
		}
	}()
	wg.Wait()

	if favErr != nil {
		return nil, favErr
	}

	merged := make([]AnnotatedResource, 0, len(favorites))
	for _, r := range favorites {
		classification := access.ClassificationPublic
		if r.CreatedBy == viewerID {
			classification = access.ClassificationOwned
		}
		merged = append(merged, AnnotatedResource{
			Resource:       r,
			Classification: classification,
			IsFavorite:     true,
		})
	}
	sortByNewest(merged)

	return &PageView{Resources: merged, Folders: folders}, nil
}

// buildShared unions direct and group shares. Ownership is impossible by
// construction here, so every entry is flagged shared-with-me.
func (s *Service) buildShared(ctx context.Context, viewerID string, groupIDs []string) (*PageView, error) {
	var (
		wg        sync.WaitGroup
		direct    []models.Resource
		grouped   []models.Resource
		folders   []models.Folder
		favs      map[string]struct{}
		directErr error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		direct, directErr = s.stores.Resources.ListSharedWith(ctx, viewerID)
	}()
	go func() {
		defer wg.Done()
		if len(groupIDs) == 0 {
			return
		}
		var err error
		if grouped, err = s.stores.Resources.ListSharedWithGroups(ctx, groupIDs); err != nil {
			s.logger.Error("group share query failed", zap.Error(err))
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if folders, err = s.stores.Folders.ListByCategory(ctx, viewerID, scope.CategorySharedView); err != nil {
			s.logger.Error("shared folder query failed", zap.Error(err))
		}
	}()
	go func() {
		defer wg.Done()
		favs = s.favoriteSet(ctx, viewerID)
	}()
	wg.Wait()

	if directErr != nil {
		return nil, directErr
	}

	seen := make(map[string]struct{})
	merged := make([]AnnotatedResource, 0, len(direct)+len(grouped))
	insert := func(res models.Resource, classification access.Classification) {
		if _, ok := seen[res.ID]; ok {
			return
		}
		// The viewer's own resources never reach this page, even through a
		// stale share row.
		if res.CreatedBy == viewerID {
			return
		}
		seen[res.ID] = struct{}{}
		merged = append(merged, AnnotatedResource{
			Resource:       res,
			Classification: classification,
			IsSharedWithMe: true,
		})
	}
	for _, r := range direct {
		insert(r, access.ClassificationSharedDirect)
	}
	for _, r := range grouped {
		insert(r, access.ClassificationSharedGroup)
	}

	applyFavorites(merged, favs)
	sortByNewest(merged)

	return &PageView{Resources: merged, Folders: folders}, nil
}

// favoriteSet loads the viewer's favorite overlay; a failure just yields
// an empty overlay.
func (s *Service) favoriteSet(ctx context.Context, viewerID string) map[string]struct{} {
	favs, err := s.stores.Favorites.ResourceIDsForUser(ctx, viewerID)
	if err != nil {
		s.logger.Error("favorite overlay query failed", zap.Error(err))
		return map[string]struct{}{}
	}
	return favs
}

func applyFavorites(resources []AnnotatedResource, favs map[string]struct{}) {
	if len(favs) == 0 {
		return
	}
	for i := range resources {
		if _, ok := favs[resources[i].ID]; ok {
			resources[i].IsFavorite = true
		}
	}
}

// sortByNewest orders by created_at descending with a stable id tiebreak.
func sortByNewest(resources []AnnotatedResource) {
	sort.SliceStable(resources, func(i, j int) bool {
		if resources[i].CreatedAt.Equal(resources[j].CreatedAt) {
			return resources[i].ID < resources[j].ID
		}
		return resources[i].CreatedAt.After(resources[j].CreatedAt)
	})
}

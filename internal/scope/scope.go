// Package scope partitions the folder namespace into silos and decides
// which folders are visible in a given viewing context. Folders in
// different silos are never scope-visible to each other.
package scope

import (
	"strings"

	"resource-portal/internal/apperr"
	"resource-portal/internal/models"
)

// Context is the page view the folders are being resolved for.
type Context string

const (
	ContextHome      Context = "home"
	ContextMine      Context = "mine"
	ContextFavorites Context = "favorites"
	ContextShared    Context = "shared"
)

// Tabs of the home dashboard. Named system categories form their own tabs.
const (
	TabAll    = "Todos"
	TabGlobal = "Globales"
)

// Synthetic silo markers: per-view folder namespaces that exist only so a
// user can organize a filtered view.
const (
	CategoryFavoritesView = "favorites_view"
	CategorySharedView    = "shared_view"
)

// SystemCategories are the named category tabs of the home dashboard.
var SystemCategories = []string{
	"Comunicaciones",
	"Admisión",
	"Inducción",
	"Secretaría General",
	"Gestión de Personas",
	"Finanzas",
	"Asuntos Académicos",
	"Asuntos Económicos & Administrativos",
	"Desarrollo",
}

// IsSystemCategory reports whether the tab names one of the fixed system
// category silos.
func IsSystemCategory(tab string) bool {
	for _, c := range SystemCategories {
		if c == tab {
			return true
		}
	}
	return false
}

// Query is the viewing context a folder is resolved against.
type Query struct {
	Context  Context
	Tab      string // home only
	ViewerID string
	IsAdmin  bool
}

// InScope decides whether the folder is visible in the given context.
func InScope(f *models.Folder, q Query) bool {
	switch q.Context {
	case ContextHome:
		return inHomeScope(f, q)
	case ContextMine:
		return f.UserID == q.ViewerID && !f.IsGlobal && f.Category == nil
	case ContextFavorites:
		return f.UserID == q.ViewerID && f.Category != nil && *f.Category == CategoryFavoritesView
	case ContextShared:
		return f.UserID == q.ViewerID && f.Category != nil && *f.Category == CategorySharedView
	default:
		return false
	}
}

func inHomeScope(f *models.Folder, q Query) bool {
	// Synthetic silos never leak into the dashboard.
	if f.Category != nil && (*f.Category == CategoryFavoritesView || *f.Category == CategorySharedView) {
		return false
	}
	switch q.Tab {
	case TabAll:
		return q.IsAdmin
	case TabGlobal:
		// Category is ignored for matching; the flag alone decides.
		return f.IsGlobal
	default:
		return f.Category != nil && *f.Category == q.Tab
	}
}

// Silo is the (is_global, category) target a new folder is created into.
type Silo struct {
	IsGlobal bool
	Category *string
}

// TargetSiloForCreate resolves the silo a folder created in this context
// belongs to. An ambiguous tab (e.g. "Todos" for a non-admin) is a
// validation error, never a silent default.
func TargetSiloForCreate(q Query) (Silo, error) {
	switch q.Context {
	case ContextMine:
		return Silo{}, nil
	case ContextFavorites:
		category := CategoryFavoritesView
		return Silo{Category: &category}, nil
	case ContextShared:
		category := CategorySharedView
		return Silo{Category: &category}, nil
	case ContextHome:
		switch {
		case q.Tab == TabGlobal:
			// Global folders carry no category label.
			return Silo{IsGlobal: true}, nil
		case q.Tab == TabAll:
			if q.IsAdmin {
				return Silo{IsGlobal: true}, nil
			}
			return Silo{}, apperr.Validation("select a specific category to create folders")
		case IsSystemCategory(q.Tab):
			category := q.Tab
			return Silo{Category: &category}, nil
		default:
			return Silo{}, apperr.Validation("unknown dashboard tab %q", q.Tab)
		}
	default:
		return Silo{}, apperr.Validation("unknown folder context %q", string(q.Context))
	}
}

// SameSilo reports whether a child folder may hang under the parent:
// parent/child links must stay within one silo.
func SameSilo(parent, child *models.Folder) bool {
	if parent.IsGlobal != child.IsGlobal {
		return false
	}
	switch {
	case parent.Category == nil && child.Category == nil:
		// Global silo is shared; private silos are per-user.
		return parent.IsGlobal || parent.UserID == child.UserID
	case parent.Category != nil && child.Category != nil:
		if *parent.Category != *child.Category {
			return false
		}
		if *parent.Category == CategoryFavoritesView || *parent.Category == CategorySharedView {
			return parent.UserID == child.UserID
		}
		return true
	default:
		return false
	}
}

// FilterFolders applies InScope plus the tree position filter. A non-empty
// search flattens the scope (no parent filter) but never widens it.
func FilterFolders(folders []models.Folder, q Query, currentFolderID *string, search string) []models.Folder {
	out := make([]models.Folder, 0, len(folders))
	for i := range folders {
		f := &folders[i]
		if !InScope(f, q) {
			continue
		}
		if search != "" {
			if strings.Contains(strings.ToLower(f.Name), strings.ToLower(search)) {
				out = append(out, *f)
			}
			continue
		}
		if matchesParent(f.ParentID, currentFolderID) {
			out = append(out, *f)
		}
	}
	return out
}

func matchesParent(parentID, currentID *string) bool {
	if currentID == nil {
		return parentID == nil
	}
	return parentID != nil && *parentID == *currentID
}

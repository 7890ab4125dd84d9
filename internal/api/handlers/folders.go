package handlers

import (
	"errors"
	"net/http"

	"resource-portal/internal/apperr"
	"resource-portal/internal/api/middleware"
	"resource-portal/internal/models"
	"resource-portal/internal/scope"

	"github.com/gin-gonic/gin"
)

// CreateFolder creates a folder inside the silo the viewing context
// resolves to. An ambiguous context is rejected, never defaulted.
func CreateFolder(c *gin.Context) {
	viewerID := middleware.ViewerID(c)

	var input struct {
		Name     string  `json:"name" binding:"required,min=1,max=255"`
		ParentID *string `json:"parent_id"`
		Context  string  `json:"context" binding:"required"`
		Tab      string  `json:"tab"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: folder name and context are required"})
		return
	}

	q := scope.Query{
		Context:  scope.Context(input.Context),
		Tab:      input.Tab,
		ViewerID: viewerID,
		IsAdmin:  middleware.IsAdmin(c),
	}

	silo, err := scope.TargetSiloForCreate(q)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	folder := models.Folder{
		Name:     input.Name,
		ParentID: input.ParentID,
		UserID:   viewerID,
		IsGlobal: silo.IsGlobal,
		Category: silo.Category,
	}

	if input.ParentID != nil {
		parent, err := stores.Folders.ByID(c.Request.Context(), *input.ParentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent folder not found"})
			return
		}
		if !scope.SameSilo(parent, &folder) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent folder belongs to a different silo"})
			return
		}
	}

	if err := stores.Folders.Create(c.Request.Context(), &folder); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create folder"})
		return
	}

	c.JSON(http.StatusCreated, folder)
}

// ListFolders lists the folders in scope for a context (and tab within
// home), optionally positioned under a parent or flattened by search.
func ListFolders(c *gin.Context) {
	viewerID := middleware.ViewerID(c)
	ctx := c.Request.Context()

	q := scope.Query{
		Context:  scope.Context(c.DefaultQuery("context", string(scope.ContextHome))),
		Tab:      c.Query("tab"),
		ViewerID: viewerID,
		IsAdmin:  middleware.IsAdmin(c),
	}

	var (
		folders []models.Folder
		err     error
	)
	switch q.Context {
	case scope.ContextMine:
		folders, err = stores.Folders.ListPrivate(ctx, viewerID)
	case scope.ContextFavorites:
		folders, err = stores.Folders.ListByCategory(ctx, viewerID, scope.CategoryFavoritesView)
	case scope.ContextShared:
		folders, err = stores.Folders.ListByCategory(ctx, viewerID, scope.CategorySharedView)
	default:
		folders, err = stores.Folders.ListAll(ctx)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch folders"})
		return
	}

	var currentFolderID *string
	if parent := c.Query("parent_id"); parent != "" && parent != "root" {
		currentFolderID = &parent
	}

	result := scope.FilterFolders(folders, q, currentFolderID, c.Query("search"))
	c.JSON(http.StatusOK, gin.H{"folders": result})
}

// UpdateFolder renames a folder. Owner only; admins may also rename
// global folders.
func UpdateFolder(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required,min=1,max=255"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Folder name is required"})
		return
	}

	folder, ok := loadManagedFolder(c)
	if !ok {
		return
	}

	if err := stores.Folders.Rename(c.Request.Context(), folder.ID, input.Name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rename folder"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Folder renamed"})
}

// DeleteFolder removes an empty folder. Deleting a folder that still holds
// resources or child folders is rejected.
func DeleteFolder(c *gin.Context) {
	folder, ok := loadManagedFolder(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	resourceCount, err := stores.Resources.CountInFolder(ctx, folder.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check folder contents"})
		return
	}
	childCount, err := stores.Folders.CountChildren(ctx, folder.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check folder contents"})
		return
	}
	if resourceCount > 0 || childCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete a folder that is not empty"})
		return
	}

	if err := stores.Folders.Delete(ctx, folder.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete folder"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Folder deleted"})
}

// loadManagedFolder fetches the folder and enforces the mutation rule:
// owner always, admin additionally for global folders.
func loadManagedFolder(c *gin.Context) (*models.Folder, bool) {
	folder, err := stores.Folders.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load folder"})
		}
		return nil, false
	}

	viewerID := middleware.ViewerID(c)
	if folder.UserID != viewerID && !(folder.IsGlobal && middleware.IsAdmin(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return nil, false
	}
	return folder, true
}

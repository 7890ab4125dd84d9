package handlers

import (
	"errors"
	"net/http"

	"resource-portal/internal/access"
	"resource-portal/internal/apperr"
	"resource-portal/internal/api/middleware"
	"resource-portal/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type resourceInput struct {
	Title        string   `json:"title" binding:"required,min=1,max=255"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	Link         string   `json:"link"`
	FileURL      string   `json:"file_url"`
	FilePath     string   `json:"file_path"`
	FileType     string   `json:"file_type"`
	FileSize     int64    `json:"file_size"`
	Color        string   `json:"color"`
	FolderID     *string  `json:"folder_id"`
	SharedWith   []string `json:"shared_with"`
	SharedGroups []string `json:"shared_groups"`
}

// CreateResource saves a resource and fans its share request out into
// individual grants. The resource row is the primary write; share inserts
// are best effort.
func CreateResource(c *gin.Context) {
	viewerID := middleware.ViewerID(c)

	var input resourceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: title is required"})
		return
	}

	if input.FolderID != nil && *input.FolderID != "" {
		if _, err := stores.Folders.ByID(c.Request.Context(), *input.FolderID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Folder not found"})
			return
		}
	} else {
		input.FolderID = nil
	}

	category := input.Category
	if category == "" {
		category = "Otros"
	}

	fileURL := input.Link
	fileType := input.FileType
	if fileURL != "" && fileType == "" {
		fileType = "link"
	}
	if fileURL == "" {
		fileURL = input.FileURL
	}

	grants := shareSvc.ComputeGrants(c.Request.Context(), viewerID, input.SharedWith, input.SharedGroups)

	resource := models.Resource{
		Title:         input.Title,
		Description:   input.Description,
		Category:      category,
		Tags:          input.Tags,
		FileURL:       fileURL,
		FilePath:      input.FilePath,
		FileType:      fileType,
		FileSize:      input.FileSize,
		DominantColor: input.Color,
		CreatedBy:     viewerID,
		IsPublic:      grants.IsPublic,
		FolderID:      input.FolderID,
		Version:       1,
	}

	if err := stores.Resources.Create(c.Request.Context(), &resource); err != nil {
		log.Error("resource create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save resource"})
		return
	}

	shareSvc.ApplyGrants(c.Request.Context(), resource.ID, grants)

	c.JSON(http.StatusCreated, resource)
}

// GetResource returns one resource after resolving visibility for the
// viewer against current share state.
func GetResource(c *gin.Context) {
	viewerID := middleware.ViewerID(c)
	ctx := c.Request.Context()

	resource, err := stores.Resources.ByID(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}

	directShares, err := stores.Shares.ListForResource(ctx, resource.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load shares"})
		return
	}
	groupShares, err := stores.Shares.ListGroupSharesForResource(ctx, resource.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load shares"})
		return
	}
	viewerGroups, err := stores.Groups.GroupIDsForUser(ctx, viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load groups"})
		return
	}

	verdict := access.ResolveVisibility(viewerID, resource, directShares, groupShares, viewerGroups)
	if !verdict.Visible {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}

	fav, err := stores.Favorites.Get(ctx, viewerID, resource.ID)
	if err != nil {
		fav = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"resource":          resource,
		"classification":    verdict.Classification,
		"is_shared_with_me": access.SharedWithMe(viewerID, resource, verdict),
		"is_favorite":       fav != nil,
		"shares":            directShares,
		"group_shares":      groupShares,
	})
}

// UpdateResource edits title and description. Only the creator or an admin
// may mutate a resource.
func UpdateResource(c *gin.Context) {
	viewerID := middleware.ViewerID(c)

	var input struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	resource, err := stores.Resources.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}
	if resource.CreatedBy != viewerID && !middleware.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	updates := map[string]interface{}{
		"title":       input.Title,
		"description": input.Description,
	}
	if err := stores.Resources.Update(c.Request.Context(), resource.ID, updates); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update resource"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Resource updated"})
}

// ReplaceResourceShares is the explicit two-phase share edit: all grants
// are deleted, then the fan-out re-runs from the new explicit sets. The
// phases are not atomic. is_public stays whatever creation derived.
func ReplaceResourceShares(c *gin.Context) {
	viewerID := middleware.ViewerID(c)

	var input struct {
		SharedWith   []string `json:"shared_with"`
		SharedGroups []string `json:"shared_groups"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid share sets"})
		return
	}

	resource, err := stores.Resources.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}
	if resource.CreatedBy != viewerID && !middleware.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	grants := shareSvc.ReplaceGrants(c.Request.Context(), resource.ID, resource.CreatedBy, input.SharedWith, input.SharedGroups)

	c.JSON(http.StatusOK, gin.H{
		"granted_users": grants.UserIDs,
		"shared_groups": grants.GroupIDs,
	})
}

// DeleteResource soft-deletes a resource. Creator or admin only.
func DeleteResource(c *gin.Context) {
	viewerID := middleware.ViewerID(c)

	resource, err := stores.Resources.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load resource"})
		return
	}
	if resource.CreatedBy != viewerID && !middleware.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	if err := stores.Resources.Delete(c.Request.Context(), resource.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete resource"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Resource deleted"})
}

// IncrementDownload bumps the download counter.
func IncrementDownload(c *gin.Context) {
	if err := stores.Resources.IncrementDownloads(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record download"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Download recorded"})
}

// SuggestMetadata asks the AI collaborator for metadata hints. A nil
// suggestion is a normal outcome, never an error.
func SuggestMetadata(c *gin.Context) {
	var input struct {
		URL      string `json:"url"`
		Filename string `json:"filename"`
		FileType string `json:"file_type"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || (input.URL == "" && input.Filename == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide a url or a filename"})
		return
	}

	var suggestion interface{}
	if input.URL != "" {
		suggestion = aiClient.SuggestForLink(c.Request.Context(), input.URL)
	} else {
		suggestion = aiClient.SuggestForFile(c.Request.Context(), input.Filename, input.FileType)
	}

	c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
}

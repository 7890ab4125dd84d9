package handlers

import (
	"net/http"

	"resource-portal/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// ToggleFavorite flips the favorite state of a resource for the viewer.
// The check-then-write pair can race with itself; the unique
// (user_id, resource_id) index is the actual guard.
func ToggleFavorite(c *gin.Context) {
	viewerID := middleware.ViewerID(c)
	resourceID := c.Param("id")
	ctx := c.Request.Context()

	existing, err := stores.Favorites.Get(ctx, viewerID, resourceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check favorite"})
		return
	}

	if existing != nil {
		if err := stores.Favorites.Delete(ctx, existing.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"is_favorite": false})
		return
	}

	if err := stores.Favorites.Insert(ctx, viewerID, resourceID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_favorite": true})
}

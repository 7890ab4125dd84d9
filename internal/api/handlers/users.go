package handlers

import (
	"net/http"

	"resource-portal/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// SearchUsers finds users for the member picker. Queries shorter than two
// characters return nothing.
func SearchUsers(c *gin.Context) {
	query := c.Query("q")
	if len(query) < 2 {
		c.JSON(http.StatusOK, gin.H{"users": []interface{}{}})
		return
	}

	users, err := stores.Users.Search(c.Request.Context(), query, 5)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// UpdateProfileSettings updates the viewer's own profile fields.
func UpdateProfileSettings(c *gin.Context) {
	viewerID := middleware.ViewerID(c)

	var input struct {
		FullName string `json:"full_name" binding:"required"`
		Bio      string `json:"bio"`
		Theme    string `json:"theme"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Full name is required"})
		return
	}

	updates := map[string]interface{}{
		"full_name": input.FullName,
		"bio":       input.Bio,
	}
	if input.Theme != "" {
		updates["theme"] = input.Theme
	}

	if err := stores.Users.Update(c.Request.Context(), viewerID, updates); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

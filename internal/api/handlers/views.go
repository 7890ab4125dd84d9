package handlers

import (
	"net/http"

	"resource-portal/internal/api/middleware"
	"resource-portal/internal/scope"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HomeView returns the unified dashboard: owned-or-public resources plus
// everything shared with the viewer, deduplicated.
func HomeView(c *gin.Context) {
	tab := c.DefaultQuery("tab", scope.TabGlobal)
	if middleware.IsAdmin(c) && c.Query("tab") == "" {
		tab = scope.TabAll
	}
	serveView(c, scope.ContextHome, tab)
}

// MineView returns the viewer's own resources and private folder silo.
func MineView(c *gin.Context) {
	serveView(c, scope.ContextMine, "")
}

// FavoritesView returns the viewer's favorited resources and the
// favorites organization silo.
func FavoritesView(c *gin.Context) {
	serveView(c, scope.ContextFavorites, "")
}

// SharedView returns resources shared with the viewer, never their own.
func SharedView(c *gin.Context) {
	serveView(c, scope.ContextShared, "")
}

func serveView(c *gin.Context, viewCtx scope.Context, tab string) {
	viewerID := middleware.ViewerID(c)

	page, err := viewSvc.BuildPageView(c.Request.Context(), viewerID, viewCtx, tab, middleware.IsAdmin(c))
	if err != nil {
		log.Error("page view build failed",
			zap.String("context", string(viewCtx)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load view"})
		return
	}

	c.JSON(http.StatusOK, page)
}

package api

import (
	"resource-portal/internal/api/handlers"
	"resource-portal/internal/api/middleware"
	"resource-portal/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, cfg *config.Config) {
	router.Use(cors.Default())

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
		}

		// Protected routes
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(cfg))
		{
			// Resource routes
			resources := protected.Group("/resources")
			{
				resources.POST("/", handlers.CreateResource)
				resources.POST("/suggest", handlers.SuggestMetadata)
				resources.GET("/:id", handlers.GetResource)
				resources.PUT("/:id", handlers.UpdateResource)
				resources.PUT("/:id/shares", handlers.ReplaceResourceShares)
				resources.DELETE("/:id", handlers.DeleteResource)
				resources.POST("/:id/favorite", handlers.ToggleFavorite)
				resources.POST("/:id/download", handlers.IncrementDownload)
			}

			// Page view routes
			views := protected.Group("/views")
			{
				views.GET("/home", handlers.HomeView)
				views.GET("/mine", handlers.MineView)
				views.GET("/favorites", handlers.FavoritesView)
				views.GET("/shared", handlers.SharedView)
			}

			// Folder routes
			folders := protected.Group("/folders")
			{
				folders.POST("/", handlers.CreateFolder)
				folders.GET("/", handlers.ListFolders)
				folders.PUT("/:id", handlers.UpdateFolder)
				folders.DELETE("/:id", handlers.DeleteFolder)
			}

			// Group routes
			groups := protected.Group("/groups")
			{
				groups.GET("/", handlers.ListGroups)
				groups.POST("/", handlers.CreateGroup)
				groups.PUT("/:id", handlers.UpdateGroup)
				groups.DELETE("/:id", handlers.DeleteGroup)
			}

			// User routes
			protected.GET("/users/search", handlers.SearchUsers)
			protected.PUT("/settings/profile", handlers.UpdateProfileSettings)
		}
	}
}

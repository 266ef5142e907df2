package routes

import (
	"bijoux-backend/handlers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize handlers
	productHandler := &handlers.ProductHandler{DB: db}
	categoryHandler := &handlers.CategoryHandler{DB: db}
	cartHandler := &handlers.CartHandler{DB: db}

	api := r.Group("/api")
	{
		// Catalog routes
		api.GET("/products", productHandler.GetProducts)
		api.GET("/products/:id", productHandler.GetProduct)
		api.GET("/products/:id/images", productHandler.GetProductImages)
		api.GET("/products/:id/inventory", productHandler.GetProductInventory)

		api.GET("/categories", categoryHandler.GetCategories)
		api.GET("/categories/:id", categoryHandler.GetCategory)

		// Cart routes
		api.GET("/cart", cartHandler.GetCart)
		api.POST("/cart", cartHandler.AddToCart)
		api.PUT("/cart", cartHandler.UpdateCartItem)
		api.DELETE("/cart", cartHandler.RemoveFromCart)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

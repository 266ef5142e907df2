package handlers

import (
	"errors"
	"net/http"
	"sync"

	"bijoux-backend/dtos"
	"bijoux-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartHandler struct {
	DB *gorm.DB
}

const maxConcurrentLineFetches = 8

func (h *CartHandler) GetCart(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	var items []models.CartItem
	if err := h.DB.Where("user_id = ?", userID).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart items"})
		return
	}

	lines, err := h.buildCartLines(items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart items: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, lines)
}

func (h *CartHandler) AddToCart(c *gin.Context) {
	var req struct {
		UserID    string `json:"userId"`
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.UserID == "" || req.ProductID == "" || req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId, productId, and quantity are required"})
		return
	}

	// An unparseable product id cannot reference any product
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	// Check that the product exists before any write
	var product models.Product
	if err := h.DB.Where("id = ?", productID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		return
	}

	// Check if the pair already has a row; merge instead of duplicating
	var existing models.CartItem
	err = h.DB.Where("user_id = ? AND product_id = ?", req.UserID, productID).First(&existing).Error
	if err == nil {
		h.respondMerged(c, existing.ID, req.Quantity)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		return
	}

	item := models.CartItem{
		ID:        uuid.New(),
		UserID:    req.UserID,
		ProductID: productID,
		Quantity:  req.Quantity,
	}
	if err := h.DB.Create(&item).Error; err != nil {
		// Lost the insert race against a concurrent add for the same pair;
		// the unique index rejected the duplicate, so merge into the row
		// that won.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := h.DB.Where("user_id = ? AND product_id = ?", req.UserID, productID).First(&existing).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
				return
			}
			h.respondMerged(c, existing.ID, req.Quantity)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.ID == "" || req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart item ID and quantity are required"})
		return
	}

	itemID, err := uuid.Parse(req.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	var item models.CartItem
	if err := h.DB.Where("id = ?", itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
		return
	}

	// Overwrite, not accumulate; Save also refreshes updatedAt
	item.Quantity = req.Quantity
	if err := h.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart item ID is required"})
		return
	}

	itemID, err := uuid.Parse(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	var item models.CartItem
	if err := h.DB.Where("id = ?", itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
		return
	}

	if err := h.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Cart item removed successfully",
		"deletedItem": item,
	})
}

// respondMerged accumulates quantity into an existing cart row with an atomic
// increment and writes the 200 merge response.
func (h *CartHandler) respondMerged(c *gin.Context, itemID uuid.UUID, add int) {
	if err := h.DB.Model(&models.CartItem{}).Where("id = ?", itemID).
		Update("quantity", gorm.Expr("quantity + ?", add)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		return
	}

	var item models.CartItem
	if err := h.DB.Where("id = ?", itemID).First(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		return
	}

	c.JSON(http.StatusOK, dtos.CartItemWithMessage{
		CartItem: item,
		Message:  "Cart item quantity updated",
	})
}

// buildCartLines resolves each line's product and primary image concurrently.
// Order follows the cart query result; a missing product keeps the line with
// a null product.
func (h *CartHandler) buildCartLines(items []models.CartItem) ([]dtos.CartLine, error) {
	lines := make([]dtos.CartLine, len(items))
	errs := make([]error, len(items))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxConcurrentLineFetches)

	for i := range items {
		wg.Add(1)
		semaphore <- struct{}{} // Acquire

		go func(idx int) {
			defer wg.Done()
			defer func() { <-semaphore }() // Release

			lines[idx], errs[idx] = h.buildCartLine(items[idx])
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return lines, nil
}

func (h *CartHandler) buildCartLine(item models.CartItem) (dtos.CartLine, error) {
	line := dtos.CartLine{CartItem: item}

	var product models.Product
	err := h.DB.Where("id = ?", item.ProductID).First(&product).Error
	if err == nil {
		line.Product = &product
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return line, err
	}

	var images []models.ProductImage
	if err := h.DB.Where("product_id = ? AND is_primary = ?", item.ProductID, true).Limit(1).Find(&images).Error; err != nil {
		return line, err
	}
	if len(images) > 0 {
		line.PrimaryImage = &images[0]
	}

	return line, nil
}

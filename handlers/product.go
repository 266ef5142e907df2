package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"bijoux-backend/dtos"
	"bijoux-backend/models"
	"bijoux-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB *gorm.DB
}

// maxConcurrentDetailFetches bounds the per-product fan-out when resolving
// gemstones, materials and images for a listing.
const maxConcurrentDetailFetches = 8

func (h *ProductHandler) GetProducts(c *gin.Context) {
	query := h.DB

	// Filter by category
	if categoryID := c.Query("categoryId"); categoryID != "" {
		id, err := uuid.Parse(categoryID)
		if err != nil {
			// Not a valid id, nothing can match
			c.JSON(http.StatusOK, []dtos.ProductDetail{})
			return
		}
		query = query.Where("category_id = ?", id)
	}

	// Filter by featured flag; only the literal "true" selects featured rows
	if featured := c.Query("featured"); featured != "" {
		query = query.Where("featured = ?", utils.ParseBoolLiteral(featured))
	}

	// Filter by slug (product detail page lookup)
	if slug := c.Query("slug"); slug != "" {
		query = query.Where("slug = ?", slug)
	}

	// Inclusive price bounds on the base price; discountPrice is a display
	// concern and does not participate in store-level filtering.
	if minPrice := c.Query("minPrice"); minPrice != "" {
		price, err := utils.ParsePrice(minPrice)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid minPrice"})
			return
		}
		query = query.Where("price >= ?", price)
	}
	if maxPrice := c.Query("maxPrice"); maxPrice != "" {
		price, err := utils.ParsePrice(maxPrice)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid maxPrice"})
			return
		}
		query = query.Where("price <= ?", price)
	}

	if limit := c.Query("limit"); limit != "" {
		n, err := utils.ParsePositiveInt(limit)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		query = query.Limit(n)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	details, err := h.buildProductDetails(products)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, details)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var product models.Product
	if err := h.DB.Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	detail, err := h.buildProductDetail(product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GetProductImages returns all images for a product, sortOrder ascending.
func (h *ProductHandler) GetProductImages(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	images := []models.ProductImage{}
	if err := h.DB.Where("product_id = ?", id).Order("sort_order ASC").Find(&images).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product images"})
		return
	}

	c.JSON(http.StatusOK, images)
}

// GetProductInventory returns the product's inventory row, or the synthesized
// default when no row exists.
func (h *ProductHandler) GetProductInventory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var inventory models.Inventory
	if err := h.DB.Where("product_id = ?", id).First(&inventory).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, models.DefaultInventory(id))
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}

	c.JSON(http.StatusOK, inventory)
}

// buildProductDetails resolves references for each product concurrently with a
// semaphore limit. Results preserve the input order; the first sub-fetch error
// fails the whole listing.
func (h *ProductHandler) buildProductDetails(products []models.Product) ([]dtos.ProductDetail, error) {
	details := make([]dtos.ProductDetail, len(products))
	errs := make([]error, len(products))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxConcurrentDetailFetches)

	for i := range products {
		wg.Add(1)
		semaphore <- struct{}{} // Acquire

		go func(idx int) {
			defer wg.Done()
			defer func() { <-semaphore }() // Release

			details[idx], errs[idx] = h.buildProductDetail(products[idx])
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return details, nil
}

func (h *ProductHandler) buildProductDetail(product models.Product) (dtos.ProductDetail, error) {
	detail := dtos.ProductDetail{
		Product:   product,
		Gemstones: []models.Gemstone{},
		Materials: []models.Material{},
	}

	gemstoneIDs, err := product.GemstoneIDList()
	if err != nil {
		return detail, fmt.Errorf("product %s has malformed gemstoneIds: %w", product.ID, err)
	}
	// Never query with an empty id set
	if len(gemstoneIDs) > 0 {
		var gemstones []models.Gemstone
		if err := h.DB.Where("id IN ?", gemstoneIDs).Find(&gemstones).Error; err != nil {
			return detail, err
		}
		if len(gemstones) > 0 {
			detail.Gemstones = gemstones
		}
	}

	materialIDs, err := product.MaterialIDList()
	if err != nil {
		return detail, fmt.Errorf("product %s has malformed materialIds: %w", product.ID, err)
	}
	if len(materialIDs) > 0 {
		var materials []models.Material
		if err := h.DB.Where("id IN ?", materialIDs).Find(&materials).Error; err != nil {
			return detail, err
		}
		if len(materials) > 0 {
			detail.Materials = materials
		}
	}

	// No fallback to an arbitrary image: absent primary flag means null
	var images []models.ProductImage
	if err := h.DB.Where("product_id = ? AND is_primary = ?", product.ID, true).Limit(1).Find(&images).Error; err != nil {
		return detail, err
	}
	if len(images) > 0 {
		detail.PrimaryImage = &images[0]
	}

	return detail, nil
}

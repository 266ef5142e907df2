package dtos

import "bijoux-backend/models"

// ProductDetail is a product with its gemstone, material and primary-image
// references resolved to full objects. Gemstones and Materials are always
// non-nil so they serialize as empty arrays; PrimaryImage is null when no
// image for the product carries the primary flag.
type ProductDetail struct {
	models.Product
	Gemstones    []models.Gemstone    `json:"gemstones"`
	Materials    []models.Material    `json:"materials"`
	PrimaryImage *models.ProductImage `json:"primaryImage"`
}

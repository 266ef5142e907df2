package dtos

import "bijoux-backend/models"

// CartLine is a cart item with its referenced product and primary image
// resolved. Product is null when the product was deleted from the catalog;
// the line is still returned so the user can see and remove it.
type CartLine struct {
	models.CartItem
	Product      *models.Product      `json:"product"`
	PrimaryImage *models.ProductImage `json:"primaryImage"`
}

// CartItemWithMessage is the add-to-cart response when the quantity was
// merged into an existing row.
type CartItemWithMessage struct {
	models.CartItem
	Message string `json:"message"`
}

package dtos

import "bijoux-backend/models"

// CategoryNode is a category with its resolved children. Children is always
// non-nil so leaves serialize as an empty array.
type CategoryNode struct {
	models.Category
	Children []*CategoryNode `json:"children"`
}

package handlers

import (
	"errors"
	"net/http"

	"bijoux-backend/dtos"
	"bijoux-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	DB *gorm.DB
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories := []models.Category{}
	if err := h.DB.Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	_, roots := buildCategoryForest(categories)

	c.JSON(http.StatusOK, gin.H{
		"categories":     categories,
		"rootCategories": roots,
	})
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var category models.Category
	if err := h.DB.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
		return
	}

	c.JSON(http.StatusOK, category)
}

// buildCategoryForest builds the parent/child forest from a flat category
// list in two linear passes. Ordering follows input ordering, both within
// children lists and within roots. A node whose parentId does not resolve is
// a root; a node whose ancestor chain never terminates (a cycle in the data)
// is promoted to a root instead of attached.
func buildCategoryForest(categories []models.Category) (flat []*dtos.CategoryNode, roots []*dtos.CategoryNode) {
	nodes := make(map[uuid.UUID]*dtos.CategoryNode, len(categories))
	flat = make([]*dtos.CategoryNode, 0, len(categories))
	for i := range categories {
		node := &dtos.CategoryNode{Category: categories[i], Children: []*dtos.CategoryNode{}}
		nodes[categories[i].ID] = node
		flat = append(flat, node)
	}

	roots = make([]*dtos.CategoryNode, 0)
	for _, node := range flat {
		if node.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*node.ParentID]
		if !ok || ancestorChainLoops(nodes, node) {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	return flat, roots
}

// ancestorChainLoops reports whether walking node's parentId chain fails to
// reach a terminating root, either by returning to node itself or by cycling
// among its ancestors.
func ancestorChainLoops(nodes map[uuid.UUID]*dtos.CategoryNode, node *dtos.CategoryNode) bool {
	steps := 0
	cur := node.ParentID
	for cur != nil {
		if *cur == node.ID {
			return true
		}
		parent, ok := nodes[*cur]
		if !ok {
			return false
		}
		cur = parent.ParentID
		steps++
		if steps > len(nodes) {
			return true
		}
	}
	return false
}

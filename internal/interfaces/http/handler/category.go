package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/gomu/backend/internal/application/catalog"
)

// CategoryHandler handles category and subcategory endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest is the request body for creating or updating a category
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=2000"`
	Active      *bool  `json:"active"`
}

// SubcategoryRequest is the request body for creating or updating a
// subcategory
type SubcategoryRequest struct {
	CategoryID  int64  `json:"category_id" binding:"required,min=1"`
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=2000"`
	Active      *bool  `json:"active"`
}

// ListCategories handles GET /categories. The storefront passes
// active_only=true; the admin panel omits it to see everything.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	activeOnly, err := queryBool(c, "active_only")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), activeOnly != nil && *activeOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, newCategoryResponse(&categories[i]))
	}
	h.Success(c, out)
}

// GetCategory handles GET /categories/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	category, err := h.categoryService.GetCategory(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newCategoryResponse(category))
}

// CreateCategory handles POST /categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), catalogapp.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, newCategoryResponse(category))
}

// UpdateCategory handles PUT /categories/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), id, catalogapp.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newCategoryResponse(category))
}

// DeleteCategory handles DELETE /categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListSubcategories handles GET /subcategories with an optional
// category_id filter
func (h *CategoryHandler) ListSubcategories(c *gin.Context) {
	categoryID, err := queryInt64(c, "category_id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	subcategories, err := h.categoryService.ListSubcategories(c.Request.Context(), categoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]SubcategoryResponse, 0, len(subcategories))
	for i := range subcategories {
		out = append(out, newSubcategoryResponse(&subcategories[i]))
	}
	h.Success(c, out)
}

// CreateSubcategory handles POST /subcategories
func (h *CategoryHandler) CreateSubcategory(c *gin.Context) {
	var req SubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	subcategory, err := h.categoryService.CreateSubcategory(c.Request.Context(), catalogapp.SubcategoryInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, newSubcategoryResponse(subcategory))
}

// UpdateSubcategory handles PUT /subcategories/:id
func (h *CategoryHandler) UpdateSubcategory(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req SubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	subcategory, err := h.categoryService.UpdateSubcategory(c.Request.Context(), id, catalogapp.SubcategoryInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newSubcategoryResponse(subcategory))
}

// DeleteSubcategory handles DELETE /subcategories/:id
func (h *CategoryHandler) DeleteSubcategory(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.categoryService.DeleteSubcategory(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	catalogapp "github.com/gomu/backend/internal/application/catalog"
	"github.com/gomu/backend/internal/domain/catalog"
)

// ProductHandler handles product endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProductRequest is the request body for creating a product
type CreateProductRequest struct {
	Name                string          `json:"name" binding:"required,min=1,max=150"`
	Description         string          `json:"description" binding:"max=2000"`
	DetailedDescription string          `json:"detailed_description"`
	CategoryID          int64           `json:"category_id" binding:"required,min=1"`
	SubcategoryID       int64           `json:"subcategory_id" binding:"required,min=1"`
	MaterialID          int64           `json:"material_id" binding:"required,min=1"`
	Size                string          `json:"size" binding:"max=50"`
	Color               string          `json:"color" binding:"max=50"`
	ProductionCost      decimal.Decimal `json:"production_cost"`
	SalePrice           decimal.Decimal `json:"sale_price"`
	Stock               int             `json:"stock" binding:"min=0"`
	MainImage           string          `json:"main_image" binding:"max=500"`
	GalleryImages       datatypes.JSON  `json:"gallery_images"`
	IsNew               bool            `json:"is_new"`
	Featured            bool            `json:"featured"`
	TagIDs              []int64         `json:"tag_ids"`
}

// UpdateProductRequest is the request body for partial product updates.
// Absent fields are left untouched; tag_ids, when present, replaces the
// full tag set.
type UpdateProductRequest struct {
	Name                *string          `json:"name" binding:"omitempty,min=1,max=150"`
	Description         *string          `json:"description"`
	DetailedDescription *string          `json:"detailed_description"`
	CategoryID          *int64           `json:"category_id" binding:"omitempty,min=1"`
	SubcategoryID       *int64           `json:"subcategory_id" binding:"omitempty,min=1"`
	MaterialID          *int64           `json:"material_id" binding:"omitempty,min=1"`
	Size                *string          `json:"size"`
	Color               *string          `json:"color"`
	ProductionCost      *decimal.Decimal `json:"production_cost"`
	SalePrice           *decimal.Decimal `json:"sale_price"`
	Stock               *int             `json:"stock" binding:"omitempty,min=0"`
	MainImage           *string          `json:"main_image"`
	GalleryImages       *datatypes.JSON  `json:"gallery_images"`
	IsNew               *bool            `json:"is_new"`
	Featured            *bool            `json:"featured"`
	Active              *bool            `json:"active"`
	TagIDs              []int64          `json:"tag_ids"`
}

// List handles GET /products with filtering and pagination
func (h *ProductHandler) List(c *gin.Context) {
	filter := catalog.ProductFilter{Search: c.Query("search")}
	filter.Page, filter.PageSize = pagination(c)

	var err error
	if filter.CategoryID, err = queryInt64(c, "category_id"); err != nil {
		h.HandleError(c, err)
		return
	}
	if filter.SubcategoryID, err = queryInt64(c, "subcategory_id"); err != nil {
		h.HandleError(c, err)
		return
	}
	if filter.MaterialID, err = queryInt64(c, "material_id"); err != nil {
		h.HandleError(c, err)
		return
	}
	if filter.TagID, err = queryInt64(c, "tag_id"); err != nil {
		h.HandleError(c, err)
		return
	}
	if filter.Featured, err = queryBool(c, "featured"); err != nil {
		h.HandleError(c, err)
		return
	}
	if filter.IsNew, err = queryBool(c, "is_new"); err != nil {
		h.HandleError(c, err)
		return
	}
	activeOnly, err := queryBool(c, "active_only")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	filter.ActiveOnly = activeOnly != nil && *activeOnly

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, newProductResponse(&products[i]))
	}
	h.SuccessWithMeta(c, out, total, filter.Page, filter.PageSize)
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newProductResponse(product))
}

// GetBySlug handles GET /products/slug/:slug, the storefront's detail
// page lookup
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		h.BadRequest(c, "Slug is required")
		return
	}

	product, err := h.productService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newProductResponse(product))
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), catalogapp.ProductCreateInput{
		Name:                req.Name,
		Description:         req.Description,
		DetailedDescription: req.DetailedDescription,
		CategoryID:          req.CategoryID,
		SubcategoryID:       req.SubcategoryID,
		MaterialID:          req.MaterialID,
		Size:                req.Size,
		Color:               req.Color,
		ProductionCost:      req.ProductionCost,
		SalePrice:           req.SalePrice,
		Stock:               req.Stock,
		MainImage:           req.MainImage,
		GalleryImages:       req.GalleryImages,
		IsNew:               req.IsNew,
		Featured:            req.Featured,
		TagIDs:              req.TagIDs,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, newProductResponse(product))
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, catalogapp.ProductUpdateInput{
		Name:                req.Name,
		Description:         req.Description,
		DetailedDescription: req.DetailedDescription,
		CategoryID:          req.CategoryID,
		SubcategoryID:       req.SubcategoryID,
		MaterialID:          req.MaterialID,
		Size:                req.Size,
		Color:               req.Color,
		ProductionCost:      req.ProductionCost,
		SalePrice:           req.SalePrice,
		Stock:               req.Stock,
		MainImage:           req.MainImage,
		GalleryImages:       req.GalleryImages,
		IsNew:               req.IsNew,
		Featured:            req.Featured,
		Active:              req.Active,
		TagIDs:              req.TagIDs,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newProductResponse(product))
}

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

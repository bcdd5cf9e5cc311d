package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/gomu/backend/internal/application/catalog"
)

// TaxonomyHandler handles material and tag endpoints
type TaxonomyHandler struct {
	BaseHandler
	taxonomyService *catalogapp.TaxonomyService
}

// NewTaxonomyHandler creates a new TaxonomyHandler
func NewTaxonomyHandler(taxonomyService *catalogapp.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomyService: taxonomyService}
}

// TaxonomyRequest is the request body for materials and tags
type TaxonomyRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=2000"`
	Active      *bool  `json:"active"`
}

func (r TaxonomyRequest) input() catalogapp.TaxonomyInput {
	return catalogapp.TaxonomyInput{
		Name:        r.Name,
		Description: r.Description,
		Active:      r.Active,
	}
}

// ListMaterials handles GET /materials
func (h *TaxonomyHandler) ListMaterials(c *gin.Context) {
	materials, err := h.taxonomyService.ListMaterials(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]TaxonomyResponse, 0, len(materials))
	for i := range materials {
		out = append(out, newMaterialResponse(&materials[i]))
	}
	h.Success(c, out)
}

// CreateMaterial handles POST /materials
func (h *TaxonomyHandler) CreateMaterial(c *gin.Context) {
	var req TaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	material, err := h.taxonomyService.CreateMaterial(c.Request.Context(), req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, newMaterialResponse(material))
}

// UpdateMaterial handles PUT /materials/:id
func (h *TaxonomyHandler) UpdateMaterial(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req TaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	material, err := h.taxonomyService.UpdateMaterial(c.Request.Context(), id, req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newMaterialResponse(material))
}

// DeleteMaterial handles DELETE /materials/:id
func (h *TaxonomyHandler) DeleteMaterial(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.taxonomyService.DeleteMaterial(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListTags handles GET /tags
func (h *TaxonomyHandler) ListTags(c *gin.Context) {
	tags, err := h.taxonomyService.ListTags(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]TaxonomyResponse, 0, len(tags))
	for i := range tags {
		out = append(out, newTagResponse(&tags[i]))
	}
	h.Success(c, out)
}

// CreateTag handles POST /tags
func (h *TaxonomyHandler) CreateTag(c *gin.Context) {
	var req TaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tag, err := h.taxonomyService.CreateTag(c.Request.Context(), req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, newTagResponse(tag))
}

// UpdateTag handles PUT /tags/:id
func (h *TaxonomyHandler) UpdateTag(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req TaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tag, err := h.taxonomyService.UpdateTag(c.Request.Context(), id, req.input())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newTagResponse(tag))
}

// DeleteTag handles DELETE /tags/:id
func (h *TaxonomyHandler) DeleteTag(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.taxonomyService.DeleteTag(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/gomu/backend/internal/domain/catalog"
)

// TaxonomyService handles material types and tags
type TaxonomyService struct {
	materials catalog.MaterialRepository
	tags      catalog.TagRepository
	logger    *zap.Logger
}

// NewTaxonomyService creates a new taxonomy service
func NewTaxonomyService(
	materials catalog.MaterialRepository,
	tags catalog.TagRepository,
	logger *zap.Logger,
) *TaxonomyService {
	return &TaxonomyService{
		materials: materials,
		tags:      tags,
		logger:    logger,
	}
}

// ListMaterials returns every material type
func (s *TaxonomyService) ListMaterials(ctx context.Context) ([]catalog.Material, error) {
	return s.materials.FindAll(ctx)
}

// CreateMaterial creates a material type
func (s *TaxonomyService) CreateMaterial(ctx context.Context, input TaxonomyInput) (*catalog.Material, error) {
	material, err := catalog.NewMaterial(input.Name, input.Description)
	if err != nil {
		return nil, err
	}
	if err := s.materials.Create(ctx, material); err != nil {
		return nil, err
	}
	s.logger.Info("Created material", zap.Int64("material_id", material.ID), zap.String("name", material.Name))
	return material, nil
}

// UpdateMaterial updates a material type
func (s *TaxonomyService) UpdateMaterial(ctx context.Context, id int64, input TaxonomyInput) (*catalog.Material, error) {
	material, err := s.materials.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := material.Update(input.Name, input.Description); err != nil {
		return nil, err
	}
	if input.Active != nil {
		material.SetActive(*input.Active)
	}
	if err := s.materials.Update(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

// DeleteMaterial removes a material type
func (s *TaxonomyService) DeleteMaterial(ctx context.Context, id int64) error {
	if _, err := s.materials.FindByID(ctx, id); err != nil {
		return err
	}
	return s.materials.Delete(ctx, id)
}

// ListTags returns every tag
func (s *TaxonomyService) ListTags(ctx context.Context) ([]catalog.Tag, error) {
	return s.tags.FindAll(ctx)
}

// CreateTag creates a tag
func (s *TaxonomyService) CreateTag(ctx context.Context, input TaxonomyInput) (*catalog.Tag, error) {
	tag, err := catalog.NewTag(input.Name, input.Description)
	if err != nil {
		return nil, err
	}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	s.logger.Info("Created tag", zap.Int64("tag_id", tag.ID), zap.String("name", tag.Name))
	return tag, nil
}

// UpdateTag updates a tag
func (s *TaxonomyService) UpdateTag(ctx context.Context, id int64, input TaxonomyInput) (*catalog.Tag, error) {
	tag, err := s.tags.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tag.Update(input.Name, input.Description); err != nil {
		return nil, err
	}
	if input.Active != nil {
		tag.SetActive(*input.Active)
	}
	if err := s.tags.Update(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes a tag
func (s *TaxonomyService) DeleteTag(ctx context.Context, id int64) error {
	if _, err := s.tags.FindByID(ctx, id); err != nil {
		return err
	}
	return s.tags.Delete(ctx, id)
}

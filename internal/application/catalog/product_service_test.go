package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gomu/backend/internal/domain/catalog"
	"github.com/gomu/backend/internal/domain/shared"
)

type productServiceMocks struct {
	products      *MockProductRepository
	categories    *MockCategoryRepository
	subcategories *MockSubcategoryRepository
	materials     *MockMaterialRepository
	tags          *MockTagRepository
}

func newProductService(t *testing.T) (*ProductService, productServiceMocks) {
	t.Helper()
	mocks := productServiceMocks{
		products:      new(MockProductRepository),
		categories:    new(MockCategoryRepository),
		subcategories: new(MockSubcategoryRepository),
		materials:     new(MockMaterialRepository),
		tags:          new(MockTagRepository),
	}
	service := NewProductService(mocks.products, mocks.categories,
		mocks.subcategories, mocks.materials, mocks.tags, zap.NewNop())
	return service, mocks
}

func catalogFixture(t *testing.T) (*catalog.Category, *catalog.Subcategory, *catalog.Material) {
	t.Helper()
	category, err := catalog.NewCategory("Llaveros", "")
	require.NoError(t, err)
	category.ID = 1
	subcategory, err := catalog.NewSubcategory(1, "Anime", "")
	require.NoError(t, err)
	subcategory.ID = 2
	material, err := catalog.NewMaterial("Acrílico", "")
	require.NoError(t, err)
	material.ID = 3
	return category, subcategory, material
}

func validCreateInput() ProductCreateInput {
	return ProductCreateInput{
		Name:           "Llavero Gato",
		CategoryID:     1,
		SubcategoryID:  2,
		MaterialID:     3,
		ProductionCost: decimal.NewFromInt(10),
		SalePrice:      decimal.NewFromInt(25),
		Stock:          5,
	}
}

func TestProductCreateDerivesSlug(t *testing.T) {
	service, mocks := newProductService(t)
	category, subcategory, material := catalogFixture(t)

	mocks.categories.On("FindByID", mock.Anything, int64(1)).Return(category, nil)
	mocks.subcategories.On("FindByID", mock.Anything, int64(2)).Return(subcategory, nil)
	mocks.materials.On("FindByID", mock.Anything, int64(3)).Return(material, nil)
	mocks.products.On("SlugExists", mock.Anything, "llaveros-llavero-gato").Return(false, nil)
	mocks.products.On("Create", mock.Anything, mock.Anything).Return(nil)

	product, err := service.Create(context.Background(), validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, "llaveros-llavero-gato", product.Slug)
	assert.Equal(t, 5, product.Stock)
}

func TestProductCreateResolvesSlugCollision(t *testing.T) {
	service, mocks := newProductService(t)
	category, subcategory, material := catalogFixture(t)

	mocks.categories.On("FindByID", mock.Anything, int64(1)).Return(category, nil)
	mocks.subcategories.On("FindByID", mock.Anything, int64(2)).Return(subcategory, nil)
	mocks.materials.On("FindByID", mock.Anything, int64(3)).Return(material, nil)
	mocks.products.On("SlugExists", mock.Anything, "llaveros-llavero-gato").Return(true, nil)
	mocks.products.On("SlugExists", mock.Anything, "llaveros-llavero-gato-2").Return(true, nil)
	mocks.products.On("SlugExists", mock.Anything, "llaveros-llavero-gato-3").Return(false, nil)
	mocks.products.On("Create", mock.Anything, mock.Anything).Return(nil)

	product, err := service.Create(context.Background(), validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, "llaveros-llavero-gato-3", product.Slug)
}

func TestProductCreateRejectsForeignSubcategory(t *testing.T) {
	service, mocks := newProductService(t)
	category, _, _ := catalogFixture(t)

	foreign, err := catalog.NewSubcategory(9, "Otra", "")
	require.NoError(t, err)
	foreign.ID = 2

	mocks.categories.On("FindByID", mock.Anything, int64(1)).Return(category, nil)
	mocks.subcategories.On("FindByID", mock.Anything, int64(2)).Return(foreign, nil)

	_, err = service.Create(context.Background(), validCreateInput())
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_REFERENCE", domainErr.Code)
	mocks.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductCreateRejectsUnknownTags(t *testing.T) {
	service, mocks := newProductService(t)
	category, subcategory, material := catalogFixture(t)

	mocks.categories.On("FindByID", mock.Anything, int64(1)).Return(category, nil)
	mocks.subcategories.On("FindByID", mock.Anything, int64(2)).Return(subcategory, nil)
	mocks.materials.On("FindByID", mock.Anything, int64(3)).Return(material, nil)
	mocks.tags.On("FindByIDs", mock.Anything, []int64{7, 8}).Return([]catalog.Tag{{}}, nil)

	input := validCreateInput()
	input.TagIDs = []int64{7, 8}
	_, err := service.Create(context.Background(), input)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TAGS", domainErr.Code)
}

func TestProductUpdateRenameRegeneratesSlug(t *testing.T) {
	service, mocks := newProductService(t)
	category, _, _ := catalogFixture(t)

	product, err := catalog.NewProduct("Llavero Gato", "Llaveros", 1, 2, 3,
		decimal.NewFromInt(10), decimal.NewFromInt(25))
	require.NoError(t, err)
	product.ID = 11

	mocks.products.On("FindByID", mock.Anything, int64(11)).Return(product, nil)
	mocks.categories.On("FindByID", mock.Anything, int64(1)).Return(category, nil)
	mocks.products.On("SlugExists", mock.Anything, "llaveros-llavero-perro").Return(false, nil)
	mocks.products.On("Update", mock.Anything, product).Return(nil)

	name := "Llavero Perro"
	updated, err := service.Update(context.Background(), 11, ProductUpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "llaveros-llavero-perro", updated.Slug)
}

func TestProductUpdateNotFound(t *testing.T) {
	service, mocks := newProductService(t)

	mocks.products.On("FindByID", mock.Anything, int64(99)).Return(nil, shared.ErrNotFound)

	_, err := service.Update(context.Background(), 99, ProductUpdateInput{})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

package catalog

import (
	"strings"

	"github.com/gomu/backend/internal/domain/shared"
)

// Category is a top-level grouping of products
type Category struct {
	shared.BaseEntity
	Name        string `gorm:"type:varchar(100);not null"`
	Slug        string `gorm:"type:varchar(120);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	Active      bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a category, deriving its slug from the name
func NewCategory(name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Category{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Slug:        Slugify(name),
		Description: strings.TrimSpace(description),
		Active:      true,
	}, nil
}

// Update renames the category and regenerates its slug
func (c *Category) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	c.Name = name
	c.Slug = Slugify(name)
	c.Description = strings.TrimSpace(description)
	c.Touch()
	return nil
}

// SetActive toggles visibility of the category
func (c *Category) SetActive(active bool) {
	c.Active = active
	c.Touch()
}

// Subcategory is a grouping of products within a category
type Subcategory struct {
	shared.BaseEntity
	CategoryID  int64  `gorm:"not null;index"`
	Name        string `gorm:"type:varchar(100);not null"`
	Slug        string `gorm:"type:varchar(120);not null;index"`
	Description string `gorm:"type:text"`
	Active      bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Subcategory) TableName() string {
	return "subcategories"
}

// NewSubcategory creates a subcategory under an existing category
func NewSubcategory(categoryID int64, name, description string) (*Subcategory, error) {
	if categoryID <= 0 {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID is required")
	}
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Subcategory{
		BaseEntity:  shared.NewBaseEntity(),
		CategoryID:  categoryID,
		Name:        name,
		Slug:        Slugify(name),
		Description: strings.TrimSpace(description),
		Active:      true,
	}, nil
}

// Update renames the subcategory and regenerates its slug
func (s *Subcategory) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	s.Name = name
	s.Slug = Slugify(name)
	s.Description = strings.TrimSpace(description)
	s.Touch()
	return nil
}

// SetActive toggles visibility of the subcategory
func (s *Subcategory) SetActive(active bool) {
	s.Active = active
	s.Touch()
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	return nil
}

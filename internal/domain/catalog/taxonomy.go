package catalog

import (
	"strings"

	"github.com/gomu/backend/internal/domain/shared"
)

// Material describes what a product is made of (silver, steel, resin...)
type Material struct {
	shared.BaseEntity
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	Active      bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Material) TableName() string {
	return "materials"
}

// NewMaterial creates a material type
func NewMaterial(name, description string) (*Material, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Material{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Active:      true,
	}, nil
}

// Update changes the material's name and description
func (m *Material) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	m.Name = name
	m.Description = strings.TrimSpace(description)
	m.Touch()
	return nil
}

// SetActive toggles availability of the material
func (m *Material) SetActive(active bool) {
	m.Active = active
	m.Touch()
}

// Tag is a free label attached to products for filtering
type Tag struct {
	shared.BaseEntity
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	Active      bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Tag) TableName() string {
	return "tags"
}

// NewTag creates a tag
func NewTag(name, description string) (*Tag, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Tag{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Active:      true,
	}, nil
}

// Update changes the tag's name and description
func (t *Tag) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	t.Name = name
	t.Description = strings.TrimSpace(description)
	t.Touch()
	return nil
}

// SetActive toggles availability of the tag
func (t *Tag) SetActive(active bool) {
	t.Active = active
	t.Touch()
}

package model

import "gorm.io/gorm"

// Collection is a structured data type of a site (EAV style). Draft and
// published rows share the same id, (id, published) is the full key.
type Collection struct {
	gorm.Model
	ID          string `gorm:"primaryKey;uuid;not null"`
	Published   bool   `gorm:"primaryKey;not null;default:false"`
	SiteID      string `gorm:"uuid;not null;index"`
	Name        string `gorm:"not null"`
	Slug        string `gorm:"not null"`
	ContentHash string
}

func (Collection) TableName() string {
	return "collections"
}

// ComputeContentHash must be called after every draft mutation.
func (c *Collection) ComputeContentHash() {
	c.ContentHash = ContentHash(c.Name, c.Slug)
}

// IntoPublished builds the published twin. Same id, published state.
func (c *Collection) IntoPublished() *Collection {
	return &Collection{
		ID:          c.ID,
		Published:   true,
		SiteID:      c.SiteID,
		Name:        c.Name,
		Slug:        c.Slug,
		ContentHash: c.ContentHash,
	}
}

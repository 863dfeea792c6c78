package model

import (
	"strconv"

	"gorm.io/gorm"
)

// Field is a column definition of a collection. Fields are always published
// in full, never selectively.
type Field struct {
	gorm.Model
	ID           string `gorm:"primaryKey;uuid;not null"`
	Published    bool   `gorm:"primaryKey;not null;default:false"`
	CollectionID string `gorm:"uuid;not null;index"`
	Name         string `gorm:"not null"`
	Kind         string `gorm:"not null"` // text, richtext, number, date, link, etc.
	Position     int    `gorm:"not null;default:0"`
	ContentHash  string
}

func (Field) TableName() string {
	return "collection_fields"
}

// ComputeContentHash must be called after every draft mutation.
func (f *Field) ComputeContentHash() {
	f.ContentHash = ContentHash(f.Name, f.Kind, strconv.Itoa(f.Position))
}

// IntoPublished builds the published twin. Same id, published state.
func (f *Field) IntoPublished() *Field {
	return &Field{
		ID:           f.ID,
		Published:    true,
		CollectionID: f.CollectionID,
		Name:         f.Name,
		Kind:         f.Kind,
		Position:     f.Position,
		ContentHash:  f.ContentHash,
	}
}

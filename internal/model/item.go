package model

import (
	"strconv"

	"gorm.io/gorm"
)

// Item is one entry of a collection. Its data lives in Value rows, one per
// field. Publishing an item always publishes its whole value set.
type Item struct {
	gorm.Model
	ID           string `gorm:"primaryKey;uuid;not null"`
	Published    bool   `gorm:"primaryKey;not null;default:false"`
	CollectionID string `gorm:"uuid;not null;index"`
	Slug         string `gorm:"not null"`
	Position     int    `gorm:"not null;default:0"` // manual ordering within the collection
	ContentHash  string
}

func (Item) TableName() string {
	return "collection_items"
}

// ComputeContentHash covers the item metadata only. Value changes are
// detected by comparing the value sets of the two states.
func (i *Item) ComputeContentHash() {
	i.ContentHash = ContentHash(i.Slug, strconv.Itoa(i.Position))
}

// IntoPublished builds the published twin. Same id, published state.
func (i *Item) IntoPublished() *Item {
	return &Item{
		ID:           i.ID,
		Published:    true,
		CollectionID: i.CollectionID,
		Slug:         i.Slug,
		Position:     i.Position,
		ContentHash:  i.ContentHash,
	}
}

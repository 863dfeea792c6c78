package model

import "gorm.io/gorm"

// Value is the content of one field of one item. Values are published as a
// consequence of publishing their owning item, never independently.
type Value struct {
	gorm.Model
	ID          string `gorm:"primaryKey;uuid;not null"`
	Published   bool   `gorm:"primaryKey;not null;default:false"`
	ItemID      string `gorm:"uuid;not null;index"`
	FieldID     string `gorm:"uuid;not null;index"`
	Value       string
	ContentHash string
}

func (Value) TableName() string {
	return "collection_item_values"
}

// ComputeContentHash must be called after every draft mutation.
func (v *Value) ComputeContentHash() {
	v.ContentHash = ContentHash(v.Value)
}

// IntoPublished builds the published twin. Same id, published state.
func (v *Value) IntoPublished() *Value {
	return &Value{
		ID:          v.ID,
		Published:   true,
		ItemID:      v.ItemID,
		FieldID:     v.FieldID,
		Value:       v.Value,
		ContentHash: v.ContentHash,
	}
}

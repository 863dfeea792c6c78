package model

import "gorm.io/gorm"

// Layer holds the layer tree of a page as a compressed JSON blob. Twin rows
// like folders and pages. SiteID is denormalized so a whole site's layers can
// be loaded without joining through pages.
type Layer struct {
	gorm.Model
	ID          string `gorm:"primaryKey;uuid;not null"`
	SiteID      string `gorm:"uuid;not null;index"`
	LinkKey     string `gorm:"uuid;not null;index:idx_page_layers_link_key_published,unique"`
	Published   bool   `gorm:"not null;default:false;index:idx_page_layers_link_key_published,unique"`
	PageID      string `gorm:"uuid;not null;index"`
	Content     string `gorm:"not null"`
	Compression string // the compression algorithm used to compress the layer tree
	ContentHash string
}

func (Layer) TableName() string {
	return "page_layers"
}

// ComputeContentHash must be called after every draft mutation. The hash
// covers the compressed bytes, which is deterministic per codec.
func (l *Layer) ComputeContentHash() {
	l.ContentHash = ContentHash(l.Content, l.Compression)
}

// IntoPublished builds the published twin for a draft layer. The caller
// supplies the published row id and the already remapped page id.
func (l *Layer) IntoPublished(id string, pageID string) *Layer {
	return &Layer{
		ID:          id,
		SiteID:      l.SiteID,
		LinkKey:     l.LinkKey,
		Published:   true,
		PageID:      pageID,
		Content:     l.Content,
		Compression: l.Compression,
		ContentHash: l.ContentHash,
	}
}

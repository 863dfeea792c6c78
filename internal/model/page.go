package model

import "gorm.io/gorm"

// Page is a single page of a site. Like folders, draft and published pages
// are twin rows correlated by LinkKey. FolderID points at a draft folder in
// the draft row and at the published folder in the published row.
type Page struct {
	gorm.Model
	ID          string  `gorm:"primaryKey;uuid;not null"`
	SiteID      string  `gorm:"uuid;not null;index"`
	LinkKey     string  `gorm:"uuid;not null;index:idx_pages_link_key_published,unique"`
	Published   bool    `gorm:"not null;default:false;index:idx_pages_link_key_published,unique"`
	FolderID    *string `gorm:"uuid"`
	Name        string  `gorm:"not null"`
	Slug        string  `gorm:"not null"`
	Meta        string  // page meta as JSON, e.g. title and description overrides
	ContentHash string
}

func (Page) TableName() string {
	return "pages"
}

// ComputeContentHash must be called after every draft mutation.
func (p *Page) ComputeContentHash() {
	folder := ""
	if p.FolderID != nil {
		folder = *p.FolderID
	}
	p.ContentHash = ContentHash(p.Name, p.Slug, p.Meta, folder)
}

// IntoPublished builds the published twin for a draft page. The caller
// supplies the published row id and the already remapped folder pointer.
func (p *Page) IntoPublished(id string, folderID *string) *Page {
	return &Page{
		ID:          id,
		SiteID:      p.SiteID,
		LinkKey:     p.LinkKey,
		Published:   true,
		FolderID:    folderID,
		Name:        p.Name,
		Slug:        p.Slug,
		Meta:        p.Meta,
		ContentHash: p.ContentHash,
	}
}

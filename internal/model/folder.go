package model

import "gorm.io/gorm"

// Folder is a node in the page tree of a site. Draft and published folders
// are separate rows with separate ids, correlated by LinkKey. The link key is
// assigned when the draft row is created and never changes afterwards.
type Folder struct {
	gorm.Model
	ID          string  `gorm:"primaryKey;uuid;not null"`
	SiteID      string  `gorm:"uuid;not null;index"`
	LinkKey     string  `gorm:"uuid;not null;index:idx_page_folders_link_key_published,unique"`
	Published   bool    `gorm:"not null;default:false;index:idx_page_folders_link_key_published,unique"`
	ParentID    *string `gorm:"uuid"`
	Name        string  `gorm:"not null"`
	Slug        string  `gorm:"not null"`
	ContentHash string
}

func (Folder) TableName() string {
	return "page_folders"
}

// ComputeContentHash must be called after every draft mutation.
func (f *Folder) ComputeContentHash() {
	parent := ""
	if f.ParentID != nil {
		parent = *f.ParentID
	}
	f.ContentHash = ContentHash(f.Name, f.Slug, parent)
}

// IntoPublished builds the published twin for a draft folder. The caller
// supplies the published row id and the already remapped parent pointer.
func (f *Folder) IntoPublished(id string, parentID *string) *Folder {
	return &Folder{
		ID:          id,
		SiteID:      f.SiteID,
		LinkKey:     f.LinkKey,
		Published:   true,
		ParentID:    parentID,
		Name:        f.Name,
		Slug:        f.Slug,
		ContentHash: f.ContentHash,
	}
}

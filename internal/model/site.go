package model

import "gorm.io/gorm"

// Site is the root of both content domains. It has no published twin,
// publishing always happens below it.
type Site struct {
	gorm.Model
	ID   string `gorm:"primaryKey;uuid;not null"`
	Name string `gorm:"not null"`
}

func (Site) TableName() string {
	return "sites"
}

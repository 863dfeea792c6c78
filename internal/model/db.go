package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Site{},
		&Folder{},
		&Page{},
		&Layer{},
		&Collection{},
		&Field{},
		&Item{},
		&Value{},
	)
}

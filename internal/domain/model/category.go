package model

type Category struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"type:varchar(255);not null" json:"name"`
	Slug      string `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	SortOrder int    `gorm:"not null;default:0" json:"sortOrder"`
}

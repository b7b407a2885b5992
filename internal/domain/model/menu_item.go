package model

import "github.com/shopspring/decimal"

// Menu entry. Delete is a hard delete.
type MenuItem struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	CategoryID  *int64          `gorm:"index"`
	Category    *Category       `gorm:"foreignKey:CategoryID"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	ImageURL    string          `gorm:"column:image_url;type:text"`
	IsAvailable bool            `gorm:"not null;default:true"`
	Ingredients []string        `gorm:"type:text;serializer:json"`
}

package model

type TableStatus string

const (
	TableStatusAvailable TableStatus = "available"
	TableStatusOccupied  TableStatus = "occupied"
	TableStatusReserved  TableStatus = "reserved"
)

func (s TableStatus) Valid() bool {
	switch s {
	case TableStatusAvailable, TableStatusOccupied, TableStatusReserved:
		return true
	}
	return false
}

type Table struct {
	ID       int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	Number   int         `gorm:"not null;uniqueIndex" json:"number"`
	Capacity int         `gorm:"not null;default:4" json:"capacity"`
	Status   TableStatus `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
}

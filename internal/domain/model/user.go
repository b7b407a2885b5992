package model

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleKitchen Role = "kitchen"
	RoleWaiter  Role = "waiter"
)

// Roles lists every staff role.
var Roles = []Role{RoleAdmin, RoleManager, RoleKitchen, RoleWaiter}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleKitchen, RoleWaiter:
		return true
	}
	return false
}

// Staff account. Created by seed only.
type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'waiter'"`
	Name         string `gorm:"type:varchar(255);not null"`
	TokenVersion int    `gorm:"not null;default:0"`
}

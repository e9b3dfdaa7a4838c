package models

import "gorm.io/gorm"

// Role is fixed at registration.
type Role string

const (
	RoleFarmer  Role = "farmer"
	RoleShopper Role = "shopper"
)

// Valid reports whether r is one of the roles a user can register with.
func (r Role) Valid() bool {
	return r == RoleFarmer || r == RoleShopper
}

type User struct {
	gorm.Model
	Username      string `json:"username" gorm:"uniqueIndex;not null"`
	Email         string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash  string `json:"-" gorm:"column:password;not null"`
	Location      string `json:"location" gorm:"not null"`
	ContactNumber string `json:"contactNumber" gorm:"not null"`
	Role          Role   `json:"role" gorm:"type:varchar(16);not null"`

	Shops []Shop `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"shops,omitempty"`
}

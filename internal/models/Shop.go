// internal/models/shop.go
package models

import (
	"gorm.io/gorm"
)

// Shop is a storefront owned by exactly one shopper. OwnerID never changes
// after creation and shops are never deleted.
type Shop struct {
	gorm.Model
	Name          string `json:"name" gorm:"uniqueIndex;not null"`
	Location      string `json:"location" gorm:"not null"`
	ContactNumber string `json:"contactNumber" gorm:"not null"`
	OwnerID       uint   `json:"ownerId" gorm:"index;not null"`

	Owner    *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Products []Product `gorm:"foreignKey:ShopID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"products,omitempty"`
}

// OwnedBy reports whether userID owns the shop.
func (s *Shop) OwnedBy(userID uint) bool {
	return s != nil && s.OwnerID != 0 && s.OwnerID == userID
}

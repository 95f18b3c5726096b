package models

import "gorm.io/gorm"

// Favorite is an existence-only (user, property) pair with toggle
// semantics; at most one row per pair.
type Favorite struct {
	gorm.Model
	UserID     uint     `json:"userID" gorm:"not null;index;uniqueIndex:idx_favorites_user_property"`
	PropertyID uint     `json:"propertyID" gorm:"not null;index;uniqueIndex:idx_favorites_user_property"`
	Property   Property `json:"property" gorm:"foreignKey:PropertyID"`
}

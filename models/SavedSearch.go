package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SavedSearch stores a named filter set so a tenant can re-run it later.
type SavedSearch struct {
	gorm.Model
	UserID   uint           `json:"userID" gorm:"not null;index"`
	Name     string         `json:"name"`
	Criteria datatypes.JSON `json:"criteria"`
}

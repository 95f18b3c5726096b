package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	VisitStatusPending  = "pending"
	VisitStatusAccepted = "accepted"
	VisitStatusRejected = "rejected"
)

// Visit is a viewing request for a property. Status starts at pending and
// transitions exactly once, to accepted or rejected, by the property owner.
type Visit struct {
	gorm.Model
	PropertyID    uint      `json:"propertyID" gorm:"not null;index"`
	UserID        uint      `json:"userID" gorm:"not null;index"`
	VisitDate     time.Time `json:"visitDate"`
	Message       string    `json:"message" gorm:"type:text"`
	Status        string    `json:"status" gorm:"type:varchar(20);default:pending;index"`
	OwnerResponse string    `json:"ownerResponse" gorm:"type:text"`
	Property      *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	User          *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// IsTerminal reports whether the visit already received an owner decision.
func (v *Visit) IsTerminal() bool {
	return v.Status == VisitStatusAccepted || v.Status == VisitStatusRejected
}

package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleTenant = "tenant"
	RoleOwner  = "owner"
)

type User struct {
	gorm.Model
	Name        string         `json:"name"`
	Email       string         `json:"email" gorm:"uniqueIndex"`
	PhoneNumber string         `json:"phoneNumber"`
	Password    string         `json:"-"`
	Role        string         `json:"role" gorm:"type:varchar(20);default:tenant;index"` // tenant, owner
	Bio         string         `json:"bio" gorm:"type:text"`
	AvatarURL   string         `json:"avatarURL"`
	Preferences datatypes.JSON `json:"preferences"`
	Properties  []Property     `json:"properties" gorm:"foreignKey:OwnerID;references:ID"`
}

// NotificationPreferences is the shape stored in the Preferences JSON column.
type NotificationPreferences struct {
	NotifyEmail    bool   `json:"notifyEmail"`
	NotifySMS      bool   `json:"notifySMS"`
	NotifyWhatsApp bool   `json:"notifyWhatsApp"`
	Language       string `json:"language"`
}

// DefaultPreferences matches what the registration flow assigns to new accounts.
func DefaultPreferences() NotificationPreferences {
	return NotificationPreferences{NotifyEmail: true, Language: "fr"}
}

// GetPreferences decodes the Preferences column, falling back to defaults
// for accounts created before the column existed.
func (u *User) GetPreferences() NotificationPreferences {
	prefs := DefaultPreferences()
	if u.Preferences != nil {
		json.Unmarshal(u.Preferences, &prefs)
	}
	return prefs
}

// Custom JSON marshaling so Preferences serializes as an object and the
// Properties association is dropped to prevent circular references.
func (u *User) MarshalJSON() ([]byte, error) {
	type Alias User
	aux := &struct {
		Preferences NotificationPreferences `json:"preferences"`
		Properties  []Property              `json:"properties,omitempty"`
		*Alias
	}{
		Preferences: u.GetPreferences(),
		Alias:       (*Alias)(u),
	}

	return json.Marshal(aux)
}

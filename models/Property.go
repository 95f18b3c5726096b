package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

const (
	PropertyStatusAvailable = "available"
	PropertyStatusRented    = "rented"
)

type Property struct {
	gorm.Model
	OwnerID      uint     `json:"ownerID" gorm:"index"`
	Title        string   `json:"title"`
	Description  string   `json:"description" gorm:"type:text"`
	PropertyType string   `json:"propertyType" gorm:"type:varchar(20);index"` // apartment, house, studio
	Status       string   `json:"status" gorm:"type:varchar(20);default:available;index"`
	Price        uint     `json:"price"` // monthly rent, minor currency unit
	Surface      uint     `json:"surface"`
	Rooms        int      `json:"rooms"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	Address      string   `json:"address"`
	City         string   `json:"city" gorm:"index"`
	ContactPhone string   `json:"contactPhone"`
	Amenities    string   `json:"amenities"` // JSON array of tags
	Images       string   `json:"images"`    // JSON array of URLs
	Views        uint     `json:"views"`
	Reviews      []Review `json:"reviews"`
	Owner        User     `json:"owner" gorm:"foreignKey:OwnerID;references:ID"`
}

// AmenityList decodes the Amenities JSON column.
func (p *Property) AmenityList() []string {
	var amenities []string
	if p.Amenities != "" {
		json.Unmarshal([]byte(p.Amenities), &amenities)
	}
	return amenities
}

// Custom JSON marshaling to convert Images and Amenities strings to arrays
func (p *Property) MarshalJSON() ([]byte, error) {
	type Alias Property
	aux := &struct {
		Images    []string `json:"images"`
		Amenities []string `json:"amenities"`
		Owner     *User    `json:"owner,omitempty"`
		*Alias
	}{
		Images:    []string{},
		Amenities: []string{},
		Owner:     nil,
		Alias:     (*Alias)(p),
	}

	if p.Images != "" {
		var images []string
		if err := json.Unmarshal([]byte(p.Images), &images); err == nil {
			aux.Images = images
		}
	}

	if amenities := p.AmenityList(); amenities != nil {
		aux.Amenities = amenities
	}

	// Only include owner if loaded, without its Properties to avoid a cycle
	if p.Owner.ID > 0 {
		ownerCopy := p.Owner
		ownerCopy.Properties = nil
		aux.Owner = &ownerCopy
	}

	return json.Marshal(aux)
}

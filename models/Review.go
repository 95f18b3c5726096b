package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	PropertyID uint   `json:"propertyID" gorm:"not null;index"`
	UserID     uint   `json:"userID" gorm:"not null;index"`
	Stars      int    `json:"stars" gorm:"not null;check:stars >= 1 AND stars <= 5"`
	Comment    string `json:"comment" gorm:"type:text"`
	User       User   `json:"user" gorm:"foreignKey:UserID"`
}

// AverageStars computes the derived rating for a set of reviews.
// It is never stored; the value is recomputed on every read.
func AverageStars(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var total float64
	for _, r := range reviews {
		total += float64(r.Stars)
	}
	return total / float64(len(reviews))
}

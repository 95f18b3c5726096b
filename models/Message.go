package models

import "gorm.io/gorm"

// Message is append-only within its conversation; insertion order is
// chronological order.
type Message struct {
	gorm.Model
	ConversationID uint   `json:"conversationID" gorm:"not null;index"`
	SenderID       uint   `json:"senderID" gorm:"not null"`
	Content        string `json:"content" gorm:"type:text"`
}

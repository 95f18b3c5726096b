package models

import "gorm.io/gorm"

// Conversation is unique per (property, unordered participant pair).
// Rows are stored with User1ID < User2ID (see NormalizePair) so the
// composite unique index enforces the invariant regardless of which
// order the pair was given in.
type Conversation struct {
	gorm.Model
	PropertyID uint      `json:"propertyID" gorm:"not null;index;uniqueIndex:idx_conversations_property_pair"`
	User1ID    uint      `json:"user1ID" gorm:"not null;uniqueIndex:idx_conversations_property_pair"`
	User2ID    uint      `json:"user2ID" gorm:"not null;uniqueIndex:idx_conversations_property_pair"`
	Messages   []Message `json:"messages"`
	Property   *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}

// NormalizePair orders two participant ids so a conversation pair has a
// single canonical representation.
func NormalizePair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// HasParticipant reports whether the user is one of the two members.
func (c *Conversation) HasParticipant(userID uint) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// OtherParticipant returns the counterparty of the given member.
func (c *Conversation) OtherParticipant(userID uint) uint {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

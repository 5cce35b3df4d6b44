package models

import "time"

// DefaultCommentText is stored when a comment is posted without text.
const DefaultCommentText = "Hi"

// Comment is a message posted in a room.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author,omitempty"`
	RoomID    uint      `gorm:"not null;index" json:"room_id"`
	Room      *Room     `gorm:"foreignKey:RoomID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"room,omitempty"`
	Text      string    `gorm:"type:text;not null;default:'Hi'" json:"text"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (c Comment) String() string {
	runes := []rune(c.Text)
	if len(runes) > 50 {
		return string(runes[:50])
	}
	return c.Text
}

package models

import "time"

// Room is a themed discussion thread.
type Room struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AuthorID     *uint     `gorm:"index" json:"author_id"`
	Author       *User     `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"author,omitempty"`
	ThemeID      *uint     `gorm:"index" json:"theme_id"`
	Theme        *Theme    `gorm:"foreignKey:ThemeID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"theme,omitempty"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Participants []User    `gorm:"many2many:room_participants;" json:"participants,omitempty"`
	Description  string    `gorm:"type:text" json:"description"`
	UpdatedAt    time.Time `gorm:"index" json:"updated_at"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r Room) String() string {
	return r.Name
}

// RoomParticipant is the join row between rooms and the users who commented in them.
// The composite primary key keeps membership unique.
type RoomParticipant struct {
	RoomID    uint `gorm:"primaryKey"`
	UserID    uint `gorm:"primaryKey"`
	CreatedAt time.Time
}

// TableName sets table name for RoomParticipant
func (RoomParticipant) TableName() string {
	return "room_participants"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment left on a post. Comments are never updated
// after creation and are removed together with their parent post.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Text      string         `gorm:"not null" json:"text"`
	Author    string         `gorm:"not null" json:"author"`
	PostID    uint           `gorm:"not null" json:"post_id"`
	Post      Post           `gorm:"foreignKey:PostID" json:"post,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// PostStatus controls whether non-owners may discover a post.
type PostStatus string

const (
	// StatusPublic makes a post visible in listings and to any reader.
	StatusPublic PostStatus = "PUBLIC"
	// StatusPrivate hides a post from everyone but its owner.
	StatusPrivate PostStatus = "PRIVATE"
)

// Valid reports whether s is one of the known statuses.
func (s PostStatus) Valid() bool {
	return s == StatusPublic || s == StatusPrivate
}

// Post represents a board entry. Author is the creator's username,
// denormalized at creation time; UserID records ownership.
type Post struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	Author   string     `gorm:"not null" json:"author"`
	Title    string     `gorm:"not null" json:"title"`
	Contents string     `gorm:"not null" json:"contents"`
	Status   PostStatus `gorm:"not null;default:PUBLIC" json:"status"`
	UserID   uint       `gorm:"not null" json:"user_id"`
	User     User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	// Version guards full updates against concurrent modification.
	Version   uint           `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Comments  []Comment      `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

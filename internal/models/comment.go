package models

import (
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	gorm.Model

	Text       string    `gorm:"not null"`
	LastUpdate time.Time `gorm:"not null"`
	ProjectID  uint      `gorm:"not null;index"`
	UserID     uint      `gorm:"not null;index"`

	// Relationships
	Project   Project    `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User      User       `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Reactions []Reaction `gorm:"foreignKey:CommentID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

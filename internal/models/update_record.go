package models

import "gorm.io/gorm"

// UpdateRecord is one entry in a watcher's update feed. The notification
// fan-out appends one per watcher after every watchable state change.
type UpdateRecord struct {
	gorm.Model

	UserID    uint   `gorm:"not null;index"`
	ProjectID uint   `gorm:"not null;index"`
	Message   string `gorm:"not null"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

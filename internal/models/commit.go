package models

import "time"

type Commit struct {
	BaseModel

	LogMessage string    `gorm:"not null"`
	Committer  string    `gorm:"not null"`
	DateTime   time.Time `gorm:"not null;index"`
	BranchID   uint      `gorm:"not null;index"`

	// Relationships
	Branch Branch `gorm:"foreignKey:BranchID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

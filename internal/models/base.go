package models

import "time"

// BaseModel is gorm.Model without soft deletes. Branches, files and pull
// requests are recreated under previously used names, so their rows must be
// gone for real once deleted or the composite unique indexes reject the reuse.
type BaseModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

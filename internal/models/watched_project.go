package models

type WatchedProject struct {
	BaseModel

	UserID    uint `gorm:"not null;uniqueIndex:idx_watch_user_project"`
	ProjectID uint `gorm:"not null;uniqueIndex:idx_watch_user_project"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

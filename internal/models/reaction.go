package models

type Reaction struct {
	BaseModel

	Type      string `gorm:"not null"`
	CommentID uint   `gorm:"not null;uniqueIndex:idx_comment_user_reaction"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_comment_user_reaction"`

	// Relationships
	Comment Comment `gorm:"foreignKey:CommentID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

package models

type File struct {
	BaseModel

	Title    string `gorm:"not null;uniqueIndex:idx_branch_file_title"`
	Text     string `gorm:"type:text"`
	BranchID uint   `gorm:"not null;index;uniqueIndex:idx_branch_file_title"`

	// Relationships
	Branch Branch `gorm:"foreignKey:BranchID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

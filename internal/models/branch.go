package models

type Branch struct {
	BaseModel

	Name      string `gorm:"not null;uniqueIndex:idx_project_branch_name"`
	ProjectID uint   `gorm:"not null;index;uniqueIndex:idx_project_branch_name"`
	IsDefault bool   `gorm:"not null;default:false"`

	// Relationships
	Project Project  `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Files   []File   `gorm:"foreignKey:BranchID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Commits []Commit `gorm:"foreignKey:BranchID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

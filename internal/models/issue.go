package models

const (
	IssueOpen   = "OPEN"
	IssueClosed = "CLOSED"
)

type Issue struct {
	BaseModel

	Title       string `gorm:"not null"`
	Description string
	State       string `gorm:"not null"`
	ProjectID   uint   `gorm:"not null;index"`
	MilestoneID *uint
	AssigneeID  *uint

	// Relationships
	Project   Project    `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Milestone *Milestone `gorm:"foreignKey:MilestoneID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Assignee  *User      `gorm:"foreignKey:AssigneeID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}

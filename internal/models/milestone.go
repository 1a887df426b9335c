package models

const (
	MilestoneOpen   = "OPEN"
	MilestoneClosed = "CLOSED"
)

type Milestone struct {
	BaseModel

	Title       string `gorm:"not null"`
	Description string
	State       string `gorm:"not null"`
	ProjectID   uint   `gorm:"not null;index"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Issues  []Issue `gorm:"foreignKey:MilestoneID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}

package models

type Project struct {
	BaseModel

	Title        string `gorm:"not null;uniqueIndex:idx_lead_title"`
	LeadID       uint   `gorm:"not null;index;uniqueIndex:idx_lead_title"`
	ForkedFromID *uint

	// Relationships
	Lead         User             `gorm:"foreignKey:LeadID"`
	ForkedFrom   *Project         `gorm:"foreignKey:ForkedFromID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Contributors []Contributor    `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Branches     []Branch         `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	PullRequests []PullRequest    `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Issues       []Issue          `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Milestones   []Milestone      `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Comments     []Comment        `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Stars        []StarredProject `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Watches      []WatchedProject `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

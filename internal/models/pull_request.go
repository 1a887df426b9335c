package models

const (
	PullRequestOpen   = "OPEN"
	PullRequestClosed = "CLOSED"
	PullRequestMerged = "MERGED"
)

type PullRequest struct {
	BaseModel

	Title       string `gorm:"not null;uniqueIndex:idx_project_pr_title"`
	Description string
	State       string `gorm:"not null"`
	ProjectID   uint   `gorm:"not null;index;uniqueIndex:idx_project_pr_title"`
	IssueID     *uint
	SourceID    *uint
	TargetID    *uint

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Issue   *Issue  `gorm:"foreignKey:IssueID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Source  *Branch `gorm:"foreignKey:SourceID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Target  *Branch `gorm:"foreignKey:TargetID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}

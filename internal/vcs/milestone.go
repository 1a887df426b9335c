package vcs

import (
	"math"

	"github.com/gitgrove-dev/gitgrove/internal/models"
	"gorm.io/gorm"
)

// MilestonePercent reports how much of the milestone is done as a whole
// percentage: closed issues over all issues, rounded half up. A milestone
// without issues is 0% done.
func MilestonePercent(dbc *gorm.DB, milestone *models.Milestone) (int, error) {
	var total int64

	if err := dbc.Model(&models.Issue{}).
		Where("milestone_id = ?", milestone.ID).
		Count(&total).Error; err != nil {
		return 0, err
	}

	if total == 0 {
		return 0, nil
	}

	var closed int64

	if err := dbc.Model(&models.Issue{}).
		Where("milestone_id = ? AND state = ?", milestone.ID, models.IssueClosed).
		Count(&closed).Error; err != nil {
		return 0, err
	}

	return int(math.Round(float64(closed) / float64(total) * 100)), nil
}

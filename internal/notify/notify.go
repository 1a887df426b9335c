package notify

import (
	"log"
	"strconv"

	"github.com/gitgrove-dev/gitgrove/internal/cache"
	"github.com/gitgrove-dev/gitgrove/internal/models"
	"github.com/gitgrove-dev/gitgrove/internal/ws"
	"gorm.io/gorm"
)

// Watchers appends an update record for every watcher of the project, then
// nudges connected clients and drops the cached overview. Fire-and-forget:
// a failed fan-out is logged, never surfaced to the caller.
func Watchers(dbc *gorm.DB, project *models.Project, message string) {
	var watches []models.WatchedProject

	if err := dbc.Where("project_id = ?", project.ID).Find(&watches).Error; err != nil {
		log.Printf("Failed to load watchers for project %d: %v", project.ID, err)
		return
	}

	for _, watch := range watches {
		record := models.UpdateRecord{
			UserID:    watch.UserID,
			ProjectID: project.ID,
			Message:   message,
		}

		if err := dbc.Create(&record).Error; err != nil {
			log.Printf("Failed to record update for user %d: %v", watch.UserID, err)
		}
	}

	cache.InvalidateProject(project.ID)
	ws.BroadcastRefresh(strconv.FormatUint(uint64(project.ID), 10))
}

package db

import (
	"github.com/gitgrove-dev/gitgrove/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	tables := []interface{}{
		&models.User{},
		&models.Project{},
		&models.Contributor{},
		&models.StarredProject{},
		&models.WatchedProject{},
		&models.UpdateRecord{},
		&models.Branch{},
		&models.File{},
		&models.Commit{},
		&models.Milestone{},
		&models.Issue{},
		&models.PullRequest{},
		&models.Comment{},
		&models.Reaction{},
	}

	migrator := DB.Migrator()

	for _, model := range tables {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}

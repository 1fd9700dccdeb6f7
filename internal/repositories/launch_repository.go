package repositories

import "launchtracker/internal/models"

// LaunchRepository defines the interface for persisted launch snapshots.
type LaunchRepository interface {
	Create(launch *models.Launch) error
	GetByName(name string) (*models.Launch, error)
	GetByID(id string) (*models.Launch, error)
	GetAll() ([]models.Launch, error)
}

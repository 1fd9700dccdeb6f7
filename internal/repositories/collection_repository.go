package repositories

import "launchtracker/internal/models"

// CollectionRepository defines the interface for collection data access,
// including the collection-launch association rows.
type CollectionRepository interface {
	Create(collection *models.Collection) error
	GetByID(id string) (*models.Collection, error)
	GetByOwner(ownerID string) ([]models.Collection, error)
	GetByOwnerAndName(ownerID, name string) (*models.Collection, error)
	Update(collection *models.Collection) error
	Delete(id string) error

	AddLaunch(assoc *models.LaunchCollection) error
	RemoveLaunch(collectionID, launchID string) (bool, error)
	HasLaunch(collectionID, launchID string) (bool, error)
	GetLaunches(collectionID string) ([]models.Launch, error)
}

package repositories

import (
	"fmt"

	"launchtracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCollectionRepository is a GORM implementation of CollectionRepository.
type GORMCollectionRepository struct {
	db *gorm.DB
}

// NewGORMCollectionRepository creates a new instance of GORMCollectionRepository.
func NewGORMCollectionRepository(db *gorm.DB) *GORMCollectionRepository {
	return &GORMCollectionRepository{
		db: db,
	}
}

// Create creates a new collection in the database.
func (r *GORMCollectionRepository) Create(collection *models.Collection) error {
	if collection.ID == "" {
		collection.ID = uuid.New().String()
	}
	if err := r.db.Create(collection).Error; err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}
	return nil
}

// GetByID retrieves a collection by its ID.
func (r *GORMCollectionRepository) GetByID(id string) (*models.Collection, error) {
	var collection models.Collection
	if err := r.db.First(&collection, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("collection with ID %s: %w", id, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get collection by ID %s: %w", id, err)
	}
	return &collection, nil
}

// GetByOwner retrieves all collections created by the given user.
func (r *GORMCollectionRepository) GetByOwner(ownerID string) ([]models.Collection, error) {
	var collections []models.Collection
	if err := r.db.Where("created_by = ?", ownerID).Find(&collections).Error; err != nil {
		return nil, fmt.Errorf("failed to get collections for user %s: %w", ownerID, err)
	}
	return collections, nil
}

// GetByOwnerAndName retrieves one collection by its per-owner unique name.
func (r *GORMCollectionRepository) GetByOwnerAndName(ownerID, name string) (*models.Collection, error) {
	var collection models.Collection
	if err := r.db.First(&collection, "created_by = ? AND name = ?", ownerID, name).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("collection %s for user %s: %w", name, ownerID, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get collection %s for user %s: %w", name, ownerID, err)
	}
	return &collection, nil
}

// Update updates an existing collection.
func (r *GORMCollectionRepository) Update(collection *models.Collection) error {
	res := r.db.Save(collection)
	if res.Error != nil {
		return fmt.Errorf("failed to update collection: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("collection with ID %s for update: %w", collection.ID, gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes a collection and its association rows. Hard delete: a
// soft-deleted collection would keep holding the per-owner name index.
// The referenced Launch rows stay untouched; launches are shared across
// collections.
func (r *GORMCollectionRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection_id = ?", id).Delete(&models.LaunchCollection{}).Error; err != nil {
			return fmt.Errorf("failed to delete association rows for collection %s: %w", id, err)
		}
		res := tx.Unscoped().Delete(&models.Collection{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete collection %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("collection with ID %s for deletion: %w", id, gorm.ErrRecordNotFound)
		}
		return nil
	})
}

// AddLaunch inserts one association row linking a collection to a launch.
func (r *GORMCollectionRepository) AddLaunch(assoc *models.LaunchCollection) error {
	if assoc.ID == "" {
		assoc.ID = uuid.New().String()
	}
	if err := r.db.Create(assoc).Error; err != nil {
		return fmt.Errorf("failed to add launch %s to collection %s: %w", assoc.LaunchID, assoc.CollectionID, err)
	}
	return nil
}

// RemoveLaunch deletes the association row for the given pair. Returns false
// when no such row existed.
func (r *GORMCollectionRepository) RemoveLaunch(collectionID, launchID string) (bool, error) {
	res := r.db.Where("collection_id = ? AND launch_id = ?", collectionID, launchID).
		Delete(&models.LaunchCollection{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to remove launch %s from collection %s: %w", launchID, collectionID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// HasLaunch reports whether the (collection, launch) pair is already associated.
func (r *GORMCollectionRepository) HasLaunch(collectionID, launchID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.LaunchCollection{}).
		Where("collection_id = ? AND launch_id = ?", collectionID, launchID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check association for collection %s: %w", collectionID, err)
	}
	return count > 0, nil
}

// GetLaunches retrieves the launches referenced by one collection.
func (r *GORMCollectionRepository) GetLaunches(collectionID string) ([]models.Launch, error) {
	var launches []models.Launch
	if err := r.db.
		Joins("JOIN launch_collections ON launch_collections.launch_id = launches.id").
		Where("launch_collections.collection_id = ?", collectionID).
		Find(&launches).Error; err != nil {
		return nil, fmt.Errorf("failed to get launches for collection %s: %w", collectionID, err)
	}
	return launches, nil
}

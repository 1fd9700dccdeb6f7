package repositories

import (
	"fmt"

	"launchtracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMLaunchRepository is a GORM implementation of LaunchRepository.
type GORMLaunchRepository struct {
	db *gorm.DB
}

// NewGORMLaunchRepository creates a new instance of GORMLaunchRepository.
func NewGORMLaunchRepository(db *gorm.DB) *GORMLaunchRepository {
	return &GORMLaunchRepository{
		db: db,
	}
}

// Create stores a new launch snapshot in the database.
func (r *GORMLaunchRepository) Create(launch *models.Launch) error {
	if launch.ID == "" {
		launch.ID = uuid.New().String()
	}
	if err := r.db.Create(launch).Error; err != nil {
		return fmt.Errorf("failed to create launch: %w", err)
	}
	return nil
}

// GetByName retrieves a launch by its globally unique name.
func (r *GORMLaunchRepository) GetByName(name string) (*models.Launch, error) {
	var launch models.Launch
	if err := r.db.First(&launch, "name = ?", name).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("launch with name %s: %w", name, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get launch by name %s: %w", name, err)
	}
	return &launch, nil
}

// GetByID retrieves a launch by its ID.
func (r *GORMLaunchRepository) GetByID(id string) (*models.Launch, error) {
	var launch models.Launch
	if err := r.db.First(&launch, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("launch with ID %s: %w", id, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get launch by ID %s: %w", id, err)
	}
	return &launch, nil
}

// GetAll retrieves every stored launch snapshot.
func (r *GORMLaunchRepository) GetAll() ([]models.Launch, error) {
	var launches []models.Launch
	if err := r.db.Find(&launches).Error; err != nil {
		return nil, fmt.Errorf("failed to get all launches: %w", err)
	}
	return launches, nil
}

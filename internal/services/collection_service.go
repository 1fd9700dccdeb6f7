package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"launchtracker/internal/launchapi"
	"launchtracker/internal/models"
	"launchtracker/internal/repositories"

	"gorm.io/gorm"
)

// LaunchFetcher is the slice of the data source client the collection service
// needs: resolving one launch by exact name.
type LaunchFetcher interface {
	GetByName(ctx context.Context, name string) (*launchapi.LaunchDetail, error)
}

// EventPublisher publishes collection events to the message queue. May be nil
// in the service; events are then skipped.
type EventPublisher interface {
	PublishLaunchCollected(event map[string]interface{}) error
}

// CollectionService handles business logic for collections and the launches
// they reference.
type CollectionService struct {
	collectionRepo repositories.CollectionRepository
	launchRepo     repositories.LaunchRepository
	fetcher        LaunchFetcher
	publisher      EventPublisher
}

// NewCollectionService creates a new CollectionService. publisher may be nil.
func NewCollectionService(
	collectionRepo repositories.CollectionRepository,
	launchRepo repositories.LaunchRepository,
	fetcher LaunchFetcher,
	publisher EventPublisher,
) *CollectionService {
	return &CollectionService{
		collectionRepo: collectionRepo,
		launchRepo:     launchRepo,
		fetcher:        fetcher,
		publisher:      publisher,
	}
}

// CreateCollection creates a collection owned by ownerID. Names are unique
// per owner.
func (s *CollectionService) CreateCollection(name, description, imageURL, ownerID string) (*models.Collection, error) {
	if existing, err := s.collectionRepo.GetByOwnerAndName(ownerID, name); err == nil && existing != nil {
		return nil, fmt.Errorf("collection %q: %w", name, ErrCollectionNameTaken)
	}

	collection := &models.Collection{
		Name:        name,
		Description: description,
		ImageURL:    imageURL,
		CreatedBy:   ownerID,
	}
	if err := s.collectionRepo.Create(collection); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("collection %q: %w", name, ErrCollectionNameTaken)
		}
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}
	return collection, nil
}

// GetCollection retrieves one collection and the launches it references.
func (s *CollectionService) GetCollection(collectionID string) (*models.Collection, []models.Launch, error) {
	collection, err := s.getCollection(collectionID)
	if err != nil {
		return nil, nil, err
	}
	launches, err := s.collectionRepo.GetLaunches(collectionID)
	if err != nil {
		return nil, nil, err
	}
	return collection, launches, nil
}

// ListByOwner retrieves all collections created by one user.
func (s *CollectionService) ListByOwner(ownerID string) ([]models.Collection, error) {
	return s.collectionRepo.GetByOwner(ownerID)
}

// EditCollection overwrites a collection's fields. Unlike profile edits there
// is no fallback-to-existing: the caller's values win unconditionally.
// Owner-only.
func (s *CollectionService) EditCollection(collectionID, actingUserID, name, description, imageURL string) (*models.Collection, error) {
	collection, err := s.getCollection(collectionID)
	if err != nil {
		return nil, err
	}
	if collection.CreatedBy != actingUserID {
		return nil, fmt.Errorf("user %s does not own collection %s: %w", actingUserID, collectionID, ErrUnauthorized)
	}

	if name != collection.Name {
		if existing, err := s.collectionRepo.GetByOwnerAndName(actingUserID, name); err == nil && existing != nil {
			return nil, fmt.Errorf("collection %q: %w", name, ErrCollectionNameTaken)
		}
	}

	collection.Name = name
	collection.Description = description
	collection.ImageURL = imageURL

	if err := s.collectionRepo.Update(collection); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("collection %q: %w", name, ErrCollectionNameTaken)
		}
		return nil, fmt.Errorf("failed to update collection: %w", err)
	}
	return collection, nil
}

// DeleteCollection removes a collection and its association rows. The
// referenced launches survive; they are shared across collections. Owner-only.
func (s *CollectionService) DeleteCollection(collectionID, actingUserID string) error {
	collection, err := s.getCollection(collectionID)
	if err != nil {
		return err
	}
	if collection.CreatedBy != actingUserID {
		return fmt.Errorf("user %s does not own collection %s: %w", actingUserID, collectionID, ErrUnauthorized)
	}
	return s.collectionRepo.Delete(collectionID)
}

// CollectLaunch adds the named launch to a collection. The launch snapshot is
// fetched from the data source and persisted the first time anyone collects
// it; later collects reuse the stored row. Owner-only.
func (s *CollectionService) CollectLaunch(ctx context.Context, collectionID, launchName, actingUserID string) (*models.Launch, error) {
	collection, err := s.getCollection(collectionID)
	if err != nil {
		return nil, err
	}
	if collection.CreatedBy != actingUserID {
		return nil, fmt.Errorf("user %s does not own collection %s: %w", actingUserID, collectionID, ErrUnauthorized)
	}

	launch, err := s.resolveLaunch(ctx, launchName)
	if err != nil {
		return nil, err
	}

	if exists, err := s.collectionRepo.HasLaunch(collectionID, launch.ID); err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("launch %q in collection %s: %w", launchName, collectionID, ErrDuplicateLaunch)
	}

	assoc := &models.LaunchCollection{
		CollectionID: collectionID,
		LaunchID:     launch.ID,
	}
	if err := s.collectionRepo.AddLaunch(assoc); err != nil {
		// Composite unique index backstops the pre-check under races.
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("launch %q in collection %s: %w", launchName, collectionID, ErrDuplicateLaunch)
		}
		return nil, fmt.Errorf("failed to collect launch: %w", err)
	}

	if s.publisher != nil {
		event := map[string]interface{}{
			"collection_id": collectionID,
			"launch_id":     launch.ID,
			"launch_name":   launch.Name,
			"user_id":       actingUserID,
		}
		if err := s.publisher.PublishLaunchCollected(event); err != nil {
			// Event delivery is best-effort; the association is already committed.
			log.Printf("Failed to publish launch collected event: %v", err)
		}
	}

	return launch, nil
}

// UncollectLaunch removes the association between a collection and a launch.
// Removing an absent association is an idempotent no-op reported as
// ErrNotFound. Owner-only.
func (s *CollectionService) UncollectLaunch(collectionID, launchID, actingUserID string) error {
	collection, err := s.getCollection(collectionID)
	if err != nil {
		return err
	}
	if collection.CreatedBy != actingUserID {
		return fmt.Errorf("user %s does not own collection %s: %w", actingUserID, collectionID, ErrUnauthorized)
	}

	removed, err := s.collectionRepo.RemoveLaunch(collectionID, launchID)
	if err != nil {
		return fmt.Errorf("failed to uncollect launch: %w", err)
	}
	if !removed {
		return fmt.Errorf("launch %s in collection %s: %w", launchID, collectionID, ErrNotFound)
	}
	return nil
}

// resolveLaunch returns the stored snapshot for launchName, creating it from
// the data source on first reference.
func (s *CollectionService) resolveLaunch(ctx context.Context, launchName string) (*models.Launch, error) {
	launch, err := s.launchRepo.GetByName(launchName)
	if err == nil {
		return launch, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	detail, err := s.fetcher.GetByName(ctx, launchName)
	if err != nil {
		if errors.Is(err, launchapi.ErrNotFound) {
			return nil, fmt.Errorf("launch %q: %w", launchName, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch launch %q: %w", launchName, err)
	}

	launch = &models.Launch{
		Name:             detail.Name,
		Date:             detail.Date,
		Status:           detail.Status,
		Description:      detail.Description,
		ImageURL:         detail.ImageURL,
		Organization:     detail.Organization,
		OrganizationType: detail.OrganizationType,
		Location:         detail.Location,
		Pad:              detail.Pad.Name,
		Rocket:           detail.Rocket.Name,
		Mission:          detail.Mission.Name,
	}
	if err := s.launchRepo.Create(launch); err != nil {
		// Two requests may race to store the same launch; the unique name
		// index decides, and the loser reuses the winner's row.
		if isUniqueViolation(err) {
			return s.launchRepo.GetByName(launchName)
		}
		return nil, fmt.Errorf("failed to store launch %q: %w", launchName, err)
	}
	return launch, nil
}

// getCollection maps a repo lookup failure to the service taxonomy.
func (s *CollectionService) getCollection(collectionID string) (*models.Collection, error) {
	collection, err := s.collectionRepo.GetByID(collectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("collection %s: %w", collectionID, ErrNotFound)
		}
		return nil, err
	}
	return collection, nil
}

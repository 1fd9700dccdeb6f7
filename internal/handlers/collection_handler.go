package handlers

import (
	"log"

	"launchtracker/internal/middleware"
	"launchtracker/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CollectionHandler handles HTTP requests for collections and their launches.
type CollectionHandler struct {
	service  *services.CollectionService
	validate *validator.Validate
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(service *services.CollectionService) *CollectionHandler {
	return &CollectionHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public collection routes.
func (h *CollectionHandler) RegisterRoutes(router fiber.Router) {
	collectionRoutes := router.Group("/collections")
	collectionRoutes.Get("/user/:id", h.HandleListByOwner)
	collectionRoutes.Get("/:id", h.HandleGetCollection)
}

// RegisterProtectedRoutes registers the mutating collection routes.
func (h *CollectionHandler) RegisterProtectedRoutes(router fiber.Router) {
	collectionRoutes := router.Group("/collections")
	collectionRoutes.Post("/", h.HandleCreateCollection)
	collectionRoutes.Put("/:id", h.HandleEditCollection)
	collectionRoutes.Delete("/:id", h.HandleDeleteCollection)
	collectionRoutes.Post("/:id/launches", h.HandleCollectLaunch)
	collectionRoutes.Delete("/:id/launches/:launchId", h.HandleUncollectLaunch)
}

// CollectionRequest represents the request body for creating or editing a
// collection.
type CollectionRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

// HandleCreateCollection creates a collection owned by the authenticated user.
func (h *CollectionHandler) HandleCreateCollection(c *fiber.Ctx) error {
	var req CollectionRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing collection body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	ownerID := middleware.UserID(c)
	collection, err := h.service.CreateCollection(req.Name, req.Description, req.ImageURL, ownerID)
	if err != nil {
		log.Printf("Error creating collection for user %s: %v", ownerID, err)
		return respondServiceError(c, "Could not create collection", err)
	}

	return c.Status(fiber.StatusCreated).JSON(collection)
}

// HandleListByOwner retrieves all collections created by one user.
func (h *CollectionHandler) HandleListByOwner(c *fiber.Ctx) error {
	ownerID := c.Params("id")
	collections, err := h.service.ListByOwner(ownerID)
	if err != nil {
		log.Printf("Error listing collections for user %s: %v", ownerID, err)
		return respondServiceError(c, "Could not retrieve collections", err)
	}
	return c.JSON(collections)
}

// HandleGetCollection retrieves one collection and the launches it references.
func (h *CollectionHandler) HandleGetCollection(c *fiber.Ctx) error {
	collectionID := c.Params("id")
	collection, launches, err := h.service.GetCollection(collectionID)
	if err != nil {
		log.Printf("Error getting collection %s: %v", collectionID, err)
		return respondServiceError(c, "Could not retrieve collection", err)
	}
	return c.JSON(fiber.Map{
		"collection": collection,
		"launches":   launches,
	})
}

// HandleEditCollection overwrites a collection's fields. Owner-only.
func (h *CollectionHandler) HandleEditCollection(c *fiber.Ctx) error {
	var req CollectionRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing collection body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	collectionID := c.Params("id")
	actingUserID := middleware.UserID(c)
	collection, err := h.service.EditCollection(collectionID, actingUserID, req.Name, req.Description, req.ImageURL)
	if err != nil {
		log.Printf("Error editing collection %s: %v", collectionID, err)
		return respondServiceError(c, "Could not update collection", err)
	}

	return c.JSON(collection)
}

// HandleDeleteCollection removes a collection. Owner-only; the referenced
// launches survive.
func (h *CollectionHandler) HandleDeleteCollection(c *fiber.Ctx) error {
	collectionID := c.Params("id")
	actingUserID := middleware.UserID(c)
	if err := h.service.DeleteCollection(collectionID, actingUserID); err != nil {
		log.Printf("Error deleting collection %s: %v", collectionID, err)
		return respondServiceError(c, "Could not delete collection", err)
	}
	return c.JSON(fiber.Map{
		"message": "Collection deleted",
	})
}

// CollectRequest names the launch to add to a collection.
type CollectRequest struct {
	Name string `json:"name" validate:"required"`
}

// HandleCollectLaunch adds the named launch to a collection, storing its
// snapshot on first reference.
func (h *CollectionHandler) HandleCollectLaunch(c *fiber.Ctx) error {
	var req CollectRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing collect body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	collectionID := c.Params("id")
	actingUserID := middleware.UserID(c)
	launch, err := h.service.CollectLaunch(c.Context(), collectionID, req.Name, actingUserID)
	if err != nil {
		log.Printf("Error collecting launch %q into collection %s: %v", req.Name, collectionID, err)
		return respondServiceError(c, "Could not collect launch", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Launch collected",
		"launch":  launch,
	})
}

// HandleUncollectLaunch removes one launch reference from a collection.
func (h *CollectionHandler) HandleUncollectLaunch(c *fiber.Ctx) error {
	collectionID := c.Params("id")
	launchID := c.Params("launchId")
	actingUserID := middleware.UserID(c)
	if err := h.service.UncollectLaunch(collectionID, launchID, actingUserID); err != nil {
		log.Printf("Error uncollecting launch %s from collection %s: %v", launchID, collectionID, err)
		return respondServiceError(c, "Could not uncollect launch", err)
	}
	return c.JSON(fiber.Map{
		"message": "Launch removed from collection",
	})
}

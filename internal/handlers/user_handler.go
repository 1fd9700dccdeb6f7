package handlers

import (
	"log"

	"launchtracker/internal/middleware"
	"launchtracker/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user profiles.
type UserHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the public user routes.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleListUsers)
	userRoutes.Get("/:id", h.HandleGetUser)
}

// RegisterProtectedRoutes registers routes acting on the authenticated user's
// own profile.
func (h *UserHandler) RegisterProtectedRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Put("/profile", h.HandleEditProfile)
	userRoutes.Delete("/profile", h.HandleDeactivate)
}

// HandleListUsers retrieves all active users.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.authService.ListUsers()
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return respondServiceError(c, "Could not retrieve users", err)
	}
	for i := range users {
		users[i].Password = ""
	}
	return c.JSON(users)
}

// HandleGetUser retrieves a single user profile by ID.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	userID := c.Params("id")
	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		log.Printf("Error getting user %s: %v", userID, err)
		return respondServiceError(c, "Could not retrieve user", err)
	}
	user.Password = ""
	return c.JSON(user)
}

// ProfileUpdateRequest represents the request body for profile edits. Empty
// fields keep the current values.
type ProfileUpdateRequest struct {
	Username     string `json:"username" validate:"omitempty,min=3,max=100"`
	Email        string `json:"email" validate:"omitempty,email"`
	ImgURL       string `json:"img_url" validate:"omitempty,url"`
	HeaderImgURL string `json:"header_img_url" validate:"omitempty,url"`
	Bio          string `json:"bio" validate:"omitempty,max=500"`
	Location     string `json:"location"`
}

// HandleEditProfile updates the authenticated user's own profile.
func (h *UserHandler) HandleEditProfile(c *fiber.Ctx) error {
	var req ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing profile update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	userID := middleware.UserID(c)
	user, err := h.authService.EditProfile(userID, services.ProfileUpdate{
		Username:     req.Username,
		Email:        req.Email,
		ImgURL:       req.ImgURL,
		HeaderImgURL: req.HeaderImgURL,
		Bio:          req.Bio,
		Location:     req.Location,
	})
	if err != nil {
		log.Printf("Error updating profile for user %s: %v", userID, err)
		return respondServiceError(c, "Could not update profile", err)
	}

	user.Password = ""
	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// DeactivateRequest carries the password re-check for account deactivation.
type DeactivateRequest struct {
	Password string `json:"password" validate:"required"`
}

// HandleDeactivate deactivates the authenticated user's account after
// re-verifying their password.
func (h *UserHandler) HandleDeactivate(c *fiber.Ctx) error {
	var req DeactivateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing deactivate body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	userID := middleware.UserID(c)
	if err := h.authService.DeactivateUser(userID, req.Password); err != nil {
		log.Printf("Error deactivating user %s: %v", userID, err)
		return respondServiceError(c, "Could not deactivate account", err)
	}

	return c.JSON(fiber.Map{
		"message": "Account deactivated",
	})
}

package users

import (
	"errors"

	"github.com/DaniPVargas/Wearvana/src/core/database"
	"github.com/DaniPVargas/Wearvana/src/core/helpers"
	"github.com/DaniPVargas/Wearvana/src/core/models"
	"github.com/DaniPVargas/Wearvana/src/core/passwordless"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Handler owns the passwordless client used to register new aliases.
type Handler struct {
	Passwordless *passwordless.Client
}

func NewHandler(pwless *passwordless.Client) *Handler {
	return &Handler{Passwordless: pwless}
}

type createUserBody struct {
	CompleteName      string  `json:"complete_name" validate:"required"`
	Alias             string  `json:"user_alias" validate:"required"`
	Description       *string `json:"description"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

type updateUserBody struct {
	Description       *string `json:"description"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

// Create inserts the profile and registers the alias with the
// passwordless provider, returning the registration token the client
// needs to finish credential setup.
func (h *Handler) Create(c *fiber.Ctx) error {
	db := database.DB

	body := new(createUserBody)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, helpers.KindValidationError, "Invalid input data", err)
	}
	if err := helpers.Validate(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, helpers.KindValidationError, "Missing required fields", err)
	}

	user := models.User{
		ID:                uuid.NewString(),
		CompleteName:      body.CompleteName,
		Alias:             body.Alias,
		Description:       body.Description,
		ProfilePictureURL: body.ProfilePictureURL,
	}

	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helpers.HandleError(c, fiber.StatusConflict, helpers.KindConflict, "Alias already exists", err)
		}
		return helpers.HandleError(c, fiber.StatusInternalServerError, helpers.KindInternalError, "Failed to create user", err)
	}

	registrationToken, err := h.Passwordless.RegisterToken(c.UserContext(), user.ID, user.Alias)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadGateway, helpers.KindUpstreamError, "Failed to register alias with auth provider", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusCreated, "User created successfully", fiber.Map{
		"user_id":            user.ID,
		"registration_token": registrationToken,
	})
}

// List returns every profile, unordered.
func (h *Handler) List(c *fiber.Ctx) error {
	db := database.DB

	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, helpers.KindInternalError, "Failed to fetch users", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Users fetched successfully", users)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	db := database.DB
	userID := c.Params("user_id")

	var user models.User
	if err := db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.HandleError(c, fiber.StatusNotFound, helpers.KindNotFound, "User not found", err)
		}
		return helpers.HandleError(c, fiber.StatusInternalServerError, helpers.KindInternalError, "Failed to fetch user", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "User fetched successfully", user)
}

// Update applies a partial update: fields absent from the body are left
// untouched, not cleared.
func (h *Handler) Update(c *fiber.Ctx) error {
	db := database.DB
	userID := c.Params("user_id")

	body := new(updateUserBody)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, helpers.KindValidationError, "Invalid input data", err)
	}

	updates := map[string]interface{}{}
	if body.Description != nil {
		updates["description"] = *body.Description
	}
	if body.ProfilePictureURL != nil {
		updates["profile_picture_url"] = *body.ProfilePictureURL
	}
	if len(updates) == 0 {
		return helpers.HandleSuccess(c, fiber.StatusOK, "Nothing to update", nil)
	}

	result := db.Model(&models.User{}).Where("user_id = ?", userID).Updates(updates)
	if result.Error != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, helpers.KindInternalError, "Failed to update user", result.Error)
	}
	if result.RowsAffected == 0 {
		return helpers.HandleError(c, fiber.StatusNotFound, helpers.KindNotFound, "User not found", nil)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "User updated successfully", nil)
}

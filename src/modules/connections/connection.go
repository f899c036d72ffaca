package connection

import (
	"errors"

	"github.com/DaniPVargas/Wearvana/src/core/database"
	"github.com/DaniPVargas/Wearvana/src/core/helpers"
	"github.com/DaniPVargas/Wearvana/src/core/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type followBody struct {
	FollowedID string `json:"followed_id" validate:"required"`
}

// Follow creates the follower edge. Self-follows are rejected and the
// unique index turns a repeated follow into a conflict.
func Follow(c *fiber.Ctx) error {
	db := database.DB
	followerID := c.Params("user_id")

	body := new(followBody)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, helpers.KindValidationError, "Invalid input data", err)
	}
	if err := helpers.Validate(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, helpers.KindValidationError, "Missing followed_id", err)
	}
	if body.FollowedID == followerID {
		return helpers.HandleError(c, fiber.StatusBadRequest, helpers.KindValidationError, "Users cannot follow themselves", nil)
	}

	var count int64
	if err := db.Model(&models.User{}).Where("user_id IN ?", []string{followerID, body.FollowedID}).Count(&count).Error; err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, helpers.KindInternalError, "Failed to fetch users", err)
	}
	if count != 2 {
		return helpers.HandleError(c, fiber.StatusNotFound, helpers.KindNotFound, "User not found", nil)
	}

	relationship := models.Relationship{
		FollowerID: followerID,
		FollowedID: body.FollowedID,
	}
	if err := db.Create(&relationship).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helpers.HandleError(c, fiber.StatusConflict, helpers.KindConflict, "Already following this user", err)
		}
		return helpers.HandleError(c, fiber.StatusInternalServerError, helpers.KindInternalError, "Failed to follow user", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusCreated, "User followed successfully", relationship)
}

// GetFollowed lists the ids of users this user follows.
func GetFollowed(c *fiber.Ctx) error {
	db := database.DB
	userID := c.Params("user_id")

	var followed []string
	err := db.Model(&models.Relationship{}).
		Where("follower_id = ?", userID).
		Pluck("followed_id", &followed).Error
	if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, helpers.KindInternalError, "Failed to fetch followed users", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Followed users fetched successfully", followed)
}

// GetFollowers lists the ids of users following this user.
func GetFollowers(c *fiber.Ctx) error {
	db := database.DB
	userID := c.Params("user_id")

	var followers []string
	err := db.Model(&models.Relationship{}).
		Where("followed_id = ?", userID).
		Pluck("follower_id", &followers).Error
	if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, helpers.KindInternalError, "Failed to fetch followers", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Followers fetched successfully", followers)
}

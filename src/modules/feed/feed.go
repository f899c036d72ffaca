package feed

import (
	"github.com/DaniPVargas/Wearvana/src/core/database"
	"github.com/DaniPVargas/Wearvana/src/core/helpers"
	"github.com/DaniPVargas/Wearvana/src/core/models"

	"github.com/gofiber/fiber/v2"
)

// FetchFeed returns every post authored by users the requester follows,
// newest first, with tags eagerly loaded.
func FetchFeed(c *fiber.Ctx) error {
	db := database.DB
	userID := c.Params("user_id")

	followed := db.Model(&models.Relationship{}).
		Select("followed_id").
		Where("follower_id = ?", userID)

	var posts []models.Post
	err := db.Preload("Tags").
		Where("user_id IN (?)", followed).
		Order("post_id DESC").
		Find(&posts).Error
	if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, helpers.KindInternalError, "Failed to fetch feed", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Feed fetched successfully", posts)
}

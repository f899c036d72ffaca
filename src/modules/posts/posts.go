package posts

import (
	"errors"

	"github.com/DaniPVargas/Wearvana/src/core/database"
	"github.com/DaniPVargas/Wearvana/src/core/helpers"
	"github.com/DaniPVargas/Wearvana/src/core/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type tagBody struct {
	XCoord        float64  `json:"x_coord"`
	YCoord        float64  `json:"y_coord"`
	ClothingName  string   `json:"clothing_name" validate:"required"`
	CurrentPrice  float64  `json:"current_price" validate:"gte=0"`
	OriginalPrice *float64 `json:"original_price"`
	Brand         string   `json:"brand" validate:"required"`
	Link          string   `json:"link" validate:"required"`
}

type createPostBody struct {
	Title    *string   `json:"title"`
	ImageURL string    `json:"image_url" validate:"required"`
	Tags     []tagBody `json:"tags" validate:"dive"`
}

// CreatePost inserts the post row and every tag row in one transaction,
// so a failing tag leaves nothing behind.
func CreatePost(c *fiber.Ctx) error {
	db := database.DB
	userID := c.Params("user_id")

	var user models.User
	if err := db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.HandleError(c, fiber.StatusNotFound, helpers.KindNotFound, "User not found", err)
		}
		return helpers.HandleError(c, fiber.StatusInternalServerError, helpers.KindInternalError, "Failed to fetch user", err)
	}

	body := new(createPostBody)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, helpers.KindValidationError, "Invalid input data", err)
	}
	if err := helpers.Validate(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, helpers.KindValidationError, "Invalid post fields", err)
	}

	post := models.Post{
		UserID:   userID,
		Title:    body.Title,
		ImageURL: body.ImageURL,
	}
	tags := make([]models.Tag, len(body.Tags))
	for i, t := range body.Tags {
		tags[i] = models.Tag{
			XCoord:        t.XCoord,
			YCoord:        t.YCoord,
			ClothingName:  t.ClothingName,
			CurrentPrice:  t.CurrentPrice,
			OriginalPrice: t.OriginalPrice,
			Brand:         t.Brand,
			Link:          t.Link,
		}
	}

	if err := insertPostWithTags(db, &post, tags); err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, helpers.KindInternalError, "Failed to create post", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusCreated, "Post uploaded successfully", post)
}

// insertPostWithTags writes the post row and its tag rows in a single
// transaction; a failing tag rolls back the post as well.
func insertPostWithTags(db *gorm.DB, post *models.Post, tags []models.Tag) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Create(post).Error; err != nil {
			return err
		}
		if len(tags) == 0 {
			return nil
		}
		for i := range tags {
			tags[i].PostID = post.ID
		}
		if err := tx.Create(&tags).Error; err != nil {
			return err
		}
		post.Tags = tags
		return nil
	})
}

// ListUserPosts returns a user's posts with their tags, newest first.
func ListUserPosts(c *fiber.Ctx) error {
	db := database.DB
	userID := c.Params("user_id")

	var posts []models.Post
	err := db.Preload("Tags").
		Where("user_id = ?", userID).
		Order("post_id DESC").
		Find(&posts).Error
	if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, helpers.KindInternalError, "Failed to fetch posts", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Posts fetched successfully", posts)
}

package posts

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DaniPVargas/Wearvana/src/core/database"
	"github.com/DaniPVargas/Wearvana/src/core/helpers"
	"github.com/DaniPVargas/Wearvana/src/core/models"

	"github.com/gofiber/fiber/v2"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type envelope struct {
	Status  string          `json:"status"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrapping db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	database.DB = db
	return db
}

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Post("/users/:user_id/posts", CreatePost)
	app.Get("/users/:user_id/posts", ListUserPosts)
	return app
}

func seedUser(t *testing.T, db *gorm.DB, id, alias string) {
	t.Helper()
	if err := db.Create(&models.User{ID: id, CompleteName: "User", Alias: alias}).Error; err != nil {
		t.Fatalf("seeding user %s: %v", id, err)
	}
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) (int, envelope) {
	t.Helper()
	var req *http.Request
	if body != nil {
		encoded, _ := json.Marshal(body)
		req = httptest.NewRequest(method, target, bytes.NewReader(encoded))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp.StatusCode, env
}

func TestCreatePostWithTags(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()
	seedUser(t, db, "u1", "anap")

	original := 29.99
	body := map[string]interface{}{
		"title":     "ootd",
		"image_url": "https://pics.example/u1/p1.jpg",
		"tags": []map[string]interface{}{
			{"x_coord": 0.4, "y_coord": 0.6, "clothing_name": "Shirt", "current_price": 19.99, "original_price": original, "brand": "Zara", "link": "http://x"},
			{"x_coord": 0.1, "y_coord": 0.9, "clothing_name": "Jeans", "current_price": 39.99, "brand": "Pull&Bear", "link": "http://y"},
		},
	}

	status, env := doJSON(t, app, http.MethodPost, "/users/u1/posts", body)
	if status != http.StatusCreated {
		t.Fatalf("status %d (%s)", status, env.Message)
	}

	var post models.Post
	if err := json.Unmarshal(env.Data, &post); err != nil {
		t.Fatalf("decoding post: %v", err)
	}
	if len(post.Tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(post.Tags))
	}
	for _, tag := range post.Tags {
		if tag.PostID != post.ID {
			t.Errorf("tag %d bound to post %d, want %d", tag.ID, tag.PostID, post.ID)
		}
	}

	var tagCount int64
	db.Model(&models.Tag{}).Count(&tagCount)
	if tagCount != 2 {
		t.Fatalf("expected 2 persisted tags, got %d", tagCount)
	}
}

func TestCreatePostUnknownUser(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	status, env := doJSON(t, app, http.MethodPost, "/users/ghost/posts", map[string]interface{}{
		"image_url": "https://pics.example/x.jpg",
	})
	if status != http.StatusNotFound {
		t.Fatalf("status %d", status)
	}
	if env.Code != helpers.KindNotFound {
		t.Fatalf("code %q", env.Code)
	}
}

func TestCreatePostRequiresImage(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()
	seedUser(t, db, "u1", "anap")

	status, env := doJSON(t, app, http.MethodPost, "/users/u1/posts", map[string]interface{}{
		"title": "no image",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("status %d", status)
	}
	if env.Code != helpers.KindValidationError {
		t.Fatalf("code %q", env.Code)
	}
}

func TestInsertPostWithTagsIsAtomic(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "u1", "anap")

	post := models.Post{UserID: "u1", ImageURL: "https://pics.example/u1/p1.jpg"}
	tags := []models.Tag{
		{XCoord: 0.1, YCoord: 0.1, ClothingName: "Shirt", CurrentPrice: 19.99, Brand: "Zara", Link: "http://x"},
		// Violates the current_price >= 0 check.
		{XCoord: 0.2, YCoord: 0.2, ClothingName: "Jeans", CurrentPrice: -5, Brand: "Zara", Link: "http://y"},
		{XCoord: 0.3, YCoord: 0.3, ClothingName: "Coat", CurrentPrice: 59.99, Brand: "Bershka", Link: "http://z"},
	}

	if err := insertPostWithTags(db, &post, tags); err == nil {
		t.Fatal("expected the negative price to fail the transaction")
	}

	var postCount, tagCount int64
	db.Model(&models.Post{}).Count(&postCount)
	db.Model(&models.Tag{}).Count(&tagCount)
	if postCount != 0 || tagCount != 0 {
		t.Fatalf("transaction leaked rows: %d posts, %d tags", postCount, tagCount)
	}
}

func TestListUserPostsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()
	seedUser(t, db, "u1", "anap")

	for _, url := range []string{"https://p/1.jpg", "https://p/2.jpg", "https://p/3.jpg"} {
		if err := db.Create(&models.Post{UserID: "u1", ImageURL: url}).Error; err != nil {
			t.Fatalf("seeding post: %v", err)
		}
	}

	status, env := doJSON(t, app, http.MethodGet, "/users/u1/posts", nil)
	if status != http.StatusOK {
		t.Fatalf("status %d", status)
	}

	var posts []models.Post
	if err := json.Unmarshal(env.Data, &posts); err != nil {
		t.Fatalf("decoding posts: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}
	for i := 1; i < len(posts); i++ {
		if posts[i-1].ID < posts[i].ID {
			t.Fatalf("posts not ordered newest first: %v before %v", posts[i-1].ID, posts[i].ID)
		}
	}
}

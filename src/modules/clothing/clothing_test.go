package clothing

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DaniPVargas/Wearvana/src/core/catalog"
	"github.com/DaniPVargas/Wearvana/src/core/helpers"
	"github.com/DaniPVargas/Wearvana/src/core/models"

	"github.com/gofiber/fiber/v2"
)

type envelope struct {
	Status  string          `json:"status"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newSearchApp(t *testing.T, tokenHandler, searchHandler http.HandlerFunc) *fiber.App {
	t.Helper()
	tokenServer := httptest.NewServer(tokenHandler)
	t.Cleanup(tokenServer.Close)
	searchServer := httptest.NewServer(searchHandler)
	t.Cleanup(searchServer.Close)

	tokens := catalog.NewTokenSource(tokenServer.URL, "id", "secret")
	h := NewHandler(catalog.NewClient(tokens, searchServer.URL, searchServer.URL))

	app := fiber.New()
	app.Post("/clothing\\:text_search", h.TextSearch)
	app.Post("/clothing\\:image_search", h.ImageSearch)
	return app
}

func goodToken(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, `{"id_token":"tok","expires_in":3600}`)
}

func doSearch(t *testing.T, app *fiber.App, target string) (int, envelope) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, target, nil), -1)
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

func TestTextSearchReturnsReferences(t *testing.T) {
	app := newSearchApp(t, goodToken, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"name":"Shirt","link":"http://x","price":{"value":{"current":19.99,"original":29.99}},"brand":"Zara"}]`)
	})

	status, env := doSearch(t, app, "/clothing:text_search?query=shirt&brand=zara")
	if status != http.StatusOK {
		t.Fatalf("status %d (%s)", status, env.Message)
	}

	var references []models.Reference
	if err := json.Unmarshal(env.Data, &references); err != nil {
		t.Fatalf("decoding references: %v", err)
	}
	if len(references) != 1 || references[0].ClothingName != "Shirt" {
		t.Fatalf("unexpected references %+v", references)
	}
}

func TestTextSearchRequiresQuery(t *testing.T) {
	app := newSearchApp(t, goodToken, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})

	status, env := doSearch(t, app, "/clothing:text_search")
	if status != http.StatusBadRequest {
		t.Fatalf("status %d", status)
	}
	if env.Code != helpers.KindValidationError {
		t.Fatalf("code %q", env.Code)
	}
}

func TestImageSearchRequiresPictureURL(t *testing.T) {
	app := newSearchApp(t, goodToken, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})

	status, env := doSearch(t, app, "/clothing:image_search")
	if status != http.StatusBadRequest {
		t.Fatalf("status %d", status)
	}
	if env.Code != helpers.KindValidationError {
		t.Fatalf("code %q", env.Code)
	}
}

func TestSearchErrorKinds(t *testing.T) {
	t.Run("upstream status error", func(t *testing.T) {
		app := newSearchApp(t, goodToken, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})
		status, env := doSearch(t, app, "/clothing:text_search?query=shirt")
		if status != http.StatusBadGateway {
			t.Fatalf("status %d", status)
		}
		if env.Code != helpers.KindUpstreamError {
			t.Fatalf("code %q", env.Code)
		}
	})

	t.Run("credential exchange failure", func(t *testing.T) {
		app := newSearchApp(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusForbidden)
		}, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[]`)
		})
		status, env := doSearch(t, app, "/clothing:text_search?query=shirt")
		if status != http.StatusBadGateway {
			t.Fatalf("status %d", status)
		}
		if env.Code != helpers.KindUpstreamAuthError {
			t.Fatalf("code %q", env.Code)
		}
	})
}

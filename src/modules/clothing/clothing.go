package clothing

import (
	"errors"

	"github.com/DaniPVargas/Wearvana/src/core/catalog"
	"github.com/DaniPVargas/Wearvana/src/core/helpers"

	"github.com/gofiber/fiber/v2"
)

// Handler proxies search requests to the catalog client. The client is
// injected here so the token cache has a single owner.
type Handler struct {
	Catalog *catalog.Client
}

func NewHandler(client *catalog.Client) *Handler {
	return &Handler{Catalog: client}
}

// TextSearch looks up catalog references by free text, optionally
// filtered to one brand.
func (h *Handler) TextSearch(c *fiber.Ctx) error {
	query := c.Query("query")
	brand := c.Query("brand")
	if query == "" {
		return helpers.HandleError(c, fiber.StatusBadRequest, helpers.KindValidationError, "Missing query parameter", nil)
	}

	references, err := h.Catalog.SearchByText(c.UserContext(), query, brand)
	if err != nil {
		return handleCatalogError(c, err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Search completed successfully", references)
}

// ImageSearch looks up catalog references similar to a publicly
// reachable picture.
func (h *Handler) ImageSearch(c *fiber.Ctx) error {
	pictureURL := c.Query("picture_url")
	if pictureURL == "" {
		return helpers.HandleError(c, fiber.StatusBadRequest, helpers.KindValidationError, "Missing picture_url parameter", nil)
	}

	references, err := h.Catalog.SearchByImage(c.UserContext(), pictureURL)
	if err != nil {
		return handleCatalogError(c, err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Search completed successfully", references)
}

func handleCatalogError(c *fiber.Ctx, err error) error {
	var statusErr *catalog.StatusError
	switch {
	case errors.Is(err, catalog.ErrAuth):
		return helpers.HandleError(c, fiber.StatusBadGateway, helpers.KindUpstreamAuthError, "Could not authenticate against the catalog service", err)
	case errors.Is(err, catalog.ErrTimeout):
		return helpers.HandleError(c, fiber.StatusGatewayTimeout, helpers.KindUpstreamTimeout, "Catalog service timed out", err)
	case errors.Is(err, catalog.ErrUnavailable):
		return helpers.HandleError(c, fiber.StatusServiceUnavailable, helpers.KindUpstreamUnavailable, "Catalog service unreachable", err)
	case errors.As(err, &statusErr):
		return helpers.HandleError(c, fiber.StatusBadGateway, helpers.KindUpstreamError, "Catalog service returned an error", err)
	default:
		return helpers.HandleError(c, fiber.StatusInternalServerError, helpers.KindInternalError, "Search failed", err)
	}
}

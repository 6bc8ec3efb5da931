package items

import (
	"net/url"

	"poewikibot/core/logger"
	"poewikibot/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for item resolution.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the item routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/items")
	group.Get("/search", h.HandleSearch)
	group.Get("/:name", h.HandleGetItem)
}

// HandleSearch returns the items matching the q parameter. Hits are
// unenriched unless detailed=true.
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing query parameter q",
		})
	}

	opts := SearchOptions{
		Limit:       utils.ToInt(c.Query("limit", "10")),
		Detailed:    utils.ToBool(c.Query("detailed")),
		IncludeMods: utils.ToBool(c.Query("mods", "true")),
	}

	results, err := h.service.Search(c.Context(), query, opts)
	if err != nil {
		l.Error("Item search failed", zap.String("query", query), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"query": query,
		"count": len(results),
		"items": results,
	})
}

// HandleGetItem returns the fully resolved record of one item.
func (h *Handler) HandleGetItem(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	name := c.Params("name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	includeMods := utils.ToBool(c.Query("mods", "true"))

	item, err := h.service.GetItemDetails(c.Context(), name, includeMods)
	if err != nil {
		l.Error("Item detail fetch failed", zap.String("item", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if item == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "item not found",
			"name":  name,
		})
	}

	return c.JSON(item)
}

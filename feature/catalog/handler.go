package catalog

import (
	"poewikibot/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the field catalog.
type Handler struct {
	provider *Provider
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(provider *Provider, logger *zap.Logger) *Handler {
	return &Handler{provider: provider, logger: logger}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/", h.HandleGetCatalog)
	group.Post("/reload", h.HandleReload)
}

// HandleGetCatalog returns the tables in the current catalog with their
// field counts.
func (h *Handler) HandleGetCatalog(c *fiber.Ctx) error {
	cat := h.provider.Current()

	tables := fiber.Map{}
	for _, table := range cat.Tables() {
		tables[table] = len(cat.FieldsForTable(table))
	}

	return c.JSON(fiber.Map{
		"tables": tables,
	})
}

// HandleReload swaps in a freshly loaded catalog.
func (h *Handler) HandleReload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	cat, err := h.provider.Reload()
	if err != nil {
		l.Error("Catalog reload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status": "reloaded",
		"tables": cat.Tables(),
	})
}

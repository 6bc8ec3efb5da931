package health

import (
	"poewikibot/core/logger"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for health checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the health routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/health")
	group.Get("/", h.HandleHealthCheck)
	group.Get("/wiki", h.HandleWikiCheck)
	group.Get("/catalog", h.HandleCatalogCheck)
}

// HandleHealthCheck runs every dependency check and returns the combined
// report. The overall status is the worst individual status, so a probe
// failure surfaces at the top level without hiding the detail.
func (h *Handler) HandleHealthCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Running all health checks")

	wikiReport := h.service.CheckWiki(c.Context())
	catalogReport := h.service.CheckCatalog()

	status := StatusOK
	if catalogReport.Status != StatusOK {
		status = catalogReport.Status
	}
	if wikiReport.Status != StatusOK {
		status = wikiReport.Status
	}

	if status == StatusError {
		c.Status(fiber.StatusServiceUnavailable)
	}
	return c.JSON(fiber.Map{
		"status":  status,
		"wiki":    wikiReport,
		"catalog": catalogReport,
	})
}

// HandleWikiCheck probes the remote wiki API.
func (h *Handler) HandleWikiCheck(c *fiber.Ctx) error {
	return c.JSON(h.service.CheckWiki(c.Context()))
}

// HandleCatalogCheck reports the state of the loaded field catalog.
func (h *Handler) HandleCatalogCheck(c *fiber.Ctx) error {
	return c.JSON(h.service.CheckCatalog())
}

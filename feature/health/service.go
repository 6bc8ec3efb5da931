package health

import (
	"context"
	"time"

	"poewikibot/core/wiki"
	"poewikibot/feature/catalog"

	"go.uber.org/zap"
)

// StatusOK reports a dependency in its expected state.
const StatusOK = "ok"

// StatusError reports a dependency that failed its probe outright.
const StatusError = "error"

// StatusDegraded reports a dependency that works but with reduced
// effect, such as a catalog that fails open.
const StatusDegraded = "degraded"

// WikiReport strictly types the result of the remote wiki probe.
type WikiReport struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// CatalogReport strictly types the result of the field catalog check.
type CatalogReport struct {
	Status string `json:"status"`
	// Tables counts the tables present in the loaded mapping.
	Tables int `json:"tables"`
	// MissingTables lists resolver tables absent from the mapping.
	MissingTables []string `json:"missing_tables,omitempty"`
	// FailOpen is set when no mapping is loaded at all and field
	// validation accepts everything.
	FailOpen bool `json:"fail_open"`
}

// Service runs health checks against the bot's external dependencies.
type Service struct {
	client   wiki.Client
	provider *catalog.Provider
	logger   *zap.Logger
}

// NewService creates a new health check service.
func NewService(client wiki.Client, provider *catalog.Provider, logger *zap.Logger) *Service {
	return &Service{
		client:   client,
		provider: provider,
		logger:   logger,
	}
}

// CheckWiki probes the remote query API with the cheapest query the
// resolver issues and reports reachability and latency.
func (s *Service) CheckWiki(ctx context.Context) WikiReport {
	start := time.Now()
	_, err := s.client.CargoQuery(ctx, wiki.CargoQuery{
		Tables: "items",
		Fields: "name",
		Limit:  1,
	})
	latency := time.Since(start).Milliseconds()

	if err != nil {
		s.logger.Warn("Wiki probe failed", zap.Error(err))
		// An error envelope still proves the endpoint answered; only a
		// transport failure means the wiki is unreachable.
		status := StatusError
		if wiki.IsAPIError(err) {
			status = StatusDegraded
		}
		return WikiReport{Status: status, LatencyMS: latency, Error: err.Error()}
	}
	return WikiReport{Status: StatusOK, LatencyMS: latency}
}

// CheckCatalog inspects the loaded field catalog: how many tables the
// mapping covers and whether any table the resolver depends on is missing.
// A completely empty catalog is reported as fail-open rather than an error,
// matching the validation behavior.
func (s *Service) CheckCatalog() CatalogReport {
	cat := s.provider.Current()
	loaded := cat.Tables()

	present := make(map[string]bool, len(loaded))
	for _, table := range loaded {
		present[table] = true
	}

	var missing []string
	for _, table := range catalog.AllTables() {
		if !present[table] {
			missing = append(missing, table)
		}
	}

	report := CatalogReport{
		Tables:        len(loaded),
		MissingTables: missing,
		FailOpen:      len(loaded) == 0,
	}
	if report.FailOpen || len(missing) > 0 {
		report.Status = StatusDegraded
	} else {
		report.Status = StatusOK
	}
	return report
}

package catalog

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Provider hands out the current catalog and supports explicit reloads.
// Catalogs are immutable, so a swap never disturbs an in-flight resolution;
// readers keep the instance they started with.
type Provider struct {
	path    string
	logger  *zap.Logger
	current atomic.Pointer[Catalog]
}

// NewProvider loads the mapping at path. A missing or unreadable mapping is
// not fatal: the provider starts with an empty catalog that fails open.
func NewProvider(path string, logger *zap.Logger) *Provider {
	p := &Provider{path: path, logger: logger}

	cat, err := Load(path)
	if err != nil {
		logger.Warn("Field catalog unavailable, validation fails open",
			zap.String("path", path),
			zap.Error(err),
		)
		cat = Empty()
	}
	p.current.Store(cat)
	return p
}

// Current returns the catalog in use.
func (p *Provider) Current() *Catalog {
	return p.current.Load()
}

// Reload loads a fresh catalog from disk and swaps it in. The previous
// catalog stays valid for readers that already hold it.
func (p *Provider) Reload() (*Catalog, error) {
	cat, err := Load(p.path)
	if err != nil {
		return nil, err
	}

	p.current.Store(cat)
	p.logger.Info("Field catalog reloaded",
		zap.String("path", p.path),
		zap.Int("tables", len(cat.fields)),
	)
	return cat, nil
}

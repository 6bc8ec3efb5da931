package health

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"poewikibot/core/wiki"
	"poewikibot/core/wiki/mocks"
	"poewikibot/feature/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, client wiki.Client, mappingJSON string) *Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cargo_mapping.json")
	if mappingJSON != "" {
		require.NoError(t, os.WriteFile(path, []byte(mappingJSON), 0o644))
	}
	return NewService(client, catalog.NewProvider(path, zap.NewNop()), zap.NewNop())
}

// fullMapping covers every table the resolver queries so the catalog check
// reports a clean bill.
func fullMapping(t *testing.T) string {
	t.Helper()
	mapping := "{"
	for i, table := range catalog.AllTables() {
		if i > 0 {
			mapping += ","
		}
		mapping += `"` + table + `":["name"]`
	}
	return mapping + "}"
}

func TestCheckWiki(t *testing.T) {
	t.Run("Reachable", func(t *testing.T) {
		client := new(mocks.Client)
		svc := newTestService(t, client, "")

		var probe wiki.CargoQuery
		client.On("CargoQuery", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { probe = args.Get(1).(wiki.CargoQuery) }).
			Return([]wiki.Row{{"name": "Chaos Orb"}}, nil)

		report := svc.CheckWiki(context.Background())

		assert.Equal(t, StatusOK, report.Status)
		assert.Empty(t, report.Error)
		assert.Equal(t, "items", probe.Tables)
		assert.Equal(t, 1, probe.Limit)
	})

	t.Run("TransportFailure", func(t *testing.T) {
		client := new(mocks.Client)
		svc := newTestService(t, client, "")

		client.On("CargoQuery", mock.Anything, mock.Anything).
			Return(nil, errors.New("connection refused"))

		report := svc.CheckWiki(context.Background())

		assert.Equal(t, StatusError, report.Status)
		assert.Contains(t, report.Error, "connection refused")
	})

	t.Run("RejectedProbe", func(t *testing.T) {
		client := new(mocks.Client)
		svc := newTestService(t, client, "")

		client.On("CargoQuery", mock.Anything, mock.Anything).
			Return(nil, &wiki.APIError{Code: "internal", Info: "table scan failed"})

		report := svc.CheckWiki(context.Background())

		// The endpoint responded with an error envelope, so it is
		// reachable but unwell.
		assert.Equal(t, StatusDegraded, report.Status)
		assert.Contains(t, report.Error, "table scan failed")
	})
}

func TestCheckCatalog(t *testing.T) {
	t.Run("FullCoverage", func(t *testing.T) {
		svc := newTestService(t, new(mocks.Client), fullMapping(t))

		report := svc.CheckCatalog()

		assert.Equal(t, StatusOK, report.Status)
		assert.Equal(t, len(catalog.AllTables()), report.Tables)
		assert.Empty(t, report.MissingTables)
		assert.False(t, report.FailOpen)
	})

	t.Run("MissingTables", func(t *testing.T) {
		svc := newTestService(t, new(mocks.Client), `{"items":["name"],"weapons":["name"]}`)

		report := svc.CheckCatalog()

		assert.Equal(t, StatusDegraded, report.Status)
		assert.Equal(t, 2, report.Tables)
		assert.Contains(t, report.MissingTables, "mods")
		assert.NotContains(t, report.MissingTables, "weapons")
		assert.False(t, report.FailOpen)
	})

	t.Run("EmptyCatalogFailsOpen", func(t *testing.T) {
		svc := newTestService(t, new(mocks.Client), "")

		report := svc.CheckCatalog()

		assert.Equal(t, StatusDegraded, report.Status)
		assert.Zero(t, report.Tables)
		assert.True(t, report.FailOpen)
	})
}

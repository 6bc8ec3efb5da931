package catalog

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, mappingJSON string) (*fiber.App, *Provider, string) {
	t.Helper()
	path := writeMappingFile(t, mappingJSON)
	provider := NewProvider(path, zap.NewNop())

	app := fiber.New()
	NewHandler(provider, zap.NewNop()).RegisterRoutes(app)
	return app, provider, path
}

func TestHandleGetCatalog(t *testing.T) {
	app, _, _ := setupTestApp(t, `{"weapons":["name","attack_speed"],"items":["name"]}`)

	req := httptest.NewRequest("GET", "/catalog", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Tables map[string]int `json:"tables"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.Tables["weapons"])
	assert.Equal(t, 1, body.Tables["items"])
}

func TestHandleReload(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		app, provider, path := setupTestApp(t, `{"weapons":["name"]}`)
		require.NoError(t, os.WriteFile(path, []byte(`{"weapons":["name"],"flasks":["buff"]}`), 0o644))

		req := httptest.NewRequest("POST", "/catalog/reload", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, []string{"flasks", "weapons"}, provider.Current().Tables())
	})

	t.Run("FileGone", func(t *testing.T) {
		app, _, path := setupTestApp(t, `{"weapons":["name"]}`)
		require.NoError(t, os.Remove(path))

		req := httptest.NewRequest("POST", "/catalog/reload", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode)
	})
}

package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"poewikibot/core/wiki"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const cargoTablePage = `<!DOCTYPE html>
<html>
<body>
<div id="mw-panel">
  <ul>
    <li>Main page</li>
    <li>Recent changes</li>
  </ul>
</div>
<div id="mw-content-text">
  <p>This table has the following fields:</p>
  <ul>
    <li><strong>name</strong> - String</li>
    <li><strong>physical_damage_min</strong> - Integer</li>
    <li><strong>physical_damage_max</strong> - Integer</li>
    <li><strong>attack_speed</strong> (Float)</li>
    <li><strong>_pageName</strong> - Page</li>
  </ul>
</div>
</body>
</html>`

func TestParseFields(t *testing.T) {
	fields, err := parseFields(strings.NewReader(cargoTablePage))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"name",
		"physical_damage_min",
		"physical_damage_max",
		"attack_speed",
		"_pageName",
	}, fields)
}

func TestScrapeTable(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(cargoTablePage))
	}))
	defer server.Close()

	s := NewScraper(wiki.Config{BaseURL: server.URL + "/wiki/", TimeoutSeconds: 5}, zap.NewNop())
	fields, err := s.ScrapeTable(context.Background(), "weapons")

	require.NoError(t, err)
	assert.Equal(t, "/wiki/Special:CargoTables/weapons", gotPath)
	assert.Contains(t, fields, "attack_speed")
}

func TestScrapeTable_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	s := NewScraper(wiki.Config{BaseURL: server.URL + "/wiki/", TimeoutSeconds: 5}, zap.NewNop())
	_, err := s.ScrapeTable(context.Background(), "weapons")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestScrapeAll_SkipsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/weapons") {
			_, _ = w.Write([]byte(cargoTablePage))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	s := NewScraper(wiki.Config{BaseURL: server.URL + "/wiki/", TimeoutSeconds: 5}, zap.NewNop())
	mapping, err := s.ScrapeAll(context.Background())

	require.NoError(t, err)
	assert.Len(t, mapping, 1)
	assert.Contains(t, mapping, "weapons")
}

func TestWriteMapping_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cargo_mapping.json")
	mapping := map[string][]string{
		"weapons": {"name", "attack_speed"},
		"items":   {"name", "rarity"},
	}

	require.NoError(t, WriteMapping(path, mapping))

	cat, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"items", "weapons"}, cat.Tables())
	assert.True(t, cat.ValidateField("weapons", "attack speed"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "attack_speed")
}

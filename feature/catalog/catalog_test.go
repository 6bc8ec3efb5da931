package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeMappingFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cargo_mapping.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("ValidMapping", func(t *testing.T) {
		path := writeMappingFile(t, `{"weapons":["name","physical_damage_min","attack_speed"]}`)

		cat, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"weapons"}, cat.Tables())
		assert.Len(t, cat.FieldsForTable("weapons"), 3)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("MalformedFile", func(t *testing.T) {
		path := writeMappingFile(t, `{"weapons": "not-a-list"`)
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestCatalog_TableForClass(t *testing.T) {
	cat := Empty()

	tests := []struct {
		class string
		table string
		found bool
	}{
		{"Two-Handed Sword", "weapons", true},
		{"Body Armour", "armours", true},
		{"Support Gem", "skill_gems", true},
		{"Ring", "items", true},
		{"Divination Card", "divination_cards", true},
		{"Stackable Currency", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			table, ok := cat.TableForClass(tt.class)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.table, table)
		})
	}
}

func TestCatalog_ValidateField(t *testing.T) {
	path := writeMappingFile(t, `{"weapons":["name","attack_speed","weapon_range"],"items":["name"]}`)
	cat, err := Load(path)
	require.NoError(t, err)

	t.Run("KnownField", func(t *testing.T) {
		assert.True(t, cat.ValidateField("weapons", "attack_speed"))
	})

	t.Run("SpaceSpelling", func(t *testing.T) {
		assert.True(t, cat.ValidateField("weapons", "attack speed"))
	})

	t.Run("UnknownField", func(t *testing.T) {
		assert.False(t, cat.ValidateField("weapons", "implicit_mods"))
	})

	t.Run("UnknownTable", func(t *testing.T) {
		assert.False(t, cat.ValidateField("flasks", "buff"))
	})

	t.Run("FailsOpenWhenEmpty", func(t *testing.T) {
		assert.True(t, Empty().ValidateField("weapons", "anything_at_all"))
	})
}

func TestNormalizeField(t *testing.T) {
	assert.Equal(t, "attack_speed", NormalizeField("attack speed"))
	assert.Equal(t, "attack_speed", NormalizeField("attack_speed"))
	assert.Equal(t, "physical_damage_range_text", NormalizeField("physical damage range text"))
}

func TestProvider(t *testing.T) {
	t.Run("StartsEmptyWhenFileMissing", func(t *testing.T) {
		p := NewProvider(filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())
		assert.True(t, p.Current().ValidateField("weapons", "whatever"))
	})

	t.Run("ReloadSwapsInstance", func(t *testing.T) {
		path := writeMappingFile(t, `{"weapons":["name"]}`)
		p := NewProvider(path, zap.NewNop())
		before := p.Current()

		require.NoError(t, os.WriteFile(path, []byte(`{"weapons":["name","attack_speed"]}`), 0o644))
		after, err := p.Reload()
		require.NoError(t, err)

		assert.NotSame(t, before, after)
		assert.Same(t, after, p.Current())
		assert.Len(t, before.FieldsForTable("weapons"), 1)
		assert.Len(t, after.FieldsForTable("weapons"), 2)
	})

	t.Run("ReloadFailureKeepsCurrent", func(t *testing.T) {
		path := writeMappingFile(t, `{"weapons":["name"]}`)
		p := NewProvider(path, zap.NewNop())
		before := p.Current()

		require.NoError(t, os.Remove(path))
		_, err := p.Reload()
		assert.Error(t, err)
		assert.Same(t, before, p.Current())
	})
}

func TestAllTables(t *testing.T) {
	tables := AllTables()

	assert.Contains(t, tables, "items")
	assert.Contains(t, tables, "mods")
	assert.Contains(t, tables, "item_mods")
	assert.Contains(t, tables, "item_stats")
	assert.Contains(t, tables, "weapons")
	assert.Contains(t, tables, "armours")

	seen := map[string]bool{}
	for _, table := range tables {
		assert.False(t, seen[table], "duplicate table %s", table)
		seen[table] = true
	}
}

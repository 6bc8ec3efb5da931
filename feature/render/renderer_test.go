package render_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"poewikibot/feature/items"
	"poewikibot/feature/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer() *render.Renderer {
	return render.NewRenderer("https://www.poewiki.net/wiki/")
}

func TestRender(t *testing.T) {
	t.Run("ResolvedWeapon", func(t *testing.T) {
		item := &items.Item{
			Name:          "Starforge",
			Rarity:        "Unique",
			Class:         "Two-Handed Sword",
			RequiredLevel: "67",
			FlavourText:   "The end is written into the beginning.",
			ExplicitMods:  "500% increased Physical Damage<br>Adds 90 to 100 Physical Damage",
			ImageURL:      "https://web.poecdn.com/starforge.png",
		}
		item.Stats.Set("physical_damage_range_text", "50-62")
		item.Stats.Set("physical_damage_min", "50")
		item.Stats.Set("physical_damage_max", "62")
		item.Stats.Set("critical_strike_chance", "5")
		item.Stats.Set("attack_speed", "1.45")

		got := newRenderer().Render(item, render.PhaseResolved)

		want := `<a href="https://web.poecdn.com/starforge.png">&#8205;</a><b><a href="https://www.poewiki.net/wiki/Starforge">Starforge</a></b>

<i>Two-Handed Sword</i>

Physical Damage: 50-62
Critical Strike Chance: 5.00%
Attacks per Second: 1.45
Requires Level 67

500% increased Physical Damage
Adds 90 to 100 Physical Damage

<i>The end is written into the beginning.</i>`
		assert.Equal(t, want, got)
	})

	t.Run("PendingModsTrailer", func(t *testing.T) {
		item := &items.Item{Name: "Starforge", Class: "Two-Handed Sword"}

		pending := newRenderer().Render(item, render.PhasePendingMods)
		resolved := newRenderer().Render(item, render.PhaseResolved)

		assert.Contains(t, pending, "<b><i>Loading mods...</i></b>")
		assert.NotContains(t, resolved, "Loading mods")
	})

	t.Run("ModsRenderInBothPhases", func(t *testing.T) {
		item := &items.Item{
			Name:         "Starforge",
			Class:        "Two-Handed Sword",
			ImplicitMods: "Has no Elemental Damage",
		}

		pending := newRenderer().Render(item, render.PhasePendingMods)

		assert.Contains(t, pending, "Has no Elemental Damage")
		assert.Contains(t, pending, "Loading mods")
	})

	t.Run("CurrencyDescription", func(t *testing.T) {
		item := &items.Item{
			Name:        "Chaos Orb",
			Class:       "Stackable Currency",
			Description: "Reforges a rare item with new random modifiers",
		}

		got := newRenderer().Render(item, render.PhaseResolved)

		assert.Contains(t, got, "Reforges a rare item with new random modifiers")
		// No image and no stats: the body starts straight at the title.
		assert.True(t, strings.HasPrefix(got, "<b><a href="), got)
	})

	t.Run("EscapesApostrophesAndStats", func(t *testing.T) {
		item := &items.Item{
			Name:        "Atziri's Promise",
			Class:       "Flask",
			FlavourText: "Death is but a 'promise' kept.",
			ImageURL:    "https://example.com/Atziri's_Promise.png",
		}
		item.Stats.Set("dummy_stat", "value 'with' quotes")

		got := newRenderer().Render(item, render.PhaseResolved)

		assert.Contains(t, got, "Atziri&#39;s Promise")
		assert.Contains(t, got, `href="https://www.poewiki.net/wiki/Atziri%27s_Promise"`)
		assert.Contains(t, got, `href="https://example.com/Atziri&#39;s_Promise.png"`)
		assert.Contains(t, got, "Dummy Stat: value &#39;with&#39; quotes")
		assert.Contains(t, got, "Death is but a &#39;promise&#39; kept.")
	})

	t.Run("EscapesAmpersands", func(t *testing.T) {
		item := &items.Item{
			Name:         "Black & White",
			Class:        "Currency",
			ExplicitMods: "10% more damage & speed",
		}

		got := newRenderer().Render(item, render.PhaseResolved)

		assert.Contains(t, got, "Black &amp; White")
		assert.Contains(t, got, "damage &amp; speed")
	})
}

func TestStatPriority(t *testing.T) {
	t.Run("RangeTextBeatsBounds", func(t *testing.T) {
		item := &items.Item{Name: "Starforge", Class: "Two-Handed Sword"}
		item.Stats.Set("physical_damage_range_text", "50-62")
		item.Stats.Set("physical_damage_min", "50")
		item.Stats.Set("physical_damage_max", "62")

		got := newRenderer().Render(item, render.PhaseResolved)

		assert.Contains(t, got, "Physical Damage: 50-62")
		assert.Equal(t, 1, strings.Count(got, "Physical Damage:"))
	})

	t.Run("BoundsPairFormatsAsRange", func(t *testing.T) {
		item := &items.Item{Name: "Starforge", Class: "Two-Handed Sword"}
		item.Stats.Set("physical_damage_min", "50")
		item.Stats.Set("physical_damage_max", "62")

		got := newRenderer().Render(item, render.PhaseResolved)

		assert.Contains(t, got, "Physical Damage: 50-62")
	})

	t.Run("FlatValueFallback", func(t *testing.T) {
		item := &items.Item{Name: "Starforge", Class: "Two-Handed Sword"}
		item.Stats.Set("physical_damage", "55")

		got := newRenderer().Render(item, render.PhaseResolved)

		assert.Contains(t, got, "Physical Damage: 55")
	})

	t.Run("CritRangeTextSuppressesNumeric", func(t *testing.T) {
		item := &items.Item{Name: "Starforge", Class: "Two-Handed Sword"}
		item.Stats.Set("critical_strike_chance_range_text", "(5-7)%")
		item.Stats.Set("critical_strike_chance", "6")

		got := newRenderer().Render(item, render.PhaseResolved)

		assert.Contains(t, got, "Critical Strike Chance: (5-7)%")
		assert.NotContains(t, got, "6.00")
	})

	t.Run("CritFlatGetsTwoDecimalsAndSuffix", func(t *testing.T) {
		item := &items.Item{Name: "Starforge", Class: "Two-Handed Sword"}
		item.Stats.Set("critical_strike_chance", "6.5")

		got := newRenderer().Render(item, render.PhaseResolved)

		assert.Contains(t, got, "Critical Strike Chance: 6.50%")
	})

	t.Run("LeftoverLabelsAndSkipRules", func(t *testing.T) {
		item := &items.Item{Name: "Watchstone", Class: "Atlas Region Upgrade Item"}
		item.Stats.Set("quality", "20")
		item.Stats.Set("spirit_charges", "3")
		item.Stats.Set("drop_level", "0")
		item.Stats.Set("_pageName", "Watchstone")
		item.Stats.Set("damage_html", "<span>55</span>")

		got := newRenderer().Render(item, render.PhaseResolved)

		assert.Contains(t, got, "Quality: 20")
		assert.Contains(t, got, "Spirit Charges: 3")
		assert.NotContains(t, got, "Drop Level")
		assert.NotContains(t, got, "Pagename")
		assert.NotContains(t, got, "Damage Html")
		// Leftovers sort by key for stable output.
		assert.Less(t, strings.Index(got, "Quality"), strings.Index(got, "Spirit Charges"))
	})

	t.Run("MapAndGemLabels", func(t *testing.T) {
		item := &items.Item{Name: "Strand Map", Class: "Map"}
		item.Stats.Set("map_tier", "4")
		item.Stats.Set("gem_tags", "Attack, AoE")

		got := newRenderer().Render(item, render.PhaseResolved)

		assert.Contains(t, got, "Map Tier: 4")
		assert.Contains(t, got, "Tags: Attack, AoE")
	})
}

func TestModBlocks(t *testing.T) {
	item := &items.Item{
		Name:         "Test Blade",
		Class:        "Dagger",
		ImplicitMods: "First line<br>Second line<br/>Third line",
	}

	got := newRenderer().Render(item, render.PhaseResolved)

	assert.Contains(t, got, "First line\nSecond line\nThird line")
	assert.NotContains(t, got, "<br>")
	assert.NotContains(t, got, "&lt;br&gt;")
}

func TestPreview(t *testing.T) {
	item := &items.Item{
		Name:     "Atziri's Promise",
		Rarity:   "Unique",
		Class:    "Flask",
		ImageURL: "https://example.com/Atziri's_Promise.png",
	}

	got := newRenderer().Preview(item)

	want := `<a href="https://example.com/Atziri&#39;s_Promise.png">&#8205;</a><b><a href="https://www.poewiki.net/wiki/Atziri%27s_Promise">Atziri&#39;s Promise</a></b>
<i>Flask</i>

<b><i>Loading full details...</i></b>`
	assert.Equal(t, want, got)
}

func TestWikiURL(t *testing.T) {
	r := newRenderer()

	assert.Equal(t, "https://www.poewiki.net/wiki/Orb_of_Alchemy", r.WikiURL("Orb of Alchemy"))
	assert.Equal(t, "https://www.poewiki.net/wiki/Kaom%27s_Heart", r.WikiURL("Kaom's Heart"))
}

func TestTruncate(t *testing.T) {
	t.Run("ShortBodyUnchanged", func(t *testing.T) {
		assert.Equal(t, "short", render.Truncate("short"))
	})

	t.Run("LongBodyCutWithEllipsis", func(t *testing.T) {
		got := render.Truncate(strings.Repeat("x", 4500))

		assert.Len(t, got, 4003)
		assert.True(t, strings.HasSuffix(got, "..."))
		assert.LessOrEqual(t, len(got), 4096)
	})

	t.Run("MultibyteSafe", func(t *testing.T) {
		got := render.Truncate(strings.Repeat("é", 4100))

		require.True(t, utf8.ValidString(got))
		assert.Equal(t, 4003, utf8.RuneCountInString(got))
	})
}

func TestStripTags(t *testing.T) {
	item := &items.Item{
		Name:     "Hand of Wisdom & Action",
		Class:    "Claw",
		ImageURL: "https://web.poecdn.com/how.png",
	}
	body := newRenderer().Render(item, render.PhaseResolved)

	plain := render.StripTags(body)

	assert.NotContains(t, plain, "<")
	assert.NotContains(t, plain, "&#8205;")
	assert.NotContains(t, plain, "‍")
	assert.NotContains(t, plain, "&amp;")
	assert.Contains(t, plain, "Hand of Wisdom & Action")
	assert.Contains(t, plain, "Claw")
}

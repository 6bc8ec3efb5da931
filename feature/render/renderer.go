package render

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"poewikibot/feature/items"
)

// Phase selects which reveal stage a message body is rendered for.
type Phase int

const (
	// PhasePendingMods renders before mods are resolved; the body carries a
	// loading trailer and the caller edits the message again afterwards.
	PhasePendingMods Phase = iota
	// PhaseResolved renders the complete record with no trailer.
	PhaseResolved
)

const (
	// MaxContentLength caps rendered bodies below the delivery channel's
	// 4096-character message ceiling, leaving room for the ellipsis.
	MaxContentLength = 4000

	// LoadingDetailsText marks a preview that still awaits its full record.
	// Delivered previews are recognized by this marker.
	LoadingDetailsText = "Loading full details..."

	// DefaultThumbnailURL backs inline results whose item has no icon.
	DefaultThumbnailURL = "https://www.poewiki.net/w/resources/assets/wiki.png"
)

var tagPattern = regexp.MustCompile(`<[^<]+?>`)

// statFormats maps stat keys to display lines in priority order. The
// range-text variant of a stat comes before its numeric counterpart so the
// pre-formatted value wins and the raw fields get dropped.
var statFormats = []struct {
	key    string
	format string
}{
	{"critical_strike_chance_range_text", "Critical Strike Chance: %s"},
	{"critical_strike_chance", "Critical Strike Chance: %s%%"},
	{"attack_speed_range_text", "Attacks per Second: %s"},
	{"attack_speed", "Attacks per Second: %s"},
	{"weapon_range_range_text", "Weapon Range: %s"},
	{"weapon_range", "Weapon Range: %s"},
	{"armour_range_text", "Armour: %s"},
	{"armour", "Armour: %s"},
	{"evasion_range_text", "Evasion Rating: %s"},
	{"evasion", "Evasion Rating: %s"},
	{"energy_shield_range_text", "Energy Shield: %s"},
	{"energy_shield", "Energy Shield: %s"},
	{"ward_range_text", "Ward: %s"},
	{"ward", "Ward: %s"},
	{"map_tier", "Map Tier: %s"},
	{"gem_tags", "Tags: %s"},
	{"primary_attribute", "Primary Attribute: %s"},
}

// Renderer turns item records into HTML message bodies.
type Renderer struct {
	baseURL string
}

// NewRenderer creates a renderer whose links point at the given wiki base
// URL.
func NewRenderer(baseURL string) *Renderer {
	return &Renderer{baseURL: baseURL}
}

// WikiURL returns the wiki page link for an item name. Spaces become
// underscores before percent-encoding, matching the wiki's page naming.
func (r *Renderer) WikiURL(name string) string {
	return r.baseURL + url.QueryEscape(strings.ReplaceAll(name, " ", "_"))
}

// Render produces the message body for one item: linked title, class, stat
// lines, mod blocks, description and flavour text, joined by blank lines and
// prefixed with a hidden image anchor when artwork is available.
func (r *Renderer) Render(item *items.Item, phase Phase) string {
	wikiURL := r.WikiURL(item.Name)

	parts := []string{
		fmt.Sprintf(`<b><a href="%s">%s</a></b>`,
			html.EscapeString(wikiURL), html.EscapeString(item.Name)),
		fmt.Sprintf("<i>%s</i>", html.EscapeString(item.Class)),
	}

	if lines := statLines(item); len(lines) > 0 {
		parts = append(parts, strings.Join(lines, "\n"))
	}

	if item.ImplicitMods != "" {
		parts = append(parts, modBlock(item.ImplicitMods))
	}
	if item.ExplicitMods != "" {
		parts = append(parts, modBlock(item.ExplicitMods))
	}
	if phase == PhasePendingMods {
		parts = append(parts, "<b><i>Loading mods...</i></b>")
	}

	if item.Description != "" {
		parts = append(parts, html.EscapeString(item.Description))
	}
	if item.FlavourText != "" {
		parts = append(parts, fmt.Sprintf("<i>%s</i>", html.EscapeString(item.FlavourText)))
	}

	return imageAnchor(item.ImageURL) + strings.Join(parts, "\n\n")
}

// Preview renders the short body sent when an inline result is picked,
// before any detail resolution has run.
func (r *Renderer) Preview(item *items.Item) string {
	wikiURL := r.WikiURL(item.Name)
	return imageAnchor(item.ImageURL) + fmt.Sprintf(
		"<b><a href=\"%s\">%s</a></b>\n<i>%s</i>\n\n<b><i>%s</i></b>",
		html.EscapeString(wikiURL), html.EscapeString(item.Name),
		html.EscapeString(item.Class), LoadingDetailsText,
	)
}

// Truncate cuts a body down to MaxContentLength runes, marking the cut with
// an ellipsis. Shorter bodies pass through unchanged.
func Truncate(content string) string {
	runes := []rune(content)
	if len(runes) <= MaxContentLength {
		return content
	}
	return string(runes[:MaxContentLength]) + "..."
}

// StripTags removes HTML tags and the hidden image anchor's zero-width
// joiner, for plain-text re-sends after a markup rejection. Escaped
// entities are restored so the raw text never shows "&amp;".
func StripTags(content string) string {
	plain := tagPattern.ReplaceAllString(content, "")
	plain = html.UnescapeString(plain)
	return strings.ReplaceAll(plain, "‍", "")
}

// imageAnchor embeds the item artwork behind a zero-width joiner so the
// client shows a preview without visible link text.
func imageAnchor(imageURL string) string {
	if imageURL == "" {
		return ""
	}
	return fmt.Sprintf(`<a href="%s">&#8205;</a>`, html.EscapeString(imageURL))
}

// statLines formats the stat block. It works on a flattened copy of the
// record so consumed keys can be dropped as formatted counterparts are
// emitted.
func statLines(item *items.Item) []string {
	display := item.Stats.Map()
	var lines []string

	// Physical damage first: prefer the pre-formatted range text, then the
	// raw bounds pair, then a flat value.
	if rt, ok := display["physical_damage_range_text"]; ok {
		delete(display, "physical_damage_range_text")
		delete(display, "physical_damage_min")
		delete(display, "physical_damage_max")
		lines = append(lines, "Physical Damage: "+html.EscapeString(rt))
	} else if lo, hi := display["physical_damage_min"], display["physical_damage_max"]; lo != "" && hi != "" {
		delete(display, "physical_damage_min")
		delete(display, "physical_damage_max")
		lines = append(lines, fmt.Sprintf("Physical Damage: %s-%s",
			html.EscapeString(lo), html.EscapeString(hi)))
	} else if flat, ok := display["physical_damage"]; ok {
		delete(display, "physical_damage")
		lines = append(lines, "Physical Damage: "+html.EscapeString(flat))
	}

	for _, sf := range statFormats {
		val, ok := display[sf.key]
		if !ok {
			continue
		}
		delete(display, sf.key)
		if base, isRange := strings.CutSuffix(sf.key, "_range_text"); isRange {
			delete(display, base)
			delete(display, base+"_min")
			delete(display, base+"_max")
		}
		if sf.key == "critical_strike_chance" {
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				val = strconv.FormatFloat(f, 'f', 2, 64)
			}
		}
		lines = append(lines, fmt.Sprintf(sf.format, html.EscapeString(val)))
	}

	if item.RequiredLevel != "" {
		lines = append(lines, "Requires Level "+html.EscapeString(item.RequiredLevel))
	}

	// Leftover stats render with a generic label. Sorted for stable output.
	keys := make([]string, 0, len(display))
	for key := range display {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		val := display[key]
		if val == "" || val == "0" || strings.HasPrefix(key, "_") || strings.Contains(key, "html") {
			continue
		}
		label := titleWords(strings.ReplaceAll(strings.ReplaceAll(key, "_range_text", ""), "_", " "))
		lines = append(lines, fmt.Sprintf("%s: %s",
			html.EscapeString(label), html.EscapeString(val)))
	}

	return lines
}

// modBlock escapes a raw mod string and turns its embedded break tags into
// newlines. The breaks arrive as literal markup in the wiki data, so they
// survive escaping as entities and are rewritten from that form.
func modBlock(mods string) string {
	escaped := html.EscapeString(mods)
	escaped = strings.ReplaceAll(escaped, "&lt;br&gt;", "\n")
	return strings.ReplaceAll(escaped, "&lt;br/&gt;", "\n")
}

// titleWords capitalizes the first letter of each alphabetic run and lowers
// the rest, turning column names into display labels.
func titleWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		isLetter := unicode.IsLetter(r)
		switch {
		case isLetter && !prevLetter:
			b.WriteRune(unicode.ToUpper(r))
		case isLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = isLetter
	}
	return b.String()
}

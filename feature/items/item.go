package items

import (
	"encoding/json"
	"strings"

	"poewikibot/feature/catalog"
)

// Item is one game item assembled from the wiki's normalized tables.
// It is constructed bare from a search hit and enriched in place by the
// independent resolution steps; it lives for a single request.
type Item struct {
	Name          string `json:"name"`
	Rarity        string `json:"rarity"`
	Class         string `json:"class"`
	RequiredLevel string `json:"required_level,omitempty"`
	FlavourText   string `json:"flavour_text,omitempty"`
	Description   string `json:"description,omitempty"`
	ImplicitMods  string `json:"implicit_mods,omitempty"`
	ExplicitMods  string `json:"explicit_mods,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
	Stats         Stats  `json:"stats"`
}

// RangeStat is a stat that may carry a flat value, a numeric range, and a
// pre-formatted range text. Rendering prefers RangeText, then the Min/Max
// pair, then Value.
type RangeStat struct {
	Value     string
	Min       string
	Max       string
	RangeText string
}

// IsZero reports whether no variant of the stat is set.
func (r RangeStat) IsZero() bool {
	return r == RangeStat{}
}

// Stats is the open stat record: a fixed set of well-known optional fields
// plus an extension map for every other column the wiki returns. Keys are
// normalized to underscore word separation on the way in.
type Stats struct {
	PhysicalDamage       RangeStat
	CriticalStrikeChance RangeStat
	AttackSpeed          RangeStat
	WeaponRange          RangeStat
	Armour               RangeStat
	Evasion              RangeStat
	EnergyShield         RangeStat
	Ward                 RangeStat

	MapTier          string
	GemTags          string
	PrimaryAttribute string

	Extra map[string]string
}

// rangeStatFields lists the well-known range stats by their canonical key,
// in display order.
var rangeStatFields = []string{
	"physical_damage",
	"critical_strike_chance",
	"attack_speed",
	"weapon_range",
	"armour",
	"evasion",
	"energy_shield",
	"ward",
}

func (s *Stats) rangeStat(base string) *RangeStat {
	switch base {
	case "physical_damage":
		return &s.PhysicalDamage
	case "critical_strike_chance":
		return &s.CriticalStrikeChance
	case "attack_speed":
		return &s.AttackSpeed
	case "weapon_range":
		return &s.WeaponRange
	case "armour":
		return &s.Armour
	case "evasion":
		return &s.Evasion
	case "energy_shield":
		return &s.EnergyShield
	case "ward":
		return &s.Ward
	}
	return nil
}

// Set stores a stat under its normalized key, routing the range-text and
// min/max variants of well-known stats into their typed slots and everything
// unrecognized into Extra. Empty values are dropped.
func (s *Stats) Set(key, value string) {
	if value == "" {
		return
	}
	key = catalog.NormalizeField(key)

	if base, ok := strings.CutSuffix(key, "_range_text"); ok {
		if rs := s.rangeStat(base); rs != nil {
			rs.RangeText = value
			return
		}
	}
	if base, ok := strings.CutSuffix(key, "_min"); ok {
		if rs := s.rangeStat(base); rs != nil {
			rs.Min = value
			return
		}
	}
	if base, ok := strings.CutSuffix(key, "_max"); ok {
		if rs := s.rangeStat(base); rs != nil {
			rs.Max = value
			return
		}
	}
	if rs := s.rangeStat(key); rs != nil {
		rs.Value = value
		return
	}

	switch key {
	case "map_tier":
		s.MapTier = value
	case "gem_tags":
		s.GemTags = value
	case "primary_attribute":
		s.PrimaryAttribute = value
	default:
		if s.Extra == nil {
			s.Extra = map[string]string{}
		}
		s.Extra[key] = value
	}
}

// Map flattens the record back to canonical keys. The result is a copy;
// callers may consume it destructively.
func (s Stats) Map() map[string]string {
	flat := map[string]string{}

	set := func(key, value string) {
		if value != "" {
			flat[key] = value
		}
	}
	for _, base := range rangeStatFields {
		rs := *s.rangeStat(base)
		set(base, rs.Value)
		set(base+"_min", rs.Min)
		set(base+"_max", rs.Max)
		set(base+"_range_text", rs.RangeText)
	}
	set("map_tier", s.MapTier)
	set("gem_tags", s.GemTags)
	set("primary_attribute", s.PrimaryAttribute)
	for key, value := range s.Extra {
		set(key, value)
	}
	return flat
}

// IsEmpty reports whether no stat at all is populated.
func (s Stats) IsEmpty() bool {
	return len(s.Map()) == 0
}

// MarshalJSON emits the flattened form so the HTTP facade exposes stats as
// one flat object keyed by canonical field names.
func (s Stats) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

// UnmarshalJSON accepts the flattened form produced by MarshalJSON.
func (s *Stats) UnmarshalJSON(data []byte) error {
	flat := map[string]string{}
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	for key, value := range flat {
		s.Set(key, value)
	}
	return nil
}

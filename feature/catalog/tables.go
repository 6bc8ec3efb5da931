package catalog

// classTables maps an item class to the supplementary Cargo table carrying
// its base stats. Classes without an entry have no supplementary data.
var classTables = map[string]string{
	// Weapons
	"One-Handed Axe":   "weapons",
	"Two-Handed Axe":   "weapons",
	"One-Handed Mace":  "weapons",
	"Two-Handed Mace":  "weapons",
	"One-Handed Sword": "weapons",
	"Two-Handed Sword": "weapons",
	"Bow":              "weapons",
	"Claw":             "weapons",
	"Dagger":           "weapons",
	"Rune Dagger":      "weapons",
	"Staff":            "weapons",
	"Warstaff":         "weapons",
	"Wand":             "weapons",
	"Sceptre":          "weapons",

	// Armours
	"Body Armour": "armours",
	"Helmet":      "armours",
	"Boots":       "armours",
	"Gloves":      "armours",
	"Shield":      "armours",

	// Everything else with a dedicated table
	"Skill Gem":       "skill_gems",
	"Support Gem":     "skill_gems",
	"Map":             "maps",
	"Jewel":           "jewels",
	"Abyss Jewel":     "jewels",
	"Flask":           "flasks",
	"Amulet":          "amulets",
	"Ring":            "items", // rings and belts keep their stats in the main table
	"Belt":            "items",
	"Divination Card": "divination_cards",
	"Skill":           "skill",
	"Monster":         "monsters",
	"Pantheon":        "pantheon",
	"Passive Skill":   "passive_skills",
}

// coreTables are queried by the resolver regardless of item class and are
// always part of the scraped mapping.
var coreTables = []string{"items", "mods", "item_mods", "item_stats"}

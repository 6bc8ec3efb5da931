package items

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"poewikibot/core/utils"
	"poewikibot/core/wiki"
	"poewikibot/feature/catalog"

	"go.uber.org/zap"
)

var (
	// rangeToken matches the bracketed numeric-range placeholder inside a
	// mod template, e.g. "(30-50)".
	rangeToken = regexp.MustCompile(`\(\d+-\d+\)`)
	// wikiLink matches [[target|text]] and [[text]] link markup.
	wikiLink = regexp.MustCompile(`\[\[(?:[^|\]]*\|)?([^\]]+)\]\]`)
)

// identityFields never belong in a supplementary stats query; they are
// resolved through their own dedicated steps.
var identityFields = map[string]bool{
	"name":          true,
	"item_class":    true,
	"rarity":        true,
	"implicit_mods": true,
	"explicit_mods": true,
	"flavour_text":  true,
}

// excludedFragments disqualify a column from the supplementary query.
// The raw numeric and color columns only duplicate their formatted
// range-text counterparts.
var excludedFragments = []string{"_min", "_max", "average", "color", "colour"}

// Service resolves item records from the remote wiki.
type Service struct {
	client  wiki.Client
	catalog *catalog.Provider
	logger  *zap.Logger
}

// NewService creates a new item resolution service.
func NewService(client wiki.Client, provider *catalog.Provider, logger *zap.Logger) *Service {
	return &Service{
		client:  client,
		catalog: provider,
		logger:  logger,
	}
}

// SearchOptions control how much of the enrichment pipeline runs per hit.
type SearchOptions struct {
	// Limit caps the number of results; it defaults to 10.
	Limit int
	// Detailed enriches every hit with metadata and supplementary stats.
	Detailed bool
	// IncludeMods also resolves mod text when Detailed is set.
	IncludeMods bool
}

// Search queries for items whose name contains the query, ordered by the
// drop-enabled flag and then name. Search hits carry name, rarity, class and
// icon URL only unless opts.Detailed is set.
//
// A rejected query degrades to an empty result; only a transport failure is
// returned to the caller.
func (s *Service) Search(ctx context.Context, query string, opts SearchOptions) ([]*Item, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.client.CargoQuery(ctx, wiki.CargoQuery{
		Tables:  "items",
		Fields:  "name,rarity,class,inventory_icon",
		Where:   fmt.Sprintf(`name LIKE "%%%s%%"`, strings.ReplaceAll(query, `"`, `""`)),
		OrderBy: "drop_enabled DESC, name",
		Limit:   limit,
	})
	if err != nil {
		if wiki.IsAPIError(err) {
			s.logger.Error("Search query rejected",
				zap.String("query", query),
				zap.Error(err),
			)
			return []*Item{}, nil
		}
		return nil, fmt.Errorf("search items: %w", err)
	}

	// Resolve the distinct icon references to URLs in batches.
	seen := map[string]bool{}
	var icons []string
	for _, row := range rows {
		if icon := row.Get("inventory_icon"); icon != "" && !seen[icon] {
			seen[icon] = true
			icons = append(icons, icon)
		}
	}
	imageURLs := s.resolveImages(ctx, icons)

	results := make([]*Item, 0, len(rows))
	for _, row := range rows {
		item := &Item{
			Name:     orUnknown(row.Get("name")),
			Rarity:   orUnknown(row.Get("rarity")),
			Class:    orUnknown(row.Get("class")),
			ImageURL: imageURLs[row.Get("inventory_icon")],
		}
		if opts.Detailed {
			s.populateDetails(ctx, item, opts.IncludeMods)
		}
		results = append(results, item)
	}
	return results, nil
}

// GetItemDetails resolves the full record of a single item. The search runs
// unenriched first; only the best name match (exact case-insensitive, else
// first substring match) goes through the enrichment pipeline.
//
// A missing item is (nil, nil), an explicit absent outcome.
func (s *Service) GetItemDetails(ctx context.Context, name string, includeMods bool) (*Item, error) {
	results, err := s.Search(ctx, name, SearchOptions{Limit: 10})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	lower := strings.ToLower(name)
	var target *Item
	for _, item := range results {
		if strings.ToLower(item.Name) == lower {
			target = item
			break
		}
	}
	if target == nil {
		for _, item := range results {
			if strings.Contains(strings.ToLower(item.Name), lower) {
				target = item
				break
			}
		}
	}
	if target == nil {
		return nil, nil
	}

	s.populateDetails(ctx, target, includeMods)
	return target, nil
}

// populateDetails runs the enrichment steps for one item. Every step is
// independently guarded; a failed step logs and leaves its fields unchanged.
func (s *Service) populateDetails(ctx context.Context, item *Item, includeMods bool) {
	s.logger.Info("Populating details", zap.String("item", item.Name))
	if includeMods {
		s.resolveMods(ctx, item)
	}
	s.resolveMetadata(ctx, item)
	s.resolveSupplementary(ctx, item)
}

// resolveImages maps icon file titles to direct URLs, chunked to the API's
// batch ceiling. A failed chunk is logged and skipped.
func (s *Service) resolveImages(ctx context.Context, titles []string) map[string]string {
	urls := map[string]string{}
	for _, chunk := range utils.Chunk(titles, wiki.MaxTitlesPerCall) {
		resolved, err := s.client.ImageInfo(ctx, chunk)
		if err != nil {
			s.logger.Error("Image batch failed",
				zap.Int("titles", len(chunk)),
				zap.Error(err),
			)
			continue
		}
		for title, url := range resolved {
			urls[title] = url
		}
	}
	return urls
}

// resolveMods fills the implicit and explicit mod blocks. The item's own
// table is the primary source; the normalized mod tables are the fallback.
// A primary value always wins, only an absent side is backfilled.
func (s *Service) resolveMods(ctx context.Context, item *Item) {
	cat := s.catalog.Current()
	implicit := s.fetchModColumn(ctx, cat, item.Name, "implicit_mods")
	explicit := s.fetchModColumn(ctx, cat, item.Name, "explicit_mods")

	if implicit == "" || explicit == "" {
		fallback := s.fetchModsFallback(ctx, item.Name)
		if implicit == "" && len(fallback.implicit) > 0 {
			implicit = strings.Join(fallback.implicit, "<br>")
		}
		if explicit == "" && len(fallback.explicit) > 0 {
			explicit = strings.Join(fallback.explicit, "<br>")
		}
	}

	item.ImplicitMods = implicit
	item.ExplicitMods = explicit
}

// fetchModColumn reads one mod text column from the items table. The column
// is validated against the catalog first; any failure degrades to empty.
func (s *Service) fetchModColumn(ctx context.Context, cat *catalog.Catalog, name, column string) string {
	if !cat.ValidateField("items", column) {
		return ""
	}

	rows, err := s.client.CargoQuery(ctx, wiki.CargoQuery{
		Tables: "items",
		Fields: column,
		Where:  fmt.Sprintf("name='%s'", wiki.EscapeWhere(name)),
	})
	if err != nil {
		s.logger.Warn("Mod column fetch failed",
			zap.String("item", name),
			zap.String("column", column),
			zap.Error(err),
		)
		return ""
	}
	if len(rows) == 0 {
		return ""
	}
	return rows[0].Get(column)
}

type modLists struct {
	implicit []string
	explicit []string
}

type modFlags struct {
	implicit bool
	explicit bool
}

// fetchModsFallback assembles mod text from the normalized tables: mod ids
// and flags scoped to the item, template text per mod (hidden templates
// skipped), numeric observations per mod, then placeholder substitution and
// link-markup cleanup. Results are bucketed by the implicit/explicit flags
// in template fetch order.
func (s *Service) fetchModsFallback(ctx context.Context, name string) modLists {
	s.logger.Info("Using fallback mod resolution", zap.String("item", name))
	safeName := wiki.EscapeWhere(name)
	var lists modLists

	// 1. Mod ids and their implicit/explicit flags for this item.
	rows, err := s.client.CargoQuery(ctx, wiki.CargoQuery{
		Tables: "item_mods",
		Fields: "id,is_implicit,is_explicit",
		Where:  fmt.Sprintf("_pageName='%s'", safeName),
	})
	if err != nil {
		s.logger.Error("Mod id fetch failed", zap.String("item", name), zap.Error(err))
		return lists
	}

	flags := map[string]modFlags{}
	var modIDs []string
	for _, row := range rows {
		id := row.Get("id")
		if id == "" {
			continue
		}
		if _, ok := flags[id]; !ok {
			modIDs = append(modIDs, id)
		}
		flags[id] = modFlags{
			implicit: utils.ToBool(row.Get("is_implicit")),
			explicit: utils.ToBool(row.Get("is_explicit")),
		}
	}
	if len(modIDs) == 0 {
		return lists
	}
	idList := "'" + strings.Join(modIDs, "','") + "'"

	// 2. Template text per mod id, skipping hidden templates.
	templateRows, err := s.client.CargoQuery(ctx, wiki.CargoQuery{
		Tables: "mods",
		Fields: "id,stat_text",
		Where:  "id IN (" + idList + ")",
	})
	if err != nil {
		s.logger.Error("Mod template fetch failed", zap.String("item", name), zap.Error(err))
		return lists
	}

	type template struct {
		id   string
		text string
	}
	var templates []template
	for _, row := range templateRows {
		id := row.Get("id")
		text := row.Get("stat_text")
		if id == "" || text == "" || strings.Contains(text, "(Hidden)") {
			continue
		}
		templates = append(templates, template{id: id, text: text})
	}

	// 3. Numeric observations per mod id. Losing these only leaves the
	// placeholders unsubstituted, so a failure here does not abort.
	observations := map[string][]wiki.Row{}
	statRows, err := s.client.CargoQuery(ctx, wiki.CargoQuery{
		Tables: "item_stats",
		Fields: "mod_id,min,max,avg",
		Where:  fmt.Sprintf("_pageName='%s' AND mod_id IN (%s)", safeName, idList),
	})
	if err != nil {
		s.logger.Warn("Mod observation fetch failed", zap.String("item", name), zap.Error(err))
	} else {
		for _, row := range statRows {
			id := row.Get("mod_id")
			observations[id] = append(observations[id], row)
		}
	}

	// 4. Substitute placeholders, strip link markup, bucket by flags.
	for _, tpl := range templates {
		text := substituteObservations(tpl.text, observations[tpl.id])
		text = wikiLink.ReplaceAllString(text, "$1")

		f := flags[tpl.id]
		switch {
		case f.implicit:
			lists.implicit = append(lists.implicit, text)
		case f.explicit:
			lists.explicit = append(lists.explicit, text)
		}
	}
	return lists
}

// substituteObservations resolves the numeric placeholders of a mod
// template. Each observation replaces every remaining bracketed range token;
// a fixed observation (min equals max) also replaces bare '#' tokens. When a
// multi-placeholder template meets several observations the mapping is
// ambiguous and observations apply in response order.
func substituteObservations(text string, observations []wiki.Row) string {
	for _, obs := range observations {
		lo := obs.Get("min")
		hi := obs.Get("max")
		if lo == "" || hi == "" {
			continue
		}
		if lo == hi {
			text = rangeToken.ReplaceAllLiteralString(text, lo)
			text = strings.ReplaceAll(text, "#", lo)
		} else {
			text = rangeToken.ReplaceAllLiteralString(text, "("+lo+"-"+hi+")")
		}
	}
	return text
}

// resolveMetadata fetches required level, flavour text and description.
// The merge is non-destructive: an absent fetched value never clobbers an
// existing one.
func (s *Service) resolveMetadata(ctx context.Context, item *Item) {
	rows, err := s.client.CargoQuery(ctx, wiki.CargoQuery{
		Tables: "items",
		Fields: "required_level,flavour_text,description",
		Where:  fmt.Sprintf("name='%s'", wiki.EscapeWhere(item.Name)),
	})
	if err != nil {
		s.logger.Warn("Metadata fetch failed", zap.String("item", item.Name), zap.Error(err))
		return
	}
	if len(rows) == 0 {
		return
	}

	row := rows[0]
	if v := row.Get("required_level"); v != "" {
		item.RequiredLevel = v
	}
	if v := row.Get("flavour_text"); v != "" {
		item.FlavourText = v
	}
	if v := row.Get("description"); v != "" {
		item.Description = v
	}
}

// resolveSupplementary pulls base stats from the class's supplementary
// table. Candidate columns come from the catalog minus identity fields and
// excluded numeric/color fragments; one batched query fetches them all, with
// per-column queries as the fallback so a single malformed column name does
// not blank the whole record.
func (s *Service) resolveSupplementary(ctx context.Context, item *Item) {
	cat := s.catalog.Current()
	table, ok := cat.TableForClass(item.Class)
	if !ok {
		return
	}

	var fields []string
	for _, f := range cat.FieldsForTable(table) {
		if identityFields[f] || hasExcludedFragment(f) {
			continue
		}
		if !cat.ValidateField(table, f) {
			continue
		}
		fields = append(fields, f)
	}
	if len(fields) == 0 {
		return
	}

	where := fmt.Sprintf("_pageName='%s'", wiki.EscapeWhere(item.Name))
	rows, err := s.client.CargoQuery(ctx, wiki.CargoQuery{
		Tables: table,
		Fields: strings.Join(fields, ","),
		Where:  where,
	})
	if err == nil {
		if len(rows) > 0 {
			for _, f := range fields {
				item.Stats.Set(f, rows[0].Get(f))
			}
		}
		return
	}

	s.logger.Warn("Batch supplementary query failed, retrying per field",
		zap.String("item", item.Name),
		zap.String("table", table),
		zap.Error(err),
	)
	for _, f := range fields {
		rows, err := s.client.CargoQuery(ctx, wiki.CargoQuery{
			Tables: table,
			Fields: f,
			Where:  where,
		})
		if err != nil || len(rows) == 0 {
			continue
		}
		item.Stats.Set(f, rows[0].Get(f))
	}
}

func hasExcludedFragment(field string) bool {
	lower := strings.ToLower(field)
	for _, fragment := range excludedFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

func orUnknown(v string) string {
	if v == "" {
		return "Unknown"
	}
	return v
}

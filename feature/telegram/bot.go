package telegram

import (
	"context"
	"fmt"
	"html"
	"strings"

	"poewikibot/feature/items"
	"poewikibot/feature/render"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const startText = "I'm a PoE Wiki Bot! Use inline mode to search for items."

// resolvePrefix keys the callback data of the manual Load Details button.
const resolvePrefix = "resolve|"

// MessageRef addresses one delivered message for edits. Inline-born messages
// carry only an InlineMessageID; chat messages carry a ChatID/MessageID pair.
type MessageRef struct {
	InlineMessageID string
	ChatID          int64
	MessageID       int
}

func (ref MessageRef) String() string {
	if ref.InlineMessageID != "" {
		return ref.InlineMessageID
	}
	return fmt.Sprintf("%d:%d", ref.ChatID, ref.MessageID)
}

// Bot answers inline item searches and resolves picked results in place.
type Bot struct {
	api      Messenger
	items    *items.Service
	renderer *render.Renderer
	cfg      *Config
	logger   *zap.Logger
}

// NewBot creates the bot on top of an authorized Messenger.
func NewBot(api Messenger, service *items.Service, renderer *render.Renderer, cfg *Config, logger *zap.Logger) *Bot {
	return &Bot{
		api:      api,
		items:    service,
		renderer: renderer,
		cfg:      cfg,
		logger:   logger,
	}
}

// Run long-polls for updates until the context is canceled. The update types
// requested cover the whole resolution flow: inline searches, picked
// results, button callbacks and the via-bot message fallback.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.PollTimeoutSeconds
	u.AllowedUpdates = []string{"message", "inline_query", "chosen_inline_result", "callback_query"}

	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("Bot is starting", zap.String("username", b.api.Self().UserName))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.dispatch(ctx, update)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	b.logger.Debug("Update received", zap.Int("update_id", update.UpdateID))

	switch {
	case update.InlineQuery != nil:
		b.handleInlineQuery(ctx, update.InlineQuery)
	case update.ChosenInlineResult != nil:
		b.handleChosenResult(ctx, update.ChosenInlineResult)
	case update.CallbackQuery != nil:
		b.handleCallbackQuery(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

// handleInlineQuery answers a live search with preview articles. Results are
// deduplicated on name, class and rarity so distinct variants survive while
// literal duplicates do not.
func (b *Bot) handleInlineQuery(ctx context.Context, query *tgbotapi.InlineQuery) {
	if query.Query == "" {
		return
	}
	b.logger.Info("Inline query", zap.String("query", query.Query))

	results, err := b.items.Search(ctx, query.Query, items.SearchOptions{Limit: 10})
	if err != nil {
		b.logger.Error("Inline search failed", zap.String("query", query.Query), zap.Error(err))
		return
	}

	type resultKey struct {
		name, class, rarity string
	}
	seen := map[resultKey]bool{}

	var articles []interface{}
	for _, item := range results {
		key := resultKey{item.Name, item.Class, item.Rarity}
		if seen[key] {
			continue
		}
		seen[key] = true

		wikiURL := b.renderer.WikiURL(item.Name)
		markup := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL("📖 View on Wiki", wikiURL),
				tgbotapi.NewInlineKeyboardButtonData("🔄 Load Details", resolvePrefix+item.Name),
			),
		)

		thumb := item.ImageURL
		if thumb == "" {
			thumb = render.DefaultThumbnailURL
		}

		articles = append(articles, tgbotapi.InlineQueryResultArticle{
			Type:  "article",
			Title: item.Name,
			// A random suffix keeps repeat picks of the same item from
			// colliding in the client's result cache.
			ID: item.Name + "|" + uuid.NewString()[:8],
			InputMessageContent: tgbotapi.InputTextMessageContent{
				Text:      b.renderer.Preview(item),
				ParseMode: tgbotapi.ModeHTML,
			},
			ReplyMarkup: &markup,
			URL:         wikiURL,
			Description: item.Rarity + " " + item.Class,
			ThumbURL:    thumb,
		})
	}

	answer := tgbotapi.InlineConfig{
		InlineQueryID: query.ID,
		Results:       articles,
		CacheTime:     0,
	}
	if _, err := b.api.Request(answer); err != nil {
		b.logger.Error("Inline answer failed", zap.String("query", query.Query), zap.Error(err))
	}
}

// handleChosenResult starts detail resolution once the user picks a result.
func (b *Bot) handleChosenResult(ctx context.Context, chosen *tgbotapi.ChosenInlineResult) {
	name, _, _ := strings.Cut(chosen.ResultID, "|")
	if chosen.InlineMessageID == "" {
		b.logger.Warn("Chosen result carries no inline message id, cannot resolve",
			zap.String("item", name))
		return
	}
	b.resolveItemDetails(ctx, name, MessageRef{InlineMessageID: chosen.InlineMessageID})
}

// handleCallbackQuery serves the Load Details button, a manual fallback for
// clients where the chosen-result update is delayed or missing.
func (b *Bot) handleCallbackQuery(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	// Answer first so the client stops its loading animation.
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		b.logger.Warn("Callback answer failed", zap.Error(err))
	}

	name, ok := strings.CutPrefix(cq.Data, resolvePrefix)
	if !ok {
		return
	}

	ref := MessageRef{InlineMessageID: cq.InlineMessageID}
	if cq.Message != nil {
		ref.ChatID = cq.Message.Chat.ID
		ref.MessageID = cq.Message.MessageID
	}
	b.logger.Info("Manual resolution triggered", zap.String("item", name))
	b.resolveItemDetails(ctx, name, ref)
}

// handleMessage serves the /start command and the via-bot fallback: when the
// chosen-result update never arrives, the delivered preview still shows the
// loading marker, and seeing our own inline message in a chat is the last
// chance to resolve it.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() && msg.Command() == "start" {
		reply := tgbotapi.NewMessage(msg.Chat.ID, startText)
		if _, err := b.api.Send(reply); err != nil {
			b.logger.Error("Start reply failed", zap.Error(err))
		}
		return
	}

	if msg.ViaBot == nil || msg.ViaBot.ID != b.api.Self().ID {
		return
	}
	if !strings.Contains(msg.Text, render.LoadingDetailsText) {
		return
	}

	// The first text line is the item name, behind the image anchor's
	// zero-width joiner.
	firstLine, _, _ := strings.Cut(msg.Text, "\n")
	name := strings.Trim(firstLine, " ‍")
	b.logger.Info("Fallback resolution triggered", zap.String("item", name))
	b.resolveItemDetails(ctx, name, MessageRef{ChatID: msg.Chat.ID, MessageID: msg.MessageID})
}

// resolveItemDetails edits a delivered preview in two phases: first the
// record without mods for a fast reveal, then the full record. Every edit
// failure is contained; a "not modified" rejection counts as success.
func (b *Bot) resolveItemDetails(ctx context.Context, name string, ref MessageRef) {
	b.logger.Info("Resolving item details",
		zap.String("item", name),
		zap.String("ref", ref.String()),
	)

	// Phase 1: stats without mods, for speed.
	item, err := b.items.GetItemDetails(ctx, name, false)
	if err != nil {
		b.logger.Error("Detail lookup failed", zap.String("item", name), zap.Error(err))
		b.editErrorNotice(ref, name)
		return
	}
	if item == nil {
		b.logger.Warn("No details found", zap.String("item", name))
		text := fmt.Sprintf("<b>%s</b>\n<i>Details could not be resolved.</i>", html.EscapeString(name))
		if editErr := b.edit(ref, text, tgbotapi.ModeHTML, nil); editErr != nil && !isNotModified(editErr) {
			b.logger.Error("Unresolved notice failed", zap.String("item", name), zap.Error(editErr))
		}
		return
	}

	markup := b.wikiButton(item.Name)
	content := render.Truncate(b.renderer.Render(item, render.PhasePendingMods))

	if err := b.edit(ref, content, tgbotapi.ModeHTML, markup); err != nil {
		if isNotModified(err) {
			b.logger.Info("Preview already current", zap.String("item", name))
		} else {
			b.logger.Error("Preview edit failed", zap.String("item", name), zap.Error(err))
			plain := fmt.Sprintf("%s\n%s\n\n(Formatting error, retrying...)\n\nLoading mods...",
				item.Name, item.Class)
			if retryErr := b.edit(ref, plain, "", markup); retryErr != nil {
				b.logger.Error("Plain preview retry failed", zap.String("item", name), zap.Error(retryErr))
			}
		}
	}

	// Phase 2: the full record, mods included.
	full, err := b.items.GetItemDetails(ctx, name, true)
	if err != nil {
		b.logger.Error("Mod resolution failed", zap.String("item", name), zap.Error(err))
		b.editErrorNotice(ref, name)
		return
	}
	if full == nil {
		b.logger.Warn("Full record no longer found", zap.String("item", name))
		return
	}

	content = render.Truncate(b.renderer.Render(full, render.PhaseResolved))
	err = b.edit(ref, content, tgbotapi.ModeHTML, markup)
	switch {
	case err == nil:
		b.logger.Info("Item details resolved", zap.String("item", name))
	case isNotModified(err):
		b.logger.Info("Full record already current", zap.String("item", name))
	case isParseRejection(err):
		b.logger.Warn("Markup rejected, retrying as plain text",
			zap.String("item", name), zap.Error(err))
		plain := render.StripTags(content)
		if runes := []rune(plain); len(runes) > render.MaxContentLength {
			plain = string(runes[:render.MaxContentLength])
		}
		if retryErr := b.edit(ref, plain, "", markup); retryErr != nil {
			b.logger.Error("Plain text retry failed", zap.String("item", name), zap.Error(retryErr))
		}
	default:
		b.logger.Error("Full record edit failed", zap.String("item", name), zap.Error(err))
	}
}

func (b *Bot) edit(ref MessageRef, text, parseMode string, markup *tgbotapi.InlineKeyboardMarkup) error {
	cfg := tgbotapi.EditMessageTextConfig{
		BaseEdit: tgbotapi.BaseEdit{
			ChatID:          ref.ChatID,
			MessageID:       ref.MessageID,
			InlineMessageID: ref.InlineMessageID,
			ReplyMarkup:     markup,
		},
		Text:      text,
		ParseMode: parseMode,
	}
	_, err := b.api.Request(cfg)
	return err
}

// editErrorNotice clears a stuck loading marker after a hard failure.
func (b *Bot) editErrorNotice(ref MessageRef, name string) {
	text := fmt.Sprintf("<b>%s</b>\n(Error loading full details)", html.EscapeString(name))
	if err := b.edit(ref, text, tgbotapi.ModeHTML, nil); err != nil && !isNotModified(err) {
		b.logger.Error("Error notice failed", zap.String("item", name), zap.Error(err))
	}
}

func (b *Bot) wikiButton(name string) *tgbotapi.InlineKeyboardMarkup {
	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("📖 View on Wiki", b.renderer.WikiURL(name)),
		),
	)
	return &markup
}

// isNotModified reports an edit rejected because the message already shows
// the submitted content. The message state is what we wanted, so callers
// treat it as success.
func isNotModified(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "message is not modified")
}

// isParseRejection reports an edit rejected over its markup, the cue to
// re-send the content as plain text.
func isParseRejection(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "can't parse") ||
		strings.Contains(msg, "entities") ||
		strings.Contains(msg, "bad request")
}

package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Messenger defines the interface for Bot API operations.
type Messenger interface {
	// Send delivers a chattable that produces a message.
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	// Request delivers a chattable whose response carries no message, such
	// as inline answers, callback answers and message edits.
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	// GetUpdatesChan starts long polling and returns the update stream.
	GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	// StopReceivingUpdates stops the long polling loop.
	StopReceivingUpdates()
	// Self returns the authorized bot account.
	Self() tgbotapi.User
}

// NewMessenger authorizes against the Bot API with the given token.
func NewMessenger(token string) (Messenger, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connecting to bot api: %w", err)
	}
	return &botAPI{api}, nil
}

// botAPI adapts *tgbotapi.BotAPI to the Messenger interface. The embedded
// client provides every method except Self, which is a struct field there.
type botAPI struct {
	*tgbotapi.BotAPI
}

func (b *botAPI) Self() tgbotapi.User {
	return b.BotAPI.Self
}

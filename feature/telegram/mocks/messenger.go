package mocks

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/mock"
)

// Messenger is a mock implementation of telegram.Messenger
type Messenger struct {
	mock.Mock
}

func (m *Messenger) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)
	if msg, ok := args.Get(0).(tgbotapi.Message); ok {
		return msg, args.Error(1)
	}
	return tgbotapi.Message{}, args.Error(1)
}

func (m *Messenger) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	args := m.Called(c)
	if resp, ok := args.Get(0).(*tgbotapi.APIResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Messenger) GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	args := m.Called(cfg)
	if ch, ok := args.Get(0).(tgbotapi.UpdatesChannel); ok {
		return ch
	}
	ch := make(chan tgbotapi.Update)
	close(ch)
	return ch
}

func (m *Messenger) StopReceivingUpdates() {
	m.Called()
}

func (m *Messenger) Self() tgbotapi.User {
	args := m.Called()
	if user, ok := args.Get(0).(tgbotapi.User); ok {
		return user
	}
	return tgbotapi.User{}
}

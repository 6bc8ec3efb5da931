package mocks

import (
	"context"

	"poewikibot/core/wiki"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of wiki.Client
type Client struct {
	mock.Mock
}

func (m *Client) CargoQuery(ctx context.Context, q wiki.CargoQuery) ([]wiki.Row, error) {
	args := m.Called(ctx, q)
	if rows, ok := args.Get(0).([]wiki.Row); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) ImageInfo(ctx context.Context, titles []string) (map[string]string, error) {
	args := m.Called(ctx, titles)
	if urls, ok := args.Get(0).(map[string]string); ok {
		return urls, args.Error(1)
	}
	return nil, args.Error(1)
}

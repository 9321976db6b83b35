package telegram

import (
	"errors"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier delivers scan alerts.
type Notifier interface {
	SendMessage(text string) error
}

// Option customises the Bot API client.
type Option func(*options)

type options struct {
	endpoint   string
	httpClient *http.Client
}

// WithAPIEndpoint points the client at another Bot API server. endpoint is a format string taking
// the token and the method, as tgbotapi.APIEndpoint.
func WithAPIEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// WithHTTPClient sets the HTTP client used for Bot API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

type client struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewClient creates a notifier for one chat. The token is checked against the Bot API (getMe).
func NewClient(botToken string, chatID int64, opts ...Option) (Notifier, error) {
	if botToken == "" {
		return nil, errors.New("telegram bot token is empty")
	}
	if chatID == 0 {
		return nil, errors.New("telegram chat id is not set")
	}

	o := options{endpoint: tgbotapi.APIEndpoint, httpClient: &http.Client{}}
	for _, opt := range opts {
		opt(&o)
	}

	bot, err := tgbotapi.NewBotAPIWithClient(botToken, o.endpoint, o.httpClient)
	if err != nil {
		return nil, fmt.Errorf("telegram bot authorization failed: %w", err)
	}
	return &client{bot: bot, chatID: chatID}, nil
}

// SendMessage sends a Markdown message without link previews.
func (c *client) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram sendMessage to chat %d: %w", c.chatID, err)
	}
	return nil
}

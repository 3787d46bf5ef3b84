// Package telegram delivers rendered reports to a chat or channel via
// the Telegram Bot API.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ytbrief/report"
)

// Sentinel errors for delivery failures.
var (
	ErrUnauthorized    = errors.New("telegram: bot token rejected")
	ErrPayloadTooLarge = errors.New("telegram: document exceeds the upload limit")
)

// MaxDocumentSize is the Bot API upload limit for documents.
const MaxDocumentSize = 50 * 1024 * 1024

// DefaultCaption is attached to delivered reports when the caller
// provides none.
const DefaultCaption = "YouTube Video Transcript"

// Sender pushes documents to a fixed chat or channel. Delivery is
// independently retryable: a failed send never touches the document.
type Sender struct {
	bot      *tgbotapi.BotAPI
	chatID   int64
	username string
}

// NewSender authenticates the bot token and binds the destination.
// chat may be a numeric chat ID or a public channel handle ("@name").
// A rejected token surfaces as ErrUnauthorized.
func NewSender(token, chat string, timeout time.Duration) (*Sender, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, mapAPIError(err)
	}

	s := &Sender{bot: bot}
	if strings.HasPrefix(chat, "@") {
		s.username = chat
	} else {
		id, perr := strconv.ParseInt(chat, 10, 64)
		if perr != nil {
			return nil, fmt.Errorf("telegram: invalid chat id %q", chat)
		}
		s.chatID = id
	}
	return s, nil
}

// Deliver uploads the document with a caption. Oversized documents are
// rejected before any network call with ErrPayloadTooLarge.
func (s *Sender) Deliver(ctx context.Context, doc *report.Document, caption string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("telegram: no document to deliver")
	}
	if doc.Size > MaxDocumentSize {
		return fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, doc.Size)
	}
	if caption == "" {
		caption = DefaultCaption
	}

	cfg := tgbotapi.NewDocument(s.chatID, tgbotapi.FilePath(doc.Path))
	if s.username != "" {
		cfg.ChannelUsername = s.username
	}
	cfg.Caption = caption

	if _, err := s.bot.Send(cfg); err != nil {
		return mapAPIError(err)
	}
	return nil
}

// mapAPIError translates Bot API failures into the package error
// model; anything unrecognized passes through wrapped.
func mapAPIError(err error) error {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 401:
			return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Message)
		case apiErr.Code == 413,
			strings.Contains(apiErr.Message, "Request Entity Too Large"),
			strings.Contains(apiErr.Message, "file is too big"):
			return fmt.Errorf("%w: %s", ErrPayloadTooLarge, apiErr.Message)
		}
	}
	return fmt.Errorf("telegram: %w", err)
}

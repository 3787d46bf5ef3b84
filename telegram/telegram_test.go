package telegram

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ytbrief/report"
)

func TestDeliverRejectsOversizedBeforeSending(t *testing.T) {
	s := &Sender{chatID: 1} // no bot: must fail before any network use

	doc := &report.Document{Path: "/tmp/fake.pdf", Size: MaxDocumentSize + 1}
	err := s.Deliver(context.Background(), doc, "")
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("Deliver error = %v, want ErrPayloadTooLarge", err)
	}
}

func TestDeliverHonorsCanceledContext(t *testing.T) {
	s := &Sender{chatID: 1}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Deliver(ctx, &report.Document{Path: "x", Size: 1}, "")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Deliver error = %v, want context.Canceled", err)
	}
}

func TestMapAPIError(t *testing.T) {
	unauthorized := mapAPIError(&tgbotapi.Error{Code: 401, Message: "Unauthorized"})
	if !errors.Is(unauthorized, ErrUnauthorized) {
		t.Errorf("401 mapped to %v, want ErrUnauthorized", unauthorized)
	}

	tooLarge := mapAPIError(&tgbotapi.Error{Code: 413, Message: "Request Entity Too Large"})
	if !errors.Is(tooLarge, ErrPayloadTooLarge) {
		t.Errorf("413 mapped to %v, want ErrPayloadTooLarge", tooLarge)
	}

	generic := mapAPIError(errors.New("connection reset"))
	if errors.Is(generic, ErrUnauthorized) || errors.Is(generic, ErrPayloadTooLarge) {
		t.Errorf("generic error mapped to a specific kind: %v", generic)
	}
}

func TestNewSenderRejectsBadChat(t *testing.T) {
	if _, err := NewSender("", "@chan", 0); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("empty token error = %v, want ErrUnauthorized", err)
	}
}

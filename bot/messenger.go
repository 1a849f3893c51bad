package bot

import (
	"context"
	"errors"
)

// ErrForbidden marks a delivery failure meaning the bot was blocked or
// removed from the chat. The chat is no longer a valid reminder target
// and gets deactivated; every other delivery error is transient and
// the next scheduled tick retries naturally.
var ErrForbidden = errors.New("bot forbidden in chat")

// Choice is one interactive button offered with a message.
type Choice struct {
	Label string
	Data  string
}

// Messenger delivers outbound messages to the chat platform.
// api.Client implements it against the Telegram Bot API.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendChoice(ctx context.Context, chatID int64, text string, choices []Choice) error
	AnswerCallback(ctx context.Context, callbackID string) error
}

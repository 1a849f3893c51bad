package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"standupbot/bot"
)

// Client talks to the Telegram Bot API over plain HTTP. It implements
// bot.Messenger.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		token:   token,
		baseURL: telegramAPIBaseURL,
		http:    http.DefaultClient,
	}
}

// WithBaseURL points the client at a different API host. Tests use it
// to talk to a local stub.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

func (c *Client) SendText(ctx context.Context, chatID int64, text string) error {
	return c.call(ctx, "sendMessage", sendMessageRequest{ChatID: chatID, Text: text})
}

func (c *Client) SendChoice(ctx context.Context, chatID int64, text string, choices []bot.Choice) error {
	row := make([]inlineKeyboardButton, 0, len(choices))
	for _, ch := range choices {
		row = append(row, inlineKeyboardButton{Text: ch.Label, CallbackData: ch.Data})
	}

	return c.call(ctx, "sendMessage", sendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: &inlineKeyboardMarkup{InlineKeyboard: [][]inlineKeyboardButton{row}},
	})
}

func (c *Client) AnswerCallback(ctx context.Context, callbackID string) error {
	return c.call(ctx, "answerCallbackQuery", answerCallbackRequest{CallbackQueryID: callbackID})
}

// call POSTs one Bot API method and decodes the standard response
// envelope. Error code 403 means the bot was blocked or kicked from
// the chat, which the rest of the system treats as permanent.
func (c *Client) call(ctx context.Context, method string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: failed to marshal payload: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: request failed: %w", method, err)
	}
	defer resp.Body.Close()

	var result apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", method, err)
	}

	if result.OK {
		return nil
	}
	if result.ErrorCode == http.StatusForbidden {
		return fmt.Errorf("%s: %s: %w", method, result.Description, bot.ErrForbidden)
	}
	return fmt.Errorf("%s: telegram responded %d: %s", method, result.ErrorCode, result.Description)
}

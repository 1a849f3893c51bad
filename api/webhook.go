package api

import (
	"context"
	"strings"
)

// SetWebhook registers publicBaseURL's webhook endpoint with Telegram
// so updates get pushed to this process.
func (c *Client) SetWebhook(ctx context.Context, publicBaseURL string) error {
	url := strings.TrimRight(publicBaseURL, "/") + webhookEndpoint
	return c.call(ctx, "setWebhook", setWebhookRequest{URL: url})
}

// DeleteWebhook unregisters the webhook.
func (c *Client) DeleteWebhook(ctx context.Context) error {
	return c.call(ctx, "deleteWebhook", struct{}{})
}

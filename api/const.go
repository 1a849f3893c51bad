package api

const (
	telegramAPIBaseURL = "https://api.telegram.org"

	webhookEndpoint = "/telegram/webhook"
)

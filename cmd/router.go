package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"standupbot/api"
	"standupbot/bot"
)

func SetupRouter(d *bot.Dispatcher, webhook *api.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if !d.Healthy() {
			http.Error(w, "event loop not running", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("✅ standup bot is alive"))
	})

	r.Post("/telegram/webhook", webhook.ServeHTTP)

	return r
}

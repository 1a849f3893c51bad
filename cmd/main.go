package main

import (
	"context"
	"net/http"
	"os"

	"github.com/inconshreveable/log15/v3"

	"standupbot/api"
	"standupbot/bot"
	"standupbot/config"
	"standupbot/scheduler"
	"standupbot/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log15.Crit("invalid configuration", "err", err)
		os.Exit(1)
	}

	setupLogging(cfg.LogLevel)
	log := log15.New("module", "main")

	clock := store.NewSystemClock(cfg.Timezone)
	updates := store.NewUpdateStore().WithRetention(cfg.RetentionDays)
	chats := store.NewChatRegistry()
	client := api.NewClient(cfg.BotToken)

	dispatcher := bot.NewDispatcher(updates, chats, client, clock)

	reminders := scheduler.New(chats, client, clock, cfg.Timezone)
	if err := reminders.Start(); err != nil {
		log.Crit("failed to start scheduler", "err", err)
		os.Exit(1)
	}

	if cfg.BaseURL != "" {
		if err := client.SetWebhook(context.Background(), cfg.BaseURL); err != nil {
			log.Crit("failed to register webhook", "err", err)
			os.Exit(1)
		}
		log.Info("webhook registered", "base_url", cfg.BaseURL)
	}

	router := SetupRouter(dispatcher, api.NewHandler(dispatcher))

	log.Info("server running", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		reminders.Stop()
		log.Crit("server failed", "err", err)
		os.Exit(1)
	}
}

func setupLogging(level string) {
	lvl, err := log15.LvlFromString(level)
	if err != nil {
		lvl = log15.LvlInfo
	}
	log15.Root().SetHandler(log15.LvlFilterHandler(lvl,
		log15.StreamHandler(os.Stdout, log15.LogfmtFormat())))
}

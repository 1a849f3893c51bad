package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/inconshreveable/log15/v3"
	"github.com/robfig/cron/v3"

	"standupbot/bot"
	"standupbot/store"
)

// Cadence and working-hours gate. The cron spec fires at the top of
// every even hour; the gate keeps deliveries inside [8, 20] local to
// the bot's timezone, endpoints included.
const (
	reminderCronSpec = "0 */2 * * *"
	windowOpenHour   = 8
	windowCloseHour  = 20
)

const reminderMessage = "⏰ Standup time! 👋\n\nShare what you're working on with `/update <text>`."

const reminderChoiceText = "Or tap below and I'll walk you through it:"

// Reminders drives the scheduled reminder fan-out to active chats.
type Reminders struct {
	chats *store.ChatRegistry
	msg   bot.Messenger
	clock store.Clock
	cron  *cron.Cron
	log   log15.Logger
}

func New(chats *store.ChatRegistry, msg bot.Messenger, clock store.Clock, loc *time.Location) *Reminders {
	if loc == nil {
		loc = time.Local
	}
	return &Reminders{
		chats: chats,
		msg:   msg,
		clock: clock,
		cron:  cron.New(cron.WithLocation(loc)),
		log:   log15.New("module", "scheduler"),
	}
}

// Start registers the cron entry and launches the runner.
func (r *Reminders) Start() error {
	_, err := r.cron.AddFunc(reminderCronSpec, func() {
		r.Tick(r.clock.Now())
	})
	if err != nil {
		return fmt.Errorf("scheduler: failed to register cron entry: %w", err)
	}

	r.cron.Start()
	r.log.Info("scheduler started", "spec", reminderCronSpec)
	return nil
}

// Stop halts the cron runner and waits for a fan-out in flight.
func (r *Reminders) Stop() {
	<-r.cron.Stop().Done()
}

// Tick runs one reminder pass for the given fire time. Outside the
// working-hours window it is a silent no-op, not an error.
func (r *Reminders) Tick(now time.Time) {
	if now.Hour() < windowOpenHour || now.Hour() > windowCloseHour {
		return
	}

	ctx := context.Background()
	for _, chatID := range r.chats.Active() {
		r.remind(ctx, chatID)
	}
}

// remind sends the reminder pair to one chat: the plain nudge, then a
// message carrying the Submit Update button. A forbidden delivery
// error means the bot was kicked, so the chat stops being a target;
// anything else is left for the next tick to retry.
func (r *Reminders) remind(ctx context.Context, chatID int64) {
	err := r.msg.SendText(ctx, chatID, reminderMessage)
	if err == nil {
		err = r.msg.SendChoice(ctx, chatID, reminderChoiceText, []bot.Choice{
			{Label: "Submit Update", Data: bot.CallbackSubmitUpdate},
		})
	}
	if err == nil {
		return
	}

	if errors.Is(err, bot.ErrForbidden) {
		r.chats.Deactivate(chatID)
		r.log.Info("chat deactivated, bot no longer welcome there", "chat", chatID)
		return
	}
	r.log.Warn("reminder delivery failed", "chat", chatID, "err", err)
}

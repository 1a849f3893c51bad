package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/inconshreveable/log15/v3"

	"standupbot/store"
)

// Dispatcher maps inbound events to store and registry operations,
// then requests a reply through the Messenger. All mutations complete
// synchronously before any delivery call, so a failed reply never
// leaves state half-applied.
type Dispatcher struct {
	updates *store.UpdateStore
	chats   *store.ChatRegistry
	msg     Messenger
	clock   store.Clock
	log     log15.Logger
}

func NewDispatcher(updates *store.UpdateStore, chats *store.ChatRegistry, msg Messenger, clock store.Clock) *Dispatcher {
	return &Dispatcher{
		updates: updates,
		chats:   chats,
		msg:     msg,
		clock:   clock,
		log:     log15.New("module", "bot"),
	}
}

// Healthy reports whether the dispatcher is wired to live collaborators.
func (d *Dispatcher) Healthy() bool {
	return d != nil && d.updates != nil && d.chats != nil && d.msg != nil
}

// HandleCommand processes one parsed command.
func (d *Dispatcher) HandleCommand(ctx context.Context, ev CommandEvent) {
	defer d.recoverEvent("command", ev.ChatID)

	switch ev.Command {
	case CmdStart:
		d.handleStart(ctx, ev)
	case CmdHelp:
		d.reply(ctx, ev.ChatID, helpMessage)
	case CmdUpdate:
		d.handleUpdate(ctx, ev)
	case CmdViewUpdates:
		d.handleViewUpdates(ctx, ev)
	case CmdViewMyUpdates:
		d.handleViewMyUpdates(ctx, ev)
	default:
		d.reply(ctx, ev.ChatID, unrecognizedCommandMessage)
	}
}

// HandleCallback processes an inline-button press. The callback is
// acknowledged first, no matter how handling goes, so the client's
// spinner always clears.
func (d *Dispatcher) HandleCallback(ctx context.Context, ev CallbackEvent) {
	defer d.recoverEvent("callback", ev.ChatID)

	if err := d.msg.AnswerCallback(ctx, ev.ID); err != nil {
		d.log.Warn("failed to answer callback", "chat", ev.ChatID, "err", err)
	}

	if ev.Data == CallbackSubmitUpdate && ev.ChatID != 0 {
		d.reply(ctx, ev.ChatID, submitPromptMessage)
	}
}

func (d *Dispatcher) handleStart(ctx context.Context, ev CommandEvent) {
	if ev.ChatType == ChatGroup || ev.ChatType == ChatSupergroup {
		d.chats.Activate(ev.ChatID)
		d.log.Info("chat activated for reminders", "chat", ev.ChatID, "type", ev.ChatType)
	}
	d.reply(ctx, ev.ChatID, welcomeMessage)
}

func (d *Dispatcher) handleUpdate(ctx context.Context, ev CommandEvent) {
	// Whitespace-only text counts as missing, same as no argument.
	text := strings.TrimSpace(ev.Args)
	if text == "" {
		d.reply(ctx, ev.ChatID, updateUsageMessage)
		return
	}

	now := d.clock.Now()
	d.updates.RecordUpdate(store.DayKey(now), ev.SenderID, ev.SenderName, ev.SenderHandle, text, now)
	d.log.Info("update recorded", "chat", ev.ChatID, "user", ev.SenderID)
	d.reply(ctx, ev.ChatID, updateSavedMessage)
}

func (d *Dispatcher) handleViewUpdates(ctx context.Context, ev CommandEvent) {
	list := d.updates.ListUpdates(store.DayKey(d.clock.Now()))
	if len(list) == 0 {
		d.reply(ctx, ev.ChatID, noUpdatesMessage)
		return
	}

	var b strings.Builder
	b.WriteString("Today's updates:\n")
	for i, u := range list {
		b.WriteString(fmt.Sprintf("\n%d. %s%s at %s\n%s\n",
			i+1, u.AuthorName, handleSuffix(u), u.SubmittedAt.Format("15:04:05"), u.Text))
	}
	d.reply(ctx, ev.ChatID, b.String())
}

func (d *Dispatcher) handleViewMyUpdates(ctx context.Context, ev CommandEvent) {
	list := d.updates.ListUpdatesForAuthor(store.DayKey(d.clock.Now()), ev.SenderID)
	if len(list) == 0 {
		d.reply(ctx, ev.ChatID, noOwnUpdatesMessage)
		return
	}

	var b strings.Builder
	b.WriteString("Your updates today:\n")
	for i, u := range list {
		b.WriteString(fmt.Sprintf("\n%d. %s — %s\n", i+1, u.SubmittedAt.Format("15:04:05"), u.Text))
	}
	d.reply(ctx, ev.ChatID, b.String())
}

func handleSuffix(u store.Update) string {
	if u.AuthorHandle == "" {
		return ""
	}
	return " (@" + u.AuthorHandle + ")"
}

func (d *Dispatcher) reply(ctx context.Context, chatID int64, text string) {
	if err := d.msg.SendText(ctx, chatID, text); err != nil {
		d.log.Warn("failed to send reply", "chat", chatID, "err", err)
	}
}

// recoverEvent keeps a broken event from taking the process down.
// Mutations are synchronous per handler, so dropping the event leaves
// the store and registry in their last consistent state.
func (d *Dispatcher) recoverEvent(kind string, chatID int64) {
	if r := recover(); r != nil {
		d.log.Error("panic while handling event", "kind", kind, "chat", chatID, "panic", r)
	}
}

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/inconshreveable/log15/v3"

	"standupbot/bot"
)

// Handler receives Telegram webhook deliveries and feeds parsed events
// to the dispatcher.
type Handler struct {
	dispatcher *bot.Dispatcher
	log        log15.Logger
}

func NewHandler(d *bot.Dispatcher) *Handler {
	return &Handler{dispatcher: d, log: log15.New("module", "api")}
}

// ServeHTTP handles one webhook delivery. Telegram redelivers on any
// non-200, so unusable payloads are dropped with 200 OK rather than
// bounced back for a retry loop.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var update Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.log.Warn("dropping undecodable update", "err", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(r.Context(), update.CallbackQuery)
	case update.Message != nil:
		h.handleMessage(r.Context(), update.Message)
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleMessage(ctx context.Context, msg *Message) {
	if msg.From == nil {
		return
	}

	name, args, ok := ParseCommand(msg.Text)
	if !ok {
		return
	}

	h.dispatcher.HandleCommand(ctx, bot.CommandEvent{
		ChatID:       msg.Chat.ID,
		ChatType:     msg.Chat.Type,
		SenderID:     msg.From.ID,
		SenderName:   displayName(msg.From),
		SenderHandle: msg.From.Username,
		Command:      name,
		Args:         args,
	})
}

func (h *Handler) handleCallback(ctx context.Context, cb *CallbackQuery) {
	ev := bot.CallbackEvent{ID: cb.ID, Data: cb.Data}
	if cb.Message != nil {
		ev.ChatID = cb.Message.Chat.ID
	} else {
		// An expired callback carries no originating message. There is
		// no chat to reply into, but the event still gets acknowledged.
		h.log.Warn("callback without originating message", "callback", cb.ID)
	}
	h.dispatcher.HandleCallback(ctx, ev)
}

// ParseCommand splits "/update@SomeBot finish the report" into
// ("update", "finish the report"). Text that is not a command returns
// ok=false.
func ParseCommand(text string) (name, args string, ok bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", "", false
	}

	name = text[1:]
	if i := strings.IndexAny(name, " \t\n"); i >= 0 {
		name, args = name[:i], strings.TrimLeft(name[i:], " \t\n")
	}
	if i := strings.Index(name, "@"); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return "", "", false
	}
	return strings.ToLower(name), args, true
}

func displayName(u *User) string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

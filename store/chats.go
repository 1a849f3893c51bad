package store

import "sync"

// ChatRegistry is the set of group chats that receive scheduled
// reminders. A chat joins via /start and leaves only when a delivery
// attempt reports the bot was blocked or kicked. Nothing survives a
// restart; users re-activate by issuing /start again.
type ChatRegistry struct {
	mu    sync.Mutex
	chats map[int64]struct{}
}

func NewChatRegistry() *ChatRegistry {
	return &ChatRegistry{chats: make(map[int64]struct{})}
}

// Activate adds the chat to the reminder set. Idempotent.
func (r *ChatRegistry) Activate(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chats[chatID] = struct{}{}
}

// Deactivate removes the chat from the reminder set. Idempotent.
func (r *ChatRegistry) Deactivate(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.chats, chatID)
}

// Active returns a snapshot of the set; callers may mutate the
// registry while iterating the result.
func (r *ChatRegistry) Active() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int64, 0, len(r.chats))
	for id := range r.chats {
		out = append(out, id)
	}
	return out
}

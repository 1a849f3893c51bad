package bot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"standupbot/store"
)

type sentText struct {
	chatID int64
	text   string
}

type fakeMessenger struct {
	texts   []sentText
	choices []sentText
	acks    []string

	textErr error
	ackErr  error
}

func (f *fakeMessenger) SendText(_ context.Context, chatID int64, text string) error {
	if f.textErr != nil {
		return f.textErr
	}
	f.texts = append(f.texts, sentText{chatID, text})
	return nil
}

func (f *fakeMessenger) SendChoice(_ context.Context, chatID int64, text string, _ []Choice) error {
	f.choices = append(f.choices, sentText{chatID, text})
	return nil
}

func (f *fakeMessenger) AnswerCallback(_ context.Context, callbackID string) error {
	f.acks = append(f.acks, callbackID)
	return f.ackErr
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

func newTestDispatcher(t time.Time) (*Dispatcher, *store.UpdateStore, *store.ChatRegistry, *fakeMessenger) {
	updates := store.NewUpdateStore()
	chats := store.NewChatRegistry()
	msg := &fakeMessenger{}
	return NewDispatcher(updates, chats, msg, fixedClock{t}), updates, chats, msg
}

var noon = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func TestStart_InGroupActivatesChat(t *testing.T) {
	d, _, chats, msg := newTestDispatcher(noon)

	d.HandleCommand(context.Background(), CommandEvent{
		ChatID: -100, ChatType: ChatSupergroup, SenderID: 1, Command: CmdStart,
	})

	assert.Equal(t, []int64{-100}, chats.Active())
	require.Len(t, msg.texts, 1)
	assert.Equal(t, welcomeMessage, msg.texts[0].text)
}

func TestStart_InPrivateChatDoesNotActivate(t *testing.T) {
	d, _, chats, msg := newTestDispatcher(noon)

	d.HandleCommand(context.Background(), CommandEvent{
		ChatID: 55, ChatType: ChatPrivate, SenderID: 1, Command: CmdStart,
	})

	assert.Empty(t, chats.Active())
	require.Len(t, msg.texts, 1)
	assert.Equal(t, welcomeMessage, msg.texts[0].text)
}

func TestHelp_RepliesWithCommandSummary(t *testing.T) {
	d, _, _, msg := newTestDispatcher(noon)

	d.HandleCommand(context.Background(), CommandEvent{ChatID: 55, Command: CmdHelp})

	require.Len(t, msg.texts, 1)
	assert.Contains(t, msg.texts[0].text, "/viewupdates")
}

func TestUpdate_RecordsAndConfirms(t *testing.T) {
	d, updates, _, msg := newTestDispatcher(noon)

	d.HandleCommand(context.Background(), CommandEvent{
		ChatID: 55, ChatType: ChatGroup, SenderID: 7,
		SenderName: "Alice", SenderHandle: "alice",
		Command: CmdUpdate, Args: "finished module 2",
	})

	got := updates.ListUpdates("2026-03-14")
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].AuthorID)
	assert.Equal(t, "finished module 2", got[0].Text)
	assert.Equal(t, noon, got[0].SubmittedAt)

	require.Len(t, msg.texts, 1)
	assert.Equal(t, updateSavedMessage, msg.texts[0].text)
}

func TestUpdate_NoArgumentYieldsUsageHintWithoutMutation(t *testing.T) {
	d, updates, _, msg := newTestDispatcher(noon)

	d.HandleCommand(context.Background(), CommandEvent{
		ChatID: 55, SenderID: 7, Command: CmdUpdate, Args: "",
	})

	assert.Empty(t, updates.ListUpdates("2026-03-14"))
	require.Len(t, msg.texts, 1)
	assert.Equal(t, updateUsageMessage, msg.texts[0].text)
}

func TestUpdate_WhitespaceOnlyTreatedAsNoArgument(t *testing.T) {
	d, updates, _, msg := newTestDispatcher(noon)

	d.HandleCommand(context.Background(), CommandEvent{
		ChatID: 55, SenderID: 7, Command: CmdUpdate, Args: "   \t  ",
	})

	assert.Empty(t, updates.ListUpdates("2026-03-14"))
	require.Len(t, msg.texts, 1)
	assert.Equal(t, updateUsageMessage, msg.texts[0].text)
}

func TestUpdate_TextIsTrimmed(t *testing.T) {
	d, updates, _, _ := newTestDispatcher(noon)

	d.HandleCommand(context.Background(), CommandEvent{
		ChatID: 55, SenderID: 7, Command: CmdUpdate, Args: "  shipping the fix  ",
	})

	got := updates.ListUpdates("2026-03-14")
	require.Len(t, got, 1)
	assert.Equal(t, "shipping the fix", got[0].Text)
}

func TestViewUpdates_EmptyDay(t *testing.T) {
	d, _, _, msg := newTestDispatcher(noon)

	d.HandleCommand(context.Background(), CommandEvent{ChatID: 55, Command: CmdViewUpdates})

	require.Len(t, msg.texts, 1)
	assert.Equal(t, noUpdatesMessage, msg.texts[0].text)
}

// The shared-day scenario: two users post, /viewupdates shows both in
// submission order, /viewmyupdates filters to the sender.
func TestViewUpdates_SharedDayScenario(t *testing.T) {
	d, _, chats, msg := newTestDispatcher(noon)
	ctx := context.Background()

	d.HandleCommand(ctx, CommandEvent{
		ChatID: -100, ChatType: ChatGroup, SenderID: 1, Command: CmdStart,
	})
	d.HandleCommand(ctx, CommandEvent{
		ChatID: -100, SenderID: 1, SenderName: "Uma", SenderHandle: "uma",
		Command: CmdUpdate, Args: "finished module 2",
	})
	d.HandleCommand(ctx, CommandEvent{
		ChatID: -100, SenderID: 2, SenderName: "Ravi",
		Command: CmdUpdate, Args: "debugging tests",
	})
	d.HandleCommand(ctx, CommandEvent{ChatID: -100, SenderID: 2, Command: CmdViewUpdates})

	assert.Equal(t, []int64{-100}, chats.Active())
	require.Len(t, msg.texts, 4)

	listing := msg.texts[3].text
	assert.Contains(t, listing, "1. Uma (@uma)")
	assert.Contains(t, listing, "finished module 2")
	assert.Contains(t, listing, "2. Ravi")
	assert.Contains(t, listing, "debugging tests")
	assert.Less(t, // submission order preserved in the listing
		strings.Index(listing, "finished module 2"), strings.Index(listing, "debugging tests"))

	d.HandleCommand(ctx, CommandEvent{ChatID: -100, SenderID: 1, Command: CmdViewMyUpdates})
	mine := msg.texts[4].text
	assert.Contains(t, mine, "finished module 2")
	assert.NotContains(t, mine, "debugging tests")
}

func TestViewMyUpdates_EmptyForSender(t *testing.T) {
	d, updates, _, msg := newTestDispatcher(noon)
	updates.RecordUpdate("2026-03-14", 2, "Ravi", "", "other person's work", noon)

	d.HandleCommand(context.Background(), CommandEvent{
		ChatID: 55, SenderID: 1, Command: CmdViewMyUpdates,
	})

	require.Len(t, msg.texts, 1)
	assert.Equal(t, noOwnUpdatesMessage, msg.texts[0].text)
}

func TestUnknownCommand_Hint(t *testing.T) {
	d, _, _, msg := newTestDispatcher(noon)

	d.HandleCommand(context.Background(), CommandEvent{ChatID: 55, Command: "standup"})

	require.Len(t, msg.texts, 1)
	assert.Equal(t, unrecognizedCommandMessage, msg.texts[0].text)
}

func TestCallback_SubmitUpdatePromptsAndAcknowledges(t *testing.T) {
	d, _, _, msg := newTestDispatcher(noon)

	d.HandleCallback(context.Background(), CallbackEvent{
		ID: "cb-1", ChatID: -100, Data: CallbackSubmitUpdate,
	})

	assert.Equal(t, []string{"cb-1"}, msg.acks)
	require.Len(t, msg.texts, 1)
	assert.Equal(t, submitPromptMessage, msg.texts[0].text)
}

func TestCallback_AcknowledgedEvenWhenReplyFails(t *testing.T) {
	d, _, _, msg := newTestDispatcher(noon)
	msg.textErr = errors.New("network down")

	d.HandleCallback(context.Background(), CallbackEvent{
		ID: "cb-2", ChatID: -100, Data: CallbackSubmitUpdate,
	})

	assert.Equal(t, []string{"cb-2"}, msg.acks)
}

func TestCallback_NoChatStillAcknowledges(t *testing.T) {
	d, _, _, msg := newTestDispatcher(noon)

	d.HandleCallback(context.Background(), CallbackEvent{
		ID: "cb-4", Data: CallbackSubmitUpdate,
	})

	assert.Equal(t, []string{"cb-4"}, msg.acks)
	assert.Empty(t, msg.texts)
}

func TestCallback_UnknownDataOnlyAcknowledges(t *testing.T) {
	d, _, _, msg := newTestDispatcher(noon)

	d.HandleCallback(context.Background(), CallbackEvent{
		ID: "cb-3", ChatID: -100, Data: "something_else",
	})

	assert.Equal(t, []string{"cb-3"}, msg.acks)
	assert.Empty(t, msg.texts)
}

func TestReplyFailure_DoesNotUndoMutation(t *testing.T) {
	d, updates, _, msg := newTestDispatcher(noon)
	msg.textErr = errors.New("telegram is down")

	d.HandleCommand(context.Background(), CommandEvent{
		ChatID: 55, SenderID: 7, SenderName: "Alice",
		Command: CmdUpdate, Args: "still counts",
	})

	require.Len(t, updates.ListUpdates("2026-03-14"), 1)
}

func TestPanicDuringHandling_RecoveredWithoutStateChange(t *testing.T) {
	updates := store.NewUpdateStore()
	chats := store.NewChatRegistry()
	msg := &fakeMessenger{}
	// A nil clock makes /update panic partway through handling.
	d := NewDispatcher(updates, chats, msg, nil)

	assert.NotPanics(t, func() {
		d.HandleCommand(context.Background(), CommandEvent{
			ChatID: 55, SenderID: 7, Command: CmdUpdate, Args: "does not land",
		})
	})

	assert.Empty(t, updates.ListUpdates("2026-03-14"))
	assert.Empty(t, chats.Active())
}

func TestHealthy(t *testing.T) {
	d, _, _, _ := newTestDispatcher(noon)
	assert.True(t, d.Healthy())

	var nilDispatcher *Dispatcher
	assert.False(t, nilDispatcher.Healthy())
}

package bot

// Telegram chat types.
const (
	ChatPrivate    = "private"
	ChatGroup      = "group"
	ChatSupergroup = "supergroup"
	ChatChannel    = "channel"
)

// Commands understood by the dispatcher, without the leading slash.
const (
	CmdStart         = "start"
	CmdHelp          = "help"
	CmdUpdate        = "update"
	CmdViewUpdates   = "viewupdates"
	CmdViewMyUpdates = "viewmyupdates"
)

// CallbackSubmitUpdate is the data token carried by the "Submit Update"
// button attached to scheduled reminders.
const CallbackSubmitUpdate = "submit_update"

// CommandEvent is one parsed inbound command with sender and chat
// identity, produced by the transport layer.
type CommandEvent struct {
	ChatID       int64
	ChatType     string
	SenderID     int64
	SenderName   string
	SenderHandle string // may be empty, not every user sets one
	Command      string
	Args         string
}

// CallbackEvent is an inline-button press.
type CallbackEvent struct {
	ID     string
	ChatID int64
	Data   string
}

package bot

const (
	commandSummary = "• `/update <text>` — submit a status update\n" +
		"• `/viewupdates` — see everyone's updates for today\n" +
		"• `/viewmyupdates` — see your own updates for today\n" +
		"• `/help` — show this message"

	welcomeMessage = "👋 Hi, I'm your standup bot!\n\n" +
		"I collect status updates from the team and nudge everyone to post them during working hours.\n\n" +
		commandSummary

	helpMessage = "Here's what I can do:\n\n" + commandSummary

	updateUsageMessage = "Please include the update text, like: `/update finished the login page`"

	updateSavedMessage = "Got it, your update for today is saved! ✅"

	noUpdatesMessage = "No updates so far today."

	noOwnUpdatesMessage = "You haven't posted any updates today."

	unrecognizedCommandMessage = "Hmm, I don't know that command. Try /help to see what I understand."

	submitPromptMessage = "Send your update as `/update <text>`, e.g. `/update debugging the payment tests`."
)

package constants

const (
	// WelcomeMessageID identifies the fixed greeting that always opens the
	// chat history. It is re-inserted on load if missing.
	WelcomeMessageID = "welcome"

	WelcomeMessageText = "Hi, I'm here whenever you need to talk. " +
		"How are you feeling today?"

	// FallbackReply is shown as a bot message when the remote responder
	// cannot be reached. There is no retry.
	FallbackReply = "I'm having trouble connecting right now, but I'm still " +
		"here with you. Take a breath, and try me again in a little while."

	ChatSystemPrompt = "You are a warm, supportive companion for someone in " +
		"addiction recovery. Listen first, encourage without preaching, and " +
		"never give medical advice. Keep replies short and kind."

	DefaultChatBaseURL = "https://openrouter.ai/api/v1"
	DefaultChatModel   = "deepseek/deepseek-chat-v3-0324:free"

	// APIKeyEnvVar overrides the keyring-stored chat API key when set.
	APIKeyEnvVar = "ANCHOR_API_KEY"
)

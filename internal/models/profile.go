package models

import (
	"time"

	"anchor/internal/constants"
)

// SobrietyProfile tracks the user's recovery start date. SobrietyDate is nil
// until the user explicitly sets it; HasSeenPrompt records that the initial
// "set your date?" prompt was shown, so it is never shown twice.
type SobrietyProfile struct {
	SobrietyDate  *string `json:"sobriety_date,omitempty"` // YYYY-MM-DD format
	HasSeenPrompt bool    `json:"has_seen_prompt"`
}

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// ChatMessage is one entry in the append-only chat log.
type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// NewWelcomeMessage returns the fixed greeting that opens every chat history.
func NewWelcomeMessage() ChatMessage {
	return ChatMessage{
		ID:        constants.WelcomeMessageID,
		Text:      constants.WelcomeMessageText,
		Sender:    SenderBot,
		Timestamp: time.Time{},
	}
}

// Bookmark marks a literature section the user saved for later.
type Bookmark struct {
	SectionID string    `json:"section_id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	DateAdded time.Time `json:"date_added"`
}

// RecentView records a literature section the user opened. The recents list
// is bounded, most-recent-first, with one entry per section.
type RecentView struct {
	SectionID string    `json:"section_id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	ViewedAt  time.Time `json:"viewed_at"`
}

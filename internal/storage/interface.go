package storage

import "anchor/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Verify() error
	Close() error

	// Gratitude
	GetGratitude(date string) (models.GratitudeEntry, error)
	SaveGratitude(models.GratitudeEntry) error
	AllGratitude() ([]models.GratitudeEntry, error)

	// Nightly reviews
	GetReview(date string) (models.ReviewEntry, error)
	SaveReview(models.ReviewEntry) error
	AllReviews() ([]models.ReviewEntry, error)

	// Sobriety profile
	GetSobriety() (models.SobrietyProfile, error)
	SaveSobriety(models.SobrietyProfile) error

	// Chat history
	GetChatHistory() ([]models.ChatMessage, error)
	SaveChatHistory([]models.ChatMessage) error
	ClearChatHistory() error

	// Literature browser
	AddBookmark(models.Bookmark) error
	RemoveBookmark(sectionID string) error
	AllBookmarks() ([]models.Bookmark, error)
	TouchRecent(models.RecentView) error
	RecentViews() ([]models.RecentView, error)

	// Onboarding
	Onboarded() (bool, error)
	SetOnboarded(bool) error

	// Utils
	GetConfigPath() string
}

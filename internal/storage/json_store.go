package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"anchor/internal/constants"
	"anchor/internal/logger"
	"anchor/internal/models"
)

// storeVersion is the current on-disk schema version. Version 1 payloads
// (six-question reviews with "yes"/"no" string answers) are upgraded on load.
const storeVersion = 2

type Store struct {
	Version   int                              `json:"version"`
	Gratitude map[string]models.GratitudeEntry `json:"gratitude"`
	Reviews   map[string]models.ReviewEntry    `json:"reviews"`
	Sobriety  models.SobrietyProfile           `json:"sobriety"`
	Chat      []models.ChatMessage             `json:"chat"`
	Bookmarks []models.Bookmark                `json:"bookmarks"`
	Recents   []models.RecentView              `json:"recents"`
	Onboarded bool                             `json:"onboarded"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = emptyStore()
	return s.save()
}

// Load reads the store file into memory. It is idempotent: calling it again
// while already loaded leaves the in-memory collection untouched.
func (s *JSONStore) Load() error {
	if s.store != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'anchor init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	store, upgraded, err := decodeStore(data)
	if err != nil {
		// A corrupt payload is recoverable: start from an empty collection
		// rather than blocking the user's workflow.
		logger.Error("Failed to parse storage, starting empty", "path", s.path, "error", err)
		s.store = emptyStore()
		return nil
	}
	s.store = store

	// Ensure maps are initialized
	if s.store.Gratitude == nil {
		s.store.Gratitude = make(map[string]models.GratitudeEntry)
	}
	if s.store.Reviews == nil {
		s.store.Reviews = make(map[string]models.ReviewEntry)
	}
	s.ensureWelcome()

	if upgraded {
		logger.Info("Upgraded legacy storage schema", "path", s.path, "version", storeVersion)
		return s.save()
	}
	return nil
}

// Verify checks that the stored payload parses, without loading it. Unlike
// Load it reports a corrupt payload instead of recovering to an empty
// collection, so diagnostics can surface the problem.
func (s *JSONStore) Verify() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'anchor init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}
	if _, _, err := decodeStore(data); err != nil {
		return fmt.Errorf("storage payload is corrupt: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func emptyStore() *Store {
	return &Store{
		Version:   storeVersion,
		Gratitude: make(map[string]models.GratitudeEntry),
		Reviews:   make(map[string]models.ReviewEntry),
		Chat:      []models.ChatMessage{models.NewWelcomeMessage()},
	}
}

// ensureWelcome re-inserts the fixed welcome message if it is missing from
// the front of the chat log.
func (s *JSONStore) ensureWelcome() {
	if len(s.store.Chat) == 0 || s.store.Chat[0].ID != constants.WelcomeMessageID {
		s.store.Chat = append([]models.ChatMessage{models.NewWelcomeMessage()}, s.store.Chat...)
	}
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetGratitude(date string) (models.GratitudeEntry, error) {
	if s.store == nil {
		return models.GratitudeEntry{}, fmt.Errorf("storage not loaded")
	}

	entry, ok := s.store.Gratitude[date]
	if !ok {
		return models.GratitudeEntry{}, fmt.Errorf("no gratitude list found for date: %s", date)
	}

	return entry, nil
}

func (s *JSONStore) SaveGratitude(entry models.GratitudeEntry) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	entry.UpdatedAt = time.Now()
	s.store.Gratitude[entry.Date] = entry
	return s.save()
}

func (s *JSONStore) AllGratitude() ([]models.GratitudeEntry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	entries := make([]models.GratitudeEntry, 0, len(s.store.Gratitude))
	for _, entry := range s.store.Gratitude {
		entries = append(entries, entry)
	}

	return entries, nil
}

func (s *JSONStore) GetReview(date string) (models.ReviewEntry, error) {
	if s.store == nil {
		return models.ReviewEntry{}, fmt.Errorf("storage not loaded")
	}

	entry, ok := s.store.Reviews[date]
	if !ok {
		return models.ReviewEntry{}, fmt.Errorf("no review found for date: %s", date)
	}

	return entry, nil
}

func (s *JSONStore) SaveReview(entry models.ReviewEntry) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	entry.UpdatedAt = time.Now()
	s.store.Reviews[entry.Date] = entry
	return s.save()
}

func (s *JSONStore) AllReviews() ([]models.ReviewEntry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	entries := make([]models.ReviewEntry, 0, len(s.store.Reviews))
	for _, entry := range s.store.Reviews {
		entries = append(entries, entry)
	}

	return entries, nil
}

func (s *JSONStore) GetSobriety() (models.SobrietyProfile, error) {
	if s.store == nil {
		return models.SobrietyProfile{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Sobriety, nil
}

func (s *JSONStore) SaveSobriety(profile models.SobrietyProfile) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Sobriety = profile
	return s.save()
}

func (s *JSONStore) GetChatHistory() ([]models.ChatMessage, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	messages := make([]models.ChatMessage, len(s.store.Chat))
	copy(messages, s.store.Chat)
	return messages, nil
}

func (s *JSONStore) SaveChatHistory(messages []models.ChatMessage) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Chat = make([]models.ChatMessage, len(messages))
	copy(s.store.Chat, messages)
	s.ensureWelcome()
	return s.save()
}

func (s *JSONStore) ClearChatHistory() error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Chat = []models.ChatMessage{models.NewWelcomeMessage()}
	return s.save()
}

func (s *JSONStore) AddBookmark(bookmark models.Bookmark) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	// Set membership: replace an existing bookmark for the same section.
	for i, b := range s.store.Bookmarks {
		if b.SectionID == bookmark.SectionID {
			s.store.Bookmarks[i] = bookmark
			return s.save()
		}
	}

	s.store.Bookmarks = append(s.store.Bookmarks, bookmark)
	return s.save()
}

func (s *JSONStore) RemoveBookmark(sectionID string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	for i, b := range s.store.Bookmarks {
		if b.SectionID == sectionID {
			s.store.Bookmarks = append(s.store.Bookmarks[:i], s.store.Bookmarks[i+1:]...)
			return s.save()
		}
	}

	return fmt.Errorf("bookmark not found: %s", sectionID)
}

func (s *JSONStore) AllBookmarks() ([]models.Bookmark, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	bookmarks := make([]models.Bookmark, len(s.store.Bookmarks))
	copy(bookmarks, s.store.Bookmarks)
	return bookmarks, nil
}

func (s *JSONStore) TouchRecent(view models.RecentView) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	// Collapse any earlier view of the same section to this occurrence.
	recents := make([]models.RecentView, 0, len(s.store.Recents)+1)
	recents = append(recents, view)
	for _, r := range s.store.Recents {
		if r.SectionID != view.SectionID {
			recents = append(recents, r)
		}
	}
	if len(recents) > constants.MaxRecentSections {
		recents = recents[:constants.MaxRecentSections]
	}

	s.store.Recents = recents
	return s.save()
}

func (s *JSONStore) RecentViews() ([]models.RecentView, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	recents := make([]models.RecentView, len(s.store.Recents))
	copy(recents, s.store.Recents)
	return recents, nil
}

func (s *JSONStore) Onboarded() (bool, error) {
	if s.store == nil {
		return false, fmt.Errorf("storage not loaded")
	}
	return s.store.Onboarded, nil
}

func (s *JSONStore) SetOnboarded(done bool) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Onboarded = done
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"anchor/internal/constants"
	"anchor/internal/models"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS gratitude (
	day        TEXT PRIMARY KEY,
	items      TEXT NOT NULL DEFAULT '[]',
	completed  INTEGER NOT NULL DEFAULT 0,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS reviews (
	day        TEXT PRIMARY KEY,
	answers    TEXT NOT NULL DEFAULT '{}',
	reflection TEXT NOT NULL DEFAULT '',
	completed  INTEGER NOT NULL DEFAULT 0,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS sobriety (
	id              INTEGER PRIMARY KEY CHECK (id = 1),
	sobriety_date   TEXT,
	has_seen_prompt INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS chat_messages (
	position  INTEGER PRIMARY KEY AUTOINCREMENT,
	id        TEXT NOT NULL,
	text      TEXT NOT NULL,
	sender    TEXT NOT NULL,
	timestamp TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS bookmarks (
	section_id TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	url        TEXT NOT NULL,
	date_added TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS recents (
	section_id TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	url        TEXT NOT NULL,
	viewed_at  TEXT NOT NULL
);
`

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := s.seedChat(); err != nil {
		return err
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'anchor init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema creation is idempotent, which also upgrades stores created
	// before a table existed.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	return s.seedChat()
}

// Verify runs sqlite's integrity check against the database file.
func (s *SQLiteStore) Verify() error {
	if err := s.Load(); err != nil {
		return err
	}
	var result string
	if err := s.db.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return fmt.Errorf("integrity check failed: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("integrity check reported: %s", result)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// seedChat guarantees the chat log opens with the fixed welcome message.
func (s *SQLiteStore) seedChat() error {
	var id string
	err := s.db.QueryRow(`SELECT id FROM chat_messages ORDER BY position LIMIT 1`).Scan(&id)
	if err == nil && id == constants.WelcomeMessageID {
		return nil
	}
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to inspect chat history: %w", err)
	}

	messages, err := s.GetChatHistory()
	if err != nil {
		return err
	}
	return s.SaveChatHistory(append([]models.ChatMessage{models.NewWelcomeMessage()}, messages...))
}

func (s *SQLiteStore) GetGratitude(date string) (models.GratitudeEntry, error) {
	if s.db == nil {
		return models.GratitudeEntry{}, fmt.Errorf("storage not loaded")
	}

	var entry models.GratitudeEntry
	var items string
	var completed int
	var updatedAt string
	err := s.db.QueryRow(
		`SELECT day, items, completed, updated_at FROM gratitude WHERE day = ?`, date,
	).Scan(&entry.Date, &items, &completed, &updatedAt)
	if err == sql.ErrNoRows {
		return models.GratitudeEntry{}, fmt.Errorf("no gratitude list found for date: %s", date)
	}
	if err != nil {
		return models.GratitudeEntry{}, fmt.Errorf("failed to read gratitude: %w", err)
	}

	if err := json.Unmarshal([]byte(items), &entry.Items); err != nil {
		return models.GratitudeEntry{}, fmt.Errorf("failed to parse gratitude items: %w", err)
	}
	entry.Completed = completed != 0
	entry.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return entry, nil
}

func (s *SQLiteStore) SaveGratitude(entry models.GratitudeEntry) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	items, err := json.Marshal(entry.Items)
	if err != nil {
		return fmt.Errorf("failed to serialize gratitude items: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO gratitude (day, items, completed, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(day) DO UPDATE SET items = excluded.items,
		                                completed = excluded.completed,
		                                updated_at = excluded.updated_at`,
		entry.Date, string(items), boolToInt(entry.Completed), time.Now().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save gratitude: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AllGratitude() ([]models.GratitudeEntry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`SELECT day, items, completed, updated_at FROM gratitude`)
	if err != nil {
		return nil, fmt.Errorf("failed to list gratitude: %w", err)
	}
	defer rows.Close()

	var entries []models.GratitudeEntry
	for rows.Next() {
		var entry models.GratitudeEntry
		var items, updatedAt string
		var completed int
		if err := rows.Scan(&entry.Date, &items, &completed, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan gratitude: %w", err)
		}
		if err := json.Unmarshal([]byte(items), &entry.Items); err != nil {
			return nil, fmt.Errorf("failed to parse gratitude items: %w", err)
		}
		entry.Completed = completed != 0
		entry.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) GetReview(date string) (models.ReviewEntry, error) {
	if s.db == nil {
		return models.ReviewEntry{}, fmt.Errorf("storage not loaded")
	}

	var entry models.ReviewEntry
	var answers, updatedAt string
	var completed int
	err := s.db.QueryRow(
		`SELECT day, answers, reflection, completed, updated_at FROM reviews WHERE day = ?`, date,
	).Scan(&entry.Date, &answers, &entry.Reflection, &completed, &updatedAt)
	if err == sql.ErrNoRows {
		return models.ReviewEntry{}, fmt.Errorf("no review found for date: %s", date)
	}
	if err != nil {
		return models.ReviewEntry{}, fmt.Errorf("failed to read review: %w", err)
	}

	if err := json.Unmarshal([]byte(answers), &entry.Answers); err != nil {
		return models.ReviewEntry{}, fmt.Errorf("failed to parse review answers: %w", err)
	}
	entry.Completed = completed != 0
	entry.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return entry, nil
}

func (s *SQLiteStore) SaveReview(entry models.ReviewEntry) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	answers, err := json.Marshal(entry.Answers)
	if err != nil {
		return fmt.Errorf("failed to serialize review answers: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO reviews (day, answers, reflection, completed, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(day) DO UPDATE SET answers = excluded.answers,
		                                reflection = excluded.reflection,
		                                completed = excluded.completed,
		                                updated_at = excluded.updated_at`,
		entry.Date, string(answers), entry.Reflection, boolToInt(entry.Completed),
		time.Now().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save review: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AllReviews() ([]models.ReviewEntry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`SELECT day, answers, reflection, completed, updated_at FROM reviews`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var entries []models.ReviewEntry
	for rows.Next() {
		var entry models.ReviewEntry
		var answers, updatedAt string
		var completed int
		if err := rows.Scan(&entry.Date, &answers, &entry.Reflection, &completed, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		if err := json.Unmarshal([]byte(answers), &entry.Answers); err != nil {
			return nil, fmt.Errorf("failed to parse review answers: %w", err)
		}
		entry.Completed = completed != 0
		entry.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) GetSobriety() (models.SobrietyProfile, error) {
	if s.db == nil {
		return models.SobrietyProfile{}, fmt.Errorf("storage not loaded")
	}

	var profile models.SobrietyProfile
	var date sql.NullString
	var seen int
	err := s.db.QueryRow(`SELECT sobriety_date, has_seen_prompt FROM sobriety WHERE id = 1`).Scan(&date, &seen)
	if err == sql.ErrNoRows {
		return models.SobrietyProfile{}, nil
	}
	if err != nil {
		return models.SobrietyProfile{}, fmt.Errorf("failed to read sobriety profile: %w", err)
	}

	if date.Valid {
		profile.SobrietyDate = &date.String
	}
	profile.HasSeenPrompt = seen != 0
	return profile, nil
}

func (s *SQLiteStore) SaveSobriety(profile models.SobrietyProfile) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	var date interface{}
	if profile.SobrietyDate != nil {
		date = *profile.SobrietyDate
	}
	_, err := s.db.Exec(
		`INSERT INTO sobriety (id, sobriety_date, has_seen_prompt) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET sobriety_date = excluded.sobriety_date,
		                               has_seen_prompt = excluded.has_seen_prompt`,
		date, boolToInt(profile.HasSeenPrompt),
	)
	if err != nil {
		return fmt.Errorf("failed to save sobriety profile: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetChatHistory() ([]models.ChatMessage, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`SELECT id, text, sender, timestamp FROM chat_messages ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var msg models.ChatMessage
		var ts string
		if err := rows.Scan(&msg.ID, &msg.Text, &msg.Sender, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		msg.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (s *SQLiteStore) SaveChatHistory(messages []models.ChatMessage) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	// The chat log is persisted as a whole on every change, so replace the
	// table contents in one transaction.
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM chat_messages`); err != nil {
		return fmt.Errorf("failed to clear chat messages: %w", err)
	}
	for _, msg := range messages {
		if _, err := tx.Exec(
			`INSERT INTO chat_messages (id, text, sender, timestamp) VALUES (?, ?, ?, ?)`,
			msg.ID, msg.Text, msg.Sender, msg.Timestamp.Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("failed to insert chat message: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) ClearChatHistory() error {
	return s.SaveChatHistory([]models.ChatMessage{models.NewWelcomeMessage()})
}

func (s *SQLiteStore) AddBookmark(bookmark models.Bookmark) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec(
		`INSERT INTO bookmarks (section_id, title, url, date_added) VALUES (?, ?, ?, ?)
		 ON CONFLICT(section_id) DO UPDATE SET title = excluded.title,
		                                       url = excluded.url,
		                                       date_added = excluded.date_added`,
		bookmark.SectionID, bookmark.Title, bookmark.URL, bookmark.DateAdded.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save bookmark: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RemoveBookmark(sectionID string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	res, err := s.db.Exec(`DELETE FROM bookmarks WHERE section_id = ?`, sectionID)
	if err != nil {
		return fmt.Errorf("failed to remove bookmark: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("bookmark not found: %s", sectionID)
	}
	return nil
}

func (s *SQLiteStore) AllBookmarks() ([]models.Bookmark, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`SELECT section_id, title, url, date_added FROM bookmarks ORDER BY date_added`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []models.Bookmark
	for rows.Next() {
		var b models.Bookmark
		var added string
		if err := rows.Scan(&b.SectionID, &b.Title, &b.URL, &added); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		b.DateAdded, _ = time.Parse(time.RFC3339Nano, added)
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

func (s *SQLiteStore) TouchRecent(view models.RecentView) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec(
		`INSERT INTO recents (section_id, title, url, viewed_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(section_id) DO UPDATE SET title = excluded.title,
		                                       url = excluded.url,
		                                       viewed_at = excluded.viewed_at`,
		view.SectionID, view.Title, view.URL, view.ViewedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to record recent view: %w", err)
	}

	// Keep only the newest entries.
	_, err = s.db.Exec(
		`DELETE FROM recents WHERE section_id NOT IN (
			SELECT section_id FROM recents ORDER BY viewed_at DESC LIMIT ?
		)`, constants.MaxRecentSections,
	)
	if err != nil {
		return fmt.Errorf("failed to trim recent views: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RecentViews() ([]models.RecentView, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`SELECT section_id, title, url, viewed_at FROM recents ORDER BY viewed_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent views: %w", err)
	}
	defer rows.Close()

	var recents []models.RecentView
	for rows.Next() {
		var r models.RecentView
		var viewed string
		if err := rows.Scan(&r.SectionID, &r.Title, &r.URL, &viewed); err != nil {
			return nil, fmt.Errorf("failed to scan recent view: %w", err)
		}
		r.ViewedAt, _ = time.Parse(time.RFC3339Nano, viewed)
		recents = append(recents, r)
	}
	return recents, rows.Err()
}

func (s *SQLiteStore) Onboarded() (bool, error) {
	if s.db == nil {
		return false, fmt.Errorf("storage not loaded")
	}

	var value string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = 'onboarded'`).Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read onboarding flag: %w", err)
	}
	return value == "true", nil
}

func (s *SQLiteStore) SetOnboarded(done bool) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	value := "false"
	if done {
		value = "true"
	}
	_, err := s.db.Exec(
		`INSERT INTO meta (key, value) VALUES ('onboarded', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, value,
	)
	if err != nil {
		return fmt.Errorf("failed to save onboarding flag: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

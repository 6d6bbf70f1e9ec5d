package storage

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"anchor/internal/constants"
	"anchor/internal/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "anchor.db")
	s := NewSQLiteStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteGratitudeRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)

	entry := models.GratitudeEntry{
		Date:      "2024-05-01",
		Items:     []string{"sobriety", "family"},
		Completed: true,
	}
	if err := s.SaveGratitude(entry); err != nil {
		t.Fatalf("SaveGratitude failed: %v", err)
	}

	got, err := s.GetGratitude("2024-05-01")
	if err != nil {
		t.Fatalf("GetGratitude failed: %v", err)
	}
	if !reflect.DeepEqual(got.Items, entry.Items) || !got.Completed {
		t.Errorf("gratitude round trip = %+v, want %+v", got, entry)
	}

	if _, err := s.GetGratitude("2024-05-02"); err == nil {
		t.Error("GetGratitude for absent day expected error")
	}
}

func TestSQLiteReviewUpsert(t *testing.T) {
	s := newTestSQLiteStore(t)
	const day = "2024-05-01"

	if err := s.SaveReview(models.ReviewEntry{
		Date:    day,
		Answers: models.ReviewAnswers{Fearful: true},
	}); err != nil {
		t.Fatalf("SaveReview failed: %v", err)
	}

	// Same day key updates in place rather than inserting a second row.
	if err := s.SaveReview(models.ReviewEntry{
		Date:       day,
		Answers:    models.ReviewAnswers{Fearful: true, Spiritual: true},
		Reflection: "evening walk",
		Completed:  true,
	}); err != nil {
		t.Fatalf("SaveReview failed: %v", err)
	}

	entries, err := s.AllReviews()
	if err != nil {
		t.Fatalf("AllReviews failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("upsert created %d rows, want 1", len(entries))
	}
	got := entries[0]
	if !got.Answers.Fearful || !got.Answers.Spiritual || !got.Completed || got.Reflection != "evening walk" {
		t.Errorf("review upsert = %+v", got)
	}
}

func TestSQLiteSobrietySingleton(t *testing.T) {
	s := newTestSQLiteStore(t)

	profile, err := s.GetSobriety()
	if err != nil {
		t.Fatalf("GetSobriety failed: %v", err)
	}
	if profile.SobrietyDate != nil || profile.HasSeenPrompt {
		t.Errorf("fresh profile = %+v, want empty", profile)
	}

	date := "2024-01-01"
	if err := s.SaveSobriety(models.SobrietyProfile{SobrietyDate: &date, HasSeenPrompt: true}); err != nil {
		t.Fatalf("SaveSobriety failed: %v", err)
	}
	if err := s.SaveSobriety(models.SobrietyProfile{SobrietyDate: nil, HasSeenPrompt: true}); err != nil {
		t.Fatalf("SaveSobriety failed: %v", err)
	}

	profile, err = s.GetSobriety()
	if err != nil {
		t.Fatalf("GetSobriety failed: %v", err)
	}
	if profile.SobrietyDate != nil {
		t.Errorf("reset date not persisted: %+v", profile)
	}
	if !profile.HasSeenPrompt {
		t.Error("HasSeenPrompt lost on save")
	}
}

func TestSQLiteChatHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anchor.db")
	s := NewSQLiteStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	messages, err := s.GetChatHistory()
	if err != nil {
		t.Fatalf("GetChatHistory failed: %v", err)
	}
	if len(messages) != 1 || messages[0].ID != constants.WelcomeMessageID {
		t.Fatalf("fresh chat = %+v, want just welcome", messages)
	}

	messages = append(messages, models.ChatMessage{
		ID: "m1", Text: "hi", Sender: models.SenderUser, Timestamp: time.Now(),
	})
	if err := s.SaveChatHistory(messages); err != nil {
		t.Fatalf("SaveChatHistory failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Reopen: order survives, welcome stays first.
	reopened := NewSQLiteStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	messages, err = reopened.GetChatHistory()
	if err != nil {
		t.Fatalf("GetChatHistory failed: %v", err)
	}
	if len(messages) != 2 || messages[0].ID != constants.WelcomeMessageID || messages[1].ID != "m1" {
		t.Errorf("chat after restart = %+v", messages)
	}

	if err := reopened.ClearChatHistory(); err != nil {
		t.Fatalf("ClearChatHistory failed: %v", err)
	}
	messages, err = reopened.GetChatHistory()
	if err != nil {
		t.Fatalf("GetChatHistory failed: %v", err)
	}
	if len(messages) != 1 || messages[0].ID != constants.WelcomeMessageID {
		t.Errorf("cleared chat = %+v, want just welcome", messages)
	}
}

func TestSQLiteRecentsTrimmed(t *testing.T) {
	s := newTestSQLiteStore(t)

	base := time.Now()
	for i := 0; i < constants.MaxRecentSections+4; i++ {
		view := models.RecentView{
			SectionID: string(rune('a' + i)),
			Title:     "Section",
			ViewedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := s.TouchRecent(view); err != nil {
			t.Fatalf("TouchRecent failed: %v", err)
		}
	}

	recents, err := s.RecentViews()
	if err != nil {
		t.Fatalf("RecentViews failed: %v", err)
	}
	if len(recents) != constants.MaxRecentSections {
		t.Errorf("recents length = %d, want %d", len(recents), constants.MaxRecentSections)
	}
	// Most recent first.
	if recents[0].SectionID != string(rune('a'+constants.MaxRecentSections+3)) {
		t.Errorf("first recent = %+v, want the newest view", recents[0])
	}
}

func TestSQLiteVerify(t *testing.T) {
	s := newTestSQLiteStore(t)
	if err := s.Verify(); err != nil {
		t.Errorf("Verify on fresh store failed: %v", err)
	}

	missing := NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := missing.Verify(); err == nil {
		t.Error("Verify on missing file expected error, got nil")
	}
}

func TestSQLiteOnboardedFlag(t *testing.T) {
	s := newTestSQLiteStore(t)

	done, err := s.Onboarded()
	if err != nil {
		t.Fatalf("Onboarded failed: %v", err)
	}
	if done {
		t.Error("fresh store reports onboarded")
	}

	if err := s.SetOnboarded(true); err != nil {
		t.Fatalf("SetOnboarded failed: %v", err)
	}
	done, err = s.Onboarded()
	if err != nil {
		t.Fatalf("Onboarded failed: %v", err)
	}
	if !done {
		t.Error("onboarded flag not persisted")
	}
}

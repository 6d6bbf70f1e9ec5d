package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"anchor/internal/constants"
	"anchor/internal/models"
)

func newTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "anchor.json")
	s := NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return s
}

func TestJSONStoreInitTwice(t *testing.T) {
	s := newTestJSONStore(t)
	if err := s.Init(); err == nil {
		t.Error("second Init expected error, got nil")
	}
}

func TestJSONStoreLoadNotInitialized(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := s.Load(); err == nil {
		t.Error("Load on missing file expected error, got nil")
	}
}

func TestGratitudeUpsertIsolation(t *testing.T) {
	s := newTestJSONStore(t)

	first := models.GratitudeEntry{Date: "2024-05-01", Items: []string{"sobriety"}}
	second := models.GratitudeEntry{Date: "2024-05-02", Items: []string{"family"}}
	if err := s.SaveGratitude(first); err != nil {
		t.Fatalf("SaveGratitude failed: %v", err)
	}
	if err := s.SaveGratitude(second); err != nil {
		t.Fatalf("SaveGratitude failed: %v", err)
	}

	// Mutating one day must not affect another.
	first.Items = append(first.Items, "health")
	first.Completed = true
	if err := s.SaveGratitude(first); err != nil {
		t.Fatalf("SaveGratitude failed: %v", err)
	}

	got, err := s.GetGratitude("2024-05-02")
	if err != nil {
		t.Fatalf("GetGratitude failed: %v", err)
	}
	if !reflect.DeepEqual(got.Items, []string{"family"}) || got.Completed {
		t.Errorf("record for 2024-05-02 changed by write to 2024-05-01: %+v", got)
	}
}

func TestGratitudeCompleteScenario(t *testing.T) {
	s := newTestJSONStore(t)
	const day = "2024-05-01"

	if err := s.SaveGratitude(models.GratitudeEntry{
		Date:  day,
		Items: []string{"sobriety", "family"},
	}); err != nil {
		t.Fatalf("SaveGratitude failed: %v", err)
	}

	// Finalizing with a replacement list overwrites the items and completes.
	if err := s.SaveGratitude(models.GratitudeEntry{
		Date:      day,
		Items:     []string{"sobriety", "family", "health"},
		Completed: true,
	}); err != nil {
		t.Fatalf("SaveGratitude failed: %v", err)
	}

	got, err := s.GetGratitude(day)
	if err != nil {
		t.Fatalf("GetGratitude failed: %v", err)
	}
	if !reflect.DeepEqual(got.Items, []string{"sobriety", "family", "health"}) {
		t.Errorf("items = %v, want [sobriety family health]", got.Items)
	}
	if !got.Completed {
		t.Error("entry not completed after finalize")
	}
}

func TestReviewUncompletePreservesAnswers(t *testing.T) {
	s := newTestJSONStore(t)
	const day = "2024-05-01"

	entry := models.ReviewEntry{
		Date:      day,
		Answers:   models.ReviewAnswers{Resentful: true, PrayerMeditation: true},
		Completed: true,
	}
	if err := s.SaveReview(entry); err != nil {
		t.Fatalf("SaveReview failed: %v", err)
	}

	got, err := s.GetReview(day)
	if err != nil {
		t.Fatalf("GetReview failed: %v", err)
	}
	got.Completed = false
	if err := s.SaveReview(got); err != nil {
		t.Fatalf("SaveReview failed: %v", err)
	}

	got, err = s.GetReview(day)
	if err != nil {
		t.Fatalf("GetReview failed: %v", err)
	}
	if !got.Answers.Resentful {
		t.Error("uncomplete lost the resentful answer")
	}
	if got.Completed {
		t.Error("entry still completed after uncomplete")
	}
}

func TestRoundTripAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anchor.json")
	s := NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	date := "2024-04-30"
	if err := s.SaveGratitude(models.GratitudeEntry{Date: date, Items: []string{"a", "b"}, Completed: true}); err != nil {
		t.Fatalf("SaveGratitude failed: %v", err)
	}
	if err := s.SaveReview(models.ReviewEntry{Date: date, Answers: models.ReviewAnswers{Kindness: true}}); err != nil {
		t.Fatalf("SaveReview failed: %v", err)
	}
	sobrietyDate := "2024-01-01"
	if err := s.SaveSobriety(models.SobrietyProfile{SobrietyDate: &sobrietyDate, HasSeenPrompt: true}); err != nil {
		t.Fatalf("SaveSobriety failed: %v", err)
	}

	// Simulate a process restart.
	restarted := NewJSONStore(path)
	if err := restarted.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	gratitude, err := restarted.GetGratitude(date)
	if err != nil {
		t.Fatalf("GetGratitude failed: %v", err)
	}
	if !reflect.DeepEqual(gratitude.Items, []string{"a", "b"}) || !gratitude.Completed {
		t.Errorf("gratitude did not round trip: %+v", gratitude)
	}

	review, err := restarted.GetReview(date)
	if err != nil {
		t.Fatalf("GetReview failed: %v", err)
	}
	if !review.Answers.Kindness || review.Answers.Resentful {
		t.Errorf("review answers did not round trip: %+v", review.Answers)
	}

	profile, err := restarted.GetSobriety()
	if err != nil {
		t.Fatalf("GetSobriety failed: %v", err)
	}
	if profile.SobrietyDate == nil || *profile.SobrietyDate != sobrietyDate || !profile.HasSeenPrompt {
		t.Errorf("sobriety profile did not round trip: %+v", profile)
	}
}

func TestLoadIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anchor.json")
	s := NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := s.SaveGratitude(models.GratitudeEntry{Date: "2024-05-01", Items: []string{"x"}}); err != nil {
		t.Fatalf("SaveGratitude failed: %v", err)
	}

	s2 := NewJSONStore(path)
	if err := s2.Load(); err != nil {
		t.Fatalf("first Load failed: %v", err)
	}
	once, err := s2.AllGratitude()
	if err != nil {
		t.Fatalf("AllGratitude failed: %v", err)
	}

	if err := s2.Load(); err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	twice, err := s2.AllGratitude()
	if err != nil {
		t.Fatalf("AllGratitude failed: %v", err)
	}

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Load is not idempotent: %v vs %v", once, twice)
	}
	chat, err := s2.GetChatHistory()
	if err != nil {
		t.Fatalf("GetChatHistory failed: %v", err)
	}
	if len(chat) != 1 {
		t.Errorf("double Load duplicated the welcome message: %d messages", len(chat))
	}
}

func TestCorruptPayloadStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anchor.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	s := NewJSONStore(path)
	if err := s.Load(); err != nil {
		t.Fatalf("Load on corrupt payload should recover, got error: %v", err)
	}

	entries, err := s.AllGratitude()
	if err != nil {
		t.Fatalf("AllGratitude failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("corrupt store should start empty, got %d entries", len(entries))
	}
}

func TestVerifyReportsCorruptPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anchor.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	s := NewJSONStore(path)
	if err := s.Verify(); err == nil {
		t.Error("Verify on corrupt payload expected error, got nil")
	}

	// Load still recovers; Verify is what reports the damage.
	if err := s.Load(); err != nil {
		t.Fatalf("Load on corrupt payload should recover, got error: %v", err)
	}
}

func TestVerifyHealthyStore(t *testing.T) {
	s := newTestJSONStore(t)
	if err := s.Verify(); err != nil {
		t.Errorf("Verify on fresh store failed: %v", err)
	}

	missing := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := missing.Verify(); err == nil {
		t.Error("Verify on missing file expected error, got nil")
	}
}

func TestChatWelcomeGuarantees(t *testing.T) {
	s := newTestJSONStore(t)

	messages, err := s.GetChatHistory()
	if err != nil {
		t.Fatalf("GetChatHistory failed: %v", err)
	}
	if len(messages) != 1 || messages[0].ID != constants.WelcomeMessageID {
		t.Fatalf("fresh store chat = %+v, want just the welcome message", messages)
	}

	messages = append(messages, models.ChatMessage{
		ID: "m1", Text: "rough day", Sender: models.SenderUser, Timestamp: time.Now(),
	})
	if err := s.SaveChatHistory(messages); err != nil {
		t.Fatalf("SaveChatHistory failed: %v", err)
	}

	// Persisting a history without the welcome message re-inserts it.
	if err := s.SaveChatHistory(messages[1:]); err != nil {
		t.Fatalf("SaveChatHistory failed: %v", err)
	}
	messages, err = s.GetChatHistory()
	if err != nil {
		t.Fatalf("GetChatHistory failed: %v", err)
	}
	if messages[0].ID != constants.WelcomeMessageID {
		t.Errorf("welcome message not re-inserted, first = %+v", messages[0])
	}

	if err := s.ClearChatHistory(); err != nil {
		t.Fatalf("ClearChatHistory failed: %v", err)
	}
	messages, err = s.GetChatHistory()
	if err != nil {
		t.Fatalf("GetChatHistory failed: %v", err)
	}
	want := []models.ChatMessage{models.NewWelcomeMessage()}
	if !reflect.DeepEqual(messages, want) {
		t.Errorf("cleared chat = %+v, want %+v", messages, want)
	}
}

func TestBookmarksSetMembership(t *testing.T) {
	s := newTestJSONStore(t)

	b := models.Bookmark{SectionID: "ch5", Title: "How It Works", URL: "https://example.org/ch5"}
	if err := s.AddBookmark(b); err != nil {
		t.Fatalf("AddBookmark failed: %v", err)
	}
	b.Title = "How It Works (rev)"
	if err := s.AddBookmark(b); err != nil {
		t.Fatalf("AddBookmark failed: %v", err)
	}

	bookmarks, err := s.AllBookmarks()
	if err != nil {
		t.Fatalf("AllBookmarks failed: %v", err)
	}
	if len(bookmarks) != 1 {
		t.Fatalf("duplicate bookmark stored: %d entries", len(bookmarks))
	}
	if bookmarks[0].Title != "How It Works (rev)" {
		t.Errorf("bookmark not replaced: %+v", bookmarks[0])
	}

	if err := s.RemoveBookmark("ch5"); err != nil {
		t.Fatalf("RemoveBookmark failed: %v", err)
	}
	if err := s.RemoveBookmark("ch5"); err == nil {
		t.Error("removing a missing bookmark expected error, got nil")
	}
}

func TestRecentsBoundedMostRecentFirst(t *testing.T) {
	s := newTestJSONStore(t)

	for i := 0; i < constants.MaxRecentSections+3; i++ {
		view := models.RecentView{
			SectionID: string(rune('a' + i)),
			Title:     "Section",
			ViewedAt:  time.Now().Add(time.Duration(i) * time.Minute),
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

	// Re-viewing an old section moves it to the front without duplication.
	if err := s.TouchRecent(models.RecentView{SectionID: recents[3].SectionID, Title: "Section"}); err != nil {
		t.Fatalf("TouchRecent failed: %v", err)
	}
	recents2, err := s.RecentViews()
	if err != nil {
		t.Fatalf("RecentViews failed: %v", err)
	}
	if recents2[0].SectionID != recents[3].SectionID {
		t.Errorf("re-viewed section not first: %+v", recents2[0])
	}
	if len(recents2) != constants.MaxRecentSections {
		t.Errorf("re-view changed recents length to %d", len(recents2))
	}
}

func TestOnboardedFlag(t *testing.T) {
	s := newTestJSONStore(t)

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

func TestNotLoadedGuards(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "anchor.json"))

	if _, err := s.GetGratitude("2024-05-01"); err == nil {
		t.Error("GetGratitude on unloaded store expected error")
	}
	if err := s.SaveGratitude(models.GratitudeEntry{Date: "2024-05-01"}); err == nil {
		t.Error("SaveGratitude on unloaded store expected error")
	}
	if _, err := s.GetChatHistory(); err == nil {
		t.Error("GetChatHistory on unloaded store expected error")
	}
}

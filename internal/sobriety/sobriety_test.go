package sobriety

import (
	"testing"
	"time"

	"anchor/internal/models"
	"anchor/internal/utils"
)

func dayKeyPtr(t time.Time) *string {
	key := utils.DayKey(t)
	return &key
}

func TestDaysSober(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 30, 0, 0, time.Local)

	tests := []struct {
		name     string
		profile  models.SobrietyProfile
		expected int
	}{
		{
			name:     "no date set",
			profile:  models.SobrietyProfile{},
			expected: 0,
		},
		{
			name:     "exactly ten days ago",
			profile:  models.SobrietyProfile{SobrietyDate: dayKeyPtr(now.AddDate(0, 0, -10))},
			expected: 10,
		},
		{
			name:     "today",
			profile:  models.SobrietyProfile{SobrietyDate: dayKeyPtr(now)},
			expected: 0,
		},
		{
			name:     "future date clamps to zero",
			profile:  models.SobrietyProfile{SobrietyDate: dayKeyPtr(now.AddDate(0, 0, 5))},
			expected: 0,
		},
		{
			name: "unparseable date counts as zero",
			profile: models.SobrietyProfile{SobrietyDate: func() *string {
				s := "not-a-date"
				return &s
			}()},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysSober(tt.profile, now); got != tt.expected {
				t.Errorf("DaysSober = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestShouldShowPrompt(t *testing.T) {
	date := "2024-01-01"

	if !ShouldShowPrompt(models.SobrietyProfile{}) {
		t.Error("fresh profile should show the prompt")
	}
	if ShouldShowPrompt(models.SobrietyProfile{HasSeenPrompt: true}) {
		t.Error("dismissed prompt must never show again")
	}
	if ShouldShowPrompt(models.SobrietyProfile{SobrietyDate: &date}) {
		t.Error("a set date suppresses the prompt")
	}
	if ShouldShowPrompt(models.SobrietyProfile{SobrietyDate: &date, HasSeenPrompt: true}) {
		t.Error("date set and prompt seen must not show")
	}
}

// Package insights derives human-readable recovery-progress summaries from
// the stored day records. Everything here is a pure function of its inputs;
// nothing is persisted.
package insights

import (
	"fmt"
	"math/rand"
	"time"

	"anchor/internal/constants"
	"anchor/internal/models"
	"anchor/internal/utils"
)

// DayStatus describes one day of the current week for the progress view.
type DayStatus struct {
	Label     string // short weekday name, e.g. "Sun"
	Date      string // YYYY-MM-DD format
	Completed bool
	IsToday   bool
	IsFuture  bool
}

// WeekProgress maps completion state onto the Sunday-first week containing
// now. completed is keyed by calendar-day key; days outside the week are
// ignored.
func WeekProgress(completed map[string]bool, now time.Time) []DayStatus {
	today := utils.DayKey(now)
	start := utils.StartOfWeek(now)

	week := make([]DayStatus, 0, 7)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		key := utils.DayKey(day)
		week = append(week, DayStatus{
			Label:     day.Weekday().String()[:3],
			Date:      key,
			Completed: completed[key],
			IsToday:   key == today,
			IsFuture:  key > today,
		})
	}
	return week
}

// WeekStreak counts the completed, non-future days of a week. It is at most
// 7 and at most the number of days elapsed since the week started.
func WeekStreak(week []DayStatus) int {
	streak := 0
	for _, day := range week {
		if day.Completed && !day.IsFuture {
			streak++
		}
	}
	return streak
}

// CompletionByDay collapses review entries to a day->completed map for
// WeekProgress.
func CompletionByDay(reviews []models.ReviewEntry) map[string]bool {
	m := make(map[string]bool, len(reviews))
	for _, r := range reviews {
		m[r.Date] = r.Completed
	}
	return m
}

// GratitudeCompletionByDay is CompletionByDay for gratitude entries.
func GratitudeCompletionByDay(entries []models.GratitudeEntry) map[string]bool {
	m := make(map[string]bool, len(entries))
	for _, e := range entries {
		m[e.Date] = e.Completed
	}
	return m
}

// Report summarizes the last 30 days of review and gratitude records.
type Report struct {
	Days          int // qualifying review days in the window
	Counts        map[models.Question]int
	GratitudeDays int
	Spiritual     string
	Emotional     string
	Quote         string
	Enough        bool
}

// quotePool holds the recovery aphorisms shown at the bottom of the report.
// One is chosen per computation and never persisted, so it changes between
// runs.
var quotePool = []string{
	"One day at a time.",
	"Progress, not perfection.",
	"You can't think your way into right action, but you can act your way into right thinking.",
	"First things first.",
	"This too shall pass.",
	"Easy does it.",
	"Keep coming back.",
	"Gratitude turns what we have into enough.",
}

// Summarize builds the 30-day insights report. Records dated within the
// inclusive window [now-30d, now] qualify. When no review records qualify,
// the report is returned with Enough=false and no percentage math is done.
func Summarize(reviews []models.ReviewEntry, gratitude []models.GratitudeEntry, now time.Time) Report {
	lower := utils.DayKey(now.AddDate(0, 0, -constants.InsightsWindowDays))
	upper := utils.DayKey(now)

	report := Report{
		Counts: make(map[models.Question]int, len(models.Questions)),
		Quote:  quotePool[rand.Intn(len(quotePool))],
	}

	for _, r := range reviews {
		if r.Date < lower || r.Date > upper {
			continue
		}
		report.Days++
		for _, q := range models.Questions {
			if r.Answers.Get(q) {
				report.Counts[q]++
			}
		}
	}

	for _, g := range gratitude {
		if g.Date < lower || g.Date > upper {
			continue
		}
		if g.Completed {
			report.GratitudeDays++
		}
	}

	if report.Days == 0 {
		return report
	}

	report.Enough = report.Days >= constants.InsightsMinimumDays
	report.Spiritual = spiritualSummary(report)
	report.Emotional = emotionalSummary(report)
	return report
}

func rate(count, days int) float64 {
	return float64(count) / float64(days)
}

func spiritualSummary(r Report) string {
	prayer := rate(r.Counts[models.QuestionPrayerMeditation], r.Days)
	connection := rate(r.Counts[models.QuestionAATalk], r.Days)

	switch {
	case prayer >= 0.8 && connection >= 0.6:
		return "Your spiritual fitness is strong: prayer or meditation most days, and you're staying connected to others in recovery."
	case prayer >= 0.6:
		return "You're building a steady habit of prayer and meditation. Keep protecting that quiet time."
	case connection >= 0.6:
		return fmt.Sprintf("You've talked with someone in recovery on %d of the last %d days. Consider pairing that with a few quiet minutes each morning.", r.Counts[models.QuestionAATalk], r.Days)
	default:
		return "Spiritual practices have been light lately. Even two quiet minutes a day is a place to start."
	}
}

func emotionalSummary(r Report) string {
	resentful := rate(r.Counts[models.QuestionResentful], r.Days)
	fearful := rate(r.Counts[models.QuestionFearful], r.Days)

	switch {
	case resentful >= 0.6 && fearful >= 0.6:
		return "Resentment and fear have both shown up on most days. That's worth bringing to your sponsor or group this week."
	case resentful >= 0.6:
		return "Resentment has been a frequent visitor. Writing about who and why can loosen its grip."
	case fearful >= 0.6:
		return "Fear has come up often. Naming the fear out loud to someone you trust usually shrinks it."
	default:
		return "Your emotional patterns look steady over the last month. Keep doing what you're doing."
	}
}

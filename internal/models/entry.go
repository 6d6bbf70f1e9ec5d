package models

import "time"

// GratitudeEntry is one day's gratitude list. Items keep their entry order;
// Completed marks the list as finalized for the day.
type GratitudeEntry struct {
	Date      string    `json:"date"` // YYYY-MM-DD format
	Items     []string  `json:"items"`
	Completed bool      `json:"completed"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Question identifies one of the nightly inventory questions.
type Question string

const (
	QuestionResentful        Question = "resentful"
	QuestionSelfish          Question = "selfish"
	QuestionFearful          Question = "fearful"
	QuestionApology          Question = "apology"
	QuestionKindness         Question = "kindness"
	QuestionSpiritual        Question = "spiritual"
	QuestionAATalk           Question = "aa_talk"
	QuestionPrayerMeditation Question = "prayer_meditation"
)

// Questions lists the inventory questions in display order.
var Questions = []Question{
	QuestionResentful,
	QuestionSelfish,
	QuestionFearful,
	QuestionApology,
	QuestionKindness,
	QuestionSpiritual,
	QuestionAATalk,
	QuestionPrayerMeditation,
}

// QuestionPrompts maps each question to the wording shown to the user.
var QuestionPrompts = map[Question]string{
	QuestionResentful:        "Was I resentful today?",
	QuestionSelfish:          "Was I selfish or dishonest today?",
	QuestionFearful:          "Was I afraid today?",
	QuestionApology:          "Do I owe anyone an apology?",
	QuestionKindness:         "Was I kind and loving toward all?",
	QuestionSpiritual:        "Did I think of others and spiritual growth?",
	QuestionAATalk:           "Did I talk with another person in recovery?",
	QuestionPrayerMeditation: "Did I pray or meditate today?",
}

// ReviewAnswers holds the eight nightly inventory answers.
type ReviewAnswers struct {
	Resentful        bool `json:"resentful"`
	Selfish          bool `json:"selfish"`
	Fearful          bool `json:"fearful"`
	Apology          bool `json:"apology"`
	Kindness         bool `json:"kindness"`
	Spiritual        bool `json:"spiritual"`
	AATalk           bool `json:"aa_talk"`
	PrayerMeditation bool `json:"prayer_meditation"`
}

// Get returns the answer for a question key.
func (a ReviewAnswers) Get(q Question) bool {
	switch q {
	case QuestionResentful:
		return a.Resentful
	case QuestionSelfish:
		return a.Selfish
	case QuestionFearful:
		return a.Fearful
	case QuestionApology:
		return a.Apology
	case QuestionKindness:
		return a.Kindness
	case QuestionSpiritual:
		return a.Spiritual
	case QuestionAATalk:
		return a.AATalk
	case QuestionPrayerMeditation:
		return a.PrayerMeditation
	default:
		return false
	}
}

// Set assigns the answer for a question key.
func (a *ReviewAnswers) Set(q Question, v bool) {
	switch q {
	case QuestionResentful:
		a.Resentful = v
	case QuestionSelfish:
		a.Selfish = v
	case QuestionFearful:
		a.Fearful = v
	case QuestionApology:
		a.Apology = v
	case QuestionKindness:
		a.Kindness = v
	case QuestionSpiritual:
		a.Spiritual = v
	case QuestionAATalk:
		a.AATalk = v
	case QuestionPrayerMeditation:
		a.PrayerMeditation = v
	}
}

// ReviewEntry is one day's nightly review. Completed marks the review as
// finalized; uncompleting clears the flag but keeps the answers.
type ReviewEntry struct {
	Date       string        `json:"date"` // YYYY-MM-DD format
	Answers    ReviewAnswers `json:"answers"`
	Reflection string        `json:"reflection,omitempty"`
	Completed  bool          `json:"completed"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

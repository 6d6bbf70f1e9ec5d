package storage

import (
	"encoding/json"
	"strings"

	"anchor/internal/models"
)

// Earlier releases wrote two incompatible review shapes: a six-question set
// keyed emotion/apology/kindness/spiritual/aaTalk/prayer, and answers encoded
// as "yes"/"no" strings instead of booleans. decodeStore normalizes both to
// the canonical eight-question boolean shape the first time such a payload
// is loaded.

type legacyReview struct {
	Date       string                 `json:"date"`
	Answers    map[string]interface{} `json:"answers"`
	Reflection string                 `json:"reflection"`
	Completed  bool                   `json:"completed"`
}

type legacyStore struct {
	Version   int                              `json:"version"`
	Gratitude map[string]models.GratitudeEntry `json:"gratitude"`
	Reviews   map[string]legacyReview          `json:"reviews"`
	Sobriety  models.SobrietyProfile           `json:"sobriety"`
	Chat      []models.ChatMessage             `json:"chat"`
	Bookmarks []models.Bookmark                `json:"bookmarks"`
	Recents   []models.RecentView              `json:"recents"`
	Onboarded bool                             `json:"onboarded"`
}

// legacyQuestionKeys maps every answer key ever written to its canonical
// question. The six-question "emotion" maps onto Resentful, the closest of
// the three emotion questions in the eight-question superset.
var legacyQuestionKeys = map[string]models.Question{
	"emotion":           models.QuestionResentful,
	"resentful":         models.QuestionResentful,
	"selfish":           models.QuestionSelfish,
	"fearful":           models.QuestionFearful,
	"apology":           models.QuestionApology,
	"kindness":          models.QuestionKindness,
	"spiritual":         models.QuestionSpiritual,
	"aaTalk":            models.QuestionAATalk,
	"aa_talk":           models.QuestionAATalk,
	"prayer":            models.QuestionPrayerMeditation,
	"prayerMeditation":  models.QuestionPrayerMeditation,
	"prayer_meditation": models.QuestionPrayerMeditation,
}

// decodeStore parses a serialized store, upgrading legacy payloads. The
// second return reports whether an upgrade was applied and the result should
// be written back.
func decodeStore(data []byte) (*Store, bool, error) {
	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, false, err
	}

	if probe.Version >= storeVersion {
		store := &Store{}
		if err := json.Unmarshal(data, store); err != nil {
			return nil, false, err
		}
		return store, false, nil
	}

	var legacy legacyStore
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, false, err
	}

	store := &Store{
		Version:   storeVersion,
		Gratitude: legacy.Gratitude,
		Reviews:   make(map[string]models.ReviewEntry, len(legacy.Reviews)),
		Sobriety:  legacy.Sobriety,
		Chat:      legacy.Chat,
		Bookmarks: legacy.Bookmarks,
		Recents:   legacy.Recents,
		Onboarded: legacy.Onboarded,
	}

	for date, old := range legacy.Reviews {
		entry := models.ReviewEntry{
			Date:       date,
			Reflection: old.Reflection,
			Completed:  old.Completed,
		}
		for key, value := range old.Answers {
			q, ok := legacyQuestionKeys[key]
			if !ok {
				continue
			}
			if answerTrue(value) {
				entry.Answers.Set(q, true)
			}
		}
		store.Reviews[date] = entry
	}

	return store, true, nil
}

func answerTrue(v interface{}) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return strings.EqualFold(x, "yes") || strings.EqualFold(x, "true")
	default:
		return false
	}
}

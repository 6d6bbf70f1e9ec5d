// Package sobriety computes the sobriety-day counter from the stored
// profile. The counter is derived at call time, never cached.
package sobriety

import (
	"time"

	"anchor/internal/models"
	"anchor/internal/utils"
)

// DaysSober returns the whole days between the profile's sobriety date
// (local midnight) and now, clamped to zero. A future-dated or unparseable
// date counts as zero; an unset date also counts as zero.
func DaysSober(profile models.SobrietyProfile, now time.Time) int {
	if profile.SobrietyDate == nil {
		return 0
	}

	start, err := utils.ParseDayKey(*profile.SobrietyDate)
	if err != nil {
		return 0
	}

	days := int(now.Sub(utils.Midnight(start)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// ShouldShowPrompt reports whether the one-time "set your sobriety date?"
// prompt is due. Setting a date or dismissing the prompt are both terminal:
// afterwards this returns false forever.
func ShouldShowPrompt(profile models.SobrietyProfile) bool {
	return profile.SobrietyDate == nil && !profile.HasSeenPrompt
}

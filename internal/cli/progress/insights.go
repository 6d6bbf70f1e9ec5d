// Package progress holds the 30-day insights command.
package progress

import (
	"fmt"
	"time"

	"anchor/internal/cli"
	"anchor/internal/constants"
	"anchor/internal/insights"
	"anchor/internal/models"
)

type InsightsCmd struct{}

func (c *InsightsCmd) Run(ctx *cli.Context) error {
	reviews, err := ctx.Store.AllReviews()
	if err != nil {
		return err
	}
	gratitude, err := ctx.Store.AllGratitude()
	if err != nil {
		return err
	}

	report := insights.Summarize(reviews, gratitude, time.Now())
	if !report.Enough {
		fmt.Printf("Not enough data yet - complete a few more nightly reviews (%d of %d days).\n",
			report.Days, constants.InsightsMinimumDays)
		return nil
	}

	fmt.Printf("Last %d days - %d review(s), %d completed gratitude list(s)\n\n",
		constants.InsightsWindowDays, report.Days, report.GratitudeDays)

	for _, q := range models.Questions {
		fmt.Printf("  %-45s %d/%d\n", models.QuestionPrompts[q], report.Counts[q], report.Days)
	}

	fmt.Printf("\nSpiritual fitness: %s\n", report.Spiritual)
	fmt.Printf("Emotional patterns: %s\n", report.Emotional)
	fmt.Printf("\n\"%s\"\n", report.Quote)
	return nil
}

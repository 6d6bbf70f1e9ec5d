package review

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"anchor/internal/cli"
	"anchor/internal/insights"
	"anchor/internal/models"
	"anchor/internal/utils"
)

type ReviewCmd struct {
	Fill       FillCmd       `cmd:"" default:"1" help:"Answer tonight's review interactively."`
	Show       ShowCmd       `cmd:"" help:"Show a day's review."`
	Complete   CompleteCmd   `cmd:"" help:"Mark today's review complete."`
	Uncomplete UncompleteCmd `cmd:"" help:"Reopen today's review without losing answers."`
	Week       WeekCmd       `cmd:"" help:"Show this week's review progress."`
}

type FillCmd struct{}

func (c *FillCmd) Run(ctx *cli.Context) error {
	today := utils.Today()
	entry, err := ctx.Store.GetReview(today)
	if err != nil {
		entry = models.ReviewEntry{Date: today}
	}

	// Bind each question to its answer so re-running the form edits the
	// saved draft in place.
	answers := make([]bool, len(models.Questions))
	for i, q := range models.Questions {
		answers[i] = entry.Answers.Get(q)
	}

	var fields []huh.Field
	for i, q := range models.Questions {
		fields = append(fields, huh.NewConfirm().
			Title(models.QuestionPrompts[q]).
			Affirmative("Yes").
			Negative("No").
			Value(&answers[i]))
	}
	fields = append(fields, huh.NewText().
		Title("Anything to reflect on?").
		Value(&entry.Reflection))

	finalize := entry.Completed
	fields = append(fields, huh.NewConfirm().
		Title("Mark tonight's review complete?").
		Value(&finalize))

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return err
	}

	for i, q := range models.Questions {
		entry.Answers.Set(q, answers[i])
	}
	entry.Completed = finalize

	if err := ctx.Store.SaveReview(entry); err != nil {
		return err
	}
	if entry.Completed {
		ctx.PerformAutomaticBackup()
		fmt.Printf("Review for %s completed.\n", today)
	} else {
		fmt.Printf("Draft saved for %s.\n", today)
	}
	return nil
}

type ShowCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	date, err := cli.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	entry, err := ctx.Store.GetReview(date)
	if err != nil {
		fmt.Printf("No review for %s yet.\n", date)
		return nil
	}

	fmt.Printf("Nightly review - %s", date)
	if entry.Completed {
		fmt.Print(" ✓")
	}
	fmt.Println()
	for _, q := range models.Questions {
		answer := "no"
		if entry.Answers.Get(q) {
			answer = "yes"
		}
		fmt.Printf("  %-45s %s\n", models.QuestionPrompts[q], answer)
	}
	if entry.Reflection != "" {
		fmt.Printf("  Reflection: %s\n", entry.Reflection)
	}
	return nil
}

type CompleteCmd struct{}

func (c *CompleteCmd) Run(ctx *cli.Context) error {
	today := utils.Today()
	entry, err := ctx.Store.GetReview(today)
	if err != nil {
		return fmt.Errorf("no review draft for today; run 'anchor review' first")
	}

	entry.Completed = true
	if err := ctx.Store.SaveReview(entry); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("Review for %s completed.\n", today)
	return nil
}

type UncompleteCmd struct{}

func (c *UncompleteCmd) Run(ctx *cli.Context) error {
	today := utils.Today()
	entry, err := ctx.Store.GetReview(today)
	if err != nil {
		return fmt.Errorf("no review for today")
	}

	// Answers survive; only the finalization flag is cleared.
	entry.Completed = false
	if err := ctx.Store.SaveReview(entry); err != nil {
		return err
	}

	fmt.Printf("Review for %s reopened.\n", today)
	return nil
}

type WeekCmd struct{}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.Store.AllReviews()
	if err != nil {
		return err
	}

	week := insights.WeekProgress(insights.CompletionByDay(entries), time.Now())
	fmt.Println(cli.RenderWeek(week))
	fmt.Printf("Streak this week: %d day(s)\n", insights.WeekStreak(week))
	return nil
}

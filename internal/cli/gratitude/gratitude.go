package gratitude

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"anchor/internal/cli"
	"anchor/internal/insights"
	"anchor/internal/models"
	"anchor/internal/utils"
)

type GratitudeCmd struct {
	Add      AddCmd      `cmd:"" help:"Add items to today's gratitude list."`
	List     ListCmd     `cmd:"" default:"1" help:"Show a day's gratitude list."`
	Complete CompleteCmd `cmd:"" help:"Finalize today's gratitude list."`
	Week     WeekCmd     `cmd:"" help:"Show this week's gratitude progress."`
}

type AddCmd struct {
	Items []string `arg:"" optional:"" help:"Things you're grateful for. Omit to enter interactively."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	items := c.Items
	if len(items) == 0 {
		var text string
		form := huh.NewForm(huh.NewGroup(
			huh.NewText().
				Title("What are you grateful for today?").
				Description("One item per line.").
				Value(&text),
		))
		if err := form.Run(); err != nil {
			return err
		}
		for _, line := range strings.Split(text, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				items = append(items, line)
			}
		}
	}
	if len(items) == 0 {
		return fmt.Errorf("nothing to add")
	}

	today := utils.Today()
	entry, err := ctx.Store.GetGratitude(today)
	if err != nil {
		entry = models.GratitudeEntry{Date: today}
	}
	entry.Items = append(entry.Items, items...)

	if err := ctx.Store.SaveGratitude(entry); err != nil {
		return err
	}

	fmt.Printf("Added %d item(s). Today's list has %d.\n", len(items), len(entry.Items))
	return nil
}

type ListCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	date, err := cli.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	entry, err := ctx.Store.GetGratitude(date)
	if err != nil {
		fmt.Printf("No gratitude list for %s yet.\n", date)
		return nil
	}

	fmt.Printf("Gratitude - %s", date)
	if entry.Completed {
		fmt.Print(" ✓")
	}
	fmt.Println()
	for i, item := range entry.Items {
		fmt.Printf("  %d. %s\n", i+1, item)
	}
	return nil
}

type CompleteCmd struct {
	Items []string `arg:"" optional:"" help:"Final item list; replaces the day's items when given."`
}

func (c *CompleteCmd) Run(ctx *cli.Context) error {
	today := utils.Today()
	entry, err := ctx.Store.GetGratitude(today)
	if err != nil {
		entry = models.GratitudeEntry{Date: today}
	}

	if len(c.Items) > 0 {
		entry.Items = c.Items
	}
	if len(entry.Items) == 0 {
		return fmt.Errorf("today's list is empty; add something first")
	}
	entry.Completed = true

	if err := ctx.Store.SaveGratitude(entry); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("Gratitude list for %s completed with %d item(s).\n", today, len(entry.Items))
	return nil
}

type WeekCmd struct{}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.Store.AllGratitude()
	if err != nil {
		return err
	}

	week := insights.WeekProgress(insights.GratitudeCompletionByDay(entries), time.Now())
	fmt.Println(cli.RenderWeek(week))
	fmt.Printf("Streak this week: %d day(s)\n", insights.WeekStreak(week))
	return nil
}

// Package counter holds the sobriety-day counter commands.
package counter

import (
	"fmt"
	"time"

	"anchor/internal/cli"
	"anchor/internal/sobriety"
	"anchor/internal/utils"
)

type SobrietyCmd struct {
	Days  DaysCmd  `cmd:"" default:"1" help:"Show how many days sober."`
	Set   SetCmd   `cmd:"" help:"Set your sobriety date."`
	Reset ResetCmd `cmd:"" help:"Clear the stored sobriety date."`
}

type DaysCmd struct{}

func (c *DaysCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Store.GetSobriety()
	if err != nil {
		return err
	}

	if profile.SobrietyDate == nil {
		fmt.Println("No sobriety date set. Use 'anchor sobriety set YYYY-MM-DD'.")
		return nil
	}

	days := sobriety.DaysSober(profile, time.Now())
	fmt.Printf("%d day(s) sober since %s.\n", days, *profile.SobrietyDate)
	return nil
}

type SetCmd struct {
	Date string `arg:"" help:"Sobriety date in YYYY-MM-DD format."`
}

func (c *SetCmd) Run(ctx *cli.Context) error {
	day, err := utils.ParseDayKey(c.Date)
	if err != nil {
		return err
	}
	key := utils.DayKey(day)

	profile, err := ctx.Store.GetSobriety()
	if err != nil {
		return err
	}
	profile.SobrietyDate = &key
	profile.HasSeenPrompt = true

	if err := ctx.Store.SaveSobriety(profile); err != nil {
		return err
	}

	fmt.Printf("Sobriety date set to %s - %d day(s) and counting.\n",
		key, sobriety.DaysSober(profile, time.Now()))
	return nil
}

type ResetCmd struct{}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Store.GetSobriety()
	if err != nil {
		return err
	}

	// The prompt stays dismissed: clearing the date is an explicit choice,
	// not a reason to nag again.
	profile.SobrietyDate = nil

	if err := ctx.Store.SaveSobriety(profile); err != nil {
		return err
	}

	fmt.Println("Sobriety date cleared.")
	return nil
}

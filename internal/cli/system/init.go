package system

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"

	"anchor/internal/cli"
	"anchor/internal/sobriety"
	"anchor/internal/utils"
)

type InitCmd struct {
	Force bool `help:"Overwrite existing storage." default:"false"`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := os.Remove(ctx.Store.GetConfigPath()); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove existing storage: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	fmt.Printf("Initialized storage at %s\n", ctx.Store.GetConfigPath())

	profile, err := ctx.Store.GetSobriety()
	if err != nil {
		return err
	}

	// One-time sobriety date prompt. Answering or declining both mark the
	// prompt as seen, so it never comes back.
	if sobriety.ShouldShowPrompt(profile) {
		wantsDate := false
		if err := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Would you like to set your sobriety date?").
				Description("You can always do this later with 'anchor sobriety set'.").
				Value(&wantsDate),
		)).Run(); err != nil {
			return err
		}

		profile.HasSeenPrompt = true
		if wantsDate {
			var dateInput string
			if err := huh.NewForm(huh.NewGroup(
				huh.NewInput().
					Title("Sobriety date (YYYY-MM-DD)").
					Validate(func(s string) error {
						_, err := utils.ParseDayKey(s)
						return err
					}).
					Value(&dateInput),
			)).Run(); err != nil {
				return err
			}
			day, err := utils.ParseDayKey(dateInput)
			if err != nil {
				return err
			}
			key := utils.DayKey(day)
			profile.SobrietyDate = &key
		}

		if err := ctx.Store.SaveSobriety(profile); err != nil {
			return err
		}
	}

	if err := ctx.Store.SetOnboarded(true); err != nil {
		return err
	}

	if profile.SobrietyDate != nil {
		fmt.Printf("Welcome. You have %d day(s), one day at a time.\n",
			sobriety.DaysSober(profile, time.Now()))
	} else {
		fmt.Println("Welcome. Run 'anchor' anytime you need it.")
	}
	return nil
}

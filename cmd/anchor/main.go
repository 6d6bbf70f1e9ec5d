package main

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"anchor/internal/cli"
	"anchor/internal/cli/backups"
	"anchor/internal/cli/companion"
	"anchor/internal/cli/counter"
	"anchor/internal/cli/gratitude"
	"anchor/internal/cli/progress"
	"anchor/internal/cli/readings"
	"anchor/internal/cli/review"
	"anchor/internal/cli/system"
	"anchor/internal/constants"
	"anchor/internal/errors"
	"anchor/internal/logger"
	"anchor/internal/reflection"
	"anchor/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path. Use a .json extension for plain JSON storage." type:"path" default:"~/.config/anchor/anchor.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init       system.InitCmd         `cmd:"" help:"Initialize anchor storage."`
	Doctor     system.DoctorCmd       `cmd:"" help:"Run health checks and diagnostics."`
	Gratitude  gratitude.GratitudeCmd `cmd:"" help:"Keep a daily gratitude list."`
	Review     review.ReviewCmd       `cmd:"" help:"Fill and browse nightly reviews."`
	Sobriety   counter.SobrietyCmd    `cmd:"" help:"Track days sober."`
	Insights   progress.InsightsCmd   `cmd:"" help:"Summarize the last 30 days."`
	Reflection readings.ReflectionCmd `cmd:"" help:"Show the reflection of the day."`
	Lit        readings.LitCmd        `cmd:"" help:"Browse recovery literature."`
	Chat       struct {
		Session companion.SessionCmd `cmd:"" help:"Start a companion chat session." default:"1"`
		Clear   companion.ClearCmd   `cmd:"" help:"Delete the saved chat history."`
	} `cmd:"" help:"Talk with the recovery companion."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage storage backups."`
	Keyring struct {
		SetAPIKey    system.KeyringSetCmd    `cmd:"" name:"set-api-key" help:"Store the chat API key in the OS keyring."`
		DeleteAPIKey system.KeyringDeleteCmd `cmd:"" name:"delete-api-key" help:"Remove the chat API key from the OS keyring."`
	} `cmd:"" help:"Manage stored credentials."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Local-first recovery companion"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"reflection_url": reflection.DefaultBaseURL,
			"chat_model":     constants.DefaultChatModel,
		},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		errors.Fatal(err)
	}

	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store: store,
		Debug: CLI.Debug,
	}

	// init loads the store itself after creating it, and doctor reports
	// load failures as findings instead of aborting on them.
	selected := ""
	if ctx.Selected() != nil {
		selected = ctx.Selected().Name
	}
	if selected != "init" && selected != "doctor" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	errors.Fatal(ctx.Run(appCtx))
}

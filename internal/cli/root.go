package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"anchor/internal/backup"
	"anchor/internal/insights"
	"anchor/internal/logger"
	"anchor/internal/storage"
	"anchor/internal/utils"
)

type Context struct {
	Store storage.Provider
	Debug bool
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveDate validates a --date flag value, defaulting to today when empty.
func ResolveDate(flag string) (string, error) {
	if flag == "" {
		return utils.Today(), nil
	}
	day, err := utils.ParseDayKey(flag)
	if err != nil {
		return "", err
	}
	return utils.DayKey(day), nil
}

var (
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	todayStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	futureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderWeek formats a weekly progress row, e.g. "Sun ● Mon ○ ...".
func RenderWeek(week []insights.DayStatus) string {
	var parts []string
	for _, day := range week {
		mark := "○"
		if day.Completed {
			mark = "●"
		}

		cell := fmt.Sprintf("%s %s", day.Label, mark)
		switch {
		case day.IsToday:
			cell = todayStyle.Render(cell)
		case day.IsFuture:
			cell = futureStyle.Render(cell)
		case day.Completed:
			cell = doneStyle.Render(cell)
		}
		parts = append(parts, cell)
	}
	return strings.Join(parts, "  ")
}

package constants

const (
	AppName            = "anchor"
	DefaultKeyringUser = "chat-api-key"
	DefaultConfigPath  = "~/.config/anchor/anchor.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Insights constants
	InsightsWindowDays  = 30
	InsightsMinimumDays = 7

	// Literature browser constants
	MaxRecentSections = 10

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "anchor-"
	BackupFileSuffix = ".db"
)

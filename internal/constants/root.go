package constants

import "time"

// Frequency represents how often a habit, routine, or task recurs
type Frequency string

// Phase represents the current pomodoro phase
type Phase string

const (
	AppName            = "tempo"
	DefaultKeyringUser = "database-connection"
	IdentityKeyringKey = "current-identity"
	DefaultConfigPath  = "~/.config/tempo/tempo.db"
	Version            = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Frequency constants
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"

	// Habit progress bounds
	HabitProgressMin      = 0
	HabitProgressMax      = 100
	HabitProgressComplete = 100

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "tempo-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.tempo"

	// Pomodoro defaults (minutes, except the cycle count)
	DefaultWorkMin               = 25
	DefaultBreakMin              = 5
	DefaultLongBreakMin          = 15
	DefaultCyclesBeforeLongBreak = 4

	// Pomodoro phase constants
	PhaseWork      Phase = "work"
	PhaseBreak     Phase = "break"
	PhaseLongBreak Phase = "longBreak"

	// Pomodoro setting bounds
	WorkMinMax      = 60
	BreakMinMax     = 30
	LongBreakMinMax = 60
	CyclesMax       = 10
)

// ValidFrequency reports whether f is one of the supported recurrence
// frequencies. The empty string is not valid; callers that treat frequency
// as optional must check for it themselves.
func ValidFrequency(f Frequency) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

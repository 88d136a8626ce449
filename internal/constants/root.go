package constants

import "time"

type TaskStatus string

type TaskSource string

type ProfileSource string

type LogAction string

type Author string

type ChatRole string

const (
	AppName            = "sisy"
	DefaultKeyringUser = "database-connection"
	AgentKeyringUser   = "agent-token"
	DefaultConfigPath  = "~/.config/sisy/sisy.db"
	DefaultSettingsDir = "~/.config/sisy"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Storage keys
	StateKey     = "sisy_state"
	InstallIDKey = "install_id"

	// Tick
	DefaultTickInterval = 60 * time.Second

	// Agent
	DefaultAgentURL     = "http://127.0.0.1:8000"
	DefaultAgentTimeout = 30 * time.Second
	DefaultChatTab      = "home"
	InstallIDHeader     = "X-Sisy-Install-Id"

	// Notify constants
	NotifierLockfileName   = "sisy-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.sisy"

	// Repeat interval applied when a routine item or task carries none
	DefaultRepeatInterval = 1
	DefaultRoutineTitle   = "Untitled"

	// Profile groups
	DefaultProfileGroup = "Other"
	SeedProfileGroup    = "Basics"

	// Task statuses
	TaskStatusTodo TaskStatus = "todo"
	TaskStatusDone TaskStatus = "done"

	// Task sources
	TaskSourceRoutine TaskSource = "routine"
	TaskSourceChat    TaskSource = "chat"
	TaskSourceSystem  TaskSource = "system"

	// Profile field sources
	ProfileSourceUser    ProfileSource = "user"
	ProfileSourceLearned ProfileSource = "learned"

	// Log related actions
	LogTaskComplete   LogAction = "task_complete"
	LogTaskSkip       LogAction = "task_skip"
	LogTaskReschedule LogAction = "task_reschedule"
	LogStateUpdate    LogAction = "state_update"

	// Log authors
	AuthorUser      Author = "user"
	AuthorAssistant Author = "assistant"

	// Chat roles
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// SeedProfileKeys are the empty profile fields created on first run.
var SeedProfileKeys = []string{"name", "occupation"}

// Tray companion app
const (
	TrayExecutablePrefix = "sisy-tray"
	TraySecretHeader     = "X-Sisy-Secret"
)

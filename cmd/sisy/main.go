package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/sisy/internal/cli"
	"github.com/julianstephens/sisy/internal/cli/chat"
	"github.com/julianstephens/sisy/internal/cli/profile"
	"github.com/julianstephens/sisy/internal/cli/routine"
	"github.com/julianstephens/sisy/internal/cli/system"
	"github.com/julianstephens/sisy/internal/cli/tasks"
	"github.com/julianstephens/sisy/internal/config"
	"github.com/julianstephens/sisy/internal/constants"
	apperrors "github.com/julianstephens/sisy/internal/errors"
	"github.com/julianstephens/sisy/internal/logger"
	"github.com/julianstephens/sisy/internal/notifier"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Store path (.db or .json) or PostgreSQL connection string. Credentials must NOT be embedded; use .pgpass or 'sisy keyring set'. Defaults to the keyring entry, then ~/.config/sisy/sisy.db." type:"string"`
	Settings string `help:"Directory holding config.yaml and logs." type:"string" default:"~/.config/sisy"`
	Debug    bool   `help:"Enable debug logging."`

	Init     system.InitCmd     `cmd:"" help:"Initialize sisy storage."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Now      cli.NowCmd         `cmd:"" help:"Show the task in focus."`
	Timeline cli.TimelineCmd    `cmd:"" help:"Show today's timeline."`
	Tick     cli.TickCmd        `cmd:"" help:"Generate due tasks once."`
	Watch    cli.WatchCmd       `cmd:"" help:"Keep generating tasks and notify on focus changes."`
	Validate system.ValidateCmd `cmd:"" help:"Validate routine, tasks and profile."`
	Chat     chat.ChatCmd       `cmd:"" help:"Send a message to the assistant."`
	History  chat.HistoryCmd    `cmd:"" help:"Show chat history."`
	Log      chat.LogListCmd    `cmd:"" help:"Show the activity log."`
	Backup   struct {
		Create  system.BackupCreateCmd  `cmd:"" help:"Snapshot the local store." default:"1"`
		List    system.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore system.BackupRestoreCmd `cmd:"" help:"Restore the local store from a backup."`
	} `cmd:"" help:"Manage local store backups."`
	Task struct {
		List       tasks.TaskListCmd       `cmd:"" help:"List today's tasks." default:"1"`
		Add        tasks.TaskAddCmd        `cmd:"" help:"Add a one-off task."`
		Complete   tasks.TaskCompleteCmd   `cmd:"" help:"Mark a task done."`
		Skip       tasks.TaskSkipCmd       `cmd:"" help:"Skip a task to its next occurrence."`
		Reschedule tasks.TaskRescheduleCmd `cmd:"" help:"Move a task to another time."`
		Delete     tasks.TaskDeleteCmd     `cmd:"" help:"Delete a task."`
	} `cmd:"" help:"Manage tasks."`
	Routine struct {
		List   routine.RoutineListCmd   `cmd:"" help:"List routine items." default:"1"`
		Add    routine.RoutineAddCmd    `cmd:"" help:"Add a routine item."`
		Edit   routine.RoutineEditCmd   `cmd:"" help:"Edit a routine item."`
		Revert routine.RoutineRevertCmd `cmd:"" help:"Restore a routine item's previous description."`
		Delete routine.RoutineDeleteCmd `cmd:"" help:"Delete a routine item."`
		Import routine.RoutineImportCmd `cmd:"" help:"Replace the routine from a JSON file."`
	} `cmd:"" help:"Manage the daily routine."`
	Profile struct {
		List   profile.ProfileListCmd   `cmd:"" help:"List profile fields." default:"1"`
		Set    profile.ProfileSetCmd    `cmd:"" help:"Set a profile field."`
		Revert profile.ProfileRevertCmd `cmd:"" help:"Restore a profile field's previous value."`
		Delete profile.ProfileDeleteCmd `cmd:"" help:"Delete a profile field."`
		Import profile.ProfileImportCmd `cmd:"" help:"Replace the profile from a JSON file."`
	} `cmd:"" help:"Manage the user profile."`
	Highlights struct {
		List  chat.HighlightsListCmd  `cmd:"" help:"List highlighted items." default:"1"`
		Clear chat.HighlightsClearCmd `cmd:"" help:"Clear one or all highlights."`
	} `cmd:"" help:"Manage assistant highlights."`
	ConfigCmd struct {
		Show system.ConfigShowCmd `cmd:"" help:"Show the effective configuration." default:"1"`
		Set  system.ConfigSetCmd  `cmd:"" help:"Set a configuration value."`
	} `cmd:"" name:"config" help:"Manage configuration."`
	Keyring struct {
		Set         system.KeyringSetCmd         `cmd:"" help:"Store the PostgreSQL connection string."`
		Get         system.KeyringGetCmd         `cmd:"" help:"Show the stored connection string (masked)."`
		Delete      system.KeyringDeleteCmd      `cmd:"" help:"Delete the stored connection string."`
		SetToken    system.KeyringSetTokenCmd    `cmd:"" name:"set-token" help:"Store the agent API token."`
		DeleteToken system.KeyringDeleteTokenCmd `cmd:"" name:"delete-token" help:"Delete the agent API token."`
		Status      system.KeyringStatusCmd      `cmd:"" help:"Check keyring availability."`
	} `cmd:"" help:"Manage credentials in the OS keyring."`
}

// Commands that must run without an opened service.
var standalone = []string{"init", "doctor", "backup", "config", "keyring"}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("sisy"),
		kong.Description("Routine-driven day companion with a chat assistant"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	settingsDir, err := cli.ExpandHome(CLI.Settings)
	if err != nil {
		apperrors.Fatal(err)
	}
	cfg, err := config.Load(settingsDir)
	if err != nil {
		apperrors.Fatal(err)
	}

	command := ctx.Command()
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: settingsDir,
		Level:     cfg.LogLevel,
		FileOnly:  command == "tui",
	}); err != nil {
		apperrors.Fatal(err)
	}
	logger.Debug("Starting sisy", "command", command, "version", constants.Version)

	store, err := cli.OpenStore(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store:     store,
		Config:    cfg,
		ConfigDir: settingsDir,
		Notifier:  notifier.New(),
	}

	if !isStandalone(command) {
		if err := appCtx.Open(); err != nil {
			store.Close()
			apperrors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

func isStandalone(command string) bool {
	root, _, _ := strings.Cut(command, " ")
	for _, name := range standalone {
		if root == name {
			return true
		}
	}
	return false
}

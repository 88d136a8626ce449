package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/sisy/internal/agent"
	"github.com/julianstephens/sisy/internal/config"
	"github.com/julianstephens/sisy/internal/constants"
	apperrors "github.com/julianstephens/sisy/internal/errors"
	"github.com/julianstephens/sisy/internal/identity"
	"github.com/julianstephens/sisy/internal/keyring"
	"github.com/julianstephens/sisy/internal/logger"
	"github.com/julianstephens/sisy/internal/models"
	"github.com/julianstephens/sisy/internal/notifier"
	"github.com/julianstephens/sisy/internal/service"
	"github.com/julianstephens/sisy/internal/storage"
	"github.com/julianstephens/sisy/internal/storage/postgres"
	"github.com/julianstephens/sisy/internal/storage/sqlite"
	"github.com/julianstephens/sisy/internal/utils"
)

type Context struct {
	Store     storage.Provider
	Config    config.Config
	ConfigDir string

	// Set by Open.
	Service *service.Service
	Agent   *agent.Client

	// Notifier delivers watch notifications; nil disables them.
	Notifier notifier.Sender
}

// OpenStore selects the storage backend for path: a PostgreSQL URL, a .json file,
// or a SQLite database. An empty path falls back to the connection string kept in
// the OS keyring, then to the default SQLite location.
func OpenStore(path string) (storage.Provider, error) {
	if path == "" {
		if connStr, err := keyring.GetConnectionString(); err == nil {
			path = connStr
		} else {
			path = constants.DefaultConfigPath
		}
	}

	if storage.IsPostgresURL(path) || strings.Contains(path, "host=") {
		if err := postgres.ValidateConnString(path); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w: store the connection string with 'sisy keyring set' or use .pgpass", err)
			}
			return nil, err
		}
		return postgres.New(path), nil
	}

	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(expanded), ".json") {
		return storage.NewJSONStore(expanded), nil
	}
	return sqlite.NewStore(expanded), nil
}

// ExpandHome resolves a leading ~ to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Open loads the store and builds the agent client and service on top of it.
// Commands other than init and doctor run after Open.
func (c *Context) Open() error {
	if c.Service != nil {
		return nil
	}
	if err := c.Store.Load(); err != nil {
		return err
	}

	installID, err := identity.Ensure(c.Store)
	if err != nil {
		return err
	}
	token, err := keyring.GetAgentToken()
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("Agent token unavailable", "error", err)
	}

	c.Agent = agent.New(agent.Options{
		BaseURL:   c.Config.AgentURL,
		Timeout:   c.Config.AgentTimeout,
		InstallID: installID,
		Token:     token,
	})
	svc, err := service.New(service.Options{Store: c.Store, Agent: c.Agent})
	if err != nil {
		return err
	}
	c.Service = svc
	return nil
}

// ParseWhen parses a user-supplied time: "" for anytime, HH:MM for today, or
// "YYYY-MM-DD HH:MM". Times are local.
func ParseWhen(s string, now time.Time) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "anytime" {
		return nil, nil
	}
	if utils.ValidateTimeFormat(s) {
		return utils.ComposeOnDate(&s, now), nil
	}
	t, err := time.ParseInLocation(constants.DateFormat+" "+constants.TimeFormat, s, now.Location())
	if err != nil {
		return nil, apperrors.Validation("invalid time %q: use HH:MM or YYYY-MM-DD HH:MM", s)
	}
	return &t, nil
}

// FormatTask renders a task as one list line.
func FormatTask(task models.Task) string {
	mark := " "
	if task.IsDone() {
		mark = "x"
	}
	when := "anytime"
	if task.ScheduledTime != nil {
		local := task.ScheduledTime.Local()
		when = utils.FormatDate(local) + " " + utils.FormatClock(local)
	}
	line := fmt.Sprintf("[%s] %-16s %s", mark, when, task.Title)
	if task.AutoComplete {
		line += " (auto)"
	}
	return line + fmt.Sprintf("  (ID: %s)", task.ID)
}

// FormatRoutineItem renders a routine item as one list line.
func FormatRoutineItem(item models.RoutineItem) string {
	when := "anytime"
	if item.Time != nil {
		when = *item.Time
	}
	repeat := "daily"
	if item.Interval() > 1 {
		repeat = fmt.Sprintf("every %d days", item.Interval())
	}
	line := fmt.Sprintf("%-7s %s (%s", when, item.Title, repeat)
	if item.AutoComplete {
		line += ", auto"
	}
	return line + fmt.Sprintf(")  (ID: %s)", item.ID)
}

// ReadInput reads path, or stdin when path is "-".
func ReadInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// Optional returns nil for an empty string.
func Optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package system

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/sisy/internal/backup"
	"github.com/julianstephens/sisy/internal/cli"
	"github.com/julianstephens/sisy/internal/storage"
	"github.com/julianstephens/sisy/internal/storage/sqlite"
)

var errBackupUnsupported = errors.New("backups are only supported for SQLite stores")

func backupManager(store storage.Provider) (*backup.Manager, error) {
	if _, ok := store.(*sqlite.Store); !ok {
		return nil, errBackupUnsupported
	}
	return backup.NewManager(store.GetConfigPath()), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := backupManager(ctx.Store)
	if err != nil {
		return err
	}
	path, err := mgr.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	fmt.Printf("✓ Backup created: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := backupManager(ctx.Store)
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		fmt.Printf("Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	fmt.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), backup.Keep)
	for _, b := range backups {
		fmt.Printf("  %s  %s  (%.1f KB)\n",
			b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), float64(b.Size)/1024.0)
	}
	fmt.Printf("\nBackup directory: %s\n", mgr.Dir())
	return nil
}

type BackupRestoreCmd struct {
	File string `arg:"" help:"Path or filename of the backup to restore."`
	Yes  bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := backupManager(ctx.Store)
	if err != nil {
		return err
	}

	path := c.File
	if _, err := os.Stat(path); err != nil {
		if filepath.IsAbs(path) {
			return fmt.Errorf("backup file not found: %s", path)
		}
		path = filepath.Join(mgr.Dir(), c.File)
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("backup file not found: tried current directory and %s", mgr.Dir())
		}
	}

	if !c.Yes {
		fmt.Println("⚠️  WARNING: This will replace your current store with the backup.")
		fmt.Println("⚠️  Stop every other sisy process (including the TUI and watch) first.")
		fmt.Printf("\nRestore from: %s\n", path)
		fmt.Print("Continue? [y/N]: ")

		response, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close store: %v\n", err)
	}
	previous, err := mgr.Restore(path)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	if previous != "" {
		fmt.Printf("Created backup of current store: %s\n", filepath.Base(previous))
	}
	fmt.Printf("✓ Restored from %s\n", filepath.Base(path))
	return nil
}

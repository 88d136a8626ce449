package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/sisy/internal/cli"
	"github.com/julianstephens/sisy/internal/keyring"
	"github.com/julianstephens/sisy/internal/storage"
	"github.com/julianstephens/sisy/internal/storage/postgres"
)

// KeyringSetCmd stores the PostgreSQL connection string in the OS keyring.
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring"`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if !storage.IsPostgresURL(cmd.ConnectionString) && !strings.Contains(cmd.ConnectionString, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		fmt.Println("⚠️  Warning: Connection string contains embedded credentials.")
		fmt.Println("   It will be stored as-is in the encrypted OS keyring.")
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}
	fmt.Println("✓ Connection string stored successfully in OS keyring")
	fmt.Println("  sisy will use it when --config is not given")
	return nil
}

type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring. Use 'sisy keyring set' to store one")
		}
		return fmt.Errorf("failed to retrieve connection string from keyring: %w", err)
	}
	fmt.Println("Connection string retrieved from keyring:")
	fmt.Println(maskPassword(connStr))
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	fmt.Println("✓ Connection string deleted from OS keyring")
	return nil
}

// KeyringSetTokenCmd stores the bearer token sent to the chat agent.
type KeyringSetTokenCmd struct {
	Token string `arg:"" help:"Agent API token."`
}

func (cmd *KeyringSetTokenCmd) Run(ctx *cli.Context) error {
	token := strings.TrimSpace(cmd.Token)
	if token == "" {
		return errors.New("token must not be empty")
	}
	if err := keyring.SetAgentToken(token); err != nil {
		return fmt.Errorf("failed to store agent token in keyring: %w", err)
	}
	fmt.Println("✓ Agent token stored successfully in OS keyring")
	return nil
}

type KeyringDeleteTokenCmd struct{}

func (cmd *KeyringDeleteTokenCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteAgentToken(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no agent token found in keyring")
		}
		return fmt.Errorf("failed to delete agent token from keyring: %w", err)
	}
	fmt.Println("✓ Agent token deleted from OS keyring")
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	fmt.Println("✓ OS keyring is available")
	report := func(what string, err error) {
		switch {
		case err == nil:
			fmt.Printf("✓ %s is stored in keyring\n", what)
		case errors.Is(err, keyring.ErrNotFound):
			fmt.Printf("ℹ No %s stored in keyring\n", strings.ToLower(what))
		default:
			fmt.Printf("⚠ %s: %v\n", what, err)
		}
	}
	_, err := keyring.GetConnectionString()
	report("Connection string", err)
	_, err = keyring.GetAgentToken()
	report("Agent token", err)
	return nil
}

// maskPassword hides passwords in URL and DSN connection strings.
func maskPassword(connStr string) string {
	if storage.IsPostgresURL(connStr) {
		if idx := strings.Index(connStr, "://"); idx != -1 {
			remaining := connStr[idx+3:]
			if atIdx := strings.LastIndex(remaining, "@"); atIdx != -1 {
				userInfo := remaining[:atIdx]
				if colonIdx := strings.Index(userInfo, ":"); colonIdx != -1 {
					return connStr[:idx+3] + userInfo[:colonIdx] + ":****" + connStr[idx+3+atIdx:]
				}
			}
		}
	}

	if strings.Contains(connStr, "password=") {
		parts := strings.Fields(connStr)
		for i, part := range parts {
			if strings.HasPrefix(part, "password=") {
				parts[i] = "password=****"
			}
		}
		return strings.Join(parts, " ")
	}
	return connStr
}

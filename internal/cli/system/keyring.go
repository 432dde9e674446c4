package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reeltok/reeltok/internal/cli"
	"github.com/reeltok/reeltok/internal/keyring"
	"github.com/reeltok/reeltok/internal/storage/postgres"
)

type KeyringCmd struct {
	SetConnection    KeyringSetConnectionCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	DeleteConnection KeyringDeleteConnectionCmd `cmd:"" help:"Remove the stored PostgreSQL connection string."`
	SetAPIKey        KeyringSetAPIKeyCmd        `cmd:"" name:"set-api-key" help:"Store the generation service API key in the OS keyring."`
	DeleteAPIKey     KeyringDeleteAPIKeyCmd     `cmd:"" name:"delete-api-key" help:"Remove the stored generation service API key."`
	Status           KeyringStatusCmd           `cmd:"" help:"Check the OS keyring and what is stored in it." default:"1"`
}

// KeyringSetConnectionCmd stores database connection credentials in the OS keyring
type KeyringSetConnectionCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring"`
}

func (cmd *KeyringSetConnectionCmd) Run(ctx *cli.Context) error {
	if !strings.HasPrefix(cmd.ConnectionString, "postgres://") &&
		!strings.HasPrefix(cmd.ConnectionString, "postgresql://") &&
		!strings.Contains(cmd.ConnectionString, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	_, err := postgres.ValidateConnString(cmd.ConnectionString)
	if err != nil {
		if errors.Is(err, postgres.ErrEmbeddedCredentials) {
			fmt.Println("⚠️  Warning: Connection string contains embedded credentials.")
			fmt.Println("   It will be stored as-is in the encrypted OS keyring.")
		} else {
			return fmt.Errorf("invalid connection string: %w", err)
		}
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return err
	}

	fmt.Println("✓ Connection string stored successfully in OS keyring")
	fmt.Println("  Use --config keyring to connect with it")
	return nil
}

type KeyringDeleteConnectionCmd struct{}

func (cmd *KeyringDeleteConnectionCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}
	fmt.Println("✓ Connection string deleted from OS keyring")
	return nil
}

type KeyringSetAPIKeyCmd struct {
	Key string `arg:"" help:"API key sent as a bearer token to the generation service."`
}

func (cmd *KeyringSetAPIKeyCmd) Run(ctx *cli.Context) error {
	if err := keyring.SetAPIKey(strings.TrimSpace(cmd.Key)); err != nil {
		return err
	}
	fmt.Println("✓ Generation API key stored in OS keyring")
	return nil
}

type KeyringDeleteAPIKeyCmd struct{}

func (cmd *KeyringDeleteAPIKeyCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key found in keyring")
		}
		return err
	}
	fmt.Println("✓ Generation API key deleted from OS keyring")
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	fmt.Println("✓ OS keyring is available")

	if connStr, err := keyring.GetConnectionString(); err == nil {
		fmt.Printf("✓ Connection string is stored: %s\n", maskPassword(connStr))
	} else if errors.Is(err, keyring.ErrNotFound) {
		fmt.Println("ℹ No connection string stored in keyring")
	}

	if _, err := keyring.GetAPIKey(); err == nil {
		fmt.Println("✓ Generation API key is stored")
	} else if errors.Is(err, keyring.ErrNotFound) {
		fmt.Println("ℹ No generation API key stored in keyring")
	}
	return nil
}

// maskPassword masks passwords in connection strings for display
func maskPassword(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
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

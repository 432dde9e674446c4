package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/reeltok/reeltok/internal/backup"
	"github.com/reeltok/reeltok/internal/clock"
	"github.com/reeltok/reeltok/internal/generation"
	"github.com/reeltok/reeltok/internal/keyring"
	"github.com/reeltok/reeltok/internal/logger"
	"github.com/reeltok/reeltok/internal/media"
	"github.com/reeltok/reeltok/internal/models"
	"github.com/reeltok/reeltok/internal/scheduler"
	"github.com/reeltok/reeltok/internal/storage"
	"github.com/reeltok/reeltok/internal/storage/postgres"
	"github.com/reeltok/reeltok/internal/storage/sqlite"
	"github.com/reeltok/reeltok/internal/utils"
)

// KeyringConfig is the --config value that reads the PostgreSQL
// connection string from the OS keyring.
const KeyringConfig = "keyring"

type Context struct {
	Store    storage.Provider
	Resolver *scheduler.Resolver
	Clock    *clock.Overridable
	Settings models.Settings
	Location *time.Location
}

// OpenStore picks the storage backend for a --config value: "keyring",
// a PostgreSQL URL or DSN, or a SQLite file path.
func OpenStore(config string) (storage.Provider, error) {
	if config == KeyringConfig {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, errors.New("no connection string found in keyring. Use 'reeltok keyring set-connection' to store one")
			}
			return nil, fmt.Errorf("failed to read connection string from keyring: %w", err)
		}
		logger.Debug("Using PostgreSQL connection string from keyring")
		return postgres.New(connStr), nil
	}

	if utils.IsPostgresURL(config) || strings.Contains(config, "host=") {
		if _, err := postgres.ValidateConnString(config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed. Use 'reeltok keyring set-connection', PGPASSWORD or .pgpass instead")
			}
			return nil, err
		}
		return postgres.New(config), nil
	}

	path, err := utils.ExpandPath(config)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStore(path), nil
}

// Bootstrap reads the stored settings, timetable and clock override of a
// loaded store. A non-empty timezone replaces the stored one; with
// ignoreOverride the stored override is not applied.
func (c *Context) Bootstrap(timezone string, ignoreOverride bool) error {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	c.Settings = settings

	if timezone == "" {
		timezone = settings.Timezone
	}
	loc, err := utils.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	c.Location = loc

	slots, err := c.Store.GetTimetable()
	if err != nil {
		return fmt.Errorf("failed to get timetable: %w", err)
	}
	resolver, err := scheduler.New(slots)
	if err != nil {
		return fmt.Errorf("stored timetable is unusable, run 'reeltok timetable reset': %w", err)
	}
	c.Resolver = resolver

	c.Clock = clock.NewOverridable(clock.System{Location: loc})
	if ignoreOverride {
		return nil
	}
	override, err := c.Store.GetClockOverride()
	if err != nil {
		return fmt.Errorf("failed to get clock override: %w", err)
	}
	if override != nil {
		c.Clock.Set(override.In(loc))
		logger.Debug("Clock override active", "at", override)
	}
	return nil
}

// PerformAutomaticBackup snapshots a SQLite database before a destructive
// change. Failures are logged and never interrupt the command.
func (c *Context) PerformAutomaticBackup(reason string) {
	store, ok := c.Store.(*sqlite.Store)
	if !ok {
		return
	}
	if _, err := backup.NewManager(store.GetConfigPath()).Create(reason); err != nil {
		logger.Warn("Automatic backup failed", "reason", reason, "error", err)
	}
}

// Selector returns a media selector over the store's catalog.
func (c *Context) Selector() *media.Selector {
	return media.NewSelector(c.Store)
}

// GenerationClient builds a client for the configured generation service.
// The API key comes from the keyring when one is stored.
func (c *Context) GenerationClient() *generation.Client {
	var opts []generation.Option
	key, err := keyring.GetAPIKey()
	switch {
	case err == nil:
		opts = append(opts, generation.WithAPIKey(key))
	case errors.Is(err, keyring.ErrNotFound):
	default:
		logger.Warn("Could not read generation API key from keyring", "error", err)
	}
	return generation.NewClient(c.Settings.GenerationURL, opts...)
}

// PrintJSON writes v as indented JSON to stdout.
func PrintJSON(v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

// FormatSlot renders a slot as "HH:MM  label (type)".
func FormatSlot(slot models.ActivitySlot) string {
	return fmt.Sprintf("%s  %s (%s)", slot.Start, slot.Label, slot.Type)
}

package system

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/reeltok/reeltok/internal/cli"
	apperrors "github.com/reeltok/reeltok/internal/errors"
	"github.com/reeltok/reeltok/internal/keyring"
	"github.com/reeltok/reeltok/internal/models"
	"github.com/reeltok/reeltok/internal/notifier"
	"github.com/reeltok/reeltok/internal/utils"
	"github.com/reeltok/reeltok/internal/validation"
)

// sqlStore is implemented by the SQLite and PostgreSQL stores.
type sqlStore interface {
	GetDB() *sql.DB
	SchemaVersion() (current, latest int, err error)
}

type DoctorCmd struct{}

type check struct {
	name    string
	run     func(*cli.Context) error
	warning bool
	needsDB bool
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable},
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
	{name: "Timetable", run: checkTimetable, needsDB: true},
	{name: "Settings", run: checkSettings, needsDB: true},
	{name: "Media catalog", run: checkMediaCatalog, needsDB: true, warning: true},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "OS keyring", run: checkKeyring, warning: true},
	{name: "Tray companion", run: checkTray, warning: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := true

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warning:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
			if c.name == "Database reachable" {
				dbReachable = false
			}
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return apperrors.WithExitCode(fmt.Errorf("one or more health checks failed"), 2)
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if s, ok := ctx.Store.(sqlStore); ok {
		db := s.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func schemaVersions(ctx *cli.Context) (int, int, bool, error) {
	s, ok := ctx.Store.(sqlStore)
	if !ok {
		return 0, 0, false, nil
	}
	current, latest, err := s.SchemaVersion()
	if err != nil {
		return 0, 0, true, fmt.Errorf("failed to get schema version: %w", err)
	}
	return current, latest, true, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, ok, err := schemaVersions(ctx)
	if err != nil || !ok {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, ok, err := schemaVersions(ctx)
	if err != nil || !ok {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d. Run 'reeltok migrate'", current, latest)
	}
	return nil
}

func checkTimetable(ctx *cli.Context) error {
	slots, err := ctx.Store.GetTimetable()
	if err != nil {
		return fmt.Errorf("failed to get timetable: %w", err)
	}
	result := validation.ValidateTimetable(slots)
	if result.HasErrors() {
		return fmt.Errorf("%d timetable error(s), run 'reeltok timetable validate'", len(result.Errors()))
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone setting: %q", settings.Timezone)
	}
	if settings.RefreshIntervalSec <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %d", settings.RefreshIntervalSec)
	}
	return nil
}

func checkMediaCatalog(ctx *cli.Context) error {
	var missing []models.Category
	for _, category := range models.Categories {
		c := category
		assets, err := ctx.Store.ListMediaAssets(&c)
		if err != nil {
			return fmt.Errorf("failed to list media: %w", err)
		}
		hasVideo := false
		for _, a := range assets {
			if a.Active && a.HasVideo() {
				hasVideo = true
				break
			}
		}
		if !hasVideo {
			missing = append(missing, category)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("no active video for: %v. Add one with 'reeltok media add' or 'reeltok generate --save'", missing)
	}
	return nil
}

func checkClockTimezone(*cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkKeyring(*cli.Context) error {
	if !keyring.IsAvailable() {
		return fmt.Errorf("OS keyring is not available, secrets cannot be stored")
	}
	return nil
}

func checkTray(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil || !settings.NotificationsEnabled {
		return nil
	}
	return notifier.TrayStatus()
}

package main

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/reeltok/reeltok/internal/cli"
	"github.com/reeltok/reeltok/internal/cli/catalog"
	"github.com/reeltok/reeltok/internal/cli/schedule"
	"github.com/reeltok/reeltok/internal/cli/server"
	"github.com/reeltok/reeltok/internal/cli/settings"
	"github.com/reeltok/reeltok/internal/cli/system"
	"github.com/reeltok/reeltok/internal/constants"
	apperrors "github.com/reeltok/reeltok/internal/errors"
	"github.com/reeltok/reeltok/internal/logger"
	"github.com/reeltok/reeltok/internal/utils"
)

var CLI struct {
	Version        kong.VersionFlag
	Config         string `help:"SQLite database path, PostgreSQL connection string, or 'keyring' to use the connection string stored in the OS keyring. PostgreSQL credentials must NOT be embedded in the connection string." default:"${default_config}" env:"REELTOK_DB"`
	DebugLog       bool   `name:"debug" help:"Log debug output to stderr." env:"REELTOK_DEBUG"`
	Timezone       string `help:"Override the stored timezone for this run."`
	IgnoreOverride bool   `help:"Use the wall clock even when a clock override is stored."`

	Init      system.InitCmd        `cmd:"" help:"Initialize reeltok storage."`
	Migrate   system.MigrateCmd     `cmd:"" help:"Run database migrations."`
	Backup    system.BackupCmd      `cmd:"" help:"Manage SQLite database backups."`
	Doctor    system.DoctorCmd      `cmd:"" help:"Run health checks and diagnostics."`
	Tui       system.TuiCmd         `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Now       schedule.NowCmd       `cmd:"" help:"Show the current activity and its media."`
	Timetable schedule.TimetableCmd `cmd:"" help:"Manage the daily timetable."`
	Clock     schedule.ClockCmd     `cmd:"" help:"Show or override the clock used for scheduling."`
	Watch     schedule.WatchCmd     `cmd:"" help:"Follow the schedule and report activity changes."`
	Media     catalog.MediaCmd      `cmd:"" help:"Manage the media catalog."`
	Generate  catalog.GenerateCmd   `cmd:"" help:"Request a peaceful clip from the generation service."`
	Serve     server.ServeCmd       `cmd:"" help:"Serve the JSON API for the mobile app."`
	Settings  settings.SettingsCmd  `cmd:"" help:"Manage application settings."`
	Keyring   system.KeyringCmd     `cmd:"" help:"Manage secrets in the OS keyring."`
	Debug     system.DebugCmd       `cmd:"" help:"Debug commands for troubleshooting."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Time-of-day activity scheduler for the ReelTok wellness feed"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
			"serve_addr":     constants.DefaultServeAddr,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.DebugLog, ConfigDir: configDir(CLI.Config)}); err != nil {
		apperrors.Fatalf("failed to initialize logger: %v", err)
	}

	command := ctx.Command()
	appCtx := &cli.Context{}

	// Keyring commands manage the secrets used to reach the store
	if strings.HasPrefix(command, "keyring") {
		apperrors.Fatal(ctx.Run(appCtx))
		return
	}

	store, err := cli.OpenStore(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()
	appCtx.Store = store

	// Init and doctor handle their own loading
	if command != "init" && command != "doctor" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
		if needsBootstrap(command) {
			if err := appCtx.Bootstrap(CLI.Timezone, CLI.IgnoreOverride); err != nil {
				apperrors.Fatal(err)
			}
		}
	}

	logger.Debug("Running command", "command", command, "store", store.GetConfigPath())
	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

// storeOnlyCommands work on the raw store. They must keep running when the
// stored timetable is unusable, since they are how it gets repaired.
var storeOnlyCommands = []string{
	"migrate",
	"backup",
	"timetable validate",
	"timetable import",
	"timetable export",
	"timetable reset",
}

func needsBootstrap(command string) bool {
	for _, prefix := range storeOnlyCommands {
		if command == prefix || strings.HasPrefix(command, prefix+" ") {
			return false
		}
	}
	return true
}

// configDir is where logs are written: next to a SQLite database, or the
// default config directory for PostgreSQL.
func configDir(config string) string {
	if config != cli.KeyringConfig && !utils.IsPostgresURL(config) && !strings.Contains(config, "host=") {
		if path, err := utils.ExpandPath(config); err == nil {
			return filepath.Dir(path)
		}
	}
	dir, err := utils.ExpandPath(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		return "."
	}
	return dir
}

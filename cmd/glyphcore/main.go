// Command glyphcore is a thin CLI entrypoint: parse flags, load an optional
// TOML config, and restore a session or create a workspace. It does not
// create or run the drain loop. Everything interesting lives in internal/.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/kungfusheep/glyphcore/internal/logging"
	"github.com/kungfusheep/glyphcore/internal/session"
	"github.com/kungfusheep/glyphcore/internal/workspace"
)

// config is the optional on-disk settings file; every field has a
// reasonable default so a missing file is not an error.
type config struct {
	Theme          string `toml:"theme"`
	PtyByteBudget  int    `toml:"pty_byte_budget"`
	DebounceMillis int    `toml:"debounce_millis"`
	LoginShell     bool   `toml:"login_shell"`
}

func defaultConfig() config {
	return config{
		Theme:          "default",
		PtyByteBudget:  64 * 1024,
		DebounceMillis: 150,
		LoginShell:     true,
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return config{}, fmt.Errorf("glyphcore: reading config %s: %w", path, err)
	}
	return cfg, nil
}

func main() {
	var (
		configPath  = flag.String("config", "", "path to an optional TOML config file")
		sessionPath = flag.String("session", "", "path to a session file to restore on startup")
		rootPath    = flag.String("root", ".", "workspace root when no session is restored")
		dev         = flag.Bool("dev", false, "use a human-readable console log writer")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logging.New(logging.Options{Dev: *dev, Level: zerolog.InfoLevel})
	log.Info().
		Str("theme", cfg.Theme).
		Int("pty_byte_budget", cfg.PtyByteBudget).
		Dur("debounce", time.Duration(cfg.DebounceMillis)*time.Millisecond).
		Msg("starting glyphcore")

	mgr, err := restoreOrCreate(*sessionPath, *rootPath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("could not start a workspace")
	}

	active := mgr.Active()
	log.Info().
		Str("root", active.RootPath).
		Int("workspaces", len(mgr.Workspaces)).
		Msg("workspace ready")

	// Wiring the drain loop to a real platform surface (window creation,
	// GPU context, input backend) is outside this module's scope; a real
	// binary would call into that layer here and run loop.DrainOnce in
	// response to its event source.
}

func restoreOrCreate(sessionPath, rootPath string, log zerolog.Logger) (*workspace.Manager, error) {
	if sessionPath != "" {
		if data, err := os.ReadFile(sessionPath); err == nil {
			mgr, err := session.Restore(data, nil)
			if err == nil {
				return mgr, nil
			}
			log.Warn().Err(err).Str("path", sessionPath).Msg("session restore failed, starting fresh")
		}
	}

	mgr := workspace.NewManager()
	mgr.AddWorkspace(workspace.NewWorkspace(rootPath, rootPath))
	return mgr, nil
}

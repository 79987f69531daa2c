// Package main is the entry point for the quietsearch engine tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/quietsearch/quietsearch/internal/aggregate"
	"github.com/quietsearch/quietsearch/internal/config"
	"github.com/quietsearch/quietsearch/internal/engines"
	"github.com/quietsearch/quietsearch/internal/engines/providers"
	"github.com/quietsearch/quietsearch/internal/locales"
	"github.com/quietsearch/quietsearch/internal/monitoring"
)

// ANSI color codes
const (
	quietBlue = "\033[38;2;58;110;165m"
	bold      = "\033[1m"
	reset     = "\033[0m"
)

const banner = `
  ┌─┐ ┬ ┬┬┌─┐┌┬┐┌─┐┌─┐┌─┐┬─┐┌─┐┬ ┬
  │─┼┐│ ││├┤  │ └─┐├┤ ├─┤├┬┘│  ├─┤
  └─┘└└─┘┴└─┘ ┴ └─┘└─┘┴ ┴┴└─└─┘┴ ┴
`

func printBanner() {
	fmt.Print(quietBlue + bold + banner + reset + "\n")
}

// loadEnvFiles loads .env from standard locations.
func loadEnvFiles() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		_ = godotenv.Load()
		return
	}

	configEnv := filepath.Join(homeDir, ".config", "quietsearch", ".env")
	if _, err := os.Stat(configEnv); err == nil {
		_ = godotenv.Load(configEnv)
	}

	// local .env can override
	_ = godotenv.Load()
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "check":
			runCheck(os.Args[2:])
			return
		case "update-locales":
			runUpdateLocales(os.Args[2:])
			return
		case "version", "-v", "--version":
			PrintVersion()
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	printHelp()
}

// resolveSettings resolves the settings for a command.
// Checks: user flag -> filesystem locations -> embedded settings.
// Returns raw bytes and source description.
func resolveSettings(userPath string) ([]byte, string, error) {
	if userPath != "" {
		data, err := os.ReadFile(userPath)
		if err != nil {
			return nil, "", fmt.Errorf("settings file not found: %s", userPath)
		}
		return data, userPath, nil
	}

	homeDir, _ := os.UserHomeDir()

	searchPaths := []string{}
	if homeDir != "" {
		searchPaths = append(searchPaths,
			filepath.Join(homeDir, ".config", "quietsearch", "settings.yaml"),
		)
	}
	searchPaths = append(searchPaths, "settings.yaml", "configs/settings.yaml")

	for _, path := range searchPaths {
		if data, err := os.ReadFile(path); err == nil {
			return data, path, nil
		}
	}

	if data, err := getEmbeddedSettings("settings"); err == nil {
		return data, "(embedded) settings.yaml", nil
	}

	return nil, "", fmt.Errorf("no settings file found. Specify --settings path")
}

// setup loads env files, logging and settings shared by all subcommands.
func setup(fs *flag.FlagSet, args []string) *config.Settings {
	settingsPath := fs.String("settings", "", "path to settings file")
	debug := fs.Bool("debug", false, "enable debug logging")
	noBanner := fs.Bool("no-banner", false, "suppress startup banner")
	_ = fs.Parse(args) // ExitOnError handles errors

	loadEnvFiles()

	if !*noBanner {
		printBanner()
	}

	data, source, err := resolveSettings(*settingsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("no settings file found")
	}

	settings, err := config.LoadFromBytes(data)
	if err != nil {
		log.Fatal().Err(err).Str("settings", source).Msg("failed to load settings")
	}

	setupLogging(settings.Logging, *debug)

	log.Info().
		Str("version", Version).
		Str("settings", source).
		Int("engines", len(settings.Engines)).
		Msg("settings loaded")

	return settings
}

// buildRegistry constructs the module table, loads the previous capability
// artifact and builds a fresh Registry. Fatal config errors terminate here.
func buildRegistry(settings *config.Settings) (*engines.Registry, *engines.ModuleSet, *locales.Catalog) {
	modules := providers.NewModuleSet()
	catalog := locales.New()

	data, err := engines.LoadCapabilityFile(settings.Locales.CapabilityFile)
	if err != nil {
		log.Warn().Err(err).Msg("ignoring unreadable capability file")
		data = engines.CapabilityData{}
	}

	loader := engines.NewLoader(modules, settings, data, catalog)
	reg, err := engines.Load(loader)
	if err != nil {
		log.Fatal().Err(err).Msg("engine configuration is broken")
	}
	return reg, modules, catalog
}

// runCheck loads and validates the engine configuration and prints a summary.
func runCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	settings := setup(fs, args)

	reg, _, _ := buildRegistry(settings)

	log.Info().Int("engines", reg.Len()).Msg("registry built")
	for _, name := range reg.Names() {
		e, _ := reg.Engine(name)
		log.Info().
			Str("engine", name).
			Str("shortcut", e.Shortcut).
			Strs("categories", e.Categories).
			Bool("language_support", e.LanguageSupport).
			Dur("timeout", e.Timeout).
			Msg("engine registered")
	}
	for _, cat := range reg.Categories() {
		log.Info().Str("category", cat).Int("engines", len(reg.Category(cat))).Msg("category")
	}
}

// runUpdateLocales runs the capability aggregation batch and writes the
// capability and catalog artifacts.
func runUpdateLocales(args []string) {
	fs := flag.NewFlagSet("update-locales", flag.ExitOnError)
	offline := fs.Bool("offline", false, "aggregate from the fetch cache only")
	settings := setup(fs, args)

	reg, modules, catalog := buildRegistry(settings)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Info().Msg("shutdown signal received")
		cancel()
	}()

	stats, err := aggregate.Run(ctx, settings.Locales, reg, modules, catalog, *offline)
	if err != nil {
		log.Fatal().Err(err).Msg("locale update failed")
	}

	log.Info().
		Str("run_id", stats.RunID).
		Int("engines", stats.Engines).
		Int("languages", stats.Languages).
		Int("entries", stats.Emitted).
		Msg("locale update finished")
}

// setupLogging installs the configured global logger. An unset format picks
// console output when stdout is a terminal, JSON otherwise; --debug overrides
// the configured level.
func setupLogging(cfg monitoring.LoggerConfig, debug bool) {
	if cfg.Format == "" && term.IsTerminal(int(os.Stdout.Fd())) {
		cfg.Format = "console"
	}
	if debug {
		cfg.Level = "debug"
	}
	monitoring.Global(cfg)
}

// printHelp prints usage information.
func printHelp() {
	printBanner()
	fmt.Println("quietsearch - metasearch engine layer tools")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  quietsearch [command]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  check            Load and validate the engine configuration")
	fmt.Println("  update-locales   Fetch engine capabilities and rebuild the locale catalog")
	fmt.Println("  version          Print version information")
	fmt.Println("  help             Show this help message")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -settings FILE   Settings file (searches standard locations if omitted)")
	fmt.Println("  -debug           Enable debug logging")
	fmt.Println("  -no-banner       Suppress startup banner")
	fmt.Println()
	fmt.Println("update-locales options:")
	fmt.Println("  -offline         Aggregate from the fetch cache only, no network")

	if names, err := listEmbeddedSettings(); err == nil && len(names) > 0 {
		fmt.Println()
		fmt.Println("Embedded settings (used when no settings file is found):")
		for _, name := range names {
			fmt.Println("  " + name)
		}
	}
}

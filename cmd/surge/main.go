package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/surge-http/surge/pkg/logging"
	"github.com/surge-http/surge/pkg/model"
	"github.com/surge-http/surge/pkg/storage"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	cfgFile string
	rootDir string
	rootCmd = &cobra.Command{
		Use:     "surge",
		Short:   "Surge - build, run, and organize HTTP requests from your terminal",
		Version: version,
		Long: `Surge is a terminal API client. It assembles HTTP and GraphQL requests from
stored templates, substitutes {{variable}} placeholders, applies authentication,
executes the request, and records everything in collections, environments, and
history.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <root>/config.json)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "storage root (default is ~/.surge, or $SURGE_ROOT)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(storageRoot())
		viper.SetConfigType("json")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("surge")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// storageRoot resolves the storage root: --root flag, then $SURGE_ROOT, then
// ~/.surge. Falls back to a local .surge directory when the home directory
// cannot be determined.
func storageRoot() string {
	if rootDir != "" {
		return rootDir
	}
	if env := os.Getenv("SURGE_ROOT"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".surge"
	}
	return filepath.Join(home, ".surge")
}

// openStore constructs the process logger and the store. Called once per
// command invocation; the store instance is passed down explicitly.
func openStore() (*storage.Store, zerolog.Logger, error) {
	root := storageRoot()
	log := logging.New(root)
	store, err := storage.New(root, log)
	if err != nil {
		return nil, log, err
	}
	return store, log, nil
}

// loadConfig returns the effective configuration: the store's config
// document with viper-read values (--config file, SURGE_* environment)
// overlaid on top.
func loadConfig(store *storage.Store) model.Config {
	cfg := store.LoadConfig()
	if viper.IsSet("theme") {
		cfg.Theme = viper.GetString("theme")
	}
	if viper.IsSet("defaultTimeout") {
		cfg.DefaultTimeout = viper.GetInt("defaultTimeout")
	}
	if viper.IsSet("followRedirects") {
		cfg.FollowRedirects = viper.GetBool("followRedirects")
	}
	if viper.IsSet("validateSSL") {
		cfg.ValidateSSL = viper.GetBool("validateSSL")
	}
	if viper.IsSet("proxyUrl") {
		cfg.ProxyURL = viper.GetString("proxyUrl")
	}
	if viper.IsSet("maxHistorySize") {
		cfg.MaxHistorySize = viper.GetInt("maxHistorySize")
	}
	return cfg
}

// dotenvVars reads a local .env file into a variable map; these merge at the
// lowest precedence. A missing file is fine, a malformed one gets a warning.
func dotenvVars() map[string]string {
	env, err := godotenv.Read()
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to read .env file: %v\n", err)
		}
		return nil
	}
	return env
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

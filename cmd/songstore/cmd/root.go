package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/egodevrjm/songstore"
	"github.com/egodevrjm/songstore/internal/cmd/globals"
	"github.com/egodevrjm/songstore/internal/cmd/output"
	"github.com/egodevrjm/songstore/internal/config"
	"github.com/egodevrjm/songstore/pkg/constants"
	"github.com/egodevrjm/songstore/pkg/logging"
)

var (
	configFile  string
	globalFlags *globals.Flags

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "songstore",
	Short: "Songwriter catalog CLI",
	Long: `Songstore manages a songwriter's catalog stored as JSON files in a
version-controlled content repository.

It loads the published catalog from the content host for listing and
searching, and with a GitHub token configured it can create and update
songs, upload images, and republish the denormalized index files
(catalog, search, per-theme, per-venue, per-status).`,
	PersistentPreRunE: setupCommand,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// No command runs unbounded.
	ctx, timeout := context.WithTimeout(ctx, constants.CommandTimeout)
	defer timeout()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.songstore.yaml)")
	globalFlags = globals.AddFlags(rootCmd)

	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		panic(fmt.Sprintf("Failed to bind verbose flag: %v", err))
	}
	if err := viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet")); err != nil {
		panic(fmt.Sprintf("Failed to bind quiet flag: %v", err))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".songstore" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".songstore")
	}

	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Explicitly bind the repository settings so Viper sees them even when
	// they appear only in the environment.
	for _, key := range []string{
		config.EnvToken,
		config.EnvOwner,
		config.EnvRepo,
		config.EnvBranch,
		config.EnvContentBase,
	} {
		_ = viper.BindEnv(key)
	}

	if err := viper.ReadInConfig(); err == nil && globalFlags != nil && globalFlags.Verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	configureLogging()
}

// setupCommand is called before any command runs.
func setupCommand(_ *cobra.Command, _ []string) error {
	if globalFlags.Output == "" {
		globalFlags.Output = string(output.DetectFormat(""))
	}
	return nil
}

// configureLogging sets up the logging system based on configuration.
func configureLogging() {
	level := zerolog.InfoLevel
	if globalFlags != nil && globalFlags.Verbose || viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	if globalFlags != nil && globalFlags.Quiet || viper.GetBool("quiet") {
		level = zerolog.WarnLevel
	}
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		if parsed, err := zerolog.ParseLevel(envLevel); err == nil {
			level = parsed
		}
	}

	cfg := &logging.Config{
		Level:     level.String(),
		Format:    os.Getenv("LOG_FORMAT"),
		Output:    os.Getenv("LOG_OUTPUT"),
		AddCaller: level <= zerolog.DebugLevel,
	}
	if cfg.Format == "" {
		cfg.Format = "auto"
	}
	if cfg.Output == "" {
		cfg.Output = "stderr"
	}

	logging.Configure(cfg)
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		if err := godotenv.Load(envFile); err == nil {
			if globalFlags != nil && globalFlags.Verbose {
				fmt.Fprintf(os.Stderr, "Loaded %s\n", envFile)
			}
		}
	}
}

// newClient builds the songstore client from the resolved configuration.
func newClient() (songstore.Client, error) {
	var opts []songstore.Option

	gh := config.GitHub()
	if gh.Owner != "" && gh.Repo != "" && config.HasToken() {
		opts = append(opts, songstore.WithGitHub(gh))
	}
	if base := config.ContentBase(); base != "" {
		opts = append(opts, songstore.WithContentBase(base))
	} else if gh.Owner != "" && gh.Repo != "" && !config.HasToken() {
		// Read-only access to a public repository needs no token.
		opts = append(opts, songstore.WithContentBase(fmt.Sprintf(
			"https://raw.githubusercontent.com/%s/%s/%s", gh.Owner, gh.Repo, gh.Branch)))
	}

	return songstore.New(opts...)
}

// writeClient builds the client for a command that writes to the content
// repository, failing fast when no token is configured.
func writeClient() (songstore.Client, error) {
	if _, err := config.RequireToken(); err != nil {
		return nil, err
	}
	return newClient()
}

// loadedClient builds the client and loads the snapshot.
func loadedClient(ctx context.Context) (songstore.Client, error) {
	c, err := newClient()
	if err != nil {
		return nil, err
	}
	if err := c.Load(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// loadedWriteClient is loadedClient with the write credential check first.
func loadedWriteClient(ctx context.Context) (songstore.Client, error) {
	c, err := writeClient()
	if err != nil {
		return nil, err
	}
	if err := c.Load(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

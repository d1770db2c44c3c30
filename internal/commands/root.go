package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/stahnma/gh-reposearch/internal/config"
	ghub "github.com/stahnma/gh-reposearch/internal/github"
	"github.com/stahnma/gh-reposearch/internal/netstate"
	"github.com/stahnma/gh-reposearch/internal/search"
)

// App holds shared application state.
type App struct {
	Config       config.Config
	Logger       *zap.Logger
	// LogLevel, when set, follows the debug setting of a --config file.
	LogLevel     *zap.AtomicLevel
	GHClient     ghub.Client
	Connectivity ghub.Connectivity
	GitSHA       string
	GitDirty     string

	configFile string
}

// NewApp creates a new App from the given configuration.
func NewApp(cfg config.Config, logger *zap.Logger, gitSHA, gitDirty string) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		Config:   cfg,
		Logger:   logger,
		GitSHA:   gitSHA,
		GitDirty: gitDirty,
	}
}

// ensureClient creates the GitHub client if it doesn't exist.
func (a *App) ensureClient() error {
	if a.Connectivity == nil {
		a.Connectivity = netstate.NewProbe(netstate.DefaultTTL)
	}
	if a.GHClient != nil {
		return nil
	}
	client, err := ghub.NewClient(ghub.ClientOptions{
		Token:   a.Config.GitHubToken,
		BaseURL: a.Config.APIURL,
		Timeout: a.Config.RequestTimeout,
	})
	if err != nil {
		return fmt.Errorf("creating GitHub client: %w", err)
	}
	a.GHClient = client
	return nil
}

// NewController creates a search controller backed by the GitHub API.
func (a *App) NewController(sort search.SortMode) (*search.Controller, error) {
	if err := a.ensureClient(); err != nil {
		return nil, err
	}
	classifier := &ghub.Classifier{
		TokenConfigured: a.Config.TokenConfigured(),
		Connectivity:    a.Connectivity,
	}
	searcher := ghub.NewSearcher(a.GHClient, classifier, a.Logger)
	return search.NewController(searcher, search.Options{Sort: sort, Logger: a.Logger}), nil
}

// loadConfigFile replaces the environment configuration with one layered
// over the --config file.
func (a *App) loadConfigFile() error {
	if a.configFile == "" {
		return nil
	}
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	a.Config = cfg
	if a.LogLevel != nil {
		a.LogLevel.SetLevel(levelFor(cfg.DebugMode))
	}
	a.Logger.Debug("loaded config file", zap.String("path", a.configFile))
	return nil
}

func levelFor(debug bool) zapcore.Level {
	if debug {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

// NewRootCommand creates the root cobra command with all subcommands.
func (a *App) NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   filepath.Base(os.Args[0]),
		Short: "Search GitHub repositories by keyword.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfigFile()
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Config file (yaml, json or toml)")

	rootCmd.AddCommand(a.newSearchCommand())
	rootCmd.AddCommand(a.newTUICommand())
	rootCmd.AddCommand(a.newVersionCommand())

	return rootCmd
}

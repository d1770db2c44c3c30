package main

import (
	"fmt"
	"log"
	"os"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/stahnma/gh-reposearch/internal/commands"
	"github.com/stahnma/gh-reposearch/internal/config"
	lambdapkg "github.com/stahnma/gh-reposearch/internal/lambda"
)

var (
	GitSHA   string
	GitDirty string
)

func newLogger(debug bool) (*zap.Logger, zap.AtomicLevel, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	return logger, cfg.Level, err
}

func main() {
	cfg := config.FromEnvironment()

	logger, level, err := newLogger(cfg.DebugMode)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	app := commands.NewApp(cfg, logger, GitSHA, GitDirty)
	app.LogLevel = &level

	if os.Getenv("LAMBDA_TASK_ROOT") != "" {
		awslambda.Start(lambdapkg.NewHandler(app).Handle)
		return
	}

	rootCmd := app.NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

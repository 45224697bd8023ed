// Package main is the entry point for the repolink CLI application.
// repolink resolves the current position of a local Git repository and prints
// a permalink to a file at the equivalent location on its hosting service.
package main

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/psyomn/repolink/cmd"
	"github.com/psyomn/repolink/internal/adapters/git"
	logadapter "github.com/psyomn/repolink/internal/adapters/logger"
	"github.com/psyomn/repolink/internal/adapters/output"
	"github.com/psyomn/repolink/internal/adapters/urlparse"
	"github.com/psyomn/repolink/internal/domain"
	"github.com/psyomn/repolink/internal/infrastructure/config"
	"github.com/psyomn/repolink/internal/usecases"
)

func main() {
	// Wire up production dependencies. The logger is built lazily so the
	// --verbose flag can raise the level before construction.
	var adapter *logadapter.ZapAdapter

	deps := &cmd.Dependencies{
		LoggerFactory: func() cmd.Logger {
			adapter = logadapter.NewZapAdapter(newZapLogger())
			return adapter
		},

		ConfigLoader: func() (*cmd.AppConfig, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			return &cmd.AppConfig{
				LogLevel:      cfg.LogLevel,
				LogAppName:    cfg.LogAppName,
				DefaultRemote: cfg.DefaultRemote,
			}, nil
		},

		GitRepoFactory: func(dir string, _ cmd.Logger) (domain.LocalGitRepository, error) {
			return git.NewGoGitRepository(dir, adapter)
		},

		URLParserFactory: func() domain.RemoteURLParser {
			return urlparse.NewParser()
		},

		ResolverFactory: func(
			repo domain.LocalGitRepository,
			parser domain.RemoteURLParser,
			_ cmd.Logger,
		) domain.Resolver {
			return usecases.NewLinkResolver(repo, parser, adapter)
		},

		LinkWriterFactory: func() domain.LinkWriter {
			return output.NewWriter()
		},

		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	cmd.SetDefaultDependencies(deps)
	cmd.Execute()
}

// newZapLogger builds the production logger. Log output goes to stderr so
// stdout carries nothing but the link.
func newZapLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(logLevel(os.Getenv(config.EnvLogLevel)))
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// logLevel parses a level name, falling back to info.
func logLevel(name string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/photo-edit-mcp/internal/codec"
	"github.com/ironsheep/photo-edit-mcp/internal/imaging"
	"github.com/ironsheep/photo-edit-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// cli holds the command line and environment configuration.
type cli struct {
	Version kong.VersionFlag `short:"v" help:"Print version information and exit."`

	LogLevel  string `help:"Log level (${enum})." enum:"debug,info,warn,error" default:"info" env:"PHOTO_MCP_LOG_LEVEL"`
	LogFormat string `help:"Log format (${enum})." enum:"text,json" default:"text" env:"PHOTO_MCP_LOG_FORMAT"`

	MaxSeedAttempts int `help:"Random draws allowed per mosaic seed before the mosaic fails." default:"10000" env:"PHOTO_MCP_MAX_SEED_ATTEMPTS"`

	Preload []string `help:"Load an image before serving, as NAME=PATH. Repeatable." placeholder:"NAME=PATH" sep:"none"`
}

func main() {
	var c cli
	kong.Parse(&c,
		kong.Name("photo-edit-mcp"),
		kong.Description("MCP server for editing images: greyscale and sepia transforms, blur and sharpen filters, brightness, flips and mosaics.\n\nThis server communicates via MCP protocol over stdin/stdout."),
		kong.Configuration(kong.JSON, "~/.config/photo-edit-mcp.json"),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf("photo-edit-mcp %s\n  Build time: %s\n  Git commit: %s", Version, BuildTime, GitCommit),
		},
	)

	logger, err := newLogger(c.LogLevel, c.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "photo-edit-mcp: %v\n", err)
		os.Exit(2)
	}
	logger.WithFields(logrus.Fields{
		"version": Version,
		"built":   BuildTime,
		"commit":  GitCommit,
	}).Debug("Starting photo-edit-mcp")

	store := imaging.NewStore(imaging.WithSegmenter(
		imaging.NewSegmenter(imaging.WithMaxAttempts(c.MaxSeedAttempts)),
	))
	if err := preload(store, c.Preload, logger); err != nil {
		logger.WithError(err).Fatal("Preload failed")
	}

	srv := server.New(
		server.WithStore(store),
		server.WithLogger(logger),
		server.WithVersion(Version),
	)
	if err := srv.Run(); err != nil {
		logger.WithError(err).Fatal("Server error")
	}
}

// newLogger builds a logger writing to stderr; stdout is for MCP protocol.
func newLogger(level, format string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(lvl)

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	return logger, nil
}

// preload reads every NAME=PATH entry into the store.
func preload(store *imaging.Store, entries []string, logger *logrus.Logger) error {
	for _, entry := range entries {
		name, path, ok := strings.Cut(entry, "=")
		if !ok || name == "" || path == "" {
			return fmt.Errorf("invalid preload %q, want NAME=PATH", entry)
		}
		buf, err := codec.Read(path, name)
		if err != nil {
			return fmt.Errorf("preload %s: %w", name, err)
		}
		if err := store.Load(buf); err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"name":   name,
			"path":   path,
			"width":  buf.Width(),
			"height": buf.Height(),
		}).Info("Preloaded image")
	}
	return nil
}

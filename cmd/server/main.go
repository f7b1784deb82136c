package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"kibitzer"
	"kibitzer/internal/config"
	"kibitzer/internal/controller"
	"kibitzer/internal/game"
	"kibitzer/internal/game/freeplay"
	"kibitzer/internal/game/warlords"
	"kibitzer/internal/server"
	"kibitzer/internal/storage"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning: load .env: %v", err)
	}

	cmd := &cli.Command{
		Name:  "kibitzer",
		Usage: "multi-room card table server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "JSON config file",
				Sources: cli.EnvVars("KIBITZER_CONFIG"),
			},
			&cli.StringFlag{Name: "addr", Usage: "listen address, overrides PORT"},
			&cli.StringFlag{Name: "db", Usage: "SQLite path, overrides DB_PATH"},
			&cli.StringFlag{Name: "web", Usage: "serve static files from this directory, overrides WEB_DIR"},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "development logging",
				Sources: cli.EnvVars("DEBUG"),
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd.Bool("debug"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	if cmd.IsSet("addr") {
		cfg.Addr = cmd.String("addr")
	}
	if cmd.IsSet("db") {
		cfg.DBPath = cmd.String("db")
	}
	if cmd.IsSet("web") {
		cfg.WebDir = cmd.String("web")
	}

	store, err := storage.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	registry := game.NewRegistry()
	registry.Register(freeplay.Rules{})
	registry.Register(warlords.Rules{})

	rules, err := registry.Resolve(cfg.Rooms)
	if err != nil {
		return err
	}
	ctrl, err := controller.New(rules, cfg.Slots,
		controller.WithLogger(logger.Named("controller")),
		controller.WithWelcome(cfg.Welcome),
	)
	if err != nil {
		return err
	}

	webFS, err := webRoot(cfg.WebDir)
	if err != nil {
		return err
	}
	srv := server.New(registry, ctrl, store, webFS, logger.Named("server"))

	logger.Info("listening",
		zap.String("addr", cfg.Addr),
		zap.Int("rooms", len(cfg.Rooms)),
		zap.Int("slots", cfg.Slots))
	return http.ListenAndServe(cfg.Addr, srv)
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// webRoot serves from dir when set, otherwise from the embedded client.
func webRoot(dir string) (fs.FS, error) {
	if dir != "" {
		return os.DirFS(dir), nil
	}
	return fs.Sub(kibitzer.WebFS, "web")
}

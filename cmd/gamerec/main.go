// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/gamerec"
	"github.com/poiesic/gamerec/config"
	"github.com/poiesic/gamerec/server"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "gamerec",
		Usage: "Mood-aware game recommendations over a Steam catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				Value:   "gamerec.yaml",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to .env file",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:  "catalog",
				Usage: "Path to the catalog CSV (overrides config)",
			},
			&cli.StringFlag{
				Name:  "index",
				Usage: "Path to the index directory (overrides config)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve recommendations over HTTP",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "Listen address (overrides config)",
					},
				},
			},
			{
				Name:   "build-index",
				Usage:  "Embed the catalog and persist the index",
				Action: buildIndexCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "Discard any existing index and rebuild",
					},
				},
			},
			{
				Name:      "recommend",
				Usage:     "Print recommendations for a query as JSON",
				ArgsUsage: "<query>",
				Action:    recommendCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "tone",
						Aliases: []string{"t"},
						Usage:   "Tone (all, happy, surprising, angry, suspenseful, sad)",
						Value:   "all",
					},
				},
			},
		},
	}
}

func serveCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if addr := c.String("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	rec, err := gamerec.Open(ctx, cfg, gamerec.WithProgress(os.Stderr))
	if err != nil {
		return fmt.Errorf("failed to start recommender: %w", err)
	}
	defer rec.Close()

	gin.SetMode(gin.ReleaseMode)
	srv, err := server.New(rec,
		server.WithCache(cfg.Server.CacheSize, cfg.Server.CacheTTL),
		server.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
		server.WithShutdownTimeout(cfg.Server.ShutdownTimeout))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Run(ctx, cfg.Server.Addr)
}

func buildIndexCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	rec, err := gamerec.Open(ctx, cfg,
		gamerec.WithRebuild(c.Bool("force")),
		gamerec.WithProgress(os.Stderr))
	if err != nil {
		return fmt.Errorf("failed to build index: %w", err)
	}
	defer rec.Close()

	fmt.Printf("Index ready: %d chunks for %d games\n", rec.ChunkCount(), rec.GameCount())
	return nil
}

func recommendCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	ctx := context.Background()
	rec, err := gamerec.Open(ctx, cfg, gamerec.WithProgress(os.Stderr))
	if err != nil {
		return fmt.Errorf("failed to start recommender: %w", err)
	}
	defer rec.Close()

	recs, err := rec.Recommend(ctx, query, c.String("tone"))
	if err != nil {
		return fmt.Errorf("failed to generate recommendations: %w", err)
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"recommendations": recs})
}

// loadConfig layers the config file, .env, the environment and global flags,
// in that order.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if err := config.LoadDotEnv(c.String("env-file")); err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnv(os.LookupEnv)

	if path := c.String("catalog"); path != "" {
		cfg.Catalog.Path = path
	}
	if path := c.String("index"); path != "" {
		cfg.Index.Path = path
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

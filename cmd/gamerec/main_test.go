package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/gamerec/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func findCommand(app *cli.App, name string) *cli.Command {
	for _, cmd := range app.Commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func TestAppCommands(t *testing.T) {
	app := newApp()

	for _, name := range []string{"serve", "build-index", "recommend"} {
		t.Run(name, func(t *testing.T) {
			assert.NotNil(t, findCommand(app, name))
		})
	}

	t.Run("tone defaults to all", func(t *testing.T) {
		cmd := findCommand(app, "recommend")
		require.NotNil(t, cmd)
		var toneFlag *cli.StringFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == "tone" {
				toneFlag = f
				break
			}
		}
		require.NotNil(t, toneFlag)
		assert.Equal(t, "all", toneFlag.Value)
	})
}

func TestInvalidLogLevel(t *testing.T) {
	app := newApp()
	err := app.Run([]string{"gamerec", "--log-level", "verbose", "recommend", "space"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestRecommendRequiresQuery(t *testing.T) {
	app := newApp()
	err := app.Run([]string{"gamerec", "recommend"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query is required")
}

func TestLoadConfigLayers(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "gamerec.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
catalog:
  path: from-file.csv
server:
  addr: ":7000"
retrieval:
  final_top_k: 5
`), 0o600))

	t.Setenv(config.EnvAddr, ":8000")

	var cfg *config.Config
	app := newApp()
	app.Commands = []*cli.Command{{
		Name: "probe",
		Action: func(c *cli.Context) error {
			var err error
			cfg, err = loadConfig(c)
			return err
		},
	}}

	err := app.Run([]string{"gamerec",
		"--config", cfgPath,
		"--env-file", filepath.Join(dir, "missing.env"),
		"--index", filepath.Join(dir, "idx"),
		"probe"})
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "from-file.csv", cfg.Catalog.Path)
	assert.Equal(t, ":8000", cfg.Server.Addr, "environment overrides file")
	assert.Equal(t, filepath.Join(dir, "idx"), cfg.Index.Path, "flag overrides file")
	assert.Equal(t, 5, cfg.Retrieval.FinalTopK)
	assert.Equal(t, 50, cfg.Retrieval.InitialTopK)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "gamerec.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("catalog:\n  chunk_size: 0\n"), 0o600))

	app := newApp()
	app.Commands = []*cli.Command{{
		Name: "probe",
		Action: func(c *cli.Context) error {
			_, err := loadConfig(c)
			return err
		},
	}}

	err := app.Run([]string{"gamerec", "--config", cfgPath, "--env-file", filepath.Join(dir, "none"), "probe"})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

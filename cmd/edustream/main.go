// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the edustream CLI.
// Subcommands serve the HTTP API, generate a single course, chat with the
// tutor in a terminal, and list the catalog.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/edustream/internal/catalog"
	"github.com/pdiddy/edustream/internal/genai"
	"github.com/pdiddy/edustream/internal/generate"
	"github.com/pdiddy/edustream/internal/logger"
	"github.com/pdiddy/edustream/internal/secrets"
	"github.com/pdiddy/edustream/internal/server"
	"github.com/pdiddy/edustream/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the edustream CLI.
var rootCmd = &cobra.Command{
	Use:   "edustream",
	Short: "Course catalog with on-demand AI course generation and tutoring",
	Long: `edustream serves a small course catalog. Searching for a topic the catalog
does not cover asks a hosted generative model for a complete syllabus, which is
added to the catalog. Each course has an AI tutor that answers questions in the
context of the current lesson.

Configuration is read from edustream.yaml, EDUSTREAM_* environment variables,
and flags. The API key is taken from ai.api_key, .secrets/gemini-api-key, or
GEMINI_API_KEY / API_KEY (a .env file is loaded first if present).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := secrets.LoadDotenv(".env"); err != nil {
			return err
		}
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./edustream.yaml or ~/.config/edustream/edustream.yaml)")
	rootCmd.PersistentFlags().String("env", "", "logger profile: local, dev, or prod")
	rootCmd.PersistentFlags().String("model", "", "generative model identifier")
	rootCmd.PersistentFlags().String("seed-file", "", "YAML catalog replacing the built-in seed")

	_ = viper.BindPFlag("env", rootCmd.PersistentFlags().Lookup("env"))
	_ = viper.BindPFlag("ai.model", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("catalog.seed_file", rootCmd.PersistentFlags().Lookup("seed-file"))

	setDefaults(viper.GetViper())
}

// setDefaults registers every key so that Unmarshal sees environment
// overrides for keys absent from the config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")

	v.SetDefault("ai.model", genai.DefaultModel)
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.base_url", genai.DefaultBaseURL)
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.rate_limit_retries", 0)

	v.SetDefault("server.address", "localhost:8080")
	v.SetDefault("server.read_timeout", server.DefaultReadTimeout)
	v.SetDefault("server.write_timeout", server.DefaultWriteTimeout)
	v.SetDefault("server.idle_timeout", server.DefaultIdleTimeout)
	v.SetDefault("server.shutdown_timeout", server.DefaultShutdownTimeout)
	v.SetDefault("server.allowed_origins", []string{})

	v.SetDefault("catalog.seed_file", "")
	v.SetDefault("catalog.image_base", generate.DefaultImageBase)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("edustream")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "edustream"))
		}
	}

	viper.SetEnvPrefix("EDUSTREAM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes v into a Config and resolves the API key.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.AI.APIKey = secrets.Credential(cfg.AI.APIKey, loadedSecrets, secrets.GeminiKeyFile, secrets.GeminiEnvKeys...)
	return cfg, nil
}

// deps is what every command builds from the config.
type deps struct {
	cfg    types.Config
	log    *logger.Logger
	store  *catalog.Store
	client *genai.Client
	gen    *generate.Workflow
}

func newDeps() (*deps, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, err
	}
	seed, err := catalog.LoadSeed(cfg.Catalog.SeedFile)
	if err != nil {
		return nil, err
	}
	store, err := catalog.NewStore(seed)
	if err != nil {
		return nil, err
	}
	if cfg.AI.APIKey == "" {
		log.Warn("no API key configured; course generation and tutor replies will fail")
	}
	client := genai.New(cfg.AI)
	gen := generate.New(store, client,
		generate.WithLogger(log),
		generate.WithImageBase(cfg.Catalog.ImageBase),
	)
	log.Debug("dependencies ready", "model", client.Model(), "courses", store.Len(), "key_configured", cfg.AI.APIKey != "")
	return &deps{cfg: cfg, log: log, store: store, client: client, gen: gen}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package config loads the settings of the game server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"
	"github.com/zclconf/go-cty/cty"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config is the typed server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Game   GameConfig   `yaml:"game"`
}

type ServerConfig struct {
	Address string `yaml:"address"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // json | console
}

type GameConfig struct {
	MaxCharacters int    `yaml:"max_characters"`
	Seed          uint64 `yaml:"seed"` // 0 seeds from the clock
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Address: ":8080"},
		Log:    LogConfig{Level: "info", Format: "json"},
		Game:   GameConfig{MaxCharacters: 100},
	}
}

// Load builds a Config from defaults, the file at path and the environment,
// in that order. An empty path skips the file. Variables from envFiles (".env"
// when none are given) are loaded first; missing env files are ignored.
//
// HCL files may reference the environment as env.NAME.
func Load(path string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	for _, file := range envFiles {
		// Non-fatal: .env may not exist in production
		_ = godotenv.Load(file)
	}

	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".hcl":
		return c.loadHCL(path)
	case ".yaml", ".yml":
		return c.loadYAML(path)
	default:
		return fmt.Errorf("unsupported config file extension %q", ext)
	}
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}

	return nil
}

// hclFile mirrors Config with every block and attribute optional.
type hclFile struct {
	Server *struct {
		Address *string `hcl:"address,optional"`
	} `hcl:"server,block"`
	Log *struct {
		Level  *string `hcl:"level,optional"`
		Format *string `hcl:"format,optional"`
	} `hcl:"log,block"`
	Game *struct {
		MaxCharacters *int   `hcl:"max_characters,optional"`
		Seed          *int64 `hcl:"seed,optional"`
	} `hcl:"game,block"`
}

func (c *Config) loadHCL(path string) error {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root hclFile
	diags = gohcl.DecodeBody(file.Body, envContext(), &root)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	if s := root.Server; s != nil {
		setIf(&c.Server.Address, s.Address)
	}

	if l := root.Log; l != nil {
		setIf(&c.Log.Level, l.Level)
		setIf(&c.Log.Format, l.Format)
	}

	if g := root.Game; g != nil {
		setIf(&c.Game.MaxCharacters, g.MaxCharacters)

		if g.Seed != nil {
			if *g.Seed < 0 {
				return fmt.Errorf("game.seed must not be negative, got %d", *g.Seed)
			}

			c.Game.Seed = uint64(*g.Seed)
		}
	}

	return nil
}

// envContext exposes the process environment to HCL expressions as env.*.
func envContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)

	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !validIdentifier(name) {
			continue
		}

		vars[name] = cty.StringVal(value)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

// validIdentifier reports whether name can be used as an HCL attribute
// traversal, e.g. env.HOME.
func validIdentifier(name string) bool {
	if name == "" {
		return false
	}

	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r == '-' || r >= '0' && r <= '9'):
		default:
			return false
		}
	}

	return true
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("GAME_ADDRESS"); ok {
		c.Server.Address = v
	}

	if v, ok := os.LookupEnv("GAME_LOG_LEVEL"); ok {
		c.Log.Level = v
	}

	if v, ok := os.LookupEnv("GAME_LOG_FORMAT"); ok {
		c.Log.Format = v
	}

	if v, ok := os.LookupEnv("GAME_MAX_CHARACTERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid GAME_MAX_CHARACTERS %q: %w", v, err)
		}

		c.Game.MaxCharacters = n
	}

	if v, ok := os.LookupEnv("GAME_SEED"); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid GAME_SEED %q: %w", v, err)
		}

		c.Game.Seed = n
	}

	return nil
}

// Validate checks the configuration for values the server cannot use.
func (c *Config) Validate() error {
	var errs error

	if c.Server.Address == "" {
		errs = multierr.Append(errs, errors.New("server.address is required"))
	}

	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("log.level: %w", err))
	}

	if c.Log.Format != "json" && c.Log.Format != "console" {
		errs = multierr.Append(errs, fmt.Errorf("log.format must be json or console, got %q", c.Log.Format))
	}

	if c.Game.MaxCharacters < 0 {
		errs = multierr.Append(errs, fmt.Errorf("game.max_characters must not be negative, got %d", c.Game.MaxCharacters))
	}

	return errs
}

// Logger builds a zap logger for the configured level and format.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if c.Log.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}

	zc.Level = level

	return zc.Build()
}

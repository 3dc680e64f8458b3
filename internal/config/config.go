// Package config loads orgtext settings from JSONC files and flag overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog"
	"github.com/tailscale/hujson"

	"github.com/calvinalkan/orgtext/pkg/fs"
)

// Output formats accepted by the "format" setting.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the valid output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// FileName is the project config file name.
const FileName = ".orgtext.json"

var (
	ErrFileNotFound    = errors.New("config file not found")
	ErrFileRead        = errors.New("cannot read config file")
	ErrInvalid         = errors.New("invalid config file")
	ErrFormatInvalid   = errors.New("format must be one of text, json, yaml")
	ErrLogLevelInvalid = errors.New("unknown log level")
	ErrIndentInvalid   = errors.New("indent must be between 0 and 8")
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	Format   string `json:"format,omitempty"`
	LogLevel string `json:"log_level,omitempty"`
	Indent   *int   `json:"indent,omitempty"`

	// Resolved (computed, not serialized)
	EffectiveCwd string `json:"-"`

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project or explicit config if loaded, empty otherwise
}

// Default returns the default configuration.
func Default() Config {
	indent := 2

	return Config{
		Format:   FormatText,
		LogLevel: zerolog.WarnLevel.String(),
		Indent:   &indent,
	}
}

// IndentWidth returns the indent setting, falling back to the default.
func (c Config) IndentWidth() int {
	if c.Indent == nil {
		return *Default().Indent
	}

	return *c.Indent
}

// Level returns the parsed log level. Load rejects unknown names, so this
// only falls back to warn for hand-built configs.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.WarnLevel
	}

	return lvl
}

// GlobalPath returns the path of the global config file.
// Uses $XDG_CONFIG_HOME/orgtext/config.json if set, otherwise
// ~/.config/orgtext/config.json. Returns "" when neither is known.
func GlobalPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "orgtext", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "orgtext", "config.json")
	}

	return ""
}

// Input holds the inputs for [Load].
type Input struct {
	FS              fs.FS             // filesystem to read config files from
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	Format          string            // --format flag value; empty means no override
	LogLevel        string            // log level override (-v sets debug)
	Env             map[string]string // environment variables
}

// Load resolves configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config
// 3. Project config file (.orgtext.json in the working directory, if present)
// 4. Explicit config file via ConfigPath (replaces 3, must exist)
// 5. Flag overrides.
func Load(in Input) (Config, error) {
	workDir := in.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	fsys := in.FS
	if fsys == nil {
		fsys = fs.NewReal()
	}

	cfg := Default()

	globalPath := GlobalPath(in.Env)
	if globalPath != "" {
		globalCfg, loaded, err := loadFile(fsys, globalPath, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg.Sources.Global = globalPath
			cfg = merge(cfg, globalCfg)
		}
	}

	projectPath, mustExist := filepath.Join(workDir, FileName), false
	if in.ConfigPath != "" {
		projectPath, mustExist = in.ConfigPath, true
		if !filepath.IsAbs(projectPath) {
			projectPath = filepath.Join(workDir, projectPath)
		}
	}

	projectCfg, loaded, err := loadFile(fsys, projectPath, mustExist)
	if err != nil {
		return Config{}, err
	}

	if loaded {
		cfg.Sources.Project = projectPath
		cfg = merge(cfg, projectCfg)
	}

	cfg = merge(cfg, Config{Format: in.Format, LogLevel: in.LogLevel})

	err = validate(cfg)
	if err != nil {
		return Config{}, err
	}

	cfg.EffectiveCwd = workDir

	return cfg, nil
}

// loadFile reads one config file. Missing optional files load nothing.
func loadFile(fsys fs.FS, path string, mustExist bool) (Config, bool, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if mustExist {
				return Config{}, false, fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}

			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("%w %s: %w", ErrFileRead, path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrInvalid, path, err)
	}

	return cfg, true, nil
}

// Parse decodes one JSONC config document and validates the fields it sets.
func Parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	err = json.Unmarshal(standardized, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	for _, key := range []string{"format", "log_level"} {
		if val, ok := raw[key].(string); ok && val == "" {
			return Config{}, fmt.Errorf("%s cannot be empty", key)
		}
	}

	err = validate(cfg)
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func merge(base, overlay Config) Config {
	if overlay.Format != "" {
		base.Format = overlay.Format
	}

	if overlay.LogLevel != "" {
		base.LogLevel = overlay.LogLevel
	}

	if overlay.Indent != nil {
		base.Indent = overlay.Indent
	}

	return base
}

// validate checks set fields only; empty fields are filled by defaults.
func validate(cfg Config) error {
	if cfg.Format != "" && !slices.Contains(Formats, cfg.Format) {
		return fmt.Errorf("%w: %q", ErrFormatInvalid, cfg.Format)
	}

	if cfg.LogLevel != "" {
		_, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrLogLevelInvalid, cfg.LogLevel)
		}
	}

	if cfg.Indent != nil && (*cfg.Indent < 0 || *cfg.Indent > 8) {
		return fmt.Errorf("%w: %d", ErrIndentInvalid, *cfg.Indent)
	}

	return nil
}

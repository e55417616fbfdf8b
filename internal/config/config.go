// Package config provides Viper-based configuration loading for the arena.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// DUNGEON_PLAYER_CLASS overrides player.class.
const EnvPrefix = "DUNGEON"

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File receives log output instead of stderr when set, keeping the
	// terminal free for battle output.
	File string `mapstructure:"file"`
}

// ContentConfig locates the YAML content directories.
type ContentConfig struct {
	ItemsDir   string `mapstructure:"items_dir"`
	EnemiesDir string `mapstructure:"enemies_dir"`
}

// PlayerConfig describes the player's character.
type PlayerConfig struct {
	Name  string `mapstructure:"name"`
	Class string `mapstructure:"class"`
	// StartingItems are item IDs given at creation; weapons and armor are
	// equipped into empty slots.
	StartingItems []string `mapstructure:"starting_items"`
	InventorySize int      `mapstructure:"inventory_size"`
}

// BattleConfig selects the encounter.
type BattleConfig struct {
	// Enemy is the enemy template ID.
	Enemy string `mapstructure:"enemy"`
	// MaxRounds stops the CLI loop after this many rounds; 0 = unlimited.
	MaxRounds int `mapstructure:"max_rounds"`
	// Seed makes randomness reproducible; 0 uses crypto/rand.
	Seed uint64 `mapstructure:"seed"`
}

// ScriptingConfig holds Lua hook settings.
type ScriptingConfig struct {
	// ScriptDir holds *.lua hook scripts; empty disables scripting.
	ScriptDir string `mapstructure:"script_dir"`
	// InstructionLimit bounds each hook call; 0 uses the engine default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Content   ContentConfig   `mapstructure:"content"`
	Player    PlayerConfig    `mapstructure:"player"`
	Battle    BattleConfig    `mapstructure:"battle"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string
	for _, err := range []error{
		validateLogging(c.Logging),
		validateContent(c.Content),
		validatePlayer(c.Player),
		validateBattle(c.Battle),
		validateScripting(c.Scripting),
	} {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.ItemsDir == "" {
		errs = append(errs, "content.items_dir must not be empty")
	}
	if c.EnemiesDir == "" {
		errs = append(errs, "content.enemies_dir must not be empty")
	}
	return joined(errs)
}

func validatePlayer(p PlayerConfig) error {
	var errs []string
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, "player.name must not be empty")
	}
	validClasses := map[string]bool{"warrior": true, "mage": true, "archer": true}
	if !validClasses[p.Class] {
		errs = append(errs, fmt.Sprintf("player.class must be one of [warrior, mage, archer], got %q", p.Class))
	}
	if p.InventorySize < 1 {
		errs = append(errs, fmt.Sprintf("player.inventory_size must be >= 1, got %d", p.InventorySize))
	}
	if len(p.StartingItems) > p.InventorySize && p.InventorySize >= 1 {
		errs = append(errs, fmt.Sprintf("player.starting_items (%d) exceed player.inventory_size (%d)", len(p.StartingItems), p.InventorySize))
	}
	return joined(errs)
}

func validateBattle(b BattleConfig) error {
	var errs []string
	if b.Enemy == "" {
		errs = append(errs, "battle.enemy must not be empty")
	}
	if b.MaxRounds < 0 {
		errs = append(errs, fmt.Sprintf("battle.max_rounds must be >= 0, got %d", b.MaxRounds))
	}
	return joined(errs)
}

func validateScripting(s ScriptingConfig) error {
	if s.InstructionLimit < 0 {
		return fmt.Errorf("scripting.instruction_limit must be >= 0, got %d", s.InstructionLimit)
	}
	return nil
}

func joined(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s", strings.Join(errs, "; "))
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := NewViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// NewViper returns a Viper instance with defaults and DUNGEON_ environment
// overrides applied but no file read.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")

	v.SetDefault("content.items_dir", "content/items")
	v.SetDefault("content.enemies_dir", "content/enemies")

	v.SetDefault("player.name", "Hero")
	v.SetDefault("player.class", "warrior")
	v.SetDefault("player.starting_items", []string{})
	v.SetDefault("player.inventory_size", 20)

	v.SetDefault("battle.enemy", "goblin")
	v.SetDefault("battle.max_rounds", 0)
	v.SetDefault("battle.seed", 0)

	v.SetDefault("scripting.script_dir", "")
	v.SetDefault("scripting.instruction_limit", 100000)
}

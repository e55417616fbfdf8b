package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Content: ContentConfig{ItemsDir: "content/items", EnemiesDir: "content/enemies"},
		Player: PlayerConfig{
			Name:          "Hero",
			Class:         "warrior",
			StartingItems: []string{"iron_sword", "health_potion"},
			InventorySize: 20,
		},
		Battle:    BattleConfig{Enemy: "goblin"},
		Scripting: ScriptingConfig{InstructionLimit: 1000},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: console
content:
  items_dir: /srv/items
  enemies_dir: /srv/enemies
player:
  name: Aria
  class: archer
  starting_items: [short_bow, health_potion]
  inventory_size: 10
battle:
  enemy: dark_knight
  max_rounds: 50
  seed: 42
scripting:
  script_dir: /srv/scripts
  instruction_limit: 5000
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/srv/items", cfg.Content.ItemsDir)
	assert.Equal(t, "Aria", cfg.Player.Name)
	assert.Equal(t, "archer", cfg.Player.Class)
	assert.Equal(t, []string{"short_bow", "health_potion"}, cfg.Player.StartingItems)
	assert.Equal(t, 10, cfg.Player.InventorySize)
	assert.Equal(t, "dark_knight", cfg.Battle.Enemy)
	assert.Equal(t, 50, cfg.Battle.MaxRounds)
	assert.Equal(t, uint64(42), cfg.Battle.Seed)
	assert.Equal(t, "/srv/scripts", cfg.Scripting.ScriptDir)
	assert.Equal(t, 5000, cfg.Scripting.InstructionLimit)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "player:\n  name: Conan\n"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "warrior", cfg.Player.Class)
	assert.Equal(t, 20, cfg.Player.InventorySize)
	assert.Equal(t, "goblin", cfg.Battle.Enemy)
	assert.Equal(t, "", cfg.Scripting.ScriptDir)
	assert.Equal(t, 100000, cfg.Scripting.InstructionLimit)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DUNGEON_PLAYER_CLASS", "mage")
	t.Setenv("DUNGEON_BATTLE_ENEMY", "skeleton")
	cfg, err := Load(writeConfig(t, "player:\n  class: warrior\n"))
	require.NoError(t, err)
	assert.Equal(t, "mage", cfg.Player.Class)
	assert.Equal(t, "skeleton", cfg.Battle.Enemy)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	_, err := Load(writeConfig(t, "player:\n  class: bard\n"))
	assert.ErrorContains(t, err, "player.class")
}

func TestLoadFromViper(t *testing.T) {
	v := NewViper()
	v.Set("player.name", "Merlin")
	v.Set("player.class", "mage")
	cfg, err := LoadFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "Merlin", cfg.Player.Name)
	assert.Equal(t, "mage", cfg.Player.Class)
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	cfg.Player.Name = " "
	cfg.Battle.Enemy = ""
	cfg.Scripting.InstructionLimit = -1
	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"logging.level", "player.name", "battle.enemy", "scripting.instruction_limit"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidatePlayerClass(t *testing.T) {
	for _, class := range []string{"warrior", "mage", "archer"} {
		cfg := validConfig()
		cfg.Player.Class = class
		assert.NoError(t, cfg.Validate(), "class %q should be valid", class)
	}
}

func TestValidateContentDirs(t *testing.T) {
	cfg := validConfig()
	cfg.Content.ItemsDir = ""
	cfg.Content.EnemiesDir = ""
	err := cfg.Validate()
	assert.ErrorContains(t, err, "content.items_dir")
	assert.ErrorContains(t, err, "content.enemies_dir")
}

func TestValidateStartingItemsFit(t *testing.T) {
	cfg := validConfig()
	cfg.Player.InventorySize = 1
	assert.ErrorContains(t, cfg.Validate(), "exceed")
}

func TestPropertyInventorySize(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.IntRange(-5, 100).Draw(t, "size")
		cfg := validConfig()
		cfg.Player.StartingItems = nil
		cfg.Player.InventorySize = size
		err := cfg.Validate()
		if (size >= 1) != (err == nil) {
			t.Fatalf("inventory_size %d: err=%v", size, err)
		}
	})
}

func TestPropertyMaxRounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rounds := rapid.IntRange(-100, 1000).Draw(t, "rounds")
		cfg := validConfig()
		cfg.Battle.MaxRounds = rounds
		err := cfg.Validate()
		if (rounds >= 0) != (err == nil) {
			t.Fatalf("max_rounds %d: err=%v", rounds, err)
		}
	})
}

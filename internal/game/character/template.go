package character

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
)

// Template describes an enemy archetype loaded from YAML.
type Template struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Class       Class    `yaml:"class"`
	Level       int      `yaml:"level"`
	Weapon      string   `yaml:"weapon"` // item id; empty = unarmed
	Armor       []string `yaml:"armor"`
	Items       []string `yaml:"items"`
	Gold        int      `yaml:"gold"`
}

// Validate checks that the template satisfies basic invariants.
//
// Postcondition: returns nil iff ID and Name are non-empty, Class is known,
// Level >= 1 and Gold >= 0; returns an error on the first violation otherwise.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("enemy template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("enemy template %q: name must not be empty", t.ID)
	}
	if !t.Class.Valid() {
		return fmt.Errorf("enemy template %q: class %q is not valid", t.ID, t.Class)
	}
	if t.Level < 1 {
		return fmt.Errorf("enemy template %q: level must be >= 1", t.ID)
	}
	if t.Gold < 0 {
		return fmt.Errorf("enemy template %q: gold must be >= 0", t.ID)
	}
	return nil
}

// LoadTemplateFromBytes parses and validates a single template.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing enemy template: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTemplates reads every *.yaml and *.yml file in dir as a Template.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all templates or the first error; duplicate IDs are
// an error.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading enemy dir %q: %w", dir, err)
	}
	seen := make(map[string]string)
	var out []*Template
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !(strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
			continue
		}
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		t, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if prev, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("%s: enemy template %q already defined in %s", path, t.ID, prev)
		}
		seen[t.ID] = path
		out = append(out, t)
	}
	return out, nil
}

// Build creates a live character from the template: the class at the
// template's level, fully restored, equipped and carrying its items.
//
// Precondition: reg contains every item id the template names.
func (t *Template) Build(reg *inventory.Registry, roller *dice.Roller) (Fighter, error) {
	f, err := New(t.Class, t.Name, roller)
	if err != nil {
		return nil, err
	}
	f.GainExperience((t.Level - 1) * ExperiencePerLevel)
	if t.Weapon != "" {
		if err := Equip(f, reg, t.Weapon); err != nil {
			return nil, fmt.Errorf("enemy template %q: %w", t.ID, err)
		}
	}
	for _, id := range t.Armor {
		if err := Equip(f, reg, id); err != nil {
			return nil, fmt.Errorf("enemy template %q: %w", t.ID, err)
		}
	}
	for _, id := range t.Items {
		if _, err := Give(f, reg, id); err != nil {
			return nil, fmt.Errorf("enemy template %q: %w", t.ID, err)
		}
	}
	f.AddGold(t.Gold)
	return f, nil
}

// Package inventory provides item definitions loaded from YAML, concrete item
// instances, and the slot-limited Inventory carried by every combatant.
package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
)

// Kind constants for ItemDef.Kind.
const (
	KindPotion = "potion"
	KindWeapon = "weapon"
	KindArmor  = "armor"
	KindJunk   = "junk"
)

var validKinds = map[string]bool{
	KindPotion: true,
	KindWeapon: true,
	KindArmor:  true,
	KindJunk:   true,
}

// Rarity grades an item. The zero value is treated as RarityCommon.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

var validRarities = map[Rarity]bool{
	"":              true,
	RarityCommon:    true,
	RarityUncommon:  true,
	RarityRare:      true,
	RarityEpic:      true,
	RarityLegendary: true,
}

// PotionType selects what a potion restores.
type PotionType string

const (
	PotionHealth   PotionType = "health"
	PotionMana     PotionType = "mana"
	PotionStrength PotionType = "strength"
	PotionDefense  PotionType = "defense"
)

// ArmorSlot is the body location an armor piece occupies.
type ArmorSlot string

const (
	SlotHead   ArmorSlot = "head"
	SlotChest  ArmorSlot = "chest"
	SlotLegs   ArmorSlot = "legs"
	SlotBoots  ArmorSlot = "boots"
	SlotGloves ArmorSlot = "gloves"
)

var validSlots = map[ArmorSlot]bool{
	SlotHead:   true,
	SlotChest:  true,
	SlotLegs:   true,
	SlotBoots:  true,
	SlotGloves: true,
}

// PotionDef holds the potion-specific properties of an ItemDef.
type PotionDef struct {
	Type    PotionType `yaml:"type"`
	Potency int        `yaml:"potency"`
	Uses    int        `yaml:"uses"`
}

// WeaponDef holds the weapon-specific properties of an ItemDef.
type WeaponDef struct {
	// Damage is a dice expression such as "1d6+4".
	Damage string `yaml:"damage"`
}

// ArmorDef holds the armor-specific properties of an ItemDef.
type ArmorDef struct {
	Slot    ArmorSlot `yaml:"slot"`
	Defense int       `yaml:"defense"`
}

// ItemDef defines the static properties of an item loaded from YAML.
type ItemDef struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Kind        string     `yaml:"kind"`
	Rarity      Rarity     `yaml:"rarity"`
	Weight      int        `yaml:"weight"`
	Value       int        `yaml:"value"`
	Potion      *PotionDef `yaml:"potion"`
	Weapon      *WeaponDef `yaml:"weapon"`
	Armor       *ArmorDef  `yaml:"armor"`
}

// Validate checks that the ItemDef satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid; otherwise the error
// lists every violation.
func (d *ItemDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if !validKinds[d.Kind] {
		errs = append(errs, fmt.Errorf("kind must be one of potion, weapon, armor, junk; got %q", d.Kind))
	}
	if !validRarities[d.Rarity] {
		errs = append(errs, fmt.Errorf("rarity %q is not valid", d.Rarity))
	}
	if d.Weight < 0 {
		errs = append(errs, errors.New("weight must be >= 0"))
	}
	if d.Value < 0 {
		errs = append(errs, errors.New("value must be >= 0"))
	}
	switch d.Kind {
	case KindPotion:
		if d.Potion == nil {
			errs = append(errs, errors.New("potion block is required when kind is potion"))
		} else {
			switch d.Potion.Type {
			case PotionHealth, PotionMana, PotionStrength, PotionDefense:
			default:
				errs = append(errs, fmt.Errorf("potion.type %q is not valid", d.Potion.Type))
			}
			if d.Potion.Potency < 0 {
				errs = append(errs, errors.New("potion.potency must be >= 0"))
			}
			if d.Potion.Uses < 1 {
				errs = append(errs, errors.New("potion.uses must be >= 1"))
			}
		}
	case KindWeapon:
		if d.Weapon == nil {
			errs = append(errs, errors.New("weapon block is required when kind is weapon"))
		} else if expr, err := dice.Parse(d.Weapon.Damage); err != nil {
			errs = append(errs, fmt.Errorf("weapon.damage: %w", err))
		} else if expr.Min() < 0 {
			errs = append(errs, fmt.Errorf("weapon.damage %q can roll below 0", d.Weapon.Damage))
		}
	case KindArmor:
		if d.Armor == nil {
			errs = append(errs, errors.New("armor block is required when kind is armor"))
		} else {
			if !validSlots[d.Armor.Slot] {
				errs = append(errs, fmt.Errorf("armor.slot %q is not valid", d.Armor.Slot))
			}
			if d.Armor.Defense < 0 {
				errs = append(errs, errors.New("armor.defense must be >= 0"))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("item validation failed: %v", errs)
	}
	return nil
}

// LoadItems reads all *.yaml and *.yml files from dir, parses each as an
// ItemDef, validates it, and returns the collected slice.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid ItemDefs or the first encountered error.
func LoadItems(dir string) ([]*ItemDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadItems: cannot read directory %q: %w", dir, err)
	}

	var items []*ItemDef
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadItems: cannot read file %q: %w", path, err)
		}
		var d ItemDef
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("LoadItems: cannot parse file %q: %w", path, err)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("LoadItems: invalid item in %q: %w", path, err)
		}
		items = append(items, &d)
	}
	return items, nil
}

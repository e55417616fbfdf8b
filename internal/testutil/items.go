package testutil

import "github.com/cory-johannsen/dungeon/internal/game/inventory"

// HealthPotionDef returns a single-use "Health Potion" restoring potency HP.
func HealthPotionDef(potency int) *inventory.ItemDef {
	return &inventory.ItemDef{
		ID:     "health_potion",
		Name:   "Health Potion",
		Kind:   inventory.KindPotion,
		Rarity: inventory.RarityCommon,
		Weight: 1,
		Value:  20,
		Potion: &inventory.PotionDef{Type: inventory.PotionHealth, Potency: potency, Uses: 1},
	}
}

// ManaPotionDef returns a single-use "Mana Potion" restoring potency mana.
func ManaPotionDef(potency int) *inventory.ItemDef {
	return &inventory.ItemDef{
		ID:     "mana_potion",
		Name:   "Mana Potion",
		Kind:   inventory.KindPotion,
		Weight: 1,
		Value:  25,
		Potion: &inventory.PotionDef{Type: inventory.PotionMana, Potency: potency, Uses: 1},
	}
}

// SwordDef returns a weapon rolling damage.
func SwordDef(damage string) *inventory.ItemDef {
	return &inventory.ItemDef{
		ID:     "iron_sword",
		Name:   "Iron Sword",
		Kind:   inventory.KindWeapon,
		Weight: 6,
		Value:  50,
		Weapon: &inventory.WeaponDef{Damage: damage},
	}
}

// ArmorPieceDef returns an armor piece for slot with the given defense.
func ArmorPieceDef(id string, slot inventory.ArmorSlot, defense int) *inventory.ItemDef {
	return &inventory.ItemDef{
		ID:    id,
		Name:  id,
		Kind:  inventory.KindArmor,
		Armor: &inventory.ArmorDef{Slot: slot, Defense: defense},
	}
}

// JunkDef returns a junk item named name.
func JunkDef(name string) *inventory.ItemDef {
	return &inventory.ItemDef{ID: name, Name: name, Kind: inventory.KindJunk}
}

// MustItem instantiates def and panics on error.
func MustItem(def *inventory.ItemDef) inventory.Item {
	it, err := inventory.NewItem(def)
	if err != nil {
		panic(err)
	}
	return it
}

package battle_test

import (
	"fmt"

	"github.com/cory-johannsen/dungeon/internal/game/battle"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
)

// stubCombatant is a Combatant with fixed attack damage and flat defense.
type stubCombatant struct {
	name      string
	level     int
	hp, maxHP int
	mana      int
	maxMana   int
	damage    int
	defense   int
	special   bool

	inv    *inventory.Inventory
	recent []inventory.Item
	// full makes AddItem fail as if the inventory had no free slot.
	full bool

	gold, xp   int
	goldGrants int
	specials   []battle.Combatant
}

func newStub(name string, level, hp int) *stubCombatant {
	return &stubCombatant{
		name:    name,
		level:   level,
		hp:      hp,
		maxHP:   hp,
		mana:    10,
		maxMana: 10,
		inv:     inventory.NewInventory(inventory.DefaultCapacity),
	}
}

func (s *stubCombatant) Name() string       { return s.name }
func (s *stubCombatant) Level() int         { return s.level }
func (s *stubCombatant) IsAlive() bool      { return s.hp > 0 }
func (s *stubCombatant) CurrentHealth() int { return s.hp }
func (s *stubCombatant) MaxHealth() int     { return s.maxHP }
func (s *stubCombatant) CurrentMana() int   { return s.mana }
func (s *stubCombatant) MaxMana() int       { return s.maxMana }

func (s *stubCombatant) Heal(amount int) {
	s.hp = min(s.maxHP, s.hp+amount)
}

func (s *stubCombatant) RestoreMana(amount int) {
	s.mana = min(s.maxMana, s.mana+amount)
}

func (s *stubCombatant) CalculateAttackDamage() int { return s.damage }

func (s *stubCombatant) UseSpecialAbility(target battle.Combatant) bool {
	s.specials = append(s.specials, target)
	return s.special
}

func (s *stubCombatant) TakeDamage(amount int) {
	s.hp = max(0, s.hp-max(0, amount-s.defense))
}

func (s *stubCombatant) RemoveItem(name string) (inventory.Item, error) {
	return s.inv.Remove(name)
}

func (s *stubCombatant) AddItem(item inventory.Item) error {
	if s.full {
		return fmt.Errorf("cannot add %q: %w", item.Name(), inventory.ErrInventoryFull)
	}
	return s.inv.Add(item)
}

func (s *stubCombatant) PushRecentlyUsed(item inventory.Item) {
	s.recent = append(s.recent, item)
}

func (s *stubCombatant) AddGold(amount int) {
	s.gold += amount
	s.goldGrants++
}

func (s *stubCombatant) GainExperience(amount int) { s.xp += amount }

// recordingHooks captures every hook call and answers with fixed lines.
type recordingHooks struct {
	started  []string
	resolved []string
	ended    []string
	reply    string
}

func (h *recordingHooks) BattleStarted(player, enemy string) string {
	h.started = append(h.started, player+" vs "+enemy)
	return h.reply
}

func (h *recordingHooks) ActionResolved(actor string, kind battle.ActionKind, message string) string {
	h.resolved = append(h.resolved, actor+":"+kind.String())
	return h.reply
}

func (h *recordingHooks) BattleEnded(winner string, fled bool) string {
	if fled {
		h.ended = append(h.ended, winner+" (fled)")
	} else {
		h.ended = append(h.ended, winner)
	}
	return h.reply
}

package battle_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dungeon/internal/game/battle"
	"github.com/cory-johannsen/dungeon/internal/testutil"
)

func execute(t *testing.T, src *testutil.SequenceSource, actor, target *stubCombatant, kind battle.ActionKind) battle.Outcome {
	t.Helper()
	a, err := battle.NewAction(actor, target, kind)
	require.NoError(t, err)
	return battle.NewExecutor(src, zap.NewNop()).Execute(a)
}

func TestExecutor_Attack_AppliesDefense(t *testing.T) {
	hero, goblin := newStub("Hero", 5, 100), newStub("Goblin", 3, 50)
	hero.damage = 20
	goblin.defense = 5

	out := execute(t, testutil.NewFloats(), hero, goblin, battle.ActionAttack)
	assert.Equal(t, "Hero attacked for 20 damage.", out.Message)
	assert.Equal(t, 35, goblin.CurrentHealth())
	assert.False(t, out.Fled)
}

func TestProperty_Executor_AttackDamageIsRawMinusDefense(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		raw := rapid.IntRange(0, 200).Draw(rt, "raw")
		def := rapid.IntRange(0, 200).Draw(rt, "def")
		hp := rapid.IntRange(1, 500).Draw(rt, "hp")
		hero, goblin := newStub("Hero", 1, 100), newStub("Goblin", 1, hp)
		hero.damage = raw
		goblin.defense = def

		a, _ := battle.NewAction(hero, goblin, battle.ActionAttack)
		battle.NewExecutor(testutil.NewFloats(), zap.NewNop()).Execute(a)

		want := max(0, hp-max(0, raw-def))
		if goblin.CurrentHealth() != want {
			rt.Fatalf("health %d, want %d", goblin.CurrentHealth(), want)
		}
	})
}

func TestExecutor_Special(t *testing.T) {
	hero, goblin := newStub("Hero", 1, 10), newStub("Goblin", 1, 10)

	out := execute(t, testutil.NewFloats(), hero, goblin, battle.ActionSpecial)
	assert.Equal(t, "Hero failed special ability.", out.Message)

	hero.special = true
	out = execute(t, testutil.NewFloats(), hero, goblin, battle.ActionSpecial)
	assert.Equal(t, "Hero used special ability!", out.Message)
	require.Len(t, hero.specials, 2)
	assert.Same(t, goblin, hero.specials[1])
}

func TestExecutor_Defend(t *testing.T) {
	hero, goblin := newStub("Hero", 1, 10), newStub("Goblin", 1, 10)
	out := execute(t, testutil.NewFloats(), hero, goblin, battle.ActionDefend)
	assert.Equal(t, "Hero is defending.", out.Message)
	assert.Equal(t, []string{"Hero takes defensive stance."}, out.Notes)
	assert.Equal(t, 10, hero.CurrentHealth())
	assert.Equal(t, 10, goblin.CurrentHealth())
}

func useItem(t *testing.T, actor, target *stubCombatant, name string) battle.Outcome {
	t.Helper()
	a, err := battle.NewItemAction(actor, target, name)
	require.NoError(t, err)
	return battle.NewExecutor(testutil.NewFloats(), zap.NewNop()).Execute(a)
}

func TestExecutor_UseItem_Success(t *testing.T) {
	hero, goblin := newStub("Hero", 1, 100), newStub("Goblin", 1, 10)
	hero.hp = 40
	potion := testutil.MustItem(testutil.HealthPotionDef(30))
	require.NoError(t, hero.inv.Add(potion))

	out := useItem(t, hero, goblin, "Health Potion")
	assert.Equal(t, "Hero used Health Potion", out.Message)
	assert.Equal(t, 70, hero.CurrentHealth())
	assert.Equal(t, 0, hero.inv.Len())
	require.Len(t, hero.recent, 1)
	assert.Equal(t, potion.InstanceID(), hero.recent[0].InstanceID())
}

func TestExecutor_UseItem_NotFound(t *testing.T) {
	hero, goblin := newStub("Hero", 1, 100), newStub("Goblin", 1, 10)
	out := useItem(t, hero, goblin, "Nonexistent Potion")
	assert.True(t, strings.HasPrefix(out.Message, "Error: "), out.Message)
	assert.Contains(t, out.Message, "not found in inventory")
	assert.Equal(t, 100, hero.CurrentHealth())
	assert.Empty(t, hero.recent)
}

func TestExecutor_UseItem_FailureReturnsItem(t *testing.T) {
	hero, goblin := newStub("Hero", 1, 100), newStub("Goblin", 1, 10)
	// Full health: the potion has no effect and goes back.
	require.NoError(t, hero.inv.Add(testutil.MustItem(testutil.HealthPotionDef(30))))
	require.NoError(t, hero.inv.Add(testutil.MustItem(testutil.JunkDef("Rock"))))

	out := useItem(t, hero, goblin, "Health Potion")
	assert.Equal(t, "Hero failed to use item.", out.Message)
	assert.True(t, hero.inv.Contains("Health Potion"))

	out = useItem(t, hero, goblin, "Rock")
	assert.Equal(t, "Hero failed to use item.", out.Message)
	assert.True(t, hero.inv.Contains("Rock"))
	assert.Equal(t, 2, hero.inv.Len())
	assert.Empty(t, hero.recent)
}

func TestExecutor_UseItem_FullInventorySwallowed(t *testing.T) {
	hero, goblin := newStub("Hero", 1, 100), newStub("Goblin", 1, 10)
	require.NoError(t, hero.inv.Add(testutil.MustItem(testutil.JunkDef("Rock"))))
	hero.full = true

	out := useItem(t, hero, goblin, "Rock")
	assert.Equal(t, "Hero failed to use item.", out.Message)
	assert.False(t, hero.inv.Contains("Rock"))
}

func TestFleeChance(t *testing.T) {
	assert.InDelta(t, 0.30, battle.FleeChance(3, 3), 1e-9)
	assert.InDelta(t, 0.40, battle.FleeChance(5, 3), 1e-9)
	assert.InDelta(t, 0.20, battle.FleeChance(1, 3), 1e-9)
	// Unclamped at both ends.
	assert.Greater(t, battle.FleeChance(20, 1), 1.0)
	assert.Less(t, battle.FleeChance(1, 10), 0.0)
}

func TestExecutor_Flee_Boundary(t *testing.T) {
	hero, goblin := newStub("Hero", 5, 10), newStub("Goblin", 3, 10)
	chance := battle.FleeChance(5, 3)

	out := execute(t, testutil.NewFloats(chance), hero, goblin, battle.ActionFlee)
	assert.False(t, out.Fled, "a draw equal to the chance must fail")
	assert.Equal(t, "Hero failed to flee.", out.Message)

	out = execute(t, testutil.NewFloats(chance-0.0001), hero, goblin, battle.ActionFlee)
	assert.True(t, out.Fled)
	assert.Equal(t, "Hero fled the battle!", out.Message)
}

func TestExecutor_Flee_CertainAndImpossible(t *testing.T) {
	strong, weak := newStub("Strong", 20, 10), newStub("Weak", 1, 10)
	assert.True(t, execute(t, testutil.NewFloats(0.9999), strong, weak, battle.ActionFlee).Fled)
	assert.False(t, execute(t, testutil.NewFloats(0.0), weak, strong, battle.ActionFlee).Fled)
}

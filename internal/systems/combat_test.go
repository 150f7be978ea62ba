package systems

import (
	"math/rand"
	"strings"
	"testing"

	"grimdelve/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFighter(name string, kind domain.ActorKind, hp int) *domain.Actor {
	a := &domain.Actor{
		ID:     domain.ActorID(strings.ToLower(name)),
		Kind:   kind,
		Name:   name,
		Health: domain.Health{HP: hp, MaxHP: hp},
		Speed:  domain.BaseSpeed,
	}
	if kind == domain.KindMonster {
		a.Monster = &domain.MonsterState{DefKey: "test", Awake: true}
	}
	return a
}

func TestTestHit(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	// Нулевой и отрицательный шанс не попадает никогда.
	for i := 0; i < 50; i++ {
		assert.False(t, TestHit(0, 10, true, rng))
		assert.False(t, TestHit(-5, 10, true, rng))
	}

	// По нулевой и отрицательной броне попадает всегда.
	for i := 0; i < 50; i++ {
		assert.True(t, TestHit(30, 0, true, rng))
		assert.True(t, TestHit(30, -10, true, rng))
	}

	// Высокая броня против низкого шанса: промах гарантирован, потому
	// что бросок [0, chance) никогда не дотянет до порога брони.
	for i := 0; i < 50; i++ {
		assert.False(t, TestHit(10, 100, true, rng))
	}
}

func TestTestHit_RangedSoftensArmor(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	// AC 40: ближний порог 40, дистанционный ровно одна ступень
	// ослабления, 40*3/4 = 30. Шанс 35 в ближнем бою промахивается
	// всегда, дистанционно броски 30..34 попадают.
	for i := 0; i < 100; i++ {
		assert.False(t, TestHit(35, 40, true, rng))
	}
	hits := 0
	for i := 0; i < 200; i++ {
		if TestHit(35, 40, false, rng) {
			hits++
		}
	}
	assert.Positive(t, hits)
}

func TestCalcDamage(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	// 1d1 + 3 = 4; множитель 100 ничего не меняет.
	assert.Equal(t, 4, CalcDamage(Dice{Count: 1, Sides: 1}, 3, 100, rng))

	// Половинный множитель режет урон вниз.
	assert.Equal(t, 2, CalcDamage(Dice{Count: 1, Sides: 1}, 3, 50, rng))

	// Удвоение.
	assert.Equal(t, 8, CalcDamage(Dice{Count: 1, Sides: 1}, 3, 200, rng))

	// Отрицательный бонус не уводит урон в минус.
	assert.Equal(t, 0, CalcDamage(Dice{Count: 1, Sides: 1}, -10, 100, rng))
}

func TestPlayerAttack_GuaranteedKill(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	player := newFighter("Герой", domain.KindPlayer, 40)
	player.Combat = domain.CombatStats{WeaponDamage: "1d1", ToHit: 4, ToDam: 5, Dex: 14}

	monster := newFighter("Слизень", domain.KindMonster, 3)
	def := &domain.MonsterDef{Key: "test", Name: "Слизень", AC: 0}

	res := PlayerAttack(player, monster, def, rng)

	require.True(t, res.Hit)
	assert.Equal(t, 6, res.Damage)
	assert.True(t, res.Killed)
	assert.True(t, monster.IsDead())

	require.Len(t, res.Messages, 2)
	assert.Contains(t, res.Messages[0], "Вы бьете")
	assert.Contains(t, res.Messages[1], "погибает")
}

func TestPlayerAttack_CorpseKick(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	player := newFighter("Герой", domain.KindPlayer, 40)
	player.Combat = domain.CombatStats{WeaponDamage: "2d6", ToHit: 4, Dex: 14}

	monster := newFighter("Труп", domain.KindMonster, 0)
	def := &domain.MonsterDef{Key: "test", Name: "Труп", AC: 0}

	res := PlayerAttack(player, monster, def, rng)

	assert.False(t, res.Hit)
	assert.False(t, res.Killed)
	assert.Zero(t, res.Damage)
	require.Len(t, res.Messages, 1)
	assert.Contains(t, res.Messages[0], "труп")
}

func TestPlayerAttack_BadWeaponFallsBackToFists(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	player := newFighter("Герой", domain.KindPlayer, 40)
	player.Combat = domain.CombatStats{WeaponDamage: "oops", ToHit: 4, Dex: 14}

	monster := newFighter("Гоблин", domain.KindMonster, 10)
	def := &domain.MonsterDef{Key: "test", Name: "Гоблин", AC: 0}

	res := PlayerAttack(player, monster, def, rng)

	// Кривые кубики деградируют до 1d1: ровно единица урона.
	require.True(t, res.Hit)
	assert.Equal(t, 1, res.Damage)
	assert.Equal(t, 9, monster.Health.HP)
}

func TestMonsterAttack_NoAttacksIsNoop(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	monster := newFighter("Призрак", domain.KindMonster, 10)
	player := newFighter("Герой", domain.KindPlayer, 40)
	def := &domain.MonsterDef{Key: "test", Name: "Призрак"}

	res := MonsterAttack(monster, def, player, rng)

	assert.False(t, res.Hit)
	assert.Zero(t, res.Damage)
	assert.Empty(t, res.Messages)
	assert.Equal(t, 40, player.Health.HP)
}

func TestMonsterAttack_MultiPartDamageSums(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	monster := newFighter("Лютоволк", domain.KindMonster, 10)
	player := newFighter("Герой", domain.KindPlayer, 40)

	// Нулевая броня игрока: обе части попадают, урон 1d1 каждая.
	def := &domain.MonsterDef{
		Key:  "test",
		Name: "Лютоволк",
		Attacks: []domain.AttackDef{
			{Method: domain.MethodClaw, Damage: "1d1"},
			{Method: domain.MethodBite, Damage: "1d1"},
		},
	}

	res := MonsterAttack(monster, def, player, rng)

	require.True(t, res.Hit)
	assert.Equal(t, 2, res.Damage)
	assert.Equal(t, 38, player.Health.HP)

	require.Len(t, res.Messages, 2)
	assert.Contains(t, res.Messages[0], "claw")
	assert.Contains(t, res.Messages[1], "bite")
}

func TestMonsterAttack_EffectNamedInMessage(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	monster := newFighter("Умертвие", domain.KindMonster, 10)
	player := newFighter("Герой", domain.KindPlayer, 40)

	def := &domain.MonsterDef{
		Key:  "test",
		Name: "Умертвие",
		Attacks: []domain.AttackDef{
			{Method: domain.MethodTouch, Effect: domain.EffectDrain, Damage: "1d1"},
		},
	}

	res := MonsterAttack(monster, def, player, rng)

	require.Len(t, res.Messages, 1)
	assert.Contains(t, res.Messages[0], "touch, drain")
}

func TestMonsterAttack_StopsOnPlayerDeath(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	monster := newFighter("Палач", domain.KindMonster, 10)
	player := newFighter("Герой", domain.KindPlayer, 1)

	def := &domain.MonsterDef{
		Key:  "test",
		Name: "Палач",
		Attacks: []domain.AttackDef{
			{Method: domain.MethodHit, Damage: "1d1"},
			{Method: domain.MethodHit, Damage: "1d1"},
		},
	}

	res := MonsterAttack(monster, def, player, rng)

	assert.True(t, res.Killed)
	// Вторая часть атаки по мертвому не бросается.
	assert.Equal(t, 1, res.Damage)
	assert.Len(t, res.Messages, 1)
}

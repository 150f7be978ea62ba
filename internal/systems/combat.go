package systems

import (
	"fmt"
	"math/rand"

	"grimdelve/internal/domain"
	"grimdelve/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Базовые шансы попадания
const (
	playerBaseHitChance  = 50
	monsterBaseHitChance = 30
)

// PlayerHitChance - вычисленный шанс попадания игрока в ближнем бою.
func PlayerHitChance(player *domain.Actor) int {
	return playerBaseHitChance + player.Combat.ToHit + player.Combat.Dex/2
}

// MonsterHitChance - шанс попадания монстра, растет с глубиной.
func MonsterHitChance(def *domain.MonsterDef) int {
	return monsterBaseHitChance + def.Depth*3
}

// TestHit - процентное состязание шанса попадания и брони цели.
// В ближнем бою бросок соревнуется с полной броней, на дистанции
// с тремя четвертями: дальнобойный удар хуже парируется щитом.
// При chance <= 0 попадание невозможно; при ac <= 0 неизбежно.
func TestHit(chance, ac int, isMelee bool, rng *rand.Rand) bool {
	if chance <= 0 {
		return false
	}

	effAC := ac
	if !isMelee {
		effAC = ac * 3 / 4
	}
	if effAC < 0 {
		effAC = 0
	}

	return rng.Intn(chance) >= effAC
}

// CalcDamage бросает кубики, добавляет плоский бонус и масштабирует
// процентным множителем (100 = без изменений). Множитель приходит
// от внешней системы резистов/уязвимостей.
func CalcDamage(dice Dice, bonus, percentMultiplier int, rng *rand.Rand) int {
	dmg := dice.Roll(rng) + bonus
	dmg = dmg * percentMultiplier / 100
	if dmg < 0 {
		dmg = 0
	}
	return dmg
}

// PlayerAttack разрешает атаку игрока по монстру.
func PlayerAttack(player, monster *domain.Actor, def *domain.MonsterDef, rng *rand.Rand) domain.AttackResult {
	combatLog := logger.System("combat").WithFields(logrus.Fields{
		"attacker_id": player.ID,
		"target_id":   monster.ID,
		"target_name": monster.Name,
	})

	res := domain.AttackResult{}

	if monster.IsDead() {
		combatLog.Info("Attack ineffective: target is already dead.")
		res.Messages = append(res.Messages, fmt.Sprintf("Вы пинаете труп %s.", monster.Name))
		return res
	}

	chance := PlayerHitChance(player)
	if !TestHit(chance, def.AC, true, rng) {
		res.Messages = append(res.Messages, fmt.Sprintf("Вы промахиваетесь по %s.", monster.Name))
		return res
	}

	dice, err := ParseDice(player.Combat.WeaponDamage)
	if err != nil {
		// Кривые данные оружия отбрасываются на границе загрузки;
		// здесь деградируем до кулаков.
		combatLog.WithError(err).Warn("Bad weapon dice, falling back to 1d1")
		dice = Dice{Count: 1, Sides: 1}
	}

	dmg := CalcDamage(dice, player.Combat.ToDam, 100, rng)
	died := monster.Health.TakeDamage(dmg)

	res.Hit = true
	res.Damage = dmg
	res.Messages = append(res.Messages, fmt.Sprintf("Вы бьете %s на %d урона.", monster.Name, dmg))

	combatLog.WithFields(logrus.Fields{
		"hit_chance":  chance,
		"damage":      dmg,
		"target_died": died,
	}).Info("Player attack resolved.")

	if died {
		res.Killed = true
		res.Messages = append(res.Messages, fmt.Sprintf("%s погибает.", monster.Name))
	}

	return res
}

// MonsterAttack разрешает многосоставную атаку монстра по игроку.
// Каждая часть бросается независимо против одной и той же пары
// шанс/броня; урон суммируется, Hit = попала хотя бы одна часть.
func MonsterAttack(monster *domain.Actor, def *domain.MonsterDef, player *domain.Actor, rng *rand.Rand) domain.AttackResult {
	combatLog := logger.System("combat").WithFields(logrus.Fields{
		"attacker_id":   monster.ID,
		"attacker_name": monster.Name,
		"target_id":     player.ID,
	})

	res := domain.AttackResult{}

	// Пустой список атак - no-op результат, а не ошибка.
	if len(def.Attacks) == 0 {
		combatLog.Debug("Monster has no attacks.")
		return res
	}

	chance := MonsterHitChance(def)

	for _, atk := range def.Attacks {
		if !TestHit(chance, player.Combat.AC, true, rng) {
			res.Messages = append(res.Messages,
				fmt.Sprintf("%s промахивается по вам.", monster.Name))
			continue
		}

		res.Hit = true

		dice, err := ParseDice(atk.Damage)
		if err != nil {
			combatLog.WithError(err).WithField("damage", atk.Damage).
				Warn("Bad attack dice, part skipped")
			continue
		}

		dmg := CalcDamage(dice, 0, 100, rng)
		res.Damage += dmg

		verb := atk.Method.String()
		if eff := atk.Effect.String(); eff != "" {
			verb = verb + ", " + eff
		}
		res.Messages = append(res.Messages,
			fmt.Sprintf("%s бьет вас (%s) на %d урона.", monster.Name, verb, dmg))

		if player.Health.TakeDamage(dmg) {
			res.Killed = true
			break
		}
	}

	combatLog.WithFields(logrus.Fields{
		"hit_chance":   chance,
		"parts":        len(def.Attacks),
		"total_damage": res.Damage,
		"player_died":  res.Killed,
	}).Info("Monster attack resolved.")

	return res
}

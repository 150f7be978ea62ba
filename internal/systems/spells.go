package systems

import (
	"fmt"
	"math/rand"

	"grimdelve/internal/domain"
	"grimdelve/pkg/logger"
)

// SpellEnv - окружение, в котором исполняется заклинание монстра.
type SpellEnv struct {
	Monster *domain.Actor
	Player  *domain.Actor
	Level   *domain.Level
	Rng     *rand.Rand
}

// SpellResult - сообщения, произведенные заклинанием.
type SpellResult struct {
	Messages []string
}

// SpellExecutor - контракт внешнего исполнителя заклинаний.
// Ядро только передает ему успешные касты и переливает сообщения
// в журнал боя.
type SpellExecutor interface {
	ExecuteSpell(spell domain.SpellID, env SpellEnv) SpellResult
}

// DefaultSpellExecutor - встроенный исполнитель с минимальным
// набором заклинаний.
type DefaultSpellExecutor struct{}

func (DefaultSpellExecutor) ExecuteSpell(spell domain.SpellID, env SpellEnv) SpellResult {
	var res SpellResult
	m, p := env.Monster, env.Player

	switch spell {
	case domain.SpellMagicMissile:
		dmg := Dice{Count: 2, Sides: 6}.Roll(env.Rng)
		p.Health.TakeDamage(dmg)
		res.Messages = append(res.Messages,
			fmt.Sprintf("%s пускает в вас магическую стрелу на %d урона.", m.Name, dmg))

	case domain.SpellFrostBolt:
		dmg := Dice{Count: 3, Sides: 8}.Roll(env.Rng)
		// Дистанционный удар: броня работает хуже
		if TestHit(monsterBaseHitChance+env.Level.Depth*3, p.Combat.AC, false, env.Rng) {
			p.Health.TakeDamage(dmg)
			res.Messages = append(res.Messages,
				fmt.Sprintf("%s бьет вас ледяной стрелой на %d урона.", m.Name, dmg))
		} else {
			res.Messages = append(res.Messages,
				fmt.Sprintf("Ледяная стрела %s проходит мимо.", m.Name))
		}

	case domain.SpellHealSelf:
		amount := Dice{Count: 2, Sides: 8, Bonus: 2}.Roll(env.Rng)
		m.Health.Heal(amount)
		res.Messages = append(res.Messages,
			fmt.Sprintf("Раны %s затягиваются.", m.Name))

	case domain.SpellBlink:
		if to, ok := randomBlinkTarget(m.Pos, env.Level, env.Rng); ok {
			if err := env.Level.MoveActor(m.ID, to); err == nil {
				res.Messages = append(res.Messages,
					fmt.Sprintf("%s внезапно исчезает и появляется в стороне.", m.Name))
				break
			}
		}
		res.Messages = append(res.Messages,
			fmt.Sprintf("%s мерцает, но остается на месте.", m.Name))

	default:
		logger.System("spells").WithField("spell", spell).
			Warn("Unknown spell requested")
	}

	return res
}

// randomBlinkTarget ищет свободную проходимую клетку в радиусе 5.
func randomBlinkTarget(from domain.Position, level *domain.Level, rng *rand.Rand) (domain.Position, bool) {
	for attempt := 0; attempt < 10; attempt++ {
		to := domain.Position{
			X: from.X + rng.Intn(11) - 5,
			Y: from.Y + rng.Intn(11) - 5,
		}
		if to == from {
			continue
		}
		if level.IsWalkable(to) && !level.IsOccupied(to) {
			return to, true
		}
	}
	return domain.Position{}, false
}

package engine

import (
	"fmt"
	"math/rand"
	"time"

	"grimdelve/internal/domain"
	"grimdelve/internal/systems"
	"grimdelve/pkg/logger"
	"grimdelve/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Loop - оркестратор ходов монстров. Владеет сборкой AI-контекста
// и исполнением решений; сама решающая функция и исполнитель
// заклинаний - заменяемые коллабораторы.
type Loop struct {
	Defs   domain.MonsterDefSource
	Decide systems.DecisionFunc
	Spells systems.SpellExecutor

	ViewRadius    int
	MaxIterations int

	// Ключи, по которым уже ругались на отсутствие данных, чтобы
	// не забивать лог на каждом ходу.
	missingDefs map[string]bool
}

func NewLoop(defs domain.MonsterDefSource, cfg Config) *Loop {
	return &Loop{
		Defs:          defs,
		Decide:        systems.ComputeDecision,
		Spells:        systems.DefaultSpellExecutor{},
		ViewRadius:    cfg.ViewRadius,
		MaxIterations: cfg.MaxTurnIterations,
		missingDefs:   make(map[string]bool),
	}
}

// ProcessMonsterTurns прогоняет один шаг мира: начисляет всем энергию
// и дает ходить монстрам, пока очередь не вернется к игроку, никто
// не готов или не сработал предохранитель итераций.
func (l *Loop) ProcessMonsterTurns(player *domain.Actor, level *domain.Level, sched *Scheduler, rng *rand.Rand) domain.TurnResult {
	result := domain.TurnResult{}

	sched.Tick()

	for iter := 0; iter < l.MaxIterations; iter++ {
		next := sched.Next()

		// 1. Очередь игрока или пустая очередь - контроль наружу.
		if next == nil || next.ID == player.ID {
			return result
		}

		// 2. Мертвый монстр в очереди - дефект фильтрации, не фатальный.
		if next.IsDead() {
			logger.System("gameloop").WithField("actor_id", next.ID).
				Warn("Dead actor reached the ready queue")
			continue
		}

		monster := next
		st := monster.Monster

		// Контракт tick внешнего каталога статусов.
		st.Status.Tick()

		// 3. Восприятие: спящие и ручные тратят ход без решения.
		if wake := systems.CheckAwareness(monster, player, level, rng); wake != "" {
			l.addMessage(&result, wake, domain.LogInfo)
		}
		if !st.Awake || st.Tamed {
			monster.Energy.Spend(domain.TurnEnergyCost)
			continue
		}

		// 4. Статические данные. Нет данных - нет хода.
		def, ok := l.Defs.MonsterDef(st.DefKey)
		if !ok {
			if !l.missingDefs[st.DefKey] {
				l.missingDefs[st.DefKey] = true
				logger.System("gameloop").WithField("def_key", st.DefKey).
					Warn("Monster definition missing, turns skipped")
			}
			monster.Energy.Spend(domain.TurnEnergyCost)
			continue
		}

		// 5. Контекст -> решение -> исполнение.
		ctx := systems.BuildContext(monster, player, level, l.ViewRadius)
		ctx.AttachSpells(def)
		decision := l.Decide(ctx, rng)
		l.executeDecision(monster, def, decision, player, level, rng, &result)

		// 6. Гибель игрока обрывает цикл немедленно.
		if player.IsDead() {
			result.PlayerDied = true
			l.addMessage(&result, "Вы погибли...", domain.LogDeath)
			return result
		}
	}

	// Предохранитель: сюда попадать не должны. Это диагностируемая
	// аномалия планирования, но не причина ронять ход.
	logger.System("gameloop").WithFields(logrus.Fields{
		"iteration_cap": l.MaxIterations,
		"queue":         sched.Dump(),
	}).Warn("Monster turn loop hit the iteration cap")

	return result
}

// executeDecision применяет решение AI к миру.
func (l *Loop) executeDecision(
	monster *domain.Actor,
	def *domain.MonsterDef,
	decision domain.Decision,
	player *domain.Actor,
	level *domain.Level,
	rng *rand.Rand,
	result *domain.TurnResult,
) {
	switch decision.Kind {
	case domain.DecisionAttack:
		res := systems.MonsterAttack(monster, def, player, rng)
		for _, msg := range res.Messages {
			l.addMessage(result, msg, domain.LogCombat)
		}

	case domain.DecisionCast:
		if decision.SpellFailed {
			l.addMessage(result,
				fmt.Sprintf("%s бормочет, но заклинание срывается.", monster.Name),
				domain.LogMagic)
			break
		}
		spellRes := l.Spells.ExecuteSpell(decision.Spell, systems.SpellEnv{
			Monster: monster,
			Player:  player,
			Level:   level,
			Rng:     rng,
		})
		for _, msg := range spellRes.Messages {
			l.addMessage(result, msg, domain.LogMagic)
		}

	case domain.DecisionMove, domain.DecisionFlee:
		// Шаг в клетку игрока - это атака (bump-to-melee).
		if decision.Target == player.Pos {
			res := systems.MonsterAttack(monster, def, player, rng)
			for _, msg := range res.Messages {
				l.addMessage(result, msg, domain.LogCombat)
			}
			break
		}
		if level.IsWalkable(decision.Target) && !level.IsOccupied(decision.Target) {
			if err := level.MoveActor(monster.ID, decision.Target); err != nil {
				logger.System("gameloop").WithError(err).
					WithField("actor_id", monster.ID).Warn("Monster move rejected")
			}
		}

	case domain.DecisionIdle:
		// Стоит и ждет.

	default:
		// Неизвестный вид решения: ход тратится, мир не меняется.
		logger.System("gameloop").WithField("kind", decision.Kind).
			Debug("Unknown decision kind, turn wasted")
	}

	// Энергия тратится при любом исходе - иначе монстр останется
	// "готовым" навсегда и цикл упрется в предохранитель.
	monster.Energy.Spend(domain.TurnEnergyCost)
}

// PlayerAttack - точка входа атаки игрока, общая для bump-атаки
// при движении и явной команды атаки.
func (l *Loop) PlayerAttack(player, monster *domain.Actor, sched *Scheduler, rng *rand.Rand) domain.AttackResult {
	st := monster.Monster

	def, ok := l.Defs.MonsterDef(st.DefKey)
	if !ok {
		// Нет данных - бьем "вслепую" по нулевой броне.
		def = &domain.MonsterDef{Key: st.DefKey, Name: monster.Name}
	}

	// Удар по спящему будит всегда.
	if !st.Awake {
		st.Awake = true
		st.SleepCounter = 0
	}

	res := systems.PlayerAttack(player, monster, def, rng)
	if res.Killed {
		sched.Remove(monster.ID)
	}
	return res
}

func (l *Loop) addMessage(result *domain.TurnResult, text, logType string) {
	result.Messages = append(result.Messages, domain.LogEntry{
		ID:        utils.GenerateID(),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
}

package agent

import (
	"grimdelve/internal/domain"
	"grimdelve/internal/engine"
	"grimdelve/internal/systems"
	"grimdelve/pkg/logger"
)

// Bot - "игрок-компьютер" для headless-прогонов симуляции.
// Политика нарочно примитивная: бот нужен, чтобы детерминированно
// прогонять ядро через все ветки (бой, преследование, ожидание),
// а не чтобы хорошо играть.
type Bot struct {
	Game *engine.Game
}

func NewBot(game *engine.Game) *Bot {
	return &Bot{Game: game}
}

// Step делает один ход за игрока. Возвращает false, когда игрок погиб.
func (b *Bot) Step() bool {
	cmd := b.pickCommand()
	result := b.Game.ProcessCommand(cmd)

	return !result.PlayerDied
}

// pickCommand: атакуем соседнего монстра, иначе идем к ближайшему
// видимому, иначе отдыхаем.
func (b *Bot) pickCommand() engine.Command {
	player := b.Game.Player
	level := b.Game.Level

	var target *domain.Actor
	bestDist := 1 << 30

	for _, m := range level.Monsters() {
		if m.IsDead() {
			continue
		}
		if !systems.HasLineOfSight(level, player.Pos, m.Pos, b.Game.Cfg.ViewRadius) {
			continue
		}
		d := player.Pos.ChebyshevTo(m.Pos)
		if d < bestDist {
			bestDist = d
			target = m
		}
	}

	if target == nil {
		return engine.Command{Type: domain.CmdWait}
	}

	dx, dy := player.Pos.DirectionTo(target.Pos)

	// Соседний монстр: шаг в него и есть атака (bump-to-melee).
	// Дальний: тот же шаг, но в сторону цели; если клетка занята
	// стеной, то ProcessCommand вернет "путь прегражден" и бот
	// просто подождет на следующем ходу.
	res := systems.CalculateMove(player, dx, dy, level)
	if res.IsWall {
		logger.System("agent").WithField("target", target.Name).
			Debug("Bot path blocked, waiting")
		return engine.Command{Type: domain.CmdWait}
	}

	return engine.Command{Type: domain.CmdMove, Dx: dx, Dy: dy}
}

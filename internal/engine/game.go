package engine

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"grimdelve/internal/domain"
	"grimdelve/internal/systems"
	"grimdelve/pkg/logger"
	"grimdelve/pkg/utils"
)

// Command - команда игрока, принятая сессией.
type Command struct {
	Type   domain.CommandType
	Dx, Dy int
}

// Game - одна игровая сессия: игрок, уровень, планировщик и
// локальный генератор случайностей. Симуляцию крутит один поток:
// ProcessCommand нельзя вызывать реентерабельно. Отладочные
// наблюдатели (QueueSnapshot, Watch) приходят с HTTP-горутин,
// поэтому состояние сессии закрыто mu.
type Game struct {
	Cfg   Config
	Level *domain.Level

	Player    *domain.Actor
	Scheduler *Scheduler
	Loop      *Loop

	Rng  *rand.Rand
	Seed int64

	Turn int
	Log  []domain.LogEntry

	Replay *domain.ReplaySession

	// mu защищает состояние симуляции от читателей-наблюдателей.
	mu sync.RWMutex

	// watchers - подписчики отладочного стрима сообщений.
	// Отдельный замок: publish работает под mu, подписка - нет.
	watchMu  sync.RWMutex
	watchers []chan domain.LogEntry
}

// NewGame собирает сессию из мастер-зерна. Одинаковый сид и
// одинаковая последовательность команд дают одинаковую партию.
func NewGame(cfg Config, bestiary *Bestiary) *Game {
	rng := rand.New(rand.NewSource(cfg.Seed))

	level, player, monsters := buildArena(cfg, bestiary, rng)

	sched := NewScheduler(level)
	// Игрок регистрируется ПЕРВЫМ: контракт планировщика отдает
	// ему победу во всех ничьих по энергии.
	sched.Add(player.ID)
	for _, m := range monsters {
		sched.Add(m.ID)
	}

	g := &Game{
		Cfg:       cfg,
		Level:     level,
		Player:    player,
		Scheduler: sched,
		Loop:      NewLoop(bestiary, cfg),
		Rng:       rng,
		Seed:      cfg.Seed,
		Log:       []domain.LogEntry{},
		Replay: &domain.ReplaySession{
			Depth:     level.Depth,
			Seed:      cfg.Seed,
			Timestamp: time.Now().Unix(),
			Commands:  make([]domain.ReplayCommand, 0),
		},
	}

	g.addLog("Добро пожаловать в Мрачную Бездну.", domain.LogInfo)
	return g
}

// ProcessCommand обрабатывает одну команду игрока. Если команда
// потратила энергию, мир прокручивается до следующего хода игрока.
func (g *Game) ProcessCommand(cmd Command) domain.TurnResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	acted := false

	switch cmd.Type {
	case domain.CmdMove:
		acted = g.handleMove(cmd.Dx, cmd.Dy)

	case domain.CmdWait:
		g.addLog("Вы пропускаете ход.", domain.LogInfo)
		g.Player.Energy.Spend(domain.TurnEnergyCost)
		acted = true

	case domain.CmdUse:
		// Само действие предмета принадлежит внешней системе;
		// ядро владеет энергетической стоимостью. Стоимость выше
		// остатка уводит энергию в минус: неумелый пользователь
		// жезла расплачивается лишними тактами ожидания.
		cost := DeviceEnergyCost(g.Player.Combat.DeviceSkill)
		g.Player.Energy.Overdraw(cost)
		g.addLog("Вы активируете жезл.", domain.LogMagic)
		acted = true

	default:
		g.addLog("Непонятная команда.", domain.LogInfo)
	}

	result := domain.TurnResult{}

	if acted {
		g.Turn++
		g.recordCommand(cmd)
		result = g.advanceWorld()
	}

	for _, msg := range result.Messages {
		g.publish(msg)
	}
	g.Log = append(g.Log, result.Messages...)

	return result
}

// handleMove возвращает true, если ход потратил энергию игрока.
func (g *Game) handleMove(dx, dy int) bool {
	res := systems.CalculateMove(g.Player, dx, dy, g.Level)

	if res.BlockedBy != nil && res.BlockedBy.IsMonster() {
		// Шаг в монстра - атака
		atk := g.Loop.PlayerAttack(g.Player, res.BlockedBy, g.Scheduler, g.Rng)
		for _, msg := range atk.Messages {
			g.addLog(msg, domain.LogCombat)
		}
		g.Player.Energy.Spend(domain.TurnEnergyCost)
		return true
	}

	if !res.HasMoved {
		g.addLog("Путь прегражден.", domain.LogInfo)
		return false
	}

	if err := g.Level.MoveActor(g.Player.ID, res.Target); err != nil {
		logger.System("game").WithError(err).Warn("Player move rejected")
		return false
	}
	g.Player.Energy.Spend(domain.TurnEnergyCost)
	return true
}

// advanceWorld крутит ходы монстров, пока очередь не вернется к
// игроку. Каждый вызов оркестратора - ровно один тик времени.
func (g *Game) advanceWorld() domain.TurnResult {
	total := domain.TurnResult{}

	// Жесткая внешняя граница на случай дефектов планирования.
	for guard := 0; guard < 1000; guard++ {
		res := g.Loop.ProcessMonsterTurns(g.Player, g.Level, g.Scheduler, g.Rng)
		total.Messages = append(total.Messages, res.Messages...)

		if res.PlayerDied {
			total.PlayerDied = true
			return total
		}
		if next := g.Scheduler.Next(); next != nil && next.ID == g.Player.ID {
			return total
		}
	}

	logger.System("game").Warn("World advance guard tripped")
	return total
}

// ReplayCommands прогоняет записанные команды через сессию.
// Вызывается на свежей сессии с тем же сидом.
func (g *Game) ReplayCommands(commands []domain.ReplayCommand) domain.TurnResult {
	last := domain.TurnResult{}
	for _, rc := range commands {
		last = g.ProcessCommand(Command{
			Type: rc.Cmd,
			Dx:   int(rc.Dx),
			Dy:   int(rc.Dy),
		})
		if last.PlayerDied {
			break
		}
	}
	return last
}

func (g *Game) recordCommand(cmd Command) {
	g.Replay.Commands = append(g.Replay.Commands, domain.ReplayCommand{
		Turn: g.Turn,
		Cmd:  cmd.Type,
		Dx:   int8(cmd.Dx),
		Dy:   int8(cmd.Dy),
	})
}

func (g *Game) addLog(text, logType string) {
	entry := domain.LogEntry{
		ID:        utils.GenerateID(),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	}
	g.Log = append(g.Log, entry)
	g.publish(entry)
}

// Watch возвращает канал для отладочного наблюдателя сообщений.
// Безопасен для вызова с чужой горутины.
func (g *Game) Watch() <-chan domain.LogEntry {
	ch := make(chan domain.LogEntry, 64)

	g.watchMu.Lock()
	g.watchers = append(g.watchers, ch)
	g.watchMu.Unlock()

	return ch
}

func (g *Game) publish(entry domain.LogEntry) {
	g.watchMu.RLock()
	defer g.watchMu.RUnlock()

	for _, ch := range g.watchers {
		select {
		case ch <- entry:
		default:
			// Медленный наблюдатель теряет сообщения, симуляция не ждет.
		}
	}
}

// QueueSnapshot возвращает снимок расписания для отладочного
// эндпоинта. Читает живое состояние акторов, поэтому берет замок
// сессии целиком.
func (g *Game) QueueSnapshot() []map[string]interface{} {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.Scheduler.Dump()
}

// Status - краткая сводка для журнала симуляции.
func (g *Game) Status() string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	alive := 0
	for _, m := range g.Level.Monsters() {
		if !m.IsDead() {
			alive++
		}
	}
	return fmt.Sprintf("ход %d, HP %d/%d, монстров живо %d",
		g.Turn, g.Player.Health.HP, g.Player.Health.MaxHP, alive)
}

package engine

import (
	"sync"
	"testing"

	"grimdelve/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGameConfig(seed int64) Config {
	cfg := NewConfig()
	cfg.Seed = seed
	return cfg
}

func TestNewGame_PlayerRegisteredFirst(t *testing.T) {
	g := NewGame(testGameConfig(42), NewBestiary())

	// Стартовые энергии равны, поэтому первая очередь - очередь
	// игрока: он выигрывает ничью как зарегистрированный раньше.
	next := g.Scheduler.Next()
	require.NotNil(t, next)
	assert.Equal(t, g.Player.ID, next.ID)
	assert.Equal(t, domain.KindPlayer, next.Kind)
}

func TestGame_SameSeedSameCommandsSameOutcome(t *testing.T) {
	commands := []Command{
		{Type: domain.CmdMove, Dx: 1, Dy: 0},
		{Type: domain.CmdMove, Dx: 1, Dy: 1},
		{Type: domain.CmdWait},
		{Type: domain.CmdMove, Dx: 0, Dy: 1},
		{Type: domain.CmdMove, Dx: 1, Dy: 0},
		{Type: domain.CmdWait},
		{Type: domain.CmdMove, Dx: 1, Dy: 1},
		{Type: domain.CmdMove, Dx: -1, Dy: 0},
	}

	run := func() *Game {
		g := NewGame(testGameConfig(1337), NewBestiary())
		for _, cmd := range commands {
			if g.ProcessCommand(cmd).PlayerDied {
				break
			}
		}
		return g
	}

	a := run()
	b := run()

	assert.Equal(t, a.Turn, b.Turn)
	assert.Equal(t, a.Player.Pos, b.Player.Pos)
	assert.Equal(t, a.Player.Health.HP, b.Player.Health.HP)

	// Поклеточное сравнение всего состояния монстров. ID сессий
	// разные (криптослучайные), но порядок регистрации стабилен,
	// поэтому сверяем попарно по индексу.
	am := a.Level.Monsters()
	bm := b.Level.Monsters()
	require.Equal(t, len(am), len(bm))

	for i := range am {
		assert.Equal(t, am[i].Monster.DefKey, bm[i].Monster.DefKey)
		assert.Equal(t, am[i].Pos, bm[i].Pos)
		assert.Equal(t, am[i].Health.HP, bm[i].Health.HP)
		assert.Equal(t, am[i].Monster.Awake, bm[i].Monster.Awake)
	}
}

func TestGame_BlockedMoveCostsNothing(t *testing.T) {
	g := NewGame(testGameConfig(42), NewBestiary())

	// Убираем монстров: сценарию нужна пустая арена, чтобы шаг
	// гарантированно упирался в стену, а не в чье-то тело.
	for _, m := range g.Level.Monsters() {
		g.Scheduler.Remove(m.ID)
		g.Level.Unregister(m.ID)
	}

	// Игрок в (2,2); два шага влево упираются в внешнюю стену.
	g.ProcessCommand(Command{Type: domain.CmdMove, Dx: -1, Dy: 0})
	require.Equal(t, domain.Position{X: 1, Y: 2}, g.Player.Pos)
	require.Equal(t, 1, g.Turn)

	g.ProcessCommand(Command{Type: domain.CmdMove, Dx: -1, Dy: 0})
	assert.Equal(t, domain.Position{X: 1, Y: 2}, g.Player.Pos)
	// Ход не засчитан и в реплей не записан.
	assert.Equal(t, 1, g.Turn)
	assert.Len(t, g.Replay.Commands, 1)
}

func TestGame_WaitAdvancesWorldToPlayer(t *testing.T) {
	g := NewGame(testGameConfig(42), NewBestiary())

	g.ProcessCommand(Command{Type: domain.CmdWait})

	assert.Equal(t, 1, g.Turn)
	// После прокрутки мира очередь снова у игрока.
	next := g.Scheduler.Next()
	require.NotNil(t, next)
	assert.Equal(t, g.Player.ID, next.ID)
}

func TestGame_UseCommandChargesDeviceCost(t *testing.T) {
	g := NewGame(testGameConfig(42), NewBestiary())

	// Навык 30: стоимость 200 - 5*30/8 = 182, дороже обычного хода.
	require.Equal(t, 182, DeviceEnergyCost(g.Player.Combat.DeviceSkill))

	g.ProcessCommand(Command{Type: domain.CmdUse})

	assert.Equal(t, 1, g.Turn)
	// Списание уронило энергию в ноль, и мир крутился дольше обычного:
	// после прокрутки очередь все равно возвращается к игроку.
	next := g.Scheduler.Next()
	require.NotNil(t, next)
	assert.Equal(t, g.Player.ID, next.ID)

	require.Len(t, g.Replay.Commands, 1)
	assert.Equal(t, domain.CmdUse, g.Replay.Commands[0].Cmd)
}

func TestGame_ReplayReproducesSession(t *testing.T) {
	commands := []Command{
		{Type: domain.CmdMove, Dx: 1, Dy: 0},
		{Type: domain.CmdWait},
		{Type: domain.CmdMove, Dx: 0, Dy: 1},
		{Type: domain.CmdWait},
	}

	live := NewGame(testGameConfig(777), NewBestiary())
	for _, cmd := range commands {
		live.ProcessCommand(cmd)
	}

	replayed := NewGame(testGameConfig(777), NewBestiary())
	replayed.ReplayCommands(live.Replay.Commands)

	assert.Equal(t, live.Turn, replayed.Turn)
	assert.Equal(t, live.Player.Pos, replayed.Player.Pos)
	assert.Equal(t, live.Player.Health.HP, replayed.Player.Health.HP)
}

func TestGame_DeviceOverdraftDelaysNextTurn(t *testing.T) {
	// Неумелый пользователь жезла (стоимость 200 при пороге 100)
	// уходит в энергетический минус и отдает монстру лишний ход:
	// за время восстановления сосед бьет дважды, а не один раз.
	run := func(cmd Command) int {
		g := NewGame(testGameConfig(42), NewBestiary())
		for _, m := range g.Level.Monsters() {
			g.Scheduler.Remove(m.ID)
			g.Level.Unregister(m.ID)
		}

		def, _ := NewBestiary().MonsterDef("goblin")
		m := SpawnMonster(def, g.Player.Pos.Shift(1, 0), g.Rng)
		m.Monster.Awake = true
		m.Monster.SleepCounter = 0
		g.Level.Register(m)
		g.Scheduler.Add(m.ID)

		g.Player.Combat.AC = 0 // Атаки монстра попадают всегда
		g.Player.Combat.DeviceSkill = 0

		result := g.ProcessCommand(cmd)

		hits := 0
		for _, msg := range result.Messages {
			if msg.Type == domain.LogCombat {
				hits++
			}
		}
		return hits
	}

	assert.Equal(t, 1, run(Command{Type: domain.CmdWait}))
	assert.Equal(t, 2, run(Command{Type: domain.CmdUse}))
}

func TestGame_ConcurrentObserversAreSafe(t *testing.T) {
	// Наблюдатели живут на HTTP-горутинах и читают сессию во время
	// симуляции. Под -race этот сценарий ловит несинхронизированный
	// доступ к watchers и состоянию акторов.
	g := NewGame(testGameConfig(42), NewBestiary())

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			g.Watch()
			_ = g.QueueSnapshot()
			_ = g.Status()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 25; i++ {
			g.ProcessCommand(Command{Type: domain.CmdWait})
		}
	}()

	wg.Wait()
	assert.Equal(t, 25, g.Turn)
}

func TestGame_WatchReceivesLogEntries(t *testing.T) {
	g := NewGame(testGameConfig(42), NewBestiary())
	ch := g.Watch()

	g.ProcessCommand(Command{Type: domain.CmdWait})

	select {
	case entry := <-ch:
		assert.NotEmpty(t, entry.Text)
		assert.NotEmpty(t, entry.ID)
	default:
		t.Fatal("watcher received no log entries")
	}
}

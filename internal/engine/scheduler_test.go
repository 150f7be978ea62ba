package engine

import (
	"testing"

	"grimdelve/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestActor(id string, speed, energy int) *domain.Actor {
	return &domain.Actor{
		ID:     domain.ActorID(id),
		Kind:   domain.KindMonster,
		Name:   id,
		Health: domain.Health{HP: 10, MaxHP: 10},
		Energy: domain.Energy{Current: energy},
		Speed:  speed,
		Monster: &domain.MonsterState{
			DefKey: "goblin",
			Awake:  true,
		},
	}
}

func newSchedulerWith(t *testing.T, actors ...*domain.Actor) (*Scheduler, *domain.Level) {
	t.Helper()
	level := domain.NewLevel(10, 10, 1)
	s := NewScheduler(level)
	for i, a := range actors {
		a.Pos = domain.Position{X: 1 + i, Y: 1}
		level.Register(a)
		s.Add(a.ID)
	}
	return s, level
}

func TestScheduler_AddIsIdempotent(t *testing.T) {
	a := newTestActor("a", 110, 0)
	s, _ := newSchedulerWith(t, a)

	s.Add(a.ID)
	s.Add(a.ID)

	assert.Equal(t, 1, s.Len())
}

func TestScheduler_RemoveAbsentIsNoop(t *testing.T) {
	a := newTestActor("a", 110, 0)
	s, _ := newSchedulerWith(t, a)

	s.Remove(domain.ActorID("ghost"))
	assert.Equal(t, 1, s.Len())

	s.Remove(a.ID)
	s.Remove(a.ID)
	assert.Equal(t, 0, s.Len())
}

func TestScheduler_TickCreditsBySpeed(t *testing.T) {
	slow := newTestActor("slow", 100, 0)
	norm := newTestActor("norm", 110, 0)
	fast := newTestActor("fast", 120, 0)
	s, _ := newSchedulerWith(t, slow, norm, fast)

	s.Tick()

	assert.Equal(t, 5, slow.Energy.Current)
	assert.Equal(t, 10, norm.Energy.Current)
	assert.Equal(t, 20, fast.Energy.Current)
}

func TestScheduler_TickIsStateless(t *testing.T) {
	// Два тика подряд без Next() между ними дают ровно двойной
	// прирост: у операции нет скрытого состояния.
	a := newTestActor("a", 110, 0)
	s, _ := newSchedulerWith(t, a)

	s.Tick()
	s.Tick()

	assert.Equal(t, 20, a.Energy.Current)
}

func TestScheduler_NextSkipsDeadAndUnready(t *testing.T) {
	dead := newTestActor("dead", 110, 500)
	dead.Health.HP = 0
	lazy := newTestActor("lazy", 110, 99)
	ready := newTestActor("ready", 110, 100)
	s, _ := newSchedulerWith(t, dead, lazy, ready)

	next := s.Next()
	require.NotNil(t, next)
	assert.Equal(t, domain.ActorID("ready"), next.ID)
}

func TestScheduler_NextEmptyWhenNobodyReady(t *testing.T) {
	a := newTestActor("a", 110, 99)
	s, _ := newSchedulerWith(t, a)

	assert.Nil(t, s.Next())
}

func TestScheduler_HighestEnergyWins(t *testing.T) {
	low := newTestActor("low", 110, 110)
	high := newTestActor("high", 110, 150)
	s, _ := newSchedulerWith(t, low, high)

	next := s.Next()
	require.NotNil(t, next)
	assert.Equal(t, domain.ActorID("high"), next.ID)
}

func TestScheduler_TieBreakByRegistrationOrder(t *testing.T) {
	// Контракт: при равной энергии побеждает зарегистрированный раньше.
	first := newTestActor("first", 110, 120)
	second := newTestActor("second", 110, 120)
	s, _ := newSchedulerWith(t, first, second)

	next := s.Next()
	require.NotNil(t, next)
	assert.Equal(t, domain.ActorID("first"), next.ID)

	// После хода первого очередь переходит ко второму.
	first.Energy.Spend(domain.TurnEnergyCost)
	next = s.Next()
	require.NotNil(t, next)
	assert.Equal(t, domain.ActorID("second"), next.ID)
}

func TestScheduler_NeverReturnsDeadOrStarved(t *testing.T) {
	actors := []*domain.Actor{
		newTestActor("a", 110, 130),
		newTestActor("b", 110, 120),
		newTestActor("c", 110, 110),
	}
	s, _ := newSchedulerWith(t, actors...)

	// Убиваем лидера: он не должен вернуться никогда.
	actors[0].Health.HP = 0

	for i := 0; i < 5; i++ {
		next := s.Next()
		if next == nil {
			break
		}
		assert.False(t, next.IsDead())
		assert.True(t, next.CanAct())
		next.Energy.Spend(domain.TurnEnergyCost)
	}
}

package engine

import (
	"fmt"
	"math/rand"

	"grimdelve/internal/domain"
	"grimdelve/internal/systems"
	"grimdelve/pkg/utils"
)

// buildArena создает демонстрационный уровень: прямоугольная комната
// с внешней стеной, несколько внутренних перегородок, игрок и
// монстры из бестиария. Процедурная генерация настоящих уровней -
// внешняя система; арене хватает фиксированной формы.
func buildArena(cfg Config, bestiary *Bestiary, rng *rand.Rand) (*domain.Level, *domain.Actor, []*domain.Actor) {
	level := domain.NewLevel(cfg.ArenaWidth, cfg.ArenaHeight, 3)

	// Внешняя стена
	for x := 0; x < level.Width; x++ {
		level.Map[0][x].IsWall = true
		level.Map[level.Height-1][x].IsWall = true
	}
	for y := 0; y < level.Height; y++ {
		level.Map[y][0].IsWall = true
		level.Map[y][level.Width-1].IsWall = true
	}

	// Пара перегородок, чтобы было за чем прятаться
	for y := 3; y < level.Height-3; y++ {
		if y != level.Height/2 {
			level.Map[y][level.Width/3].IsWall = true
		}
	}
	for x := level.Width / 2; x < level.Width-4; x++ {
		level.Map[level.Height/3][x].IsWall = true
	}

	player := NewPlayer(domain.Position{X: 2, Y: 2})
	level.Register(player)

	// Спавним монстров в детерминированном порядке бестиария:
	// порядок регистрации важен для контракта планировщика.
	var monsters []*domain.Actor
	for _, key := range bestiary.Keys() {
		def, _ := bestiary.MonsterDef(key)
		pos, ok := findSpawnTile(level, rng)
		if !ok {
			continue
		}
		m := SpawnMonster(def, pos, rng)
		level.Register(m)
		monsters = append(monsters, m)
	}

	return level, player, monsters
}

// NewPlayer собирает игрока с базовой экипировкой.
func NewPlayer(pos domain.Position) *domain.Actor {
	return &domain.Actor{
		ID:     domain.ActorID("hero_" + utils.GenerateID()),
		Kind:   domain.KindPlayer,
		Name:   "Герой",
		Pos:    pos,
		Health: domain.Health{HP: 40, MaxHP: 40},
		Energy: domain.Energy{Current: domain.StartingEnergy},
		Speed:  domain.BaseSpeed,
		Combat: domain.CombatStats{
			WeaponDamage: "2d6", // Длинный меч
			ToHit:        4,
			ToDam:        2,
			AC:           10,
			Dex:          14,
			Stealth:      3,
			DeviceSkill:  30,
		},
	}
}

// SpawnMonster создает монстра по статическому описанию.
func SpawnMonster(def *domain.MonsterDef, pos domain.Position, rng *rand.Rand) *domain.Actor {
	hpDice, err := systems.ParseDice(def.HPDice)
	if err != nil || hpDice.Max() < 1 {
		hpDice = systems.Dice{Count: 1, Sides: 8}
	}
	hp := hpDice.Roll(rng)
	if hp < 1 {
		hp = 1
	}

	speed := def.Speed
	if speed == 0 {
		speed = domain.BaseSpeed
	}

	return &domain.Actor{
		ID:     domain.ActorID(fmt.Sprintf("%s_%s", def.Key, utils.GenerateID())),
		Kind:   domain.KindMonster,
		Name:   def.Name,
		Pos:    pos,
		Health: domain.Health{HP: hp, MaxHP: hp},
		Energy: domain.Energy{Current: domain.StartingEnergy},
		Speed:  speed,
		Monster: &domain.MonsterState{
			DefKey:       def.Key,
			Awake:        def.Sleep == 0,
			SleepCounter: def.Sleep,
		},
	}
}

// findSpawnTile ищет свободную проходимую клетку.
func findSpawnTile(level *domain.Level, rng *rand.Rand) (domain.Position, bool) {
	for attempt := 0; attempt < 100; attempt++ {
		p := domain.Position{
			X: 1 + rng.Intn(level.Width-2),
			Y: 1 + rng.Intn(level.Height-2),
		}
		if level.IsWalkable(p) && !level.IsOccupied(p) {
			return p, true
		}
	}
	return domain.Position{}, false
}

package systems

import (
	"math/rand"

	"grimdelve/internal/domain"
)

// Context - неизменяемый снимок мира, на основании которого AI
// принимает решение за один ход монстра. Собирается оркестратором
// заново перед каждым запросом решения.
type Context struct {
	MonsterID domain.ActorID

	MonsterPos domain.Position
	PlayerPos  domain.Position

	MonsterHP    int
	MonsterMaxHP int
	PlayerHP     int
	PlayerMaxHP  int

	Distance int // Шахматная дистанция до игрока
	HasLOS   bool

	// LastKnown - память монстра о последней замеченной позиции
	// игрока (nil = памяти нет). Копия, не ссылка на состояние.
	LastKnown *domain.Position

	Sleeping bool
	Confused bool
	Feared   bool
	Stunned  bool

	Spells      []domain.SpellID
	SpellChance int

	// Level доступен решающей функции для ее собственных запросов
	// проходимости. Только чтение.
	Level *domain.Level
}

// DecisionFunc - контракт внешней решающей функции. Ядро владеет
// сборкой контекста и исполнением решения; сама функция заменяема.
type DecisionFunc func(ctx *Context, rng *rand.Rand) domain.Decision

// BuildContext собирает контекст решения и попутно обновляет память
// монстра: прямая видимость записывает последнюю известную позицию
// игрока, а дойдя до нее и не найдя игрока, монстр память забывает.
func BuildContext(monster, player *domain.Actor, level *domain.Level, viewRadius int) *Context {
	st := monster.Monster

	dist := monster.Pos.ChebyshevTo(player.Pos)
	los := HasLineOfSight(level, monster.Pos, player.Pos, viewRadius)

	if los {
		seen := player.Pos
		st.LastKnown = &seen
	} else if st.LastKnown != nil && monster.Pos == *st.LastKnown {
		// Пришли туда, где видели игрока, а его нет: поиск окончен.
		st.LastKnown = nil
	}

	ctx := &Context{
		MonsterID:    monster.ID,
		MonsterPos:   monster.Pos,
		PlayerPos:    player.Pos,
		MonsterHP:    monster.Health.HP,
		MonsterMaxHP: monster.Health.MaxHP,
		PlayerHP:     player.Health.HP,
		PlayerMaxHP:  player.Health.MaxHP,
		Distance:     dist,
		HasLOS:       los,
		Sleeping:     !st.Awake,
		Confused:     st.Status.Confused > 0,
		Feared:       st.Status.Feared > 0,
		Stunned:      st.Status.Stunned > 0,
		Level:        level,
	}

	if st.LastKnown != nil {
		remembered := *st.LastKnown
		ctx.LastKnown = &remembered
	}

	return ctx
}

// AttachSpells дополняет контекст списком заклинаний из статических
// данных монстра.
func (c *Context) AttachSpells(def *domain.MonsterDef) {
	c.Spells = def.Spells
	c.SpellChance = def.SpellFrequency
}

// ComputeDecision - встроенная решающая функция.
func ComputeDecision(ctx *Context, rng *rand.Rand) domain.Decision {
	if ctx.Sleeping {
		return domain.Decision{Kind: domain.DecisionIdle}
	}

	// Страх сильнее всего: бежим от игрока.
	if ctx.Feared {
		if step, ok := fleeStep(ctx); ok {
			return domain.Decision{Kind: domain.DecisionFlee, Target: step}
		}
		// Загнан в угол - дерется.
		if ctx.Distance == 1 {
			return domain.Decision{Kind: domain.DecisionAttack, Target: ctx.PlayerPos}
		}
		return domain.Decision{Kind: domain.DecisionIdle}
	}

	// Попытка каста: только при видимой цели.
	if len(ctx.Spells) > 0 && ctx.HasLOS && rng.Intn(100) < ctx.SpellChance {
		spell := ctx.Spells[rng.Intn(len(ctx.Spells))]
		d := domain.Decision{Kind: domain.DecisionCast, Spell: spell}
		// Оглушение и спутанность срывают каст в четверти случаев.
		if (ctx.Confused || ctx.Stunned) && rng.Intn(100) < 25 {
			d.SpellFailed = true
		}
		return d
	}

	if ctx.Distance == 1 {
		return domain.Decision{Kind: domain.DecisionAttack, Target: ctx.PlayerPos}
	}

	// Спутанный монстр бредет в случайную сторону.
	if ctx.Confused {
		step := ctx.MonsterPos.Shift(rng.Intn(3)-1, rng.Intn(3)-1)
		if step != ctx.MonsterPos {
			return domain.Decision{Kind: domain.DecisionMove, Target: step}
		}
		return domain.Decision{Kind: domain.DecisionIdle}
	}

	// Преследование: видимая цель или память о ней.
	goal := ctx.PlayerPos
	if !ctx.HasLOS {
		if ctx.LastKnown == nil {
			return domain.Decision{Kind: domain.DecisionIdle}
		}
		goal = *ctx.LastKnown
	}

	if step, ok := approachStep(ctx, goal); ok {
		return domain.Decision{Kind: domain.DecisionMove, Target: step}
	}
	return domain.Decision{Kind: domain.DecisionIdle}
}

// approachStep выбирает шаг к цели со "скольжением" вдоль препятствий:
// сначала идеальный шаг, затем приоритетная ось (где дальше идти).
func approachStep(ctx *Context, goal domain.Position) (domain.Position, bool) {
	dxRaw := goal.X - ctx.MonsterPos.X
	dyRaw := goal.Y - ctx.MonsterPos.Y
	stepX, stepY := ctx.MonsterPos.DirectionTo(goal)

	try := func(dx, dy int) (domain.Position, bool) {
		if dx == 0 && dy == 0 {
			return domain.Position{}, false
		}
		p := ctx.MonsterPos.Shift(dx, dy)
		// Клетка игрока допустима: исполнитель превратит это в атаку.
		if p == ctx.PlayerPos {
			return p, true
		}
		if ctx.Level.IsWalkable(p) && !ctx.Level.IsOccupied(p) {
			return p, true
		}
		return domain.Position{}, false
	}

	// Попытка 1: идеальный путь
	if p, ok := try(stepX, stepY); ok {
		return p, true
	}

	// Попытка 2: Smart Sliding (выбор приоритетной оси)
	tryXFirst := abs(dxRaw) > abs(dyRaw)
	if tryXFirst {
		if p, ok := try(stepX, 0); ok {
			return p, true
		}
		if p, ok := try(0, stepY); ok {
			return p, true
		}
	} else {
		if p, ok := try(0, stepY); ok {
			return p, true
		}
		if p, ok := try(stepX, 0); ok {
			return p, true
		}
	}

	return domain.Position{}, false // Тупик
}

// fleeStep выбирает шаг прочь от игрока.
func fleeStep(ctx *Context) (domain.Position, bool) {
	stepX, stepY := ctx.PlayerPos.DirectionTo(ctx.MonsterPos)

	candidates := [][2]int{
		{stepX, stepY},
		{stepX, 0},
		{0, stepY},
	}
	for _, c := range candidates {
		if c[0] == 0 && c[1] == 0 {
			continue
		}
		p := ctx.MonsterPos.Shift(c[0], c[1])
		if ctx.Level.IsWalkable(p) && !ctx.Level.IsOccupied(p) {
			return p, true
		}
	}
	return domain.Position{}, false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

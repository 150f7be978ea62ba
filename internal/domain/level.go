package domain

import "errors"

// Level - уровень подземелья: сетка тайлов плюс индексы акторов.
// Генерация уровня ядру не принадлежит - оно только запрашивает
// проходимость/прозрачность и двигает акторов внутри.
type Level struct {
	Map    [][]Tile `json:"map"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Depth  int      `json:"depth"` // Глубина, масштабирует сложность монстров

	// spatial: индекс клетки -> список ID акторов в ней.
	// Ключ: Y * Width + X
	spatial map[int][]ActorID

	// registry: slot-map всех акторов уровня. Единственное место,
	// где живут указатели; все остальные подсистемы держат ID.
	registry map[ActorID]*Actor

	// roster: порядок регистрации. Обходы реестра идут по нему,
	// а не по map: итерация map случайна от запуска к запуску и
	// ломала бы воспроизводимость партий с одним сидом.
	roster []ActorID
}

// NewLevel создает пустой уровень указанного размера.
func NewLevel(width, height, depth int) *Level {
	m := make([][]Tile, height)
	for y := 0; y < height; y++ {
		row := make([]Tile, width)
		for x := 0; x < width; x++ {
			row[x] = Tile{X: x, Y: y, Env: "floor"}
		}
		m[y] = row
	}
	return &Level{
		Map:      m,
		Width:    width,
		Height:   height,
		Depth:    depth,
		spatial:  make(map[int][]ActorID),
		registry: make(map[ActorID]*Actor),
	}
}

func (l *Level) GetIndex(x, y int) int {
	return y*l.Width + x
}

// InBounds проверяет, что позиция лежит внутри карты.
func (l *Level) InBounds(p Position) bool {
	return p.X >= 0 && p.X < l.Width && p.Y >= 0 && p.Y < l.Height
}

// IsWalkable - можно ли встать на клетку (рельеф, без учета акторов).
func (l *Level) IsWalkable(p Position) bool {
	if !l.InBounds(p) {
		return false
	}
	return !l.Map[p.Y][p.X].IsWall
}

// IsTransparent - пропускает ли клетка взгляд.
// Выход за границы считается непрозрачным.
func (l *Level) IsTransparent(p Position) bool {
	if !l.InBounds(p) {
		return false
	}
	return !l.Map[p.Y][p.X].IsWall
}

// IsOccupied - стоит ли в клетке живой актор.
func (l *Level) IsOccupied(p Position) bool {
	return l.ActorAt(p) != nil
}

// ActorAt возвращает живого актора в клетке (или nil).
func (l *Level) ActorAt(p Position) *Actor {
	if !l.InBounds(p) {
		return nil
	}
	for _, id := range l.spatial[l.GetIndex(p.X, p.Y)] {
		if a := l.registry[id]; a != nil && !a.IsDead() {
			return a
		}
	}
	return nil
}

// MonsterAt возвращает живого монстра в клетке (или nil).
func (l *Level) MonsterAt(p Position) *Actor {
	a := l.ActorAt(p)
	if a != nil && a.IsMonster() {
		return a
	}
	return nil
}

// Actor разрешает ID в актора. Возвращает nil для неизвестных ID.
func (l *Level) Actor(id ActorID) *Actor {
	return l.registry[id]
}

// Monsters возвращает всех монстров уровня в порядке регистрации,
// включая мертвых. Фильтрация по IsDead - забота вызывающего.
func (l *Level) Monsters() []*Actor {
	var out []*Actor
	for _, id := range l.roster {
		if a := l.registry[id]; a != nil && a.IsMonster() {
			out = append(out, a)
		}
	}
	return out
}

// Register добавляет актора в реестр и пространственный индекс.
// Повторная регистрация того же ID - no-op, как и в планировщике.
func (l *Level) Register(a *Actor) {
	if _, ok := l.registry[a.ID]; ok {
		return
	}
	l.registry[a.ID] = a
	l.roster = append(l.roster, a.ID)
	idx := l.GetIndex(a.Pos.X, a.Pos.Y)
	l.spatial[idx] = append(l.spatial[idx], a.ID)
}

// Unregister полностью удаляет актора с уровня.
func (l *Level) Unregister(id ActorID) {
	a, ok := l.registry[id]
	if !ok {
		return
	}
	l.removeFromIndex(a)
	delete(l.registry, id)
	for i, other := range l.roster {
		if other == id {
			l.roster = append(l.roster[:i], l.roster[i+1:]...)
			break
		}
	}
}

func (l *Level) removeFromIndex(a *Actor) {
	idx := l.GetIndex(a.Pos.X, a.Pos.Y)
	ids := l.spatial[idx]
	for i, other := range ids {
		if other == a.ID {
			// Swap with last: порядок внутри клетки не важен
			last := len(ids) - 1
			ids[i] = ids[last]
			l.spatial[idx] = ids[:last]
			return
		}
	}
}

// MoveActor перемещает актора в индексе и обновляет его позицию.
func (l *Level) MoveActor(id ActorID, to Position) error {
	a, ok := l.registry[id]
	if !ok {
		return errors.New("unknown actor")
	}
	if !l.InBounds(to) {
		return errors.New("out of bounds")
	}

	l.removeFromIndex(a)
	a.Pos = to
	idx := l.GetIndex(to.X, to.Y)
	l.spatial[idx] = append(l.spatial[idx], a.ID)
	return nil
}

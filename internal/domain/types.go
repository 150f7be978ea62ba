package domain

// Position - координаты клетки на уровне.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Tile - одна клетка карты.
type Tile struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	IsWall bool   `json:"isWall"`
	Env    string `json:"env"` // floor, stone, rubble
}

// ActorID - идентификатор актора. Все перекрестные ссылки
// (Scheduler -> Actor, Level -> Actor) хранятся как ID и
// разрешаются через реестр уровня, а не как живые указатели.
type ActorID string

// ActorKind - конкретный вид актора.
type ActorKind uint8

const (
	KindPlayer ActorKind = iota
	KindMonster
)

func (k ActorKind) String() string {
	switch k {
	case KindPlayer:
		return "PLAYER"
	case KindMonster:
		return "MONSTER"
	}
	return "UNKNOWN"
}

package domain

// --- КОМПОНЕНТЫ-СПОСОБНОСТИ ---
// Вместо иерархии Entity -> Actor -> {Player, Monster} актор собран
// из маленьких структур-способностей плюс Kind. Общее поведение
// (клампинг урона, накопление энергии) живет методами на этих структурах.

// Health - здоровье. HP всегда в диапазоне [0, MaxHP].
type Health struct {
	HP    int `json:"hp"`
	MaxHP int `json:"maxHp"`
}

// TakeDamage наносит урон. Возвращает true, если актор погиб от этого удара.
func (h *Health) TakeDamage(amount int) bool {
	if h.HP <= 0 {
		return false
	}
	if amount < 0 {
		amount = 0
	}

	h.HP -= amount

	if h.HP <= 0 {
		h.HP = 0
		return true
	}
	return false
}

// Heal лечит актора. Трупы не лечим.
func (h *Health) Heal(amount int) {
	if h.HP <= 0 {
		return
	}
	h.HP += amount
	if h.HP > h.MaxHP {
		h.HP = h.MaxHP
	}
}

// Energy - накопитель времени. Актор может ходить, когда
// накопил ActionThreshold.
type Energy struct {
	Current int `json:"current"`
}

// Gain добавляет энергию за тик.
func (e *Energy) Gain(amount int) {
	e.Current += amount
}

// Spend тратит энергию на совершенное действие.
// В штатном режиме энергия не уходит в минус.
func (e *Energy) Spend(amount int) {
	e.Current -= amount
	if e.Current < 0 {
		e.Current = 0
	}
}

// Overdraw тратит энергию без нижней границы. Дорогие действия
// (жезлы при слабом навыке) уводят счетчик в минус, и актор
// отрабатывает долг лишними тиками ожидания.
func (e *Energy) Overdraw(amount int) {
	e.Current -= amount
}

// CombatStats - боевые модификаторы, в основном производные от
// экипировки игрока. У монстров боевые данные живут в MonsterDef.
type CombatStats struct {
	WeaponDamage string `json:"weaponDamage"` // Кубики урона оружия: "2d6"
	ToHit        int    `json:"toHit"`
	ToDam        int    `json:"toDam"`
	AC           int    `json:"ac"` // Суммарный класс брони
	Dex          int    `json:"dex"`
	Stealth      int    `json:"stealth"`
	DeviceSkill  int    `json:"deviceSkill"`
}

// Noise возвращает производную от скрытности "громкость" игрока.
// Чем выше Stealth, тем меньше шума и тем реже монстры проходят
// кубическую проверку слуха.
func (c *CombatStats) Noise() int {
	s := c.Stealth
	if s < 0 {
		s = 0
	}
	if s > 30 {
		s = 30
	}
	return 1 << (30 - s)
}

// StatusFlags - контракт tick/apply для внешнего каталога статусов.
// Ядро только читает флаги и декрементит счетчики; наложение
// эффектов принадлежит внешней системе.
type StatusFlags struct {
	Confused int `json:"confused"`
	Feared   int `json:"feared"`
	Stunned  int `json:"stunned"`
}

// Tick уменьшает все счетчики статусов на единицу (до нуля).
func (s *StatusFlags) Tick() {
	if s.Confused > 0 {
		s.Confused--
	}
	if s.Feared > 0 {
		s.Feared--
	}
	if s.Stunned > 0 {
		s.Stunned--
	}
}

// MonsterState - изменяемое состояние монстра поверх статического
// MonsterDef.
type MonsterState struct {
	DefKey string `json:"defKey"`

	Awake        bool `json:"awake"`
	SleepCounter int  `json:"sleepCounter"` // 0 = бодрствует

	// LastKnown - память о том, где монстр в последний раз видел игрока.
	// Позиция-значение, а не ссылка: указатель здесь означает только
	// "память есть/памяти нет".
	LastKnown *Position `json:"lastKnown,omitempty"`

	Tamed  bool        `json:"tamed"`
	Status StatusFlags `json:"status"`
}

// --- АКТОР ---

type Actor struct {
	ID   ActorID   `json:"id"`
	Kind ActorKind `json:"kind"`
	Name string    `json:"name"`

	Pos Position `json:"pos"`

	Health Health      `json:"health"`
	Energy Energy      `json:"energy"`
	Speed  int         `json:"speed"`
	Combat CombatStats `json:"combat"`

	// Monster != nil только у монстров.
	Monster *MonsterState `json:"monster,omitempty"`
}

// IsDead - логическое уничтожение. Труп остается в реестре уровня,
// но отфильтровывается планировщиком.
func (a *Actor) IsDead() bool {
	return a.Health.HP <= 0
}

// CanAct возвращает true, когда актор накопил энергию на ход.
func (a *Actor) CanAct() bool {
	return a.Energy.Current >= ActionThreshold
}

// IsMonster - удобный предикат для фильтров по реестру.
func (a *Actor) IsMonster() bool {
	return a.Kind == KindMonster && a.Monster != nil
}

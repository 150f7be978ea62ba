package domain

import "strings"

// AttackMethod - способ атаки монстра (числовой идентификатор,
// чтобы switch по методам проверялся компилятором).
type AttackMethod uint8

const (
	MethodUnknown AttackMethod = iota
	MethodHit
	MethodClaw
	MethodBite
	MethodSting
	MethodTouch
	MethodGaze
)

// Маппинг для конвертации данных -> Domain
var methodStringToID = map[string]AttackMethod{
	"HIT":   MethodHit,
	"CLAW":  MethodClaw,
	"BITE":  MethodBite,
	"STING": MethodSting,
	"TOUCH": MethodTouch,
	"GAZE":  MethodGaze,
}

// Маппинг для сообщений Domain -> String
var methodIDToString = map[AttackMethod]string{
	MethodHit:   "hit",
	MethodClaw:  "claw",
	MethodBite:  "bite",
	MethodSting: "sting",
	MethodTouch: "touch",
	MethodGaze:  "gaze",
}

// ParseMethod конвертирует строку из данных монстров в AttackMethod
func ParseMethod(s string) AttackMethod {
	if val, ok := methodStringToID[strings.ToUpper(s)]; ok {
		return val
	}
	return MethodUnknown
}

// String реализует интерфейс Stringer (для сообщений боя)
func (m AttackMethod) String() string {
	if val, ok := methodIDToString[m]; ok {
		return val
	}
	return "touch"
}

// AttackEffect - стихийный эффект части атаки. Само применение
// резистов принадлежит внешнему каталогу эффектов; ядро передает
// процентный множитель урона.
type AttackEffect uint8

const (
	EffectNone AttackEffect = iota
	EffectFire
	EffectCold
	EffectPoison
	EffectDrain
)

func (e AttackEffect) String() string {
	switch e {
	case EffectFire:
		return "fire"
	case EffectCold:
		return "cold"
	case EffectPoison:
		return "poison"
	case EffectDrain:
		return "drain"
	}
	return ""
}

// SpellID - заклинание монстра.
type SpellID uint8

const (
	SpellNone SpellID = iota
	SpellMagicMissile
	SpellFrostBolt
	SpellHealSelf
	SpellBlink
)

func (s SpellID) String() string {
	switch s {
	case SpellMagicMissile:
		return "magic missile"
	case SpellFrostBolt:
		return "frost bolt"
	case SpellHealSelf:
		return "heal"
	case SpellBlink:
		return "blink"
	}
	return "none"
}

// AttackDef - одна часть многосоставной атаки монстра.
type AttackDef struct {
	Method AttackMethod `json:"method"`
	Effect AttackEffect `json:"effect"`
	Damage string       `json:"damage"` // Кубики: "1d4". Пустая строка = атака без урона.
}

// MonsterDef - статическое описание вида монстра. Принадлежит
// внешнему менеджеру данных; ядро получает его по ключу.
type MonsterDef struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	AC    int    `json:"ac"`
	Depth int    `json:"depth"`

	Speed  int    `json:"speed"`
	HPDice string `json:"hpDice"` // Здоровье при спавне: "4d8"
	Sleep  int    `json:"sleep"`  // Начальный счетчик сна

	Attacks []AttackDef `json:"attacks"`
	Flags   []string    `json:"flags"`

	Spells         []SpellID `json:"spells"`
	SpellFrequency int       `json:"spellFrequency"` // Шанс каста в процентах за ход
}

// MonsterDefSource - контракт поставщика данных монстров.
// Парсинг файлов данных - вне ядра.
type MonsterDefSource interface {
	MonsterDef(key string) (*MonsterDef, bool)
}

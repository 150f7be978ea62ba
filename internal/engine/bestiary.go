package engine

import "grimdelve/internal/domain"

// Bestiary - встроенный поставщик статических данных монстров.
// Реализует domain.MonsterDefSource; парсинг внешних файлов данных
// ядру не принадлежит, поэтому демонстрационный набор живет в коде.
type Bestiary struct {
	defs map[string]*domain.MonsterDef
}

func NewBestiary() *Bestiary {
	b := &Bestiary{defs: make(map[string]*domain.MonsterDef)}

	b.register(&domain.MonsterDef{
		Key:    "goblin",
		Name:   "Гоблин",
		AC:     12,
		Depth:  1,
		Speed:  110,
		HPDice: "2d8",
		Sleep:  30,
		Attacks: []domain.AttackDef{
			{Method: domain.MethodHit, Damage: "1d6"},
		},
	})

	b.register(&domain.MonsterDef{
		Key:    "orc",
		Name:   "Орк",
		AC:     16,
		Depth:  3,
		Speed:  110,
		HPDice: "4d8",
		Sleep:  20,
		Attacks: []domain.AttackDef{
			{Method: domain.MethodHit, Damage: "1d8"},
			{Method: domain.MethodHit, Damage: "1d8"},
		},
	})

	b.register(&domain.MonsterDef{
		Key:    "cave_bat",
		Name:   "Пещерная мышь",
		AC:     8,
		Depth:  1,
		Speed:  120, // Двойной темп: две атаки на ход игрока
		HPDice: "1d4",
		Sleep:  10,
		Attacks: []domain.AttackDef{
			{Method: domain.MethodBite, Damage: "1d3"},
		},
	})

	b.register(&domain.MonsterDef{
		Key:    "dire_wolf",
		Name:   "Лютоволк",
		AC:     14,
		Depth:  4,
		Speed:  115,
		HPDice: "5d8",
		Sleep:  15,
		Attacks: []domain.AttackDef{
			{Method: domain.MethodClaw, Damage: "1d4"},
			{Method: domain.MethodBite, Damage: "2d4"},
		},
	})

	b.register(&domain.MonsterDef{
		Key:    "gnome_mage",
		Name:   "Гном-чародей",
		AC:     10,
		Depth:  5,
		Speed:  110,
		HPDice: "3d8",
		Sleep:  40,
		Attacks: []domain.AttackDef{
			{Method: domain.MethodTouch, Damage: "1d3"},
		},
		Spells: []domain.SpellID{
			domain.SpellMagicMissile,
			domain.SpellFrostBolt,
			domain.SpellBlink,
		},
		SpellFrequency: 25,
	})

	b.register(&domain.MonsterDef{
		Key:    "crypt_wight",
		Name:   "Могильный умертвий",
		AC:     20,
		Depth:  8,
		Speed:  105,
		HPDice: "8d8",
		Sleep:  60,
		Attacks: []domain.AttackDef{
			{Method: domain.MethodTouch, Effect: domain.EffectDrain, Damage: "1d6"},
			{Method: domain.MethodClaw, Damage: "1d8"},
		},
		Spells:         []domain.SpellID{domain.SpellHealSelf},
		SpellFrequency: 15,
	})

	return b
}

func (b *Bestiary) register(def *domain.MonsterDef) {
	b.defs[def.Key] = def
}

// MonsterDef реализует domain.MonsterDefSource.
func (b *Bestiary) MonsterDef(key string) (*domain.MonsterDef, bool) {
	def, ok := b.defs[key]
	return def, ok
}

// Keys возвращает ключи в стабильном порядке спавна демо-арены.
func (b *Bestiary) Keys() []string {
	return []string{"goblin", "orc", "cave_bat", "dire_wolf", "gnome_mage", "crypt_wight"}
}

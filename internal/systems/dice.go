package systems

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// Dice - разобранная запись кубиков урона.
type Dice struct {
	Count int // N кубиков
	Sides int // M граней
	Bonus int // Плоский бонус
}

// ParseDice разбирает формы "NdM", "NdM+B" и "B+NdM".
// Пустая строка - валидные "нулевые" кубики (атака без урона).
func ParseDice(s string) (Dice, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Dice{}, nil
	}

	var d Dice
	core := s

	// Вычленяем плоский бонус с любой стороны
	if i := strings.Index(s, "+"); i >= 0 {
		left, right := s[:i], s[i+1:]
		if strings.Contains(left, "d") {
			// "NdM+B"
			core = left
			b, err := strconv.Atoi(right)
			if err != nil {
				return Dice{}, fmt.Errorf("bad dice bonus %q: %w", s, err)
			}
			d.Bonus = b
		} else {
			// "B+NdM"
			core = right
			b, err := strconv.Atoi(left)
			if err != nil {
				return Dice{}, fmt.Errorf("bad dice bonus %q: %w", s, err)
			}
			d.Bonus = b
		}
	}

	parts := strings.SplitN(core, "d", 2)
	if len(parts) != 2 {
		return Dice{}, fmt.Errorf("bad dice notation %q", s)
	}
	n, err := strconv.Atoi(parts[0])
	if err != nil {
		return Dice{}, fmt.Errorf("bad dice count %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return Dice{}, fmt.Errorf("bad dice sides %q: %w", s, err)
	}
	if n < 0 || m < 0 {
		return Dice{}, fmt.Errorf("negative dice %q", s)
	}

	d.Count = n
	d.Sides = m
	return d, nil
}

// Roll бросает кубики на внедренном генераторе.
func (d Dice) Roll(rng *rand.Rand) int {
	total := d.Bonus
	for i := 0; i < d.Count; i++ {
		if d.Sides > 0 {
			total += rng.Intn(d.Sides) + 1
		}
	}
	return total
}

// Min и Max - границы возможного броска (для балансных проверок).
func (d Dice) Min() int {
	if d.Sides == 0 {
		return d.Bonus
	}
	return d.Count + d.Bonus
}

func (d Dice) Max() int { return d.Count*d.Sides + d.Bonus }

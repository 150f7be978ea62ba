package systems

import (
	"fmt"
	"math/rand"

	"grimdelve/internal/domain"
	"grimdelve/pkg/logger"

	"github.com/sirupsen/logrus"
)

// HasLineOfSight проверяет прямую видимость между двумя точками.
// Использует оптимизированный алгоритм Брезенхэма (только целочисленная арифметика).
// Точки дальше радиуса обзора не видны независимо от рельефа.
func HasLineOfSight(level *domain.Level, from, to domain.Position, radius int) bool {
	if from == to {
		return true
	}

	// Лимит дальности по "шахматной" метрике
	if from.ChebyshevTo(to) > radius {
		return false
	}

	x0, y0 := from.X, from.Y
	x1, y1 := to.X, to.Y

	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}

	sx, sy := from.DirectionTo(to)

	err := dx - dy

	for {
		// Проверяем препятствия, ИСКЛЮЧАЯ стартовую и конечную точки.
		isStartPoint := x0 == from.X && y0 == from.Y
		isEndPoint := x0 == to.X && y0 == to.Y

		if !isStartPoint && !isEndPoint {
			if !level.IsTransparent(domain.Position{X: x0, Y: y0}) {
				logger.System("awareness").WithFields(logrus.Fields{
					"from":           from,
					"to":             to,
					"blocking_point": map[string]int{"x": x0, "y": y0},
				}).Debug("LOS blocked")
				return false
			}
		}

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}

	return true
}

// CheckAwareness проверяет, не услышал ли спящий монстр игрока.
// Шанс самой проверки НЕ зависит от дистанции (шум разносится по
// всему уровню); дистанция ослабляет только величину снижения сна.
// Возвращает сообщение о пробуждении или пустую строку.
func CheckAwareness(monster, player *domain.Actor, level *domain.Level, rng *rand.Rand) string {
	st := monster.Monster
	if st == nil || st.Awake {
		return ""
	}

	// Кубическая проверка слуха: бросок [0, 1023], успех при
	// roll^3 <= шум игрока. Тихий игрок почти не проходит ее.
	notice := rng.Intn(domain.NoticeRange)
	if notice*notice*notice > player.Combat.Noise() {
		return ""
	}

	dist := monster.Pos.ChebyshevTo(player.Pos)

	// Далекий шум будит очень медленно, близкий - быстро.
	reduction := 1
	if dist < domain.FarListenDistance {
		if dist < 1 {
			dist = 1
		}
		reduction = 100 / dist
		if reduction < 1 {
			reduction = 1
		}
	}

	st.SleepCounter -= reduction

	logger.System("awareness").WithFields(logrus.Fields{
		"monster_id": monster.ID,
		"distance":   dist,
		"reduction":  reduction,
		"sleep_left": st.SleepCounter,
	}).Debug("Sleeping monster heard something")

	if st.SleepCounter <= 0 {
		st.SleepCounter = 0
		st.Awake = true
		return fmt.Sprintf("%s просыпается!", monster.Name)
	}
	return ""
}

package systems

import (
	"grimdelve/internal/domain"
)

// MovementResult - результат вычисления движения
type MovementResult struct {
	Target    domain.Position
	HasMoved  bool
	BlockedBy *domain.Actor // Если врезались в кого-то (для атаки)
	IsWall    bool          // Если врезались в стену или границу
}

// CalculateMove вычисляет новую позицию. Не меняет состояние мира!
func CalculateMove(a *domain.Actor, dx, dy int, level *domain.Level) MovementResult {
	target := a.Pos.Shift(dx, dy)
	res := MovementResult{Target: target}

	// 1. Границы и стены
	if !level.IsWalkable(target) {
		res.IsWall = true
		return res
	}

	// 2. Живые акторы в целевой клетке
	if other := level.ActorAt(target); other != nil && other.ID != a.ID {
		res.BlockedBy = other
		return res
	}

	res.HasMoved = true
	return res
}

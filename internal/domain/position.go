package domain

// ChebyshevTo возвращает "шахматное" расстояние до другой точки:
// максимум из |dx| и |dy|. Диагональный шаг стоит столько же,
// сколько прямой, поэтому именно эта метрика используется
// восприятием и AI.
func (p Position) ChebyshevTo(other Position) int {
	dx := p.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// DirectionTo возвращает знаковые шаги (-1, 0, 1) по обеим осям
// в сторону другой точки.
func (p Position) DirectionTo(other Position) (int, int) {
	return sign(other.X - p.X), sign(other.Y - p.Y)
}

// IsAdjacent возвращает true, если цель в соседней клетке (включая диагональ)
func (p Position) IsAdjacent(other Position) bool {
	d := p.ChebyshevTo(other)
	return d == 1
}

// Shift возвращает новую позицию со смещением (не меняя текущую,
// т.к. Go передает структуры по значению, если не указатель)
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

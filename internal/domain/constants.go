package domain

// Энергетическая модель времени
const (
	// BaseSpeed - нормальная скорость. Актор с такой скоростью
	// получает 10 энергии за тик и ходит раз в 10 тиков.
	BaseSpeed = 110

	// ActionThreshold - порог энергии, при котором актор может ходить.
	ActionThreshold = 100

	// TurnEnergyCost - стандартная стоимость одного хода.
	TurnEnergyCost = 100

	// StartingEnergy - энергия актора при создании. Равна порогу,
	// чтобы первый ход был доступен сразу.
	StartingEnergy = 100
)

// Параметры восприятия
const (
	// DefaultViewRadius - максимальная дальность прямой видимости.
	DefaultViewRadius = 20

	// NoticeRange - диапазон броска "слуха" [0, NoticeRange).
	NoticeRange = 1024

	// FarListenDistance - с этой дистанции пробуждение ослабляется до минимума.
	FarListenDistance = 50
)

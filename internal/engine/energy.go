package engine

// Таблица конвертации скорости в энергию за тик. Нелинейная:
// шаг +10 скорости около нормы удваивает темп (5 -> 10 -> 20),
// а после 130 кривая выходит на плато - каждые следующие +10
// дают все меньше. Индекс - скорость, значения зажаты в [1, 49].
var energyTable = [200]int{
	// Speed 0-59: предельно медленные
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	// Speed 60-69 (S-50)
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	// Speed 70-79 (S-40)
	2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	// Speed 80-89 (S-30)
	2, 2, 2, 2, 2, 2, 2, 3, 3, 3,
	// Speed 90-99 (S-20)
	3, 3, 3, 3, 3, 4, 4, 4, 4, 4,
	// Speed 100-109 (S-10): половина нормального темпа
	5, 5, 5, 5, 6, 6, 7, 7, 8, 9,
	// Speed 110-119 (норма): ход раз в 10 тиков
	10, 11, 12, 13, 14, 15, 16, 17, 18, 19,
	// Speed 120-129 (F+10): двойной темп
	20, 21, 22, 23, 24, 25, 26, 27, 28, 29,
	// Speed 130-139 (F+20): начало плато
	30, 31, 32, 33, 34, 35, 36, 36, 37, 37,
	// Speed 140-149 (F+30)
	38, 38, 39, 39, 40, 40, 40, 41, 41, 41,
	// Speed 150-159 (F+40)
	42, 42, 42, 43, 43, 43, 44, 44, 44, 44,
	// Speed 160-169 (F+50)
	45, 45, 45, 45, 45, 46, 46, 46, 46, 46,
	// Speed 170-179 (F+60)
	47, 47, 47, 47, 47, 48, 48, 48, 48, 48,
	// Speed 180-189 (F+70): потолок
	49, 49, 49, 49, 49, 49, 49, 49, 49, 49,
	// Speed 190-199
	49, 49, 49, 49, 49, 49, 49, 49, 49, 49,
}

// EnergyPerTick возвращает прирост энергии за один тик планировщика
// для актора с данной скоростью.
func EnergyPerTick(speed int) int {
	if speed < 0 {
		speed = 0
	}
	if speed >= len(energyTable) {
		speed = len(energyTable) - 1
	}
	return energyTable[speed]
}

// DeviceEnergyCost возвращает стоимость использования магического
// предмета в энергии. Навык снижает стоимость с 200 до пола в 75.
func DeviceEnergyCost(deviceSkill int) int {
	cost := 200 - 5*deviceSkill/8
	if cost < 75 {
		cost = 75
	}
	return cost
}

package engine

import (
	"grimdelve/internal/domain"
	"grimdelve/pkg/logger"
)

// Scheduler хранит реестр живых акторов уровня и выдает следующего,
// кто готов ходить. Хранит только ID: указатели разрешаются через
// реестр уровня в момент обращения.
//
// Контракт выбора: из акторов с энергией >= порога и HP > 0 берется
// актор с НАИБОЛЬШЕЙ текущей энергией; при равной энергии побеждает
// тот, кто был зарегистрирован РАНЬШЕ. Это осознанный контракт, а не
// побочный эффект сортировки: игрок регистрируется первым и потому
// выигрывает ничьи у монстров.
type Scheduler struct {
	level *domain.Level

	order   []domain.ActorID // Порядок регистрации
	present map[domain.ActorID]bool
}

func NewScheduler(level *domain.Level) *Scheduler {
	return &Scheduler{
		level:   level,
		order:   make([]domain.ActorID, 0),
		present: make(map[domain.ActorID]bool),
	}
}

// Add регистрирует актора. Повторная регистрация - no-op:
// актор встречается в расписании не более одного раза.
func (s *Scheduler) Add(id domain.ActorID) {
	if s.present[id] {
		return
	}
	s.order = append(s.order, id)
	s.present[id] = true

	logger.Log.WithField("actor_id", id).Debug("Actor added to scheduler")
}

// Remove снимает актора с расписания. Безопасен для незарегистрированных.
func (s *Scheduler) Remove(id domain.ActorID) {
	if !s.present[id] {
		return
	}
	delete(s.present, id)
	for i, other := range s.order {
		if other == id {
			// Порядок регистрации - часть контракта, поэтому
			// удаляем со сдвигом, а не swap-with-last.
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// Tick начисляет каждому живому актору энергию по его скорости.
// У операции нет скрытого состояния: два тика подряд дают ровно
// двойной прирост.
func (s *Scheduler) Tick() {
	for _, id := range s.order {
		a := s.level.Actor(id)
		if a == nil || a.IsDead() {
			continue
		}
		a.Energy.Gain(EnergyPerTick(a.Speed))
	}
}

// Next возвращает актора, который ходит сейчас, или nil, если никто
// не готов. Мертвые и не накопившие энергию не возвращаются никогда.
func (s *Scheduler) Next() *domain.Actor {
	var best *domain.Actor
	for _, id := range s.order {
		a := s.level.Actor(id)
		if a == nil || a.IsDead() || !a.CanAct() {
			continue
		}
		// Строго "больше": при равенстве остается более ранний.
		if best == nil || a.Energy.Current > best.Energy.Current {
			best = a
		}
	}
	return best
}

// Len возвращает количество зарегистрированных акторов.
func (s *Scheduler) Len() int {
	return len(s.order)
}

// Reset очищает расписание при переходе на другой уровень.
func (s *Scheduler) Reset(level *domain.Level) {
	s.level = level
	s.order = s.order[:0]
	s.present = make(map[domain.ActorID]bool)
}

// Dump возвращает снимок расписания для отладочного эндпоинта
func (s *Scheduler) Dump() []map[string]interface{} {
	// Инициализируем как пустой слайс, а не nil. Тогда в JSON это будет "[]", а не "null"
	result := make([]map[string]interface{}, 0)

	for i, id := range s.order {
		a := s.level.Actor(id)
		if a == nil {
			continue
		}
		result = append(result, map[string]interface{}{
			"id":     a.ID,
			"name":   a.Name,
			"energy": a.Energy.Current,
			"speed":  a.Speed,
			"order":  i,
			"ready":  a.CanAct() && !a.IsDead(),
		})
	}
	return result
}

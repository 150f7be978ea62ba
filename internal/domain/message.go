package domain

// LogEntry - запись в журнале сообщений игрока
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"` // INFO, COMBAT, MAGIC, DEATH
	Timestamp int64  `json:"timestamp"`
}

// Типы записей журнала
const (
	LogInfo   = "INFO"
	LogCombat = "COMBAT"
	LogMagic  = "MAGIC"
	LogDeath  = "DEATH"
)

// TurnResult - итог одного вызова оркестратора: все сообщения,
// накопленные за ходы монстров, плюс флаг гибели игрока.
type TurnResult struct {
	Messages   []LogEntry `json:"messages"`
	PlayerDied bool       `json:"playerDied"`
}

// AttackResult - итог одной атаки (возможно, многосоставной).
// Damage - сумма по всем попавшим частям, Hit = попала хотя бы одна.
type AttackResult struct {
	Hit      bool     `json:"hit"`
	Damage   int      `json:"damage"`
	Killed   bool     `json:"killed"`
	Messages []string `json:"messages"`
}

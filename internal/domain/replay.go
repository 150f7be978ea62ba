package domain

// CommandType - действие игрока, записываемое в реплей.
type CommandType uint8

const (
	CmdUnknown CommandType = iota
	CmdMove
	CmdWait
	CmdUse
)

// ReplayCommand - одна команда игрока. Вместе с сидом этого
// достаточно для точного воспроизведения партии: весь рандом
// ядра идет через внедренный генератор.
type ReplayCommand struct {
	Turn int         `json:"turn"`
	Cmd  CommandType `json:"cmd"`
	Dx   int8        `json:"dx"`
	Dy   int8        `json:"dy"`
}

// ReplaySession - полная запись партии
type ReplaySession struct {
	Depth     int             `json:"depth"`
	Seed      int64           `json:"seed"` // Зерно генератора мира и рандома
	Timestamp int64           `json:"timestamp"`
	Commands  []ReplayCommand `json:"commands"`
}

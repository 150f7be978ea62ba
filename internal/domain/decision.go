package domain

// DecisionKind - вид решения AI. Числовой тег, чтобы switch
// в исполнителе покрывался компилятором, а не сравнением строк.
type DecisionKind uint8

const (
	DecisionIdle DecisionKind = iota
	DecisionAttack
	DecisionMove
	DecisionFlee
	DecisionCast
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionIdle:
		return "IDLE"
	case DecisionAttack:
		return "ATTACK"
	case DecisionMove:
		return "MOVE"
	case DecisionFlee:
		return "FLEE"
	case DecisionCast:
		return "CAST"
	}
	return "UNKNOWN"
}

// Decision - результат решения AI за один ход монстра.
// Поля Target/Spell/SpellFailed осмыслены только для
// соответствующих Kind.
type Decision struct {
	Kind        DecisionKind `json:"kind"`
	Target      Position     `json:"target"`      // MOVE / FLEE: куда шагнуть
	Spell       SpellID      `json:"spell"`       // CAST: что кастовать
	SpellFailed bool         `json:"spellFailed"` // CAST: каст сорвался
}

package life

// CellState is the state of a single cell. Dead is the zero value.
type CellState uint8

const (
	Dead CellState = iota
	Alive
)

func (s CellState) String() string {
	switch s {
	case Alive:
		return "alive"
	case Dead:
		return "dead"
	default:
		return "invalid"
	}
}

// IsAlive reports whether s is Alive.
func (s CellState) IsAlive() bool { return s == Alive }

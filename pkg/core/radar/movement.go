package radar

// Movement records how an entry changed since the previous edition.
type Movement int

const (
	MovedDown Movement = -1
	MovedNone Movement = 0
	MovedUp   Movement = 1
	MovedNew  Movement = 2
)

// Symbol returns the marker appended to an entry label, or "" for no movement.
func (m Movement) Symbol() string {
	switch m {
	case MovedDown:
		return "▼"
	case MovedUp:
		return "▲"
	case MovedNew:
		return "★"
	default:
		return ""
	}
}

// String returns a human-readable name.
func (m Movement) String() string {
	switch m {
	case MovedDown:
		return "moved out"
	case MovedUp:
		return "moved in"
	case MovedNew:
		return "new"
	default:
		return "no change"
	}
}

// Movements lists the movements that have a symbol, in legend order.
var Movements = []Movement{MovedNew, MovedUp, MovedDown}

// Label returns the entry name followed by its movement symbol, if any.
func (e Entry) Label() string {
	if s := e.Moved.Symbol(); s != "" {
		return e.Name + " " + s
	}
	return e.Name
}

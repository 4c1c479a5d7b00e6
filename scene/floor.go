package scene

// Floor identifies which of the two building levels a position belongs to.
// Floor membership changes only through the transition predicate in sim,
// or through the explicit debug override.
type Floor int

const (
	FloorGround Floor = iota
	FloorUpper
)

func (f Floor) String() string {
	switch f {
	case FloorGround:
		return "ground"
	case FloorUpper:
		return "upper"
	}
	return "unknown"
}

package reservation

// Shift is a named service period scoping table conflict checks. The string
// values are part of the persisted file contract.
type Shift string

const (
	ShiftLunch  Shift = "mittag"
	ShiftDinner Shift = "abend"
)

func (s Shift) Valid() bool {
	return s == ShiftLunch || s == ShiftDinner
}

// CoerceShift maps any invalid input to the dinner shift, matching how
// historical records were written.
func CoerceShift(raw string) Shift {
	s := Shift(raw)
	if !s.Valid() {
		return ShiftDinner
	}
	return s
}

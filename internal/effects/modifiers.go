package effects

// SpeedMultiplier composes the movement-speed modifiers from active status
// effects: frozen halts movement outright, slowed and
// hasted are multiplicative and both may coexist with frozen overriding.
func (t *Table) SpeedMultiplier() float64 {
	if t.Has(Frozen) {
		return 0
	}
	mult := 1.0
	if t.Has(Slowed) {
		mult *= 0.5
	}
	if t.Has(Hasted) {
		mult *= 1.5
	}
	return mult
}

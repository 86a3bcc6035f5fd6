// Package effects implements the status-effect system: a uniform
// per-actor table of named, timed modifiers, keyed by effect kind. It keeps plain
// apply/tick/expire bookkeeping with no per-kind handler indirection,
// since nothing here needs visual hooks.
package effects

// Kind enumerates every named status effect.
type Kind string

const (
	Frozen     Kind = "frozen"
	Burning    Kind = "burning"
	Poisoned   Kind = "poisoned"
	Slowed     Kind = "slowed"
	Hasted     Kind = "hasted"
	Stealthed  Kind = "stealthed"
	Scrambled  Kind = "scrambled"
	Cloaked    Kind = "cloaked"
	Boosted    Kind = "boosted"
	Corrupted  Kind = "corrupted"
	EMP        Kind = "emp"
	Reflection Kind = "reflection"
	Encrypted  Kind = "encrypted"

	// Blinded and Weakened are referenced by the effective-range and
	// effective-damage formulas but omitted from the canonical
	// status-effect list; included here so a defense debuff table has
	// somewhere to carry them.
	Blinded  Kind = "blinded"
	Weakened Kind = "weakened"
)

// kindOrder fixes iteration order for Table.All() so snapshots and save
// documents are deterministic across runs.
var kindOrder = []Kind{
	Frozen, Burning, Poisoned, Slowed, Hasted, Stealthed, Scrambled,
	Cloaked, Boosted, Corrupted, EMP, Reflection, Encrypted, Blinded, Weakened,
}

// Instance is one active status effect on an actor.
type Instance struct {
	Kind        Kind
	RemainingMS float64
	Magnitude   float64
}

// Table is the per-actor status-effect set, one entry per active kind.
type Table struct {
	entries map[Kind]*Instance
}

// NewTable constructs an empty status-effect table.
func NewTable() *Table {
	return &Table{entries: make(map[Kind]*Instance)}
}

// Apply installs or refreshes kind on the table. Re-application refreshes
// duration to the max of existing/new and magnitude to the larger of the
// two.
func (t *Table) Apply(kind Kind, durationMS float64, magnitude float64) {
	if t == nil || kind == "" || durationMS <= 0 {
		return
	}
	if t.entries == nil {
		t.entries = make(map[Kind]*Instance)
	}
	if existing, ok := t.entries[kind]; ok {
		if durationMS > existing.RemainingMS {
			existing.RemainingMS = durationMS
		}
		if magnitude > existing.Magnitude {
			existing.Magnitude = magnitude
		}
		return
	}
	t.entries[kind] = &Instance{Kind: kind, RemainingMS: durationMS, Magnitude: magnitude}
}

// Tick decrements every active effect's remaining duration by dtMS and
// removes any that have expired. It fires no events.
func (t *Table) Tick(dtMS float64) {
	if t == nil || len(t.entries) == 0 {
		return
	}
	for kind, inst := range t.entries {
		inst.RemainingMS -= dtMS
		if inst.RemainingMS <= 0 {
			delete(t.entries, kind)
		}
	}
}

// Has reports whether kind is currently active.
func (t *Table) Has(kind Kind) bool {
	if t == nil {
		return false
	}
	_, ok := t.entries[kind]
	return ok
}

// Get returns the active instance for kind, if any.
func (t *Table) Get(kind Kind) (Instance, bool) {
	if t == nil {
		return Instance{}, false
	}
	inst, ok := t.entries[kind]
	if !ok {
		return Instance{}, false
	}
	return *inst, true
}

// Clear removes every active effect; death clears all status effects.
func (t *Table) Clear() {
	if t == nil {
		return
	}
	for k := range t.entries {
		delete(t.entries, k)
	}
}

// All returns a deterministically ordered snapshot of active effects.
func (t *Table) All() []Instance {
	if t == nil || len(t.entries) == 0 {
		return nil
	}
	out := make([]Instance, 0, len(t.entries))
	for _, kind := range kindOrder {
		if inst, ok := t.entries[kind]; ok {
			out = append(out, *inst)
		}
	}
	return out
}

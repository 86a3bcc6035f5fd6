package sim

import (
	"towerdefense/server/internal/combat"
	"towerdefense/server/internal/events"
	"towerdefense/server/internal/pathgen"
	"towerdefense/server/internal/world"
)

// RejectReason enumerates precondition-violation causes.
type RejectReason string

const (
	ReasonCellOccupied      RejectReason = "CELL_OCCUPIED"
	ReasonOnPath            RejectReason = "ON_PATH"
	ReasonInsufficientFunds RejectReason = "INSUFFICIENT_FUNDS"
	ReasonMaxLevel          RejectReason = "MAX_LEVEL"
	ReasonUnknownEntity     RejectReason = "UNKNOWN_ENTITY"
	ReasonWaveInProgress    RejectReason = "WAVE_IN_PROGRESS"
	ReasonGameOver          RejectReason = "GAME_OVER"
)

func (e *Engine) reject(cmd string, reason RejectReason) error {
	e.buf.Emit(events.Event{Kind: events.CommandRejected, Reason: string(reason)})
	e.Metrics.IncCommandRejected(string(reason))
	return &RejectedError{Command: cmd, Reason: reason}
}

// RejectedError reports a precondition violation; no state changes and no
// event besides the diagnostic COMMAND_REJECTED are produced.
type RejectedError struct {
	Command string
	Reason  RejectReason
}

func (r *RejectedError) Error() string {
	return string(r.Command) + ": " + string(r.Reason)
}

// CellCenter returns the world-space center of grid cell (gx, gy).
func CellCenter(gx, gy int) (float64, float64) {
	return (float64(gx) + 0.5) * world.GridSize, (float64(gy) + 0.5) * world.GridSize
}

// CanPlace reports whether kind may be placed at (gx, gy).
func (e *Engine) CanPlace(gx, gy int, kind world.DefenseKind) bool {
	if e.Store.IsCellOccupied(gx, gy) {
		return false
	}
	cx, cy := CellCenter(gx, gy)
	if e.Path.IsOnPath(pathgen.Point{X: cx, Y: cy}, world.PathHalfWidth) {
		return false
	}
	return e.Ledger.CanAfford(world.DefenseBase[kind].Cost)
}

// CanAfford reports whether cost is currently payable.
func (e *Engine) CanAfford(cost world.Resources) bool {
	return e.Ledger.CanAfford(cost)
}

// matchOver reports whether the match has already ended, gating every
// state-mutating command behind the same precondition.
func (e *Engine) matchOver() bool {
	return e.Ledger.GameOver || e.Ledger.Victory
}

// PlaceDefense handles the place_defense command.
func (e *Engine) PlaceDefense(gx, gy int, kind world.DefenseKind) error {
	if e.matchOver() {
		return e.reject("place_defense", ReasonGameOver)
	}
	if e.Store.IsCellOccupied(gx, gy) {
		return e.reject("place_defense", ReasonCellOccupied)
	}
	cx, cy := CellCenter(gx, gy)
	if e.Path.IsOnPath(pathgen.Point{X: cx, Y: cy}, world.PathHalfWidth) {
		return e.reject("place_defense", ReasonOnPath)
	}
	cost := world.DefenseBase[kind].Cost
	if !e.Ledger.CanAfford(cost) {
		return e.reject("place_defense", ReasonInsufficientFunds)
	}
	e.Ledger.Debit(cost)
	e.buf.Emit(events.Event{Kind: events.ResourcesUpdated, Reason: "place_defense",
		Dharma: -cost.Dharma, Bandwidth: -cost.Bandwidth, Anonymity: -cost.Anonymity})
	d := world.NewDefense(kind, gx, gy, cx, cy)
	e.Store.AddDefense(d)
	e.buf.Emit(events.Event{Kind: events.DefensePlaced, EntityID: d.ID, EntityKind: string(kind)})
	return nil
}

// UpgradeDefense handles the upgrade_defense command.
func (e *Engine) UpgradeDefense(id string) error {
	if e.matchOver() {
		return e.reject("upgrade_defense", ReasonGameOver)
	}
	h, ok := e.Store.DefenseByID(id)
	if !ok {
		return e.reject("upgrade_defense", ReasonUnknownEntity)
	}
	d, _ := e.Store.Defenses.Get(h)
	if !combat.CanUpgrade(d) {
		return e.reject("upgrade_defense", ReasonMaxLevel)
	}
	cost := combat.UpgradeCost(d)
	if !e.Ledger.CanAfford(cost) {
		return e.reject("upgrade_defense", ReasonInsufficientFunds)
	}
	e.Ledger.Debit(cost)
	e.buf.Emit(events.Event{Kind: events.ResourcesUpdated, Reason: "upgrade_defense",
		Dharma: -cost.Dharma, Bandwidth: -cost.Bandwidth, Anonymity: -cost.Anonymity})
	d.Level++
	if d.Level == world.MaxDefenseLevel {
		e.buf.Emit(events.Event{Kind: events.DefenseUpgradedToMax, EntityID: d.ID})
	}
	return nil
}

// SellDefense handles the sell_defense command.
func (e *Engine) SellDefense(id string) error {
	if e.matchOver() {
		return e.reject("sell_defense", ReasonGameOver)
	}
	h, ok := e.Store.DefenseByID(id)
	if !ok {
		return e.reject("sell_defense", ReasonUnknownEntity)
	}
	d, _ := e.Store.Defenses.Get(h)
	refund := world.DefenseBase[d.Kind].Cost.Scale(0.5)
	e.Ledger.Credit(refund)
	e.buf.Emit(events.Event{Kind: events.ResourcesUpdated, Reason: "sell_defense",
		Dharma: refund.Dharma, Bandwidth: refund.Bandwidth, Anonymity: refund.Anonymity})
	e.Store.RemoveDefense(h)
	return nil
}

// ActivateSpecial handles the activate_special command.
func (e *Engine) ActivateSpecial(id string) error {
	if e.matchOver() {
		return e.reject("activate_special", ReasonGameOver)
	}
	h, ok := e.Store.DefenseByID(id)
	if !ok {
		return e.reject("activate_special", ReasonUnknownEntity)
	}
	d, _ := e.Store.Defenses.Get(h)
	if !combat.ActivateSpecial(d, e.Store, e.Ledger) {
		return e.reject("activate_special", "ON_COOLDOWN")
	}
	return nil
}

// StartWave handles the start_wave command.
func (e *Engine) StartWave() error {
	if e.matchOver() {
		return e.reject("start_wave", ReasonGameOver)
	}
	n := e.Scheduler.CurrentWave + 1
	if !e.Scheduler.CanStartWave(n) {
		return e.reject("start_wave", ReasonWaveInProgress)
	}
	e.Scheduler.StartWave(n)
	e.buf.Emit(events.Event{Kind: events.WaveStarted, Wave: n})
	return nil
}

// ForceNextWave zeros the inter-wave countdown.
func (e *Engine) ForceNextWave() {
	e.Scheduler.ForceNextWave()
}

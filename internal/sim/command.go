package sim

import "towerdefense/server/internal/world"

// CommandType enumerates the player commands that can be staged for
// processing at the top of a tick.
type CommandType string

const (
	CommandPlaceDefense    CommandType = "PlaceDefense"
	CommandUpgradeDefense  CommandType = "UpgradeDefense"
	CommandSellDefense     CommandType = "SellDefense"
	CommandActivateSpecial CommandType = "ActivateSpecial"
	CommandStartWave       CommandType = "StartWave"
	CommandForceNextWave   CommandType = "ForceNextWave"
)

// PlaceDefenseCommand carries the target grid cell and defense kind.
type PlaceDefenseCommand struct {
	GX   int               `json:"gx"`
	GY   int               `json:"gy"`
	Kind world.DefenseKind `json:"kind"`
}

// DefenseTargetCommand identifies an existing defense by its external ID.
type DefenseTargetCommand struct {
	ID string `json:"id"`
}

// Command is one intent captured for processing on the next tick. Source
// identifies the issuing client and feeds the buffer's per-source throttle.
type Command struct {
	Type   CommandType           `json:"type"`
	Source string                `json:"source,omitempty"`
	Place  *PlaceDefenseCommand  `json:"place,omitempty"`
	Target *DefenseTargetCommand `json:"target,omitempty"`
}

// applyCommand dispatches one staged command against the live state. A
// rejected command has already emitted its COMMAND_REJECTED diagnostic by
// the time the error surfaces, so the error itself is dropped here.
func (e *Engine) applyCommand(cmd Command) {
	switch cmd.Type {
	case CommandPlaceDefense:
		if cmd.Place != nil {
			_ = e.PlaceDefense(cmd.Place.GX, cmd.Place.GY, cmd.Place.Kind)
		}
	case CommandUpgradeDefense:
		if cmd.Target != nil {
			_ = e.UpgradeDefense(cmd.Target.ID)
		}
	case CommandSellDefense:
		if cmd.Target != nil {
			_ = e.SellDefense(cmd.Target.ID)
		}
	case CommandActivateSpecial:
		if cmd.Target != nil {
			_ = e.ActivateSpecial(cmd.Target.ID)
		}
	case CommandStartWave:
		_ = e.StartWave()
	case CommandForceNextWave:
		e.ForceNextWave()
	}
}

// Package save implements the Save/Snapshot surface: it marshals a
// sim.GameState into the versioned document and restores one back into a fresh
// engine.
package save

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/iancoleman/orderedmap"

	"towerdefense/server/internal/effects"
	"towerdefense/server/internal/sim"
	"towerdefense/server/internal/world"
)

// CurrentVersion is this build's save-format version.
const CurrentVersion = "1.0"

// ErrMajorVersionMismatch is returned when a document's major version does
// not match CurrentVersion's.
var ErrMajorVersionMismatch = errors.New("save: major version mismatch")

// Document is the top-level save envelope.
type Document struct {
	Version   string  `json:"version"`
	Timestamp uint64  `json:"timestamp"`
	Game      GameDoc `json:"game"`
}

// GameDoc is the nested "game" object.
type GameDoc struct {
	State               sim.State         `json:"state"`
	Resources           world.Resources   `json:"resources"`
	Lives               int               `json:"lives"`
	Wave                int               `json:"wave"`
	Score               int64             `json:"score"`
	Seed                uint64            `json:"seed"`
	PathShape           string            `json:"path_shape"`
	Defenses            []DefenseDoc      `json:"defenses"`
	Enemies             []EnemyDoc        `json:"enemies"`
	Level               sim.LevelSnapshot `json:"level"`
	SelectedDefenseType world.DefenseKind `json:"selected_defense_type"`
}

// DefenseDoc mirrors one defense.
type DefenseDoc struct {
	X          float64           `json:"x"`
	Y          float64           `json:"y"`
	Type       world.DefenseKind `json:"type"`
	Level      int               `json:"level"`
	Experience float64           `json:"experience"`
	ExpToNext  float64           `json:"exp_to_next"`
	Buffs      [][2]any          `json:"buffs"`
	Debuffs    [][2]any          `json:"debuffs"`
}

// EnemyDoc mirrors one enemy, optionally a boss.
type EnemyDoc struct {
	X         float64         `json:"x"`
	Y         float64         `json:"y"`
	Type      world.EnemyKind `json:"type"`
	Health    float64         `json:"health"`
	MaxHealth float64         `json:"max_health"`
	PathIndex int             `json:"path_index"`
	Progress  float64         `json:"progress"`
	Status    [][2]any        `json:"status"`
	IsBoss    bool            `json:"is_boss,omitempty"`
	BossType  world.BossKind  `json:"boss_type,omitempty"`
	Phase     int             `json:"phase,omitempty"`
	Shield    bool            `json:"shield,omitempty"`
	ShieldHP  float64         `json:"shield_hp,omitempty"`
	ShieldMax float64         `json:"shield_max,omitempty"`
}

// FromSnapshot builds a Document from a live GameState.
func FromSnapshot(gs sim.GameState, timestamp uint64) Document {
	doc := Document{
		Version:   CurrentVersion,
		Timestamp: timestamp,
		Game: GameDoc{
			State:               gs.State,
			Resources:           gs.Resources,
			Lives:               gs.Lives,
			Wave:                gs.Wave,
			Score:               gs.Score,
			Seed:                gs.Seed,
			PathShape:           gs.PathShape,
			Level:               gs.Level,
			SelectedDefenseType: gs.SelectedDefenseType,
		},
	}
	for _, d := range gs.Defenses {
		doc.Game.Defenses = append(doc.Game.Defenses, DefenseDoc{
			X: d.X, Y: d.Y, Type: d.Kind, Level: d.Level, Experience: d.Experience,
			Buffs:   pairs(d.Buffs),
			Debuffs: pairs(d.Debuffs),
		})
	}
	for _, e := range gs.Enemies {
		doc.Game.Enemies = append(doc.Game.Enemies, EnemyDoc{
			X: e.X, Y: e.Y, Type: e.Kind, Health: e.Health, MaxHealth: e.MaxHealth,
			PathIndex: e.PathIndex, Progress: e.Progress,
			Status:    pairs(e.Status),
			IsBoss:    e.IsBoss,
			BossType:  e.BossKind,
			Phase:     e.Phase,
			Shield:    e.IsBoss && e.ShieldMax > 0,
			ShieldHP:  e.ShieldHP,
			ShieldMax: e.ShieldMax,
		})
	}
	return doc
}

func pairs(statuses []sim.StatusSnapshot) [][2]any {
	out := make([][2]any, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, [2]any{string(s.Kind), s.RemainingMS})
	}
	return out
}

// Marshal encodes doc using an ordered map so key order in the emitted
// JSON is fixed and human-diffable, independent of Go's struct-field
// reflection order.
func Marshal(doc Document) ([]byte, error) {
	root := orderedmap.New()
	root.Set("version", doc.Version)
	root.Set("timestamp", doc.Timestamp)

	game := orderedmap.New()
	game.Set("state", doc.Game.State)
	game.Set("resources", doc.Game.Resources)
	game.Set("lives", doc.Game.Lives)
	game.Set("wave", doc.Game.Wave)
	game.Set("score", doc.Game.Score)
	game.Set("seed", doc.Game.Seed)
	game.Set("path_shape", doc.Game.PathShape)
	game.Set("defenses", doc.Game.Defenses)
	game.Set("enemies", doc.Game.Enemies)
	game.Set("level", doc.Game.Level)
	game.Set("selected_defense_type", doc.Game.SelectedDefenseType)

	root.Set("game", game)
	return json.Marshal(root)
}

// Unmarshal decodes data into a Document, refusing a major-version
// mismatch atomically.
func Unmarshal(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, err
	}
	if majorOf(doc.Version) != majorOf(CurrentVersion) {
		return Document{}, ErrMajorVersionMismatch
	}
	return doc, nil
}

// ToSnapshot converts a decoded Document back into a sim.GameState for the
// engine to restore.
func ToSnapshot(doc Document) sim.GameState {
	gs := sim.GameState{
		State:               doc.Game.State,
		Resources:           doc.Game.Resources,
		Lives:               doc.Game.Lives,
		Wave:                doc.Game.Wave,
		Score:               doc.Game.Score,
		Seed:                doc.Game.Seed,
		PathShape:           doc.Game.PathShape,
		Level:               doc.Game.Level,
		SelectedDefenseType: doc.Game.SelectedDefenseType,
	}
	for _, d := range doc.Game.Defenses {
		gs.Defenses = append(gs.Defenses, sim.DefenseSnapshot{
			X: d.X, Y: d.Y,
			GX: int(d.X / world.GridSize), GY: int(d.Y / world.GridSize),
			Kind: d.Type, Level: d.Level, Experience: d.Experience,
			Buffs:   unpairs(d.Buffs),
			Debuffs: unpairs(d.Debuffs),
		})
	}
	for _, e := range doc.Game.Enemies {
		gs.Enemies = append(gs.Enemies, sim.EnemySnapshot{
			X: e.X, Y: e.Y, Kind: e.Type, Health: e.Health, MaxHealth: e.MaxHealth,
			PathIndex: e.PathIndex, Progress: e.Progress,
			Status:    unpairs(e.Status),
			IsBoss:    e.IsBoss,
			BossKind:  e.BossType,
			Phase:     e.Phase,
			ShieldHP:  e.ShieldHP,
			ShieldMax: e.ShieldMax,
		})
	}
	return gs
}

func unpairs(raw [][2]any) []sim.StatusSnapshot {
	out := make([]sim.StatusSnapshot, 0, len(raw))
	for _, p := range raw {
		kind, _ := p[0].(string)
		remaining, _ := p[1].(float64)
		out = append(out, sim.StatusSnapshot{Kind: effects.Kind(kind), RemainingMS: remaining})
	}
	return out
}

func majorOf(version string) string {
	if idx := strings.IndexByte(version, '.'); idx >= 0 {
		return version[:idx]
	}
	return version
}

// Now returns a millisecond Unix timestamp for the save envelope. Kept as
// a thin wrapper so callers outside the simulation core remain the only
// source of wall-clock reads.
func Now() uint64 {
	return uint64(time.Now().UnixMilli())
}

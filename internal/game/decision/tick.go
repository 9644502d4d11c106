package decision

import (
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/config"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/core"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/rules"
)

// Command is one unit's complete decision: a destination, a follow-up action
// and the score of the move it came from.
type Command struct {
	Dest   core.Coordinate
	Kind   core.ActionKind
	Target int
	Cell   core.Coordinate
	Score  float64
}

// Order converts the command of unit id into an order
func (c Command) Order(id int) core.Order {
	return core.Order{UnitID: id, Dest: c.Dest, Kind: c.Kind, TargetUnit: c.Target, TargetCell: c.Cell}
}

// JointCommand picks one command per unit: entry id indexes the command list
// of unit id. Entries of units that are dead this tick are unused.
type JointCommand [core.MaxUnits]int

// JointSet is the collision-free list of joint commands built for one player
type JointSet struct {
	Player   int
	Quotas   [core.MaxUnits]int
	Product  int
	List     []JointCommand
	Overflow bool
}

// Tick is the scratch state of one decision. It is owned by the engine,
// reset at the start of every turn and read-only for the simulator.
type Tick struct {
	World    *core.World
	Fields   *rules.DistanceFields
	Commands [core.MaxUnits][]Command
	Joint    [core.MaxPlayers]JointSet
	Results  []Result

	moves []Candidate
	shots []Candidate
	bombs []Candidate
}

// NewTick allocates the buffers for a grid under the given budgets
func NewTick(settings config.EngineConfig, grid *core.Grid) *Tick {
	t := &Tick{
		Fields:  rules.NewDistanceFields(grid),
		Results: make([]Result, 0, settings.MaxCommandsMe),
		moves:   make([]Candidate, 0, settings.MaxCandidates),
		shots:   make([]Candidate, 0, settings.MaxCandidates),
		bombs:   make([]Candidate, 0, settings.MaxCandidates),
	}
	for id := range t.Commands {
		t.Commands[id] = make([]Command, 0, settings.MaxCommandsPerUnit)
	}
	for p := range t.Joint {
		t.Joint[p].Player = p
	}
	t.Joint[0].List = make([]JointCommand, 0, settings.MaxCommandsMe)
	t.Joint[1].List = make([]JointCommand, 0, settings.MaxCommandsMe)
	return t
}

// Reset binds the tick to a new world and clears the previous turn's state
func (t *Tick) Reset(w *core.World) {
	t.World = w
	for id := range t.Commands {
		t.Commands[id] = t.Commands[id][:0]
	}
	for p := range t.Joint {
		t.Joint[p].List = t.Joint[p].List[:0]
		t.Joint[p].Overflow = false
		t.Joint[p].Product = 0
		t.Joint[p].Quotas = [core.MaxUnits]int{}
	}
	t.Results = t.Results[:0]
	t.Fields.Build(w)
}

// Command returns the command jc assigns to unit id
func (t *Tick) Command(id int, jc *JointCommand) *Command {
	return &t.Commands[id][jc[id]]
}

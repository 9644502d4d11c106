package core

import "fmt"

// Fixed capacities. Every per-unit array in the engine is sized by MaxUnits
// and indexed by unit id.
const (
	MaxUnits   = 10
	MaxPlayers = 2
)

// Wetness thresholds
const (
	WetnessHalf = 50
	WetnessMax  = 100
)

// UnitStatic holds the attributes of a unit that never change during a game
type UnitStatic struct {
	ID           int
	Player       int
	Cooldown     int // ticks between two shots
	OptimalRange int
	Power        int
	Bombs        int // starting splash bombs
}

// UnitState is the per-tick snapshot of a unit
type UnitState struct {
	ID       int
	Pos      Coordinate
	Cooldown int
	Bombs    int
	Wetness  int
	Alive    bool
}

// Roster is the contiguous id range [Start, Stop] owned by one player
type Roster struct {
	Start int
	Stop  int
	Count int
}

// Contains reports whether unit id belongs to the roster
func (r Roster) Contains(id int) bool {
	return r.Count > 0 && id >= r.Start && id <= r.Stop
}

// World is the authoritative game snapshot for one tick: static setup plus
// the live unit states. The decision engine treats it as read-only.
type World struct {
	Grid     *Grid
	Me       int
	Turn     int
	NumUnits int
	Static   [MaxUnits]UnitStatic
	Rosters  [MaxPlayers]Roster
	Units    [MaxUnits]UnitState
}

// Opponent returns the other player id
func Opponent(player int) int { return 1 - player }

// NewWorld validates the static setup and derives the per-player rosters.
// Units must be given in id order (0..n-1) and each player's ids must be contiguous.
func NewWorld(grid *Grid, me int, statics []UnitStatic) (*World, error) {
	if grid == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrGridSize)
	}
	if me < 0 || me >= MaxPlayers {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPlayer, me)
	}
	if len(statics) > MaxUnits {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyUnits, len(statics), MaxUnits)
	}

	w := &World{Grid: grid, Me: me, NumUnits: len(statics)}
	for p := range w.Rosters {
		w.Rosters[p] = Roster{Start: -1, Stop: -1}
	}

	for i, s := range statics {
		if s.ID != i {
			return nil, WrapUnitError(s.ID, "setup", fmt.Errorf("%w: expected id %d", ErrRosterLayout, i))
		}
		if s.Player < 0 || s.Player >= MaxPlayers {
			return nil, WrapUnitError(s.ID, "setup", ErrInvalidPlayer)
		}
		r := &w.Rosters[s.Player]
		if r.Count > 0 && r.Stop != i-1 {
			return nil, WrapUnitError(s.ID, "setup", ErrRosterLayout)
		}
		if r.Count == 0 {
			r.Start = i
		}
		r.Count++
		r.Stop = i

		w.Static[i] = s
		w.Units[i] = UnitState{ID: i, Bombs: s.Bombs}
	}
	return w, nil
}

// BeginTick marks every unit dead; the caller then reports the live ones with SetUnit.
func (w *World) BeginTick(turn int) {
	w.Turn = turn
	for i := range w.Units {
		w.Units[i].Alive = false
	}
}

// SetUnit records a live unit for the current tick
func (w *World) SetUnit(s UnitState) error {
	if s.ID < 0 || s.ID >= w.NumUnits {
		return WrapUnitError(s.ID, "update", ErrUnknownUnit)
	}
	if !w.Grid.Contains(s.Pos) {
		return WrapUnitError(s.ID, "update", fmt.Errorf("%w: %s", ErrInvalidCoordinates, s.Pos))
	}
	s.Alive = true
	w.Units[s.ID] = s
	return nil
}

// PlayerOf returns the owner of unit id
func (w *World) PlayerOf(id int) int {
	return w.Static[id].Player
}

// LiveCount returns how many of the player's units are alive
func (w *World) LiveCount(player int) int {
	r := w.Rosters[player]
	n := 0
	for id := r.Start; r.Contains(id); id++ {
		if w.Units[id].Alive {
			n++
		}
	}
	return n
}

// TotalWetness sums the wetness of the player's live units
func (w *World) TotalWetness(player int) int {
	r := w.Rosters[player]
	total := 0
	for id := r.Start; r.Contains(id); id++ {
		if w.Units[id].Alive {
			total += w.Units[id].Wetness
		}
	}
	return total
}

// Clone returns an independent copy of the world. The grid is shared since it never changes.
func (w *World) Clone() *World {
	c := *w
	return &c
}

// AsPlayer returns a copy of the world seen from the given player's side
func (w *World) AsPlayer(player int) *World {
	c := w.Clone()
	c.Me = player
	return c
}

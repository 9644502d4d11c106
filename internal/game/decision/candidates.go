package decision

import (
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/config"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/core"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/rules"
)

// Candidate is one scored option for a unit. Cell is the move destination or
// the bomb target; Unit is the shot target.
type Candidate struct {
	Cell  core.Coordinate
	Unit  int
	Score float64
}

// sortCandidates orders s by descending score. An entry only moves ahead of
// an earlier one when strictly greater.
func sortCandidates(s []Candidate) {
	for i := 0; i < len(s)-1; i++ {
		for j := i + 1; j < len(s); j++ {
			if s[j].Score > s[i].Score {
				s[i], s[j] = s[j], s[i]
			}
		}
	}
}

// Generator produces the move, shot and bomb candidates of a unit.
// Candidate lists are written into caller-owned buffers.
type Generator struct {
	heuristics    config.HeuristicsConfig
	maxCandidates int
	fields        *rules.DistanceFields
}

// NewGenerator creates a generator reading walking distances from fields
func NewGenerator(settings config.EngineConfig, fields *rules.DistanceFields) *Generator {
	return &Generator{
		heuristics:    settings.Heuristics,
		maxCandidates: settings.MaxCandidates,
		fields:        fields,
	}
}

// Moves scores the cells unit id can reach this tick, best first
func (g *Generator) Moves(w *core.World, id int, out []Candidate) []Candidate {
	out = out[:0]
	u := &w.Units[id]
	player := w.PlayerOf(id)
	allies := w.Rosters[player]
	enemies := w.Rosters[core.Opponent(player)]

	// Splash-capable enemies nearby make clustering expensive
	danger := false
	for k := enemies.Start; enemies.Contains(k); k++ {
		e := &w.Units[k]
		if e.Alive && e.Bombs > 0 && e.Pos.DistanceTo(u.Pos) <= g.heuristics.DangerRadius {
			danger = true
			break
		}
	}

	for _, dir := range core.MoveDirections {
		dest := u.Pos.Move(dir)
		if !w.Grid.Passable(dest) {
			continue
		}

		nearest := rules.Unreachable
		for k := enemies.Start; enemies.Contains(k); k++ {
			if !w.Units[k].Alive {
				continue
			}
			if d := g.fields.Distance(k, dest); d < nearest {
				nearest = d
			}
		}

		penalty := 0
		if danger {
			for a := allies.Start; a <= allies.Stop; a++ {
				if a == id || !w.Units[a].Alive {
					continue
				}
				if w.Units[a].Pos.DistanceTo(dest) < g.heuristics.AllyRadius {
					penalty += g.heuristics.AllyPenalty
				}
			}
		}

		gain := rules.TerritoryBalance(w, player, id, dest)
		if len(out) < g.maxCandidates {
			out = append(out, Candidate{Cell: dest, Unit: -1, Score: float64(gain*10 - nearest - penalty)})
		}
	}

	sortCandidates(out)
	return out
}

// Shots scores the enemies unit id can hit from cell from, best first.
// A unit on cooldown has no shots.
func (g *Generator) Shots(w *core.World, id int, from core.Coordinate, out []Candidate) []Candidate {
	out = out[:0]
	u := &w.Units[id]
	if !u.Alive || u.Cooldown > 0 {
		return out
	}
	static := &w.Static[id]
	enemies := w.Rosters[core.Opponent(static.Player)]
	maxRange := 2 * static.OptimalRange

	for k := enemies.Start; enemies.Contains(k); k++ {
		e := &w.Units[k]
		if !e.Alive {
			continue
		}
		dist := e.Pos.DistanceTo(from)
		if dist > maxRange {
			continue
		}
		bonus := 1.0
		if dist <= static.OptimalRange {
			bonus = 1.5
		}
		if len(out) < g.maxCandidates {
			out = append(out, Candidate{Cell: e.Pos, Unit: k, Score: float64(e.Wetness)*bonus - float64(2*dist)})
		}
	}

	sortCandidates(out)
	return out
}

// Bombs scores splash targets for unit id throwing from cell from, best first.
// Each enemy offers its own cell and the neighbours it cannot dodge past.
func (g *Generator) Bombs(w *core.World, id int, from core.Coordinate, out []Candidate) []Candidate {
	out = out[:0]
	u := &w.Units[id]
	if !u.Alive || u.Bombs <= 0 {
		return out
	}
	player := w.PlayerOf(id)
	enemies := w.Rosters[core.Opponent(player)]

	for k := enemies.Start; enemies.Contains(k); k++ {
		e := &w.Units[k]
		if !e.Alive {
			continue
		}
		for _, dir := range core.MoveDirections {
			offset := core.DirectionVectors[dir]
			target := e.Pos.Add(offset)
			if !w.Grid.Contains(target) {
				continue
			}
			if dir != core.Stay && !rules.Blocked(w.Grid, e.Pos.Sub(offset), from) {
				continue
			}
			if target.DistanceTo(from) > g.heuristics.MaxThrowRange {
				continue
			}
			if alliesInSplash(w, player, id, from, target) {
				continue
			}
			score := 100 - e.Wetness - rules.BlastPenalty(w.Grid, target, from)
			if len(out) < g.maxCandidates {
				out = append(out, Candidate{Cell: target, Unit: k, Score: float64(score)})
			}
		}
	}

	sortCandidates(out)
	return out
}

// alliesInSplash reports whether a bomb on target would catch a live unit of
// player. The thrower is taken at its post-move cell.
func alliesInSplash(w *core.World, player, thrower int, from, target core.Coordinate) bool {
	r := w.Rosters[player]
	for a := r.Start; r.Contains(a); a++ {
		if !w.Units[a].Alive {
			continue
		}
		pos := w.Units[a].Pos
		if a == thrower {
			pos = from
		}
		if rules.InSplash(target, pos) {
			return true
		}
	}
	return false
}

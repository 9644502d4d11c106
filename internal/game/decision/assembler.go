package decision

import (
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/core"
)

// Assembler turns candidate lists into per-unit command lists
type Assembler struct {
	gen        *Generator
	maxPerUnit int
	maxPerMove int
}

// NewAssembler creates an assembler capping each unit at maxPerUnit commands
// and each move at maxPerMove shots and maxPerMove bombs.
func NewAssembler(gen *Generator, maxPerUnit, maxPerMove int) *Assembler {
	return &Assembler{gen: gen, maxPerUnit: maxPerUnit, maxPerMove: maxPerMove}
}

// ActionLimit is how many shots and bombs each move contributes, for both
// players, given the controlled player's live unit count.
func (a *Assembler) ActionLimit(w *core.World) int {
	return min(w.LiveCount(w.Me), a.maxPerMove)
}

// Assemble fills t.Commands for every live unit
func (a *Assembler) Assemble(t *Tick) {
	limit := a.ActionLimit(t.World)
	for id := 0; id < t.World.NumUnits; id++ {
		if t.World.Units[id].Alive {
			a.AssembleUnit(t, id, limit)
		}
	}
}

// AssembleUnit builds the command list of one live unit. Moves are visited
// best first; each contributes its bombs, then its shots, then a hold, all
// carrying the move's score.
func (a *Assembler) AssembleUnit(t *Tick, id, limit int) {
	w := t.World
	cmds := t.Commands[id][:0]

	t.moves = a.gen.Moves(w, id, t.moves)
	for _, mv := range t.moves {
		if len(cmds) >= a.maxPerUnit {
			break
		}

		t.bombs = a.gen.Bombs(w, id, mv.Cell, t.bombs)
		for _, b := range t.bombs[:min(len(t.bombs), limit)] {
			if len(cmds) >= a.maxPerUnit {
				break
			}
			cmds = append(cmds, Command{Dest: mv.Cell, Kind: core.ActionThrow, Target: -1, Cell: b.Cell, Score: mv.Score})
		}

		t.shots = a.gen.Shots(w, id, mv.Cell, t.shots)
		for _, s := range t.shots[:min(len(t.shots), limit)] {
			if len(cmds) >= a.maxPerUnit {
				break
			}
			cmds = append(cmds, Command{Dest: mv.Cell, Kind: core.ActionShoot, Target: s.Unit, Score: mv.Score})
		}

		if len(cmds) < a.maxPerUnit {
			cmds = append(cmds, Command{Dest: mv.Cell, Kind: core.ActionHold, Target: -1, Score: mv.Score})
		}
	}

	// A live unit always has at least one option
	if len(cmds) == 0 {
		cmds = append(cmds, Command{Dest: w.Units[id].Pos, Kind: core.ActionHold, Target: -1})
	}
	t.Commands[id] = cmds
}

package mapgen

import (
	"fmt"
	"math/rand"

	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/config"
	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/core"
)

// Class is a unit archetype with fixed combat stats
type Class struct {
	Name         string
	Cooldown     int
	OptimalRange int
	Power        int
	Bombs        int
}

// Classes available to generated rosters
var Classes = []Class{
	{Name: "gunner", Cooldown: 1, OptimalRange: 4, Power: 16, Bombs: 1},
	{Name: "sniper", Cooldown: 5, OptimalRange: 6, Power: 24, Bombs: 0},
	{Name: "bomber", Cooldown: 2, OptimalRange: 2, Power: 8, Bombs: 3},
	{Name: "assault", Cooldown: 2, OptimalRange: 4, Power: 16, Bombs: 2},
	{Name: "berserker", Cooldown: 5, OptimalRange: 2, Power: 32, Bombs: 1},
}

// MapConfig holds configuration for arena generation
type MapConfig struct {
	Width          int
	Height         int
	UnitsPerPlayer int
	CoverPercent   int // share of cells turned into cover, 0-100
}

// DefaultMapConfig returns the arena settings from the loaded configuration
func DefaultMapConfig(c config.MapgenConfig) MapConfig {
	return MapConfig{
		Width:          c.Width,
		Height:         c.Height,
		UnitsPerPlayer: c.UnitsPerPlayer,
		CoverPercent:   c.CoverPercent,
	}
}

// Validate checks that an arena can be built from the configuration
func (c MapConfig) Validate() error {
	if c.Width < 3 || c.Height < 1 {
		return fmt.Errorf("%w: %dx%d", core.ErrGridSize, c.Width, c.Height)
	}
	if c.UnitsPerPlayer < 1 || c.UnitsPerPlayer*core.MaxPlayers > core.MaxUnits {
		return fmt.Errorf("%w: %d per player", core.ErrTooManyUnits, c.UnitsPerPlayer)
	}
	if c.UnitsPerPlayer > c.Width/3*c.Height {
		return fmt.Errorf("%w: %d units do not fit in a %dx%d arena", core.ErrGridSize, c.UnitsPerPlayer, c.Width, c.Height)
	}
	if c.CoverPercent < 0 || c.CoverPercent > 100 {
		return fmt.Errorf("%w: cover percent %d", core.ErrGridSize, c.CoverPercent)
	}
	return nil
}

// Generator builds point-symmetric arenas with a deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
}

// NewGenerator creates a new arena generator
func NewGenerator(cfg MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: cfg,
		rng:    rng,
	}
}

// Generate creates a world seen from player 0 at turn 1. Player 1 mirrors
// player 0 through the arena centre, unit for unit.
func (g *Generator) Generate() (*core.World, error) {
	if err := g.config.Validate(); err != nil {
		return nil, err
	}

	grid, err := core.NewGrid(g.config.Width, g.config.Height)
	if err != nil {
		return nil, err
	}
	spawns := g.pickSpawns(grid)
	g.placeCover(grid, spawns)

	n := g.config.UnitsPerPlayer
	statics := make([]core.UnitStatic, 0, 2*n)
	classes := make([]Class, n)
	for i := range classes {
		classes[i] = Classes[g.rng.Intn(len(Classes))]
	}
	for p := 0; p < core.MaxPlayers; p++ {
		for i, c := range classes {
			statics = append(statics, core.UnitStatic{
				ID:           p*n + i,
				Player:       p,
				Cooldown:     c.Cooldown,
				OptimalRange: c.OptimalRange,
				Power:        c.Power,
				Bombs:        c.Bombs,
			})
		}
	}

	w, err := core.NewWorld(grid, 0, statics)
	if err != nil {
		return nil, err
	}
	w.BeginTick(1)
	for i, pos := range spawns {
		for p := 0; p < core.MaxPlayers; p++ {
			if p == 1 {
				pos = g.mirror(pos)
			}
			if err := w.SetUnit(core.UnitState{ID: p*n + i, Pos: pos, Bombs: classes[i].Bombs}); err != nil {
				return nil, err
			}
		}
	}
	return w, nil
}

// mirror maps c through the arena centre
func (g *Generator) mirror(c core.Coordinate) core.Coordinate {
	return core.Coordinate{X: g.config.Width - 1 - c.X, Y: g.config.Height - 1 - c.Y}
}

// pickSpawns chooses distinct cells for player 0 in the left third of the arena
func (g *Generator) pickSpawns(grid *core.Grid) []core.Coordinate {
	cols := grid.W / 3
	cells := g.rng.Perm(cols * grid.H)[:g.config.UnitsPerPlayer]
	spawns := make([]core.Coordinate, len(cells))
	for i, c := range cells {
		spawns[i] = core.Coordinate{X: c % cols, Y: c / cols}
	}
	return spawns
}

// placeCover sprinkles low and high cover in mirrored pairs, keeping spawns open
func (g *Generator) placeCover(grid *core.Grid, spawns []core.Coordinate) {
	want := grid.Cells() * g.config.CoverPercent / 100

	reserved := make(map[core.Coordinate]bool, 2*len(spawns))
	for _, s := range spawns {
		reserved[s] = true
		reserved[g.mirror(s)] = true
	}

	placed := 0
	maxAttempts := want * 10
	for attempts := 0; placed < want && attempts < maxAttempts; attempts++ {
		c := core.Coordinate{X: g.rng.Intn(grid.W), Y: g.rng.Intn(grid.H)}
		m := g.mirror(c)
		if reserved[c] || reserved[m] || grid.At(c) != core.TerrainOpen {
			continue
		}

		t := core.TerrainLowCover
		if g.rng.Intn(3) == 0 {
			t = core.TerrainHighCover
		}
		_ = grid.Set(c, t)
		_ = grid.Set(m, t)
		placed += 2
		if c == m {
			placed--
		}
	}
}

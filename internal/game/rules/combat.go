package rules

import (
	"math"

	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/core"
)

// SplashDamage is the wetness a splash bomb adds to every unit in its blast
const SplashDamage = 30

// RangeModifier scales shot damage by distance: full inside the optimal range,
// half up to twice the optimal range, nothing beyond.
func RangeModifier(dist, optimalRange int) float64 {
	switch {
	case dist <= optimalRange:
		return 1.0
	case dist <= 2*optimalRange:
		return 0.5
	default:
		return 0
	}
}

// CoverModifier scales shot damage by the cell adjacent to the target on the
// shooter's side: 0.5 behind low cover, 0.25 behind high cover.
func CoverModifier(g *core.Grid, shooter, target core.Coordinate) float64 {
	cover := target.Add(target.StepToward(shooter))
	if !g.Contains(cover) {
		return 1.0
	}
	switch g.At(cover) {
	case core.TerrainLowCover:
		return 0.5
	case core.TerrainHighCover:
		return 0.25
	default:
		return 1.0
	}
}

// ShotDamage is the wetness a shot from shooter to target adds
func ShotDamage(g *core.Grid, s *core.UnitStatic, shooter, target core.Coordinate) int {
	rangeMod := RangeModifier(shooter.DistanceTo(target), s.OptimalRange)
	if rangeMod == 0 {
		return 0
	}
	dmg := float64(s.Power) * rangeMod * CoverModifier(g, shooter, target)
	if dmg <= 0 {
		return 0
	}
	return int(math.Floor(dmg))
}

// InSplash reports whether c is caught by a bomb landing on center
func InSplash(center, c core.Coordinate) bool {
	return center.ChebyshevTo(c) <= 1
}

// BlastPenalty counts the cells of the 3x3 blast around center that are
// outside the grid, not open, or the thrower's own cell.
func BlastPenalty(g *core.Grid, center, thrower core.Coordinate) int {
	penalty := 0
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			c := core.Coordinate{X: center.X + dx, Y: center.Y + dy}
			if !g.Passable(c) || c == thrower {
				penalty++
			}
		}
	}
	return penalty
}

// Blocked reports whether c stops a throw from rolling on: a wall, the grid
// edge, or the thrower standing there.
func Blocked(g *core.Grid, c, thrower core.Coordinate) bool {
	return !g.Passable(c) || c == thrower
}

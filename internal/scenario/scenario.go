// Package scenario stores game positions as YAML files for offline runs.
package scenario

import (
	"fmt"
	"os"

	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/core"
	"gopkg.in/yaml.v3"
)

// Unit is one unit of a scenario. Units are listed in id order and each
// player's units must be next to each other.
type Unit struct {
	Player        int  `yaml:"player"`
	X             int  `yaml:"x"`
	Y             int  `yaml:"y"`
	ShootCooldown int  `yaml:"shoot_cooldown"`
	OptimalRange  int  `yaml:"optimal_range"`
	SoakingPower  int  `yaml:"soaking_power"`
	SplashBombs   int  `yaml:"splash_bombs"`
	Cooldown      int  `yaml:"cooldown,omitempty"`
	BombsLeft     *int `yaml:"bombs_left,omitempty"` // defaults to SplashBombs
	Wetness       int  `yaml:"wetness,omitempty"`
	Dead          bool `yaml:"dead,omitempty"`
}

// Scenario is a complete position: arena, units and the controlled player
type Scenario struct {
	Name  string   `yaml:"name"`
	Me    int      `yaml:"me"`
	Turn  int      `yaml:"turn,omitempty"`
	Grid  []string `yaml:"grid"`
	Units []Unit   `yaml:"units"`
}

// Load reads a scenario file
func Load(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	s, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scenario document
func Parse(b []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	if s.Turn == 0 {
		s.Turn = 1
	}
	return &s, nil
}

// Save writes s to path
func Save(path string, s *Scenario) error {
	b, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding scenario: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("writing scenario: %w", err)
	}
	return nil
}

// World builds the position described by the scenario
func (s *Scenario) World() (*core.World, error) {
	grid, err := core.ParseGrid(s.Grid)
	if err != nil {
		return nil, err
	}
	statics := make([]core.UnitStatic, len(s.Units))
	for i, u := range s.Units {
		statics[i] = core.UnitStatic{
			ID:           i,
			Player:       u.Player,
			Cooldown:     u.ShootCooldown,
			OptimalRange: u.OptimalRange,
			Power:        u.SoakingPower,
			Bombs:        u.SplashBombs,
		}
	}
	w, err := core.NewWorld(grid, s.Me, statics)
	if err != nil {
		return nil, err
	}

	w.BeginTick(s.Turn)
	for i, u := range s.Units {
		if u.Dead {
			continue
		}
		bombs := u.SplashBombs
		if u.BombsLeft != nil {
			bombs = *u.BombsLeft
		}
		err := w.SetUnit(core.UnitState{
			ID:       i,
			Pos:      core.Coordinate{X: u.X, Y: u.Y},
			Cooldown: u.Cooldown,
			Bombs:    bombs,
			Wetness:  u.Wetness,
		})
		if err != nil {
			return nil, err
		}
	}
	return w, nil
}

// FromWorld captures w as a scenario
func FromWorld(name string, w *core.World) *Scenario {
	s := &Scenario{Name: name, Me: w.Me, Turn: w.Turn, Grid: w.Grid.Rows()}
	for id := 0; id < w.NumUnits; id++ {
		st, u := w.Static[id], w.Units[id]
		unit := Unit{
			Player:        st.Player,
			X:             u.Pos.X,
			Y:             u.Pos.Y,
			ShootCooldown: st.Cooldown,
			OptimalRange:  st.OptimalRange,
			SoakingPower:  st.Power,
			SplashBombs:   st.Bombs,
			Cooldown:      u.Cooldown,
			Wetness:       u.Wetness,
			Dead:          !u.Alive,
		}
		if u.Bombs != st.Bombs {
			left := u.Bombs
			unit.BombsLeft = &left
		}
		s.Units = append(s.Units, unit)
	}
	return s
}

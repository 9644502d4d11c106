// Package protocol reads the referee's line protocol and writes unit orders.
// Unit ids on the wire are 1-based; inside the engine they are 0-based.
package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/core"
)

var ErrMalformedInput = errors.New("malformed input")

// Reader decodes the whitespace separated integer stream sent by the referee
type Reader struct {
	sc     *bufio.Scanner
	tokens int
}

// NewReader creates a reader on r
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	return &Reader{sc: sc}
}

func (r *Reader) nextInt(what string) (int, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return 0, fmt.Errorf("reading %s: %w", what, err)
		}
		return 0, io.EOF
	}
	r.tokens++
	n, err := strconv.Atoi(r.sc.Text())
	if err != nil {
		return 0, fmt.Errorf("%w: %s at token %d: %q", ErrMalformedInput, what, r.tokens, r.sc.Text())
	}
	return n, nil
}

// ints reads len(dst) integers; a stream ending half way is unexpected
func (r *Reader) ints(what string, dst ...*int) error {
	for i, p := range dst {
		n, err := r.nextInt(what)
		if err != nil {
			if errors.Is(err, io.EOF) && i > 0 {
				return fmt.Errorf("%s: %w", what, io.ErrUnexpectedEOF)
			}
			return err
		}
		*p = n
	}
	return nil
}

// ReadInit reads the static setup: controlled player, unit roster and grid
func (r *Reader) ReadInit() (*core.World, error) {
	var me, count int
	if err := r.ints("player id", &me); err != nil {
		return nil, err
	}
	if err := r.ints("unit count", &count); err != nil {
		return nil, unexpected(err)
	}
	if count < 0 || count > core.MaxUnits {
		return nil, fmt.Errorf("%w: %d units", core.ErrTooManyUnits, count)
	}

	statics := make([]core.UnitStatic, count)
	for i := range statics {
		s := &statics[i]
		if err := r.ints("unit info", &s.ID, &s.Player, &s.Cooldown, &s.OptimalRange, &s.Power, &s.Bombs); err != nil {
			return nil, unexpected(err)
		}
		s.ID--
	}
	sort.SliceStable(statics, func(i, j int) bool { return statics[i].ID < statics[j].ID })

	var width, height int
	if err := r.ints("grid size", &width, &height); err != nil {
		return nil, unexpected(err)
	}
	grid, err := core.NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	for i := 0; i < width*height; i++ {
		var x, y, t int
		if err := r.ints("tile", &x, &y, &t); err != nil {
			return nil, unexpected(err)
		}
		if t < int(core.TerrainOpen) || t > int(core.TerrainHighCover) {
			return nil, fmt.Errorf("%w: tile type %d at (%d,%d)", ErrMalformedInput, t, x, y)
		}
		if err := grid.Set(core.Coordinate{X: x, Y: y}, core.Terrain(t)); err != nil {
			return nil, err
		}
	}

	return core.NewWorld(grid, me, statics)
}

// ReadTick reads the live units of one turn into w. It returns io.EOF when
// the stream ends cleanly before the turn starts.
func (r *Reader) ReadTick(w *core.World, turn int) error {
	var count int
	if err := r.ints("live unit count", &count); err != nil {
		return err
	}
	if count < 0 || count > w.NumUnits {
		return core.WrapTurnError(turn, "read", fmt.Errorf("%w: %d live units", ErrMalformedInput, count))
	}

	w.BeginTick(turn)
	for i := 0; i < count; i++ {
		var s core.UnitState
		if err := r.ints("unit state", &s.ID, &s.Pos.X, &s.Pos.Y, &s.Cooldown, &s.Bombs, &s.Wetness); err != nil {
			return core.WrapTurnError(turn, "read", unexpected(err))
		}
		s.ID--
		if err := w.SetUnit(s); err != nil {
			return core.WrapTurnError(turn, "read", err)
		}
	}

	var mine int
	if err := r.ints("my unit count", &mine); err != nil {
		return core.WrapTurnError(turn, "read", unexpected(err))
	}
	return nil
}

func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

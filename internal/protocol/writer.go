package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ArgoFlash/SummerChallengeCodinGame2025/internal/game/core"
)

// FormatOrder renders one order line. The MOVE part is left out when the
// unit stays where it is.
func FormatOrder(w *core.World, o core.Order, elapsed time.Duration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d", o.UnitID+1)
	if o.Dest != w.Units[o.UnitID].Pos {
		fmt.Fprintf(&b, ";MOVE %d %d", o.Dest.X, o.Dest.Y)
	}
	switch o.Kind {
	case core.ActionShoot:
		fmt.Fprintf(&b, ";SHOOT %d", o.TargetUnit+1)
	case core.ActionThrow:
		fmt.Fprintf(&b, ";THROW %d %d", o.TargetCell.X, o.TargetCell.Y)
	default:
		b.WriteString(";HUNKER_DOWN")
	}
	fmt.Fprintf(&b, ";MESSAGE %.2fms", float64(elapsed.Microseconds())/1000)
	return b.String()
}

// Writer emits order lines, one per live unit
type Writer struct {
	bw *bufio.Writer
}

// NewWriter creates a writer on w
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// WriteOrders writes every order and flushes, so the referee sees the whole turn at once
func (wr *Writer) WriteOrders(w *core.World, orders []core.Order, elapsed time.Duration) error {
	for _, o := range orders {
		if _, err := wr.bw.WriteString(FormatOrder(w, o, elapsed)); err != nil {
			return fmt.Errorf("writing order for unit %d: %w", o.UnitID, err)
		}
		if err := wr.bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing order for unit %d: %w", o.UnitID, err)
		}
	}
	return wr.bw.Flush()
}

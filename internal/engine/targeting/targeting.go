// Package targeting decides which enemy units are visible for an attack.
//
// An army stands in three columns. The front column is always visible, a
// middle unit is hidden by a living front unit on the same row and a back
// unit is hidden by a living middle unit on the same row. Only the
// neighboring column covers: a front unit never hides a back unit.
package targeting

import (
	"reflect"

	"github.com/KirkDiggler/rpg-battle/internal/engine/grid"
)

// ColumnCount is the depth of a formation
const ColumnCount = 3

// Target is anything that stands in a formation
type Target interface {
	IsAlive() bool
	Position() grid.Cell
}

// Suitable returns the living, uncovered units of the target formation in
// front, middle, back order. columns holds exactly three columns ordered by
// x. When leftArmyTarget is true the formation faces right, so its front is
// the last column. Rows outside [0, height) are never visible behind the
// front. Malformed input yields nil.
func Suitable[T Target](columns [][]T, leftArmyTarget bool, height int) []T {
	if len(columns) != ColumnCount {
		return nil
	}

	frontIdx, backIdx := 0, 2
	if leftArmyTarget {
		frontIdx, backIdx = 2, 0
	}
	front, middle, back := columns[frontIdx], columns[1], columns[backIdx]

	frontRows := aliveRows(front, height)
	middleRows := aliveRows(middle, height)

	var out []T
	for _, u := range front {
		if alive(u) {
			out = append(out, u)
		}
	}
	for _, u := range middle {
		if visible(u, frontRows, height) {
			out = append(out, u)
		}
	}
	for _, u := range back {
		if visible(u, middleRows, height) {
			out = append(out, u)
		}
	}
	return out
}

// Columns splits units into the three columns starting at firstX. Units
// standing elsewhere are left out.
func Columns[T Target](units []T, firstX int) [][]T {
	cols := make([][]T, ColumnCount)
	for _, u := range units {
		if isNil(u) {
			continue
		}
		i := u.Position().X - firstX
		if i < 0 || i >= ColumnCount {
			continue
		}
		cols[i] = append(cols[i], u)
	}
	return cols
}

func aliveRows[T Target](units []T, height int) []bool {
	rows := make([]bool, height)
	for _, u := range units {
		if !alive(u) {
			continue
		}
		if y := u.Position().Y; y >= 0 && y < height {
			rows[y] = true
		}
	}
	return rows
}

func visible[T Target](u T, coveredRows []bool, height int) bool {
	if !alive(u) {
		return false
	}
	y := u.Position().Y
	return y >= 0 && y < height && !coveredRows[y]
}

func alive[T Target](u T) bool {
	return !isNil(u) && u.IsAlive()
}

// isNil also catches typed nil pointers held in T
func isNil[T Target](u T) bool {
	v := reflect.ValueOf(any(u))
	return !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil())
}

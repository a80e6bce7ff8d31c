package domain

import (
	"fmt"
	"reflect"
)

// slot は物理セル 1 つ分。set が false のセルは未設定で、読み出すと fill になる。
type slot[T comparable] struct {
	elem T
	set  bool
}

// historyEntry は配置とその時点の最長列のスナップショットを組にしたもの。
// 1 つのスタックに積むことで undo 深さと最長列履歴の深さが常に一致する。
type historyEntry[T comparable] struct {
	placement Placement[T]
	longest   []Placement[T]
}

// Board は符号付きの行・列座標で要素を記録する、必要に応じて拡張される 2 次元盤面。
//
// 仮想座標 (r, c) は物理座標 (r-minRow, c-minCol) に対応する。範囲は拡張のみで、
// Undo しても縮まない。一度設定したセルは Undo 以外で未設定に戻らない。
//
// Board は単一の所有者から使う前提で、並行アクセスに対する保護は持たない。
type Board[T comparable] struct {
	cells [][]slot[T]

	minRow, maxRow int
	minCol, maxCol int

	fill T

	// baseline は FromGrid の初期配置で得られた最長列。履歴には積まれない。
	baseline []Placement[T]

	// longestLen はこれまでに観測した最長列の長さ。Undo しても下がらない。
	longestLen int

	undo stack[historyEntry[T]]
	redo stack[historyEntry[T]]

	// recording が false の間は Set が履歴を積まない。
	recording bool
}

// New は指定範囲の空の盤面を生成する。全てのセルは未設定で、Get は fill を返す。
func New[T comparable](minRow, maxRow, minCol, maxCol int, fill T) (*Board[T], error) {
	if isNil(fill) {
		return nil, ErrNullElement
	}
	if minRow > maxRow || minCol > maxCol {
		return nil, fmt.Errorf("%w: rows [%d,%d] cols [%d,%d]", ErrInvalidExtent, minRow, maxRow, minCol, maxCol)
	}

	b := &Board[T]{
		minRow:    minRow,
		maxRow:    maxRow,
		minCol:    minCol,
		maxCol:    maxCol,
		fill:      fill,
		recording: true,
	}
	b.cells = newCells[T](maxRow-minRow+1, maxCol-minCol+1)
	return b, nil
}

// NewSingleCell は (0,0) の 1 セルだけを持つ盤面を生成する。
func NewSingleCell[T comparable](fill T) (*Board[T], error) {
	return New(0, 0, 0, 0, fill)
}

// FromGrid は長方形の 2 次元配列から盤面を生成する。grid[0][0] が仮想座標 (0,0) になる。
//
// fill と異なるセルは通常の Set 経路で配置されるため最長列の追跡には反映されるが、
// Undo 履歴には残らない。
func FromGrid[T comparable](grid [][]T, fill T) (*Board[T], error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, fmt.Errorf("%w: grid must not be empty", ErrInvalidExtent)
	}
	cols := len(grid[0])
	for r, row := range grid {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidExtent, r, len(row), cols)
		}
		for _, v := range row {
			if isNil(v) {
				return nil, ErrNullElement
			}
		}
	}

	b, err := New(0, len(grid)-1, 0, cols-1, fill)
	if err != nil {
		return nil, err
	}

	b.recording = false
	defer func() { b.recording = true }()

	for r, row := range grid {
		for c, v := range row {
			if v == fill {
				continue
			}
			if err := b.Set(r, c, v); err != nil {
				return nil, fmt.Errorf("place grid cell %d %d: %w", r, c, err)
			}
		}
	}
	return b, nil
}

func newCells[T comparable](rows, cols int) [][]slot[T] {
	cells := make([][]slot[T], rows)
	for r := range cells {
		cells[r] = make([]slot[T], cols)
	}
	return cells
}

func (b *Board[T]) MinRow() int { return b.minRow }
func (b *Board[T]) MaxRow() int { return b.maxRow }
func (b *Board[T]) MinCol() int { return b.minCol }
func (b *Board[T]) MaxCol() int { return b.maxCol }

// PhysicalRows はメモリ上に確保されている行数を返す。
func (b *Board[T]) PhysicalRows() int {
	return len(b.cells)
}

// PhysicalCols はメモリ上に確保されている列数を返す。
func (b *Board[T]) PhysicalCols() int {
	return len(b.cells[0])
}

// Fill は現在の fill 要素を返す。
func (b *Board[T]) Fill() T {
	return b.fill
}

// SetFill は fill 要素を差し替える。記憶領域は書き換えない。
func (b *Board[T]) SetFill(fill T) error {
	if isNil(fill) {
		return ErrNullElement
	}
	b.fill = fill
	return nil
}

// Get は仮想座標の要素を返す。範囲外や未設定のセルでは fill を返す。
func (b *Board[T]) Get(row, col int) T {
	if v, ok := b.lookup(row, col); ok {
		return v
	}
	return b.fill
}

// lookup は記憶されている値そのものを返す。範囲外と未設定は ok=false。
func (b *Board[T]) lookup(row, col int) (T, bool) {
	if row < b.minRow || row > b.maxRow || col < b.minCol || col > b.maxCol {
		var zero T
		return zero, false
	}
	s := b.cells[row-b.minRow][col-b.minCol]
	return s.elem, s.set
}

// write は範囲内であることが保証された座標のセルを書き換える。
func (b *Board[T]) write(row, col int, s slot[T]) {
	b.cells[row-b.minRow][col-b.minCol] = s
}

// isNil は nil インタフェースや nil ポインタなど「値が存在しない」ことを判定する。
func isNil[T comparable](v T) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}

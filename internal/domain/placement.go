package domain

import "fmt"

// Placement は盤面に受理された 1 回の配置 (行, 列, 要素) を表す不変の値。
// 全フィールドが比較可能なので == でそのまま等価判定できる。
type Placement[T comparable] struct {
	row  int
	col  int
	elem T
}

// NewPlacement は Placement を生成する。
func NewPlacement[T comparable](row, col int, elem T) Placement[T] {
	return Placement[T]{row: row, col: col, elem: elem}
}

// Row は仮想行を返す。
func (p Placement[T]) Row() int {
	return p.row
}

// Col は仮想列を返す。
func (p Placement[T]) Col() int {
	return p.col
}

// Elem は配置された要素を返す。
func (p Placement[T]) Elem() T {
	return p.elem
}

// String は (row,col,elem) 形式の文字列を返す。
func (p Placement[T]) String() string {
	return fmt.Sprintf("(%d,%d,%v)", p.row, p.col, p.elem)
}

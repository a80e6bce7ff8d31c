package domain

// ExpandToInclude は (row, col) が範囲に含まれるよう盤面を拡張し、新たに作られたセル数を返す。
// 既存要素の仮想座標は変わらない。
//
// 下方向・右方向の拡張は末尾への追加だけで済むが、上方向・左方向の拡張では
// 物理原点がずれるため既存セルを全て再配置する。
func (b *Board[T]) ExpandToInclude(row, col int) int {
	before := b.area()

	top, left := 0, 0
	switch {
	case row < b.minRow:
		top = b.minRow - row
	case row > b.maxRow:
		b.appendRows(row - b.maxRow)
		b.maxRow = row
	}
	switch {
	case col < b.minCol:
		left = b.minCol - col
	case col > b.maxCol:
		b.appendCols(col - b.maxCol)
		b.maxCol = col
	}

	if top > 0 || left > 0 {
		b.cells = reindex(b.cells, top, left)
		b.minRow -= top
		b.minCol -= left
	}

	return b.area() - before
}

// ExpansionSize は ExpandToInclude(row, col) が作るセル数を、盤面を変えずに返す。
func (b *Board[T]) ExpansionSize(row, col int) int {
	rows := max(b.maxRow, row) - min(b.minRow, row) + 1
	cols := max(b.maxCol, col) - min(b.minCol, col) + 1
	return rows*cols - b.area()
}

// AddRowBottom は最下行の下に 1 行追加し、最大行を 1 増やす。
func (b *Board[T]) AddRowBottom() {
	b.appendRows(1)
	b.maxRow++
}

// AddColRight は右端に 1 列追加し、最大列を 1 増やす。
func (b *Board[T]) AddColRight() {
	b.appendCols(1)
	b.maxCol++
}

func (b *Board[T]) area() int {
	return (b.maxRow - b.minRow + 1) * (b.maxCol - b.minCol + 1)
}

func (b *Board[T]) appendRows(n int) {
	width := b.PhysicalCols()
	for i := 0; i < n; i++ {
		b.cells = append(b.cells, make([]slot[T], width))
	}
}

func (b *Board[T]) appendCols(n int) {
	for r := range b.cells {
		b.cells[r] = append(b.cells[r], make([]slot[T], n)...)
	}
}

// reindex は先頭に top 行・left 列の未設定セルを加えた新しい記憶領域を確保し、
// 既存セルをずらした位置へ複写する。元の記憶領域は参照しなくなる。
func reindex[T comparable](cells [][]slot[T], top, left int) [][]slot[T] {
	width := 0
	if len(cells) > 0 {
		width = len(cells[0])
	}

	out := newCells[T](len(cells)+top, width+left)
	for r, row := range cells {
		copy(out[r+top][left:], row)
	}
	return out
}

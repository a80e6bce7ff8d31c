package domain

// axis は走査方向。
type axis struct {
	dr, dc int
}

// 同じ長さの列が複数の軸で見つかった場合はこの順で先にあるものを採用する。
var scanAxes = [...]axis{
	{dr: 1, dc: 1},  // 主対角線
	{dr: 0, dc: 1},  // 横
	{dr: 1, dc: -1}, // 反対角線
	{dr: 1, dc: 0},  // 縦
}

// Set は (row, col) に elem を配置する。必要なら盤面を拡張する。
//
// 既に fill 以外の値を持つセルには配置できず *AlreadySetError を返す。
// elem が fill と等しい場合は何もしない。配置に成功すると redo 履歴は破棄され、
// この配置を通る列がこれまでの最長の長さを超えれば最長列を更新する。
// Undo で最長列が短くなっても比較の基準は下がらない。
func (b *Board[T]) Set(row, col int, elem T) error {
	if isNil(elem) {
		return ErrNullElement
	}
	if cur := b.Get(row, col); cur != b.fill {
		return &AlreadySetError{Row: row, Col: col, Value: cur}
	}
	if elem == b.fill {
		return nil
	}

	b.ExpandToInclude(row, col)
	b.write(row, col, slot[T]{elem: elem, set: true})

	// 新しい列は、これまでに観測した最長の長さを超えた場合だけ採用する。
	longest := b.longest()
	if run := b.runThrough(row, col, elem); len(run) > b.longestLen {
		longest = run
		b.longestLen = len(run)
	}

	if !b.recording {
		b.baseline = longest
		return nil
	}

	b.undo.Push(historyEntry[T]{placement: NewPlacement(row, col, elem), longest: longest})
	b.redo.Clear()
	return nil
}

// LongestSequence は現時点で最長の列を返す。同じ長さなら先に現れた列が優先される。
// 戻り値は盤面と独立したコピーである。
func (b *Board[T]) LongestSequence() []Placement[T] {
	longest := b.longest()
	out := make([]Placement[T], len(longest))
	copy(out, longest)
	return out
}

// longest は履歴の先頭にある最長列を返す。履歴が空なら初期配置の結果を返す。
func (b *Board[T]) longest() []Placement[T] {
	if b.undo.IsEmpty() {
		return b.baseline
	}
	return b.undo.Top().longest
}

// runThrough は (row, col) を通る 4 軸の連続列のうち最長のものを座標順で返す。
func (b *Board[T]) runThrough(row, col int, elem T) []Placement[T] {
	var best []Placement[T]
	for _, ax := range scanAxes {
		if run := b.runAlong(row, col, elem, ax); len(run) > len(best) {
			best = run
		}
	}
	return best
}

func (b *Board[T]) runAlong(row, col int, elem T, ax axis) []Placement[T] {
	back := 0
	for b.holds(row-(back+1)*ax.dr, col-(back+1)*ax.dc, elem) {
		back++
	}
	forward := 0
	for b.holds(row+(forward+1)*ax.dr, col+(forward+1)*ax.dc, elem) {
		forward++
	}

	run := make([]Placement[T], 0, back+forward+1)
	for i := -back; i <= forward; i++ {
		run = append(run, NewPlacement(row+i*ax.dr, col+i*ax.dc, elem))
	}
	return run
}

// holds はセルに elem が記憶されているかを返す。未設定・範囲外のセルは列を打ち切る。
func (b *Board[T]) holds(row, col int, elem T) bool {
	v, ok := b.lookup(row, col)
	return ok && v == elem
}

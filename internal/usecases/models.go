package usecases

import (
	"time"

	"github.com/2509-hackz-ichthyo/main/gridboard/internal/domain"
)

// Bounds は盤面の初期範囲を表す。
type Bounds struct {
	MinRow int `json:"minRow"`
	MaxRow int `json:"maxRow"`
	MinCol int `json:"minCol"`
	MaxCol int `json:"maxCol"`
}

// CreateBoardInput は盤面生成の入力値。Grid と Bounds のどちらも無い場合は (0,0) の 1 セル盤面になる。
// ジャーナルの create イベントにはこの構造体を JSON にしたものを保存する。
type CreateBoardInput struct {
	// Fill は空セルを表す要素。空文字列も許可する。
	Fill string `json:"fill"`
	// Bounds は空の盤面を作る場合の初期範囲。
	Bounds *Bounds `json:"bounds,omitempty"`
	// Grid は初期配置。Bounds より優先される。
	Grid [][]string `json:"grid,omitempty"`
}

// PlaceInput は配置要求を表す。
type PlaceInput struct {
	Row     int
	Col     int
	Element string
}

// Cell は盤面上の 1 配置を外部へ返すための値。
type Cell struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Element string `json:"element"`
}

// BoardView は盤面の状態をユースケース層の外へ渡すためのスナップショット。
type BoardView struct {
	ID     string `json:"boardId"`
	MinRow int    `json:"minRow"`
	MaxRow int    `json:"maxRow"`
	MinCol int    `json:"minCol"`
	MaxCol int    `json:"maxCol"`
	Fill   string `json:"fill"`
	// Rows は MinRow から MaxRow までの各行を MinCol から順に並べたもの。
	Rows      [][]string `json:"rows"`
	Longest   []Cell     `json:"longest"`
	UndoDepth int        `json:"undoDepth"`
	RedoDepth int        `json:"redoDepth"`
}

// PlaceOutput は配置結果を表す。Applied が false の場合は fill と同じ要素だったため何も起きていない。
type PlaceOutput struct {
	Board   BoardView
	Applied bool
}

// ExpandOutput は拡張結果を表す。
type ExpandOutput struct {
	Board   BoardView
	Created int
}

// EventKind はジャーナルに記録する操作の種別。
type EventKind string

const (
	EventCreate EventKind = "create"
	EventSet    EventKind = "set"
	EventUndo   EventKind = "undo"
	EventRedo   EventKind = "redo"
	EventExpand EventKind = "expand"
	EventFill   EventKind = "fill"
)

// BoardEvent はジャーナルの 1 レコード。
type BoardEvent struct {
	ID      string
	BoardID string
	// Seq は盤面ごとに 1 から始まる通し番号。
	Seq  int
	Kind EventKind
	// Row, Col, Element は set/undo/redo では対象の配置、expand では対象座標、fill では新しい fill を表す。
	Row     int
	Col     int
	Element string
	// Payload は create イベントの CreateBoardInput (JSON)。
	Payload   string
	CreatedAt time.Time
}

func newBoardView(id string, b *domain.Board[string]) BoardView {
	view := BoardView{
		ID:        id,
		MinRow:    b.MinRow(),
		MaxRow:    b.MaxRow(),
		MinCol:    b.MinCol(),
		MaxCol:    b.MaxCol(),
		Fill:      b.Fill(),
		UndoDepth: b.UndoDepth(),
		RedoDepth: b.RedoDepth(),
	}

	view.Rows = make([][]string, 0, b.PhysicalRows())
	for r := b.MinRow(); r <= b.MaxRow(); r++ {
		row := make([]string, 0, b.PhysicalCols())
		for c := b.MinCol(); c <= b.MaxCol(); c++ {
			row = append(row, b.Get(r, c))
		}
		view.Rows = append(view.Rows, row)
	}

	view.Longest = toCells(b.LongestSequence())
	return view
}

func toCells(placements []domain.Placement[string]) []Cell {
	cells := make([]Cell, len(placements))
	for i, p := range placements {
		cells[i] = Cell{Row: p.Row(), Col: p.Col(), Element: p.Elem()}
	}
	return cells
}

package httpapi

import (
	"time"

	"github.com/2509-hackz-ichthyo/main/gridboard/internal/usecases"
)

// createBoardRequest は POST /v1/boards のリクエストボディ。
// grid があれば grid を、無ければ bounds を、どちらも無ければ (0,0) の 1 セル盤面を作る。
type createBoardRequest struct {
	Fill   *string        `json:"fill" binding:"required"`
	Bounds *boundsRequest `json:"bounds"`
	Grid   [][]string     `json:"grid"`
}

// boundsRequest は盤面の初期範囲。4 つとも指定する。
type boundsRequest struct {
	MinRow *int `json:"min_row" binding:"required"`
	MaxRow *int `json:"max_row" binding:"required"`
	MinCol *int `json:"min_col" binding:"required"`
	MaxCol *int `json:"max_col" binding:"required"`
}

// placeRequest は POST /v1/boards/:id/placements のリクエストボディ。
type placeRequest struct {
	Row     *int   `json:"row" binding:"required"`
	Col     *int   `json:"col" binding:"required"`
	Element string `json:"element" binding:"required"`
}

type coordinateRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

type fillRequest struct {
	Fill *string `json:"fill" binding:"required"`
}

// boardResponse は盤面のスナップショット。rows[0][0] が (min_row, min_col) に対応する。
type boardResponse struct {
	ID        string         `json:"id"`
	MinRow    int            `json:"min_row"`
	MaxRow    int            `json:"max_row"`
	MinCol    int            `json:"min_col"`
	MaxCol    int            `json:"max_col"`
	Fill      string         `json:"fill"`
	Rows      [][]string     `json:"rows"`
	Longest   []cellResponse `json:"longest"`
	UndoDepth int            `json:"undo_depth"`
	RedoDepth int            `json:"redo_depth"`
}

type cellResponse struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Element string `json:"element"`
}

type placeResponse struct {
	Applied bool          `json:"applied"`
	Board   boardResponse `json:"board"`
}

type expandResponse struct {
	Created int           `json:"created"`
	Board   boardResponse `json:"board"`
}

// eventResponse はジャーナルの 1 レコード。
type eventResponse struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"board_id"`
	Seq       int       `json:"seq"`
	Kind      string    `json:"kind"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Element   string    `json:"element,omitempty"`
	Payload   string    `json:"payload,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func newBoardResponse(view usecases.BoardView) boardResponse {
	return boardResponse{
		ID:        view.ID,
		MinRow:    view.MinRow,
		MaxRow:    view.MaxRow,
		MinCol:    view.MinCol,
		MaxCol:    view.MaxCol,
		Fill:      view.Fill,
		Rows:      view.Rows,
		Longest:   newCellResponses(view.Longest),
		UndoDepth: view.UndoDepth,
		RedoDepth: view.RedoDepth,
	}
}

func newCellResponses(cells []usecases.Cell) []cellResponse {
	response := make([]cellResponse, len(cells))
	for i, cell := range cells {
		response[i] = cellResponse{Row: cell.Row, Col: cell.Col, Element: cell.Element}
	}
	return response
}

func newEventResponse(event usecases.BoardEvent) eventResponse {
	return eventResponse{
		ID:        event.ID,
		BoardID:   event.BoardID,
		Seq:       event.Seq,
		Kind:      string(event.Kind),
		Row:       event.Row,
		Col:       event.Col,
		Element:   event.Element,
		Payload:   event.Payload,
		CreatedAt: event.CreatedAt,
	}
}

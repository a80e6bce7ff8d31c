package usecases

import (
	"encoding/json"
	"fmt"

	"github.com/2509-hackz-ichthyo/main/gridboard/internal/domain"
)

// buildBoard は CreateBoardInput から盤面を生成する。Grid → Bounds → 1 セルの順に判定する。
func buildBoard(input CreateBoardInput) (*domain.Board[string], error) {
	var (
		board *domain.Board[string]
		err   error
	)

	for r, row := range input.Grid {
		for c, v := range row {
			if v == "" && v != input.Fill {
				return nil, fmt.Errorf("%w: grid cell %d %d must not be blank", ErrValidationFailed, r, c)
			}
		}
	}

	switch {
	case len(input.Grid) > 0:
		board, err = domain.FromGrid(input.Grid, input.Fill)
	case input.Bounds != nil:
		bd := input.Bounds
		board, err = domain.New(bd.MinRow, bd.MaxRow, bd.MinCol, bd.MaxCol, input.Fill)
	default:
		board, err = domain.NewSingleCell(input.Fill)
	}
	if err != nil {
		return nil, fmt.Errorf("build board: %w", err)
	}
	return board, nil
}

// Replay はイベント列を先頭から順に新しい盤面へ適用する。先頭は create でなければならない。
func Replay(events []BoardEvent) (*domain.Board[string], error) {
	if len(events) == 0 || events[0].Kind != EventCreate {
		return nil, fmt.Errorf("%w: journal must start with a create event", ErrCorruptJournal)
	}

	var input CreateBoardInput
	if err := json.Unmarshal([]byte(events[0].Payload), &input); err != nil {
		return nil, fmt.Errorf("%w: decode create payload: %v", ErrCorruptJournal, err)
	}

	board, err := buildBoard(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptJournal, err)
	}

	for i, event := range events[1:] {
		if err := applyEvent(board, event); err != nil {
			return nil, fmt.Errorf("%w: event %d (seq %d, %s): %v", ErrCorruptJournal, i+1, event.Seq, event.Kind, err)
		}
	}

	return board, nil
}

func applyEvent(board *domain.Board[string], event BoardEvent) error {
	switch event.Kind {
	case EventSet:
		return board.Set(event.Row, event.Col, event.Element)
	case EventUndo:
		return board.Undo()
	case EventRedo:
		return board.Redo()
	case EventExpand:
		board.ExpandToInclude(event.Row, event.Col)
		return nil
	case EventFill:
		return board.SetFill(event.Element)
	case EventCreate:
		return fmt.Errorf("unexpected create event")
	default:
		return fmt.Errorf("unknown event kind %q", event.Kind)
	}
}

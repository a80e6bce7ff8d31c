package usecases

import (
	"context"
	"errors"
	"testing"
)

func TestReplayMatchesLiveBoard(t *testing.T) {
	t.Parallel()

	repo := newMemoryRepository()
	service := newTestService(repo)
	ctx := context.Background()

	board := mustCreate(t, service, CreateBoardInput{Fill: ".", Grid: [][]string{{"O", "."}}})
	mustPlace(t, service, board.ID, 0, 1, "X")
	mustPlace(t, service, board.ID, 1, 2, "X")
	mustPlace(t, service, board.ID, 2, 3, "X")
	if _, err := service.Undo(ctx, board.ID); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if _, err := service.Expand(ctx, board.ID, -2, -1); err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if _, err := service.Redo(ctx, board.ID); err != nil {
		t.Fatalf("Redo() error = %v", err)
	}
	if _, err := service.ChangeFill(ctx, board.ID, "_"); err != nil {
		t.Fatalf("ChangeFill() error = %v", err)
	}

	live, err := service.GetBoard(ctx, board.ID)
	if err != nil {
		t.Fatalf("GetBoard() error = %v", err)
	}
	replayed, err := service.ReplayBoard(ctx, board.ID)
	if err != nil {
		t.Fatalf("ReplayBoard() error = %v", err)
	}

	if replayed.MinRow != live.MinRow || replayed.MaxRow != live.MaxRow ||
		replayed.MinCol != live.MinCol || replayed.MaxCol != live.MaxCol {
		t.Fatalf("extent mismatch: live %+v, replayed %+v", live, replayed)
	}
	if replayed.Fill != live.Fill || replayed.UndoDepth != live.UndoDepth || replayed.RedoDepth != live.RedoDepth {
		t.Fatalf("state mismatch: live %+v, replayed %+v", live, replayed)
	}
	for r := range live.Rows {
		for c := range live.Rows[r] {
			if live.Rows[r][c] != replayed.Rows[r][c] {
				t.Fatalf("cell mismatch at %d,%d: %q vs %q", r, c, live.Rows[r][c], replayed.Rows[r][c])
			}
		}
	}
	assertCells(t, replayed.Longest, live.Longest)
	if len(replayed.Longest) != 3 {
		t.Fatalf("unexpected longest: %v", replayed.Longest)
	}
}

func TestReplayKeepsGridOutOfHistory(t *testing.T) {
	t.Parallel()

	payload := `{"fill":".","grid":[["X","X"]]}`
	board, err := Replay([]BoardEvent{
		{Seq: 1, Kind: EventCreate, Payload: payload},
		{Seq: 2, Kind: EventSet, Row: 1, Col: 0, Element: "O"},
		{Seq: 3, Kind: EventUndo, Row: 1, Col: 0, Element: "O"},
	})
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}

	if board.UndoDepth() != 0 || board.RedoDepth() != 1 {
		t.Fatalf("unexpected depths: undo=%d redo=%d", board.UndoDepth(), board.RedoDepth())
	}
	if got := len(board.LongestSequence()); got != 2 {
		t.Fatalf("grid run must remain after undo, got %d", got)
	}
	if err := board.Undo(); err == nil {
		t.Fatalf("grid placements must not be undoable")
	}
}

func TestReplayRejectsCorruptJournal(t *testing.T) {
	t.Parallel()

	create := BoardEvent{Seq: 1, Kind: EventCreate, Payload: `{"fill":"."}`}

	cases := []struct {
		name   string
		events []BoardEvent
	}{
		{name: "Empty"},
		{name: "MissingCreate", events: []BoardEvent{{Seq: 1, Kind: EventSet, Element: "X"}}},
		{name: "BadPayload", events: []BoardEvent{{Seq: 1, Kind: EventCreate, Payload: "{"}}},
		{name: "InvalidBounds", events: []BoardEvent{{Seq: 1, Kind: EventCreate, Payload: `{"fill":".","bounds":{"minRow":1,"maxRow":0}}`}}},
		{name: "DoubleCreate", events: []BoardEvent{create, create}},
		{name: "UndoWithoutSet", events: []BoardEvent{create, {Seq: 2, Kind: EventUndo}}},
		{name: "SetTwice", events: []BoardEvent{
			create,
			{Seq: 2, Kind: EventSet, Element: "X"},
			{Seq: 3, Kind: EventSet, Element: "O"},
		}},
		{name: "UnknownKind", events: []BoardEvent{create, {Seq: 2, Kind: "rotate"}}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Replay(tc.events); !errors.Is(err, ErrCorruptJournal) {
				t.Fatalf("expected ErrCorruptJournal, got %v", err)
			}
		})
	}
}

func TestReplayFromRepositoryNotFound(t *testing.T) {
	t.Parallel()

	_, err := ReplayFromRepository(context.Background(), newMemoryRepository(), "missing")
	if !errors.Is(err, ErrBoardNotFound) {
		t.Fatalf("expected ErrBoardNotFound, got %v", err)
	}

	_, err = ReplayFromRepository(context.Background(), newMemoryRepository(), "")
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

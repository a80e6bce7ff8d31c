package domain

import (
	"errors"
	"testing"
)

type boardState struct {
	cells   map[[2]int]string
	longest []Placement[string]
}

func captureState(b *Board[string]) boardState {
	state := boardState{cells: make(map[[2]int]string), longest: b.LongestSequence()}
	for r := b.MinRow(); r <= b.MaxRow(); r++ {
		for c := b.MinCol(); c <= b.MaxCol(); c++ {
			state.cells[[2]int{r, c}] = b.Get(r, c)
		}
	}
	return state
}

func assertSameState(t *testing.T, got, want boardState) {
	t.Helper()

	if len(got.cells) != len(want.cells) {
		t.Fatalf("unexpected extent: got %d cells, want %d", len(got.cells), len(want.cells))
	}
	for pos, v := range want.cells {
		if got.cells[pos] != v {
			t.Fatalf("cell %v = %q, want %q", pos, got.cells[pos], v)
		}
	}
	assertPlacements(t, got.longest, want.longest)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	t.Parallel()

	b := mustBoard(t, 0, 0, 0, 0, ".")
	moves := []struct {
		row, col int
		elem     string
	}{
		{0, 0, "X"}, {1, 1, "O"}, {0, 1, "X"}, {-1, 2, "O"}, {0, 2, "X"}, {2, -3, "O"}, {0, -1, "X"},
	}
	for _, m := range moves {
		mustSet(t, b, m.row, m.col, m.elem)
	}

	want := captureState(b)

	for range moves {
		if err := b.Undo(); err != nil {
			t.Fatalf("Undo() error = %v", err)
		}
	}

	for r := b.MinRow(); r <= b.MaxRow(); r++ {
		for c := b.MinCol(); c <= b.MaxCol(); c++ {
			if got := b.Get(r, c); got != "." {
				t.Fatalf("Get(%d, %d) = %q after undoing everything", r, c, got)
			}
		}
	}
	if got := b.LongestSequence(); len(got) != 0 {
		t.Fatalf("expected empty longest sequence, got %v", got)
	}

	for range moves {
		if err := b.Redo(); err != nil {
			t.Fatalf("Redo() error = %v", err)
		}
	}

	assertSameState(t, captureState(b), want)
	if b.UndoDepth() != len(moves) || b.RedoDepth() != 0 {
		t.Fatalf("unexpected depths: undo=%d redo=%d", b.UndoDepth(), b.RedoDepth())
	}
}

func TestUndoRestoresPreviousLongest(t *testing.T) {
	t.Parallel()

	b := mustBoard(t, 0, 0, 0, 0, ".")
	mustSet(t, b, 0, 0, "X")
	mustSet(t, b, 1, 0, "X")
	mustSet(t, b, 2, 0, "X")

	if err := b.Undo(); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}

	assertPlacements(t, b.LongestSequence(), []Placement[string]{
		NewPlacement(0, 0, "X"), NewPlacement(1, 0, "X"),
	})
	if got := b.Get(2, 0); got != "." {
		t.Fatalf("undone cell = %q, want fill", got)
	}
	if b.MaxRow() != 2 {
		t.Fatalf("undo must not shrink the extent, maxRow = %d", b.MaxRow())
	}

	if err := b.Redo(); err != nil {
		t.Fatalf("Redo() error = %v", err)
	}
	assertPlacements(t, b.LongestSequence(), []Placement[string]{
		NewPlacement(0, 0, "X"), NewPlacement(1, 0, "X"), NewPlacement(2, 0, "X"),
	})
}

func TestEmptyHistory(t *testing.T) {
	t.Parallel()

	b := mustBoard(t, 0, 0, 0, 0, ".")

	undoErr := b.Undo()
	if !errors.Is(undoErr, ErrUndoHistoryEmpty) || !errors.Is(undoErr, ErrEmptyHistory) {
		t.Fatalf("expected ErrUndoHistoryEmpty, got %v", undoErr)
	}

	redoErr := b.Redo()
	if !errors.Is(redoErr, ErrRedoHistoryEmpty) || !errors.Is(redoErr, ErrEmptyHistory) {
		t.Fatalf("expected ErrRedoHistoryEmpty, got %v", redoErr)
	}

	if undoErr.Error() == redoErr.Error() {
		t.Fatalf("undo and redo errors must be distinguishable: %q", undoErr.Error())
	}
	if undoErr.Error() != "undo history is empty" || redoErr.Error() != "redo history is empty" {
		t.Fatalf("unexpected messages: %q / %q", undoErr.Error(), redoErr.Error())
	}
}

func TestRedoWithoutUndo(t *testing.T) {
	t.Parallel()

	b := mustBoard(t, 0, 0, 0, 0, ".")
	mustSet(t, b, 0, 0, "X")

	if err := b.Redo(); !errors.Is(err, ErrRedoHistoryEmpty) {
		t.Fatalf("expected ErrRedoHistoryEmpty, got %v", err)
	}
}

func TestHistoryDepths(t *testing.T) {
	t.Parallel()

	b := mustBoard(t, 0, 0, 0, 0, ".")
	mustSet(t, b, 0, 0, "X")
	mustSet(t, b, 0, 1, "O")
	mustSet(t, b, 0, 2, "X")

	steps := []struct {
		op         func() error
		undo, redo int
	}{
		{op: b.Undo, undo: 2, redo: 1},
		{op: b.Undo, undo: 1, redo: 2},
		{op: b.Redo, undo: 2, redo: 1},
		{op: b.Undo, undo: 1, redo: 2},
		{op: b.Undo, undo: 0, redo: 3},
	}

	for i, step := range steps {
		if err := step.op(); err != nil {
			t.Fatalf("step %d error = %v", i, err)
		}
		if b.UndoDepth() != step.undo || b.RedoDepth() != step.redo {
			t.Fatalf("step %d: depths undo=%d redo=%d, want %d/%d", i, b.UndoDepth(), b.RedoDepth(), step.undo, step.redo)
		}
	}
}

func TestPeekHistory(t *testing.T) {
	t.Parallel()

	b := mustBoard(t, 0, 0, 0, 0, ".")
	if _, ok := b.PeekUndo(); ok {
		t.Fatalf("PeekUndo() on empty history must report false")
	}

	mustSet(t, b, 3, 4, "X")
	p, ok := b.PeekUndo()
	if !ok || p != NewPlacement(3, 4, "X") {
		t.Fatalf("PeekUndo() = %v, %v", p, ok)
	}

	if err := b.Undo(); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if _, ok := b.PeekUndo(); ok {
		t.Fatalf("PeekUndo() after undo must report false")
	}
	p, ok = b.PeekRedo()
	if !ok || p != NewPlacement(3, 4, "X") {
		t.Fatalf("PeekRedo() = %v, %v", p, ok)
	}
}

package domain

// Undo は直近の Set を取り消す。盤面の範囲は縮めない。
func (b *Board[T]) Undo() error {
	entry, ok := b.undo.Pop()
	if !ok {
		return ErrUndoHistoryEmpty
	}
	p := entry.placement
	b.write(p.row, p.col, slot[T]{})
	b.redo.Push(entry)
	return nil
}

// Redo は Undo で取り消した配置をやり直す。Set が行われた後は Redo できない。
func (b *Board[T]) Redo() error {
	entry, ok := b.redo.Pop()
	if !ok {
		return ErrRedoHistoryEmpty
	}
	p := entry.placement
	b.write(p.row, p.col, slot[T]{elem: p.elem, set: true})
	b.undo.Push(entry)
	return nil
}

// UndoDepth は取り消せる配置の数を返す。
func (b *Board[T]) UndoDepth() int {
	return b.undo.Len()
}

// RedoDepth はやり直せる配置の数を返す。
func (b *Board[T]) RedoDepth() int {
	return b.redo.Len()
}

// PeekUndo は次の Undo で取り消される配置を返す。
func (b *Board[T]) PeekUndo() (Placement[T], bool) {
	if b.undo.IsEmpty() {
		return Placement[T]{}, false
	}
	return b.undo.Top().placement, true
}

// PeekRedo は次の Redo でやり直される配置を返す。
func (b *Board[T]) PeekRedo() (Placement[T], bool) {
	if b.redo.IsEmpty() {
		return Placement[T]{}, false
	}
	return b.redo.Top().placement, true
}

package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNullElement   = errors.New("cannot set elements to null")
	ErrAlreadySet    = errors.New("element already set")
	ErrInvalidExtent = errors.New("invalid board extent")
	ErrEmptyHistory  = errors.New("history is empty")

	// ErrUndoHistoryEmpty と ErrRedoHistoryEmpty はどちらも errors.Is(err, ErrEmptyHistory) を満たす。
	ErrUndoHistoryEmpty = fmt.Errorf("undo %w", ErrEmptyHistory)
	ErrRedoHistoryEmpty = fmt.Errorf("redo %w", ErrEmptyHistory)
)

// 既に値を持つセルへ Set した場合に使用するカスタムエラー型
type AlreadySetError struct {
	Row   int
	Col   int
	Value any
}

// エラーメッセージのフォーマットを定義
func (e *AlreadySetError) Error() string {
	return fmt.Sprintf("element %d %d already set to %v", e.Row, e.Col, e.Value)
}

// errors.Is(err, ErrAlreadySet) を可能に
func (e *AlreadySetError) Unwrap() error { return ErrAlreadySet }

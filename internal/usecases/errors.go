package usecases

import "errors"

var (
	// ErrValidationFailed は入力値の検証に失敗した場合に返す。
	ErrValidationFailed = errors.New("usecases: validation failed")
	// ErrBoardNotFound は指定された盤面が存在しない場合に返す。
	ErrBoardNotFound = errors.New("usecases: board not found")
	// ErrCorruptJournal はジャーナルから盤面を再構築できない場合に返す。
	ErrCorruptJournal = errors.New("usecases: corrupt journal")
)

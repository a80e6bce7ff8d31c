package usecases

import "context"

// EventRepository は盤面操作のジャーナルを追記・取得するインタフェースである。
type EventRepository interface {
	// Append は新しいイベントを追記する。
	Append(ctx context.Context, event BoardEvent) error
	// ListByBoard は盤面のイベントを Seq の昇順で返す。limit が 0 以下の場合は全件を返す。
	ListByBoard(ctx context.Context, boardID string, limit int) ([]BoardEvent, error)
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/2509-hackz-ichthyo/main/gridboard/internal/usecases"
)

// SQLiteEventRepository は SQLite をバックエンドとする EventRepository の実装。
type SQLiteEventRepository struct {
	db *sql.DB
}

// NewSQLiteEventRepository は SQLiteEventRepository を生成する。
func NewSQLiteEventRepository(db *sql.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db}
}

// Append はイベントを 1 件挿入する。同じ (board_id, seq) が既にある場合はエラーになる。
func (r *SQLiteEventRepository) Append(ctx context.Context, event usecases.BoardEvent) error {
	if r.db == nil {
		return errors.New("sqlite event repository: db is nil")
	}

	const query = `
INSERT INTO board_events (
    id, board_id, seq, kind, row_index, col_index, element, payload, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

	payload := sql.NullString{}
	if event.Payload != "" {
		payload = sql.NullString{String: event.Payload, Valid: true}
	}

	if _, err := r.db.ExecContext(
		ctx,
		query,
		event.ID,
		event.BoardID,
		event.Seq,
		string(event.Kind),
		event.Row,
		event.Col,
		event.Element,
		payload,
		event.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert board event: %w", err)
	}

	return nil
}

// ListByBoard は盤面のイベントを seq の昇順で取得する。limit が 0 以下なら全件。
func (r *SQLiteEventRepository) ListByBoard(ctx context.Context, boardID string, limit int) ([]usecases.BoardEvent, error) {
	if r.db == nil {
		return nil, errors.New("sqlite event repository: db is nil")
	}

	const query = `
SELECT id, board_id, seq, kind, row_index, col_index, element, payload, created_at
FROM board_events
WHERE board_id = ?
ORDER BY seq ASC
LIMIT ?
`

	// SQLite では LIMIT -1 が無制限を表す。
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.QueryContext(ctx, query, boardID, limit)
	if err != nil {
		return nil, fmt.Errorf("query board events: %w", err)
	}
	defer rows.Close()

	events := make([]usecases.BoardEvent, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate board events: %w", err)
	}

	return events, nil
}

func scanEvent(scanner interface {
	Scan(dest ...any) error
}) (usecases.BoardEvent, error) {
	var (
		event   usecases.BoardEvent
		kind    string
		payload sql.NullString
	)

	if err := scanner.Scan(
		&event.ID,
		&event.BoardID,
		&event.Seq,
		&kind,
		&event.Row,
		&event.Col,
		&event.Element,
		&payload,
		&event.CreatedAt,
	); err != nil {
		return usecases.BoardEvent{}, fmt.Errorf("scan board event: %w", err)
	}

	event.Kind = usecases.EventKind(kind)
	if payload.Valid {
		event.Payload = payload.String
	}
	event.CreatedAt = event.CreatedAt.UTC()

	return event, nil
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/2509-hackz-ichthyo/main/gridboard/internal/infrastructure/database"
	"github.com/2509-hackz-ichthyo/main/gridboard/internal/usecases"
)

func newSQLiteRepository(t *testing.T) *SQLiteEventRepository {
	t.Helper()

	// :memory: は接続ごとに別 DB になるため、接続を 1 本に固定する。
	db, err := database.OpenSQLite(database.SQLiteConfig{Path: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	return NewSQLiteEventRepository(db)
}

func TestEventRepositories(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		repo func(t *testing.T) usecases.EventRepository
	}{
		{name: "SQLite", repo: func(t *testing.T) usecases.EventRepository { return newSQLiteRepository(t) }},
		{name: "Memory", repo: func(*testing.T) usecases.EventRepository { return NewMemoryEventRepository() }},
		{name: "DynamoDB", repo: func(*testing.T) usecases.EventRepository {
			return NewDynamoDBEventRepository(newStubDynamoDB(2), "board-events")
		}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			exerciseRepository(t, tc.repo(t))
		})
	}
}

func exerciseRepository(t *testing.T, repo usecases.EventRepository) {
	t.Helper()

	ctx := context.Background()
	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	events := []usecases.BoardEvent{
		{ID: "e3", BoardID: "board-1", Seq: 3, Kind: usecases.EventUndo, Row: -1, Col: 2, Element: "X", CreatedAt: createdAt},
		{ID: "e1", BoardID: "board-1", Seq: 1, Kind: usecases.EventCreate, Payload: `{"fill":"."}`, CreatedAt: createdAt},
		{ID: "o1", BoardID: "board-2", Seq: 1, Kind: usecases.EventCreate, Payload: `{"fill":"_"}`, CreatedAt: createdAt},
		{ID: "e2", BoardID: "board-1", Seq: 2, Kind: usecases.EventSet, Row: -1, Col: 2, Element: "X", CreatedAt: createdAt},
	}
	for _, event := range events {
		if err := repo.Append(ctx, event); err != nil {
			t.Fatalf("Append(%s) error = %v", event.ID, err)
		}
	}

	duplicate := usecases.BoardEvent{ID: "dup", BoardID: "board-1", Seq: 2, Kind: usecases.EventSet, Element: "O", CreatedAt: createdAt}
	if err := repo.Append(ctx, duplicate); err == nil {
		t.Fatalf("expected duplicate seq to be rejected")
	}

	all, err := repo.ListByBoard(ctx, "board-1", 0)
	if err != nil {
		t.Fatalf("ListByBoard() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	for i, event := range all {
		if event.Seq != i+1 {
			t.Fatalf("events must be ordered by seq, got %d at %d", event.Seq, i)
		}
	}

	set := all[1]
	if set.ID != "e2" || set.Kind != usecases.EventSet || set.Row != -1 || set.Col != 2 || set.Element != "X" {
		t.Fatalf("unexpected set event: %+v", set)
	}
	if !set.CreatedAt.Equal(createdAt) {
		t.Fatalf("unexpected createdAt: %v", set.CreatedAt)
	}
	if all[0].Payload != `{"fill":"."}` {
		t.Fatalf("unexpected payload: %q", all[0].Payload)
	}

	limited, err := repo.ListByBoard(ctx, "board-1", 2)
	if err != nil {
		t.Fatalf("ListByBoard() error = %v", err)
	}
	if len(limited) != 2 || limited[1].Seq != 2 {
		t.Fatalf("unexpected limited events: %+v", limited)
	}

	missing, err := repo.ListByBoard(ctx, "missing", 0)
	if err != nil {
		t.Fatalf("ListByBoard() error = %v", err)
	}
	if len(missing) != 0 {
		t.Fatalf("expected no events, got %d", len(missing))
	}
}

func TestSQLiteRepositoryWithoutDB(t *testing.T) {
	t.Parallel()

	repo := NewSQLiteEventRepository(nil)
	if err := repo.Append(context.Background(), usecases.BoardEvent{}); err == nil {
		t.Fatalf("expected error for nil db")
	}
	if _, err := repo.ListByBoard(context.Background(), "board-1", 0); err == nil {
		t.Fatalf("expected error for nil db")
	}
}

package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/2509-hackz-ichthyo/main/gridboard/internal/usecases"
)

// MemoryEventRepository はプロセス内だけでイベントを保持する EventRepository の実装。
// 永続化が不要なローカル実行やテストで使う。
type MemoryEventRepository struct {
	mu     sync.RWMutex
	events map[string][]usecases.BoardEvent
}

// NewMemoryEventRepository は空の MemoryEventRepository を生成する。
func NewMemoryEventRepository() *MemoryEventRepository {
	return &MemoryEventRepository{events: make(map[string][]usecases.BoardEvent)}
}

// Append はイベントを追加する。同じ盤面で seq が重複する場合はエラーを返す。
func (r *MemoryEventRepository) Append(_ context.Context, event usecases.BoardEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.events[event.BoardID] {
		if existing.Seq == event.Seq {
			return fmt.Errorf("memory event repository: duplicate seq %d for board %s", event.Seq, event.BoardID)
		}
	}
	r.events[event.BoardID] = append(r.events[event.BoardID], event)
	return nil
}

// ListByBoard は盤面のイベントを seq の昇順で返す。
func (r *MemoryEventRepository) ListByBoard(_ context.Context, boardID string, limit int) ([]usecases.BoardEvent, error) {
	r.mu.RLock()
	events := append([]usecases.BoardEvent(nil), r.events[boardID]...)
	r.mu.RUnlock()

	sort.Slice(events, func(i, j int) bool {
		return events[i].Seq < events[j].Seq
	})

	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	if events == nil {
		events = []usecases.BoardEvent{}
	}
	return events, nil
}

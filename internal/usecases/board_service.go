package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/2509-hackz-ichthyo/main/gridboard/internal/domain"
	"github.com/google/uuid"
)

// BoardService はメモリ上の盤面を ID で管理し、受理した操作を EventRepository へ記録する。
// 盤面そのものは単一所有者向けなので、盤面ごとのロックで操作を直列化する。
type BoardService struct {
	repo       EventRepository
	ids        IDGenerator
	clock      Clock
	defaultLim int

	mu       sync.RWMutex
	sessions map[string]*session
}

type session struct {
	mu    sync.Mutex
	board *domain.Board[string]
	seq   int
}

// BoardServiceOption は BoardService のオプション設定を表す。
type BoardServiceOption func(*BoardService)

// WithIDGenerator は識別子生成器を差し替えるオプション。
func WithIDGenerator(generator IDGenerator) BoardServiceOption {
	return func(service *BoardService) {
		if generator != nil {
			service.ids = generator
		}
	}
}

// WithClock は時刻取得を差し替えるオプション。
func WithClock(clock Clock) BoardServiceOption {
	return func(service *BoardService) {
		if clock != nil {
			service.clock = clock
		}
	}
}

// WithDefaultLimit はイベント取得時のデフォルト件数を設定するオプション。
func WithDefaultLimit(limit int) BoardServiceOption {
	return func(service *BoardService) {
		if limit > 0 {
			service.defaultLim = limit
		}
	}
}

// NewBoardService はユースケース実装を生成する。
func NewBoardService(repo EventRepository, opts ...BoardServiceOption) *BoardService {
	service := &BoardService{
		repo:       repo,
		ids:        defaultIDGenerator{},
		clock:      systemClock{},
		defaultLim: 50,
		sessions:   make(map[string]*session),
	}

	for _, opt := range opts {
		opt(service)
	}

	return service
}

// CreateBoard は入力に応じた盤面を生成し、create イベントを記録してから登録する。
func (s *BoardService) CreateBoard(ctx context.Context, input CreateBoardInput) (BoardView, error) {
	board, err := buildBoard(input)
	if err != nil {
		return BoardView{}, err
	}

	payload, err := json.Marshal(input)
	if err != nil {
		return BoardView{}, fmt.Errorf("encode create payload: %w", err)
	}

	id := s.ids.NewID()
	sess := &session{board: board}
	if err := s.record(ctx, id, sess, BoardEvent{Kind: EventCreate, Payload: string(payload)}); err != nil {
		return BoardView{}, err
	}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	return newBoardView(id, board), nil
}

// GetBoard は盤面の現在の状態を返す。
func (s *BoardService) GetBoard(ctx context.Context, id string) (BoardView, error) {
	var view BoardView
	err := s.withSession(id, func(sess *session) error {
		view = newBoardView(id, sess.board)
		return nil
	})
	return view, err
}

// ListBoards は登録されている盤面の ID を昇順で返す。
func (s *BoardService) ListBoards(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// DeleteBoard は盤面を登録から外す。ジャーナルは残る。
func (s *BoardService) DeleteBoard(_ context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrBoardNotFound, id)
	}
	delete(s.sessions, id)
	return nil
}

// Place は要素を配置する。fill と同じ要素の場合は何も記録せず Applied=false を返す。
// どの操作もイベントの追記に成功してから盤面へ反映するため、追記に失敗した盤面は変わらない。
func (s *BoardService) Place(ctx context.Context, id string, input PlaceInput) (PlaceOutput, error) {
	if input.Element == "" {
		return PlaceOutput{}, fmt.Errorf("%w: element must not be blank", ErrValidationFailed)
	}

	var output PlaceOutput
	err := s.withSession(id, func(sess *session) error {
		board := sess.board
		if cur := board.Get(input.Row, input.Col); cur != board.Fill() {
			return fmt.Errorf("set element: %w", &domain.AlreadySetError{Row: input.Row, Col: input.Col, Value: cur})
		}

		output.Applied = input.Element != board.Fill()
		if output.Applied {
			event := BoardEvent{Kind: EventSet, Row: input.Row, Col: input.Col, Element: input.Element}
			if err := s.record(ctx, id, sess, event); err != nil {
				return err
			}
			if err := board.Set(input.Row, input.Col, input.Element); err != nil {
				return fmt.Errorf("set element: %w", err)
			}
		}

		output.Board = newBoardView(id, board)
		return nil
	})
	return output, err
}

// Undo は直近の配置を取り消す。
func (s *BoardService) Undo(ctx context.Context, id string) (BoardView, error) {
	return s.step(ctx, id, EventUndo)
}

// Redo は取り消した配置をやり直す。
func (s *BoardService) Redo(ctx context.Context, id string) (BoardView, error) {
	return s.step(ctx, id, EventRedo)
}

func (s *BoardService) step(ctx context.Context, id string, kind EventKind) (BoardView, error) {
	var view BoardView
	err := s.withSession(id, func(sess *session) error {
		peek, apply, empty := sess.board.PeekUndo, sess.board.Undo, domain.ErrUndoHistoryEmpty
		if kind == EventRedo {
			peek, apply, empty = sess.board.PeekRedo, sess.board.Redo, domain.ErrRedoHistoryEmpty
		}

		target, ok := peek()
		if !ok {
			return fmt.Errorf("%s: %w", kind, empty)
		}

		event := BoardEvent{Kind: kind, Row: target.Row(), Col: target.Col(), Element: target.Elem()}
		if err := s.record(ctx, id, sess, event); err != nil {
			return err
		}
		if err := apply(); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}

		view = newBoardView(id, sess.board)
		return nil
	})
	return view, err
}

// Expand は (row, col) を含むよう盤面を拡張する。
func (s *BoardService) Expand(ctx context.Context, id string, row, col int) (ExpandOutput, error) {
	var output ExpandOutput
	err := s.withSession(id, func(sess *session) error {
		if sess.board.ExpansionSize(row, col) > 0 {
			if err := s.record(ctx, id, sess, BoardEvent{Kind: EventExpand, Row: row, Col: col}); err != nil {
				return err
			}
			output.Created = sess.board.ExpandToInclude(row, col)
		}
		output.Board = newBoardView(id, sess.board)
		return nil
	})
	return output, err
}

// ChangeFill は fill 要素を差し替える。
func (s *BoardService) ChangeFill(ctx context.Context, id string, fill string) (BoardView, error) {
	var view BoardView
	err := s.withSession(id, func(sess *session) error {
		if err := s.record(ctx, id, sess, BoardEvent{Kind: EventFill, Element: fill}); err != nil {
			return err
		}
		if err := sess.board.SetFill(fill); err != nil {
			return fmt.Errorf("set fill: %w", err)
		}
		view = newBoardView(id, sess.board)
		return nil
	})
	return view, err
}

// LongestSequence は盤面の最長列を返す。
func (s *BoardService) LongestSequence(_ context.Context, id string) ([]Cell, error) {
	var cells []Cell
	err := s.withSession(id, func(sess *session) error {
		cells = toCells(sess.board.LongestSequence())
		return nil
	})
	return cells, err
}

// Render は盤面を罫線付きの表として返す。
func (s *BoardService) Render(_ context.Context, id string) (string, error) {
	var text string
	err := s.withSession(id, func(sess *session) error {
		text = sess.board.String()
		return nil
	})
	return text, err
}

// ListEvents は盤面のジャーナルを Seq 昇順で返す。登録を外した盤面のジャーナルも取得できる。
func (s *BoardService) ListEvents(ctx context.Context, id string, limit int) ([]BoardEvent, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.defaultLim
	}

	events, err := s.repo.ListByBoard(ctx, id, limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if len(events) == 0 && !s.exists(id) {
		return nil, fmt.Errorf("%w: %s", ErrBoardNotFound, id)
	}
	return events, nil
}

// ReplayBoard はジャーナルだけから盤面を再構築する。メモリ上の盤面には影響しない。
func (s *BoardService) ReplayBoard(ctx context.Context, id string) (BoardView, error) {
	return ReplayFromRepository(ctx, s.repo, id)
}

// ReplayFromRepository は repo から盤面のイベントを全件読み出して再構築する。
func ReplayFromRepository(ctx context.Context, repo EventRepository, id string) (BoardView, error) {
	if err := validateID(id); err != nil {
		return BoardView{}, err
	}

	events, err := repo.ListByBoard(ctx, id, 0)
	if err != nil {
		return BoardView{}, fmt.Errorf("list events: %w", err)
	}
	if len(events) == 0 {
		return BoardView{}, fmt.Errorf("%w: %s", ErrBoardNotFound, id)
	}

	board, err := Replay(events)
	if err != nil {
		return BoardView{}, err
	}
	return newBoardView(id, board), nil
}

func (s *BoardService) withSession(id string, fn func(*session) error) error {
	if err := validateID(id); err != nil {
		return err
	}

	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrBoardNotFound, id)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess)
}

func (s *BoardService) exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok
}

// record は sess.seq を進めてイベントを追記する。呼び出し側が sess.mu を保持していること。
func (s *BoardService) record(ctx context.Context, boardID string, sess *session, event BoardEvent) error {
	event.ID = s.ids.NewID()
	event.BoardID = boardID
	event.Seq = sess.seq + 1
	event.CreatedAt = s.clock.Now().UTC()

	if err := s.repo.Append(ctx, event); err != nil {
		return fmt.Errorf("append %s event: %w", event.Kind, err)
	}
	sess.seq = event.Seq
	return nil
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id must not be blank", ErrValidationFailed)
	}
	return nil
}

// Clock は現在時刻を取得するインタフェース。
type Clock interface {
	Now() time.Time
}

// IDGenerator は新しい識別子を発行するインタフェース。
type IDGenerator interface {
	NewID() string
}

type systemClock struct{}

type defaultIDGenerator struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (defaultIDGenerator) NewID() string {
	return uuid.NewString()
}

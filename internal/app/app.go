package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/gin-gonic/gin"

	"github.com/2509-hackz-ichthyo/main/gridboard/internal/config"
	"github.com/2509-hackz-ichthyo/main/gridboard/internal/infrastructure/database"
	"github.com/2509-hackz-ichthyo/main/gridboard/internal/infrastructure/repository"
	"github.com/2509-hackz-ichthyo/main/gridboard/internal/interfaces/httpapi"
	"github.com/2509-hackz-ichthyo/main/gridboard/internal/usecases"
)

// Boot は設定に従ってジャーナル、ユースケース、ルーターを組み立てる。
// 返される cleanup はサーバー終了後に呼び出す。
func Boot(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {
	repo, cleanup, err := OpenJournal(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	service := usecases.NewBoardService(repo, usecases.WithDefaultLimit(cfg.EventListLimit))
	return httpapi.NewRouter(service), cleanup, nil
}

// OpenJournal は cfg.JournalBackend に対応する EventRepository を開く。
func OpenJournal(ctx context.Context, cfg config.Config) (usecases.EventRepository, func() error, error) {
	noop := func() error { return nil }

	switch cfg.JournalBackend {
	case config.BackendMemory:
		log.Printf("ジャーナル: メモリ")
		return repository.NewMemoryEventRepository(), noop, nil

	case config.BackendDynamoDB:
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(cfg.AWSRegion),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create aws session: %w", err)
		}
		log.Printf("ジャーナル: DynamoDB (%s)", cfg.JournalTable)
		return repository.NewDynamoDBEventRepository(dynamodb.New(sess), cfg.JournalTable), noop, nil

	case config.BackendSQLite, "":
		db, err := openSQLite(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("ジャーナル: SQLite (%s)", cfg.DatabasePath)
		return repository.NewSQLiteEventRepository(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown journal backend %q", cfg.JournalBackend)
	}
}

func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := database.OpenSQLite(database.SQLiteConfig{
		Path:         path,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	if err != nil {
		return nil, err
	}

	if err := database.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

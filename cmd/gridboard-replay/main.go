package main

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/2509-hackz-ichthyo/main/gridboard/internal/app"
	"github.com/2509-hackz-ichthyo/main/gridboard/internal/config"
	"github.com/2509-hackz-ichthyo/main/gridboard/internal/interfaces/lambdaapi"
)

type proxyHandler func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// テストから差し替えるためのフック。
var (
	loadConfig  = loadReplayConfig
	openJournal = app.OpenJournal
	startLambda = func(handler proxyHandler) { lambda.Start(handler) }
	logFatalf   = log.Fatalf
)

// main はジャーナルから盤面を復元する Lambda を起動する。
// JOURNAL_BACKEND を省略した場合は DynamoDB を読む。
func main() {
	if err := run(context.Background()); err != nil {
		logFatalf("Lambda の初期化に失敗しました: %v", err)
	}
}

// loadReplayConfig は Lambda 向けの設定を読む。実行環境では ./data を作れないため sqlite を既定にしない。
func loadReplayConfig() (config.Config, error) {
	return config.LoadWithDefaults(config.Config{JournalBackend: config.BackendDynamoDB})
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定の読み込みに失敗しました: %w", err)
	}

	repo, cleanup, err := openJournal(ctx, cfg)
	if err != nil {
		return fmt.Errorf("ジャーナルの初期化に失敗しました: %w", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Printf("ジャーナルのクローズに失敗しました: %v", err)
		}
	}()

	startLambda(lambdaapi.NewReplayHandler(repo).Handle)
	return nil
}

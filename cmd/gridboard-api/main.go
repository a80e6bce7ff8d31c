package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/2509-hackz-ichthyo/main/gridboard/internal/app"
	"github.com/2509-hackz-ichthyo/main/gridboard/internal/config"
)

// テストから差し替えるためのフック。
var (
	loadConfig     = config.Load
	bootApp        = app.Boot
	logFatalf      = log.Fatalf
	listenAndServe = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownServer = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// main は HTTP サーバーを起動し、盤面 API を提供する。
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logFatalf("%v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定の読み込みに失敗しました: %w", err)
	}

	router, cleanup, err := bootApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("アプリケーションの初期化に失敗しました: %w", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Printf("ジャーナルのクローズに失敗しました: %v", err)
		}
	}()

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("サーバーを起動しました: http://0.0.0.0:%s", cfg.ServerPort)
		errCh <- listenAndServe(srv)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("サーバー起動に失敗しました: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("シャットダウンシグナルを受信しました。終了処理を開始します。")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := shutdownServer(srv, shutdownCtx); err != nil {
		return fmt.Errorf("サーバーの正常終了に失敗しました: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("サーバー起動に失敗しました: %w", err)
	}

	log.Println("サーバーを終了しました。")
	return nil
}

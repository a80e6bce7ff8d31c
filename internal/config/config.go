package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config はアプリケーション全体で共有する設定値を保持する。
type Config struct {
	// ServerPort は HTTP サーバがバインドするポート番号。
	ServerPort string `yaml:"server_port"`
	// DatabasePath は SQLite ファイルの配置パス。
	DatabasePath string `yaml:"database_path"`
	// JournalBackend はイベントの保存先。sqlite / dynamodb / memory のいずれか。
	JournalBackend string `yaml:"journal_backend"`
	// AWSRegion は DynamoDB を使う場合のリージョン。
	AWSRegion string `yaml:"aws_region"`
	// JournalTable は DynamoDB のテーブル名。
	JournalTable string `yaml:"journal_table"`
	// EventListLimit はイベント一覧で limit を省略したときの件数。
	EventListLimit int `yaml:"event_list_limit"`
}

const (
	BackendSQLite   = "sqlite"
	BackendDynamoDB = "dynamodb"
	BackendMemory   = "memory"
)

const (
	envServerPort     = "SERVER_PORT"
	envDatabaseDir    = "DATABASE_DIR"
	envDatabaseURI    = "DATABASE_PATH"
	envJournalBackend = "JOURNAL_BACKEND"
	envAWSRegion      = "AWS_REGION"
	envJournalTable   = "JOURNAL_TABLE"
	envEventLimit     = "EVENT_LIST_LIMIT"
	envConfigFile     = "CONFIG_FILE"
)

// Load は設定値を読み込む。CONFIG_FILE があれば YAML を先に読み、環境変数で上書きする。
// どちらにも指定が無い項目はデフォルト値を用いる。
func Load() (Config, error) {
	return LoadWithDefaults(Config{})
}

// LoadWithDefaults は Load と同じ順で設定を読み、YAML と環境変数のどちらにも無い項目を
// defaults の非ゼロ値で埋める。それでも空の項目は Load と同じデフォルト値になる。
func LoadWithDefaults(defaults Config) (Config, error) {
	var cfg Config

	if path := os.Getenv(envConfigFile); path != "" {
		fileCfg, err := loadFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = fileCfg
	}

	overrideString(&cfg.ServerPort, envServerPort)
	overrideString(&cfg.DatabasePath, envDatabaseURI)
	overrideString(&cfg.JournalBackend, envJournalBackend)
	overrideString(&cfg.AWSRegion, envAWSRegion)
	overrideString(&cfg.JournalTable, envJournalTable)

	if raw := os.Getenv(envEventLimit); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", envEventLimit, err)
		}
		cfg.EventListLimit = limit
	}

	fallbackString(&cfg.ServerPort, defaults.ServerPort)
	fallbackString(&cfg.DatabasePath, defaults.DatabasePath)
	fallbackString(&cfg.JournalBackend, defaults.JournalBackend)
	fallbackString(&cfg.AWSRegion, defaults.AWSRegion)
	fallbackString(&cfg.JournalTable, defaults.JournalTable)
	if cfg.EventListLimit <= 0 {
		cfg.EventListLimit = defaults.EventListLimit
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "3000"
	}
	if cfg.JournalBackend == "" {
		cfg.JournalBackend = BackendSQLite
	}
	if cfg.JournalTable == "" {
		cfg.JournalTable = "board-events"
	}
	if cfg.EventListLimit <= 0 {
		cfg.EventListLimit = 50
	}

	switch cfg.JournalBackend {
	case BackendSQLite:
		if cfg.DatabasePath == "" {
			dir := os.Getenv(envDatabaseDir)
			if dir == "" {
				dir = "./data"
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return Config{}, fmt.Errorf("create database dir: %w", err)
			}
			cfg.DatabasePath = filepath.Join(dir, "board_events.sqlite3")
		}
	case BackendDynamoDB, BackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown journal backend %q", cfg.JournalBackend)
	}

	return cfg, nil
}

func loadFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

func overrideString(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

func fallbackString(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}
